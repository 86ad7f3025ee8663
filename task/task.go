package task

import (
	"time"

	"github.com/google/uuid"
)

// Unassigned is the node id reported for a task still in the pending queue.
const Unassigned = -1

type State int

const (
	Pending State = iota
	Scheduled
)

func (s State) String() string {
	switch s {
	case Pending:
		return "pending"
	case Scheduled:
		return "scheduled"
	default:
		return "unknown"
	}
}

// Task is an opaque unit of work. Consumption is fixed at creation.
type Task struct {
	ID          int
	Consumption int
}

// Status is one row of a status snapshot.
type Status struct {
	TaskID int `json:"task_id" yaml:"task_id"`
	NodeID int `json:"node_id" yaml:"node_id"`
}

func (s Status) State() State {
	if s.NodeID == Unassigned {
		return Pending
	}
	return Scheduled
}

type EventKind int

const (
	NodeRegistered EventKind = iota
	NodeUnregistered
	TaskAdded
	TaskDeleted
	TaskScheduled
	TaskRequeued
)

var eventKindNames = map[EventKind]string{
	NodeRegistered:   "node_registered",
	NodeUnregistered: "node_unregistered",
	TaskAdded:        "task_added",
	TaskDeleted:      "task_deleted",
	TaskScheduled:    "task_scheduled",
	TaskRequeued:     "task_requeued",
}

func (k EventKind) String() string {
	if n, ok := eventKindNames[k]; ok {
		return n
	}
	return "unknown"
}

// TaskEvent records a single change to the registry. TaskID is 0 for node
// events and NodeID is Unassigned for task events that involve no node.
type TaskEvent struct {
	ID        uuid.UUID
	Seq       uint64
	Kind      EventKind
	TaskID    int
	NodeID    int
	Timestamp time.Time
}
