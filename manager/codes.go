package manager

import "errors"

// Code is the result of a manager operation. Every operation returns exactly
// one Code; success codes report OK() == true.
type Code int

const (
	Initialized Code = iota + 1
	NodeRegistered
	NodeUnregistered
	TaskAdded
	TaskDeleted
	Scheduled
	NothingToSchedule
	StatusReported

	InvalidNodeID
	InvalidTaskID
	InvalidThreshold
	NodeExists
	NodeNotFound
	TaskExists
	TaskNotFound
	NoNodesAvailable
	NilOutput
)

var (
	ErrInvalidNodeID    = errors.New("invalid node id")
	ErrInvalidTaskID    = errors.New("invalid task id")
	ErrInvalidThreshold = errors.New("invalid threshold")
	ErrNodeExists       = errors.New("node already registered")
	ErrNodeNotFound     = errors.New("node not found")
	ErrTaskExists       = errors.New("task already exists")
	ErrTaskNotFound     = errors.New("task not found")
	ErrNoNodesAvailable = errors.New("no nodes available")
	ErrNilOutput        = errors.New("nil output collection")
)

var codeNames = map[Code]string{
	Initialized:       "initialized",
	NodeRegistered:    "node_registered",
	NodeUnregistered:  "node_unregistered",
	TaskAdded:         "task_added",
	TaskDeleted:       "task_deleted",
	Scheduled:         "scheduled",
	NothingToSchedule: "nothing_to_schedule",
	StatusReported:    "status_reported",
	InvalidNodeID:     "invalid_node_id",
	InvalidTaskID:     "invalid_task_id",
	InvalidThreshold:  "invalid_threshold",
	NodeExists:        "node_exists",
	NodeNotFound:      "node_not_found",
	TaskExists:        "task_exists",
	TaskNotFound:      "task_not_found",
	NoNodesAvailable:  "no_nodes_available",
	NilOutput:         "nil_output",
}

var codeErrs = map[Code]error{
	InvalidNodeID:    ErrInvalidNodeID,
	InvalidTaskID:    ErrInvalidTaskID,
	InvalidThreshold: ErrInvalidThreshold,
	NodeExists:       ErrNodeExists,
	NodeNotFound:     ErrNodeNotFound,
	TaskExists:       ErrTaskExists,
	TaskNotFound:     ErrTaskNotFound,
	NoNodesAvailable: ErrNoNodesAvailable,
	NilOutput:        ErrNilOutput,
}

func (c Code) String() string {
	if n, ok := codeNames[c]; ok {
		return n
	}
	return "unknown"
}

func (c Code) OK() bool {
	return c >= Initialized && c <= StatusReported
}

// Err returns the sentinel error for a failure code and nil for success.
func (c Code) Err() error {
	return codeErrs[c]
}

// ParseCode is the inverse of Code.String.
func ParseCode(s string) (Code, bool) {
	for c, n := range codeNames {
		if n == s {
			return c, true
		}
	}
	return 0, false
}
