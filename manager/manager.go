package manager

import (
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/golang-collections/collections/queue"
	"github.com/golang-collections/collections/set"
	"github.com/google/uuid"

	"tasksched/logging"
	"tasksched/scheduler"
	"tasksched/store"
	"tasksched/task"
	"tasksched/worker"
)

// 1. Accept node registrations and task submissions
// 2. Assign pending tasks to the least loaded workers
// 3. Keep track of tasks, their cost, and the worker holding them

// Manager owns the worker registry, the task cost table and the pending
// queue. A single mutex guards all three for the whole of every operation.
type Manager struct {
	mu sync.Mutex

	pending       *set.Set
	costs         map[int]int
	workers       map[int]*worker.Worker
	taskWorkerMap map[int]int

	eventDb   store.Store
	eventSeq  uint64
	scheduler scheduler.Scheduler
	logger    *slog.Logger
}

type Option func(*Manager)

func WithLogger(l *slog.Logger) Option {
	return func(m *Manager) {
		if l != nil {
			m.logger = l
		}
	}
}

// WithScheduler sets the placement policy. A policy whose Pick returns nil
// leaves that task and every later one pending for the next pass.
func WithScheduler(s scheduler.Scheduler) Option {
	return func(m *Manager) {
		if s != nil {
			m.scheduler = s
		}
	}
}

func WithEventStore(s store.Store) Option {
	return func(m *Manager) {
		if s != nil {
			m.eventDb = s
		}
	}
}

// New returns an initialized manager. Without options it places tasks with
// scheduler.LeastLoaded, keeps events in memory and discards logs.
func New(opts ...Option) *Manager {
	m := &Manager{
		eventDb:   store.NewInMemoryTaskEventStore(),
		scheduler: scheduler.New("leastloaded"),
		logger:    logging.Discard(),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.logger = m.logger.With("component", "manager")
	m.reset()

	return m
}

func (m *Manager) reset() {
	m.pending = set.New()
	m.costs = make(map[int]int)
	m.workers = make(map[int]*worker.Worker)
	m.taskWorkerMap = make(map[int]int)
	m.eventSeq = 0
	if r, ok := m.scheduler.(scheduler.Resetter); ok {
		r.Reset()
	}
	if err := m.eventDb.Reset(); err != nil {
		m.logger.Warn("resetting event store", "error", err)
	}
}

// Init drops every node, task and event.
func (m *Manager) Init() Code {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.reset()
	m.logger.Debug("state reset")

	return Initialized
}

func (m *Manager) RegisterNode(nodeID int) Code {
	if nodeID <= 0 {
		return m.reject(InvalidNodeID, "node_id", nodeID)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.workers[nodeID]; ok {
		return m.reject(NodeExists, "node_id", nodeID)
	}

	m.workers[nodeID] = worker.New(nodeID)
	m.record(task.NodeRegistered, 0, nodeID)
	m.logger.Debug("node registered", "node_id", nodeID)

	return NodeRegistered
}

// UnregisterNode removes the node and moves its tasks back to pending.
// Their cost entries are kept.
func (m *Manager) UnregisterNode(nodeID int) Code {
	if nodeID <= 0 {
		return m.reject(InvalidNodeID, "node_id", nodeID)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	w, ok := m.workers[nodeID]
	if !ok {
		return m.reject(NodeNotFound, "node_id", nodeID)
	}

	delete(m.workers, nodeID)
	requeued := w.Drain()
	for _, id := range requeued {
		delete(m.taskWorkerMap, id)
		m.pending.Insert(id)
		m.record(task.TaskRequeued, id, task.Unassigned)
	}
	m.record(task.NodeUnregistered, 0, nodeID)
	m.logger.Debug("node unregistered", "node_id", nodeID, "requeued", len(requeued))

	return NodeUnregistered
}

// AddTask puts a new task in the pending queue. consumption is stored as
// given; zero and negative costs are accepted.
func (m *Manager) AddTask(taskID, consumption int) Code {
	if taskID <= 0 {
		return m.reject(InvalidTaskID, "task_id", taskID)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.exists(taskID) {
		return m.reject(TaskExists, "task_id", taskID)
	}

	m.pending.Insert(taskID)
	m.costs[taskID] = consumption
	m.record(task.TaskAdded, taskID, task.Unassigned)
	m.logger.Debug("task added", "task_id", taskID, "consumption", consumption)

	return TaskAdded
}

// DeleteTask removes a task from the pending queue or from whichever worker
// holds it. The cost entry is pruned.
func (m *Manager) DeleteTask(taskID int) Code {
	if taskID <= 0 {
		return m.reject(InvalidTaskID, "task_id", taskID)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	nodeID := task.Unassigned
	switch {
	case m.pending.Has(taskID):
		m.pending.Remove(taskID)
	default:
		id, ok := m.taskWorkerMap[taskID]
		if !ok {
			return m.reject(TaskNotFound, "task_id", taskID)
		}
		m.workers[id].Remove(taskID, m.costs[taskID])
		delete(m.taskWorkerMap, taskID)
		nodeID = id
	}

	delete(m.costs, taskID)
	m.record(task.TaskDeleted, taskID, nodeID)
	m.logger.Debug("task deleted", "task_id", taskID, "node_id", nodeID)

	return TaskDeleted
}

// ScheduleTask drains the pending queue in ascending task id order, placing
// each task with the configured policy. The whole pass runs under the lock.
// threshold must be positive but does not otherwise affect placement.
// A policy that selects no worker ends the pass early; it still returns
// Scheduled and the unplaced tasks remain pending.
func (m *Manager) ScheduleTask(threshold int) Code {
	if threshold <= 0 {
		return m.reject(InvalidThreshold, "threshold", threshold)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.workers) == 0 {
		return m.reject(NoNodesAvailable, "pending", m.pending.Len())
	}
	if m.pending.Len() == 0 {
		m.logger.Debug("nothing to schedule")
		return NothingToSchedule
	}

	work := queue.New()
	for _, id := range m.pendingIDs() {
		work.Enqueue(id)
	}

	nodes := m.workerList()
	assigned := 0
	for work.Len() > 0 {
		t := task.Task{ID: work.Dequeue().(int)}
		t.Consumption = m.costs[t.ID]

		w := m.selectWorker(t, nodes)
		if w == nil {
			// The policy refused every node. Tasks placed so far stay
			// placed and the rest stay pending.
			m.logger.Warn("no worker selected", "task_id", t.ID)
			break
		}

		w.Assign(t.ID, t.Consumption)
		m.pending.Remove(t.ID)
		m.taskWorkerMap[t.ID] = w.ID
		m.record(task.TaskScheduled, t.ID, w.ID)
		m.logger.Debug("task assigned", "task_id", t.ID, "node_id", w.ID, "load", w.Load)
		assigned++
	}

	m.logger.Info("scheduling pass completed", "assigned", assigned, "pending", m.pending.Len())

	return Scheduled
}

// QueryTaskStatus replaces *out with one record per task sorted by task id.
// Pending tasks carry task.Unassigned as node id.
func (m *Manager) QueryTaskStatus(out *[]task.Status) Code {
	if out == nil {
		return m.reject(NilOutput)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	statuses := make([]task.Status, 0, m.pending.Len()+len(m.taskWorkerMap))
	m.pending.Do(func(v interface{}) {
		statuses = append(statuses, task.Status{TaskID: v.(int), NodeID: task.Unassigned})
	})
	for _, w := range m.workers {
		for _, id := range w.Tasks {
			statuses = append(statuses, task.Status{TaskID: id, NodeID: w.ID})
		}
	}
	sort.Slice(statuses, func(i, j int) bool {
		return statuses[i].TaskID < statuses[j].TaskID
	})

	*out = statuses

	return StatusReported
}

// Nodes returns the registered node ids in ascending order.
func (m *Manager) Nodes() []int {
	m.mu.Lock()
	defer m.mu.Unlock()

	ids := make([]int, 0, len(m.workers))
	for id := range m.workers {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	return ids
}

// NodeTasks returns a copy of the node's task list in assignment order.
func (m *Manager) NodeTasks(nodeID int) ([]int, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	w, ok := m.workers[nodeID]
	if !ok {
		return nil, false
	}

	return append([]int{}, w.Tasks...), true
}

// NodeLoad returns the summed consumption of the node's tasks.
func (m *Manager) NodeLoad(nodeID int) (int, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	w, ok := m.workers[nodeID]
	if !ok {
		return 0, false
	}

	return w.Load, true
}

func (m *Manager) PendingCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.pending.Len()
}

// Events returns the recorded events ordered by sequence number.
func (m *Manager) Events() []*task.TaskEvent {
	m.mu.Lock()
	defer m.mu.Unlock()

	result, err := m.eventDb.List()
	if err != nil {
		m.logger.Error("listing events", "error", err)
		return nil
	}
	events, ok := result.([]*task.TaskEvent)
	if !ok {
		m.logger.Error("unexpected event list type", "type", result)
		return nil
	}
	sort.Slice(events, func(i, j int) bool {
		return events[i].Seq < events[j].Seq
	})

	return events
}

// EventCount returns how many events have been recorded since the last Init.
func (m *Manager) EventCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	n, err := m.eventDb.Count()
	if err != nil {
		m.logger.Error("counting events", "error", err)
		return 0
	}

	return n
}

// Event looks up a single recorded event by id.
func (m *Manager) Event(id uuid.UUID) (*task.TaskEvent, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	v, err := m.eventDb.Get(id.String())
	if err != nil {
		return nil, false
	}
	e, ok := v.(*task.TaskEvent)

	return e, ok
}

// selectWorker runs the placement policy over the given workers.
func (m *Manager) selectWorker(t task.Task, nodes []*worker.Worker) *worker.Worker {
	candidates := m.scheduler.SelectCandidateNodes(t, nodes)
	if len(candidates) == 0 {
		return nil
	}

	scores := m.scheduler.Score(t, candidates)

	return m.scheduler.Pick(scores, candidates)
}

func (m *Manager) exists(taskID int) bool {
	if m.pending.Has(taskID) {
		return true
	}
	_, ok := m.taskWorkerMap[taskID]
	return ok
}

func (m *Manager) pendingIDs() []int {
	ids := make([]int, 0, m.pending.Len())
	m.pending.Do(func(v interface{}) {
		ids = append(ids, v.(int))
	})
	sort.Ints(ids)

	return ids
}

func (m *Manager) workerList() []*worker.Worker {
	nodes := make([]*worker.Worker, 0, len(m.workers))
	for _, w := range m.workers {
		nodes = append(nodes, w)
	}
	sort.Slice(nodes, func(i, j int) bool {
		return nodes[i].ID < nodes[j].ID
	})

	return nodes
}

func (m *Manager) record(kind task.EventKind, taskID, nodeID int) {
	m.eventSeq++
	e := &task.TaskEvent{
		ID:        uuid.New(),
		Seq:       m.eventSeq,
		Kind:      kind,
		TaskID:    taskID,
		NodeID:    nodeID,
		Timestamp: time.Now().UTC(),
	}
	if err := m.eventDb.Put(e.ID.String(), e); err != nil {
		m.logger.Error("storing event", "kind", kind, "error", err)
	}
}

func (m *Manager) reject(c Code, args ...any) Code {
	m.logger.Debug("operation rejected", append([]any{"code", c.String()}, args...)...)
	return c
}
