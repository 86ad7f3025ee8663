package scheduler

import (
	"tasksched/task"
	"tasksched/worker"
)

// 1. Determine a set of candidate workers on which a task could run
// 2. Score the candidate workers
// 3. Pick the best worker

type Scheduler interface {
	SelectCandidateNodes(t task.Task, nodes []*worker.Worker) []*worker.Worker
	Score(t task.Task, nodes []*worker.Worker) map[int]int
	Pick(scores map[int]int, candidates []*worker.Worker) *worker.Worker
}

// Resetter is implemented by policies that carry state between passes.
// The manager calls Reset whenever it reinitializes.
type Resetter interface {
	Reset()
}

// New returns the policy registered under name. Unknown names fall back to
// LeastLoaded.
func New(name string) Scheduler {
	switch name {
	case "roundrobin":
		return &RoundRobin{Name: "roundrobin"}
	default:
		return &LeastLoaded{Name: "leastloaded"}
	}
}
