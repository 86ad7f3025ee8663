package scheduler

import (
	"sort"

	"tasksched/task"
	"tasksched/worker"
)

// RoundRobin hands tasks to workers in ascending id order, ignoring load.
// It remembers the last worker id it picked.
type RoundRobin struct {
	Name       string
	LastWorker int
}

func (r *RoundRobin) Reset() {
	r.LastWorker = 0
}

func (r *RoundRobin) SelectCandidateNodes(t task.Task, nodes []*worker.Worker) []*worker.Worker {
	return nodes
}

// Score gives the next worker after LastWorker a score of 0 and every other
// worker 1. When LastWorker is the highest id the cycle wraps to the lowest.
func (r *RoundRobin) Score(t task.Task, nodes []*worker.Worker) map[int]int {
	scores := make(map[int]int, len(nodes))
	if len(nodes) == 0 {
		return scores
	}

	ids := make([]int, 0, len(nodes))
	for _, n := range nodes {
		ids = append(ids, n.ID)
		scores[n.ID] = 1
	}
	sort.Ints(ids)

	next := ids[0]
	for _, id := range ids {
		if id > r.LastWorker {
			next = id
			break
		}
	}
	scores[next] = 0

	return scores
}

func (r *RoundRobin) Pick(scores map[int]int, candidates []*worker.Worker) *worker.Worker {
	var best *worker.Worker
	for _, n := range candidates {
		if best == nil || scores[n.ID] < scores[best.ID] {
			best = n
		}
	}
	if best != nil {
		r.LastWorker = best.ID
	}
	return best
}
