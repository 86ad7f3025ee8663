package scheduler

import (
	"tasksched/task"
	"tasksched/worker"
)

// LeastLoaded places a task on the worker with the smallest total
// consumption. Among equally loaded workers the largest id wins.
type LeastLoaded struct {
	Name string
}

func (l *LeastLoaded) SelectCandidateNodes(t task.Task, nodes []*worker.Worker) []*worker.Worker {
	return nodes
}

func (l *LeastLoaded) Score(t task.Task, nodes []*worker.Worker) map[int]int {
	scores := make(map[int]int, len(nodes))
	for _, n := range nodes {
		scores[n.ID] = n.Load
	}
	return scores
}

func (l *LeastLoaded) Pick(scores map[int]int, candidates []*worker.Worker) *worker.Worker {
	var best *worker.Worker
	for _, n := range candidates {
		if best == nil {
			best = n
			continue
		}
		s, bs := scores[n.ID], scores[best.ID]
		if s < bs || (s == bs && n.ID > best.ID) {
			best = n
		}
	}
	return best
}
