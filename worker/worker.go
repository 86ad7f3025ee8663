package worker

// Worker is a registered node. Tasks holds assigned task ids in assignment
// order; Load is the sum of their consumption and is maintained by the caller
// that mutates Tasks.
type Worker struct {
	ID    int
	Tasks []int
	Load  int
}

func New(id int) *Worker {
	return &Worker{
		ID:    id,
		Tasks: []int{},
	}
}

// Assign appends a task to the end of the worker's list.
func (w *Worker) Assign(taskID, consumption int) {
	w.Tasks = append(w.Tasks, taskID)
	w.Load += consumption
}

// Remove drops taskID from the list, keeping the order of the others.
// It reports whether the task was found.
func (w *Worker) Remove(taskID, consumption int) bool {
	for i, id := range w.Tasks {
		if id == taskID {
			w.Tasks = append(w.Tasks[:i], w.Tasks[i+1:]...)
			w.Load -= consumption
			return true
		}
	}
	return false
}

// Drain empties the worker and returns the tasks it held.
func (w *Worker) Drain() []int {
	tasks := w.Tasks
	w.Tasks = []int{}
	w.Load = 0
	return tasks
}

func (w *Worker) TaskCount() int {
	return len(w.Tasks)
}
