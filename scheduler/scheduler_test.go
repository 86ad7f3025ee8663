package scheduler

import (
	"testing"

	"tasksched/task"
	"tasksched/worker"
)

func nodes(loads map[int]int) []*worker.Worker {
	var ws []*worker.Worker
	for id := 1; id <= 10; id++ {
		if l, ok := loads[id]; ok {
			ws = append(ws, &worker.Worker{ID: id, Load: l})
		}
	}
	return ws
}

func pick(s Scheduler, ws []*worker.Worker) int {
	t := task.Task{ID: 1, Consumption: 1}
	c := s.SelectCandidateNodes(t, ws)
	w := s.Pick(s.Score(t, c), c)
	if w == nil {
		return 0
	}
	return w.ID
}

func TestLeastLoaded(t *testing.T) {
	tests := []struct {
		name  string
		loads map[int]int
		want  int
	}{
		{"single", map[int]int{3: 9}, 3},
		{"min load", map[int]int{1: 5, 2: 1, 3: 4}, 2},
		{"tie goes to largest id", map[int]int{1: 0, 2: 0}, 2},
		{"tie among minimum only", map[int]int{1: 2, 4: 2, 6: 3}, 4},
		{"negative load", map[int]int{1: -1, 2: 0}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := pick(New("leastloaded"), nodes(tt.loads)); got != tt.want {
				t.Errorf("picked %d, want %d", got, tt.want)
			}
		})
	}
}

func TestLeastLoaded_NoCandidates(t *testing.T) {
	if got := pick(&LeastLoaded{}, nil); got != 0 {
		t.Errorf("picked %d from no workers", got)
	}
}

func TestRoundRobin(t *testing.T) {
	s := New("roundrobin")
	ws := nodes(map[int]int{2: 0, 5: 100, 9: 0})

	var got []int
	for i := 0; i < 5; i++ {
		got = append(got, pick(s, ws))
	}
	want := []int{2, 5, 9, 2, 5}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("sequence = %v, want %v", got, want)
		}
	}
}

func TestRoundRobin_Reset(t *testing.T) {
	rr := &RoundRobin{}
	ws := nodes(map[int]int{1: 0, 2: 0})
	pick(rr, ws)
	rr.Reset()
	if got := pick(rr, ws); got != 1 {
		t.Errorf("picked %d after Reset, want 1", got)
	}
	var _ Resetter = rr
}

func TestNew_Default(t *testing.T) {
	if _, ok := New("unknown").(*LeastLoaded); !ok {
		t.Error("New with unknown name should return LeastLoaded")
	}
}
