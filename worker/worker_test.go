package worker

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestAssignRemove(t *testing.T) {
	w := New(1)
	w.Assign(10, 5)
	w.Assign(11, 3)
	w.Assign(12, 2)

	if w.Load != 10 || w.TaskCount() != 3 {
		t.Fatalf("load=%d count=%d, want 10 and 3", w.Load, w.TaskCount())
	}

	if !w.Remove(11, 3) {
		t.Fatal("Remove(11) = false, want true")
	}
	if w.Remove(11, 3) {
		t.Fatal("second Remove(11) = true, want false")
	}
	if diff := cmp.Diff([]int{10, 12}, w.Tasks); diff != "" {
		t.Errorf("tasks (-want +got):\n%s", diff)
	}
	if w.Load != 7 {
		t.Errorf("load = %d, want 7", w.Load)
	}
}

func TestDrain(t *testing.T) {
	w := New(2)
	w.Assign(1, 4)
	w.Assign(2, 4)

	got := w.Drain()
	if diff := cmp.Diff([]int{1, 2}, got); diff != "" {
		t.Errorf("drained (-want +got):\n%s", diff)
	}
	if w.Load != 0 || w.TaskCount() != 0 {
		t.Errorf("worker not empty after Drain: %+v", w)
	}
}
