package store

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"tasksched/task"
)

func TestInMemoryTaskEventStore_PutGet(t *testing.T) {
	s := NewInMemoryTaskEventStore()
	e := &task.TaskEvent{
		ID:        uuid.New(),
		Kind:      task.TaskAdded,
		TaskID:    10,
		NodeID:    task.Unassigned,
		Timestamp: time.Now(),
	}

	if err := s.Put(e.ID.String(), e); err != nil {
		t.Fatalf("Put: %v", err)
	}

	got, err := s.Get(e.ID.String())
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.(*task.TaskEvent) != e {
		t.Errorf("Get returned %v, want %v", got, e)
	}

	n, _ := s.Count()
	if n != 1 {
		t.Errorf("Count = %d, want 1", n)
	}
}

func TestInMemoryTaskEventStore_PutWrongType(t *testing.T) {
	s := NewInMemoryTaskEventStore()
	if err := s.Put("k", "not an event"); err == nil {
		t.Fatal("expected error for wrong value type")
	}
}

func TestInMemoryTaskEventStore_GetMissing(t *testing.T) {
	s := NewInMemoryTaskEventStore()
	if _, err := s.Get("missing"); err == nil {
		t.Fatal("expected error for missing key")
	}
}

func TestInMemoryTaskEventStore_ListAndReset(t *testing.T) {
	s := NewInMemoryTaskEventStore()
	for i := 0; i < 3; i++ {
		e := &task.TaskEvent{ID: uuid.New(), Seq: uint64(i)}
		if err := s.Put(e.ID.String(), e); err != nil {
			t.Fatalf("Put: %v", err)
		}
	}

	list, err := s.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list.([]*task.TaskEvent)) != 3 {
		t.Errorf("List len = %d, want 3", len(list.([]*task.TaskEvent)))
	}

	if err := s.Reset(); err != nil {
		t.Fatalf("Reset: %v", err)
	}
	if n, _ := s.Count(); n != 0 {
		t.Errorf("Count after Reset = %d, want 0", n)
	}
}
