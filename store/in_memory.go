package store

import (
	"fmt"
	"sync"

	"tasksched/task"
)

type InMemoryTaskEventStore struct {
	mu sync.RWMutex
	Db map[string]*task.TaskEvent
}

func NewInMemoryTaskEventStore() *InMemoryTaskEventStore {
	return &InMemoryTaskEventStore{
		Db: make(map[string]*task.TaskEvent),
	}
}

func (i *InMemoryTaskEventStore) Put(key string, value any) error {
	e, ok := value.(*task.TaskEvent)
	if !ok {
		return fmt.Errorf("value %v is not a task.TaskEvent type", value)
	}

	i.mu.Lock()
	defer i.mu.Unlock()
	i.Db[key] = e

	return nil
}

func (i *InMemoryTaskEventStore) Get(key string) (any, error) {
	i.mu.RLock()
	defer i.mu.RUnlock()

	v, ok := i.Db[key]
	if !ok {
		return nil, fmt.Errorf("task event with key %s does not exist", key)
	}

	return v, nil
}

// List returns the stored events in no particular order.
func (i *InMemoryTaskEventStore) List() (any, error) {
	i.mu.RLock()
	defer i.mu.RUnlock()

	events := make([]*task.TaskEvent, 0, len(i.Db))
	for _, e := range i.Db {
		events = append(events, e)
	}

	return events, nil
}

func (i *InMemoryTaskEventStore) Count() (int, error) {
	i.mu.RLock()
	defer i.mu.RUnlock()

	return len(i.Db), nil
}

func (i *InMemoryTaskEventStore) Reset() error {
	i.mu.Lock()
	defer i.mu.Unlock()

	i.Db = make(map[string]*task.TaskEvent)

	return nil
}
