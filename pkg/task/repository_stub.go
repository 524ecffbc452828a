package task

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
)

type RepositoryStub struct {
	mu    sync.RWMutex
	items map[uuid.UUID]Task
}

func NewRepositoryStub() *RepositoryStub {
	return &RepositoryStub{
		items: make(map[uuid.UUID]Task),
	}
}

func (r *RepositoryStub) GetTasks(ctx context.Context) ([]Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]Task, 0, len(r.items))
	for _, task := range r.items {
		result = append(result, task)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].StartTime.Equal(result[j].StartTime) {
			return result[i].Id.String() < result[j].Id.String()
		}
		return result[i].StartTime.Before(result[j].StartTime)
	})
	return result, nil
}

func (r *RepositoryStub) GetTask(ctx context.Context, id uuid.UUID) (Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	task, ok := r.items[id]
	if !ok {
		return Task{}, ErrTaskNotFound
	}
	return task, nil
}

func (r *RepositoryStub) StoreTask(ctx context.Context, task Task) (Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	task.Id = uuid.New()
	r.items[task.Id] = task
	return task, nil
}

func (r *RepositoryStub) UpdateTask(ctx context.Context, task Task) (Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[task.Id]; !ok {
		return Task{}, ErrTaskNotFound
	}
	r.items[task.Id] = task
	return task, nil
}

func (r *RepositoryStub) DeleteTask(ctx context.Context, id uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return false, nil
	}
	delete(r.items, id)
	return true, nil
}

// Reset clears all stored tasks (useful between tests)
func (r *RepositoryStub) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items = make(map[uuid.UUID]Task)
}
