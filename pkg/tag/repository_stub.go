package tag

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
)

type RepositoryStub struct {
	mu    sync.RWMutex
	items map[uuid.UUID]Tag
	order []uuid.UUID
}

func NewRepositoryStub() *RepositoryStub {
	return &RepositoryStub{
		items: make(map[uuid.UUID]Tag),
	}
}

func (r *RepositoryStub) GetTags(ctx context.Context) ([]Tag, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]Tag, 0, len(r.items))
	for _, id := range r.order {
		if tag, ok := r.items[id]; ok {
			result = append(result, tag)
		}
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Name < result[j].Name
	})
	return result, nil
}

func (r *RepositoryStub) GetTag(ctx context.Context, id uuid.UUID) (Tag, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tag, ok := r.items[id]
	if !ok {
		return Tag{}, ErrTagNotFound
	}
	return tag, nil
}

func (r *RepositoryStub) StoreTag(ctx context.Context, tag Tag) (Tag, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	tag.Id = uuid.New()
	r.items[tag.Id] = tag
	r.order = append(r.order, tag.Id)
	return tag, nil
}

func (r *RepositoryStub) UpdateTag(ctx context.Context, tag Tag) (Tag, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[tag.Id]; !ok {
		return Tag{}, ErrTagNotFound
	}
	r.items[tag.Id] = tag
	return tag, nil
}

func (r *RepositoryStub) DeleteTag(ctx context.Context, id uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return false, nil
	}
	delete(r.items, id)
	return true, nil
}

// Reset clears all stored tags (useful between tests)
func (r *RepositoryStub) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items = make(map[uuid.UUID]Tag)
	r.order = nil
}
