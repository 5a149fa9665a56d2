package entries

import (
	"context"
	"slices"
	"sync"

	"github.com/google/uuid"
)

// Repository stores entries.
type Repository interface {
	List(ctx context.Context) ([]Entry, error)
	Create(ctx context.Context, content string) (Entry, error)
	// Delete removes the entry with id. Deleting an unknown id is not an error.
	Delete(ctx context.Context, id uuid.UUID) error
}

// MemoryRepository keeps entries in process memory, in insertion order.
type MemoryRepository struct {
	mu      sync.RWMutex
	entries []Entry
}

// NewMemoryRepository creates a repository holding one entry per seed.
func NewMemoryRepository(seed ...string) *MemoryRepository {
	r := &MemoryRepository{entries: make([]Entry, 0, len(seed))}
	for _, content := range seed {
		r.entries = append(r.entries, Entry{ID: uuid.New(), Content: content})
	}
	return r
}

// NewDemoRepository creates a repository seeded with the two demo entries.
func NewDemoRepository() *MemoryRepository {
	return NewMemoryRepository("content...", "more content...")
}

func (r *MemoryRepository) List(ctx context.Context) ([]Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.entries), nil
}

func (r *MemoryRepository) Create(ctx context.Context, content string) (Entry, error) {
	if err := ctx.Err(); err != nil {
		return Entry{}, err
	}

	e := Entry{ID: uuid.New(), Content: content}

	r.mu.Lock()
	r.entries = append(r.entries, e)
	r.mu.Unlock()

	return e, nil
}

func (r *MemoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	r.entries = slices.DeleteFunc(r.entries, func(e Entry) bool { return e.ID == id })
	r.mu.Unlock()

	return nil
}
