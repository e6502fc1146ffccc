package category

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/klokku/clarity/internal/apperr"
	"github.com/klokku/clarity/internal/utils"
)

var ErrCategoryNotFound = fmt.Errorf("category %w", apperr.ErrNotFound)

type Repository interface {
	List(ctx context.Context) ([]Category, error)
	Get(ctx context.Context, id int) (Category, error)
	Update(ctx context.Context, id int, patch Patch) (Category, error)
}

// MemoryRepository keeps categories in process memory. Every read hands out copies.
type MemoryRepository struct {
	mu         sync.RWMutex
	categories []Category
	latency    utils.Latency
}

func NewMemoryRepository(seed []Category, latency utils.Latency) *MemoryRepository {
	return &MemoryRepository{categories: slices.Clone(seed), latency: latency}
}

func (r *MemoryRepository) List(ctx context.Context) ([]Category, error) {
	if err := r.latency.Wait(ctx); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.categories), nil
}

func (r *MemoryRepository) Get(ctx context.Context, id int) (Category, error) {
	if err := r.latency.Wait(ctx); err != nil {
		return Category{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	idx := r.indexOf(id)
	if idx == -1 {
		return Category{}, fmt.Errorf("%w: %d", ErrCategoryNotFound, id)
	}
	return r.categories[idx], nil
}

func (r *MemoryRepository) Update(ctx context.Context, id int, patch Patch) (Category, error) {
	if err := r.latency.Wait(ctx); err != nil {
		return Category{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	idx := r.indexOf(id)
	if idx == -1 {
		return Category{}, fmt.Errorf("%w: %d", ErrCategoryNotFound, id)
	}
	r.categories[idx] = patch.Apply(r.categories[idx])
	return r.categories[idx], nil
}

func (r *MemoryRepository) indexOf(id int) int {
	return slices.IndexFunc(r.categories, func(c Category) bool { return c.Id == id })
}
