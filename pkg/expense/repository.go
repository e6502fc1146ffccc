package expense

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"sync"

	"github.com/klokku/clarity/internal/apperr"
	"github.com/klokku/clarity/internal/utils"
	"github.com/klokku/clarity/pkg/period"
)

var ErrExpenseNotFound = fmt.Errorf("expense %w", apperr.ErrNotFound)

type Repository interface {
	// List returns every expense, most recent date first.
	List(ctx context.Context) ([]Expense, error)
	// ListForMonth returns the expenses dated in month, most recent date first. Expenses on the
	// same day keep their insertion order.
	ListForMonth(ctx context.Context, month period.MonthKey) ([]Expense, error)
	Get(ctx context.Context, id int) (Expense, error)
	// Create assigns the id (highest existing id + 1) and the creation time.
	Create(ctx context.Context, data NewExpense) (Expense, error)
	Update(ctx context.Context, id int, patch Patch) (Expense, error)
	Delete(ctx context.Context, id int) error
}

// MemoryRepository keeps expenses in insertion order in process memory.
type MemoryRepository struct {
	mu       sync.RWMutex
	expenses []Expense
	clock    utils.Clock
	latency  utils.Latency
}

func NewMemoryRepository(seed []Expense, clock utils.Clock, latency utils.Latency) *MemoryRepository {
	return &MemoryRepository{expenses: slices.Clone(seed), clock: clock, latency: latency}
}

func (r *MemoryRepository) List(ctx context.Context) ([]Expense, error) {
	if err := r.latency.Wait(ctx); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return newestFirst(slices.Clone(r.expenses)), nil
}

func (r *MemoryRepository) ListForMonth(ctx context.Context, month period.MonthKey) ([]Expense, error) {
	if err := r.latency.Wait(ctx); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	filtered := make([]Expense, 0)
	for _, e := range r.expenses {
		if month.Contains(e.Date) {
			filtered = append(filtered, e)
		}
	}
	return newestFirst(filtered), nil
}

func (r *MemoryRepository) Get(ctx context.Context, id int) (Expense, error) {
	if err := r.latency.Wait(ctx); err != nil {
		return Expense{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	idx := r.indexOf(id)
	if idx == -1 {
		return Expense{}, fmt.Errorf("%w: %d", ErrExpenseNotFound, id)
	}
	return r.expenses[idx], nil
}

func (r *MemoryRepository) Create(ctx context.Context, data NewExpense) (Expense, error) {
	if err := r.latency.Wait(ctx); err != nil {
		return Expense{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	maxId := 0
	for _, e := range r.expenses {
		maxId = max(maxId, e.Id)
	}
	created := Expense{
		Id:         maxId + 1,
		CategoryId: data.CategoryId,
		Amount:     data.Amount,
		Date:       data.Date,
		Note:       data.Note,
		CreatedAt:  r.clock.Now(),
	}
	r.expenses = append(r.expenses, created)
	return created, nil
}

func (r *MemoryRepository) Update(ctx context.Context, id int, patch Patch) (Expense, error) {
	if err := r.latency.Wait(ctx); err != nil {
		return Expense{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	idx := r.indexOf(id)
	if idx == -1 {
		return Expense{}, fmt.Errorf("%w: %d", ErrExpenseNotFound, id)
	}
	r.expenses[idx] = patch.Apply(r.expenses[idx])
	return r.expenses[idx], nil
}

func (r *MemoryRepository) Delete(ctx context.Context, id int) error {
	if err := r.latency.Wait(ctx); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	idx := r.indexOf(id)
	if idx == -1 {
		return fmt.Errorf("%w: %d", ErrExpenseNotFound, id)
	}
	r.expenses = slices.Delete(r.expenses, idx, idx+1)
	return nil
}

func (r *MemoryRepository) indexOf(id int) int {
	return slices.IndexFunc(r.expenses, func(e Expense) bool { return e.Id == id })
}

func newestFirst(expenses []Expense) []Expense {
	sort.SliceStable(expenses, func(i, j int) bool {
		return expenses[i].Date.After(expenses[j].Date)
	})
	return expenses
}
