package expense

import (
	"context"
	"errors"
	"fmt"

	"github.com/klokku/clarity/internal/apperr"
	"github.com/klokku/clarity/internal/event_bus"
	"github.com/klokku/clarity/pkg/category"
	"github.com/klokku/clarity/pkg/period"
	log "github.com/sirupsen/logrus"
)

type Service interface {
	ListExpenses(ctx context.Context) ([]Expense, error)
	ListExpensesForMonth(ctx context.Context, month period.MonthKey) ([]Expense, error)
	GetExpense(ctx context.Context, id int) (Expense, error)
	CreateExpense(ctx context.Context, data NewExpense) (Expense, error)
	UpdateExpense(ctx context.Context, id int, patch Patch) (Expense, error)
	DeleteExpense(ctx context.Context, id int) error
}

// CategoryReader resolves the category an expense is booked against.
type CategoryReader interface {
	GetCategory(ctx context.Context, id int) (category.Category, error)
}

type ServiceImpl struct {
	repo       Repository
	categories CategoryReader
	eventBus   *event_bus.EventBus
}

func NewService(repo Repository, categories CategoryReader, eventBus *event_bus.EventBus) *ServiceImpl {
	return &ServiceImpl{repo: repo, categories: categories, eventBus: eventBus}
}

func (s *ServiceImpl) ListExpenses(ctx context.Context) ([]Expense, error) {
	return s.repo.List(ctx)
}

func (s *ServiceImpl) ListExpensesForMonth(ctx context.Context, month period.MonthKey) ([]Expense, error) {
	return s.repo.ListForMonth(ctx, month)
}

func (s *ServiceImpl) GetExpense(ctx context.Context, id int) (Expense, error) {
	return s.repo.Get(ctx, id)
}

func (s *ServiceImpl) CreateExpense(ctx context.Context, data NewExpense) (Expense, error) {
	if err := data.Validate(); err != nil {
		return Expense{}, err
	}
	if err := s.requireCategory(ctx, data.CategoryId); err != nil {
		return Expense{}, err
	}

	created, err := s.repo.Create(ctx, data.Normalize())
	if err != nil {
		return Expense{}, err
	}
	log.Debugf("expense %d created in category %d", created.Id, created.CategoryId)

	s.publish(ctx, event_bus.ExpenseCreatedType, event_bus.ExpenseCreated{
		Id:         created.Id,
		CategoryId: created.CategoryId,
		Amount:     created.Amount,
		Date:       created.Date,
	})
	return created, nil
}

func (s *ServiceImpl) UpdateExpense(ctx context.Context, id int, patch Patch) (Expense, error) {
	if patch.IsEmpty() {
		return Expense{}, apperr.Invalid("expense", "nothing to update")
	}
	if err := patch.Validate(); err != nil {
		return Expense{}, err
	}
	if patch.CategoryId != nil {
		if err := s.requireCategory(ctx, *patch.CategoryId); err != nil {
			return Expense{}, err
		}
	}

	current, err := s.repo.Get(ctx, id)
	if err != nil {
		return Expense{}, err
	}
	updated, err := s.repo.Update(ctx, id, patch.Normalize())
	if err != nil {
		return Expense{}, err
	}

	s.publish(ctx, event_bus.ExpenseUpdatedType, event_bus.ExpenseUpdated{
		Id:           updated.Id,
		CategoryId:   updated.CategoryId,
		Amount:       updated.Amount,
		Date:         updated.Date,
		PreviousDate: current.Date,
	})
	return updated, nil
}

func (s *ServiceImpl) DeleteExpense(ctx context.Context, id int) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.publish(ctx, event_bus.ExpenseDeletedType, event_bus.ExpenseDeleted{Id: id})
	return nil
}

// requireCategory turns an unknown category into a validation error: the caller picked it.
func (s *ServiceImpl) requireCategory(ctx context.Context, categoryId int) error {
	_, err := s.categories.GetCategory(ctx, categoryId)
	if err == nil {
		return nil
	}
	if errors.Is(err, apperr.ErrNotFound) {
		return apperr.Invalid("categoryId", fmt.Sprintf("category %d does not exist", categoryId))
	}
	return err
}

// The change is stored before publishing, so the event outlives a cancelled request.
// Subscriber failures are only logged.
func (s *ServiceImpl) publish(ctx context.Context, eventType event_bus.EventType, data any) {
	if err := s.eventBus.Publish(event_bus.NewEvent(context.WithoutCancel(ctx), eventType, data)); err != nil {
		log.Errorf("failed to publish %s event: %v", eventType, err)
	}
}
