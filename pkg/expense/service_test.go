package expense

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/klokku/clarity/internal/apperr"
	"github.com/klokku/clarity/internal/event_bus"
	"github.com/klokku/clarity/pkg/category"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type categoryReaderStub struct {
	known map[int]bool
	err   error
}

func (s categoryReaderStub) GetCategory(_ context.Context, id int) (category.Category, error) {
	if s.err != nil {
		return category.Category{}, s.err
	}
	if !s.known[id] {
		return category.Category{}, fmt.Errorf("%w: %d", category.ErrCategoryNotFound, id)
	}
	return category.Category{Id: id}, nil
}

type recorded struct {
	types []event_bus.EventType
	data  []any
}

func setup(t *testing.T) (*ServiceImpl, *recorded) {
	t.Helper()
	bus := event_bus.NewEventBus()
	events := &recorded{}
	record := func(e event_bus.Event) error {
		events.types = append(events.types, e.Type)
		events.data = append(events.data, e.Data)
		return nil
	}
	bus.Subscribe(event_bus.ExpenseCreatedType, record)
	bus.Subscribe(event_bus.ExpenseUpdatedType, record)
	bus.Subscribe(event_bus.ExpenseDeletedType, record)
	categories := categoryReaderStub{known: map[int]bool{1: true, 2: true}}
	return NewService(newRepository(seedExpenses()), categories, bus), events
}

func TestServiceImpl_CreateExpense(t *testing.T) {
	ctx := context.Background()

	t.Run("should store the expense and publish an event", func(t *testing.T) {
		// given
		service, events := setup(t)
		data := NewExpense{CategoryId: 2, Amount: decimal.RequireFromString("4.20"), Date: day(2024, 3, 12), Note: "ticket"}

		// when
		created, err := service.CreateExpense(ctx, data)

		// then
		require.NoError(t, err)
		assert.Equal(t, 6, created.Id)
		assert.Equal(t, []event_bus.EventType{event_bus.ExpenseCreatedType}, events.types)
		payload := events.data[0].(event_bus.ExpenseCreated)
		assert.Equal(t, 6, payload.Id)
		assert.Equal(t, day(2024, 3, 12), payload.Date)
	})

	t.Run("should reject an unknown category as a validation problem", func(t *testing.T) {
		service, events := setup(t)

		_, err := service.CreateExpense(ctx, NewExpense{CategoryId: 9, Amount: decimal.NewFromInt(1), Date: day(2024, 3, 1)})

		require.ErrorIs(t, err, apperr.ErrValidation)
		var verr *apperr.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Contains(t, verr.Fields, "categoryId")
		assert.Empty(t, events.types)
	})

	t.Run("should reject a non positive amount", func(t *testing.T) {
		service, _ := setup(t)

		_, err := service.CreateExpense(ctx, NewExpense{CategoryId: 1, Amount: decimal.Zero, Date: day(2024, 3, 1)})

		assert.ErrorIs(t, err, apperr.ErrValidation)
	})

	t.Run("should pass storage failures through", func(t *testing.T) {
		service, _ := setup(t)
		service.categories = categoryReaderStub{err: apperr.Unavailable("get category", errors.New("down"))}

		_, err := service.CreateExpense(ctx, NewExpense{CategoryId: 1, Amount: decimal.NewFromInt(1), Date: day(2024, 3, 1)})

		assert.ErrorIs(t, err, apperr.ErrUnavailable)
	})
}

func TestServiceImpl_UpdateExpense(t *testing.T) {
	ctx := context.Background()

	t.Run("should publish the previous date", func(t *testing.T) {
		service, events := setup(t)
		moved := day(2024, 4, 1)

		updated, err := service.UpdateExpense(ctx, 5, Patch{Date: &moved})

		require.NoError(t, err)
		assert.Equal(t, moved, updated.Date)
		payload := events.data[0].(event_bus.ExpenseUpdated)
		assert.Equal(t, day(2024, 2, 28), payload.PreviousDate)
		assert.Equal(t, moved, payload.Date)
	})

	t.Run("should validate a new category", func(t *testing.T) {
		service, _ := setup(t)
		categoryId := 7

		_, err := service.UpdateExpense(ctx, 1, Patch{CategoryId: &categoryId})

		assert.ErrorIs(t, err, apperr.ErrValidation)
	})

	t.Run("should reject an empty patch", func(t *testing.T) {
		service, _ := setup(t)

		_, err := service.UpdateExpense(ctx, 1, Patch{})

		assert.ErrorIs(t, err, apperr.ErrValidation)
	})

	t.Run("should report a missing expense", func(t *testing.T) {
		service, events := setup(t)
		note := "x"

		_, err := service.UpdateExpense(ctx, 100, Patch{Note: &note})

		assert.ErrorIs(t, err, apperr.ErrNotFound)
		assert.Empty(t, events.types)
	})
}

func TestServiceImpl_DeleteExpense(t *testing.T) {
	ctx := context.Background()
	service, events := setup(t)

	require.NoError(t, service.DeleteExpense(ctx, 3))
	err := service.DeleteExpense(ctx, 3)

	assert.ErrorIs(t, err, ErrExpenseNotFound)
	assert.Equal(t, []event_bus.EventType{event_bus.ExpenseDeletedType}, events.types)
	assert.Equal(t, event_bus.ExpenseDeleted{Id: 3}, events.data[0])
}

// cancellingRepository cancels the request right after a write is stored, like a client
// disconnecting mid-request.
type cancellingRepository struct {
	Repository
	cancel context.CancelFunc
}

func (r cancellingRepository) Create(ctx context.Context, data NewExpense) (Expense, error) {
	defer r.cancel()
	return r.Repository.Create(ctx, data)
}

func (r cancellingRepository) Delete(ctx context.Context, id int) error {
	defer r.cancel()
	return r.Repository.Delete(ctx, id)
}

func TestServiceImpl_PublishesAfterCancellation(t *testing.T) {
	setupCancelling := func(t *testing.T) (*ServiceImpl, *recorded, context.Context) {
		t.Helper()
		ctx, cancel := context.WithCancel(context.Background())
		t.Cleanup(cancel)
		bus := event_bus.NewEventBus()
		events := &recorded{}
		record := func(e event_bus.Event) error {
			events.types = append(events.types, e.Type)
			return nil
		}
		bus.Subscribe(event_bus.ExpenseCreatedType, record)
		bus.Subscribe(event_bus.ExpenseDeletedType, record)
		repo := cancellingRepository{Repository: newRepository(seedExpenses()), cancel: cancel}
		categories := categoryReaderStub{known: map[int]bool{1: true}}
		return NewService(repo, categories, bus), events, ctx
	}

	t.Run("should publish a stored expense when the request is cancelled", func(t *testing.T) {
		// given
		service, events, ctx := setupCancelling(t)
		data := NewExpense{CategoryId: 1, Amount: decimal.NewFromInt(5), Date: day(2024, 3, 12)}

		// when
		_, err := service.CreateExpense(ctx, data)

		// then
		require.NoError(t, err)
		require.Error(t, ctx.Err())
		assert.Equal(t, []event_bus.EventType{event_bus.ExpenseCreatedType}, events.types)
	})

	t.Run("should publish a deletion when the request is cancelled", func(t *testing.T) {
		service, events, ctx := setupCancelling(t)

		err := service.DeleteExpense(ctx, 1)

		require.NoError(t, err)
		require.Error(t, ctx.Err())
		assert.Equal(t, []event_bus.EventType{event_bus.ExpenseDeletedType}, events.types)
	})
}
