package expense

import (
	"context"
	"testing"
	"time"

	"github.com/klokku/clarity/internal/utils"
	"github.com/klokku/clarity/pkg/period"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2024, 3, 20, 9, 30, 0, 0, time.UTC)

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

func seedExpenses() []Expense {
	return []Expense{
		{Id: 1, CategoryId: 1, Amount: decimal.NewFromInt(40), Date: day(2024, 3, 2), Note: "groceries"},
		{Id: 2, CategoryId: 2, Amount: decimal.NewFromInt(15), Date: day(2024, 3, 10), Note: "bus pass"},
		{Id: 5, CategoryId: 1, Amount: decimal.NewFromInt(22), Date: day(2024, 2, 28), Note: "dinner"},
		{Id: 3, CategoryId: 1, Amount: decimal.NewFromInt(8), Date: day(2024, 3, 10), Note: "coffee"},
	}
}

func ids(expenses []Expense) []int {
	result := make([]int, 0, len(expenses))
	for _, e := range expenses {
		result = append(result, e.Id)
	}
	return result
}

func newRepository(seed []Expense) *MemoryRepository {
	return NewMemoryRepository(seed, utils.NewFixedClock(now), 0)
}

func TestMemoryRepository_List(t *testing.T) {
	ctx := context.Background()

	t.Run("should order by date descending keeping insertion order on ties", func(t *testing.T) {
		repo := newRepository(seedExpenses())

		expenses, err := repo.List(ctx)

		require.NoError(t, err)
		assert.Equal(t, []int{2, 3, 1, 5}, ids(expenses))
	})

	t.Run("should filter by month", func(t *testing.T) {
		repo := newRepository(seedExpenses())

		march, err := repo.ListForMonth(ctx, period.NewMonthKey(2024, time.March))
		require.NoError(t, err)
		february, err := repo.ListForMonth(ctx, period.NewMonthKey(2024, time.February))
		require.NoError(t, err)
		january, err := repo.ListForMonth(ctx, period.NewMonthKey(2024, time.January))
		require.NoError(t, err)

		assert.Equal(t, []int{2, 3, 1}, ids(march))
		assert.Equal(t, []int{5}, ids(february))
		assert.NotNil(t, january)
		assert.Empty(t, january)
	})

	t.Run("should not share state with callers", func(t *testing.T) {
		repo := newRepository(seedExpenses())
		expenses, _ := repo.List(ctx)

		expenses[0].Note = "changed"

		again, _ := repo.Get(ctx, expenses[0].Id)
		assert.Equal(t, "bus pass", again.Note)
	})

	t.Run("should honour a cancelled context", func(t *testing.T) {
		repo := NewMemoryRepository(seedExpenses(), utils.NewFixedClock(now), utils.Latency(time.Second))
		cancelled, cancel := context.WithCancel(ctx)
		cancel()

		_, err := repo.List(cancelled)

		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestMemoryRepository_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("should assign the highest id plus one", func(t *testing.T) {
		repo := newRepository(seedExpenses())

		created, err := repo.Create(ctx, NewExpense{CategoryId: 2, Amount: decimal.NewFromInt(3), Date: day(2024, 3, 11)})

		require.NoError(t, err)
		assert.Equal(t, 6, created.Id)
		assert.Equal(t, now, created.CreatedAt)
	})

	t.Run("should start at one when empty", func(t *testing.T) {
		repo := newRepository(nil)

		created, err := repo.Create(ctx, NewExpense{CategoryId: 1, Amount: decimal.NewFromInt(3), Date: day(2024, 3, 11)})

		require.NoError(t, err)
		assert.Equal(t, 1, created.Id)
	})

	t.Run("should reuse the id after the highest one is deleted", func(t *testing.T) {
		repo := newRepository(seedExpenses())
		require.NoError(t, repo.Delete(ctx, 5))

		created, err := repo.Create(ctx, NewExpense{CategoryId: 1, Amount: decimal.NewFromInt(1), Date: day(2024, 3, 1)})

		require.NoError(t, err)
		assert.Equal(t, 4, created.Id)
	})
}

func TestMemoryRepository_UpdateAndDelete(t *testing.T) {
	ctx := context.Background()

	t.Run("should keep id and creation time", func(t *testing.T) {
		repo := newRepository(seedExpenses())
		before, _ := repo.Get(ctx, 2)
		amount := decimal.NewFromInt(99)

		updated, err := repo.Update(ctx, 2, Patch{Amount: &amount})

		require.NoError(t, err)
		assert.Equal(t, 2, updated.Id)
		assert.Equal(t, before.CreatedAt, updated.CreatedAt)
		assert.True(t, amount.Equal(updated.Amount))
	})

	t.Run("should report missing expenses", func(t *testing.T) {
		repo := newRepository(seedExpenses())
		amount := decimal.NewFromInt(1)

		_, getErr := repo.Get(ctx, 42)
		_, updateErr := repo.Update(ctx, 42, Patch{Amount: &amount})
		deleteErr := repo.Delete(ctx, 42)

		assert.ErrorIs(t, getErr, ErrExpenseNotFound)
		assert.ErrorIs(t, updateErr, ErrExpenseNotFound)
		assert.ErrorIs(t, deleteErr, ErrExpenseNotFound)
	})

	t.Run("should remove the expense", func(t *testing.T) {
		repo := newRepository(seedExpenses())

		require.NoError(t, repo.Delete(ctx, 1))

		all, _ := repo.List(ctx)
		assert.Equal(t, []int{2, 3, 5}, ids(all))
	})
}
