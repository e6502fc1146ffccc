package expense

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/klokku/clarity/internal/test_utils"
	"github.com/klokku/clarity/internal/utils"
	"github.com/klokku/clarity/pkg/period"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pg *test_utils.PostgresDB

func TestMain(m *testing.M) {
	os.Exit(test_utils.RunWithPostgres(m, func(db *test_utils.PostgresDB) { pg = db }))
}

func setupPgRepository(t *testing.T) (context.Context, *PgRepository) {
	t.Helper()
	test_utils.RequireDB(t, pg)
	repo := NewPgRepository(pg.Pool, utils.NewFixedClock(now))
	ctx := context.Background()
	for _, e := range seedExpenses() {
		_, err := pg.Pool.Exec(ctx,
			`INSERT INTO expense (id, category_id, amount, spent_on, note, created_at) VALUES ($1, $2, $3, $4, $5, $6)`,
			e.Id, e.CategoryId, e.Amount, e.Date, e.Note, now)
		require.NoError(t, err)
	}
	return ctx, repo
}

func TestPgRepository_List(t *testing.T) {
	ctx, repo := setupPgRepository(t)

	all, err := repo.List(ctx)
	require.NoError(t, err)
	march, err := repo.ListForMonth(ctx, period.NewMonthKey(2024, time.March))
	require.NoError(t, err)

	assert.Equal(t, []int{2, 3, 1, 5}, ids(all))
	assert.Equal(t, []int{2, 3, 1}, ids(march))
	assert.Equal(t, day(2024, 3, 10), march[0].Date)
	assert.True(t, decimal.NewFromInt(15).Equal(march[0].Amount))
}

func TestPgRepository_Create(t *testing.T) {
	ctx, repo := setupPgRepository(t)

	created, err := repo.Create(ctx, NewExpense{
		CategoryId: 2,
		Amount:     decimal.RequireFromString("7.35"),
		Date:       day(2024, 3, 30),
		Note:       "parking",
	})

	require.NoError(t, err)
	assert.Equal(t, 6, created.Id)
	assert.True(t, now.Equal(created.CreatedAt))
	stored, err := repo.Get(ctx, 6)
	require.NoError(t, err)
	assert.Equal(t, "parking", stored.Note)
	assert.Equal(t, day(2024, 3, 30), stored.Date)
}

func TestPgRepository_UpdateAndDelete(t *testing.T) {
	ctx, repo := setupPgRepository(t)
	note := "oat milk"
	moved := day(2024, 4, 2)

	updated, err := repo.Update(ctx, 3, Patch{Note: &note, Date: &moved})
	require.NoError(t, err)
	assert.Equal(t, "oat milk", updated.Note)
	assert.Equal(t, moved, updated.Date)
	assert.True(t, decimal.NewFromInt(8).Equal(updated.Amount))

	require.NoError(t, repo.Delete(ctx, 3))
	assert.ErrorIs(t, repo.Delete(ctx, 3), ErrExpenseNotFound)
	_, err = repo.Update(ctx, 3, Patch{Note: &note})
	assert.ErrorIs(t, err, ErrExpenseNotFound)
}
