package category

import (
	"context"
	"os"
	"testing"

	"github.com/klokku/clarity/internal/test_utils"
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
	ctx := context.Background()
	for _, c := range seedCategories() {
		_, err := pg.Pool.Exec(ctx,
			`INSERT INTO category (id, name, color, icon, monthly_limit) VALUES ($1, $2, $3, $4, $5)`,
			c.Id, c.Name, c.Color, c.Icon, c.MonthlyLimit)
		require.NoError(t, err)
	}
	return ctx, NewPgRepository(pg.Pool)
}

func TestPgRepository_List(t *testing.T) {
	ctx, repo := setupPgRepository(t)

	categories, err := repo.List(ctx)

	require.NoError(t, err)
	require.Len(t, categories, 2)
	assert.Equal(t, "Food", categories[0].Name)
	assert.True(t, decimal.NewFromInt(300).Equal(categories[0].MonthlyLimit))
	assert.Equal(t, "Car", categories[1].Icon)
}

func TestPgRepository_Update(t *testing.T) {
	t.Run("should change only the given fields", func(t *testing.T) {
		ctx, repo := setupPgRepository(t)
		limit := decimal.RequireFromString("412.50")

		updated, err := repo.Update(ctx, 1, Patch{MonthlyLimit: &limit})

		require.NoError(t, err)
		assert.True(t, limit.Equal(updated.MonthlyLimit))
		assert.Equal(t, "Food", updated.Name)
		stored, err := repo.Get(ctx, 1)
		require.NoError(t, err)
		assert.True(t, limit.Equal(stored.MonthlyLimit))
	})

	t.Run("should report unknown categories", func(t *testing.T) {
		ctx, repo := setupPgRepository(t)
		name := "Travel"

		_, updateErr := repo.Update(ctx, 99, Patch{Name: &name})
		_, getErr := repo.Get(ctx, 99)

		assert.ErrorIs(t, updateErr, ErrCategoryNotFound)
		assert.ErrorIs(t, getErr, ErrCategoryNotFound)
	})
}
