package expense

import (
	"strings"
	"testing"
	"time"

	"github.com/klokku/clarity/internal/apperr"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewExpense_Validate(t *testing.T) {
	valid := NewExpense{
		CategoryId: 1,
		Amount:     decimal.RequireFromString("12.50"),
		Date:       time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC),
		Note:       "lunch",
	}

	t.Run("should accept a complete expense", func(t *testing.T) {
		assert.NoError(t, valid.Validate())
	})

	t.Run("should report every invalid field", func(t *testing.T) {
		err := NewExpense{Amount: decimal.Zero, Note: strings.Repeat("x", 101)}.Validate()

		require.ErrorIs(t, err, apperr.ErrValidation)
		var verr *apperr.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, map[string]string{
			"categoryId": "please select a category",
			"amount":     "please enter a valid amount",
			"date":       "please select a date",
			"note":       "must be at most 100 characters",
		}, verr.Fields)
	})

	t.Run("should reject a negative amount", func(t *testing.T) {
		e := valid
		e.Amount = decimal.NewFromInt(-3)
		assert.ErrorIs(t, e.Validate(), apperr.ErrValidation)
	})

	t.Run("should reject amounts that do not fit the stored precision", func(t *testing.T) {
		for _, amount := range []string{"0.001", "0.005", "12.345", "1000000000000"} {
			e := valid
			e.Amount = decimal.RequireFromString(amount)

			err := e.Validate()

			var verr *apperr.ValidationError
			require.ErrorAs(t, err, &verr, amount)
			assert.Contains(t, verr.Fields, "amount", amount)
		}
	})

	t.Run("should accept the largest storable amount", func(t *testing.T) {
		e := valid
		e.Amount = decimal.RequireFromString("999999999999.99")
		assert.NoError(t, e.Validate())
	})

	t.Run("should count note length in characters", func(t *testing.T) {
		e := valid
		e.Note = strings.Repeat("ż", 100)
		assert.NoError(t, e.Validate())
	})
}

func TestNewExpense_Normalize(t *testing.T) {
	warsaw := time.FixedZone("CET", 3600)
	e := NewExpense{Date: time.Date(2024, 3, 1, 0, 30, 0, 0, warsaw)}.Normalize()

	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), e.Date)
}

func TestPatch(t *testing.T) {
	original := Expense{
		Id:         4,
		CategoryId: 1,
		Amount:     decimal.NewFromInt(10),
		Date:       time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC),
		Note:       "bus",
		CreatedAt:  time.Date(2024, 3, 5, 8, 0, 0, 0, time.UTC),
	}

	t.Run("should merge only given fields", func(t *testing.T) {
		note := "train"
		amount := decimal.NewFromInt(25)

		patched := Patch{Amount: &amount, Note: &note}.Apply(original)

		assert.Equal(t, original.Id, patched.Id)
		assert.Equal(t, original.CategoryId, patched.CategoryId)
		assert.Equal(t, original.Date, patched.Date)
		assert.Equal(t, original.CreatedAt, patched.CreatedAt)
		assert.True(t, amount.Equal(patched.Amount))
		assert.Equal(t, "train", patched.Note)
	})

	t.Run("should be empty without fields", func(t *testing.T) {
		assert.True(t, Patch{}.IsEmpty())
	})

	t.Run("should reject invalid values", func(t *testing.T) {
		zero := decimal.Zero
		categoryId := 0
		var date time.Time

		err := Patch{Amount: &zero, CategoryId: &categoryId, Date: &date}.Validate()

		var verr *apperr.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Len(t, verr.Fields, 3)
	})

	t.Run("should reject a sub-cent amount", func(t *testing.T) {
		amount := decimal.RequireFromString("9.999")

		err := Patch{Amount: &amount}.Validate()

		var verr *apperr.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, map[string]string{"amount": "must have at most 2 decimal places"}, verr.Fields)
	})
}
