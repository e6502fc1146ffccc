// Package aggregation derives budget progress, totals and month comparisons from snapshots of
// categories and expenses. It performs no I/O and never modifies its inputs.
package aggregation

import (
	"github.com/klokku/clarity/pkg/category"
	"github.com/klokku/clarity/pkg/expense"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

type Status string

const (
	StatusOk      Status = "ok"
	StatusWarning Status = "warning"
	StatusOver    Status = "over"
)

// Status thresholds in percent of the limit. Both bounds are inclusive on the upper side:
// exactly 70 is a warning, exactly 90 is over.
var (
	warningThreshold = decimal.NewFromInt(70)
	overThreshold    = decimal.NewFromInt(90)
)

// Budget is a category together with what was spent in it during one month.
type Budget struct {
	category.Category
	Spent decimal.Decimal
}

// Percentage is spent relative to the monthly limit. A category without a limit reports 0.
func (b Budget) Percentage() decimal.Decimal {
	return percentOf(b.Spent, b.MonthlyLimit)
}

// Remaining never goes below zero.
func (b Budget) Remaining() decimal.Decimal {
	return decimal.Max(decimal.Zero, b.MonthlyLimit.Sub(b.Spent))
}

// ComputeBudgets attaches the spend of every category, keeping the order of categories.
// Expenses whose category is not among categories are left out.
func ComputeBudgets(categories []category.Category, expenses []expense.Expense) []Budget {
	spentByCategory := make(map[int]decimal.Decimal, len(categories))
	for _, e := range expenses {
		spentByCategory[e.CategoryId] = spentByCategory[e.CategoryId].Add(e.Amount)
	}

	budgets := make([]Budget, 0, len(categories))
	for _, c := range categories {
		budgets = append(budgets, Budget{Category: c, Spent: spentByCategory[c.Id]})
	}
	return budgets
}

// BudgetStatus compares spend to the limit exactly; the rounded Percentage is for display only.
func BudgetStatus(b Budget) Status {
	switch {
	case reaches(b.Spent, b.MonthlyLimit, overThreshold):
		return StatusOver
	case reaches(b.Spent, b.MonthlyLimit, warningThreshold):
		return StatusWarning
	default:
		return StatusOk
	}
}

// reaches reports part >= percent% of whole without dividing. A whole of zero or less is never reached.
func reaches(part, whole, percent decimal.Decimal) bool {
	if !whole.IsPositive() {
		return false
	}
	return part.Mul(hundred).GreaterThanOrEqual(whole.Mul(percent))
}

func percentOf(part, whole decimal.Decimal) decimal.Decimal {
	if !whole.IsPositive() {
		return decimal.Zero
	}
	return part.Div(whole).Mul(hundred)
}
