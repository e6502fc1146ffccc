package dashboard

import (
	"context"

	"github.com/klokku/clarity/pkg/aggregation"
	"github.com/klokku/clarity/pkg/category"
	"github.com/klokku/clarity/pkg/expense"
	"github.com/klokku/clarity/pkg/period"
	log "github.com/sirupsen/logrus"
)

type Service interface {
	GetDashboard(ctx context.Context, month period.MonthKey) (Summary, error)
}

type CategoryReader interface {
	ListCategories(ctx context.Context) ([]category.Category, error)
}

type ExpenseReader interface {
	ListExpensesForMonth(ctx context.Context, month period.MonthKey) ([]expense.Expense, error)
}

type ServiceImpl struct {
	categories CategoryReader
	expenses   ExpenseReader
}

func NewService(categories CategoryReader, expenses ExpenseReader) *ServiceImpl {
	return &ServiceImpl{categories: categories, expenses: expenses}
}

// GetDashboard recomputes every figure of month from the current ledger contents.
func (s *ServiceImpl) GetDashboard(ctx context.Context, month period.MonthKey) (Summary, error) {
	categories, err := s.categories.ListCategories(ctx)
	if err != nil {
		return Summary{}, err
	}
	expenses, err := s.expenses.ListExpensesForMonth(ctx, month)
	if err != nil {
		return Summary{}, err
	}
	previousExpenses, err := s.expenses.ListExpensesForMonth(ctx, month.Previous())
	if err != nil {
		return Summary{}, err
	}
	log.Tracef("Dashboard %s: %d categories, %d expenses, %d in previous month",
		month, len(categories), len(expenses), len(previousExpenses))

	budgets := aggregation.ComputeBudgets(categories, expenses)
	previous := aggregation.ComputeBudgets(categories, previousExpenses)
	return summarize(month, budgets, previous, expenses), nil
}
