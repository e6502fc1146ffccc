package dashboard

import (
	"context"

	"github.com/klokku/clarity/pkg/category"
	"github.com/klokku/clarity/pkg/expense"
	"github.com/klokku/clarity/pkg/period"
)

type categoryReaderStub struct {
	categories []category.Category
	err        error
}

func (s *categoryReaderStub) ListCategories(_ context.Context) ([]category.Category, error) {
	return s.categories, s.err
}

type expenseReaderStub struct {
	expenses []expense.Expense
	err      error
	queried  []period.MonthKey
}

func (s *expenseReaderStub) ListExpensesForMonth(_ context.Context, month period.MonthKey) ([]expense.Expense, error) {
	s.queried = append(s.queried, month)
	if s.err != nil {
		return nil, s.err
	}
	result := make([]expense.Expense, 0)
	for _, e := range s.expenses {
		if month.Contains(e.Date) {
			result = append(result, e)
		}
	}
	return result, nil
}
