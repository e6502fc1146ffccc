package dashboard

import (
	"github.com/klokku/clarity/pkg/aggregation"
	"github.com/klokku/clarity/pkg/expense"
	"github.com/klokku/clarity/pkg/period"
	"github.com/shopspring/decimal"
)

type BudgetSummary struct {
	aggregation.Budget
	Percentage decimal.Decimal
	Remaining  decimal.Decimal
	Status     aggregation.Status
}

type Summary struct {
	Month         period.MonthKey
	PreviousMonth period.MonthKey
	Budgets       []BudgetSummary
	Totals        aggregation.Totals
	OverallStatus aggregation.Status
	Distribution  []aggregation.Slice
	Comparison    aggregation.ComparisonSeries
	// Expenses of Month, most recent first.
	Expenses []expense.Expense
}

func summarize(month period.MonthKey, budgets []aggregation.Budget, previous []aggregation.Budget, expenses []expense.Expense) Summary {
	budgetSummaries := make([]BudgetSummary, 0, len(budgets))
	for _, b := range budgets {
		budgetSummaries = append(budgetSummaries, BudgetSummary{
			Budget:     b,
			Percentage: b.Percentage(),
			Remaining:  b.Remaining(),
			Status:     aggregation.BudgetStatus(b),
		})
	}
	totals := aggregation.ComputeTotals(budgets)
	return Summary{
		Month:         month,
		PreviousMonth: month.Previous(),
		Budgets:       budgetSummaries,
		Totals:        totals,
		OverallStatus: aggregation.OverallStatus(totals),
		Distribution:  aggregation.DistributionSlices(budgets),
		Comparison:    aggregation.CompareMonths(budgets, aggregation.CategorySpendOf(previous)),
		Expenses:      expenses,
	}
}
