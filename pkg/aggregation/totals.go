package aggregation

import "github.com/shopspring/decimal"

type Totals struct {
	TotalBudget    decimal.Decimal
	TotalSpent     decimal.Decimal
	TotalRemaining decimal.Decimal // negative when the month is over budget
	// OverallPercentage is 0 when no budget is set.
	OverallPercentage decimal.Decimal
}

func ComputeTotals(budgets []Budget) Totals {
	totalBudget := decimal.Zero
	totalSpent := decimal.Zero
	for _, b := range budgets {
		totalBudget = totalBudget.Add(b.MonthlyLimit)
		totalSpent = totalSpent.Add(b.Spent)
	}
	return Totals{
		TotalBudget:       totalBudget,
		TotalSpent:        totalSpent,
		TotalRemaining:    totalBudget.Sub(totalSpent),
		OverallPercentage: percentOf(totalSpent, totalBudget),
	}
}

var overallWarningThreshold = decimal.NewFromInt(90)

// OverallStatus is the headline status of a month: over once the whole budget is used up,
// warning from 90 percent on.
func OverallStatus(t Totals) Status {
	switch {
	case reaches(t.TotalSpent, t.TotalBudget, hundred):
		return StatusOver
	case reaches(t.TotalSpent, t.TotalBudget, overallWarningThreshold):
		return StatusWarning
	default:
		return StatusOk
	}
}
