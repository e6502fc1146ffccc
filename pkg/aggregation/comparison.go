package aggregation

import "github.com/shopspring/decimal"

// CategorySpend is the spend of one category in some month.
type CategorySpend struct {
	CategoryId int
	Spent      decimal.Decimal
}

func CategorySpendOf(budgets []Budget) []CategorySpend {
	spend := make([]CategorySpend, 0, len(budgets))
	for _, b := range budgets {
		spend = append(spend, CategorySpend{CategoryId: b.Id, Spent: b.Spent})
	}
	return spend
}

type ComparisonPoint struct {
	CategoryId int
	Name       string
	Color      string
	Current    decimal.Decimal
	Previous   decimal.Decimal
	Change     decimal.Decimal
}

type ComparisonSeries struct {
	Points []ComparisonPoint
}

// CompareMonths pairs the current budgets with the previous month spend of the same category.
// A category missing from previous counts as no spending.
func CompareMonths(current []Budget, previous []CategorySpend) ComparisonSeries {
	previousById := make(map[int]decimal.Decimal, len(previous))
	for _, p := range previous {
		previousById[p.CategoryId] = previousById[p.CategoryId].Add(p.Spent)
	}

	points := make([]ComparisonPoint, 0, len(current))
	for _, b := range current {
		prev := previousById[b.Id]
		points = append(points, ComparisonPoint{
			CategoryId: b.Id,
			Name:       b.Name,
			Color:      b.Color,
			Current:    b.Spent,
			Previous:   prev,
			Change:     b.Spent.Sub(prev),
		})
	}
	return ComparisonSeries{Points: points}
}

// Slice is one share of a distribution chart.
type Slice struct {
	Label string
	Value decimal.Decimal
	Color string
}

// DistributionSlices lists the categories that have any spend. The result may be empty.
func DistributionSlices(budgets []Budget) []Slice {
	result := make([]Slice, 0, len(budgets))
	for _, b := range budgets {
		if !b.Spent.IsPositive() {
			continue
		}
		result = append(result, Slice{Label: b.Name, Value: b.Spent, Color: b.Color})
	}
	return result
}
