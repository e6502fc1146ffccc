package dashboard

import (
	"bytes"
	"encoding/csv"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

type Renderer interface {
	Render(summary Summary) (string, error)
}

type CsvRenderer struct{}

func NewCsvRenderer() *CsvRenderer {
	return &CsvRenderer{}
}

// Render writes one row per budget and a closing total row.
func (r *CsvRenderer) Render(summary Summary) (string, error) {
	data := make([][]string, 0, len(summary.Budgets)+2)
	data = append(data, []string{"Category", "Limit", "Spent", "Remaining", "Percentage", "Status"})
	for _, b := range summary.Budgets {
		data = append(data, []string{
			b.Name,
			amount(b.MonthlyLimit),
			amount(b.Spent),
			amount(b.Remaining),
			percentage(b.Percentage),
			string(b.Status),
		})
	}
	data = append(data, []string{
		"Total",
		amount(summary.Totals.TotalBudget),
		amount(summary.Totals.TotalSpent),
		amount(summary.Totals.TotalRemaining),
		percentage(summary.Totals.OverallPercentage),
		string(summary.OverallStatus),
	})

	var b bytes.Buffer
	writer := csv.NewWriter(&b)
	if err := writer.WriteAll(data); err != nil {
		log.Errorf("Error writing to csv: %v", err)
		return "", err
	}
	return b.String(), nil
}

func amount(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func percentage(d decimal.Decimal) string {
	return d.StringFixed(1)
}
