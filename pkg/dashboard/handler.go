package dashboard

import (
	"net/http"

	"github.com/klokku/clarity/internal/apperr"
	"github.com/klokku/clarity/internal/rest"
	"github.com/klokku/clarity/internal/utils"
	"github.com/klokku/clarity/pkg/category"
	"github.com/klokku/clarity/pkg/expense"
	"github.com/klokku/clarity/pkg/period"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

type BudgetDTO struct {
	category.CategoryDTO
	Spent      decimal.Decimal `json:"spent"`
	Percentage decimal.Decimal `json:"percentage"`
	Remaining  decimal.Decimal `json:"remaining"`
	Status     string          `json:"status"`
}

type TotalsDTO struct {
	TotalBudget       decimal.Decimal `json:"totalBudget"`
	TotalSpent        decimal.Decimal `json:"totalSpent"`
	TotalRemaining    decimal.Decimal `json:"totalRemaining"`
	OverallPercentage decimal.Decimal `json:"overallPercentage"`
}

type SliceDTO struct {
	Label string          `json:"label"`
	Value decimal.Decimal `json:"value"`
	Color string          `json:"color"`
}

type ComparisonPointDTO struct {
	CategoryId int             `json:"categoryId"`
	Name       string          `json:"name"`
	Color      string          `json:"color"`
	Current    decimal.Decimal `json:"current"`
	Previous   decimal.Decimal `json:"previous"`
	Change     decimal.Decimal `json:"change"`
}

type SummaryDTO struct {
	Month         string               `json:"month"`
	PreviousMonth string               `json:"previousMonth"`
	Budgets       []BudgetDTO          `json:"budgets"`
	Totals        TotalsDTO            `json:"totals"`
	OverallStatus string               `json:"overallStatus"`
	Distribution  []SliceDTO           `json:"distribution"`
	Comparison    []ComparisonPointDTO `json:"comparison"`
	Expenses      []expense.ExpenseDTO `json:"expenses"`
}

type Handler struct {
	service     Service
	csvRenderer Renderer
	clock       utils.Clock
}

func NewHandler(service Service, csvRenderer Renderer, clock utils.Clock) *Handler {
	return &Handler{service, csvRenderer, clock}
}

// GetDashboard godoc
// @Summary Budget progress, totals and comparison with the previous month
// @Tags Dashboard
// @Produce json
// @Produce text/csv
// @Param month query string false "Month in YYYY-MM format, defaults to the current month"
// @Success 200 {object} SummaryDTO
// @Failure 400 {object} rest.ErrorResponse
// @Router /api/dashboard [get]
func (handler *Handler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	month := period.MonthOf(handler.clock.Now())
	if monthParam := r.URL.Query().Get("month"); monthParam != "" {
		parsed, err := period.ParseMonthKey(monthParam)
		if err != nil {
			rest.WriteError(w, apperr.Invalid("month", err.Error()))
			return
		}
		month = parsed
	}
	log.Debugf("Getting dashboard for %s", month)

	summary, err := handler.service.GetDashboard(r.Context(), month)
	if err != nil {
		rest.WriteError(w, err)
		return
	}

	if r.Header.Get("Accept") == "text/csv" {
		csv, err := handler.csvRenderer.Render(summary)
		if err != nil {
			rest.WriteError(w, err)
			return
		}
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte(csv)); err != nil {
			log.Errorf("failed to write csv response: %v", err)
		}
		return
	}
	rest.WriteJSON(w, http.StatusOK, ToDTO(summary))
}

func ToDTO(summary Summary) SummaryDTO {
	budgets := make([]BudgetDTO, 0, len(summary.Budgets))
	for _, b := range summary.Budgets {
		budgets = append(budgets, BudgetDTO{
			CategoryDTO: category.ToDTO(b.Category),
			Spent:       b.Spent,
			Percentage:  b.Percentage.Round(2),
			Remaining:   b.Remaining,
			Status:      string(b.Status),
		})
	}
	distribution := make([]SliceDTO, 0, len(summary.Distribution))
	for _, s := range summary.Distribution {
		distribution = append(distribution, SliceDTO{Label: s.Label, Value: s.Value, Color: s.Color})
	}
	comparison := make([]ComparisonPointDTO, 0, len(summary.Comparison.Points))
	for _, p := range summary.Comparison.Points {
		comparison = append(comparison, ComparisonPointDTO{
			CategoryId: p.CategoryId,
			Name:       p.Name,
			Color:      p.Color,
			Current:    p.Current,
			Previous:   p.Previous,
			Change:     p.Change,
		})
	}
	return SummaryDTO{
		Month:         summary.Month.String(),
		PreviousMonth: summary.PreviousMonth.String(),
		Budgets:       budgets,
		Totals: TotalsDTO{
			TotalBudget:       summary.Totals.TotalBudget,
			TotalSpent:        summary.Totals.TotalSpent,
			TotalRemaining:    summary.Totals.TotalRemaining,
			OverallPercentage: summary.Totals.OverallPercentage.Round(2),
		},
		OverallStatus: string(summary.OverallStatus),
		Distribution:  distribution,
		Comparison:    comparison,
		Expenses:      expense.ToDTOs(summary.Expenses),
	}
}
