package expense

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/klokku/clarity/internal/apperr"
	"github.com/klokku/clarity/internal/rest"
	"github.com/klokku/clarity/pkg/period"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

type ExpenseDTO struct {
	Id         int             `json:"Id"`
	CategoryId int             `json:"categoryId"`
	Amount     decimal.Decimal `json:"amount"`
	Date       string          `json:"date"`
	Note       string          `json:"note"`
	CreatedAt  time.Time       `json:"createdAt"`
}

type CreateExpenseDTO struct {
	CategoryId rest.Id         `json:"categoryId"`
	Amount     decimal.Decimal `json:"amount"`
	Date       string          `json:"date"`
	Note       string          `json:"note"`
}

type PatchDTO struct {
	CategoryId rest.Id          `json:"categoryId,omitempty"`
	Amount     *decimal.Decimal `json:"amount,omitempty"`
	Date       *string          `json:"date,omitempty"`
	Note       *string          `json:"note,omitempty"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service}
}

// ListExpenses godoc
// @Summary List expenses, optionally limited to one month
// @Tags Expense
// @Produce json
// @Param month query string false "Month in YYYY-MM format"
// @Success 200 {array} ExpenseDTO
// @Failure 400 {object} rest.ErrorResponse
// @Router /api/expense [get]
func (handler *Handler) ListExpenses(w http.ResponseWriter, r *http.Request) {
	log.Debug("Listing expenses")
	var (
		expenses []Expense
		err      error
	)
	if monthParam := r.URL.Query().Get("month"); monthParam != "" {
		month, parseErr := period.ParseMonthKey(monthParam)
		if parseErr != nil {
			rest.WriteError(w, apperr.Invalid("month", parseErr.Error()))
			return
		}
		expenses, err = handler.service.ListExpensesForMonth(r.Context(), month)
	} else {
		expenses, err = handler.service.ListExpenses(r.Context())
	}
	if err != nil {
		rest.WriteError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, ToDTOs(expenses))
}

// GetExpense godoc
// @Summary Get an expense
// @Tags Expense
// @Produce json
// @Param expenseId path int true "Expense ID"
// @Success 200 {object} ExpenseDTO
// @Failure 404 {object} rest.ErrorResponse
// @Router /api/expense/{expenseId} [get]
func (handler *Handler) GetExpense(w http.ResponseWriter, r *http.Request) {
	id, err := rest.ParseId("expenseId", mux.Vars(r)["expenseId"])
	if err != nil {
		rest.WriteError(w, err)
		return
	}
	e, err := handler.service.GetExpense(r.Context(), id)
	if err != nil {
		rest.WriteError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, ToDTO(e))
}

// CreateExpense godoc
// @Summary Log a new expense
// @Tags Expense
// @Accept json
// @Produce json
// @Param expense body CreateExpenseDTO true "Expense"
// @Success 201 {object} ExpenseDTO
// @Failure 400 {object} rest.ErrorResponse
// @Router /api/expense [post]
func (handler *Handler) CreateExpense(w http.ResponseWriter, r *http.Request) {
	log.Debug("Creating expense")
	var dto CreateExpenseDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		rest.WriteError(w, apperr.Invalid("body", err.Error()))
		return
	}
	categoryId, err := dto.CategoryId.Parse("categoryId")
	if err != nil {
		rest.WriteError(w, err)
		return
	}
	data := NewExpense{
		CategoryId: categoryId,
		Amount:     dto.Amount,
		Note:       dto.Note,
	}
	if dto.Date != "" {
		date, err := period.ParseDay(dto.Date)
		if err != nil {
			rest.WriteError(w, apperr.Invalid("date", err.Error()))
			return
		}
		data.Date = date
	}

	created, err := handler.service.CreateExpense(r.Context(), data)
	if err != nil {
		rest.WriteError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusCreated, ToDTO(created))
}

// UpdateExpense godoc
// @Summary Change fields of an expense
// @Tags Expense
// @Accept json
// @Produce json
// @Param expenseId path int true "Expense ID"
// @Param patch body PatchDTO true "Fields to change"
// @Success 200 {object} ExpenseDTO
// @Failure 400 {object} rest.ErrorResponse
// @Failure 404 {object} rest.ErrorResponse
// @Router /api/expense/{expenseId} [patch]
func (handler *Handler) UpdateExpense(w http.ResponseWriter, r *http.Request) {
	log.Debug("Updating expense")
	id, err := rest.ParseId("expenseId", mux.Vars(r)["expenseId"])
	if err != nil {
		rest.WriteError(w, err)
		return
	}
	var dto PatchDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		rest.WriteError(w, apperr.Invalid("body", err.Error()))
		return
	}
	patch := Patch{Amount: dto.Amount, Note: dto.Note}
	if dto.CategoryId.IsSet() {
		categoryId, err := dto.CategoryId.Parse("categoryId")
		if err != nil {
			rest.WriteError(w, err)
			return
		}
		patch.CategoryId = &categoryId
	}
	if dto.Date != nil {
		date, err := period.ParseDay(*dto.Date)
		if err != nil {
			rest.WriteError(w, apperr.Invalid("date", err.Error()))
			return
		}
		patch.Date = &date
	}

	updated, err := handler.service.UpdateExpense(r.Context(), id, patch)
	if err != nil {
		rest.WriteError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, ToDTO(updated))
}

// DeleteExpense godoc
// @Summary Delete an expense
// @Tags Expense
// @Param expenseId path int true "Expense ID"
// @Success 204
// @Failure 404 {object} rest.ErrorResponse
// @Router /api/expense/{expenseId} [delete]
func (handler *Handler) DeleteExpense(w http.ResponseWriter, r *http.Request) {
	log.Debug("Deleting expense")
	id, err := rest.ParseId("expenseId", mux.Vars(r)["expenseId"])
	if err != nil {
		rest.WriteError(w, err)
		return
	}
	if err := handler.service.DeleteExpense(r.Context(), id); err != nil {
		rest.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func ToDTO(e Expense) ExpenseDTO {
	return ExpenseDTO{
		Id:         e.Id,
		CategoryId: e.CategoryId,
		Amount:     e.Amount,
		Date:       e.Date.Format(period.DayLayout),
		Note:       e.Note,
		CreatedAt:  e.CreatedAt,
	}
}

func ToDTOs(expenses []Expense) []ExpenseDTO {
	dtos := make([]ExpenseDTO, 0, len(expenses))
	for _, e := range expenses {
		dtos = append(dtos, ToDTO(e))
	}
	return dtos
}
