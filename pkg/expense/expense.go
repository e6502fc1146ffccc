package expense

import (
	"time"
	"unicode/utf8"

	"github.com/klokku/clarity/internal/apperr"
	"github.com/klokku/clarity/internal/money"
	"github.com/klokku/clarity/pkg/period"
	"github.com/shopspring/decimal"
)

// MaxNoteLength is counted in characters, not bytes.
const MaxNoteLength = 100

type Expense struct {
	Id         int
	CategoryId int
	Amount     decimal.Decimal
	// Date is a calendar day, midnight UTC.
	Date      time.Time
	Note      string
	CreatedAt time.Time
}

// NewExpense holds the caller supplied fields of an expense about to be created.
type NewExpense struct {
	CategoryId int
	Amount     decimal.Decimal
	Date       time.Time
	Note       string
}

func (n NewExpense) Validate() error {
	verr := apperr.NewValidationError()
	if n.CategoryId <= 0 {
		verr.Add("categoryId", "please select a category")
	}
	if !n.Amount.IsPositive() {
		verr.Add("amount", "please enter a valid amount")
	}
	if problem := money.Problem(n.Amount); problem != "" {
		verr.Add("amount", problem)
	}
	if n.Date.IsZero() {
		verr.Add("date", "please select a date")
	}
	if utf8.RuneCountInString(n.Note) > MaxNoteLength {
		verr.Add("note", "must be at most 100 characters")
	}
	return verr.OrNil()
}

// Normalize reduces the date to its calendar day.
func (n NewExpense) Normalize() NewExpense {
	n.Date = period.Day(n.Date)
	return n
}

// Patch lists the fields an update may change. Id and CreatedAt are never part of it.
type Patch struct {
	CategoryId *int
	Amount     *decimal.Decimal
	Date       *time.Time
	Note       *string
}

func (p Patch) Validate() error {
	verr := apperr.NewValidationError()
	if p.CategoryId != nil && *p.CategoryId <= 0 {
		verr.Add("categoryId", "please select a category")
	}
	if p.Amount != nil {
		if !p.Amount.IsPositive() {
			verr.Add("amount", "please enter a valid amount")
		}
		if problem := money.Problem(*p.Amount); problem != "" {
			verr.Add("amount", problem)
		}
	}
	if p.Date != nil && p.Date.IsZero() {
		verr.Add("date", "please select a date")
	}
	if p.Note != nil && utf8.RuneCountInString(*p.Note) > MaxNoteLength {
		verr.Add("note", "must be at most 100 characters")
	}
	return verr.OrNil()
}

func (p Patch) IsEmpty() bool {
	return p.CategoryId == nil && p.Amount == nil && p.Date == nil && p.Note == nil
}

func (p Patch) Normalize() Patch {
	if p.Date != nil {
		day := period.Day(*p.Date)
		p.Date = &day
	}
	return p
}

// Apply returns a copy of e with the patch merged in.
func (p Patch) Apply(e Expense) Expense {
	if p.CategoryId != nil {
		e.CategoryId = *p.CategoryId
	}
	if p.Amount != nil {
		e.Amount = *p.Amount
	}
	if p.Date != nil {
		e.Date = *p.Date
	}
	if p.Note != nil {
		e.Note = *p.Note
	}
	return e
}
