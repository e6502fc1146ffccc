package category

import (
	"strings"

	"github.com/klokku/clarity/internal/apperr"
	"github.com/klokku/clarity/internal/money"
	"github.com/shopspring/decimal"
)

type Category struct {
	Id    int
	Name  string
	Color string
	Icon  string
	// MonthlyLimit is the spending ceiling for one calendar month.
	MonthlyLimit decimal.Decimal
}

// Patch lists the category fields an update may change. Nil fields are left untouched.
type Patch struct {
	Name         *string
	Color        *string
	Icon         *string
	MonthlyLimit *decimal.Decimal
}

func (p Patch) Validate() error {
	verr := apperr.NewValidationError()
	if p.Name != nil && strings.TrimSpace(*p.Name) == "" {
		verr.Add("name", "cannot be empty")
	}
	if p.MonthlyLimit != nil {
		if p.MonthlyLimit.IsNegative() {
			verr.Add("monthlyLimit", "cannot be negative")
		}
		if problem := money.Problem(*p.MonthlyLimit); problem != "" {
			verr.Add("monthlyLimit", problem)
		}
	}
	return verr.OrNil()
}

func (p Patch) IsEmpty() bool {
	return p.Name == nil && p.Color == nil && p.Icon == nil && p.MonthlyLimit == nil
}

// Normalize trims the name so every backend stores the same value.
func (p Patch) Normalize() Patch {
	if p.Name != nil {
		name := strings.TrimSpace(*p.Name)
		p.Name = &name
	}
	return p
}

// Apply returns a copy of c with the patch merged in. The id never changes.
func (p Patch) Apply(c Category) Category {
	if p.Name != nil {
		c.Name = *p.Name
	}
	if p.Color != nil {
		c.Color = *p.Color
	}
	if p.Icon != nil {
		c.Icon = *p.Icon
	}
	if p.MonthlyLimit != nil {
		c.MonthlyLimit = *p.MonthlyLimit
	}
	return c
}
