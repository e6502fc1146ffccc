// Package money holds the bounds every stored amount must fit: NUMERIC(14,2) in postgres.
package money

import "github.com/shopspring/decimal"

const Scale = 2

// Max is the first value that no longer fits twelve integer digits.
var Max = decimal.New(1, 12)

// Problem describes why d cannot be stored as is, or returns "" when it can.
func Problem(d decimal.Decimal) string {
	if !d.Equal(d.Truncate(Scale)) {
		return "must have at most 2 decimal places"
	}
	if d.Abs().GreaterThanOrEqual(Max) {
		return "is too large"
	}
	return ""
}
