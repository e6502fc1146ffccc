// Package period holds the calendar primitives used to bucket expenses by month.
//
// Expense dates are calendar days without a time zone. Any time.Time entering the system is
// reduced to midnight UTC of the calendar day it shows in its own location, so month
// bucketing never depends on the zone the process runs in.
package period

import (
	"fmt"
	"time"
)

const (
	DayLayout   = "2006-01-02"
	MonthLayout = "2006-01"
)

// MonthKey identifies a calendar month bucket.
type MonthKey struct {
	Year  int
	Month time.Month
}

func NewMonthKey(year int, month time.Month) MonthKey {
	return MonthKey{Year: year, Month: month}
}

// MonthOf returns the bucket the given date belongs to.
func MonthOf(date time.Time) MonthKey {
	y, m, _ := date.Date()
	return MonthKey{Year: y, Month: m}
}

// ParseMonthKey parses the YYYY-MM form.
func ParseMonthKey(s string) (MonthKey, error) {
	t, err := time.Parse(MonthLayout, s)
	if err != nil {
		return MonthKey{}, fmt.Errorf("invalid month %q, expected YYYY-MM: %w", s, err)
	}
	return MonthOf(t), nil
}

func (k MonthKey) String() string {
	return fmt.Sprintf("%04d-%02d", k.Year, int(k.Month))
}

func (k MonthKey) IsZero() bool {
	return k.Year == 0 && k.Month == 0
}

// Previous returns the calendar month before k.
func (k MonthKey) Previous() MonthKey {
	return MonthOf(k.Start().AddDate(0, -1, 0))
}

// Next returns the calendar month after k.
func (k MonthKey) Next() MonthKey {
	return MonthOf(k.Start().AddDate(0, 1, 0))
}

// Start is the first day of the month at midnight UTC.
func (k MonthKey) Start() time.Time {
	return time.Date(k.Year, k.Month, 1, 0, 0, 0, 0, time.UTC)
}

// End is the first day of the following month, exclusive bound of the month.
func (k MonthKey) End() time.Time {
	return k.Start().AddDate(0, 1, 0)
}

// Contains reports whether date falls in the month. Only its calendar year and month count.
func (k MonthKey) Contains(date time.Time) bool {
	return MonthOf(date) == k
}

// Day reduces t to midnight UTC of the calendar day it shows in its own location.
func Day(t time.Time) time.Time {
	if t.IsZero() {
		return time.Time{}
	}
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDay accepts YYYY-MM-DD or an RFC3339 timestamp and returns the calendar day.
func ParseDay(s string) (time.Time, error) {
	if t, err := time.Parse(DayLayout, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", s)
	}
	return Day(t), nil
}
