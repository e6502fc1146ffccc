package event_bus

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	CategoryUpdatedType EventType = "category.updated"
	ExpenseCreatedType  EventType = "expense.created"
	ExpenseUpdatedType  EventType = "expense.updated"
	ExpenseDeletedType  EventType = "expense.deleted"
)

type CategoryUpdated struct {
	Id           int
	Name         string
	MonthlyLimit decimal.Decimal
}

type ExpenseCreated struct {
	Id         int
	CategoryId int
	Amount     decimal.Decimal
	Date       time.Time
}

type ExpenseUpdated struct {
	Id         int
	CategoryId int
	Amount     decimal.Decimal
	Date       time.Time
	// PreviousDate is the date before the update. The change can move the expense to another month.
	PreviousDate time.Time
}

type ExpenseDeleted struct {
	Id int
}
