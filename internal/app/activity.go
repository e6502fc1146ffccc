package app

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/klokku/clarity/internal/event_bus"
	"github.com/klokku/clarity/internal/rest"
	"github.com/klokku/clarity/pkg/period"
	log "github.com/sirupsen/logrus"
)

const defaultActivityCapacity = 50

type Activity struct {
	Type      event_bus.EventType `json:"type"`
	Message   string              `json:"message"`
	Timestamp time.Time           `json:"timestamp"`
}

// ActivityLog keeps the most recent ledger changes, newest first.
type ActivityLog struct {
	mu       sync.Mutex
	capacity int
	entries  []Activity
}

func NewActivityLog(capacity int) *ActivityLog {
	return &ActivityLog{capacity: capacity}
}

func (a *ActivityLog) Subscribe(bus *event_bus.EventBus) {
	event_bus.SubscribeTyped(bus, event_bus.CategoryUpdatedType, func(e event_bus.EventT[event_bus.CategoryUpdated]) error {
		a.record(e.Type, e.Timestamp, fmt.Sprintf("category %d %q now has a monthly limit of %s",
			e.Data.Id, e.Data.Name, e.Data.MonthlyLimit.StringFixed(2)))
		return nil
	})
	event_bus.SubscribeTyped(bus, event_bus.ExpenseCreatedType, func(e event_bus.EventT[event_bus.ExpenseCreated]) error {
		a.record(e.Type, e.Timestamp, fmt.Sprintf("expense %d of %s booked in category %d on %s",
			e.Data.Id, e.Data.Amount.StringFixed(2), e.Data.CategoryId, e.Data.Date.Format(period.DayLayout)))
		return nil
	})
	event_bus.SubscribeTyped(bus, event_bus.ExpenseUpdatedType, func(e event_bus.EventT[event_bus.ExpenseUpdated]) error {
		message := fmt.Sprintf("expense %d changed to %s in category %d",
			e.Data.Id, e.Data.Amount.StringFixed(2), e.Data.CategoryId)
		if previous, current := period.MonthOf(e.Data.PreviousDate), period.MonthOf(e.Data.Date); previous != current {
			message += fmt.Sprintf(", moved from %s to %s", previous, current)
		}
		a.record(e.Type, e.Timestamp, message)
		return nil
	})
	event_bus.SubscribeTyped(bus, event_bus.ExpenseDeletedType, func(e event_bus.EventT[event_bus.ExpenseDeleted]) error {
		a.record(e.Type, e.Timestamp, fmt.Sprintf("expense %d deleted", e.Data.Id))
		return nil
	})
}

func (a *ActivityLog) record(eventType event_bus.EventType, at time.Time, message string) {
	log.Infof("Ledger activity: %s", message)
	a.mu.Lock()
	defer a.mu.Unlock()
	a.entries = append([]Activity{{Type: eventType, Message: message, Timestamp: at}}, a.entries...)
	if len(a.entries) > a.capacity {
		a.entries = a.entries[:a.capacity]
	}
}

func (a *ActivityLog) Recent() []Activity {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]Activity{}, a.entries...)
}

// ListActivity godoc
// @Summary Recent changes to categories and expenses
// @Tags Activity
// @Produce json
// @Success 200 {array} Activity
// @Router /api/activity [get]
func (a *ActivityLog) ListActivity(w http.ResponseWriter, r *http.Request) {
	rest.WriteJSON(w, http.StatusOK, a.Recent())
}
