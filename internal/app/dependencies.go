package app

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/klokku/clarity/internal/config"
	"github.com/klokku/clarity/internal/database"
	"github.com/klokku/clarity/internal/event_bus"
	"github.com/klokku/clarity/internal/fixtures"
	"github.com/klokku/clarity/internal/utils"
	"github.com/klokku/clarity/pkg/category"
	"github.com/klokku/clarity/pkg/dashboard"
	"github.com/klokku/clarity/pkg/expense"
	log "github.com/sirupsen/logrus"
)

// Dependencies holds all services and handlers for the application.
type Dependencies struct {
	Backend string
	DB      *pgxpool.Pool

	EventBus    *event_bus.EventBus
	ActivityLog *ActivityLog

	CategoryRepo    category.Repository
	CategoryService *category.ServiceImpl
	CategoryHandler *category.Handler

	ExpenseRepo    expense.Repository
	ExpenseService *expense.ServiceImpl
	ExpenseHandler *expense.Handler

	DashboardService *dashboard.ServiceImpl
	CsvRenderer      *dashboard.CsvRenderer
	DashboardHandler *dashboard.Handler

	Clock utils.Clock
}

// BuildDependencies opens the configured store and wires services and handlers on top of it.
func BuildDependencies(ctx context.Context, cfg config.Application) (*Dependencies, error) {
	clock := utils.SystemClock{}
	switch cfg.Store.Backend {
	case config.PostgresBackend:
		if err := database.Migrate(cfg.Database); err != nil {
			return nil, err
		}
		db, err := database.Open(ctx, cfg.Database)
		if err != nil {
			return nil, err
		}
		deps := wire(category.NewPgRepository(db), expense.NewPgRepository(db, clock), clock)
		deps.Backend = config.PostgresBackend
		deps.DB = db
		return deps, nil
	case config.MemoryBackend:
		ledger, err := fixtures.Load(cfg.Store.Fixtures)
		if err != nil {
			return nil, err
		}
		latency := utils.Latency(cfg.Store.Latency)
		log.Infof("Using in-memory store with %v simulated latency", cfg.Store.Latency)
		deps := wire(
			category.NewMemoryRepository(ledger.Categories, latency),
			expense.NewMemoryRepository(ledger.Expenses, clock, latency),
			clock,
		)
		deps.Backend = config.MemoryBackend
		return deps, nil
	default:
		return nil, fmt.Errorf("unsupported store backend %q", cfg.Store.Backend)
	}
}

func wire(categoryRepo category.Repository, expenseRepo expense.Repository, clock utils.Clock) *Dependencies {
	deps := &Dependencies{Clock: clock}

	deps.EventBus = event_bus.NewEventBus()
	deps.ActivityLog = NewActivityLog(defaultActivityCapacity)
	deps.ActivityLog.Subscribe(deps.EventBus)

	deps.CategoryRepo = categoryRepo
	deps.CategoryService = category.NewService(deps.CategoryRepo, deps.EventBus)
	deps.CategoryHandler = category.NewHandler(deps.CategoryService)

	deps.ExpenseRepo = expenseRepo
	deps.ExpenseService = expense.NewService(deps.ExpenseRepo, deps.CategoryService, deps.EventBus)
	deps.ExpenseHandler = expense.NewHandler(deps.ExpenseService)

	deps.DashboardService = dashboard.NewService(deps.CategoryService, deps.ExpenseService)
	deps.CsvRenderer = dashboard.NewCsvRenderer()
	deps.DashboardHandler = dashboard.NewHandler(deps.DashboardService, deps.CsvRenderer, deps.Clock)

	return deps
}

func (d *Dependencies) Close() {
	if d.DB != nil {
		d.DB.Close()
	}
}
