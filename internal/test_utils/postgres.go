package test_utils

import (
	"context"
	"flag"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/klokku/clarity/internal/config"
	"github.com/klokku/clarity/internal/database"
	log "github.com/sirupsen/logrus"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
)

const (
	dbName     = "clarity"
	dbUser     = "test_clarity"
	dbPassword = "test_clarity"
)

// PostgresDB is a migrated throwaway database running in a container.
type PostgresDB struct {
	Pool      *pgxpool.Pool
	container *postgres.PostgresContainer
}

// StartPostgres runs a Postgres container, applies all migrations and opens a pool to it.
func StartPostgres(ctx context.Context) (*PostgresDB, error) {
	container, err := postgres.Run(
		ctx, "postgres:18.1-alpine",
		postgres.WithDatabase(dbName),
		postgres.WithUsername(dbUser),
		postgres.WithPassword(dbPassword),
		postgres.BasicWaitStrategies(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to start postgres container: %w", err)
	}

	host, err := container.Host(ctx)
	if err != nil {
		_ = testcontainers.TerminateContainer(container)
		return nil, err
	}
	port, err := container.MappedPort(ctx, "5432/tcp")
	if err != nil {
		_ = testcontainers.TerminateContainer(container)
		return nil, err
	}
	log.Infof("Postgres container started at %s:%d", host, port.Int())

	cfg := config.Database{
		Host:   host,
		Port:   port.Int(),
		User:   dbUser,
		Pass:   dbPassword,
		Name:   dbName,
		Schema: "public",
	}
	if err := database.Migrate(cfg); err != nil {
		_ = testcontainers.TerminateContainer(container)
		return nil, fmt.Errorf("failed to apply migrations: %w", err)
	}
	pool, err := database.Open(ctx, cfg)
	if err != nil {
		_ = testcontainers.TerminateContainer(container)
		return nil, err
	}
	return &PostgresDB{Pool: pool, container: container}, nil
}

// Truncate empties the ledger tables between tests.
func (db *PostgresDB) Truncate(t *testing.T) {
	t.Helper()
	if _, err := db.Pool.Exec(context.Background(), "TRUNCATE expense, category RESTART IDENTITY"); err != nil {
		t.Fatalf("failed to truncate ledger tables: %v", err)
	}
}

func (db *PostgresDB) Close() {
	db.Pool.Close()
	if err := testcontainers.TerminateContainer(db.container); err != nil {
		log.Errorf("failed to terminate postgres container: %v", err)
	}
}

// RunWithPostgres is a TestMain body: it starts the database unless tests run with -short,
// hands it to assign and runs the tests. When Docker is not available assign receives nil and
// the database tests are expected to skip.
func RunWithPostgres(m *testing.M, assign func(*PostgresDB)) int {
	flag.Parse()
	if testing.Short() {
		assign(nil)
		return m.Run()
	}
	db, err := StartPostgres(context.Background())
	if err != nil {
		log.Warnf("Postgres tests disabled: %v", err)
		assign(nil)
		return m.Run()
	}
	defer db.Close()
	assign(db)
	return m.Run()
}

// RequireDB skips the test when no database was started.
func RequireDB(t *testing.T, db *PostgresDB) {
	t.Helper()
	if db == nil {
		t.Skip("postgres not available")
	}
	db.Truncate(t)
}
