// Package integration runs the seller service against a real PostgreSQL
// started with testcontainers.
package integration

import (
	"context"
	"database/sql"
	"fmt"
	"testing"
	"time"

	_ "github.com/lib/pq"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"
	gormpostgres "gorm.io/driver/postgres"

	"github.com/venta/backend/internal/infrastructure/config"
	"github.com/venta/backend/internal/infrastructure/migration"
	"github.com/venta/backend/internal/infrastructure/persistence"
	"github.com/venta/backend/migrations"
)

// TestDB is a migrated database inside its own container
type TestDB struct {
	*persistence.Database
	Container testcontainers.Container
	DSN       string
	t         *testing.T
}

// NewTestDB starts PostgreSQL, applies the embedded migrations and opens a
// gorm connection. The container is terminated on test cleanup.
func NewTestDB(t *testing.T) *TestDB {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()
	container, err := tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("venta_test"),
		tcpostgres.WithUsername("postgres"),
		tcpostgres.WithPassword("venta123"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err, "Failed to start PostgreSQL container")

	tdb := &TestDB{Container: container, t: t}
	t.Cleanup(tdb.Close)

	tdb.DSN, err = container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err, "Failed to get connection string")

	migrate(t, tdb.DSN)

	tdb.Database, err = persistence.OpenDialector(ctx, gormpostgres.Open(tdb.DSN), &config.DatabaseConfig{
		MaxOpenConns: 5,
		MaxIdleConns: 2,
	})
	require.NoError(t, err, "Failed to connect to test database")
	return tdb
}

func migrate(t *testing.T, dsn string) {
	t.Helper()
	sqlDB, err := sql.Open("postgres", dsn)
	require.NoError(t, err)

	m, err := migration.NewFromFS(sqlDB, migrations.FS, zap.NewNop())
	require.NoError(t, err, "Failed to create migrator")
	defer func() { _ = m.Close() }()
	require.NoError(t, m.Up(), "Failed to run migrations")
}

// CleanTables empties every table but keeps the migration version
func (tdb *TestDB) CleanTables() {
	tdb.t.Helper()
	for _, table := range []string{"sellers", "branches"} {
		err := tdb.DB.Exec(fmt.Sprintf("TRUNCATE TABLE %s RESTART IDENTITY CASCADE", table)).Error
		require.NoError(tdb.t, err, "Failed to truncate %s", table)
	}
}

// Close releases the connection and terminates the container
func (tdb *TestDB) Close() {
	if tdb.Database != nil {
		_ = tdb.Database.Close()
	}
	if tdb.Container != nil {
		if err := tdb.Container.Terminate(context.Background()); err != nil {
			tdb.t.Logf("Warning: Failed to terminate container: %v", err)
		}
	}
}
