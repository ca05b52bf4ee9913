// Package testhelper starts a shared PostgreSQL container for repository
// integration tests and seeds accounts and reports.
package testhelper

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/heartmarshall/pollution-reporter/internal/adapter/postgres"
	"github.com/heartmarshall/pollution-reporter/internal/config"
)

const (
	pgImage    = "postgres:17-alpine"
	pgUser     = "reporter"
	pgPassword = "reporter"
	pgDatabase = "pollution"
)

var (
	once      sync.Once
	sharedCfg config.DatabaseConfig
	initErr   error
)

// SetupTestDB returns a pool on the shared container, which is started and
// migrated by the first caller in the test binary. Tests share one
// database, so assertions must be scoped to rows the test created. The
// pool is closed via t.Cleanup.
func SetupTestDB(t *testing.T) *pgxpool.Pool {
	t.Helper()

	once.Do(func() {
		sharedCfg, initErr = startAndMigrate()
	})
	if initErr != nil {
		t.Fatalf("testhelper: postgres unavailable: %v", initErr)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := postgres.NewPool(ctx, sharedCfg)
	if err != nil {
		t.Fatalf("testhelper: %v", err)
	}
	t.Cleanup(pool.Close)
	return pool
}

// startAndMigrate boots the container and applies migrations through the
// same code path the server uses on start.
func startAndMigrate() (config.DatabaseConfig, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        pgImage,
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     pgUser,
				"POSTGRES_PASSWORD": pgPassword,
				"POSTGRES_DB":       pgDatabase,
			},
			// The entrypoint restarts the server once after init.
			WaitingFor: wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(time.Minute),
		},
		Started: true,
	})
	if err != nil {
		return config.DatabaseConfig{}, fmt.Errorf("start container: %w", err)
	}

	endpoint, err := container.PortEndpoint(ctx, "5432/tcp", "")
	if err != nil {
		return config.DatabaseConfig{}, fmt.Errorf("container endpoint: %w", err)
	}

	cfg := config.DatabaseConfig{
		DSN:             fmt.Sprintf("postgres://%s:%s@%s/%s?sslmode=disable", pgUser, pgPassword, endpoint, pgDatabase),
		MaxConns:        10,
		MinConns:        1,
		MaxConnLifetime: time.Hour,
		MaxConnIdleTime: time.Minute,
	}

	pool, err := postgres.NewPool(ctx, cfg)
	if err != nil {
		return config.DatabaseConfig{}, err
	}
	defer pool.Close()

	if err := postgres.Migrate(ctx, pool, slog.New(slog.NewTextHandler(io.Discard, nil))); err != nil {
		return config.DatabaseConfig{}, err
	}
	return cfg, nil
}
