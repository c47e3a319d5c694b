// Package pgtest starts a throwaway PostgreSQL for repository integration
// tests and applies the production schema to it.
package pgtest

import (
	"context"
	"fmt"
	"time"

	"production/internal/adapters/out/postgres/migrations"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Tables lists every migrated table, children first.
var Tables = []string{"schedule_assignments", "identifier_sequences", "orders", "fixtures"}

// Start runs postgres:15-alpine, connects GORM and migrates.
func Start(ctx context.Context) (*postgres.PostgresContainer, *gorm.DB, error) {
	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("start postgres container: %w", err)
	}

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		return container, nil, err
	}

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return container, nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return container, nil, err
	}
	if err := migrations.Up(ctx, sqlDB); err != nil {
		return container, nil, err
	}

	return container, db, nil
}

// Truncate empties every table.
func Truncate(db *gorm.DB) error {
	for _, table := range Tables {
		if err := db.Exec("TRUNCATE TABLE " + table + " CASCADE").Error; err != nil {
			return err
		}
	}
	return nil
}
