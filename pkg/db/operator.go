// Package db defines the database operator shared by lifecycle
// components.
package db

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/oscaralateras/participant-inventory/pkg/config"
)

// Operator manages the connection pool and a few catalog operations.
// Lifecycle components use Pool() for their own SQL (DDL through GORM,
// COPY for bulk loads, parameterized queries).
type Operator interface {
	// Connect establishes a connection pool to the database.
	Connect(context.Context, *config.DatabaseConfig) error

	// Close closes the database connection pool.
	Close() error

	// Pool returns the underlying pgxpool.Pool.
	Pool() *pgxpool.Pool

	// TableExists checks if a table exists in the public schema.
	TableExists(ctx context.Context, tableName string) (bool, error)

	// HasTables checks if any of the given tables exist.
	HasTables(ctx context.Context, tableNames []string) (bool, error)

	// DropTables drops the given tables if they exist.
	DropTables(ctx context.Context, tableNames []string) error

	// DropMaterializedViews drops all materialized views in the public
	// schema.
	DropMaterializedViews(ctx context.Context) error
}
