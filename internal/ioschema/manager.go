// Package ioschema implements SchemaManager interface for
// database schema management. This is an impure I/O package
// that runs table DDL of the schema registry through GORM.
package ioschema

import (
	"context"
	"log/slog"

	"github.com/gnames/gn"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/oscaralateras/participant-inventory/pkg/db"
	"github.com/oscaralateras/participant-inventory/pkg/lifecycle"
	"github.com/oscaralateras/participant-inventory/pkg/schema"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// manager implements the lifecycle.SchemaManager interface.
type manager struct {
	reg      *schema.Registry
	operator db.Operator
}

// NewManager creates a new SchemaManager.
func NewManager(reg *schema.Registry, op db.Operator) lifecycle.SchemaManager {
	return &manager{reg: reg, operator: op}
}

// Create creates one table per dataset, each in its own transaction.
// With force, existing dataset tables are dropped first. Other tables
// of the database are never touched.
func (m *manager) Create(ctx context.Context, force bool) error {
	pool := m.operator.Pool()
	if pool == nil {
		return NotConnectedError()
	}

	sqlDB := stdlib.OpenDBFromPool(pool)
	defer sqlDB.Close()

	gormDB, err := gorm.Open(
		postgres.New(postgres.Config{Conn: sqlDB}),
		&gorm.Config{},
	)
	if err != nil {
		return GORMConnectionError(err)
	}
	gormDB = gormDB.WithContext(ctx)

	names := m.reg.DatasetNames()
	if force {
		if err = dropTables(gormDB, m.reg, names); err != nil {
			return err
		}
	}

	for _, ds := range names {
		ddl, err := m.reg.TableDDL(ds)
		if err != nil {
			return CreateTableError(ds, err)
		}
		err = gormDB.Transaction(func(tx *gorm.DB) error {
			return tx.Exec(ddl).Error
		})
		if err != nil {
			return CreateTableError(ds, err)
		}
		slog.Info("Created table",
			"dataset", ds,
			"columns", len(m.reg.TableColumns(ds)),
		)
	}

	gn.Info("Tables ready: <em>%d</em>", len(names))
	return nil
}

func dropTables(gormDB *gorm.DB, reg *schema.Registry, names []string) error {
	mig := gormDB.Migrator()
	for _, ds := range names {
		table := reg.TableName(ds)
		if !mig.HasTable(table) {
			continue
		}
		if err := mig.DropTable(table); err != nil {
			return DropTableError(table, err)
		}
		slog.Info("Dropped table", "table", table)
	}
	return nil
}
