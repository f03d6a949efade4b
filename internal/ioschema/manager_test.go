package ioschema_test

import (
	"context"
	"testing"

	"github.com/oscaralateras/participant-inventory/internal/iodb"
	"github.com/oscaralateras/participant-inventory/internal/ioschema"
	"github.com/oscaralateras/participant-inventory/internal/iotesting"
	"github.com/oscaralateras/participant-inventory/pkg/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRegistry(t *testing.T) *schema.Registry {
	t.Helper()
	doc := schema.Document{
		Datasets: map[string]schema.DatasetDefinition{
			"ioschema_covariates": {},
			"ioschema_dti":        {},
		},
	}
	rows := []schema.VariableRow{
		{Line: 2, Dataset: "ioschema_covariates", SourceColumn: "Age",
			VariableName: "age", SQLType: "INTEGER"},
		{Line: 3, Dataset: "ioschema_dti", SourceColumn: "FA",
			VariableName: "fa", SQLType: "FLOAT"},
	}
	reg, err := schema.Build(doc, rows)
	require.NoError(t, err)
	return reg
}

// TestCreate_NotConnected verifies an error without a pool.
func TestCreate_NotConnected(t *testing.T) {
	m := ioschema.NewManager(testRegistry(t), iodb.NewPgxOperator())
	assert.Error(t, m.Create(context.Background(), false))
}

// TestCreate verifies tables are created idempotently and recreated
// with force.
func TestCreate(t *testing.T) {
	op := iotesting.ConnectOrSkip(t)
	ctx := context.Background()
	reg := testRegistry(t)
	tables := reg.DatasetNames()
	t.Cleanup(func() { _ = op.DropTables(ctx, tables) })

	m := ioschema.NewManager(reg, op)
	require.NoError(t, m.Create(ctx, true))
	require.NoError(t, m.Create(ctx, false))

	for _, tbl := range tables {
		exists, err := op.TableExists(ctx, tbl)
		require.NoError(t, err)
		assert.True(t, exists, tbl)
	}

	var dataType string
	err := op.Pool().QueryRow(ctx, `
		SELECT data_type FROM information_schema.columns
		WHERE table_name = 'ioschema_dti' AND column_name = 'fa'`,
	).Scan(&dataType)
	require.NoError(t, err)
	assert.Equal(t, "double precision", dataType)

	_, err = op.Pool().Exec(ctx,
		`INSERT INTO "ioschema_dti" VALUES ('S01', 0.4)`)
	require.NoError(t, err)

	require.NoError(t, m.Create(ctx, true))
	var n int
	err = op.Pool().QueryRow(ctx, `SELECT count(*) FROM "ioschema_dti"`).Scan(&n)
	require.NoError(t, err)
	assert.Zero(t, n)
}
