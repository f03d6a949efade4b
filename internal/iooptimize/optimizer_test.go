package iooptimize_test

import (
	"context"
	"errors"
	"testing"

	"github.com/gnames/gn"
	"github.com/oscaralateras/participant-inventory/internal/iodb"
	"github.com/oscaralateras/participant-inventory/internal/iooptimize"
	"github.com/oscaralateras/participant-inventory/internal/ioschema"
	"github.com/oscaralateras/participant-inventory/internal/iotesting"
	"github.com/oscaralateras/participant-inventory/pkg/errcode"
	"github.com/oscaralateras/participant-inventory/pkg/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRegistry(t *testing.T, view bool) *schema.Registry {
	t.Helper()
	doc := schema.Document{
		Datasets: map[string]schema.DatasetDefinition{
			"ioopt_covariates": {},
			"ioopt_dti":        {},
		},
	}
	if view {
		doc.SummaryView = &schema.SummaryViewConfig{
			Name: "ioopt_summary",
			Base: "ioopt_covariates",
		}
	}
	rows := []schema.VariableRow{
		{Line: 2, Dataset: "ioopt_covariates", SourceColumn: "Age",
			VariableName: "age", SQLType: "INTEGER"},
		{Line: 3, Dataset: "ioopt_dti", SourceColumn: "FA",
			VariableName: "fa", SQLType: "FLOAT"},
	}
	reg, err := schema.Build(doc, rows)
	require.NoError(t, err)
	return reg
}

func errCode(t *testing.T, err error) gn.ErrorCode {
	t.Helper()
	var gnErr *gn.Error
	require.True(t, errors.As(err, &gnErr))
	return gnErr.Code
}

// TestOptimize_NotConnected verifies an error without a pool.
func TestOptimize_NotConnected(t *testing.T) {
	o := iooptimize.NewOptimizer(testRegistry(t, true), iodb.NewPgxOperator())
	err := o.Optimize(context.Background())
	require.Error(t, err)
	assert.Equal(t, errcode.DBNotConnectedError, errCode(t, err))
}

// TestOptimize verifies the view is built with flags and can be
// rebuilt.
func TestOptimize(t *testing.T) {
	op := iotesting.ConnectOrSkip(t)
	ctx := context.Background()

	noView := iooptimize.NewOptimizer(testRegistry(t, false), op)
	err := noView.Optimize(ctx)
	require.Error(t, err)
	assert.Equal(t, errcode.OptimizerNoSummaryViewError, errCode(t, err))

	reg := testRegistry(t, true)
	t.Cleanup(func() { _ = op.DropTables(ctx, reg.DatasetNames()) })
	_ = op.DropTables(ctx, reg.DatasetNames())

	o := iooptimize.NewOptimizer(reg, op)
	err = o.Optimize(ctx)
	require.Error(t, err)
	assert.Equal(t, errcode.OptimizerViewCreationError, errCode(t, err))

	require.NoError(t, ioschema.NewManager(reg, op).Create(ctx, false))
	_, err = op.Pool().Exec(ctx, `
		INSERT INTO "ioopt_covariates" VALUES ('S01', 34), ('S02', 41);
		INSERT INTO "ioopt_dti" VALUES ('S01', 0.4);`)
	require.NoError(t, err)

	require.NoError(t, o.Optimize(ctx))
	require.NoError(t, o.Optimize(ctx))

	var withDTI int
	err = op.Pool().QueryRow(ctx,
		`SELECT count(*) FROM "ioopt_summary" WHERE has_ioopt_dti`,
	).Scan(&withDTI)
	require.NoError(t, err)
	assert.Equal(t, 1, withDTI)
}
