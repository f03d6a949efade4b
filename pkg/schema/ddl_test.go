package schema_test

import (
	"testing"

	"github.com/oscaralateras/participant-inventory/pkg/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestTableDDL verifies generated CREATE TABLE statements.
func TestTableDDL(t *testing.T) {
	reg, err := schema.Build(testDoc(), testRows())
	require.NoError(t, err)

	ddl, err := reg.TableDDL("basic_covariates")
	require.NoError(t, err)
	assert.Equal(t, `CREATE TABLE IF NOT EXISTS "basic_covariates" (
    "participant_id" TEXT PRIMARY KEY,
    "age" INTEGER,
    "sex" TEXT,
    "dx" TEXT
)`, ddl)

	ddl, err = reg.TableDDL("individual_symptoms")
	require.NoError(t, err)
	assert.Contains(t, ddl, `"participant_id" TEXT PRIMARY KEY`)

	_, err = reg.TableDDL("nope")
	assert.Error(t, err)
}

// TestTableColumns verifies the identifier is first and not repeated.
func TestTableColumns(t *testing.T) {
	rows := []schema.VariableRow{
		{Line: 2, Dataset: "dti", SourceColumn: "fa",
			VariableName: "fa", SQLType: "FLOAT"},
		{Line: 3, Dataset: "dti", SourceColumn: "SubjID",
			VariableName: "participant_id", SQLType: "TEXT"},
	}
	reg, err := schema.Build(testDoc(), rows)
	require.NoError(t, err)
	assert.Equal(t, []string{"participant_id", "fa"}, reg.TableColumns("dti"))
}

// TestTableDDL_QuotesIdentifiers verifies names are quoted.
func TestTableDDL_QuotesIdentifiers(t *testing.T) {
	rows := []schema.VariableRow{
		{Line: 2, Dataset: "dti", SourceColumn: "x",
			VariableName: `we"ird`, SQLType: "TEXT"},
	}
	reg, err := schema.Build(testDoc(), rows)
	require.NoError(t, err)

	ddl, err := reg.TableDDL("dti")
	require.NoError(t, err)
	assert.Contains(t, ddl, `"we""ird" TEXT`)
}
