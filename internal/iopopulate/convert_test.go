package iopopulate

import (
	"errors"
	"math"
	"testing"

	"github.com/gnames/gn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/oscaralateras/participant-inventory/pkg/errcode"
	"github.com/oscaralateras/participant-inventory/pkg/frame"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestConvertValue verifies typed values and NULLs for each sql_type.
func TestConvertValue(t *testing.T) {
	tests := []struct {
		msg     string
		sqlType string
		in      string
		want    any
		wantErr bool
	}{
		{"int", "INTEGER", " 34 ", pgtype.Int8{Int64: 34, Valid: true}, false},
		{"int as float", "INTEGER", "34.0", pgtype.Int8{Int64: 34, Valid: true}, false},
		{"int fraction", "INTEGER", "34.5", nil, true},
		{"int word", "INTEGER", "old", nil, true},
		{"int missing", "INTEGER", "NA", pgtype.Int8{}, false},
		{"float", "FLOAT", "0.42", pgtype.Float8{Float64: 0.42, Valid: true}, false},
		{"float missing", "FLOAT", "", pgtype.Float8{}, false},
		{"float bad", "FLOAT", "0,42", nil, true},
		{"bool yes", "BOOLEAN", "Yes", pgtype.Bool{Bool: true, Valid: true}, false},
		{"bool zero", "BOOLEAN", "0", pgtype.Bool{Bool: false, Valid: true}, false},
		{"bool bad", "BOOLEAN", "maybe", nil, true},
		{"text", "TEXT", "MDD", pgtype.Text{String: "MDD", Valid: true}, false},
		{"text missing", "TEXT", "n/a", pgtype.Text{}, false},
		{"undeclared", "", "x", pgtype.Text{String: "x", Valid: true}, false},
	}

	for _, tt := range tests {
		t.Run(tt.msg, func(t *testing.T) {
			got, err := convertValue(tt.sqlType, tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

// TestParseInt verifies whole floats convert and values outside int64
// are rejected.
func TestParseInt(t *testing.T) {
	tests := []struct {
		msg     string
		in      string
		want    int64
		wantErr bool
	}{
		{"plain", "34", 34, false},
		{"whole float", "34.0", 34, false},
		{"max int64", "9223372036854775807", math.MaxInt64, false},
		{"min as float", "-9223372036854775808.0", math.MinInt64, false},
		{"two to 63", "9223372036854775808.0", 0, true},
		{"above range", "1e19", 0, true},
		{"below range", "-1e19", 0, true},
		{"infinity", "Inf", 0, true},
		{"not a number", "NaN", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.msg, func(t *testing.T) {
			got, err := parseInt(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

// TestConvertRows verifies a bad cell is reported with its row, column
// and value.
func TestConvertRows(t *testing.T) {
	f := frame.New(
		[]string{"participant_id", "age"},
		[][]string{{"S01", "34"}, {"S02", "thirty"}},
	)
	types := map[string]string{"age": "INTEGER"}

	_, err := convertRows("basic_covariates", f, types)
	require.Error(t, err)
	var gnErr *gn.Error
	require.True(t, errors.As(err, &gnErr))
	assert.Equal(t, errcode.PopulateValueError, gnErr.Code)
	assert.Equal(t,
		[]any{"basic_covariates", 2, "age", "thirty", "INTEGER"}, gnErr.Vars)

	rows, err := convertRows("basic_covariates", f.Filter(func(r []string) bool {
		return r[0] == "S01"
	}), types)
	require.NoError(t, err)
	assert.Equal(t, [][]any{{
		pgtype.Text{String: "S01", Valid: true},
		pgtype.Int8{Int64: 34, Valid: true},
	}}, rows)
}

// TestAllDatasetsFailedError verifies plural handling.
func TestAllDatasetsFailedError(t *testing.T) {
	err := AllDatasetsFailedError(1)
	var gnErr *gn.Error
	require.True(t, errors.As(err, &gnErr))
	assert.Equal(t, "1 dataset failed to load", gnErr.Err.Error())

	err = AllDatasetsFailedError(3)
	require.True(t, errors.As(err, &gnErr))
	assert.Equal(t, "3 datasets failed to load", gnErr.Err.Error())
}
