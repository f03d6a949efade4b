package iopopulate

import (
	"math"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/oscaralateras/participant-inventory/pkg/frame"
	"github.com/oscaralateras/participant-inventory/pkg/schema"
)

// convertRows turns text cells into typed values according to the
// sql_type of their columns. Row numbers in errors are 1-based data rows.
func convertRows(
	dataset string,
	f *frame.Frame,
	types map[string]string,
) ([][]any, error) {
	cols := f.Columns()
	colTypes := make([]string, len(cols))
	for i, v := range cols {
		colTypes[i] = types[v]
	}

	res := make([][]any, f.NumRows())
	for i, row := range f.Rows() {
		vals := make([]any, len(row))
		for j, cell := range row {
			v, err := convertValue(colTypes[j], cell)
			if err != nil {
				return nil, ValueError(dataset, i+1, cols[j], cell, colTypes[j])
			}
			vals[j] = v
		}
		res[i] = vals
	}
	return res, nil
}

// convertValue converts one cell. Missing values become typed NULLs.
func convertValue(sqlType, s string) (any, error) {
	missing := frame.IsMissing(s)
	t := strings.TrimSpace(s)

	switch sqlType {
	case schema.TypeInteger:
		if missing {
			return pgtype.Int8{}, nil
		}
		i, err := parseInt(t)
		if err != nil {
			return nil, err
		}
		return pgtype.Int8{Int64: i, Valid: true}, nil
	case schema.TypeFloat:
		if missing {
			return pgtype.Float8{}, nil
		}
		f, err := strconv.ParseFloat(t, 64)
		if err != nil {
			return nil, err
		}
		return pgtype.Float8{Float64: f, Valid: true}, nil
	case schema.TypeBoolean:
		if missing {
			return pgtype.Bool{}, nil
		}
		b, err := parseBool(t)
		if err != nil {
			return nil, err
		}
		return pgtype.Bool{Bool: b, Valid: true}, nil
	default:
		if missing {
			return pgtype.Text{}, nil
		}
		return pgtype.Text{String: s, Valid: true}, nil
	}
}

// parseInt accepts whole numbers written as floats ("34.0"), which
// spreadsheet exports often produce.
func parseInt(s string) (int64, error) {
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if f != math.Trunc(f) || math.IsInf(f, 0) ||
		f >= 1<<63 || f < -(1<<63) {
		return 0, strconv.ErrSyntax
	}
	return int64(f), nil
}

func parseBool(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "true", "t", "yes", "y", "1":
		return true, nil
	case "false", "f", "no", "n", "0":
		return false, nil
	default:
		return false, strconv.ErrSyntax
	}
}
