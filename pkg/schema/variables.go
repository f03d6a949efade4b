package schema

import (
	"slices"
	"strings"
)

// VariableHeaders are the columns variables.csv must contain.
var VariableHeaders = []string{
	"dataset", "source_column", "variable_name", "is_required", "sql_type",
}

var truthy = map[string]struct{}{
	"true": {}, "1": {}, "yes": {}, "y": {},
}

// MissingHeaders returns the required variables.csv headers absent from
// header, in the order of VariableHeaders.
func MissingHeaders(header []string) []string {
	var res []string
	for _, v := range VariableHeaders {
		if !slices.Contains(header, v) {
			res = append(res, v)
		}
	}
	return res
}

// IsTruthy reports whether an is_required cell means "required".
func IsTruthy(s string) bool {
	_, ok := truthy[strings.ToLower(strings.TrimSpace(s))]
	return ok
}

// NormalizeSQLType upper-cases a sql_type cell and applies the TEXT
// default. The second value is false for unsupported types.
func NormalizeSQLType(s string) (string, bool) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "" {
		return TypeText, true
	}
	return s, slices.Contains(SQLTypes, s)
}

// ParseVariableRow validates one variables.csv record given as a
// header-to-cell map. Every cell is trimmed.
func ParseVariableRow(line int, rec map[string]string) (VariableRow, error) {
	get := func(k string) string {
		return strings.TrimSpace(rec[k])
	}

	res := VariableRow{
		Line:         line,
		Dataset:      get("dataset"),
		SourceColumn: get("source_column"),
		VariableName: get("variable_name"),
		IsRequired:   IsTruthy(get("is_required")),
	}

	var blank []string
	if res.Dataset == "" {
		blank = append(blank, "dataset")
	}
	if res.SourceColumn == "" {
		blank = append(blank, "source_column")
	}
	if res.VariableName == "" {
		blank = append(blank, "variable_name")
	}
	if len(blank) > 0 {
		return res, BlankVariableFieldError(line, blank)
	}

	typ, ok := NormalizeSQLType(get("sql_type"))
	if !ok {
		return res, SQLTypeError(line, res.VariableName, typ)
	}
	res.SQLType = typ
	return res, nil
}
