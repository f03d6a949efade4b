package schema

import (
	"fmt"
	"strings"

	"github.com/gnames/gn"
	"github.com/oscaralateras/participant-inventory/pkg/errcode"
)

// BlankVariableFieldError reports a variables.csv line with empty key
// fields.
func BlankVariableFieldError(line int, fields []string) error {
	msg := "variables.csv line <em>%d</em> has blank %s"
	vars := []any{line, strings.Join(fields, ", ")}
	return &gn.Error{
		Code: errcode.SchemaVariablesRowError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("variables.csv line %d: blank %s",
			line, strings.Join(fields, ", ")),
	}
}

// SQLTypeError reports an unsupported sql_type value.
func SQLTypeError(line int, variable, typ string) error {
	msg := "variables.csv line <em>%d</em>: unsupported sql_type " +
		"<em>%s</em> for <em>%s</em>"
	vars := []any{line, typ, variable}
	return &gn.Error{
		Code: errcode.SchemaSQLTypeError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf(
			"variables.csv line %d: sql_type %q of %q is not one of %s",
			line, typ, variable, strings.Join(SQLTypes, ", ")),
	}
}

// AmbiguousMappingError is returned when one source column is mapped to
// two canonical names within a dataset.
func AmbiguousMappingError(dataset, source, first, second string) error {
	msg := "Ambiguous mapping in <em>%s</em>: column <em>%s</em> " +
		"maps to both <em>%s</em> and <em>%s</em>"
	vars := []any{dataset, source, first, second}
	return &gn.Error{
		Code: errcode.SchemaAmbiguousMappingError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf(
			"ambiguous mapping in dataset %q: source column %q maps to %q and %q",
			dataset, source, first, second),
	}
}

// SchemaMismatchError lists datasets used in variables.csv but missing
// from datasets.yaml.
func SchemaMismatchError(undefined []string) error {
	names := strings.Join(undefined, ", ")
	msg := "Datasets in variables.csv are not defined in datasets.yaml: " +
		"<em>%s</em>"
	return &gn.Error{
		Code: errcode.SchemaMismatchError,
		Msg:  msg,
		Vars: []any{names},
		Err:  fmt.Errorf("datasets not defined in datasets.yaml: %s", names),
	}
}

// SummaryViewError reports an invalid summary_view block.
func SummaryViewError(reason string) error {
	msg := "Invalid summary_view: %s"
	return &gn.Error{
		Code: errcode.SchemaSummaryViewError,
		Msg:  msg,
		Vars: []any{reason},
		Err:  fmt.Errorf("summary_view: %s", reason),
	}
}

// UnknownDatasetError is returned for a dataset name absent from the
// registry. It lists known datasets.
func UnknownDatasetError(dataset string, known []string) error {
	names := strings.Join(known, ", ")
	msg := "Unknown dataset <em>%s</em>. Known datasets: %s"
	return &gn.Error{
		Code: errcode.StandardizeUnknownDatasetError,
		Msg:  msg,
		Vars: []any{dataset, names},
		Err:  fmt.Errorf("unknown dataset %q (known: %s)", dataset, names),
	}
}

// SourceConfigError reports an invalid source block of a dataset.
func SourceConfigError(dataset, reason string) error {
	msg := "Bad source configuration of <em>%s</em>: %s"
	return &gn.Error{
		Code: errcode.StandardizeSourceConfigError,
		Msg:  msg,
		Vars: []any{dataset, reason},
		Err:  fmt.Errorf("source of dataset %q: %s", dataset, reason),
	}
}
