package iopopulate

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/oscaralateras/participant-inventory/pkg/errcode"
)

// NotConnectedError creates an error for when populate
// operation is attempted without database connection.
func NotConnectedError() error {
	msg := "Populate operation attempted without database connection"

	return &gn.Error{
		Code: errcode.DBNotConnectedError,
		Msg:  msg,
		Vars: nil,
		Err:  fmt.Errorf("not connected to database"),
	}
}

// TableMissingError creates an error for a dataset without its table.
func TableMissingError(dataset, table string) error {
	msg := `Table <em>%s</em> for dataset <em>%s</em> does not exist

<em>How to fix:</em>
  Run <em>invdb create</em> first`

	return &gn.Error{
		Code: errcode.PopulateTableMissingError,
		Msg:  msg,
		Vars: []any{table, dataset},
		Err:  fmt.Errorf("table %s does not exist", table),
	}
}

// ValueError creates an error for a cell that does not match the
// sql_type of its column.
func ValueError(dataset string, row int, column, value, sqlType string) error {
	msg := "Dataset <em>%s</em>, row %d, column <em>%s</em>: " +
		"value '%s' is not %s"

	vars := []any{dataset, row, column, value, sqlType}

	return &gn.Error{
		Code: errcode.PopulateValueError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("dataset %q row %d column %q: cannot convert %q to %s",
			dataset, row, column, value, sqlType),
	}
}

// CopyError creates an error for a failed table replacement.
func CopyError(dataset string, err error) error {
	msg := "Cannot load rows of dataset <em>%s</em>"

	return &gn.Error{
		Code: errcode.PopulateCopyError,
		Msg:  msg,
		Vars: []any{dataset},
		Err:  fmt.Errorf("failed to load dataset %s: %w", dataset, err),
	}
}

// AllDatasetsFailedError creates an error for when all
// datasets fail to load.
func AllDatasetsFailedError(count int) error {
	msg := `Failed number of datasets: <em>%d</em>`

	vars := []any{count}

	plural := "s"
	if count == 1 {
		plural = ""
	}

	return &gn.Error{
		Code: errcode.PopulateAllDatasetsFailedError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("%d dataset%s failed to load", count, plural),
	}
}

// CancelledError creates an error for cancelled population.
func CancelledError(err error) error {
	msg := "Population was cancelled"

	return &gn.Error{
		Code: errcode.BulkCancelledError,
		Msg:  msg,
		Err:  fmt.Errorf("population cancelled: %w", err),
	}
}
