package ioquery

import (
	"fmt"
	"strings"

	"github.com/gnames/gn"
	"github.com/oscaralateras/participant-inventory/pkg/errcode"
)

// FilterError reports a filter that is not "key=value".
func FilterError(s string) error {
	msg := "Filter <em>%s</em> must look like column=value, " +
		"column_min=value or column_max=value"
	return &gn.Error{
		Code: errcode.QueryFilterError,
		Msg:  msg,
		Vars: []any{s},
		Err:  fmt.Errorf("bad filter %q", s),
	}
}

// UnknownColumnError reports a filter column absent from the view.
func UnknownColumnError(column string, columns []string) error {
	names := strings.Join(columns, ", ")
	msg := "Unknown column <em>%s</em>. Available columns: %s"
	return &gn.Error{
		Code: errcode.QueryUnknownColumnError,
		Msg:  msg,
		Vars: []any{column, names},
		Err:  fmt.Errorf("unknown column %q (available: %s)", column, names),
	}
}

// ExecError wraps a failed count query.
func ExecError(view string, err error) error {
	msg := `Cannot query summary view <em>%s</em>

<em>How to fix:</em>
  Run <em>invdb optimize</em> to build the view`
	return &gn.Error{
		Code: errcode.QueryExecError,
		Msg:  msg,
		Vars: []any{view},
		Err:  fmt.Errorf("count over %s: %w", view, err),
	}
}

// NotConnectedError creates an error for a query without connection.
func NotConnectedError() error {
	msg := "Query attempted without database connection"
	return &gn.Error{
		Code: errcode.DBNotConnectedError,
		Msg:  msg,
		Err:  fmt.Errorf("not connected to database"),
	}
}
