package iooptimize

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/oscaralateras/participant-inventory/pkg/errcode"
)

// NotConnectedError creates an error for when optimization
// is attempted without database connection.
func NotConnectedError() error {
	msg := "Optimize operation attempted without database connection"

	return &gn.Error{
		Code: errcode.DBNotConnectedError,
		Msg:  msg,
		Err:  fmt.Errorf("not connected to database"),
	}
}

// NoSummaryViewError is returned when datasets.yaml has no
// summary_view block.
func NoSummaryViewError() error {
	msg := `No summary view is configured

<em>How to fix:</em>
  Add a <em>summary_view</em> block with a <em>base</em> dataset
  to datasets.yaml`

	return &gn.Error{
		Code: errcode.OptimizerNoSummaryViewError,
		Msg:  msg,
		Err:  fmt.Errorf("summary_view is not configured"),
	}
}

// MissingTableError is returned when a table used by the view does
// not exist.
func MissingTableError(view, table string) error {
	msg := `Summary view <em>%s</em> needs table <em>%s</em>

<em>How to fix:</em>
  Run <em>invdb create</em> and <em>invdb populate</em> first`

	return &gn.Error{
		Code: errcode.OptimizerViewCreationError,
		Msg:  msg,
		Vars: []any{view, table},
		Err:  fmt.Errorf("view %s: table %s does not exist", view, table),
	}
}

// ViewCreationError creates an error for a view that could not be
// created.
func ViewCreationError(view string, err error) error {
	msg := "Cannot create summary view <em>%s</em>"

	return &gn.Error{
		Code: errcode.OptimizerViewCreationError,
		Msg:  msg,
		Vars: []any{view},
		Err:  fmt.Errorf("failed to create view %s: %w", view, err),
	}
}

// IndexError creates an error for a failed view index.
func IndexError(view string, err error) error {
	msg := "Cannot index summary view <em>%s</em>"

	return &gn.Error{
		Code: errcode.OptimizerIndexError,
		Msg:  msg,
		Vars: []any{view},
		Err:  fmt.Errorf("failed to index view %s: %w", view, err),
	}
}

// AnalyzeError creates an error for a failed VACUUM ANALYZE.
func AnalyzeError(err error) error {
	msg := "Cannot update database statistics"

	return &gn.Error{
		Code: errcode.OptimizerAnalyzeError,
		Msg:  msg,
		Err:  fmt.Errorf("VACUUM ANALYZE failed: %w", err),
	}
}
