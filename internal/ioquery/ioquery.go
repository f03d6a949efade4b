// Package ioquery counts participants of the summary view that match a
// set of column filters. Column names are checked against the view and
// values are always bound as parameters.
package ioquery

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/oscaralateras/participant-inventory/pkg/db"
	"github.com/oscaralateras/participant-inventory/pkg/schema"
)

// Op is a comparison operator of a filter.
type Op string

const (
	Eq  Op = "="
	Gte Op = ">="
	Lte Op = "<="
)

// Filter is one condition over a column of the summary view.
type Filter struct {
	Column string `json:"column"`
	Op     Op     `json:"op"`
	Value  string `json:"value"`
}

// ParseFilter parses "key=value". A key ending in _min means the column
// is at least the value, _max means at most, any other key is an
// equality.
func ParseFilter(s string) (Filter, error) {
	var res Filter
	key, val, ok := strings.Cut(s, "=")
	key = strings.TrimSpace(key)
	val = strings.TrimSpace(val)
	if !ok || key == "" || val == "" {
		return res, FilterError(s)
	}

	res.Value = val
	switch {
	case strings.HasSuffix(key, "_min"):
		res.Column, res.Op = strings.TrimSuffix(key, "_min"), Gte
	case strings.HasSuffix(key, "_max"):
		res.Column, res.Op = strings.TrimSuffix(key, "_max"), Lte
	default:
		res.Column, res.Op = key, Eq
	}
	if res.Column == "" {
		return res, FilterError(s)
	}
	return res, nil
}

// ParseFilters parses every "key=value" string.
func ParseFilters(ss []string) ([]Filter, error) {
	res := make([]Filter, 0, len(ss))
	for _, v := range ss {
		f, err := ParseFilter(v)
		if err != nil {
			return nil, err
		}
		res = append(res, f)
	}
	return res, nil
}

// resolve keeps real columns whose names end in _min or _max as
// equality filters.
func resolve(f Filter, columns []string) (Filter, error) {
	if slices.Contains(columns, f.Column) {
		return f, nil
	}
	if f.Op != Eq {
		suffix := "_min"
		if f.Op == Lte {
			suffix = "_max"
		}
		if key := f.Column + suffix; slices.Contains(columns, key) {
			return Filter{Column: key, Op: Eq, Value: f.Value}, nil
		}
	}
	return f, UnknownColumnError(f.Column, columns)
}

// BuildCount returns the COUNT query over the view and its arguments.
func BuildCount(
	view schema.SummaryView,
	filters []Filter,
) (string, []any, error) {
	var sb strings.Builder
	sb.WriteString("SELECT COUNT(*) FROM ")
	sb.WriteString(pgx.Identifier{view.Name}.Sanitize())

	args := make([]any, 0, len(filters))
	for i, v := range filters {
		f, err := resolve(v, view.Columns)
		if err != nil {
			return "", nil, err
		}
		if i == 0 {
			sb.WriteString(" WHERE ")
		} else {
			sb.WriteString(" AND ")
		}
		args = append(args, f.Value)
		fmt.Fprintf(&sb, "%s %s $%d",
			pgx.Identifier{f.Column}.Sanitize(), f.Op, len(args))
	}
	return sb.String(), args, nil
}

// Count returns the number of participants in the view matching all
// filters.
func Count(
	ctx context.Context,
	op db.Operator,
	view schema.SummaryView,
	filters []Filter,
) (int64, error) {
	pool := op.Pool()
	if pool == nil {
		return 0, NotConnectedError()
	}

	q, args, err := BuildCount(view, filters)
	if err != nil {
		return 0, err
	}
	slog.Debug("Counting participants", "query", q, "args", args)

	var res int64
	if err = pool.QueryRow(ctx, q, args...).Scan(&res); err != nil {
		return 0, ExecError(view.Name, err)
	}
	return res, nil
}
