package schema

import (
	"fmt"
	"maps"
	"path"
	"slices"
	"strings"
)

// DefaultSummaryViewName is used when summary_view has no name.
const DefaultSummaryViewName = "inventory_summary"

// SummaryView is the SQL of the denormalized inventory view together with
// the columns it exposes.
type SummaryView struct {
	Name string
	// SQL creates the materialized view.
	SQL string
	// IndexSQL creates a unique index on the participant identifier.
	IndexSQL string
	// Columns lists every column of the view in select order.
	Columns []string
}

func (r *Registry) checkSummaryView(
	cfg SummaryViewConfig,
) (*SummaryViewConfig, error) {
	res := SummaryViewConfig{
		Name:    strings.TrimSpace(cfg.Name),
		Base:    strings.TrimSpace(cfg.Base),
		Include: make(map[string][]string, len(cfg.Include)),
	}
	if res.Name == "" {
		res.Name = DefaultSummaryViewName
	}
	if res.Base == "" {
		return nil, SummaryViewError("base dataset is not set")
	}

	var unknown []string
	if !r.HasDataset(res.Base) {
		unknown = append(unknown, res.Base)
	}
	for ds, patterns := range cfg.Include {
		if !r.HasDataset(ds) {
			unknown = append(unknown, ds)
		}
		for _, p := range patterns {
			if _, err := path.Match(p, ""); err != nil {
				return nil, SummaryViewError(
					fmt.Sprintf("bad column pattern '%s' for %s", p, ds))
			}
		}
		res.Include[ds] = slices.Clone(patterns)
	}
	for _, ds := range cfg.Flags {
		if !r.HasDataset(ds) {
			unknown = append(unknown, ds)
		}
	}
	if len(unknown) > 0 {
		slices.Sort(unknown)
		unknown = slices.Compact(unknown)
		return nil, SummaryViewError(
			"unknown datasets: " + strings.Join(unknown, ", "))
	}

	if len(cfg.Flags) == 0 {
		for _, ds := range r.names {
			if ds != res.Base {
				res.Flags = append(res.Flags, ds)
			}
		}
	} else {
		res.Flags = slices.Sorted(slices.Values(cfg.Flags))
		res.Flags = slices.Compact(res.Flags)
	}
	return &res, nil
}

// BuildSummaryView renders the configured summary view. Rows come from
// the base dataset; included columns and has_<dataset> flags are joined
// on the participant identifier.
func (r *Registry) BuildSummaryView() (SummaryView, error) {
	var res SummaryView
	cfg, ok := r.SummaryView()
	if !ok {
		return res, SummaryViewError("summary_view is not configured")
	}
	res.Name = cfg.Name
	id := r.idColumn
	base := quote(cfg.Base)

	seen := make(map[string]struct{})
	var selects []string
	add := func(table, col, alias string) {
		seen[alias] = struct{}{}
		res.Columns = append(res.Columns, alias)
		expr := fmt.Sprintf("%s.%s", quote(table), quote(col))
		if col != alias {
			expr = fmt.Sprintf("%s AS %s", expr, quote(alias))
		}
		selects = append(selects, expr)
	}

	for _, col := range r.TableColumns(cfg.Base) {
		add(cfg.Base, col, col)
	}

	includes := slices.Sorted(maps.Keys(cfg.Include))
	for _, ds := range includes {
		for _, col := range r.TableColumns(ds) {
			if col == id || !matchAny(cfg.Include[ds], col) {
				continue
			}
			if _, ok := seen[col]; ok {
				continue
			}
			add(ds, col, col)
		}
	}

	for _, ds := range cfg.Flags {
		alias := "has_" + ds
		if _, ok := seen[alias]; ok {
			continue
		}
		seen[alias] = struct{}{}
		res.Columns = append(res.Columns, alias)
		selects = append(selects, fmt.Sprintf("(%s.%s IS NOT NULL) AS %s",
			quote(ds), quote(id), quote(alias)))
	}

	joined := make(map[string]struct{})
	var joins []string
	for _, ds := range append(includes, cfg.Flags...) {
		if _, ok := joined[ds]; ok || ds == cfg.Base {
			continue
		}
		joined[ds] = struct{}{}
		joins = append(joins, fmt.Sprintf(
			"LEFT JOIN %s ON %s.%s = %s.%s",
			quote(ds), quote(ds), quote(id), base, quote(id)))
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "CREATE MATERIALIZED VIEW %s AS\nSELECT\n    ",
		quote(res.Name))
	sb.WriteString(strings.Join(selects, ",\n    "))
	fmt.Fprintf(&sb, "\nFROM %s", base)
	for _, v := range joins {
		sb.WriteString("\n")
		sb.WriteString(v)
	}
	res.SQL = sb.String()

	res.IndexSQL = fmt.Sprintf("CREATE UNIQUE INDEX ON %s (%s)",
		quote(res.Name), quote(id))
	return res, nil
}

func matchAny(patterns []string, col string) bool {
	for _, p := range patterns {
		if ok, _ := path.Match(p, col); ok {
			return true
		}
	}
	return false
}
