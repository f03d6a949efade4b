// Package iooptimize implements Optimizer interface. This is an impure
// I/O package that builds the participant summary materialized view
// and refreshes planner statistics.
package iooptimize

import (
	"context"
	"log/slog"
	"slices"
	"time"

	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
	"github.com/oscaralateras/participant-inventory/pkg/db"
	"github.com/oscaralateras/participant-inventory/pkg/lifecycle"
	"github.com/oscaralateras/participant-inventory/pkg/schema"
)

// optimizer implements the Optimizer interface.
type optimizer struct {
	reg      *schema.Registry
	operator db.Operator
}

// NewOptimizer creates a new Optimizer.
func NewOptimizer(reg *schema.Registry, op db.Operator) lifecycle.Optimizer {
	return &optimizer{reg: reg, operator: op}
}

// Optimize executes 4 sequential steps:
//  1. Check that every table used by the summary view exists
//  2. Drop existing materialized views
//  3. Create the summary view with a unique participant index
//  4. Run VACUUM ANALYZE to update statistics
func (o *optimizer) Optimize(ctx context.Context) error {
	pool := o.operator.Pool()
	if pool == nil {
		return NotConnectedError()
	}

	cfg, ok := o.reg.SummaryView()
	if !ok {
		return NoSummaryViewError()
	}
	view, err := o.reg.BuildSummaryView()
	if err != nil {
		return ViewCreationError(cfg.Name, err)
	}

	startTime := time.Now()
	slog.Info("Starting database optimization", "view", view.Name)

	slog.Info("Step 1/4: Checking dataset tables")
	for _, ds := range viewDatasets(cfg) {
		table := o.reg.TableName(ds)
		exists, err := o.operator.TableExists(ctx, table)
		if err != nil {
			return err
		}
		if !exists {
			return MissingTableError(view.Name, table)
		}
	}

	slog.Info("Step 2/4: Dropping materialized views")
	if err = o.operator.DropMaterializedViews(ctx); err != nil {
		return err
	}

	slog.Info("Step 3/4: Creating summary view", "columns", len(view.Columns))
	if _, err = pool.Exec(ctx, view.SQL); err != nil {
		return ViewCreationError(view.Name, err)
	}
	if _, err = pool.Exec(ctx, view.IndexSQL); err != nil {
		return IndexError(view.Name, err)
	}

	slog.Info("Step 4/4: Running VACUUM ANALYZE")
	// VACUUM cannot run inside a transaction block.
	if _, err = pool.Exec(ctx, "VACUUM ANALYZE"); err != nil {
		return AnalyzeError(err)
	}

	dur := time.Since(startTime)
	slog.Info("Database optimization completed",
		"view", view.Name,
		"duration", gnfmt.TimeString(dur.Seconds()),
	)
	gn.Info("Summary view <em>%s</em> is ready (%d columns)",
		view.Name, len(view.Columns))
	return nil
}

// viewDatasets returns sorted datasets joined by the summary view.
func viewDatasets(cfg schema.SummaryViewConfig) []string {
	res := []string{cfg.Base}
	for ds := range cfg.Include {
		res = append(res, ds)
	}
	res = append(res, cfg.Flags...)
	slices.Sort(res)
	return slices.Compact(res)
}
