// Package iopopulate implements Populator interface for loading
// canonical datasets into PostgreSQL.
// This is an impure I/O package that performs bulk COPY inserts.
package iopopulate

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
	"github.com/jackc/pgx/v5"
	"github.com/oscaralateras/participant-inventory/pkg/config"
	"github.com/oscaralateras/participant-inventory/pkg/db"
	"github.com/oscaralateras/participant-inventory/pkg/frame"
	"github.com/oscaralateras/participant-inventory/pkg/ingest"
	"github.com/oscaralateras/participant-inventory/pkg/lifecycle"
	"github.com/oscaralateras/participant-inventory/pkg/schema"
)

// populator implements the Populator interface.
type populator struct {
	cfg      *config.Config
	reg      *schema.Registry
	operator db.Operator
}

// New creates a new Populator.
func New(
	cfg *config.Config,
	reg *schema.Registry,
	op db.Operator,
) lifecycle.Populator {
	return &populator{cfg: cfg, reg: reg, operator: op}
}

// Populate replaces the content of dataset tables with the loaded
// datasets of the report, one transaction per dataset.
func (p *populator) Populate(
	ctx context.Context,
	report *ingest.Report,
) error {
	pool := p.operator.Pool()
	if pool == nil {
		return NotConnectedError()
	}

	startTime := time.Now()
	frames := report.Frames()
	datasets := report.Datasets(ingest.Loaded)
	if len(datasets) == 0 {
		gn.Warn("No standardized datasets to load")
		return nil
	}
	slog.Info("Starting database population", "datasets", len(datasets))

	successCount := 0
	errorCount := 0
	var rowsTotal int

	for i, ds := range datasets {
		dsStartTime := time.Now()

		fmt.Println(strings.Repeat("─", 60))
		gn.Info("Dataset [%d/%d]: <em>%s</em>", i+1, len(datasets), ds)

		select {
		case <-ctx.Done():
			return CancelledError(ctx.Err())
		default:
		}

		f := frames[ds]
		err := p.loadDataset(ctx, ds, f)
		if err != nil {
			errorCount++
			slog.Error("Failed to load dataset",
				"dataset", ds,
				"error", err,
			)
			gn.PrintErrorMessage(err)
			continue
		}

		successCount++
		rowsTotal += f.NumRows()
		dur := time.Since(dsStartTime)
		slog.Info("Dataset loaded",
			"dataset", ds,
			"rows", f.NumRows(),
			"duration", gnfmt.TimeString(dur.Seconds()),
		)
		gn.Info("Loaded %s rows in %s",
			humanize.Comma(int64(f.NumRows())),
			gnfmt.TimeString(dur.Seconds()),
		)
	}

	totalDuration := time.Since(startTime)
	slog.Info("Population complete",
		"success", successCount,
		"errors", errorCount,
		"total", len(datasets),
		"rows", rowsTotal,
		"duration", gnfmt.TimeString(totalDuration.Seconds()),
	)
	gn.Info(`Population complete
Datasets succeeded: %d, failed %d, total %d.
Rows loaded: %s. Elapsed time: <em>%s</em>
`,
		successCount,
		errorCount,
		len(datasets),
		humanize.Comma(int64(rowsTotal)),
		gnfmt.TimeString(totalDuration.Seconds()),
	)

	if errorCount > 0 && successCount == 0 {
		return AllDatasetsFailedError(errorCount)
	}

	if errorCount > 0 {
		slog.Warn("Some datasets failed to load",
			"failed", errorCount,
			"succeeded", successCount)
	}
	return nil
}

// loadDataset converts every value before the table is touched, so a
// bad value leaves the previous content in place.
func (p *populator) loadDataset(
	ctx context.Context,
	dataset string,
	f *frame.Frame,
) error {
	table := p.reg.TableName(dataset)
	exists, err := p.operator.TableExists(ctx, table)
	if err != nil {
		return err
	}
	if !exists {
		return TableMissingError(dataset, table)
	}

	cols := f.Columns()
	rows, err := convertRows(dataset, f, p.reg.SQLTypes(dataset))
	if err != nil {
		return err
	}

	tx, err := p.operator.Pool().Begin(ctx)
	if err != nil {
		return CopyError(dataset, err)
	}
	defer tx.Rollback(ctx)

	del := "DELETE FROM " + pgx.Identifier{table}.Sanitize()
	if _, err = tx.Exec(ctx, del); err != nil {
		return CopyError(dataset, err)
	}

	batchSize := max(p.cfg.Database.BatchSize, 1)
	for start := 0; start < len(rows); start += batchSize {
		end := min(start+batchSize, len(rows))
		_, err = tx.CopyFrom(
			ctx,
			pgx.Identifier{table},
			cols,
			pgx.CopyFromRows(rows[start:end]),
		)
		if err != nil {
			return CopyError(dataset, err)
		}
		slog.Debug("Copied batch",
			"dataset", dataset,
			"rows", end,
			"total", len(rows),
		)
	}

	if err = tx.Commit(ctx); err != nil {
		return CopyError(dataset, err)
	}
	return nil
}
