package ioingest

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cheggaaa/pb/v3"
	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
	"github.com/google/uuid"
	"github.com/oscaralateras/participant-inventory/internal/iocache"
	"github.com/oscaralateras/participant-inventory/pkg/config"
	"github.com/oscaralateras/participant-inventory/pkg/ingest"
	"github.com/oscaralateras/participant-inventory/pkg/schema"
	"golang.org/x/sync/errgroup"
)

type bulkImporter struct {
	cfg *config.Config
	reg *schema.Registry
	std ingest.Standardizer

	// quiet disables the progress bar.
	quiet bool
}

// NewBulkImporter creates a BulkImporter. Datasets are standardized by
// std, concurrently up to cfg.JobsNumber. When cfg.Ingest.WithCache is
// set, canonical copies are written to cfg.Ingest.CacheDir.
func NewBulkImporter(
	cfg *config.Config,
	reg *schema.Registry,
	std ingest.Standardizer,
) ingest.BulkImporter {
	return &bulkImporter{cfg: cfg, reg: reg, std: std}
}

// Import standardizes every dataset of the registry that has a file in
// dir. Results keep the sorted order of dataset names no matter in which
// order datasets finish.
func (b *bulkImporter) Import(
	ctx context.Context,
	dir string,
) (*ingest.Report, error) {
	startTime := time.Now()

	fi, err := os.Stat(dir)
	if err != nil {
		return nil, DirError(dir, err)
	}
	if !fi.IsDir() {
		return nil, DirError(dir, errors.New("not a directory"))
	}

	var cache iocache.Writer
	if b.cfg.Ingest.WithCache {
		cacheDir := b.cfg.Ingest.CacheDir
		if err = os.MkdirAll(cacheDir, 0755); err != nil {
			return nil, CacheDirError(cacheDir, err)
		}
		cache, err = iocache.New(b.cfg.Ingest.CacheFormat, cacheDir)
		if err != nil {
			return nil, CacheDirError(cacheDir, err)
		}
	}

	names := b.reg.DatasetNames()
	report := &ingest.Report{
		RunID:   uuid.NewString(),
		Results: make([]ingest.Result, len(names)),
	}
	slog.Info("Starting bulk import",
		"dir", dir,
		"datasets", len(names),
		"run_id", report.RunID,
	)

	var bar *pb.ProgressBar
	if !b.quiet {
		bar = newProgressBar(len(names), "Datasets: ")
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(b.cfg.JobsNumber, 1))
	for i, ds := range names {
		g.Go(func() error {
			if bar != nil {
				defer bar.Increment()
			}
			if err := gctx.Err(); err != nil {
				return CancelledError(err)
			}
			report.Results[i] = b.importDataset(gctx, dir, ds, cache)
			return nil
		})
	}
	err = g.Wait()
	if bar != nil {
		bar.Finish()
	}
	if err != nil {
		return nil, err
	}

	if cache != nil {
		path, err := writeManifest(b.cfg.Ingest.CacheDir, cache.Format(), report)
		if err != nil {
			report.ManifestErr = err
			slog.Error("Failed to write import manifest",
				"dir", b.cfg.Ingest.CacheDir,
				"error", err,
			)
			if !b.quiet {
				gn.PrintErrorMessage(err)
			}
		} else {
			report.ManifestPath = path
			slog.Info("Wrote import manifest", "file", path)
		}
	}

	b.summary(report, time.Since(startTime))
	return report, nil
}

func (b *bulkImporter) importDataset(
	ctx context.Context,
	dir, dataset string,
	cache iocache.Writer,
) ingest.Result {
	res := ingest.Result{Dataset: dataset}

	def, _ := b.reg.Dataset(dataset)
	fileName := strings.TrimSpace(def.Source.FileName)
	if fileName == "" {
		res.Status = ingest.Skipped
		res.Err = schema.SourceConfigError(dataset, "file_name is not set")
		slog.Warn("Dataset has no source file_name, skipping",
			"dataset", dataset)
		return res
	}

	res.Path = filepath.Join(dir, fileName)
	if _, err := os.Stat(res.Path); errors.Is(err, fs.ErrNotExist) {
		res.Status = ingest.Skipped
		res.Err = FileMissingError(dataset, res.Path, err)
		slog.Warn("Dataset file not found, skipping",
			"dataset", dataset,
			"file", fileName,
		)
		return res
	}

	f, err := b.std.Standardize(ctx, dataset, res.Path, "")
	if err != nil {
		res.Status = ingest.Failed
		res.Err = err
		slog.Error("Failed to load dataset",
			"dataset", dataset,
			"file", fileName,
			"error", err,
		)
		return res
	}

	res.Status = ingest.Loaded
	res.Frame = f
	slog.Info("Loaded dataset",
		"dataset", dataset,
		"rows", f.NumRows(),
		"columns", f.NumColumns(),
	)

	if cache == nil {
		return res
	}
	path, err := cache.Write(ctx, dataset, f)
	if err != nil {
		res.CacheErr = err
		slog.Error("Failed to write cache",
			"dataset", dataset,
			"error", err,
		)
		return res
	}
	res.CachePath = path
	slog.Info("Wrote cache",
		"dataset", dataset,
		"file", filepath.Base(path),
	)
	return res
}

func (b *bulkImporter) summary(r *ingest.Report, d time.Duration) {
	loaded := r.Count(ingest.Loaded)
	skipped := r.Count(ingest.Skipped)
	failed := r.Count(ingest.Failed)

	var rows int
	for _, f := range r.Frames() {
		rows += f.NumRows()
	}

	slog.Info("Bulk import complete",
		"loaded", loaded,
		"skipped", skipped,
		"failed", failed,
		"rows", rows,
		"duration", gnfmt.TimeString(d.Seconds()),
	)

	if b.quiet {
		return
	}
	gn.Info(`Bulk import complete
Datasets loaded: %d, skipped: %d, failed: %d, rows: %s.
Elapsed time: <em>%s</em>`,
		loaded, skipped, failed,
		humanize.Comma(int64(rows)),
		gnfmt.TimeString(d.Seconds()),
	)
	if failed > 0 {
		gn.Warn("Failed datasets: <em>%s</em>",
			strings.Join(r.Datasets(ingest.Failed), ", "))
	}
}

func newProgressBar(total int, prefix string) *pb.ProgressBar {
	bar := pb.Full.Start(total)
	bar.Set("prefix", prefix)
	bar.Set(pb.CleanOnFinish, true)
	return bar
}
