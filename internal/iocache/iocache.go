// Package iocache writes canonical frames to the cache directory. Cached
// copies keep every cell as text; missing values become NULL in
// database formats and empty fields in CSV.
package iocache

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/jackc/pgx/v5"
	"github.com/oscaralateras/participant-inventory/pkg/frame"
)

// Writer stores one canonical dataset.
type Writer interface {
	// Write stores the frame of a dataset and returns the written path.
	Write(ctx context.Context, dataset string, f *frame.Frame) (string, error)
	// Format returns the cache format name.
	Format() string
}

// New returns a Writer of the given format ("parquet", "sqlite" or
// "csv") that writes into dir.
func New(format, dir string) (Writer, error) {
	switch format {
	case "parquet":
		return &parquetWriter{dir: dir}, nil
	case "sqlite":
		return &sqliteWriter{dir: dir}, nil
	case "csv":
		return &csvWriter{dir: dir}, nil
	default:
		return nil, fmt.Errorf("unknown cache format %q", format)
	}
}

// Path returns the cache file of a dataset for a format.
func Path(dir, dataset, format string) string {
	return filepath.Join(dir, dataset+"."+format)
}

func quote(s string) string {
	return pgx.Identifier{s}.Sanitize()
}

// nullable turns missing values into SQL NULL.
func nullable(row []string) []any {
	res := make([]any, len(row))
	for i, v := range row {
		if frame.IsMissing(v) {
			continue
		}
		res[i] = v
	}
	return res
}
