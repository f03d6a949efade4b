package iocache

import (
	"context"
	"encoding/csv"
	"os"
	"path/filepath"

	"github.com/oscaralateras/participant-inventory/pkg/frame"
)

type csvWriter struct {
	dir string
}

func (w *csvWriter) Format() string { return "csv" }

// Write stores the frame as CSV through a temporary file, so readers
// never see a partial file.
func (w *csvWriter) Write(
	_ context.Context,
	dataset string,
	f *frame.Frame,
) (string, error) {
	path := Path(w.dir, dataset, w.Format())

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+dataset+"-*.csv")
	if err != nil {
		return "", CacheWriteError(dataset, path, err)
	}
	defer os.Remove(tmp.Name())

	cw := csv.NewWriter(tmp)
	_ = cw.Write(f.Columns())
	for _, row := range f.Rows() {
		for i := range row {
			if frame.IsMissing(row[i]) {
				row[i] = ""
			}
		}
		_ = cw.Write(row)
	}
	cw.Flush()
	if err = cw.Error(); err != nil {
		tmp.Close()
		return "", CacheWriteError(dataset, path, err)
	}
	if err = tmp.Close(); err != nil {
		return "", CacheWriteError(dataset, path, err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return "", CacheWriteError(dataset, path, err)
	}
	return path, nil
}
