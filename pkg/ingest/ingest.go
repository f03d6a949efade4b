// Package ingest defines contracts for turning raw dataset files into
// canonical frames, and the per-dataset outcome of a bulk import.
package ingest

import (
	"context"
	"slices"

	"github.com/oscaralateras/participant-inventory/pkg/frame"
)

// Standardizer converts one raw file of a dataset into its canonical
// frame.
type Standardizer interface {
	// Standardize reads path as the given dataset. A non-empty sheet
	// overrides the configured worksheet of spreadsheet sources.
	Standardize(ctx context.Context, dataset, path, sheet string) (*frame.Frame, error)
}

// BulkImporter standardizes every dataset of a directory. Failures of
// individual datasets are recorded in the report and never abort the run.
type BulkImporter interface {
	// Import processes dir. Only directory level problems (missing
	// directory, unwritable cache directory) are returned as errors.
	Import(ctx context.Context, dir string) (*Report, error)
}

// Status is the outcome of one dataset in a bulk import.
type Status int

const (
	// Loaded means the dataset was standardized.
	Loaded Status = iota
	// Skipped means there was nothing to load: no file_name configured or
	// no such file in the directory.
	Skipped
	// Failed means standardization raised an error.
	Failed
)

// String returns a lowercase label of the status.
func (s Status) String() string {
	switch s {
	case Loaded:
		return "loaded"
	case Skipped:
		return "skipped"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// Result is the outcome of one dataset.
type Result struct {
	Dataset string
	// Path is the raw file, empty when no file_name is configured.
	Path   string
	Status Status
	// Frame is set for loaded datasets.
	Frame *frame.Frame
	// Err explains skipped and failed datasets.
	Err error
	// CachePath is the written cache file, if any.
	CachePath string
	// CacheErr is set when the dataset loaded but its cache file could
	// not be written.
	CacheErr error
}

// Report collects results of a bulk import ordered by dataset name.
type Report struct {
	// RunID identifies the import run.
	RunID   string
	Results []Result
	// ManifestPath is the written manifest.json, if any.
	ManifestPath string
	// ManifestErr is set when the manifest could not be written. Results
	// stay valid.
	ManifestErr error
}

// Frames returns canonical frames of loaded datasets keyed by dataset.
func (r *Report) Frames() map[string]*frame.Frame {
	res := make(map[string]*frame.Frame)
	for _, v := range r.Results {
		if v.Status == Loaded {
			res[v.Dataset] = v.Frame
		}
	}
	return res
}

// Datasets returns names of datasets with the given status, sorted.
func (r *Report) Datasets(s Status) []string {
	var res []string
	for _, v := range r.Results {
		if v.Status == s {
			res = append(res, v.Dataset)
		}
	}
	slices.Sort(res)
	return res
}

// Count returns the number of datasets with the given status.
func (r *Report) Count(s Status) int {
	var res int
	for _, v := range r.Results {
		if v.Status == s {
			res++
		}
	}
	return res
}
