package ioingest

import (
	"os"
	"path/filepath"
	"time"

	"github.com/gnames/gnfmt"
	"github.com/gnames/gnuuid"
	"github.com/oscaralateras/participant-inventory/pkg/ingest"
)

// ManifestFile is written next to cached datasets.
const ManifestFile = "manifest.json"

// Manifest describes the outcome of an import run that wrote a cache.
type Manifest struct {
	RunID    string          `json:"runId"`
	Created  string          `json:"created"`
	Format   string          `json:"format"`
	Datasets []ManifestEntry `json:"datasets"`
}

// ManifestEntry is the record of one dataset. ContentID is a UUID v5 of
// the canonical content, so unchanged data keeps its ID between runs.
type ManifestEntry struct {
	Dataset   string   `json:"dataset"`
	Status    string   `json:"status"`
	File      string   `json:"file,omitempty"`
	Rows      int      `json:"rows,omitempty"`
	Columns   []string `json:"columns,omitempty"`
	ContentID string   `json:"contentId,omitempty"`
	Error     string   `json:"error,omitempty"`
}

// NewManifest builds the manifest of a report.
func NewManifest(format string, r *ingest.Report) Manifest {
	res := Manifest{
		RunID:    r.RunID,
		Created:  time.Now().UTC().Format(time.RFC3339),
		Format:   format,
		Datasets: make([]ManifestEntry, len(r.Results)),
	}
	for i, v := range r.Results {
		e := ManifestEntry{Dataset: v.Dataset, Status: v.Status.String()}
		if v.Frame != nil {
			e.Rows = v.Frame.NumRows()
			e.Columns = v.Frame.Columns()
			e.ContentID = gnuuid.New(v.Frame.Content()).String()
		}
		if v.CachePath != "" {
			e.File = filepath.Base(v.CachePath)
		}
		switch {
		case v.Err != nil:
			e.Error = v.Err.Error()
		case v.CacheErr != nil:
			e.Error = v.CacheErr.Error()
		}
		res.Datasets[i] = e
	}
	return res
}

func writeManifest(dir, format string, r *ingest.Report) (string, error) {
	path := filepath.Join(dir, ManifestFile)
	enc := gnfmt.GNjson{Pretty: true}
	data, err := enc.Encode(NewManifest(format, r))
	if err != nil {
		return "", ManifestError(path, err)
	}
	if err = os.WriteFile(path, data, 0644); err != nil {
		return "", ManifestError(path, err)
	}
	return path, nil
}
