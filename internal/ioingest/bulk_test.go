package ioingest

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/oscaralateras/participant-inventory/pkg/config"
	"github.com/oscaralateras/participant-inventory/pkg/errcode"
	"github.com/oscaralateras/participant-inventory/pkg/ingest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testImporter(t *testing.T, opts ...config.Option) *bulkImporter {
	t.Helper()
	cfg := config.New()
	cfg.Update(append([]config.Option{config.OptJobsNumber(2)}, opts...))
	reg := testRegistry(t)
	return &bulkImporter{
		cfg:   cfg,
		reg:   reg,
		std:   NewStandardizer(reg),
		quiet: true,
	}
}

func resultOf(t *testing.T, r *ingest.Report, dataset string) ingest.Result {
	t.Helper()
	for _, v := range r.Results {
		if v.Dataset == dataset {
			return v
		}
	}
	t.Fatalf("no result for %s", dataset)
	return ingest.Result{}
}

// TestImport_PartialSuccess verifies a bad file never aborts the run
// and only good datasets are returned.
func TestImport_PartialSuccess(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "covariates.csv", "SubjID,Age\nS01,34\nS02,41\n")
	writeFile(t, dir, "dti.tsv", "ID\tFA_old\tFA_new\nS01\t0.4\t0.5\n")

	report, err := testImporter(t).Import(context.Background(), dir)
	require.NoError(t, err)
	assert.NotEmpty(t, report.RunID)

	names := make([]string, len(report.Results))
	for i, v := range report.Results {
		names[i] = v.Dataset
	}
	assert.Equal(t, []string{
		"basic_covariates", "dti", "empty_mapping", "notes", "symptoms",
	}, names)

	frames := report.Frames()
	require.Len(t, frames, 1)
	assert.Equal(t, 2, frames["basic_covariates"].NumRows())

	assert.Equal(t, []string{"dti"}, report.Datasets(ingest.Failed))
	assert.Equal(t, []string{"empty_mapping", "notes", "symptoms"},
		report.Datasets(ingest.Skipped))

	dti := resultOf(t, report, "dti")
	assert.Equal(t, errcode.StandardizeDuplicateColumnsError,
		gnError(t, dti.Err).Code)

	notes := resultOf(t, report, "notes")
	assert.Empty(t, notes.Path)
	assert.Equal(t, errcode.StandardizeSourceConfigError,
		gnError(t, notes.Err).Code)

	symptoms := resultOf(t, report, "symptoms")
	assert.Equal(t, filepath.Join(dir, "symptoms.xlsx"), symptoms.Path)
	assert.Equal(t, errcode.StandardizeFileMissingError,
		gnError(t, symptoms.Err).Code)
}

// TestImport_MissingRequired verifies a dataset without a required
// column fails while the other dataset still loads.
func TestImport_MissingRequired(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "covariates.csv", "SubjID,Dx\nS01,MDD\nS02,HC\n")
	writeFile(t, dir, "dti.tsv", "ID\tFA_new\nS01\t0.5\nS02\t0.6\n")

	report, err := testImporter(t).Import(context.Background(), dir)
	require.NoError(t, err)

	assert.Equal(t, []string{"dti"}, report.Datasets(ingest.Loaded))
	assert.Equal(t, []string{"basic_covariates"},
		report.Datasets(ingest.Failed))

	cov := resultOf(t, report, "basic_covariates")
	gnErr := gnError(t, cov.Err)
	assert.Equal(t, errcode.StandardizeMissingRequiredError, gnErr.Code)
	assert.Contains(t, gnErr.Err.Error(), "age")

	frames := report.Frames()
	require.Len(t, frames, 1)
	assert.Equal(t, []string{"participant_id", "fa"}, frames["dti"].Columns())
	assert.Equal(t, 2, frames["dti"].NumRows())
}

// TestImport_ManifestError verifies a manifest that cannot be written
// keeps the report of loaded and cached datasets.
func TestImport_ManifestError(t *testing.T) {
	dir := t.TempDir()
	cacheDir := t.TempDir()
	writeFile(t, dir, "covariates.csv", "SubjID,Age\nS01,34\n")
	require.NoError(t, os.Mkdir(filepath.Join(cacheDir, ManifestFile), 0755))

	b := testImporter(t,
		config.OptIngestWithCache(true),
		config.OptIngestCacheDir(cacheDir),
		config.OptIngestCacheFormat("csv"),
	)
	report, err := b.Import(context.Background(), dir)
	require.NoError(t, err)
	require.NotNil(t, report)

	require.Error(t, report.ManifestErr)
	assert.Equal(t, errcode.BulkManifestError,
		gnError(t, report.ManifestErr).Code)
	assert.Empty(t, report.ManifestPath)

	cov := resultOf(t, report, "basic_covariates")
	assert.Equal(t, ingest.Loaded, cov.Status)
	assert.FileExists(t, cov.CachePath)
}

// TestImport_Cache verifies cache files and the manifest are written
// for loaded datasets only.
func TestImport_Cache(t *testing.T) {
	dir := t.TempDir()
	cacheDir := filepath.Join(t.TempDir(), "clean", "v1")
	writeFile(t, dir, "covariates.csv", "SubjID,Age\nS01,34\n")
	writeFile(t, dir, "dti.tsv", "ID\tFA_old\tFA_new\nS01\t0.4\t0.5\n")

	b := testImporter(t,
		config.OptIngestWithCache(true),
		config.OptIngestCacheDir(cacheDir),
		config.OptIngestCacheFormat("csv"),
	)
	report, err := b.Import(context.Background(), dir)
	require.NoError(t, err)

	cov := resultOf(t, report, "basic_covariates")
	assert.Equal(t, filepath.Join(cacheDir, "basic_covariates.csv"),
		cov.CachePath)
	assert.NoError(t, cov.CacheErr)
	assert.FileExists(t, cov.CachePath)
	assert.NoFileExists(t, filepath.Join(cacheDir, "dti.csv"))

	assert.NoError(t, report.ManifestErr)
	assert.Equal(t, filepath.Join(cacheDir, ManifestFile), report.ManifestPath)
	data, err := os.ReadFile(filepath.Join(cacheDir, ManifestFile))
	require.NoError(t, err)
	var m Manifest
	require.NoError(t, json.Unmarshal(data, &m))
	assert.Equal(t, report.RunID, m.RunID)
	assert.Equal(t, "csv", m.Format)
	require.Len(t, m.Datasets, 5)
	assert.Equal(t, "loaded", m.Datasets[0].Status)
	assert.Equal(t, "basic_covariates.csv", m.Datasets[0].File)
	assert.Equal(t, 1, m.Datasets[0].Rows)
	assert.NotEmpty(t, m.Datasets[0].ContentID)
	assert.Equal(t, "failed", m.Datasets[1].Status)
	assert.NotEmpty(t, m.Datasets[1].Error)
}

// TestNewManifest_ContentID verifies identical content keeps its ID.
func TestNewManifest_ContentID(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "covariates.csv", "SubjID,Age\nS01,34\n")
	b := testImporter(t)

	r1, err := b.Import(context.Background(), dir)
	require.NoError(t, err)
	r2, err := b.Import(context.Background(), dir)
	require.NoError(t, err)

	m1, m2 := NewManifest("csv", r1), NewManifest("csv", r2)
	assert.NotEqual(t, m1.RunID, m2.RunID)
	assert.Equal(t, m1.Datasets[0].ContentID, m2.Datasets[0].ContentID)
}

// TestImport_DirErrors verifies directory problems are returned.
func TestImport_DirErrors(t *testing.T) {
	dir := t.TempDir()
	file := writeFile(t, dir, "covariates.csv", "SubjID,Age\nS01,34\n")

	b := testImporter(t)
	_, err := b.Import(context.Background(), filepath.Join(dir, "absent"))
	require.Error(t, err)
	assert.Equal(t, errcode.BulkDirError, gnError(t, err).Code)

	_, err = b.Import(context.Background(), file)
	require.Error(t, err)
	assert.Equal(t, errcode.BulkDirError, gnError(t, err).Code)

	b = testImporter(t,
		config.OptIngestWithCache(true),
		config.OptIngestCacheDir(filepath.Join(file, "clean")),
	)
	_, err = b.Import(context.Background(), dir)
	require.Error(t, err)
	assert.Equal(t, errcode.BulkCacheDirError, gnError(t, err).Code)
}

// TestImport_Cancelled verifies a cancelled context stops the run.
func TestImport_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := testImporter(t).Import(ctx, t.TempDir())
	require.Error(t, err)
	assert.Equal(t, errcode.BulkCancelledError, gnError(t, err).Code)
}
