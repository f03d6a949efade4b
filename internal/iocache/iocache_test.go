package iocache_test

import (
	"context"
	"database/sql"
	"encoding/csv"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/gnames/gn"
	"github.com/oscaralateras/participant-inventory/internal/iocache"
	"github.com/oscaralateras/participant-inventory/pkg/errcode"
	"github.com/oscaralateras/participant-inventory/pkg/frame"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testFrame() *frame.Frame {
	return frame.New(
		[]string{"participant_id", "age", "dx"},
		[][]string{
			{"P01", "34", "MDD"},
			{"P02", "NA", ""},
		},
	)
}

// TestNew verifies writers are created only for known formats.
func TestNew(t *testing.T) {
	for _, f := range []string{"parquet", "sqlite", "csv"} {
		w, err := iocache.New(f, t.TempDir())
		require.NoError(t, err)
		assert.Equal(t, f, w.Format())
	}
	_, err := iocache.New("xlsx", t.TempDir())
	assert.Error(t, err)
}

// TestCSVWriter verifies missing values are written as empty fields.
func TestCSVWriter(t *testing.T) {
	dir := t.TempDir()
	w, err := iocache.New("csv", dir)
	require.NoError(t, err)

	path, err := w.Write(context.Background(), "dti", testFrame())
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "dti.csv"), path)

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	recs, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"participant_id", "age", "dx"},
		{"P01", "34", "MDD"},
		{"P02", "", ""},
	}, recs)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

// TestSQLiteWriter verifies the cached table and its NULLs.
func TestSQLiteWriter(t *testing.T) {
	dir := t.TempDir()
	w, err := iocache.New("sqlite", dir)
	require.NoError(t, err)

	ctx := context.Background()
	path, err := w.Write(ctx, "basic_covariates", testFrame())
	require.NoError(t, err)

	// a second write replaces the file
	path, err = w.Write(ctx, "basic_covariates", testFrame())
	require.NoError(t, err)

	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	defer db.Close()

	var count, nulls int
	err = db.QueryRow(`SELECT count(*) FROM "basic_covariates"`).Scan(&count)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	err = db.QueryRow(
		`SELECT count(*) FROM "basic_covariates" WHERE "age" IS NULL`,
	).Scan(&nulls)
	require.NoError(t, err)
	assert.Equal(t, 1, nulls)
}

// TestParquetWriter verifies a parquet file can be read back by DuckDB.
func TestParquetWriter(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping parquet export in short mode")
	}
	dir := t.TempDir()
	w, err := iocache.New("parquet", dir)
	require.NoError(t, err)

	path, err := w.Write(context.Background(), "dti", testFrame())
	require.NoError(t, err)
	assert.FileExists(t, path)

	db, err := sql.Open("duckdb", "")
	require.NoError(t, err)
	defer db.Close()

	var count int
	err = db.QueryRow(
		"SELECT count(*) FROM read_parquet('" + path + "') WHERE dx IS NOT NULL",
	).Scan(&count)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

// TestWrite_MissingDir verifies failures carry the cache error code.
func TestWrite_MissingDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "absent")
	w, err := iocache.New("csv", dir)
	require.NoError(t, err)

	_, err = w.Write(context.Background(), "dti", testFrame())
	require.Error(t, err)
	var gnErr *gn.Error
	require.True(t, errors.As(err, &gnErr))
	assert.Equal(t, errcode.BulkCacheWriteError, gnErr.Code)
}
