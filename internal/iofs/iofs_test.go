package iofs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestEnsureDirs_CreatesDirectories verifies all required
// directories are created.
func TestEnsureDirs_CreatesDirectories(t *testing.T) {
	tmpDir := t.TempDir()

	err := EnsureDirs(tmpDir)
	require.NoError(t, err)

	dirs := []string{
		filepath.Join(tmpDir, ".config", "invdb"),
		filepath.Join(tmpDir, ".cache", "invdb"),
		filepath.Join(tmpDir, ".local", "share", "invdb", "logs"),
	}
	for _, v := range dirs {
		info, err := os.Stat(v)
		require.NoError(t, err, v)
		assert.True(t, info.IsDir(), v)
	}
}

// TestEnsureDirs_Idempotent verifies multiple calls work.
func TestEnsureDirs_Idempotent(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, EnsureDirs(tmpDir))
	require.NoError(t, EnsureDirs(tmpDir))
}

// TestTouchDir_FileInTheWay verifies an error when a file blocks the
// directory path.
func TestTouchDir_FileInTheWay(t *testing.T) {
	tmpDir := t.TempDir()
	blocker := filepath.Join(tmpDir, "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))

	err := touchDir(filepath.Join(blocker, "sub"))
	assert.Error(t, err)
}

// TestEnsureConfigFile verifies the embedded config is written once.
func TestEnsureConfigFile(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, EnsureDirs(tmpDir))
	require.NoError(t, EnsureConfigFile(tmpDir))

	path := filepath.Join(tmpDir, ".config", "invdb", "config.yaml")
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, ConfigYAML, string(data))
	assert.Contains(t, string(data), "cache_format: parquet")

	require.NoError(t, os.WriteFile(path, []byte("custom"), 0644))
	require.NoError(t, EnsureConfigFile(tmpDir))
	data, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "custom", string(data),
		"existing config must not be overwritten")
}

// TestWriteSchemaTemplates verifies templates are written and existing
// files are kept.
func TestWriteSchemaTemplates(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "schema")

	written, err := WriteSchemaTemplates(dir)
	require.NoError(t, err)
	assert.Len(t, written, 2)

	data, err := os.ReadFile(filepath.Join(dir, "variables.csv"))
	require.NoError(t, err)
	assert.Contains(t, string(data),
		"dataset,source_column,variable_name,is_required,sql_type")

	written, err = WriteSchemaTemplates(dir)
	require.NoError(t, err)
	assert.Empty(t, written)
}
