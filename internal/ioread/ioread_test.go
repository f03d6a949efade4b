package ioread

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// TestNewCSVReader_SkipsBOM verifies a byte order mark does not leak
// into the first header.
func TestNewCSVReader_SkipsBOM(t *testing.T) {
	r := NewCSVReader(strings.NewReader("\xEF\xBB\xBFdataset,x\na,b\n"), ',')
	rec, err := r.Read()
	require.NoError(t, err)
	assert.Equal(t, []string{"dataset", "x"}, rec)
}

// TestReadDelimited verifies text reading rules.
func TestReadDelimited(t *testing.T) {
	t.Run("reads all cells as text", func(t *testing.T) {
		path := writeFile(t, "a.csv",
			" SubjID ,Age,Score\nsub-01,034,1.50\nsub-02,41\n\n")
		f, err := ReadDelimited(path, ',', 0)
		require.NoError(t, err)
		assert.Equal(t, []string{"SubjID", "Age", "Score"}, f.Columns())
		assert.Equal(t, 2, f.NumRows())
		assert.Equal(t, []string{"sub-01", "034", "1.50"}, f.Row(0))
		assert.Equal(t, []string{"sub-02", "41", ""}, f.Row(1))
	})

	t.Run("header row offset", func(t *testing.T) {
		path := writeFile(t, "b.csv", "exported by tool\nid,v\np1,1\n")
		f, err := ReadDelimited(path, ',', 1)
		require.NoError(t, err)
		assert.Equal(t, []string{"id", "v"}, f.Columns())
		assert.Equal(t, 1, f.NumRows())
	})

	t.Run("tab separated", func(t *testing.T) {
		path := writeFile(t, "c.tsv", "id\tv\np1\t1,5\n")
		f, err := ReadDelimited(path, '\t', 0)
		require.NoError(t, err)
		assert.Equal(t, []string{"p1", "1,5"}, f.Row(0))
	})

	t.Run("too many fields", func(t *testing.T) {
		path := writeFile(t, "d.csv", "id,v\np1,1\np2,2,3\n")
		_, err := ReadDelimited(path, ',', 0)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "line 3")
	})

	t.Run("no header", func(t *testing.T) {
		path := writeFile(t, "e.csv", "id,v\n")
		_, err := ReadDelimited(path, ',', 3)
		assert.Error(t, err)
	})

	t.Run("header only", func(t *testing.T) {
		path := writeFile(t, "f.csv", "id,v\n")
		f, err := ReadDelimited(path, ',', 0)
		require.NoError(t, err)
		assert.Equal(t, 0, f.NumRows())
	})

	t.Run("repairs invalid utf8", func(t *testing.T) {
		path := writeFile(t, "g.csv", "id,site\np1,M\xfcnchen\n")
		f, err := ReadDelimited(path, ',', 0)
		require.NoError(t, err)
		col, _ := f.Column("site")
		assert.True(t, strings.HasPrefix(col[0], "M"))
		assert.NotContains(t, col[0], "\xfc")
	})
}

func writeXLSX(t *testing.T, sheet string, rows [][]any) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	if sheet != "Sheet1" {
		_, err := f.NewSheet(sheet)
		require.NoError(t, err)
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}
	path := filepath.Join(t.TempDir(), "book.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

// TestReadXLSX verifies worksheet reading.
func TestReadXLSX(t *testing.T) {
	rows := [][]any{
		{"Covariates export"},
		{"SubjID", "Age", "Sex"},
		{"sub-01", 34, "F"},
		{},
		{"sub-02", 41},
	}
	path := writeXLSX(t, "Data", rows)

	t.Run("by name with header offset", func(t *testing.T) {
		f, err := ReadXLSX(path, "Data", 1)
		require.NoError(t, err)
		assert.Equal(t, []string{"SubjID", "Age", "Sex"}, f.Columns())
		assert.Equal(t, 2, f.NumRows())
		assert.Equal(t, []string{"sub-01", "34", "F"}, f.Row(0))
		assert.Equal(t, []string{"sub-02", "41", ""}, f.Row(1))
	})

	t.Run("by index", func(t *testing.T) {
		f, err := ReadXLSX(path, "1", 1)
		require.NoError(t, err)
		assert.Equal(t, 2, f.NumRows())
	})

	t.Run("unknown sheet", func(t *testing.T) {
		_, err := ReadXLSX(path, "Covariates", 0)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Sheet1, Data")
	})

	t.Run("header beyond data", func(t *testing.T) {
		_, err := ReadXLSX(path, "Data", 10)
		assert.Error(t, err)
	})
}

// TestReadXLSX_CellsBeyondHeader verifies cells right of the header are
// rejected like extra fields of delimited files.
func TestReadXLSX_CellsBeyondHeader(t *testing.T) {
	path := writeXLSX(t, "Sheet1", [][]any{
		{"ID", "Age"},
		{"S01", 34, "stray"},
	})

	_, err := ReadXLSX(path, "Sheet1", 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "row 2 has 3 cells, header has 2")

	path = writeXLSX(t, "Sheet1", [][]any{
		{"ID", "Age"},
		{"S01", 34, " "},
	})
	f, err := ReadXLSX(path, "Sheet1", 0)
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"S01", "34"}}, f.Rows())
}
