package ioregistry

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
)

// WriteVariablesTable writes variables.csv atomically: the table goes to
// a temporary file in the same directory which then replaces path.
func WriteVariablesTable(path string, header []string, records [][]string) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".variables-*.csv")
	if err != nil {
		return WriteError(path, err)
	}
	defer os.Remove(tmp.Name())

	w := csv.NewWriter(tmp)
	if err = w.Write(header); err == nil {
		err = w.WriteAll(records)
	}
	if err != nil {
		tmp.Close()
		return WriteError(path, err)
	}
	if err = tmp.Close(); err != nil {
		return WriteError(path, err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return WriteError(path, err)
	}
	return nil
}

func trim(s string) string {
	return strings.TrimSpace(s)
}
