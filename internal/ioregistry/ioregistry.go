// Package ioregistry loads the schema contract from datasets.yaml and
// variables.csv and builds the schema.Registry.
package ioregistry

import (
	"errors"
	"io"
	"log/slog"
	"os"

	"github.com/oscaralateras/participant-inventory/internal/ioread"
	"github.com/oscaralateras/participant-inventory/pkg/schema"
)

// Load reads both schema files and returns a validated registry. Any
// problem aborts the load; no partial registry is returned.
func Load(datasetsPath, variablesPath string) (*schema.Registry, error) {
	for _, v := range []string{datasetsPath, variablesPath} {
		if err := checkFile(v); err != nil {
			return nil, err
		}
	}

	doc, err := LoadDocument(datasetsPath)
	if err != nil {
		return nil, err
	}

	rows, err := ReadVariables(variablesPath)
	if err != nil {
		return nil, err
	}

	res, err := schema.Build(doc, rows)
	if err != nil {
		return nil, err
	}

	slog.Info("Schema registry loaded",
		"datasets_file", datasetsPath,
		"variables_file", variablesPath,
		"datasets", len(res.DatasetNames()),
		"variables", len(rows),
	)
	return res, nil
}

func checkFile(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return FileMissingError(path, err)
	}
	if !info.Mode().IsRegular() {
		return FileMissingError(path, errors.New("not a regular file"))
	}
	return nil
}

// ReadVariables reads and validates variables.csv rows.
func ReadVariables(path string) ([]schema.VariableRow, error) {
	header, records, lines, err := readTable(path)
	if err != nil {
		return nil, err
	}

	if missing := schema.MissingHeaders(header); len(missing) > 0 {
		return nil, VariablesHeaderError(path, missing)
	}

	res := make([]schema.VariableRow, 0, len(records))
	for i, rec := range records {
		m := make(map[string]string, len(header))
		for j, h := range header {
			if j < len(rec) {
				m[h] = rec[j]
			}
		}
		row, err := schema.ParseVariableRow(lines[i], m)
		if err != nil {
			return nil, err
		}
		res = append(res, row)
	}
	return res, nil
}

// ReadVariablesTable returns the trimmed header and raw records of
// variables.csv.
func ReadVariablesTable(path string) ([]string, [][]string, error) {
	header, records, _, err := readTable(path)
	return header, records, err
}

// readTable also returns the line number of every record, the header is
// line 1.
func readTable(path string) ([]string, [][]string, []int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, nil, FileMissingError(path, err)
	}
	defer f.Close()

	r := ioread.NewCSVReader(f, ',')

	var header []string
	var records [][]string
	var lines []int
	for {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, nil, nil, VariablesReadError(path, err)
		}
		if header == nil {
			header = make([]string, len(rec))
			for i, v := range rec {
				header[i] = trim(v)
			}
			continue
		}
		line, _ := r.FieldPos(0)
		records = append(records, rec)
		lines = append(lines, line)
	}
	if header == nil {
		return nil, nil, nil,
			VariablesHeaderError(path, schema.VariableHeaders)
	}
	return header, records, lines, nil
}
