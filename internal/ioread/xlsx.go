package ioread

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/oscaralateras/participant-inventory/pkg/frame"
	"github.com/xuri/excelize/v2"
)

// ReadXLSX reads a worksheet of an Excel workbook as formatted text. The
// sheet is looked up by name; a numeric name that is not a sheet name is
// used as a zero-based sheet index. Empty rows are skipped. A non-blank
// cell to the right of the last header column is a structural error.
func ReadXLSX(path, sheet string, headerRow int) (*frame.Frame, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	name, err := resolveSheet(f.GetSheetList(), sheet)
	if err != nil {
		return nil, err
	}

	all, err := f.GetRows(name)
	if err != nil {
		return nil, err
	}
	if headerRow >= len(all) {
		return nil, fmt.Errorf("sheet %q has no header at row %d",
			name, headerRow)
	}

	header := cleanHeader(all[headerRow])
	var rows [][]string
	for i, row := range all[headerRow+1:] {
		if isBlankRow(row) {
			continue
		}
		if len(row) > len(header) && !isBlankRow(row[len(header):]) {
			return nil, fmt.Errorf(
				"sheet %q row %d has %d cells, header has %d",
				name, headerRow+i+2, len(row), len(header))
		}
		rows = append(rows, fixCells(row))
	}
	return frame.New(header, rows), nil
}

func resolveSheet(sheets []string, sheet string) (string, error) {
	if slices.Contains(sheets, sheet) {
		return sheet, nil
	}
	if idx, err := strconv.Atoi(sheet); err == nil &&
		idx >= 0 && idx < len(sheets) {
		return sheets[idx], nil
	}
	return "", fmt.Errorf("worksheet %q not found (sheets: %s)",
		sheet, strings.Join(sheets, ", "))
}

func isBlankRow(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
