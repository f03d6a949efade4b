// Package frame provides the canonical tabular dataset: named text
// columns over rows of text cells. Every cell is kept as read; an empty
// string is a missing value.
package frame

import (
	"slices"
	"strings"
)

// Frame is a rectangular table of text cells. Operations return new
// frames and never modify the receiver.
type Frame struct {
	columns []string
	rows    [][]string
}

// New creates a frame. Rows shorter than the header are padded with
// empty cells, longer rows are truncated.
func New(columns []string, rows [][]string) *Frame {
	res := &Frame{
		columns: slices.Clone(columns),
		rows:    make([][]string, len(rows)),
	}
	n := len(columns)
	for i, row := range rows {
		r := make([]string, n)
		copy(r, row)
		res.rows[i] = r
	}
	return res
}

// Columns returns column names in order.
func (f *Frame) Columns() []string {
	return slices.Clone(f.columns)
}

// NumRows returns the number of data rows.
func (f *Frame) NumRows() int {
	return len(f.rows)
}

// NumColumns returns the number of columns.
func (f *Frame) NumColumns() int {
	return len(f.columns)
}

// Row returns a copy of the i-th row.
func (f *Frame) Row(i int) []string {
	return slices.Clone(f.rows[i])
}

// Rows returns a copy of all rows.
func (f *Frame) Rows() [][]string {
	res := make([][]string, len(f.rows))
	for i, v := range f.rows {
		res[i] = slices.Clone(v)
	}
	return res
}

// Index returns the position of the first column with the given name or
// -1.
func (f *Frame) Index(name string) int {
	return slices.Index(f.columns, name)
}

// Has reports whether a column exists.
func (f *Frame) Has(name string) bool {
	return f.Index(name) >= 0
}

// Column returns the values of the first column with the given name.
func (f *Frame) Column(name string) ([]string, bool) {
	idx := f.Index(name)
	if idx < 0 {
		return nil, false
	}
	res := make([]string, len(f.rows))
	for i, row := range f.rows {
		res[i] = row[idx]
	}
	return res, true
}

// Rename returns a frame with columns renamed by the mapping. Columns
// absent from the mapping keep their names.
func (f *Frame) Rename(mapping map[string]string) *Frame {
	cols := make([]string, len(f.columns))
	for i, v := range f.columns {
		if to, ok := mapping[v]; ok {
			cols[i] = to
		} else {
			cols[i] = v
		}
	}
	return &Frame{columns: cols, rows: f.rows}
}

// Select returns a frame with the columns at the given positions.
func (f *Frame) Select(idx []int) *Frame {
	cols := make([]string, len(idx))
	for i, v := range idx {
		cols[i] = f.columns[v]
	}
	rows := make([][]string, len(f.rows))
	for i, row := range f.rows {
		r := make([]string, len(idx))
		for j, v := range idx {
			r[j] = row[v]
		}
		rows[i] = r
	}
	return &Frame{columns: cols, rows: rows}
}

// Filter returns a frame with rows for which keep returns true.
func (f *Frame) Filter(keep func(row []string) bool) *Frame {
	var rows [][]string
	for _, row := range f.rows {
		if keep(row) {
			rows = append(rows, row)
		}
	}
	return &Frame{columns: f.columns, rows: rows}
}

// MapColumn returns a frame where the values of the named column are
// replaced by fn. Unknown columns leave the frame unchanged.
func (f *Frame) MapColumn(name string, fn func(string) string) *Frame {
	idx := f.Index(name)
	if idx < 0 {
		return f
	}
	rows := make([][]string, len(f.rows))
	for i, row := range f.rows {
		r := slices.Clone(row)
		r[idx] = fn(r[idx])
		rows[i] = r
	}
	return &Frame{columns: f.columns, rows: rows}
}

// Duplicates returns column names occurring more than once, sorted.
func (f *Frame) Duplicates() []string {
	seen := make(map[string]int, len(f.columns))
	for _, v := range f.columns {
		seen[v]++
	}
	var res []string
	for k, v := range seen {
		if v > 1 {
			res = append(res, k)
		}
	}
	slices.Sort(res)
	return res
}

// Content returns a deterministic text rendering of the frame used for
// content identifiers.
func (f *Frame) Content() string {
	var sb strings.Builder
	sb.WriteString(strings.Join(f.columns, "\x1f"))
	for _, row := range f.rows {
		sb.WriteByte('\x1e')
		sb.WriteString(strings.Join(row, "\x1f"))
	}
	return sb.String()
}
