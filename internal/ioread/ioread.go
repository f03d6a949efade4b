// Package ioread reads raw dataset files into text frames. Every cell is
// read as text without type coercion.
package ioread

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/gnames/gnlib"
	"github.com/oscaralateras/participant-inventory/pkg/frame"
)

var bom = []byte{0xEF, 0xBB, 0xBF}

// NewCSVReader returns a lenient csv.Reader over r that skips a leading
// UTF-8 byte order mark. Records may have varying field counts.
func NewCSVReader(r io.Reader, comma rune) *csv.Reader {
	br := bufio.NewReader(r)
	if b, err := br.Peek(len(bom)); err == nil && string(b) == string(bom) {
		_, _ = br.Discard(len(bom))
	}
	res := csv.NewReader(br)
	res.Comma = comma
	res.FieldsPerRecord = -1
	res.LazyQuotes = true
	return res
}

// ReadDelimited reads a delimited text file. The record at headerRow
// holds column names, earlier records are skipped. A data record with
// more fields than the header is a structural error; shorter records are
// padded with empty cells.
func ReadDelimited(path string, comma rune, headerRow int) (*frame.Frame, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := NewCSVReader(f, comma)
	var header []string
	var rows [][]string
	for i := 0; ; i++ {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		switch {
		case i < headerRow:
			continue
		case i == headerRow:
			header = cleanHeader(rec)
		default:
			if len(rec) > len(header) {
				line, _ := r.FieldPos(0)
				return nil, fmt.Errorf(
					"line %d has %d fields, header has %d",
					line, len(rec), len(header))
			}
			rows = append(rows, fixCells(rec))
		}
	}

	if header == nil {
		return nil, fmt.Errorf("no header at row %d", headerRow)
	}
	return frame.New(header, rows), nil
}

func cleanHeader(rec []string) []string {
	res := make([]string, len(rec))
	for i, v := range rec {
		res[i] = strings.TrimSpace(fixCell(v))
	}
	return res
}

func fixCells(rec []string) []string {
	for i, v := range rec {
		rec[i] = fixCell(v)
	}
	return rec
}

func fixCell(s string) string {
	if utf8.ValidString(s) {
		return s
	}
	return gnlib.FixUtf8(s)
}
