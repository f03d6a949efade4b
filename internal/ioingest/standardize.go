// Package ioingest implements the Standardizer and BulkImporter
// interfaces. It reads raw dataset files and turns them into canonical
// frames according to the schema registry.
package ioingest

import (
	"context"
	"fmt"
	"log/slog"
	"maps"
	"os"
	"slices"

	"github.com/oscaralateras/participant-inventory/internal/ioread"
	"github.com/oscaralateras/participant-inventory/pkg/frame"
	"github.com/oscaralateras/participant-inventory/pkg/ingest"
	"github.com/oscaralateras/participant-inventory/pkg/schema"
)

type standardizer struct {
	reg *schema.Registry
}

// NewStandardizer creates a Standardizer backed by a registry.
func NewStandardizer(reg *schema.Registry) ingest.Standardizer {
	return &standardizer{reg: reg}
}

// Standardize runs the steps in a fixed order and stops at the first
// failure: dataset lookup, file check, source resolution, reading,
// identifier resolution, renaming and the completeness check.
func (s *standardizer) Standardize(
	ctx context.Context,
	dataset, path, sheet string,
) (*frame.Frame, error) {
	if !s.reg.HasDataset(dataset) {
		return nil, schema.UnknownDatasetError(dataset, s.reg.DatasetNames())
	}

	if err := checkFile(dataset, path); err != nil {
		return nil, err
	}

	src, err := s.reg.ResolveSource(dataset, sheet)
	if err != nil {
		return nil, err
	}
	slog.Info("Dataset source",
		"dataset", dataset,
		"kind", src.Kind,
		"sheet", src.SheetName,
		"header_row", src.HeaderRow,
	)

	if err = ctx.Err(); err != nil {
		return nil, CancelledError(err)
	}

	f, err := readSource(dataset, path, src)
	if err != nil {
		return nil, err
	}

	f, err = s.resolveID(dataset, path, f)
	if err != nil {
		return nil, err
	}

	f, err = s.renameColumns(dataset, path, f)
	if err != nil {
		return nil, err
	}

	if err = s.checkRequired(dataset, path, f); err != nil {
		return nil, err
	}
	return f, nil
}

func checkFile(dataset, path string) error {
	fi, err := os.Stat(path)
	if err != nil {
		return FileMissingError(dataset, path, err)
	}
	if !fi.Mode().IsRegular() {
		return FileMissingError(dataset, path, errNotRegular)
	}
	if fi.Size() == 0 {
		return FileEmptyError(dataset, path)
	}
	return nil
}

func readSource(
	dataset, path string,
	src schema.ResolvedSource,
) (*frame.Frame, error) {
	var f *frame.Frame
	var err error
	switch src.Kind {
	case schema.CSV:
		f, err = ioread.ReadDelimited(path, ',', src.HeaderRow)
	case schema.TSV:
		f, err = ioread.ReadDelimited(path, '\t', src.HeaderRow)
	case schema.XLSX:
		f, err = ioread.ReadXLSX(path, src.SheetName, src.HeaderRow)
	default:
		err = fmt.Errorf("unsupported source kind %q", src.Kind)
	}
	if err != nil {
		return nil, ReadError(dataset, path, string(src.Kind), err)
	}
	if f.NumRows() == 0 {
		return nil, NoRowsError(dataset, path)
	}

	slog.Info("Read file",
		"dataset", dataset,
		"file", path,
		"rows", f.NumRows(),
		"columns", f.NumColumns(),
	)
	return f, nil
}

// idCandidates returns configured aliases of the identifier followed by
// source columns that variables.csv maps to the identifier.
func (s *standardizer) idCandidates(dataset string) []string {
	canonical := s.reg.ParticipantIDColumn()
	res := s.reg.IDAliases(canonical)
	mapping, _ := s.reg.Mapping(dataset)
	for _, src := range slices.Sorted(maps.Keys(mapping)) {
		if mapping[src] == canonical && !slices.Contains(res, src) {
			res = append(res, src)
		}
	}
	return res
}

func (s *standardizer) resolveID(
	dataset, path string,
	f *frame.Frame,
) (*frame.Frame, error) {
	canonical := s.reg.ParticipantIDColumn()

	if !f.Has(canonical) {
		aliases := s.idCandidates(dataset)
		var found string
		for _, v := range aliases {
			if f.Has(v) {
				found = v
				break
			}
		}
		if found == "" {
			return nil, MissingIDError(dataset, canonical, aliases, f.Columns())
		}
		f = f.Rename(map[string]string{found: canonical})
		slog.Info("Renamed identifier column",
			"dataset", dataset,
			"from", found,
			"to", canonical,
		)
	}

	before := f.NumRows()
	f = f.MapColumn(canonical, frame.NormalizeID)
	idx := f.Index(canonical)
	f = f.Filter(func(row []string) bool { return row[idx] != "" })

	if dropped := before - f.NumRows(); dropped > 0 {
		slog.Info("Dropped rows with blank identifier",
			"dataset", dataset,
			"file", path,
			"column", canonical,
			"rows", dropped,
		)
	}
	return f, nil
}

func (s *standardizer) renameColumns(
	dataset, path string,
	f *frame.Frame,
) (*frame.Frame, error) {
	mapping, _ := s.reg.Mapping(dataset)
	if len(mapping) == 0 {
		return nil, NoMappingError(dataset)
	}
	canonical := s.reg.ParticipantIDColumn()

	original := f.Columns()
	var keep []int
	var dropped []string
	var renamed int
	for i, col := range original {
		to, ok := mapping[col]
		if !ok && col != canonical {
			dropped = append(dropped, col)
			continue
		}
		keep = append(keep, i)
		if ok && to != col {
			renamed++
		}
	}

	if len(dropped) > 0 {
		slog.Info("Dropping unknown columns",
			"dataset", dataset,
			"file", path,
			"count", len(dropped),
			"columns", dropped,
		)
	}

	res := f.Select(keep).Rename(mapping)
	if dups := res.Duplicates(); len(dups) > 0 {
		return nil, DuplicateColumnsError(dataset, dups, original)
	}

	slog.Info("Renamed columns",
		"dataset", dataset,
		"kept", len(keep),
		"total", len(original),
		"renamed", renamed,
	)
	return res, nil
}

func (s *standardizer) checkRequired(
	dataset, path string,
	f *frame.Frame,
) error {
	present := make(map[string]struct{}, f.NumColumns())
	for _, v := range f.Columns() {
		present[v] = struct{}{}
	}

	required := make(map[string]struct{})
	for _, v := range s.reg.RequiredVariables(dataset) {
		required[v] = struct{}{}
	}
	required[s.reg.ParticipantIDColumn()] = struct{}{}

	expected := s.reg.ExpectedVariables(dataset)
	var found int
	for _, v := range expected {
		if _, ok := present[v]; ok {
			found++
		}
	}
	slog.Info("Expected columns present",
		"dataset", dataset,
		"present", found,
		"expected", len(expected),
	)

	var missing []string
	for v := range required {
		if _, ok := present[v]; !ok {
			missing = append(missing, v)
		}
	}
	if len(missing) > 0 {
		slices.Sort(missing)
		return MissingRequiredError(dataset, path, missing)
	}

	var optional []string
	for _, v := range expected {
		_, req := required[v]
		_, ok := present[v]
		if !req && !ok {
			optional = append(optional, v)
		}
	}
	if len(optional) > 0 {
		slog.Info("Missing optional columns",
			"dataset", dataset,
			"count", len(optional),
			"columns", optional,
		)
	}
	return nil
}
