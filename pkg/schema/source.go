package schema

import (
	"strconv"
	"strings"
)

// ResolveSource validates the source block of a dataset. Kind must be
// csv, tsv or xlsx; xlsx needs a sheet name; header_row defaults to 0 and
// must be a non-negative integer. A non-empty sheetOverride replaces the
// configured sheet name.
func (r *Registry) ResolveSource(
	dataset string,
	sheetOverride string,
) (ResolvedSource, error) {
	var res ResolvedSource
	def, ok := r.datasets[dataset]
	if !ok {
		return res, UnknownDatasetError(dataset, r.names)
	}
	src := def.Source

	kind := SourceKind(strings.ToLower(strings.TrimSpace(src.Kind)))
	switch kind {
	case CSV, TSV, XLSX:
	case "":
		return res, SourceConfigError(dataset, "source kind is not set")
	default:
		return res, SourceConfigError(dataset,
			"unsupported source kind '"+src.Kind+"'")
	}
	res.Kind = kind
	res.FileName = strings.TrimSpace(src.FileName)

	res.SheetName = strings.TrimSpace(src.SheetName)
	if s := strings.TrimSpace(sheetOverride); s != "" {
		res.SheetName = s
	}
	if kind == XLSX && res.SheetName == "" {
		return res, SourceConfigError(dataset,
			"sheet_name is required for xlsx sources")
	}

	hr := strings.TrimSpace(src.HeaderRow)
	if hr != "" {
		i, err := strconv.Atoi(hr)
		if err != nil {
			return res, SourceConfigError(dataset,
				"header_row must be an integer, got '"+hr+"'")
		}
		if i < 0 {
			return res, SourceConfigError(dataset,
				"header_row must be >= 0, got "+hr)
		}
		res.HeaderRow = i
	}
	return res, nil
}
