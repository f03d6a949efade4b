package schema

import (
	"log/slog"
	"maps"
	"slices"
)

// Registry is the validated, immutable schema contract. It is created
// only by Build and is safe for concurrent use. All accessors return
// copies.
type Registry struct {
	idColumn  string
	aliases   map[string][]string
	datasets  map[string]DatasetDefinition
	names     []string
	mappings  map[string]map[string]string
	required  map[string][]string
	columns   map[string][]string
	types     map[string]map[string]string
	variables map[string][]VariableRow
	view      *SummaryViewConfig
}

// Build cross-validates the dataset document against variable rows and
// returns a Registry. It either succeeds completely or returns the first
// contract violation:
//   - datasets that appear in variables but are not defined;
//   - a source column mapped to two canonical names within a dataset;
//   - a summary view that references unknown datasets.
func Build(doc Document, rows []VariableRow) (*Registry, error) {
	res := &Registry{
		idColumn:  doc.ParticipantIDColumn,
		aliases:   make(map[string][]string, len(doc.IDColumnAliases)),
		datasets:  make(map[string]DatasetDefinition, len(doc.Datasets)),
		mappings:  make(map[string]map[string]string),
		required:  make(map[string][]string),
		columns:   make(map[string][]string),
		types:     make(map[string]map[string]string),
		variables: make(map[string][]VariableRow),
	}
	if res.idColumn == "" {
		res.idColumn = DefaultParticipantIDColumn
	}
	for k, v := range doc.IDColumnAliases {
		res.aliases[k] = slices.Clone(v)
	}
	for k, v := range doc.Datasets {
		v.Name = k
		res.datasets[k] = v
	}
	res.names = slices.Sorted(maps.Keys(res.datasets))

	var undefined []string
	for _, row := range rows {
		_, ok := res.datasets[row.Dataset]
		if !ok && !slices.Contains(undefined, row.Dataset) {
			undefined = append(undefined, row.Dataset)
		}
	}
	if len(undefined) > 0 {
		slices.Sort(undefined)
		return nil, SchemaMismatchError(undefined)
	}

	required := make(map[string]map[string]struct{})
	for _, row := range rows {
		ds := row.Dataset
		mapping, ok := res.mappings[ds]
		if !ok {
			mapping = make(map[string]string)
			res.mappings[ds] = mapping
			res.types[ds] = make(map[string]string)
			required[ds] = make(map[string]struct{})
		}

		if prev, ok := mapping[row.SourceColumn]; ok &&
			prev != row.VariableName {
			return nil, AmbiguousMappingError(
				ds, row.SourceColumn, prev, row.VariableName,
			)
		}
		mapping[row.SourceColumn] = row.VariableName

		if prev, ok := res.types[ds][row.VariableName]; ok &&
			prev != row.SQLType {
			slog.Warn("Conflicting sql_type, last one wins",
				"dataset", ds,
				"variable", row.VariableName,
				"previous", prev,
				"sql_type", row.SQLType,
				"line", row.Line,
			)
		} else if !ok {
			res.columns[ds] = append(res.columns[ds], row.VariableName)
		}
		res.types[ds][row.VariableName] = row.SQLType

		if row.IsRequired {
			required[ds][row.VariableName] = struct{}{}
		}
		res.variables[ds] = append(res.variables[ds], row)
	}

	for _, ds := range res.names {
		if _, ok := res.mappings[ds]; !ok {
			res.mappings[ds] = make(map[string]string)
			res.types[ds] = make(map[string]string)
		}
		res.required[ds] = slices.Sorted(maps.Keys(required[ds]))
	}

	if doc.SummaryView != nil {
		view, err := res.checkSummaryView(*doc.SummaryView)
		if err != nil {
			return nil, err
		}
		res.view = view
	}

	return res, nil
}

// ParticipantIDColumn returns the canonical participant identifier column.
func (r *Registry) ParticipantIDColumn() string {
	return r.idColumn
}

// IDAliases returns alternative header names for a canonical identifier.
func (r *Registry) IDAliases(canonical string) []string {
	return slices.Clone(r.aliases[canonical])
}

// DatasetNames returns all defined dataset names in sorted order.
func (r *Registry) DatasetNames() []string {
	return slices.Clone(r.names)
}

// HasDataset reports whether name is a defined dataset.
func (r *Registry) HasDataset(name string) bool {
	_, ok := r.datasets[name]
	return ok
}

// Dataset returns the definition of a dataset.
func (r *Registry) Dataset(name string) (DatasetDefinition, bool) {
	res, ok := r.datasets[name]
	return res, ok
}

// Mapping returns the source-column to canonical-name mapping of a
// dataset. Every defined dataset has a mapping, possibly empty.
func (r *Registry) Mapping(name string) (map[string]string, bool) {
	res, ok := r.mappings[name]
	if !ok {
		return nil, false
	}
	return maps.Clone(res), true
}

// RequiredVariables returns sorted canonical names that must be present
// after standardization of a dataset (the identifier not included).
func (r *Registry) RequiredVariables(name string) []string {
	return slices.Clone(r.required[name])
}

// ExpectedVariables returns the sorted distinct canonical names the
// mapping of a dataset produces.
func (r *Registry) ExpectedVariables(name string) []string {
	var res []string
	for _, v := range r.mappings[name] {
		if !slices.Contains(res, v) {
			res = append(res, v)
		}
	}
	slices.Sort(res)
	return res
}

// Columns returns canonical variable names of a dataset in the order of
// their first appearance in variables.csv.
func (r *Registry) Columns(name string) []string {
	return slices.Clone(r.columns[name])
}

// SQLTypes returns the canonical-name to sql_type mapping of a dataset.
func (r *Registry) SQLTypes(name string) map[string]string {
	return maps.Clone(r.types[name])
}

// SQLType returns the declared type of a canonical column. The identifier
// column and undeclared columns are TEXT.
func (r *Registry) SQLType(dataset, column string) string {
	if t, ok := r.types[dataset][column]; ok {
		return t
	}
	return TypeText
}

// Variables returns validated variables.csv rows of a dataset.
func (r *Registry) Variables(name string) []VariableRow {
	return slices.Clone(r.variables[name])
}

// SummaryView returns the summary view configuration with defaults
// applied, or false when datasets.yaml does not configure one.
func (r *Registry) SummaryView() (SummaryViewConfig, bool) {
	if r.view == nil {
		return SummaryViewConfig{}, false
	}
	res := *r.view
	res.Include = make(map[string][]string, len(r.view.Include))
	for k, v := range r.view.Include {
		res.Include[k] = slices.Clone(v)
	}
	res.Flags = slices.Clone(r.view.Flags)
	return res, true
}
