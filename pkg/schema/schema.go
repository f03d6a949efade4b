// Package schema holds the schema contract of the participant inventory.
//
// The contract consists of dataset definitions (datasets.yaml) and a
// variable mapping table (variables.csv). Build cross-validates both and
// returns an immutable Registry that every other component consults.
// The package is pure: reading the files belongs to internal/ioregistry.
package schema

// DefaultParticipantIDColumn is the canonical identifier column used when
// datasets.yaml does not set participant_id_column.
const DefaultParticipantIDColumn = "participant_id"

// SourceKind is the physical format of a raw dataset file.
type SourceKind string

const (
	// CSV is comma-delimited text.
	CSV SourceKind = "csv"
	// TSV is tab-delimited text.
	TSV SourceKind = "tsv"
	// XLSX is an Excel workbook; a sheet name is required.
	XLSX SourceKind = "xlsx"
)

// SQL value types a variable can declare in variables.csv.
const (
	TypeText    = "TEXT"
	TypeInteger = "INTEGER"
	TypeFloat   = "FLOAT"
	TypeBoolean = "BOOLEAN"
)

// SQLTypes lists the accepted values of the sql_type column.
var SQLTypes = []string{TypeBoolean, TypeFloat, TypeInteger, TypeText}

// Document is the parsed content of datasets.yaml.
type Document struct {
	// ParticipantIDColumn is the canonical identifier column name.
	// Empty means DefaultParticipantIDColumn.
	ParticipantIDColumn string

	// IDColumnAliases maps a canonical identifier name to alternative
	// header names seen in raw files.
	IDColumnAliases map[string][]string

	// Datasets maps a dataset name to its definition.
	Datasets map[string]DatasetDefinition

	// SummaryView optionally configures the denormalized inventory view.
	SummaryView *SummaryViewConfig
}

// DatasetDefinition describes one logical dataset.
type DatasetDefinition struct {
	Name   string
	Source SourceConfig
}

// SourceConfig is the raw source block of a dataset definition.
// Values are kept as written; ResolveSource validates them.
type SourceConfig struct {
	Kind      string
	FileName  string
	SheetName string
	// HeaderRow is the textual header_row value, empty when unset.
	HeaderRow string
}

// ResolvedSource is a validated source configuration.
type ResolvedSource struct {
	Kind      SourceKind
	FileName  string
	SheetName string
	HeaderRow int
}

// VariableRow is one validated line of variables.csv.
type VariableRow struct {
	// Line is the 1-based line number, the header is line 1.
	Line         int
	Dataset      string
	SourceColumn string
	VariableName string
	IsRequired   bool
	SQLType      string
}

// SummaryViewConfig is the summary_view block of datasets.yaml.
type SummaryViewConfig struct {
	// Name of the materialized view, "inventory_summary" by default.
	Name string
	// Base is the dataset whose rows define the view population.
	Base string
	// Include maps a dataset to glob patterns of columns copied into the
	// view.
	Include map[string][]string
	// Flags lists datasets that get a has_<dataset> presence column.
	// Empty means every dataset except Base.
	Flags []string
}
