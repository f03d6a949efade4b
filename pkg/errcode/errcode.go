package errcode

import (
	"github.com/gnames/gn"
)

const (
	UnknownError gn.ErrorCode = iota

	// File System errors
	CreateDirError
	CopyFileError
	ReadFileError
	WriteFileError

	// Logging errors
	CreateLogFileError

	// Schema source errors
	SchemaFileMissingError
	SchemaYAMLParseError
	SchemaNotMappingError
	SchemaDatasetsNotMappingError
	SchemaAliasesNotMappingError
	SchemaVariablesHeaderError
	SchemaVariablesRowError
	SchemaVariablesReadError
	SchemaSQLTypeError
	SchemaAmbiguousMappingError
	SchemaMismatchError
	SchemaSummaryViewError

	// Standardize errors
	StandardizeUnknownDatasetError
	StandardizeFileMissingError
	StandardizeFileEmptyError
	StandardizeSourceConfigError
	StandardizeReadError
	StandardizeNoRowsError
	StandardizeMissingIDError
	StandardizeNoMappingError
	StandardizeDuplicateColumnsError
	StandardizeMissingRequiredError

	// Bulk import errors
	BulkDirError
	BulkCacheDirError
	BulkCacheWriteError
	BulkManifestError
	BulkCancelledError

	// Database errors
	DBConnectionError
	DBTableCheckError
	DBNotConnectedError
	DBTableExistsCheckError
	DBQueryTablesError
	DBScanTableError
	DBDropTableError
	DBQueryViewsError
	DBDropViewError
	DBEmptyDatabaseError

	// Table errors
	TablesGORMConnectionError
	TablesCreateError

	// Populate errors
	PopulateTableMissingError
	PopulateValueError
	PopulateCopyError
	PopulateAllDatasetsFailedError

	// Optimizer errors
	OptimizerNoSummaryViewError
	OptimizerViewCreationError
	OptimizerIndexError
	OptimizerAnalyzeError

	// Query errors
	QueryFilterError
	QueryUnknownColumnError
	QueryExecError
)
