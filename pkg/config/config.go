// Package config provides configuration management for invdb.
//
// This package has no I/O dependencies (no file operations, no network calls).
// Validation functions may write user-facing warnings via gn.Warn().
//
// # Configuration Sources
//
// Precedence (highest to lowest): CLI flags > env vars > config.yaml > defaults
//
// # Design Principles
//
// - Default config (from New()) is always valid
// - All mutations go through Option functions
// - Invalid options are rejected with gn.Warn(), config stays valid
// - ToOptions() converts persistent fields (those in config.yaml)
//
// # Persistent vs Runtime Fields
//
// Persistent fields (in ToOptions, config.yaml, and env vars):
//   - Database: host, port, user, password, database, ssl_mode, batch_size
//   - Schema: datasets_file, variables_file
//   - Ingest: data_dir, cache_dir, cache_format
//   - Log: level, format, destination
//   - General: jobs_number
//
// Runtime-only fields (CLI flags only):
//   - Ingest.WithCache (per-command)
//   - HomeDir (set once at startup)
//
// # Environment Variables
//
// Use INVDB_ prefix with underscores for nesting:
//
//	INVDB_DATABASE_HOST=localhost
//	INVDB_SCHEMA_DATASETS_FILE=schema/datasets.yaml
//	INVDB_INGEST_CACHE_FORMAT=parquet
//	INVDB_JOBS_NUMBER=8
package config

import (
	"runtime"
)

// Config represents the complete invdb configuration.
type Config struct {
	// Database contains PostgreSQL connection settings.
	Database DatabaseConfig `mapstructure:"database" yaml:"database"`

	// Schema points to the schema-contract files.
	Schema SchemaConfig `mapstructure:"schema" yaml:"schema"`

	// Ingest contains settings for standardizing raw files.
	Ingest IngestConfig `mapstructure:"ingest" yaml:"ingest"`

	Log LogConfig `mapstructure:"log" yaml:"log"`

	// JobsNumber is the number of datasets standardized concurrently.
	// Default value is set according to the number of available threads.
	JobsNumber int `mapstructure:"jobs_number" yaml:"jobs_number"`

	// HomeDir determines where config, cache and logs directories reside.
	// It must be set by CLI during init, there is no default value for it.
	HomeDir string
}

// DatabaseConfig contains PostgreSQL connection parameters.
type DatabaseConfig struct {
	// Host is the PostgreSQL server hostname or IP address.
	Host string `mapstructure:"host" yaml:"host"`

	// Port is the PostgreSQL server port number.
	Port int `mapstructure:"port" yaml:"port"`

	// User is the PostgreSQL database username.
	User string `mapstructure:"user" yaml:"user"`

	// Password is the PostgreSQL database password.
	Password string `mapstructure:"password" yaml:"password"`

	// Database is the PostgreSQL database name to connect to.
	Database string `mapstructure:"database" yaml:"database"`

	// SSLMode specifies the SSL connection mode.
	// Valid values: "disable", "require", "verify-ca", "verify-full"
	SSLMode string `mapstructure:"ssl_mode" yaml:"ssl_mode"`

	// BatchSize is the number of rows sent to PostgreSQL in one COPY.
	BatchSize int `mapstructure:"batch_size" yaml:"batch_size"`
}

// SchemaConfig locates the two files of the schema contract.
type SchemaConfig struct {
	// DatasetsFile is the path to datasets.yaml.
	DatasetsFile string `mapstructure:"datasets_file" yaml:"datasets_file"`

	// VariablesFile is the path to variables.csv.
	VariablesFile string `mapstructure:"variables_file" yaml:"variables_file"`
}

// IngestConfig contains settings for standardization and bulk import.
type IngestConfig struct {
	// DataDir is the directory with raw dataset files.
	DataDir string `mapstructure:"data_dir" yaml:"data_dir"`

	// CacheDir receives canonical copies of standardized datasets.
	CacheDir string `mapstructure:"cache_dir" yaml:"cache_dir"`

	// CacheFormat is the file format of cached datasets.
	// Valid values: "parquet", "sqlite", "csv".
	CacheFormat string `mapstructure:"cache_format" yaml:"cache_format"`

	// WithCache enables writing canonical datasets to CacheDir.
	WithCache bool `mapstructure:"with_cache" yaml:"with_cache"`
}

// LogConfig provides typical settings for application logs.
type LogConfig struct {
	// Format can be 'json', 'text' or 'tint' (user-facing and colored).
	Format string `mapstructure:"format"      yaml:"format"`
	// Level of logging -- 'error', 'warn', 'info', 'debug'
	Level string `mapstructure:"level"       yaml:"level"`
	// Destination can be a log file (to default place), STDERR or STDOUT
	Destination string `mapstructure:"destination" yaml:"destination"`
}

// New creates a Config with sensible default values.
// The returned config is always valid and ready to use.
// Default values can be overridden using Option functions via Update().
func New() *Config {
	res := &Config{
		Database: DatabaseConfig{
			Host:      "localhost",
			Port:      5432,
			User:      "postgres",
			Password:  "postgres",
			Database:  "participant_inventory",
			SSLMode:   "disable",
			BatchSize: 10_000,
		},
		Schema: SchemaConfig{
			DatasetsFile:  "schema/datasets.yaml",
			VariablesFile: "schema/variables.csv",
		},
		Ingest: IngestConfig{
			DataDir:     "data/raw",
			CacheDir:    "data/clean",
			CacheFormat: "parquet",
		},
		Log: LogConfig{
			Format: "json",
			Level:  "info",
			// for now file is rewritten every time the log starts
			Destination: "file",
		},
		JobsNumber: runtime.NumCPU(),
	}

	return res
}
