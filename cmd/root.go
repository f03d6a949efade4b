/*
Copyright © 2025 Dmitry Mozzherin <dmozzherin@gmail.com>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/gnames/gn"
	"github.com/oscaralateras/participant-inventory/internal/iodb"
	"github.com/oscaralateras/participant-inventory/internal/iofs"
	"github.com/oscaralateras/participant-inventory/internal/iologger"
	"github.com/oscaralateras/participant-inventory/internal/ioregistry"
	invdb "github.com/oscaralateras/participant-inventory/pkg"
	"github.com/oscaralateras/participant-inventory/pkg/config"
	"github.com/oscaralateras/participant-inventory/pkg/db"
	"github.com/oscaralateras/participant-inventory/pkg/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	homeDir string
	opts    []config.Option
	cfg     *config.Config

	datasetsFile  string
	variablesFile string
)

// getRootCmd returns the root command with all subcommands attached.
// A new instance is created on every call so tests do not share state.
func getRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Version: fmt.Sprintf("version: %s\nbuild:   %s", invdb.Version, invdb.Build),
		Use:     "invdb",
		Short:   "invdb keeps a participant inventory in sync with its schema contract",
		Long: `invdb manages a clinical and neuroimaging participant inventory.

A schema contract of two files drives every command:
  - datasets.yaml: where each dataset lives and how to read it
  - variables.csv: how raw columns map to canonical variables

Workflow:
  - init:        Write example schema files
  - validate:    Load and cross-validate the schema contract
  - standardize: Turn one raw CSV/TSV/XLSX file into a canonical table
  - ingest:      Standardize every dataset of a directory
  - create:      Create one PostgreSQL table per dataset
  - populate:    Load canonical datasets into their tables
  - optimize:    Build the summary materialized view
  - count:       Count participants matching filters
  - infer-types: Fill sql_type values of variables.csv

Configuration precedence (highest to lowest):
  1. CLI flags (--datasets, --variables, ...)
  2. Environment variables (INVDB_*)
  3. Config file (~/.config/invdb/config.yaml)
  4. Built-in defaults`,
		PersistentPreRunE: bootstrap,
		SilenceErrors:     true,
		SilenceUsage:      true,
	}

	// Remove the automatic "invdb version" prefix
	rootCmd.SetVersionTemplate("{{.Version}}\n")

	// Override version flag to use -V (consistent with other gn projects)
	rootCmd.Flags().BoolP("version", "V", false, "version for invdb")

	rootCmd.PersistentFlags().StringVar(&datasetsFile, "datasets", "",
		"path to datasets.yaml (overrides schema.datasets_file)")
	rootCmd.PersistentFlags().StringVar(&variablesFile, "variables", "",
		"path to variables.csv (overrides schema.variables_file)")

	rootCmd.AddCommand(
		getInitCmd(),
		getValidateCmd(),
		getStandardizeCmd(),
		getIngestCmd(),
		getCreateCmd(),
		getPopulateCmd(),
		getOptimizeCmd(),
		getCountCmd(),
		getInferTypesCmd(),
	)

	return rootCmd
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() {
	err := getRootCmd().Execute()
	if err != nil {
		os.Exit(1)
	}
}

func bootstrap(cmd *cobra.Command, args []string) error {
	var err error
	homeDir, err = os.UserHomeDir()
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if err = iofs.EnsureDirs(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	// Initialize logging with hardcoded defaults
	// Will be reconfigured later with user's config settings
	defaultLog := config.LogConfig{
		Format:      "json",
		Level:       "info",
		Destination: "file",
	}
	if err = iologger.Init(config.LogDir(homeDir), defaultLog, false); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if err = iofs.EnsureConfigFile(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	var cfgViper *config.Config
	if cfgViper, err = initConfig(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	cfg = config.New()
	opts = cfgViper.ToOptions()
	cfg.Update(opts)

	// Set HomeDir after config is loaded
	cfg.Update([]config.Option{config.OptHomeDir(homeDir)})

	var flagOpts []config.Option
	if cmd.Flags().Changed("datasets") {
		flagOpts = append(flagOpts, config.OptSchemaDatasetsFile(datasetsFile))
	}
	if cmd.Flags().Changed("variables") {
		flagOpts = append(flagOpts, config.OptSchemaVariablesFile(variablesFile))
	}
	cfg.Update(flagOpts)

	// Reconfigure logging with user's settings, keeping what was
	// logged so far.
	if err = iologger.Init(config.LogDir(cfg.HomeDir), cfg.Log, true); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	slog.Info("Configuration loaded",
		"config_file", config.ConfigFilePath(homeDir),
		"datasets_file", cfg.Schema.DatasetsFile,
		"variables_file", cfg.Schema.VariablesFile,
	)

	return nil
}

func initConfig(home string) (*config.Config, error) {
	var err error
	cfgPath := config.ConfigFilePath(home)
	v := viper.New()
	v.SetConfigFile(cfgPath)

	initEnvVars(v)

	if err = v.ReadInConfig(); err != nil {
		return nil, iofs.ReadFileError(cfgPath, err)
	}

	var res config.Config
	if err = v.Unmarshal(&res); err != nil {
		return nil, iofs.ReadFileError(cfgPath, err)
	}

	return &res, nil
}

func initEnvVars(v *viper.Viper) {
	// Set environment variables we want.
	// We set them manually so we can see clearly which env variables are allowed.
	// These match the fields included in config.ToOptions().
	v.SetEnvPrefix("INVDB")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Database configuration
	v.BindEnv("database.host", "INVDB_DATABASE_HOST")
	v.BindEnv("database.port", "INVDB_DATABASE_PORT")
	v.BindEnv("database.user", "INVDB_DATABASE_USER")
	v.BindEnv("database.password", "INVDB_DATABASE_PASSWORD")
	v.BindEnv("database.database", "INVDB_DATABASE_DATABASE")
	v.BindEnv("database.ssl_mode", "INVDB_DATABASE_SSL_MODE")
	v.BindEnv("database.batch_size", "INVDB_DATABASE_BATCH_SIZE")

	// Schema contract
	v.BindEnv("schema.datasets_file", "INVDB_SCHEMA_DATASETS_FILE")
	v.BindEnv("schema.variables_file", "INVDB_SCHEMA_VARIABLES_FILE")

	// Ingest configuration
	v.BindEnv("ingest.data_dir", "INVDB_INGEST_DATA_DIR")
	v.BindEnv("ingest.cache_dir", "INVDB_INGEST_CACHE_DIR")
	v.BindEnv("ingest.cache_format", "INVDB_INGEST_CACHE_FORMAT")

	// Log configuration
	v.BindEnv("log.level", "INVDB_LOG_LEVEL")
	v.BindEnv("log.format", "INVDB_LOG_FORMAT")
	v.BindEnv("log.destination", "INVDB_LOG_DESTINATION")

	// General configuration
	v.BindEnv("jobs_number", "INVDB_JOBS_NUMBER")

	v.AutomaticEnv()
}

// loadRegistry reads the schema contract named by the configuration.
func loadRegistry() (*schema.Registry, error) {
	reg, err := ioregistry.Load(cfg.Schema.DatasetsFile, cfg.Schema.VariablesFile)
	if err != nil {
		return nil, err
	}
	slog.Info("Schema registry loaded",
		"datasets", len(reg.DatasetNames()),
		"datasets_file", cfg.Schema.DatasetsFile,
		"variables_file", cfg.Schema.VariablesFile,
	)
	return reg, nil
}

// connect opens the database pool configured in cfg. The caller closes
// the operator.
func connect(ctx context.Context) (db.Operator, error) {
	op := iodb.NewPgxOperator()
	if err := op.Connect(ctx, &cfg.Database); err != nil {
		return nil, err
	}

	gn.Info("Connected to database: <em>%s@%s:%d/%s</em>",
		cfg.Database.User, cfg.Database.Host,
		cfg.Database.Port, cfg.Database.Database)
	return op, nil
}
