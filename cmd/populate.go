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
	"errors"
	"os"
	"os/signal"

	"github.com/gnames/gn"
	"github.com/oscaralateras/participant-inventory/internal/iopopulate"
	"github.com/oscaralateras/participant-inventory/pkg/errcode"
	"github.com/spf13/cobra"
)

// getPopulateCmd returns the populate command.
// Extracted as a function to facilitate testing and dynamic
// command registration.
func getPopulateCmd() *cobra.Command {
	populateCmd := &cobra.Command{
		Use:   "populate",
		Short: "Populate dataset tables with standardized data",
		Long: `Standardize raw files and load them into PostgreSQL.

This command:
  1. Connects to PostgreSQL using configuration settings
  2. Standardizes every dataset with a raw file in the data directory
  3. Replaces the content of each dataset table in one transaction
  4. Reports loaded, skipped and failed datasets

A dataset that fails to standardize or load does not stop the others.
The command fails only when every dataset failed to load.

Examples:
  invdb populate
  invdb populate --dir data/raw
  invdb populate --cache --format parquet`,
		Aliases: []string{"load"},
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runPopulate(cmd)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	addIngestFlags(populateCmd)
	return populateCmd
}

func runPopulate(cmd *cobra.Command) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cfg.Update(ingestOptions(cmd))

	reg, err := loadRegistry()
	if err != nil {
		return err
	}

	op, err := connect(ctx)
	if err != nil {
		return err
	}
	defer op.Close()

	hasTables, err := op.HasTables(ctx, tableNames(reg))
	if err != nil {
		return err
	}

	if !hasTables {
		err = &gn.Error{
			Code: errcode.DBEmptyDatabaseError,
			Msg: `<err>Database has no dataset tables.</err>
   Run <em>'invdb create'</em> first to initialize the schema.`,
			Err: errors.New("cannot load datasets into empty database"),
		}
		return err
	}

	report, err := importDatasets(ctx, reg)
	if err != nil {
		return err
	}

	populator := iopopulate.New(cfg, reg, op)
	gn.Info("Starting data population...")
	if err = populator.Populate(ctx, report); err != nil {
		return err
	}

	gn.Info(`Next steps:
	 - Run '<em>invdb optimize</em>' to build the summary view
	 - Run '<em>invdb count</em>' to query participants`)
	return nil
}
