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
	"os"
	"os/signal"

	"github.com/gnames/gn"
	"github.com/oscaralateras/participant-inventory/internal/ioingest"
	"github.com/oscaralateras/participant-inventory/pkg/ingest"
	"github.com/oscaralateras/participant-inventory/pkg/schema"
	"github.com/spf13/cobra"
)

// getIngestCmd returns the ingest command.
func getIngestCmd() *cobra.Command {
	ingestCmd := &cobra.Command{
		Use:   "ingest",
		Short: "Standardize every dataset of a directory",
		Long: `Standardize all datasets that have a raw file in the data directory.

For every dataset of datasets.yaml with a file_name the file is looked
up in the data directory and standardized. Datasets without a
file_name or without a file are skipped, datasets that fail are
reported. One bad dataset never stops the others.

With --cache canonical tables are written to the cache directory
together with manifest.json describing the run.

Examples:
  invdb ingest
  invdb ingest --dir data/raw
  invdb ingest --cache --format sqlite --cache-dir data/clean`,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runIngest(cmd)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	addIngestFlags(ingestCmd)
	return ingestCmd
}

func runIngest(cmd *cobra.Command) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cfg.Update(ingestOptions(cmd))

	reg, err := loadRegistry()
	if err != nil {
		return err
	}

	report, err := importDatasets(ctx, reg)
	if err != nil {
		return err
	}

	if report.Count(ingest.Loaded) > 0 {
		gn.Info(`Next steps:
	 - Run '<em>invdb create</em>' to create dataset tables
	 - Run '<em>invdb populate</em>' to load them`)
	}
	return nil
}

// importDatasets runs a bulk import of cfg.Ingest.DataDir.
func importDatasets(
	ctx context.Context,
	reg *schema.Registry,
) (*ingest.Report, error) {
	gn.Info("Importing datasets from <em>%s</em>", cfg.Ingest.DataDir)
	imp := ioingest.NewBulkImporter(cfg, reg, ioingest.NewStandardizer(reg))
	return imp.Import(ctx, cfg.Ingest.DataDir)
}
