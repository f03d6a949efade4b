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
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/gnames/gnuuid"
	"github.com/oscaralateras/participant-inventory/internal/iocache"
	"github.com/oscaralateras/participant-inventory/internal/ioingest"
	"github.com/spf13/cobra"
)

// getStandardizeCmd returns the standardize command.
func getStandardizeCmd() *cobra.Command {
	var sheet, out, format string

	standardizeCmd := &cobra.Command{
		Use:   "standardize <dataset> <file>",
		Short: "Standardize one raw dataset file",
		Long: `Read a raw CSV, TSV or XLSX file as the given dataset and turn it into
a canonical table.

This command:
  1. Reads the file according to the source block of the dataset
  2. Finds the participant identifier column (canonical name or alias)
  3. Drops rows with a blank identifier
  4. Renames mapped columns to canonical names, drops unknown columns
  5. Checks that all required variables are present

Without --out only a summary is printed. With --out the canonical table
is written to the directory in the chosen format.

Examples:
  invdb standardize dti data/raw/dti.csv
  invdb standardize basic_covariates data/raw/cov.xlsx --sheet Sheet2
  invdb standardize dti data/raw/dti.csv --out data/clean --format csv`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runStandardize(args[0], args[1], sheet, out, format)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	standardizeCmd.Flags().StringVarP(&sheet, "sheet", "s", "",
		"worksheet to read instead of the configured sheet_name")
	standardizeCmd.Flags().StringVarP(&out, "out", "o", "",
		"directory to write the canonical table to")
	standardizeCmd.Flags().StringVar(&format, "format", "",
		"output format: parquet, sqlite or csv (default from config)")

	return standardizeCmd
}

func runStandardize(dataset, path, sheet, out, format string) error {
	ctx := context.Background()

	reg, err := loadRegistry()
	if err != nil {
		return err
	}

	std := ioingest.NewStandardizer(reg)
	f, err := std.Standardize(ctx, dataset, path, sheet)
	if err != nil {
		return err
	}

	gn.Info("Standardized <em>%s</em>: %s rows, %d columns",
		dataset, humanize.Comma(int64(f.NumRows())), f.NumColumns())
	gn.Info("Columns: %s", strings.Join(f.Columns(), ", "))
	gn.Info("Content ID: <em>%s</em>", gnuuid.New(f.Content()).String())

	if out == "" {
		return nil
	}

	if format == "" {
		format = cfg.Ingest.CacheFormat
	}
	if err = os.MkdirAll(out, 0755); err != nil {
		return ioingest.CacheDirError(out, err)
	}
	w, err := iocache.New(strings.ToLower(format), out)
	if err != nil {
		return ioingest.CacheDirError(out, err)
	}
	file, err := w.Write(ctx, dataset, f)
	if err != nil {
		return err
	}
	gn.Info("Canonical table written to <em>%s</em>", file)
	return nil
}
