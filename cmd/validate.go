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
	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/spf13/cobra"
)

// getValidateCmd returns the validate command.
func getValidateCmd() *cobra.Command {
	validateCmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate the schema contract",
		Long: `Load datasets.yaml and variables.csv and cross-validate them.

The check fails when:
  - either file is missing or malformed
  - a variables.csv row has blank dataset, source_column or variable_name
  - a sql_type is not TEXT, INTEGER, FLOAT or BOOLEAN
  - a source column maps to two canonical names within a dataset
  - variables.csv uses datasets absent from datasets.yaml
  - the summary_view block refers to unknown datasets

Examples:
  invdb validate
  invdb validate --datasets schema/datasets.yaml --variables schema/variables.csv`,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runValidate()
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}
	return validateCmd
}

func runValidate() error {
	reg, err := loadRegistry()
	if err != nil {
		return err
	}

	var vars int
	for _, ds := range reg.DatasetNames() {
		cols := reg.Columns(ds)
		vars += len(cols)
		def, _ := reg.Dataset(ds)
		source := def.Source.FileName
		if source == "" {
			source = "no source file"
		}
		gn.Info("  <em>%s</em>: %d variables, %d required (%s)",
			ds, len(cols), len(reg.RequiredVariables(ds)), source)
	}

	if _, ok := reg.SummaryView(); ok {
		view, err := reg.BuildSummaryView()
		if err != nil {
			return err
		}
		gn.Info("Summary view <em>%s</em> has %d columns",
			view.Name, len(view.Columns))
	}

	gn.Info("Schema contract is valid: <em>%s</em> datasets, "+
		"<em>%s</em> variables, identifier <em>%s</em>",
		humanize.Comma(int64(len(reg.DatasetNames()))),
		humanize.Comma(int64(vars)),
		reg.ParticipantIDColumn(),
	)
	return nil
}
