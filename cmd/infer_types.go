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
	"log/slog"

	"github.com/gnames/gn"
	"github.com/oscaralateras/participant-inventory/internal/ioregistry"
	"github.com/oscaralateras/participant-inventory/pkg/schema"
	"github.com/oscaralateras/participant-inventory/pkg/typeinfer"
	"github.com/spf13/cobra"
)

// getInferTypesCmd returns the infer-types command.
func getInferTypesCmd() *cobra.Command {
	var onlyMissing, dryRun bool

	inferCmd := &cobra.Command{
		Use:   "infer-types",
		Short: "Assign sql_type values in variables.csv",
		Long: `Assign sql_type values to variables.csv with an ordered list of rules.

Rules are tried top to bottom, the first match wins:
  - the participant identifier is TEXT
  - categorical variables (dx, sex, site_id, ...) are TEXT
  - counts and scores (age, episodes, hdrs_, ...) are INTEGER
  - imaging measures (dti, cortical_thickness, ...) are FLOAT
  - continuous variables (bmi, ses, severity, ...) are FLOAT
  - everything else is TEXT

The file is rewritten keeping all of its columns. Use --only-missing to
fill blank sql_type cells only.

Examples:
  invdb infer-types
  invdb infer-types --only-missing
  invdb infer-types --dry-run`,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runInferTypes(onlyMissing, dryRun)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	inferCmd.Flags().BoolVarP(&onlyMissing, "only-missing", "m", false,
		"keep sql_type values that are already set")
	inferCmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false,
		"report changes without writing variables.csv")

	return inferCmd
}

func runInferTypes(onlyMissing, dryRun bool) error {
	path := cfg.Schema.VariablesFile

	doc, err := ioregistry.LoadDocument(cfg.Schema.DatasetsFile)
	if err != nil {
		return err
	}
	idColumn := doc.ParticipantIDColumn
	if idColumn == "" {
		idColumn = schema.DefaultParticipantIDColumn
	}

	header, records, err := ioregistry.ReadVariablesTable(path)
	if err != nil {
		return err
	}
	if missing := schema.MissingHeaders(header); len(missing) > 0 {
		return ioregistry.VariablesHeaderError(path, missing)
	}

	changes := typeinfer.Apply(typeinfer.DefaultRules(idColumn),
		header, records, onlyMissing)
	for _, v := range changes {
		slog.Info("Inferred sql_type",
			"dataset", v.Dataset,
			"variable", v.Variable,
			"from", v.From,
			"to", v.To,
			"rule", v.Rule,
		)
		if dryRun {
			gn.Info("  %s.%s: %q -> <em>%s</em>",
				v.Dataset, v.Variable, v.From, v.To)
		}
	}

	if len(changes) == 0 {
		gn.Info("All sql_type values are up to date")
		return nil
	}
	if dryRun {
		gn.Info("Variables to change: <em>%d</em> (dry run)", len(changes))
		return nil
	}

	if err = ioregistry.WriteVariablesTable(path, header, records); err != nil {
		return err
	}
	gn.Info("Updated <em>%d</em> variables in <em>%s</em>", len(changes), path)
	return nil
}
