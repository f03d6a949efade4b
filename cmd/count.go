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
	"io"

	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
	"github.com/oscaralateras/participant-inventory/internal/ioquery"
	"github.com/spf13/cobra"
)

// countOutput is the JSON form of the count command result.
type countOutput struct {
	View    string           `json:"view"`
	Filters []ioquery.Filter `json:"filters"`
	Count   int64            `json:"count"`
}

// getCountCmd returns the count command.
func getCountCmd() *cobra.Command {
	var (
		filters []string
		asJSON  bool
	)

	countCmd := &cobra.Command{
		Use:   "count",
		Short: "Count participants of the summary view",
		Long: `Count participants of the summary view matching all filters.

Each filter has the form column=value. A column suffix _min means "at
least", _max means "at most", any other column is compared for
equality. Columns are checked against the summary view and values are
always sent as query parameters.

Prerequisites:
  - The summary view must exist (run 'invdb optimize' first)

Examples:
  invdb count
  invdb count -f has_dti=true -f age_min=18 -f age_max=65
  invdb count -f dx=MDD --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runCount(cmd.OutOrStdout(), filters, asJSON)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	countCmd.Flags().StringArrayVarP(&filters, "filter", "f", nil,
		"filter as column=value, column_min=value or column_max=value")
	countCmd.Flags().BoolVar(&asJSON, "json", false,
		"print the result as JSON")

	return countCmd
}

func runCount(out io.Writer, ss []string, asJSON bool) error {
	ctx := context.Background()

	reg, err := loadRegistry()
	if err != nil {
		return err
	}

	view, err := reg.BuildSummaryView()
	if err != nil {
		return err
	}

	filters, err := ioquery.ParseFilters(ss)
	if err != nil {
		return err
	}
	// unknown columns fail before connecting
	if _, _, err = ioquery.BuildCount(view, filters); err != nil {
		return err
	}

	op, err := connect(ctx)
	if err != nil {
		return err
	}
	defer op.Close()

	n, err := ioquery.Count(ctx, op, view, filters)
	if err != nil {
		return err
	}

	if !asJSON {
		fmt.Fprintln(out, n)
		return nil
	}

	enc := gnfmt.GNjson{Pretty: true}
	data, err := enc.Encode(countOutput{View: view.Name, Filters: filters, Count: n})
	if err != nil {
		return err
	}
	fmt.Fprintln(out, string(data))
	return nil
}
