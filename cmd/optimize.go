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

	"github.com/gnames/gn"
	"github.com/oscaralateras/participant-inventory/internal/iooptimize"
	"github.com/spf13/cobra"
)

// getOptimizeCmd returns the optimize command.
// Extracted as a function to facilitate testing and dynamic
// command registration.
func getOptimizeCmd() *cobra.Command {
	optimizeCmd := &cobra.Command{
		Use:   "optimize",
		Short: "Build the summary materialized view",
		Long: `Rebuild the participant summary view and refresh statistics.

This command:
  1. Checks that every table used by the view exists
  2. Drops existing materialized views
  3. Creates the summary view from the summary_view block of
     datasets.yaml: base dataset columns, included variables of other
     datasets and has_<dataset> flags
  4. Adds a unique participant index and runs VACUUM ANALYZE

Prerequisites:
  - Tables must be created (run 'invdb create' first)
  - Tables should be populated (run 'invdb populate' first)

Examples:
  invdb optimize`,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runOptimize()
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	return optimizeCmd
}

func runOptimize() error {
	ctx := context.Background()

	reg, err := loadRegistry()
	if err != nil {
		return err
	}

	op, err := connect(ctx)
	if err != nil {
		return err
	}
	defer op.Close()

	optimizer := iooptimize.NewOptimizer(reg, op)

	gn.Info("Starting database optimization...")
	if err = optimizer.Optimize(ctx); err != nil {
		return err
	}
	gn.Info(`Database optimization is complete!

You can re-run 'invdb optimize' after every 'invdb populate'.`)

	return nil
}
