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
	"github.com/oscaralateras/participant-inventory/internal/ioschema"
	"github.com/oscaralateras/participant-inventory/pkg/schema"
	"github.com/spf13/cobra"
)

// getCreateCmd returns the create command.
// Extracted as a function to facilitate testing and dynamic
// command registration.
func getCreateCmd() *cobra.Command {
	var forceCreate bool

	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Create dataset tables in the database schema",
		Long: `Create one PostgreSQL table per dataset of the schema contract.

This command:
  1. Connects to PostgreSQL using configuration settings
  2. Loads the schema contract
  3. Creates a table for every dataset keyed by the participant
     identifier, with one column per canonical variable typed by
     its sql_type

Creation is idempotent: existing tables are kept. Tables not described
by datasets.yaml are never touched.

Use --force to drop existing dataset tables first.

Examples:
  invdb create
  invdb create --force
  invdb create -f`,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runCreate(forceCreate)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	createCmd.Flags().BoolVarP(&forceCreate, "force", "f",
		false, "drop existing dataset tables before creating them")

	return createCmd
}

func runCreate(force bool) error {
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

	hasTables, err := op.HasTables(ctx, tableNames(reg))
	if err != nil {
		return err
	}

	if hasTables {
		if force {
			gn.Info("Dropping existing dataset tables (--force enabled)...")
		} else {
			gn.Info("Existing dataset tables are kept")
		}
	}

	sm := ioschema.NewManager(reg, op)
	if err = sm.Create(ctx, force); err != nil {
		return err
	}

	gn.Info(`Next steps:
	 - Run '<em>invdb populate</em>' to load datasets
	 - Run '<em>invdb optimize</em>' to build the summary view`)
	return nil
}

// tableNames returns tables of all datasets of the registry.
func tableNames(reg *schema.Registry) []string {
	ds := reg.DatasetNames()
	res := make([]string, len(ds))
	for i, v := range ds {
		res[i] = reg.TableName(v)
	}
	return res
}
