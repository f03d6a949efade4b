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
	"github.com/gnames/gn"
	"github.com/oscaralateras/participant-inventory/internal/iofs"
	"github.com/spf13/cobra"
)

// getInitCmd returns the init command.
func getInitCmd() *cobra.Command {
	initCmd := &cobra.Command{
		Use:   "init [dir]",
		Short: "Write example schema files",
		Long: `Write example datasets.yaml and variables.csv files.

The files show every supported option of the schema contract and can be
edited to describe real datasets. Existing files are never overwritten.

The directory defaults to 'schema'.

Examples:
  invdb init
  invdb init config/schema`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runInit(args)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}
	return initCmd
}

func runInit(args []string) error {
	dir := "schema"
	if len(args) > 0 {
		dir = args[0]
	}

	written, err := iofs.WriteSchemaTemplates(dir)
	if err != nil {
		return err
	}

	if len(written) == 0 {
		gn.Info("Schema files already exist in <em>%s</em>", dir)
		return nil
	}
	for _, v := range written {
		gn.Info("Created <em>%s</em>", v)
	}
	gn.Info(`Next steps:
	 - Describe datasets in '<em>datasets.yaml</em>'
	 - Map raw columns in '<em>variables.csv</em>'
	 - Run '<em>invdb validate</em>' to check the contract`)
	return nil
}
