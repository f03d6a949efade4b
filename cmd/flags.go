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
	"github.com/oscaralateras/participant-inventory/pkg/config"
	"github.com/spf13/cobra"
)

type flagFunc func(cmd *cobra.Command) config.Option

// ingestFlags are shared by commands that run a bulk import.
var ingestFlags = map[string]flagFunc{
	"dir":       dirFlag,
	"cache":     cacheFlag,
	"cache-dir": cacheDirFlag,
	"format":    formatFlag,
	"jobs":      jobsFlag,
}

func addIngestFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("dir", "d", "",
		"directory with raw dataset files (overrides ingest.data_dir)")
	cmd.Flags().BoolP("cache", "c", false,
		"write canonical datasets to the cache directory")
	cmd.Flags().String("cache-dir", "",
		"cache directory (overrides ingest.cache_dir)")
	cmd.Flags().String("format", "",
		"cache format: parquet, sqlite or csv (overrides ingest.cache_format)")
	cmd.Flags().IntP("jobs", "j", 0,
		"number of datasets standardized concurrently")
}

// ingestOptions converts explicitly set ingest flags to options.
func ingestOptions(cmd *cobra.Command) []config.Option {
	var res []config.Option
	for name, fn := range ingestFlags {
		if cmd.Flags().Changed(name) {
			res = append(res, fn(cmd))
		}
	}
	return res
}

func dirFlag(cmd *cobra.Command) config.Option {
	s, _ := cmd.Flags().GetString("dir")
	return config.OptIngestDataDir(s)
}

func cacheFlag(cmd *cobra.Command) config.Option {
	b, _ := cmd.Flags().GetBool("cache")
	return config.OptIngestWithCache(b)
}

func cacheDirFlag(cmd *cobra.Command) config.Option {
	s, _ := cmd.Flags().GetString("cache-dir")
	return config.OptIngestCacheDir(s)
}

func formatFlag(cmd *cobra.Command) config.Option {
	s, _ := cmd.Flags().GetString("format")
	return config.OptIngestCacheFormat(s)
}

func jobsFlag(cmd *cobra.Command) config.Option {
	i, _ := cmd.Flags().GetInt("jobs")
	return config.OptJobsNumber(i)
}
