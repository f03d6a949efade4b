// Package iofs manages invdb files and directories: configuration,
// cache and log locations, and schema templates for new projects.
package iofs

import (
	"embed"
	"os"
	"path/filepath"

	"github.com/oscaralateras/participant-inventory/pkg/config"
)

//go:embed config.yaml
var ConfigYAML string

//go:embed templates
var templates embed.FS

// SchemaTemplates are the files written by WriteSchemaTemplates.
var SchemaTemplates = []string{"datasets.yaml", "variables.csv"}

func EnsureDirs(homeDir string) error {
	dirs := []string{
		config.ConfigDir(homeDir),
		config.CacheDir(homeDir),
		config.LogDir(homeDir),
	}
	for _, v := range dirs {
		if err := touchDir(v); err != nil {
			return err
		}
	}
	return nil
}

func touchDir(dir string) error {
	info, err := os.Stat(dir)
	if err == nil && info.IsDir() {
		return nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return CreateDirError(dir, err)
	}

	return nil
}

func EnsureConfigFile(homeDir string) error {
	configPath := config.ConfigFilePath(homeDir)

	if _, err := os.Stat(configPath); err == nil {
		return nil
	}

	if err := os.WriteFile(configPath, []byte(ConfigYAML), 0644); err != nil {
		return CopyFileError(configPath, err)
	}

	return nil
}

// WriteSchemaTemplates writes example datasets.yaml and variables.csv into
// dir. Existing files are left untouched. It returns paths of files that
// were written.
func WriteSchemaTemplates(dir string) ([]string, error) {
	if err := touchDir(dir); err != nil {
		return nil, err
	}

	var res []string
	for _, v := range SchemaTemplates {
		path := filepath.Join(dir, v)
		if _, err := os.Stat(path); err == nil {
			continue
		}

		data, err := templates.ReadFile("templates/" + v)
		if err != nil {
			return res, ReadFileError(v, err)
		}
		if err = os.WriteFile(path, data, 0644); err != nil {
			return res, CopyFileError(path, err)
		}
		res = append(res, path)
	}
	return res, nil
}
