package ioregistry

import (
	"fmt"
	"strings"

	"github.com/gnames/gn"
	"github.com/oscaralateras/participant-inventory/pkg/errcode"
	"gopkg.in/yaml.v3"
)

func FileMissingError(path string, err error) error {
	msg := "Schema file <em>%s</em> is missing or unreadable"
	return &gn.Error{
		Code: errcode.SchemaFileMissingError,
		Msg:  msg,
		Vars: []any{path},
		Err:  fmt.Errorf("schema file %s: %w", path, err),
	}
}

func YAMLParseError(path string, err error) error {
	msg := "Cannot parse YAML in <em>%s</em>"
	return &gn.Error{
		Code: errcode.SchemaYAMLParseError,
		Msg:  msg,
		Vars: []any{path},
		Err:  fmt.Errorf("parse %s: %w", path, err),
	}
}

// NotMappingError reports a datasets.yaml section that is not a mapping.
func NotMappingError(path, section string, n *yaml.Node) error {
	code := errcode.SchemaNotMappingError
	if section == "datasets" {
		code = errcode.SchemaDatasetsNotMappingError
	}
	msg := "In <em>%s</em> %s must be a mapping, got %s"
	vars := []any{path, section, kindName(n)}
	return &gn.Error{
		Code: code,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("%s: %s must be a mapping, got %s at line %d",
			path, section, kindName(n), n.Line),
	}
}

func AliasesNotMappingError(path string, n *yaml.Node) error {
	msg := "In <em>%s</em> id_column_aliases must map canonical " +
		"names to alias lists, got %s"
	vars := []any{path, kindName(n)}
	return &gn.Error{
		Code: errcode.SchemaAliasesNotMappingError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("%s: id_column_aliases must be a mapping, got %s",
			path, kindName(n)),
	}
}

func VariablesHeaderError(path string, missing []string) error {
	names := strings.Join(missing, ", ")
	msg := "<em>%s</em> misses required columns: %s"
	return &gn.Error{
		Code: errcode.SchemaVariablesHeaderError,
		Msg:  msg,
		Vars: []any{path, names},
		Err:  fmt.Errorf("%s: missing required columns: %s", path, names),
	}
}

func VariablesReadError(path string, err error) error {
	msg := "Cannot read variables from <em>%s</em>"
	return &gn.Error{
		Code: errcode.SchemaVariablesReadError,
		Msg:  msg,
		Vars: []any{path},
		Err:  fmt.Errorf("read %s: %w", path, err),
	}
}

func WriteError(path string, err error) error {
	msg := "Cannot write <em>%s</em>"
	return &gn.Error{
		Code: errcode.WriteFileError,
		Msg:  msg,
		Vars: []any{path},
		Err:  fmt.Errorf("write %s: %w", path, err),
	}
}
