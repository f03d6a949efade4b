package ioregistry

import (
	"os"

	"github.com/oscaralateras/participant-inventory/pkg/schema"
	"gopkg.in/yaml.v3"
)

// LoadDocument parses datasets.yaml. The top level must be a mapping,
// datasets must map names to definitions and id_column_aliases must map
// canonical names to alias lists. An empty file is an empty document.
func LoadDocument(path string) (schema.Document, error) {
	var res schema.Document

	data, err := os.ReadFile(path)
	if err != nil {
		return res, FileMissingError(path, err)
	}

	var root yaml.Node
	if err = yaml.Unmarshal(data, &root); err != nil {
		return res, YAMLParseError(path, err)
	}

	top := &root
	if top.Kind == yaml.DocumentNode && len(top.Content) > 0 {
		top = top.Content[0]
	}
	if top.Kind == 0 || isNull(top) {
		return res, nil
	}
	if top.Kind != yaml.MappingNode {
		return res, NotMappingError(path, "top level", top)
	}

	for i := 0; i+1 < len(top.Content); i += 2 {
		key, val := top.Content[i].Value, top.Content[i+1]
		switch key {
		case "participant_id_column":
			res.ParticipantIDColumn = trim(val.Value)
		case "id_column_aliases":
			res.IDColumnAliases, err = decodeAliases(path, val)
		case "datasets":
			res.Datasets, err = decodeDatasets(path, val)
		case "summary_view":
			res.SummaryView, err = decodeSummaryView(path, val)
		}
		if err != nil {
			return res, err
		}
	}
	return res, nil
}

func decodeAliases(path string, n *yaml.Node) (map[string][]string, error) {
	if isNull(n) {
		return nil, nil
	}
	if n.Kind != yaml.MappingNode {
		return nil, AliasesNotMappingError(path, n)
	}

	res := make(map[string][]string, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		key, val := trim(n.Content[i].Value), n.Content[i+1]
		var aliases []string
		switch val.Kind {
		case yaml.ScalarNode:
			if !isNull(val) {
				aliases = []string{trim(val.Value)}
			}
		default:
			if err := val.Decode(&aliases); err != nil {
				return nil, YAMLParseError(path, err)
			}
		}
		for j := range aliases {
			aliases[j] = trim(aliases[j])
		}
		res[key] = aliases
	}
	return res, nil
}

func decodeDatasets(
	path string,
	n *yaml.Node,
) (map[string]schema.DatasetDefinition, error) {
	if n.Kind != yaml.MappingNode {
		return nil, NotMappingError(path, "datasets", n)
	}

	res := make(map[string]schema.DatasetDefinition, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		name, val := trim(n.Content[i].Value), n.Content[i+1]
		def := schema.DatasetDefinition{Name: name}
		if isNull(val) {
			res[name] = def
			continue
		}
		if val.Kind != yaml.MappingNode {
			return nil, NotMappingError(path, "dataset "+name, val)
		}
		if src := lookup(val, "source"); src != nil && !isNull(src) {
			if src.Kind != yaml.MappingNode {
				return nil, NotMappingError(path, "source of "+name, src)
			}
			def.Source = schema.SourceConfig{
				Kind:      scalar(lookup(src, "kind")),
				FileName:  scalar(lookup(src, "file_name")),
				SheetName: scalar(lookup(src, "sheet_name")),
				HeaderRow: scalar(lookup(src, "header_row")),
			}
		}
		res[name] = def
	}
	return res, nil
}

type summaryViewDoc struct {
	Name    string              `yaml:"name"`
	Base    string              `yaml:"base"`
	Include map[string][]string `yaml:"include"`
	Flags   []string            `yaml:"flags"`
}

func decodeSummaryView(
	path string,
	n *yaml.Node,
) (*schema.SummaryViewConfig, error) {
	if isNull(n) {
		return nil, nil
	}
	if n.Kind != yaml.MappingNode {
		return nil, NotMappingError(path, "summary_view", n)
	}

	var doc summaryViewDoc
	if err := n.Decode(&doc); err != nil {
		return nil, YAMLParseError(path, err)
	}
	return &schema.SummaryViewConfig{
		Name:    doc.Name,
		Base:    doc.Base,
		Include: doc.Include,
		Flags:   doc.Flags,
	}, nil
}

func lookup(n *yaml.Node, key string) *yaml.Node {
	for i := 0; i+1 < len(n.Content); i += 2 {
		if n.Content[i].Value == key {
			return n.Content[i+1]
		}
	}
	return nil
}

// scalar returns the text of a scalar node. Non-scalar values keep their
// YAML kind so that later validation can report them.
func scalar(n *yaml.Node) string {
	switch {
	case n == nil || isNull(n):
		return ""
	case n.Kind == yaml.ScalarNode:
		return n.Value
	default:
		return "<" + kindName(n) + ">"
	}
}

func isNull(n *yaml.Node) bool {
	return n.Kind == yaml.ScalarNode && n.ShortTag() == "!!null"
}

func kindName(n *yaml.Node) string {
	switch n.Kind {
	case yaml.MappingNode:
		return "mapping"
	case yaml.SequenceNode:
		return "list"
	case yaml.ScalarNode:
		return "scalar"
	case yaml.AliasNode:
		return "alias"
	default:
		return "document"
	}
}
