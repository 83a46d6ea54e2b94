package templategen

import (
	"fmt"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/thomas-vilte/matejira/internal/document"
	"github.com/thomas-vilte/matejira/internal/models"
)

// BuildTemplate renders discovered fields as a YAML template document:
// a top-level `fields` mapping with one entry per field in the given order,
// each annotated with its synthesized comment. Fields the workflow fills in
// programmatically are left out.
func BuildTemplate(fields []models.FieldMeta, project, issueType string) (*yaml.Node, error) {
	mapping := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}

	for _, field := range fields {
		def := Synthesize(field, issueType)
		if def.Skip {
			continue
		}

		keyNode := &yaml.Node{
			Kind:        yaml.ScalarNode,
			Tag:         "!!str",
			Value:       field.Key,
			LineComment: "# " + def.Comment,
		}
		valueNode, err := yamlNode(def.Value)
		if err != nil {
			return nil, fmt.Errorf("templategen: render %s: %w", field.Key, err)
		}
		mapping.Content = append(mapping.Content, keyNode, valueNode)
	}

	if len(mapping.Content) == 0 {
		return nil, fmt.Errorf("templategen: no usable fields for %s/%s", project, issueType)
	}

	fieldsKey := &yaml.Node{
		Kind:        yaml.ScalarNode,
		Tag:         "!!str",
		Value:       "fields",
		HeadComment: fmt.Sprintf("# Issue template for %s/%s.\n# Fill values or leave {{PROMPT: ...}} markers for interactive runs.", project, issueType),
	}
	root := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map", Content: []*yaml.Node{fieldsKey, mapping}}
	return &yaml.Node{Kind: yaml.DocumentNode, Content: []*yaml.Node{root}}, nil
}

// yamlNode converts a Document into a yaml node tree, map keys in the
// Document's deterministic order.
func yamlNode(doc document.Document) (*yaml.Node, error) {
	switch doc.Kind() {
	case document.KindNull:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}, nil
	case document.KindString:
		s, _ := doc.AsString()
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s}, nil
	case document.KindNumber:
		n, _ := doc.AsNumber()
		if n == float64(int64(n)) {
			return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: strconv.FormatInt(int64(n), 10)}, nil
		}
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!float", Value: strconv.FormatFloat(n, 'f', -1, 64)}, nil
	case document.KindBool:
		b, _ := doc.AsBool()
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: strconv.FormatBool(b)}, nil
	case document.KindList:
		node := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, item := range doc.Items() {
			child, err := yamlNode(item)
			if err != nil {
				return nil, err
			}
			node.Content = append(node.Content, child)
		}
		return node, nil
	case document.KindMap:
		node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		for _, key := range doc.Keys() {
			value, _ := doc.Value(key)
			child, err := yamlNode(value)
			if err != nil {
				return nil, err
			}
			node.Content = append(node.Content,
				&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key},
				child)
		}
		return node, nil
	default:
		return nil, fmt.Errorf("unsupported document kind %s", doc.Kind())
	}
}
