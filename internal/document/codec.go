package document

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// FromJSON parses JSON bytes into a Document.
func FromJSON(data []byte) (Document, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var raw interface{}
	if err := dec.Decode(&raw); err != nil {
		return Document{}, fmt.Errorf("document: decode json: %w", err)
	}
	return fromInterface(raw)
}

// FromYAML parses YAML bytes into a Document. Mapping keys must be strings.
func FromYAML(data []byte) (Document, error) {
	var raw interface{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return Document{}, fmt.Errorf("document: decode yaml: %w", err)
	}
	return fromInterface(raw)
}

func fromInterface(v interface{}) (Document, error) {
	switch val := v.(type) {
	case nil:
		return Null(), nil
	case bool:
		return Bool(val), nil
	case string:
		return String(val), nil
	case int:
		return Number(float64(val)), nil
	case int64:
		return Number(float64(val)), nil
	case uint64:
		return Number(float64(val)), nil
	case float64:
		return Number(val), nil
	case json.Number:
		f, err := val.Float64()
		if err != nil {
			return Document{}, fmt.Errorf("document: number %q: %w", val.String(), err)
		}
		return Number(f), nil
	case []interface{}:
		items := make([]Document, 0, len(val))
		for _, item := range val {
			d, err := fromInterface(item)
			if err != nil {
				return Document{}, err
			}
			items = append(items, d)
		}
		return Document{kind: KindList, list: items}, nil
	case map[string]interface{}:
		m := make(map[string]Document, len(val))
		for k, item := range val {
			d, err := fromInterface(item)
			if err != nil {
				return Document{}, err
			}
			m[k] = d
		}
		return Document{kind: KindMap, m: m}, nil
	case map[interface{}]interface{}:
		m := make(map[string]Document, len(val))
		for k, item := range val {
			key, ok := k.(string)
			if !ok {
				return Document{}, fmt.Errorf("document: non-string mapping key %v", k)
			}
			d, err := fromInterface(item)
			if err != nil {
				return Document{}, err
			}
			m[key] = d
		}
		return Document{kind: KindMap, m: m}, nil
	default:
		return Document{}, fmt.Errorf("document: unsupported value of type %T", v)
	}
}

// Interface converts the Document back into plain Go values, the shape
// encoding/json expects for request bodies.
func (d Document) Interface() interface{} {
	switch d.kind {
	case KindString:
		return d.str
	case KindNumber:
		return d.num
	case KindBool:
		return d.b
	case KindList:
		items := make([]interface{}, len(d.list))
		for i, item := range d.list {
			items[i] = item.Interface()
		}
		return items
	case KindMap:
		m := make(map[string]interface{}, len(d.m))
		for k, v := range d.m {
			m[k] = v.Interface()
		}
		return m
	default:
		return nil
	}
}

func (d Document) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Interface())
}

// PrettyJSON renders the Document with two-space indentation, for dry-run
// previews and --json output.
func (d Document) PrettyJSON() (string, error) {
	out, err := json.MarshalIndent(d.Interface(), "", "  ")
	if err != nil {
		return "", err
	}
	return string(out), nil
}
