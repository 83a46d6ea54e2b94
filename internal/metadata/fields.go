// Package metadata owns field schema documents fetched from the tracker:
// parsing them into typed entries, persisting them between invocations and
// deciding when a fetch is needed.
package metadata

import (
	"fmt"
	"strconv"

	"github.com/thomas-vilte/matejira/internal/document"
	"github.com/thomas-vilte/matejira/internal/models"
)

// ParseFields turns a field schema document (the per-issue-type `fields`
// map from createmeta) into typed entries. Entries come back sorted by
// field key; that sorted order is the "metadata order" every consumer
// (validator, template builder) preserves.
func ParseFields(doc document.Document) ([]models.FieldMeta, error) {
	if doc.Kind() != document.KindMap {
		return nil, fmt.Errorf("metadata: fields document is a %s, want a map", doc.Kind())
	}

	fields := make([]models.FieldMeta, 0, doc.Len())
	for _, key := range doc.Keys() {
		entry, _ := doc.Value(key)
		if entry.Kind() != document.KindMap {
			continue
		}

		meta := models.FieldMeta{
			Key:      key,
			Name:     stringAt(entry, "name"),
			Required: boolAt(entry, "required"),
		}
		if meta.Name == "" {
			meta.Name = key
		}

		if schema, ok := entry.Value("schema"); ok {
			meta.Schema = models.FieldSchema{
				Type:   stringAt(schema, "type"),
				System: stringAt(schema, "system"),
				Custom: stringAt(schema, "custom"),
			}
		}

		if avs, ok := entry.Value("allowedValues"); ok && avs.Kind() == document.KindList {
			for i, av := range avs.Items() {
				if i == 0 {
					_, has := av.Value("value")
					meta.FirstAllowedHasValue = has
				}
				meta.AllowedValues = append(meta.AllowedValues, models.AllowedValue{
					ID:    scalarAt(av, "id"),
					Name:  stringAt(av, "name"),
					Value: stringAt(av, "value"),
				})
			}
		}

		fields = append(fields, meta)
	}

	return fields, nil
}

// RequiredOf filters entries flagged required, preserving metadata order.
func RequiredOf(fields []models.FieldMeta) []models.FieldMeta {
	var required []models.FieldMeta
	for _, f := range fields {
		if f.Required {
			required = append(required, f)
		}
	}
	return required
}

func stringAt(doc document.Document, key string) string {
	v, ok := doc.Value(key)
	if !ok {
		return ""
	}
	s, _ := v.AsString()
	return s
}

func boolAt(doc document.Document, key string) bool {
	v, ok := doc.Value(key)
	if !ok {
		return false
	}
	b, _ := v.AsBool()
	return b
}

// scalarAt reads a value that the tracker serves as either string or number
// (ids come back both ways depending on the field type).
func scalarAt(doc document.Document, key string) string {
	v, ok := doc.Value(key)
	if !ok {
		return ""
	}
	if s, ok := v.AsString(); ok {
		return s
	}
	if n, ok := v.AsNumber(); ok {
		return strconv.FormatFloat(n, 'f', -1, 64)
	}
	return ""
}
