// Package templategen turns discovered field metadata into a starter YAML
// template: a default value per field plus a comment describing it.
package templategen

import (
	"fmt"
	"strings"

	"github.com/thomas-vilte/matejira/internal/document"
	"github.com/thomas-vilte/matejira/internal/models"
	"github.com/thomas-vilte/matejira/internal/placeholder"
)

// Default is the synthesized template entry for one field.
type Default struct {
	// Value is the node inserted under fields.<key>.
	Value document.Document
	// Comment is the human-readable field description placed next to the
	// entry.
	Comment string
	// Skip marks fields the creation workflow populates programmatically;
	// they get no template entry at all.
	Skip bool
}

// Synthesize produces the template default for one field. The issue type
// name is needed because issuetype entries are pinned to it as a static
// literal rather than prompted for.
func Synthesize(field models.FieldMeta, issueType string) Default {
	comment := describe(field)

	switch field.Schema.Type {
	case "string":
		if field.MultiLine() {
			return Default{Value: document.String(placeholder.Multi("Enter " + field.Name)), Comment: comment}
		}
		return Default{Value: document.String(placeholder.Single("Enter " + field.Name)), Comment: comment}

	case "number":
		// numbers are still solicited as text and parsed downstream
		return Default{Value: document.String(placeholder.Single("Enter " + field.Name)), Comment: comment}

	case "array":
		return Default{Value: document.String(placeholder.Single("Enter " + field.Name + " (comma-separated)")), Comment: comment}

	case "option":
		key := "name"
		if field.FirstAllowedHasValue {
			key = "value"
		}
		label := "Enter " + field.Name
		if joined := joinedDisplays(field.AllowedValues); joined != "" {
			label += " (" + joined + ")"
		}
		return Default{
			Value:   document.Map(map[string]document.Document{key: document.String(placeholder.Single(label))}),
			Comment: comment,
		}

	case "user":
		return Default{
			Value:   document.Map(map[string]document.Document{"name": document.String(placeholder.Single("Enter " + field.Name))}),
			Comment: comment,
		}

	case "priority":
		return Default{
			Value:   document.Map(map[string]document.Document{"name": document.String(placeholder.Single("Enter " + field.Name))}),
			Comment: comment,
		}

	case "project":
		return Default{Skip: true}

	case "issuetype":
		return Default{
			Value:   document.Map(map[string]document.Document{"name": document.String(issueType)}),
			Comment: comment,
		}

	case "date":
		return Default{Value: document.String(placeholder.Single("Enter " + field.Name + " (YYYY-MM-DD)")), Comment: comment}

	case "datetime":
		return Default{Value: document.String(placeholder.Single("Enter " + field.Name + " (YYYY-MM-DDTHH:MM:SS.000+0000)")), Comment: comment}

	default:
		return Default{Value: document.String(placeholder.Single("Enter " + field.Name)), Comment: comment}
	}
}

// describe builds the field comment: display name, a [REQUIRED] marker,
// the schema type and the allowed values when there are any.
func describe(field models.FieldMeta) string {
	var b strings.Builder
	b.WriteString(field.Name)
	if field.Required {
		b.WriteString(" [REQUIRED]")
	}

	typ := field.Schema.Type
	if typ == "" {
		typ = "unknown"
	}
	b.WriteString(" - type: ")
	b.WriteString(typ)

	if len(field.AllowedValues) > 0 {
		if joined := joinedDisplays(field.AllowedValues); joined != "" {
			b.WriteString(" - values: ")
			b.WriteString(joined)
		} else {
			b.WriteString(fmt.Sprintf(" - %d allowed values", len(field.AllowedValues)))
		}
	}
	return b.String()
}

// joinedDisplays joins the non-empty display strings of the allowed values.
// Empty when every entry lacks a displayable form.
func joinedDisplays(values []models.AllowedValue) string {
	var parts []string
	for _, v := range values {
		if s := v.DisplayString(); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, ", ")
}
