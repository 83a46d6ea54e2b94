package models

import "strings"

// FieldSchema describes a field's type as reported by the tracker's
// creation metadata.
type FieldSchema struct {
	// Type is the schema type: string, number, array, option, user,
	// priority, project, issuetype, date, datetime, or a custom type name.
	Type string
	// System marks standard system fields (summary, description, ...).
	System string
	// Custom carries the custom-field subtype marker, e.g.
	// "com.atlassian.jira.plugin.system.customfieldtypes:textarea".
	Custom string
}

// AllowedValue is one entry of a field's allowed-values list. Entries expose
// some of name/value/id depending on the field type.
type AllowedValue struct {
	ID    string
	Name  string
	Value string
}

// DisplayString picks the human-readable form of an allowed value.
func (v AllowedValue) DisplayString() string {
	if v.Name != "" {
		return v.Name
	}
	if v.Value != "" {
		return v.Value
	}
	return v.ID
}

// FieldMeta is one field definition from tracker metadata. Read-only to
// consumers; the metadata service owns construction.
type FieldMeta struct {
	Key           string
	Name          string
	Required      bool
	Schema        FieldSchema
	AllowedValues []AllowedValue

	// FirstAllowedHasValue records whether the first allowed-value entry
	// exposes a "value" key, which decides the option default's map key.
	FirstAllowedHasValue bool
}

// systemMultiLineFields are the standard fields collected as long text.
// Inference is metadata-driven, never name-pattern-matched, so renamed
// fields keep the right behavior.
var systemMultiLineFields = map[string]bool{
	"description": true,
	"environment": true,
	"comment":     true,
}

// MultiLine reports whether the field should be collected as a multi-line
// block.
func (f FieldMeta) MultiLine() bool {
	if f.Schema.Custom != "" && strings.Contains(f.Schema.Custom, "textarea") {
		return true
	}
	return systemMultiLineFields[f.Schema.System]
}
