// Package placeholder implements the template placeholder grammar and the
// interactive resolve pass that turns a Document containing placeholder
// leaves into a fully concrete one.
package placeholder

import (
	"fmt"
	"strings"

	"github.com/thomas-vilte/matejira/internal/document"
	"github.com/thomas-vilte/matejira/internal/regex"
)

// Kind selects how a placeholder's value is collected.
type Kind int

const (
	// KindSingleLine collects exactly one input line.
	KindSingleLine Kind = iota
	// KindMultiLine collects lines until a literal END sentinel line.
	KindMultiLine
)

// Placeholder is the parsed form of a string leaf matching {{KIND: TEXT}}.
// It lives only for the duration of a resolve pass.
type Placeholder struct {
	Kind  Kind
	Label string
	Path  string
}

// FieldName derives the display field name, the final path component.
func (p Placeholder) FieldName() string {
	if idx := strings.LastIndex(p.Path, "."); idx >= 0 {
		return p.Path[idx+1:]
	}
	return p.Path
}

// Single renders the canonical single-line placeholder for a label.
func Single(label string) string {
	return "{{PROMPT: " + label + "}}"
}

// Multi renders the canonical multi-line placeholder for a label.
func Multi(label string) string {
	return "{{PROMPT_MULTI: " + label + "}}"
}

// Parse attempts to read a string as a placeholder. The whole string must
// match the grammar; PROMPT and INPUT are synonyms and the _MULTI suffix
// selects multi-line collection. Non-matching strings are not placeholders.
func Parse(raw string) (Placeholder, bool) {
	m := regex.Placeholder.FindStringSubmatch(raw)
	if m == nil {
		return Placeholder{}, false
	}
	kind := KindSingleLine
	if m[2] == "_MULTI" {
		kind = KindMultiLine
	}
	return Placeholder{Kind: kind, Label: m[3]}, true
}

// Scan collects every placeholder leaf in deterministic traversal order.
func Scan(doc document.Document) []Placeholder {
	var found []Placeholder
	doc.WalkStrings(func(path, value string) {
		if ph, ok := Parse(value); ok {
			ph.Path = path
			found = append(found, ph)
		}
	})
	return found
}

// PlaceholdersPresentError reports unresolved placeholders encountered by a
// non-interactive resolve. The operation never returns a partially resolved
// Document alongside it.
type PlaceholdersPresentError struct {
	Paths []string
}

func (e *PlaceholdersPresentError) Error() string {
	return fmt.Sprintf("document contains %d unresolved placeholder(s) at: %s",
		len(e.Paths), strings.Join(e.Paths, ", "))
}
