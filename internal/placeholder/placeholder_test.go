package placeholder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thomas-vilte/matejira/internal/document"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name      string
		raw       string
		wantOK    bool
		wantKind  Kind
		wantLabel string
	}{
		{
			name:      "prompt single line",
			raw:       "{{PROMPT: Enter summary}}",
			wantOK:    true,
			wantKind:  KindSingleLine,
			wantLabel: "Enter summary",
		},
		{
			name:      "input is a synonym of prompt",
			raw:       "{{INPUT: Assignee}}",
			wantOK:    true,
			wantKind:  KindSingleLine,
			wantLabel: "Assignee",
		},
		{
			name:      "prompt multi line",
			raw:       "{{PROMPT_MULTI: Description}}",
			wantOK:    true,
			wantKind:  KindMultiLine,
			wantLabel: "Description",
		},
		{
			name:      "input multi line",
			raw:       "{{INPUT_MULTI: Steps to reproduce}}",
			wantOK:    true,
			wantKind:  KindMultiLine,
			wantLabel: "Steps to reproduce",
		},
		{
			name:      "extra whitespace tolerated",
			raw:       "{{  PROMPT :   Points  }}",
			wantOK:    true,
			wantKind:  KindSingleLine,
			wantLabel: "Points",
		},
		{
			name:      "empty label",
			raw:       "{{PROMPT:}}",
			wantOK:    true,
			wantKind:  KindSingleLine,
			wantLabel: "",
		},
		{
			name:      "label may contain a colon",
			raw:       "{{PROMPT: Due date (format: YYYY-MM-DD)}}",
			wantOK:    true,
			wantKind:  KindSingleLine,
			wantLabel: "Due date (format: YYYY-MM-DD)",
		},
		{name: "plain text", raw: "just a value", wantOK: false},
		{name: "lowercase kind", raw: "{{prompt: x}}", wantOK: false},
		{name: "unknown kind", raw: "{{ASK: x}}", wantOK: false},
		{name: "embedded in text", raw: "before {{PROMPT: x}} after", wantOK: false},
		{name: "missing closing braces", raw: "{{PROMPT: x", wantOK: false},
		{name: "single braces", raw: "{PROMPT: x}", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ph, ok := Parse(tt.raw)
			require.Equal(t, tt.wantOK, ok)
			if ok {
				assert.Equal(t, tt.wantKind, ph.Kind)
				assert.Equal(t, tt.wantLabel, ph.Label)
			}
		})
	}
}

func TestPlaceholder_FieldName(t *testing.T) {
	assert.Equal(t, "summary", Placeholder{Path: "fields.summary"}.FieldName())
	assert.Equal(t, "name", Placeholder{Path: "fields.issuetype.name"}.FieldName())
	assert.Equal(t, "summary", Placeholder{Path: "summary"}.FieldName())
	assert.Equal(t, "", Placeholder{Path: ""}.FieldName())
}

func TestScan(t *testing.T) {
	doc := document.Map(map[string]document.Document{
		"fields": document.Map(map[string]document.Document{
			"description": document.String("{{PROMPT_MULTI: Long form}}"),
			"summary":     document.String("{{PROMPT: Enter summary}}"),
			"issuetype":   document.Map(map[string]document.Document{"name": document.String("Task")}),
			"labels": document.List(
				document.String("fixed-label"),
				document.String("{{INPUT: Extra label}}"),
			),
		}),
	})

	found := Scan(doc)
	require.Len(t, found, 3)

	// deterministic traversal order: sorted map keys, list order preserved
	assert.Equal(t, "fields.description", found[0].Path)
	assert.Equal(t, KindMultiLine, found[0].Kind)
	assert.Equal(t, "Long form", found[0].Label)

	assert.Equal(t, "fields.labels.1", found[1].Path)
	assert.Equal(t, KindSingleLine, found[1].Kind)

	assert.Equal(t, "fields.summary", found[2].Path)
	assert.Equal(t, "Enter summary", found[2].Label)
}

func TestScan_NoPlaceholders(t *testing.T) {
	doc := document.Map(map[string]document.Document{
		"fields": document.Map(map[string]document.Document{
			"summary": document.String("already concrete"),
		}),
	})

	assert.Empty(t, Scan(doc))
}

func TestSingleAndMultiRoundTrip(t *testing.T) {
	single, ok := Parse(Single("Enter Summary"))
	require.True(t, ok)
	assert.Equal(t, KindSingleLine, single.Kind)
	assert.Equal(t, "Enter Summary", single.Label)

	multi, ok := Parse(Multi("Enter Description"))
	require.True(t, ok)
	assert.Equal(t, KindMultiLine, multi.Kind)
	assert.Equal(t, "Enter Description", multi.Label)
}
