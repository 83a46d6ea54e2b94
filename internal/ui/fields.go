package ui

import (
	"fmt"
	"strings"

	"github.com/thomas-vilte/matejira/internal/models"
)

// PrintFields renders one row per field: key, display name, a required
// marker and the schema type, plus the option count when the field is
// constrained to a set.
func PrintFields(fields []models.FieldMeta) {
	for _, f := range fields {
		marker := ""
		if f.Required {
			marker = " " + Error.Sprint("[REQUIRED]")
		}

		typ := f.Schema.Type
		if typ == "" {
			typ = "unknown"
		}

		line := fmt.Sprintf("   %s  %s%s %s",
			Info.Sprint(f.Key), Strong.Sprint(f.Name), marker, Dim.Sprintf("(%s)", typ))
		if n := len(f.AllowedValues); n > 0 {
			line += Dim.Sprintf(" %d values", n)
		}
		fmt.Println(line)
	}
}

// PrintMissingFields renders the validator's findings, one row per absent
// required field.
func PrintMissingFields(missing []models.MissingField) {
	for _, m := range missing {
		fmt.Printf("   %s %s %s\n", Error.Sprint("✗"), Info.Sprint(m.Key), Dim.Sprintf("(%s)", m.Name))
	}
}

// PrintBlock indents a multi-line string (a payload, a template) under the
// current output.
func PrintBlock(s string) {
	for _, line := range strings.Split(strings.TrimRight(s, "\n"), "\n") {
		fmt.Printf("   %s\n", line)
	}
}
