package placeholder

import (
	"context"
	"fmt"

	"github.com/thomas-vilte/matejira/internal/document"
	"github.com/thomas-vilte/matejira/internal/logger"
)

// Request describes one value solicitation handed to the Prompter.
type Request struct {
	FieldName string
	Label     string
	MultiLine bool
}

// Prompter supplies a value for a single placeholder. Implementations block
// until a line (or multi-line block) has been fully read.
type Prompter interface {
	Prompt(ctx context.Context, req Request) (string, error)
}

// Resolver rewrites placeholder leaves into user-supplied values.
type Resolver struct {
	prompter Prompter
}

func NewResolver(p Prompter) *Resolver {
	return &Resolver{prompter: p}
}

// Resolve transforms doc into a fully concrete Document.
//
// With no placeholders present the input is returned unchanged, whatever the
// mode. In non-interactive mode any placeholder is a PlaceholdersPresentError;
// the document is never submitted with literal markers left in. In
// interactive mode every placeholder path is charset-checked before the first
// prompt, then values are collected strictly in traversal order and written
// through copy-on-write replacement, so no caller ever observes a partially
// resolved tree.
func (r *Resolver) Resolve(ctx context.Context, doc document.Document, interactive bool) (document.Document, error) {
	found := Scan(doc)
	if len(found) == 0 {
		return doc, nil
	}

	if !interactive {
		paths := make([]string, len(found))
		for i, ph := range found {
			paths[i] = ph.Path
		}
		return document.Document{}, &PlaceholdersPresentError{Paths: paths}
	}

	for _, ph := range found {
		if ph.Path == "" {
			continue
		}
		if err := document.ValidatePath(ph.Path); err != nil {
			return document.Document{}, err
		}
	}

	logger.Debug(ctx, "resolving placeholders", "placeholders", len(found))

	resolved := doc
	for _, ph := range found {
		logger.Debug(ctx, "prompting", "path", ph.Path, "field", ph.FieldName())

		value, err := r.prompter.Prompt(ctx, Request{
			FieldName: ph.FieldName(),
			Label:     ph.Label,
			MultiLine: ph.Kind == KindMultiLine,
		})
		if err != nil {
			return document.Document{}, fmt.Errorf("prompt for %q: %w", ph.Path, err)
		}

		resolved, err = resolved.WithValueAt(ph.Path, document.String(value))
		if err != nil {
			return document.Document{}, err
		}
	}

	return resolved, nil
}
