package fields

import (
	"context"

	"github.com/thomas-vilte/matejira/internal/commands/completion_helper"
	"github.com/thomas-vilte/matejira/internal/config"
	"github.com/thomas-vilte/matejira/internal/document"
	"github.com/thomas-vilte/matejira/internal/i18n"
	"github.com/urfave/cli/v3"
)

// FieldSource is a minimal interface for testing purposes
type FieldSource interface {
	GetMetadata(ctx context.Context, project, issueType string, forceRefresh bool) (document.Document, error)
}

type FieldSourceProvider func(ctx context.Context) (FieldSource, error)

// FieldsCommandFactory is the factory to create the fields command.
type FieldsCommandFactory struct {
	fieldSourceProvider FieldSourceProvider
}

// NewFieldsCommandFactory creates a new instance of the factory.
func NewFieldsCommandFactory(fieldSourceProvider FieldSourceProvider) *FieldsCommandFactory {
	return &FieldsCommandFactory{
		fieldSourceProvider: fieldSourceProvider,
	}
}

// CreateCommand creates the main fields command with its subcommands.
func (f *FieldsCommandFactory) CreateCommand(t *i18n.Translations, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "fields",
		Usage: t.GetMessage("fields_command_description", 0, nil),
		Commands: []*cli.Command{
			f.newListCommand(t, cfg),
		},
		ShellComplete: completion_helper.CommandAndFlagComplete,
	}
}
