package template

import (
	"context"

	"github.com/thomas-vilte/matejira/internal/commands/completion_helper"
	"github.com/thomas-vilte/matejira/internal/config"
	"github.com/thomas-vilte/matejira/internal/i18n"
	"github.com/urfave/cli/v3"
)

// TemplateGenerator is a minimal interface for testing purposes
type TemplateGenerator interface {
	GenerateTemplate(ctx context.Context, project, issueType string, forceRefresh bool) ([]byte, error)
}

type TemplateServiceProvider func(ctx context.Context) (TemplateGenerator, error)

// TemplateCommandFactory is the factory to create the template command.
type TemplateCommandFactory struct {
	templateServiceProvider TemplateServiceProvider
}

// NewTemplateCommandFactory creates a new instance of the factory.
func NewTemplateCommandFactory(templateServiceProvider TemplateServiceProvider) *TemplateCommandFactory {
	return &TemplateCommandFactory{
		templateServiceProvider: templateServiceProvider,
	}
}

// CreateCommand creates the main template command with its subcommands.
func (f *TemplateCommandFactory) CreateCommand(t *i18n.Translations, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:    "template",
		Aliases: []string{"tpl"},
		Usage:   t.GetMessage("template_command_description", 0, nil),
		Commands: []*cli.Command{
			f.newGenerateCommand(t, cfg),
		},
		ShellComplete: completion_helper.CommandAndFlagComplete,
	}
}
