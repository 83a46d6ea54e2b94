package issues

import (
	"context"
	"fmt"
	"os"

	"github.com/thomas-vilte/matejira/internal/commands/completion_helper"
	"github.com/thomas-vilte/matejira/internal/config"
	"github.com/thomas-vilte/matejira/internal/document"
	"github.com/thomas-vilte/matejira/internal/i18n"
	"github.com/thomas-vilte/matejira/internal/services"
	"github.com/thomas-vilte/matejira/internal/ui"
	"github.com/urfave/cli/v3"
)

// IssueWorkflow is a minimal interface for testing purposes
type IssueWorkflow interface {
	CreateFromTemplate(ctx context.Context, opts services.CreateOptions) (*services.CreateResult, error)
	UpdateFromTemplate(ctx context.Context, opts services.UpdateOptions) error
	GetIssue(ctx context.Context, key string) (document.Document, error)
}

type IssueServiceProvider func(ctx context.Context) (IssueWorkflow, error)

// IssuesCommandFactory is the factory to create the issue command.
type IssuesCommandFactory struct {
	issueServiceProvider IssueServiceProvider
}

// NewIssuesCommandFactory creates a new instance of the factory.
func NewIssuesCommandFactory(issueServiceProvider IssueServiceProvider) *IssuesCommandFactory {
	return &IssuesCommandFactory{
		issueServiceProvider: issueServiceProvider,
	}
}

// CreateCommand creates the main issue command with its subcommands.
func (f *IssuesCommandFactory) CreateCommand(t *i18n.Translations, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:    "issue",
		Aliases: []string{"i"},
		Usage:   t.GetMessage("issue_command_description", 0, nil),
		Commands: []*cli.Command{
			f.newCreateCommand(t, cfg),
			f.newUpdateCommand(t, cfg),
			f.newShowCommand(t, cfg),
		},
		ShellComplete: completion_helper.CommandAndFlagComplete,
	}
}

// modeFlags defines the pair of flags shared by create and update.
func modeFlags(t *i18n.Translations) []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:    "interactive",
			Aliases: []string{"i"},
			Usage:   t.GetMessage("flag_interactive", 0, nil),
		},
		&cli.BoolFlag{
			Name:  "no-interactive",
			Usage: t.GetMessage("flag_no_interactive", 0, nil),
		},
	}
}

// resolveMode maps the interactive flag pair onto a resolution mode. Passing
// both flags is an error.
func resolveMode(command *cli.Command, t *i18n.Translations) (services.Mode, error) {
	interactive := command.Bool("interactive")
	nonInteractive := command.Bool("no-interactive")

	if interactive && nonInteractive {
		msg := t.GetMessage("error_conflicting_modes", 0, nil)
		ui.PrintError(os.Stdout, msg)
		return services.ModeAuto, fmt.Errorf("%s", msg)
	}
	if interactive {
		return services.ModeInteractive, nil
	}
	if nonInteractive {
		return services.ModeNonInteractive, nil
	}
	return services.ModeAuto, nil
}
