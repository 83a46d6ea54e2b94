package issues

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/thomas-vilte/matejira/internal/commands/completion_helper"
	"github.com/thomas-vilte/matejira/internal/config"
	"github.com/thomas-vilte/matejira/internal/i18n"
	"github.com/thomas-vilte/matejira/internal/logger"
	"github.com/thomas-vilte/matejira/internal/services"
	"github.com/thomas-vilte/matejira/internal/ui"
	"github.com/urfave/cli/v3"
)

// newUpdateCommand creates the 'update' subcommand.
func (f *IssuesCommandFactory) newUpdateCommand(t *i18n.Translations, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:          "update",
		Aliases:       []string{"u"},
		Usage:         t.GetMessage("issue_update_description", 0, nil),
		ArgsUsage:     "KEY",
		Flags:         f.createUpdateFlags(t),
		ShellComplete: completion_helper.DefaultFlagComplete,
		Action:        f.createUpdateAction(t, cfg),
	}
}

// createUpdateFlags defines the flags for the update command.
func (f *IssuesCommandFactory) createUpdateFlags(t *i18n.Translations) []cli.Flag {
	flags := []cli.Flag{
		&cli.StringFlag{
			Name:     "template",
			Aliases:  []string{"t"},
			Usage:    t.GetMessage("flag_template", 0, nil),
			Required: true,
		},
	}
	return append(flags, modeFlags(t)...)
}

func (f *IssuesCommandFactory) createUpdateAction(t *i18n.Translations, _ *config.Config) cli.ActionFunc {
	return func(ctx context.Context, command *cli.Command) error {
		log := logger.FromContext(ctx)
		start := time.Now()

		if command.Args().Len() != 1 {
			msg := t.GetMessage("error_issue_key_argument", 0, nil)
			log.Error("missing issue key argument",
				"args", command.Args().Len(),
				"duration_ms", time.Since(start).Milliseconds())
			ui.PrintError(os.Stdout, msg)
			return fmt.Errorf("%s", msg)
		}
		key := command.Args().First()
		templatePath := command.String("template")

		mode, err := resolveMode(command, t)
		if err != nil {
			log.Error("conflicting interactive flags",
				"duration_ms", time.Since(start).Milliseconds())
			return err
		}

		log.Info("executing issue update command",
			"issue_key", key,
			"template", templatePath)

		issueService, err := f.issueServiceProvider(ctx)
		if err != nil {
			log.Error("failed to create issue service",
				"error", err,
				"duration_ms", time.Since(start).Milliseconds())
			ui.HandleAppError(err, t)
			return err
		}

		ui.PrintInfo(t.GetMessage("updating_issue", 0, map[string]interface{}{
			"Key": key,
		}))

		err = issueService.UpdateFromTemplate(ctx, services.UpdateOptions{
			Key:          key,
			TemplatePath: templatePath,
			Mode:         mode,
		})
		if err != nil {
			log.Error("failed to update issue",
				"error", err,
				"issue_key", key,
				"duration_ms", time.Since(start).Milliseconds())
			ui.HandleAppError(err, t)
			return err
		}

		log.Info("issue updated",
			"issue_key", key,
			"duration_ms", time.Since(start).Milliseconds())

		ui.PrintSuccess(os.Stdout, t.GetMessage("issue_updated", 0, map[string]interface{}{
			"Key": key,
		}))
		return nil
	}
}
