package issues

import (
	"context"
	"errors"
	"os"
	"time"

	"github.com/thomas-vilte/matejira/internal/commands/completion_helper"
	"github.com/thomas-vilte/matejira/internal/config"
	apperrors "github.com/thomas-vilte/matejira/internal/errors"
	"github.com/thomas-vilte/matejira/internal/i18n"
	"github.com/thomas-vilte/matejira/internal/logger"
	"github.com/thomas-vilte/matejira/internal/models"
	"github.com/thomas-vilte/matejira/internal/services"
	"github.com/thomas-vilte/matejira/internal/ui"
	"github.com/urfave/cli/v3"
)

// newCreateCommand creates the 'create' subcommand.
func (f *IssuesCommandFactory) newCreateCommand(t *i18n.Translations, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:          "create",
		Aliases:       []string{"c"},
		Usage:         t.GetMessage("issue_create_description", 0, nil),
		Flags:         f.createCreateFlags(t),
		ShellComplete: completion_helper.DefaultFlagComplete,
		Action:        f.createCreateAction(t, cfg),
	}
}

// createCreateFlags defines the flags for the create command.
func (f *IssuesCommandFactory) createCreateFlags(t *i18n.Translations) []cli.Flag {
	flags := []cli.Flag{
		&cli.StringFlag{
			Name:     "template",
			Aliases:  []string{"t"},
			Usage:    t.GetMessage("flag_template", 0, nil),
			Required: true,
		},
		&cli.StringFlag{
			Name:    "project",
			Aliases: []string{"p"},
			Usage:   t.GetMessage("flag_project", 0, nil),
		},
		&cli.StringFlag{
			Name:  "type",
			Usage: t.GetMessage("flag_issue_type", 0, nil),
		},
		&cli.BoolFlag{
			Name:  "skip-validation",
			Usage: t.GetMessage("flag_skip_validation", 0, nil),
		},
		&cli.BoolFlag{
			Name:  "refresh",
			Usage: t.GetMessage("flag_refresh", 0, nil),
		},
		&cli.BoolFlag{
			Name:  "dry-run",
			Usage: t.GetMessage("flag_dry_run", 0, nil),
		},
	}
	return append(flags, modeFlags(t)...)
}

func (f *IssuesCommandFactory) createCreateAction(t *i18n.Translations, _ *config.Config) cli.ActionFunc {
	return func(ctx context.Context, command *cli.Command) error {
		log := logger.FromContext(ctx)
		start := time.Now()

		templatePath := command.String("template")
		project := command.String("project")
		issueType := command.String("type")
		skipValidation := command.Bool("skip-validation")
		refresh := command.Bool("refresh")
		dryRun := command.Bool("dry-run")

		mode, err := resolveMode(command, t)
		if err != nil {
			log.Error("conflicting interactive flags",
				"duration_ms", time.Since(start).Milliseconds())
			return err
		}

		log.Info("executing issue create command",
			"template", templatePath,
			"project", project,
			"issue_type", issueType,
			"skip_validation", skipValidation,
			"refresh", refresh,
			"dry_run", dryRun)

		issueService, err := f.issueServiceProvider(ctx)
		if err != nil {
			log.Error("failed to create issue service",
				"error", err,
				"duration_ms", time.Since(start).Milliseconds())
			ui.HandleAppError(err, t)
			return err
		}

		// Service-level debug lines inherit the template path.
		ctx = logger.With(ctx, "template", templatePath)

		// No spinner here: placeholder resolution may prompt on stdin.
		result, err := issueService.CreateFromTemplate(ctx, services.CreateOptions{
			TemplatePath:   templatePath,
			Project:        project,
			IssueType:      issueType,
			Mode:           mode,
			SkipValidation: skipValidation,
			ForceRefresh:   refresh,
			DryRun:         dryRun,
		})
		if err != nil {
			log.Error("failed to create issue",
				"error", err,
				"template", templatePath,
				"duration_ms", time.Since(start).Milliseconds())

			if missing := missingFields(err); len(missing) > 0 {
				ui.PrintError(os.Stdout, t.GetMessage("missing_required_fields", len(missing), map[string]interface{}{
					"Count": len(missing),
				}))
				ui.PrintMissingFields(missing)
				return err
			}

			ui.HandleAppError(err, t)
			return err
		}

		if skipValidation {
			ui.PrintWarning(t.GetMessage("validation_skipped", 0, nil))
		}

		if result.DryRun {
			log.Info("dry run complete",
				"duration_ms", time.Since(start).Milliseconds())
			ui.PrintInfo(t.GetMessage("dry_run_payload", 0, nil))
			ui.PrintBlock(result.Payload)
			return nil
		}

		log.Info("issue created",
			"issue_key", result.Issue.Key,
			"duration_ms", time.Since(start).Milliseconds())

		ui.PrintSuccess(os.Stdout, t.GetMessage("issue_created", 0, map[string]interface{}{
			"Key": result.Issue.Key,
		}))
		if result.Issue.URL != "" {
			ui.PrintInfo(t.GetMessage("issue_url", 0, map[string]interface{}{
				"URL": result.Issue.URL,
			}))
		}
		return nil
	}
}

// missingFields extracts the validator's result when err carries one.
func missingFields(err error) []models.MissingField {
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		return nil
	}
	missing, _ := appErr.Context["missing"].([]models.MissingField)
	return missing
}
