package template

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/thomas-vilte/matejira/internal/commands/completion_helper"
	"github.com/thomas-vilte/matejira/internal/config"
	apperrors "github.com/thomas-vilte/matejira/internal/errors"
	"github.com/thomas-vilte/matejira/internal/i18n"
	"github.com/thomas-vilte/matejira/internal/logger"
	"github.com/thomas-vilte/matejira/internal/ui"
	"github.com/urfave/cli/v3"
)

// newGenerateCommand creates the 'generate' subcommand.
func (f *TemplateCommandFactory) newGenerateCommand(t *i18n.Translations, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:          "generate",
		Aliases:       []string{"g"},
		Usage:         t.GetMessage("template_generate_description", 0, nil),
		Flags:         f.createGenerateFlags(t),
		ShellComplete: completion_helper.DefaultFlagComplete,
		Action:        f.createGenerateAction(t, cfg),
	}
}

// createGenerateFlags defines the flags for the generate command.
func (f *TemplateCommandFactory) createGenerateFlags(t *i18n.Translations) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "project",
			Aliases: []string{"p"},
			Usage:   t.GetMessage("flag_project", 0, nil),
		},
		&cli.StringFlag{
			Name:  "type",
			Usage: t.GetMessage("flag_issue_type", 0, nil),
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   t.GetMessage("flag_output", 0, nil),
		},
		&cli.BoolFlag{
			Name:  "refresh",
			Usage: t.GetMessage("flag_refresh", 0, nil),
		},
	}
}

func (f *TemplateCommandFactory) createGenerateAction(t *i18n.Translations, cfg *config.Config) cli.ActionFunc {
	return func(ctx context.Context, command *cli.Command) error {
		log := logger.FromContext(ctx)
		start := time.Now()

		project := command.String("project")
		if project == "" {
			project = cfg.DefaultProject
		}
		issueType := command.String("type")
		if issueType == "" {
			issueType = cfg.DefaultIssueType
		}
		outputPath := command.String("output")
		refresh := command.Bool("refresh")

		log.Info("executing template generate command",
			"project", project,
			"issue_type", issueType,
			"output", outputPath,
			"refresh", refresh)

		if project == "" {
			err := apperrors.ErrProjectRequired
			log.Error("no project key",
				"duration_ms", time.Since(start).Milliseconds())
			ui.HandleAppError(err, t)
			return err
		}
		if issueType == "" {
			err := apperrors.ErrIssueTypeRequired
			log.Error("no issue type",
				"duration_ms", time.Since(start).Milliseconds())
			ui.HandleAppError(err, t)
			return err
		}

		templateService, err := f.templateServiceProvider(ctx)
		if err != nil {
			log.Error("failed to create template service",
				"error", err,
				"duration_ms", time.Since(start).Milliseconds())
			ui.HandleAppError(err, t)
			return err
		}

		spinner := ui.NewSmartSpinner(t.GetMessage("fetching_metadata", 0, map[string]interface{}{
			"Project":   project,
			"IssueType": issueType,
		}))
		spinner.Start()

		data, err := templateService.GenerateTemplate(ctx, project, issueType, refresh)
		spinner.Stop()

		if err != nil {
			log.Error("failed to generate template",
				"error", err,
				"project", project,
				"issue_type", issueType,
				"duration_ms", time.Since(start).Milliseconds())
			ui.HandleAppError(err, t)
			return err
		}

		log.Info("template generated",
			"project", project,
			"issue_type", issueType,
			"bytes", len(data),
			"duration_ms", time.Since(start).Milliseconds())

		if outputPath != "" {
			if err := os.WriteFile(outputPath, data, 0644); err != nil {
				writeErr := apperrors.NewAppError(apperrors.TypeInternal, "could not write the template file", err).
					WithContext("details", outputPath)
				ui.HandleAppError(writeErr, t)
				return writeErr
			}
			ui.PrintSuccess(os.Stdout, t.GetMessage("template_written", 0, map[string]interface{}{
				"Path": outputPath,
			}))
			return nil
		}

		// Raw YAML on stdout so the output can be piped straight into a file.
		fmt.Print(string(data))
		return nil
	}
}
