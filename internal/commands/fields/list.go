package fields

import (
	"context"
	"time"

	"github.com/thomas-vilte/matejira/internal/commands/completion_helper"
	"github.com/thomas-vilte/matejira/internal/config"
	apperrors "github.com/thomas-vilte/matejira/internal/errors"
	"github.com/thomas-vilte/matejira/internal/i18n"
	"github.com/thomas-vilte/matejira/internal/logger"
	"github.com/thomas-vilte/matejira/internal/metadata"
	"github.com/thomas-vilte/matejira/internal/ui"
	"github.com/urfave/cli/v3"
)

// newListCommand creates the 'list' subcommand.
func (f *FieldsCommandFactory) newListCommand(t *i18n.Translations, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:          "list",
		Aliases:       []string{"ls"},
		Usage:         t.GetMessage("fields_list_description", 0, nil),
		Flags:         f.createListFlags(t),
		ShellComplete: completion_helper.DefaultFlagComplete,
		Action:        f.createListAction(t, cfg),
	}
}

// createListFlags defines the flags for the list command.
func (f *FieldsCommandFactory) createListFlags(t *i18n.Translations) []cli.Flag {
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
		&cli.BoolFlag{
			Name:    "required",
			Aliases: []string{"r"},
			Usage:   t.GetMessage("flag_required_only", 0, nil),
		},
		&cli.BoolFlag{
			Name:  "refresh",
			Usage: t.GetMessage("flag_refresh", 0, nil),
		},
	}
}

func (f *FieldsCommandFactory) createListAction(t *i18n.Translations, cfg *config.Config) cli.ActionFunc {
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
		requiredOnly := command.Bool("required")
		refresh := command.Bool("refresh")

		log.Info("executing fields list command",
			"project", project,
			"issue_type", issueType,
			"required_only", requiredOnly,
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

		fieldSource, err := f.fieldSourceProvider(ctx)
		if err != nil {
			log.Error("failed to create field source",
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

		meta, err := fieldSource.GetMetadata(ctx, project, issueType, refresh)
		spinner.Stop()

		if err != nil {
			log.Error("failed to fetch field metadata",
				"error", err,
				"project", project,
				"issue_type", issueType,
				"duration_ms", time.Since(start).Milliseconds())
			ui.HandleAppError(err, t)
			return err
		}

		parsed, err := metadata.ParseFields(meta)
		if err != nil {
			parseErr := apperrors.NewAppError(apperrors.TypeFetch, "field metadata is malformed", err)
			log.Error("failed to parse field metadata",
				"error", err,
				"duration_ms", time.Since(start).Milliseconds())
			ui.HandleAppError(parseErr, t)
			return parseErr
		}

		if requiredOnly {
			parsed = metadata.RequiredOf(parsed)
		}

		log.Info("field metadata listed",
			"project", project,
			"issue_type", issueType,
			"fields", len(parsed),
			"duration_ms", time.Since(start).Milliseconds())

		ui.PrintSectionBanner(t.GetMessage("fields_for", 0, map[string]interface{}{
			"Project":   project,
			"IssueType": issueType,
		}))
		ui.PrintFields(parsed)
		ui.PrintInfo(t.GetMessage("discovered_fields", len(parsed), map[string]interface{}{
			"Count": len(parsed),
		}))
		return nil
	}
}
