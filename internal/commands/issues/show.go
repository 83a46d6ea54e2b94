package issues

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/thomas-vilte/matejira/internal/commands/completion_helper"
	"github.com/thomas-vilte/matejira/internal/config"
	"github.com/thomas-vilte/matejira/internal/document"
	"github.com/thomas-vilte/matejira/internal/i18n"
	"github.com/thomas-vilte/matejira/internal/logger"
	"github.com/thomas-vilte/matejira/internal/ui"
	"github.com/urfave/cli/v3"
)

// newShowCommand creates the 'show' subcommand.
func (f *IssuesCommandFactory) newShowCommand(t *i18n.Translations, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:      "show",
		Aliases:   []string{"s"},
		Usage:     t.GetMessage("issue_show_description", 0, nil),
		ArgsUsage: "KEY",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "json",
				Usage: t.GetMessage("flag_json", 0, nil),
			},
		},
		ShellComplete: completion_helper.DefaultFlagComplete,
		Action:        f.createShowAction(t, cfg),
	}
}

func (f *IssuesCommandFactory) createShowAction(t *i18n.Translations, _ *config.Config) cli.ActionFunc {
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
		jsonOut := command.Bool("json")

		log.Info("executing issue show command",
			"issue_key", key,
			"json", jsonOut)

		issueService, err := f.issueServiceProvider(ctx)
		if err != nil {
			log.Error("failed to create issue service",
				"error", err,
				"duration_ms", time.Since(start).Milliseconds())
			ui.HandleAppError(err, t)
			return err
		}

		spinner := ui.NewSmartSpinner(t.GetMessage("fetching_issue", 0, map[string]interface{}{
			"Key": key,
		}))
		spinner.Start()

		issue, err := issueService.GetIssue(ctx, key)
		spinner.Stop()

		if err != nil {
			log.Error("failed to fetch issue",
				"error", err,
				"issue_key", key,
				"duration_ms", time.Since(start).Milliseconds())
			ui.HandleAppError(err, t)
			return err
		}

		log.Info("issue fetched",
			"issue_key", key,
			"duration_ms", time.Since(start).Milliseconds())

		if jsonOut {
			raw, err := issue.PrettyJSON()
			if err != nil {
				ui.HandleAppError(err, t)
				return err
			}
			fmt.Println(raw)
			return nil
		}

		printIssueSummary(issue, key, t)
		return nil
	}
}

// printIssueSummary renders the handful of fields people actually look for.
// Absent fields are omitted.
func printIssueSummary(issue document.Document, key string, t *i18n.Translations) {
	if k, ok := issue.Value("key"); ok {
		if s, sok := k.AsString(); sok && s != "" {
			key = s
		}
	}
	ui.PrintSectionBanner(key)

	rows := []struct {
		label string
		path  string
	}{
		{"field_summary", "fields.summary"},
		{"field_status", "fields.status.name"},
		{"field_type", "fields.issuetype.name"},
		{"field_assignee", "fields.assignee.displayName"},
		{"field_priority", "fields.priority.name"},
	}
	for _, row := range rows {
		value, ok := issue.ValueAt(row.path)
		if !ok {
			continue
		}
		if s, sok := value.AsString(); sok && s != "" {
			ui.PrintKeyValue(t.GetMessage(row.label, 0, nil), s)
		}
	}

	if labels, ok := issue.ValueAt("fields.labels"); ok && labels.Kind() == document.KindList {
		var values []string
		for _, item := range labels.Items() {
			if s, sok := item.AsString(); sok {
				values = append(values, s)
			}
		}
		if len(values) > 0 {
			ui.PrintKeyValue(t.GetMessage("field_labels", 0, nil), strings.Join(values, ", "))
		}
	}
}
