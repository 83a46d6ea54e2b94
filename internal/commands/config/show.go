package config

import (
	"context"

	"github.com/thomas-vilte/matejira/internal/config"
	"github.com/thomas-vilte/matejira/internal/i18n"
	"github.com/thomas-vilte/matejira/internal/ui"
	"github.com/urfave/cli/v3"
)

func (c *ConfigCommandFactory) newShowCommand(t *i18n.Translations, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "show",
		Usage: t.GetMessage("config_show_description", 0, nil),
		Action: func(ctx context.Context, command *cli.Command) error {
			ui.PrintSectionBanner(t.GetMessage("current_config", 0, nil))

			printConfigRow(t, "config_field_language", cfg.Language)
			printConfigRow(t, "config_field_default_project", cfg.DefaultProject)
			printConfigRow(t, "config_field_default_issue_type", cfg.DefaultIssueType)
			printConfigRow(t, "config_field_url", cfg.Jira.BaseURL)
			printConfigRow(t, "config_field_email", cfg.Jira.Email)
			printConfigRow(t, "config_field_token", maskToken(cfg.Jira.APIToken))
			return nil
		},
	}
}

func printConfigRow(t *i18n.Translations, labelID, value string) {
	if value == "" {
		value = t.GetMessage("config_not_set", 0, nil)
	}
	ui.PrintKeyValue(t.GetMessage(labelID, 0, nil), value)
}
