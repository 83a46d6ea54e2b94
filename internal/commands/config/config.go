package config

import (
	"strings"

	"github.com/thomas-vilte/matejira/internal/commands/completion_helper"
	"github.com/thomas-vilte/matejira/internal/config"
	"github.com/thomas-vilte/matejira/internal/i18n"
	"github.com/urfave/cli/v3"
)

// ConfigCommandFactory is the factory to create the config command.
type ConfigCommandFactory struct{}

// NewConfigCommandFactory creates a new instance of the factory.
func NewConfigCommandFactory() *ConfigCommandFactory {
	return &ConfigCommandFactory{}
}

// CreateCommand creates the main config command with its subcommands.
func (c *ConfigCommandFactory) CreateCommand(t *i18n.Translations, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   t.GetMessage("config_command_description", 0, nil),
		Commands: []*cli.Command{
			c.newInitCommand(t, cfg),
			c.newShowCommand(t, cfg),
			c.newSetJiraCommand(t, cfg),
			c.newSetLangCommand(t, cfg),
			c.newEditCommand(t, cfg),
		},
		ShellComplete: completion_helper.CommandAndFlagComplete,
	}
}

// maskToken hides a credential, keeping the tail so people can tell which
// token is stored.
func maskToken(token string) string {
	if token == "" {
		return ""
	}
	if len(token) <= 4 {
		return strings.Repeat("*", len(token))
	}
	return "****" + token[len(token)-4:]
}
