package config

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/thomas-vilte/matejira/internal/commands/completion_helper"
	"github.com/thomas-vilte/matejira/internal/config"
	apperrors "github.com/thomas-vilte/matejira/internal/errors"
	"github.com/thomas-vilte/matejira/internal/i18n"
	"github.com/thomas-vilte/matejira/internal/logger"
	"github.com/thomas-vilte/matejira/internal/ui"
	"github.com/urfave/cli/v3"
)

func (c *ConfigCommandFactory) newSetJiraCommand(t *i18n.Translations, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "set-jira",
		Usage: t.GetMessage("config_set_jira_description", 0, nil),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "url",
				Aliases: []string{"u"},
				Usage:   t.GetMessage("flag_jira_url", 0, nil),
			},
			&cli.StringFlag{
				Name:    "email",
				Aliases: []string{"e"},
				Usage:   t.GetMessage("flag_jira_email", 0, nil),
			},
			&cli.StringFlag{
				Name:  "token",
				Usage: t.GetMessage("flag_jira_token", 0, nil),
			},
		},
		ShellComplete: completion_helper.DefaultFlagComplete,
		Action:        setJiraAction(cfg, t),
	}
}

func setJiraAction(cfg *config.Config, t *i18n.Translations) cli.ActionFunc {
	return func(ctx context.Context, command *cli.Command) error {
		log := logger.FromContext(ctx)
		start := time.Now()

		baseURL := command.String("url")
		email := command.String("email")
		token := command.String("token")

		log.Info("executing config set-jira command",
			"url", baseURL,
			"has_email", email != "",
			"has_token", token != "")

		if baseURL == "" || email == "" || token == "" {
			msg := t.GetMessage("error_jira_flags_required", 0, nil)
			ui.PrintError(os.Stdout, msg)
			return fmt.Errorf("%s", msg)
		}

		cfg.Jira.BaseURL = strings.TrimRight(baseURL, "/")
		cfg.Jira.Email = email
		cfg.Jira.APIToken = token

		if err := cfg.ValidateJira(); err != nil {
			log.Error("invalid jira settings",
				"error", err,
				"duration_ms", time.Since(start).Milliseconds())
			ui.HandleAppError(err, t)
			return err
		}

		if !checkJiraConnection(ctx, cfg.Jira, t) {
			ui.PrintWarning(t.GetMessage("jira_saved_unverified", 0, nil))
		}

		if err := config.SaveConfig(cfg); err != nil {
			log.Error("failed to save config",
				"error", err,
				"duration_ms", time.Since(start).Milliseconds())
			ui.PrintError(os.Stdout, err.Error())
			return err
		}

		log.Info("jira connection configured",
			"url", cfg.Jira.BaseURL,
			"duration_ms", time.Since(start).Milliseconds())
		ui.PrintSuccess(os.Stdout, t.GetMessage("jira_configured", 0, map[string]interface{}{
			"URL": cfg.Jira.BaseURL,
		}))
		return nil
	}
}

func (c *ConfigCommandFactory) newSetLangCommand(t *i18n.Translations, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "set-lang",
		Usage: t.GetMessage("config_set_lang_description", 0, nil),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "lang",
				Aliases:  []string{"l"},
				Usage:    t.GetMessage("config_field_language", 0, nil),
				Required: true,
			},
		},
		Action: setLangAction(cfg, t),
	}
}

func setLangAction(cfg *config.Config, t *i18n.Translations) cli.ActionFunc {
	return func(ctx context.Context, command *cli.Command) error {
		log := logger.FromContext(ctx)

		lang := strings.ToLower(command.String("lang"))

		log.Info("executing config set-lang command", "lang", lang)

		if !config.SupportedLanguage(lang) {
			err := apperrors.ErrInvalidLanguage.WithContext("details", lang)
			ui.HandleAppError(err, t)
			return err
		}

		cfg.Language = lang
		if err := config.SaveConfig(cfg); err != nil {
			log.Error("failed to save config", "error", err)
			ui.PrintError(os.Stdout, err.Error())
			return err
		}

		// Confirm in the language that was just chosen.
		if err := t.SetLanguage(lang); err == nil {
			log.Debug("translations switched", "lang", lang)
		}

		ui.PrintSuccess(os.Stdout, t.GetMessage("language_set", 0, map[string]interface{}{
			"Lang": lang,
		}))
		return nil
	}
}
