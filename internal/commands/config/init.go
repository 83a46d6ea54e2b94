package config

import (
	"bufio"
	"context"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/thomas-vilte/matejira/internal/config"
	"github.com/thomas-vilte/matejira/internal/i18n"
	"github.com/thomas-vilte/matejira/internal/jira"
	"github.com/thomas-vilte/matejira/internal/logger"
	"github.com/thomas-vilte/matejira/internal/ui"
	"github.com/urfave/cli/v3"
)

func (c *ConfigCommandFactory) newInitCommand(t *i18n.Translations, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:   "init",
		Usage:  t.GetMessage("config_init_description", 0, nil),
		Action: initConfigAction(cfg, t),
	}
}

// initConfigAction walks through the connection settings and the issue
// defaults. Enter keeps the current value, so rerunning it is cheap.
func initConfigAction(cfg *config.Config, t *i18n.Translations) cli.ActionFunc {
	return func(ctx context.Context, command *cli.Command) error {
		log := logger.FromContext(ctx)
		reader := bufio.NewReader(os.Stdin)

		fmt.Println(t.GetMessage("init_intro", 0, nil))
		fmt.Println()

		baseURL, err := promptValue(reader, t.GetMessage("init_prompt_url", 0, nil), cfg.Jira.BaseURL)
		if err != nil {
			return err
		}
		if baseURL != "" && !isValidURL(baseURL) {
			ui.PrintWarning(t.GetMessage("jira_connection_failed", 0, nil))
		}
		cfg.Jira.BaseURL = baseURL

		email, err := promptValue(reader, t.GetMessage("init_prompt_email", 0, nil), cfg.Jira.Email)
		if err != nil {
			return err
		}
		cfg.Jira.Email = email

		token, err := promptSecret(reader, t.GetMessage("init_prompt_token", 0, nil), cfg.Jira.APIToken)
		if err != nil {
			return err
		}
		cfg.Jira.APIToken = token

		project, err := promptValue(reader, t.GetMessage("init_prompt_project", 0, nil), cfg.DefaultProject)
		if err != nil {
			return err
		}
		cfg.DefaultProject = strings.ToUpper(project)

		issueType, err := promptValue(reader, t.GetMessage("init_prompt_issue_type", 0, nil), cfg.DefaultIssueType)
		if err != nil {
			return err
		}
		cfg.DefaultIssueType = issueType

		lang, err := promptValue(reader, t.GetMessage("init_prompt_language", 0, nil), cfg.Language)
		if err != nil {
			return err
		}
		lang = strings.ToLower(lang)
		if config.SupportedLanguage(lang) {
			cfg.Language = lang
		} else {
			ui.PrintWarning(t.GetMessage("init_language_invalid", 0, map[string]interface{}{
				"Lang": cfg.Language,
			}))
		}

		if cfg.ValidateJira() == nil {
			if !checkJiraConnection(ctx, cfg.Jira, t) {
				ui.PrintWarning(t.GetMessage("jira_saved_unverified", 0, nil))
			}
		}

		if err := config.SaveConfig(cfg); err != nil {
			log.Error("failed to save config", "error", err)
			ui.PrintError(os.Stdout, err.Error())
			return err
		}

		log.Info("configuration initialized", "path", cfg.PathFile)
		ui.PrintSuccess(os.Stdout, t.GetMessage("config_initialized", 0, map[string]interface{}{
			"Path": cfg.PathFile,
		}))
		return nil
	}
}

// promptValue asks for one setting. Blank input keeps current.
func promptValue(reader *bufio.Reader, label, current string) (string, error) {
	if current != "" {
		fmt.Printf("%s [%s]: ", label, current)
	} else {
		fmt.Printf("%s: ", label)
	}

	input, err := reader.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("error reading input: %w", err)
	}

	input = strings.TrimSpace(input)
	if input == "" {
		return current, nil
	}
	return input, nil
}

// promptSecret is promptValue with the current value masked.
func promptSecret(reader *bufio.Reader, label, current string) (string, error) {
	display := ""
	if current != "" {
		display = maskToken(current)
	}

	input, err := promptValue(reader, label, display)
	if err != nil {
		return "", err
	}
	if input == display {
		return current, nil
	}
	return input, nil
}

// checkJiraConnection hits the myself endpoint with the candidate
// credentials. Failures only warn; init never refuses to save.
func checkJiraConnection(ctx context.Context, jiraCfg config.JiraConfig, t *i18n.Translations) bool {
	spinner := ui.NewSmartSpinner(t.GetMessage("testing_jira_connection", 0, nil))
	spinner.Start()

	testCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	client := jira.NewClient(jiraCfg, nil)
	user, err := client.Myself(testCtx)
	if err != nil {
		spinner.Error(t.GetMessage("jira_connection_failed", 0, nil))
		return false
	}

	spinner.Success(t.GetMessage("jira_connection_valid", 0, nil))
	if user.DisplayName != "" {
		ui.PrintInfo(t.GetMessage("jira_connected_as", 0, map[string]interface{}{
			"User": user.DisplayName,
		}))
	}
	return true
}

func isValidURL(rawURL string) bool {
	u, err := url.Parse(rawURL)
	return err == nil && (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
