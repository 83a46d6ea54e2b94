package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"

	"github.com/thomas-vilte/matejira/internal/config"
	"github.com/thomas-vilte/matejira/internal/i18n"
	"github.com/thomas-vilte/matejira/internal/logger"
	"github.com/thomas-vilte/matejira/internal/ui"
	"github.com/urfave/cli/v3"
)

func (c *ConfigCommandFactory) newEditCommand(t *i18n.Translations, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:   "edit",
		Usage:  t.GetMessage("config_edit_description", 0, nil),
		Action: editConfigAction(cfg, t),
	}
}

// editConfigAction opens the config file in the operator's editor, then
// reloads it so a syntax error surfaces now instead of on the next command.
func editConfigAction(cfg *config.Config, t *i18n.Translations) cli.ActionFunc {
	return func(ctx context.Context, command *cli.Command) error {
		log := logger.FromContext(ctx)

		editor, err := resolveEditor()
		if err != nil {
			return fmt.Errorf("%s", t.GetMessage("error_no_editor", 0, nil))
		}
		log.Debug("opening config in editor", "editor", editor, "path", cfg.PathFile)

		cmd := exec.Command(editor, cfg.PathFile)
		cmd.Stdin = os.Stdin
		cmd.Stdout = os.Stdout
		cmd.Stderr = os.Stderr
		if err := cmd.Run(); err != nil {
			return fmt.Errorf("%s: %w", t.GetMessage("error_opening_editor", 0, nil), err)
		}

		edited, err := config.LoadConfig(cfg.PathFile)
		if err != nil {
			ui.PrintError(os.Stdout, t.GetMessage("config_edit_invalid", 0, nil))
			return err
		}
		*cfg = *edited

		ui.PrintSuccess(os.Stdout, t.GetMessage("config_updated", 0, nil))
		return nil
	}
}

func resolveEditor() (string, error) {
	if editor := os.Getenv("EDITOR"); editor != "" {
		return editor, nil
	}
	for _, candidate := range []string{"nano", "vim", "vi"} {
		if _, err := exec.LookPath(candidate); err == nil {
			return candidate, nil
		}
	}
	return "", errors.New("no editor installed")
}
