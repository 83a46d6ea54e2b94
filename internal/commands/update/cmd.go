package update

import (
	"context"
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

// Updater is the minimal interface for testing purposes.
type Updater interface {
	Check(ctx context.Context) (services.UpdateStatus, error)
	UpdateCLI(ctx context.Context) error
}

type UpdateCommandFactory struct {
	currentVersion string
	newUpdater     func(trans *i18n.Translations, cfg *config.Config) Updater
}

func NewUpdateCommandFactory(currentVersion string) *UpdateCommandFactory {
	return &UpdateCommandFactory{
		currentVersion: currentVersion,
		newUpdater: func(trans *i18n.Translations, cfg *config.Config) Updater {
			return services.NewVersionUpdater(currentVersion, trans, cfg)
		},
	}
}

func (f *UpdateCommandFactory) CreateCommand(t *i18n.Translations, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:   "update",
		Usage:  t.GetMessage("update_command_description", 0, nil),
		Action: f.createUpdateAction(t, cfg),
		Commands: []*cli.Command{
			f.newCheckCommand(t, cfg),
		},
		ShellComplete: completion_helper.CommandAndFlagComplete,
	}
}

func (f *UpdateCommandFactory) createUpdateAction(t *i18n.Translations, cfg *config.Config) cli.ActionFunc {
	return func(ctx context.Context, command *cli.Command) error {
		log := logger.FromContext(ctx)
		start := time.Now()

		log.Info("executing update command", "current_version", f.currentVersion)

		updater := f.newUpdater(t, cfg)

		status, err := f.check(ctx, updater, t)
		if err != nil {
			log.Error("update check failed",
				"error", err,
				"duration_ms", time.Since(start).Milliseconds())
			ui.HandleAppError(err, t)
			return err
		}

		if !status.Available {
			log.Info("already on latest version",
				"version", status.Current,
				"duration_ms", time.Since(start).Milliseconds())
			ui.PrintInfo(t.GetMessage("update_latest", 0, map[string]interface{}{
				"Current": status.Current,
			}))
			return nil
		}

		ui.PrintInfo(t.GetMessage("updating_cli", 0, nil))
		if err := updater.UpdateCLI(ctx); err != nil {
			log.Error("update failed",
				"error", err,
				"latest", status.Latest,
				"duration_ms", time.Since(start).Milliseconds())
			ui.PrintError(os.Stdout, err.Error())
			return err
		}

		log.Info("update command completed",
			"latest", status.Latest,
			"duration_ms", time.Since(start).Milliseconds())

		ui.PrintSuccess(os.Stdout, t.GetMessage("update_success", 0, map[string]interface{}{
			"Version": status.Latest,
		}))
		return nil
	}
}

func (f *UpdateCommandFactory) newCheckCommand(t *i18n.Translations, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "check",
		Usage: t.GetMessage("update_check_description", 0, nil),
		Action: func(ctx context.Context, command *cli.Command) error {
			log := logger.FromContext(ctx)
			start := time.Now()

			log.Info("executing update check command", "current_version", f.currentVersion)

			updater := f.newUpdater(t, cfg)

			status, err := f.check(ctx, updater, t)
			if err != nil {
				log.Error("update check failed",
					"error", err,
					"duration_ms", time.Since(start).Milliseconds())
				ui.HandleAppError(err, t)
				return err
			}

			log.Info("update check completed",
				"latest", status.Latest,
				"available", status.Available,
				"duration_ms", time.Since(start).Milliseconds())

			if !status.Available {
				ui.PrintSuccess(os.Stdout, t.GetMessage("update_latest", 0, map[string]interface{}{
					"Current": status.Current,
				}))
				return nil
			}

			ui.PrintInfo(t.GetMessage("update_available", 0, map[string]interface{}{
				"Latest":  status.Latest,
				"Current": status.Current,
			}))
			if status.URL != "" {
				ui.PrintInfo(t.GetMessage("update_download", 0, map[string]interface{}{
					"URL": status.URL,
				}))
			}
			return nil
		},
	}
}

// check wraps the release lookup in a spinner. The lookup is a single API
// call, nothing here reads from stdin.
func (f *UpdateCommandFactory) check(ctx context.Context, updater Updater, t *i18n.Translations) (services.UpdateStatus, error) {
	spinner := ui.NewSmartSpinner(t.GetMessage("update_checking", 0, nil))
	spinner.Start()

	status, err := updater.Check(ctx)
	spinner.Stop()

	return status, err
}
