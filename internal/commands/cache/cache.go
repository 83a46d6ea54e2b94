package cache

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
	"github.com/thomas-vilte/matejira/internal/metadata"
	"github.com/thomas-vilte/matejira/internal/ui"
	"github.com/urfave/cli/v3"
)

// MetadataStore is a minimal interface for testing purposes
type MetadataStore interface {
	Dir() string
	List() ([]metadata.CachedMetadata, error)
	Delete(project, issueType string) error
	Clear() error
}

type StoreProvider func(ctx context.Context) (MetadataStore, error)

// CacheCommandFactory is the factory to create the cache command.
type CacheCommandFactory struct {
	storeProvider StoreProvider
}

// NewCacheCommandFactory creates a new instance of the factory.
func NewCacheCommandFactory(storeProvider StoreProvider) *CacheCommandFactory {
	return &CacheCommandFactory{
		storeProvider: storeProvider,
	}
}

// CreateCommand creates the main cache command with its subcommands.
func (f *CacheCommandFactory) CreateCommand(t *i18n.Translations, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "cache",
		Usage: t.GetMessage("cache_command_description", 0, nil),
		Commands: []*cli.Command{
			f.newShowCommand(t, cfg),
			f.newClearCommand(t, cfg),
		},
		ShellComplete: completion_helper.CommandAndFlagComplete,
	}
}

func (f *CacheCommandFactory) newShowCommand(t *i18n.Translations, _ *config.Config) *cli.Command {
	return &cli.Command{
		Name:   "show",
		Usage:  t.GetMessage("cache_show_description", 0, nil),
		Action: f.createShowAction(t),
	}
}

func (f *CacheCommandFactory) createShowAction(t *i18n.Translations) cli.ActionFunc {
	return func(ctx context.Context, command *cli.Command) error {
		log := logger.FromContext(ctx)

		store, err := f.storeProvider(ctx)
		if err != nil {
			log.Error("failed to open metadata store", "error", err)
			ui.HandleAppError(err, t)
			return err
		}

		entries, err := store.List()
		if err != nil {
			listErr := apperrors.ErrCacheRead.WithError(err)
			log.Error("failed to list cache entries", "error", err)
			ui.HandleAppError(listErr, t)
			return listErr
		}

		log.Debug("cache listed",
			"dir", store.Dir(),
			"entries", len(entries))

		ui.PrintInfo(t.GetMessage("cache_dir", 0, map[string]interface{}{
			"Dir": store.Dir(),
		}))

		if len(entries) == 0 {
			ui.PrintInfo(t.GetMessage("cache_empty", 0, nil))
			return nil
		}

		ui.PrintInfo(t.GetMessage("cache_entries", len(entries), map[string]interface{}{
			"Count": len(entries),
		}))
		for _, entry := range entries {
			key := fmt.Sprintf("%s/%s", entry.Project, entry.IssueType)
			ui.PrintKeyValue(key, entry.FetchedAt.Local().Format(time.RFC3339))
		}
		return nil
	}
}

func (f *CacheCommandFactory) newClearCommand(t *i18n.Translations, _ *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "clear",
		Usage: t.GetMessage("cache_clear_description", 0, nil),
		Flags: []cli.Flag{
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
				Name:    "all",
				Aliases: []string{"a"},
				Usage:   t.GetMessage("flag_all_entries", 0, nil),
			},
		},
		ShellComplete: completion_helper.DefaultFlagComplete,
		Action:        f.createClearAction(t),
	}
}

func (f *CacheCommandFactory) createClearAction(t *i18n.Translations) cli.ActionFunc {
	return func(ctx context.Context, command *cli.Command) error {
		log := logger.FromContext(ctx)
		start := time.Now()

		project := command.String("project")
		issueType := command.String("type")
		all := command.Bool("all")

		log.Info("executing cache clear command",
			"project", project,
			"issue_type", issueType,
			"all", all)

		if !all && (project == "" || issueType == "") {
			msg := t.GetMessage("cache_clear_needs_target", 0, nil)
			ui.PrintError(os.Stdout, msg)
			return fmt.Errorf("%s", msg)
		}

		store, err := f.storeProvider(ctx)
		if err != nil {
			log.Error("failed to open metadata store",
				"error", err,
				"duration_ms", time.Since(start).Milliseconds())
			ui.HandleAppError(err, t)
			return err
		}

		if all {
			if !ui.AskConfirmation(t.GetMessage("cache_clear_confirm", 0, nil)) {
				ui.PrintInfo(t.GetMessage("operation_cancelled", 0, nil))
				return nil
			}
			if err := store.Clear(); err != nil {
				clearErr := apperrors.ErrCacheWrite.WithError(err)
				log.Error("failed to clear cache",
					"error", err,
					"duration_ms", time.Since(start).Milliseconds())
				ui.HandleAppError(clearErr, t)
				return clearErr
			}

			log.Info("cache cleared",
				"duration_ms", time.Since(start).Milliseconds())
			ui.PrintSuccess(os.Stdout, t.GetMessage("cache_cleared", 0, nil))
			return nil
		}

		if err := store.Delete(project, issueType); err != nil {
			deleteErr := apperrors.ErrCacheWrite.WithError(err)
			log.Error("failed to delete cache entry",
				"error", err,
				"project", project,
				"issue_type", issueType,
				"duration_ms", time.Since(start).Milliseconds())
			ui.HandleAppError(deleteErr, t)
			return deleteErr
		}

		log.Info("cache entry removed",
			"project", project,
			"issue_type", issueType,
			"duration_ms", time.Since(start).Milliseconds())
		ui.PrintSuccess(os.Stdout, t.GetMessage("cache_entry_removed", 0, map[string]interface{}{
			"Project":   project,
			"IssueType": issueType,
		}))
		return nil
	}
}
