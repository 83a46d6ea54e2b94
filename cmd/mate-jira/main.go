package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"slices"

	cachecmd "github.com/thomas-vilte/matejira/internal/commands/cache"
	configcmd "github.com/thomas-vilte/matejira/internal/commands/config"
	"github.com/thomas-vilte/matejira/internal/commands/fields"
	"github.com/thomas-vilte/matejira/internal/commands/issues"
	templatecmd "github.com/thomas-vilte/matejira/internal/commands/template"
	"github.com/thomas-vilte/matejira/internal/commands/update"
	"github.com/thomas-vilte/matejira/internal/config"
	"github.com/thomas-vilte/matejira/internal/i18n"
	"github.com/thomas-vilte/matejira/internal/jira"
	"github.com/thomas-vilte/matejira/internal/logger"
	"github.com/thomas-vilte/matejira/internal/metadata"
	"github.com/thomas-vilte/matejira/internal/placeholder"
	"github.com/thomas-vilte/matejira/internal/prompt"
	"github.com/thomas-vilte/matejira/internal/services"
	"github.com/thomas-vilte/matejira/internal/version"
	"github.com/urfave/cli/v3"
)

func main() {
	// The logger must exist before flag parsing, so verbosity is read
	// straight from the raw arguments.
	logger.Initialize(
		slices.Contains(os.Args, "--debug"),
		slices.Contains(os.Args, "--verbose"),
	)

	app, err := initializeApp()
	if err != nil {
		log.Fatalf("Error starting the cli: %v", err)
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		os.Exit(1)
	}
}

func initializeApp() (*cli.Command, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("could not resolve the user home directory: %w", err)
	}

	appCfg, err := config.LoadConfig(homeDir)
	if err != nil {
		return nil, err
	}

	translations, err := i18n.NewTranslations(config.GetLocaleConfig(appCfg.Language), "")
	if err != nil {
		return nil, err
	}

	issueProvider := func(ctx context.Context) (issues.IssueWorkflow, error) {
		return newIssueWorkflow(appCfg)
	}

	templateProvider := func(ctx context.Context) (templatecmd.TemplateGenerator, error) {
		meta, err := newMetadataService(appCfg)
		if err != nil {
			return nil, err
		}
		return services.NewTemplateService(meta), nil
	}

	fieldProvider := func(ctx context.Context) (fields.FieldSource, error) {
		return newMetadataService(appCfg)
	}

	// The cache is browsable and clearable without credentials.
	storeProvider := func(ctx context.Context) (cachecmd.MetadataStore, error) {
		return metadata.NewFileStore("")
	}

	commands := []*cli.Command{
		issues.NewIssuesCommandFactory(issueProvider).CreateCommand(translations, appCfg),
		templatecmd.NewTemplateCommandFactory(templateProvider).CreateCommand(translations, appCfg),
		fields.NewFieldsCommandFactory(fieldProvider).CreateCommand(translations, appCfg),
		cachecmd.NewCacheCommandFactory(storeProvider).CreateCommand(translations, appCfg),
		configcmd.NewConfigCommandFactory().CreateCommand(translations, appCfg),
		update.NewUpdateCommandFactory(version.Version).CreateCommand(translations, appCfg),
	}

	helpCommand := &cli.Command{
		Name:    "help",
		Aliases: []string{"h"},
		Usage:   translations.GetMessage("help_command_usage", 0, nil),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return cli.ShowAppHelp(cmd)
		},
	}
	commands = append(commands, helpCommand)

	go func() {
		checker := services.NewVersionUpdater(version.FullVersion(), translations, appCfg)
		checker.CheckForUpdates(context.Background())
	}()

	return &cli.Command{
		Name:        "mate-jira",
		Usage:       translations.GetMessage("app_usage", 0, nil),
		Version:     version.Version,
		Description: translations.GetMessage("app_description", 0, nil),
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: translations.GetMessage("flag_verbose", 0, nil),
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: translations.GetMessage("flag_debug", 0, nil),
			},
		},
		Commands:              commands,
		EnableShellCompletion: true,
	}, nil
}

// newMetadataService builds the cached metadata pipeline against the
// configured tracker. Fails when the connection settings are incomplete.
func newMetadataService(cfg *config.Config) (*metadata.Service, error) {
	if err := cfg.ValidateJira(); err != nil {
		return nil, err
	}

	store, err := metadata.NewFileStore("")
	if err != nil {
		return nil, err
	}
	return metadata.NewService(jira.NewClient(cfg.Jira, nil), store), nil
}

func newIssueWorkflow(cfg *config.Config) (issues.IssueWorkflow, error) {
	if err := cfg.ValidateJira(); err != nil {
		return nil, err
	}

	client := jira.NewClient(cfg.Jira, nil)
	store, err := metadata.NewFileStore("")
	if err != nil {
		return nil, err
	}

	meta := metadata.NewService(client, store)
	resolver := placeholder.NewResolver(prompt.NewTerminalPrompter())
	return services.NewIssueService(client, meta, resolver, cfg), nil
}
