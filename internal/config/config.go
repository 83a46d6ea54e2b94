// Package config owns the persisted CLI settings: connection credentials,
// language and defaults for issue creation. Credentials are never read from
// the process environment; they travel from here into the HTTP client at
// construction.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	apperrors "github.com/thomas-vilte/matejira/internal/errors"
)

type (
	Config struct {
		Language         string `json:"language"`
		DefaultProject   string `json:"default_project,omitempty"`
		DefaultIssueType string `json:"default_issue_type,omitempty"`
		PathFile         string `json:"path_file"`

		Jira   JiraConfig   `json:"jira_config"`
		Update UpdateConfig `json:"update_config,omitempty"`
	}

	JiraConfig struct {
		BaseURL  string `json:"base_url,omitempty"`
		Email    string `json:"email,omitempty"`
		APIToken string `json:"api_token,omitempty"`
	}

	UpdateConfig struct {
		DisableCheck bool   `json:"disable_check,omitempty"`
		GitHubToken  string `json:"github_token,omitempty"`
	}
)

const (
	defaultLang      = "en"
	defaultIssueType = "Task"
	configDirName    = ".matejira"
)

// LoadConfig reads the configuration below path. A path ending in .json is
// used verbatim; anything else is treated as the home directory and the
// file lives at <path>/.matejira/config.json. A missing file is created
// with defaults.
func LoadConfig(path string) (*Config, error) {
	configPath := path
	if filepath.Ext(path) != ".json" {
		configPath = filepath.Join(path, configDirName, "config.json")
	}

	data, err := os.ReadFile(configPath)
	if errors.Is(err, os.ErrNotExist) {
		return createDefaultConfig(configPath)
	}
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	var config Config
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("error decoding config file: %w", err)
	}
	config.PathFile = configPath

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("loaded config is not valid: %w", err)
	}

	return &config, nil
}

func createDefaultConfig(path string) (*Config, error) {
	config := &Config{
		Language:         defaultLang,
		DefaultIssueType: defaultIssueType,
		PathFile:         path,
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("error creating config directory: %w", err)
	}
	if err := writeConfig(config); err != nil {
		return nil, err
	}
	return config, nil
}

func SaveConfig(config *Config) error {
	if err := validateConfig(config); err != nil {
		return fmt.Errorf("config to save is not valid: %w", err)
	}
	if config.PathFile == "" {
		return apperrors.ErrConfigMissing.WithContext("details", "config file path is not set")
	}
	return writeConfig(config)
}

func writeConfig(config *Config) error {
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("error encoding config: %w", err)
	}
	if err := os.WriteFile(config.PathFile, data, 0644); err != nil {
		return fmt.Errorf("error saving config: %w", err)
	}
	return nil
}

func validateConfig(config *Config) error {
	if config.Language == "" {
		return errors.New("language must not be empty")
	}

	// partial credentials are worse than none: they fail only at request time
	if config.Jira.BaseURL != "" || config.Jira.Email != "" || config.Jira.APIToken != "" {
		if config.Jira.BaseURL == "" {
			return errors.New("jira base URL is not set")
		}
		if config.Jira.Email == "" {
			return errors.New("jira email is not set")
		}
		if config.Jira.APIToken == "" {
			return errors.New("jira API token is not set")
		}
	}
	return nil
}

// ValidateJira checks that the connection settings are complete enough to
// talk to the tracker. Commands that hit the API call this before building
// a client.
func (c *Config) ValidateJira() error {
	if c.Jira.BaseURL == "" || c.Jira.Email == "" || c.Jira.APIToken == "" {
		return apperrors.ErrJiraNotConfigured
	}
	if !strings.HasPrefix(c.Jira.BaseURL, "http://") && !strings.HasPrefix(c.Jira.BaseURL, "https://") {
		return apperrors.ErrInvalidBaseURL.WithContext("base_url", c.Jira.BaseURL)
	}
	return nil
}
