package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	apperrors "github.com/thomas-vilte/matejira/internal/errors"
)

func TestLoadConfig(t *testing.T) {
	t.Run("should create a default config when none exists", func(t *testing.T) {
		tmpDir := t.TempDir()

		cfg, err := LoadConfig(tmpDir)
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}

		if cfg.Language != "en" {
			t.Errorf("default language = %q, want en", cfg.Language)
		}
		if cfg.DefaultIssueType != "Task" {
			t.Errorf("default issue type = %q, want Task", cfg.DefaultIssueType)
		}
		if _, err := os.Stat(filepath.Join(tmpDir, ".matejira", "config.json")); err != nil {
			t.Errorf("default config file was not written: %v", err)
		}
	})

	t.Run("should load an existing config", func(t *testing.T) {
		tmpDir := t.TempDir()
		configDir := filepath.Join(tmpDir, ".matejira")
		if err := os.MkdirAll(configDir, 0755); err != nil {
			t.Fatal(err)
		}

		stored := &Config{
			Language:       "es",
			DefaultProject: "CORE",
			Jira: JiraConfig{
				BaseURL:  "https://example.atlassian.net",
				Email:    "dev@example.com",
				APIToken: "token",
			},
		}
		data, _ := json.MarshalIndent(stored, "", "  ")
		if err := os.WriteFile(filepath.Join(configDir, "config.json"), data, 0644); err != nil {
			t.Fatal(err)
		}

		cfg, err := LoadConfig(tmpDir)
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}

		if cfg.Language != "es" {
			t.Errorf("language = %q, want es", cfg.Language)
		}
		if cfg.DefaultProject != "CORE" {
			t.Errorf("default project = %q, want CORE", cfg.DefaultProject)
		}
		if cfg.PathFile == "" {
			t.Error("PathFile should be filled in on load")
		}
	})

	t.Run("should accept a direct json path", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "custom.json")

		cfg, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}
		if cfg.PathFile != path {
			t.Errorf("PathFile = %q, want %q", cfg.PathFile, path)
		}
	})

	t.Run("should reject malformed JSON", func(t *testing.T) {
		tmpDir := t.TempDir()
		configDir := filepath.Join(tmpDir, ".matejira")
		_ = os.MkdirAll(configDir, 0755)

		if err := os.WriteFile(filepath.Join(configDir, "config.json"), []byte("{malformed json"), 0644); err != nil {
			t.Fatal(err)
		}

		if _, err := LoadConfig(tmpDir); err == nil {
			t.Error("expected an error for malformed JSON")
		}
	})

	t.Run("should reject partial jira credentials", func(t *testing.T) {
		tmpDir := t.TempDir()
		configDir := filepath.Join(tmpDir, ".matejira")
		_ = os.MkdirAll(configDir, 0755)

		stored := &Config{
			Language: "en",
			Jira:     JiraConfig{BaseURL: "https://example.atlassian.net"},
		}
		data, _ := json.MarshalIndent(stored, "", "  ")
		if err := os.WriteFile(filepath.Join(configDir, "config.json"), data, 0644); err != nil {
			t.Fatal(err)
		}

		if _, err := LoadConfig(tmpDir); err == nil {
			t.Error("expected an error for partial jira credentials")
		}
	})
}

func TestSaveConfig(t *testing.T) {
	t.Run("should round-trip through disk", func(t *testing.T) {
		tmpDir := t.TempDir()
		cfg, err := LoadConfig(tmpDir)
		if err != nil {
			t.Fatal(err)
		}

		cfg.Language = "es"
		cfg.DefaultProject = "OPS"
		if err := SaveConfig(cfg); err != nil {
			t.Fatalf("SaveConfig() error = %v", err)
		}

		loaded, err := LoadConfig(tmpDir)
		if err != nil {
			t.Fatal(err)
		}
		if loaded.Language != "es" || loaded.DefaultProject != "OPS" {
			t.Errorf("reloaded config = %+v, want saved values back", loaded)
		}
	})

	t.Run("should refuse to save without a path", func(t *testing.T) {
		cfg := &Config{Language: "en"}

		if err := SaveConfig(cfg); err == nil {
			t.Error("expected an error when PathFile is empty")
		}
	})

	t.Run("should refuse to save an invalid config", func(t *testing.T) {
		cfg := &Config{Language: "", PathFile: filepath.Join(t.TempDir(), "config.json")}

		if err := SaveConfig(cfg); err == nil {
			t.Error("expected an error for an empty language")
		}
	})
}

func TestValidateJira(t *testing.T) {
	t.Run("should flag missing credentials", func(t *testing.T) {
		cfg := &Config{Language: "en"}

		err := cfg.ValidateJira()

		var appErr *apperrors.AppError
		if !errors.As(err, &appErr) {
			t.Fatalf("ValidateJira() error = %T, want *AppError", err)
		}
		if appErr.Type != apperrors.TypeConfiguration {
			t.Errorf("error type = %v, want TypeConfiguration", appErr.Type)
		}
	})

	t.Run("should flag a base URL without scheme", func(t *testing.T) {
		cfg := &Config{
			Language: "en",
			Jira:     JiraConfig{BaseURL: "example.atlassian.net", Email: "dev@example.com", APIToken: "token"},
		}

		if err := cfg.ValidateJira(); err == nil {
			t.Error("expected an error for a schemeless base URL")
		}
	})

	t.Run("should accept complete settings", func(t *testing.T) {
		cfg := &Config{
			Language: "en",
			Jira:     JiraConfig{BaseURL: "https://example.atlassian.net", Email: "dev@example.com", APIToken: "token"},
		}

		if err := cfg.ValidateJira(); err != nil {
			t.Errorf("ValidateJira() error = %v, want nil", err)
		}
	})
}

func TestGetLocaleConfig(t *testing.T) {
	if got := GetLocaleConfig("es"); got != LangES {
		t.Errorf("GetLocaleConfig(es) = %q", got)
	}
	if got := GetLocaleConfig("fr"); got != LangEN {
		t.Errorf("GetLocaleConfig(fr) = %q, want fallback en", got)
	}
	if SupportedLanguage("fr") {
		t.Error("fr should not be a supported language")
	}
}
