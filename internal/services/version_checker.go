package services

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/google/go-github/v68/github"
	"github.com/thomas-vilte/matejira/internal/config"
	apperrors "github.com/thomas-vilte/matejira/internal/errors"
	"github.com/thomas-vilte/matejira/internal/i18n"
	"golang.org/x/mod/semver"
	"golang.org/x/oauth2"
)

const (
	releaseOwner = "thomas-vilte"
	releaseRepo  = "matejira"

	updateCacheFile = "update_check.json"
	updateCacheTTL  = 24 * time.Hour
)

type VersionUpdater struct {
	currentVersion string
	trans          *i18n.Translations
	config         *config.Config
}

type UpdateCache struct {
	LastCheck   time.Time `json:"last_check"`
	LatestKnown string    `json:"latest_known"`
}

// UpdateStatus is the result of an explicit update check.
type UpdateStatus struct {
	Current   string
	Latest    string
	URL       string
	Available bool
}

func NewVersionUpdater(version string, trans *i18n.Translations, cfg *config.Config) *VersionUpdater {
	return &VersionUpdater{
		currentVersion: version,
		trans:          trans,
		config:         cfg,
	}
}

// CheckForUpdates runs the silent background check. It never reports
// errors: a failed lookup just means no notification this run.
func (v *VersionUpdater) CheckForUpdates(ctx context.Context) {
	if os.Getenv("MATEJIRA_DISABLE_UPDATE_CHECK") != "" {
		return
	}
	if v.config != nil && v.config.Update.DisableCheck {
		return
	}

	cache, err := v.loadCache()
	if err == nil && time.Since(cache.LastCheck) < updateCacheTTL {
		if cache.LatestKnown != "" && v.isUpdateAvailable(cache.LatestKnown) {
			v.printUpdateNotification(cache.LatestKnown)
		}
		return
	}

	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	release, _, err := v.githubClient(ctx).Repositories.GetLatestRelease(ctx, releaseOwner, releaseRepo)
	if err != nil {
		return
	}

	latestVersion := release.GetTagName()

	_ = v.saveCache(UpdateCache{
		LastCheck:   time.Now(),
		LatestKnown: latestVersion,
	})

	if v.isUpdateAvailable(latestVersion) {
		v.printUpdateNotification(latestVersion)
	}
}

// Check queries the latest release and reports whether it is newer than
// the running binary. Unlike CheckForUpdates it always hits the network.
func (v *VersionUpdater) Check(ctx context.Context) (UpdateStatus, error) {
	status := UpdateStatus{Current: v.currentVersion}

	release, _, err := v.githubClient(ctx).Repositories.GetLatestRelease(ctx, releaseOwner, releaseRepo)
	if err != nil {
		return status, apperrors.ErrUpdateCheckFailed.WithError(err)
	}

	status.Latest = release.GetTagName()
	status.URL = release.GetHTMLURL()
	if status.URL == "" {
		status.URL = fmt.Sprintf("https://github.com/%s/%s/releases/latest", releaseOwner, releaseRepo)
	}
	status.Available = v.isUpdateAvailable(status.Latest)

	_ = v.saveCache(UpdateCache{
		LastCheck:   time.Now(),
		LatestKnown: status.Latest,
	})

	return status, nil
}

// UpdateCLI reinstalls through whichever tool installed the binary. With no
// recognizable install method it reports the release page instead of guessing.
func (v *VersionUpdater) UpdateCLI(ctx context.Context) error {
	switch v.detectInstallMethod() {
	case "go":
		return v.runInstaller(ctx, "go", "install", "github.com/thomas-vilte/matejira/cmd/mate-jira@latest")
	case "brew":
		return v.runInstaller(ctx, "brew", "upgrade", "mate-jira")
	default:
		status, err := v.Check(ctx)
		if err != nil {
			return err
		}
		return fmt.Errorf("%s %s", v.trans.GetMessage("update_method_not_detected", 0, nil),
			v.trans.GetMessage("update_download", 0, map[string]interface{}{"URL": status.URL}))
	}
}

func (v *VersionUpdater) detectInstallMethod() string {
	execPath, err := os.Executable()
	if err != nil {
		return "unknown"
	}

	for _, marker := range []string{"/Cellar/", "homebrew", "/opt/homebrew"} {
		if strings.Contains(execPath, marker) {
			return "brew"
		}
	}

	for _, env := range []string{"GOBIN", "GOPATH"} {
		if dir := os.Getenv(env); dir != "" && strings.HasPrefix(execPath, dir) {
			return "go"
		}
	}

	return "binary"
}

func (v *VersionUpdater) runInstaller(ctx context.Context, tool string, args ...string) error {
	if _, err := exec.LookPath(tool); err != nil {
		return fmt.Errorf("%s", v.trans.GetMessage("update_tool_missing", 0, map[string]interface{}{"Tool": tool}))
	}

	output, err := exec.CommandContext(ctx, tool, args...).CombinedOutput()
	if err != nil {
		return fmt.Errorf("%s: %s", v.trans.GetMessage("update_failed", 0, nil), string(output))
	}
	return nil
}

// githubClient returns an authenticated client when a token is
// configured, which avoids the anonymous rate limit on shared CI hosts.
func (v *VersionUpdater) githubClient(ctx context.Context) *github.Client {
	if v.config != nil && v.config.Update.GitHubToken != "" {
		src := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: v.config.Update.GitHubToken})
		return github.NewClient(oauth2.NewClient(ctx, src))
	}
	return github.NewClient(nil)
}

// isUpdateAvailable compares release tags. Tags that do not parse as semver
// fall back to plain inequality.
func (v *VersionUpdater) isUpdateAvailable(latest string) bool {
	current := ensureVPrefix(v.currentVersion)
	latest = ensureVPrefix(latest)

	if !semver.IsValid(current) || !semver.IsValid(latest) {
		return current != latest
	}
	return semver.Compare(latest, current) > 0
}

func ensureVPrefix(version string) string {
	if strings.HasPrefix(version, "v") {
		return version
	}
	return "v" + version
}

func (v *VersionUpdater) printUpdateNotification(latest string) {
	yellow := color.New(color.FgYellow, color.Bold).SprintFunc()
	green := color.New(color.FgGreen, color.Bold).SprintFunc()

	msgAvailable := v.trans.GetMessage("update_available", 0, map[string]interface{}{
		"Current": v.currentVersion,
		"Latest":  green(latest),
	})

	var updateCmd string
	switch v.detectInstallMethod() {
	case "brew":
		updateCmd = "brew upgrade mate-jira"
	case "go":
		updateCmd = "go install github.com/thomas-vilte/matejira/cmd/mate-jira@latest"
	default:
		updateCmd = "mate-jira update"
	}

	msgCommand := v.trans.GetMessage("update_hint", 0, map[string]interface{}{
		"Command": green(updateCmd),
	})

	fmt.Printf("\n%s %s\n", yellow("▲"), msgAvailable)
	fmt.Printf("  %s\n", msgCommand)
}

func (v *VersionUpdater) cacheDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	dir := filepath.Join(homeDir, ".matejira")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}
	return dir, nil
}

func (v *VersionUpdater) loadCache() (UpdateCache, error) {
	var cache UpdateCache

	dir, err := v.cacheDir()
	if err != nil {
		return cache, err
	}

	data, err := os.ReadFile(filepath.Join(dir, updateCacheFile))
	if err != nil {
		return cache, err
	}

	if err := json.Unmarshal(data, &cache); err != nil {
		return cache, err
	}
	return cache, nil
}

func (v *VersionUpdater) saveCache(cache UpdateCache) error {
	dir, err := v.cacheDir()
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(cache, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, updateCacheFile), data, 0644)
}
