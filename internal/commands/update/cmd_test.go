package update

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/thomas-vilte/matejira/internal/config"
	"github.com/thomas-vilte/matejira/internal/i18n"
	"github.com/thomas-vilte/matejira/internal/services"
	"github.com/urfave/cli/v3"
)

func setupUpdateTest(t *testing.T) (*MockUpdater, *UpdateCommandFactory, *i18n.Translations, *config.Config) {
	mockUpdater := new(MockUpdater)

	factory := NewUpdateCommandFactory("0.3.0")
	factory.newUpdater = func(trans *i18n.Translations, cfg *config.Config) Updater {
		return mockUpdater
	}

	translations, err := i18n.NewTranslations("en", "")
	require.NoError(t, err)

	cfg := &config.Config{Language: "en"}

	return mockUpdater, factory, translations, cfg
}

func captureStdout(t *testing.T, f func()) string {
	t.Helper()

	oldStdout := os.Stdout
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stdout = w

	f()

	require.NoError(t, w.Close())
	os.Stdout = oldStdout

	var buf bytes.Buffer
	_, err = io.Copy(&buf, r)
	require.NoError(t, err)
	return buf.String()
}

func TestUpdateAction(t *testing.T) {
	t.Run("should do nothing when already on the latest version", func(t *testing.T) {
		mockUpdater, factory, translations, cfg := setupUpdateTest(t)

		mockUpdater.On("Check", mock.Anything).Return(services.UpdateStatus{
			Current:   "0.3.0",
			Latest:    "v0.3.0",
			Available: false,
		}, nil)

		cmd := factory.CreateCommand(translations, cfg)
		app := &cli.Command{Name: "test", Commands: []*cli.Command{cmd}}

		var err error
		output := captureStdout(t, func() {
			err = app.Run(context.Background(), []string{"test", "update"})
		})

		require.NoError(t, err)
		assert.Contains(t, output, "You are on the latest version (0.3.0)")
		mockUpdater.AssertNotCalled(t, "UpdateCLI", mock.Anything)
	})

	t.Run("should install the newer release", func(t *testing.T) {
		mockUpdater, factory, translations, cfg := setupUpdateTest(t)

		mockUpdater.On("Check", mock.Anything).Return(services.UpdateStatus{
			Current:   "0.3.0",
			Latest:    "v0.4.0",
			Available: true,
		}, nil)
		mockUpdater.On("UpdateCLI", mock.Anything).Return(nil)

		cmd := factory.CreateCommand(translations, cfg)
		app := &cli.Command{Name: "test", Commands: []*cli.Command{cmd}}

		var err error
		output := captureStdout(t, func() {
			err = app.Run(context.Background(), []string{"test", "update"})
		})

		require.NoError(t, err)
		assert.Contains(t, output, "Updating mate-jira...")
		assert.Contains(t, output, "Updated to v0.4.0")
		mockUpdater.AssertExpectations(t)
	})

	t.Run("should surface install failures", func(t *testing.T) {
		mockUpdater, factory, translations, cfg := setupUpdateTest(t)

		installErr := errors.New("go is not available on PATH")
		mockUpdater.On("Check", mock.Anything).Return(services.UpdateStatus{
			Current:   "0.3.0",
			Latest:    "v0.4.0",
			Available: true,
		}, nil)
		mockUpdater.On("UpdateCLI", mock.Anything).Return(installErr)

		cmd := factory.CreateCommand(translations, cfg)
		app := &cli.Command{Name: "test", Commands: []*cli.Command{cmd}}

		err := app.Run(context.Background(), []string{"test", "update"})

		require.Error(t, err)
		assert.ErrorIs(t, err, installErr)
	})

	t.Run("should surface a failed release lookup", func(t *testing.T) {
		mockUpdater, factory, translations, cfg := setupUpdateTest(t)

		lookupErr := errors.New("rate limited")
		mockUpdater.On("Check", mock.Anything).Return(services.UpdateStatus{}, lookupErr)

		cmd := factory.CreateCommand(translations, cfg)
		app := &cli.Command{Name: "test", Commands: []*cli.Command{cmd}}

		err := app.Run(context.Background(), []string{"test", "update"})

		require.Error(t, err)
		assert.ErrorIs(t, err, lookupErr)
		mockUpdater.AssertNotCalled(t, "UpdateCLI", mock.Anything)
	})
}

func TestUpdateCheckAction(t *testing.T) {
	t.Run("should report an available release with its download link", func(t *testing.T) {
		mockUpdater, factory, translations, cfg := setupUpdateTest(t)

		mockUpdater.On("Check", mock.Anything).Return(services.UpdateStatus{
			Current:   "0.3.0",
			Latest:    "v0.4.0",
			URL:       "https://github.com/thomas-vilte/matejira/releases/tag/v0.4.0",
			Available: true,
		}, nil)

		cmd := factory.CreateCommand(translations, cfg)
		app := &cli.Command{Name: "test", Commands: []*cli.Command{cmd}}

		var err error
		output := captureStdout(t, func() {
			err = app.Run(context.Background(), []string{"test", "update", "check"})
		})

		require.NoError(t, err)
		assert.Contains(t, output, "Version v0.4.0 is available (current: 0.3.0)")
		assert.Contains(t, output, "https://github.com/thomas-vilte/matejira/releases/tag/v0.4.0")
	})

	t.Run("should report when the binary is current", func(t *testing.T) {
		mockUpdater, factory, translations, cfg := setupUpdateTest(t)

		mockUpdater.On("Check", mock.Anything).Return(services.UpdateStatus{
			Current:   "0.3.0",
			Latest:    "v0.3.0",
			Available: false,
		}, nil)

		cmd := factory.CreateCommand(translations, cfg)
		app := &cli.Command{Name: "test", Commands: []*cli.Command{cmd}}

		var err error
		output := captureStdout(t, func() {
			err = app.Run(context.Background(), []string{"test", "update", "check"})
		})

		require.NoError(t, err)
		assert.Contains(t, output, "You are on the latest version (0.3.0)")
	})
}
