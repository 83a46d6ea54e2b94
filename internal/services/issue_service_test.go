package services

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/thomas-vilte/matejira/internal/config"
	"github.com/thomas-vilte/matejira/internal/document"
	apperrors "github.com/thomas-vilte/matejira/internal/errors"
	"github.com/thomas-vilte/matejira/internal/models"
	"github.com/thomas-vilte/matejira/internal/placeholder"
)

const taskMetaJSON = `{
	"summary": {"name": "Summary", "required": true, "schema": {"type": "string", "system": "summary"}},
	"labels": {"name": "Labels", "required": false, "schema": {"type": "array", "system": "labels"}},
	"customfield_1": {"name": "Story Points", "required": false, "schema": {"type": "number"}},
	"project": {"name": "Project", "required": true, "schema": {"type": "project"}},
	"issuetype": {"name": "Issue Type", "required": true, "schema": {"type": "issuetype"}}
}`

type scriptedPrompter struct {
	answers []string
	calls   int
}

func (p *scriptedPrompter) Prompt(_ context.Context, req placeholder.Request) (string, error) {
	if p.calls >= len(p.answers) {
		return "", fmt.Errorf("unexpected prompt for %q", req.FieldName)
	}
	answer := p.answers[p.calls]
	p.calls++
	return answer, nil
}

func writeTemplate(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "task.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func metaDoc(t *testing.T, raw string) document.Document {
	t.Helper()
	doc, err := document.FromJSON([]byte(raw))
	require.NoError(t, err)
	return doc
}

func newTestIssueService(tracker *MockIssueTracker, provider *MockMetadataProvider, prompter placeholder.Prompter, cfg *config.Config, terminal bool) *IssueService {
	if cfg == nil {
		cfg = &config.Config{}
	}
	return NewIssueService(tracker, provider, placeholder.NewResolver(prompter), cfg,
		WithTerminalCheck(func() bool { return terminal }))
}

func TestCreateFromTemplate_SubmitsNormalizedPayload(t *testing.T) {
	path := writeTemplate(t, `
fields:
  summary: Fix login crash
  labels: "ui, crash"
  customfield_1: "5"
`)

	tracker := new(MockIssueTracker)
	provider := new(MockMetadataProvider)
	provider.On("GetMetadata", mock.Anything, "CORE", "Task", false).
		Return(metaDoc(t, taskMetaJSON), nil)

	var captured document.Document
	tracker.On("CreateIssue", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			captured = args.Get(1).(document.Document)
		}).
		Return(&models.CreatedIssue{ID: "10001", Key: "CORE-7", URL: "https://acme.atlassian.net/browse/CORE-7"}, nil)

	svc := newTestIssueService(tracker, provider, nil, nil, false)

	result, err := svc.CreateFromTemplate(context.Background(), CreateOptions{
		TemplatePath: path,
		Project:      "CORE",
		IssueType:    "Task",
	})

	require.NoError(t, err)
	require.NotNil(t, result.Issue)
	assert.Equal(t, "CORE-7", result.Issue.Key)
	assert.False(t, result.DryRun)

	projectKey, _ := captured.ValueAt("fields.project.key")
	assert.Equal(t, document.String("CORE"), projectKey)
	typeName, _ := captured.ValueAt("fields.issuetype.name")
	assert.Equal(t, document.String("Task"), typeName)

	labels, ok := captured.ValueAt("fields.labels")
	require.True(t, ok)
	require.Equal(t, document.KindList, labels.Kind())
	require.Equal(t, 2, labels.Len())
	first, _ := labels.Index(0)
	second, _ := labels.Index(1)
	assert.Equal(t, document.String("ui"), first)
	assert.Equal(t, document.String("crash"), second)

	points, _ := captured.ValueAt("fields.customfield_1")
	n, isNumber := points.AsNumber()
	assert.True(t, isNumber)
	assert.Equal(t, 5.0, n)

	provider.AssertExpectations(t)
	tracker.AssertExpectations(t)
}

func TestCreateFromTemplate_ProjectAndTypePrecedence(t *testing.T) {
	newMocks := func(project, issueType string) (*MockIssueTracker, *MockMetadataProvider) {
		tracker := new(MockIssueTracker)
		provider := new(MockMetadataProvider)
		provider.On("GetMetadata", mock.Anything, project, issueType, false).
			Return(metaDoc(t, taskMetaJSON), nil)
		tracker.On("CreateIssue", mock.Anything, mock.Anything).
			Return(&models.CreatedIssue{Key: project + "-1"}, nil)
		return tracker, provider
	}

	t.Run("flag overrides template", func(t *testing.T) {
		path := writeTemplate(t, `
fields:
  summary: s
  project:
    key: TPL
`)
		tracker, provider := newMocks("CORE", "Task")
		svc := newTestIssueService(tracker, provider, nil, &config.Config{DefaultIssueType: "Task"}, false)

		_, err := svc.CreateFromTemplate(context.Background(), CreateOptions{TemplatePath: path, Project: "CORE"})
		require.NoError(t, err)
		provider.AssertExpectations(t)
	})

	t.Run("template wins over configured default", func(t *testing.T) {
		path := writeTemplate(t, `
fields:
  summary: s
  project:
    key: TPL
  issuetype:
    name: Bug
`)
		tracker, provider := newMocks("TPL", "Bug")
		svc := newTestIssueService(tracker, provider, nil, &config.Config{DefaultProject: "CFG", DefaultIssueType: "Task"}, false)

		_, err := svc.CreateFromTemplate(context.Background(), CreateOptions{TemplatePath: path})
		require.NoError(t, err)
		provider.AssertExpectations(t)
	})

	t.Run("configured default fills the gap", func(t *testing.T) {
		path := writeTemplate(t, `
fields:
  summary: s
`)
		tracker, provider := newMocks("CORE", "Task")
		svc := newTestIssueService(tracker, provider, nil, &config.Config{DefaultProject: "CORE", DefaultIssueType: "Task"}, false)

		_, err := svc.CreateFromTemplate(context.Background(), CreateOptions{TemplatePath: path})
		require.NoError(t, err)
		provider.AssertExpectations(t)
	})

	t.Run("no project anywhere fails", func(t *testing.T) {
		path := writeTemplate(t, `
fields:
  summary: s
`)
		svc := newTestIssueService(new(MockIssueTracker), new(MockMetadataProvider), nil, &config.Config{DefaultIssueType: "Task"}, false)

		_, err := svc.CreateFromTemplate(context.Background(), CreateOptions{TemplatePath: path})
		assert.ErrorIs(t, err, apperrors.ErrProjectRequired)
	})

	t.Run("no issue type anywhere fails", func(t *testing.T) {
		path := writeTemplate(t, `
fields:
  summary: s
`)
		svc := newTestIssueService(new(MockIssueTracker), new(MockMetadataProvider), nil, &config.Config{DefaultProject: "CORE"}, false)

		_, err := svc.CreateFromTemplate(context.Background(), CreateOptions{TemplatePath: path})
		assert.ErrorIs(t, err, apperrors.ErrIssueTypeRequired)
	})
}

func TestCreateFromTemplate_InteractiveResolution(t *testing.T) {
	path := writeTemplate(t, `
fields:
  summary: "{{PROMPT: Summary}}"
  description: "{{PROMPT_MULTI: Description}}"
`)

	tracker := new(MockIssueTracker)
	var captured document.Document
	tracker.On("CreateIssue", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			captured = args.Get(1).(document.Document)
		}).
		Return(&models.CreatedIssue{Key: "CORE-9"}, nil)

	// Traversal is by sorted key, so description is asked before summary.
	prompter := &scriptedPrompter{answers: []string{"line one\nline two", "Fix crash"}}
	svc := newTestIssueService(tracker, new(MockMetadataProvider), prompter,
		&config.Config{DefaultProject: "CORE", DefaultIssueType: "Task"}, true)

	_, err := svc.CreateFromTemplate(context.Background(), CreateOptions{
		TemplatePath:   path,
		SkipValidation: true,
	})

	require.NoError(t, err)
	assert.Equal(t, 2, prompter.calls)

	desc, _ := captured.ValueAt("fields.description")
	assert.Equal(t, document.String("line one\nline two"), desc)
	summary, _ := captured.ValueAt("fields.summary")
	assert.Equal(t, document.String("Fix crash"), summary)
}

func TestCreateFromTemplate_AutoWithoutTerminalFails(t *testing.T) {
	path := writeTemplate(t, `
fields:
  summary: "{{PROMPT: Summary}}"
`)

	tracker := new(MockIssueTracker)
	provider := new(MockMetadataProvider)
	svc := newTestIssueService(tracker, provider, nil,
		&config.Config{DefaultProject: "CORE", DefaultIssueType: "Task"}, false)

	_, err := svc.CreateFromTemplate(context.Background(), CreateOptions{TemplatePath: path})

	assert.ErrorIs(t, err, apperrors.ErrAmbiguousInput)
	tracker.AssertNotCalled(t, "CreateIssue", mock.Anything, mock.Anything)
	provider.AssertNotCalled(t, "GetMetadata", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateFromTemplate_NonInteractiveRejectsPlaceholders(t *testing.T) {
	path := writeTemplate(t, `
fields:
  summary: "{{PROMPT: Summary}}"
`)

	svc := newTestIssueService(new(MockIssueTracker), new(MockMetadataProvider), nil,
		&config.Config{DefaultProject: "CORE", DefaultIssueType: "Task"}, true)

	_, err := svc.CreateFromTemplate(context.Background(), CreateOptions{
		TemplatePath: path,
		Mode:         ModeNonInteractive,
	})

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.TypeInput, appErr.Type)

	var phErr *placeholder.PlaceholdersPresentError
	require.ErrorAs(t, err, &phErr)
	assert.Equal(t, []string{"fields.summary"}, phErr.Paths)
}

func TestCreateFromTemplate_MissingRequiredFields(t *testing.T) {
	path := writeTemplate(t, `
fields:
  labels: backend
`)

	meta := metaDoc(t, `{
		"summary": {"name": "Summary", "required": true, "schema": {"type": "string", "system": "summary"}},
		"customfield_9": {"name": "Team", "required": true, "schema": {"type": "option"}},
		"labels": {"name": "Labels", "required": false, "schema": {"type": "array", "system": "labels"}}
	}`)

	tracker := new(MockIssueTracker)
	provider := new(MockMetadataProvider)
	provider.On("GetMetadata", mock.Anything, "CORE", "Task", false).Return(meta, nil)

	svc := newTestIssueService(tracker, provider, nil,
		&config.Config{DefaultProject: "CORE", DefaultIssueType: "Task"}, false)

	_, err := svc.CreateFromTemplate(context.Background(), CreateOptions{TemplatePath: path})

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.TypeValidation, appErr.Type)

	missing, ok := appErr.Context["missing"].([]models.MissingField)
	require.True(t, ok)
	assert.Equal(t, []models.MissingField{
		{Key: "customfield_9", Name: "Team"},
		{Key: "summary", Name: "Summary"},
	}, missing)
	assert.Contains(t, err.Error(), "customfield_9 (Team)")

	tracker.AssertNotCalled(t, "CreateIssue", mock.Anything, mock.Anything)
}

func TestCreateFromTemplate_SkipValidation(t *testing.T) {
	path := writeTemplate(t, `
fields:
  labels: "ui, crash"
`)

	tracker := new(MockIssueTracker)
	provider := new(MockMetadataProvider)

	var captured document.Document
	tracker.On("CreateIssue", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			captured = args.Get(1).(document.Document)
		}).
		Return(&models.CreatedIssue{Key: "CORE-3"}, nil)

	svc := newTestIssueService(tracker, provider, nil,
		&config.Config{DefaultProject: "CORE", DefaultIssueType: "Task"}, false)

	_, err := svc.CreateFromTemplate(context.Background(), CreateOptions{
		TemplatePath:   path,
		SkipValidation: true,
	})

	require.NoError(t, err)
	provider.AssertNotCalled(t, "GetMetadata", mock.Anything, mock.Anything, mock.Anything, mock.Anything)

	// Without metadata there is nothing to drive normalization.
	labels, _ := captured.ValueAt("fields.labels")
	assert.Equal(t, document.String("ui, crash"), labels)
}

func TestCreateFromTemplate_DryRun(t *testing.T) {
	path := writeTemplate(t, `
fields:
  summary: Fix login crash
`)

	tracker := new(MockIssueTracker)
	provider := new(MockMetadataProvider)
	provider.On("GetMetadata", mock.Anything, "CORE", "Task", true).
		Return(metaDoc(t, taskMetaJSON), nil)

	svc := newTestIssueService(tracker, provider, nil,
		&config.Config{DefaultProject: "CORE", DefaultIssueType: "Task"}, false)

	result, err := svc.CreateFromTemplate(context.Background(), CreateOptions{
		TemplatePath: path,
		ForceRefresh: true,
		DryRun:       true,
	})

	require.NoError(t, err)
	assert.True(t, result.DryRun)
	assert.Nil(t, result.Issue)
	assert.Contains(t, result.Payload, `"summary"`)
	assert.Contains(t, result.Payload, "Fix login crash")

	tracker.AssertNotCalled(t, "CreateIssue", mock.Anything, mock.Anything)
}

func TestCreateFromTemplate_TemplateErrors(t *testing.T) {
	svc := newTestIssueService(new(MockIssueTracker), new(MockMetadataProvider), nil,
		&config.Config{DefaultProject: "CORE", DefaultIssueType: "Task"}, false)

	t.Run("file not found", func(t *testing.T) {
		_, err := svc.CreateFromTemplate(context.Background(), CreateOptions{
			TemplatePath: filepath.Join(t.TempDir(), "missing.yml"),
		})

		var appErr *apperrors.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, apperrors.TypeTemplate, appErr.Type)
		assert.Equal(t, "Template file not found", appErr.Message)
	})

	t.Run("invalid yaml", func(t *testing.T) {
		path := writeTemplate(t, "fields: [\n")

		_, err := svc.CreateFromTemplate(context.Background(), CreateOptions{TemplatePath: path})

		var appErr *apperrors.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, apperrors.TypeTemplate, appErr.Type)
		assert.Equal(t, "Template is not valid YAML", appErr.Message)
	})

	t.Run("missing fields mapping", func(t *testing.T) {
		path := writeTemplate(t, "summary: top-level\n")

		_, err := svc.CreateFromTemplate(context.Background(), CreateOptions{TemplatePath: path})

		var appErr *apperrors.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, apperrors.TypeTemplate, appErr.Type)
		assert.Equal(t, "Template has no 'fields' mapping", appErr.Message)
	})
}

func TestCreateFromTemplate_MetadataErrorPropagates(t *testing.T) {
	path := writeTemplate(t, `
fields:
  summary: s
`)

	cause := errors.New("boom")
	provider := new(MockMetadataProvider)
	provider.On("GetMetadata", mock.Anything, "CORE", "Task", false).
		Return(document.Document{}, cause)

	svc := newTestIssueService(new(MockIssueTracker), provider, nil,
		&config.Config{DefaultProject: "CORE", DefaultIssueType: "Task"}, false)

	_, err := svc.CreateFromTemplate(context.Background(), CreateOptions{TemplatePath: path})
	assert.ErrorIs(t, err, cause)
}

func TestUpdateFromTemplate(t *testing.T) {
	t.Run("rejects malformed issue keys", func(t *testing.T) {
		svc := newTestIssueService(new(MockIssueTracker), new(MockMetadataProvider), nil, nil, false)

		err := svc.UpdateFromTemplate(context.Background(), UpdateOptions{
			Key:          "not-a-key",
			TemplatePath: "irrelevant.yml",
		})

		var appErr *apperrors.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, apperrors.TypeInput, appErr.Type)
		assert.Equal(t, "Issue key does not look like a Jira key", appErr.Message)
	})

	t.Run("submits template as-is", func(t *testing.T) {
		path := writeTemplate(t, `
fields:
  summary: Updated summary
`)

		tracker := new(MockIssueTracker)
		var captured document.Document
		tracker.On("UpdateIssue", mock.Anything, "CORE-42", mock.Anything).
			Run(func(args mock.Arguments) {
				captured = args.Get(2).(document.Document)
			}).
			Return(nil)

		// Defaults must not leak into update payloads.
		svc := newTestIssueService(tracker, new(MockMetadataProvider), nil,
			&config.Config{DefaultProject: "CORE", DefaultIssueType: "Task"}, false)

		err := svc.UpdateFromTemplate(context.Background(), UpdateOptions{
			Key:          "CORE-42",
			TemplatePath: path,
		})

		require.NoError(t, err)
		_, hasProject := captured.ValueAt("fields.project")
		assert.False(t, hasProject)
		_, hasType := captured.ValueAt("fields.issuetype")
		assert.False(t, hasType)
		summary, _ := captured.ValueAt("fields.summary")
		assert.Equal(t, document.String("Updated summary"), summary)

		tracker.AssertExpectations(t)
	})
}

func TestGetIssue(t *testing.T) {
	t.Run("rejects malformed issue keys", func(t *testing.T) {
		svc := newTestIssueService(new(MockIssueTracker), new(MockMetadataProvider), nil, nil, false)

		_, err := svc.GetIssue(context.Background(), "core42")

		var appErr *apperrors.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, apperrors.TypeInput, appErr.Type)
	})

	t.Run("returns the fetched document", func(t *testing.T) {
		issue := metaDoc(t, `{"key": "CORE-42", "fields": {"summary": "A bug"}}`)

		tracker := new(MockIssueTracker)
		tracker.On("GetIssue", mock.Anything, "CORE-42").Return(issue, nil)

		svc := newTestIssueService(tracker, new(MockMetadataProvider), nil, nil, false)

		got, err := svc.GetIssue(context.Background(), "CORE-42")
		require.NoError(t, err)
		assert.True(t, got.Equal(issue))
	})
}
