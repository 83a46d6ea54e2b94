package services

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/thomas-vilte/matejira/internal/config"
	"github.com/thomas-vilte/matejira/internal/document"
	apperrors "github.com/thomas-vilte/matejira/internal/errors"
	"github.com/thomas-vilte/matejira/internal/logger"
	"github.com/thomas-vilte/matejira/internal/metadata"
	"github.com/thomas-vilte/matejira/internal/models"
	"github.com/thomas-vilte/matejira/internal/placeholder"
	"github.com/thomas-vilte/matejira/internal/prompt"
	"github.com/thomas-vilte/matejira/internal/regex"
	"github.com/thomas-vilte/matejira/internal/validation"
)

// IssueTracker is the slice of the Jira client the issue service needs.
type IssueTracker interface {
	CreateIssue(ctx context.Context, payload document.Document) (*models.CreatedIssue, error)
	UpdateIssue(ctx context.Context, issueKey string, payload document.Document) error
	GetIssue(ctx context.Context, issueKey string) (document.Document, error)
}

// MetadataProvider hands out field metadata documents per (project, issue type).
type MetadataProvider interface {
	GetMetadata(ctx context.Context, project, issueType string, forceRefresh bool) (document.Document, error)
}

// PlaceholderResolver turns templates with prompt markers into concrete
// documents.
type PlaceholderResolver interface {
	Resolve(ctx context.Context, doc document.Document, interactive bool) (document.Document, error)
}

// Mode selects how placeholder resolution decides between prompting and
// failing. ModeAuto prompts only when placeholders exist and stdin is a
// terminal.
type Mode int

const (
	ModeAuto Mode = iota
	ModeInteractive
	ModeNonInteractive
)

type CreateOptions struct {
	TemplatePath   string
	Project        string
	IssueType      string
	Mode           Mode
	SkipValidation bool
	ForceRefresh   bool
	DryRun         bool
}

type UpdateOptions struct {
	Key          string
	TemplatePath string
	Mode         Mode
}

// CreateResult carries either the created issue or, on a dry run, the
// payload that would have been submitted.
type CreateResult struct {
	Issue   *models.CreatedIssue
	Payload string
	DryRun  bool
}

type IssueService struct {
	tracker    IssueTracker
	metadata   MetadataProvider
	resolver   PlaceholderResolver
	config     *config.Config
	isTerminal func() bool
}

type IssueServiceOption func(*IssueService)

// WithTerminalCheck overrides stdin terminal detection, used by tests and
// callers that already know the answer.
func WithTerminalCheck(fn func() bool) IssueServiceOption {
	return func(s *IssueService) {
		s.isTerminal = fn
	}
}

func NewIssueService(tracker IssueTracker, metadata MetadataProvider, resolver PlaceholderResolver, cfg *config.Config, opts ...IssueServiceOption) *IssueService {
	s := &IssueService{
		tracker:    tracker,
		metadata:   metadata,
		resolver:   resolver,
		config:     cfg,
		isTerminal: prompt.StdinIsTerminal,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateFromTemplate drives the whole create pipeline: load the template,
// pin project and issue type, resolve placeholders, validate required
// fields against metadata, normalize typed values and submit (or render the
// payload on a dry run).
func (s *IssueService) CreateFromTemplate(ctx context.Context, opts CreateOptions) (*CreateResult, error) {
	doc, err := loadTemplate(opts.TemplatePath)
	if err != nil {
		return nil, err
	}

	doc, project, issueType, err := s.pinProjectAndType(doc, opts.Project, opts.IssueType)
	if err != nil {
		return nil, err
	}

	logger.Debug(ctx, "creating issue from template",
		"template", opts.TemplatePath, "project", project, "issue_type", issueType)

	resolved, err := s.resolve(ctx, doc, opts.Mode)
	if err != nil {
		return nil, err
	}

	if !opts.SkipValidation {
		resolved, err = s.validateAndNormalize(ctx, resolved, project, issueType, opts.ForceRefresh)
		if err != nil {
			return nil, err
		}
	} else {
		logger.Debug(ctx, "required-field validation skipped")
	}

	if opts.DryRun {
		payload, err := resolved.PrettyJSON()
		if err != nil {
			return nil, apperrors.NewAppError(apperrors.TypeInternal, "could not render payload", err)
		}
		return &CreateResult{DryRun: true, Payload: payload}, nil
	}

	issue, err := s.tracker.CreateIssue(ctx, resolved)
	if err != nil {
		return nil, err
	}
	return &CreateResult{Issue: issue}, nil
}

// UpdateFromTemplate edits an existing issue from a template. Nothing is
// injected into the payload and required fields are not checked: partial
// updates are legal.
func (s *IssueService) UpdateFromTemplate(ctx context.Context, opts UpdateOptions) error {
	if !regex.IssueKey.MatchString(opts.Key) {
		return apperrors.ErrInvalidIssueKey.WithContext("key", opts.Key)
	}

	doc, err := loadTemplate(opts.TemplatePath)
	if err != nil {
		return err
	}

	logger.Debug(ctx, "updating issue from template", "key", opts.Key, "template", opts.TemplatePath)

	resolved, err := s.resolve(ctx, doc, opts.Mode)
	if err != nil {
		return err
	}

	return s.tracker.UpdateIssue(ctx, opts.Key, resolved)
}

// GetIssue fetches one issue for rendering.
func (s *IssueService) GetIssue(ctx context.Context, key string) (document.Document, error) {
	if !regex.IssueKey.MatchString(key) {
		return document.Document{}, apperrors.ErrInvalidIssueKey.WithContext("key", key)
	}
	return s.tracker.GetIssue(ctx, key)
}

// resolve applies the interactivity policy and maps resolver failures onto
// the user-facing error vocabulary.
func (s *IssueService) resolve(ctx context.Context, doc document.Document, mode Mode) (document.Document, error) {
	interactive, err := s.interactiveFor(doc, mode)
	if err != nil {
		return document.Document{}, err
	}

	resolved, err := s.resolver.Resolve(ctx, doc, interactive)
	if err != nil {
		var phErr *placeholder.PlaceholdersPresentError
		if errors.As(err, &phErr) {
			return document.Document{}, apperrors.ErrPlaceholdersPresent.
				WithError(err).
				WithContext("details", strings.Join(phErr.Paths, ", "))
		}
		var pathErr *document.InvalidPathError
		if errors.As(err, &pathErr) {
			return document.Document{}, apperrors.ErrInvalidFieldPath.
				WithError(err).
				WithContext("details", pathErr.Path)
		}
		return document.Document{}, err
	}
	return resolved, nil
}

// interactiveFor decides whether placeholders get prompted. Explicit modes
// win; in auto mode placeholders without a terminal on stdin are refused
// rather than guessed at.
func (s *IssueService) interactiveFor(doc document.Document, mode Mode) (bool, error) {
	switch mode {
	case ModeInteractive:
		return true, nil
	case ModeNonInteractive:
		return false, nil
	}

	if len(placeholder.Scan(doc)) == 0 {
		return false, nil
	}
	if s.isTerminal() {
		return true, nil
	}
	return false, apperrors.ErrAmbiguousInput
}

func (s *IssueService) validateAndNormalize(ctx context.Context, payload document.Document, project, issueType string, forceRefresh bool) (document.Document, error) {
	meta, err := s.metadata.GetMetadata(ctx, project, issueType, forceRefresh)
	if err != nil {
		return document.Document{}, err
	}

	missing, err := validation.RequiredFields(meta, payload)
	if err != nil {
		return document.Document{}, apperrors.NewAppError(apperrors.TypeFetch, "field metadata is malformed", err)
	}
	if len(missing) > 0 {
		return document.Document{}, apperrors.ErrRequiredFieldsMissing.
			WithContext("missing", missing).
			WithContext("details", formatMissing(missing))
	}

	fields, err := metadata.ParseFields(meta)
	if err != nil {
		return document.Document{}, apperrors.NewAppError(apperrors.TypeFetch, "field metadata is malformed", err)
	}

	logger.Debug(ctx, "payload validated", "project", project, "issue_type", issueType, "fields_known", len(fields))
	return normalizePayload(payload, fields), nil
}

// pinProjectAndType settles which project and issue type the create targets.
// Explicit flags beat template values, template values beat configured
// defaults, and the winners are written back into the payload.
func (s *IssueService) pinProjectAndType(doc document.Document, projectFlag, typeFlag string) (document.Document, string, string, error) {
	project := projectFlag
	if project == "" {
		project = stringAt(doc, "fields.project.key")
	}
	if project == "" && s.config != nil {
		project = s.config.DefaultProject
	}
	if project == "" {
		return document.Document{}, "", "", apperrors.ErrProjectRequired
	}

	issueType := typeFlag
	if issueType == "" {
		issueType = stringAt(doc, "fields.issuetype.name")
	}
	if issueType == "" && s.config != nil {
		issueType = s.config.DefaultIssueType
	}
	if issueType == "" {
		return document.Document{}, "", "", apperrors.ErrIssueTypeRequired
	}

	doc, err := doc.WithValueAt("fields.project", document.Map(map[string]document.Document{
		"key": document.String(project),
	}))
	if err != nil {
		return document.Document{}, "", "", err
	}
	doc, err = doc.WithValueAt("fields.issuetype", document.Map(map[string]document.Document{
		"name": document.String(issueType),
	}))
	if err != nil {
		return document.Document{}, "", "", err
	}

	return doc, project, issueType, nil
}

// loadTemplate reads a YAML template into a Document and checks the one
// structural requirement: a top-level 'fields' mapping.
func loadTemplate(path string) (document.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return document.Document{}, apperrors.ErrTemplateNotFound.WithContext("details", path)
		}
		return document.Document{}, apperrors.NewAppError(apperrors.TypeTemplate, "could not read template file", err).
			WithContext("details", path)
	}

	doc, err := document.FromYAML(data)
	if err != nil {
		return document.Document{}, apperrors.ErrTemplateInvalid.WithError(err).WithContext("details", path)
	}

	fields, ok := doc.Value("fields")
	if !ok || fields.Kind() != document.KindMap {
		return document.Document{}, apperrors.ErrTemplateNoFields.WithContext("details", path)
	}
	return doc, nil
}

// normalizePayload applies metadata-driven coercions so template authors can
// write flat strings for list and numeric fields. Values the metadata does
// not cover are left exactly as written.
func normalizePayload(payload document.Document, fields []models.FieldMeta) document.Document {
	for _, f := range fields {
		path := "fields." + f.Key
		value, ok := payload.ValueAt(path)
		if !ok {
			continue
		}
		raw, isString := value.AsString()
		if !isString {
			continue
		}

		switch f.Schema.Type {
		case "array":
			if next, err := payload.WithValueAt(path, splitList(raw)); err == nil {
				payload = next
			}
		case "number":
			n, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
			if err != nil {
				continue
			}
			if next, err := payload.WithValueAt(path, document.Number(n)); err == nil {
				payload = next
			}
		}
	}
	return payload
}

// splitList turns "a, b ,c" into a list document, dropping empty items.
func splitList(raw string) document.Document {
	parts := strings.Split(raw, ",")
	items := make([]document.Document, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		items = append(items, document.String(p))
	}
	return document.List(items...)
}

func formatMissing(missing []models.MissingField) string {
	parts := make([]string, len(missing))
	for i, m := range missing {
		if m.Name != "" && m.Name != m.Key {
			parts[i] = fmt.Sprintf("%s (%s)", m.Key, m.Name)
		} else {
			parts[i] = m.Key
		}
	}
	return strings.Join(parts, ", ")
}

// stringAt reads a string leaf at path, empty when absent or non-string.
func stringAt(doc document.Document, path string) string {
	v, ok := doc.ValueAt(path)
	if !ok {
		return ""
	}
	s, _ := v.AsString()
	return s
}
