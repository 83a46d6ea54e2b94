package services

import (
	"bytes"
	"context"

	apperrors "github.com/thomas-vilte/matejira/internal/errors"
	"github.com/thomas-vilte/matejira/internal/logger"
	"github.com/thomas-vilte/matejira/internal/metadata"
	"github.com/thomas-vilte/matejira/internal/templategen"
	"gopkg.in/yaml.v3"
)

// TemplateService renders starter issue templates from tracker metadata.
type TemplateService struct {
	metadata MetadataProvider
}

func NewTemplateService(provider MetadataProvider) *TemplateService {
	return &TemplateService{metadata: provider}
}

// GenerateTemplate builds the annotated YAML template for one
// (project, issue type) pair. The output keeps the synthesizer's line
// comments, so it is encoded from the comment-carrying node rather than a
// plain value tree.
func (s *TemplateService) GenerateTemplate(ctx context.Context, project, issueType string, forceRefresh bool) ([]byte, error) {
	meta, err := s.metadata.GetMetadata(ctx, project, issueType, forceRefresh)
	if err != nil {
		return nil, err
	}

	fields, err := metadata.ParseFields(meta)
	if err != nil {
		return nil, apperrors.NewAppError(apperrors.TypeFetch, "field metadata is malformed", err)
	}

	node, err := templategen.BuildTemplate(fields, project, issueType)
	if err != nil {
		return nil, apperrors.ErrMetadataEmpty.WithError(err).
			WithContext("project", project).
			WithContext("issue_type", issueType)
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(node); err != nil {
		return nil, apperrors.NewAppError(apperrors.TypeInternal, "could not encode template", err)
	}
	if err := enc.Close(); err != nil {
		return nil, apperrors.NewAppError(apperrors.TypeInternal, "could not encode template", err)
	}

	logger.Debug(ctx, "template generated", "project", project, "issue_type", issueType, "fields", len(fields))
	return buf.Bytes(), nil
}
