package services

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/thomas-vilte/matejira/internal/document"
	"github.com/thomas-vilte/matejira/internal/models"
)

type (
	MockIssueTracker struct {
		mock.Mock
	}

	MockMetadataProvider struct {
		mock.Mock
	}
)

func (m *MockIssueTracker) CreateIssue(ctx context.Context, payload document.Document) (*models.CreatedIssue, error) {
	args := m.Called(ctx, payload)
	issue, _ := args.Get(0).(*models.CreatedIssue)
	return issue, args.Error(1)
}

func (m *MockIssueTracker) UpdateIssue(ctx context.Context, issueKey string, payload document.Document) error {
	args := m.Called(ctx, issueKey, payload)
	return args.Error(0)
}

func (m *MockIssueTracker) GetIssue(ctx context.Context, issueKey string) (document.Document, error) {
	args := m.Called(ctx, issueKey)
	doc, _ := args.Get(0).(document.Document)
	return doc, args.Error(1)
}

func (m *MockMetadataProvider) GetMetadata(ctx context.Context, project, issueType string, forceRefresh bool) (document.Document, error) {
	args := m.Called(ctx, project, issueType, forceRefresh)
	doc, _ := args.Get(0).(document.Document)
	return doc, args.Error(1)
}
