package issues

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/thomas-vilte/matejira/internal/document"
	"github.com/thomas-vilte/matejira/internal/services"
)

type MockIssueWorkflow struct {
	mock.Mock
}

func (m *MockIssueWorkflow) CreateFromTemplate(ctx context.Context, opts services.CreateOptions) (*services.CreateResult, error) {
	args := m.Called(ctx, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.CreateResult), args.Error(1)
}

func (m *MockIssueWorkflow) UpdateFromTemplate(ctx context.Context, opts services.UpdateOptions) error {
	args := m.Called(ctx, opts)
	return args.Error(0)
}

func (m *MockIssueWorkflow) GetIssue(ctx context.Context, key string) (document.Document, error) {
	args := m.Called(ctx, key)
	doc, _ := args.Get(0).(document.Document)
	return doc, args.Error(1)
}
