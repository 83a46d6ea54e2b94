package fields

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/thomas-vilte/matejira/internal/document"
)

type MockFieldSource struct {
	mock.Mock
}

func (m *MockFieldSource) GetMetadata(ctx context.Context, project, issueType string, forceRefresh bool) (document.Document, error) {
	args := m.Called(ctx, project, issueType, forceRefresh)
	doc, _ := args.Get(0).(document.Document)
	return doc, args.Error(1)
}
