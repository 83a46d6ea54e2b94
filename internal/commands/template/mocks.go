package template

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type MockTemplateGenerator struct {
	mock.Mock
}

func (m *MockTemplateGenerator) GenerateTemplate(ctx context.Context, project, issueType string, forceRefresh bool) ([]byte, error) {
	args := m.Called(ctx, project, issueType, forceRefresh)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}
