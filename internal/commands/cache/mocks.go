package cache

import (
	"github.com/stretchr/testify/mock"
	"github.com/thomas-vilte/matejira/internal/metadata"
)

type MockMetadataStore struct {
	mock.Mock
}

func (m *MockMetadataStore) Dir() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockMetadataStore) List() ([]metadata.CachedMetadata, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]metadata.CachedMetadata), args.Error(1)
}

func (m *MockMetadataStore) Delete(project, issueType string) error {
	args := m.Called(project, issueType)
	return args.Error(0)
}

func (m *MockMetadataStore) Clear() error {
	args := m.Called()
	return args.Error(0)
}
