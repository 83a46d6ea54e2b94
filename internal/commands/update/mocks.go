package update

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/thomas-vilte/matejira/internal/services"
)

// MockUpdater is a mock implementation of the Updater interface.
type MockUpdater struct {
	mock.Mock
}

func (m *MockUpdater) Check(ctx context.Context) (services.UpdateStatus, error) {
	args := m.Called(ctx)
	status, _ := args.Get(0).(services.UpdateStatus)
	return status, args.Error(1)
}

func (m *MockUpdater) UpdateCLI(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
