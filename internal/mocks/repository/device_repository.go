package repository

import (
	"context"
	"testing"
	"time"

	"quotecast/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockDeviceRepository is a mock implementation of
// repository.DeviceRepository.
type MockDeviceRepository struct {
	mock.Mock
}

// NewMockDeviceRepository creates the mock and asserts its expectations on
// test cleanup.
func NewMockDeviceRepository(t *testing.T) *MockDeviceRepository {
	m := &MockDeviceRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

// MockDeviceRepositoryExpecter records expectations for
// MockDeviceRepository.
type MockDeviceRepositoryExpecter struct {
	mock *mock.Mock
}

// EXPECT returns the expectation recorder.
func (m *MockDeviceRepository) EXPECT() *MockDeviceRepositoryExpecter {
	return &MockDeviceRepositoryExpecter{mock: &m.Mock}
}

func (e *MockDeviceRepositoryExpecter) UpsertDevice(ctx, device, seenAt any) *mock.Call {
	return e.mock.On("UpsertDevice", ctx, device, seenAt)
}

func (e *MockDeviceRepositoryExpecter) FindDevicesByUser(ctx any, userID any) *mock.Call {
	return e.mock.On("FindDevicesByUser", ctx, userID)
}

func (e *MockDeviceRepositoryExpecter) ListDevices(ctx, offset, limit any) *mock.Call {
	return e.mock.On("ListDevices", ctx, offset, limit)
}

func (e *MockDeviceRepositoryExpecter) DeleteDevice(ctx any, id any) *mock.Call {
	return e.mock.On("DeleteDevice", ctx, id)
}

func (e *MockDeviceRepositoryExpecter) DeleteDevicesByToken(ctx any, tokens any) *mock.Call {
	return e.mock.On("DeleteDevicesByToken", ctx, tokens)
}

func (m *MockDeviceRepository) UpsertDevice(ctx context.Context, device *entity.DeviceToken, seenAt time.Time) error {
	return m.Called(ctx, device, seenAt).Error(0)
}

func (m *MockDeviceRepository) FindDevicesByUser(ctx context.Context, userID uuid.UUID) ([]*entity.DeviceToken, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*entity.DeviceToken), args.Error(1)
}

func (m *MockDeviceRepository) ListDevices(ctx context.Context, offset, limit int) ([]*entity.DeviceToken, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*entity.DeviceToken), args.Error(1)
}

func (m *MockDeviceRepository) DeleteDevice(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockDeviceRepository) DeleteDevicesByToken(ctx context.Context, tokens []string) (int64, error) {
	args := m.Called(ctx, tokens)

	return args.Get(0).(int64), args.Error(1)
}
