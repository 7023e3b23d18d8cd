package repository

import (
	"context"
	"testing"
	"time"

	"quotecast/internal/domain/entity"
	"quotecast/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockDeliveryRepository is a mock implementation of
// repository.DeliveryRepository.
type MockDeliveryRepository struct {
	mock.Mock
}

// NewMockDeliveryRepository creates the mock and asserts its expectations
// on test cleanup.
func NewMockDeliveryRepository(t *testing.T) *MockDeliveryRepository {
	m := &MockDeliveryRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

// MockDeliveryRepositoryExpecter records expectations for
// MockDeliveryRepository.
type MockDeliveryRepositoryExpecter struct {
	mock *mock.Mock
}

// EXPECT returns the expectation recorder.
func (m *MockDeliveryRepository) EXPECT() *MockDeliveryRepositoryExpecter {
	return &MockDeliveryRepositoryExpecter{mock: &m.Mock}
}

func (e *MockDeliveryRepositoryExpecter) CreateDelivery(ctx any, delivery any) *mock.Call {
	return e.mock.On("CreateDelivery", ctx, delivery)
}

func (e *MockDeliveryRepositoryExpecter) FindDeliveryByID(ctx any, id any) *mock.Call {
	return e.mock.On("FindDeliveryByID", ctx, id)
}

func (e *MockDeliveryRepositoryExpecter) ExistsActiveAt(ctx, userID, scheduledAt any) *mock.Call {
	return e.mock.On("ExistsActiveAt", ctx, userID, scheduledAt)
}

func (e *MockDeliveryRepositoryExpecter) FindDuePending(ctx, now, limit any) *mock.Call {
	return e.mock.On("FindDuePending", ctx, now, limit)
}

func (e *MockDeliveryRepositoryExpecter) MarkSent(ctx, id, update any) *mock.Call {
	return e.mock.On("MarkSent", ctx, id, update)
}

func (e *MockDeliveryRepositoryExpecter) MarkFailed(ctx, id, reason any) *mock.Call {
	return e.mock.On("MarkFailed", ctx, id, reason)
}

func (e *MockDeliveryRepositoryExpecter) FindInvalid(ctx any) *mock.Call {
	return e.mock.On("FindInvalid", ctx)
}

func (e *MockDeliveryRepositoryExpecter) DeleteByIDs(ctx any, ids any) *mock.Call {
	return e.mock.On("DeleteByIDs", ctx, ids)
}

func (e *MockDeliveryRepositoryExpecter) ListByUser(ctx, userID, limit, offset any) *mock.Call {
	return e.mock.On("ListByUser", ctx, userID, limit, offset)
}

func (m *MockDeliveryRepository) CreateDelivery(ctx context.Context, delivery *entity.NotificationDelivery) error {
	return m.Called(ctx, delivery).Error(0)
}

func (m *MockDeliveryRepository) FindDeliveryByID(ctx context.Context, id uuid.UUID) (*entity.NotificationDelivery, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.NotificationDelivery), args.Error(1)
}

func (m *MockDeliveryRepository) ExistsActiveAt(ctx context.Context, userID uuid.UUID, scheduledAt time.Time) (bool, error) {
	args := m.Called(ctx, userID, scheduledAt)

	return args.Bool(0), args.Error(1)
}

func (m *MockDeliveryRepository) FindDuePending(ctx context.Context, now time.Time, limit int) ([]*entity.NotificationDelivery, error) {
	args := m.Called(ctx, now, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*entity.NotificationDelivery), args.Error(1)
}

func (m *MockDeliveryRepository) MarkSent(ctx context.Context, id uuid.UUID, update repository.SentUpdate) error {
	return m.Called(ctx, id, update).Error(0)
}

func (m *MockDeliveryRepository) MarkFailed(ctx context.Context, id uuid.UUID, reason string) error {
	return m.Called(ctx, id, reason).Error(0)
}

func (m *MockDeliveryRepository) FindInvalid(ctx context.Context) ([]*entity.NotificationDelivery, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*entity.NotificationDelivery), args.Error(1)
}

func (m *MockDeliveryRepository) DeleteByIDs(ctx context.Context, ids []uuid.UUID) (int64, error) {
	args := m.Called(ctx, ids)

	return args.Get(0).(int64), args.Error(1)
}

func (m *MockDeliveryRepository) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.NotificationDelivery, error) {
	args := m.Called(ctx, userID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*entity.NotificationDelivery), args.Error(1)
}
