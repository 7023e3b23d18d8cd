// Package repository provides hand-maintained testify mocks for the
// persistence interfaces.
package repository

import (
	"context"
	"testing"

	"quotecast/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockUserRepository is a mock implementation of repository.UserRepository.
type MockUserRepository struct {
	mock.Mock
}

// NewMockUserRepository creates the mock and asserts its expectations on
// test cleanup.
func NewMockUserRepository(t *testing.T) *MockUserRepository {
	m := &MockUserRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

// MockUserRepositoryExpecter records expectations for MockUserRepository.
type MockUserRepositoryExpecter struct {
	mock *mock.Mock
}

// EXPECT returns the expectation recorder.
func (m *MockUserRepository) EXPECT() *MockUserRepositoryExpecter {
	return &MockUserRepositoryExpecter{mock: &m.Mock}
}

func (e *MockUserRepositoryExpecter) FindUserByID(ctx any, id any) *mock.Call {
	return e.mock.On("FindUserByID", ctx, id)
}

func (e *MockUserRepositoryExpecter) FindPreferenceByUserID(ctx any, userID any) *mock.Call {
	return e.mock.On("FindPreferenceByUserID", ctx, userID)
}

func (e *MockUserRepositoryExpecter) UpsertPreference(ctx any, pref any) *mock.Call {
	return e.mock.On("UpsertPreference", ctx, pref)
}

func (e *MockUserRepositoryExpecter) ListEnabledUserIDs(ctx any) *mock.Call {
	return e.mock.On("ListEnabledUserIDs", ctx)
}

func (m *MockUserRepository) FindUserByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepository) FindPreferenceByUserID(ctx context.Context, userID uuid.UUID) (*entity.UserPreference, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.UserPreference), args.Error(1)
}

func (m *MockUserRepository) UpsertPreference(ctx context.Context, pref *entity.UserPreference) error {
	return m.Called(ctx, pref).Error(0)
}

func (m *MockUserRepository) ListEnabledUserIDs(ctx context.Context) ([]uuid.UUID, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]uuid.UUID), args.Error(1)
}
