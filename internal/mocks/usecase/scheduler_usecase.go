package usecase

import (
	"context"
	"testing"

	"quotecast/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockSchedulerUsecase is a mock implementation of
// usecase.SchedulerUsecase.
type MockSchedulerUsecase struct {
	mock.Mock
}

// NewMockSchedulerUsecase creates the mock and asserts its expectations on
// test cleanup.
func NewMockSchedulerUsecase(t *testing.T) *MockSchedulerUsecase {
	m := &MockSchedulerUsecase{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

// MockSchedulerUsecaseExpecter records expectations for
// MockSchedulerUsecase.
type MockSchedulerUsecaseExpecter struct {
	mock *mock.Mock
}

// EXPECT returns the expectation recorder.
func (m *MockSchedulerUsecase) EXPECT() *MockSchedulerUsecaseExpecter {
	return &MockSchedulerUsecaseExpecter{mock: &m.Mock}
}

func (e *MockSchedulerUsecaseExpecter) ScheduleForUser(ctx any, userID any) *mock.Call {
	return e.mock.On("ScheduleForUser", ctx, userID)
}

func (e *MockSchedulerUsecaseExpecter) ScheduleAll(ctx any) *mock.Call {
	return e.mock.On("ScheduleAll", ctx)
}

func (m *MockSchedulerUsecase) ScheduleForUser(ctx context.Context, userID uuid.UUID) (int, error) {
	args := m.Called(ctx, userID)

	return args.Int(0), args.Error(1)
}

func (m *MockSchedulerUsecase) ScheduleAll(ctx context.Context) (*usecase.ScheduleReport, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*usecase.ScheduleReport), args.Error(1)
}
