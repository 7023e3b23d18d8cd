package service

import (
	"context"
	"testing"

	"quotecast/internal/domain/service"

	"github.com/stretchr/testify/mock"
)

// MockEventPublisher is a mock implementation of service.EventPublisher.
type MockEventPublisher struct {
	mock.Mock
}

// NewMockEventPublisher creates the mock and asserts its expectations on
// test cleanup.
func NewMockEventPublisher(t *testing.T) *MockEventPublisher {
	m := &MockEventPublisher{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

// MockEventPublisherExpecter records expectations for MockEventPublisher.
type MockEventPublisherExpecter struct {
	mock *mock.Mock
}

// EXPECT returns the expectation recorder.
func (m *MockEventPublisher) EXPECT() *MockEventPublisherExpecter {
	return &MockEventPublisherExpecter{mock: &m.Mock}
}

func (e *MockEventPublisherExpecter) PublishPreferenceEvent(ctx any, event any) *mock.Call {
	return e.mock.On("PublishPreferenceEvent", ctx, event)
}

func (e *MockEventPublisherExpecter) Close() *mock.Call {
	return e.mock.On("Close")
}

func (m *MockEventPublisher) PublishPreferenceEvent(ctx context.Context, event *service.PreferenceEvent) error {
	return m.Called(ctx, event).Error(0)
}

func (m *MockEventPublisher) Close() error {
	return m.Called().Error(0)
}
