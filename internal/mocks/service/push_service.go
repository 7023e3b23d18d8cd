// Package service provides hand-maintained testify mocks for the external
// capability interfaces.
package service

import (
	"context"
	"testing"

	"quotecast/internal/domain/service"

	"github.com/stretchr/testify/mock"
)

// MockPushService is a mock implementation of service.PushService.
type MockPushService struct {
	mock.Mock
}

// NewMockPushService creates the mock and asserts its expectations on test
// cleanup.
func NewMockPushService(t *testing.T) *MockPushService {
	m := &MockPushService{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

// MockPushServiceExpecter records expectations for MockPushService.
type MockPushServiceExpecter struct {
	mock *mock.Mock
}

// EXPECT returns the expectation recorder.
func (m *MockPushService) EXPECT() *MockPushServiceExpecter {
	return &MockPushServiceExpecter{mock: &m.Mock}
}

func (e *MockPushServiceExpecter) IsConfigured() *mock.Call {
	return e.mock.On("IsConfigured")
}

func (e *MockPushServiceExpecter) SendToTokens(ctx, tokens, title, body, data any) *mock.Call {
	return e.mock.On("SendToTokens", ctx, tokens, title, body, data)
}

func (e *MockPushServiceExpecter) ValidateToken(ctx any, token any) *mock.Call {
	return e.mock.On("ValidateToken", ctx, token)
}

func (m *MockPushService) IsConfigured() bool {
	return m.Called().Bool(0)
}

func (m *MockPushService) SendToTokens(ctx context.Context, tokens []string, title, body string, data map[string]string) (*service.PushReport, error) {
	args := m.Called(ctx, tokens, title, body, data)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*service.PushReport), args.Error(1)
}

func (m *MockPushService) ValidateToken(ctx context.Context, token string) (bool, error) {
	args := m.Called(ctx, token)

	return args.Bool(0), args.Error(1)
}
