package repository

import (
	"context"
	"testing"

	"quotecast/internal/domain/entity"

	"github.com/stretchr/testify/mock"
)

// MockHistoryRepository is a mock implementation of
// repository.HistoryRepository.
type MockHistoryRepository struct {
	mock.Mock
}

// NewMockHistoryRepository creates the mock and asserts its expectations
// on test cleanup.
func NewMockHistoryRepository(t *testing.T) *MockHistoryRepository {
	m := &MockHistoryRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

// MockHistoryRepositoryExpecter records expectations for
// MockHistoryRepository.
type MockHistoryRepositoryExpecter struct {
	mock *mock.Mock
}

// EXPECT returns the expectation recorder.
func (m *MockHistoryRepository) EXPECT() *MockHistoryRepositoryExpecter {
	return &MockHistoryRepositoryExpecter{mock: &m.Mock}
}

func (e *MockHistoryRepositoryExpecter) RecordQuoteSent(ctx any, record any) *mock.Call {
	return e.mock.On("RecordQuoteSent", ctx, record)
}

func (m *MockHistoryRepository) RecordQuoteSent(ctx context.Context, record *entity.QuoteSentRecord) error {
	return m.Called(ctx, record).Error(0)
}
