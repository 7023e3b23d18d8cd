package repository

import (
	"context"
	"testing"

	"quotecast/internal/domain/entity"
	"quotecast/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockContentRepository is a mock implementation of
// repository.ContentRepository.
type MockContentRepository struct {
	mock.Mock
}

// NewMockContentRepository creates the mock and asserts its expectations
// on test cleanup.
func NewMockContentRepository(t *testing.T) *MockContentRepository {
	m := &MockContentRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

// MockContentRepositoryExpecter records expectations for
// MockContentRepository.
type MockContentRepositoryExpecter struct {
	mock *mock.Mock
}

// EXPECT returns the expectation recorder.
func (m *MockContentRepository) EXPECT() *MockContentRepositoryExpecter {
	return &MockContentRepositoryExpecter{mock: &m.Mock}
}

func (e *MockContentRepositoryExpecter) FindRandomQuote(ctx any, filter any) *mock.Call {
	return e.mock.On("FindRandomQuote", ctx, filter)
}

func (e *MockContentRepositoryExpecter) FindRandomArticle(ctx any, categoryID any) *mock.Call {
	return e.mock.On("FindRandomArticle", ctx, categoryID)
}

func (m *MockContentRepository) FindRandomQuote(ctx context.Context, filter repository.QuoteFilter) (*entity.Quote, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.Quote), args.Error(1)
}

func (m *MockContentRepository) FindRandomArticle(ctx context.Context, categoryID *uuid.UUID) (*entity.Article, error) {
	args := m.Called(ctx, categoryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.Article), args.Error(1)
}
