// Package usecase provides hand-maintained testify mocks for the
// application-level interfaces.
package usecase

import (
	"context"
	"testing"
	"time"

	"quotecast/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockContentUsecase is a mock implementation of usecase.ContentUsecase.
type MockContentUsecase struct {
	mock.Mock
}

// NewMockContentUsecase creates the mock and asserts its expectations on
// test cleanup.
func NewMockContentUsecase(t *testing.T) *MockContentUsecase {
	m := &MockContentUsecase{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

// MockContentUsecaseExpecter records expectations for MockContentUsecase.
type MockContentUsecaseExpecter struct {
	mock *mock.Mock
}

// EXPECT returns the expectation recorder.
func (m *MockContentUsecase) EXPECT() *MockContentUsecaseExpecter {
	return &MockContentUsecaseExpecter{mock: &m.Mock}
}

func (e *MockContentUsecaseExpecter) SelectQuote(ctx, userID, preferredCategories any) *mock.Call {
	return e.mock.On("SelectQuote", ctx, userID, preferredCategories)
}

func (e *MockContentUsecaseExpecter) SelectArticle(ctx any, quote any) *mock.Call {
	return e.mock.On("SelectArticle", ctx, quote)
}

func (e *MockContentUsecaseExpecter) RecordSent(ctx, userID, quoteID, sentAt any) *mock.Call {
	return e.mock.On("RecordSent", ctx, userID, quoteID, sentAt)
}

func (m *MockContentUsecase) SelectQuote(ctx context.Context, userID uuid.UUID, preferredCategories []uuid.UUID) (*entity.Quote, error) {
	args := m.Called(ctx, userID, preferredCategories)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.Quote), args.Error(1)
}

func (m *MockContentUsecase) SelectArticle(ctx context.Context, quote *entity.Quote) (*entity.Article, error) {
	args := m.Called(ctx, quote)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.Article), args.Error(1)
}

func (m *MockContentUsecase) RecordSent(ctx context.Context, userID, quoteID uuid.UUID, sentAt time.Time) error {
	return m.Called(ctx, userID, quoteID, sentAt).Error(0)
}
