package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/senya/senya/internal/models"
)

// MockProgressRepository is a mock implementation of repository.ProgressRepository
type MockProgressRepository struct {
	mock.Mock
}

func (m *MockProgressRepository) Get(ctx context.Context, userID, lessonID int64) (*models.UserProgress, error) {
	args := m.Called(ctx, userID, lessonID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.UserProgress), args.Error(1)
}

func (m *MockProgressRepository) Create(ctx context.Context, userID, lessonID int64) (*models.UserProgress, error) {
	args := m.Called(ctx, userID, lessonID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.UserProgress), args.Error(1)
}

func (m *MockProgressRepository) ApplyAdvance(ctx context.Context, mutation models.AdvanceMutation) error {
	args := m.Called(ctx, mutation)
	return args.Error(0)
}

func (m *MockProgressRepository) ListByUser(ctx context.Context, userID int64) ([]models.UserProgress, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.UserProgress), args.Error(1)
}

func (m *MockProgressRepository) CountCompletedByUser(ctx context.Context, userID int64) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}

func (m *MockProgressRepository) OverallProgress(ctx context.Context, userID int64) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}
