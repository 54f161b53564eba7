package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/senya/senya/internal/models"
)

// MockPracticeRepository is a mock implementation of repository.PracticeRepository
type MockPracticeRepository struct {
	mock.Mock
}

func (m *MockPracticeRepository) ListLevels(ctx context.Context) ([]models.PracticeLevelWithGames, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.PracticeLevelWithGames), args.Error(1)
}

func (m *MockPracticeRepository) GetLevel(ctx context.Context, id int64) (*models.PracticeLevel, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PracticeLevel), args.Error(1)
}

func (m *MockPracticeRepository) GetGame(ctx context.Context, levelID int64, gameIdentifier string) (*models.PracticeGame, error) {
	args := m.Called(ctx, levelID, gameIdentifier)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PracticeGame), args.Error(1)
}

func (m *MockPracticeRepository) GetProgress(ctx context.Context, userID, levelID, gameID int64) (*models.UserPracticeProgress, error) {
	args := m.Called(ctx, userID, levelID, gameID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.UserPracticeProgress), args.Error(1)
}

func (m *MockPracticeRepository) UpsertScore(ctx context.Context, p models.UserPracticeProgress) (*models.UserPracticeProgress, error) {
	args := m.Called(ctx, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.UserPracticeProgress), args.Error(1)
}

func (m *MockPracticeRepository) ListSignsByDifficulty(ctx context.Context, difficulty string, limit int) ([]models.Sign, error) {
	args := m.Called(ctx, difficulty, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Sign), args.Error(1)
}
