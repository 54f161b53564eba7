package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/senya/senya/internal/models"
)

// MockAnalyticsRepository is a mock implementation of repository.AnalyticsRepository
type MockAnalyticsRepository struct {
	mock.Mock
}

func (m *MockAnalyticsRepository) Overview(ctx context.Context, activeSince time.Time) (*models.OverviewReport, error) {
	args := m.Called(ctx, activeSince)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.OverviewReport), args.Error(1)
}

func (m *MockAnalyticsRepository) SignupEvents(ctx context.Context, since time.Time) ([]models.AccountEvent, error) {
	args := m.Called(ctx, since)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.AccountEvent), args.Error(1)
}

func (m *MockAnalyticsRepository) LoginEvents(ctx context.Context, since time.Time) ([]models.AccountEvent, error) {
	args := m.Called(ctx, since)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.AccountEvent), args.Error(1)
}

func (m *MockAnalyticsRepository) TopStreaks(ctx context.Context, limit int) ([]models.UserStreak, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.UserStreak), args.Error(1)
}

func (m *MockAnalyticsRepository) TopCompletions(ctx context.Context, limit int) ([]models.UserCompletion, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.UserCompletion), args.Error(1)
}

func (m *MockAnalyticsRepository) AccountAndCompletionCounts(ctx context.Context) (int, int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Int(1), args.Error(2)
}

func (m *MockAnalyticsRepository) LessonStats(ctx context.Context) ([]models.LessonStat, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.LessonStat), args.Error(1)
}

func (m *MockAnalyticsRepository) SignStats(ctx context.Context) ([]models.SignStat, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.SignStat), args.Error(1)
}

func (m *MockAnalyticsRepository) MostFailedLessons(ctx context.Context, limit int) ([]models.FailedLessonStat, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.FailedLessonStat), args.Error(1)
}
