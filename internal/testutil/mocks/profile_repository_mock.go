package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/senya/senya/internal/models"
)

// MockProfileRepository is a mock implementation of repository.ProfileRepository
type MockProfileRepository struct {
	mock.Mock
}

func (m *MockProfileRepository) Get(ctx context.Context, userID int64) (*models.UserProfile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.UserProfile), args.Error(1)
}

func (m *MockProfileRepository) SpendHeart(ctx context.Context, userID int64) (*models.UserProfile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.UserProfile), args.Error(1)
}

func (m *MockProfileRepository) AddRubies(ctx context.Context, userID int64, amount int) error {
	args := m.Called(ctx, userID, amount)
	return args.Error(0)
}

func (m *MockProfileRepository) PurchaseHearts(ctx context.Context, userID int64, pkg models.HeartPackage, cap int) (*models.UserProfile, error) {
	args := m.Called(ctx, userID, pkg, cap)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.UserProfile), args.Error(1)
}

func (m *MockProfileRepository) TouchStreak(ctx context.Context, userID int64, eventTime time.Time) (int, error) {
	args := m.Called(ctx, userID, eventTime)
	return args.Int(0), args.Error(1)
}

func (m *MockProfileRepository) RegenerateHearts(ctx context.Context, cap int) (int64, error) {
	args := m.Called(ctx, cap)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProfileRepository) UpdateProfileURL(ctx context.Context, userID int64, url string) error {
	args := m.Called(ctx, userID, url)
	return args.Error(0)
}

func (m *MockProfileRepository) SetCertificate(ctx context.Context, userID int64, granted bool) error {
	args := m.Called(ctx, userID, granted)
	return args.Error(0)
}
