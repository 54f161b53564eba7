package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/senya/senya/internal/models"
)

// MockShopRepository is a mock implementation of repository.ShopRepository
type MockShopRepository struct {
	mock.Mock
}

func (m *MockShopRepository) ListHeartPackages(ctx context.Context) ([]models.HeartPackage, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.HeartPackage), args.Error(1)
}

func (m *MockShopRepository) GetHeartPackage(ctx context.Context, id int64) (*models.HeartPackage, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.HeartPackage), args.Error(1)
}
