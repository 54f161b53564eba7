package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apperrors "github.com/senya/senya/internal/errors"
	"github.com/senya/senya/internal/models"
	"github.com/senya/senya/internal/repository"
	"github.com/senya/senya/internal/services"
	"github.com/senya/senya/internal/testutil/mocks"
)

func TestPurchaseHearts_Success(t *testing.T) {
	shop := new(mocks.MockShopRepository)
	profiles := new(mocks.MockProfileRepository)
	svc := services.NewShopService(shop, profiles, 5)

	pkg := models.HeartPackage{ID: 2, Name: "Refill", HeartsAmount: 3, RubyCost: 25}
	shop.On("GetHeartPackage", mock.Anything, int64(2)).Return(&pkg, nil)
	profiles.On("PurchaseHearts", mock.Anything, int64(1), pkg, 5).
		Return(&models.UserProfile{UserID: 1, Hearts: 5, Rubies: 75}, nil)

	profile, err := svc.PurchaseHearts(context.Background(), 1, 2)
	require.NoError(t, err)
	assert.Equal(t, 5, profile.Hearts)
	assert.Equal(t, 75, profile.Rubies)
}

func TestPurchaseHearts_InsufficientRubies(t *testing.T) {
	shop := new(mocks.MockShopRepository)
	profiles := new(mocks.MockProfileRepository)
	svc := services.NewShopService(shop, profiles, 5)

	pkg := models.HeartPackage{ID: 2, Name: "Refill", HeartsAmount: 3, RubyCost: 25}
	shop.On("GetHeartPackage", mock.Anything, int64(2)).Return(&pkg, nil)
	profiles.On("PurchaseHearts", mock.Anything, int64(1), pkg, 5).
		Return(nil, repository.ErrInsufficientRubies)
	profiles.On("Get", mock.Anything, int64(1)).
		Return(&models.UserProfile{UserID: 1, Hearts: 2, Rubies: 10}, nil)

	_, err := svc.PurchaseHearts(context.Background(), 1, 2)
	require.Error(t, err)

	appErr, ok := err.(*apperrors.AppError)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrCodeInsufficientRubies, appErr.Code)
	assert.Equal(t, 409, appErr.Status)
	assert.Equal(t, 10, appErr.Details["rubies"])
	assert.Equal(t, 25, appErr.Details["cost"])
}

func TestPurchaseHearts_UnknownPackage(t *testing.T) {
	shop := new(mocks.MockShopRepository)
	profiles := new(mocks.MockProfileRepository)
	svc := services.NewShopService(shop, profiles, 5)

	shop.On("GetHeartPackage", mock.Anything, int64(99)).Return(nil, nil)

	_, err := svc.PurchaseHearts(context.Background(), 1, 99)
	require.Error(t, err)

	appErr, ok := err.(*apperrors.AppError)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrCodeNotFound, appErr.Code)
	profiles.AssertNotCalled(t, "PurchaseHearts", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestListHeartPackages(t *testing.T) {
	shop := new(mocks.MockShopRepository)
	svc := services.NewShopService(shop, new(mocks.MockProfileRepository), 5)

	shop.On("ListHeartPackages", mock.Anything).Return([]models.HeartPackage{
		{ID: 1, Name: "Single", HeartsAmount: 1, RubyCost: 10},
		{ID: 2, Name: "Refill", HeartsAmount: 3, RubyCost: 25},
	}, nil)

	packages, err := svc.ListHeartPackages(context.Background())
	require.NoError(t, err)
	require.Len(t, packages, 2)
	assert.Equal(t, "Single", packages[0].Name)
}
