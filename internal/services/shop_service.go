package services

import (
	"context"
	"errors"

	apperrors "github.com/senya/senya/internal/errors"
	"github.com/senya/senya/internal/logger"
	"github.com/senya/senya/internal/models"
	"github.com/senya/senya/internal/repository"
)

// ShopService sells heart refills for rubies.
type ShopService struct {
	shop      repository.ShopRepository
	profiles  repository.ProfileRepository
	heartsCap int
}

func NewShopService(shop repository.ShopRepository, profiles repository.ProfileRepository, heartsCap int) *ShopService {
	return &ShopService{shop: shop, profiles: profiles, heartsCap: heartsCap}
}

// ListHeartPackages returns the catalog of purchasable refills.
func (s *ShopService) ListHeartPackages(ctx context.Context) ([]models.HeartPackage, error) {
	packages, err := s.shop.ListHeartPackages(ctx)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return packages, nil
}

// PurchaseHearts trades rubies for the package's hearts, capped at the heart
// ceiling. Hearts past the cap are forfeited.
func (s *ShopService) PurchaseHearts(ctx context.Context, userID, packageID int64) (*models.UserProfile, error) {
	log := logger.FromContext(ctx).WithPrefix("shop_service")

	pkg, err := s.shop.GetHeartPackage(ctx, packageID)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	if pkg == nil {
		return nil, apperrors.NewNotFoundError("heart package", packageID)
	}

	profile, err := s.profiles.PurchaseHearts(ctx, userID, *pkg, s.heartsCap)
	if errors.Is(err, repository.ErrInsufficientRubies) {
		current, perr := s.profiles.Get(ctx, userID)
		if perr != nil || current == nil {
			return nil, apperrors.NewInsufficientRubiesError(0, 0, pkg.RubyCost)
		}
		return nil, apperrors.NewInsufficientRubiesError(current.Hearts, current.Rubies, pkg.RubyCost)
	}
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	log.Info("hearts purchased: user_id=%d package=%q hearts=%d", userID, pkg.Name, profile.Hearts)
	return profile, nil
}
