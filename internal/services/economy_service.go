package services

import (
	"context"

	apperrors "github.com/senya/senya/internal/errors"
	"github.com/senya/senya/internal/models"
	"github.com/senya/senya/internal/repository"
)

// EconomyService exposes the per-account economy state. Mutations flow
// through guarded repository updates; this layer only maps their outcomes
// onto the error taxonomy.
type EconomyService struct {
	profiles repository.ProfileRepository
	progress repository.ProgressRepository
}

func NewEconomyService(profiles repository.ProfileRepository, progress repository.ProgressRepository) *EconomyService {
	return &EconomyService{profiles: profiles, progress: progress}
}

// GetProfile returns the account's hearts, rubies and streak.
func (s *EconomyService) GetProfile(ctx context.Context, userID int64) (*models.UserProfile, error) {
	profile, err := s.profiles.Get(ctx, userID)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	if profile == nil {
		return nil, apperrors.NewNotFoundError("profile", userID)
	}
	return profile, nil
}

// UpdateProfileURL sets the account's avatar image.
func (s *EconomyService) UpdateProfileURL(ctx context.Context, userID int64, url string) error {
	if err := s.profiles.UpdateProfileURL(ctx, userID, url); err != nil {
		return apperrors.NewInternalError(err)
	}
	return nil
}

// RefreshCertificate grants the certificate once every lesson is completed.
// It never revokes one already granted.
func (s *EconomyService) RefreshCertificate(ctx context.Context, userID int64) (bool, error) {
	profile, err := s.GetProfile(ctx, userID)
	if err != nil {
		return false, err
	}
	if profile.Certificate {
		return true, nil
	}

	overall, err := s.progress.OverallProgress(ctx, userID)
	if err != nil {
		return false, apperrors.NewInternalError(err)
	}
	if overall < 100 {
		return false, nil
	}
	if err := s.profiles.SetCertificate(ctx, userID, true); err != nil {
		return false, apperrors.NewInternalError(err)
	}
	return true, nil
}
