package services

import (
	"context"
	"errors"

	apperrors "github.com/senya/senya/internal/errors"
	"github.com/senya/senya/internal/logger"
	"github.com/senya/senya/internal/models"
	"github.com/senya/senya/internal/repository"
)

// PracticeService gates practice levels behind overall lesson progress and
// records scored game runs.
type PracticeService struct {
	practice repository.PracticeRepository
	progress repository.ProgressRepository
	profiles repository.ProfileRepository
}

func NewPracticeService(practice repository.PracticeRepository, progress repository.ProgressRepository, profiles repository.ProfileRepository) *PracticeService {
	return &PracticeService{practice: practice, progress: progress, profiles: profiles}
}

// ListLevels returns every practice level with its games and the caller's
// unlock state.
func (s *PracticeService) ListLevels(ctx context.Context, userID int64) ([]models.PracticeLevelWithGames, error) {
	levels, err := s.practice.ListLevels(ctx)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	overall, err := s.progress.OverallProgress(ctx, userID)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	for i := range levels {
		levels[i].Progress = overall
		levels[i].Unlocked = overall >= levels[i].RequiredProgress
	}
	return levels, nil
}

// SubmitScore records a game run. The level must be unlocked for the caller;
// the high score only ever increases and completion latches on. Hearts lost
// during the run are spent best-effort: an empty budget stops the spend
// without failing the submission.
func (s *PracticeService) SubmitScore(ctx context.Context, userID, levelID int64, gameIdentifier string, score, heartsLost int) (*models.UserPracticeProgress, error) {
	log := logger.FromContext(ctx).WithPrefix("practice_service")

	if score < 0 {
		return nil, apperrors.NewValidationError("score", "cannot be negative")
	}
	if heartsLost < 0 {
		return nil, apperrors.NewValidationError("hearts_lost", "cannot be negative")
	}

	level, err := s.practice.GetLevel(ctx, levelID)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	if level == nil {
		return nil, apperrors.NewNotFoundError("practice level", levelID)
	}

	overall, err := s.progress.OverallProgress(ctx, userID)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	if overall < level.RequiredProgress {
		return nil, apperrors.NewForbiddenError("practice level is locked")
	}

	game, err := s.practice.GetGame(ctx, levelID, gameIdentifier)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	if game == nil {
		return nil, apperrors.NewNotFoundError("practice game", gameIdentifier)
	}

	progress := score
	if progress > 100 {
		progress = 100
	}
	updated, err := s.practice.UpsertScore(ctx, models.UserPracticeProgress{
		UserID:    userID,
		LevelID:   levelID,
		GameID:    game.ID,
		HighScore: score,
		Progress:  progress,
		Completed: score >= 100,
	})
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	for i := 0; i < heartsLost; i++ {
		if _, err := s.profiles.SpendHeart(ctx, userID); err != nil {
			if !errors.Is(err, repository.ErrNoHearts) {
				log.Warn("heart spend after practice run failed: %v", err)
			}
			break
		}
	}

	log.Debug("practice score recorded: user_id=%d level_id=%d game=%q score=%d hearts_lost=%d",
		userID, levelID, gameIdentifier, score, heartsLost)
	return updated, nil
}

// GameSigns returns a random selection of signs at the given difficulty for
// practice rounds.
func (s *PracticeService) GameSigns(ctx context.Context, difficulty string, limit int) ([]models.Sign, error) {
	switch difficulty {
	case models.DifficultyBeginner, models.DifficultyIntermediate, models.DifficultyAdvanced:
	default:
		return nil, apperrors.NewValidationError("difficulty", "must be beginner, intermediate or advanced")
	}
	if limit <= 0 || limit > 50 {
		limit = 10
	}

	signs, err := s.practice.ListSignsByDifficulty(ctx, difficulty, limit)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return signs, nil
}
