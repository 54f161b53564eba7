package services

import (
	"context"
	"strings"

	apperrors "github.com/senya/senya/internal/errors"
	"github.com/senya/senya/internal/logger"
	"github.com/senya/senya/internal/models"
	"github.com/senya/senya/internal/repository"
)

// CatalogService serves the learner-facing unit/lesson/sign views and the
// admin content operations. Archived content disappears from learner views
// but stays addressable for administration.
type CatalogService struct {
	catalog  repository.CatalogRepository
	progress repository.ProgressRepository
}

func NewCatalogService(catalog repository.CatalogRepository, progress repository.ProgressRepository) *CatalogService {
	return &CatalogService{catalog: catalog, progress: progress}
}

// ListUnitsForUser returns the non-archived units with their lessons and the
// caller's unlock state. A unit unlocks once the previous unit's lessons are
// all completed; the first unit is always unlocked.
func (s *CatalogService) ListUnitsForUser(ctx context.Context, userID int64) ([]models.UnitWithLessons, error) {
	units, err := s.catalog.ListUnits(ctx, false)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	rows, err := s.progress.ListByUser(ctx, userID)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	completed := make(map[int64]bool, len(rows))
	for _, row := range rows {
		if row.Completed {
			completed[row.LessonID] = true
		}
	}

	result := make([]models.UnitWithLessons, 0, len(units))
	previousDone := true
	for _, unit := range units {
		lessons, err := s.catalog.ListLessonsByUnit(ctx, unit.ID, false)
		if err != nil {
			return nil, apperrors.NewInternalError(err)
		}

		unitDone := len(lessons) > 0
		for _, lesson := range lessons {
			if !completed[lesson.ID] {
				unitDone = false
				break
			}
		}
		switch {
		case unitDone:
			unit.Status = models.UnitCompleted
		case previousDone:
			unit.Status = models.UnitUnlocked
		default:
			unit.Status = models.UnitLocked
		}
		previousDone = unitDone

		result = append(result, models.UnitWithLessons{Unit: unit, Lessons: lessons})
	}
	return result, nil
}

// ListUnits returns units for administration, archived included on request.
func (s *CatalogService) ListUnits(ctx context.Context, includeArchived bool) ([]models.Unit, error) {
	units, err := s.catalog.ListUnits(ctx, includeArchived)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return units, nil
}

// GetLesson returns the lesson with its ordered sign sequence.
func (s *CatalogService) GetLesson(ctx context.Context, id int64, includeArchived bool) (*models.Lesson, error) {
	lesson, err := s.catalog.GetLesson(ctx, id, includeArchived)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	if lesson == nil {
		return nil, apperrors.NewNotFoundError("lesson", id)
	}
	return lesson, nil
}

func (s *CatalogService) CreateUnit(ctx context.Context, unit models.Unit) (*models.Unit, error) {
	if strings.TrimSpace(unit.Title) == "" {
		return nil, apperrors.NewValidationError("title", "cannot be empty")
	}

	id, err := s.catalog.CreateUnit(ctx, unit)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	logger.FromContext(ctx).WithPrefix("catalog_service").Info("unit created: id=%d", id)
	return s.catalog.GetUnit(ctx, id, true)
}

func (s *CatalogService) UpdateUnit(ctx context.Context, unit models.Unit) error {
	if strings.TrimSpace(unit.Title) == "" {
		return apperrors.NewValidationError("title", "cannot be empty")
	}
	existing, err := s.catalog.GetUnit(ctx, unit.ID, true)
	if err != nil {
		return apperrors.NewInternalError(err)
	}
	if existing == nil {
		return apperrors.NewNotFoundError("unit", unit.ID)
	}
	if err := s.catalog.UpdateUnit(ctx, unit); err != nil {
		return apperrors.NewInternalError(err)
	}
	return nil
}

func (s *CatalogService) ArchiveUnit(ctx context.Context, id int64) error {
	existing, err := s.catalog.GetUnit(ctx, id, true)
	if err != nil {
		return apperrors.NewInternalError(err)
	}
	if existing == nil {
		return apperrors.NewNotFoundError("unit", id)
	}
	if err := s.catalog.ArchiveUnit(ctx, id); err != nil {
		return apperrors.NewInternalError(err)
	}
	logger.FromContext(ctx).WithPrefix("catalog_service").Info("unit archived: id=%d", id)
	return nil
}

func (s *CatalogService) CreateLesson(ctx context.Context, lesson models.Lesson) (*models.Lesson, error) {
	if strings.TrimSpace(lesson.Title) == "" {
		return nil, apperrors.NewValidationError("title", "cannot be empty")
	}
	if lesson.RubiesReward < 0 {
		return nil, apperrors.NewValidationError("rubies_reward", "cannot be negative")
	}
	unit, err := s.catalog.GetUnit(ctx, lesson.UnitID, true)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	if unit == nil {
		return nil, apperrors.NewNotFoundError("unit", lesson.UnitID)
	}

	id, err := s.catalog.CreateLesson(ctx, lesson)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	logger.FromContext(ctx).WithPrefix("catalog_service").Info("lesson created: id=%d unit_id=%d", id, lesson.UnitID)
	return s.catalog.GetLesson(ctx, id, true)
}

func (s *CatalogService) UpdateLesson(ctx context.Context, lesson models.Lesson) error {
	if strings.TrimSpace(lesson.Title) == "" {
		return apperrors.NewValidationError("title", "cannot be empty")
	}
	if lesson.RubiesReward < 0 {
		return apperrors.NewValidationError("rubies_reward", "cannot be negative")
	}
	existing, err := s.catalog.GetLesson(ctx, lesson.ID, true)
	if err != nil {
		return apperrors.NewInternalError(err)
	}
	if existing == nil {
		return apperrors.NewNotFoundError("lesson", lesson.ID)
	}
	if err := s.catalog.UpdateLesson(ctx, lesson); err != nil {
		return apperrors.NewInternalError(err)
	}
	return nil
}

func (s *CatalogService) ArchiveLesson(ctx context.Context, id int64) error {
	existing, err := s.catalog.GetLesson(ctx, id, true)
	if err != nil {
		return apperrors.NewInternalError(err)
	}
	if existing == nil {
		return apperrors.NewNotFoundError("lesson", id)
	}
	if err := s.catalog.ArchiveLesson(ctx, id); err != nil {
		return apperrors.NewInternalError(err)
	}
	logger.FromContext(ctx).WithPrefix("catalog_service").Info("lesson archived: id=%d", id)
	return nil
}

func (s *CatalogService) CreateSign(ctx context.Context, sign models.Sign) (*models.Sign, error) {
	if strings.TrimSpace(sign.Text) == "" {
		return nil, apperrors.NewValidationError("text", "cannot be empty")
	}
	switch sign.DifficultyLevel {
	case models.DifficultyBeginner, models.DifficultyIntermediate, models.DifficultyAdvanced:
	case "":
		sign.DifficultyLevel = models.DifficultyBeginner
	default:
		return nil, apperrors.NewValidationError("difficulty_level", "must be beginner, intermediate or advanced")
	}
	lesson, err := s.catalog.GetLesson(ctx, sign.LessonID, true)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	if lesson == nil {
		return nil, apperrors.NewNotFoundError("lesson", sign.LessonID)
	}

	id, err := s.catalog.CreateSign(ctx, sign)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return s.catalog.GetSign(ctx, id)
}

func (s *CatalogService) ArchiveSign(ctx context.Context, id int64) error {
	existing, err := s.catalog.GetSign(ctx, id)
	if err != nil {
		return apperrors.NewInternalError(err)
	}
	if existing == nil {
		return apperrors.NewNotFoundError("sign", id)
	}
	if err := s.catalog.ArchiveSign(ctx, id); err != nil {
		return apperrors.NewInternalError(err)
	}
	return nil
}
