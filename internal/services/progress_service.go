package services

import (
	"context"
	"errors"

	apperrors "github.com/senya/senya/internal/errors"
	"github.com/senya/senya/internal/logger"
	"github.com/senya/senya/internal/models"
	"github.com/senya/senya/internal/repository"
	"github.com/senya/senya/internal/verification"
)

// ProgressService advances per-lesson progress one judged attempt at a time.
// The classifier is consulted while no locks or transactions are held; only
// the resulting mutation is committed, atomically with its economy delta.
type ProgressService struct {
	progress  repository.ProgressRepository
	catalog   repository.CatalogRepository
	profiles  repository.ProfileRepository
	pipeline  *verification.Pipeline
	threshold float64
	heartsCap int
}

func NewProgressService(
	progress repository.ProgressRepository,
	catalog repository.CatalogRepository,
	profiles repository.ProfileRepository,
	pipeline *verification.Pipeline,
	threshold float64,
	heartsCap int,
) *ProgressService {
	return &ProgressService{
		progress:  progress,
		catalog:   catalog,
		profiles:  profiles,
		pipeline:  pipeline,
		threshold: threshold,
		heartsCap: heartsCap,
	}
}

// VerifySign judges an image against a single sign without touching any
// persisted state. Used by the free-form recognition endpoint.
func (s *ProgressService) VerifySign(ctx context.Context, signID int64, image []byte) (*models.VerificationResult, error) {
	sign, err := s.catalog.GetSign(ctx, signID)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	if sign == nil {
		return nil, apperrors.NewNotFoundError("sign", signID)
	}

	result, err := s.pipeline.Verify(ctx, image, sign.Text)
	if err != nil {
		return nil, err
	}
	// The raw label match and confidence are reported as-is; the acceptance
	// threshold only gates lesson advancement.
	return &result, nil
}

// Advance runs one attempt at the lesson's current question. A pass moves the
// cursor forward and, on the final question, completes the lesson and awards
// its ruby reward. A fail costs one heart and leaves the cursor in place.
// An exhausted heart budget rejects the attempt before the classifier is
// consulted.
func (s *ProgressService) Advance(ctx context.Context, userID, lessonID int64, image []byte) (*models.ProgressResult, error) {
	log := logger.FromContext(ctx).WithPrefix("progress_service")

	lesson, err := s.catalog.GetLesson(ctx, lessonID, false)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	if lesson == nil {
		return nil, apperrors.NewNotFoundError("lesson", lessonID)
	}

	row, err := s.progress.Get(ctx, userID, lessonID)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	if row == nil {
		row, err = s.progress.Create(ctx, userID, lessonID)
		if err != nil {
			return nil, apperrors.NewInternalError(err)
		}
	}

	profile, err := s.profiles.Get(ctx, userID)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	if profile == nil {
		return nil, apperrors.NewNotFoundError("profile", userID)
	}

	// A completed lesson never regresses; repeat attempts are a no-op.
	if row.Completed {
		return &models.ProgressResult{
			Progress:        row.Progress,
			Completed:       true,
			HeartsRemaining: profile.Hearts,
		}, nil
	}

	total := len(lesson.Signs)

	// A lesson with no questions left to ask completes on first contact.
	if total == 0 {
		m := models.AdvanceMutation{
			UserID:           userID,
			LessonID:         lessonID,
			ExpectedQuestion: row.LastQuestion,
			NewLastQuestion:  row.LastQuestion,
			NewProgress:      100,
			Completed:        true,
			RubiesDelta:      lesson.RubiesReward,
			HeartsCap:        s.heartsCap,
		}
		if err := s.applyMutation(ctx, m); err != nil {
			return nil, err
		}
		return &models.ProgressResult{
			IsCorrect:       true,
			Progress:        100,
			Completed:       true,
			HeartsRemaining: profile.Hearts,
			RubiesEarned:    lesson.RubiesReward,
		}, nil
	}

	if row.LastQuestion >= total {
		log.Error("progress cursor out of range: user_id=%d lesson_id=%d last_question=%d signs=%d",
			userID, lessonID, row.LastQuestion, total)
		return nil, apperrors.NewInconsistentStateError("progress cursor points past the lesson's sign list")
	}

	if profile.Hearts == 0 {
		return nil, apperrors.NewNoHeartsError(profile.Hearts, profile.Rubies)
	}

	expected := lesson.Signs[row.LastQuestion]
	verdict, err := s.pipeline.Verify(ctx, image, expected.Text)
	if err != nil {
		return nil, err
	}
	// Confidence exactly at the threshold does not pass.
	pass := verdict.IsCorrect && verdict.Confidence > s.threshold

	m := models.AdvanceMutation{
		UserID:           userID,
		LessonID:         lessonID,
		ExpectedQuestion: row.LastQuestion,
		NewLastQuestion:  row.LastQuestion,
		NewProgress:      row.Progress,
		HeartsCap:        s.heartsCap,
	}
	if pass {
		m.NewLastQuestion = row.LastQuestion + 1
		m.NewProgress = m.NewLastQuestion * 100 / total
		m.Completed = m.NewLastQuestion == total
		if m.Completed {
			m.RubiesDelta = lesson.RubiesReward
		}
	} else {
		m.SpendHeart = true
	}

	if err := s.applyMutation(ctx, m); err != nil {
		return nil, err
	}

	// Re-read so the response reflects the committed economy state.
	profile, err = s.profiles.Get(ctx, userID)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	result := &models.ProgressResult{
		IsCorrect:       pass,
		Confidence:      verdict.Confidence,
		DetectedLabel:   verdict.DetectedLabel,
		ExpectedLabel:   verdict.ExpectedLabel,
		Progress:        m.NewProgress,
		Completed:       m.Completed,
		HeartsRemaining: profile.Hearts,
		RubiesEarned:    m.RubiesDelta,
	}
	log.Debug("advance: user_id=%d lesson_id=%d pass=%t progress=%d completed=%t",
		userID, lessonID, pass, result.Progress, result.Completed)
	return result, nil
}

func (s *ProgressService) applyMutation(ctx context.Context, m models.AdvanceMutation) error {
	err := s.progress.ApplyAdvance(ctx, m)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repository.ErrStaleProgress):
		return apperrors.NewConflictError("a concurrent attempt already advanced this lesson")
	case errors.Is(err, repository.ErrNoHearts):
		profile, perr := s.profiles.Get(ctx, m.UserID)
		if perr != nil || profile == nil {
			return apperrors.NewNoHeartsError(0, 0)
		}
		return apperrors.NewNoHeartsError(profile.Hearts, profile.Rubies)
	default:
		return apperrors.NewInternalError(err)
	}
}

// ListProgress returns every progress row the account has.
func (s *ProgressService) ListProgress(ctx context.Context, userID int64) ([]models.UserProgress, error) {
	list, err := s.progress.ListByUser(ctx, userID)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return list, nil
}

// GetLessonProgress returns the account's state for one lesson; a missing row
// reads as not started.
func (s *ProgressService) GetLessonProgress(ctx context.Context, userID, lessonID int64) (*models.UserProgress, error) {
	lesson, err := s.catalog.GetLesson(ctx, lessonID, false)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	if lesson == nil {
		return nil, apperrors.NewNotFoundError("lesson", lessonID)
	}

	row, err := s.progress.Get(ctx, userID, lessonID)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	if row == nil {
		row = &models.UserProgress{UserID: userID, LessonID: lessonID}
	}
	return row, nil
}
