package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/senya/senya/internal/logger"
	"github.com/senya/senya/internal/models"
	"github.com/senya/senya/internal/repository"
)

type progressRepository struct {
	db *sql.DB
}

// NewProgressRepository creates a new ProgressRepository implementation
func NewProgressRepository(db *sql.DB) repository.ProgressRepository {
	return &progressRepository{db: db}
}

func (r *progressRepository) Get(ctx context.Context, userID, lessonID int64) (*models.UserProgress, error) {
	log := logger.FromContext(ctx).WithPrefix("progress_repo")
	log.Debug("getting progress: user_id=%d lesson_id=%d", userID, lessonID)

	var p models.UserProgress
	err := r.db.QueryRowContext(ctx, `
SELECT user_id, lesson_id, progress, completed, last_question, updated_at
FROM user_progress
WHERE user_id = ? AND lesson_id = ?
`, userID, lessonID).Scan(&p.UserID, &p.LessonID, &p.Progress, &p.Completed, &p.LastQuestion, &p.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get progress: %v", err)
		return nil, err
	}
	return &p, nil
}

func (r *progressRepository) Create(ctx context.Context, userID, lessonID int64) (*models.UserProgress, error) {
	log := logger.FromContext(ctx).WithPrefix("progress_repo")
	log.Debug("creating progress row: user_id=%d lesson_id=%d", userID, lessonID)

	var p models.UserProgress
	err := r.db.QueryRowContext(ctx, `
INSERT INTO user_progress (user_id, lesson_id, progress, completed, last_question)
VALUES (?, ?, 0, 0, 0)
RETURNING user_id, lesson_id, progress, completed, last_question, updated_at
`, userID, lessonID).Scan(&p.UserID, &p.LessonID, &p.Progress, &p.Completed, &p.LastQuestion, &p.UpdatedAt)
	if err != nil {
		log.Error("failed to create progress row: %v", err)
		return nil, err
	}
	return &p, nil
}

func (r *progressRepository) ApplyAdvance(ctx context.Context, m models.AdvanceMutation) error {
	log := logger.FromContext(ctx).WithPrefix("progress_repo")
	log.Debug("applying advance: user_id=%d lesson_id=%d expected=%d new=%d",
		m.UserID, m.LessonID, m.ExpectedQuestion, m.NewLastQuestion)

	return tx(ctx, r.db, func(tx *sql.Tx) error {
		// Optimistic guard: the row must still be where the caller read it.
		// A lost race means another attempt already advanced or completed it.
		res, err := tx.ExecContext(ctx, `
UPDATE user_progress
SET progress = ?, completed = ?, last_question = ?, updated_at = CURRENT_TIMESTAMP
WHERE user_id = ? AND lesson_id = ? AND last_question = ? AND completed = 0
`, m.NewProgress, m.Completed, m.NewLastQuestion, m.UserID, m.LessonID, m.ExpectedQuestion)
		if err != nil {
			return err
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if affected == 0 {
			return repository.ErrStaleProgress
		}

		if m.SpendHeart {
			res, err := tx.ExecContext(ctx, `
UPDATE user_profiles
SET hearts = hearts - 1, updated_at = CURRENT_TIMESTAMP
WHERE user_id = ? AND hearts > 0
`, m.UserID)
			if err != nil {
				return err
			}
			affected, err := res.RowsAffected()
			if err != nil {
				return err
			}
			if affected == 0 {
				return repository.ErrNoHearts
			}
		}

		if m.RubiesDelta > 0 {
			_, err := tx.ExecContext(ctx, `
UPDATE user_profiles
SET rubies = rubies + ?, updated_at = CURRENT_TIMESTAMP
WHERE user_id = ?
`, m.RubiesDelta, m.UserID)
			if err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *progressRepository) ListByUser(ctx context.Context, userID int64) ([]models.UserProgress, error) {
	log := logger.FromContext(ctx).WithPrefix("progress_repo")
	log.Debug("listing progress: user_id=%d", userID)

	rows, err := r.db.QueryContext(ctx, `
SELECT user_id, lesson_id, progress, completed, last_question, updated_at
FROM user_progress
WHERE user_id = ?
ORDER BY lesson_id ASC
`, userID)
	if err != nil {
		log.Error("failed to list progress: %v", err)
		return nil, err
	}
	defer rows.Close()

	var list []models.UserProgress
	for rows.Next() {
		var p models.UserProgress
		if err := rows.Scan(&p.UserID, &p.LessonID, &p.Progress, &p.Completed, &p.LastQuestion, &p.UpdatedAt); err != nil {
			return nil, err
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

func (r *progressRepository) CountCompletedByUser(ctx context.Context, userID int64) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `
SELECT COUNT(*) FROM user_progress WHERE user_id = ? AND completed = 1
`, userID).Scan(&count)
	return count, err
}

func (r *progressRepository) OverallProgress(ctx context.Context, userID int64) (int, error) {
	log := logger.FromContext(ctx).WithPrefix("progress_repo")

	var total, completed int
	err := r.db.QueryRowContext(ctx, `
SELECT
    (SELECT COUNT(*) FROM lessons WHERE archived = 0),
    (SELECT COUNT(*)
     FROM user_progress up
     JOIN lessons l ON l.id = up.lesson_id
     WHERE up.user_id = ? AND up.completed = 1 AND l.archived = 0)
`, userID).Scan(&total, &completed)
	if err != nil {
		log.Error("failed to compute overall progress: %v", err)
		return 0, err
	}
	if total == 0 {
		return 0, nil
	}
	return completed * 100 / total, nil
}
