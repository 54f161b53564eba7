package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Masterminds/squirrel"
	"github.com/senya/senya/internal/logger"
	"github.com/senya/senya/internal/models"
	"github.com/senya/senya/internal/repository"
)

type catalogRepository struct {
	db *sql.DB
}

// NewCatalogRepository creates a new CatalogRepository implementation
func NewCatalogRepository(db *sql.DB) repository.CatalogRepository {
	return &catalogRepository{db: db}
}

func (r *catalogRepository) ListUnits(ctx context.Context, includeArchived bool) ([]models.Unit, error) {
	log := logger.FromContext(ctx).WithPrefix("catalog_repo")
	log.Debug("listing units: include_archived=%v", includeArchived)

	q := sqlBuilder.
		Select("id", "title", "description", "order_index", "status", "archived", "created_at").
		From("units").
		OrderBy("order_index ASC", "id ASC")
	if !includeArchived {
		q = q.Where(squirrel.Eq{"archived": false})
	}
	query, args, err := q.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to list units: %v", err)
		return nil, err
	}
	defer rows.Close()

	var units []models.Unit
	for rows.Next() {
		var u models.Unit
		if err := rows.Scan(&u.ID, &u.Title, &u.Description, &u.OrderIndex, &u.Status, &u.Archived, &u.CreatedAt); err != nil {
			return nil, err
		}
		units = append(units, u)
	}
	return units, rows.Err()
}

func (r *catalogRepository) GetUnit(ctx context.Context, id int64, includeArchived bool) (*models.Unit, error) {
	log := logger.FromContext(ctx).WithPrefix("catalog_repo")
	log.Debug("getting unit: id=%d", id)

	q := sqlBuilder.
		Select("id", "title", "description", "order_index", "status", "archived", "created_at").
		From("units").
		Where(squirrel.Eq{"id": id})
	if !includeArchived {
		q = q.Where(squirrel.Eq{"archived": false})
	}
	query, args, err := q.ToSql()
	if err != nil {
		return nil, err
	}

	var u models.Unit
	err = r.db.QueryRowContext(ctx, query, args...).
		Scan(&u.ID, &u.Title, &u.Description, &u.OrderIndex, &u.Status, &u.Archived, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("unit not found: id=%d", id)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get unit: %v", err)
		return nil, err
	}
	return &u, nil
}

const lessonColumns = `id, unit_id, title, description, image_url, rubies_reward, order_index, archived, created_at, updated_at`

func scanLesson(scan func(...any) error) (models.Lesson, error) {
	var l models.Lesson
	err := scan(&l.ID, &l.UnitID, &l.Title, &l.Description, &l.ImageURL,
		&l.RubiesReward, &l.OrderIndex, &l.Archived, &l.CreatedAt, &l.UpdatedAt)
	return l, err
}

func (r *catalogRepository) ListLessonsByUnit(ctx context.Context, unitID int64, includeArchived bool) ([]models.Lesson, error) {
	log := logger.FromContext(ctx).WithPrefix("catalog_repo")
	log.Debug("listing lessons: unit_id=%d include_archived=%v", unitID, includeArchived)

	q := sqlBuilder.
		Select("id", "unit_id", "title", "description", "image_url", "rubies_reward", "order_index", "archived", "created_at", "updated_at").
		From("lessons").
		Where(squirrel.Eq{"unit_id": unitID}).
		OrderBy("order_index ASC", "id ASC")
	if !includeArchived {
		q = q.Where(squirrel.Eq{"archived": false})
	}
	query, args, err := q.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to list lessons: %v", err)
		return nil, err
	}
	defer rows.Close()

	var lessons []models.Lesson
	for rows.Next() {
		l, err := scanLesson(rows.Scan)
		if err != nil {
			return nil, err
		}
		lessons = append(lessons, l)
	}
	return lessons, rows.Err()
}

func (r *catalogRepository) GetLesson(ctx context.Context, id int64, includeArchived bool) (*models.Lesson, error) {
	log := logger.FromContext(ctx).WithPrefix("catalog_repo")
	log.Debug("getting lesson: id=%d", id)

	q := sqlBuilder.
		Select("id", "unit_id", "title", "description", "image_url", "rubies_reward", "order_index", "archived", "created_at", "updated_at").
		From("lessons").
		Where(squirrel.Eq{"id": id})
	if !includeArchived {
		q = q.Where(squirrel.Eq{"archived": false})
	}
	query, args, err := q.ToSql()
	if err != nil {
		return nil, err
	}

	l, err := scanLesson(r.db.QueryRowContext(ctx, query, args...).Scan)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("lesson not found: id=%d", id)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get lesson: %v", err)
		return nil, err
	}

	// The sign order defines the question sequence, so it is always loaded
	// alongside the lesson.
	signs, err := r.listSigns(ctx, l.ID)
	if err != nil {
		return nil, err
	}
	l.Signs = signs
	return &l, nil
}

func (r *catalogRepository) listSigns(ctx context.Context, lessonID int64) ([]models.Sign, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT id, lesson_id, text, video_url, difficulty_level, archived, created_at
FROM signs
WHERE lesson_id = ? AND archived = 0
ORDER BY id ASC
`, lessonID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var signs []models.Sign
	for rows.Next() {
		var s models.Sign
		if err := rows.Scan(&s.ID, &s.LessonID, &s.Text, &s.VideoURL, &s.DifficultyLevel, &s.Archived, &s.CreatedAt); err != nil {
			return nil, err
		}
		signs = append(signs, s)
	}
	return signs, rows.Err()
}

func (r *catalogRepository) GetSign(ctx context.Context, id int64) (*models.Sign, error) {
	log := logger.FromContext(ctx).WithPrefix("catalog_repo")
	log.Debug("getting sign: id=%d", id)

	var s models.Sign
	err := r.db.QueryRowContext(ctx, `
SELECT id, lesson_id, text, video_url, difficulty_level, archived, created_at
FROM signs
WHERE id = ? AND archived = 0
`, id).Scan(&s.ID, &s.LessonID, &s.Text, &s.VideoURL, &s.DifficultyLevel, &s.Archived, &s.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("sign not found: id=%d", id)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get sign: %v", err)
		return nil, err
	}
	return &s, nil
}

func (r *catalogRepository) CreateUnit(ctx context.Context, unit models.Unit) (int64, error) {
	log := logger.FromContext(ctx).WithPrefix("catalog_repo")
	log.Debug("creating unit: title=%q", unit.Title)

	var id int64
	err := r.db.QueryRowContext(ctx, `
INSERT INTO units (title, description, order_index)
VALUES (?, ?, ?)
RETURNING id
`, unit.Title, unit.Description, unit.OrderIndex).Scan(&id)
	if err != nil {
		log.Error("failed to create unit: %v", err)
		return 0, err
	}
	return id, nil
}

func (r *catalogRepository) UpdateUnit(ctx context.Context, unit models.Unit) error {
	log := logger.FromContext(ctx).WithPrefix("catalog_repo")
	log.Debug("updating unit: id=%d", unit.ID)

	_, err := r.db.ExecContext(ctx, `
UPDATE units
SET title = ?, description = ?, order_index = ?
WHERE id = ?
`, unit.Title, unit.Description, unit.OrderIndex, unit.ID)
	if err != nil {
		log.Error("failed to update unit: %v", err)
	}
	return err
}

func (r *catalogRepository) ArchiveUnit(ctx context.Context, id int64) error {
	log := logger.FromContext(ctx).WithPrefix("catalog_repo")
	log.Debug("archiving unit: id=%d", id)

	_, err := r.db.ExecContext(ctx, `UPDATE units SET archived = 1 WHERE id = ?`, id)
	if err != nil {
		log.Error("failed to archive unit: %v", err)
	}
	return err
}

func (r *catalogRepository) CreateLesson(ctx context.Context, lesson models.Lesson) (int64, error) {
	log := logger.FromContext(ctx).WithPrefix("catalog_repo")
	log.Debug("creating lesson: unit_id=%d title=%q", lesson.UnitID, lesson.Title)

	var id int64
	err := r.db.QueryRowContext(ctx, `
INSERT INTO lessons (unit_id, title, description, image_url, rubies_reward, order_index)
VALUES (?, ?, ?, ?, ?, ?)
RETURNING id
`, lesson.UnitID, lesson.Title, lesson.Description, lesson.ImageURL, lesson.RubiesReward, lesson.OrderIndex).Scan(&id)
	if err != nil {
		log.Error("failed to create lesson: %v", err)
		return 0, err
	}
	return id, nil
}

func (r *catalogRepository) UpdateLesson(ctx context.Context, lesson models.Lesson) error {
	log := logger.FromContext(ctx).WithPrefix("catalog_repo")
	log.Debug("updating lesson: id=%d", lesson.ID)

	_, err := r.db.ExecContext(ctx, `
UPDATE lessons
SET title = ?, description = ?, image_url = ?, rubies_reward = ?, order_index = ?,
    updated_at = CURRENT_TIMESTAMP
WHERE id = ?
`, lesson.Title, lesson.Description, lesson.ImageURL, lesson.RubiesReward, lesson.OrderIndex, lesson.ID)
	if err != nil {
		log.Error("failed to update lesson: %v", err)
	}
	return err
}

func (r *catalogRepository) ArchiveLesson(ctx context.Context, id int64) error {
	log := logger.FromContext(ctx).WithPrefix("catalog_repo")
	log.Debug("archiving lesson: id=%d", id)

	return tx(ctx, r.db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `UPDATE lessons SET archived = 1, updated_at = CURRENT_TIMESTAMP WHERE id = ?`, id); err != nil {
			return err
		}
		// Archiving a lesson retires its question sequence with it.
		_, err := tx.ExecContext(ctx, `UPDATE signs SET archived = 1 WHERE lesson_id = ?`, id)
		return err
	})
}

func (r *catalogRepository) CreateSign(ctx context.Context, sign models.Sign) (int64, error) {
	log := logger.FromContext(ctx).WithPrefix("catalog_repo")
	log.Debug("creating sign: lesson_id=%d text=%q", sign.LessonID, sign.Text)

	var id int64
	err := r.db.QueryRowContext(ctx, `
INSERT INTO signs (lesson_id, text, video_url, difficulty_level)
VALUES (?, ?, ?, ?)
RETURNING id
`, sign.LessonID, sign.Text, sign.VideoURL, sign.DifficultyLevel).Scan(&id)
	if err != nil {
		log.Error("failed to create sign: %v", err)
		return 0, err
	}
	return id, nil
}

func (r *catalogRepository) ArchiveSign(ctx context.Context, id int64) error {
	log := logger.FromContext(ctx).WithPrefix("catalog_repo")
	log.Debug("archiving sign: id=%d", id)

	_, err := r.db.ExecContext(ctx, `UPDATE signs SET archived = 1 WHERE id = ?`, id)
	if err != nil {
		log.Error("failed to archive sign: %v", err)
	}
	return err
}
