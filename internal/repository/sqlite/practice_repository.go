package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/senya/senya/internal/logger"
	"github.com/senya/senya/internal/models"
	"github.com/senya/senya/internal/repository"
)

type practiceRepository struct {
	db *sql.DB
}

// NewPracticeRepository creates a new PracticeRepository implementation
func NewPracticeRepository(db *sql.DB) repository.PracticeRepository {
	return &practiceRepository{db: db}
}

func (r *practiceRepository) ListLevels(ctx context.Context) ([]models.PracticeLevelWithGames, error) {
	log := logger.FromContext(ctx).WithPrefix("practice_repo")
	log.Debug("listing practice levels")

	rows, err := r.db.QueryContext(ctx, `
SELECT id, name, description, required_progress, order_index
FROM practice_levels
ORDER BY order_index ASC, id ASC
`)
	if err != nil {
		log.Error("failed to list practice levels: %v", err)
		return nil, err
	}
	defer rows.Close()

	var levels []models.PracticeLevelWithGames
	byID := map[int64]int{}
	for rows.Next() {
		var l models.PracticeLevelWithGames
		if err := rows.Scan(&l.ID, &l.Name, &l.Description, &l.RequiredProgress, &l.OrderIndex); err != nil {
			return nil, err
		}
		byID[l.ID] = len(levels)
		levels = append(levels, l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	gameRows, err := r.db.QueryContext(ctx, `
SELECT id, level_id, game_identifier, name, description
FROM practice_games
ORDER BY level_id ASC, id ASC
`)
	if err != nil {
		log.Error("failed to list practice games: %v", err)
		return nil, err
	}
	defer gameRows.Close()

	for gameRows.Next() {
		var g models.PracticeGame
		if err := gameRows.Scan(&g.ID, &g.LevelID, &g.GameIdentifier, &g.Name, &g.Description); err != nil {
			return nil, err
		}
		if i, ok := byID[g.LevelID]; ok {
			levels[i].Games = append(levels[i].Games, g)
		}
	}
	return levels, gameRows.Err()
}

func (r *practiceRepository) GetLevel(ctx context.Context, id int64) (*models.PracticeLevel, error) {
	log := logger.FromContext(ctx).WithPrefix("practice_repo")
	log.Debug("getting practice level: id=%d", id)

	var l models.PracticeLevel
	err := r.db.QueryRowContext(ctx, `
SELECT id, name, description, required_progress, order_index
FROM practice_levels
WHERE id = ?
`, id).Scan(&l.ID, &l.Name, &l.Description, &l.RequiredProgress, &l.OrderIndex)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get practice level: %v", err)
		return nil, err
	}
	return &l, nil
}

func (r *practiceRepository) GetGame(ctx context.Context, levelID int64, gameIdentifier string) (*models.PracticeGame, error) {
	log := logger.FromContext(ctx).WithPrefix("practice_repo")
	log.Debug("getting practice game: level_id=%d game=%q", levelID, gameIdentifier)

	var g models.PracticeGame
	err := r.db.QueryRowContext(ctx, `
SELECT id, level_id, game_identifier, name, description
FROM practice_games
WHERE level_id = ? AND game_identifier = ?
`, levelID, gameIdentifier).Scan(&g.ID, &g.LevelID, &g.GameIdentifier, &g.Name, &g.Description)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get practice game: %v", err)
		return nil, err
	}
	return &g, nil
}

func (r *practiceRepository) GetProgress(ctx context.Context, userID, levelID, gameID int64) (*models.UserPracticeProgress, error) {
	var p models.UserPracticeProgress
	err := r.db.QueryRowContext(ctx, `
SELECT user_id, level_id, game_id, high_score, progress, completed, updated_at
FROM user_practice_progress
WHERE user_id = ? AND level_id = ? AND game_id = ?
`, userID, levelID, gameID).Scan(&p.UserID, &p.LevelID, &p.GameID, &p.HighScore, &p.Progress, &p.Completed, &p.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *practiceRepository) UpsertScore(ctx context.Context, p models.UserPracticeProgress) (*models.UserPracticeProgress, error) {
	log := logger.FromContext(ctx).WithPrefix("practice_repo")
	log.Debug("upserting practice score: user_id=%d level_id=%d game_id=%d score=%d",
		p.UserID, p.LevelID, p.GameID, p.HighScore)

	// MAX keeps the high score monotonic; completed latches once set.
	_, err := r.db.ExecContext(ctx, `
INSERT INTO user_practice_progress (user_id, level_id, game_id, high_score, progress, completed)
VALUES (?, ?, ?, ?, ?, ?)
ON CONFLICT(user_id, level_id, game_id) DO UPDATE SET
    high_score = MAX(high_score, excluded.high_score),
    progress = excluded.progress,
    completed = MAX(completed, excluded.completed),
    updated_at = CURRENT_TIMESTAMP
`, p.UserID, p.LevelID, p.GameID, p.HighScore, p.Progress, p.Completed)
	if err != nil {
		log.Error("failed to upsert practice score: %v", err)
		return nil, err
	}
	return r.GetProgress(ctx, p.UserID, p.LevelID, p.GameID)
}

func (r *practiceRepository) ListSignsByDifficulty(ctx context.Context, difficulty string, limit int) ([]models.Sign, error) {
	log := logger.FromContext(ctx).WithPrefix("practice_repo")
	log.Debug("listing signs by difficulty: difficulty=%q limit=%d", difficulty, limit)

	rows, err := r.db.QueryContext(ctx, `
SELECT id, lesson_id, text, video_url, difficulty_level, archived, created_at
FROM signs
WHERE difficulty_level = ? AND archived = 0
ORDER BY RANDOM()
LIMIT ?
`, difficulty, limit)
	if err != nil {
		log.Error("failed to list signs by difficulty: %v", err)
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
