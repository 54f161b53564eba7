package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/senya/senya/internal/logger"
	"github.com/senya/senya/internal/models"
	"github.com/senya/senya/internal/repository"
)

type analyticsRepository struct {
	db *sql.DB
}

// NewAnalyticsRepository creates a new AnalyticsRepository implementation
func NewAnalyticsRepository(db *sql.DB) repository.AnalyticsRepository {
	return &analyticsRepository{db: db}
}

func (r *analyticsRepository) Overview(ctx context.Context, activeSince time.Time) (*models.OverviewReport, error) {
	log := logger.FromContext(ctx).WithPrefix("analytics_repo")
	log.Debug("building overview report")

	var o models.OverviewReport
	err := r.db.QueryRowContext(ctx, `
SELECT
    (SELECT COUNT(*) FROM accounts),
    (SELECT COUNT(*) FROM accounts WHERE last_login IS NOT NULL AND last_login >= ?),
    (SELECT COUNT(*) FROM units WHERE archived = 0),
    (SELECT COUNT(*) FROM lessons WHERE archived = 0),
    (SELECT COUNT(*) FROM signs WHERE archived = 0),
    (SELECT COUNT(*) FROM user_progress WHERE completed = 1),
    (SELECT COALESCE(AVG(streak), 0) FROM user_profiles),
    (SELECT COALESCE(SUM(rubies), 0) FROM user_profiles)
`, activeSince.UTC()).Scan(
		&o.TotalUsers, &o.ActiveUsersLastWeek,
		&o.TotalUnits, &o.TotalLessons, &o.TotalSigns,
		&o.CompletedLessons, &o.AverageStreak, &o.TotalRubiesEarned,
	)
	if err != nil {
		log.Error("failed to build overview report: %v", err)
		return nil, err
	}
	return &o, nil
}

func (r *analyticsRepository) SignupEvents(ctx context.Context, since time.Time) ([]models.AccountEvent, error) {
	return r.events(ctx, `
SELECT name, created_at FROM accounts
WHERE created_at >= ?
ORDER BY created_at ASC
`, since)
}

func (r *analyticsRepository) LoginEvents(ctx context.Context, since time.Time) ([]models.AccountEvent, error) {
	return r.events(ctx, `
SELECT name, last_login FROM accounts
WHERE last_login IS NOT NULL AND last_login >= ?
ORDER BY last_login ASC
`, since)
}

func (r *analyticsRepository) events(ctx context.Context, query string, since time.Time) ([]models.AccountEvent, error) {
	log := logger.FromContext(ctx).WithPrefix("analytics_repo")

	rows, err := r.db.QueryContext(ctx, query, since.UTC())
	if err != nil {
		log.Error("failed to query account events: %v", err)
		return nil, err
	}
	defer rows.Close()

	var events []models.AccountEvent
	for rows.Next() {
		var e models.AccountEvent
		if err := rows.Scan(&e.Name, &e.At); err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

func (r *analyticsRepository) TopStreaks(ctx context.Context, limit int) ([]models.UserStreak, error) {
	log := logger.FromContext(ctx).WithPrefix("analytics_repo")
	log.Debug("listing top streaks: limit=%d", limit)

	rows, err := r.db.QueryContext(ctx, `
SELECT a.name, p.streak
FROM user_profiles p
JOIN accounts a ON a.user_id = p.user_id
ORDER BY p.streak DESC, a.user_id ASC
LIMIT ?
`, limit)
	if err != nil {
		log.Error("failed to list top streaks: %v", err)
		return nil, err
	}
	defer rows.Close()

	var streaks []models.UserStreak
	for rows.Next() {
		var s models.UserStreak
		if err := rows.Scan(&s.Username, &s.Streak); err != nil {
			return nil, err
		}
		streaks = append(streaks, s)
	}
	return streaks, rows.Err()
}

func (r *analyticsRepository) TopCompletions(ctx context.Context, limit int) ([]models.UserCompletion, error) {
	log := logger.FromContext(ctx).WithPrefix("analytics_repo")
	log.Debug("listing top completions: limit=%d", limit)

	rows, err := r.db.QueryContext(ctx, `
SELECT a.name, COUNT(*) AS completed
FROM user_progress up
JOIN accounts a ON a.user_id = up.user_id
WHERE up.completed = 1
GROUP BY up.user_id
ORDER BY completed DESC, a.user_id ASC
LIMIT ?
`, limit)
	if err != nil {
		log.Error("failed to list top completions: %v", err)
		return nil, err
	}
	defer rows.Close()

	var completions []models.UserCompletion
	for rows.Next() {
		var c models.UserCompletion
		if err := rows.Scan(&c.Username, &c.CompletedLessons); err != nil {
			return nil, err
		}
		completions = append(completions, c)
	}
	return completions, rows.Err()
}

func (r *analyticsRepository) AccountAndCompletionCounts(ctx context.Context) (int, int, error) {
	var accounts, completions int
	err := r.db.QueryRowContext(ctx, `
SELECT
    (SELECT COUNT(*) FROM accounts),
    (SELECT COUNT(*) FROM user_progress WHERE completed = 1)
`).Scan(&accounts, &completions)
	return accounts, completions, err
}

func (r *analyticsRepository) LessonStats(ctx context.Context) ([]models.LessonStat, error) {
	log := logger.FromContext(ctx).WithPrefix("analytics_repo")
	log.Debug("building lesson stats")

	// AVG over the incomplete attempts only: a finished lesson no longer says
	// anything about where learners get stuck.
	rows, err := r.db.QueryContext(ctx, `
SELECT
    l.id, l.title, u.id, u.title,
    COUNT(up.user_id) AS attempts,
    COALESCE(SUM(up.completed), 0) AS completions,
    COALESCE(AVG(CASE WHEN up.completed = 0 THEN up.progress END), 0) AS avg_progress
FROM lessons l
JOIN units u ON u.id = l.unit_id
LEFT JOIN user_progress up ON up.lesson_id = l.id
WHERE l.archived = 0
GROUP BY l.id
ORDER BY u.order_index ASC, l.order_index ASC, l.id ASC
`)
	if err != nil {
		log.Error("failed to build lesson stats: %v", err)
		return nil, err
	}
	defer rows.Close()

	var stats []models.LessonStat
	for rows.Next() {
		var s models.LessonStat
		if err := rows.Scan(&s.LessonID, &s.LessonTitle, &s.UnitID, &s.UnitTitle,
			&s.TotalAttempts, &s.Completions, &s.AverageProgress); err != nil {
			return nil, err
		}
		if s.TotalAttempts > 0 {
			s.CompletionRate = float64(s.Completions) / float64(s.TotalAttempts) * 100
		}
		stats = append(stats, s)
	}
	return stats, rows.Err()
}

func (r *analyticsRepository) SignStats(ctx context.Context) ([]models.SignStat, error) {
	log := logger.FromContext(ctx).WithPrefix("analytics_repo")
	log.Debug("building sign stats")

	rows, err := r.db.QueryContext(ctx, `
SELECT
    s.id, s.text, s.difficulty_level,
    l.id, l.title, u.id, u.title,
    (SELECT COUNT(*) FROM user_progress up WHERE up.lesson_id = l.id) AS attempts
FROM signs s
JOIN lessons l ON l.id = s.lesson_id
JOIN units u ON u.id = l.unit_id
WHERE s.archived = 0 AND l.archived = 0
`)
	if err != nil {
		log.Error("failed to build sign stats: %v", err)
		return nil, err
	}
	defer rows.Close()

	var stats []models.SignStat
	for rows.Next() {
		var s models.SignStat
		if err := rows.Scan(&s.SignID, &s.SignText, &s.DifficultyLevel,
			&s.LessonID, &s.LessonTitle, &s.UnitID, &s.UnitTitle, &s.Attempts); err != nil {
			return nil, err
		}
		stats = append(stats, s)
	}
	return stats, rows.Err()
}

func (r *analyticsRepository) MostFailedLessons(ctx context.Context, limit int) ([]models.FailedLessonStat, error) {
	log := logger.FromContext(ctx).WithPrefix("analytics_repo")
	log.Debug("building most-failed report: limit=%d", limit)

	// Every non-archived lesson ranks, including ones nobody has attempted;
	// the top 10 pads out with zero-failure rows.
	rows, err := r.db.QueryContext(ctx, `
SELECT
    l.id, l.title, u.title,
    COUNT(up.user_id) AS attempts,
    COALESCE(SUM(CASE WHEN up.completed = 0 THEN 1 ELSE 0 END), 0) AS failures
FROM lessons l
JOIN units u ON u.id = l.unit_id
LEFT JOIN user_progress up ON up.lesson_id = l.id
WHERE l.archived = 0
GROUP BY l.id
ORDER BY failures DESC, attempts DESC, l.id ASC
LIMIT ?
`, limit)
	if err != nil {
		log.Error("failed to build most-failed report: %v", err)
		return nil, err
	}
	defer rows.Close()

	var stats []models.FailedLessonStat
	for rows.Next() {
		var s models.FailedLessonStat
		if err := rows.Scan(&s.LessonID, &s.LessonTitle, &s.UnitTitle, &s.TotalAttempts, &s.Failures); err != nil {
			return nil, err
		}
		if s.TotalAttempts > 0 {
			s.FailureRate = float64(s.Failures) / float64(s.TotalAttempts) * 100
		}
		stats = append(stats, s)
	}
	return stats, rows.Err()
}
