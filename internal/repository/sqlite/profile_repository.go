package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/senya/senya/internal/logger"
	"github.com/senya/senya/internal/models"
	"github.com/senya/senya/internal/repository"
)

type profileRepository struct {
	db *sql.DB
}

// NewProfileRepository creates a new ProfileRepository implementation
func NewProfileRepository(db *sql.DB) repository.ProfileRepository {
	return &profileRepository{db: db}
}

const profileColumns = `user_id, hearts, rubies, streak, certificate, profile_url, last_activity_at, updated_at`

func scanProfile(row *sql.Row) (*models.UserProfile, error) {
	var p models.UserProfile
	err := row.Scan(&p.UserID, &p.Hearts, &p.Rubies, &p.Streak, &p.Certificate, &p.ProfileURL, &p.LastActivityAt, &p.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *profileRepository) Get(ctx context.Context, userID int64) (*models.UserProfile, error) {
	log := logger.FromContext(ctx).WithPrefix("profile_repo")
	log.Debug("getting profile: user_id=%d", userID)

	p, err := scanProfile(r.db.QueryRowContext(ctx, `
SELECT `+profileColumns+`
FROM user_profiles
WHERE user_id = ?
`, userID))
	if err != nil {
		log.Error("failed to get profile: %v", err)
		return nil, err
	}
	if p == nil {
		log.Debug("profile not found: user_id=%d", userID)
	}
	return p, err
}

func (r *profileRepository) SpendHeart(ctx context.Context, userID int64) (*models.UserProfile, error) {
	log := logger.FromContext(ctx).WithPrefix("profile_repo")
	log.Debug("spending heart: user_id=%d", userID)

	// The hearts > 0 guard keeps the floor at zero and serializes concurrent
	// spends on the same row.
	res, err := r.db.ExecContext(ctx, `
UPDATE user_profiles
SET hearts = hearts - 1, updated_at = CURRENT_TIMESTAMP
WHERE user_id = ? AND hearts > 0
`, userID)
	if err != nil {
		log.Error("failed to spend heart: %v", err)
		return nil, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		log.Debug("heart spend rejected, budget empty: user_id=%d", userID)
		return nil, repository.ErrNoHearts
	}
	return r.Get(ctx, userID)
}

func (r *profileRepository) AddRubies(ctx context.Context, userID int64, amount int) error {
	log := logger.FromContext(ctx).WithPrefix("profile_repo")
	log.Debug("adding rubies: user_id=%d amount=%d", userID, amount)

	_, err := r.db.ExecContext(ctx, `
UPDATE user_profiles
SET rubies = rubies + ?, updated_at = CURRENT_TIMESTAMP
WHERE user_id = ?
`, amount, userID)
	if err != nil {
		log.Error("failed to add rubies: %v", err)
	}
	return err
}

func (r *profileRepository) PurchaseHearts(ctx context.Context, userID int64, pkg models.HeartPackage, cap int) (*models.UserProfile, error) {
	log := logger.FromContext(ctx).WithPrefix("profile_repo")
	log.Debug("purchasing hearts: user_id=%d package=%d cost=%d", userID, pkg.ID, pkg.RubyCost)

	// Hearts past the cap are forfeited, not refunded. Deliberate product
	// behavior, mirrored by the MIN() below.
	res, err := r.db.ExecContext(ctx, `
UPDATE user_profiles
SET rubies = rubies - ?,
    hearts = MIN(hearts + ?, ?),
    updated_at = CURRENT_TIMESTAMP
WHERE user_id = ? AND rubies >= ?
`, pkg.RubyCost, pkg.HeartsAmount, cap, userID, pkg.RubyCost)
	if err != nil {
		log.Error("failed to purchase hearts: %v", err)
		return nil, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		log.Debug("purchase rejected, insufficient rubies: user_id=%d", userID)
		return nil, repository.ErrInsufficientRubies
	}
	return r.Get(ctx, userID)
}

func (r *profileRepository) TouchStreak(ctx context.Context, userID int64, eventTime time.Time) (int, error) {
	log := logger.FromContext(ctx).WithPrefix("profile_repo")
	log.Debug("touching streak: user_id=%d", userID)

	var streak int
	err := tx(ctx, r.db, func(tx *sql.Tx) error {
		var last time.Time
		err := tx.QueryRowContext(ctx, `
SELECT streak, last_activity_at FROM user_profiles WHERE user_id = ?
`, userID).Scan(&streak, &last)
		if err != nil {
			return err
		}

		// Calendar-day comparison in UTC: same day is a no-op, the next day
		// extends the streak, anything longer resets it.
		eventDay := eventTime.UTC().Truncate(24 * time.Hour)
		lastDay := last.UTC().Truncate(24 * time.Hour)
		switch days := int(eventDay.Sub(lastDay).Hours() / 24); {
		case days == 0 && streak > 0:
			return nil
		case days == 1:
			streak++
		default:
			streak = 1
		}

		_, err = tx.ExecContext(ctx, `
UPDATE user_profiles
SET streak = ?, last_activity_at = ?, updated_at = CURRENT_TIMESTAMP
WHERE user_id = ?
`, streak, eventTime.UTC(), userID)
		return err
	})
	if err != nil {
		log.Error("failed to touch streak: %v", err)
		return 0, err
	}
	log.Debug("streak now %d: user_id=%d", streak, userID)
	return streak, nil
}

func (r *profileRepository) RegenerateHearts(ctx context.Context, cap int) (int64, error) {
	log := logger.FromContext(ctx).WithPrefix("profile_repo")

	res, err := r.db.ExecContext(ctx, `
UPDATE user_profiles
SET hearts = hearts + 1, updated_at = CURRENT_TIMESTAMP
WHERE hearts < ?
`, cap)
	if err != nil {
		log.Error("failed to regenerate hearts: %v", err)
		return 0, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	log.Debug("regenerated hearts for %d profiles", affected)
	return affected, nil
}

func (r *profileRepository) UpdateProfileURL(ctx context.Context, userID int64, url string) error {
	_, err := r.db.ExecContext(ctx, `
UPDATE user_profiles SET profile_url = ?, updated_at = CURRENT_TIMESTAMP WHERE user_id = ?
`, url, userID)
	return err
}

func (r *profileRepository) SetCertificate(ctx context.Context, userID int64, granted bool) error {
	_, err := r.db.ExecContext(ctx, `
UPDATE user_profiles SET certificate = ?, updated_at = CURRENT_TIMESTAMP WHERE user_id = ?
`, granted, userID)
	return err
}
