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

type accountRepository struct {
	db *sql.DB
}

// NewAccountRepository creates a new AccountRepository implementation
func NewAccountRepository(db *sql.DB) repository.AccountRepository {
	return &accountRepository{db: db}
}

func (r *accountRepository) CreateWithProfile(ctx context.Context, account models.Account, hearts int) (*models.Account, error) {
	log := logger.FromContext(ctx).WithPrefix("account_repo")
	log.Debug("creating account: email=%s role=%s", account.Email, account.Role)

	var created models.Account
	err := tx(ctx, r.db, func(tx *sql.Tx) error {
		row := tx.QueryRowContext(ctx, `
INSERT INTO accounts (name, email, password_hash, role)
VALUES (?, ?, ?, ?)
RETURNING user_id, name, email, password_hash, role, created_at, last_login
`, account.Name, account.Email, account.PasswordHash, account.Role)
		if err := scanAccount(row, &created); err != nil {
			return err
		}
		_, err := tx.ExecContext(ctx, `
INSERT INTO user_profiles (user_id, hearts) VALUES (?, ?)
`, created.UserID, hearts)
		return err
	})
	if err != nil {
		log.Error("failed to create account: %v", err)
		return nil, err
	}
	log.Debug("account created: user_id=%d", created.UserID)
	return &created, nil
}

func (r *accountRepository) Get(ctx context.Context, userID int64) (*models.Account, error) {
	log := logger.FromContext(ctx).WithPrefix("account_repo")
	log.Debug("getting account: user_id=%d", userID)

	var a models.Account
	err := scanAccount(r.db.QueryRowContext(ctx, `
SELECT user_id, name, email, password_hash, role, created_at, last_login
FROM accounts
WHERE user_id = ?
`, userID), &a)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("account not found: user_id=%d", userID)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get account: %v", err)
		return nil, err
	}
	return &a, nil
}

func (r *accountRepository) GetByEmail(ctx context.Context, email string) (*models.Account, error) {
	log := logger.FromContext(ctx).WithPrefix("account_repo")
	log.Debug("getting account by email")

	var a models.Account
	err := scanAccount(r.db.QueryRowContext(ctx, `
SELECT user_id, name, email, password_hash, role, created_at, last_login
FROM accounts
WHERE email = ?
`, email), &a)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get account by email: %v", err)
		return nil, err
	}
	return &a, nil
}

// scanAccount reads an account row; last_login is NULL until the first login.
func scanAccount(row *sql.Row, a *models.Account) error {
	var lastLogin sql.NullTime
	err := row.Scan(&a.UserID, &a.Name, &a.Email, &a.PasswordHash, &a.Role, &a.CreatedAt, &lastLogin)
	if err != nil {
		return err
	}
	if lastLogin.Valid {
		a.LastLogin = lastLogin.Time
	}
	return nil
}

func (r *accountRepository) UpdateLastLogin(ctx context.Context, userID int64, t time.Time) error {
	log := logger.FromContext(ctx).WithPrefix("account_repo")
	log.Debug("updating last login: user_id=%d", userID)

	_, err := r.db.ExecContext(ctx, `UPDATE accounts SET last_login = ? WHERE user_id = ?`, t, userID)
	if err != nil {
		log.Error("failed to update last login: %v", err)
	}
	return err
}

func (r *accountRepository) InsertSession(ctx context.Context, s models.Session) error {
	log := logger.FromContext(ctx).WithPrefix("account_repo")
	log.Debug("inserting session: user_id=%d", s.UserID)

	_, err := r.db.ExecContext(ctx, `
INSERT INTO sessions (token, user_id, role, expires_at)
VALUES (?, ?, ?, ?)
`, s.Token, s.UserID, s.Role, s.ExpiresAt)
	if err != nil {
		log.Error("failed to insert session: %v", err)
	}
	return err
}

func (r *accountRepository) GetSession(ctx context.Context, token string) (*models.Session, error) {
	var s models.Session
	err := r.db.QueryRowContext(ctx, `
SELECT token, user_id, role, created_at, expires_at
FROM sessions
WHERE token = ?
`, token).Scan(&s.Token, &s.UserID, &s.Role, &s.CreatedAt, &s.ExpiresAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		logger.FromContext(ctx).WithPrefix("account_repo").Error("failed to get session: %v", err)
		return nil, err
	}
	return &s, nil
}

func (r *accountRepository) DeleteSession(ctx context.Context, token string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM sessions WHERE token = ?`, token)
	return err
}

func (r *accountRepository) DeleteExpiredSessions(ctx context.Context) error {
	log := logger.FromContext(ctx).WithPrefix("account_repo")

	res, err := r.db.ExecContext(ctx, `DELETE FROM sessions WHERE expires_at < CURRENT_TIMESTAMP`)
	if err != nil {
		log.Error("failed to delete expired sessions: %v", err)
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n > 0 {
		log.Debug("deleted %d expired sessions", n)
	}
	return nil
}
