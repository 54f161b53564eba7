package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	apperrors "github.com/senya/senya/internal/errors"
	"github.com/senya/senya/internal/logger"
	"github.com/senya/senya/internal/models"
	"github.com/senya/senya/internal/repository"
)

// AuthService handles signup, login and bearer-token sessions.
type AuthService struct {
	accounts   repository.AccountRepository
	profiles   repository.ProfileRepository
	sessionTTL time.Duration
	heartsCap  int
}

func NewAuthService(accounts repository.AccountRepository, profiles repository.ProfileRepository, sessionTTL time.Duration, heartsCap int) *AuthService {
	return &AuthService{
		accounts:   accounts,
		profiles:   profiles,
		sessionTTL: sessionTTL,
		heartsCap:  heartsCap,
	}
}

// Signup registers a learner account with a full heart budget.
func (s *AuthService) Signup(ctx context.Context, name, email, password string) (*models.Account, error) {
	log := logger.FromContext(ctx).WithPrefix("auth_service")

	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))
	if name == "" {
		return nil, apperrors.NewValidationError("name", "cannot be empty")
	}
	if email == "" || !strings.Contains(email, "@") {
		return nil, apperrors.NewValidationError("email", "must be a valid address")
	}
	if len(password) < 8 {
		return nil, apperrors.NewValidationError("password", "must be at least 8 characters")
	}

	existing, err := s.accounts.GetByEmail(ctx, email)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	if existing != nil {
		return nil, apperrors.NewConflictError("an account with this email already exists")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	account, err := s.accounts.CreateWithProfile(ctx, models.Account{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         models.RoleLearner,
	}, s.heartsCap)
	if err != nil {
		log.Error("signup failed: %v", err)
		return nil, apperrors.NewInternalError(err)
	}

	log.Info("account created: user_id=%d", account.UserID)
	return account, nil
}

// Login verifies the credentials, records the login for streak and analytics
// purposes, and issues a bearer session.
func (s *AuthService) Login(ctx context.Context, email, password string) (*models.Session, *models.Account, error) {
	log := logger.FromContext(ctx).WithPrefix("auth_service")

	email = strings.ToLower(strings.TrimSpace(email))
	account, err := s.accounts.GetByEmail(ctx, email)
	if err != nil {
		return nil, nil, apperrors.NewInternalError(err)
	}
	if account == nil {
		return nil, nil, apperrors.NewUnauthorizedError("invalid email or password")
	}
	if bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)) != nil {
		log.Warn("failed login attempt: user_id=%d", account.UserID)
		return nil, nil, apperrors.NewUnauthorizedError("invalid email or password")
	}

	now := time.Now().UTC()
	if err := s.accounts.UpdateLastLogin(ctx, account.UserID, now); err != nil {
		return nil, nil, apperrors.NewInternalError(err)
	}
	// Logging in counts as the day's activity for the streak.
	if _, err := s.profiles.TouchStreak(ctx, account.UserID, now); err != nil {
		return nil, nil, apperrors.NewInternalError(err)
	}

	session := models.Session{
		Token:     uuid.NewString(),
		UserID:    account.UserID,
		Role:      account.Role,
		CreatedAt: now,
		ExpiresAt: now.Add(s.sessionTTL),
	}
	if err := s.accounts.InsertSession(ctx, session); err != nil {
		return nil, nil, apperrors.NewInternalError(err)
	}

	account.LastLogin = now
	log.Info("login: user_id=%d", account.UserID)
	return &session, account, nil
}

// Authenticate resolves a bearer token to a principal. Expired sessions are
// removed on sight.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*models.Principal, error) {
	if token == "" {
		return nil, apperrors.NewUnauthorizedError("missing bearer token")
	}

	session, err := s.accounts.GetSession(ctx, token)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	if session == nil {
		return nil, apperrors.NewUnauthorizedError("invalid session")
	}
	if time.Now().After(session.ExpiresAt) {
		_ = s.accounts.DeleteSession(ctx, token)
		return nil, apperrors.NewUnauthorizedError("session expired")
	}
	return &models.Principal{UserID: session.UserID, Role: session.Role}, nil
}

// Logout invalidates the session token.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	if err := s.accounts.DeleteSession(ctx, token); err != nil {
		return apperrors.NewInternalError(err)
	}
	return nil
}
