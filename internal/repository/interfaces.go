package repository

import (
	"context"
	"errors"
	"time"

	"github.com/senya/senya/internal/models"
)

// Sentinel errors surfaced by guarded economy/progress updates. Services map
// them onto the client-facing error taxonomy.
var (
	// ErrNoHearts means the heart budget is already empty; nothing was changed.
	ErrNoHearts = errors.New("no hearts remaining")
	// ErrInsufficientRubies means the purchase would overdraw rubies; nothing was changed.
	ErrInsufficientRubies = errors.New("insufficient rubies")
	// ErrStaleProgress means the optimistic guard on a progress row failed:
	// a concurrent advance won the race.
	ErrStaleProgress = errors.New("progress row changed concurrently")
)

// AccountRepository handles account and session data access
type AccountRepository interface {
	// CreateWithProfile inserts the account and its profile in one transaction.
	CreateWithProfile(ctx context.Context, account models.Account, hearts int) (*models.Account, error)
	Get(ctx context.Context, userID int64) (*models.Account, error)
	GetByEmail(ctx context.Context, email string) (*models.Account, error)
	UpdateLastLogin(ctx context.Context, userID int64, t time.Time) error
	InsertSession(ctx context.Context, s models.Session) error
	GetSession(ctx context.Context, token string) (*models.Session, error)
	DeleteSession(ctx context.Context, token string) error
	DeleteExpiredSessions(ctx context.Context) error
}

// ProfileRepository handles the per-account economy state. Every mutation is
// a single guarded statement so concurrent calls for one account serialize
// without lost updates.
type ProfileRepository interface {
	Get(ctx context.Context, userID int64) (*models.UserProfile, error)
	// SpendHeart decrements hearts by one, returning ErrNoHearts when the
	// budget is already empty.
	SpendHeart(ctx context.Context, userID int64) (*models.UserProfile, error)
	// AddRubies credits a non-negative reward.
	AddRubies(ctx context.Context, userID int64, amount int) error
	// PurchaseHearts trades rubies for hearts up to the cap; overflow beyond
	// the cap is forfeited. Returns ErrInsufficientRubies without mutation
	// when the balance is too low.
	PurchaseHearts(ctx context.Context, userID int64, pkg models.HeartPackage, cap int) (*models.UserProfile, error)
	// TouchStreak applies the consecutive-calendar-day rule for the event
	// time and returns the resulting streak.
	TouchStreak(ctx context.Context, userID int64, eventTime time.Time) (int, error)
	// RegenerateHearts adds one heart to every profile below the cap and
	// reports how many profiles were topped up.
	RegenerateHearts(ctx context.Context, cap int) (int64, error)
	UpdateProfileURL(ctx context.Context, userID int64, url string) error
	SetCertificate(ctx context.Context, userID int64, granted bool) error
}

// CatalogRepository handles unit, lesson and sign data access
type CatalogRepository interface {
	ListUnits(ctx context.Context, includeArchived bool) ([]models.Unit, error)
	GetUnit(ctx context.Context, id int64, includeArchived bool) (*models.Unit, error)
	ListLessonsByUnit(ctx context.Context, unitID int64, includeArchived bool) ([]models.Lesson, error)
	// GetLesson returns the lesson with its ordered, non-archived sign list.
	GetLesson(ctx context.Context, id int64, includeArchived bool) (*models.Lesson, error)
	GetSign(ctx context.Context, id int64) (*models.Sign, error)

	CreateUnit(ctx context.Context, unit models.Unit) (int64, error)
	UpdateUnit(ctx context.Context, unit models.Unit) error
	ArchiveUnit(ctx context.Context, id int64) error
	CreateLesson(ctx context.Context, lesson models.Lesson) (int64, error)
	UpdateLesson(ctx context.Context, lesson models.Lesson) error
	// ArchiveLesson also archives the lesson's signs.
	ArchiveLesson(ctx context.Context, id int64) error
	CreateSign(ctx context.Context, sign models.Sign) (int64, error)
	ArchiveSign(ctx context.Context, id int64) error
}

// ProgressRepository handles per-(account, lesson) progress rows.
type ProgressRepository interface {
	// Get returns nil, nil when no row exists yet (NotStarted).
	Get(ctx context.Context, userID, lessonID int64) (*models.UserProgress, error)
	// Create inserts the initial row for a first attempt.
	Create(ctx context.Context, userID, lessonID int64) (*models.UserProgress, error)
	// ApplyAdvance commits the progress update and the economy delta of one
	// judged attempt atomically. Returns ErrStaleProgress when the optimistic
	// guard fails and ErrNoHearts when a heart spend finds an empty budget;
	// in both cases nothing is persisted.
	ApplyAdvance(ctx context.Context, m models.AdvanceMutation) error
	ListByUser(ctx context.Context, userID int64) ([]models.UserProgress, error)
	CountCompletedByUser(ctx context.Context, userID int64) (int, error)
	// OverallProgress is the percentage of non-archived lessons the account
	// has completed, used to gate practice levels.
	OverallProgress(ctx context.Context, userID int64) (int, error)
}

// PracticeRepository handles practice levels, games and scored progress.
type PracticeRepository interface {
	ListLevels(ctx context.Context) ([]models.PracticeLevelWithGames, error)
	GetLevel(ctx context.Context, id int64) (*models.PracticeLevel, error)
	GetGame(ctx context.Context, levelID int64, gameIdentifier string) (*models.PracticeGame, error)
	GetProgress(ctx context.Context, userID, levelID, gameID int64) (*models.UserPracticeProgress, error)
	// UpsertScore records a run, keeping high_score monotonic and latching
	// the completed flag.
	UpsertScore(ctx context.Context, p models.UserPracticeProgress) (*models.UserPracticeProgress, error)
	ListSignsByDifficulty(ctx context.Context, difficulty string, limit int) ([]models.Sign, error)
}

// ShopRepository handles heart package lookups.
type ShopRepository interface {
	ListHeartPackages(ctx context.Context) ([]models.HeartPackage, error)
	GetHeartPackage(ctx context.Context, id int64) (*models.HeartPackage, error)
}

// AnalyticsRepository is the pure read path over persisted state. It takes no
// locks and never mutates.
type AnalyticsRepository interface {
	Overview(ctx context.Context, activeSince time.Time) (*models.OverviewReport, error)
	// SignupEvents and LoginEvents return raw (name, timestamp) pairs since
	// the window start; day bucketing happens in the service.
	SignupEvents(ctx context.Context, since time.Time) ([]models.AccountEvent, error)
	LoginEvents(ctx context.Context, since time.Time) ([]models.AccountEvent, error)
	TopStreaks(ctx context.Context, limit int) ([]models.UserStreak, error)
	TopCompletions(ctx context.Context, limit int) ([]models.UserCompletion, error)
	// AccountAndCompletionCounts returns total accounts and total completed
	// progress rows for the mean-completions figure.
	AccountAndCompletionCounts(ctx context.Context) (accounts int, completions int, err error)
	LessonStats(ctx context.Context) ([]models.LessonStat, error)
	SignStats(ctx context.Context) ([]models.SignStat, error)
	MostFailedLessons(ctx context.Context, limit int) ([]models.FailedLessonStat, error)
}
