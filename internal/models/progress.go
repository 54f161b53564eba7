package models

import "time"

// ProgressState is the lifecycle of a (account, lesson) pair. NotStarted is
// implicit: no row exists yet.
type ProgressState string

const (
	ProgressNotStarted ProgressState = "not_started"
	ProgressInProgress ProgressState = "in_progress"
	ProgressCompleted  ProgressState = "completed"
)

// UserProgress is one row per (account, lesson), created lazily on the first
// verification attempt. Invariants: LastQuestion <= len(lesson.Signs),
// Completed == (LastQuestion == len(lesson.Signs)), Progress and LastQuestion
// are monotonically non-decreasing, Completed never reverts.
type UserProgress struct {
	UserID       int64     `json:"user_id"`
	LessonID     int64     `json:"lesson_id"`
	Progress     int       `json:"progress"`
	Completed    bool      `json:"completed"`
	LastQuestion int       `json:"last_question"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// State returns the explicit state of the row.
func (p *UserProgress) State() ProgressState {
	if p == nil {
		return ProgressNotStarted
	}
	if p.Completed {
		return ProgressCompleted
	}
	return ProgressInProgress
}

// VerificationResult is the stateless judgment of a submitted image against
// an expected sign. The acceptance threshold is the caller's concern.
type VerificationResult struct {
	IsCorrect     bool    `json:"is_correct"`
	Confidence    float64 `json:"confidence"`
	DetectedLabel string  `json:"detected_label"`
	ExpectedLabel string  `json:"expected_label"`
}

// ProgressResult is what an advance call returns to the client.
type ProgressResult struct {
	IsCorrect       bool    `json:"is_correct"`
	Confidence      float64 `json:"confidence"`
	DetectedLabel   string  `json:"detected_label,omitempty"`
	ExpectedLabel   string  `json:"expected_label,omitempty"`
	Progress        int     `json:"progress"`
	Completed       bool    `json:"completed"`
	HeartsRemaining int     `json:"hearts_remaining"`
	RubiesEarned    int     `json:"rubies_earned"`
}

// AdvanceMutation is the atomic write applied after a judged attempt:
// the progress row update plus the economy delta, committed together.
type AdvanceMutation struct {
	UserID           int64
	LessonID         int64
	ExpectedQuestion int // optimistic guard: current last_question
	NewLastQuestion  int
	NewProgress      int
	Completed        bool
	RubiesDelta      int  // reward on completion
	SpendHeart       bool // one heart on a rejected attempt
	HeartsCap        int
}
