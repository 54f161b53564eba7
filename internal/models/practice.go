package models

import "time"

// PracticeLevel groups practice games behind a required lesson-progress gate.
type PracticeLevel struct {
	ID               int64  `json:"id"`
	Name             string `json:"name"`
	Description      string `json:"description,omitempty"`
	RequiredProgress int    `json:"required_progress"`
	OrderIndex       int    `json:"order_index"`
}

// PracticeGame is a mini-game within a level, addressed by its identifier.
type PracticeGame struct {
	ID             int64  `json:"id"`
	LevelID        int64  `json:"level_id"`
	GameIdentifier string `json:"game_identifier"`
	Name           string `json:"name"`
	Description    string `json:"description,omitempty"`
}

// PracticeLevelWithGames decorates a level with its games and the caller's
// unlock state.
type PracticeLevelWithGames struct {
	PracticeLevel
	Games    []PracticeGame `json:"games"`
	Unlocked bool           `json:"unlocked"`
	Progress int            `json:"progress"`
}

// UserPracticeProgress is the scored counterpart of UserProgress, one row per
// (account, level, game). High score only ever increases.
type UserPracticeProgress struct {
	UserID    int64     `json:"user_id"`
	LevelID   int64     `json:"level_id"`
	GameID    int64     `json:"game_id"`
	HighScore int       `json:"high_score"`
	Progress  int       `json:"progress"`
	Completed bool      `json:"completed"`
	UpdatedAt time.Time `json:"updated_at"`
}
