package models

import "time"

// Unit statuses as shown to learners.
const (
	UnitLocked    = "locked"
	UnitUnlocked  = "unlocked"
	UnitCompleted = "completed"
)

// Sign difficulty tiers.
const (
	DifficultyBeginner     = "beginner"
	DifficultyIntermediate = "intermediate"
	DifficultyAdvanced     = "advanced"
)

// Unit is an ordered container of lessons.
type Unit struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	OrderIndex  int       `json:"order_index"`
	Status      string    `json:"status"`
	Archived    bool      `json:"archived"`
	CreatedAt   time.Time `json:"created_at"`
}

// Lesson belongs to exactly one unit and holds an ordered sign sequence.
// Signs is populated only by lookups that request it.
type Lesson struct {
	ID           int64     `json:"id"`
	UnitID       int64     `json:"unit_id"`
	Title        string    `json:"title"`
	Description  string    `json:"description,omitempty"`
	ImageURL     string    `json:"image_url,omitempty"`
	RubiesReward int       `json:"rubies_reward"`
	OrderIndex   int       `json:"order_index"`
	Archived     bool      `json:"archived"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	Signs        []Sign    `json:"signs,omitempty"`
}

// Sign is a single gesture to learn, the unit of verification.
type Sign struct {
	ID              int64     `json:"id"`
	LessonID        int64     `json:"lesson_id"`
	Text            string    `json:"text"`
	VideoURL        string    `json:"video_url,omitempty"`
	DifficultyLevel string    `json:"difficulty_level"`
	Archived        bool      `json:"archived"`
	CreatedAt       time.Time `json:"created_at"`
}

// UnitWithLessons is a unit decorated with its lessons for learner-facing views.
type UnitWithLessons struct {
	Unit
	Lessons []Lesson `json:"lessons"`
}
