package models

import "time"

// AccountEvent is one raw signup or login occurrence inside an analytics
// window, prior to day bucketing.
type AccountEvent struct {
	Name string
	At   time.Time
}

// OverviewReport is the admin dashboard headline counters.
type OverviewReport struct {
	TotalUsers          int     `json:"total_users"`
	ActiveUsersLastWeek int     `json:"active_users_last_week"`
	TotalUnits          int     `json:"total_units"`
	TotalLessons        int     `json:"total_lessons"`
	TotalSigns          int     `json:"total_signs"`
	CompletedLessons    int     `json:"completed_lessons"`
	AverageStreak       float64 `json:"average_streak"`
	TotalRubiesEarned   int     `json:"total_rubies_earned"`
}

// DailyCount is one calendar-day bucket with the names that fell into it.
type DailyCount struct {
	Date  string   `json:"date"`
	Count int      `json:"count"`
	Names []string `json:"names"`
}

// UserStreak is a leaderboard entry by streak.
type UserStreak struct {
	Username string `json:"username"`
	Streak   int    `json:"streak"`
}

// UserCompletion is a leaderboard entry by completed lessons.
type UserCompletion struct {
	Username         string `json:"username"`
	CompletedLessons int    `json:"completed_lessons"`
}

// UserStatsReport covers the trailing 30-day engagement window: 31 daily
// buckets for signups and logins (zero-filled, gaps never omitted), the top-5
// leaderboards and the mean completed-lesson count per account.
type UserStatsReport struct {
	SignupsByDay            []DailyCount     `json:"signups_by_day"`
	LoginsByDay             []DailyCount     `json:"logins_by_day"`
	TopStreaks              []UserStreak     `json:"top_streaks"`
	TopCompletions          []UserCompletion `json:"top_completions"`
	AverageLessonsCompleted float64          `json:"average_lessons_completed"`
}

// LessonStat is the per-lesson attempt/completion aggregate.
// AverageProgress covers incomplete attempts only.
type LessonStat struct {
	LessonID        int64   `json:"lesson_id"`
	LessonTitle     string  `json:"lesson_title"`
	UnitID          int64   `json:"unit_id"`
	UnitTitle       string  `json:"unit_title"`
	TotalAttempts   int     `json:"total_attempts"`
	Completions     int     `json:"completions"`
	CompletionRate  float64 `json:"completion_rate"`
	AverageProgress float64 `json:"average_progress"`
}

// SignStat carries the synthetic per-sign error rate. The rate is derived
// from the difficulty tier alone, not measured from attempt data; it is a
// coarse proxy until per-sign attempt outcomes are recorded.
type SignStat struct {
	SignID          int64   `json:"sign_id"`
	SignText        string  `json:"sign_text"`
	DifficultyLevel string  `json:"difficulty_level"`
	LessonID        int64   `json:"lesson_id"`
	LessonTitle     string  `json:"lesson_title"`
	UnitID          int64   `json:"unit_id"`
	UnitTitle       string  `json:"unit_title"`
	ErrorRate       float64 `json:"error_rate"`
	Attempts        int     `json:"attempts"`
}

// FailedLessonStat ranks lessons by incomplete attempts.
type FailedLessonStat struct {
	LessonID      int64   `json:"lesson_id"`
	LessonTitle   string  `json:"lesson_title"`
	UnitTitle     string  `json:"unit_title"`
	TotalAttempts int     `json:"total_attempts"`
	Failures      int     `json:"failures"`
	FailureRate   float64 `json:"failure_rate"`
}
