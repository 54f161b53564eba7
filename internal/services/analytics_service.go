package services

import (
	"context"
	"math"
	"sort"
	"time"

	apperrors "github.com/senya/senya/internal/errors"
	"github.com/senya/senya/internal/logger"
	"github.com/senya/senya/internal/models"
	"github.com/senya/senya/internal/repository"
)

const (
	statsWindowDays = 30
	leaderboardSize = 5
	signReportLimit = 20
	failedReportLimit = 10
)

// Difficulty tiers stand in for measured failure rates until per-sign attempt
// outcomes are recorded.
var difficultyErrorRates = map[string]float64{
	models.DifficultyBeginner:     10,
	models.DifficultyIntermediate: 25,
	models.DifficultyAdvanced:     40,
}

// AnalyticsService aggregates reporting snapshots over persisted state. It is
// a pure read path: no report takes locks or mutates anything, and every
// snapshot is point-in-time consistent only per query.
type AnalyticsService struct {
	analytics repository.AnalyticsRepository
	now       func() time.Time
}

func NewAnalyticsService(analytics repository.AnalyticsRepository) *AnalyticsService {
	return &AnalyticsService{analytics: analytics, now: time.Now}
}

// Overview returns the dashboard headline counters. Active means a login
// within the trailing seven days.
func (s *AnalyticsService) Overview(ctx context.Context) (*models.OverviewReport, error) {
	report, err := s.analytics.Overview(ctx, s.now().UTC().AddDate(0, 0, -7))
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	report.AverageStreak = round1(report.AverageStreak)
	return report, nil
}

// UserStats covers the trailing 30-day engagement window: daily signup and
// login buckets, the top-5 leaderboards and the mean completed-lesson count.
func (s *AnalyticsService) UserStats(ctx context.Context) (*models.UserStatsReport, error) {
	log := logger.FromContext(ctx).WithPrefix("analytics_service")

	today := s.now().UTC().Truncate(24 * time.Hour)
	windowStart := today.AddDate(0, 0, -statsWindowDays)

	signups, err := s.analytics.SignupEvents(ctx, windowStart)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	logins, err := s.analytics.LoginEvents(ctx, windowStart)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	topStreaks, err := s.analytics.TopStreaks(ctx, leaderboardSize)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	topCompletions, err := s.analytics.TopCompletions(ctx, leaderboardSize)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	accounts, completions, err := s.analytics.AccountAndCompletionCounts(ctx)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	var avg float64
	if accounts > 0 {
		avg = round1(float64(completions) / float64(accounts))
	}

	log.Debug("user stats: window_start=%s signups=%d logins=%d", windowStart.Format("2006-01-02"), len(signups), len(logins))
	return &models.UserStatsReport{
		SignupsByDay:            bucketByDay(signups, windowStart, statsWindowDays+1),
		LoginsByDay:             bucketByDay(logins, windowStart, statsWindowDays+1),
		TopStreaks:              topStreaks,
		TopCompletions:          topCompletions,
		AverageLessonsCompleted: avg,
	}, nil
}

// bucketByDay spreads events over consecutive calendar-day buckets starting
// at windowStart. Every day appears, zero-filled; gaps are never omitted.
func bucketByDay(events []models.AccountEvent, windowStart time.Time, days int) []models.DailyCount {
	buckets := make([]models.DailyCount, days)
	for i := range buckets {
		buckets[i] = models.DailyCount{
			Date:  windowStart.AddDate(0, 0, i).Format("2006-01-02"),
			Names: []string{},
		}
	}
	for _, e := range events {
		day := int(e.At.UTC().Truncate(24 * time.Hour).Sub(windowStart).Hours() / 24)
		if day < 0 || day >= days {
			continue
		}
		buckets[day].Count++
		buckets[day].Names = append(buckets[day].Names, e.Name)
	}
	return buckets
}

// LessonAnalytics returns the per-lesson attempt/completion aggregates.
func (s *AnalyticsService) LessonAnalytics(ctx context.Context) ([]models.LessonStat, error) {
	stats, err := s.analytics.LessonStats(ctx)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	for i := range stats {
		stats[i].CompletionRate = round1(stats[i].CompletionRate)
		stats[i].AverageProgress = round1(stats[i].AverageProgress)
	}
	return stats, nil
}

// SignAnalytics returns the hardest signs by synthetic error rate,
// highest first.
func (s *AnalyticsService) SignAnalytics(ctx context.Context) ([]models.SignStat, error) {
	stats, err := s.analytics.SignStats(ctx)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	for i := range stats {
		stats[i].ErrorRate = difficultyErrorRates[stats[i].DifficultyLevel]
	}
	sort.SliceStable(stats, func(i, j int) bool {
		return stats[i].ErrorRate > stats[j].ErrorRate
	})
	if len(stats) > signReportLimit {
		stats = stats[:signReportLimit]
	}
	return stats, nil
}

// MostFailedLessons ranks lessons by incomplete attempts, ties broken by
// total attempts.
func (s *AnalyticsService) MostFailedLessons(ctx context.Context) ([]models.FailedLessonStat, error) {
	stats, err := s.analytics.MostFailedLessons(ctx, failedReportLimit)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	for i := range stats {
		stats[i].FailureRate = round1(stats[i].FailureRate)
	}
	return stats, nil
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
