package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apperrors "github.com/senya/senya/internal/errors"
	"github.com/senya/senya/internal/models"
	"github.com/senya/senya/internal/repository"
	"github.com/senya/senya/internal/services"
	"github.com/senya/senya/internal/testutil/mocks"
)

type practiceFixture struct {
	practice *mocks.MockPracticeRepository
	progress *mocks.MockProgressRepository
	profiles *mocks.MockProfileRepository
	service  *services.PracticeService
}

func newPracticeFixture() *practiceFixture {
	f := &practiceFixture{
		practice: new(mocks.MockPracticeRepository),
		progress: new(mocks.MockProgressRepository),
		profiles: new(mocks.MockProfileRepository),
	}
	f.service = services.NewPracticeService(f.practice, f.progress, f.profiles)
	return f
}

func TestListLevels_UnlockByOverallProgress(t *testing.T) {
	f := newPracticeFixture()

	f.practice.On("ListLevels", mock.Anything).Return([]models.PracticeLevelWithGames{
		{PracticeLevel: models.PracticeLevel{ID: 1, Name: "Warmup", RequiredProgress: 0}},
		{PracticeLevel: models.PracticeLevel{ID: 2, Name: "Drills", RequiredProgress: 50}},
		{PracticeLevel: models.PracticeLevel{ID: 3, Name: "Mastery", RequiredProgress: 100}},
	}, nil)
	f.progress.On("OverallProgress", mock.Anything, int64(1)).Return(50, nil)

	levels, err := f.service.ListLevels(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, levels, 3)
	assert.True(t, levels[0].Unlocked)
	assert.True(t, levels[1].Unlocked)
	assert.False(t, levels[2].Unlocked)
	assert.Equal(t, 50, levels[2].Progress)
}

func TestSubmitScore_LockedLevelForbidden(t *testing.T) {
	f := newPracticeFixture()

	f.practice.On("GetLevel", mock.Anything, int64(2)).
		Return(&models.PracticeLevel{ID: 2, Name: "Drills", RequiredProgress: 50}, nil)
	f.progress.On("OverallProgress", mock.Anything, int64(1)).Return(33, nil)

	_, err := f.service.SubmitScore(context.Background(), 1, 2, "memory", 80, 0)
	require.Error(t, err)

	appErr, ok := err.(*apperrors.AppError)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrCodeForbidden, appErr.Code)
	f.practice.AssertNotCalled(t, "UpsertScore", mock.Anything, mock.Anything)
}

func TestSubmitScore_RecordsRun(t *testing.T) {
	f := newPracticeFixture()

	f.practice.On("GetLevel", mock.Anything, int64(1)).
		Return(&models.PracticeLevel{ID: 1, Name: "Warmup", RequiredProgress: 0}, nil)
	f.progress.On("OverallProgress", mock.Anything, int64(1)).Return(10, nil)
	f.practice.On("GetGame", mock.Anything, int64(1), "memory").
		Return(&models.PracticeGame{ID: 4, LevelID: 1, GameIdentifier: "memory"}, nil)
	f.practice.On("UpsertScore", mock.Anything, mock.MatchedBy(func(p models.UserPracticeProgress) bool {
		return p.UserID == 1 && p.LevelID == 1 && p.GameID == 4 &&
			p.HighScore == 80 && p.Progress == 80 && !p.Completed
	})).Return(&models.UserPracticeProgress{UserID: 1, LevelID: 1, GameID: 4, HighScore: 80, Progress: 80}, nil)

	record, err := f.service.SubmitScore(context.Background(), 1, 1, "memory", 80, 0)
	require.NoError(t, err)
	assert.Equal(t, 80, record.HighScore)
	f.profiles.AssertNotCalled(t, "SpendHeart", mock.Anything, mock.Anything)
}

func TestSubmitScore_FullScoreCompletesCappedProgress(t *testing.T) {
	f := newPracticeFixture()

	f.practice.On("GetLevel", mock.Anything, int64(1)).
		Return(&models.PracticeLevel{ID: 1, RequiredProgress: 0}, nil)
	f.progress.On("OverallProgress", mock.Anything, int64(1)).Return(10, nil)
	f.practice.On("GetGame", mock.Anything, int64(1), "memory").
		Return(&models.PracticeGame{ID: 4, LevelID: 1, GameIdentifier: "memory"}, nil)
	f.practice.On("UpsertScore", mock.Anything, mock.MatchedBy(func(p models.UserPracticeProgress) bool {
		return p.HighScore == 150 && p.Progress == 100 && p.Completed
	})).Return(&models.UserPracticeProgress{UserID: 1, LevelID: 1, GameID: 4, HighScore: 150, Progress: 100, Completed: true}, nil)

	record, err := f.service.SubmitScore(context.Background(), 1, 1, "memory", 150, 0)
	require.NoError(t, err)
	assert.True(t, record.Completed)
}

func TestSubmitScore_SpendsLostHearts(t *testing.T) {
	f := newPracticeFixture()

	f.practice.On("GetLevel", mock.Anything, int64(1)).
		Return(&models.PracticeLevel{ID: 1, RequiredProgress: 0}, nil)
	f.progress.On("OverallProgress", mock.Anything, int64(1)).Return(10, nil)
	f.practice.On("GetGame", mock.Anything, int64(1), "memory").
		Return(&models.PracticeGame{ID: 4, LevelID: 1, GameIdentifier: "memory"}, nil)
	f.practice.On("UpsertScore", mock.Anything, mock.Anything).
		Return(&models.UserPracticeProgress{UserID: 1, LevelID: 1, GameID: 4, HighScore: 40, Progress: 40}, nil)
	f.profiles.On("SpendHeart", mock.Anything, int64(1)).
		Return(&models.UserProfile{UserID: 1, Hearts: 1}, nil).Once()
	f.profiles.On("SpendHeart", mock.Anything, int64(1)).
		Return(&models.UserProfile{UserID: 1, Hearts: 0}, nil).Once()

	_, err := f.service.SubmitScore(context.Background(), 1, 1, "memory", 40, 2)
	require.NoError(t, err)
	f.profiles.AssertNumberOfCalls(t, "SpendHeart", 2)
}

func TestSubmitScore_HeartSpendStopsAtEmptyBudget(t *testing.T) {
	f := newPracticeFixture()

	f.practice.On("GetLevel", mock.Anything, int64(1)).
		Return(&models.PracticeLevel{ID: 1, RequiredProgress: 0}, nil)
	f.progress.On("OverallProgress", mock.Anything, int64(1)).Return(10, nil)
	f.practice.On("GetGame", mock.Anything, int64(1), "memory").
		Return(&models.PracticeGame{ID: 4, LevelID: 1, GameIdentifier: "memory"}, nil)
	f.practice.On("UpsertScore", mock.Anything, mock.Anything).
		Return(&models.UserPracticeProgress{UserID: 1, LevelID: 1, GameID: 4, HighScore: 40, Progress: 40}, nil)
	f.profiles.On("SpendHeart", mock.Anything, int64(1)).
		Return(&models.UserProfile{UserID: 1, Hearts: 0}, nil).Once()
	f.profiles.On("SpendHeart", mock.Anything, int64(1)).
		Return(nil, repository.ErrNoHearts)

	// Running out of hearts mid-spend never fails the submission.
	record, err := f.service.SubmitScore(context.Background(), 1, 1, "memory", 40, 3)
	require.NoError(t, err)
	assert.Equal(t, 40, record.HighScore)
	f.profiles.AssertNumberOfCalls(t, "SpendHeart", 2)
}

func TestSubmitScore_Validation(t *testing.T) {
	f := newPracticeFixture()
	ctx := context.Background()

	_, err := f.service.SubmitScore(ctx, 1, 1, "memory", -1, 0)
	require.Error(t, err)

	_, err = f.service.SubmitScore(ctx, 1, 1, "memory", 10, -2)
	require.Error(t, err)
}

func TestSubmitScore_UnknownGame(t *testing.T) {
	f := newPracticeFixture()

	f.practice.On("GetLevel", mock.Anything, int64(1)).
		Return(&models.PracticeLevel{ID: 1, RequiredProgress: 0}, nil)
	f.progress.On("OverallProgress", mock.Anything, int64(1)).Return(0, nil)
	f.practice.On("GetGame", mock.Anything, int64(1), "unknown").Return(nil, nil)

	_, err := f.service.SubmitScore(context.Background(), 1, 1, "unknown", 10, 0)
	require.Error(t, err)

	appErr, ok := err.(*apperrors.AppError)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrCodeNotFound, appErr.Code)
}

func TestGameSigns_DifficultyAndLimit(t *testing.T) {
	f := newPracticeFixture()
	ctx := context.Background()

	_, err := f.service.GameSigns(ctx, "impossible", 10)
	require.Error(t, err)

	// Out-of-range limits fall back to the default.
	f.practice.On("ListSignsByDifficulty", mock.Anything, models.DifficultyBeginner, 10).
		Return([]models.Sign{{ID: 1, Text: "hello"}}, nil)

	signs, err := f.service.GameSigns(ctx, models.DifficultyBeginner, 0)
	require.NoError(t, err)
	require.Len(t, signs, 1)

	_, err = f.service.GameSigns(ctx, models.DifficultyBeginner, 500)
	require.NoError(t, err)
}
