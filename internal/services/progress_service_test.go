package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/senya/senya/internal/classifier"
	apperrors "github.com/senya/senya/internal/errors"
	"github.com/senya/senya/internal/models"
	"github.com/senya/senya/internal/repository"
	"github.com/senya/senya/internal/services"
	"github.com/senya/senya/internal/testutil/mocks"
	"github.com/senya/senya/internal/verification"
)

var pngHeader = []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A, 0, 0, 0, 0}

type progressFixture struct {
	progress   *mocks.MockProgressRepository
	catalog    *mocks.MockCatalogRepository
	profiles   *mocks.MockProfileRepository
	classifier *mocks.MockClassifier
	service    *services.ProgressService
}

func newProgressFixture() *progressFixture {
	f := &progressFixture{
		progress:   new(mocks.MockProgressRepository),
		catalog:    new(mocks.MockCatalogRepository),
		profiles:   new(mocks.MockProfileRepository),
		classifier: new(mocks.MockClassifier),
	}
	pipeline := verification.NewPipeline(f.classifier)
	f.service = services.NewProgressService(f.progress, f.catalog, f.profiles, pipeline, 0.70, 5)
	return f
}

func threeSignLesson() *models.Lesson {
	return &models.Lesson{
		ID:           7,
		UnitID:       1,
		Title:        "Greetings",
		RubiesReward: 10,
		Signs: []models.Sign{
			{ID: 1, LessonID: 7, Text: "hello"},
			{ID: 2, LessonID: 7, Text: "thanks"},
			{ID: 3, LessonID: 7, Text: "goodbye"},
		},
	}
}

func TestAdvance_PassMovesCursor(t *testing.T) {
	f := newProgressFixture()
	ctx := context.Background()

	f.catalog.On("GetLesson", mock.Anything, int64(7), false).Return(threeSignLesson(), nil)
	f.progress.On("Get", mock.Anything, int64(42), int64(7)).
		Return(&models.UserProgress{UserID: 42, LessonID: 7, LastQuestion: 0}, nil)
	f.profiles.On("Get", mock.Anything, int64(42)).
		Return(&models.UserProfile{UserID: 42, Hearts: 5}, nil).Once()
	f.classifier.On("Classify", mock.Anything, mock.Anything).
		Return(classifier.Prediction{Label: "hello", Confidence: 0.91}, nil)
	f.progress.On("ApplyAdvance", mock.Anything, mock.MatchedBy(func(m models.AdvanceMutation) bool {
		return m.NewLastQuestion == 1 && m.NewProgress == 33 && !m.Completed && !m.SpendHeart && m.RubiesDelta == 0
	})).Return(nil)
	f.profiles.On("Get", mock.Anything, int64(42)).
		Return(&models.UserProfile{UserID: 42, Hearts: 5}, nil)

	result, err := f.service.Advance(ctx, 42, 7, pngHeader)
	require.NoError(t, err)
	assert.True(t, result.IsCorrect)
	assert.Equal(t, 33, result.Progress)
	assert.False(t, result.Completed)
	assert.Equal(t, 5, result.HeartsRemaining)
	assert.Equal(t, 0, result.RubiesEarned)
}

func TestAdvance_FinalPassCompletesAndRewards(t *testing.T) {
	f := newProgressFixture()
	ctx := context.Background()

	f.catalog.On("GetLesson", mock.Anything, int64(7), false).Return(threeSignLesson(), nil)
	f.progress.On("Get", mock.Anything, int64(42), int64(7)).
		Return(&models.UserProgress{UserID: 42, LessonID: 7, Progress: 66, LastQuestion: 2}, nil)
	f.profiles.On("Get", mock.Anything, int64(42)).
		Return(&models.UserProfile{UserID: 42, Hearts: 3}, nil).Once()
	f.classifier.On("Classify", mock.Anything, mock.Anything).
		Return(classifier.Prediction{Label: "goodbye", Confidence: 0.85}, nil)
	f.progress.On("ApplyAdvance", mock.Anything, mock.MatchedBy(func(m models.AdvanceMutation) bool {
		return m.NewLastQuestion == 3 && m.NewProgress == 100 && m.Completed && m.RubiesDelta == 10
	})).Return(nil)
	f.profiles.On("Get", mock.Anything, int64(42)).
		Return(&models.UserProfile{UserID: 42, Hearts: 3, Rubies: 10}, nil)

	result, err := f.service.Advance(ctx, 42, 7, pngHeader)
	require.NoError(t, err)
	assert.True(t, result.Completed)
	assert.Equal(t, 100, result.Progress)
	assert.Equal(t, 10, result.RubiesEarned)
}

func TestAdvance_FailSpendsHeartKeepsCursor(t *testing.T) {
	f := newProgressFixture()
	ctx := context.Background()

	f.catalog.On("GetLesson", mock.Anything, int64(7), false).Return(threeSignLesson(), nil)
	f.progress.On("Get", mock.Anything, int64(42), int64(7)).
		Return(&models.UserProgress{UserID: 42, LessonID: 7, Progress: 33, LastQuestion: 1}, nil)
	f.profiles.On("Get", mock.Anything, int64(42)).
		Return(&models.UserProfile{UserID: 42, Hearts: 2}, nil).Once()
	f.classifier.On("Classify", mock.Anything, mock.Anything).
		Return(classifier.Prediction{Label: "hello", Confidence: 0.95}, nil) // expected "thanks"
	f.progress.On("ApplyAdvance", mock.Anything, mock.MatchedBy(func(m models.AdvanceMutation) bool {
		return m.NewLastQuestion == 1 && m.NewProgress == 33 && m.SpendHeart && !m.Completed
	})).Return(nil)
	f.profiles.On("Get", mock.Anything, int64(42)).
		Return(&models.UserProfile{UserID: 42, Hearts: 1}, nil)

	result, err := f.service.Advance(ctx, 42, 7, pngHeader)
	require.NoError(t, err)
	assert.False(t, result.IsCorrect)
	assert.Equal(t, 33, result.Progress)
	assert.Equal(t, 1, result.HeartsRemaining)
}

func TestAdvance_CorrectLabelBelowThresholdFails(t *testing.T) {
	f := newProgressFixture()
	ctx := context.Background()

	f.catalog.On("GetLesson", mock.Anything, int64(7), false).Return(threeSignLesson(), nil)
	f.progress.On("Get", mock.Anything, int64(42), int64(7)).
		Return(&models.UserProgress{UserID: 42, LessonID: 7, LastQuestion: 0}, nil)
	f.profiles.On("Get", mock.Anything, int64(42)).
		Return(&models.UserProfile{UserID: 42, Hearts: 5}, nil).Once()
	f.classifier.On("Classify", mock.Anything, mock.Anything).
		Return(classifier.Prediction{Label: "hello", Confidence: 0.55}, nil)
	f.progress.On("ApplyAdvance", mock.Anything, mock.MatchedBy(func(m models.AdvanceMutation) bool {
		return m.SpendHeart && m.NewLastQuestion == 0
	})).Return(nil)
	f.profiles.On("Get", mock.Anything, int64(42)).
		Return(&models.UserProfile{UserID: 42, Hearts: 4}, nil)

	result, err := f.service.Advance(ctx, 42, 7, pngHeader)
	require.NoError(t, err)
	assert.False(t, result.IsCorrect)
}

func TestAdvance_ConfidenceAtThresholdFails(t *testing.T) {
	f := newProgressFixture()
	ctx := context.Background()

	f.catalog.On("GetLesson", mock.Anything, int64(7), false).Return(threeSignLesson(), nil)
	f.progress.On("Get", mock.Anything, int64(42), int64(7)).
		Return(&models.UserProgress{UserID: 42, LessonID: 7, LastQuestion: 0}, nil)
	f.profiles.On("Get", mock.Anything, int64(42)).
		Return(&models.UserProfile{UserID: 42, Hearts: 5}, nil).Once()
	f.classifier.On("Classify", mock.Anything, mock.Anything).
		Return(classifier.Prediction{Label: "hello", Confidence: 0.70}, nil)
	f.progress.On("ApplyAdvance", mock.Anything, mock.MatchedBy(func(m models.AdvanceMutation) bool {
		return m.SpendHeart && m.NewLastQuestion == 0 && m.NewProgress == 0
	})).Return(nil)
	f.profiles.On("Get", mock.Anything, int64(42)).
		Return(&models.UserProfile{UserID: 42, Hearts: 4}, nil)

	result, err := f.service.Advance(ctx, 42, 7, pngHeader)
	require.NoError(t, err)
	assert.False(t, result.IsCorrect)
	assert.Equal(t, 0, result.Progress)
	assert.Equal(t, 4, result.HeartsRemaining)
}

func TestAdvance_NoHeartsRejectsBeforeClassifier(t *testing.T) {
	f := newProgressFixture()
	ctx := context.Background()

	f.catalog.On("GetLesson", mock.Anything, int64(7), false).Return(threeSignLesson(), nil)
	f.progress.On("Get", mock.Anything, int64(42), int64(7)).
		Return(&models.UserProgress{UserID: 42, LessonID: 7, LastQuestion: 1}, nil)
	f.profiles.On("Get", mock.Anything, int64(42)).
		Return(&models.UserProfile{UserID: 42, Hearts: 0, Rubies: 15}, nil)

	_, err := f.service.Advance(ctx, 42, 7, pngHeader)
	require.Error(t, err)

	appErr, ok := err.(*apperrors.AppError)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrCodeNoHearts, appErr.Code)
	assert.Equal(t, 409, appErr.Status)
	assert.Equal(t, 15, appErr.Details["rubies"])
	f.classifier.AssertNotCalled(t, "Classify", mock.Anything, mock.Anything)
}

func TestAdvance_CompletedLessonIsNoOp(t *testing.T) {
	f := newProgressFixture()
	ctx := context.Background()

	f.catalog.On("GetLesson", mock.Anything, int64(7), false).Return(threeSignLesson(), nil)
	f.progress.On("Get", mock.Anything, int64(42), int64(7)).
		Return(&models.UserProgress{UserID: 42, LessonID: 7, Progress: 100, Completed: true, LastQuestion: 3}, nil)
	f.profiles.On("Get", mock.Anything, int64(42)).
		Return(&models.UserProfile{UserID: 42, Hearts: 4}, nil)

	result, err := f.service.Advance(ctx, 42, 7, pngHeader)
	require.NoError(t, err)
	assert.True(t, result.Completed)
	assert.Equal(t, 100, result.Progress)
	f.classifier.AssertNotCalled(t, "Classify", mock.Anything, mock.Anything)
	f.progress.AssertNotCalled(t, "ApplyAdvance", mock.Anything, mock.Anything)
}

func TestAdvance_FirstAttemptCreatesRow(t *testing.T) {
	f := newProgressFixture()
	ctx := context.Background()

	f.catalog.On("GetLesson", mock.Anything, int64(7), false).Return(threeSignLesson(), nil)
	f.progress.On("Get", mock.Anything, int64(42), int64(7)).Return(nil, nil)
	f.progress.On("Create", mock.Anything, int64(42), int64(7)).
		Return(&models.UserProgress{UserID: 42, LessonID: 7}, nil)
	f.profiles.On("Get", mock.Anything, int64(42)).
		Return(&models.UserProfile{UserID: 42, Hearts: 5}, nil)
	f.classifier.On("Classify", mock.Anything, mock.Anything).
		Return(classifier.Prediction{Label: "hello", Confidence: 0.91}, nil)
	f.progress.On("ApplyAdvance", mock.Anything, mock.Anything).Return(nil)

	result, err := f.service.Advance(ctx, 42, 7, pngHeader)
	require.NoError(t, err)
	assert.Equal(t, 33, result.Progress)
	f.progress.AssertCalled(t, "Create", mock.Anything, int64(42), int64(7))
}

func TestAdvance_ZeroSignLessonCompletesImmediately(t *testing.T) {
	f := newProgressFixture()
	ctx := context.Background()

	empty := &models.Lesson{ID: 9, UnitID: 1, Title: "Intro", RubiesReward: 5}
	f.catalog.On("GetLesson", mock.Anything, int64(9), false).Return(empty, nil)
	f.progress.On("Get", mock.Anything, int64(42), int64(9)).Return(nil, nil)
	f.progress.On("Create", mock.Anything, int64(42), int64(9)).
		Return(&models.UserProgress{UserID: 42, LessonID: 9}, nil)
	f.profiles.On("Get", mock.Anything, int64(42)).
		Return(&models.UserProfile{UserID: 42, Hearts: 5}, nil)
	f.progress.On("ApplyAdvance", mock.Anything, mock.MatchedBy(func(m models.AdvanceMutation) bool {
		return m.Completed && m.NewProgress == 100 && m.RubiesDelta == 5 && !m.SpendHeart
	})).Return(nil)

	result, err := f.service.Advance(ctx, 42, 9, pngHeader)
	require.NoError(t, err)
	assert.True(t, result.Completed)
	assert.Equal(t, 100, result.Progress)
	assert.Equal(t, 5, result.RubiesEarned)
	f.classifier.AssertNotCalled(t, "Classify", mock.Anything, mock.Anything)
}

func TestAdvance_StaleGuardMapsToConflict(t *testing.T) {
	f := newProgressFixture()
	ctx := context.Background()

	f.catalog.On("GetLesson", mock.Anything, int64(7), false).Return(threeSignLesson(), nil)
	f.progress.On("Get", mock.Anything, int64(42), int64(7)).
		Return(&models.UserProgress{UserID: 42, LessonID: 7, LastQuestion: 0}, nil)
	f.profiles.On("Get", mock.Anything, int64(42)).
		Return(&models.UserProfile{UserID: 42, Hearts: 5}, nil)
	f.classifier.On("Classify", mock.Anything, mock.Anything).
		Return(classifier.Prediction{Label: "hello", Confidence: 0.91}, nil)
	f.progress.On("ApplyAdvance", mock.Anything, mock.Anything).
		Return(repository.ErrStaleProgress)

	_, err := f.service.Advance(ctx, 42, 7, pngHeader)
	require.Error(t, err)

	appErr, ok := err.(*apperrors.AppError)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrCodeConflict, appErr.Code)
}

func TestAdvance_ClassifierDownLeavesStateUntouched(t *testing.T) {
	f := newProgressFixture()
	ctx := context.Background()

	f.catalog.On("GetLesson", mock.Anything, int64(7), false).Return(threeSignLesson(), nil)
	f.progress.On("Get", mock.Anything, int64(42), int64(7)).
		Return(&models.UserProgress{UserID: 42, LessonID: 7, LastQuestion: 1}, nil)
	f.profiles.On("Get", mock.Anything, int64(42)).
		Return(&models.UserProfile{UserID: 42, Hearts: 3}, nil)
	f.classifier.On("Classify", mock.Anything, mock.Anything).
		Return(classifier.Prediction{}, classifier.ErrUnavailable)

	_, err := f.service.Advance(ctx, 42, 7, pngHeader)
	require.Error(t, err)

	appErr, ok := err.(*apperrors.AppError)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrCodeClassifierUnavailable, appErr.Code)
	f.progress.AssertNotCalled(t, "ApplyAdvance", mock.Anything, mock.Anything)
}

func TestAdvance_CursorPastSignListIsInconsistent(t *testing.T) {
	f := newProgressFixture()
	ctx := context.Background()

	f.catalog.On("GetLesson", mock.Anything, int64(7), false).Return(threeSignLesson(), nil)
	f.progress.On("Get", mock.Anything, int64(42), int64(7)).
		Return(&models.UserProgress{UserID: 42, LessonID: 7, LastQuestion: 5}, nil)
	f.profiles.On("Get", mock.Anything, int64(42)).
		Return(&models.UserProfile{UserID: 42, Hearts: 5}, nil)

	_, err := f.service.Advance(ctx, 42, 7, pngHeader)
	require.Error(t, err)

	appErr, ok := err.(*apperrors.AppError)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrCodeInconsistentState, appErr.Code)
}

func TestVerifySign_Stateless(t *testing.T) {
	f := newProgressFixture()
	ctx := context.Background()

	f.catalog.On("GetSign", mock.Anything, int64(3)).
		Return(&models.Sign{ID: 3, Text: "goodbye"}, nil)
	f.classifier.On("Classify", mock.Anything, mock.Anything).
		Return(classifier.Prediction{Label: "goodbye", Confidence: 0.80}, nil)

	result, err := f.service.VerifySign(ctx, 3, pngHeader)
	require.NoError(t, err)
	assert.True(t, result.IsCorrect)
	f.progress.AssertNotCalled(t, "ApplyAdvance", mock.Anything, mock.Anything)
	f.profiles.AssertNotCalled(t, "SpendHeart", mock.Anything, mock.Anything)
}

func TestVerifySign_ReportsRawMatchBelowThreshold(t *testing.T) {
	f := newProgressFixture()

	f.catalog.On("GetSign", mock.Anything, int64(3)).
		Return(&models.Sign{ID: 3, Text: "goodbye"}, nil)
	f.classifier.On("Classify", mock.Anything, mock.Anything).
		Return(classifier.Prediction{Label: "goodbye", Confidence: 0.40}, nil)

	result, err := f.service.VerifySign(context.Background(), 3, pngHeader)
	require.NoError(t, err)
	assert.True(t, result.IsCorrect)
	assert.Equal(t, 0.40, result.Confidence)
}

func TestVerifySign_UnknownSign(t *testing.T) {
	f := newProgressFixture()

	f.catalog.On("GetSign", mock.Anything, int64(99)).Return(nil, nil)

	_, err := f.service.VerifySign(context.Background(), 99, pngHeader)
	require.Error(t, err)

	appErr, ok := err.(*apperrors.AppError)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrCodeNotFound, appErr.Code)
}
