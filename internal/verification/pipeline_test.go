package verification_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/senya/senya/internal/classifier"
	apperrors "github.com/senya/senya/internal/errors"
	"github.com/senya/senya/internal/testutil/mocks"
	"github.com/senya/senya/internal/verification"
)

// pngHeader is enough for content type sniffing to see image/png.
var pngHeader = []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A, 0, 0, 0, 0}

func TestVerify_CorrectLabel(t *testing.T) {
	mc := new(mocks.MockClassifier)
	mc.On("Classify", mock.Anything, mock.Anything).
		Return(classifier.Prediction{Label: "Hello", Confidence: 0.93}, nil)

	p := verification.NewPipeline(mc)
	result, err := p.Verify(context.Background(), pngHeader, "hello")
	require.NoError(t, err)

	// Label comparison ignores case and surrounding whitespace.
	assert.True(t, result.IsCorrect)
	assert.Equal(t, 0.93, result.Confidence)
	assert.Equal(t, "Hello", result.DetectedLabel)
	assert.Equal(t, "hello", result.ExpectedLabel)
}

func TestVerify_WrongLabel(t *testing.T) {
	mc := new(mocks.MockClassifier)
	mc.On("Classify", mock.Anything, mock.Anything).
		Return(classifier.Prediction{Label: "goodbye", Confidence: 0.88}, nil)

	p := verification.NewPipeline(mc)
	result, err := p.Verify(context.Background(), pngHeader, "hello")
	require.NoError(t, err)
	assert.False(t, result.IsCorrect)
}

func TestVerify_EmptyPayload(t *testing.T) {
	mc := new(mocks.MockClassifier)
	p := verification.NewPipeline(mc)

	_, err := p.Verify(context.Background(), nil, "hello")
	require.Error(t, err)

	appErr, ok := err.(*apperrors.AppError)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrCodeInvalidImage, appErr.Code)
	mc.AssertNotCalled(t, "Classify", mock.Anything, mock.Anything)
}

func TestVerify_NonImagePayload(t *testing.T) {
	mc := new(mocks.MockClassifier)
	p := verification.NewPipeline(mc)

	_, err := p.Verify(context.Background(), []byte("{\"not\": \"an image\"}"), "hello")
	require.Error(t, err)

	appErr, ok := err.(*apperrors.AppError)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrCodeInvalidImage, appErr.Code)
}

func TestVerify_ClassifierDown(t *testing.T) {
	mc := new(mocks.MockClassifier)
	mc.On("Classify", mock.Anything, mock.Anything).
		Return(classifier.Prediction{}, classifier.ErrUnavailable)

	p := verification.NewPipeline(mc)
	_, err := p.Verify(context.Background(), pngHeader, "hello")
	require.Error(t, err)

	appErr, ok := err.(*apperrors.AppError)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrCodeClassifierUnavailable, appErr.Code)
	assert.Equal(t, 503, appErr.Status)
}

func TestVerify_ClassifierRejectsImage(t *testing.T) {
	mc := new(mocks.MockClassifier)
	mc.On("Classify", mock.Anything, mock.Anything).
		Return(classifier.Prediction{}, classifier.ErrRejected)

	p := verification.NewPipeline(mc)
	_, err := p.Verify(context.Background(), pngHeader, "hello")
	require.Error(t, err)

	appErr, ok := err.(*apperrors.AppError)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrCodeInvalidImage, appErr.Code)
}
