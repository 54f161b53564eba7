package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/senya/senya/internal/classifier"
)

// MockClassifier is a mock implementation of classifier.Classifier
type MockClassifier struct {
	mock.Mock
}

func (m *MockClassifier) Classify(ctx context.Context, image []byte) (classifier.Prediction, error) {
	args := m.Called(ctx, image)
	return args.Get(0).(classifier.Prediction), args.Error(1)
}

func (m *MockClassifier) Status(ctx context.Context) (bool, error) {
	args := m.Called(ctx)
	return args.Bool(0), args.Error(1)
}
