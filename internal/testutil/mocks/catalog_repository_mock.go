package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/senya/senya/internal/models"
)

// MockCatalogRepository is a mock implementation of repository.CatalogRepository
type MockCatalogRepository struct {
	mock.Mock
}

func (m *MockCatalogRepository) ListUnits(ctx context.Context, includeArchived bool) ([]models.Unit, error) {
	args := m.Called(ctx, includeArchived)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Unit), args.Error(1)
}

func (m *MockCatalogRepository) GetUnit(ctx context.Context, id int64, includeArchived bool) (*models.Unit, error) {
	args := m.Called(ctx, id, includeArchived)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Unit), args.Error(1)
}

func (m *MockCatalogRepository) ListLessonsByUnit(ctx context.Context, unitID int64, includeArchived bool) ([]models.Lesson, error) {
	args := m.Called(ctx, unitID, includeArchived)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Lesson), args.Error(1)
}

func (m *MockCatalogRepository) GetLesson(ctx context.Context, id int64, includeArchived bool) (*models.Lesson, error) {
	args := m.Called(ctx, id, includeArchived)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Lesson), args.Error(1)
}

func (m *MockCatalogRepository) GetSign(ctx context.Context, id int64) (*models.Sign, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Sign), args.Error(1)
}

func (m *MockCatalogRepository) CreateUnit(ctx context.Context, unit models.Unit) (int64, error) {
	args := m.Called(ctx, unit)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCatalogRepository) UpdateUnit(ctx context.Context, unit models.Unit) error {
	args := m.Called(ctx, unit)
	return args.Error(0)
}

func (m *MockCatalogRepository) ArchiveUnit(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCatalogRepository) CreateLesson(ctx context.Context, lesson models.Lesson) (int64, error) {
	args := m.Called(ctx, lesson)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCatalogRepository) UpdateLesson(ctx context.Context, lesson models.Lesson) error {
	args := m.Called(ctx, lesson)
	return args.Error(0)
}

func (m *MockCatalogRepository) ArchiveLesson(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCatalogRepository) CreateSign(ctx context.Context, sign models.Sign) (int64, error) {
	args := m.Called(ctx, sign)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCatalogRepository) ArchiveSign(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
