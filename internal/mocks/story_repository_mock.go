package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"heavytime-server/internal/interfaces"
	"heavytime-server/internal/models"
)

// MockStoryRepository is a mock type for the StoryRepository type
type MockStoryRepository struct {
	mock.Mock
}

// Create provides a mock function with given fields: ctx, story
func (_m *MockStoryRepository) Create(ctx context.Context, story *models.Story) error {
	ret := _m.Called(ctx, story)

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, *models.Story) error); ok {
		r0 = rf(ctx, story)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// GetByID provides a mock function with given fields: ctx, id
func (_m *MockStoryRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Story, error) {
	ret := _m.Called(ctx, id)

	var r0 *models.Story
	if rf, ok := ret.Get(0).(func(context.Context, uuid.UUID) *models.Story); ok {
		r0 = rf(ctx, id)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).(*models.Story)
		}
	}

	var r1 error
	if rf, ok := ret.Get(1).(func(context.Context, uuid.UUID) error); ok {
		r1 = rf(ctx, id)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// List provides a mock function with given fields: ctx, limit
func (_m *MockStoryRepository) List(ctx context.Context, limit int) ([]*models.Story, error) {
	ret := _m.Called(ctx, limit)

	var r0 []*models.Story
	if rf, ok := ret.Get(0).(func(context.Context, int) []*models.Story); ok {
		r0 = rf(ctx, limit)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).([]*models.Story)
		}
	}

	var r1 error
	if rf, ok := ret.Get(1).(func(context.Context, int) error); ok {
		r1 = rf(ctx, limit)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// UpdatePoemText provides a mock function with given fields: ctx, id, poemText
func (_m *MockStoryRepository) UpdatePoemText(ctx context.Context, id uuid.UUID, poemText string) error {
	ret := _m.Called(ctx, id, poemText)

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, uuid.UUID, string) error); ok {
		r0 = rf(ctx, id, poemText)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// UpdatePoemAudio provides a mock function with given fields: ctx, id, audioURL
func (_m *MockStoryRepository) UpdatePoemAudio(ctx context.Context, id uuid.UUID, audioURL string) error {
	ret := _m.Called(ctx, id, audioURL)

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, uuid.UUID, string) error); ok {
		r0 = rf(ctx, id, audioURL)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// UpdateComicImage provides a mock function with given fields: ctx, id, comicURL
func (_m *MockStoryRepository) UpdateComicImage(ctx context.Context, id uuid.UUID, comicURL string) error {
	ret := _m.Called(ctx, id, comicURL)

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, uuid.UUID, string) error); ok {
		r0 = rf(ctx, id, comicURL)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// NewMockStoryRepository creates a new instance of MockStoryRepository. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
// The first argument is typically a *testing.T value.
func NewMockStoryRepository(t interface {
	mock.TestingT
	Helper()
}) *MockStoryRepository {
	m := &MockStoryRepository{}
	m.Mock.Test(t)
	t.Helper()
	return m
}

var _ interfaces.StoryRepository = (*MockStoryRepository)(nil)
