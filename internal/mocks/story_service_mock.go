package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"heavytime-server/internal/models"
	"heavytime-server/internal/service"
)

// MockStoryService is a mock type for the StoryService type
type MockStoryService struct {
	mock.Mock
}

// CreateStory provides a mock function with given fields: ctx, title, photoURL
func (_m *MockStoryService) CreateStory(ctx context.Context, title string, photoURL string) (*models.Story, error) {
	ret := _m.Called(ctx, title, photoURL)

	var r0 *models.Story
	if rf, ok := ret.Get(0).(func(context.Context, string, string) *models.Story); ok {
		r0 = rf(ctx, title, photoURL)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).(*models.Story)
		}
	}

	var r1 error
	if rf, ok := ret.Get(1).(func(context.Context, string, string) error); ok {
		r1 = rf(ctx, title, photoURL)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// GetStory provides a mock function with given fields: ctx, id
func (_m *MockStoryService) GetStory(ctx context.Context, id uuid.UUID) (*models.Story, error) {
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

// ListStories provides a mock function with given fields: ctx, limit
func (_m *MockStoryService) ListStories(ctx context.Context, limit int) ([]*models.Story, error) {
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

// NewMockStoryService creates a new instance of MockStoryService. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
// The first argument is typically a *testing.T value.
func NewMockStoryService(t interface {
	mock.TestingT
	Helper()
}) *MockStoryService {
	m := &MockStoryService{}
	m.Mock.Test(t)
	t.Helper()
	return m
}

var _ service.StoryService = (*MockStoryService)(nil)
