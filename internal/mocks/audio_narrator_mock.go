package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"heavytime-server/internal/service"
)

// MockAudioNarrator is a mock type for the AudioNarrator type
type MockAudioNarrator struct {
	mock.Mock
}

// Narrate provides a mock function with given fields: ctx, text
func (_m *MockAudioNarrator) Narrate(ctx context.Context, text string) (*service.AudioResult, error) {
	ret := _m.Called(ctx, text)

	var r0 *service.AudioResult
	if rf, ok := ret.Get(0).(func(context.Context, string) *service.AudioResult); ok {
		r0 = rf(ctx, text)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).(*service.AudioResult)
		}
	}

	var r1 error
	if rf, ok := ret.Get(1).(func(context.Context, string) error); ok {
		r1 = rf(ctx, text)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// NewMockAudioNarrator creates a new instance of MockAudioNarrator. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
// The first argument is typically a *testing.T value.
func NewMockAudioNarrator(t interface {
	mock.TestingT
	Helper()
}) *MockAudioNarrator {
	m := &MockAudioNarrator{}
	m.Mock.Test(t)
	t.Helper()
	return m
}

var _ service.AudioNarrator = (*MockAudioNarrator)(nil)
