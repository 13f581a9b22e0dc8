package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"heavytime-server/internal/storage"
)

// MockImageLister is a mock type for the ImageLister type
type MockImageLister struct {
	mock.Mock
}

// ListImages provides a mock function with given fields: ctx, dateKey
func (_m *MockImageLister) ListImages(ctx context.Context, dateKey string) ([]string, error) {
	ret := _m.Called(ctx, dateKey)

	var r0 []string
	if rf, ok := ret.Get(0).(func(context.Context, string) []string); ok {
		r0 = rf(ctx, dateKey)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).([]string)
		}
	}

	var r1 error
	if rf, ok := ret.Get(1).(func(context.Context, string) error); ok {
		r1 = rf(ctx, dateKey)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// NewMockImageLister creates a new instance of MockImageLister. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
// The first argument is typically a *testing.T value.
func NewMockImageLister(t interface {
	mock.TestingT
	Helper()
}) *MockImageLister {
	m := &MockImageLister{}
	m.Mock.Test(t)
	t.Helper()
	return m
}

var _ storage.ImageLister = (*MockImageLister)(nil)
