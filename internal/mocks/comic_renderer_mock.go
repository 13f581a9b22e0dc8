package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"heavytime-server/internal/service"
)

// MockComicRenderer is a mock type for the ComicRenderer type
type MockComicRenderer struct {
	mock.Mock
}

// Render provides a mock function with given fields: ctx, poem, imageURL
func (_m *MockComicRenderer) Render(ctx context.Context, poem string, imageURL string) (*service.ComicResult, error) {
	ret := _m.Called(ctx, poem, imageURL)

	var r0 *service.ComicResult
	if rf, ok := ret.Get(0).(func(context.Context, string, string) *service.ComicResult); ok {
		r0 = rf(ctx, poem, imageURL)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).(*service.ComicResult)
		}
	}

	var r1 error
	if rf, ok := ret.Get(1).(func(context.Context, string, string) error); ok {
		r1 = rf(ctx, poem, imageURL)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// NewMockComicRenderer creates a new instance of MockComicRenderer. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
// The first argument is typically a *testing.T value.
func NewMockComicRenderer(t interface {
	mock.TestingT
	Helper()
}) *MockComicRenderer {
	m := &MockComicRenderer{}
	m.Mock.Test(t)
	t.Helper()
	return m
}

var _ service.ComicRenderer = (*MockComicRenderer)(nil)
