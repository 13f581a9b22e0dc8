package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"heavytime-server/internal/service"
)

// MockPoemGenerator is a mock type for the PoemGenerator type
type MockPoemGenerator struct {
	mock.Mock
}

// Generate provides a mock function with given fields: ctx, imageURL, title
func (_m *MockPoemGenerator) Generate(ctx context.Context, imageURL string, title string) (string, error) {
	ret := _m.Called(ctx, imageURL, title)

	var r0 string
	if rf, ok := ret.Get(0).(func(context.Context, string, string) string); ok {
		r0 = rf(ctx, imageURL, title)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).(string)
		}
	}

	var r1 error
	if rf, ok := ret.Get(1).(func(context.Context, string, string) error); ok {
		r1 = rf(ctx, imageURL, title)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// NewMockPoemGenerator creates a new instance of MockPoemGenerator. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
// The first argument is typically a *testing.T value.
func NewMockPoemGenerator(t interface {
	mock.TestingT
	Helper()
}) *MockPoemGenerator {
	m := &MockPoemGenerator{}
	m.Mock.Test(t)
	t.Helper()
	return m
}

var _ service.PoemGenerator = (*MockPoemGenerator)(nil)
