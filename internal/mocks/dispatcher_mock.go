package mocks

import (
	"context"

	"invoice-notifier/internal/models"
	"invoice-notifier/internal/notifier"

	"github.com/stretchr/testify/mock"
)

// MockDispatcher is a mock type for the Dispatcher type
type MockDispatcher struct {
	mock.Mock
}

// Send provides a mock function with given fields: ctx, msg
func (_m *MockDispatcher) Send(ctx context.Context, msg models.Message) (string, error) {
	ret := _m.Called(ctx, msg)

	var r0 string
	if rf, ok := ret.Get(0).(func(context.Context, models.Message) string); ok {
		r0 = rf(ctx, msg)
	} else {
		r0 = ret.String(0)
	}

	var r1 error
	if rf, ok := ret.Get(1).(func(context.Context, models.Message) error); ok {
		r1 = rf(ctx, msg)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// NewMockDispatcher creates a new instance of MockDispatcher. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewMockDispatcher(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockDispatcher {
	m := &MockDispatcher{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

var _ notifier.Dispatcher = (*MockDispatcher)(nil)
