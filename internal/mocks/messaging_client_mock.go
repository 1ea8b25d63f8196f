package mocks

import (
	"context"

	"invoice-notifier/internal/service"

	fcm "firebase.google.com/go/v4/messaging"
	"github.com/stretchr/testify/mock"
)

// MockMessagingClient is a mock type for the MessagingClient type
type MockMessagingClient struct {
	mock.Mock
}

// Send provides a mock function with given fields: ctx, message
func (_m *MockMessagingClient) Send(ctx context.Context, message *fcm.Message) (string, error) {
	ret := _m.Called(ctx, message)
	return ret.String(0), ret.Error(1)
}

// SendDryRun provides a mock function with given fields: ctx, message
func (_m *MockMessagingClient) SendDryRun(ctx context.Context, message *fcm.Message) (string, error) {
	ret := _m.Called(ctx, message)
	return ret.String(0), ret.Error(1)
}

// NewMockMessagingClient creates a new instance of MockMessagingClient. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewMockMessagingClient(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockMessagingClient {
	m := &MockMessagingClient{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

var _ service.MessagingClient = (*MockMessagingClient)(nil)
