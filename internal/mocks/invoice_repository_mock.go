package mocks

import (
	"context"

	"invoice-notifier/internal/repository"

	"github.com/stretchr/testify/mock"
)

// MockInvoiceRepository is a mock type for the InvoiceRepository type
type MockInvoiceRepository struct {
	mock.Mock
}

// Put provides a mock function with given fields: ctx, documentID, fields
func (_m *MockInvoiceRepository) Put(ctx context.Context, documentID string, fields map[string]any) error {
	ret := _m.Called(ctx, documentID, fields)
	return ret.Error(0)
}

// Get provides a mock function with given fields: ctx, documentID
func (_m *MockInvoiceRepository) Get(ctx context.Context, documentID string) (map[string]any, error) {
	ret := _m.Called(ctx, documentID)

	var r0 map[string]any
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(map[string]any)
	}
	return r0, ret.Error(1)
}

// Delete provides a mock function with given fields: ctx, documentID
func (_m *MockInvoiceRepository) Delete(ctx context.Context, documentID string) error {
	ret := _m.Called(ctx, documentID)
	return ret.Error(0)
}

// NewMockInvoiceRepository creates a new instance of MockInvoiceRepository. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewMockInvoiceRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockInvoiceRepository {
	m := &MockInvoiceRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

var _ repository.InvoiceRepository = (*MockInvoiceRepository)(nil)
