package service

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockReceiptStore is a mock of service.ReceiptStore.
type MockReceiptStore struct {
	mock.Mock
}

// MockReceiptStore_Expecter records expectations on MockReceiptStore.
type MockReceiptStore_Expecter struct {
	mock *mock.Mock
}

// NewMockReceiptStore creates a mock that asserts its expectations on test cleanup.
func NewMockReceiptStore(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockReceiptStore {
	m := &MockReceiptStore{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockReceiptStore) EXPECT() *MockReceiptStore_Expecter {
	return &MockReceiptStore_Expecter{mock: &m.Mock}
}

func (m *MockReceiptStore) Get(ctx context.Context, key string) ([]byte, error) {
	ret := m.Called(ctx, key)
	data, _ := ret.Get(0).([]byte)

	return data, ret.Error(1)
}

func (e *MockReceiptStore_Expecter) Get(ctx, key any) *mock.Call {
	return e.mock.On("Get", ctx, key)
}

func (m *MockReceiptStore) Put(ctx context.Context, key string, data []byte, contentType string) error {
	return m.Called(ctx, key, data, contentType).Error(0)
}

func (e *MockReceiptStore_Expecter) Put(ctx, key, data, contentType any) *mock.Call {
	return e.mock.On("Put", ctx, key, data, contentType)
}
