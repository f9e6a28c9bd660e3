// Package service holds testify mocks of the domain service interfaces.
package service

import (
	"context"

	"marketplace/internal/domain/service"

	"github.com/stretchr/testify/mock"
)

// MockEventPublisher is a mock of service.EventPublisher.
type MockEventPublisher struct {
	mock.Mock
}

// MockEventPublisher_Expecter records expectations on MockEventPublisher.
type MockEventPublisher_Expecter struct {
	mock *mock.Mock
}

// NewMockEventPublisher creates a mock that asserts its expectations on test cleanup.
func NewMockEventPublisher(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockEventPublisher {
	m := &MockEventPublisher{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockEventPublisher) EXPECT() *MockEventPublisher_Expecter {
	return &MockEventPublisher_Expecter{mock: &m.Mock}
}

func (m *MockEventPublisher) Publish(ctx context.Context, event *service.MarketplaceEvent) error {
	return m.Called(ctx, event).Error(0)
}

func (e *MockEventPublisher_Expecter) Publish(ctx, event any) *mock.Call {
	return e.mock.On("Publish", ctx, event)
}

func (m *MockEventPublisher) Close() error {
	return m.Called().Error(0)
}

func (e *MockEventPublisher_Expecter) Close() *mock.Call {
	return e.mock.On("Close")
}
