// Package usecase holds testify mocks of the use case interfaces for delivery tests.
package usecase

import (
	"context"

	"marketplace/internal/domain/entity"
	"marketplace/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockCartUsecase is a mock of usecase.CartUsecase.
type MockCartUsecase struct {
	mock.Mock
}

// MockCartUsecase_Expecter records expectations on MockCartUsecase.
type MockCartUsecase_Expecter struct {
	mock *mock.Mock
}

// NewMockCartUsecase creates a mock that asserts its expectations on test cleanup.
func NewMockCartUsecase(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockCartUsecase {
	m := &MockCartUsecase{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockCartUsecase) EXPECT() *MockCartUsecase_Expecter {
	return &MockCartUsecase_Expecter{mock: &m.Mock}
}

func (m *MockCartUsecase) AddItem(ctx context.Context, identity entity.Identity, input usecase.AddCartItemInput) (*entity.CartLine, error) {
	ret := m.Called(ctx, identity, input)
	line, _ := ret.Get(0).(*entity.CartLine)

	return line, ret.Error(1)
}

func (e *MockCartUsecase_Expecter) AddItem(ctx, identity, input any) *mock.Call {
	return e.mock.On("AddItem", ctx, identity, input)
}

func (m *MockCartUsecase) ListCart(ctx context.Context, identity entity.Identity) (*usecase.CartView, error) {
	ret := m.Called(ctx, identity)
	view, _ := ret.Get(0).(*usecase.CartView)

	return view, ret.Error(1)
}

func (e *MockCartUsecase_Expecter) ListCart(ctx, identity any) *mock.Call {
	return e.mock.On("ListCart", ctx, identity)
}

func (m *MockCartUsecase) UpdateItemQuantity(ctx context.Context, identity entity.Identity, productID uuid.UUID, quantity int) (*entity.CartLine, error) {
	ret := m.Called(ctx, identity, productID, quantity)
	line, _ := ret.Get(0).(*entity.CartLine)

	return line, ret.Error(1)
}

func (e *MockCartUsecase_Expecter) UpdateItemQuantity(ctx, identity, productID, quantity any) *mock.Call {
	return e.mock.On("UpdateItemQuantity", ctx, identity, productID, quantity)
}

func (m *MockCartUsecase) RemoveItem(ctx context.Context, identity entity.Identity, productID uuid.UUID) error {
	return m.Called(ctx, identity, productID).Error(0)
}

func (e *MockCartUsecase_Expecter) RemoveItem(ctx, identity, productID any) *mock.Call {
	return e.mock.On("RemoveItem", ctx, identity, productID)
}
