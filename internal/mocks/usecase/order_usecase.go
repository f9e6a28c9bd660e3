package usecase

import (
	"context"

	"marketplace/internal/domain/entity"
	"marketplace/internal/domain/repository"
	"marketplace/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockOrderUsecase is a mock of usecase.OrderUsecase.
type MockOrderUsecase struct {
	mock.Mock
}

// MockOrderUsecase_Expecter records expectations on MockOrderUsecase.
type MockOrderUsecase_Expecter struct {
	mock *mock.Mock
}

// NewMockOrderUsecase creates a mock that asserts its expectations on test cleanup.
func NewMockOrderUsecase(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockOrderUsecase {
	m := &MockOrderUsecase{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockOrderUsecase) EXPECT() *MockOrderUsecase_Expecter {
	return &MockOrderUsecase_Expecter{mock: &m.Mock}
}

func (m *MockOrderUsecase) PlaceOrder(ctx context.Context, identity entity.Identity, input usecase.PlaceOrderInput) (*usecase.PlaceOrderOutput, error) {
	ret := m.Called(ctx, identity, input)
	out, _ := ret.Get(0).(*usecase.PlaceOrderOutput)

	return out, ret.Error(1)
}

func (e *MockOrderUsecase_Expecter) PlaceOrder(ctx, identity, input any) *mock.Call {
	return e.mock.On("PlaceOrder", ctx, identity, input)
}

func (m *MockOrderUsecase) GetOrder(ctx context.Context, identity entity.Identity, orderID uuid.UUID) (*entity.Order, error) {
	ret := m.Called(ctx, identity, orderID)
	order, _ := ret.Get(0).(*entity.Order)

	return order, ret.Error(1)
}

func (e *MockOrderUsecase_Expecter) GetOrder(ctx, identity, orderID any) *mock.Call {
	return e.mock.On("GetOrder", ctx, identity, orderID)
}

func (m *MockOrderUsecase) ListCustomerOrders(ctx context.Context, identity entity.Identity, opts repository.ListOptions) ([]*entity.Order, int64, error) {
	ret := m.Called(ctx, identity, opts)
	orders, _ := ret.Get(0).([]*entity.Order)
	total, _ := ret.Get(1).(int64)

	return orders, total, ret.Error(2)
}

func (e *MockOrderUsecase_Expecter) ListCustomerOrders(ctx, identity, opts any) *mock.Call {
	return e.mock.On("ListCustomerOrders", ctx, identity, opts)
}

func (m *MockOrderUsecase) CancelOrder(ctx context.Context, identity entity.Identity, orderID uuid.UUID) (*entity.Order, error) {
	ret := m.Called(ctx, identity, orderID)
	order, _ := ret.Get(0).(*entity.Order)

	return order, ret.Error(1)
}

func (e *MockOrderUsecase_Expecter) CancelOrder(ctx, identity, orderID any) *mock.Call {
	return e.mock.On("CancelOrder", ctx, identity, orderID)
}

func (m *MockOrderUsecase) UpdateOrderStatus(ctx context.Context, identity entity.Identity, orderID uuid.UUID, status entity.OrderStatus) (*entity.Order, error) {
	ret := m.Called(ctx, identity, orderID, status)
	order, _ := ret.Get(0).(*entity.Order)

	return order, ret.Error(1)
}

func (e *MockOrderUsecase_Expecter) UpdateOrderStatus(ctx, identity, orderID, status any) *mock.Call {
	return e.mock.On("UpdateOrderStatus", ctx, identity, orderID, status)
}

func (m *MockOrderUsecase) ListOrders(ctx context.Context, identity entity.Identity, filter usecase.OrderListFilter) ([]*entity.Order, int64, error) {
	ret := m.Called(ctx, identity, filter)
	orders, _ := ret.Get(0).([]*entity.Order)
	total, _ := ret.Get(1).(int64)

	return orders, total, ret.Error(2)
}

func (e *MockOrderUsecase_Expecter) ListOrders(ctx, identity, filter any) *mock.Call {
	return e.mock.On("ListOrders", ctx, identity, filter)
}

func (m *MockOrderUsecase) ListVendorOrderItems(ctx context.Context, identity entity.Identity, status *entity.OrderStatus, opts repository.ListOptions) ([]*entity.VendorOrderItem, int64, error) {
	ret := m.Called(ctx, identity, status, opts)
	items, _ := ret.Get(0).([]*entity.VendorOrderItem)
	total, _ := ret.Get(1).(int64)

	return items, total, ret.Error(2)
}

func (e *MockOrderUsecase_Expecter) ListVendorOrderItems(ctx, identity, status, opts any) *mock.Call {
	return e.mock.On("ListVendorOrderItems", ctx, identity, status, opts)
}
