package usecase

import (
	"context"

	"marketplace/internal/domain/entity"
	"marketplace/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockReceiptUsecase is a mock of usecase.ReceiptUsecase.
type MockReceiptUsecase struct {
	mock.Mock
}

// MockReceiptUsecase_Expecter records expectations on MockReceiptUsecase.
type MockReceiptUsecase_Expecter struct {
	mock *mock.Mock
}

// NewMockReceiptUsecase creates a mock that asserts its expectations on test cleanup.
func NewMockReceiptUsecase(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockReceiptUsecase {
	m := &MockReceiptUsecase{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockReceiptUsecase) EXPECT() *MockReceiptUsecase_Expecter {
	return &MockReceiptUsecase_Expecter{mock: &m.Mock}
}

func (m *MockReceiptUsecase) GetReceipt(ctx context.Context, identity entity.Identity, orderID uuid.UUID) (*usecase.Receipt, error) {
	ret := m.Called(ctx, identity, orderID)
	receipt, _ := ret.Get(0).(*usecase.Receipt)

	return receipt, ret.Error(1)
}

func (e *MockReceiptUsecase_Expecter) GetReceipt(ctx, identity, orderID any) *mock.Call {
	return e.mock.On("GetReceipt", ctx, identity, orderID)
}
