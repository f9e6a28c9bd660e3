package usecase

import (
	"context"

	"marketplace/internal/domain/entity"
	"marketplace/internal/domain/repository"
	"marketplace/internal/usecase"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// MockVendorUsecase is a mock of usecase.VendorUsecase.
type MockVendorUsecase struct {
	mock.Mock
}

// MockVendorUsecase_Expecter records expectations on MockVendorUsecase.
type MockVendorUsecase_Expecter struct {
	mock *mock.Mock
}

// NewMockVendorUsecase creates a mock that asserts its expectations on test cleanup.
func NewMockVendorUsecase(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockVendorUsecase {
	m := &MockVendorUsecase{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockVendorUsecase) EXPECT() *MockVendorUsecase_Expecter {
	return &MockVendorUsecase_Expecter{mock: &m.Mock}
}

func (m *MockVendorUsecase) vendorResult(ret mock.Arguments) (*entity.Vendor, error) {
	vendor, _ := ret.Get(0).(*entity.Vendor)

	return vendor, ret.Error(1)
}

func (m *MockVendorUsecase) Register(ctx context.Context, identity entity.Identity, input usecase.RegisterVendorInput) (*entity.Vendor, error) {
	return m.vendorResult(m.Called(ctx, identity, input))
}

func (e *MockVendorUsecase_Expecter) Register(ctx, identity, input any) *mock.Call {
	return e.mock.On("Register", ctx, identity, input)
}

func (m *MockVendorUsecase) GetProfile(ctx context.Context, identity entity.Identity) (*entity.Vendor, error) {
	return m.vendorResult(m.Called(ctx, identity))
}

func (e *MockVendorUsecase_Expecter) GetProfile(ctx, identity any) *mock.Call {
	return e.mock.On("GetProfile", ctx, identity)
}

func (m *MockVendorUsecase) UpdateProfile(ctx context.Context, identity entity.Identity, input usecase.UpdateVendorProfileInput) (*entity.Vendor, error) {
	return m.vendorResult(m.Called(ctx, identity, input))
}

func (e *MockVendorUsecase_Expecter) UpdateProfile(ctx, identity, input any) *mock.Call {
	return e.mock.On("UpdateProfile", ctx, identity, input)
}

func (m *MockVendorUsecase) Approve(ctx context.Context, identity entity.Identity, vendorID uuid.UUID) (*entity.Vendor, error) {
	return m.vendorResult(m.Called(ctx, identity, vendorID))
}

func (e *MockVendorUsecase_Expecter) Approve(ctx, identity, vendorID any) *mock.Call {
	return e.mock.On("Approve", ctx, identity, vendorID)
}

func (m *MockVendorUsecase) Reject(ctx context.Context, identity entity.Identity, vendorID uuid.UUID, reason string) (*entity.Vendor, error) {
	return m.vendorResult(m.Called(ctx, identity, vendorID, reason))
}

func (e *MockVendorUsecase_Expecter) Reject(ctx, identity, vendorID, reason any) *mock.Call {
	return e.mock.On("Reject", ctx, identity, vendorID, reason)
}

func (m *MockVendorUsecase) Suspend(ctx context.Context, identity entity.Identity, vendorID uuid.UUID, reason string) (*usecase.SuspendVendorOutput, error) {
	ret := m.Called(ctx, identity, vendorID, reason)
	out, _ := ret.Get(0).(*usecase.SuspendVendorOutput)

	return out, ret.Error(1)
}

func (e *MockVendorUsecase_Expecter) Suspend(ctx, identity, vendorID, reason any) *mock.Call {
	return e.mock.On("Suspend", ctx, identity, vendorID, reason)
}

func (m *MockVendorUsecase) SetCommissionRate(ctx context.Context, identity entity.Identity, vendorID uuid.UUID, rate decimal.Decimal) (*entity.Vendor, error) {
	return m.vendorResult(m.Called(ctx, identity, vendorID, rate))
}

func (e *MockVendorUsecase_Expecter) SetCommissionRate(ctx, identity, vendorID, rate any) *mock.Call {
	return e.mock.On("SetCommissionRate", ctx, identity, vendorID, rate)
}

func (m *MockVendorUsecase) ListVendors(ctx context.Context, identity entity.Identity, status *entity.VendorStatus, opts repository.ListOptions) ([]*entity.Vendor, int64, error) {
	ret := m.Called(ctx, identity, status, opts)
	vendors, _ := ret.Get(0).([]*entity.Vendor)
	total, _ := ret.Get(1).(int64)

	return vendors, total, ret.Error(2)
}

func (e *MockVendorUsecase_Expecter) ListVendors(ctx, identity, status, opts any) *mock.Call {
	return e.mock.On("ListVendors", ctx, identity, status, opts)
}

func (m *MockVendorUsecase) RequestWithdrawal(ctx context.Context, identity entity.Identity, amount decimal.Decimal) (*entity.WithdrawalRequest, error) {
	ret := m.Called(ctx, identity, amount)
	withdrawal, _ := ret.Get(0).(*entity.WithdrawalRequest)

	return withdrawal, ret.Error(1)
}

func (e *MockVendorUsecase_Expecter) RequestWithdrawal(ctx, identity, amount any) *mock.Call {
	return e.mock.On("RequestWithdrawal", ctx, identity, amount)
}
