package usecase

import (
	"context"

	"marketplace/internal/domain/entity"
	"marketplace/internal/domain/repository"
	"marketplace/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockCatalogUsecase is a mock of usecase.CatalogUsecase.
type MockCatalogUsecase struct {
	mock.Mock
}

// MockCatalogUsecase_Expecter records expectations on MockCatalogUsecase.
type MockCatalogUsecase_Expecter struct {
	mock *mock.Mock
}

// NewMockCatalogUsecase creates a mock that asserts its expectations on test cleanup.
func NewMockCatalogUsecase(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockCatalogUsecase {
	m := &MockCatalogUsecase{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockCatalogUsecase) EXPECT() *MockCatalogUsecase_Expecter {
	return &MockCatalogUsecase_Expecter{mock: &m.Mock}
}

func (m *MockCatalogUsecase) AdjustStock(ctx context.Context, identity entity.Identity, productID uuid.UUID, input usecase.AdjustStockInput) (*entity.Product, error) {
	ret := m.Called(ctx, identity, productID, input)
	product, _ := ret.Get(0).(*entity.Product)

	return product, ret.Error(1)
}

func (e *MockCatalogUsecase_Expecter) AdjustStock(ctx, identity, productID, input any) *mock.Call {
	return e.mock.On("AdjustStock", ctx, identity, productID, input)
}

func (m *MockCatalogUsecase) CreateProduct(ctx context.Context, identity entity.Identity, input usecase.CreateProductInput) (*entity.Product, error) {
	ret := m.Called(ctx, identity, input)
	product, _ := ret.Get(0).(*entity.Product)

	return product, ret.Error(1)
}

func (e *MockCatalogUsecase_Expecter) CreateProduct(ctx, identity, input any) *mock.Call {
	return e.mock.On("CreateProduct", ctx, identity, input)
}

func (m *MockCatalogUsecase) UpdateProduct(ctx context.Context, identity entity.Identity, productID uuid.UUID, input usecase.UpdateProductInput) (*entity.Product, error) {
	ret := m.Called(ctx, identity, productID, input)
	product, _ := ret.Get(0).(*entity.Product)

	return product, ret.Error(1)
}

func (e *MockCatalogUsecase_Expecter) UpdateProduct(ctx, identity, productID, input any) *mock.Call {
	return e.mock.On("UpdateProduct", ctx, identity, productID, input)
}

func (m *MockCatalogUsecase) ListVendorProducts(ctx context.Context, identity entity.Identity, lowStockOnly bool, opts repository.ListOptions) ([]*entity.Product, int64, error) {
	ret := m.Called(ctx, identity, lowStockOnly, opts)
	products, _ := ret.Get(0).([]*entity.Product)
	total, _ := ret.Get(1).(int64)

	return products, total, ret.Error(2)
}

func (e *MockCatalogUsecase_Expecter) ListVendorProducts(ctx, identity, lowStockOnly, opts any) *mock.Call {
	return e.mock.On("ListVendorProducts", ctx, identity, lowStockOnly, opts)
}

func (m *MockCatalogUsecase) ListProducts(ctx context.Context, query usecase.ProductQuery) ([]*entity.Product, int64, error) {
	ret := m.Called(ctx, query)
	products, _ := ret.Get(0).([]*entity.Product)
	total, _ := ret.Get(1).(int64)

	return products, total, ret.Error(2)
}

func (e *MockCatalogUsecase_Expecter) ListProducts(ctx, query any) *mock.Call {
	return e.mock.On("ListProducts", ctx, query)
}

func (m *MockCatalogUsecase) ListAllProducts(ctx context.Context, identity entity.Identity, query usecase.AdminProductQuery) ([]*entity.Product, int64, error) {
	ret := m.Called(ctx, identity, query)
	products, _ := ret.Get(0).([]*entity.Product)
	total, _ := ret.Get(1).(int64)

	return products, total, ret.Error(2)
}

func (e *MockCatalogUsecase_Expecter) ListAllProducts(ctx, identity, query any) *mock.Call {
	return e.mock.On("ListAllProducts", ctx, identity, query)
}

func (m *MockCatalogUsecase) GetProduct(ctx context.Context, productID uuid.UUID) (*entity.Product, error) {
	ret := m.Called(ctx, productID)
	product, _ := ret.Get(0).(*entity.Product)

	return product, ret.Error(1)
}

func (e *MockCatalogUsecase_Expecter) GetProduct(ctx, productID any) *mock.Call {
	return e.mock.On("GetProduct", ctx, productID)
}

func (m *MockCatalogUsecase) DeactivateProduct(ctx context.Context, identity entity.Identity, productID uuid.UUID, reason string) (*entity.Product, error) {
	ret := m.Called(ctx, identity, productID, reason)
	product, _ := ret.Get(0).(*entity.Product)

	return product, ret.Error(1)
}

func (e *MockCatalogUsecase_Expecter) DeactivateProduct(ctx, identity, productID, reason any) *mock.Call {
	return e.mock.On("DeactivateProduct", ctx, identity, productID, reason)
}
