package usecase

import (
	"context"

	"marketplace/internal/domain/entity"
	"marketplace/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AdjustStockInput defines a manual stock change.
type AdjustStockInput struct {
	Action   entity.StockAction
	Quantity int
}

// CreateProductInput defines the data required to list a product.
type CreateProductInput struct {
	Name        string
	Description string
	Category    string
	Price       decimal.Decimal
	Stock       int
	MinStock    *int
}

// UpdateProductInput holds optional product changes. Nil fields are left untouched.
type UpdateProductInput struct {
	Name        *string
	Description *string
	Category    *string
	Price       *decimal.Decimal
	MinStock    *int
	IsActive    *bool
}

// ProductQuery narrows the public catalog listing.
type ProductQuery struct {
	Category string
	VendorID *uuid.UUID
	repository.ListOptions
}

// AdminProductQuery narrows the admin product listing. A nil Active lists
// active and inactive products.
type AdminProductQuery struct {
	Category     string
	VendorID     *uuid.UUID
	Active       *bool
	LowStockOnly bool
	repository.ListOptions
}

// CatalogUsecase defines product and stock management.
type CatalogUsecase interface {
	// AdjustStock applies an increase, decrease or set to a product's stock.
	AdjustStock(ctx context.Context, identity entity.Identity, productID uuid.UUID, input AdjustStockInput) (*entity.Product, error)

	// CreateProduct lists a new product for the caller's vendor account.
	CreateProduct(ctx context.Context, identity entity.Identity, input CreateProductInput) (*entity.Product, error)

	// UpdateProduct edits a product owned by the caller's vendor account.
	UpdateProduct(ctx context.Context, identity entity.Identity, productID uuid.UUID, input UpdateProductInput) (*entity.Product, error)

	// ListVendorProducts pages through the caller's products.
	ListVendorProducts(ctx context.Context, identity entity.Identity, lowStockOnly bool, opts repository.ListOptions) ([]*entity.Product, int64, error)

	// ListProducts pages through active products.
	ListProducts(ctx context.Context, query ProductQuery) ([]*entity.Product, int64, error)

	// ListAllProducts pages through every product (admin).
	ListAllProducts(ctx context.Context, identity entity.Identity, query AdminProductQuery) ([]*entity.Product, int64, error)

	// GetProduct returns an active product.
	GetProduct(ctx context.Context, productID uuid.UUID) (*entity.Product, error)

	// DeactivateProduct takes a product off sale (admin).
	DeactivateProduct(ctx context.Context, identity entity.Identity, productID uuid.UUID, reason string) (*entity.Product, error)
}
