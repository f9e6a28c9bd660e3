// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"

	"marketplace/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// ErrProductNotFound is returned when a product is not found.
var ErrProductNotFound = errors.New("product not found")

// ProductFilter narrows product listings. Nil pointers and empty strings are ignored.
type ProductFilter struct {
	VendorID     *uuid.UUID
	Category     string
	Active       *bool
	LowStockOnly bool
	ListOptions
}

// ProductRepository defines the operations for catalog persistence.
type ProductRepository interface {
	// FindByID retrieves a product by its ID regardless of its active flag.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Product, error)

	// FindByIDForUpdate retrieves a product and locks its row until the transaction ends.
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.Product, error)

	// FindByIDs retrieves every product whose ID is listed. Missing IDs are skipped.
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*entity.Product, error)

	// Create persists a new product.
	Create(ctx context.Context, product *entity.Product) error

	// Update saves the descriptive fields of a product. Stock is not touched.
	Update(ctx context.Context, product *entity.Product) error

	// DecrementStock subtracts quantity only when the product is active and has
	// at least quantity units. It reports whether a row was changed.
	DecrementStock(ctx context.Context, id uuid.UUID, quantity int) (bool, error)

	// SetStock overwrites the stock level.
	SetStock(ctx context.Context, id uuid.UUID, stock int) error

	// SetActive toggles whether the product can be sold.
	SetActive(ctx context.Context, id uuid.UUID, active bool) error

	// DeactivateByVendor deactivates every active product of a vendor and
	// returns how many were changed.
	DeactivateByVendor(ctx context.Context, vendorID uuid.UUID) (int64, error)

	// List returns a page of products and the total number matching the filter.
	List(ctx context.Context, filter ProductFilter) ([]*entity.Product, int64, error)
}
