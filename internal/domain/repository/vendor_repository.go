package repository

import (
	"context"

	"marketplace/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// Domain-specific errors for vendor persistence.
var (
	// ErrVendorNotFound is returned when a vendor is not found.
	ErrVendorNotFound = errors.New("vendor not found")
	// ErrDuplicateVendor is returned when a user already owns a vendor account.
	ErrDuplicateVendor = errors.New("vendor already exists")
)

// VendorFilter narrows vendor listings.
type VendorFilter struct {
	Status *entity.VendorStatus
	ListOptions
}

// VendorRepository defines the operations for vendor persistence.
type VendorRepository interface {
	// FindByID retrieves a vendor by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Vendor, error)

	// FindByIDForUpdate retrieves a vendor and locks its row until the transaction ends.
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.Vendor, error)

	// FindByUserID retrieves the vendor account owned by a user.
	FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.Vendor, error)

	// FindByIDs retrieves every listed vendor. Missing IDs are skipped.
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*entity.Vendor, error)

	// Create persists a new vendor.
	Create(ctx context.Context, vendor *entity.Vendor) error

	// UpdateProfile saves the business and bank fields only.
	UpdateProfile(ctx context.Context, vendor *entity.Vendor) error

	// UpdateModeration saves status, approval time and commission rate.
	// The ledger columns (total sales, current balance) are only changed through Credit.
	UpdateModeration(ctx context.Context, vendor *entity.Vendor) error

	// Credit atomically adds sales to total sales and amount to the current balance.
	Credit(ctx context.Context, id uuid.UUID, sales, amount decimal.Decimal) error

	// List returns a page of vendors and the total number matching the filter.
	List(ctx context.Context, filter VendorFilter) ([]*entity.Vendor, int64, error)
}
