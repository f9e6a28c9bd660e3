package usecase

import (
	"context"

	"marketplace/internal/domain/entity"
	"marketplace/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RegisterVendorInput defines the data required to open a vendor account.
type RegisterVendorInput struct {
	BusinessName    string
	BusinessEmail   string
	BusinessPhone   string
	BusinessAddress string
	BankName        string
	AccountNumber   string
	AccountName     string
}

// UpdateVendorProfileInput holds optional profile changes. Nil fields are left untouched.
type UpdateVendorProfileInput struct {
	BusinessName    *string
	BusinessEmail   *string
	BusinessPhone   *string
	BusinessAddress *string
	BankName        *string
	AccountNumber   *string
	AccountName     *string
}

// SuspendVendorOutput reports the result of a suspension.
type SuspendVendorOutput struct {
	Vendor              *entity.Vendor
	DeactivatedProducts int64
}

// VendorUsecase defines vendor onboarding, moderation and ledger operations.
type VendorUsecase interface {
	// Register opens a pending vendor account for the caller.
	Register(ctx context.Context, identity entity.Identity, input RegisterVendorInput) (*entity.Vendor, error)

	// GetProfile returns the caller's vendor account.
	GetProfile(ctx context.Context, identity entity.Identity) (*entity.Vendor, error)

	// UpdateProfile changes contact and bank details of the caller's vendor account.
	UpdateProfile(ctx context.Context, identity entity.Identity, input UpdateVendorProfileInput) (*entity.Vendor, error)

	// Approve moves a pending vendor to approved.
	Approve(ctx context.Context, identity entity.Identity, vendorID uuid.UUID) (*entity.Vendor, error)

	// Reject moves a pending vendor to rejected.
	Reject(ctx context.Context, identity entity.Identity, vendorID uuid.UUID, reason string) (*entity.Vendor, error)

	// Suspend suspends a vendor and deactivates all of its products.
	Suspend(ctx context.Context, identity entity.Identity, vendorID uuid.UUID, reason string) (*SuspendVendorOutput, error)

	// SetCommissionRate changes the percentage retained on the vendor's future sales.
	SetCommissionRate(ctx context.Context, identity entity.Identity, vendorID uuid.UUID, rate decimal.Decimal) (*entity.Vendor, error)

	// ListVendors pages through vendors, optionally by status (admin).
	ListVendors(ctx context.Context, identity entity.Identity, status *entity.VendorStatus, opts repository.ListOptions) ([]*entity.Vendor, int64, error)

	// RequestWithdrawal records a payout request against the caller's balance.
	RequestWithdrawal(ctx context.Context, identity entity.Identity, amount decimal.Decimal) (*entity.WithdrawalRequest, error)
}
