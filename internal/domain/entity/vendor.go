package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// VendorStatus is the approval state of a vendor account.
type VendorStatus string

const (
	VendorStatusPending   VendorStatus = "pending"
	VendorStatusApproved  VendorStatus = "approved"
	VendorStatusSuspended VendorStatus = "suspended"
	VendorStatusRejected  VendorStatus = "rejected"
)

// vendorTransitions enumerates every legal status change. Anything absent is rejected.
var vendorTransitions = map[VendorStatus][]VendorStatus{
	VendorStatusPending:   {VendorStatusApproved, VendorStatusRejected, VendorStatusSuspended},
	VendorStatusApproved:  {VendorStatusSuspended},
	VendorStatusRejected:  {VendorStatusSuspended},
	VendorStatusSuspended: {VendorStatusSuspended},
}

// String returns the string representation of the status.
func (s VendorStatus) String() string {
	return string(s)
}

// IsValid checks if the status is one of the known values.
func (s VendorStatus) IsValid() bool {
	_, ok := vendorTransitions[s]

	return ok
}

// CanTransitionTo reports whether moving from s to next is allowed.
func (s VendorStatus) CanTransitionTo(next VendorStatus) bool {
	for _, allowed := range vendorTransitions[s] {
		if allowed == next {
			return true
		}
	}

	return false
}

// Vendor is a seller on the marketplace together with its ledger.
type Vendor struct {
	ID              uuid.UUID
	UserID          uuid.UUID
	BusinessName    string
	BusinessEmail   string
	BusinessPhone   string
	BusinessAddress string
	BankName        string
	AccountNumber   string
	AccountName     string
	Status          VendorStatus
	CommissionRate  decimal.Decimal // percentage retained by the platform
	TotalSales      decimal.Decimal
	CurrentBalance  decimal.Decimal
	ApprovedAt      *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// IsApproved reports whether the vendor may sell.
func (v *Vendor) IsApproved() bool {
	return v.Status == VendorStatusApproved
}

// TransitionTo moves the vendor to next, returning a *TransitionError when
// the change is not allowed. Approval stamps ApprovedAt.
func (v *Vendor) TransitionTo(next VendorStatus, at time.Time) error {
	if !v.Status.CanTransitionTo(next) {
		return &TransitionError{From: string(v.Status), To: string(next)}
	}

	v.Status = next
	v.UpdatedAt = at
	if next == VendorStatusApproved {
		approvedAt := at
		v.ApprovedAt = &approvedAt
	}

	return nil
}

// CommissionBounds is the inclusive range a commission rate must fall in.
type CommissionBounds struct {
	Min decimal.Decimal
	Max decimal.Decimal
}

// Contains reports whether rate lies within the bounds.
func (b CommissionBounds) Contains(rate decimal.Decimal) bool {
	return rate.GreaterThanOrEqual(b.Min) && rate.LessThanOrEqual(b.Max)
}

// WithdrawalRequest is a vendor's ask to be paid out. Payout execution is
// handled outside the marketplace; the balance is not debited here.
type WithdrawalRequest struct {
	ID          uuid.UUID
	VendorID    uuid.UUID
	Amount      decimal.Decimal
	Balance     decimal.Decimal
	Status      string
	RequestedAt time.Time
}
