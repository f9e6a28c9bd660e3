package usecase

import (
	"context"

	"marketplace/internal/domain/entity"
	"marketplace/internal/domain/repository"

	"github.com/shopspring/decimal"
)

// VendorDashboard is the vendor's overview of catalog and sales.
type VendorDashboard struct {
	Vendor        *entity.Vendor
	Days          int
	Products      repository.ProductCounts
	Orders        repository.OrderCounts
	RecentRevenue decimal.Decimal
	TopProducts   []*repository.TopProduct
}

// AdminDashboard is the platform-wide overview.
type AdminDashboard struct {
	Days       int
	Vendors    repository.VendorCounts
	Products   repository.ProductCounts
	Orders     repository.OrderCounts
	Revenue    repository.RevenueTotals
	TopVendors []*repository.TopVendor
}

// ReportUsecase defines the read-only dashboards and the admin action log.
type ReportUsecase interface {
	// VendorDashboard summarises the caller's vendor account over the last days.
	VendorDashboard(ctx context.Context, identity entity.Identity, days int) (*VendorDashboard, error)

	// AdminDashboard summarises the marketplace over the last days.
	AdminDashboard(ctx context.Context, identity entity.Identity, days int) (*AdminDashboard, error)

	// ListAuditRecords pages through admin actions, newest first.
	ListAuditRecords(ctx context.Context, identity entity.Identity, opts repository.ListOptions) ([]*entity.AuditRecord, int64, error)
}
