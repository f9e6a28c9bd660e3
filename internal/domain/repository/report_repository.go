package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductCounts summarises catalog state.
type ProductCounts struct {
	Total      int64
	Active     int64
	LowStock   int64
	OutOfStock int64
}

// OrderCounts summarises order activity. For a vendor the totals count the
// vendor's order items; Pending always counts distinct pending orders.
type OrderCounts struct {
	Total   int64
	Recent  int64
	Pending int64
}

// VendorCounts summarises vendor onboarding.
type VendorCounts struct {
	Total    int64
	Pending  int64
	Approved int64
}

// RevenueTotals aggregates order money.
type RevenueTotals struct {
	Total      decimal.Decimal
	Commission decimal.Decimal
	Recent     decimal.Decimal
}

// TopProduct is a product ranked by units sold.
type TopProduct struct {
	ProductID    uuid.UUID
	ProductName  string
	QuantitySold int64
	Revenue      decimal.Decimal
}

// TopVendor is a vendor ranked by total sales.
type TopVendor struct {
	VendorID     uuid.UUID
	BusinessName string
	TotalSales   decimal.Decimal
}

// ReportRepository runs the read-only aggregate queries behind the dashboards.
type ReportRepository interface {
	// CountProducts counts products, restricted to one vendor when vendorID is set.
	CountProducts(ctx context.Context, vendorID *uuid.UUID) (*ProductCounts, error)

	// CountVendorOrders counts a vendor's order items and pending orders.
	CountVendorOrders(ctx context.Context, vendorID uuid.UUID, since time.Time) (*OrderCounts, error)

	// VendorRevenueSince sums the vendor amounts of items ordered since the given time.
	VendorRevenueSince(ctx context.Context, vendorID uuid.UUID, since time.Time) (decimal.Decimal, error)

	// TopProducts ranks a vendor's products by quantity sold.
	TopProducts(ctx context.Context, vendorID uuid.UUID, limit int) ([]*TopProduct, error)

	// CountVendors counts vendors by status.
	CountVendors(ctx context.Context) (*VendorCounts, error)

	// CountOrders counts every order, those placed since the given time and pending ones.
	CountOrders(ctx context.Context, since time.Time) (*OrderCounts, error)

	// Revenue sums order totals and commissions, overall and since the given time.
	Revenue(ctx context.Context, since time.Time) (*RevenueTotals, error)

	// TopVendors ranks vendors by total sales.
	TopVendors(ctx context.Context, limit int) ([]*TopVendor, error)
}
