package postgres

import (
	"context"
	"time"

	"marketplace/internal/domain/entity"
	"marketplace/internal/domain/repository"
	"marketplace/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// reportRepository implements the repository.ReportRepository interface.
// Aggregates read from replicas when the resolver has any.
type reportRepository struct {
	db *gorm.DB
}

// NewReportRepository is the constructor for reportRepository.
func NewReportRepository(db *gorm.DB) repository.ReportRepository {
	return &reportRepository{
		db: db,
	}
}

// CountProducts counts products, optionally for one vendor.
func (repo *reportRepository) CountProducts(ctx context.Context, vendorID *uuid.UUID) (*repository.ProductCounts, error) {
	query := repo.db.WithContext(ctx).Model(&model.ProductModel{})
	if vendorID != nil {
		query = query.Where("vendor_id = ?", *vendorID)
	}

	var counts repository.ProductCounts
	if err := query.Select(
		"COUNT(*) AS total, " +
			"COALESCE(SUM(CASE WHEN is_active THEN 1 ELSE 0 END), 0) AS active, " +
			"COALESCE(SUM(CASE WHEN stock <= min_stock THEN 1 ELSE 0 END), 0) AS low_stock, " +
			"COALESCE(SUM(CASE WHEN stock = 0 THEN 1 ELSE 0 END), 0) AS out_of_stock",
	).Scan(&counts).Error; err != nil {
		return nil, errors.Wrap(err, "failed to count products")
	}

	return &counts, nil
}

// CountVendorOrders counts the vendor's order items and its distinct pending orders.
func (repo *reportRepository) CountVendorOrders(ctx context.Context, vendorID uuid.UUID, since time.Time) (*repository.OrderCounts, error) {
	var counts repository.OrderCounts
	if err := repo.db.WithContext(ctx).
		Table("order_items").
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Where("order_items.vendor_id = ?", vendorID).
		Select(
			"COUNT(*) AS total, "+
				"COALESCE(SUM(CASE WHEN orders.created_at >= ? THEN 1 ELSE 0 END), 0) AS recent, "+
				"COUNT(DISTINCT CASE WHEN orders.status = ? THEN orders.id END) AS pending",
			since, entity.OrderStatusPending.String(),
		).
		Scan(&counts).Error; err != nil {
		return nil, errors.Wrap(err, "failed to count vendor orders")
	}

	return &counts, nil
}

// VendorRevenueSince sums the vendor amounts of items ordered since the given time.
func (repo *reportRepository) VendorRevenueSince(ctx context.Context, vendorID uuid.UUID, since time.Time) (decimal.Decimal, error) {
	var row struct {
		Revenue decimal.Decimal
	}
	if err := repo.db.WithContext(ctx).
		Model(&model.OrderItemModel{}).
		Select("COALESCE(SUM(vendor_amount), 0) AS revenue").
		Where("vendor_id = ? AND created_at >= ?", vendorID, since).
		Scan(&row).Error; err != nil {
		return decimal.Zero, errors.Wrap(err, "failed to sum vendor revenue")
	}

	return row.Revenue, nil
}

// TopProducts ranks the vendor's products by units sold.
func (repo *reportRepository) TopProducts(ctx context.Context, vendorID uuid.UUID, limit int) ([]*repository.TopProduct, error) {
	var rows []*repository.TopProduct
	if err := repo.db.WithContext(ctx).
		Model(&model.OrderItemModel{}).
		Select("product_id, product_name, SUM(quantity) AS quantity_sold, SUM(vendor_amount) AS revenue").
		Where("vendor_id = ?", vendorID).
		Group("product_id, product_name").
		Order("quantity_sold DESC").
		Limit(limit).
		Scan(&rows).Error; err != nil {
		return nil, errors.Wrap(err, "failed to rank products")
	}

	return rows, nil
}

// CountVendors counts vendors by status.
func (repo *reportRepository) CountVendors(ctx context.Context) (*repository.VendorCounts, error) {
	var counts repository.VendorCounts
	if err := repo.db.WithContext(ctx).
		Model(&model.VendorModel{}).
		Select(
			"COUNT(*) AS total, "+
				"COALESCE(SUM(CASE WHEN status = ? THEN 1 ELSE 0 END), 0) AS pending, "+
				"COALESCE(SUM(CASE WHEN status = ? THEN 1 ELSE 0 END), 0) AS approved",
			entity.VendorStatusPending.String(), entity.VendorStatusApproved.String(),
		).
		Scan(&counts).Error; err != nil {
		return nil, errors.Wrap(err, "failed to count vendors")
	}

	return &counts, nil
}

// CountOrders counts all, recent and pending orders.
func (repo *reportRepository) CountOrders(ctx context.Context, since time.Time) (*repository.OrderCounts, error) {
	var counts repository.OrderCounts
	if err := repo.db.WithContext(ctx).
		Model(&model.OrderModel{}).
		Select(
			"COUNT(*) AS total, "+
				"COALESCE(SUM(CASE WHEN created_at >= ? THEN 1 ELSE 0 END), 0) AS recent, "+
				"COALESCE(SUM(CASE WHEN status = ? THEN 1 ELSE 0 END), 0) AS pending",
			since, entity.OrderStatusPending.String(),
		).
		Scan(&counts).Error; err != nil {
		return nil, errors.Wrap(err, "failed to count orders")
	}

	return &counts, nil
}

// Revenue sums order totals and commissions.
func (repo *reportRepository) Revenue(ctx context.Context, since time.Time) (*repository.RevenueTotals, error) {
	var totals repository.RevenueTotals
	if err := repo.db.WithContext(ctx).
		Model(&model.OrderModel{}).
		Select(
			"COALESCE(SUM(total_amount), 0) AS total, "+
				"COALESCE(SUM(commission_amount), 0) AS commission, "+
				"COALESCE(SUM(CASE WHEN created_at >= ? THEN total_amount ELSE 0 END), 0) AS recent",
			since,
		).
		Scan(&totals).Error; err != nil {
		return nil, errors.Wrap(err, "failed to sum revenue")
	}

	return &totals, nil
}

// TopVendors ranks vendors by total sales.
func (repo *reportRepository) TopVendors(ctx context.Context, limit int) ([]*repository.TopVendor, error) {
	var rows []*repository.TopVendor
	if err := repo.db.WithContext(ctx).
		Model(&model.VendorModel{}).
		Select("id AS vendor_id, business_name, total_sales").
		Order("total_sales DESC").
		Limit(limit).
		Scan(&rows).Error; err != nil {
		return nil, errors.Wrap(err, "failed to rank vendors")
	}

	return rows, nil
}
