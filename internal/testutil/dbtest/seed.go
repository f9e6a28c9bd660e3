package dbtest

import (
	"testing"
	"time"

	"marketplace/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// SeedVendor inserts an approved vendor with the given commission rate.
func SeedVendor(t testing.TB, db *gorm.DB, ratePercent string) *model.VendorModel {
	t.Helper()

	now := time.Now()
	vendor := &model.VendorModel{
		ID:             uuid.New(),
		UserID:         uuid.New(),
		BusinessName:   "Vendor " + uuid.NewString()[:8],
		BusinessEmail:  "shop@example.com",
		Status:         "approved",
		CommissionRate: decimal.RequireFromString(ratePercent),
		ApprovedAt:     &now,
	}
	require.NoError(t, db.Create(vendor).Error)

	return vendor
}

// SeedProduct inserts an active product.
func SeedProduct(t testing.TB, db *gorm.DB, vendorID uuid.UUID, price string, stock int) *model.ProductModel {
	t.Helper()

	product := &model.ProductModel{
		ID:       uuid.New(),
		VendorID: vendorID,
		Name:     "Product " + uuid.NewString()[:8],
		Category: "general",
		Price:    decimal.RequireFromString(price),
		Stock:    stock,
		MinStock: 5,
		IsActive: true,
	}
	require.NoError(t, db.Create(product).Error)

	return product
}

// SeedCartLine puts quantity units of a product in the customer's cart.
func SeedCartLine(t testing.TB, db *gorm.DB, customerID, productID uuid.UUID, quantity int) {
	t.Helper()

	require.NoError(t, db.Create(&model.CartItemModel{
		ID:         uuid.New(),
		CustomerID: customerID,
		ProductID:  productID,
		Quantity:   quantity,
		AddedAt:    time.Now(),
	}).Error)
}

// ProductStock reads the current stock of a product.
func ProductStock(t testing.TB, db *gorm.DB, productID uuid.UUID) int {
	t.Helper()

	var product model.ProductModel
	require.NoError(t, db.First(&product, "id = ?", productID).Error)

	return product.Stock
}

// ReloadVendor reads a vendor row back.
func ReloadVendor(t testing.TB, db *gorm.DB, vendorID uuid.UUID) *model.VendorModel {
	t.Helper()

	var vendor model.VendorModel
	require.NoError(t, db.First(&vendor, "id = ?", vendorID).Error)

	return &vendor
}

// Count returns the number of rows of a model's table.
func Count(t testing.TB, db *gorm.DB, m any) int64 {
	t.Helper()

	var n int64
	require.NoError(t, db.Model(m).Count(&n).Error)

	return n
}
