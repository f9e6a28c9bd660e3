package impl

import (
	"context"
	"testing"

	domainerrors "marketplace/internal/domain/errors"
	"marketplace/internal/domain/repository"
	"marketplace/internal/infra/persistence/model"
	"marketplace/internal/testutil/dbtest"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeDays(t *testing.T) {
	assert.Equal(t, 30, normalizeDays(0))
	assert.Equal(t, 30, normalizeDays(-4))
	assert.Equal(t, 7, normalizeDays(7))
	assert.Equal(t, 365, normalizeDays(1000))
}

func TestReportService_Dashboards(t *testing.T) {
	fx := createTestServices(t)
	ctx := context.Background()

	big := dbtest.SeedVendor(t, fx.db, "10")
	small := dbtest.SeedVendor(t, fx.db, "10")
	bestseller := dbtest.SeedProduct(t, fx.db, big.ID, "100", 20)
	slow := dbtest.SeedProduct(t, fx.db, big.ID, "100", 20)
	dbtest.SeedProduct(t, fx.db, big.ID, "100", 0)
	smallProduct := dbtest.SeedProduct(t, fx.db, small.ID, "100", 20)

	place := func(lines map[*model.ProductModel]int) {
		customer := customerIdentity()
		for product, quantity := range lines {
			dbtest.SeedCartLine(t, fx.db, customer.UserID, product.ID, quantity)
		}
		_, err := fx.orders.PlaceOrder(ctx, customer, checkoutInput(0))
		require.NoError(t, err)
	}
	place(map[*model.ProductModel]int{bestseller: 4, slow: 1})
	place(map[*model.ProductModel]int{bestseller: 2})
	place(map[*model.ProductModel]int{smallProduct: 1})

	t.Run("vendor", func(t *testing.T) {
		dashboard, err := fx.reports.VendorDashboard(ctx, vendorIdentity(big), 0)
		require.NoError(t, err)
		assert.Equal(t, 30, dashboard.Days)
		assert.Equal(t, big.ID, dashboard.Vendor.ID)
		assert.Equal(t, repository.ProductCounts{Total: 3, Active: 3, LowStock: 1, OutOfStock: 1}, dashboard.Products)
		assert.EqualValues(t, 3, dashboard.Orders.Total)
		assert.EqualValues(t, 2, dashboard.Orders.Pending)

		require.Len(t, dashboard.TopProducts, 2)
		assert.Equal(t, bestseller.ID, dashboard.TopProducts[0].ProductID)
		assert.EqualValues(t, 6, dashboard.TopProducts[0].QuantitySold)
		assert.True(t, dashboard.TopProducts[0].Revenue.Equal(decimal.NewFromInt(540)), dashboard.TopProducts[0].Revenue.String())
	})

	t.Run("admin", func(t *testing.T) {
		dashboard, err := fx.reports.AdminDashboard(ctx, adminIdentity(), 7)
		require.NoError(t, err)
		assert.Equal(t, 7, dashboard.Days)
		assert.Equal(t, repository.VendorCounts{Total: 2, Pending: 0, Approved: 2}, dashboard.Vendors)
		assert.EqualValues(t, 4, dashboard.Products.Total)
		assert.EqualValues(t, 3, dashboard.Orders.Total)
		assert.EqualValues(t, 3, dashboard.Orders.Pending)
		assert.True(t, dashboard.Revenue.Total.Equal(decimal.NewFromInt(800)), dashboard.Revenue.Total.String())
		assert.True(t, dashboard.Revenue.Commission.Equal(decimal.NewFromInt(80)), dashboard.Revenue.Commission.String())

		require.Len(t, dashboard.TopVendors, 2)
		assert.Equal(t, big.ID, dashboard.TopVendors[0].VendorID)
		assert.True(t, dashboard.TopVendors[0].TotalSales.Equal(decimal.NewFromInt(700)))
	})

	t.Run("access", func(t *testing.T) {
		_, err := fx.reports.AdminDashboard(ctx, vendorIdentity(big), 30)
		assert.True(t, errors.Is(err, domainerrors.ErrForbidden))

		_, err = fx.reports.VendorDashboard(ctx, customerIdentity(), 30)
		assert.True(t, errors.Is(err, domainerrors.ErrVendorNotFound))
	})
}

func TestReportService_ListAuditRecords(t *testing.T) {
	fx := createTestServices(t)
	ctx := context.Background()
	admin := adminIdentity()

	vendor := dbtest.SeedVendor(t, fx.db, "8")
	for _, rate := range []int64{10, 12, 14} {
		_, err := fx.vendors.SetCommissionRate(ctx, admin, vendor.ID, decimal.NewFromInt(rate))
		require.NoError(t, err)
	}

	records, total, err := fx.reports.ListAuditRecords(ctx, admin, repository.ListOptions{Limit: 2})
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	require.Len(t, records, 2)
	assert.Equal(t, admin.UserID, records[0].ActorID)
	assert.Equal(t, vendor.ID, records[0].TargetID)

	_, _, err = fx.reports.ListAuditRecords(ctx, customerIdentity(), repository.ListOptions{})
	assert.True(t, errors.Is(err, domainerrors.ErrForbidden))
}
