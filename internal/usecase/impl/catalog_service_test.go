package impl

import (
	"context"
	"testing"

	"marketplace/internal/domain/entity"
	domainerrors "marketplace/internal/domain/errors"
	"marketplace/internal/domain/repository"
	"marketplace/internal/infra/persistence/model"
	"marketplace/internal/testutil/dbtest"
	"marketplace/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogService_AdjustStock(t *testing.T) {
	fx := createTestServices(t)
	ctx := context.Background()

	vendor := dbtest.SeedVendor(t, fx.db, "8")
	product := dbtest.SeedProduct(t, fx.db, vendor.ID, "10", 10)
	owner := vendorIdentity(vendor)

	steps := []struct {
		name     string
		action   entity.StockAction
		quantity int
		want     int
	}{
		{name: "increase", action: entity.StockActionIncrease, quantity: 5, want: 15},
		{name: "decrease", action: entity.StockActionDecrease, quantity: 3, want: 12},
		{name: "decrease clamps at zero", action: entity.StockActionDecrease, quantity: 50, want: 0},
		{name: "set", action: entity.StockActionSet, quantity: 7, want: 7},
		{name: "set zero", action: entity.StockActionSet, quantity: 0, want: 0},
	}

	for _, step := range steps {
		t.Run(step.name, func(t *testing.T) {
			updated, err := fx.catalog.AdjustStock(ctx, owner, product.ID, usecase.AdjustStockInput{
				Action:   step.action,
				Quantity: step.quantity,
			})
			require.NoError(t, err)
			assert.Equal(t, step.want, updated.Stock)
			assert.Equal(t, step.want, dbtest.ProductStock(t, fx.db, product.ID))
		})
	}
}

func TestCatalogService_AdjustStock_Rejections(t *testing.T) {
	fx := createTestServices(t)
	ctx := context.Background()

	vendor := dbtest.SeedVendor(t, fx.db, "8")
	other := dbtest.SeedVendor(t, fx.db, "8")
	product := dbtest.SeedProduct(t, fx.db, vendor.ID, "10", 10)

	tests := []struct {
		name      string
		identity  entity.Identity
		productID uuid.UUID
		input     usecase.AdjustStockInput
		wantErr   error
	}{
		{
			name:      "unknown action",
			identity:  vendorIdentity(vendor),
			productID: product.ID,
			input:     usecase.AdjustStockInput{Action: "double", Quantity: 1},
			wantErr:   domainerrors.ErrInvalidStockAction,
		},
		{
			name:      "negative quantity",
			identity:  vendorIdentity(vendor),
			productID: product.ID,
			input:     usecase.AdjustStockInput{Action: entity.StockActionSet, Quantity: -1},
			wantErr:   domainerrors.ErrValidationFailed,
		},
		{
			name:      "another vendor's product",
			identity:  vendorIdentity(other),
			productID: product.ID,
			input:     usecase.AdjustStockInput{Action: entity.StockActionSet, Quantity: 1},
			wantErr:   domainerrors.ErrProductNotFound,
		},
		{
			name:      "unknown product",
			identity:  adminIdentity(),
			productID: uuid.New(),
			input:     usecase.AdjustStockInput{Action: entity.StockActionSet, Quantity: 1},
			wantErr:   domainerrors.ErrProductNotFound,
		},
		{
			name:      "caller without vendor account",
			identity:  customerIdentity(),
			productID: product.ID,
			input:     usecase.AdjustStockInput{Action: entity.StockActionSet, Quantity: 1},
			wantErr:   domainerrors.ErrVendorNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := fx.catalog.AdjustStock(ctx, tt.identity, tt.productID, tt.input)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.wantErr), err.Error())
		})
	}

	assert.Equal(t, 10, dbtest.ProductStock(t, fx.db, product.ID))

	// Admins may adjust any product.
	updated, err := fx.catalog.AdjustStock(ctx, adminIdentity(), product.ID, usecase.AdjustStockInput{Action: entity.StockActionIncrease, Quantity: 2})
	require.NoError(t, err)
	assert.Equal(t, 12, updated.Stock)
}

func TestCatalogService_ProductLifecycle(t *testing.T) {
	fx := createTestServices(t)
	ctx := context.Background()

	vendor := dbtest.SeedVendor(t, fx.db, "8")
	owner := vendorIdentity(vendor)

	created, err := fx.catalog.CreateProduct(ctx, owner, usecase.CreateProductInput{
		Name:     "Olive Oil",
		Category: "pantry",
		Price:    decimal.RequireFromString("8.40"),
		Stock:    3,
	})
	require.NoError(t, err)
	assert.Equal(t, entity.DefaultMinStock, created.MinStock)
	assert.True(t, created.IsActive)
	assert.True(t, created.IsLowStock())

	_, err = fx.catalog.CreateProduct(ctx, owner, usecase.CreateProductInput{Name: " ", Price: decimal.NewFromInt(1)})
	assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))

	price := decimal.RequireFromString("9.10")
	updated, err := fx.catalog.UpdateProduct(ctx, owner, created.ID, usecase.UpdateProductInput{Price: &price})
	require.NoError(t, err)
	assert.True(t, updated.Price.Equal(price))
	assert.Equal(t, "Olive Oil", updated.Name)

	_, err = fx.catalog.UpdateProduct(ctx, vendorIdentity(dbtest.SeedVendor(t, fx.db, "8")), created.ID, usecase.UpdateProductInput{Price: &price})
	assert.True(t, errors.Is(err, domainerrors.ErrProductNotFound))

	got, err := fx.catalog.GetProduct(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "pantry", got.Category)

	lowStock, total, err := fx.catalog.ListVendorProducts(ctx, owner, true, repository.ListOptions{})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	assert.Len(t, lowStock, 1)

	deactivated, err := fx.catalog.DeactivateProduct(ctx, adminIdentity(), created.ID, "mislabelled")
	require.NoError(t, err)
	assert.False(t, deactivated.IsActive)
	assert.EqualValues(t, 1, dbtest.Count(t, fx.db, &model.AdminActionModel{}))

	_, err = fx.catalog.GetProduct(ctx, created.ID)
	assert.True(t, errors.Is(err, domainerrors.ErrProductNotFound))

	_, err = fx.catalog.DeactivateProduct(ctx, owner, created.ID, "")
	assert.True(t, errors.Is(err, domainerrors.ErrForbidden))
}

func TestCatalogService_CreateProduct_RequiresApprovedVendor(t *testing.T) {
	fx := createTestServices(t)
	ctx := context.Background()

	vendor := dbtest.SeedVendor(t, fx.db, "8")
	require.NoError(t, fx.db.Model(&model.VendorModel{}).Where("id = ?", vendor.ID).Update("status", "pending").Error)

	_, err := fx.catalog.CreateProduct(ctx, vendorIdentity(vendor), usecase.CreateProductInput{
		Name:  "Soap",
		Price: decimal.NewFromInt(2),
	})
	assert.True(t, errors.Is(err, domainerrors.ErrVendorNotApproved))
}

func TestCatalogService_ListProducts(t *testing.T) {
	fx := createTestServices(t)
	ctx := context.Background()

	vendor := dbtest.SeedVendor(t, fx.db, "8")
	other := dbtest.SeedVendor(t, fx.db, "8")
	for range 3 {
		dbtest.SeedProduct(t, fx.db, vendor.ID, "1", 10)
	}
	hidden := dbtest.SeedProduct(t, fx.db, vendor.ID, "1", 10)
	require.NoError(t, fx.db.Model(&model.ProductModel{}).Where("id = ?", hidden.ID).Update("is_active", false).Error)
	dbtest.SeedProduct(t, fx.db, other.ID, "1", 10)

	products, total, err := fx.catalog.ListProducts(ctx, usecase.ProductQuery{VendorID: &vendor.ID})
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	assert.Len(t, products, 3)

	products, total, err = fx.catalog.ListProducts(ctx, usecase.ProductQuery{
		Category:    "general",
		ListOptions: repository.ListOptions{Limit: 2, Offset: 2},
	})
	require.NoError(t, err)
	assert.EqualValues(t, 4, total)
	assert.Len(t, products, 2)
}

func TestCatalogService_ListAllProducts(t *testing.T) {
	fx := createTestServices(t)
	ctx := context.Background()
	admin := adminIdentity()

	vendor := dbtest.SeedVendor(t, fx.db, "8")
	other := dbtest.SeedVendor(t, fx.db, "8")
	stocked := dbtest.SeedProduct(t, fx.db, vendor.ID, "1", 10)
	low := dbtest.SeedProduct(t, fx.db, vendor.ID, "1", 2)
	hidden := dbtest.SeedProduct(t, fx.db, other.ID, "1", 10)
	_, err := fx.catalog.DeactivateProduct(ctx, admin, hidden.ID, "counterfeit")
	require.NoError(t, err)

	active, inactive := true, false
	tests := []struct {
		name  string
		query usecase.AdminProductQuery
		want  []uuid.UUID
	}{
		{name: "everything", query: usecase.AdminProductQuery{}, want: []uuid.UUID{stocked.ID, low.ID, hidden.ID}},
		{name: "inactive only", query: usecase.AdminProductQuery{Active: &inactive}, want: []uuid.UUID{hidden.ID}},
		{name: "active low stock", query: usecase.AdminProductQuery{Active: &active, LowStockOnly: true}, want: []uuid.UUID{low.ID}},
		{name: "by vendor", query: usecase.AdminProductQuery{VendorID: &other.ID}, want: []uuid.UUID{hidden.ID}},
		{name: "unknown category", query: usecase.AdminProductQuery{Category: "books"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			products, total, err := fx.catalog.ListAllProducts(ctx, admin, tt.query)
			require.NoError(t, err)

			ids := make([]uuid.UUID, 0, len(products))
			for _, product := range products {
				ids = append(ids, product.ID)
			}
			assert.EqualValues(t, len(tt.want), total)
			assert.ElementsMatch(t, tt.want, ids)
		})
	}

	_, _, err = fx.catalog.ListAllProducts(ctx, vendorIdentity(vendor), usecase.AdminProductQuery{})
	assert.True(t, errors.Is(err, domainerrors.ErrForbidden))
}
