package impl

import (
	"context"
	"testing"

	domainerrors "marketplace/internal/domain/errors"
	"marketplace/internal/infra/persistence/model"
	"marketplace/internal/testutil/dbtest"
	"marketplace/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCartService_AddItem(t *testing.T) {
	fx := createTestServices(t)
	ctx := context.Background()

	vendor := dbtest.SeedVendor(t, fx.db, "8")
	product := dbtest.SeedProduct(t, fx.db, vendor.ID, "12.50", 5)
	customer := customerIdentity()

	line, err := fx.cart.AddItem(ctx, customer, usecase.AddCartItemInput{ProductID: product.ID, Quantity: 2})
	require.NoError(t, err)
	assert.Equal(t, 2, line.Quantity)
	require.NotNil(t, line.Product)
	assert.Equal(t, product.ID, line.Product.ID)

	// Adding the same product again grows the existing line.
	line, err = fx.cart.AddItem(ctx, customer, usecase.AddCartItemInput{ProductID: product.ID, Quantity: 3})
	require.NoError(t, err)
	assert.Equal(t, 5, line.Quantity)
	assert.EqualValues(t, 1, dbtest.Count(t, fx.db, &model.CartItemModel{}))

	_, err = fx.cart.AddItem(ctx, customer, usecase.AddCartItemInput{ProductID: product.ID, Quantity: 1})
	assert.True(t, errors.Is(err, domainerrors.ErrInsufficientStock))

	view, err := fx.cart.ListCart(ctx, customer)
	require.NoError(t, err)
	require.Len(t, view.Lines, 1)
	assert.Equal(t, 5, view.ItemCount())
	assert.True(t, view.Total.Equal(decimal.RequireFromString("62.5")), view.Total.String())
}

func TestCartService_AddItem_Rejections(t *testing.T) {
	fx := createTestServices(t)
	ctx := context.Background()
	customer := customerIdentity()

	vendor := dbtest.SeedVendor(t, fx.db, "8")
	product := dbtest.SeedProduct(t, fx.db, vendor.ID, "1", 3)

	tests := []struct {
		name    string
		input   usecase.AddCartItemInput
		wantErr error
	}{
		{name: "zero quantity", input: usecase.AddCartItemInput{ProductID: product.ID, Quantity: 0}, wantErr: domainerrors.ErrValidationFailed},
		{name: "unknown product", input: usecase.AddCartItemInput{ProductID: uuid.New(), Quantity: 1}, wantErr: domainerrors.ErrProductNotFound},
		{name: "more than stock", input: usecase.AddCartItemInput{ProductID: product.ID, Quantity: 4}, wantErr: domainerrors.ErrInsufficientStock},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := fx.cart.AddItem(ctx, customer, tt.input)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.wantErr), err.Error())
		})
	}

	assert.Zero(t, dbtest.Count(t, fx.db, &model.CartItemModel{}))
}

func TestCartService_UpdateAndRemove(t *testing.T) {
	fx := createTestServices(t)
	ctx := context.Background()
	customer := customerIdentity()

	vendor := dbtest.SeedVendor(t, fx.db, "8")
	product := dbtest.SeedProduct(t, fx.db, vendor.ID, "3", 10)

	_, err := fx.cart.UpdateItemQuantity(ctx, customer, product.ID, 2)
	assert.True(t, errors.Is(err, domainerrors.ErrCartItemNotFound))

	dbtest.SeedCartLine(t, fx.db, customer.UserID, product.ID, 1)

	line, err := fx.cart.UpdateItemQuantity(ctx, customer, product.ID, 7)
	require.NoError(t, err)
	assert.Equal(t, 7, line.Quantity)

	_, err = fx.cart.UpdateItemQuantity(ctx, customer, product.ID, 11)
	assert.True(t, errors.Is(err, domainerrors.ErrInsufficientStock))

	_, err = fx.cart.UpdateItemQuantity(ctx, customer, product.ID, 0)
	assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))

	// Another customer's cart is untouched.
	err = fx.cart.RemoveItem(ctx, customerIdentity(), product.ID)
	assert.True(t, errors.Is(err, domainerrors.ErrCartItemNotFound))

	require.NoError(t, fx.cart.RemoveItem(ctx, customer, product.ID))
	view, err := fx.cart.ListCart(ctx, customer)
	require.NoError(t, err)
	assert.Empty(t, view.Lines)
	assert.True(t, view.Total.IsZero())
}
