package impl

import (
	"context"
	"testing"

	"marketplace/config"
	"marketplace/internal/domain/entity"
	domainerrors "marketplace/internal/domain/errors"
	"marketplace/internal/domain/repository"
	"marketplace/internal/infra/persistence/model"
	"marketplace/internal/infra/persistence/postgres"
	"marketplace/internal/testutil/dbtest"
	"marketplace/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func auditActions(t *testing.T, fx serviceFixtures, targetID uuid.UUID) []string {
	t.Helper()

	var records []model.AdminActionModel
	require.NoError(t, fx.db.Where("target_id = ?", targetID).Order("created_at").Find(&records).Error)

	actions := make([]string, 0, len(records))
	for _, record := range records {
		actions = append(actions, record.ActionType)
	}

	return actions
}

func TestVendorService_RegisterAndModerate(t *testing.T) {
	fx := createTestServices(t)
	ctx := context.Background()
	admin := adminIdentity()
	applicant := customerIdentity()

	vendor, err := fx.vendors.Register(ctx, applicant, usecase.RegisterVendorInput{
		BusinessName:  "Fresh Farm",
		BusinessEmail: "farm@example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.VendorStatusPending, vendor.Status)
	assert.True(t, vendor.CommissionRate.Equal(decimal.NewFromInt(8)))
	assert.Nil(t, vendor.ApprovedAt)

	_, err = fx.vendors.Register(ctx, applicant, usecase.RegisterVendorInput{
		BusinessName:  "Second Shop",
		BusinessEmail: "second@example.com",
	})
	assert.True(t, errors.Is(err, domainerrors.ErrVendorAlreadyExists))

	_, err = fx.vendors.Approve(ctx, applicant, vendor.ID)
	assert.True(t, errors.Is(err, domainerrors.ErrForbidden))

	approved, err := fx.vendors.Approve(ctx, admin, vendor.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.VendorStatusApproved, approved.Status)
	assert.NotNil(t, approved.ApprovedAt)

	_, err = fx.vendors.Reject(ctx, admin, vendor.ID, "too late")
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidState))

	_, err = fx.vendors.Approve(ctx, admin, uuid.New())
	assert.True(t, errors.Is(err, domainerrors.ErrVendorNotFound))

	assert.Equal(t, []string{string(entity.AuditVendorApproval)}, auditActions(t, fx, vendor.ID))

	profile, err := fx.vendors.GetProfile(ctx, applicant)
	require.NoError(t, err)
	assert.Equal(t, entity.VendorStatusApproved, profile.Status)
}

func TestVendorService_Reject(t *testing.T) {
	fx := createTestServices(t)
	ctx := context.Background()

	vendor, err := fx.vendors.Register(ctx, customerIdentity(), usecase.RegisterVendorInput{
		BusinessName:  "Gadget Hut",
		BusinessEmail: "hut@example.com",
	})
	require.NoError(t, err)

	rejected, err := fx.vendors.Reject(ctx, adminIdentity(), vendor.ID, "incomplete documents")
	require.NoError(t, err)
	assert.Equal(t, entity.VendorStatusRejected, rejected.Status)

	_, err = fx.vendors.Approve(ctx, adminIdentity(), vendor.ID)
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidState))

	var record model.AdminActionModel
	require.NoError(t, fx.db.Where("target_id = ?", vendor.ID).First(&record).Error)
	assert.Contains(t, record.Description, "incomplete documents")
}

func TestVendorService_SuspendCascadesToProducts(t *testing.T) {
	fx := createTestServices(t)
	ctx := context.Background()
	admin := adminIdentity()

	vendor := dbtest.SeedVendor(t, fx.db, "8")
	other := dbtest.SeedVendor(t, fx.db, "8")
	for range 3 {
		dbtest.SeedProduct(t, fx.db, vendor.ID, "5", 10)
	}
	untouched := dbtest.SeedProduct(t, fx.db, other.ID, "5", 10)

	out, err := fx.vendors.Suspend(ctx, admin, vendor.ID, "fraud report")
	require.NoError(t, err)
	assert.Equal(t, entity.VendorStatusSuspended, out.Vendor.Status)
	assert.EqualValues(t, 3, out.DeactivatedProducts)

	var active int64
	require.NoError(t, fx.db.Model(&model.ProductModel{}).Where("vendor_id = ? AND is_active = ?", vendor.ID, true).Count(&active).Error)
	assert.Zero(t, active)

	var kept model.ProductModel
	require.NoError(t, fx.db.First(&kept, "id = ?", untouched.ID).Error)
	assert.True(t, kept.IsActive)

	// Suspending again is allowed and finds nothing left to deactivate.
	out, err = fx.vendors.Suspend(ctx, admin, vendor.ID, "")
	require.NoError(t, err)
	assert.Zero(t, out.DeactivatedProducts)

	assert.Equal(t,
		[]string{string(entity.AuditVendorSuspension), string(entity.AuditVendorSuspension)},
		auditActions(t, fx, vendor.ID),
	)

	_, err = fx.vendors.Approve(ctx, admin, vendor.ID)
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidState))
}

func TestVendorService_SetCommissionRate(t *testing.T) {
	fx := createTestServices(t)
	ctx := context.Background()
	admin := adminIdentity()
	vendor := dbtest.SeedVendor(t, fx.db, "8")

	tests := []struct {
		name    string
		rate    string
		wantErr error
	}{
		{name: "lower bound", rate: "0"},
		{name: "upper bound", rate: "50"},
		{name: "fractional", rate: "12.5"},
		{name: "negative", rate: "-1", wantErr: domainerrors.ErrInvalidCommissionRate},
		{name: "above max", rate: "50.01", wantErr: domainerrors.ErrInvalidCommissionRate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rate := decimal.RequireFromString(tt.rate)

			updated, err := fx.vendors.SetCommissionRate(ctx, admin, vendor.ID, rate)
			if tt.wantErr != nil {
				assert.True(t, errors.Is(err, tt.wantErr))

				return
			}
			require.NoError(t, err)
			assert.True(t, updated.CommissionRate.Equal(rate))
			assert.True(t, dbtest.ReloadVendor(t, fx.db, vendor.ID).CommissionRate.Equal(rate))
		})
	}

	assert.Len(t, auditActions(t, fx, vendor.ID), 3)
}

func TestVendorService_CommissionChangeAppliesToLaterOrders(t *testing.T) {
	fx := createTestServices(t)
	ctx := context.Background()

	vendor := dbtest.SeedVendor(t, fx.db, "8")
	product := dbtest.SeedProduct(t, fx.db, vendor.ID, "100", 10)

	first := customerIdentity()
	dbtest.SeedCartLine(t, fx.db, first.UserID, product.ID, 1)
	firstOut, err := fx.orders.PlaceOrder(ctx, first, checkoutInput(0))
	require.NoError(t, err)

	_, err = fx.vendors.SetCommissionRate(ctx, adminIdentity(), vendor.ID, decimal.NewFromInt(20))
	require.NoError(t, err)

	second := customerIdentity()
	dbtest.SeedCartLine(t, fx.db, second.UserID, product.ID, 1)
	secondOut, err := fx.orders.PlaceOrder(ctx, second, checkoutInput(0))
	require.NoError(t, err)

	firstOrder, err := fx.orders.GetOrder(ctx, first, firstOut.OrderID)
	require.NoError(t, err)
	assert.True(t, firstOrder.Items[0].CommissionAmount.Equal(decimal.NewFromInt(8)))

	secondOrder, err := fx.orders.GetOrder(ctx, second, secondOut.OrderID)
	require.NoError(t, err)
	assert.True(t, secondOrder.Items[0].CommissionAmount.Equal(decimal.NewFromInt(20)))

	assert.True(t, dbtest.ReloadVendor(t, fx.db, vendor.ID).CurrentBalance.Equal(decimal.NewFromInt(172)))
}

func TestVendorService_ProfileAndListing(t *testing.T) {
	fx := createTestServices(t)
	ctx := context.Background()

	owner := customerIdentity()
	vendor, err := fx.vendors.Register(ctx, owner, usecase.RegisterVendorInput{
		BusinessName:  "Book Nook",
		BusinessEmail: "nook@example.com",
	})
	require.NoError(t, err)

	_, err = fx.vendors.GetProfile(ctx, customerIdentity())
	assert.True(t, errors.Is(err, domainerrors.ErrVendorNotFound))

	name := "Book Nook & Co"
	blankEmail := " "
	_, err = fx.vendors.UpdateProfile(ctx, owner, usecase.UpdateVendorProfileInput{BusinessEmail: &blankEmail})
	assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))

	updated, err := fx.vendors.UpdateProfile(ctx, owner, usecase.UpdateVendorProfileInput{BusinessName: &name})
	require.NoError(t, err)
	assert.Equal(t, name, updated.BusinessName)
	assert.Equal(t, "nook@example.com", updated.BusinessEmail)

	dbtest.SeedVendor(t, fx.db, "8")

	pending := entity.VendorStatusPending
	vendors, total, err := fx.vendors.ListVendors(ctx, adminIdentity(), &pending, repository.ListOptions{})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, vendors, 1)
	assert.Equal(t, vendor.ID, vendors[0].ID)

	unknown := entity.VendorStatus("archived")
	_, _, err = fx.vendors.ListVendors(ctx, adminIdentity(), &unknown, repository.ListOptions{})
	assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))

	_, _, err = fx.vendors.ListVendors(ctx, owner, nil, repository.ListOptions{})
	assert.True(t, errors.Is(err, domainerrors.ErrForbidden))
}

func TestVendorService_UpdateProfileKeepsConcurrentModeration(t *testing.T) {
	fx := createTestServices(t)
	ctx := context.Background()
	admin := adminIdentity()

	vendor := dbtest.SeedVendor(t, fx.db, "8")
	product := dbtest.SeedProduct(t, fx.db, vendor.ID, "5", 10)
	newRate := decimal.NewFromInt(20)

	vendorRepo := &interleavedVendorRepo{
		VendorRepository: postgres.NewVendorRepository(fx.db),
		between: func() {
			_, err := fx.vendors.Suspend(ctx, admin, vendor.ID, "chargebacks")
			require.NoError(t, err)
			_, err = fx.vendors.SetCommissionRate(ctx, admin, vendor.ID, newRate)
			require.NoError(t, err)
		},
	}
	vendors := NewVendorService(VendorServiceParams{
		TxManager:  postgres.NewTransactionManager(fx.db),
		VendorRepo: vendorRepo,
		Config:     &config.Config{Commission: config.DefaultCommission()},
		Logger:     discardLogger(),
	})

	name := "Renamed Shop"
	updated, err := vendors.UpdateProfile(ctx, vendorIdentity(vendor), usecase.UpdateVendorProfileInput{BusinessName: &name})
	require.NoError(t, err)
	assert.Equal(t, name, updated.BusinessName)
	assert.Equal(t, entity.VendorStatusSuspended, updated.Status)

	reloaded := dbtest.ReloadVendor(t, fx.db, vendor.ID)
	assert.Equal(t, name, reloaded.BusinessName)
	assert.Equal(t, "suspended", reloaded.Status)
	assert.True(t, reloaded.CommissionRate.Equal(newRate), reloaded.CommissionRate.String())

	var kept model.ProductModel
	require.NoError(t, fx.db.First(&kept, "id = ?", product.ID).Error)
	assert.False(t, kept.IsActive)
}

func TestVendorService_RequestWithdrawal(t *testing.T) {
	fx := createTestServices(t)
	ctx := context.Background()

	vendor := dbtest.SeedVendor(t, fx.db, "8")
	require.NoError(t, fx.db.Model(&model.VendorModel{}).
		Where("id = ?", vendor.ID).
		Update("current_balance", decimal.NewFromInt(100)).Error)
	identity := vendorIdentity(vendor)

	request, err := fx.vendors.RequestWithdrawal(ctx, identity, decimal.NewFromInt(40))
	require.NoError(t, err)
	assert.Equal(t, vendor.ID, request.VendorID)
	assert.Equal(t, WithdrawalStatusPending, request.Status)
	assert.True(t, request.Balance.Equal(decimal.NewFromInt(100)))

	// The balance is not debited by a request.
	assert.True(t, dbtest.ReloadVendor(t, fx.db, vendor.ID).CurrentBalance.Equal(decimal.NewFromInt(100)))

	_, err = fx.vendors.RequestWithdrawal(ctx, identity, decimal.NewFromInt(101))
	assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))

	_, err = fx.vendors.RequestWithdrawal(ctx, identity, decimal.Zero)
	assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))

	require.NoError(t, fx.db.Model(&model.VendorModel{}).Where("id = ?", vendor.ID).Update("status", "suspended").Error)
	_, err = fx.vendors.RequestWithdrawal(ctx, identity, decimal.NewFromInt(10))
	assert.True(t, errors.Is(err, domainerrors.ErrVendorNotApproved))
}
