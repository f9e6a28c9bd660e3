package impl

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"marketplace/config"
	deliverycontext "marketplace/internal/delivery/context"
	"marketplace/internal/domain/entity"
	domainerrors "marketplace/internal/domain/errors"
	"marketplace/internal/domain/repository"
	"marketplace/internal/domain/service"
	"marketplace/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/fx"
)

// WithdrawalStatusPending is the state of every accepted withdrawal request.
const WithdrawalStatusPending = "pending"

// vendorService implements the VendorUsecase interface.
type vendorService struct {
	txManager   repository.TransactionManager
	vendorRepo  repository.VendorRepository
	events      eventEmitter
	bounds      entity.CommissionBounds
	defaultRate decimal.Decimal
	logger      *slog.Logger
}

// VendorServiceParams holds dependencies for VendorService, injected by Fx.
type VendorServiceParams struct {
	fx.In

	TxManager  repository.TransactionManager
	VendorRepo repository.VendorRepository
	Publisher  service.EventPublisher
	Config     *config.Config
	Logger     *slog.Logger
}

// NewVendorService creates a new vendor service instance
func NewVendorService(params VendorServiceParams) usecase.VendorUsecase {
	commission := config.DefaultCommission()
	if params.Config != nil && params.Config.Commission != nil {
		commission = params.Config.Commission
	}

	return &vendorService{
		txManager:  params.TxManager,
		vendorRepo: params.VendorRepo,
		events:     eventEmitter{publisher: params.Publisher, logger: params.Logger},
		bounds: entity.CommissionBounds{
			Min: decimal.NewFromFloat(commission.MinRate),
			Max: decimal.NewFromFloat(commission.MaxRate),
		},
		defaultRate: decimal.NewFromFloat(commission.DefaultRate),
		logger:      params.Logger,
	}
}

func (srv *vendorService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Register opens a pending vendor account for the caller.
func (srv *vendorService) Register(ctx context.Context, identity entity.Identity, input usecase.RegisterVendorInput) (*entity.Vendor, error) {
	if err := requireAuthenticated(identity); err != nil {
		return nil, err
	}
	if blank(input.BusinessName) || blank(input.BusinessEmail) {
		return nil, validationError("business name and email are required")
	}

	vendor := &entity.Vendor{
		ID:              uuid.New(),
		UserID:          identity.UserID,
		BusinessName:    input.BusinessName,
		BusinessEmail:   input.BusinessEmail,
		BusinessPhone:   input.BusinessPhone,
		BusinessAddress: input.BusinessAddress,
		BankName:        input.BankName,
		AccountNumber:   input.AccountNumber,
		AccountName:     input.AccountName,
		Status:          entity.VendorStatusPending,
		CommissionRate:  srv.defaultRate,
		TotalSales:      decimal.Zero,
		CurrentBalance:  decimal.Zero,
	}

	if err := srv.vendorRepo.Create(ctx, vendor); err != nil {
		if errors.Is(err, repository.ErrDuplicateVendor) {
			return nil, domainerrors.ErrVendorAlreadyExists
		}

		return nil, errors.Wrap(err, "failed to register vendor")
	}

	srv.log(ctx).Info("Vendor registered", slog.String("vendor_id", vendor.ID.String()))

	return vendor, nil
}

// GetProfile returns the caller's vendor account.
func (srv *vendorService) GetProfile(ctx context.Context, identity entity.Identity) (*entity.Vendor, error) {
	return callerVendor(ctx, srv.vendorRepo, identity)
}

// UpdateProfile applies the non-nil fields of input to the caller's account.
// Only profile columns are written, under the vendor row lock.
func (srv *vendorService) UpdateProfile(ctx context.Context, identity entity.Identity, input usecase.UpdateVendorProfileInput) (*entity.Vendor, error) {
	if err := validateProfileInput(input); err != nil {
		return nil, err
	}

	owner, err := callerVendor(ctx, srv.vendorRepo, identity)
	if err != nil {
		return nil, err
	}

	var vendor *entity.Vendor
	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		vendorRepo := repoFactory.NewVendorRepository()

		var err error
		vendor, err = lockVendor(ctx, vendorRepo, owner.ID)
		if err != nil {
			return err
		}

		applyString(&vendor.BusinessName, input.BusinessName)
		applyString(&vendor.BusinessEmail, input.BusinessEmail)
		applyString(&vendor.BusinessPhone, input.BusinessPhone)
		applyString(&vendor.BusinessAddress, input.BusinessAddress)
		applyString(&vendor.BankName, input.BankName)
		applyString(&vendor.AccountNumber, input.AccountNumber)
		applyString(&vendor.AccountName, input.AccountName)

		return vendorRepo.UpdateProfile(ctx, vendor)
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to update vendor profile")
	}

	return vendor, nil
}

func validateProfileInput(input usecase.UpdateVendorProfileInput) error {
	if input.BusinessName != nil && blank(*input.BusinessName) {
		return validationError("business name must not be empty")
	}
	if input.BusinessEmail != nil && blank(*input.BusinessEmail) {
		return validationError("business email must not be empty")
	}

	return nil
}

func applyString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

// Approve moves a pending vendor to approved.
func (srv *vendorService) Approve(ctx context.Context, identity entity.Identity, vendorID uuid.UUID) (*entity.Vendor, error) {
	return srv.changeStatus(ctx, identity, vendorID, entity.VendorStatusApproved, "", nil)
}

// Reject moves a pending vendor to rejected.
func (srv *vendorService) Reject(ctx context.Context, identity entity.Identity, vendorID uuid.UUID, reason string) (*entity.Vendor, error) {
	return srv.changeStatus(ctx, identity, vendorID, entity.VendorStatusRejected, reason, nil)
}

// Suspend suspends the vendor and deactivates its whole catalog in the same transaction.
func (srv *vendorService) Suspend(ctx context.Context, identity entity.Identity, vendorID uuid.UUID, reason string) (*usecase.SuspendVendorOutput, error) {
	var deactivated int64

	vendor, err := srv.changeStatus(ctx, identity, vendorID, entity.VendorStatusSuspended, reason,
		func(ctx context.Context, repoFactory repository.RepositoryFactory, vendor *entity.Vendor) error {
			count, err := repoFactory.NewProductRepository().DeactivateByVendor(ctx, vendor.ID)
			if err != nil {
				return errors.Wrap(err, "failed to deactivate vendor products")
			}
			deactivated = count

			return nil
		})
	if err != nil {
		return nil, err
	}

	srv.log(ctx).Info("Vendor suspended",
		slog.String("vendor_id", vendor.ID.String()),
		slog.Int64("deactivated_products", deactivated),
	)

	return &usecase.SuspendVendorOutput{Vendor: vendor, DeactivatedProducts: deactivated}, nil
}

type statusSideEffect func(ctx context.Context, repoFactory repository.RepositoryFactory, vendor *entity.Vendor) error

var vendorStatusAudit = map[entity.VendorStatus]entity.AuditAction{
	entity.VendorStatusApproved:  entity.AuditVendorApproval,
	entity.VendorStatusRejected:  entity.AuditVendorRejection,
	entity.VendorStatusSuspended: entity.AuditVendorSuspension,
}

// changeStatus locks the vendor, applies the transition, runs the side
// effect and writes the audit record inside one transaction.
func (srv *vendorService) changeStatus(
	ctx context.Context,
	identity entity.Identity,
	vendorID uuid.UUID,
	next entity.VendorStatus,
	reason string,
	sideEffect statusSideEffect,
) (*entity.Vendor, error) {
	if err := requireAdmin(identity); err != nil {
		return nil, err
	}

	var (
		vendor *entity.Vendor
		from   entity.VendorStatus
	)
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		vendorRepo := repoFactory.NewVendorRepository()

		var err error
		vendor, err = lockVendor(ctx, vendorRepo, vendorID)
		if err != nil {
			return err
		}

		from = vendor.Status
		if err := vendor.TransitionTo(next, time.Now()); err != nil {
			return domainerrors.ErrInvalidState.WithDetails(err.Error())
		}
		if err := vendorRepo.UpdateModeration(ctx, vendor); err != nil {
			return errors.Wrap(err, "failed to update vendor status")
		}

		if sideEffect != nil {
			if err := sideEffect(ctx, repoFactory, vendor); err != nil {
				return err
			}
		}

		description := fmt.Sprintf("Vendor %s changed from %s to %s", vendor.BusinessName, from, next)
		if reason != "" {
			description += ": " + reason
		}

		return repoFactory.NewAuditRepository().Create(ctx, &entity.AuditRecord{
			ActorID:     identity.UserID,
			Action:      vendorStatusAudit[next],
			TargetID:    vendor.ID,
			Description: description,
		})
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to change vendor status to %s", next)
	}

	srv.events.emitStatusChange(ctx, service.EventVendorStatusChanged, vendor.ID, from.String(), vendor.Status.String(), identity.UserID, reason)

	return vendor, nil
}

// SetCommissionRate changes the percentage retained on future sales.
func (srv *vendorService) SetCommissionRate(ctx context.Context, identity entity.Identity, vendorID uuid.UUID, rate decimal.Decimal) (*entity.Vendor, error) {
	if err := requireAdmin(identity); err != nil {
		return nil, err
	}
	if !srv.bounds.Contains(rate) {
		return nil, domainerrors.ErrInvalidCommissionRate.WithDetails(
			fmt.Sprintf("rate %s must be between %s and %s", rate, srv.bounds.Min, srv.bounds.Max),
		)
	}

	var vendor *entity.Vendor
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		vendorRepo := repoFactory.NewVendorRepository()

		var err error
		vendor, err = lockVendor(ctx, vendorRepo, vendorID)
		if err != nil {
			return err
		}

		oldRate := vendor.CommissionRate
		vendor.CommissionRate = rate
		vendor.UpdatedAt = time.Now()
		if err := vendorRepo.UpdateModeration(ctx, vendor); err != nil {
			return errors.Wrap(err, "failed to update commission rate")
		}

		return repoFactory.NewAuditRepository().Create(ctx, &entity.AuditRecord{
			ActorID:     identity.UserID,
			Action:      entity.AuditCommissionUpdate,
			TargetID:    vendor.ID,
			Description: fmt.Sprintf("Commission rate for %s changed from %s%% to %s%%", vendor.BusinessName, oldRate.String(), rate.String()),
		})
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to set commission rate")
	}

	return vendor, nil
}

// ListVendors pages through vendors for an admin.
func (srv *vendorService) ListVendors(
	ctx context.Context,
	identity entity.Identity,
	status *entity.VendorStatus,
	opts repository.ListOptions,
) ([]*entity.Vendor, int64, error) {
	if err := requireAdmin(identity); err != nil {
		return nil, 0, err
	}
	if status != nil && !status.IsValid() {
		return nil, 0, validationError("unknown vendor status " + status.String())
	}

	vendors, total, err := srv.vendorRepo.List(ctx, repository.VendorFilter{Status: status, ListOptions: opts})
	if err != nil {
		return nil, 0, errors.Wrap(err, "failed to list vendors")
	}

	return vendors, total, nil
}

// RequestWithdrawal validates a payout request against the current balance.
// The balance is not debited; payout happens outside the marketplace.
func (srv *vendorService) RequestWithdrawal(ctx context.Context, identity entity.Identity, amount decimal.Decimal) (*entity.WithdrawalRequest, error) {
	vendor, err := callerApprovedVendor(ctx, srv.vendorRepo, identity)
	if err != nil {
		return nil, err
	}
	if !amount.IsPositive() {
		return nil, validationError("withdrawal amount must be positive")
	}
	if amount.GreaterThan(vendor.CurrentBalance) {
		return nil, validationError(fmt.Sprintf("withdrawal amount %s exceeds balance %s", amount.StringFixed(2), vendor.CurrentBalance.StringFixed(2)))
	}

	request := &entity.WithdrawalRequest{
		ID:          uuid.New(),
		VendorID:    vendor.ID,
		Amount:      amount,
		Balance:     vendor.CurrentBalance,
		Status:      WithdrawalStatusPending,
		RequestedAt: time.Now(),
	}

	srv.log(ctx).Info("Withdrawal requested",
		slog.String("vendor_id", vendor.ID.String()),
		slog.String("amount", amount.StringFixed(2)),
	)
	srv.events.emit(ctx, service.EventWithdrawalRequested, vendor.ID, service.WithdrawalRequestedPayload{
		RequestID: request.ID.String(),
		VendorID:  vendor.ID.String(),
		Amount:    amount.StringFixed(2),
		Balance:   vendor.CurrentBalance.StringFixed(2),
	})

	return request, nil
}

func lockVendor(ctx context.Context, vendorRepo repository.VendorRepository, vendorID uuid.UUID) (*entity.Vendor, error) {
	vendor, err := vendorRepo.FindByIDForUpdate(ctx, vendorID)
	if errors.Is(err, repository.ErrVendorNotFound) {
		return nil, domainerrors.ErrVendorNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to lock vendor")
	}

	return vendor, nil
}
