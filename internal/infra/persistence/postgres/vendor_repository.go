package postgres

import (
	"context"

	"marketplace/internal/domain/entity"
	domainerrors "marketplace/internal/domain/errors"
	"marketplace/internal/domain/repository"
	"marketplace/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// vendorRepository implements the repository.VendorRepository interface.
type vendorRepository struct {
	db *gorm.DB
}

// NewVendorRepository is the constructor for vendorRepository.
func NewVendorRepository(db *gorm.DB) repository.VendorRepository {
	return &vendorRepository{
		db: db,
	}
}

// FindByID retrieves a vendor by its unique ID.
func (repo *vendorRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Vendor, error) {
	return repo.findOne(repo.db.WithContext(ctx).Where("id = ?", id))
}

// FindByIDForUpdate retrieves a vendor and locks its row.
func (repo *vendorRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.Vendor, error) {
	return repo.findOne(repo.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: clause.LockingStrengthUpdate}).
		Where("id = ?", id))
}

// FindByUserID retrieves the vendor owned by a user.
func (repo *vendorRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.Vendor, error) {
	return repo.findOne(repo.db.WithContext(ctx).Where("user_id = ?", userID))
}

func (repo *vendorRepository) findOne(query *gorm.DB) (*entity.Vendor, error) {
	var vendorM model.VendorModel

	if err := query.First(&vendorM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrVendorNotFound
		}

		return nil, errors.Wrap(err, "failed to find vendor")
	}

	return toVendorDomain(&vendorM), nil
}

// FindByIDs retrieves all listed vendors.
func (repo *vendorRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*entity.Vendor, error) {
	if len(ids) == 0 {
		return []*entity.Vendor{}, nil
	}

	var vendorModels []*model.VendorModel
	if err := repo.db.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&vendorModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find vendors by IDs")
	}

	vendors := make([]*entity.Vendor, 0, len(vendorModels))
	for _, vendorM := range vendorModels {
		vendors = append(vendors, toVendorDomain(vendorM))
	}

	return vendors, nil
}

// Create persists a new vendor.
func (repo *vendorRepository) Create(ctx context.Context, vendor *entity.Vendor) error {
	if vendor.ID == uuid.Nil {
		vendor.ID = uuid.New()
	}
	vendorM := fromVendorDomain(vendor)

	if err := repo.db.WithContext(ctx).Create(vendorM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return repository.ErrDuplicateVendor
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create vendor")
	}

	vendor.CreatedAt = vendorM.CreatedAt
	vendor.UpdatedAt = vendorM.UpdatedAt

	return nil
}

// UpdateProfile writes the columns a vendor may edit on its own account.
func (repo *vendorRepository) UpdateProfile(ctx context.Context, vendor *entity.Vendor) error {
	return repo.updateColumns(ctx, vendor.ID, "failed to update vendor profile", map[string]any{
		"business_name":    vendor.BusinessName,
		"business_email":   vendor.BusinessEmail,
		"business_phone":   vendor.BusinessPhone,
		"business_address": vendor.BusinessAddress,
		"bank_name":        vendor.BankName,
		"account_number":   vendor.AccountNumber,
		"account_name":     vendor.AccountName,
	})
}

// UpdateModeration writes the columns only an admin action changes.
func (repo *vendorRepository) UpdateModeration(ctx context.Context, vendor *entity.Vendor) error {
	return repo.updateColumns(ctx, vendor.ID, "failed to update vendor moderation", map[string]any{
		"status":          vendor.Status.String(),
		"commission_rate": vendor.CommissionRate,
		"approved_at":     vendor.ApprovedAt,
	})
}

func (repo *vendorRepository) updateColumns(ctx context.Context, id uuid.UUID, msg string, columns map[string]any) error {
	result := repo.db.WithContext(ctx).
		Model(&model.VendorModel{}).
		Where("id = ?", id).
		Updates(columns)

	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, msg)
	}

	if result.RowsAffected == 0 {
		return repository.ErrVendorNotFound
	}

	return nil
}

// Credit adds to total sales and the current balance in a single statement.
func (repo *vendorRepository) Credit(ctx context.Context, id uuid.UUID, sales, amount decimal.Decimal) error {
	result := repo.db.WithContext(ctx).
		Model(&model.VendorModel{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"total_sales":     gorm.Expr("total_sales + ?", sales),
			"current_balance": gorm.Expr("current_balance + ?", amount),
		})

	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to credit vendor")
	}

	if result.RowsAffected == 0 {
		return repository.ErrVendorNotFound
	}

	return nil
}

// List returns a page of vendors, newest first.
func (repo *vendorRepository) List(ctx context.Context, filter repository.VendorFilter) ([]*entity.Vendor, int64, error) {
	query := repo.db.WithContext(ctx).Model(&model.VendorModel{})
	if filter.Status != nil {
		query = query.Where("status = ?", filter.Status.String())
	}
	query = query.Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, errors.Wrap(err, "failed to count vendors")
	}

	var vendorModels []*model.VendorModel
	if err := paginate(query, filter.ListOptions).
		Order("created_at DESC").
		Find(&vendorModels).Error; err != nil {
		return nil, 0, errors.Wrap(err, "failed to list vendors")
	}

	vendors := make([]*entity.Vendor, 0, len(vendorModels))
	for _, vendorM := range vendorModels {
		vendors = append(vendors, toVendorDomain(vendorM))
	}

	return vendors, total, nil
}
