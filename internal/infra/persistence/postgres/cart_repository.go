package postgres

import (
	"context"
	"time"

	"marketplace/internal/domain/entity"
	domainerrors "marketplace/internal/domain/errors"
	"marketplace/internal/domain/repository"
	"marketplace/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// cartRepository implements the repository.CartRepository interface.
type cartRepository struct {
	db *gorm.DB
}

// NewCartRepository is the constructor for cartRepository.
func NewCartRepository(db *gorm.DB) repository.CartRepository {
	return &cartRepository{
		db: db,
	}
}

// FindLine retrieves the customer's line for a product.
func (repo *cartRepository) FindLine(ctx context.Context, customerID, productID uuid.UUID) (*entity.CartLine, error) {
	return repo.findLine(repo.db.WithContext(ctx), customerID, productID)
}

// FindLineForUpdate retrieves the line and locks it.
func (repo *cartRepository) FindLineForUpdate(ctx context.Context, customerID, productID uuid.UUID) (*entity.CartLine, error) {
	return repo.findLine(repo.db.WithContext(ctx).Clauses(clause.Locking{Strength: clause.LockingStrengthUpdate}), customerID, productID)
}

func (repo *cartRepository) findLine(db *gorm.DB, customerID, productID uuid.UUID) (*entity.CartLine, error) {
	var itemM model.CartItemModel

	if err := db.
		Where("customer_id = ? AND product_id = ?", customerID, productID).
		First(&itemM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrCartLineNotFound
		}

		return nil, errors.Wrap(err, "failed to find cart line")
	}

	return toCartLineDomain(&itemM), nil
}

// Create persists a new cart line.
func (repo *cartRepository) Create(ctx context.Context, line *entity.CartLine) error {
	if line.ID == uuid.Nil {
		line.ID = uuid.New()
	}
	if line.AddedAt.IsZero() {
		line.AddedAt = time.Now()
	}
	itemM := fromCartLineDomain(line)

	if err := repo.db.WithContext(ctx).Create(itemM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return repository.ErrDuplicateCartLine
		}
		if isForeignKeyConstraintViolation(err) {
			return repository.ErrProductNotFound
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create cart line")
	}

	line.AddedAt = itemM.AddedAt
	line.UpdatedAt = itemM.UpdatedAt

	return nil
}

// UpdateQuantity overwrites the quantity of a line.
func (repo *cartRepository) UpdateQuantity(ctx context.Context, id uuid.UUID, quantity int) error {
	result := repo.db.WithContext(ctx).
		Model(&model.CartItemModel{}).
		Where("id = ?", id).
		Update("quantity", quantity)

	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update cart quantity")
	}

	if result.RowsAffected == 0 {
		return repository.ErrCartLineNotFound
	}

	return nil
}

// Delete removes the customer's line for a product.
func (repo *cartRepository) Delete(ctx context.Context, customerID, productID uuid.UUID) error {
	result := repo.db.WithContext(ctx).
		Where("customer_id = ? AND product_id = ?", customerID, productID).
		Delete(&model.CartItemModel{})

	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete cart line")
	}

	if result.RowsAffected == 0 {
		return repository.ErrCartLineNotFound
	}

	return nil
}

// ListByCustomer returns the customer's lines with their products, oldest first.
func (repo *cartRepository) ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]*entity.CartLine, error) {
	var itemModels []*model.CartItemModel

	if err := repo.db.WithContext(ctx).
		Preload("Product").
		Where("customer_id = ?", customerID).
		Order("added_at ASC").
		Find(&itemModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list cart lines")
	}

	lines := make([]*entity.CartLine, 0, len(itemModels))
	for _, itemM := range itemModels {
		lines = append(lines, toCartLineDomain(itemM))
	}

	return lines, nil
}

// ClearByCustomer removes every line of the customer.
func (repo *cartRepository) ClearByCustomer(ctx context.Context, customerID uuid.UUID) (int64, error) {
	result := repo.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Delete(&model.CartItemModel{})

	if result.Error != nil {
		return 0, domainerrors.NewDatabaseExecuteError(result.Error, "failed to clear cart")
	}

	return result.RowsAffected, nil
}
