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

// orderRepository implements the repository.OrderRepository interface.
type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository is the constructor for orderRepository.
func NewOrderRepository(db *gorm.DB) repository.OrderRepository {
	return &orderRepository{
		db: db,
	}
}

// Create persists the order and its items in one insert batch.
func (repo *orderRepository) Create(ctx context.Context, order *entity.Order) error {
	if order.ID == uuid.Nil {
		order.ID = uuid.New()
	}
	for _, item := range order.Items {
		if item.ID == uuid.Nil {
			item.ID = uuid.New()
		}
		item.OrderID = order.ID
	}
	orderM := fromOrderDomain(order)

	if err := repo.db.WithContext(ctx).Create(orderM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return repository.ErrDuplicateOrderNumber
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create order")
	}

	order.CreatedAt = orderM.CreatedAt
	order.UpdatedAt = orderM.UpdatedAt
	for i, item := range order.Items {
		item.CreatedAt = orderM.Items[i].CreatedAt
	}

	return nil
}

// FindByID retrieves an order with its items.
func (repo *orderRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	return repo.findByID(repo.db.WithContext(ctx), id)
}

// FindByIDForUpdate retrieves an order with its items and locks the order row.
func (repo *orderRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	return repo.findByID(repo.db.WithContext(ctx).Clauses(clause.Locking{Strength: clause.LockingStrengthUpdate}), id)
}

func (repo *orderRepository) findByID(db *gorm.DB, id uuid.UUID) (*entity.Order, error) {
	var orderM model.OrderModel

	if err := db.
		Preload("Items").
		Where("id = ?", id).
		First(&orderM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrOrderNotFound
		}

		return nil, errors.Wrap(err, "failed to find order by ID")
	}

	return toOrderDomain(&orderM), nil
}

// UpdateStatus changes the status of an order.
func (repo *orderRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.OrderStatus, at time.Time) error {
	result := repo.db.WithContext(ctx).
		Model(&model.OrderModel{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status":     status.String(),
			"updated_at": at,
		})

	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update order status")
	}

	if result.RowsAffected == 0 {
		return repository.ErrOrderNotFound
	}

	return nil
}

// List returns a page of orders, newest first.
func (repo *orderRepository) List(ctx context.Context, filter repository.OrderFilter) ([]*entity.Order, int64, error) {
	query := repo.db.WithContext(ctx).Model(&model.OrderModel{})

	if filter.CustomerID != nil {
		query = query.Where("customer_id = ?", *filter.CustomerID)
	}
	if filter.VendorID != nil {
		query = query.Where("id IN (?)", repo.db.
			Model(&model.OrderItemModel{}).
			Select("order_id").
			Where("vendor_id = ?", *filter.VendorID))
	}
	if filter.Status != nil {
		query = query.Where("status = ?", filter.Status.String())
	}
	query = query.Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, errors.Wrap(err, "failed to count orders")
	}

	var orderModels []*model.OrderModel
	if err := paginate(query, filter.ListOptions).
		Order("created_at DESC").
		Find(&orderModels).Error; err != nil {
		return nil, 0, errors.Wrap(err, "failed to list orders")
	}

	orders := make([]*entity.Order, 0, len(orderModels))
	for _, orderM := range orderModels {
		orders = append(orders, toOrderDomain(orderM))
	}

	return orders, total, nil
}

// vendorOrderItemRow is an order item joined with its order header.
type vendorOrderItemRow struct {
	model.OrderItemModel `gorm:"embedded"`

	OrderNumber string
	OrderStatus string
	OrderedAt   time.Time
}

// ListVendorItems returns a page of the vendor's sold items, newest first.
func (repo *orderRepository) ListVendorItems(
	ctx context.Context,
	vendorID uuid.UUID,
	status *entity.OrderStatus,
	opts repository.ListOptions,
) ([]*entity.VendorOrderItem, int64, error) {
	query := repo.db.WithContext(ctx).
		Table("order_items").
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Where("order_items.vendor_id = ?", vendorID)
	if status != nil {
		query = query.Where("orders.status = ?", status.String())
	}
	query = query.Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, errors.Wrap(err, "failed to count vendor order items")
	}

	var rows []*vendorOrderItemRow
	if err := paginate(query, opts).
		Select("order_items.*, orders.order_number AS order_number, orders.status AS order_status, orders.created_at AS ordered_at").
		Order("orders.created_at DESC").
		Scan(&rows).Error; err != nil {
		return nil, 0, errors.Wrap(err, "failed to list vendor order items")
	}

	items := make([]*entity.VendorOrderItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, &entity.VendorOrderItem{
			Item:        toOrderItemDomain(&row.OrderItemModel),
			OrderNumber: row.OrderNumber,
			OrderStatus: entity.OrderStatus(row.OrderStatus),
			OrderedAt:   row.OrderedAt,
		})
	}

	return items, total, nil
}
