package impl

import (
	"context"
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
	"go.uber.org/fx"
)


// orderService implements the OrderUsecase interface.
type orderService struct {
	txManager     repository.TransactionManager
	orderRepo     repository.OrderRepository
	vendorRepo    repository.VendorRepository
	numbers       service.OrderNumberGenerator
	events        eventEmitter
	numberRetries int
	logger        *slog.Logger
}

// OrderServiceParams holds dependencies for OrderService, injected by Fx.
type OrderServiceParams struct {
	fx.In

	TxManager  repository.TransactionManager
	OrderRepo  repository.OrderRepository
	VendorRepo repository.VendorRepository
	Numbers    service.OrderNumberGenerator
	Publisher  service.EventPublisher
	Config     *config.Config
	Logger     *slog.Logger
}

// NewOrderService creates a new order service instance
func NewOrderService(params OrderServiceParams) usecase.OrderUsecase {
	numberRetries := config.DefaultOrderNumberRetries
	if params.Config != nil && params.Config.Order != nil && params.Config.Order.NumberRetries > 0 {
		numberRetries = params.Config.Order.NumberRetries
	}

	return &orderService{
		txManager:     params.TxManager,
		orderRepo:     params.OrderRepo,
		vendorRepo:    params.VendorRepo,
		numbers:       params.Numbers,
		events:        eventEmitter{publisher: params.Publisher, logger: params.Logger},
		numberRetries: numberRetries,
		logger:        params.Logger,
	}
}

func (srv *orderService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// PlaceOrder turns the cart into an order. Order, items, stock decrements,
// vendor credits and the cart clear commit together or not at all. A
// colliding order number retries the whole transaction with a new number.
func (srv *orderService) PlaceOrder(ctx context.Context, identity entity.Identity, input usecase.PlaceOrderInput) (*usecase.PlaceOrderOutput, error) {
	if err := requireAuthenticated(identity); err != nil {
		return nil, err
	}
	if err := validatePlaceOrderInput(input); err != nil {
		return nil, err
	}

	var (
		order *entity.Order
		err   error
	)
	attempts := srv.numberRetries + 1
	for attempt := 1; attempt <= attempts; attempt++ {
		order, err = srv.placeOrderOnce(ctx, identity.UserID, input)
		if !errors.Is(err, repository.ErrDuplicateOrderNumber) {
			break
		}

		srv.log(ctx).Warn("Order number collision, retrying", slog.Int("attempt", attempt))
	}

	if errors.Is(err, repository.ErrDuplicateOrderNumber) {
		srv.log(ctx).Error("Order number retries exhausted", slog.Int("attempts", attempts))

		return nil, domainerrors.ErrOrderNumberConflict.WrapMessage("failed to place order")
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to place order")
	}

	srv.log(ctx).Info("Order placed",
		slog.String("order_id", order.ID.String()),
		slog.String("order_number", order.OrderNumber),
		slog.String("total", order.TotalAmount.StringFixed(2)),
	)
	srv.events.emit(ctx, service.EventOrderPlaced, order.ID, orderPlacedPayload(order))

	return &usecase.PlaceOrderOutput{
		OrderID:     order.ID,
		OrderNumber: order.OrderNumber,
		TotalAmount: order.TotalAmount,
		Status:      order.Status,
	}, nil
}

func validatePlaceOrderInput(input usecase.PlaceOrderInput) error {
	if blank(input.DeliveryAddress) {
		return validationError("delivery address is required")
	}
	if blank(input.DeliveryPhone) {
		return validationError("delivery phone is required")
	}
	if input.DeliveryFee.IsNegative() {
		return validationError("delivery fee must not be negative")
	}

	return nil
}

func (srv *orderService) placeOrderOnce(ctx context.Context, customerID uuid.UUID, input usecase.PlaceOrderInput) (*entity.Order, error) {
	var order *entity.Order

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		cartRepo := repoFactory.NewCartRepository()
		productRepo := repoFactory.NewProductRepository()
		vendorRepo := repoFactory.NewVendorRepository()
		orderRepo := repoFactory.NewOrderRepository()

		lines, err := cartRepo.ListByCustomer(ctx, customerID)
		if err != nil {
			return errors.Wrap(err, "failed to load cart")
		}
		if len(lines) == 0 {
			return domainerrors.ErrEmptyCart
		}

		vendors, err := srv.loadCheckoutCatalog(ctx, productRepo, vendorRepo, lines)
		if err != nil {
			return err
		}

		settlement := entity.SettleLines(lines, vendors, input.DeliveryFee)

		now := time.Now()
		order = &entity.Order{
			ID:               uuid.New(),
			CustomerID:       customerID,
			OrderNumber:      srv.numbers.Next(now),
			TotalAmount:      settlement.TotalAmount,
			CommissionAmount: settlement.CommissionTotal,
			DeliveryFee:      settlement.DeliveryFee,
			DeliveryAddress:  input.DeliveryAddress,
			DeliveryPhone:    input.DeliveryPhone,
			Notes:            input.Notes,
			PaymentMethod:    input.PaymentMethod,
			PaymentStatus:    entity.PaymentStatusPending,
			Status:           entity.OrderStatusPending,
			Items:            settlement.Items,
			CreatedAt:        now,
			UpdatedAt:        now,
		}
		if err := orderRepo.Create(ctx, order); err != nil {
			return errors.Wrap(err, "failed to create order")
		}

		for _, item := range order.Items {
			ok, err := productRepo.DecrementStock(ctx, item.ProductID, item.Quantity)
			if err != nil {
				return errors.Wrap(err, "failed to decrement stock")
			}
			if !ok {
				available := 0
				if current, findErr := productRepo.FindByID(ctx, item.ProductID); findErr == nil {
					available = current.Stock
				}

				return insufficientStock(item.ProductID, item.Quantity, available)
			}
		}

		for _, credit := range settlement.Credits {
			if err := vendorRepo.Credit(ctx, credit.VendorID, credit.Sales, credit.VendorAmount); err != nil {
				return errors.Wrap(err, "failed to credit vendor")
			}
		}

		if _, err := cartRepo.ClearByCustomer(ctx, customerID); err != nil {
			return errors.Wrap(err, "failed to clear cart")
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return order, nil
}

// loadCheckoutCatalog re-reads every product of the cart inside the
// transaction, attaches it to its line and returns the selling vendors.
func (srv *orderService) loadCheckoutCatalog(
	ctx context.Context,
	productRepo repository.ProductRepository,
	vendorRepo repository.VendorRepository,
	lines []*entity.CartLine,
) (map[uuid.UUID]*entity.Vendor, error) {
	productIDs := make([]uuid.UUID, 0, len(lines))
	for _, line := range lines {
		productIDs = append(productIDs, line.ProductID)
	}

	products, err := productRepo.FindByIDs(ctx, productIDs)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load cart products")
	}
	productsByID := make(map[uuid.UUID]*entity.Product, len(products))
	for _, product := range products {
		productsByID[product.ID] = product
	}

	vendorIDs := make([]uuid.UUID, 0, len(products))
	seen := make(map[uuid.UUID]bool, len(products))
	for _, line := range lines {
		product, ok := productsByID[line.ProductID]
		if !ok || !product.IsActive {
			return nil, domainerrors.ErrProductNotFound.WithDetails("product " + line.ProductID.String() + " is no longer available")
		}
		if product.Stock < line.Quantity {
			return nil, insufficientStock(product.ID, line.Quantity, product.Stock)
		}
		line.Product = product

		if !seen[product.VendorID] {
			seen[product.VendorID] = true
			vendorIDs = append(vendorIDs, product.VendorID)
		}
	}

	vendorList, err := vendorRepo.FindByIDs(ctx, vendorIDs)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load vendors")
	}
	vendors := make(map[uuid.UUID]*entity.Vendor, len(vendorList))
	for _, vendor := range vendorList {
		vendors[vendor.ID] = vendor
	}

	for _, line := range lines {
		vendor, ok := vendors[line.Product.VendorID]
		if !ok || !vendor.IsApproved() {
			return nil, domainerrors.ErrProductNotFound.WithDetails("product " + line.ProductID.String() + " is sold by an unavailable vendor")
		}
	}

	return vendors, nil
}

func orderPlacedPayload(order *entity.Order) service.OrderPlacedPayload {
	payload := service.OrderPlacedPayload{
		OrderID:     order.ID.String(),
		OrderNumber: order.OrderNumber,
		CustomerID:  order.CustomerID.String(),
		TotalAmount: order.TotalAmount.StringFixed(2),
		ProductIDs:  make([]string, 0, len(order.Items)),
	}

	seen := make(map[uuid.UUID]bool)
	for _, item := range order.Items {
		payload.ProductIDs = append(payload.ProductIDs, item.ProductID.String())
		if !seen[item.VendorID] {
			seen[item.VendorID] = true
			payload.VendorIDs = append(payload.VendorIDs, item.VendorID.String())
		}
	}

	return payload
}

// GetOrder returns an order to its customer or an admin.
func (srv *orderService) GetOrder(ctx context.Context, identity entity.Identity, orderID uuid.UUID) (*entity.Order, error) {
	if err := requireAuthenticated(identity); err != nil {
		return nil, err
	}

	order, err := srv.orderRepo.FindByID(ctx, orderID)
	if errors.Is(err, repository.ErrOrderNotFound) {
		return nil, domainerrors.ErrOrderNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to find order")
	}

	// Other customers' orders are reported as missing rather than forbidden.
	if order.CustomerID != identity.UserID && !identity.IsAdmin() {
		return nil, domainerrors.ErrOrderNotFound
	}

	return order, nil
}

// ListCustomerOrders pages through the caller's orders.
func (srv *orderService) ListCustomerOrders(ctx context.Context, identity entity.Identity, opts repository.ListOptions) ([]*entity.Order, int64, error) {
	if err := requireAuthenticated(identity); err != nil {
		return nil, 0, err
	}

	orders, total, err := srv.orderRepo.List(ctx, repository.OrderFilter{
		CustomerID:  &identity.UserID,
		ListOptions: opts,
	})
	if err != nil {
		return nil, 0, errors.Wrap(err, "failed to list customer orders")
	}

	return orders, total, nil
}

// CancelOrder cancels a pending order of the caller. Stock and vendor
// balances are left as settled.
func (srv *orderService) CancelOrder(ctx context.Context, identity entity.Identity, orderID uuid.UUID) (*entity.Order, error) {
	if err := requireAuthenticated(identity); err != nil {
		return nil, err
	}

	var (
		order *entity.Order
		from  entity.OrderStatus
	)
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		orderRepo := repoFactory.NewOrderRepository()

		var err error
		order, err = lockOrder(ctx, orderRepo, orderID)
		if err != nil {
			return err
		}
		if order.CustomerID != identity.UserID {
			return domainerrors.ErrOrderNotFound
		}
		if order.Status != entity.OrderStatusPending {
			return domainerrors.ErrInvalidState.WithDetails("only pending orders can be cancelled, order is " + order.Status.String())
		}

		from = order.Status
		if err := order.TransitionTo(entity.OrderStatusCancelled, time.Now()); err != nil {
			return domainerrors.ErrInvalidOrderTransition.WithDetails(err.Error())
		}

		return orderRepo.UpdateStatus(ctx, order.ID, order.Status, order.UpdatedAt)
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to cancel order")
	}

	srv.events.emitStatusChange(ctx, service.EventOrderStatusChanged, order.ID, from.String(), order.Status.String(), identity.UserID, "cancelled by customer")

	return order, nil
}

// UpdateOrderStatus applies a legal transition and records it in the audit log.
func (srv *orderService) UpdateOrderStatus(ctx context.Context, identity entity.Identity, orderID uuid.UUID, status entity.OrderStatus) (*entity.Order, error) {
	if err := requireAdmin(identity); err != nil {
		return nil, err
	}
	if !status.IsValid() {
		return nil, validationError("unknown order status " + status.String())
	}

	var (
		order *entity.Order
		from  entity.OrderStatus
	)
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		orderRepo := repoFactory.NewOrderRepository()

		var err error
		order, err = lockOrder(ctx, orderRepo, orderID)
		if err != nil {
			return err
		}

		from = order.Status
		if err := order.TransitionTo(status, time.Now()); err != nil {
			return domainerrors.ErrInvalidOrderTransition.WithDetails(err.Error())
		}
		if err := orderRepo.UpdateStatus(ctx, order.ID, order.Status, order.UpdatedAt); err != nil {
			return errors.Wrap(err, "failed to update order status")
		}

		return repoFactory.NewAuditRepository().Create(ctx, &entity.AuditRecord{
			ActorID:     identity.UserID,
			Action:      entity.AuditOrderStatusUpdate,
			TargetID:    order.ID,
			Description: "Order " + order.OrderNumber + " status changed from " + from.String() + " to " + status.String(),
		})
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to update order status")
	}

	srv.log(ctx).Info("Order status updated",
		slog.String("order_id", order.ID.String()),
		slog.String("from", from.String()),
		slog.String("to", order.Status.String()),
	)
	srv.events.emitStatusChange(ctx, service.EventOrderStatusChanged, order.ID, from.String(), order.Status.String(), identity.UserID, "")

	return order, nil
}

// ListOrders pages through all orders for an admin.
func (srv *orderService) ListOrders(ctx context.Context, identity entity.Identity, filter usecase.OrderListFilter) ([]*entity.Order, int64, error) {
	if err := requireAdmin(identity); err != nil {
		return nil, 0, err
	}

	orders, total, err := srv.orderRepo.List(ctx, repository.OrderFilter{
		Status:      filter.Status,
		VendorID:    filter.VendorID,
		ListOptions: filter.ListOptions,
	})
	if err != nil {
		return nil, 0, errors.Wrap(err, "failed to list orders")
	}

	return orders, total, nil
}

// ListVendorOrderItems pages through the items sold by the caller's vendor account.
func (srv *orderService) ListVendorOrderItems(
	ctx context.Context,
	identity entity.Identity,
	status *entity.OrderStatus,
	opts repository.ListOptions,
) ([]*entity.VendorOrderItem, int64, error) {
	vendor, err := callerVendor(ctx, srv.vendorRepo, identity)
	if err != nil {
		return nil, 0, err
	}

	items, total, err := srv.orderRepo.ListVendorItems(ctx, vendor.ID, status, opts)
	if err != nil {
		return nil, 0, errors.Wrap(err, "failed to list vendor order items")
	}

	return items, total, nil
}

func lockOrder(ctx context.Context, orderRepo repository.OrderRepository, orderID uuid.UUID) (*entity.Order, error) {
	order, err := orderRepo.FindByIDForUpdate(ctx, orderID)
	if errors.Is(err, repository.ErrOrderNotFound) {
		return nil, domainerrors.ErrOrderNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to lock order")
	}

	return order, nil
}
