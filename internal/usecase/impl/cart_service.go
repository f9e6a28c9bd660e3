package impl

import (
	"context"
	"fmt"
	"log/slog"

	deliverycontext "marketplace/internal/delivery/context"
	"marketplace/internal/domain/entity"
	domainerrors "marketplace/internal/domain/errors"
	"marketplace/internal/domain/repository"
	"marketplace/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/fx"
)

// cartService implements the CartUsecase interface.
type cartService struct {
	txManager repository.TransactionManager
	cartRepo  repository.CartRepository
	logger    *slog.Logger
}

// CartServiceParams holds dependencies for CartService, injected by Fx.
type CartServiceParams struct {
	fx.In

	TxManager repository.TransactionManager
	CartRepo  repository.CartRepository
	Logger    *slog.Logger
}

// NewCartService creates a new cart service instance
func NewCartService(params CartServiceParams) usecase.CartUsecase {
	return &cartService{
		txManager: params.TxManager,
		cartRepo:  params.CartRepo,
		logger:    params.Logger,
	}
}

func (srv *cartService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// AddItem creates the line or adds to its quantity. The resulting quantity
// may not exceed the product's stock.
func (srv *cartService) AddItem(ctx context.Context, identity entity.Identity, input usecase.AddCartItemInput) (*entity.CartLine, error) {
	if err := requireAuthenticated(identity); err != nil {
		return nil, err
	}
	if input.Quantity < 1 {
		return nil, validationError("quantity must be at least 1")
	}

	var result *entity.CartLine
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		cartRepo := repoFactory.NewCartRepository()

		product, err := findSellableProduct(ctx, repoFactory.NewProductRepository(), input.ProductID)
		if err != nil {
			return err
		}

		line, err := cartRepo.FindLineForUpdate(ctx, identity.UserID, input.ProductID)
		switch {
		case errors.Is(err, repository.ErrCartLineNotFound):
			if err := checkStock(product, input.Quantity); err != nil {
				return err
			}

			line = &entity.CartLine{
				CustomerID: identity.UserID,
				ProductID:  product.ID,
				Quantity:   input.Quantity,
			}
			if err := cartRepo.Create(ctx, line); err != nil {
				if errors.Is(err, repository.ErrDuplicateCartLine) {
					return domainerrors.ErrConflict.WithDetails("cart line was changed concurrently, retry")
				}

				return errors.Wrap(err, "failed to create cart line")
			}
		case err != nil:
			return errors.Wrap(err, "failed to find cart line")
		default:
			quantity := line.Quantity + input.Quantity
			if err := checkStock(product, quantity); err != nil {
				return err
			}
			if err := cartRepo.UpdateQuantity(ctx, line.ID, quantity); err != nil {
				return errors.Wrap(err, "failed to update cart line")
			}
			line.Quantity = quantity
		}

		line.Product = product
		result = line

		return nil
	})
	if err != nil {
		srv.log(ctx).Debug("Add to cart rejected", slog.String("product_id", input.ProductID.String()), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to add cart item")
	}

	return result, nil
}

// ListCart returns the lines with their products and the grand total.
func (srv *cartService) ListCart(ctx context.Context, identity entity.Identity) (*usecase.CartView, error) {
	if err := requireAuthenticated(identity); err != nil {
		return nil, err
	}

	lines, err := srv.cartRepo.ListByCustomer(ctx, identity.UserID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list cart")
	}

	total := decimal.Zero
	for _, line := range lines {
		total = total.Add(line.Subtotal())
	}

	return &usecase.CartView{Lines: lines, Total: total}, nil
}

// UpdateItemQuantity overwrites the quantity of an existing line.
func (srv *cartService) UpdateItemQuantity(ctx context.Context, identity entity.Identity, productID uuid.UUID, quantity int) (*entity.CartLine, error) {
	if err := requireAuthenticated(identity); err != nil {
		return nil, err
	}
	if quantity < 1 {
		return nil, validationError("quantity must be at least 1")
	}

	var result *entity.CartLine
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		cartRepo := repoFactory.NewCartRepository()

		line, err := cartRepo.FindLineForUpdate(ctx, identity.UserID, productID)
		if errors.Is(err, repository.ErrCartLineNotFound) {
			return domainerrors.ErrCartItemNotFound
		}
		if err != nil {
			return errors.Wrap(err, "failed to find cart line")
		}

		product, err := findSellableProduct(ctx, repoFactory.NewProductRepository(), productID)
		if err != nil {
			return err
		}
		if err := checkStock(product, quantity); err != nil {
			return err
		}

		if err := cartRepo.UpdateQuantity(ctx, line.ID, quantity); err != nil {
			return errors.Wrap(err, "failed to update cart line")
		}

		line.Quantity = quantity
		line.Product = product
		result = line

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to update cart item")
	}

	return result, nil
}

// RemoveItem deletes the line for a product.
func (srv *cartService) RemoveItem(ctx context.Context, identity entity.Identity, productID uuid.UUID) error {
	if err := requireAuthenticated(identity); err != nil {
		return err
	}

	if err := srv.cartRepo.Delete(ctx, identity.UserID, productID); err != nil {
		if errors.Is(err, repository.ErrCartLineNotFound) {
			return domainerrors.ErrCartItemNotFound
		}

		return errors.Wrap(err, "failed to remove cart item")
	}

	return nil
}

// findSellableProduct loads a product that can currently be bought.
func findSellableProduct(ctx context.Context, productRepo repository.ProductRepository, productID uuid.UUID) (*entity.Product, error) {
	product, err := productRepo.FindByID(ctx, productID)
	if errors.Is(err, repository.ErrProductNotFound) {
		return nil, domainerrors.ErrProductNotFound.WithDetails("product " + productID.String())
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to find product")
	}
	if !product.IsActive {
		return nil, domainerrors.ErrProductNotFound.WithDetails("product " + productID.String() + " is not active")
	}

	return product, nil
}

func checkStock(product *entity.Product, requested int) error {
	if requested > product.Stock {
		return insufficientStock(product.ID, requested, product.Stock)
	}

	return nil
}

func insufficientStock(productID uuid.UUID, requested, available int) error {
	return domainerrors.ErrInsufficientStock.WithDetails(
		fmt.Sprintf("product %s: requested %d, available %d", productID, requested, available),
	)
}
