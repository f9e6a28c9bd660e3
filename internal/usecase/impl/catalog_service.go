package impl

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	deliverycontext "marketplace/internal/delivery/context"
	"marketplace/internal/domain/entity"
	domainerrors "marketplace/internal/domain/errors"
	"marketplace/internal/domain/repository"
	"marketplace/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// catalogService implements the CatalogUsecase interface.
type catalogService struct {
	txManager   repository.TransactionManager
	productRepo repository.ProductRepository
	vendorRepo  repository.VendorRepository
	logger      *slog.Logger
}

// CatalogServiceParams holds dependencies for CatalogService, injected by Fx.
type CatalogServiceParams struct {
	fx.In

	TxManager   repository.TransactionManager
	ProductRepo repository.ProductRepository
	VendorRepo  repository.VendorRepository
	Logger      *slog.Logger
}

// NewCatalogService creates a new catalog service instance
func NewCatalogService(params CatalogServiceParams) usecase.CatalogUsecase {
	return &catalogService{
		txManager:   params.TxManager,
		productRepo: params.ProductRepo,
		vendorRepo:  params.VendorRepo,
		logger:      params.Logger,
	}
}

func (srv *catalogService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// AdjustStock applies a manual stock change with the product row locked.
// Admins may adjust any product; vendors only their own while approved.
func (srv *catalogService) AdjustStock(ctx context.Context, identity entity.Identity, productID uuid.UUID, input usecase.AdjustStockInput) (*entity.Product, error) {
	if err := requireAuthenticated(identity); err != nil {
		return nil, err
	}
	if !input.Action.IsValid() {
		return nil, domainerrors.ErrInvalidStockAction.WithDetails(fmt.Sprintf("got %q", input.Action))
	}
	if input.Quantity < 0 {
		return nil, validationError("quantity must not be negative")
	}

	var product *entity.Product
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		productRepo := repoFactory.NewProductRepository()

		var err error
		product, err = productRepo.FindByIDForUpdate(ctx, productID)
		if errors.Is(err, repository.ErrProductNotFound) {
			return domainerrors.ErrProductNotFound
		}
		if err != nil {
			return errors.Wrap(err, "failed to lock product")
		}

		if !identity.IsAdmin() {
			vendor, err := callerApprovedVendor(ctx, repoFactory.NewVendorRepository(), identity)
			if err != nil {
				return err
			}
			if product.VendorID != vendor.ID {
				return domainerrors.ErrProductNotFound
			}
		}

		stock, err := entity.AdjustStock(product.Stock, input.Action, input.Quantity)
		if err != nil {
			return validationError(err.Error())
		}
		if err := productRepo.SetStock(ctx, product.ID, stock); err != nil {
			return errors.Wrap(err, "failed to set stock")
		}

		product.Stock = stock
		product.UpdatedAt = time.Now()

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to adjust stock")
	}

	srv.log(ctx).Info("Stock adjusted",
		slog.String("product_id", product.ID.String()),
		slog.String("action", string(input.Action)),
		slog.Int("quantity", input.Quantity),
		slog.Int("stock", product.Stock),
	)

	return product, nil
}

// CreateProduct lists a new product for the caller's approved vendor account.
func (srv *catalogService) CreateProduct(ctx context.Context, identity entity.Identity, input usecase.CreateProductInput) (*entity.Product, error) {
	vendor, err := callerApprovedVendor(ctx, srv.vendorRepo, identity)
	if err != nil {
		return nil, err
	}

	if blank(input.Name) {
		return nil, validationError("product name is required")
	}
	if input.Price.IsNegative() {
		return nil, validationError("price must not be negative")
	}
	if input.Stock < 0 {
		return nil, validationError("stock must not be negative")
	}

	minStock := entity.DefaultMinStock
	if input.MinStock != nil {
		if *input.MinStock < 0 {
			return nil, validationError("min stock must not be negative")
		}
		minStock = *input.MinStock
	}

	product := &entity.Product{
		ID:          uuid.New(),
		VendorID:    vendor.ID,
		Name:        input.Name,
		Description: input.Description,
		Category:    input.Category,
		Price:       input.Price,
		Stock:       input.Stock,
		MinStock:    minStock,
		IsActive:    true,
	}
	if err := srv.productRepo.Create(ctx, product); err != nil {
		return nil, errors.Wrap(err, "failed to create product")
	}

	return product, nil
}

// UpdateProduct edits a product owned by the caller's approved vendor account.
func (srv *catalogService) UpdateProduct(ctx context.Context, identity entity.Identity, productID uuid.UUID, input usecase.UpdateProductInput) (*entity.Product, error) {
	vendor, err := callerApprovedVendor(ctx, srv.vendorRepo, identity)
	if err != nil {
		return nil, err
	}

	var product *entity.Product
	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		productRepo := repoFactory.NewProductRepository()

		var err error
		product, err = productRepo.FindByIDForUpdate(ctx, productID)
		if errors.Is(err, repository.ErrProductNotFound) {
			return domainerrors.ErrProductNotFound
		}
		if err != nil {
			return errors.Wrap(err, "failed to lock product")
		}
		if product.VendorID != vendor.ID {
			return domainerrors.ErrProductNotFound
		}

		if err := applyProductUpdates(product, input); err != nil {
			return err
		}
		if err := productRepo.Update(ctx, product); err != nil {
			return errors.Wrap(err, "failed to update product")
		}
		if input.IsActive != nil {
			if err := productRepo.SetActive(ctx, product.ID, product.IsActive); err != nil {
				return errors.Wrap(err, "failed to update product state")
			}
		}

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to update product")
	}

	return product, nil
}

func applyProductUpdates(product *entity.Product, input usecase.UpdateProductInput) error {
	if input.Name != nil {
		if blank(*input.Name) {
			return validationError("product name must not be empty")
		}
		product.Name = *input.Name
	}
	if input.Description != nil {
		product.Description = *input.Description
	}
	if input.Category != nil {
		product.Category = *input.Category
	}
	if input.Price != nil {
		if input.Price.IsNegative() {
			return validationError("price must not be negative")
		}
		product.Price = *input.Price
	}
	if input.MinStock != nil {
		if *input.MinStock < 0 {
			return validationError("min stock must not be negative")
		}
		product.MinStock = *input.MinStock
	}
	if input.IsActive != nil {
		product.IsActive = *input.IsActive
	}
	product.UpdatedAt = time.Now()

	return nil
}

// ListVendorProducts pages through the caller's products, active or not.
func (srv *catalogService) ListVendorProducts(ctx context.Context, identity entity.Identity, lowStockOnly bool, opts repository.ListOptions) ([]*entity.Product, int64, error) {
	vendor, err := callerVendor(ctx, srv.vendorRepo, identity)
	if err != nil {
		return nil, 0, err
	}

	products, total, err := srv.productRepo.List(ctx, repository.ProductFilter{
		VendorID:     &vendor.ID,
		LowStockOnly: lowStockOnly,
		ListOptions:  opts,
	})
	if err != nil {
		return nil, 0, errors.Wrap(err, "failed to list vendor products")
	}

	return products, total, nil
}

// ListProducts pages through the active catalog.
func (srv *catalogService) ListProducts(ctx context.Context, query usecase.ProductQuery) ([]*entity.Product, int64, error) {
	active := true
	products, total, err := srv.productRepo.List(ctx, repository.ProductFilter{
		VendorID:    query.VendorID,
		Category:    query.Category,
		Active:      &active,
		ListOptions: query.ListOptions,
	})
	if err != nil {
		return nil, 0, errors.Wrap(err, "failed to list products")
	}

	return products, total, nil
}

// ListAllProducts pages through every product for an admin, including
// deactivated ones unless query.Active says otherwise.
func (srv *catalogService) ListAllProducts(ctx context.Context, identity entity.Identity, query usecase.AdminProductQuery) ([]*entity.Product, int64, error) {
	if err := requireAdmin(identity); err != nil {
		return nil, 0, err
	}

	products, total, err := srv.productRepo.List(ctx, repository.ProductFilter{
		VendorID:     query.VendorID,
		Category:     query.Category,
		Active:       query.Active,
		LowStockOnly: query.LowStockOnly,
		ListOptions:  query.ListOptions,
	})
	if err != nil {
		return nil, 0, errors.Wrap(err, "failed to list all products")
	}

	return products, total, nil
}

// GetProduct returns an active product.
func (srv *catalogService) GetProduct(ctx context.Context, productID uuid.UUID) (*entity.Product, error) {
	return findSellableProduct(ctx, srv.productRepo, productID)
}

// DeactivateProduct takes a product off sale and records the admin action.
func (srv *catalogService) DeactivateProduct(ctx context.Context, identity entity.Identity, productID uuid.UUID, reason string) (*entity.Product, error) {
	if err := requireAdmin(identity); err != nil {
		return nil, err
	}

	var product *entity.Product
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		productRepo := repoFactory.NewProductRepository()

		var err error
		product, err = productRepo.FindByIDForUpdate(ctx, productID)
		if errors.Is(err, repository.ErrProductNotFound) {
			return domainerrors.ErrProductNotFound
		}
		if err != nil {
			return errors.Wrap(err, "failed to lock product")
		}

		if err := productRepo.SetActive(ctx, product.ID, false); err != nil {
			return errors.Wrap(err, "failed to deactivate product")
		}
		product.IsActive = false

		description := "Product " + product.Name + " deactivated"
		if reason != "" {
			description += ": " + reason
		}

		return repoFactory.NewAuditRepository().Create(ctx, &entity.AuditRecord{
			ActorID:     identity.UserID,
			Action:      entity.AuditProductDeactivation,
			TargetID:    product.ID,
			Description: description,
		})
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to deactivate product")
	}

	return product, nil
}
