package handler

import (
	"log/slog"
	"net/http"

	"marketplace/internal/delivery/api/response"
	"marketplace/internal/domain/entity"
	"marketplace/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"go.uber.org/fx"
)

// ProductHandlerParams holds dependencies for ProductHandler, injected by Fx.
type ProductHandlerParams struct {
	fx.In

	CatalogUC usecase.CatalogUsecase
	Logger    *slog.Logger
}

// ProductHandler serves the catalog for shoppers, vendors and admins.
type ProductHandler struct {
	catalogUC usecase.CatalogUsecase
	logger    *slog.Logger
}

// NewProductHandler is the constructor for ProductHandler
func NewProductHandler(params ProductHandlerParams) *ProductHandler {
	return &ProductHandler{
		catalogUC: params.CatalogUC,
		logger:    params.Logger,
	}
}

// CreateProductRequest represents the request body for listing a product
type CreateProductRequest struct {
	Name        string          `json:"name" validate:"required,max=200"`
	Description string          `json:"description"`
	Category    string          `json:"category" validate:"max=100"`
	Price       decimal.Decimal `json:"price" validate:"gt=0"`
	Stock       int             `json:"stock" validate:"gte=0"`
	MinStock    *int            `json:"min_stock" validate:"omitempty,gte=0"`
}

// UpdateProductRequest represents the request body for editing a product
type UpdateProductRequest struct {
	Name        *string          `json:"name" validate:"omitempty,min=1,max=200"`
	Description *string          `json:"description"`
	Category    *string          `json:"category" validate:"omitempty,max=100"`
	Price       *decimal.Decimal `json:"price" validate:"omitempty,gt=0"`
	MinStock    *int             `json:"min_stock" validate:"omitempty,gte=0"`
	IsActive    *bool            `json:"is_active"`
}

// AdjustStockRequest represents the request body for a stock adjustment
type AdjustStockRequest struct {
	Action   string `json:"action" validate:"required"`
	Quantity int    `json:"quantity" validate:"gte=0"`
}

// DeactivateProductRequest represents the request body for taking a product off sale
type DeactivateProductRequest struct {
	Reason string `json:"reason" validate:"max=500"`
}

// ListProducts handles browsing active products
func (h *ProductHandler) ListProducts(c echo.Context) error {
	vendorID, ok := optionalUUIDQuery(c, "vendor_id")
	if !ok {
		return invalidID(c, "vendor_id")
	}

	page := pageFrom(c)
	products, total, err := h.catalogUC.ListProducts(c.Request().Context(), usecase.ProductQuery{
		Category:    c.QueryParam("category"),
		VendorID:    vendorID,
		ListOptions: listOptions(page),
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Paginated(c, toProductResponses(products), page.Meta(total))
}

// ListAllProducts handles the admin product listing
func (h *ProductHandler) ListAllProducts(c echo.Context) error {
	vendorID, ok := optionalUUIDQuery(c, "vendor_id")
	if !ok {
		return invalidID(c, "vendor_id")
	}
	active, ok := optionalBoolQuery(c, "is_active")
	if !ok {
		return response.BadRequest(c, "INVALID_FILTER", "is_active must be true or false")
	}
	lowStock, ok := optionalBoolQuery(c, "low_stock")
	if !ok {
		return response.BadRequest(c, "INVALID_FILTER", "low_stock must be true or false")
	}

	page := pageFrom(c)
	products, total, err := h.catalogUC.ListAllProducts(c.Request().Context(), callerIdentity(c), usecase.AdminProductQuery{
		Category:     c.QueryParam("category"),
		VendorID:     vendorID,
		Active:       active,
		LowStockOnly: lowStock != nil && *lowStock,
		ListOptions:  listOptions(page),
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Paginated(c, toProductResponses(products), page.Meta(total))
}

// GetProduct handles retrieving one active product
func (h *ProductHandler) GetProduct(c echo.Context) error {
	productID, ok := parseIDParam(c, "id")
	if !ok {
		return invalidID(c, "product ID")
	}

	product, err := h.catalogUC.GetProduct(c.Request().Context(), productID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, toProductResponse(product))
}

// ListVendorProducts handles listing the caller's own products
func (h *ProductHandler) ListVendorProducts(c echo.Context) error {
	return h.listVendorProducts(c, false)
}

// ListLowStockProducts handles listing the caller's products at or below their threshold
func (h *ProductHandler) ListLowStockProducts(c echo.Context) error {
	return h.listVendorProducts(c, true)
}

func (h *ProductHandler) listVendorProducts(c echo.Context, lowStockOnly bool) error {
	page := pageFrom(c)
	products, total, err := h.catalogUC.ListVendorProducts(c.Request().Context(), callerIdentity(c), lowStockOnly, listOptions(page))
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Paginated(c, toProductResponses(products), page.Meta(total))
}

// CreateProduct handles listing a new product
func (h *ProductHandler) CreateProduct(c echo.Context) error {
	var req CreateProductRequest
	if ok, err := bindRequest(c, &req); !ok {
		return err
	}

	product, err := h.catalogUC.CreateProduct(c.Request().Context(), callerIdentity(c), usecase.CreateProductInput{
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		Price:       req.Price,
		Stock:       req.Stock,
		MinStock:    req.MinStock,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, toProductResponse(product))
}

// UpdateProduct handles editing a product
func (h *ProductHandler) UpdateProduct(c echo.Context) error {
	productID, ok := parseIDParam(c, "id")
	if !ok {
		return invalidID(c, "product ID")
	}

	var req UpdateProductRequest
	if ok, err := bindRequest(c, &req); !ok {
		return err
	}

	product, err := h.catalogUC.UpdateProduct(c.Request().Context(), callerIdentity(c), productID, usecase.UpdateProductInput{
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		Price:       req.Price,
		MinStock:    req.MinStock,
		IsActive:    req.IsActive,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, toProductResponse(product))
}

// AdjustStock handles a manual stock adjustment by the owning vendor or an admin
func (h *ProductHandler) AdjustStock(c echo.Context) error {
	productID, ok := parseIDParam(c, "id")
	if !ok {
		return invalidID(c, "product ID")
	}

	var req AdjustStockRequest
	if ok, err := bindRequest(c, &req); !ok {
		return err
	}

	product, err := h.catalogUC.AdjustStock(c.Request().Context(), callerIdentity(c), productID, usecase.AdjustStockInput{
		Action:   entity.StockAction(req.Action),
		Quantity: req.Quantity,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, toProductResponse(product))
}

// DeactivateProduct handles an admin taking a product off sale
func (h *ProductHandler) DeactivateProduct(c echo.Context) error {
	productID, ok := parseIDParam(c, "id")
	if !ok {
		return invalidID(c, "product ID")
	}

	var req DeactivateProductRequest
	if ok, err := bindRequest(c, &req); !ok {
		return err
	}

	product, err := h.catalogUC.DeactivateProduct(c.Request().Context(), callerIdentity(c), productID, req.Reason)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, toProductResponse(product))
}
