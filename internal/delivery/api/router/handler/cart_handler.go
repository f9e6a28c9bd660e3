package handler

import (
	"log/slog"
	"net/http"

	"marketplace/internal/delivery/api/response"
	"marketplace/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// CartHandlerParams holds dependencies for CartHandler, injected by Fx.
type CartHandlerParams struct {
	fx.In

	CartUC usecase.CartUsecase
	Logger *slog.Logger
}

// CartHandler holds dependencies for cart-related handlers
type CartHandler struct {
	cartUC usecase.CartUsecase
	logger *slog.Logger
}

// NewCartHandler is the constructor for CartHandler
func NewCartHandler(params CartHandlerParams) *CartHandler {
	return &CartHandler{
		cartUC: params.CartUC,
		logger: params.Logger,
	}
}

// AddCartItemRequest represents the request body for adding to the cart.
// A missing quantity adds one unit.
type AddCartItemRequest struct {
	ProductID string `json:"product_id" validate:"required,uuid"`
	Quantity  *int   `json:"quantity"`
}

// UpdateCartItemRequest represents the request body for changing a line's quantity
type UpdateCartItemRequest struct {
	Quantity int `json:"quantity"`
}

// AddItem handles adding a product to the caller's cart
func (h *CartHandler) AddItem(c echo.Context) error {
	var req AddCartItemRequest
	if ok, err := bindRequest(c, &req); !ok {
		return err
	}

	quantity := 1
	if req.Quantity != nil {
		quantity = *req.Quantity
	}

	line, err := h.cartUC.AddItem(c.Request().Context(), callerIdentity(c), usecase.AddCartItemInput{
		ProductID: uuid.MustParse(req.ProductID),
		Quantity:  quantity,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, toCartLineResponse(line))
}

// GetCart handles listing the caller's cart
func (h *CartHandler) GetCart(c echo.Context) error {
	view, err := h.cartUC.ListCart(c.Request().Context(), callerIdentity(c))
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, toCartResponse(view))
}

// UpdateItem handles overwriting the quantity of a cart line
func (h *CartHandler) UpdateItem(c echo.Context) error {
	productID, ok := parseIDParam(c, "productId")
	if !ok {
		return invalidID(c, "product ID")
	}

	var req UpdateCartItemRequest
	if ok, err := bindRequest(c, &req); !ok {
		return err
	}

	line, err := h.cartUC.UpdateItemQuantity(c.Request().Context(), callerIdentity(c), productID, req.Quantity)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, toCartLineResponse(line))
}

// RemoveItem handles deleting a product from the caller's cart
func (h *CartHandler) RemoveItem(c echo.Context) error {
	productID, ok := parseIDParam(c, "productId")
	if !ok {
		return invalidID(c, "product ID")
	}

	if err := h.cartUC.RemoveItem(c.Request().Context(), callerIdentity(c), productID); err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"message": "Item removed from cart"})
}
