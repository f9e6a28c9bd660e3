package handler

import (
	"log/slog"
	"net/http"

	"marketplace/config"
	"marketplace/internal/delivery/api/response"
	"marketplace/internal/domain/entity"
	"marketplace/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"go.uber.org/fx"
)

// defaultPaymentMethod is recorded when checkout names none; capture happens off-platform.
const defaultPaymentMethod = "pending"

// OrderHandlerParams holds dependencies for OrderHandler, injected by Fx.
type OrderHandlerParams struct {
	fx.In

	OrderUC   usecase.OrderUsecase
	ReceiptUC usecase.ReceiptUsecase
	Config    *config.Config
	Logger    *slog.Logger
}

// OrderHandler holds dependencies for order-related handlers
type OrderHandler struct {
	orderUC     usecase.OrderUsecase
	receiptUC   usecase.ReceiptUsecase
	deliveryFee decimal.Decimal
	logger      *slog.Logger
}

// NewOrderHandler is the constructor for OrderHandler
func NewOrderHandler(params OrderHandlerParams) *OrderHandler {
	fee := decimal.Zero
	if params.Config.Order != nil {
		fee = decimal.NewFromFloat(params.Config.Order.DeliveryFee).Round(2)
	}

	return &OrderHandler{
		orderUC:     params.OrderUC,
		receiptUC:   params.ReceiptUC,
		deliveryFee: fee,
		logger:      params.Logger,
	}
}

// PlaceOrderRequest represents the request body for checkout
type PlaceOrderRequest struct {
	DeliveryAddress string `json:"delivery_address" validate:"required,max=500"`
	DeliveryPhone   string `json:"delivery_phone" validate:"required,max=20"`
	Notes           string `json:"notes" validate:"max=1000"`
	PaymentMethod   string `json:"payment_method" validate:"max=50"`
}

// UpdateOrderStatusRequest represents the request body for moving an order along its lifecycle
type UpdateOrderStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// PlaceOrder handles converting the caller's cart into an order
func (h *OrderHandler) PlaceOrder(c echo.Context) error {
	var req PlaceOrderRequest
	if ok, err := bindRequest(c, &req); !ok {
		return err
	}

	paymentMethod := req.PaymentMethod
	if paymentMethod == "" {
		paymentMethod = defaultPaymentMethod
	}

	out, err := h.orderUC.PlaceOrder(c.Request().Context(), callerIdentity(c), usecase.PlaceOrderInput{
		DeliveryAddress: req.DeliveryAddress,
		DeliveryPhone:   req.DeliveryPhone,
		DeliveryFee:     h.deliveryFee,
		Notes:           req.Notes,
		PaymentMethod:   paymentMethod,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, &PlaceOrderResponse{
		OrderID:     out.OrderID,
		OrderNumber: out.OrderNumber,
		TotalAmount: money(out.TotalAmount),
		Status:      out.Status,
	})
}

// ListMyOrders handles listing the caller's orders
func (h *OrderHandler) ListMyOrders(c echo.Context) error {
	page := pageFrom(c)
	orders, total, err := h.orderUC.ListCustomerOrders(c.Request().Context(), callerIdentity(c), listOptions(page))
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Paginated(c, toOrderResponses(orders), page.Meta(total))
}

// GetOrder handles retrieving one order with its items
func (h *OrderHandler) GetOrder(c echo.Context) error {
	orderID, ok := parseIDParam(c, "id")
	if !ok {
		return invalidID(c, "order ID")
	}

	order, err := h.orderUC.GetOrder(c.Request().Context(), callerIdentity(c), orderID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, toOrderResponse(order))
}

// GetReceipt handles downloading the QR receipt of an order
func (h *OrderHandler) GetReceipt(c echo.Context) error {
	orderID, ok := parseIDParam(c, "id")
	if !ok {
		return invalidID(c, "order ID")
	}

	receipt, err := h.receiptUC.GetReceipt(c.Request().Context(), callerIdentity(c), orderID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, `inline; filename="`+receipt.OrderNumber+`.png"`)

	return c.Blob(http.StatusOK, receipt.ContentType, receipt.Data)
}

// CancelOrder handles a customer cancelling a pending order
func (h *OrderHandler) CancelOrder(c echo.Context) error {
	orderID, ok := parseIDParam(c, "id")
	if !ok {
		return invalidID(c, "order ID")
	}

	order, err := h.orderUC.CancelOrder(c.Request().Context(), callerIdentity(c), orderID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, toOrderResponse(order))
}

// ListVendorOrders handles listing the items sold by the caller's vendor account
func (h *OrderHandler) ListVendorOrders(c echo.Context) error {
	status, ok := orderStatusQuery(c)
	if !ok {
		return response.BadRequest(c, "INVALID_STATUS", "Unknown order status")
	}

	page := pageFrom(c)
	items, total, err := h.orderUC.ListVendorOrderItems(c.Request().Context(), callerIdentity(c), status, listOptions(page))
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Paginated(c, toVendorOrderItemResponses(items), page.Meta(total))
}

// ListAllOrders handles an admin listing every order
func (h *OrderHandler) ListAllOrders(c echo.Context) error {
	status, ok := orderStatusQuery(c)
	if !ok {
		return response.BadRequest(c, "INVALID_STATUS", "Unknown order status")
	}
	vendorID, ok := optionalUUIDQuery(c, "vendor_id")
	if !ok {
		return invalidID(c, "vendor_id")
	}

	page := pageFrom(c)
	orders, total, err := h.orderUC.ListOrders(c.Request().Context(), callerIdentity(c), usecase.OrderListFilter{
		Status:      status,
		VendorID:    vendorID,
		ListOptions: listOptions(page),
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Paginated(c, toOrderResponses(orders), page.Meta(total))
}

// UpdateOrderStatus handles an admin moving an order along its lifecycle
func (h *OrderHandler) UpdateOrderStatus(c echo.Context) error {
	orderID, ok := parseIDParam(c, "id")
	if !ok {
		return invalidID(c, "order ID")
	}

	var req UpdateOrderStatusRequest
	if ok, err := bindRequest(c, &req); !ok {
		return err
	}

	order, err := h.orderUC.UpdateOrderStatus(c.Request().Context(), callerIdentity(c), orderID, entity.OrderStatus(req.Status))
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, toOrderResponse(order))
}
