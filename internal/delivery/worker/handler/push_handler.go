package handler

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"marketplace/config"
	deliverycontext "marketplace/internal/delivery/context"
	"marketplace/internal/domain/constants"
	"marketplace/internal/domain/entity"
	"marketplace/internal/domain/repository"
	"marketplace/internal/domain/service"
	"marketplace/internal/errors"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
	"google.golang.org/api/idtoken"
)

// PubSubMessage represents the structure of a Pub/Sub push message
type PubSubMessage struct {
	Message struct {
		Data        string            `json:"data"`
		Attributes  map[string]string `json:"attributes,omitempty"`
		MessageID   string            `json:"messageId"`
		PublishTime string            `json:"publishTime"`
	} `json:"message"`
	Subscription string `json:"subscription"`
}

// StockAlertLevel classifies a stock alert.
type StockAlertLevel string

const (
	StockAlertLow        StockAlertLevel = "low_stock"
	StockAlertOutOfStock StockAlertLevel = "out_of_stock"
)

// StockAlert is raised for a product whose stock reached its threshold after a sale.
type StockAlert struct {
	ProductID uuid.UUID
	VendorID  uuid.UUID
	Name      string
	Stock     int
	MinStock  int
	Level     StockAlertLevel
}

// PushHandler consumes marketplace events pushed by Pub/Sub
type PushHandler struct {
	verifyPushAuth bool
	logger         *slog.Logger
	productRepo    repository.ProductRepository
}

// PushHandlerParams holds dependencies for the PushHandler
type PushHandlerParams struct {
	fx.In

	Config      *config.Config
	Logger      *slog.Logger
	ProductRepo repository.ProductRepository
}

// NewPushHandler creates a new Pub/Sub push handler
func NewPushHandler(params PushHandlerParams) *PushHandler {
	// Google signs push requests; local and kafka bridges do not
	verifyPushAuth := params.Config.PubSub != nil &&
		params.Config.PubSub.Provider == constants.PubSubProviderGoogle &&
		params.Config.Env.Env != constants.EnvDevelop

	return &PushHandler{
		verifyPushAuth: verifyPushAuth,
		logger:         params.Logger,
		productRepo:    params.ProductRepo,
	}
}

// HandlePush handles incoming Pub/Sub push messages.
// Undecodable messages are acknowledged so they are not redelivered forever.
func (h *PushHandler) HandlePush(c echo.Context) error {
	ctx := c.Request().Context()

	if h.verifyPushAuth {
		if err := verifyPubSubToken(c.Request()); err != nil {
			h.logger.Warn("[Worker] Invalid Pub/Sub token", slog.Any("error", err))

			return c.NoContent(http.StatusUnauthorized)
		}
	}

	var pushMsg PubSubMessage
	if err := c.Bind(&pushMsg); err != nil {
		h.logger.Error("[Worker] Failed to parse push message", slog.Any("error", err))

		return c.NoContent(http.StatusOK)
	}

	data, err := base64.StdEncoding.DecodeString(pushMsg.Message.Data)
	if err != nil {
		h.logger.Error("[Worker] Failed to decode message data",
			slog.String("message_id", pushMsg.Message.MessageID),
			slog.Any("error", err),
		)

		return c.NoContent(http.StatusOK)
	}

	var event service.MarketplaceEvent
	if err := json.Unmarshal(data, &event); err != nil {
		h.logger.Error("[Worker] Failed to parse marketplace event",
			slog.String("message_id", pushMsg.Message.MessageID),
			slog.Any("error", err),
		)

		return c.NoContent(http.StatusOK)
	}

	// Priority: message attributes > event field > existing context
	requestID := h.extractRequestID(ctx, &pushMsg, &event)
	reqLogger := h.logger.With(slog.String("request_id", requestID))
	ctx = deliverycontext.WithRequestScope(ctx, requestID, reqLogger)

	reqLogger.Info("[Worker] Processing marketplace event",
		slog.String("type", string(event.Type)),
		slog.String("aggregate_id", event.AggregateID),
	)

	if err := h.processEvent(ctx, &event); err != nil {
		reqLogger.Error("[Worker] Failed to process event",
			slog.String("type", string(event.Type)),
			slog.String("aggregate_id", event.AggregateID),
			slog.Any("error", err),
			slog.Bool("retryable", errors.IsRetryable(err)),
		)
		// 503 makes Pub/Sub redeliver; anything else is dropped after logging
		if errors.IsRetryable(err) {
			return c.NoContent(http.StatusServiceUnavailable)
		}

		return c.NoContent(http.StatusOK)
	}

	return c.NoContent(http.StatusOK)
}

// extractRequestID extracts request_id from message attributes, event, or generates a new one
func (h *PushHandler) extractRequestID(ctx context.Context, pushMsg *PubSubMessage, event *service.MarketplaceEvent) string {
	if requestID, ok := pushMsg.Message.Attributes["request_id"]; ok && requestID != "" {
		return requestID
	}

	if event.RequestID != "" {
		return event.RequestID
	}

	if requestID := deliverycontext.GetRequestIDFromContext(ctx); requestID != "" {
		return requestID
	}

	return uuid.New().String()
}

func (h *PushHandler) processEvent(ctx context.Context, event *service.MarketplaceEvent) error {
	logger := deliverycontext.GetLoggerOrDefault(ctx, h.logger)

	switch event.Type {
	case service.EventOrderPlaced:
		_, err := h.processOrderPlaced(ctx, event)

		return err

	case service.EventOrderStatusChanged, service.EventVendorStatusChanged:
		var payload service.StatusChangedPayload
		if err := json.Unmarshal(event.Payload, &payload); err != nil {
			return errors.Wrap(err, "invalid status change payload")
		}
		logger.Info("[Worker] Status changed",
			slog.String("type", string(event.Type)),
			slog.String("aggregate_id", event.AggregateID),
			slog.String("from", payload.From),
			slog.String("to", payload.To),
			slog.String("actor_id", payload.ActorID),
		)

		return nil

	case service.EventWithdrawalRequested:
		var payload service.WithdrawalRequestedPayload
		if err := json.Unmarshal(event.Payload, &payload); err != nil {
			return errors.Wrap(err, "invalid withdrawal payload")
		}
		logger.Info("[Worker] Withdrawal requested",
			slog.String("withdrawal_id", payload.RequestID),
			slog.String("vendor_id", payload.VendorID),
			slog.String("amount", payload.Amount),
		)

		return nil

	default:
		logger.Warn("[Worker] Ignoring unknown event type", slog.String("type", string(event.Type)))

		return nil
	}
}

// processOrderPlaced re-reads the sold products and raises an alert for every
// one at or below its low-stock threshold.
func (h *PushHandler) processOrderPlaced(ctx context.Context, event *service.MarketplaceEvent) ([]StockAlert, error) {
	logger := deliverycontext.GetLoggerOrDefault(ctx, h.logger)

	var payload service.OrderPlacedPayload
	if err := json.Unmarshal(event.Payload, &payload); err != nil {
		return nil, errors.Wrap(err, "invalid order placed payload")
	}

	productIDs := make([]uuid.UUID, 0, len(payload.ProductIDs))
	for _, raw := range payload.ProductIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			logger.Warn("[Worker] Skipping malformed product id", slog.String("product_id", raw))

			continue
		}
		productIDs = append(productIDs, id)
	}
	if len(productIDs) == 0 {
		return nil, nil
	}

	products, err := h.productRepo.FindByIDs(ctx, productIDs)
	if err != nil {
		return nil, errors.Retryable(errors.Wrap(err, "failed to load sold products"))
	}

	alerts := stockAlerts(products)
	for _, alert := range alerts {
		logger.Warn("[Worker] Stock alert",
			slog.String("order_number", payload.OrderNumber),
			slog.String("level", string(alert.Level)),
			slog.String("product_id", alert.ProductID.String()),
			slog.String("vendor_id", alert.VendorID.String()),
			slog.String("product_name", alert.Name),
			slog.Int("stock", alert.Stock),
			slog.Int("min_stock", alert.MinStock),
		)
	}

	logger.Info("[Worker] Order placed processed",
		slog.String("order_number", payload.OrderNumber),
		slog.Int("products", len(products)),
		slog.Int("alerts", len(alerts)),
	)

	return alerts, nil
}

func stockAlerts(products []*entity.Product) []StockAlert {
	var alerts []StockAlert
	for _, product := range products {
		var level StockAlertLevel
		switch {
		case product.IsOutOfStock():
			level = StockAlertOutOfStock
		case product.IsLowStock():
			level = StockAlertLow
		default:
			continue
		}

		alerts = append(alerts, StockAlert{
			ProductID: product.ID,
			VendorID:  product.VendorID,
			Name:      product.Name,
			Stock:     product.Stock,
			MinStock:  product.MinStock,
			Level:     level,
		})
	}

	return alerts
}

// verifyPubSubToken verifies the JWT token from Google Pub/Sub push requests
// Reference: https://cloud.google.com/pubsub/docs/push#authenticating_standard_push_requests
func verifyPubSubToken(req *http.Request) error {
	authHeader := req.Header.Get("Authorization")
	if authHeader == "" {
		return errors.New("missing authorization header")
	}

	const bearerPrefix = "Bearer "
	if !strings.HasPrefix(authHeader, bearerPrefix) {
		return errors.New("invalid authorization header format")
	}
	token := strings.TrimPrefix(authHeader, bearerPrefix)

	// The audience is the URL of this endpoint
	scheme := "https"
	if req.TLS == nil {
		scheme = "http"
	}
	audience := fmt.Sprintf("%s://%s%s", scheme, req.Host, req.URL.Path)

	payload, err := idtoken.Validate(req.Context(), token, audience)
	if err != nil {
		return errors.Wrap(err, "failed to validate token")
	}

	if payload.Issuer != "accounts.google.com" && payload.Issuer != "https://accounts.google.com" {
		return errors.Errorf("invalid issuer: %s", payload.Issuer)
	}

	if emailVerified, ok := payload.Claims["email_verified"].(bool); ok && !emailVerified {
		return errors.New("email not verified")
	}

	return nil
}
