// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"
	"strings"

	deliverycontext "marketplace/internal/delivery/context"
	"marketplace/internal/domain/entity"
	domainerrors "marketplace/internal/domain/errors"
	"marketplace/internal/domain/repository"
	"marketplace/internal/domain/service"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

func requireAuthenticated(identity entity.Identity) error {
	if !identity.IsAuthenticated() {
		return domainerrors.ErrUnauthorized
	}

	return nil
}

func requireAdmin(identity entity.Identity) error {
	if err := requireAuthenticated(identity); err != nil {
		return err
	}
	if !identity.IsAdmin() {
		return domainerrors.ErrForbidden.WithDetails("admin role required")
	}

	return nil
}

// callerVendor resolves the vendor account owned by the caller.
func callerVendor(ctx context.Context, vendorRepo repository.VendorRepository, identity entity.Identity) (*entity.Vendor, error) {
	if err := requireAuthenticated(identity); err != nil {
		return nil, err
	}

	vendor, err := vendorRepo.FindByUserID(ctx, identity.UserID)
	if errors.Is(err, repository.ErrVendorNotFound) {
		return nil, domainerrors.ErrVendorNotFound.WithDetails("caller has no vendor account")
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to find caller vendor")
	}

	return vendor, nil
}

// callerApprovedVendor is callerVendor restricted to vendors allowed to sell.
func callerApprovedVendor(ctx context.Context, vendorRepo repository.VendorRepository, identity entity.Identity) (*entity.Vendor, error) {
	vendor, err := callerVendor(ctx, vendorRepo, identity)
	if err != nil {
		return nil, err
	}
	if !vendor.IsApproved() {
		return nil, domainerrors.ErrVendorNotApproved.WithDetails("vendor status is " + vendor.Status.String())
	}

	return vendor, nil
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}

func validationError(details string) error {
	return domainerrors.ErrValidationFailed.WithDetails(details)
}

// eventEmitter publishes events after commit. Publishing is best effort:
// failures are logged and never returned to the caller.
type eventEmitter struct {
	publisher service.EventPublisher
	logger    *slog.Logger
}

func (e eventEmitter) emit(ctx context.Context, eventType service.EventType, aggregateID uuid.UUID, payload any) {
	if e.publisher == nil {
		return
	}

	logger := deliverycontext.GetLoggerOrDefault(ctx, e.logger)

	event, err := service.NewMarketplaceEvent(eventType, aggregateID.String(), payload)
	if err != nil {
		logger.Error("Failed to encode event", slog.String("type", string(eventType)), slog.Any("error", err))

		return
	}
	event.RequestID = deliverycontext.GetRequestIDFromContext(ctx)

	if err := e.publisher.Publish(ctx, event); err != nil {
		logger.Warn("Failed to publish event",
			slog.String("type", string(eventType)),
			slog.String("aggregate_id", event.AggregateID),
			slog.Any("error", err),
		)
	}
}

func (e eventEmitter) emitStatusChange(ctx context.Context, eventType service.EventType, aggregateID uuid.UUID, from, to string, actor uuid.UUID, reason string) {
	e.emit(ctx, eventType, aggregateID, service.StatusChangedPayload{
		From:    from,
		To:      to,
		ActorID: actor.String(),
		Reason:  reason,
	})
}
