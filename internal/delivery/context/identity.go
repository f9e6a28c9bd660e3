package context

import (
	"context"

	"marketplace/internal/domain/entity"

	"github.com/labstack/echo/v4"
)

var identityKey = scopeKey[entity.Identity]{name: "identity"}

// SetIdentity stores the verified caller in echo.Context and the request context.
func SetIdentity(c echo.Context, identity entity.Identity) {
	c.Set(identityKey.name, identity)
	c.SetRequest(c.Request().WithContext(WithIdentity(c.Request().Context(), identity)))
}

// GetIdentity returns the caller set by the auth middleware.
func GetIdentity(c echo.Context) (entity.Identity, bool) {
	return identityKey.fromEcho(c)
}

func WithIdentity(ctx context.Context, identity entity.Identity) context.Context {
	return identityKey.with(ctx, identity)
}

func GetIdentityFromContext(ctx context.Context) (entity.Identity, bool) {
	return identityKey.from(ctx)
}
