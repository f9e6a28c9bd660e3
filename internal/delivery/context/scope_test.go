package context

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"marketplace/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func TestRequestScope(t *testing.T) {
	ctx := context.Background()
	fallback := slog.New(slog.DiscardHandler)

	assert.Empty(t, GetRequestIDFromContext(ctx))
	assert.Same(t, fallback, GetLoggerOrDefault(ctx, fallback))

	scoped := slog.New(slog.DiscardHandler).With(slog.String("request_id", "req-1"))
	ctx = WithRequestScope(ctx, "req-1", scoped)

	assert.Equal(t, "req-1", GetRequestIDFromContext(ctx))
	assert.Same(t, scoped, GetLoggerOrDefault(ctx, fallback))
}

func TestEchoValues(t *testing.T) {
	c := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())

	generated := GetRequestID(c)
	assert.NoError(t, uuid.Validate(generated))

	SetRequestID(c, "req-2")
	assert.Equal(t, "req-2", GetRequestID(c))

	_, ok := GetIdentity(c)
	assert.False(t, ok)

	identity := entity.NewIdentity(uuid.New(), entity.RoleCustomer)
	SetIdentity(c, identity)

	got, ok := GetIdentity(c)
	assert.True(t, ok)
	assert.Equal(t, identity.UserID, got.UserID)

	fromCtx, ok := GetIdentityFromContext(c.Request().Context())
	assert.True(t, ok)
	assert.Equal(t, identity.UserID, fromCtx.UserID)
}
