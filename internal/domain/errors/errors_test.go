package errors

import (
	stderrors "errors"
	"net/http"
	"testing"

	pkgerrors "github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBaseError_IsMatchesByCode(t *testing.T) {
	detailed := ErrInsufficientStock.WithDetails("product p1: requested 3, available 1")

	assert.ErrorIs(t, detailed, ErrInsufficientStock)
	assert.NotErrorIs(t, detailed, ErrEmptyCart)

	wrapped := pkgerrors.Wrap(detailed, "place order")
	assert.ErrorIs(t, wrapped, ErrInsufficientStock)

	var appErr AppError
	require.True(t, stderrors.As(wrapped, &appErr))
	assert.Equal(t, http.StatusConflict, appErr.HTTPCode())
	assert.Equal(t, "INSUFFICIENT_STOCK", appErr.ErrorCode())
	assert.Equal(t, "product p1: requested 3, available 1", appErr.Details())
}

func TestBaseError_WrapMessage(t *testing.T) {
	err := ErrVendorNotFound.WrapMessage("approve vendor")

	assert.ErrorIs(t, err, ErrVendorNotFound)
	assert.Contains(t, err.Error(), "approve vendor")
}

func TestDatabaseExecuteError(t *testing.T) {
	cause := stderrors.New("connection reset")
	err := NewDatabaseExecuteError(cause, "failed to credit vendor")

	assert.Equal(t, http.StatusInternalServerError, err.HTTPCode())
	assert.Equal(t, "DATABASE_EXECUTE_FAILED", err.ErrorCode())
	assert.Equal(t, "failed to credit vendor", err.Details())
	assert.ErrorIs(t, err, cause)
}
