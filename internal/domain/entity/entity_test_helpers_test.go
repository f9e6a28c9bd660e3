package entity

import (
	"testing"

	"github.com/shopspring/decimal"
)

func assertDecimal(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()

	if !decimal.RequireFromString(want).Equal(got) {
		t.Fatalf("decimal mismatch: want %s, got %s", want, got.String())
	}
}
