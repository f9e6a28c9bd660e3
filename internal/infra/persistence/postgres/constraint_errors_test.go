package postgres

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestConstraintViolationHelpers(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		unique bool
		fk     bool
		check  bool
	}{
		{name: "gorm duplicated key", err: errors.Wrap(gorm.ErrDuplicatedKey, "insert"), unique: true},
		{name: "postgres duplicate message", err: errors.New(`ERROR: duplicate key value violates unique constraint "idx_orders_order_number" (SQLSTATE 23505)`), unique: true},
		{name: "sqlite unique message", err: errors.New("UNIQUE constraint failed: orders.order_number"), unique: true},
		{name: "gorm foreign key", err: gorm.ErrForeignKeyViolated, fk: true},
		{name: "postgres foreign key message", err: errors.New("violates foreign key constraint (SQLSTATE 23503)"), fk: true},
		{name: "gorm check", err: gorm.ErrCheckConstraintViolated, check: true},
		{name: "sqlite check message", err: errors.New("CHECK constraint failed: chk_products_stock"), check: true},
		{name: "unrelated", err: errors.New("connection reset by peer")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.unique, isUniqueConstraintViolation(tt.err))
			assert.Equal(t, tt.fk, isForeignKeyConstraintViolation(tt.err))
			assert.Equal(t, tt.check, isCheckConstraintViolation(tt.err))
		})
	}
}

func TestClassifyConstraint(t *testing.T) {
	assert.Equal(t, constraintNone, classifyConstraint(nil))
	assert.Equal(t, constraintUnique, classifyConstraint(errors.Wrap(gorm.ErrDuplicatedKey, "insert order")))
	assert.Equal(t, constraintCheck, classifyConstraint(errors.New("pq: new row violates check constraint (SQLSTATE 23514)")))
}
