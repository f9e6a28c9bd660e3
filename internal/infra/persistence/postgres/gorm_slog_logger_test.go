package postgres

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
	"time"

	"marketplace/config"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newBufferedGormLogger(cfg *config.Config) (logger.Interface, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	base := slog.New(slog.NewJSONHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	return newGormSlogLogger(base, cfg), buf
}

func sqlFn(sql string) func() (string, int64) {
	return func() (string, int64) { return sql, 1 }
}

func TestGormSlogLogger_Trace(t *testing.T) {
	tests := []struct {
		name    string
		elapsed time.Duration
		err     error
		sql     string
		want    []string
		notWant []string
	}{
		{
			name: "query error",
			err:  errors.New("connection reset"),
			sql:  "SELECT * FROM products",
			want: []string{`"level":"ERROR"`, "GORM query failed", `"op":"SELECT"`, "connection reset"},
		},
		{
			name:    "duplicate order number",
			err:     gorm.ErrDuplicatedKey,
			sql:     "INSERT INTO orders",
			want:    []string{`"level":"DEBUG"`, "GORM unique violation", `"op":"INSERT"`},
			notWant: []string{`"level":"ERROR"`},
		},
		{
			name: "stock check constraint",
			err:  gorm.ErrCheckConstraintViolated,
			sql:  "UPDATE products SET stock = -1",
			want: []string{`"level":"WARN"`, "GORM constraint violation", `"constraint":"check"`},
		},
		{
			name:    "record not found",
			err:     gorm.ErrRecordNotFound,
			sql:     "SELECT * FROM vendors",
			want:    []string{`"level":"DEBUG"`, "GORM record not found"},
			notWant: []string{`"level":"ERROR"`},
		},
		{
			name:    "slow query",
			elapsed: time.Second,
			sql:     "  update products set stock = stock - 1",
			want:    []string{`"level":"WARN"`, "GORM slow query", `"op":"UPDATE"`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, buf := newBufferedGormLogger(&config.Config{})
			l.Trace(context.Background(), time.Now().Add(-tt.elapsed), sqlFn(tt.sql), tt.err)

			for _, want := range tt.want {
				assert.Contains(t, buf.String(), want)
			}
			for _, notWant := range tt.notWant {
				assert.NotContains(t, buf.String(), notWant)
			}
		})
	}
}

func TestGormSlogLogger_FastQueriesOnlyInDebug(t *testing.T) {
	l, buf := newBufferedGormLogger(&config.Config{})
	l.Trace(context.Background(), time.Now(), sqlFn("SELECT 1"), nil)
	assert.Empty(t, buf.String())

	cfg := &config.Config{}
	cfg.Env.Debug = true
	l, buf = newBufferedGormLogger(cfg)
	l.Trace(context.Background(), time.Now(), sqlFn("SELECT 1"), nil)
	assert.Contains(t, buf.String(), "GORM query")
}

func TestGormSlogLogger_SlowThresholdFromConfig(t *testing.T) {
	cfg := &config.Config{}
	cfg.Env.Log.SlowQuery = 2 * time.Second

	l, buf := newBufferedGormLogger(cfg)
	l.Trace(context.Background(), time.Now().Add(-time.Second), sqlFn("SELECT 1"), nil)
	assert.Empty(t, buf.String())

	l.Trace(context.Background(), time.Now().Add(-3*time.Second), sqlFn("SELECT 1"), nil)
	assert.Contains(t, buf.String(), "GORM slow query")
}

func TestGormSlogLogger_Silent(t *testing.T) {
	l, buf := newBufferedGormLogger(nil)
	l = l.LogMode(logger.Silent)

	l.Trace(context.Background(), time.Now(), sqlFn("SELECT 1"), errors.New("boom"))
	l.Error(context.Background(), "failed %s", "x")
	assert.Empty(t, buf.String())
}
