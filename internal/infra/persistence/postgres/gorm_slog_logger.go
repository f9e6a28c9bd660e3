package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"marketplace/config"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const defaultGormSlowThreshold = 200 * time.Millisecond

// gormSlogLogger routes GORM output into slog. Not-found lookups and unique
// violations are expected by the repositories (order number retries, cart
// upserts) and are logged at debug level instead of as failures.
type gormSlogLogger struct {
	logger        *slog.Logger
	level         logger.LogLevel
	slowThreshold time.Duration
}

func newGormSlogLogger(baseLogger *slog.Logger, cfg *config.Config) logger.Interface {
	level := logger.Warn
	slowThreshold := defaultGormSlowThreshold
	if cfg != nil {
		if cfg.Env.Debug {
			level = logger.Info
		}
		if cfg.Env.Log.SlowQuery > 0 {
			slowThreshold = cfg.Env.Log.SlowQuery
		}
	}

	return &gormSlogLogger{
		logger:        baseLogger.With(slog.String("component", "gorm")),
		level:         level,
		slowThreshold: slowThreshold,
	}
}

func (l *gormSlogLogger) LogMode(level logger.LogLevel) logger.Interface {
	cloned := *l
	cloned.level = level

	return &cloned
}

func (l *gormSlogLogger) Info(ctx context.Context, msg string, args ...any) {
	l.printf(ctx, logger.Info, slog.LevelInfo, msg, args...)
}

func (l *gormSlogLogger) Warn(ctx context.Context, msg string, args ...any) {
	l.printf(ctx, logger.Warn, slog.LevelWarn, msg, args...)
}

func (l *gormSlogLogger) Error(ctx context.Context, msg string, args ...any) {
	l.printf(ctx, logger.Error, slog.LevelError, msg, args...)
}

func (l *gormSlogLogger) printf(ctx context.Context, min logger.LogLevel, level slog.Level, msg string, args ...any) {
	if l.level < min {
		return
	}

	l.logger.LogAttrs(ctx, level, fmt.Sprintf(msg, args...))
}

// queryOutcome is the classification of one traced statement.
type queryOutcome struct {
	level slog.Level
	msg   string
	attrs []slog.Attr
}

func (l *gormSlogLogger) Trace(ctx context.Context, begin time.Time, sqlAndRowsFn func() (string, int64), err error) {
	if l.level == logger.Silent {
		return
	}

	elapsed := time.Since(begin)
	outcome, ok := l.classify(elapsed, err)
	if !ok || !l.logger.Enabled(ctx, outcome.level) {
		return
	}

	sql, rows := sqlAndRowsFn()
	attrs := append([]slog.Attr{
		slog.String("op", statementVerb(sql)),
		slog.Duration("elapsed", elapsed),
		slog.Int64("rows", rows),
		slog.String("sql", sql),
	}, outcome.attrs...)

	l.logger.LogAttrs(ctx, outcome.level, outcome.msg, attrs...)
}

func (l *gormSlogLogger) classify(elapsed time.Duration, err error) (queryOutcome, bool) {
	switch {
	case err != nil && errors.Is(err, gorm.ErrRecordNotFound):
		return queryOutcome{level: slog.LevelDebug, msg: "GORM record not found"}, true

	case err != nil && isUniqueConstraintViolation(err):
		return queryOutcome{
			level: slog.LevelDebug,
			msg:   "GORM unique violation",
			attrs: []slog.Attr{slog.String("error", err.Error())},
		}, true

	case err != nil && classifyConstraint(err) != constraintNone:
		return queryOutcome{
			level: slog.LevelWarn,
			msg:   "GORM constraint violation",
			attrs: []slog.Attr{
				slog.String("constraint", string(classifyConstraint(err))),
				slog.String("error", err.Error()),
			},
		}, true

	case err != nil:
		if l.level < logger.Error {
			return queryOutcome{}, false
		}

		return queryOutcome{
			level: slog.LevelError,
			msg:   "GORM query failed",
			attrs: []slog.Attr{slog.String("error", err.Error())},
		}, true

	case l.slowThreshold > 0 && elapsed > l.slowThreshold:
		if l.level < logger.Warn {
			return queryOutcome{}, false
		}

		return queryOutcome{
			level: slog.LevelWarn,
			msg:   "GORM slow query",
			attrs: []slog.Attr{slog.Duration("slowThreshold", l.slowThreshold)},
		}, true

	case l.level >= logger.Info:
		return queryOutcome{level: slog.LevelDebug, msg: "GORM query"}, true

	default:
		return queryOutcome{}, false
	}
}

// statementVerb returns the upper-cased first keyword of a statement.
func statementVerb(sql string) string {
	verb, _, _ := strings.Cut(strings.TrimSpace(sql), " ")

	return strings.ToUpper(verb)
}
