package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"marketplace/config"
	deliverycontext "marketplace/internal/delivery/context"
	"marketplace/internal/errors"

	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const fallbackSlowQueryThreshold = 200 * time.Millisecond

// gormSlogLogger routes GORM output to the request-scoped slog logger so statements
// carry the request_id of the call that issued them.
type gormSlogLogger struct {
	logger        *slog.Logger
	level         logger.LogLevel
	slowThreshold time.Duration
}

func newGormSlogLogger(baseLogger *slog.Logger, cfg *config.Config) logger.Interface {
	level := logger.Warn
	if cfg != nil && cfg.Env.Debug {
		level = logger.Info
	}

	threshold := fallbackSlowQueryThreshold
	if cfg != nil && cfg.Storage != nil && cfg.Storage.SlowQueryThreshold > 0 {
		threshold = cfg.Storage.SlowQueryThreshold
	}

	if baseLogger == nil {
		baseLogger = slog.Default()
	}

	return &gormSlogLogger{
		logger:        baseLogger,
		level:         level,
		slowThreshold: threshold,
	}
}

func (l *gormSlogLogger) LogMode(level logger.LogLevel) logger.Interface {
	cloned := *l
	cloned.level = level

	return &cloned
}

func (l *gormSlogLogger) Info(ctx context.Context, msg string, args ...any) {
	l.message(ctx, logger.Info, slog.LevelInfo, msg, args...)
}

func (l *gormSlogLogger) Warn(ctx context.Context, msg string, args ...any) {
	l.message(ctx, logger.Warn, slog.LevelWarn, msg, args...)
}

func (l *gormSlogLogger) Error(ctx context.Context, msg string, args ...any) {
	l.message(ctx, logger.Error, slog.LevelError, msg, args...)
}

func (l *gormSlogLogger) message(ctx context.Context, enabledFrom logger.LogLevel, level slog.Level, msg string, args ...any) {
	if l.level < enabledFrom {
		return
	}

	l.log(ctx).LogAttrs(ctx, level, "GORM "+level.String(), slog.String("message", fmt.Sprintf(msg, args...)))
}

// Trace logs failed statements, then slow ones, then (in debug) every statement.
// Missing rows and unique violations are expected outcomes of lookups and
// duplicate registrations; the repositories turn them into domain errors, so
// they are logged at debug level only.
func (l *gormSlogLogger) Trace(ctx context.Context, begin time.Time, sqlAndRowsFn func() (string, int64), err error) {
	if l.level == logger.Silent {
		return
	}

	elapsed := time.Since(begin)
	statement := func(extra ...slog.Attr) []slog.Attr {
		sql, rows := sqlAndRowsFn()

		return append([]slog.Attr{
			slog.Duration("elapsed", elapsed),
			slog.Int64("rows", rows),
			slog.String("sql", sql),
		}, extra...)
	}

	switch {
	case err != nil && isExpectedQueryError(err):
		l.log(ctx).LogAttrs(ctx, slog.LevelDebug, "SQL statement rejected", statement(slog.String("error", err.Error()))...)
	case err != nil && l.level >= logger.Error:
		l.log(ctx).LogAttrs(ctx, slog.LevelError, "SQL statement failed", statement(slog.String("error", err.Error()))...)
	case err == nil && l.slowThreshold > 0 && elapsed > l.slowThreshold && l.level >= logger.Warn:
		l.log(ctx).LogAttrs(ctx, slog.LevelWarn, "Slow SQL statement", statement(slog.Duration("slowThreshold", l.slowThreshold))...)
	case err == nil && l.level >= logger.Info:
		l.log(ctx).LogAttrs(ctx, slog.LevelInfo, "SQL statement", statement()...)
	}
}

func (l *gormSlogLogger) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, l.logger).With(slog.String("store", config.StorageDriverPostgres))
}

func isExpectedQueryError(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound) || isUniqueConstraintViolation(err)
}
