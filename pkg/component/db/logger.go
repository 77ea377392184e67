package db

import (
	"context"
	"errors"
	"time"

	"github.com/kart-io/logger"
	gormlogger "gorm.io/gorm/logger"
)

// GormLogger routes gorm's statement log into the process logger.
// Not-found lookups are expected (login with an unknown email) and are
// never reported as errors.
type GormLogger struct {
	LogLevel      gormlogger.LogLevel
	SlowThreshold time.Duration
}

// NewGormLogger creates a GormLogger.
func NewGormLogger(level gormlogger.LogLevel, slowThreshold time.Duration) *GormLogger {
	return &GormLogger{LogLevel: level, SlowThreshold: slowThreshold}
}

// LogMode returns a copy at the given level.
func (l *GormLogger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	cp := *l
	cp.LogLevel = level
	return &cp
}

func (l *GormLogger) Info(ctx context.Context, msg string, data ...interface{}) {
	if l.enabled(gormlogger.Info) {
		logger.Global().WithCtx(ctx).Infof(msg, data...)
	}
}

func (l *GormLogger) Warn(ctx context.Context, msg string, data ...interface{}) {
	if l.enabled(gormlogger.Warn) {
		logger.Global().WithCtx(ctx).Warnf(msg, data...)
	}
}

func (l *GormLogger) Error(ctx context.Context, msg string, data ...interface{}) {
	if l.enabled(gormlogger.Error) {
		logger.Global().WithCtx(ctx).Errorf(msg, data...)
	}
}

// Trace reports failed statements at error, slow ones at warn and the rest at debug.
func (l *GormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if !l.enabled(gormlogger.Error) {
		return
	}

	elapsed := time.Since(begin)
	failed := err != nil && !errors.Is(err, gormlogger.ErrRecordNotFound)
	slow := l.SlowThreshold > 0 && elapsed > l.SlowThreshold

	var emit func(msg string, kv ...interface{})
	log := logger.Global().WithCtx(ctx)
	switch {
	case failed:
		emit = log.Errorw
	case slow && l.enabled(gormlogger.Warn):
		emit = log.Warnw
	case l.enabled(gormlogger.Info):
		emit = log.Debugw
	default:
		return
	}

	sql, rows := fc()
	kv := []interface{}{"sql", sql, "rows", rows, "elapsed", elapsed.String()}
	switch {
	case failed:
		emit("SQL statement failed", append(kv, "error", err.Error())...)
	case slow:
		emit("Slow SQL statement", kv...)
	default:
		emit("SQL statement", kv...)
	}
}

func (l *GormLogger) enabled(level gormlogger.LogLevel) bool {
	return l.LogLevel >= level
}

var _ gormlogger.Interface = (*GormLogger)(nil)
