package logger

import (
	"context"
	"errors"
	"fmt"
	"time"

	gormlogger "gorm.io/gorm/logger"
)

// GormAdapter enruta los logs de gorm al Logger de la app.
type GormAdapter struct {
	log           Logger
	level         gormlogger.LogLevel
	slowThreshold time.Duration
}

func NewGormAdapter(l Logger) *GormAdapter {
	if l == nil {
		l = Nop()
	}
	return &GormAdapter{
		log:           l.With(map[string]any{"component": "gorm"}),
		level:         gormlogger.Warn,
		slowThreshold: 200 * time.Millisecond,
	}
}

func (a *GormAdapter) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	cp := *a
	cp.level = level
	return &cp
}

func (a *GormAdapter) Info(_ context.Context, msg string, args ...any) {
	if a.level >= gormlogger.Info {
		a.log.Info(fmt.Sprintf(msg, args...), nil)
	}
}

func (a *GormAdapter) Warn(_ context.Context, msg string, args ...any) {
	if a.level >= gormlogger.Warn {
		a.log.Warn(fmt.Sprintf(msg, args...), nil)
	}
}

func (a *GormAdapter) Error(_ context.Context, msg string, args ...any) {
	if a.level >= gormlogger.Error {
		a.log.Error(fmt.Sprintf(msg, args...), nil)
	}
}

func (a *GormAdapter) Trace(_ context.Context, begin time.Time, fc func() (string, int64), err error) {
	if a.level <= gormlogger.Silent {
		return
	}

	elapsed := time.Since(begin)
	switch {
	case err != nil && !errors.Is(err, gormlogger.ErrRecordNotFound) && a.level >= gormlogger.Error:
		sql, rows := fc()
		a.log.Error("query failed", map[string]any{"sql": sql, "rows": rows, "elapsed": elapsed.String(), "error": err})
	case elapsed > a.slowThreshold && a.level >= gormlogger.Warn:
		sql, rows := fc()
		a.log.Warn("slow query", map[string]any{"sql": sql, "rows": rows, "elapsed": elapsed.String()})
	case a.level >= gormlogger.Info:
		sql, rows := fc()
		a.log.Debug("query", map[string]any{"sql": sql, "rows": rows, "elapsed": elapsed.String()})
	}
}
