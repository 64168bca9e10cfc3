package xzap

import (
	"context"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type ctxKey struct{}

var (
	once   sync.Once
	global *zap.Logger
)

// InitLogger 初始化全局zap，level取debug/info/warn/error
func InitLogger(level string) *zap.Logger {
	once.Do(func() {
		lv := zapcore.InfoLevel
		_ = lv.Set(level)

		cfg := zap.NewProductionConfig()
		cfg.Level = zap.NewAtomicLevelAt(lv)
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

		l, err := cfg.Build(zap.AddCallerSkip(1))
		if err != nil {
			panic(err)
		}
		global = l
	})
	return global
}

// WithContext 取出ctx里挂的logger，没有就用全局的
func WithContext(ctx context.Context) *zap.Logger {
	if ctx != nil {
		if l, ok := ctx.Value(ctxKey{}).(*zap.Logger); ok {
			return l
		}
	}
	if global == nil {
		return InitLogger("info")
	}
	return global
}

// NewContext 把带字段的logger挂到ctx上
func NewContext(ctx context.Context, fields ...zap.Field) context.Context {
	return context.WithValue(ctx, ctxKey{}, WithContext(ctx).With(fields...))
}
