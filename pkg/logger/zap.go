package logger

import (
	"context"
	"fmt"

	"github.com/Gunvolt24/storefront/pkg/ctxmeta"
	"go.uber.org/zap"
)

// ZapLogger — ports.Logger поверх zap.SugaredLogger.
// Метаданные из контекста (request_id, session_id, trace_id, span_id) добавляются полями.
type ZapLogger struct {
	base   *zap.Logger
	sugar  *zap.SugaredLogger
	isProd bool
}

// Option — настройка zap.Config перед сборкой логгера.
type Option func(*zap.Config)

// WithFile — писать в файл вместо stderr. Пустой путь ничего не меняет.
func WithFile(path string) Option {
	return func(c *zap.Config) {
		if path == "" {
			return
		}
		c.OutputPaths = []string{path}
		c.ErrorOutputPaths = []string{path}
	}
}

func NewZapLogger(isProd bool, opts ...Option) (*ZapLogger, func() error, error) {
	cfg := zap.NewDevelopmentConfig()
	if isProd {
		cfg = zap.NewProductionConfig()
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	base, err := cfg.Build()
	if err != nil {
		return nil, nil, fmt.Errorf("build zap logger: %w", err)
	}

	l := &ZapLogger{base: base, sugar: base.Sugar(), isProd: isProd}
	cleanup := func() error { return l.base.Sync() }
	return l, cleanup, nil
}

// FromZap — обёртка над готовым *zap.Logger (тесты, zaptest/observer).
func FromZap(base *zap.Logger) *ZapLogger {
	return &ZapLogger{base: base, sugar: base.Sugar()}
}

func (z *ZapLogger) Infof(ctx context.Context, format string, args ...any) {
	z.with(ctx).Infof(format, args...)
}

func (z *ZapLogger) Warnf(ctx context.Context, format string, args ...any) {
	z.with(ctx).Warnf(format, args...)
}

func (z *ZapLogger) Errorf(ctx context.Context, format string, args ...any) {
	z.with(ctx).Errorf(format, args...)
}

func (z *ZapLogger) Base() *zap.Logger           { return z.base }
func (z *ZapLogger) Sugared() *zap.SugaredLogger { return z.sugar }

func (z *ZapLogger) with(ctx context.Context) *zap.SugaredLogger {
	if ctx == nil {
		return z.sugar
	}
	var kv []any
	if v, ok := ctxmeta.RequestIDFromContext(ctx); ok {
		kv = append(kv, "request_id", v)
	}
	if v, ok := ctxmeta.SessionIDFromContext(ctx); ok {
		kv = append(kv, "session_id", v)
	}
	if traceID, spanID, ok := ctxmeta.TraceFromContext(ctx); ok {
		kv = append(kv, "trace_id", traceID, "span_id", spanID)
	}
	if len(kv) == 0 {
		return z.sugar
	}
	return z.sugar.With(kv...)
}
