package logging

import (
	"context"

	"go.uber.org/zap"
)

type Logger struct {
	*zap.Logger
}

func New(level, format string) (*Logger, error) {
	var cfg zap.Config
	if format == "console" {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
	}
	if level != "" {
		if err := cfg.Level.UnmarshalText([]byte(level)); err != nil {
			return nil, err
		}
	}
	lg, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	return &Logger{lg}, nil
}

type ctxKey struct{}

// WithContext returns the base logger enriched with the trace_id carried in
// ctx, if any.
func (l *Logger) WithContext(ctx context.Context) *zap.Logger {
	if ctx == nil {
		return l.Logger
	}
	if v := ctx.Value("trace_id"); v != nil {
		if s, ok := v.(string); ok && s != "" {
			return l.Logger.With(zap.String("trace_id", s))
		}
	}
	return l.Logger
}

// IntoContext stores the enriched logger for retrieval via FromContext.
func IntoContext(ctx context.Context, lg *zap.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, lg)
}

// FromContext returns the request-scoped logger, or nil when none was set.
func FromContext(ctx context.Context) *zap.Logger {
	if v := ctx.Value(ctxKey{}); v != nil {
		if lg, ok := v.(*zap.Logger); ok {
			return lg
		}
	}
	return nil
}
