package logger

import (
	"context"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type requestIDKey struct{}

// Config holds the LOG_* settings. Output defaults to stdout.
type Config struct {
	Level    string
	Encoding string
	Output   io.Writer
}

// New builds the service logger. Unknown levels fall back to info and any
// encoding other than "console" means JSON.
func New(cfg Config) (*zap.Logger, error) {
	out := cfg.Output
	if out == nil {
		out = os.Stdout
	}

	core := zapcore.NewCore(
		newEncoder(cfg.Encoding),
		zapcore.Lock(zapcore.AddSync(out)),
		parseLevel(cfg.Level),
	)
	return zap.New(core, zap.AddCaller()), nil
}

func newEncoder(encoding string) zapcore.Encoder {
	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "timestamp"
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	if strings.EqualFold(encoding, "console") {
		return zapcore.NewConsoleEncoder(encoderCfg)
	}
	return zapcore.NewJSONEncoder(encoderCfg)
}

func parseLevel(raw string) zapcore.Level {
	level := zapcore.InfoLevel
	if err := level.Set(strings.TrimSpace(raw)); err != nil {
		return zapcore.InfoLevel
	}
	return level
}

// ContextWithRequestID stores the request id used to tag log lines.
func ContextWithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, requestID)
}

// RequestID returns the request id stored in ctx, or "".
func RequestID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// WithRequestID tags base with the request id from ctx when there is one.
func WithRequestID(ctx context.Context, base *zap.Logger) *zap.Logger {
	if base == nil {
		return nil
	}
	if id := RequestID(ctx); id != "" {
		return base.With(zap.String("request_id", id))
	}
	return base
}
