package notify

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/fastygo/taskbuddy/domain"
	"github.com/fastygo/taskbuddy/pkg/logger"
	"github.com/fastygo/taskbuddy/usecase"
)

type ctxKey struct{}

// Collector gathers the notifications raised while serving one request.
type Collector struct {
	mu    sync.Mutex
	items []domain.Notification
}

func (c *Collector) Notify(_ context.Context, n domain.Notification) {
	c.mu.Lock()
	c.items = append(c.items, n)
	c.mu.Unlock()
}

// Drain returns the collected notifications and resets the collector.
func (c *Collector) Drain() []domain.Notification {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := c.items
	c.items = nil
	return out
}

// WithCollector attaches a fresh collector to ctx.
func WithCollector(ctx context.Context) (context.Context, *Collector) {
	c := &Collector{}
	return context.WithValue(ctx, ctxKey{}, c), c
}

func FromContext(ctx context.Context) *Collector {
	if ctx == nil {
		return nil
	}
	c, _ := ctx.Value(ctxKey{}).(*Collector)
	return c
}

// Logger writes notifications to zap. Errors are user-facing, so they log at warn.
type Logger struct {
	base *zap.Logger
}

func NewLogger(base *zap.Logger) *Logger {
	if base == nil {
		base = zap.NewNop()
	}
	return &Logger{base: base.Named("notify")}
}

func (l *Logger) Notify(ctx context.Context, n domain.Notification) {
	log := logger.WithRequestID(ctx, l.base)
	fields := []zap.Field{
		zap.String("title", n.Title),
		zap.String("description", n.Description),
	}
	if n.Severity == domain.SeverityError {
		log.Warn("notification", fields...)
		return
	}
	log.Info("notification", fields...)
}

// Fanout forwards to the configured sinks and to the request collector, if any.
type Fanout struct {
	sinks []usecase.Notifier
}

func NewFanout(sinks ...usecase.Notifier) *Fanout {
	return &Fanout{sinks: sinks}
}

func (f *Fanout) Notify(ctx context.Context, n domain.Notification) {
	for _, sink := range f.sinks {
		if sink != nil {
			sink.Notify(ctx, n)
		}
	}
	if c := FromContext(ctx); c != nil {
		c.Notify(ctx, n)
	}
}

var (
	_ usecase.Notifier = (*Collector)(nil)
	_ usecase.Notifier = (*Logger)(nil)
	_ usecase.Notifier = (*Fanout)(nil)
)
