package lifecycle

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"go.uber.org/zap"
)

// ShutdownFunc stops one component. It must return once ctx is done.
type ShutdownFunc func(ctx context.Context) error

type component struct {
	name string
	stop ShutdownFunc
}

// Manager stops the server, sweeper, monitor and redis client in the reverse
// of the order they were started in.
type Manager struct {
	timeout time.Duration
	logger  *zap.Logger

	mu         sync.Mutex
	components []component
	stopped    bool
}

func New(timeout time.Duration, logger *zap.Logger) *Manager {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{timeout: timeout, logger: logger.Named("lifecycle")}
}

// Register records a component to stop on shutdown. Nil funcs are ignored.
func (m *Manager) Register(name string, stop ShutdownFunc) {
	if stop == nil {
		return
	}
	m.mu.Lock()
	m.components = append(m.components, component{name: name, stop: stop})
	m.mu.Unlock()
}

// Shutdown stops every registered component once, sharing a single deadline.
// Failures are joined and tagged with the component name; later calls return nil.
func (m *Manager) Shutdown(ctx context.Context) error {
	m.mu.Lock()
	if m.stopped {
		m.mu.Unlock()
		return nil
	}
	m.stopped = true
	pending := append([]component(nil), m.components...)
	m.mu.Unlock()

	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	var errs []error
	for i := len(pending) - 1; i >= 0; i-- {
		c := pending[i]
		started := time.Now()
		if err := c.stop(ctx); err != nil {
			m.logger.Error("component stop failed", zap.String("component", c.name), zap.Error(err))
			errs = append(errs, fmt.Errorf("%s: %w", c.name, err))
			continue
		}
		m.logger.Info("component stopped",
			zap.String("component", c.name),
			zap.Duration("took", time.Since(started)))
	}
	return errors.Join(errs...)
}

// Listen calls cancel on the first SIGINT or SIGTERM.
func (m *Manager) Listen(cancel context.CancelFunc) {
	if cancel == nil {
		return
	}
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		defer signal.Stop(signals)
		sig := <-signals
		m.logger.Info("shutdown requested", zap.String("signal", sig.String()))
		cancel()
	}()
}

// Wait blocks until ctx ends, then runs Shutdown on a fresh context.
func (m *Manager) Wait(ctx context.Context) error {
	<-ctx.Done()
	return m.Shutdown(context.Background())
}
