package monitor

import (
	"context"
	"sync"
	"time"

	redislib "github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// TaskCounter is the slice of the task repository the monitor needs.
type TaskCounter interface {
	Count(ctx context.Context) (int, error)
}

type Monitor struct {
	tasks        TaskCounter
	redis        *redislib.Client
	sessionStore string

	status   Status
	mu       sync.RWMutex
	interval time.Duration
	stopCh   chan struct{}
	stopOnce sync.Once
	logger   *zap.Logger
}

// New builds a monitor. redis may be nil when sessions live in memory.
func New(tasks TaskCounter, redis *redislib.Client, sessionStore string, interval time.Duration, logger *zap.Logger) *Monitor {
	if interval <= 0 {
		interval = 10 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Monitor{
		tasks:        tasks,
		redis:        redis,
		sessionStore: sessionStore,
		interval:     interval,
		stopCh:       make(chan struct{}),
		logger:       logger,
	}
}

func (m *Monitor) Start() {
	go m.loop()
}

func (m *Monitor) Stop() {
	m.stopOnce.Do(func() { close(m.stopCh) })
}

func (m *Monitor) GetStatus() Status {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.status
}

func (m *Monitor) loop() {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	m.Refresh()
	for {
		select {
		case <-ticker.C:
			m.Refresh()
		case <-m.stopCh:
			return
		}
	}
}

// Refresh runs every check once and stores the result.
func (m *Monitor) Refresh() Status {
	count, tasksOK := m.checkTasks()
	status := Status{
		SessionStore: m.sessionStore,
		Redis:        m.checkRedis(),
		Tasks:        count,
		TaskStore:    tasksOK,
		LastCheck:    time.Now(),
	}

	m.mu.Lock()
	m.status = status
	m.mu.Unlock()
	return status
}

func (m *Monitor) checkTasks() (int, bool) {
	if m.tasks == nil {
		return 0, false
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	count, err := m.tasks.Count(ctx)
	if err != nil {
		m.logger.Warn("task store check failed", zap.Error(err))
		return 0, false
	}
	return count, true
}

func (m *Monitor) checkRedis() bool {
	if m.redis == nil {
		return false
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	return m.redis.Ping(ctx).Err() == nil
}
