package monitor

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	redislib "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
)

type countFunc func(ctx context.Context) (int, error)

func (f countFunc) Count(ctx context.Context) (int, error) { return f(ctx) }

func TestMonitor_RefreshMemoryStore(t *testing.T) {
	m := New(countFunc(func(context.Context) (int, error) { return 3, nil }), nil, "memory", time.Minute, nil)

	status := m.Refresh()
	assert.True(t, status.TaskStore)
	assert.Equal(t, 3, status.Tasks)
	assert.False(t, status.Redis)
	assert.True(t, status.Healthy())
	assert.Equal(t, status, m.GetStatus())
}

func TestMonitor_RefreshRedis(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redislib.NewClient(&redislib.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	m := New(countFunc(func(context.Context) (int, error) { return 0, nil }), client, "redis", time.Minute, nil)
	assert.True(t, m.Refresh().Healthy())

	mr.Close()
	status := m.Refresh()
	assert.False(t, status.Redis)
	assert.False(t, status.Healthy())
}

func TestMonitor_TaskStoreFailure(t *testing.T) {
	m := New(countFunc(func(context.Context) (int, error) { return 0, errors.New("locked") }), nil, "memory", time.Minute, nil)
	assert.False(t, m.Refresh().Healthy())
}

func TestMonitor_StartStop(t *testing.T) {
	m := New(countFunc(func(context.Context) (int, error) { return 1, nil }), nil, "memory", 10*time.Millisecond, nil)
	m.Start()
	assert.Eventually(t, func() bool { return m.GetStatus().TaskStore }, time.Second, 5*time.Millisecond)
	m.Stop()
	m.Stop()
}
