package services

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/fastygo/taskbuddy/repository"
)

// SweeperConfig controls how often expired sessions are purged. Schedule, when
// set, is a cron spec (seconds field included) that replaces Interval.
type SweeperConfig struct {
	Interval time.Duration
	Schedule string
}

// SessionSweeper periodically removes expired sessions from stores that do
// not expire keys on their own.
type SessionSweeper struct {
	store  repository.SessionSweeper
	logger *zap.Logger
	cron   *cron.Cron
	cfg    SweeperConfig
	now    func() time.Time
}

func NewSessionSweeper(store repository.SessionSweeper, logger *zap.Logger, cfg SweeperConfig) (*SessionSweeper, error) {
	if cfg.Interval < time.Second {
		cfg.Interval = time.Minute
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &SessionSweeper{
		store:  store,
		logger: logger,
		cfg:    cfg,
		cron:   cron.New(cron.WithSeconds()),
		now:    time.Now,
	}

	schedule := cfg.Schedule
	if schedule == "" {
		schedule = fmt.Sprintf("@every %ds", int(cfg.Interval.Seconds()))
	}
	if _, err := s.cron.AddFunc(schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), cfg.Interval)
		defer cancel()
		if _, err := s.Sweep(ctx); err != nil {
			s.logger.Error("session sweep failed", zap.Error(err))
		}
	}); err != nil {
		return nil, fmt.Errorf("schedule session sweep %q: %w", schedule, err)
	}

	return s, nil
}

// Start launches the cron scheduler.
func (s *SessionSweeper) Start() {
	if s == nil || s.cron == nil {
		return
	}
	s.cron.Start()
	s.logger.Info("session sweeper started", zap.Duration("interval", s.cfg.Interval))
}

// Stop waits for a running sweep to finish or for ctx to expire.
func (s *SessionSweeper) Stop(ctx context.Context) {
	if s == nil || s.cron == nil {
		return
	}
	stopCtx := s.cron.Stop()
	select {
	case <-stopCtx.Done():
	case <-ctx.Done():
	}
	s.logger.Info("session sweeper stopped")
}

// Sweep purges expired sessions synchronously.
func (s *SessionSweeper) Sweep(ctx context.Context) (int, error) {
	if s == nil || s.store == nil {
		return 0, nil
	}
	removed, err := s.store.Sweep(ctx, s.now())
	if err != nil {
		return removed, err
	}
	if removed > 0 {
		s.logger.Debug("expired sessions removed", zap.Int("count", removed))
	}
	return removed, nil
}
