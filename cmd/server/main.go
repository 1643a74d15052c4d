package main

import (
	"context"
	"log"
	"time"

	redislib "github.com/redis/go-redis/v9"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	apiHandler "github.com/fastygo/taskbuddy/api/handler"
	"github.com/fastygo/taskbuddy/domain"
	"github.com/fastygo/taskbuddy/internal/config"
	"github.com/fastygo/taskbuddy/internal/identity"
	"github.com/fastygo/taskbuddy/internal/infrastructure/monitor"
	redisInfra "github.com/fastygo/taskbuddy/internal/infrastructure/redis"
	"github.com/fastygo/taskbuddy/internal/middleware"
	"github.com/fastygo/taskbuddy/internal/notify"
	"github.com/fastygo/taskbuddy/internal/router"
	"github.com/fastygo/taskbuddy/internal/services"
	"github.com/fastygo/taskbuddy/internal/services/lifecycle"
	"github.com/fastygo/taskbuddy/pkg/httpcontext"
	"github.com/fastygo/taskbuddy/pkg/logger"
	"github.com/fastygo/taskbuddy/repository"
	"github.com/fastygo/taskbuddy/repository/memory"
	redisRepo "github.com/fastygo/taskbuddy/repository/redis"
	authUC "github.com/fastygo/taskbuddy/usecase/auth"
	taskUC "github.com/fastygo/taskbuddy/usecase/task"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	zapLogger, err := logger.New(logger.Config{
		Level:    cfg.Logger.Level,
		Encoding: cfg.Logger.Encoding,
	})
	if err != nil {
		log.Fatalf("logger error: %v", err)
	}
	defer zapLogger.Sync()

	appCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	manager := lifecycle.New(cfg.Context.ShutdownTimeout, zapLogger)
	manager.Listen(cancel)

	var seed []domain.Task
	if cfg.Tasks.Seed {
		seed = memory.Seed(time.Now())
	}
	taskRepo := memory.NewTaskRepository(seed)

	var (
		sessionRepo repository.SessionRepository
		redisClient *redislib.Client
	)
	switch cfg.Session.Store {
	case config.SessionStoreRedis:
		redisClient, err = redisInfra.NewClient(appCtx, cfg.Redis)
		if err != nil {
			zapLogger.Fatal("redis connection failed", zap.Error(err))
		}
		manager.Register("redis", func(ctx context.Context) error {
			return redisClient.Close()
		})
		sessionRepo = redisRepo.NewSessionRepository(redisClient, cfg.Session.TTL)
	default:
		memSessions := memory.NewSessionRepository(cfg.Session.TTL)
		sweeper, err := services.NewSessionSweeper(memSessions, zapLogger, services.SweeperConfig{
			Interval: cfg.Session.SweepInterval,
		})
		if err != nil {
			zapLogger.Fatal("session sweeper setup failed", zap.Error(err))
		}
		sweeper.Start()
		manager.Register("session_sweeper", func(ctx context.Context) error {
			sweeper.Stop(ctx)
			return nil
		})
		sessionRepo = memSessions
	}

	mon := monitor.New(taskRepo, redisClient, cfg.Session.Store, cfg.Context.MonitorInterval, zapLogger)
	mon.Start()
	manager.Register("monitor", func(ctx context.Context) error {
		mon.Stop()
		return nil
	})

	notifier := notify.NewFanout(notify.NewLogger(zapLogger))
	if cfg.Identity.Secret == "" {
		zapLogger.Warn("IDENTITY_SECRET is empty, every sign-in will be rejected")
	}
	provider := identity.NewJWTProvider(identity.Config{
		Secret:            cfg.Identity.Secret,
		Issuer:            cfg.Identity.Issuer,
		AuthorizedDomains: cfg.Identity.AuthorizedDomains,
	})

	authUseCase := authUC.New(provider, sessionRepo, notifier, zapLogger, cfg.Session.TTL)
	taskUseCase := taskUC.New(taskRepo, notifier, zapLogger)

	ctxAdapter := httpcontext.NewAdapter(cfg.Context.RequestTimeout)

	handlers := router.Handlers{
		Auth:   apiHandler.NewAuthHandler(authUseCase, ctxAdapter, zapLogger),
		Task:   apiHandler.NewTaskHandler(taskUseCase, ctxAdapter, zapLogger),
		Health: apiHandler.NewHealthHandler(mon, ctxAdapter, zapLogger),
	}

	sessionMiddleware := middleware.SessionAuth(authUseCase, cfg.Context.RequestTimeout, zapLogger)
	r := router.New(handlers, sessionMiddleware)

	server := &fasthttp.Server{
		Handler:      r.Handler,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
		Name:         cfg.AppName,
	}

	go func() {
		zapLogger.Info("server started",
			zap.String("address", cfg.Address()),
			zap.String("session_store", cfg.Session.Store),
			zap.Int("seeded_tasks", len(seed)))
		if err := server.ListenAndServe(cfg.Address()); err != nil {
			zapLogger.Fatal("server crashed", zap.Error(err))
		}
	}()

	manager.Register("http_server", func(ctx context.Context) error {
		return server.ShutdownWithContext(ctx)
	})

	if err := manager.Wait(appCtx); err != nil {
		zapLogger.Error("graceful shutdown error", zap.Error(err))
	}
}
