package http

import (
	"context"
	"errors"
	"fmt"
	stdhttp "net/http"
	"os/signal"
	"syscall"
	"time"

	"trackmygoal/internal/config"
	"trackmygoal/internal/database"
	"trackmygoal/internal/handler"
	"trackmygoal/internal/logger"
	"trackmygoal/internal/queue"
	"trackmygoal/internal/redis"
	"trackmygoal/internal/repository"
	"trackmygoal/internal/service"
	"trackmygoal/internal/worker"
)

const (
	readHeaderTimeout = 10 * time.Second
	shutdownTimeout   = 15 * time.Second
)

// Run wires the application and serves until SIGINT or SIGTERM.
func Run() error {
	// 1. Load Configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger.Init(cfg.LogLevel, cfg.AppEnv)
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 2. Connect to Database
	db, err := database.Connect(cfg)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	if err := database.RunMigrations(db.DB); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	// 3. Repositories and services
	userRepo := repository.NewUserRepository(db)
	goalRepo := repository.NewGoalRepository(db)
	friendRepo := repository.NewFriendRepository(db)
	notifRepo := repository.NewNotificationRepository(db)
	txRunner := repository.NewTxRunner(db)

	notifService := service.NewNotificationService(notifRepo)

	// Without Redis, notifications are written inline.
	var notifier service.Notifier = notifService
	if cfg.RedisURL != "" {
		redisClient, err := redis.Connect(ctx, cfg.RedisURL)
		if err != nil {
			return fmt.Errorf("failed to connect to redis: %w", err)
		}
		defer redisClient.Close()

		manager := worker.NewManager(
			queue.NewConsumer(redisClient.Client),
			worker.NewHandler(notifService),
			worker.ManagerConfig{WorkerCount: cfg.NotificationWorkers},
		)
		if err := manager.Start(ctx); err != nil {
			return fmt.Errorf("failed to start notification workers: %w", err)
		}
		defer manager.Stop()

		notifier = queue.NewNotificationPublisher(queue.NewPublisher(redisClient.Client))
	}

	userService := service.NewUserService(userRepo, service.NewAvatarService(cfg.MaxAvatarBytes))
	authService := service.NewAuthService(cfg)
	friendService := service.NewFriendService(friendRepo, userRepo, txRunner, notifier)
	goalService := service.NewGoalService(goalRepo, txRunner)
	visibilityService := service.NewVisibilityService(userRepo, goalRepo, friendRepo)

	// 4. Setup Server
	router := NewRouter(RouterConfig{
		AuthHandler:         handler.NewAuthHandler(userService, authService),
		UserHandler:         handler.NewUserHandler(userService),
		FriendHandler:       handler.NewFriendHandler(friendService),
		GoalHandler:         handler.NewGoalHandler(goalService, visibilityService),
		NotificationHandler: handler.NewNotificationHandler(notifService),
		JWTSecret:           cfg.JWTSecret,
	})

	srv := &stdhttp.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           router,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("Starting server", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, stdhttp.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	logger.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	return nil
}
