package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/shiftline/shiftline-backend/api/routes"
	"github.com/shiftline/shiftline-backend/internal/auth"
	"github.com/shiftline/shiftline-backend/internal/memberships"
	"github.com/shiftline/shiftline-backend/internal/notifications"
	"github.com/shiftline/shiftline-backend/internal/shifts"
	"github.com/shiftline/shiftline-backend/internal/swaps"
	"github.com/shiftline/shiftline-backend/internal/users"
	"github.com/shiftline/shiftline-backend/pkg/auth/session"
	"github.com/shiftline/shiftline-backend/pkg/config"
	"github.com/shiftline/shiftline-backend/pkg/db"
	"github.com/shiftline/shiftline-backend/pkg/logger"
	"github.com/shiftline/shiftline-backend/pkg/migrate"
	"github.com/shiftline/shiftline-backend/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	sessionManager, err := session.NewManager(redisClient, cfg.JWT)
	if err != nil {
		logg.Error(context.Background(), "failed to create session manager", err)
		os.Exit(1)
	}

	gormDB := dbClient.DB()
	usersRepo := users.NewRepository(gormDB)
	membershipsRepo := memberships.NewRepository(gormDB)
	shiftsRepo := shifts.NewRepository(gormDB)
	notificationsRepo := notifications.NewRepository(gormDB)

	authService, err := auth.NewService(auth.ServiceParams{
		UserRepo:        usersRepo,
		MembershipsRepo: membershipsRepo,
		SessionManager:  sessionManager,
		JWTConfig:       cfg.JWT,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create auth service", err)
		os.Exit(1)
	}

	dispatcher, err := notifications.NewDispatcher(notificationsRepo, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create notification dispatcher", err)
		os.Exit(1)
	}

	notificationsService, err := notifications.NewService(notificationsRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create notifications service", err)
		os.Exit(1)
	}

	swapsService, err := swaps.NewService(swaps.ServiceParams{
		Repo:           swaps.NewRepository(gormDB),
		Shifts:         shiftsRepo,
		Gate:           membershipsRepo,
		Users:          usersRepo,
		Notifier:       dispatcher,
		Tx:             dbClient,
		Logger:         logg,
		ResponseWindow: cfg.Swaps.ResponseWindow,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create swaps service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(routes.Deps{
			Config:        cfg,
			Logger:        logg,
			DB:            dbClient,
			Redis:         redisClient,
			Sessions:      sessionManager,
			Memberships:   membershipsRepo,
			Auth:          authService,
			Swaps:         swapsService,
			Shifts:        shiftsRepo,
			Notifications: notificationsService,
		}),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
