package main

import (
	"context"
	"net/http"
	"os"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/obitflow/obitflow-backend/api/routes"
	"github.com/obitflow/obitflow-backend/internal/cases"
	"github.com/obitflow/obitflow-backend/internal/dispatch"
	"github.com/obitflow/obitflow-backend/internal/notifications"
	"github.com/obitflow/obitflow-backend/internal/profiles"
	"github.com/obitflow/obitflow-backend/internal/signatures"
	"github.com/obitflow/obitflow-backend/internal/staff"
	"github.com/obitflow/obitflow-backend/internal/webhooks/dropboxsign"
	"github.com/obitflow/obitflow-backend/pkg/config"
	"github.com/obitflow/obitflow-backend/pkg/db"
	"github.com/obitflow/obitflow-backend/pkg/logger"
	"github.com/obitflow/obitflow-backend/pkg/metrics"
	"github.com/obitflow/obitflow-backend/pkg/migrate"
	"github.com/obitflow/obitflow-backend/pkg/redis"
	"github.com/obitflow/obitflow-backend/pkg/twilio"
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

	smsClient, err := twilio.NewClient(context.Background(), cfg.Twilio, cfg.Dispatch, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap sms client", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	dispatchMetrics := metrics.NewDispatchMetrics(registry)

	casesService, err := cases.NewService(cases.NewRepository(dbClient.DB()), logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create cases service", err)
		os.Exit(1)
	}

	staffService, err := staff.NewService(staff.NewRepository(dbClient.DB()))
	if err != nil {
		logg.Error(context.Background(), "failed to create staff service", err)
		os.Exit(1)
	}

	profilesService, err := profiles.NewService(profiles.NewRepository(dbClient.DB()))
	if err != nil {
		logg.Error(context.Background(), "failed to create profiles service", err)
		os.Exit(1)
	}

	notificationsService, err := notifications.NewService(notifications.NewRepository(dbClient.DB()))
	if err != nil {
		logg.Error(context.Background(), "failed to create notifications service", err)
		os.Exit(1)
	}

	ownerPrefs := dispatch.ProfileStoreFunc(func(ctx context.Context, homeID uuid.UUID) (*dispatch.OwnerPreferences, error) {
		prefs, err := profilesService.OwnerPreferences(ctx, homeID)
		if err != nil {
			return nil, err
		}
		if prefs == nil {
			return nil, nil
		}
		return &dispatch.OwnerPreferences{SMSEnabled: prefs.SMSEnabled, PhoneNumber: prefs.PhoneNumber}, nil
	})

	resolver, err := dispatch.NewRecipientResolver(staffService, ownerPrefs)
	if err != nil {
		logg.Error(context.Background(), "failed to create recipient resolver", err)
		os.Exit(1)
	}

	dispatchService, err := dispatch.NewService(smsClient, resolver, logg, dispatchMetrics, cfg.Dispatch)
	if err != nil {
		logg.Error(context.Background(), "failed to create dispatch service", err)
		os.Exit(1)
	}

	signaturesService, err := signatures.NewService(smsClient, logg, cfg.Dispatch)
	if err != nil {
		logg.Error(context.Background(), "failed to create signatures service", err)
		os.Exit(1)
	}

	signGuard, err := dropboxsign.NewIdempotencyGuard(redisClient, cfg.Webhooks.SignatureEventTTL, "dropboxsign")
	if err != nil {
		logg.Error(context.Background(), "failed to create signature event guard", err)
		os.Exit(1)
	}

	signWebhook, err := dropboxsign.NewService(dropboxsign.ServiceParams{
		Dispatcher: dispatchService,
		Guard:      signGuard,
		Logger:     logg,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create signature webhook relay", err)
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
		Handler: routes.NewRouter(routes.RouterParams{
			Config:        cfg,
			Logger:        logg,
			DB:            dbClient,
			Redis:         redisClient,
			Registry:      registry,
			Cases:         casesService,
			Staff:         staffService,
			Profiles:      profilesService,
			Notifications: notificationsService,
			Dispatch:      dispatchService,
			Signatures:    signaturesService,
			SignWebhook:   signWebhook,
		}),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
