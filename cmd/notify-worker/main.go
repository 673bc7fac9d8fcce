package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/obitflow/obitflow-backend/internal/dispatch"
	"github.com/obitflow/obitflow-backend/internal/notifications"
	"github.com/obitflow/obitflow-backend/internal/profiles"
	"github.com/obitflow/obitflow-backend/internal/staff"
	"github.com/obitflow/obitflow-backend/pkg/config"
	"github.com/obitflow/obitflow-backend/pkg/db"
	"github.com/obitflow/obitflow-backend/pkg/logger"
	"github.com/obitflow/obitflow-backend/pkg/metrics"
	"github.com/obitflow/obitflow-backend/pkg/migrate"
	"github.com/obitflow/obitflow-backend/pkg/pubsub"
	"github.com/obitflow/obitflow-backend/pkg/redis"
	"github.com/obitflow/obitflow-backend/pkg/twilio"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "notify-worker"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	cfg.Service.Kind = "notify-worker"

	logg = logger.New(logger.Options{
		ServiceName: "notify-worker",
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

	pubsubClient, err := pubsub.NewClient(context.Background(), cfg.GCP, cfg.PubSub, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap pubsub", err)
		os.Exit(1)
	}
	defer func() {
		if err := pubsubClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing pubsub client", err)
		}
	}()

	smsClient, err := twilio.NewClient(context.Background(), cfg.Twilio, cfg.Dispatch, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap sms client", err)
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

	dispatchMetrics := metrics.NewDispatchMetrics(prometheus.DefaultRegisterer)

	dispatchService, err := dispatch.NewService(smsClient, resolver, logg, dispatchMetrics, cfg.Dispatch)
	if err != nil {
		logg.Error(context.Background(), "failed to create dispatch service", err)
		os.Exit(1)
	}

	consumer, err := notifications.NewConsumer(
		notifications.NewRepository(dbClient.DB()),
		dispatchService,
		pubsubClient.CaseEventsSubscription(),
		redisClient,
		logg,
	)
	if err != nil {
		logg.Error(context.Background(), "failed to create case event consumer", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ctx = logg.WithFields(ctx, map[string]any{"env": cfg.App.Env})
	logg.Info(ctx, "starting notify worker")

	if err := consumer.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logg.Error(ctx, "case event consumer stopped unexpectedly", err)
		os.Exit(1)
	}

	logg.Info(ctx, "notify worker shut down")
}
