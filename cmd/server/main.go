package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"github.com/subwatch/subwatch/internal/api"
	"github.com/subwatch/subwatch/internal/api/cron"
	v1 "github.com/subwatch/subwatch/internal/api/v1"
	"github.com/subwatch/subwatch/internal/config"
	"github.com/subwatch/subwatch/internal/email"
	"github.com/subwatch/subwatch/internal/logger"
	"github.com/subwatch/subwatch/internal/repository/mysql"
	"github.com/subwatch/subwatch/internal/scheduler"
	"github.com/subwatch/subwatch/internal/service"
	"github.com/subwatch/subwatch/internal/webhook"
)

func init() {
	// gin mode is set properly by the router once config is loaded
	gin.SetMode(gin.ReleaseMode)
}

func main() {
	app := fx.New(
		fx.Provide(
			config.NewConfig,
			logger.NewLogger,
			mysql.NewClient,
			mysql.NewSubscriptionRepository,
			mysql.NewReminderRepository,
			mysql.NewUserRepository,
			email.NewClient,
			email.NewEmail,
			webhook.NewPoster,
			webhook.NewDedupStore,
			webhook.NewChatNotifier,
			service.NewServiceParams,
			service.NewReminderService,
			service.NewSubscriptionService,
			service.NewUserService,
			service.NewScanService,
			v1.NewSubscriptionHandler,
			v1.NewReminderHandler,
			v1.NewUserHandler,
			cron.NewScanCronHandler,
			newHandlers,
			api.NewRouter,
			scheduler.NewScheduler,
		),
		fx.Invoke(
			initSentry,
			startServer,
			startScheduler,
		),
		fx.NopLogger,
	)

	app.Run()
}

func newHandlers(
	subscriptionHandler *v1.SubscriptionHandler,
	reminderHandler *v1.ReminderHandler,
	userHandler *v1.UserHandler,
	scanCronHandler *cron.ScanCronHandler,
) api.Handlers {
	return api.Handlers{
		Subscription: subscriptionHandler,
		Reminder:     reminderHandler,
		User:         userHandler,
		ScanCron:     scanCronHandler,
	}
}

func initSentry(lc fx.Lifecycle, cfg *config.Configuration, log *logger.Logger) error {
	if !cfg.Sentry.Enabled || cfg.Sentry.DSN == "" {
		return nil
	}

	err := sentry.Init(sentry.ClientOptions{
		Dsn:              cfg.Sentry.DSN,
		Environment:      cfg.Sentry.Environment,
		SampleRate:       cfg.Sentry.SampleRate,
		EnableTracing:    true,
		TracesSampleRate: cfg.Sentry.SampleRate,
	})
	if err != nil {
		log.Errorw("failed to initialize sentry", "error", err)
		return err
	}

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			sentry.Flush(2 * time.Second)
			return nil
		},
	})
	return nil
}

func startServer(
	lc fx.Lifecycle,
	cfg *config.Configuration,
	router *gin.Engine,
	log *logger.Logger,
) {
	server := &http.Server{
		Addr:    cfg.Server.Address,
		Handler: router,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				log.Infow("starting server", "address", cfg.Server.Address)
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatalf("server failed: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Infow("shutting down server")
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			if err := server.Shutdown(shutdownCtx); err != nil {
				return fmt.Errorf("server shutdown: %w", err)
			}
			return nil
		},
	})
}

func startScheduler(lc fx.Lifecycle, sched *scheduler.Scheduler) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return sched.Start()
		},
		OnStop: func(ctx context.Context) error {
			sched.Stop()
			return nil
		},
	})
}
