package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/subwatch/subwatch/internal/api/cron"
	v1 "github.com/subwatch/subwatch/internal/api/v1"
	"github.com/subwatch/subwatch/internal/config"
	"github.com/subwatch/subwatch/internal/logger"
	"github.com/subwatch/subwatch/internal/rest/middleware"
)

// Handlers groups every HTTP handler wired into the router.
type Handlers struct {
	Subscription *v1.SubscriptionHandler
	Reminder     *v1.ReminderHandler
	User         *v1.UserHandler
	ScanCron     *cron.ScanCronHandler
}

// NewRouter builds the gin engine with the standard middleware chain and all
// route groups.
func NewRouter(cfg *config.Configuration, log *logger.Logger, handlers Handlers) *gin.Engine {
	if cfg.Deployment.Mode != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}
	gin.DefaultWriter = log.GetGinLogger()

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.SentryMiddleware(cfg))
	router.Use(middleware.RequestIDMiddleware)
	router.Use(middleware.LoggingMiddleware(log))
	router.Use(middleware.ErrorHandlerMiddleware(log))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	apiV1 := router.Group("/v1")
	apiV1.Use(middleware.UserContextMiddleware)
	apiV1.Use(middleware.SentryUserContextMiddleware)
	{
		users := apiV1.Group("/users")
		{
			users.POST("", handlers.User.Create)
			users.GET("/me", handlers.User.Me)
			users.PUT("/me/preferences", handlers.User.UpdatePreferences)
		}

		subscriptions := apiV1.Group("/subscriptions")
		{
			subscriptions.POST("", handlers.Subscription.Create)
			subscriptions.GET("", handlers.Subscription.List)
			subscriptions.GET("/summary", handlers.Subscription.Summary)
			subscriptions.GET("/:id", handlers.Subscription.Get)
			subscriptions.PUT("/:id", handlers.Subscription.Update)
			subscriptions.DELETE("/:id", handlers.Subscription.Delete)
		}

		reminders := apiV1.Group("/reminders")
		{
			reminders.GET("", handlers.Reminder.List)
			reminders.GET("/unread-count", handlers.Reminder.UnreadCount)
			reminders.POST("/read-all", handlers.Reminder.MarkAllRead)
			reminders.POST("/:id/read", handlers.Reminder.MarkRead)
			reminders.POST("/:id/dismiss", handlers.Reminder.Dismiss)
		}
	}

	cronGroup := router.Group("/cron")
	{
		cronGroup.POST("/reminders/scan", handlers.ScanCron.ScanReminders)
	}

	return router
}
