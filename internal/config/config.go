package config

import (
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	ierr "github.com/subwatch/subwatch/internal/errors"
	"github.com/subwatch/subwatch/internal/types"
)

// Configuration is the root configuration object for the service. Values are
// read from config.yaml and overridden by SUBWATCH_* environment variables.
type Configuration struct {
	Deployment DeploymentConfig `mapstructure:"deployment"`
	Server     ServerConfig     `mapstructure:"server"`
	Logging    LoggingConfig    `mapstructure:"logging"`
	Database   DatabaseConfig   `mapstructure:"database"`
	Email      EmailConfig      `mapstructure:"email"`
	Webhook    WebhookConfig    `mapstructure:"webhook"`
	Reminder   ReminderConfig   `mapstructure:"reminder"`
	Scheduler  SchedulerConfig  `mapstructure:"scheduler"`
	Sentry     SentryConfig     `mapstructure:"sentry"`
}

type DeploymentConfig struct {
	Mode string `mapstructure:"mode"`
}

type ServerConfig struct {
	Address string `mapstructure:"address"`
}

type LoggingConfig struct {
	Level          string `mapstructure:"level"`
	FluentdEnabled bool   `mapstructure:"fluentd_enabled"`
	FluentdHost    string `mapstructure:"fluentd_host"`
	FluentdPort    int    `mapstructure:"fluentd_port"`
}

type DatabaseConfig struct {
	DSN             string        `mapstructure:"dsn"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	ConnectTimeout  time.Duration `mapstructure:"connect_timeout"`
}

type EmailConfig struct {
	// APIKey is the Resend API key. An empty key means the email channel is
	// not configured, which is a valid state rather than an error.
	APIKey      string `mapstructure:"api_key"`
	FromAddress string `mapstructure:"from_address"`
}

type WebhookConfig struct {
	// ChatURL is the chat (Discord-style) webhook endpoint. Empty means the
	// chat channel is disabled.
	ChatURL        string        `mapstructure:"chat_url"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
	RetryMax       int           `mapstructure:"retry_max"`
}

type ReminderConfig struct {
	// DefaultThreshold is the server-side window in days before renewal
	// during which an in-app/email reminder is due, used when a user has no
	// preference of their own.
	DefaultThreshold int `mapstructure:"default_threshold"`
	// PointThresholds is the fixed day-count set used by the chat channel.
	PointThresholds []int `mapstructure:"point_thresholds"`
	// Timezone is the IANA zone in which "today" is reckoned for client
	// facing evaluation. The scheduled batch path uses UTC.
	Timezone string `mapstructure:"timezone"`
	// ScanBudget is the wall-clock budget for a batch scan run. A run that
	// exceeds it stops enumerating and returns partial statistics.
	ScanBudget time.Duration `mapstructure:"scan_budget"`
}

type SchedulerConfig struct {
	Enabled bool `mapstructure:"enabled"`
	// Cron is the schedule for the daily reminder scan.
	Cron string `mapstructure:"cron"`
}

type SentryConfig struct {
	Enabled     bool    `mapstructure:"enabled"`
	DSN         string  `mapstructure:"dsn"`
	Environment string  `mapstructure:"environment"`
	SampleRate  float64 `mapstructure:"sample_rate"`
}

// NewConfig loads configuration from config.yaml, .env and the environment.
func NewConfig() (*Configuration, error) {
	// Load .env if present, ignore when missing
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	v.SetEnvPrefix("SUBWATCH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, ierr.WithError(err).
				WithHint("Failed to read configuration file").
				Mark(ierr.ErrSystem)
		}
	}

	var cfg Configuration
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to unmarshal configuration").
			Mark(ierr.ErrSystem)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("deployment.mode", "api")
	v.SetDefault("server.address", ":8080")
	v.SetDefault("logging.level", "info")
	v.SetDefault("database.max_open_conns", 10)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.conn_max_lifetime", time.Hour)
	v.SetDefault("database.connect_timeout", 30*time.Second)
	v.SetDefault("webhook.request_timeout", 10*time.Second)
	v.SetDefault("webhook.retry_max", 3)
	v.SetDefault("reminder.default_threshold", 3)
	v.SetDefault("reminder.point_thresholds", []int{7, 3, 1, 0})
	v.SetDefault("reminder.timezone", "Asia/Kolkata")
	v.SetDefault("reminder.scan_budget", 5*time.Minute)
	v.SetDefault("scheduler.enabled", true)
	v.SetDefault("scheduler.cron", "0 8 * * *")
	v.SetDefault("sentry.sample_rate", 1.0)
}

// Validate checks invariants that would otherwise surface as confusing
// runtime failures.
func (c *Configuration) Validate() error {
	if c.Reminder.DefaultThreshold < 0 {
		return ierr.NewError("reminder default threshold must be non-negative").
			Mark(ierr.ErrValidation)
	}
	if c.Reminder.ScanBudget <= 0 {
		return ierr.NewError("reminder scan budget must be positive").
			Mark(ierr.ErrValidation)
	}
	if err := types.ValidateTimezone(c.Reminder.Timezone); err != nil {
		return ierr.WithError(err).
			WithHint("Reminder timezone must be a valid IANA zone").
			WithReportableDetails(map[string]interface{}{
				"timezone": c.Reminder.Timezone,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}

// ReminderLocation resolves the configured reminder timezone. Validation at
// load time guarantees this cannot fail.
func (c *Configuration) ReminderLocation() *time.Location {
	loc, err := time.LoadLocation(types.ResolveTimezone(c.Reminder.Timezone))
	if err != nil {
		return time.UTC
	}
	return loc
}

// GetDefaultConfig returns a usable configuration for scripts and tests.
func GetDefaultConfig() *Configuration {
	return &Configuration{
		Deployment: DeploymentConfig{Mode: "test"},
		Server:     ServerConfig{Address: ":8080"},
		Logging:    LoggingConfig{Level: "debug"},
		Reminder: ReminderConfig{
			DefaultThreshold: 3,
			PointThresholds:  []int{7, 3, 1, 0},
			Timezone:         "Asia/Kolkata",
			ScanBudget:       5 * time.Minute,
		},
		Webhook: WebhookConfig{
			RequestTimeout: 10 * time.Second,
			RetryMax:       3,
		},
		Scheduler: SchedulerConfig{Enabled: false, Cron: "0 8 * * *"},
	}
}
