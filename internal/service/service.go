package service

import (
	"github.com/subwatch/subwatch/internal/config"
	"github.com/subwatch/subwatch/internal/domain/reminder"
	"github.com/subwatch/subwatch/internal/domain/subscription"
	"github.com/subwatch/subwatch/internal/domain/user"
	"github.com/subwatch/subwatch/internal/email"
	"github.com/subwatch/subwatch/internal/logger"
)

// ServiceParams bundles the dependencies shared by all services so
// constructors stay uniform.
type ServiceParams struct {
	Logger *logger.Logger
	Config *config.Configuration

	SubRepo      subscription.Repository
	ReminderRepo reminder.Repository
	UserRepo     user.Repository

	EmailService *email.Email
}

// NewServiceParams assembles the shared service dependencies.
func NewServiceParams(
	log *logger.Logger,
	cfg *config.Configuration,
	subRepo subscription.Repository,
	reminderRepo reminder.Repository,
	userRepo user.Repository,
	emailService *email.Email,
) ServiceParams {
	return ServiceParams{
		Logger:       log,
		Config:       cfg,
		SubRepo:      subRepo,
		ReminderRepo: reminderRepo,
		UserRepo:     userRepo,
		EmailService: emailService,
	}
}
