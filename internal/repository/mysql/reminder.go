package mysql

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	domainReminder "github.com/subwatch/subwatch/internal/domain/reminder"
	ierr "github.com/subwatch/subwatch/internal/errors"
	"github.com/subwatch/subwatch/internal/logger"
)

type reminderRepository struct {
	client *Client
	log    *logger.Logger
}

// NewReminderRepository creates a new reminder repository
func NewReminderRepository(client *Client, log *logger.Logger) domainReminder.Repository {
	return &reminderRepository{client: client, log: log}
}

func (r *reminderRepository) Create(ctx context.Context, rem *domainReminder.Reminder) error {
	r.log.Debugw("creating reminder",
		"reminder_id", rem.ID,
		"subscription_id", rem.SubscriptionID,
		"send_at", rem.SendAt,
	)

	if err := r.client.DB(ctx).Create(rem).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ierr.WithError(err).
				WithHint("A reminder for this day already exists").
				Mark(ierr.ErrAlreadyExists)
		}
		return ierr.WithError(err).
			WithHint("Failed to create reminder").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *reminderRepository) Get(ctx context.Context, userID, id string) (*domainReminder.Reminder, error) {
	var rem domainReminder.Reminder
	err := r.client.DB(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&rem).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ierr.NewError("reminder not found").
				WithReportableDetails(map[string]interface{}{
					"reminder_id": id,
				}).
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to get reminder").
			Mark(ierr.ErrDatabase)
	}
	return &rem, nil
}

func (r *reminderRepository) GetBySendDay(ctx context.Context, userID, subscriptionID string, day time.Time) (*domainReminder.Reminder, error) {
	var rem domainReminder.Reminder
	err := r.client.DB(ctx).
		Where("user_id = ? AND subscription_id = ? AND dismissed = ?", userID, subscriptionID, false).
		Where("send_at >= ? AND send_at < ?", day, day.AddDate(0, 0, 1)).
		First(&rem).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ierr.NewError("no reminder for this day").
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to query reminder by send day").
			Mark(ierr.ErrDatabase)
	}
	return &rem, nil
}

func (r *reminderRepository) List(ctx context.Context, userID string, includeDismissed bool) ([]*domainReminder.Reminder, error) {
	query := r.client.DB(ctx).
		Where("user_id = ?", userID).
		Order("send_at DESC")
	if !includeDismissed {
		query = query.Where("dismissed = ?", false)
	}

	var reminders []*domainReminder.Reminder
	if err := query.Find(&reminders).Error; err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list reminders").
			Mark(ierr.ErrDatabase)
	}
	return reminders, nil
}

func (r *reminderRepository) CountUnread(ctx context.Context, userID string) (int64, error) {
	var count int64
	err := r.client.DB(ctx).
		Model(&domainReminder.Reminder{}).
		Where("user_id = ? AND `read` = ? AND dismissed = ?", userID, false, false).
		Count(&count).Error
	if err != nil {
		return 0, ierr.WithError(err).
			WithHint("Failed to count unread reminders").
			Mark(ierr.ErrDatabase)
	}
	return count, nil
}

func (r *reminderRepository) Update(ctx context.Context, rem *domainReminder.Reminder) error {
	result := r.client.DB(ctx).
		Where("id = ? AND user_id = ?", rem.ID, rem.UserID).
		Save(rem)
	if result.Error != nil {
		return ierr.WithError(result.Error).
			WithHint("Failed to update reminder").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *reminderRepository) MarkAllRead(ctx context.Context, userID string) error {
	err := r.client.DB(ctx).
		Model(&domainReminder.Reminder{}).
		Where("user_id = ? AND `read` = ? AND dismissed = ?", userID, false, false).
		Update("read", true).Error
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to mark reminders as read").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *reminderRepository) DeleteActiveBySubscription(ctx context.Context, userID, subscriptionID string) error {
	err := r.client.DB(ctx).
		Where("user_id = ? AND subscription_id = ? AND dismissed = ?", userID, subscriptionID, false).
		Delete(&domainReminder.Reminder{}).Error
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to purge active reminders for subscription").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *reminderRepository) DeleteBySubscription(ctx context.Context, userID, subscriptionID string) error {
	err := r.client.DB(ctx).
		Where("user_id = ? AND subscription_id = ?", userID, subscriptionID).
		Delete(&domainReminder.Reminder{}).Error
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to delete reminders for subscription").
			Mark(ierr.ErrDatabase)
	}
	return nil
}
