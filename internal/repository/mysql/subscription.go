package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	domainSubscription "github.com/subwatch/subwatch/internal/domain/subscription"
	ierr "github.com/subwatch/subwatch/internal/errors"
	"github.com/subwatch/subwatch/internal/logger"
)

type subscriptionRepository struct {
	client *Client
	log    *logger.Logger
}

// NewSubscriptionRepository creates a new subscription repository
func NewSubscriptionRepository(client *Client, log *logger.Logger) domainSubscription.Repository {
	return &subscriptionRepository{client: client, log: log}
}

func (r *subscriptionRepository) Create(ctx context.Context, sub *domainSubscription.Subscription) error {
	r.log.Debugw("creating subscription", "subscription_id", sub.ID, "user_id", sub.UserID)

	if err := r.client.DB(ctx).Create(sub).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ierr.WithError(err).
				WithHint("A subscription with this id already exists").
				WithReportableDetails(map[string]interface{}{
					"subscription_id": sub.ID,
				}).
				Mark(ierr.ErrAlreadyExists)
		}
		return ierr.WithError(err).
			WithHint("Failed to create subscription").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *subscriptionRepository) Get(ctx context.Context, userID, id string) (*domainSubscription.Subscription, error) {
	var sub domainSubscription.Subscription
	err := r.client.DB(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&sub).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ierr.NewError("subscription not found").
				WithReportableDetails(map[string]interface{}{
					"subscription_id": id,
				}).
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to get subscription").
			Mark(ierr.ErrDatabase)
	}
	return &sub, nil
}

func (r *subscriptionRepository) List(ctx context.Context, userID string, filter *domainSubscription.Filter) ([]*domainSubscription.Subscription, error) {
	query := r.client.DB(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC")

	if filter != nil && filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}

	var subs []*domainSubscription.Subscription
	if err := query.Find(&subs).Error; err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list subscriptions").
			Mark(ierr.ErrDatabase)
	}
	return subs, nil
}

func (r *subscriptionRepository) Update(ctx context.Context, sub *domainSubscription.Subscription) error {
	result := r.client.DB(ctx).
		Where("id = ? AND user_id = ?", sub.ID, sub.UserID).
		Save(sub)
	if result.Error != nil {
		return ierr.WithError(result.Error).
			WithHint("Failed to update subscription").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *subscriptionRepository) Delete(ctx context.Context, userID, id string) error {
	result := r.client.DB(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&domainSubscription.Subscription{})
	if result.Error != nil {
		return ierr.WithError(result.Error).
			WithHint("Failed to delete subscription").
			Mark(ierr.ErrDatabase)
	}
	if result.RowsAffected == 0 {
		return ierr.NewError("subscription not found").
			WithReportableDetails(map[string]interface{}{
				"subscription_id": id,
			}).
			Mark(ierr.ErrNotFound)
	}
	return nil
}
