package testutil

import (
	"context"

	"github.com/subwatch/subwatch/internal/domain/subscription"
	ierr "github.com/subwatch/subwatch/internal/errors"
)

// InMemorySubscriptionStore implements subscription.Repository
type InMemorySubscriptionStore struct {
	*InMemoryStore[*subscription.Subscription]
}

func NewInMemorySubscriptionStore() *InMemorySubscriptionStore {
	return &InMemorySubscriptionStore{
		InMemoryStore: NewInMemoryStore[*subscription.Subscription](),
	}
}

func (s *InMemorySubscriptionStore) Create(ctx context.Context, sub *subscription.Subscription) error {
	if sub == nil {
		return ierr.NewError("subscription is nil").Mark(ierr.ErrValidation)
	}
	return s.InMemoryStore.Create(ctx, sub.ID, sub)
}

func (s *InMemorySubscriptionStore) Get(ctx context.Context, userID, id string) (*subscription.Subscription, error) {
	sub, err := s.InMemoryStore.Get(ctx, id)
	if err != nil || sub.UserID != userID {
		return nil, ierr.NewError("subscription not found").
			WithReportableDetails(map[string]interface{}{"subscription_id": id}).
			Mark(ierr.ErrNotFound)
	}
	return sub, nil
}

func (s *InMemorySubscriptionStore) List(ctx context.Context, userID string, filter *subscription.Filter) ([]*subscription.Subscription, error) {
	return s.InMemoryStore.List(ctx, func(sub *subscription.Subscription) bool {
		if sub.UserID != userID {
			return false
		}
		if filter != nil && filter.Category != "" && sub.Category != filter.Category {
			return false
		}
		return true
	}), nil
}

func (s *InMemorySubscriptionStore) Update(ctx context.Context, sub *subscription.Subscription) error {
	if sub == nil {
		return ierr.NewError("subscription is nil").Mark(ierr.ErrValidation)
	}
	return s.InMemoryStore.Update(ctx, sub.ID, sub)
}

func (s *InMemorySubscriptionStore) Delete(ctx context.Context, userID, id string) error {
	if _, err := s.Get(ctx, userID, id); err != nil {
		return err
	}
	return s.InMemoryStore.Delete(ctx, id)
}
