package testutil

import (
	"context"
	"time"

	"github.com/subwatch/subwatch/internal/domain/reminder"
	ierr "github.com/subwatch/subwatch/internal/errors"
	"github.com/subwatch/subwatch/internal/types"
)

// InMemoryReminderStore implements reminder.Repository
type InMemoryReminderStore struct {
	*InMemoryStore[*reminder.Reminder]
}

func NewInMemoryReminderStore() *InMemoryReminderStore {
	return &InMemoryReminderStore{
		InMemoryStore: NewInMemoryStore[*reminder.Reminder](),
	}
}

func (s *InMemoryReminderStore) Create(ctx context.Context, rem *reminder.Reminder) error {
	if rem == nil {
		return ierr.NewError("reminder is nil").Mark(ierr.ErrValidation)
	}

	// same semantics as the unique index over (user, subscription, active
	// send day): dismissed records carry a nil day and never collide
	if rem.ActiveSendDay != nil {
		conflicts := s.InMemoryStore.List(ctx, func(existing *reminder.Reminder) bool {
			return existing.UserID == rem.UserID &&
				existing.SubscriptionID == rem.SubscriptionID &&
				existing.ActiveSendDay != nil &&
				existing.ActiveSendDay.Equal(*rem.ActiveSendDay)
		})
		if len(conflicts) > 0 {
			return ierr.NewError("a reminder for this day already exists").
				WithReportableDetails(map[string]interface{}{
					"subscription_id": rem.SubscriptionID,
					"send_day":        types.FormatCivilDate(*rem.ActiveSendDay),
				}).
				Mark(ierr.ErrAlreadyExists)
		}
	}

	return s.InMemoryStore.Create(ctx, rem.ID, rem)
}

func (s *InMemoryReminderStore) Get(ctx context.Context, userID, id string) (*reminder.Reminder, error) {
	rem, err := s.InMemoryStore.Get(ctx, id)
	if err != nil || rem.UserID != userID {
		return nil, ierr.NewError("reminder not found").
			WithReportableDetails(map[string]interface{}{"reminder_id": id}).
			Mark(ierr.ErrNotFound)
	}
	return rem, nil
}

func (s *InMemoryReminderStore) GetBySendDay(ctx context.Context, userID, subscriptionID string, day time.Time) (*reminder.Reminder, error) {
	day = types.CivilDate(day, time.UTC)
	matches := s.InMemoryStore.List(ctx, func(rem *reminder.Reminder) bool {
		return rem.UserID == userID &&
			rem.SubscriptionID == subscriptionID &&
			!rem.Dismissed &&
			types.CivilDate(rem.SendAt, time.UTC).Equal(day)
	})
	if len(matches) == 0 {
		return nil, ierr.NewError("reminder not found").
			WithReportableDetails(map[string]interface{}{
				"subscription_id": subscriptionID,
				"send_day":        types.FormatCivilDate(day),
			}).
			Mark(ierr.ErrNotFound)
	}
	return matches[0], nil
}

func (s *InMemoryReminderStore) List(ctx context.Context, userID string, includeDismissed bool) ([]*reminder.Reminder, error) {
	return s.InMemoryStore.List(ctx, func(rem *reminder.Reminder) bool {
		if rem.UserID != userID {
			return false
		}
		return includeDismissed || !rem.Dismissed
	}), nil
}

func (s *InMemoryReminderStore) CountUnread(ctx context.Context, userID string) (int64, error) {
	count := s.InMemoryStore.Count(ctx, func(rem *reminder.Reminder) bool {
		return rem.UserID == userID && !rem.Read && !rem.Dismissed
	})
	return int64(count), nil
}

func (s *InMemoryReminderStore) Update(ctx context.Context, rem *reminder.Reminder) error {
	if rem == nil {
		return ierr.NewError("reminder is nil").Mark(ierr.ErrValidation)
	}
	return s.InMemoryStore.Update(ctx, rem.ID, rem)
}

func (s *InMemoryReminderStore) MarkAllRead(ctx context.Context, userID string) error {
	reminders, _ := s.List(ctx, userID, false)
	for _, rem := range reminders {
		rem.Read = true
		if err := s.InMemoryStore.Update(ctx, rem.ID, rem); err != nil {
			return err
		}
	}
	return nil
}

func (s *InMemoryReminderStore) DeleteActiveBySubscription(ctx context.Context, userID, subscriptionID string) error {
	return s.deleteBySubscription(ctx, userID, subscriptionID, false)
}

func (s *InMemoryReminderStore) DeleteBySubscription(ctx context.Context, userID, subscriptionID string) error {
	return s.deleteBySubscription(ctx, userID, subscriptionID, true)
}

func (s *InMemoryReminderStore) deleteBySubscription(ctx context.Context, userID, subscriptionID string, includeDismissed bool) error {
	matches := s.InMemoryStore.List(ctx, func(rem *reminder.Reminder) bool {
		if rem.UserID != userID || rem.SubscriptionID != subscriptionID {
			return false
		}
		return includeDismissed || !rem.Dismissed
	})
	for _, rem := range matches {
		if err := s.InMemoryStore.Delete(ctx, rem.ID); err != nil {
			return err
		}
	}
	return nil
}
