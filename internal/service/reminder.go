package service

import (
	"context"
	"time"

	"github.com/subwatch/subwatch/internal/api/dto"
	"github.com/subwatch/subwatch/internal/domain/reminder"
	"github.com/subwatch/subwatch/internal/domain/subscription"
	"github.com/subwatch/subwatch/internal/domain/user"
	ierr "github.com/subwatch/subwatch/internal/errors"
	"github.com/subwatch/subwatch/internal/types"
)

// ReminderService owns the in-app reminder channel: the window-policy
// evaluation pipeline, the server-authoritative dedup store backed by the
// reminder records themselves, and the read/dismiss lifecycle.
type ReminderService interface {
	// GenerateForSubscription runs calculator -> window evaluator -> dedup
	// check -> record creation for one subscription as of today. It returns
	// the reminder that covers today's evaluation (existing or newly
	// created) and whether it was created by this call; (nil, false, nil)
	// means no reminder is due.
	GenerateForSubscription(ctx context.Context, usr *user.User, sub *subscription.Subscription, today time.Time) (*reminder.Reminder, bool, error)

	// RegenerateForSubscription purges the subscription's non-dismissed
	// reminders and evaluates it afresh; used after an edit so stale
	// renewal snapshots never linger.
	RegenerateForSubscription(ctx context.Context, usr *user.User, sub *subscription.Subscription, today time.Time) error

	ListReminders(ctx context.Context, userID string) (*dto.ListRemindersResponse, error)
	UnreadCount(ctx context.Context, userID string) (int64, error)
	MarkRead(ctx context.Context, userID, reminderID string) error
	MarkAllRead(ctx context.Context, userID string) error
	Dismiss(ctx context.Context, userID, reminderID string) error
}

type reminderService struct {
	ServiceParams
}

// NewReminderService creates a new reminder service
func NewReminderService(params ServiceParams) ReminderService {
	return &reminderService{ServiceParams: params}
}

func (s *reminderService) GenerateForSubscription(ctx context.Context, usr *user.User, sub *subscription.Subscription, today time.Time) (*reminder.Reminder, bool, error) {
	renewal, err := subscription.ComputeRenewal(sub, today)
	if err != nil {
		return nil, false, err
	}
	if renewal == nil {
		// non-recurring cadence, never triggers reminders
		return nil, false, nil
	}

	threshold := usr.EffectiveThreshold(s.Config.Reminder.DefaultThreshold)
	occ := reminder.EvaluateWindow(renewal.Date, renewal.DaysUntil, threshold)
	if occ == nil {
		return nil, false, nil
	}

	// The send-at day depends only on (renewal date, threshold), so it is
	// the same on every day inside the window. Existence of a non-dismissed
	// record for that day is the dedup check; creating the record is the
	// commit, in one step.
	existing, err := s.ReminderRepo.GetBySendDay(ctx, usr.ID, sub.ID, occ.SendAt)
	if err == nil {
		return existing, false, nil
	}
	if !ierr.IsNotFound(err) {
		return nil, false, err
	}

	sendDay := types.CivilDate(occ.SendAt, time.UTC)
	rem := &reminder.Reminder{
		ID:                 types.GenerateUUIDWithPrefix(types.UUID_PREFIX_REMINDER),
		UserID:             usr.ID,
		SubscriptionID:     sub.ID,
		ActiveSendDay:      &sendDay,
		SubscriptionName:   sub.Name,
		SubscriptionAmount: sub.Price,
		DueDate:            sub.StartDate,
		Billing:            sub.Cadence,
		RenewalDate:        occ.RenewalDate,
		SendAt:             occ.SendAt,
		NotifyDaysBefore:   occ.Threshold,
		BaseModel:          types.GetDefaultBaseModel(),
	}
	if err := rem.Validate(); err != nil {
		return nil, false, err
	}
	if err := s.ReminderRepo.Create(ctx, rem); err != nil {
		// A concurrent pass may have created the same-day record first;
		// treat that as the dedup firing, not a failure.
		if ierr.IsAlreadyExists(err) {
			return nil, false, nil
		}
		return nil, false, err
	}

	s.Logger.Infow("created reminder",
		"reminder_id", rem.ID,
		"subscription_id", sub.ID,
		"days_until", occ.DaysUntil,
		"send_at", occ.SendAt,
	)
	return rem, true, nil
}

func (s *reminderService) RegenerateForSubscription(ctx context.Context, usr *user.User, sub *subscription.Subscription, today time.Time) error {
	if err := s.ReminderRepo.DeleteActiveBySubscription(ctx, usr.ID, sub.ID); err != nil {
		return err
	}
	_, _, err := s.GenerateForSubscription(ctx, usr, sub, today)
	return err
}

func (s *reminderService) ListReminders(ctx context.Context, userID string) (*dto.ListRemindersResponse, error) {
	reminders, err := s.ReminderRepo.List(ctx, userID, false)
	if err != nil {
		return nil, err
	}
	return dto.NewListRemindersResponse(reminders), nil
}

func (s *reminderService) UnreadCount(ctx context.Context, userID string) (int64, error) {
	return s.ReminderRepo.CountUnread(ctx, userID)
}

func (s *reminderService) MarkRead(ctx context.Context, userID, reminderID string) error {
	rem, err := s.ReminderRepo.Get(ctx, userID, reminderID)
	if err != nil {
		return err
	}
	if rem.Read {
		return nil
	}
	rem.Read = true
	rem.UpdatedAt = time.Now().UTC()
	return s.ReminderRepo.Update(ctx, rem)
}

func (s *reminderService) MarkAllRead(ctx context.Context, userID string) error {
	return s.ReminderRepo.MarkAllRead(ctx, userID)
}

func (s *reminderService) Dismiss(ctx context.Context, userID, reminderID string) error {
	rem, err := s.ReminderRepo.Get(ctx, userID, reminderID)
	if err != nil {
		return err
	}
	if rem.Dismissed {
		// dismissed is terminal, nothing to do
		return nil
	}
	rem.MarkDismissed()
	rem.UpdatedAt = time.Now().UTC()
	return s.ReminderRepo.Update(ctx, rem)
}
