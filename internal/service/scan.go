package service

import (
	"context"
	"time"

	"github.com/subwatch/subwatch/internal/api/dto"
	"github.com/subwatch/subwatch/internal/domain/reminder"
	"github.com/subwatch/subwatch/internal/domain/user"
	"github.com/subwatch/subwatch/internal/email"
	"github.com/subwatch/subwatch/internal/types"
)

// ScanService runs the batch reminder shape: enumerate every user, every
// subscription, and push each through calculator -> window evaluator ->
// in-app record creation -> email dispatch, under a wall-clock budget.
type ScanService interface {
	ScanAll(ctx context.Context) (*dto.ScanRunResponse, error)
}

type scanService struct {
	ServiceParams
	reminderService ReminderService
}

// NewScanService creates a new scan service
func NewScanService(params ServiceParams, reminderService ReminderService) ScanService {
	return &scanService{
		ServiceParams:   params,
		reminderService: reminderService,
	}
}

// ScanAll evaluates every subscription of every user as of today (UTC civil
// date, since this is a fixed-schedule batch job). Per-user and
// per-subscription failures are counted and skipped; only a failure to
// enumerate users at all is fatal. The run stops early, returning partial
// statistics, once the configured wall-clock budget is exceeded; the budget
// is checked between iteration steps, never mid-write.
func (s *scanService) ScanAll(ctx context.Context) (*dto.ScanRunResponse, error) {
	started := time.Now()
	today := types.CivilToday(time.UTC)
	stats := &dto.ScanRunResponse{RunID: types.GenerateUUIDWithPrefix(types.UUID_PREFIX_SCAN_RUN)}

	s.Logger.Infow("starting reminder scan", "run_id", stats.RunID, "today", types.FormatCivilDate(today))

	users, err := s.UserRepo.ListAll(ctx)
	if err != nil {
		// Cannot even enumerate: fatal, surfaced to the scheduler for its
		// own retry policy.
		return nil, err
	}

	for _, usr := range users {
		if s.budgetExceeded(started, stats) {
			break
		}

		stats.UsersChecked++
		subs, err := s.SubRepo.List(ctx, usr.ID, nil)
		if err != nil {
			s.Logger.Errorw("failed to list subscriptions", "error", err, "user_id", usr.ID)
			stats.Errors++
			continue
		}

		for _, sub := range subs {
			if s.budgetExceeded(started, stats) {
				break
			}

			stats.SubscriptionsChecked++
			rem, created, err := s.reminderService.GenerateForSubscription(ctx, usr, sub, today)
			if err != nil {
				s.Logger.Errorw("failed to evaluate subscription",
					"error", err,
					"user_id", usr.ID,
					"subscription_id", sub.ID,
				)
				stats.Errors++
				continue
			}
			if rem == nil {
				continue
			}
			if created {
				stats.NotificationsCreated++
			}

			s.dispatchEmail(ctx, usr, rem, today, stats)
		}
	}

	stats.DurationMS = time.Since(started).Milliseconds()
	s.Logger.Infow("completed reminder scan",
		"run_id", stats.RunID,
		"users_checked", stats.UsersChecked,
		"subscriptions_checked", stats.SubscriptionsChecked,
		"notifications_created", stats.NotificationsCreated,
		"emails_sent", stats.EmailsSent,
		"errors", stats.Errors,
	)
	return stats, nil
}

// dispatchEmail attempts the email channel for a due reminder. The
// email-sent flag is the channel's dedup state and is only committed after a
// successful send, so a transient failure is retried on the next run inside
// the window.
func (s *scanService) dispatchEmail(ctx context.Context, usr *user.User, rem *reminder.Reminder, today time.Time, stats *dto.ScanRunResponse) {
	if rem.EmailSent || !usr.EmailNotificationsEnabled || usr.Email == "" {
		return
	}

	resp, err := s.EmailService.SendRenewalReminder(ctx, email.SendReminderRequest{
		ToAddress:        usr.Email,
		UserName:         usr.Name,
		SubscriptionName: rem.SubscriptionName,
		Amount:           rem.SubscriptionAmount,
		RenewalDate:      rem.RenewalDate,
		DaysUntil:        types.DaysBetween(today, rem.RenewalDate),
	})
	if err != nil {
		stats.Errors++
		return
	}
	if !resp.Success {
		// transport not configured: a recognized outcome, not an error
		return
	}

	now := time.Now().UTC()
	rem.EmailSent = true
	rem.EmailSentAt = &now
	rem.UpdatedAt = now
	if err := s.ReminderRepo.Update(ctx, rem); err != nil {
		s.Logger.Errorw("failed to flag reminder as emailed",
			"error", err,
			"reminder_id", rem.ID,
		)
		stats.Errors++
		return
	}
	stats.EmailsSent++
}

func (s *scanService) budgetExceeded(started time.Time, stats *dto.ScanRunResponse) bool {
	if time.Since(started) <= s.Config.Reminder.ScanBudget {
		return false
	}
	if !stats.Partial {
		stats.Partial = true
		s.Logger.Warnw("scan budget exceeded, returning partial statistics",
			"run_id", stats.RunID,
			"budget", s.Config.Reminder.ScanBudget,
		)
	}
	return true
}
