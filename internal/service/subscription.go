package service

import (
	"context"
	"time"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"github.com/subwatch/subwatch/internal/api/dto"
	"github.com/subwatch/subwatch/internal/domain/subscription"
	"github.com/subwatch/subwatch/internal/types"
	"github.com/subwatch/subwatch/internal/webhook"
)

// SubscriptionService owns subscription CRUD plus the event-driven reminder
// shape: every write re-evaluates the affected subscription synchronously,
// as a guarded best-effort side effect that can never fail the write itself.
type SubscriptionService interface {
	CreateSubscription(ctx context.Context, userID string, req dto.CreateSubscriptionRequest) (*dto.SubscriptionResponse, error)
	GetSubscription(ctx context.Context, userID, id string) (*dto.SubscriptionResponse, error)
	ListSubscriptions(ctx context.Context, userID string, filter *subscription.Filter) (*dto.ListSubscriptionsResponse, error)
	UpdateSubscription(ctx context.Context, userID, id string, req dto.UpdateSubscriptionRequest) (*dto.SubscriptionResponse, error)
	DeleteSubscription(ctx context.Context, userID, id string) error
	GetSummary(ctx context.Context, userID string) (*dto.SpendSummaryResponse, error)
}

type subscriptionService struct {
	ServiceParams
	reminderService ReminderService
	chatNotifier    *webhook.ChatNotifier
}

// NewSubscriptionService creates a new subscription service
func NewSubscriptionService(params ServiceParams, reminderService ReminderService, chatNotifier *webhook.ChatNotifier) SubscriptionService {
	return &subscriptionService{
		ServiceParams:   params,
		reminderService: reminderService,
		chatNotifier:    chatNotifier,
	}
}

func (s *subscriptionService) CreateSubscription(ctx context.Context, userID string, req dto.CreateSubscriptionRequest) (*dto.SubscriptionResponse, error) {
	sub, err := req.ToSubscription(userID)
	if err != nil {
		return nil, err
	}
	if err := sub.Validate(); err != nil {
		return nil, err
	}

	if err := s.SubRepo.Create(ctx, sub); err != nil {
		return nil, err
	}

	s.generateRemindersBestEffort(ctx, sub, false)

	return s.newSubscriptionResponse(sub), nil
}

func (s *subscriptionService) GetSubscription(ctx context.Context, userID, id string) (*dto.SubscriptionResponse, error) {
	sub, err := s.SubRepo.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	return s.newSubscriptionResponse(sub), nil
}

func (s *subscriptionService) ListSubscriptions(ctx context.Context, userID string, filter *subscription.Filter) (*dto.ListSubscriptionsResponse, error) {
	subs, err := s.SubRepo.List(ctx, userID, filter)
	if err != nil {
		return nil, err
	}

	// Every fresh snapshot is pushed through the chat channel. Dispatch is
	// best-effort and deduplicated per day inside the notifier, so repeated
	// loads never repost.
	if s.chatNotifier.Enabled() {
		today := types.CivilToday(s.Config.ReminderLocation())
		s.chatNotifier.NotifySnapshot(ctx, subs, today)
	}

	items := lo.Map(subs, func(sub *subscription.Subscription, _ int) *dto.SubscriptionResponse {
		return s.newSubscriptionResponse(sub)
	})
	return &dto.ListSubscriptionsResponse{Items: items, Total: len(items)}, nil
}

func (s *subscriptionService) UpdateSubscription(ctx context.Context, userID, id string, req dto.UpdateSubscriptionRequest) (*dto.SubscriptionResponse, error) {
	sub, err := s.SubRepo.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if err := req.Apply(sub); err != nil {
		return nil, err
	}
	if err := sub.Validate(); err != nil {
		return nil, err
	}
	sub.UpdatedAt = time.Now().UTC()

	if err := s.SubRepo.Update(ctx, sub); err != nil {
		return nil, err
	}

	// Any edit may have moved the renewal date, so previously computed
	// reminder state is invalidated and rebuilt from the updated data.
	s.generateRemindersBestEffort(ctx, sub, true)

	return s.newSubscriptionResponse(sub), nil
}

func (s *subscriptionService) DeleteSubscription(ctx context.Context, userID, id string) error {
	if err := s.SubRepo.Delete(ctx, userID, id); err != nil {
		return err
	}

	// Cascade: all reminder state for the subscription goes with it,
	// dismissed records included.
	if err := s.ReminderRepo.DeleteBySubscription(ctx, userID, id); err != nil {
		s.Logger.Errorw("failed to cascade-delete reminders",
			"error", err,
			"subscription_id", id,
			"user_id", userID,
		)
	}
	return nil
}

func (s *subscriptionService) GetSummary(ctx context.Context, userID string) (*dto.SpendSummaryResponse, error) {
	subs, err := s.SubRepo.List(ctx, userID, nil)
	if err != nil {
		return nil, err
	}

	twelve := decimal.NewFromInt(12)
	monthly := decimal.Zero
	yearly := decimal.Zero
	byCategory := map[string]decimal.Decimal{}

	for _, sub := range subs {
		months := sub.Cadence.MonthsPerPeriod()
		if months == 0 {
			// unknown cadence contributes nothing to aggregates
			continue
		}

		monthlyEquivalent := sub.Price.DivRound(decimal.NewFromInt(int64(months)), 2)
		monthly = monthly.Add(monthlyEquivalent)
		yearly = yearly.Add(monthlyEquivalent.Mul(twelve))

		category := sub.Category
		if category == "" {
			category = "uncategorized"
		}
		byCategory[category] = byCategory[category].Add(monthlyEquivalent)
	}

	return &dto.SpendSummaryResponse{
		Subscriptions:     len(subs),
		MonthlyTotal:      monthly,
		YearlyTotal:       yearly,
		MonthlyByCategory: byCategory,
	}, nil
}

// generateRemindersBestEffort runs the event-driven reminder shape after a
// subscription write. The primary write has already committed; failures here
// are logged and swallowed so they can never surface to the caller.
func (s *subscriptionService) generateRemindersBestEffort(ctx context.Context, sub *subscription.Subscription, invalidateFirst bool) {
	usr, err := s.UserRepo.Get(ctx, sub.UserID)
	if err != nil {
		s.Logger.Errorw("failed to load user for reminder generation",
			"error", err,
			"user_id", sub.UserID,
			"subscription_id", sub.ID,
		)
		return
	}

	today := types.CivilToday(time.UTC)
	if invalidateFirst {
		err = s.reminderService.RegenerateForSubscription(ctx, usr, sub, today)
	} else {
		_, _, err = s.reminderService.GenerateForSubscription(ctx, usr, sub, today)
	}
	if err != nil {
		s.Logger.Errorw("failed to generate reminders for subscription",
			"error", err,
			"subscription_id", sub.ID,
		)
	}
}

func (s *subscriptionService) newSubscriptionResponse(sub *subscription.Subscription) *dto.SubscriptionResponse {
	resp := &dto.SubscriptionResponse{Subscription: sub}

	today := types.CivilToday(s.Config.ReminderLocation())
	renewal, err := subscription.ComputeRenewal(sub, today)
	if err == nil && renewal != nil {
		resp.RenewalDate = types.FormatCivilDate(renewal.Date)
		resp.DaysUntilRenewal = &renewal.DaysUntil
	}
	return resp
}
