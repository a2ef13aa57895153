package webhook

import (
	"context"
	"time"

	"github.com/subwatch/subwatch/internal/config"
	"github.com/subwatch/subwatch/internal/domain/reminder"
	"github.com/subwatch/subwatch/internal/domain/subscription"
	"github.com/subwatch/subwatch/internal/logger"
)

// SnapshotStats summarizes one pass over a subscription snapshot.
type SnapshotStats struct {
	Evaluated int `json:"evaluated"`
	Posted    int `json:"posted"`
	Deduped   int `json:"deduped"`
	Errors    int `json:"errors"`
}

// ChatNotifier runs the live evaluation shape: every time a fresh snapshot
// of a user's subscriptions arrives, each one is pushed through the renewal
// calculator and the point policy, and due milestones are posted to the chat
// webhook behind the client-local dedup store.
type ChatNotifier struct {
	url        string
	thresholds []int
	poster     Poster
	dedup      *DedupStore
	log        *logger.Logger
}

// NewChatNotifier wires the chat channel. An empty webhook URL disables it.
func NewChatNotifier(cfg *config.Configuration, poster Poster, dedup *DedupStore, log *logger.Logger) *ChatNotifier {
	thresholds := cfg.Reminder.PointThresholds
	if len(thresholds) == 0 {
		thresholds = reminder.DefaultPointThresholds
	}
	return &ChatNotifier{
		url:        cfg.Webhook.ChatURL,
		thresholds: thresholds,
		poster:     poster,
		dedup:      dedup,
		log:        log,
	}
}

// Enabled reports whether a webhook URL is configured.
func (n *ChatNotifier) Enabled() bool {
	return n.url != ""
}

// NotifySnapshot evaluates every subscription in the snapshot against the
// point policy as of today and posts due milestones. The dedup check happens
// before the post and the commit only after a successful post, so a failed
// send can be retried by a later snapshot. A failure on one subscription
// never aborts the rest.
func (n *ChatNotifier) NotifySnapshot(ctx context.Context, subs []*subscription.Subscription, today time.Time) *SnapshotStats {
	stats := &SnapshotStats{}
	if !n.Enabled() {
		return stats
	}

	for _, sub := range subs {
		stats.Evaluated++

		renewal, err := subscription.ComputeRenewal(sub, today)
		if err != nil {
			n.log.Errorw("failed to compute renewal for chat notification",
				"error", err,
				"subscription_id", sub.ID,
			)
			stats.Errors++
			continue
		}
		if renewal == nil {
			// non-recurring cadence
			continue
		}

		occ := reminder.EvaluatePoint(renewal.Date, renewal.DaysUntil, n.thresholds)
		if occ == nil {
			continue
		}

		key := n.dedup.Key(sub.ID, occ.DaysUntil, occ.RenewalDate)
		if n.dedup.AlreadySentToday(key, today) {
			stats.Deduped++
			continue
		}

		if err := n.poster.PostJSON(ctx, n.url, NewReminderMessage(sub, occ)); err != nil {
			n.log.Errorw("failed to post chat reminder",
				"error", err,
				"subscription_id", sub.ID,
				"days_until", occ.DaysUntil,
			)
			stats.Errors++
			continue
		}

		n.dedup.MarkSent(key, today)
		stats.Posted++
	}

	return stats
}
