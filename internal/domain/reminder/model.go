package reminder

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	ierr "github.com/subwatch/subwatch/internal/errors"
	"github.com/subwatch/subwatch/internal/types"
)

// Reminder is one notification obligation for a (subscription, threshold)
// pair. It snapshots the subscription's display fields so the bell feed can
// render without a join, and it doubles as the server-side dedup record: at
// most one non-dismissed reminder exists per (subscription, send-at day).
type Reminder struct {
	ID                 string               `json:"id" gorm:"column:id;primaryKey"`
	UserID             string               `json:"user_id" gorm:"column:user_id;index;uniqueIndex:uniq_reminder_active_send_day,priority:1"`
	SubscriptionID     string               `json:"subscription_id" gorm:"column:subscription_id;index;uniqueIndex:uniq_reminder_active_send_day,priority:2"`
	SubscriptionName   string               `json:"subscription_name" gorm:"column:subscription_name"`
	SubscriptionAmount decimal.Decimal      `json:"subscription_amount" gorm:"column:subscription_amount;type:decimal(12,2)"`
	DueDate            time.Time            `json:"due_date" gorm:"column:due_date"`
	Billing            types.BillingCadence `json:"billing" gorm:"column:billing;type:varchar(20)"`
	RenewalDate        time.Time            `json:"renewal_date" gorm:"column:renewal_date"`
	SendAt             time.Time            `json:"send_at" gorm:"column:send_at"`
	NotifyDaysBefore   int                  `json:"notify_days_before" gorm:"column:notify_days_before"`
	Read               bool                 `json:"read" gorm:"column:read"`
	Dismissed          bool                 `json:"dismissed" gorm:"column:dismissed"`
	// ActiveSendDay mirrors the civil day of SendAt while the record is not
	// dismissed and goes NULL on dismissal. The unique index over it is what
	// makes same-day record creation idempotent at the store level: NULL
	// rows never collide, so dismissed records stay out of the way.
	ActiveSendDay *time.Time `json:"-" gorm:"column:active_send_day;uniqueIndex:uniq_reminder_active_send_day,priority:3"`
	EmailSent     bool       `json:"email_sent" gorm:"column:email_sent"`
	EmailSentAt   *time.Time `json:"email_sent_at,omitempty" gorm:"column:email_sent_at"`
	types.BaseModel
}

func (r *Reminder) TableName() string {
	return "reminders"
}

// MarkDismissed makes the record terminal and releases its slot in the
// active send-day index so a fresh reminder for the same day can be created.
func (r *Reminder) MarkDismissed() {
	r.Dismissed = true
	r.ActiveSendDay = nil
}

func (r *Reminder) Validate() error {
	if r.UserID == "" {
		return ierr.NewError("reminder user id is required").Mark(ierr.ErrValidation)
	}
	if r.SubscriptionID == "" {
		return ierr.NewError("reminder subscription id is required").Mark(ierr.ErrValidation)
	}
	if r.SendAt.After(r.RenewalDate) {
		return ierr.NewError("reminder send-at must not be after the renewal date").
			WithReportableDetails(map[string]interface{}{
				"send_at":      r.SendAt,
				"renewal_date": r.RenewalDate,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}

// Repository defines the interface for reminder persistence operations. The
// GetBySendDay / Create pair is the server-authoritative dedup store: the
// existence check is a query for a non-dismissed record on the send-at day,
// and record creation is the commit.
type Repository interface {
	Create(ctx context.Context, rem *Reminder) error
	Get(ctx context.Context, userID, id string) (*Reminder, error)
	// GetBySendDay returns the non-dismissed reminder for the subscription
	// whose send-at falls on the given civil day, or ErrNotFound.
	GetBySendDay(ctx context.Context, userID, subscriptionID string, day time.Time) (*Reminder, error)
	List(ctx context.Context, userID string, includeDismissed bool) ([]*Reminder, error)
	CountUnread(ctx context.Context, userID string) (int64, error)
	Update(ctx context.Context, rem *Reminder) error
	MarkAllRead(ctx context.Context, userID string) error
	// DeleteActiveBySubscription purges non-dismissed reminders for a
	// subscription; used when the subscription is edited so stale renewal
	// snapshots cannot linger. Dismissed records are retained for audit.
	DeleteActiveBySubscription(ctx context.Context, userID, subscriptionID string) error
	// DeleteBySubscription purges all reminders for a subscription,
	// dismissed or not; used when the subscription is deleted.
	DeleteBySubscription(ctx context.Context, userID, subscriptionID string) error
}
