package user

import (
	"context"

	ierr "github.com/subwatch/subwatch/internal/errors"
	"github.com/subwatch/subwatch/internal/types"
)

const (
	// DefaultReminderDaysThreshold is applied when a user has not set a
	// reminder window of their own.
	DefaultReminderDaysThreshold = 3
)

// User is an account that owns subscriptions, along with the notification
// preferences the batch scan reads.
type User struct {
	ID                        string `json:"id" gorm:"column:id;primaryKey"`
	Email                     string `json:"email" gorm:"column:email"`
	Name                      string `json:"name" gorm:"column:name"`
	ReminderDaysThreshold     int    `json:"reminder_days_threshold" gorm:"column:reminder_days_threshold;default:3"`
	EmailNotificationsEnabled bool   `json:"email_notifications_enabled" gorm:"column:email_notifications_enabled;default:true"`
	types.BaseModel
}

func (u *User) TableName() string {
	return "users"
}

func (u *User) Validate() error {
	if u.ID == "" {
		return ierr.NewError("user id is required").Mark(ierr.ErrValidation)
	}
	return nil
}

// EffectiveThreshold returns the user's reminder window, falling back to the
// service default when unset.
func (u *User) EffectiveThreshold(fallback int) int {
	if u.ReminderDaysThreshold > 0 {
		return u.ReminderDaysThreshold
	}
	if fallback > 0 {
		return fallback
	}
	return DefaultReminderDaysThreshold
}

// Repository defines the interface for user persistence operations
type Repository interface {
	Create(ctx context.Context, u *User) error
	Get(ctx context.Context, id string) (*User, error)
	// ListAll enumerates every user for the batch scan.
	ListAll(ctx context.Context) ([]*User, error)
	Update(ctx context.Context, u *User) error
}
