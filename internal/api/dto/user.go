package dto

import (
	"github.com/subwatch/subwatch/internal/domain/user"
	"github.com/subwatch/subwatch/internal/types"
)

// CreateUserRequest registers a user record; identity itself comes from the
// upstream auth layer, this only stores profile and notification
// preferences.
type CreateUserRequest struct {
	ID    string `json:"id" binding:"required"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

func (r *CreateUserRequest) ToUser() *user.User {
	return &user.User{
		ID:                        r.ID,
		Email:                     r.Email,
		Name:                      r.Name,
		ReminderDaysThreshold:     user.DefaultReminderDaysThreshold,
		EmailNotificationsEnabled: true,
		BaseModel:                 types.GetDefaultBaseModel(),
	}
}

// UpdateUserPreferencesRequest patches notification preferences.
type UpdateUserPreferencesRequest struct {
	Email                     *string `json:"email,omitempty"`
	Name                      *string `json:"name,omitempty"`
	ReminderDaysThreshold     *int    `json:"reminder_days_threshold,omitempty"`
	EmailNotificationsEnabled *bool   `json:"email_notifications_enabled,omitempty"`
}

func (r *UpdateUserPreferencesRequest) Apply(u *user.User) {
	if r.Email != nil {
		u.Email = *r.Email
	}
	if r.Name != nil {
		u.Name = *r.Name
	}
	if r.ReminderDaysThreshold != nil {
		u.ReminderDaysThreshold = *r.ReminderDaysThreshold
	}
	if r.EmailNotificationsEnabled != nil {
		u.EmailNotificationsEnabled = *r.EmailNotificationsEnabled
	}
}

// UserResponse exposes a user record.
type UserResponse struct {
	*user.User
}
