package dto

import (
	"github.com/samber/lo"

	"github.com/subwatch/subwatch/internal/domain/reminder"
)

// ReminderResponse exposes a reminder record to the bell feed.
type ReminderResponse struct {
	*reminder.Reminder
}

// NewReminderResponse creates a reminder response from a domain reminder.
func NewReminderResponse(rem *reminder.Reminder) *ReminderResponse {
	return &ReminderResponse{Reminder: rem}
}

// ListRemindersResponse wraps a reminder listing.
type ListRemindersResponse struct {
	Items []*ReminderResponse `json:"items"`
	Total int                 `json:"total"`
}

func NewListRemindersResponse(reminders []*reminder.Reminder) *ListRemindersResponse {
	items := lo.Map(reminders, func(rem *reminder.Reminder, _ int) *ReminderResponse {
		return NewReminderResponse(rem)
	})
	return &ListRemindersResponse{Items: items, Total: len(items)}
}

// UnreadCountResponse is the bell badge count.
type UnreadCountResponse struct {
	Count int64 `json:"count"`
}
