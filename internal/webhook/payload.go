package webhook

import (
	"fmt"

	"github.com/subwatch/subwatch/internal/domain/reminder"
	"github.com/subwatch/subwatch/internal/domain/subscription"
	"github.com/subwatch/subwatch/internal/types"
)

// ChatMessage is the Discord-style webhook payload.
type ChatMessage struct {
	Content string      `json:"content"`
	Embeds  []ChatEmbed `json:"embeds,omitempty"`
}

type ChatEmbed struct {
	Title  string           `json:"title"`
	Color  int              `json:"color,omitempty"`
	Fields []ChatEmbedField `json:"fields,omitempty"`
}

type ChatEmbedField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline,omitempty"`
}

const embedColor = 0xF59E0B

// NewReminderMessage formats one due reminder occurrence for the chat
// channel.
func NewReminderMessage(sub *subscription.Subscription, occ *reminder.Occurrence) *ChatMessage {
	var when string
	switch {
	case occ.DaysUntil <= 0:
		when = "today"
	case occ.DaysUntil == 1:
		when = "tomorrow"
	default:
		when = fmt.Sprintf("in %d days", occ.DaysUntil)
	}

	return &ChatMessage{
		Content: fmt.Sprintf("**%s** renews %s", sub.Name, when),
		Embeds: []ChatEmbed{
			{
				Title: "Subscription renewal",
				Color: embedColor,
				Fields: []ChatEmbedField{
					{Name: "Subscription", Value: sub.Name, Inline: true},
					{Name: "Amount", Value: sub.Price.StringFixed(2), Inline: true},
					{Name: "Renews on", Value: types.FormatCivilDate(occ.RenewalDate), Inline: true},
					{Name: "Days left", Value: fmt.Sprintf("%d", occ.DaysUntil), Inline: true},
				},
			},
		},
	}
}
