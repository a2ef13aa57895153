package reminder

import (
	"time"

	"github.com/samber/lo"
)

// Two deliberately different due policies back the notification channels.
//
// The window policy fires on every day within [0, threshold] days until
// renewal. Combined with the durable dedup record it guarantees at least one
// delivery even when a daily run is skipped.
//
// The point policy fires only on exact day-count membership in a fixed set.
// Combined with the client-local same-day dedup it guarantees at most one
// chat message per milestone. The two must not be unified.

// DuePolicy names the rule a dispatch path evaluates reminders under.
type DuePolicy string

const (
	DuePolicyWindow DuePolicy = "window"
	DuePolicyPoint  DuePolicy = "point"
)

// DefaultPointThresholds is the milestone set used by the chat channel.
var DefaultPointThresholds = []int{7, 3, 1, 0}

// WindowDue reports whether a reminder is due under the window policy for
// the given threshold.
func WindowDue(daysUntil, threshold int) bool {
	return daysUntil >= 0 && daysUntil <= threshold
}

// PointDue reports whether a reminder is due under the point policy for the
// given milestone set.
func PointDue(daysUntil int, thresholds []int) bool {
	return lo.Contains(thresholds, daysUntil)
}

// SendAt returns the canonical send instant for a (renewal date, threshold)
// pair: the renewal date minus threshold days, at civil midnight. It depends
// only on the pair, not on the evaluation day, which is what makes the
// send-at day a stable dedup key across every run inside the window.
func SendAt(renewalDate time.Time, threshold int) time.Time {
	return renewalDate.AddDate(0, 0, -threshold)
}

// Occurrence is one due reminder produced by an evaluation pass.
type Occurrence struct {
	RenewalDate time.Time
	DaysUntil   int
	Threshold   int
	SendAt      time.Time
}

// EvaluateWindow applies the window policy and returns the occurrence for
// the configured threshold, or nil when not due.
func EvaluateWindow(renewalDate time.Time, daysUntil, threshold int) *Occurrence {
	if !WindowDue(daysUntil, threshold) {
		return nil
	}
	return &Occurrence{
		RenewalDate: renewalDate,
		DaysUntil:   daysUntil,
		Threshold:   threshold,
		SendAt:      SendAt(renewalDate, threshold),
	}
}

// EvaluatePoint applies the point policy. On a match the threshold is the
// day count itself, so each milestone is a distinct occurrence.
func EvaluatePoint(renewalDate time.Time, daysUntil int, thresholds []int) *Occurrence {
	if !PointDue(daysUntil, thresholds) {
		return nil
	}
	return &Occurrence{
		RenewalDate: renewalDate,
		DaysUntil:   daysUntil,
		Threshold:   daysUntil,
		SendAt:      SendAt(renewalDate, daysUntil),
	}
}
