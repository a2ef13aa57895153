package subscription

import (
	"time"

	ierr "github.com/subwatch/subwatch/internal/errors"
	"github.com/subwatch/subwatch/internal/types"
)

// Renewal is the renewal occurrence a subscription is counting down to,
// relative to a given evaluation day.
type Renewal struct {
	// Date is the occurrence the countdown targets. It equals the
	// evaluation day when the charge lands on it, and is strictly in the
	// future otherwise.
	Date time.Time
	// DaysUntil is the whole number of days from the evaluation day to
	// Date. Zero means the subscription renews today.
	DaysUntil int
}

// NextOccurrence computes the first renewal occurrence on or after today
// for a subscription anchored at startDate with the given cadence. The
// candidate is advanced by one cadence unit at least once and then while
// candidate < today, so a charge landing exactly on today is returned
// as-is. This is the occurrence every evaluation path (batch, event driven
// and chat) counts down to, which is what makes DaysUntil == 0 reachable
// on the renewal day itself.
//
// Both startDate and today must be civil dates (midnight UTC); cadence
// arithmetic uses time.AddDate's native month normalization.
func NextOccurrence(startDate time.Time, cadence types.BillingCadence, today time.Time) (time.Time, error) {
	if startDate.IsZero() {
		return time.Time{}, ierr.NewError("start date is required to compute renewal").
			Mark(ierr.ErrValidation)
	}
	if !cadence.IsRecurring() {
		return time.Time{}, ierr.NewErrorf("cadence %s is not recurring", cadence).
			Mark(ierr.ErrValidation)
	}

	candidate := cadence.Advance(startDate)
	for candidate.Before(today) {
		candidate = cadence.Advance(candidate)
	}
	return candidate, nil
}

// NextRenewal computes the next renewal date strictly after today. An
// occurrence landing exactly on today is advanced past: it is the charge
// currently being counted down to (DaysUntil == 0), not a *next* renewal.
// Display paths that need the date after today's charge use this; due
// evaluation goes through ComputeRenewal.
func NextRenewal(startDate time.Time, cadence types.BillingCadence, today time.Time) (time.Time, error) {
	occurrence, err := NextOccurrence(startDate, cadence, today)
	if err != nil {
		return time.Time{}, err
	}
	if !occurrence.After(today) {
		occurrence = cadence.Advance(occurrence)
	}
	return occurrence, nil
}

// ComputeRenewal evaluates a subscription's upcoming renewal as of today.
// On the renewal day itself Date is today and DaysUntil is 0, so the
// "renews today" milestone fires under both due policies. Subscriptions
// with an unrecognized cadence are tolerated as non-recurring and yield
// (nil, nil): they contribute nothing to aggregates and never trigger
// reminders.
func ComputeRenewal(sub *Subscription, today time.Time) (*Renewal, error) {
	if sub == nil {
		return nil, ierr.NewError("subscription is nil").Mark(ierr.ErrValidation)
	}
	if !sub.Cadence.IsRecurring() {
		return nil, nil
	}

	date, err := NextOccurrence(sub.StartDate, sub.Cadence, today)
	if err != nil {
		return nil, err
	}

	return &Renewal{
		Date:      date,
		DaysUntil: types.DaysBetween(today, date),
	}, nil
}
