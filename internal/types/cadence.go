package types

import (
	"time"

	ierr "github.com/subwatch/subwatch/internal/errors"
)

// BillingCadence is the recurrence unit of a subscription charge.
type BillingCadence string

const (
	BILLING_CADENCE_MONTHLY BillingCadence = "MONTHLY"
	BILLING_CADENCE_YEARLY  BillingCadence = "YEARLY"
)

func (c BillingCadence) Validate() error {
	allowed := []BillingCadence{
		BILLING_CADENCE_MONTHLY,
		BILLING_CADENCE_YEARLY,
	}
	for _, cadence := range allowed {
		if c == cadence {
			return nil
		}
	}
	return ierr.NewError("invalid billing cadence").
		WithHint("Billing cadence must be MONTHLY or YEARLY").
		WithReportableDetails(map[string]interface{}{
			"cadence":        c,
			"allowed_values": allowed,
		}).
		Mark(ierr.ErrValidation)
}

// IsRecurring reports whether the cadence is one the renewal engine knows how
// to advance. Unknown cadences are tolerated as non-recurring for forward
// compatibility: they contribute nothing to aggregates and never trigger
// reminders.
func (c BillingCadence) IsRecurring() bool {
	return c == BILLING_CADENCE_MONTHLY || c == BILLING_CADENCE_YEARLY
}

// Advance moves a civil date forward by one cadence unit. Month arithmetic
// follows time.AddDate's native normalization (Jan 31 + 1 month rolls over
// into March).
func (c BillingCadence) Advance(date time.Time) time.Time {
	switch c {
	case BILLING_CADENCE_YEARLY:
		return date.AddDate(1, 0, 0)
	default:
		return date.AddDate(0, 1, 0)
	}
}

// MonthsPerPeriod returns the number of months covered by one cadence unit,
// used by the spend summary to normalize prices.
func (c BillingCadence) MonthsPerPeriod() int {
	switch c {
	case BILLING_CADENCE_YEARLY:
		return 12
	case BILLING_CADENCE_MONTHLY:
		return 1
	default:
		return 0
	}
}
