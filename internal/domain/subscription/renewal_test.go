package subscription

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ierr "github.com/subwatch/subwatch/internal/errors"
	"github.com/subwatch/subwatch/internal/types"
)

func civil(s string) time.Time {
	d, err := types.ParseCivilDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestNextRenewal(t *testing.T) {
	tests := []struct {
		name      string
		startDate string
		cadence   types.BillingCadence
		today     string
		expected  string
	}{
		{
			name:      "monthly_mid_cycle",
			startDate: "2024-01-15",
			cadence:   types.BILLING_CADENCE_MONTHLY,
			today:     "2024-02-12",
			expected:  "2024-02-15",
		},
		{
			name:      "monthly_on_renewal_day_advances_past",
			startDate: "2024-01-15",
			cadence:   types.BILLING_CADENCE_MONTHLY,
			today:     "2024-02-15",
			expected:  "2024-03-15",
		},
		{
			name:      "monthly_day_before_renewal",
			startDate: "2024-01-15",
			cadence:   types.BILLING_CADENCE_MONTHLY,
			today:     "2024-02-14",
			expected:  "2024-02-15",
		},
		{
			name:      "monthly_long_after_start",
			startDate: "2022-03-10",
			cadence:   types.BILLING_CADENCE_MONTHLY,
			today:     "2024-07-20",
			expected:  "2024-08-10",
		},
		{
			name:      "monthly_end_of_month_normalizes",
			startDate: "2024-01-31",
			cadence:   types.BILLING_CADENCE_MONTHLY,
			today:     "2024-02-25",
			// Jan 31 + 1 month lands on Mar 2 in a leap year, per AddDate
			// normalization.
			expected: "2024-03-02",
		},
		{
			name:      "yearly_anniversary_advances_past",
			startDate: "2023-06-01",
			cadence:   types.BILLING_CADENCE_YEARLY,
			today:     "2024-06-01",
			expected:  "2025-06-01",
		},
		{
			name:      "yearly_mid_cycle",
			startDate: "2023-06-01",
			cadence:   types.BILLING_CADENCE_YEARLY,
			today:     "2024-03-15",
			expected:  "2024-06-01",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NextRenewal(civil(tt.startDate), tt.cadence, civil(tt.today))
			require.NoError(t, err)
			assert.Equal(t, civil(tt.expected), got)
			assert.True(t, got.After(civil(tt.today)), "renewal must be strictly in the future")
		})
	}
}

func TestNextOccurrence(t *testing.T) {
	tests := []struct {
		name      string
		startDate string
		cadence   types.BillingCadence
		today     string
		expected  string
	}{
		{
			name:      "monthly_mid_cycle_matches_next_renewal",
			startDate: "2024-01-15",
			cadence:   types.BILLING_CADENCE_MONTHLY,
			today:     "2024-02-12",
			expected:  "2024-02-15",
		},
		{
			name:      "monthly_renewal_day_is_today",
			startDate: "2024-01-15",
			cadence:   types.BILLING_CADENCE_MONTHLY,
			today:     "2024-02-15",
			expected:  "2024-02-15",
		},
		{
			name:      "yearly_anniversary_is_today",
			startDate: "2023-06-01",
			cadence:   types.BILLING_CADENCE_YEARLY,
			today:     "2024-06-01",
			expected:  "2024-06-01",
		},
		{
			name:      "first_advance_is_unconditional",
			startDate: "2024-03-10",
			cadence:   types.BILLING_CADENCE_MONTHLY,
			today:     "2024-02-12",
			expected:  "2024-04-10",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NextOccurrence(civil(tt.startDate), tt.cadence, civil(tt.today))
			require.NoError(t, err)
			assert.Equal(t, civil(tt.expected), got)
			assert.False(t, got.Before(civil(tt.today)), "occurrence is never in the past")
		})
	}
}

func TestNextRenewalDeterministic(t *testing.T) {
	start := civil("2024-01-15")
	today := civil("2024-02-12")

	first, err := NextRenewal(start, types.BILLING_CADENCE_MONTHLY, today)
	require.NoError(t, err)
	second, err := NextRenewal(start, types.BILLING_CADENCE_MONTHLY, today)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestNextRenewalErrors(t *testing.T) {
	t.Run("zero_start_date", func(t *testing.T) {
		_, err := NextRenewal(time.Time{}, types.BILLING_CADENCE_MONTHLY, civil("2024-02-12"))
		assert.True(t, ierr.IsValidation(err))
	})

	t.Run("non_recurring_cadence", func(t *testing.T) {
		_, err := NextRenewal(civil("2024-01-15"), types.BillingCadence("WEEKLY"), civil("2024-02-12"))
		assert.True(t, ierr.IsValidation(err))
	})
}

func TestComputeRenewal(t *testing.T) {
	sub := &Subscription{
		ID:        "subs_test",
		UserID:    "user_test",
		Name:      "Netflix",
		Price:     decimal.NewFromInt(649),
		Cadence:   types.BILLING_CADENCE_MONTHLY,
		StartDate: civil("2024-01-15"),
	}

	t.Run("days_until_matches_date", func(t *testing.T) {
		renewal, err := ComputeRenewal(sub, civil("2024-02-12"))
		require.NoError(t, err)
		require.NotNil(t, renewal)
		assert.Equal(t, civil("2024-02-15"), renewal.Date)
		assert.Equal(t, 3, renewal.DaysUntil)
	})

	t.Run("renewal_day_counts_as_zero", func(t *testing.T) {
		renewal, err := ComputeRenewal(sub, civil("2024-02-15"))
		require.NoError(t, err)
		require.NotNil(t, renewal)
		assert.Equal(t, civil("2024-02-15"), renewal.Date)
		assert.Equal(t, 0, renewal.DaysUntil)
	})

	t.Run("yearly_anniversary_counts_as_zero", func(t *testing.T) {
		yearly := &Subscription{
			ID:        "subs_yearly",
			UserID:    "user_test",
			Name:      "Prime",
			Price:     decimal.NewFromInt(1499),
			Cadence:   types.BILLING_CADENCE_YEARLY,
			StartDate: civil("2023-06-01"),
		}
		renewal, err := ComputeRenewal(yearly, civil("2024-06-01"))
		require.NoError(t, err)
		require.NotNil(t, renewal)
		assert.Equal(t, civil("2024-06-01"), renewal.Date)
		assert.Equal(t, 0, renewal.DaysUntil)

		// the day after the anniversary starts the next full cycle
		renewal, err = ComputeRenewal(yearly, civil("2024-06-02"))
		require.NoError(t, err)
		require.NotNil(t, renewal)
		assert.Equal(t, civil("2025-06-01"), renewal.Date)
		assert.Equal(t, 364, renewal.DaysUntil)
	})

	t.Run("days_until_never_negative", func(t *testing.T) {
		for day := civil("2024-01-15"); day.Before(civil("2024-04-01")); day = day.AddDate(0, 0, 1) {
			renewal, err := ComputeRenewal(sub, day)
			require.NoError(t, err)
			require.NotNil(t, renewal)
			assert.GreaterOrEqual(t, renewal.DaysUntil, 0)
			assert.Equal(t, day.AddDate(0, 0, renewal.DaysUntil), renewal.Date)
		}
	})

	t.Run("unknown_cadence_yields_nothing", func(t *testing.T) {
		odd := &Subscription{
			ID:        "subs_odd",
			UserID:    "user_test",
			Name:      "Mystery",
			Price:     decimal.NewFromInt(10),
			Cadence:   types.BillingCadence("LIFETIME"),
			StartDate: civil("2024-01-15"),
		}
		renewal, err := ComputeRenewal(odd, civil("2024-02-12"))
		assert.NoError(t, err)
		assert.Nil(t, renewal)
	})

	t.Run("nil_subscription", func(t *testing.T) {
		_, err := ComputeRenewal(nil, civil("2024-02-12"))
		assert.True(t, ierr.IsValidation(err))
	})
}
