package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCivilDate(t *testing.T) {
	kolkata, err := time.LoadLocation("Asia/Kolkata")
	require.NoError(t, err)

	// 20:30 UTC is already the next calendar day in Kolkata (+05:30)
	instant := time.Date(2024, 2, 14, 20, 30, 0, 0, time.UTC)

	assert.Equal(t, time.Date(2024, 2, 14, 0, 0, 0, 0, time.UTC), CivilDate(instant, time.UTC))
	assert.Equal(t, time.Date(2024, 2, 15, 0, 0, 0, 0, time.UTC), CivilDate(instant, kolkata))
}

func TestDaysBetween(t *testing.T) {
	feb12 := time.Date(2024, 2, 12, 0, 0, 0, 0, time.UTC)
	feb15 := time.Date(2024, 2, 15, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, 3, DaysBetween(feb12, feb15))
	assert.Equal(t, 0, DaysBetween(feb12, feb12))
	assert.Equal(t, -3, DaysBetween(feb15, feb12))

	// leap day is counted like any other
	feb28 := time.Date(2024, 2, 28, 0, 0, 0, 0, time.UTC)
	mar1 := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 2, DaysBetween(feb28, mar1))
}

func TestParseCivilDate(t *testing.T) {
	d, err := ParseCivilDate("2024-02-15")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 2, 15, 0, 0, 0, 0, time.UTC), d)
	assert.Equal(t, "2024-02-15", FormatCivilDate(d))

	_, err = ParseCivilDate("15/02/2024")
	assert.Error(t, err)
}

func TestBillingCadence(t *testing.T) {
	assert.NoError(t, BILLING_CADENCE_MONTHLY.Validate())
	assert.NoError(t, BILLING_CADENCE_YEARLY.Validate())
	assert.Error(t, BillingCadence("WEEKLY").Validate())

	assert.True(t, BILLING_CADENCE_MONTHLY.IsRecurring())
	assert.False(t, BillingCadence("LIFETIME").IsRecurring())

	jan15 := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2024, 2, 15, 0, 0, 0, 0, time.UTC), BILLING_CADENCE_MONTHLY.Advance(jan15))
	assert.Equal(t, time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC), BILLING_CADENCE_YEARLY.Advance(jan15))

	assert.Equal(t, 1, BILLING_CADENCE_MONTHLY.MonthsPerPeriod())
	assert.Equal(t, 12, BILLING_CADENCE_YEARLY.MonthsPerPeriod())
	assert.Equal(t, 0, BillingCadence("LIFETIME").MonthsPerPeriod())
}
