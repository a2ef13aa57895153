package types

import (
	"time"

	ierr "github.com/subwatch/subwatch/internal/errors"
)

// CivilDateFormat is the wire format for civil dates (no time component).
const CivilDateFormat = "2006-01-02"

// CivilDate reduces an instant to the calendar date it falls on in loc,
// returned as midnight UTC. Representing civil dates as UTC midnights keeps
// day arithmetic free of DST and offset artifacts.
func CivilDate(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// CivilToday returns today's calendar date in loc as midnight UTC.
func CivilToday(loc *time.Location) time.Time {
	return CivilDate(time.Now(), loc)
}

// ParseCivilDate parses a YYYY-MM-DD string into a midnight UTC civil date.
func ParseCivilDate(value string) (time.Time, error) {
	t, err := time.Parse(CivilDateFormat, value)
	if err != nil {
		return time.Time{}, ierr.WithError(err).
			WithHint("Date must be in YYYY-MM-DD format").
			WithReportableDetails(map[string]interface{}{
				"value": value,
			}).
			Mark(ierr.ErrValidation)
	}
	return t, nil
}

// DaysBetween returns the whole number of days from a to b. Both arguments
// must be civil dates (midnight UTC).
func DaysBetween(a, b time.Time) int {
	return int(b.Sub(a).Hours() / 24)
}

// FormatCivilDate renders a civil date in wire format.
func FormatCivilDate(t time.Time) string {
	return t.Format(CivilDateFormat)
}
