package types

import (
	"strings"
	"time"
)

// timezoneAbbreviationMap maps common three-letter timezone abbreviations to
// IANA timezone identifiers so config values like "IST" still resolve.
var timezoneAbbreviationMap = map[string]string{
	"IST": "Asia/Kolkata",
	"EST": "America/New_York",
	"CST": "America/Chicago",
	"MST": "America/Denver",
	"PST": "America/Los_Angeles",
	"GMT": "Europe/London",
	"CET": "Europe/Berlin",
	"EET": "Europe/Athens",
	"JST": "Asia/Tokyo",
	"KST": "Asia/Seoul",
	"MSK": "Europe/Moscow",
}

// ResolveTimezone converts a timezone abbreviation to an IANA identifier or
// returns the input unchanged if it is not a known abbreviation.
func ResolveTimezone(timezone string) string {
	if ianaName, exists := timezoneAbbreviationMap[strings.ToUpper(timezone)]; exists {
		return ianaName
	}
	return timezone
}

// ValidateTimezone validates a timezone by resolving abbreviations and
// checking with time.LoadLocation.
func ValidateTimezone(timezone string) error {
	_, err := time.LoadLocation(ResolveTimezone(timezone))
	return err
}
