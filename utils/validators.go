package utils

import (
	"regexp"
)

var (
	eventCodeRegex = regexp.MustCompile(`^[A-Za-z0-9]{6}$`)
	timeOfDayRegex = regexp.MustCompile(`^([01]\d|2[0-3]):([0-5]\d)$`)
	emailRegex     = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
)

// IsValidEventCode checks the 6 character alphanumeric event code format.
// Malformed codes are rejected before any lookup.
func IsValidEventCode(code string) bool {
	return eventCodeRegex.MatchString(code)
}

// IsValidTimeOfDay checks HH:mm strings such as event start and end times.
func IsValidTimeOfDay(v string) bool {
	return timeOfDayRegex.MatchString(v)
}

func IsValidEmail(email string) bool {
	return emailRegex.MatchString(email)
}
