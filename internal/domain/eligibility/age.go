package eligibility

import (
	"strings"
	"time"
)

// DateLayout is the calendar date format used for birth and cutoff dates.
const DateLayout = "2006-01-02"

// ParseDate parses a calendar date string. The bool result is false for an
// empty or malformed value; callers decide what a missing date means.
func ParseDate(v string) (time.Time, bool) {
	v = strings.TrimSpace(v)
	if v == "" {
		return time.Time{}, false
	}

	t, err := time.Parse(DateLayout, v)
	if err != nil {
		return time.Time{}, false
	}

	return t, true
}

// AgeAt computes full years elapsed from a date of birth to a reference
// date. The year increments only on or after the birth month/day, so a
// player is not yet N the day before their Nth birthday. Returns ok=false
// when the date of birth does not parse.
func AgeAt(dateOfBirth string, ref time.Time) (int, bool) {
	born, ok := ParseDate(dateOfBirth)
	if !ok {
		return 0, false
	}

	years := ref.Year() - born.Year()
	if ref.Month() < born.Month() || (ref.Month() == born.Month() && ref.Day() < born.Day()) {
		years--
	}

	return years, true
}
