package timezone

import "time"

// DefaultTimezone anchors the same-day booking cutoff when no TIMEZONE
// is configured. Dates and times are stored as plain strings; the only
// clock-dependent decision in the system is "how late is it today".
const DefaultTimezone = "Europe/Berlin"

func IsValid(tz string) bool {
	if tz == "" {
		return false
	}
	_, err := time.LoadLocation(tz)
	return err == nil
}

// Location resolves tz, falling back to the default when unknown.
func Location(tz string) *time.Location {
	if IsValid(tz) {
		if loc, err := time.LoadLocation(tz); err == nil {
			return loc
		}
	}

	loc, _ := time.LoadLocation(DefaultTimezone)
	return loc
}

// NowIn is the salon's wall clock.
func NowIn(tz string) time.Time {
	return time.Now().In(Location(tz))
}
