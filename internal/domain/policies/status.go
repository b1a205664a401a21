package policies

import "time"

// DisplayStatus derives the status shown to readers. A stored Active policy
// whose expiry date is before today's date reads as Lapsed; stored values
// are never rewritten.
func DisplayStatus(policy Policy, now time.Time) string {
	if policy.Status == StatusActive && isExpired(policy.ExpiryDate, now) {
		return StatusLapsed
	}
	return policy.Status
}

// IsEffectivelyActive reports whether the policy is Active and not expired.
func IsEffectivelyActive(policy Policy, now time.Time) bool {
	return DisplayStatus(policy, now) == StatusActive
}

func isExpired(expiry *string, now time.Time) bool {
	if expiry == nil || *expiry == "" {
		return false
	}
	date, err := time.Parse(time.DateOnly, *expiry)
	if err != nil {
		return false
	}
	return date.Before(Today(now))
}

// Today truncates now to midnight UTC of its calendar date.
func Today(now time.Time) time.Time {
	year, month, day := now.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
