// Package timeutil fixes the engine's clock conventions in one place:
// every persisted timestamp is UTC, and expiry checks compare against
// the same clock.
package timeutil

import "time"

// Now returns the current time in UTC, the form every entity date field
// stores.
func Now() time.Time {
	return time.Now().UTC()
}

// IsExpired reports whether expiresAt has already elapsed.
func IsExpired(expiresAt time.Time) bool {
	return Now().After(expiresAt)
}
