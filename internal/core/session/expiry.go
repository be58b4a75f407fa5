package session

import "time"

// DefaultExpiryThreshold is the age at which an unfinished session expires.
const DefaultExpiryThreshold = 16 * time.Hour

// Finisher values record which path finished a session.
const (
	FinishedByUser  = "user"
	FinishedBySweep = "sweep"
)

// Cutoff returns the newest creation time that counts as expired.
func Cutoff(now time.Time, threshold time.Duration) time.Time {
	return now.Add(-threshold)
}

// IsExpired reports whether a session created at createdAt is at least
// threshold old. The boundary is inclusive.
func IsExpired(createdAt, now time.Time, threshold time.Duration) bool {
	return !createdAt.After(Cutoff(now, threshold))
}
