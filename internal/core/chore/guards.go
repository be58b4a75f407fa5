package chore

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidChoreConfig is returned when a chore would be written with a
// malformed name or interval.
var ErrInvalidChoreConfig = errors.New("invalid chore config")

// MaxIntervalDays caps the repeat interval at one hundred years.
const MaxIntervalDays = 36500

// GuardResult represents the outcome of a guard evaluation.
type GuardResult struct {
	Allowed bool
	Reason  string
}

// Error converts the guard result to an error if not allowed.
func (r GuardResult) Error() error {
	if r.Allowed {
		return nil
	}
	return fmt.Errorf("%w: %s", ErrInvalidChoreConfig, r.Reason)
}

// CreateChoreContext provides context for chore creation guards.
type CreateChoreContext struct {
	OwnerID      string
	OwnerExists  bool
	Name         string
	IntervalDays int
}

// CanCreateChore evaluates whether a chore can be created.
// Rules:
// - Owner must exist
// - Name must not be blank
// - Interval must be between one day and MaxIntervalDays
func CanCreateChore(ctx CreateChoreContext) GuardResult {
	if !ctx.OwnerExists {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("user %s not found", ctx.OwnerID),
		}
	}

	if strings.TrimSpace(ctx.Name) == "" {
		return GuardResult{
			Allowed: false,
			Reason:  "chore name must not be empty",
		}
	}

	if ctx.IntervalDays <= 0 {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("interval must be at least 1 day (got %d)", ctx.IntervalDays),
		}
	}

	if ctx.IntervalDays > MaxIntervalDays {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("interval must be at most %d days (got %d)", MaxIntervalDays, ctx.IntervalDays),
		}
	}

	return GuardResult{Allowed: true}
}
