// Package chore contains the pure business logic for recurring chores.
// Nothing in this package performs I/O; callers fetch chores and pass "now".
package chore

import "time"

// Day is the length of one interval day.
const Day = 24 * time.Hour

// stepDays keeps each time.Duration below the int64 nanosecond limit
// (about 106751 days).
const stepDays = 100000

// Chore is the selector's view of a recurring task.
type Chore struct {
	ID              string
	Name            string
	LastCompletedAt *time.Time // nil if never completed
	IntervalDays    int
}

// DueChore pairs a chore with its computed next due time.
type DueChore struct {
	Chore     Chore
	NextDueAt time.Time
}

// NextDueAt returns when c is next due. A chore that was never completed is
// due immediately. Non-positive intervals are not special-cased: the result
// lands on or before the last completion, i.e. always overdue.
func NextDueAt(c Chore, now time.Time) time.Time {
	if c.LastCompletedAt == nil {
		return now
	}
	due, days := *c.LastCompletedAt, c.IntervalDays
	for days > stepDays {
		due = due.Add(stepDays * Day)
		days -= stepDays
	}
	for days < -stepDays {
		due = due.Add(-stepDays * Day)
		days += stepDays
	}
	return due.Add(time.Duration(days) * Day)
}

// SelectNextChore returns the chore with the earliest next due time.
// Ties keep the first chore in input order. ok is false for empty input.
func SelectNextChore(chores []Chore, now time.Time) (due DueChore, ok bool) {
	for i, c := range chores {
		next := NextDueAt(c, now)
		if i == 0 || next.Before(due.NextDueAt) {
			due = DueChore{Chore: c, NextDueAt: next}
		}
	}
	return due, len(chores) > 0
}

// IsOverdue reports whether the chore is due at or before now.
func IsOverdue(d DueChore, now time.Time) bool {
	return !d.NextDueAt.After(now)
}
