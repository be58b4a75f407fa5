// Package cli provides thin CLI adapters that translate between CLI concerns
// and application services. Adapters handle argument parsing, output formatting,
// but delegate business logic to services.
package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"

	"github.com/RobotsBuildingEducation/life-assistant-sub000/internal/ports/primary"
)

// ChoreAdapter is a thin adapter that translates CLI operations to ChoreService calls.
type ChoreAdapter struct {
	service primary.ChoreService
	out     io.Writer
	now     func() time.Time
}

// NewChoreAdapter creates a new ChoreAdapter with the given service.
func NewChoreAdapter(service primary.ChoreService, out io.Writer) *ChoreAdapter {
	return &ChoreAdapter{
		service: service,
		out:     out,
		now:     time.Now,
	}
}

// Add creates a recurring chore.
func (a *ChoreAdapter) Add(ctx context.Context, userID, name string, intervalDays int) error {
	chore, err := a.service.CreateChore(ctx, primary.CreateChoreRequest{
		UserID:       userID,
		Name:         name,
		IntervalDays: intervalDays,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "✓ Created chore %s: %s (every %s)\n", chore.ID, chore.Name, plural(chore.IntervalDays, "day"))
	return nil
}

// List lists a user's chores.
func (a *ChoreAdapter) List(ctx context.Context, userID string) error {
	chores, err := a.service.ListChores(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to list chores: %w", err)
	}

	if len(chores) == 0 {
		fmt.Fprintln(a.out, "No chores found")
		return nil
	}

	fmt.Fprintf(a.out, "\n%-12s %-8s %-20s %s\n", "ID", "EVERY", "LAST DONE", "NAME")
	fmt.Fprintln(a.out, "────────────────────────────────────────────────────────────────")
	for _, c := range chores {
		last := "never"
		if c.LastCompletedAt != nil {
			last = c.LastCompletedAt.Local().Format("2006-01-02 15:04")
		}
		fmt.Fprintf(a.out, "%-12s %-8s %-20s %s\n", c.ID, fmt.Sprintf("%dd", c.IntervalDays), last, c.Name)
	}
	fmt.Fprintln(a.out)

	return nil
}

// Next shows the chore that is due first.
func (a *ChoreAdapter) Next(ctx context.Context, userID string) error {
	due, err := a.service.NextChore(ctx, userID)
	if err != nil {
		return err
	}
	a.printDue(due)
	return nil
}

// Complete marks a chore done and shows what is next.
func (a *ChoreAdapter) Complete(ctx context.Context, choreID string) error {
	next, err := a.service.CompleteChore(ctx, choreID)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "✓ Chore %s completed\n", choreID)
	a.printDue(next)
	return nil
}

// Delete removes a chore.
func (a *ChoreAdapter) Delete(ctx context.Context, choreID string) error {
	if err := a.service.DeleteChore(ctx, choreID); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "✓ Chore %s deleted\n", choreID)
	return nil
}

func (a *ChoreAdapter) printDue(due *primary.DueChore) {
	if due == nil {
		fmt.Fprintln(a.out, "No chores yet")
		return
	}

	fmt.Fprintf(a.out, "Next: %s (%s)\n", due.Chore.Name, due.Chore.ID)
	fmt.Fprintf(a.out, "Due:  %s\n", a.dueLabel(due))
}

func (a *ChoreAdapter) dueLabel(due *primary.DueChore) string {
	if due.Overdue {
		late := a.now().Sub(due.NextDueAt)
		if late < time.Minute {
			return color.New(color.FgYellow).Sprint("now")
		}
		return color.New(color.FgRed).Sprintf("overdue by %s", humanize(late))
	}
	return color.New(color.FgGreen).Sprintf("in %s", humanize(due.NextDueAt.Sub(a.now())))
}

// humanize renders a duration in the largest whole unit.
func humanize(d time.Duration) string {
	switch {
	case d >= 24*time.Hour:
		return plural(int(d/(24*time.Hour)), "day")
	case d >= time.Hour:
		return plural(int(d/time.Hour), "hour")
	default:
		return plural(int(d/time.Minute), "minute")
	}
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}
