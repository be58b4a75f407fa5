package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/RobotsBuildingEducation/life-assistant-sub000/internal/ports/primary"
)

// SweepAdapter runs the expiry sweep on demand and prints its report.
type SweepAdapter struct {
	service primary.SweepService
	out     io.Writer
}

// NewSweepAdapter creates a new SweepAdapter with the given service.
func NewSweepAdapter(service primary.SweepService, out io.Writer) *SweepAdapter {
	return &SweepAdapter{
		service: service,
		out:     out,
	}
}

// Run executes one sweep.
func (a *SweepAdapter) Run(ctx context.Context) error {
	report, err := a.service.RunSweep(ctx)
	if err != nil {
		return fmt.Errorf("sweep failed: %w", err)
	}

	fmt.Fprintf(a.out, "Sweep %s (cutoff %s)\n", report.RunID, report.Cutoff.Local().Format("2006-01-02 15:04:05"))
	fmt.Fprintf(a.out, "  users scanned:      %d\n", report.UsersScanned)
	fmt.Fprintf(a.out, "  sessions expired:   %d\n", report.SessionsExpired)
	fmt.Fprintf(a.out, "  notifications sent: %d\n", report.NotificationsSent)
	if report.DispatchFailures > 0 {
		fmt.Fprintf(a.out, "  %s %d\n", color.New(color.FgYellow).Sprint("dispatch failures:"), report.DispatchFailures)
	}
	for _, f := range report.Failures {
		target := f.UserID
		if f.SessionID != "" {
			target = f.SessionID + " (" + f.UserID + ")"
		}
		fmt.Fprintf(a.out, "  %s %s: %s\n", color.New(color.FgRed).Sprint("✗"), target, f.Error)
	}
	if len(report.Failures) == 0 {
		fmt.Fprintf(a.out, "%s\n", color.New(color.FgGreen).Sprint("✓ Sweep complete"))
	}
	return nil
}
