package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/RobotsBuildingEducation/life-assistant-sub000/internal/ports/primary"
)

// SessionAdapter is a thin adapter that translates CLI operations to SessionService calls.
type SessionAdapter struct {
	service primary.SessionService
	out     io.Writer
}

// NewSessionAdapter creates a new SessionAdapter with the given service.
func NewSessionAdapter(service primary.SessionService, out io.Writer) *SessionAdapter {
	return &SessionAdapter{
		service: service,
		out:     out,
	}
}

// Start creates a new task list.
func (a *SessionAdapter) Start(ctx context.Context, userID string, tasks []string) error {
	session, err := a.service.StartSession(ctx, primary.StartSessionRequest{
		UserID: userID,
		Tasks:  tasks,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "✓ Started session %s with %d task(s)\n", session.ID, len(session.Tasks))
	return nil
}

// Show displays one session with a checklist.
func (a *SessionAdapter) Show(ctx context.Context, sessionID string) error {
	session, err := a.service.GetSession(ctx, sessionID)
	if err != nil {
		return fmt.Errorf("failed to get session: %w", err)
	}
	a.printSession(session)
	return nil
}

// List lists sessions for a user.
func (a *SessionAdapter) List(ctx context.Context, userID, status string) error {
	sessions, err := a.service.ListSessions(ctx, primary.SessionFilters{
		UserID: userID,
		Status: status,
	})
	if err != nil {
		return fmt.Errorf("failed to list sessions: %w", err)
	}

	if len(sessions) == 0 {
		fmt.Fprintln(a.out, "No sessions found")
		return nil
	}

	fmt.Fprintf(a.out, "\n%-10s %-10s %-6s %s\n", "ID", "STATUS", "DONE", "CREATED")
	fmt.Fprintln(a.out, "────────────────────────────────────────────────────────────────")
	for _, s := range sessions {
		fmt.Fprintf(a.out, "%-10s %-10s %-6s %s\n",
			s.ID, s.Status, fmt.Sprintf("%d/%d", len(s.Completed), len(s.Tasks)),
			s.CreatedAt.Local().Format("2006-01-02 15:04"))
	}
	fmt.Fprintln(a.out)

	return nil
}

// Toggle flips a task and shows the resulting session.
func (a *SessionAdapter) Toggle(ctx context.Context, sessionID, task string) error {
	session, err := a.service.ToggleTask(ctx, primary.ToggleTaskRequest{
		SessionID: sessionID,
		Task:      task,
	})
	if err != nil {
		return err
	}
	a.printSession(session)
	return nil
}

func (a *SessionAdapter) printSession(s *primary.Session) {
	fmt.Fprintf(a.out, "\nSession: %s\n", s.ID)
	fmt.Fprintf(a.out, "Status:  %s\n", s.Status)
	fmt.Fprintf(a.out, "Created: %s\n", s.CreatedAt.Local().Format("2006-01-02 15:04"))

	done := make(map[string]bool, len(s.Completed))
	for _, c := range s.Completed {
		done[c] = true
	}
	for _, t := range s.Tasks {
		mark := "[ ]"
		if done[t] {
			mark = color.New(color.FgGreen).Sprint("[x]")
		}
		fmt.Fprintf(a.out, "  %s %s\n", mark, t)
	}

	if s.Status == primary.SessionStatusFinished && s.CompletionScore != nil {
		fmt.Fprintf(a.out, "Finished by %s with %d%% complete\n", s.FinishedBy, *s.CompletionScore)
	}
	fmt.Fprintln(a.out)
}
