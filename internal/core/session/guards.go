package session

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrEmptyTaskList   = errors.New("task list is empty")
	ErrInvalidTaskList = errors.New("invalid task list")
	ErrSessionFinished = errors.New("session is finished")
	ErrUnknownTask     = errors.New("task not in session")
	ErrOwnerNotFound   = errors.New("owner not found")
)

// GuardResult represents the outcome of a guard evaluation.
type GuardResult struct {
	Allowed bool
	Reason  string
	Cause   error // sentinel matched by errors.Is on the converted error
}

// Error converts the guard result to an error if not allowed.
func (r GuardResult) Error() error {
	if r.Allowed {
		return nil
	}
	if r.Cause == nil {
		return fmt.Errorf("%s", r.Reason)
	}
	return fmt.Errorf("%w: %s", r.Cause, r.Reason)
}

// StartSessionContext provides context for session creation guards.
type StartSessionContext struct {
	OwnerID     string
	OwnerExists bool
	Tasks       []string
}

// ToggleTaskContext provides context for task toggle guards.
type ToggleTaskContext struct {
	SessionID string
	Finished  bool
	Task      string
	Tasks     []string
}

// CanStartSession evaluates whether a new session can be created.
// Rules:
// - Owner must exist
// - At least one task
// - No blank or duplicate tasks (tasks are toggled by value)
func CanStartSession(ctx StartSessionContext) GuardResult {
	if !ctx.OwnerExists {
		return GuardResult{
			Reason: fmt.Sprintf("user %s not found", ctx.OwnerID),
			Cause:  ErrOwnerNotFound,
		}
	}

	if len(ctx.Tasks) == 0 {
		return GuardResult{
			Reason: "a session needs at least one task",
			Cause:  ErrEmptyTaskList,
		}
	}

	seen := make(map[string]bool, len(ctx.Tasks))
	for i, task := range ctx.Tasks {
		if strings.TrimSpace(task) == "" {
			return GuardResult{
				Reason: fmt.Sprintf("task %d is blank", i+1),
				Cause:  ErrInvalidTaskList,
			}
		}
		if seen[task] {
			return GuardResult{
				Reason: fmt.Sprintf("task %q appears more than once", task),
				Cause:  ErrInvalidTaskList,
			}
		}
		seen[task] = true
	}

	return GuardResult{Allowed: true}
}

// CanToggleTask evaluates whether a task's completion can be toggled.
// Rules:
// - Session must not be finished
// - Task must belong to the session
func CanToggleTask(ctx ToggleTaskContext) GuardResult {
	if ctx.Finished {
		return GuardResult{
			Reason: fmt.Sprintf("session %s is already finished", ctx.SessionID),
			Cause:  ErrSessionFinished,
		}
	}

	for _, t := range ctx.Tasks {
		if t == ctx.Task {
			return GuardResult{Allowed: true}
		}
	}

	return GuardResult{
		Reason: fmt.Sprintf("task %q is not part of session %s", ctx.Task, ctx.SessionID),
		Cause:  ErrUnknownTask,
	}
}
