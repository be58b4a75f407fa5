package session

import (
	"errors"
	"testing"
)

func TestCanStartSession(t *testing.T) {
	tests := []struct {
		name        string
		ctx         StartSessionContext
		wantAllowed bool
		wantReason  string
		wantCause   error
	}{
		{
			name:        "can start session with tasks",
			ctx:         StartSessionContext{OwnerID: "npub1alice", OwnerExists: true, Tasks: []string{"stretch", "email"}},
			wantAllowed: true,
		},
		{
			name:        "cannot start session for unknown user",
			ctx:         StartSessionContext{OwnerID: "npub1nobody", Tasks: []string{"stretch"}},
			wantAllowed: false,
			wantReason:  "user npub1nobody not found",
			wantCause:   ErrOwnerNotFound,
		},
		{
			name:        "cannot start session without tasks",
			ctx:         StartSessionContext{OwnerID: "npub1alice", OwnerExists: true},
			wantAllowed: false,
			wantReason:  "a session needs at least one task",
			wantCause:   ErrEmptyTaskList,
		},
		{
			name:        "cannot start session with blank task",
			ctx:         StartSessionContext{OwnerID: "npub1alice", OwnerExists: true, Tasks: []string{"stretch", " "}},
			wantAllowed: false,
			wantReason:  "task 2 is blank",
			wantCause:   ErrInvalidTaskList,
		},
		{
			name:        "cannot start session with duplicate task",
			ctx:         StartSessionContext{OwnerID: "npub1alice", OwnerExists: true, Tasks: []string{"stretch", "stretch"}},
			wantAllowed: false,
			wantReason:  `task "stretch" appears more than once`,
			wantCause:   ErrInvalidTaskList,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := CanStartSession(tt.ctx)
			if result.Allowed != tt.wantAllowed {
				t.Errorf("Allowed = %v, want %v", result.Allowed, tt.wantAllowed)
			}
			if !tt.wantAllowed {
				if result.Reason != tt.wantReason {
					t.Errorf("Reason = %q, want %q", result.Reason, tt.wantReason)
				}
				if !errors.Is(result.Error(), tt.wantCause) {
					t.Errorf("Error() = %v, want cause %v", result.Error(), tt.wantCause)
				}
			}
		})
	}
}

func TestCanToggleTask(t *testing.T) {
	tasks := []string{"a", "b"}

	tests := []struct {
		name        string
		ctx         ToggleTaskContext
		wantAllowed bool
		wantCause   error
	}{
		{
			name:        "can toggle known task on active session",
			ctx:         ToggleTaskContext{SessionID: "MEM-001", Task: "a", Tasks: tasks},
			wantAllowed: true,
		},
		{
			name:        "cannot toggle on finished session",
			ctx:         ToggleTaskContext{SessionID: "MEM-001", Finished: true, Task: "a", Tasks: tasks},
			wantAllowed: false,
			wantCause:   ErrSessionFinished,
		},
		{
			name:        "cannot toggle unknown task",
			ctx:         ToggleTaskContext{SessionID: "MEM-001", Task: "z", Tasks: tasks},
			wantAllowed: false,
			wantCause:   ErrUnknownTask,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := CanToggleTask(tt.ctx)
			if result.Allowed != tt.wantAllowed {
				t.Errorf("Allowed = %v, want %v", result.Allowed, tt.wantAllowed)
			}
			if !tt.wantAllowed && !errors.Is(result.Error(), tt.wantCause) {
				t.Errorf("Error() = %v, want cause %v", result.Error(), tt.wantCause)
			}
		})
	}
}
