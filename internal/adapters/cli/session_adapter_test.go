package cli

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/RobotsBuildingEducation/life-assistant-sub000/internal/ports/primary"
)

// mockSessionService implements primary.SessionService for testing
type mockSessionService struct {
	startSessionFn func(ctx context.Context, req primary.StartSessionRequest) (*primary.Session, error)
	getSessionFn   func(ctx context.Context, sessionID string) (*primary.Session, error)
	listSessionsFn func(ctx context.Context, filters primary.SessionFilters) ([]*primary.Session, error)
	toggleTaskFn   func(ctx context.Context, req primary.ToggleTaskRequest) (*primary.Session, error)

	lastListFilters primary.SessionFilters
	lastToggleReq   primary.ToggleTaskRequest
}

func (m *mockSessionService) StartSession(ctx context.Context, req primary.StartSessionRequest) (*primary.Session, error) {
	if m.startSessionFn != nil {
		return m.startSessionFn(ctx, req)
	}
	return &primary.Session{ID: "MEM-001", UserID: req.UserID, Tasks: req.Tasks, Status: primary.SessionStatusActive, CreatedAt: adapterNow}, nil
}

func (m *mockSessionService) GetSession(ctx context.Context, sessionID string) (*primary.Session, error) {
	if m.getSessionFn != nil {
		return m.getSessionFn(ctx, sessionID)
	}
	return &primary.Session{ID: sessionID, Status: primary.SessionStatusActive, CreatedAt: adapterNow}, nil
}

func (m *mockSessionService) ListSessions(ctx context.Context, filters primary.SessionFilters) ([]*primary.Session, error) {
	m.lastListFilters = filters
	if m.listSessionsFn != nil {
		return m.listSessionsFn(ctx, filters)
	}
	return []*primary.Session{}, nil
}

func (m *mockSessionService) ToggleTask(ctx context.Context, req primary.ToggleTaskRequest) (*primary.Session, error) {
	m.lastToggleReq = req
	if m.toggleTaskFn != nil {
		return m.toggleTaskFn(ctx, req)
	}
	return &primary.Session{ID: req.SessionID, Status: primary.SessionStatusActive, CreatedAt: adapterNow}, nil
}

func TestSessionAdapter_Start(t *testing.T) {
	var buf bytes.Buffer
	adapter := NewSessionAdapter(&mockSessionService{}, &buf)

	if err := adapter.Start(context.Background(), "user-1", []string{"a", "b"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(buf.String(), "✓ Started session MEM-001 with 2 task(s)") {
		t.Errorf("unexpected output: %s", buf.String())
	}
}

func TestSessionAdapter_Show_Finished(t *testing.T) {
	score := 50
	mock := &mockSessionService{
		getSessionFn: func(ctx context.Context, sessionID string) (*primary.Session, error) {
			return &primary.Session{
				ID:              sessionID,
				Tasks:           []string{"a", "b", "c", "d"},
				Completed:       []string{"a", "b"},
				Status:          primary.SessionStatusFinished,
				FinishedBy:      "SWEEP",
				CompletionScore: &score,
				CreatedAt:       adapterNow,
			}, nil
		},
	}
	var buf bytes.Buffer
	adapter := NewSessionAdapter(mock, &buf)

	if err := adapter.Show(context.Background(), "MEM-001"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out := buf.String()
	for _, want := range []string{"[x] a", "[x] b", "[ ] c", "[ ] d", "Finished by SWEEP with 50% complete"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected output to contain %q, got: %s", want, out)
		}
	}
}

func TestSessionAdapter_Show_Error(t *testing.T) {
	mock := &mockSessionService{
		getSessionFn: func(ctx context.Context, sessionID string) (*primary.Session, error) {
			return nil, errors.New("session MEM-404 not found")
		},
	}
	adapter := NewSessionAdapter(mock, &bytes.Buffer{})

	err := adapter.Show(context.Background(), "MEM-404")
	if err == nil || !strings.Contains(err.Error(), "failed to get session") {
		t.Errorf("expected wrapped error, got %v", err)
	}
}

func TestSessionAdapter_List(t *testing.T) {
	mock := &mockSessionService{
		listSessionsFn: func(ctx context.Context, filters primary.SessionFilters) ([]*primary.Session, error) {
			return []*primary.Session{
				{ID: "MEM-001", Tasks: []string{"a", "b"}, Completed: []string{"a"}, Status: "active", CreatedAt: adapterNow},
			}, nil
		},
	}
	var buf bytes.Buffer
	adapter := NewSessionAdapter(mock, &buf)

	if err := adapter.List(context.Background(), "user-1", "active"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if mock.lastListFilters.UserID != "user-1" || mock.lastListFilters.Status != "active" {
		t.Errorf("unexpected filters: %+v", mock.lastListFilters)
	}
	if !strings.Contains(buf.String(), "MEM-001") || !strings.Contains(buf.String(), "1/2") {
		t.Errorf("unexpected output: %s", buf.String())
	}
}

func TestSessionAdapter_Toggle(t *testing.T) {
	mock := &mockSessionService{}
	var buf bytes.Buffer
	adapter := NewSessionAdapter(mock, &buf)

	if err := adapter.Toggle(context.Background(), "MEM-001", "a"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if mock.lastToggleReq.SessionID != "MEM-001" || mock.lastToggleReq.Task != "a" {
		t.Errorf("unexpected request: %+v", mock.lastToggleReq)
	}
}
