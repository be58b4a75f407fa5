package cli

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/RobotsBuildingEducation/life-assistant-sub000/internal/ports/primary"
)

type mockSweepService struct {
	report *primary.SweepReport
	err    error
}

func (m *mockSweepService) RunSweep(ctx context.Context) (*primary.SweepReport, error) {
	return m.report, m.err
}

func TestSweepAdapter_Run(t *testing.T) {
	mock := &mockSweepService{report: &primary.SweepReport{
		RunID:             "run-1",
		Cutoff:            adapterNow,
		UsersScanned:      2,
		SessionsExpired:   3,
		NotificationsSent: 3,
	}}
	var buf bytes.Buffer
	adapter := NewSweepAdapter(mock, &buf)

	if err := adapter.Run(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out := buf.String()
	for _, want := range []string{"Sweep run-1", "users scanned:      2", "sessions expired:   3", "✓ Sweep complete"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected output to contain %q, got: %s", want, out)
		}
	}
	if strings.Contains(out, "dispatch failures") {
		t.Errorf("dispatch failures should be hidden when zero: %s", out)
	}
}

func TestSweepAdapter_Run_WithFailures(t *testing.T) {
	mock := &mockSweepService{report: &primary.SweepReport{
		RunID:            "run-2",
		Cutoff:           adapterNow,
		UsersScanned:     1,
		DispatchFailures: 1,
		Failures: []primary.SweepFailure{
			{UserID: "user-1", SessionID: "MEM-002", Error: "storage unavailable"},
		},
	}}
	var buf bytes.Buffer
	adapter := NewSweepAdapter(mock, &buf)

	if err := adapter.Run(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "dispatch failures: 1") {
		t.Errorf("missing dispatch failure count: %s", out)
	}
	if !strings.Contains(out, "✗ MEM-002 (user-1): storage unavailable") {
		t.Errorf("missing failure line: %s", out)
	}
	if strings.Contains(out, "Sweep complete") {
		t.Errorf("should not report clean completion: %s", out)
	}
}

func TestSweepAdapter_Run_Error(t *testing.T) {
	adapter := NewSweepAdapter(&mockSweepService{err: errors.New("storage unavailable")}, &bytes.Buffer{})

	err := adapter.Run(context.Background())
	if err == nil || !strings.Contains(err.Error(), "sweep failed") {
		t.Errorf("expected wrapped error, got %v", err)
	}
}
