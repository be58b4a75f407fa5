package app

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"testing"
	"time"

	"github.com/RobotsBuildingEducation/life-assistant-sub000/internal/ports/secondary"
)

type sweepFixture struct {
	users      *mockUserRepository
	sessions   *mockSessionRepository
	dispatcher *mockDispatcher
	clock      *fixedClock
	logs       *bytes.Buffer
	service    *SweepServiceImpl
}

func newSweepFixture() *sweepFixture {
	f := &sweepFixture{
		users:      newMockUserRepository(),
		sessions:   newMockSessionRepository(),
		dispatcher: newMockDispatcher(),
		clock:      &fixedClock{now: t0.Add(48 * time.Hour)},
		logs:       &bytes.Buffer{},
	}
	logger := log.New(f.logs, "", 0)
	executor := NewEffectExecutor(f.dispatcher, f.sessions, logger)
	f.service = NewSweepService(f.users, f.sessions, executor, f.clock, 0, logger)
	f.service.newRunID = func() string { return "run-1" }
	return f
}

func (f *sweepFixture) ago(d time.Duration) time.Time {
	return f.clock.now.Add(-d)
}

func TestRunSweep_ExpiresStaleSession(t *testing.T) {
	f := newSweepFixture()
	f.users.add("npub-alice", "tok-alice")
	f.sessions.add("MEM-001", "npub-alice", []string{"a", "b", "c", "d"}, []string{"a", "b"}, f.ago(17*time.Hour))

	report, err := f.service.RunSweep(context.Background())
	if err != nil {
		t.Fatalf("RunSweep failed: %v", err)
	}

	if len(f.dispatcher.sent) != 1 {
		t.Fatalf("expected 1 notification, got %d", len(f.dispatcher.sent))
	}
	msg := f.dispatcher.sent[0]
	if msg.Token != "tok-alice" {
		t.Errorf("expected token 'tok-alice', got '%s'", msg.Token)
	}
	if !strings.Contains(msg.Body, "50%") {
		t.Errorf("expected body to contain '50%%', got %q", msg.Body)
	}

	s := f.sessions.sessions["MEM-001"]
	if !s.Finished {
		t.Fatal("expected session to be finished")
	}
	if s.CompletionScore == nil || *s.CompletionScore != 50 {
		t.Errorf("expected score 50, got %v", s.CompletionScore)
	}
	if s.FinishedAt == nil || !s.FinishedAt.Equal(f.clock.now) {
		t.Errorf("expected finishedAt %v, got %v", f.clock.now, s.FinishedAt)
	}
	if s.FinishedBy != "sweep" {
		t.Errorf("expected finished_by 'sweep', got '%s'", s.FinishedBy)
	}

	if report.RunID != "run-1" || report.UsersScanned != 1 || report.SessionsExpired != 1 || report.NotificationsSent != 1 {
		t.Errorf("unexpected report %+v", report)
	}
	if !report.Cutoff.Equal(f.ago(16 * time.Hour)) {
		t.Errorf("expected cutoff %v, got %v", f.ago(16*time.Hour), report.Cutoff)
	}
}

func TestRunSweep_AgeBoundary(t *testing.T) {
	tests := []struct {
		name       string
		age        time.Duration
		wantExpire bool
	}{
		{"fifteen hours", 15 * time.Hour, false},
		{"just under threshold", 16*time.Hour - time.Second, false},
		{"exactly at threshold", 16 * time.Hour, true},
		{"seventeen hours", 17 * time.Hour, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newSweepFixture()
			f.users.add("npub-alice", "tok-alice")
			f.sessions.add("MEM-001", "npub-alice", []string{"a"}, nil, f.ago(tt.age))

			if _, err := f.service.RunSweep(context.Background()); err != nil {
				t.Fatalf("RunSweep failed: %v", err)
			}

			s := f.sessions.sessions["MEM-001"]
			if s.Finished != tt.wantExpire {
				t.Errorf("expected finished=%v, got %v", tt.wantExpire, s.Finished)
			}
			if tt.wantExpire != (len(f.dispatcher.sent) == 1) {
				t.Errorf("expected notification only for expired session, sent %d", len(f.dispatcher.sent))
			}
		})
	}
}

func TestRunSweep_SkipsUsersWithoutPushToken(t *testing.T) {
	f := newSweepFixture()
	f.users.add("npub-silent", "")
	f.sessions.add("MEM-001", "npub-silent", []string{"a"}, nil, f.ago(20*time.Hour))

	report, err := f.service.RunSweep(context.Background())
	if err != nil {
		t.Fatalf("RunSweep failed: %v", err)
	}

	if report.UsersScanned != 0 {
		t.Errorf("expected no users scanned, got %d", report.UsersScanned)
	}
	if f.sessions.sessions["MEM-001"].Finished {
		t.Error("expected session of user without push token to stay open")
	}
}

func TestRunSweep_EmptySessionScoresZero(t *testing.T) {
	f := newSweepFixture()
	f.users.add("npub-alice", "tok-alice")
	f.sessions.add("MEM-001", "npub-alice", []string{}, nil, f.ago(17*time.Hour))

	if _, err := f.service.RunSweep(context.Background()); err != nil {
		t.Fatalf("RunSweep failed: %v", err)
	}

	s := f.sessions.sessions["MEM-001"]
	if s.CompletionScore == nil || *s.CompletionScore != 0 {
		t.Errorf("expected score 0, got %v", s.CompletionScore)
	}
	if !strings.Contains(f.dispatcher.sent[0].Body, "0%") {
		t.Errorf("expected body to contain '0%%', got %q", f.dispatcher.sent[0].Body)
	}
}

func TestRunSweep_SecondRunIsNoOp(t *testing.T) {
	f := newSweepFixture()
	f.users.add("npub-alice", "tok-alice")
	f.sessions.add("MEM-001", "npub-alice", []string{"a", "b"}, []string{"a"}, f.ago(17*time.Hour))

	if _, err := f.service.RunSweep(context.Background()); err != nil {
		t.Fatalf("first RunSweep failed: %v", err)
	}
	firstFinishedAt := *f.sessions.sessions["MEM-001"].FinishedAt

	f.clock.now = f.clock.now.Add(5 * time.Minute)
	report, err := f.service.RunSweep(context.Background())
	if err != nil {
		t.Fatalf("second RunSweep failed: %v", err)
	}

	if report.SessionsExpired != 0 || report.NotificationsSent != 0 {
		t.Errorf("expected second run to do nothing, got %+v", report)
	}
	if len(f.dispatcher.sent) != 1 {
		t.Errorf("expected exactly 1 notification overall, got %d", len(f.dispatcher.sent))
	}
	if !f.sessions.sessions["MEM-001"].FinishedAt.Equal(firstFinishedAt) {
		t.Error("expected finishedAt to be unchanged by the second run")
	}
}

func TestRunSweep_DispatchFailureStillFinishes(t *testing.T) {
	f := newSweepFixture()
	f.users.add("npub-alice", "tok-bad")
	f.dispatcher.failFor["tok-bad"] = true
	f.sessions.add("MEM-001", "npub-alice", []string{"a"}, []string{"a"}, f.ago(17*time.Hour))

	report, err := f.service.RunSweep(context.Background())
	if err != nil {
		t.Fatalf("RunSweep failed: %v", err)
	}

	if report.DispatchFailures != 1 {
		t.Errorf("expected 1 dispatch failure, got %d", report.DispatchFailures)
	}
	if report.SessionsExpired != 1 {
		t.Errorf("expected session to expire anyway, got %d", report.SessionsExpired)
	}
	if !f.sessions.sessions["MEM-001"].Finished {
		t.Error("expected session to be finished despite dispatch failure")
	}
	if !strings.Contains(f.logs.String(), "MEM-001") {
		t.Errorf("expected dispatch failure to be logged, got %q", f.logs.String())
	}
}

func TestRunSweep_IsolatesFailures(t *testing.T) {
	f := newSweepFixture()
	f.users.add("npub-a", "tok-a")
	f.users.add("npub-b", "tok-b")
	f.users.add("npub-c", "tok-c")
	f.sessions.add("MEM-001", "npub-a", []string{"x"}, nil, f.ago(20*time.Hour))
	f.sessions.add("MEM-002", "npub-a", []string{"x"}, nil, f.ago(19*time.Hour))
	f.sessions.add("MEM-003", "npub-b", []string{"x"}, nil, f.ago(20*time.Hour))
	f.sessions.add("MEM-004", "npub-c", []string{"x"}, nil, f.ago(20*time.Hour))

	storageDown := fmt.Errorf("disk I/O error: %w", secondary.ErrStorageUnavailable)
	f.sessions.finishErr["MEM-001"] = storageDown
	f.sessions.listExpiredErr["npub-b"] = storageDown

	report, err := f.service.RunSweep(context.Background())
	if err != nil {
		t.Fatalf("RunSweep failed: %v", err)
	}

	if report.UsersScanned != 3 {
		t.Errorf("expected 3 users scanned, got %d", report.UsersScanned)
	}
	if len(report.Failures) != 2 {
		t.Fatalf("expected 2 failures, got %d: %+v", len(report.Failures), report.Failures)
	}
	if f.sessions.sessions["MEM-001"].Finished {
		t.Error("expected MEM-001 to stay open after its write failed")
	}
	if !f.sessions.sessions["MEM-002"].Finished {
		t.Error("expected MEM-002 to finish after sibling failure")
	}
	if !f.sessions.sessions["MEM-004"].Finished {
		t.Error("expected MEM-004 to finish after another user's failure")
	}
	if report.SessionsExpired != 2 {
		t.Errorf("expected 2 sessions expired, got %d", report.SessionsExpired)
	}
}

func TestRunSweep_UserListFailure(t *testing.T) {
	f := newSweepFixture()
	f.users.listErr = fmt.Errorf("locked: %w", secondary.ErrStorageUnavailable)

	_, err := f.service.RunSweep(context.Background())
	if !errors.Is(err, secondary.ErrStorageUnavailable) {
		t.Errorf("expected ErrStorageUnavailable, got %v", err)
	}
}

func TestRunSweep_AlreadyFinishedConcurrently(t *testing.T) {
	f := newSweepFixture()
	f.users.add("npub-alice", "tok-alice")
	f.sessions.add("MEM-001", "npub-alice", []string{"a"}, nil, f.ago(17*time.Hour))

	// Another run finished the session after this run listed it
	raced := &racingSessionRepository{mockSessionRepository: f.sessions}
	executor := NewEffectExecutor(f.dispatcher, raced, log.New(f.logs, "", 0))
	service := NewSweepService(f.users, raced, executor, f.clock, 0, nil)

	report, err := service.RunSweep(context.Background())
	if err != nil {
		t.Fatalf("RunSweep failed: %v", err)
	}
	if report.SessionsExpired != 0 {
		t.Errorf("expected no session counted as expired by this run, got %d", report.SessionsExpired)
	}
	if *f.sessions.sessions["MEM-001"].CompletionScore != 99 {
		t.Error("expected the other run's finish to be preserved")
	}
}

// racingSessionRepository finishes every listed session just after listing.
type racingSessionRepository struct {
	*mockSessionRepository
}

func (r *racingSessionRepository) ListExpired(ctx context.Context, userID string, cutoff time.Time) ([]*secondary.SessionRecord, error) {
	listed, err := r.mockSessionRepository.ListExpired(ctx, userID, cutoff)
	if err != nil {
		return nil, err
	}
	snapshot := make([]*secondary.SessionRecord, len(listed))
	for i, s := range listed {
		copied := *s
		snapshot[i] = &copied
		_, _ = r.mockSessionRepository.MarkFinished(ctx, secondary.FinishUpdate{ID: s.ID, FinishedAt: cutoff, Score: 99, FinishedBy: "sweep"})
	}
	return snapshot, nil
}

func TestRunSweep_StopsOnCancelledContext(t *testing.T) {
	f := newSweepFixture()
	f.users.add("npub-alice", "tok-alice")
	f.sessions.add("MEM-001", "npub-alice", []string{"a"}, nil, f.ago(17*time.Hour))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := f.service.RunSweep(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
	if f.sessions.sessions["MEM-001"].Finished {
		t.Error("expected no work after cancellation")
	}
}

func TestRunSweep_CorruptSessionDoesNotBlockUser(t *testing.T) {
	f := newSweepFixture()
	f.users.add("npub-alice", "tok-alice")
	f.sessions.add("MEM-002", "npub-alice", []string{"a", "b"}, []string{"a"}, f.ago(20*time.Hour))
	f.sessions.corrupt["npub-alice"] = []string{"MEM-001"}

	report, err := f.service.RunSweep(context.Background())
	if err != nil {
		t.Fatalf("RunSweep failed: %v", err)
	}

	if !f.sessions.sessions["MEM-002"].Finished {
		t.Error("expected healthy session MEM-002 to be finished")
	}
	if report.SessionsExpired != 1 || report.NotificationsSent != 1 {
		t.Errorf("expected 1 expired and 1 notified, got %+v", report)
	}
	if len(report.Failures) != 1 {
		t.Fatalf("expected 1 failure, got %+v", report.Failures)
	}
	failure := report.Failures[0]
	if failure.UserID != "npub-alice" || failure.SessionID != "MEM-001" {
		t.Errorf("expected failure for MEM-001 of npub-alice, got %+v", failure)
	}
	if !strings.Contains(f.logs.String(), "corrupt record") {
		t.Errorf("expected corrupt record log line, got:\n%s", f.logs.String())
	}
	if strings.Contains(f.logs.String(), "storage unavailable") {
		t.Errorf("corrupt data must not be logged as storage unavailable:\n%s", f.logs.String())
	}
}

func TestRunSweep_CorruptUserDoesNotStopRun(t *testing.T) {
	f := newSweepFixture()
	f.users.add("npub-bob", "tok-bob")
	f.users.corrupt = []string{"npub-alice"}
	f.sessions.add("MEM-001", "npub-bob", []string{"a"}, nil, f.ago(20*time.Hour))

	report, err := f.service.RunSweep(context.Background())
	if err != nil {
		t.Fatalf("RunSweep failed: %v", err)
	}

	if !f.sessions.sessions["MEM-001"].Finished {
		t.Error("expected npub-bob's session to be finished")
	}
	if report.UsersScanned != 1 {
		t.Errorf("expected 1 user scanned, got %d", report.UsersScanned)
	}
	if len(report.Failures) != 1 || report.Failures[0].UserID != "npub-alice" {
		t.Errorf("expected one failure for npub-alice, got %+v", report.Failures)
	}
}
