package app

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/RobotsBuildingEducation/life-assistant-sub000/internal/ports/primary"
)

// blockingChoreService blocks its first NextChore call until cancelled.
type blockingChoreService struct {
	primary.ChoreService
	calls   atomic.Int32
	started chan struct{}
	result  *primary.DueChore
}

func (s *blockingChoreService) NextChore(ctx context.Context, userID string) (*primary.DueChore, error) {
	if s.calls.Add(1) == 1 {
		close(s.started)
		<-ctx.Done()
		// A slow backend may still answer after cancellation
		return &primary.DueChore{Chore: &primary.Chore{Name: "stale"}}, nil
	}
	return s.result, nil
}

func TestNextChoreLoader_LastFetchWins(t *testing.T) {
	svc := &blockingChoreService{
		started: make(chan struct{}),
		result:  &primary.DueChore{Chore: &primary.Chore{Name: "fresh"}},
	}
	loader := NewNextChoreLoader(svc)

	type outcome struct {
		due *primary.DueChore
		err error
	}
	first := make(chan outcome, 1)
	go func() {
		due, err := loader.Load(context.Background(), "npub-alice")
		first <- outcome{due, err}
	}()
	<-svc.started

	due, err := loader.Load(context.Background(), "npub-alice")
	if err != nil {
		t.Fatalf("second Load failed: %v", err)
	}
	if due == nil || due.Chore.Name != "fresh" {
		t.Errorf("expected fresh result, got %+v", due)
	}

	got := <-first
	if !errors.Is(got.err, ErrSuperseded) {
		t.Errorf("expected ErrSuperseded for the first load, got %v", got.err)
	}
	if got.due != nil {
		t.Errorf("expected superseded load to deliver nothing, got %+v", got.due)
	}
}

func TestNextChoreLoader_SingleLoad(t *testing.T) {
	service, _, _, _ := newTestChoreService()
	loader := NewNextChoreLoader(service)

	due, err := loader.Load(context.Background(), "npub-alice")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if due != nil {
		t.Errorf("expected no chore for a user without chores, got %+v", due)
	}
}
