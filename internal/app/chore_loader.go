package app

import (
	"context"
	"errors"
	"sync"

	"github.com/RobotsBuildingEducation/life-assistant-sub000/internal/ports/primary"
)

// ErrSuperseded is returned by a load whose result was overtaken by a newer load.
var ErrSuperseded = errors.New("superseded by a newer load")

// NextChoreLoader serialises "what is my next chore" fetches for one view.
// Each Load cancels the load before it, and only the most recent load may
// deliver a result.
type NextChoreLoader struct {
	chores primary.ChoreService

	mu     sync.Mutex
	seq    uint64
	cancel context.CancelFunc
}

// NewNextChoreLoader creates a loader backed by the chore service.
func NewNextChoreLoader(chores primary.ChoreService) *NextChoreLoader {
	return &NextChoreLoader{chores: chores}
}

// Load fetches the user's next chore. A load that is superseded before it
// finishes returns ErrSuperseded and no chore.
func (l *NextChoreLoader) Load(ctx context.Context, userID string) (*primary.DueChore, error) {
	l.mu.Lock()
	if l.cancel != nil {
		l.cancel()
	}
	l.seq++
	seq := l.seq
	loadCtx, cancel := context.WithCancel(ctx)
	l.cancel = cancel
	l.mu.Unlock()
	defer cancel()

	due, err := l.chores.NextChore(loadCtx, userID)

	l.mu.Lock()
	latest := seq == l.seq
	l.mu.Unlock()

	if !latest {
		return nil, ErrSuperseded
	}
	return due, err
}
