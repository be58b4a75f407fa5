package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/RobotsBuildingEducation/life-assistant-sub000/internal/core/effects"
	coresession "github.com/RobotsBuildingEducation/life-assistant-sub000/internal/core/session"
	"github.com/RobotsBuildingEducation/life-assistant-sub000/internal/ports/primary"
	"github.com/RobotsBuildingEducation/life-assistant-sub000/internal/ports/secondary"
)

// SessionServiceImpl implements the SessionService interface.
type SessionServiceImpl struct {
	sessionRepo secondary.SessionRepository
	userRepo    secondary.UserRepository
	executor    EffectExecutor
	clock       secondary.Clock
}

// NewSessionService creates a new SessionService with injected dependencies.
func NewSessionService(sessionRepo secondary.SessionRepository, userRepo secondary.UserRepository, executor EffectExecutor, clock secondary.Clock) *SessionServiceImpl {
	return &SessionServiceImpl{
		sessionRepo: sessionRepo,
		userRepo:    userRepo,
		executor:    executor,
		clock:       clock,
	}
}

// StartSession creates a new active task list.
func (s *SessionServiceImpl) StartSession(ctx context.Context, req primary.StartSessionRequest) (*primary.Session, error) {
	exists, err := s.userRepo.Exists(ctx, req.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to check user: %w", err)
	}

	// Guard check
	guardCtx := coresession.StartSessionContext{
		OwnerID:     req.UserID,
		OwnerExists: exists,
		Tasks:       req.Tasks,
	}
	if result := coresession.CanStartSession(guardCtx); !result.Allowed {
		return nil, result.Error()
	}

	nextID, err := s.sessionRepo.GetNextID(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to generate session ID: %w", err)
	}

	record := &secondary.SessionRecord{
		ID:        nextID,
		UserID:    req.UserID,
		Tasks:     req.Tasks,
		Completed: []string{},
		CreatedAt: s.clock.Now(),
	}
	if err := s.sessionRepo.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	return s.GetSession(ctx, nextID)
}

// GetSession retrieves a session by ID.
func (s *SessionServiceImpl) GetSession(ctx context.Context, sessionID string) (*primary.Session, error) {
	record, err := s.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return s.recordToSession(record), nil
}

// ListSessions lists sessions with optional filters.
func (s *SessionServiceImpl) ListSessions(ctx context.Context, filters primary.SessionFilters) ([]*primary.Session, error) {
	repoFilters := secondary.SessionFilters{UserID: filters.UserID}

	switch filters.Status {
	case "":
	case primary.SessionStatusActive:
		finished := false
		repoFilters.Finished = &finished
	case primary.SessionStatusFinished:
		finished := true
		repoFilters.Finished = &finished
	default:
		return nil, fmt.Errorf("unknown session status %q (want %s or %s)", filters.Status, primary.SessionStatusActive, primary.SessionStatusFinished)
	}

	records, err := s.sessionRepo.List(ctx, repoFilters)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}

	sessions := make([]*primary.Session, len(records))
	for i, r := range records {
		sessions[i] = s.recordToSession(r)
	}
	return sessions, nil
}

// ToggleTask flips one task's completion. When the toggle completes the
// last task the session is finished by its owner with score 100.
func (s *SessionServiceImpl) ToggleTask(ctx context.Context, req primary.ToggleTaskRequest) (*primary.Session, error) {
	record, err := s.sessionRepo.GetByID(ctx, req.SessionID)
	if err != nil {
		return nil, err
	}

	// Guard check
	guardCtx := coresession.ToggleTaskContext{
		SessionID: record.ID,
		Finished:  record.Finished,
		Task:      req.Task,
		Tasks:     record.Tasks,
	}
	if result := coresession.CanToggleTask(guardCtx); !result.Allowed {
		return nil, result.Error()
	}

	now := s.clock.Now()
	completed := coresession.ToggleCompleted(record.Tasks, record.Completed, req.Task)

	if err := s.sessionRepo.SetCompleted(ctx, record.ID, completed, now); err != nil {
		if errors.Is(err, secondary.ErrConflict) {
			// The sweep finished the session between our read and write
			return nil, fmt.Errorf("%w: %s", coresession.ErrSessionFinished, record.ID)
		}
		return nil, fmt.Errorf("failed to update session: %w", err)
	}

	if op := coresession.PlanUserFinish(record.ID, record.Tasks, completed, now); op != nil {
		finish := []effects.Effect{effects.PersistEffect{Entity: "memory", Operation: "finish", Data: *op}}
		if _, err := s.executor.Execute(ctx, finish); err != nil {
			return nil, fmt.Errorf("failed to finish session: %w", err)
		}
	}

	return s.GetSession(ctx, record.ID)
}

// Helper methods

func (s *SessionServiceImpl) recordToSession(r *secondary.SessionRecord) *primary.Session {
	status := primary.SessionStatusActive
	if r.Finished {
		status = primary.SessionStatusFinished
	}
	completed := r.Completed
	if completed == nil {
		completed = []string{}
	}
	return &primary.Session{
		ID:              r.ID,
		UserID:          r.UserID,
		Tasks:           r.Tasks,
		Completed:       completed,
		Status:          status,
		FinishedAt:      r.FinishedAt,
		FinishedBy:      r.FinishedBy,
		CompletionScore: r.CompletionScore,
		CreatedAt:       r.CreatedAt,
	}
}

// Ensure SessionServiceImpl implements the interface.
var _ primary.SessionService = (*SessionServiceImpl)(nil)
