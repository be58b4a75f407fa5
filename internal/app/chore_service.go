package app

import (
	"context"
	"fmt"

	corechore "github.com/RobotsBuildingEducation/life-assistant-sub000/internal/core/chore"
	"github.com/RobotsBuildingEducation/life-assistant-sub000/internal/ports/primary"
	"github.com/RobotsBuildingEducation/life-assistant-sub000/internal/ports/secondary"
)

// ChoreServiceImpl implements the ChoreService interface.
type ChoreServiceImpl struct {
	choreRepo secondary.ChoreRepository
	userRepo  secondary.UserRepository
	clock     secondary.Clock
}

// NewChoreService creates a new ChoreService with injected dependencies.
func NewChoreService(choreRepo secondary.ChoreRepository, userRepo secondary.UserRepository, clock secondary.Clock) *ChoreServiceImpl {
	return &ChoreServiceImpl{
		choreRepo: choreRepo,
		userRepo:  userRepo,
		clock:     clock,
	}
}

// CreateChore creates a recurring chore.
func (s *ChoreServiceImpl) CreateChore(ctx context.Context, req primary.CreateChoreRequest) (*primary.Chore, error) {
	exists, err := s.userRepo.Exists(ctx, req.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to check user: %w", err)
	}

	// Guard check
	guardCtx := corechore.CreateChoreContext{
		OwnerID:      req.UserID,
		OwnerExists:  exists,
		Name:         req.Name,
		IntervalDays: req.IntervalDays,
	}
	if result := corechore.CanCreateChore(guardCtx); !result.Allowed {
		return nil, result.Error()
	}

	nextID, err := s.choreRepo.GetNextID(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to generate chore ID: %w", err)
	}

	record := &secondary.ChoreRecord{
		ID:           nextID,
		UserID:       req.UserID,
		Name:         req.Name,
		IntervalDays: req.IntervalDays,
		CreatedAt:    s.clock.Now(),
	}
	if err := s.choreRepo.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to create chore: %w", err)
	}

	created, err := s.choreRepo.GetByID(ctx, nextID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch created chore: %w", err)
	}

	return s.recordToChore(created), nil
}

// GetChore retrieves a chore by ID.
func (s *ChoreServiceImpl) GetChore(ctx context.Context, choreID string) (*primary.Chore, error) {
	record, err := s.choreRepo.GetByID(ctx, choreID)
	if err != nil {
		return nil, err
	}
	return s.recordToChore(record), nil
}

// ListChores lists a user's chores.
func (s *ChoreServiceImpl) ListChores(ctx context.Context, userID string) ([]*primary.Chore, error) {
	records, err := s.choreRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list chores: %w", err)
	}

	chores := make([]*primary.Chore, len(records))
	for i, r := range records {
		chores[i] = s.recordToChore(r)
	}
	return chores, nil
}

// NextChore fetches the user's chores and selects the one due first.
func (s *ChoreServiceImpl) NextChore(ctx context.Context, userID string) (*primary.DueChore, error) {
	records, err := s.choreRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load chores: %w", err)
	}

	now := s.clock.Now()
	candidates := make([]corechore.Chore, len(records))
	byID := make(map[string]*secondary.ChoreRecord, len(records))
	for i, r := range records {
		candidates[i] = corechore.Chore{
			ID:              r.ID,
			Name:            r.Name,
			LastCompletedAt: r.LastCompletedAt,
			IntervalDays:    r.IntervalDays,
		}
		byID[r.ID] = r
	}

	due, ok := corechore.SelectNextChore(candidates, now)
	if !ok {
		return nil, nil
	}

	return &primary.DueChore{
		Chore:     s.recordToChore(byID[due.Chore.ID]),
		NextDueAt: due.NextDueAt,
		Overdue:   corechore.IsOverdue(due, now),
	}, nil
}

// CompleteChore stamps the chore and re-runs selection over the owner's
// refreshed chores. The two steps are not atomic: if the reselection fails
// the completion has still been written.
func (s *ChoreServiceImpl) CompleteChore(ctx context.Context, choreID string) (*primary.DueChore, error) {
	record, err := s.choreRepo.GetByID(ctx, choreID)
	if err != nil {
		return nil, err
	}

	if err := s.choreRepo.SetLastCompleted(ctx, choreID, s.clock.Now()); err != nil {
		return nil, fmt.Errorf("failed to complete chore: %w", err)
	}

	return s.NextChore(ctx, record.UserID)
}

// DeleteChore removes a chore.
func (s *ChoreServiceImpl) DeleteChore(ctx context.Context, choreID string) error {
	return s.choreRepo.Delete(ctx, choreID)
}

// Helper methods

func (s *ChoreServiceImpl) recordToChore(r *secondary.ChoreRecord) *primary.Chore {
	return &primary.Chore{
		ID:              r.ID,
		UserID:          r.UserID,
		Name:            r.Name,
		IntervalDays:    r.IntervalDays,
		LastCompletedAt: r.LastCompletedAt,
		CreatedAt:       r.CreatedAt,
	}
}

// Ensure ChoreServiceImpl implements the interface.
var _ primary.ChoreService = (*ChoreServiceImpl)(nil)
