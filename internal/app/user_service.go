package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/RobotsBuildingEducation/life-assistant-sub000/internal/ports/primary"
	"github.com/RobotsBuildingEducation/life-assistant-sub000/internal/ports/secondary"
)

// UserServiceImpl implements the UserService interface.
type UserServiceImpl struct {
	userRepo secondary.UserRepository
	clock    secondary.Clock
}

// NewUserService creates a new UserService with injected dependencies.
func NewUserService(userRepo secondary.UserRepository, clock secondary.Clock) *UserServiceImpl {
	return &UserServiceImpl{
		userRepo: userRepo,
		clock:    clock,
	}
}

// RegisterUser creates a profile for a public key.
func (s *UserServiceImpl) RegisterUser(ctx context.Context, req primary.RegisterUserRequest) (*primary.User, error) {
	if strings.TrimSpace(req.UserID) == "" {
		return nil, fmt.Errorf("user id is required")
	}

	exists, err := s.userRepo.Exists(ctx, req.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to check user: %w", err)
	}
	if exists {
		return nil, fmt.Errorf("user %s is already registered: %w", req.UserID, secondary.ErrConflict)
	}

	record := &secondary.UserRecord{
		ID:          req.UserID,
		DisplayName: req.DisplayName,
		CreatedAt:   s.clock.Now(),
	}
	if err := s.userRepo.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return s.GetUser(ctx, req.UserID)
}

// GetUser retrieves a user by ID.
func (s *UserServiceImpl) GetUser(ctx context.Context, userID string) (*primary.User, error) {
	record, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.recordToUser(record), nil
}

// ListUsers lists users.
func (s *UserServiceImpl) ListUsers(ctx context.Context, filters primary.UserFilters) ([]*primary.User, error) {
	records, err := s.userRepo.List(ctx, secondary.UserFilters{WithPushToken: filters.WithPushToken})
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	users := make([]*primary.User, len(records))
	for i, r := range records {
		users[i] = s.recordToUser(r)
	}
	return users, nil
}

// UpdateProfile applies the non-empty fields of req. Last write wins per field.
func (s *UserServiceImpl) UpdateProfile(ctx context.Context, req primary.UpdateProfileRequest) error {
	record := &secondary.UserRecord{
		ID:               req.UserID,
		DisplayName:      req.DisplayName,
		Goals:            req.Goals,
		Diet:             req.Diet,
		Responsibilities: req.Responsibilities,
		Finances:         req.Finances,
		UpdatedAt:        s.clock.Now(),
	}
	if err := s.userRepo.UpdateProfile(ctx, record); err != nil {
		return fmt.Errorf("failed to update profile: %w", err)
	}
	return nil
}

// SetPushToken registers the user's push destination.
func (s *UserServiceImpl) SetPushToken(ctx context.Context, userID, token string) error {
	if strings.TrimSpace(token) == "" {
		return fmt.Errorf("push token must not be empty")
	}
	if err := s.userRepo.SetPushToken(ctx, userID, token, s.clock.Now()); err != nil {
		return fmt.Errorf("failed to set push token: %w", err)
	}
	return nil
}

// ClearPushToken removes the user's push destination, taking the user out
// of the sweep.
func (s *UserServiceImpl) ClearPushToken(ctx context.Context, userID string) error {
	if err := s.userRepo.SetPushToken(ctx, userID, "", s.clock.Now()); err != nil {
		return fmt.Errorf("failed to clear push token: %w", err)
	}
	return nil
}

// Helper methods

func (s *UserServiceImpl) recordToUser(r *secondary.UserRecord) *primary.User {
	return &primary.User{
		ID:               r.ID,
		DisplayName:      r.DisplayName,
		Goals:            r.Goals,
		Diet:             r.Diet,
		Responsibilities: r.Responsibilities,
		Finances:         r.Finances,
		HasPushToken:     r.PushToken != "",
		CreatedAt:        r.CreatedAt,
	}
}

// Ensure UserServiceImpl implements the interface.
var _ primary.UserService = (*UserServiceImpl)(nil)
