package app

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/RobotsBuildingEducation/life-assistant-sub000/internal/ports/secondary"
)

// ============================================================================
// Shared mocks
// ============================================================================

// fixedClock is a settable clock for deterministic tests.
type fixedClock struct {
	now time.Time
}

func (c *fixedClock) Now() time.Time { return c.now }

var t0 = time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)

// mockUserRepository implements secondary.UserRepository for testing.
type mockUserRepository struct {
	users   map[string]*secondary.UserRecord
	listErr error
	corrupt []string // user IDs reported as undecodable rows by List
}

func newMockUserRepository() *mockUserRepository {
	return &mockUserRepository{users: make(map[string]*secondary.UserRecord)}
}

func (m *mockUserRepository) add(id, token string) {
	m.users[id] = &secondary.UserRecord{ID: id, PushToken: token, CreatedAt: t0, UpdatedAt: t0}
}

func (m *mockUserRepository) Create(ctx context.Context, user *secondary.UserRecord) error {
	m.users[user.ID] = user
	return nil
}

func (m *mockUserRepository) GetByID(ctx context.Context, id string) (*secondary.UserRecord, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, fmt.Errorf("user %s %w", id, secondary.ErrNotFound)
}

func (m *mockUserRepository) Exists(ctx context.Context, id string) (bool, error) {
	_, ok := m.users[id]
	return ok, nil
}

func (m *mockUserRepository) List(ctx context.Context, filters secondary.UserFilters) ([]*secondary.UserRecord, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	var skipped []error
	for _, id := range m.corrupt {
		skipped = append(skipped, &secondary.RecordError{ID: id, Err: secondary.ErrCorruptRecord})
	}
	var result []*secondary.UserRecord
	for _, u := range m.users {
		if filters.WithPushToken && u.PushToken == "" {
			continue
		}
		result = append(result, u)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, errors.Join(skipped...)
}

func (m *mockUserRepository) UpdateProfile(ctx context.Context, user *secondary.UserRecord) error {
	existing, ok := m.users[user.ID]
	if !ok {
		return fmt.Errorf("user %s %w", user.ID, secondary.ErrNotFound)
	}
	if user.DisplayName != "" {
		existing.DisplayName = user.DisplayName
	}
	if user.Goals != "" {
		existing.Goals = user.Goals
	}
	if user.Diet != "" {
		existing.Diet = user.Diet
	}
	if user.Responsibilities != "" {
		existing.Responsibilities = user.Responsibilities
	}
	if user.Finances != "" {
		existing.Finances = user.Finances
	}
	existing.UpdatedAt = user.UpdatedAt
	return nil
}

func (m *mockUserRepository) SetPushToken(ctx context.Context, id, token string, at time.Time) error {
	u, ok := m.users[id]
	if !ok {
		return fmt.Errorf("user %s %w", id, secondary.ErrNotFound)
	}
	u.PushToken = token
	u.UpdatedAt = at
	return nil
}

// mockSessionRepository implements secondary.SessionRepository for testing.
// MarkFinished mirrors the conditional write of the sqlite adapter.
type mockSessionRepository struct {
	sessions       map[string]*secondary.SessionRecord
	nextID         int
	listExpiredErr map[string]error    // userID -> error
	finishErr      map[string]error    // sessionID -> error
	corrupt        map[string][]string // userID -> session IDs reported as undecodable rows
}

func newMockSessionRepository() *mockSessionRepository {
	return &mockSessionRepository{
		sessions:       make(map[string]*secondary.SessionRecord),
		listExpiredErr: make(map[string]error),
		finishErr:      make(map[string]error),
		corrupt:        make(map[string][]string),
	}
}

func (m *mockSessionRepository) add(id, userID string, tasks, completed []string, createdAt time.Time) {
	m.sessions[id] = &secondary.SessionRecord{
		ID:        id,
		UserID:    userID,
		Tasks:     tasks,
		Completed: completed,
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}
}

func (m *mockSessionRepository) Create(ctx context.Context, session *secondary.SessionRecord) error {
	m.sessions[session.ID] = session
	return nil
}

func (m *mockSessionRepository) GetByID(ctx context.Context, id string) (*secondary.SessionRecord, error) {
	if s, ok := m.sessions[id]; ok {
		copied := *s
		return &copied, nil
	}
	return nil, fmt.Errorf("memory %s %w", id, secondary.ErrNotFound)
}

func (m *mockSessionRepository) List(ctx context.Context, filters secondary.SessionFilters) ([]*secondary.SessionRecord, error) {
	var result []*secondary.SessionRecord
	for _, s := range m.sortedSessions() {
		if filters.UserID != "" && s.UserID != filters.UserID {
			continue
		}
		if filters.Finished != nil && s.Finished != *filters.Finished {
			continue
		}
		result = append(result, s)
	}
	return result, nil
}

func (m *mockSessionRepository) ListExpired(ctx context.Context, userID string, cutoff time.Time) ([]*secondary.SessionRecord, error) {
	if err := m.listExpiredErr[userID]; err != nil {
		return nil, err
	}
	var skipped []error
	for _, id := range m.corrupt[userID] {
		skipped = append(skipped, &secondary.RecordError{ID: id, Err: secondary.ErrCorruptRecord})
	}
	var result []*secondary.SessionRecord
	for _, s := range m.sortedSessions() {
		if s.UserID == userID && !s.Finished && !s.CreatedAt.After(cutoff) {
			result = append(result, s)
		}
	}
	return result, errors.Join(skipped...)
}

func (m *mockSessionRepository) SetCompleted(ctx context.Context, id string, completed []string, at time.Time) error {
	s, ok := m.sessions[id]
	if !ok {
		return fmt.Errorf("memory %s %w", id, secondary.ErrNotFound)
	}
	if s.Finished {
		return fmt.Errorf("memory %s: %w", id, secondary.ErrConflict)
	}
	s.Completed = completed
	s.UpdatedAt = at
	return nil
}

func (m *mockSessionRepository) MarkFinished(ctx context.Context, update secondary.FinishUpdate) (bool, error) {
	if err := m.finishErr[update.ID]; err != nil {
		return false, err
	}
	s, ok := m.sessions[update.ID]
	if !ok {
		return false, fmt.Errorf("memory %s %w", update.ID, secondary.ErrNotFound)
	}
	if s.Finished {
		return false, nil
	}
	finishedAt := update.FinishedAt
	score := update.Score
	s.Finished = true
	s.FinishedAt = &finishedAt
	s.FinishedBy = update.FinishedBy
	s.CompletionScore = &score
	return true, nil
}

func (m *mockSessionRepository) GetNextID(ctx context.Context) (string, error) {
	m.nextID++
	return fmt.Sprintf("MEM-%03d", m.nextID), nil
}

func (m *mockSessionRepository) sortedSessions() []*secondary.SessionRecord {
	result := make([]*secondary.SessionRecord, 0, len(m.sessions))
	for _, s := range m.sessions {
		result = append(result, s)
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].CreatedAt.Before(result[j].CreatedAt)
		}
		return result[i].ID < result[j].ID
	})
	return result
}

// mockDispatcher implements secondary.PushDispatcher for testing.
type mockDispatcher struct {
	mu      sync.Mutex
	sent    []secondary.PushMessage
	failFor map[string]bool // token -> fail
}

func newMockDispatcher() *mockDispatcher {
	return &mockDispatcher{failFor: make(map[string]bool)}
}

func (m *mockDispatcher) Send(ctx context.Context, msg secondary.PushMessage) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failFor[msg.Token] {
		return fmt.Errorf("gateway rejected %s: %w", msg.Token, secondary.ErrDispatchFailed)
	}
	m.sent = append(m.sent, msg)
	return nil
}

// Ensure mocks implement the interfaces
var (
	_ secondary.UserRepository    = (*mockUserRepository)(nil)
	_ secondary.SessionRepository = (*mockSessionRepository)(nil)
	_ secondary.PushDispatcher    = (*mockDispatcher)(nil)
	_ secondary.Clock             = (*fixedClock)(nil)
)
