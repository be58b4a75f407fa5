package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/RobotsBuildingEducation/life-assistant-sub000/internal/ctxutil"
	coresession "github.com/RobotsBuildingEducation/life-assistant-sub000/internal/core/session"
	"github.com/RobotsBuildingEducation/life-assistant-sub000/internal/ports/primary"
	"github.com/RobotsBuildingEducation/life-assistant-sub000/internal/ports/secondary"
)

// SweepServiceImpl implements the SweepService interface.
type SweepServiceImpl struct {
	userRepo    secondary.UserRepository
	sessionRepo secondary.SessionRepository
	executor    EffectExecutor
	clock       secondary.Clock
	threshold   time.Duration
	logger      *log.Logger
	newRunID    func() string
}

// NewSweepService creates a new SweepService with injected dependencies.
// A non-positive threshold falls back to the 16 hour default.
func NewSweepService(
	userRepo secondary.UserRepository,
	sessionRepo secondary.SessionRepository,
	executor EffectExecutor,
	clock secondary.Clock,
	threshold time.Duration,
	logger *log.Logger,
) *SweepServiceImpl {
	if threshold <= 0 {
		threshold = coresession.DefaultExpiryThreshold
	}
	return &SweepServiceImpl{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		executor:    executor,
		clock:       clock,
		threshold:   threshold,
		logger:      logger,
		newRunID:    uuid.NewString,
	}
}

// RunSweep expires every unfinished session older than the threshold for
// users with a push destination. Each session is notified, then finished.
func (s *SweepServiceImpl) RunSweep(ctx context.Context) (*primary.SweepReport, error) {
	ctx = ctxutil.WithActorID(ctx, ctxutil.SweepActor)
	now := s.clock.Now()

	report := &primary.SweepReport{
		RunID:     s.newRunID(),
		StartedAt: now,
		Cutoff:    coresession.Cutoff(now, s.threshold),
	}

	users, err := s.userRepo.List(ctx, secondary.UserFilters{WithPushToken: true})
	if err != nil {
		skipped, partial := secondary.SkippedRecords(err)
		if !partial {
			s.logf("sweep %s: cannot list users: %v", report.RunID, err)
			return report, fmt.Errorf("failed to list users: %w", err)
		}
		for _, rec := range skipped {
			s.fail(report, rec.ID, "", rec)
		}
	}

	for _, user := range users {
		if err := ctx.Err(); err != nil {
			s.logf("sweep %s: stopped: %v", report.RunID, err)
			return report, err
		}
		report.UsersScanned++
		s.sweepUser(ctx, user, now, report)
	}

	s.logf("sweep %s: users=%d expired=%d notified=%d dispatch_failures=%d failures=%d",
		report.RunID, report.UsersScanned, report.SessionsExpired,
		report.NotificationsSent, report.DispatchFailures, len(report.Failures))

	return report, nil
}

// sweepUser processes one user. Failures are recorded and never escape, so
// one user cannot stop the run.
func (s *SweepServiceImpl) sweepUser(ctx context.Context, user *secondary.UserRecord, now time.Time, report *primary.SweepReport) {
	sessions, err := s.sessionRepo.ListExpired(ctx, user.ID, report.Cutoff)
	if err != nil {
		// Undecodable rows cost only themselves; the rest of the user's
		// sessions are still processed.
		skipped, partial := secondary.SkippedRecords(err)
		if !partial {
			s.fail(report, user.ID, "", fmt.Errorf("failed to list sessions: %w", err))
			return
		}
		for _, rec := range skipped {
			s.fail(report, user.ID, rec.ID, rec)
		}
	}

	for _, rec := range sessions {
		plan := coresession.PlanExpiry(coresession.ExpiryInput{
			SessionID: rec.ID,
			OwnerID:   user.ID,
			PushToken: user.PushToken,
			Tasks:     rec.Tasks,
			Completed: rec.Completed,
			Finished:  rec.Finished,
			CreatedAt: rec.CreatedAt,
			Now:       now,
			Threshold: s.threshold,
		})
		if !plan.Expire {
			s.logf("sweep %s: skipping %s: %s", report.RunID, rec.ID, plan.Reason)
			continue
		}

		result, err := s.executor.Execute(ctx, plan.Effects)
		report.NotificationsSent += result.NotificationsSent
		report.SessionsExpired += result.SessionsFinished
		for _, dispatchErr := range result.DispatchErrors {
			report.DispatchFailures++
			s.logf("sweep %s: notify %s (user %s) failed: %v", report.RunID, rec.ID, user.ID, dispatchErr)
		}
		if err != nil {
			s.fail(report, user.ID, rec.ID, err)
		}
	}
}

func (s *SweepServiceImpl) fail(report *primary.SweepReport, userID, sessionID string, err error) {
	report.Failures = append(report.Failures, primary.SweepFailure{
		UserID:    userID,
		SessionID: sessionID,
		Error:     err.Error(),
	})
	kind := "error"
	switch {
	case errors.Is(err, secondary.ErrStorageUnavailable):
		kind = "storage unavailable"
	case errors.Is(err, secondary.ErrCorruptRecord):
		kind = "corrupt record"
	}
	s.logf("sweep %s: %s for user %s session %q: %v", report.RunID, kind, userID, sessionID, err)
}

func (s *SweepServiceImpl) logf(format string, args ...any) {
	if s.logger != nil {
		s.logger.Printf(format, args...)
	}
}

// Ensure SweepServiceImpl implements the interface.
var _ primary.SweepService = (*SweepServiceImpl)(nil)
