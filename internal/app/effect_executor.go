// Package app contains the application layer - service implementations and effect execution.
package app

import (
	"context"
	"fmt"
	"log"

	"github.com/RobotsBuildingEducation/life-assistant-sub000/internal/core/effects"
	"github.com/RobotsBuildingEducation/life-assistant-sub000/internal/core/session"
	"github.com/RobotsBuildingEducation/life-assistant-sub000/internal/ports/secondary"
)

// EffectExecutor interprets and executes effects.
// This is the "Imperative Shell" - the only place I/O happens.
type EffectExecutor interface {
	Execute(ctx context.Context, effs []effects.Effect) (ExecutionResult, error)
}

// ExecutionResult reports what a batch of effects actually did.
type ExecutionResult struct {
	NotificationsSent int
	DispatchErrors    []error
	SessionsFinished  int
}

// DefaultEffectExecutor implements EffectExecutor with real I/O.
type DefaultEffectExecutor struct {
	dispatcher  secondary.PushDispatcher
	sessionRepo secondary.SessionRepository
	logger      *log.Logger
}

// NewEffectExecutor creates a new DefaultEffectExecutor.
func NewEffectExecutor(dispatcher secondary.PushDispatcher, sessionRepo secondary.SessionRepository, logger *log.Logger) *DefaultEffectExecutor {
	return &DefaultEffectExecutor{
		dispatcher:  dispatcher,
		sessionRepo: sessionRepo,
		logger:      logger,
	}
}

// Execute processes a slice of effects, executing each in sequence.
// A failed notification is recorded and execution continues; any other
// failure stops the batch.
func (e *DefaultEffectExecutor) Execute(ctx context.Context, effs []effects.Effect) (ExecutionResult, error) {
	var result ExecutionResult
	for _, eff := range effs {
		if err := e.executeOne(ctx, eff, &result); err != nil {
			return result, fmt.Errorf("failed to execute %s effect: %w", eff.EffectType(), err)
		}
	}
	return result, nil
}

func (e *DefaultEffectExecutor) executeOne(ctx context.Context, eff effects.Effect, result *ExecutionResult) error {
	switch typed := eff.(type) {
	case effects.NotifyEffect:
		e.executeNotify(ctx, typed, result)
		return nil
	case effects.PersistEffect:
		return e.executePersist(ctx, typed, result)
	case effects.NoEffect:
		return nil
	case effects.LogEffect:
		e.logf("[%s] %s", typed.Level, typed.Message)
		return nil
	default:
		return fmt.Errorf("unknown effect type: %T", eff)
	}
}

func (e *DefaultEffectExecutor) executeNotify(ctx context.Context, eff effects.NotifyEffect, result *ExecutionResult) {
	if e.dispatcher == nil {
		result.DispatchErrors = append(result.DispatchErrors, fmt.Errorf("no dispatcher configured: %w", secondary.ErrDispatchFailed))
		return
	}
	err := e.dispatcher.Send(ctx, secondary.PushMessage{
		Token: eff.Token,
		Title: eff.Title,
		Body:  eff.Body,
	})
	if err != nil {
		result.DispatchErrors = append(result.DispatchErrors, err)
		return
	}
	result.NotificationsSent++
}

func (e *DefaultEffectExecutor) executePersist(ctx context.Context, eff effects.PersistEffect, result *ExecutionResult) error {
	switch eff.Entity {
	case "memory":
		return e.executeMemoryOp(ctx, eff, result)
	default:
		return fmt.Errorf("unknown entity: %s", eff.Entity)
	}
}

func (e *DefaultEffectExecutor) executeMemoryOp(ctx context.Context, eff effects.PersistEffect, result *ExecutionResult) error {
	switch eff.Operation {
	case "finish":
		op, ok := eff.Data.(session.FinishOp)
		if !ok {
			return fmt.Errorf("invalid memory finish data type: %T", eff.Data)
		}
		changed, err := e.sessionRepo.MarkFinished(ctx, secondary.FinishUpdate{
			ID:         op.SessionID,
			FinishedAt: op.FinishedAt,
			Score:      op.Score,
			FinishedBy: op.FinishedBy,
		})
		if err != nil {
			return err
		}
		if changed {
			result.SessionsFinished++
		} else {
			e.logf("memory %s was already finished; left unchanged", op.SessionID)
		}
		return nil
	default:
		return fmt.Errorf("unknown memory operation: %s", eff.Operation)
	}
}

func (e *DefaultEffectExecutor) logf(format string, args ...any) {
	if e.logger != nil {
		e.logger.Printf(format, args...)
	}
}

// Ensure DefaultEffectExecutor implements the interface.
var _ EffectExecutor = (*DefaultEffectExecutor)(nil)
