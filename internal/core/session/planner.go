package session

import (
	"fmt"
	"time"

	"github.com/RobotsBuildingEducation/life-assistant-sub000/internal/core/effects"
)

// ExpiryInput contains pre-fetched data for one session considered by the sweep.
// All values must be gathered by the caller - no I/O in the planner.
type ExpiryInput struct {
	SessionID string
	OwnerID   string
	PushToken string
	Tasks     []string
	Completed []string
	Finished  bool
	CreatedAt time.Time
	Now       time.Time
	Threshold time.Duration
}

// FinishOp is the persistence payload of an expiry.
type FinishOp struct {
	SessionID  string
	FinishedAt time.Time
	Score      int
	FinishedBy string
}

// ExpiryPlan describes what the sweep does with one session.
// Effects are ordered: the notification precedes the finish write.
type ExpiryPlan struct {
	Expire  bool
	Reason  string // why the session is skipped, when Expire is false
	Score   int
	Effects []effects.Effect
}

// NotificationTitle is the push title sent for an expired session.
const NotificationTitle = "Your task list wrapped up"

// NotificationBody renders the push body for an expired session.
func NotificationBody(score int) string {
	return fmt.Sprintf("Your task list closed at %d%% complete. Start a fresh one when you're ready.", score)
}

// PlanExpiry decides whether a session expires and, if so, the effects to run.
func PlanExpiry(in ExpiryInput) ExpiryPlan {
	if in.Finished {
		return ExpiryPlan{Reason: fmt.Sprintf("session %s is already finished", in.SessionID)}
	}
	if in.PushToken == "" {
		return ExpiryPlan{Reason: fmt.Sprintf("user %s has no push destination", in.OwnerID)}
	}
	if !IsExpired(in.CreatedAt, in.Now, in.Threshold) {
		return ExpiryPlan{Reason: fmt.Sprintf("session %s is younger than %s", in.SessionID, in.Threshold)}
	}

	score := ScoreFor(in.Tasks, in.Completed)

	return ExpiryPlan{
		Expire: true,
		Score:  score,
		Effects: []effects.Effect{
			effects.NotifyEffect{
				Token: in.PushToken,
				Title: NotificationTitle,
				Body:  NotificationBody(score),
			},
			effects.PersistEffect{
				Entity:    "memory",
				Operation: "finish",
				Data: FinishOp{
					SessionID:  in.SessionID,
					FinishedAt: in.Now,
					Score:      score,
					FinishedBy: FinishedBySweep,
				},
			},
		},
	}
}

// PlanUserFinish returns the finish payload when the owner's toggle
// completed the last task, or nil if the session stays active.
func PlanUserFinish(sessionID string, tasks, completed []string, now time.Time) *FinishOp {
	if !AllCompleted(tasks, completed) {
		return nil
	}
	return &FinishOp{
		SessionID:  sessionID,
		FinishedAt: now,
		Score:      ScoreFor(tasks, completed),
		FinishedBy: FinishedByUser,
	}
}
