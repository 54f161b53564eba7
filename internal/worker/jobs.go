package worker

import (
	"context"

	"github.com/senya/senya/internal/logger"
	"github.com/senya/senya/internal/repository"
)

// HeartRegenJob tops up every profile below the heart cap by one heart.
// Submitted periodically; replenishment stays out of the request path.
type HeartRegenJob struct {
	Profiles  repository.ProfileRepository
	HeartsCap int
}

func (j *HeartRegenJob) Name() string { return "heart_regen" }

func (j *HeartRegenJob) Run(ctx context.Context) error {
	log := logger.FromContext(ctx)

	topped, err := j.Profiles.RegenerateHearts(ctx, j.HeartsCap)
	if err != nil {
		log.Error("heart regeneration failed: %v", err)
		return err
	}
	if topped > 0 {
		log.Info("regenerated one heart for %d profiles", topped)
	}
	return nil
}

// SessionSweepJob removes expired bearer sessions.
type SessionSweepJob struct {
	Accounts repository.AccountRepository
}

func (j *SessionSweepJob) Name() string { return "session_sweep" }

func (j *SessionSweepJob) Run(ctx context.Context) error {
	return j.Accounts.DeleteExpiredSessions(ctx)
}
