package worker

import (
	"context"
	"log/slog"
	"time"

	"github.com/gufengmap/explore-engine/internal/storage"
)

// Sweeper walks all sessions on an interval, marking overdue limited-time
// tasks as expired and removing dynamic tasks whose window has passed.
type Sweeper struct {
	storage  storage.Storage
	interval time.Duration
	logger   *slog.Logger
}

func NewSweeper(storage storage.Storage, interval time.Duration, logger *slog.Logger) *Sweeper {
	return &Sweeper{
		storage:  storage,
		interval: interval,
		logger:   logger,
	}
}

// Run blocks until ctx is cancelled, sweeping once per interval.
func (s *Sweeper) Run(ctx context.Context) {
	s.logger.Info("Task sweeper started", "interval", s.interval)
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("Task sweeper stopped")
			return
		case <-ticker.C:
			s.SweepOnce(ctx, time.Now().UTC())
		}
	}
}

// SweepOnce walks every stored session once. A failing session is logged
// and skipped so one bad record cannot stall the sweep.
func (s *Sweeper) SweepOnce(ctx context.Context, now time.Time) {
	ids, err := s.storage.ListSessionIDs(ctx)
	if err != nil {
		s.logger.Error("Sweep failed to list sessions", "error", err)
		return
	}

	for _, id := range ids {
		gs, err := s.storage.LoadGameState(ctx, id)
		if err != nil {
			s.logger.Error("Sweep failed to load session", "session_id", id, "error", err)
			continue
		}
		if gs == nil {
			continue
		}

		expired := gs.CheckLimitedTimeTasks(now)
		removed := gs.RemoveExpiredDynamicTasks(now)
		if expired == 0 && removed == 0 {
			continue
		}

		gs.UpdatedAt = now
		if err := s.storage.SaveGameState(ctx, id, gs); err != nil {
			s.logger.Error("Sweep failed to save session", "session_id", id, "error", err)
			continue
		}
		s.logger.Info("Swept session", "session_id", id, "expired", expired, "removed", removed)
	}
}
