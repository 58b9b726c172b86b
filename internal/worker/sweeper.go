package worker

import (
	"context"
	"log/slog"
	"time"

	"wiw3ch.app/matchmaker/common/logger"
)

// Sweeper persists expiry for pending matches and introduction requests.
// Reads already relabel expired rows, so a missed sweep only delays the write.
type Sweeper struct {
	expirers map[string]Expirer
	interval time.Duration
	now      func() time.Time

	stopCh    chan struct{}
	stoppedCh chan struct{}
}

// NewSweeper runs every expirer once per interval. Keys name the expirer in logs.
func NewSweeper(interval time.Duration, expirers map[string]Expirer) *Sweeper {
	if interval <= 0 {
		interval = time.Hour
	}
	return &Sweeper{
		expirers:  expirers,
		interval:  interval,
		now:       time.Now,
		stopCh:    make(chan struct{}),
		stoppedCh: make(chan struct{}),
	}
}

func (s *Sweeper) Run(ctx context.Context) {
	ctx = logger.WithLogFields(ctx, logger.LogFields{
		Component: "matchmaker.worker.sweeper",
	})

	defer close(s.stoppedCh)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	slog.InfoContext(ctx, "sweeper started", "interval", s.interval)
	s.SweepOnce(ctx)

	for {
		select {
		case <-ctx.Done():
			return
		case <-s.stopCh:
			slog.InfoContext(ctx, "sweeper stopping")
			return
		case <-ticker.C:
			s.SweepOnce(ctx)
		}
	}
}

func (s *Sweeper) Stop() {
	close(s.stopCh)
	<-s.stoppedCh
}

// SweepOnce runs every expirer and returns rows expired per name.
// Failures are logged and do not stop the remaining expirers.
func (s *Sweeper) SweepOnce(ctx context.Context) map[string]int64 {
	now := s.now()
	counts := make(map[string]int64, len(s.expirers))
	for name, e := range s.expirers {
		n, err := e.ExpireStale(ctx, now)
		if err != nil {
			slog.ErrorContext(ctx, "expiry sweep failed", "target", name, "error", err)
			continue
		}
		counts[name] = n
	}
	slog.DebugContext(ctx, "expiry sweep completed", "counts", counts)
	return counts
}
