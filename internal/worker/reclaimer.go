package worker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"wiw3ch.app/matchmaker/common/logger"
	"wiw3ch.app/matchmaker/internal/queue"
)

// MessageHandler takes ownership of a claimed message: it acks, requeues or
// dead-letters it. Worker.Handle is the production handler.
type MessageHandler func(ctx context.Context, msg queue.Message)

type RedisReclaimerConfig struct {
	Stream    string
	Group     string
	Consumer  string
	MinIdle   time.Duration // idle time before an unacked entry is taken over
	Interval  time.Duration
	BatchSize int64 // entries per XAUTOCLAIM page
}

// RedisReclaimer takes over refresh tasks left in the group's pending list by
// a worker that crashed or stalled before acking them.
type RedisReclaimer struct {
	client *redis.Client
	cfg    RedisReclaimerConfig
	queue  MessageQueue
	handle MessageHandler

	stopCh    chan struct{}
	stoppedCh chan struct{}
}

func NewRedisReclaimer(client *redis.Client, cfg RedisReclaimerConfig, q MessageQueue, handle MessageHandler) *RedisReclaimer {
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 10
	}
	return &RedisReclaimer{
		client:    client,
		cfg:       cfg,
		queue:     q,
		handle:    handle,
		stopCh:    make(chan struct{}),
		stoppedCh: make(chan struct{}),
	}
}

// Run claims idle entries every Interval until Stop or ctx cancellation.
func (r *RedisReclaimer) Run(ctx context.Context) {
	defer close(r.stoppedCh)

	ctx = logger.WithLogFields(ctx, logger.LogFields{
		Component: "matchmaker.worker.reclaimer",
	})
	slog.InfoContext(ctx, "reclaimer started",
		"stream", r.cfg.Stream,
		"group", r.cfg.Group,
		"interval", r.cfg.Interval,
		"min_idle", r.cfg.MinIdle)

	ticker := time.NewTicker(r.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-r.stopCh:
			slog.InfoContext(ctx, "reclaimer stopping")
			return
		case <-ticker.C:
			n, err := r.Sweep(ctx)
			if err != nil {
				slog.ErrorContext(ctx, "reclaim sweep failed", "error", err, "claimed", n)
				continue
			}
			if n > 0 {
				slog.InfoContext(ctx, "reclaimed idle messages", "claimed", n)
			}
		}
	}
}

func (r *RedisReclaimer) Stop() {
	close(r.stopCh)
	<-r.stoppedCh
}

// Sweep walks the pending list once with XAUTOCLAIM and hands every claimed
// entry to the handler. It returns how many entries were claimed.
func (r *RedisReclaimer) Sweep(ctx context.Context) (int, error) {
	claimed := 0
	cursor := "0-0"
	for {
		messages, next, err := r.client.XAutoClaim(ctx, &redis.XAutoClaimArgs{
			Stream:   r.cfg.Stream,
			Group:    r.cfg.Group,
			Consumer: r.cfg.Consumer,
			MinIdle:  r.cfg.MinIdle,
			Start:    cursor,
			Count:    r.cfg.BatchSize,
		}).Result()
		if err != nil {
			return claimed, fmt.Errorf("xautoclaim from %s: %w", cursor, err)
		}

		for _, raw := range messages {
			claimed++
			r.dispatch(ctx, raw)
		}

		if next == "0-0" || next == "" || next == cursor {
			return claimed, nil
		}
		cursor = next
	}
}

func (r *RedisReclaimer) dispatch(ctx context.Context, raw redis.XMessage) {
	msgID := raw.ID
	ctx = logger.WithLogFields(ctx, logger.LogFields{MessageID: &msgID})

	msg, err := queue.ParseMessage(raw)
	if err != nil {
		// unparseable entries would be claimed forever
		slog.ErrorContext(ctx, "dropping malformed reclaimed message", "error", err)
		if ackErr := r.queue.Ack(ctx, queue.Message{ID: raw.ID, Raw: raw}); ackErr != nil {
			slog.WarnContext(ctx, "failed to ack malformed message", "error", ackErr)
		}
		return
	}

	slog.InfoContext(ctx, "handling reclaimed message",
		"member_id", msg.MemberID,
		"attempt", msg.Attempt)
	r.handle(ctx, msg)
}
