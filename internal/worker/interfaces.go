package worker

import (
	"context"
	"time"

	"wiw3ch.app/matchmaker/internal/model"
	"wiw3ch.app/matchmaker/internal/queue"
)

// MessageQueue is the slice of queue.RedisConsumer the worker drives.
type MessageQueue interface {
	Read(ctx context.Context) ([]queue.Message, error)
	Ack(ctx context.Context, msg queue.Message) error
	Requeue(ctx context.Context, msg queue.Message, errMsg string) error
	SendDLQ(ctx context.Context, msg queue.Message, errMsg string) error
}

// MatchGenerator mirrors service.MatchService.GenerateMatches.
type MatchGenerator interface {
	GenerateMatches(ctx context.Context, ownerID int64, limit int) ([]model.Match, error)
}

// Expirer flips stale pending rows to expired.
type Expirer interface {
	ExpireStale(ctx context.Context, now time.Time) (int64, error)
}
