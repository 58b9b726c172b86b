package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"wiw3ch.app/matchmaker/common/logger"
	"wiw3ch.app/matchmaker/internal/queue"
	"wiw3ch.app/matchmaker/internal/service"
)

type Config struct {
	MaxAttempts int
	// MatchLimit is passed to GenerateMatches. Zero uses the service default.
	MatchLimit int
}

type Worker struct {
	queue     MessageQueue
	generator MatchGenerator
	cfg       Config

	stopCh    chan struct{}
	stoppedCh chan struct{}
}

func New(q MessageQueue, generator MatchGenerator, cfg Config) *Worker {
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 1
	}
	return &Worker{
		queue:     q,
		generator: generator,
		cfg:       cfg,
		stopCh:    make(chan struct{}),
		stoppedCh: make(chan struct{}),
	}
}

func (w *Worker) Run(ctx context.Context) error {
	defer close(w.stoppedCh)

	ctx = logger.WithLogFields(ctx, logger.LogFields{
		Component: "matchmaker.worker",
	})
	slog.InfoContext(ctx, "worker started")

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-w.stopCh:
			slog.InfoContext(ctx, "worker stopping")
			return nil
		default:
			if err := w.processOneBatch(ctx); err != nil {
				slog.ErrorContext(ctx, "batch processing error", "error", err)
				select {
				case <-ctx.Done():
				case <-w.stopCh:
				case <-time.After(time.Second):
				}
			}
		}
	}
}

func (w *Worker) Stop() {
	close(w.stopCh)
	<-w.stoppedCh
}

func (w *Worker) processOneBatch(ctx context.Context) error {
	messages, err := w.queue.Read(ctx)
	if err != nil {
		return fmt.Errorf("reading from stream: %w", err)
	}

	for _, msg := range messages {
		w.Handle(ctx, msg)
	}

	return nil
}

// Handle processes msg and routes a failure to requeue or the DLQ.
// The reclaimer uses it for messages taken over from dead consumers.
func (w *Worker) Handle(ctx context.Context, msg queue.Message) {
	if err := w.processMessageSafe(ctx, msg); err != nil {
		slog.ErrorContext(ctx, "message processing failed",
			"error", err,
			"message_id", msg.ID,
			"member_id", msg.MemberID)
		w.handleFailedMessage(ctx, msg, err)
	}
}

func (w *Worker) processMessageSafe(ctx context.Context, msg queue.Message) (err error) {
	defer func() {
		if r := recover(); r != nil {
			slog.ErrorContext(ctx, "panic recovered in message processing",
				"panic", r,
				"message_id", msg.ID,
				"member_id", msg.MemberID)
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return w.ProcessMessage(ctx, msg)
}

// ProcessMessage runs one match_refresh task and acks it on success.
func (w *Worker) ProcessMessage(ctx context.Context, msg queue.Message) error {
	msgID := msg.ID
	taskType := string(msg.TaskType)
	ctx = logger.WithLogFields(ctx, logger.LogFields{
		MemberID:  &msg.MemberID,
		IntentID:  msg.IntentID,
		MessageID: &msgID,
		TaskType:  &taskType,
	})

	sc := logger.StartSpanFromTraceID(ctx, msg.TraceID, "worker.match_refresh")
	defer sc.End()
	ctx = sc.Context()
	sc.Span().SetAttributes(
		attribute.Int64("member.id", msg.MemberID),
		attribute.Int("message.attempt", msg.Attempt),
	)

	slog.InfoContext(ctx, "processing message",
		"reason", msg.Reason,
		"attempt", msg.Attempt)

	start := time.Now()
	created, err := w.generator.GenerateMatches(ctx, msg.MemberID, w.cfg.MatchLimit)
	switch {
	case err == nil:
		slog.InfoContext(ctx, "match refresh completed",
			"created", len(created),
			"duration_ms", time.Since(start).Milliseconds())
	case errors.Is(err, service.ErrNoEligibleIntent), errors.Is(err, service.ErrMemberNotFound):
		// The intent was paused, withdrawn or re-analyzed into failure after enqueue.
		slog.InfoContext(ctx, "member no longer eligible, dropping task", "error", err)
	default:
		sc.RecordError(err)
		return fmt.Errorf("generating matches: %w", err)
	}

	if err := w.queue.Ack(ctx, msg); err != nil {
		// reclaimer will pick it up again, regeneration is idempotent per pair
		slog.WarnContext(ctx, "failed to ACK message", "error", err)
	}
	return nil
}

func (w *Worker) handleFailedMessage(ctx context.Context, msg queue.Message, err error) {
	if msg.Attempt >= w.cfg.MaxAttempts {
		slog.ErrorContext(ctx, "max attempts reached, sending to DLQ",
			"message_id", msg.ID,
			"member_id", msg.MemberID,
			"attempts", msg.Attempt)
		if dlqErr := w.queue.SendDLQ(ctx, msg, err.Error()); dlqErr != nil {
			slog.ErrorContext(ctx, "failed to send to DLQ", "error", dlqErr)
		}
		return
	}

	slog.WarnContext(ctx, "requeuing failed message",
		"message_id", msg.ID,
		"member_id", msg.MemberID,
		"attempt", msg.Attempt)
	if requeueErr := w.queue.Requeue(ctx, msg, err.Error()); requeueErr != nil {
		slog.ErrorContext(ctx, "failed to requeue message", "error", requeueErr)
	}
}
