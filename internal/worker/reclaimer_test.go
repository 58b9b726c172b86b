package worker_test

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/alicebob/miniredis/v2"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/redis/go-redis/v9"

	"wiw3ch.app/matchmaker/internal/model"
	"wiw3ch.app/matchmaker/internal/queue"
	"wiw3ch.app/matchmaker/internal/worker"
)

var _ = Describe("RedisReclaimer", func() {
	const (
		stream = "matchmaker:tasks"
		group  = "matchmaker-workers"
	)

	var (
		ctx       context.Context
		client    *redis.Client
		dead      *queue.RedisConsumer
		reclaimer *worker.RedisReclaimer
		handled   []queue.Message
	)

	newConsumer := func(name string) *queue.RedisConsumer {
		c, err := queue.NewRedisConsumer(client, queue.ConsumerConfig{
			Stream:      stream,
			Group:       group,
			Consumer:    name,
			DLQStream:   stream + ":dlq",
			BatchSize:   10,
			Block:       10 * time.Millisecond,
			MaxAttempts: 3,
		})
		Expect(err).NotTo(HaveOccurred())
		return c
	}

	pending := func() int64 {
		p, err := client.XPending(ctx, stream, group).Result()
		Expect(err).NotTo(HaveOccurred())
		return p.Count
	}

	BeforeEach(func() {
		ctx = context.Background()
		mr := miniredis.RunT(GinkgoT())
		client = redis.NewClient(&redis.Options{Addr: mr.Addr()})
		DeferCleanup(client.Close)

		dead = newConsumer("worker-1")
		handled = nil

		fresh := newConsumer("worker-1-reclaimer")
		reclaimer = worker.NewRedisReclaimer(client, worker.RedisReclaimerConfig{
			Stream:    stream,
			Group:     group,
			Consumer:  "worker-1-reclaimer",
			Interval:  time.Hour,
			BatchSize: 1,
		}, fresh, func(ctx context.Context, msg queue.Message) {
			handled = append(handled, msg)
			Expect(fresh.Ack(ctx, msg)).To(Succeed())
		})
	})

	enqueue := func(memberID int64) {
		producer := queue.NewRedisProducer(client, stream, slog.Default())
		Expect(producer.Enqueue(ctx, queue.Task{
			TaskType: queue.TaskTypeMatchRefresh,
			MemberID: memberID,
			Reason:   "intent_updated",
		})).To(Succeed())
	}

	It("claims entries a consumer read but never acked", func() {
		enqueue(42)
		enqueue(43)
		read, err := dead.Read(ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(read).To(HaveLen(2))
		Expect(pending()).To(Equal(int64(2)))

		// BatchSize 1 forces the cursor to advance across pages
		n, err := reclaimer.Sweep(ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(n).To(Equal(2))
		Expect(handled).To(HaveLen(2))
		Expect([]int64{handled[0].MemberID, handled[1].MemberID}).To(ConsistOf(int64(42), int64(43)))
		Expect(pending()).To(BeZero())

		n, err = reclaimer.Sweep(ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(n).To(BeZero())
	})

	It("ignores entries that were never delivered", func() {
		enqueue(42)

		n, err := reclaimer.Sweep(ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(n).To(BeZero())
		Expect(handled).To(BeEmpty())
	})

	It("acks a malformed entry without handing it on", func() {
		Expect(client.XAdd(ctx, &redis.XAddArgs{
			Stream: stream,
			Values: map[string]any{"task_type": "repo_sync", "member_id": "1"},
		}).Err()).To(Succeed())
		_, err := client.XReadGroup(ctx, &redis.XReadGroupArgs{
			Group:    group,
			Consumer: "worker-1",
			Streams:  []string{stream, ">"},
			Count:    10,
			Block:    10 * time.Millisecond,
		}).Result()
		Expect(err).NotTo(HaveOccurred())
		Expect(pending()).To(Equal(int64(1)))

		n, err := reclaimer.Sweep(ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(n).To(Equal(1))
		Expect(handled).To(BeEmpty())
		Expect(pending()).To(BeZero())
	})
})

var _ = Describe("Worker.Handle", func() {
	It("requeues a failing reclaimed message instead of leaving it pending", func() {
		q := &mockQueue{}
		generator := &mockGenerator{
			generateFn: func(context.Context, int64, int) ([]model.Match, error) {
				return nil, errors.New("llm timeout")
			},
		}
		w := worker.New(q, generator, worker.Config{MaxAttempts: 3})

		w.Handle(context.Background(), queue.Message{ID: "5-0", TaskType: queue.TaskTypeMatchRefresh, MemberID: 7, Attempt: 1})
		Expect(q.requeued).To(HaveLen(1))
		Expect(q.acked).To(BeEmpty())
	})
})
