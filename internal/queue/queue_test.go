package queue_test

import (
	"context"
	"time"

	"github.com/alicebob/miniredis/v2"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/redis/go-redis/v9"

	"basegraph.app/forum/internal/queue"
)

var _ = Describe("Redis stream", func() {
	var (
		ctx      context.Context
		mr       *miniredis.Miniredis
		client   *redis.Client
		producer queue.Producer
		consumer *queue.RedisConsumer
	)

	BeforeEach(func() {
		ctx = context.Background()
		mr = miniredis.RunT(GinkgoT())
		client = redis.NewClient(&redis.Options{Addr: mr.Addr()})
		DeferCleanup(client.Close)

		producer = queue.NewRedisProducer(client, "forum_events", nil)

		var err error
		consumer, err = queue.NewRedisConsumer(ctx, client, queue.ConsumerConfig{
			Stream:      "forum_events",
			Group:       "forum_notifications",
			Consumer:    "test",
			DLQStream:   "forum_events_dlq",
			BatchSize:   10,
			Block:       10 * time.Millisecond,
			MaxAttempts: 3,
		})
		Expect(err).NotTo(HaveOccurred())
	})

	It("tolerates an existing consumer group", func() {
		_, err := queue.NewRedisConsumer(ctx, client, queue.ConsumerConfig{
			Stream: "forum_events",
			Group:  "forum_notifications",
		})
		Expect(err).NotTo(HaveOccurred())
	})

	It("delivers a reply_created event with all fields", func() {
		msg := queue.ReplyCreated(11, 22, 33)
		trace := "4bf92f3577b34da6a3ce929d0e0e4736"
		msg.TraceID = &trace
		Expect(producer.Enqueue(ctx, msg)).To(Succeed())

		messages, err := consumer.Read(ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(messages).To(HaveLen(1))

		got := messages[0]
		Expect(got.EventType).To(Equal(queue.EventTypeReplyCreated))
		Expect(got.ReplyID).To(Equal(int64(11)))
		Expect(got.IssueID).To(Equal(int64(22)))
		Expect(got.AuthorID).To(Equal(int64(33)))
		Expect(got.Attempt).To(Equal(1))
		Expect(got.TraceID).To(HaveValue(Equal(trace)))
	})

	It("returns an empty batch when nothing is pending", func() {
		messages, err := consumer.Read(ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(messages).To(BeEmpty())
	})

	It("requeues with an incremented attempt", func() {
		Expect(producer.Enqueue(ctx, queue.ReplyCreated(1, 2, 3))).To(Succeed())
		messages, err := consumer.Read(ctx)
		Expect(err).NotTo(HaveOccurred())

		Expect(consumer.Requeue(ctx, messages[0], "db down")).To(Succeed())

		retried, err := consumer.Read(ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(retried).To(HaveLen(1))
		Expect(retried[0].Attempt).To(Equal(2))
		Expect(retried[0].Raw.Values).To(HaveKeyWithValue("last_error", "db down"))
	})

	It("moves a message to the dead letter stream", func() {
		Expect(producer.Enqueue(ctx, queue.ReplyCreated(1, 2, 3))).To(Succeed())
		messages, err := consumer.Read(ctx)
		Expect(err).NotTo(HaveOccurred())

		Expect(consumer.SendDLQ(ctx, messages[0], "gave up")).To(Succeed())

		dead, err := client.XRange(ctx, "forum_events_dlq", "-", "+").Result()
		Expect(err).NotTo(HaveOccurred())
		Expect(dead).To(HaveLen(1))
		Expect(dead[0].Values).To(HaveKeyWithValue("error", "gave up"))
		Expect(dead[0].Values).To(HaveKeyWithValue("reply_id", "1"))

		pending, err := client.XPending(ctx, "forum_events", "forum_notifications").Result()
		Expect(err).NotTo(HaveOccurred())
		Expect(pending.Count).To(BeZero())
	})

	It("acks and skips malformed entries", func() {
		Expect(client.XAdd(ctx, &redis.XAddArgs{
			Stream: "forum_events",
			Values: map[string]any{"event_type": "reply_created", "reply_id": "nope"},
		}).Err()).To(Succeed())

		messages, err := consumer.Read(ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(messages).To(BeEmpty())

		pending, err := client.XPending(ctx, "forum_events", "forum_notifications").Result()
		Expect(err).NotTo(HaveOccurred())
		Expect(pending.Count).To(BeZero())
	})
})

var _ = Describe("ParseMessage", func() {
	DescribeTable("rejects bad entries",
		func(values map[string]any, wantErr string) {
			_, err := queue.ParseMessage(redis.XMessage{ID: "1-0", Values: values})
			Expect(err).To(MatchError(ContainSubstring(wantErr)))
		},
		Entry("missing event type", map[string]any{"reply_id": "1"}, "missing event_type"),
		Entry("unknown event type", map[string]any{"event_type": "issue_burned"}, "unknown event_type"),
		Entry("missing reply id", map[string]any{"event_type": "reply_created", "issue_id": "1", "author_id": "1"}, "missing reply_id"),
		Entry("bad attempt", map[string]any{"event_type": "reply_created", "reply_id": "1", "issue_id": "1", "author_id": "1", "attempt": "x"}, "parsing attempt"),
	)

	It("defaults the attempt to 1", func() {
		msg, err := queue.ParseMessage(redis.XMessage{ID: "1-0", Values: map[string]any{
			"event_type": "reply_created", "reply_id": "1", "issue_id": "2", "author_id": "3",
		}})
		Expect(err).NotTo(HaveOccurred())
		Expect(msg.Attempt).To(Equal(1))
		Expect(msg.TraceID).To(BeNil())
	})
})
