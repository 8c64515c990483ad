package logger

import (
	"bytes"
	"context"
	"log/slog"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.opentelemetry.io/otel/trace"

	"basegraph.app/forum/core/config"
)

var _ = Describe("LogFields", func() {
	It("merges newer non-empty values over older ones", func() {
		ctx := WithLogFields(context.Background(), LogFields{
			IssueID:   Ptr(int64(1)),
			Component: "forum.http",
		})
		ctx = WithLogFields(ctx, LogFields{ReplyID: Ptr(int64(2))})
		ctx = WithLogFields(ctx, LogFields{IssueID: Ptr(int64(3))})

		fields := GetLogFields(ctx)
		Expect(*fields.IssueID).To(Equal(int64(3)))
		Expect(*fields.ReplyID).To(Equal(int64(2)))
		Expect(fields.Component).To(Equal("forum.http"))
		Expect(fields.UserID).To(BeNil())
	})

	It("returns empty fields for a bare context", func() {
		Expect(GetLogFields(context.Background())).To(Equal(LogFields{}))
	})

	It("truncates long strings", func() {
		Expect(Truncate("abcdef", 3)).To(Equal("abc..."))
		Expect(Truncate("abc", 3)).To(Equal("abc"))
	})
})

var _ = Describe("TraceHandler", func() {
	var buf *bytes.Buffer
	var log *slog.Logger

	BeforeEach(func() {
		buf = &bytes.Buffer{}
		log = slog.New(newHandler(config.Config{Env: "test"}, buf))
	})

	It("adds context fields to records", func() {
		ctx := WithLogFields(context.Background(), LogFields{
			IssueID:   Ptr(int64(42)),
			UserID:    Ptr(int64(7)),
			EventType: Ptr("reply_created"),
			Component: "forum.worker",
		})

		log.InfoContext(ctx, "dispatched")

		out := buf.String()
		Expect(out).To(ContainSubstring("issue_id=42"))
		Expect(out).To(ContainSubstring("user_id=7"))
		Expect(out).To(ContainSubstring("event_type=reply_created"))
		Expect(out).To(ContainSubstring("component=forum.worker"))
	})

	It("adds trace and span ids when a span is active", func() {
		traceID, _ := trace.TraceIDFromHex("4bf92f3577b34da6a3ce929d0e0e4736")
		spanID, _ := trace.SpanIDFromHex("00f067aa0ba902b7")
		sc := trace.NewSpanContext(trace.SpanContextConfig{TraceID: traceID, SpanID: spanID})
		ctx := trace.ContextWithSpanContext(context.Background(), sc)

		log.InfoContext(ctx, "hello")

		Expect(buf.String()).To(ContainSubstring("trace_id=4bf92f3577b34da6a3ce929d0e0e4736"))
		Expect(buf.String()).To(ContainSubstring("span_id=00f067aa0ba902b7"))
		Expect(TraceIDFromContext(ctx)).To(Equal("4bf92f3577b34da6a3ce929d0e0e4736"))
	})

	It("logs debug records outside production and hides them in production", func() {
		slog.New(newHandler(config.Config{Env: "development"}, buf)).Debug("dev-debug")
		slog.New(newHandler(config.Config{Env: "production"}, buf)).Debug("prod-debug")

		Expect(buf.String()).To(ContainSubstring("dev-debug"))
		Expect(buf.String()).NotTo(ContainSubstring("prod-debug"))
	})
})
