package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"

	"basegraph.app/forum/internal/http/middleware"
	"github.com/gin-gonic/gin"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.opentelemetry.io/otel/trace"
)

var _ = Describe("Recovery", func() {
	It("turns a panic into a 500", func() {
		r := gin.New()
		r.Use(middleware.Recovery())
		r.GET("/boom", func(*gin.Context) { panic("kaboom") })

		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/boom", nil))

		Expect(rec.Code).To(Equal(http.StatusInternalServerError))
		Expect(rec.Body.String()).To(ContainSubstring("internal server error"))
	})
})

var _ = Describe("TraceHeader", func() {
	var r *gin.Engine

	BeforeEach(func() {
		r = gin.New()
		r.Use(middleware.Logger(), middleware.TraceHeader("X-Trace-ID"))
		r.GET("/ok", func(c *gin.Context) { c.Status(http.StatusOK) })
	})

	It("echoes the active trace id", func() {
		traceID := trace.TraceID{0x4b, 0xf9, 0x2f, 0x35, 0x77, 0xb3, 0x4d, 0xa6, 0xa3, 0xce, 0x92, 0x9d, 0x0e, 0x0e, 0x47, 0x36}
		sc := trace.NewSpanContext(trace.SpanContextConfig{
			TraceID: traceID,
			SpanID:  trace.SpanID{0x00, 0xf0, 0x67, 0xaa, 0x0b, 0xa9, 0x02, 0xb7},
		})
		req := httptest.NewRequest(http.MethodGet, "/ok", nil)
		req = req.WithContext(trace.ContextWithSpanContext(context.Background(), sc))

		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		Expect(rec.Code).To(Equal(http.StatusOK))
		Expect(rec.Header().Get("X-Trace-ID")).To(Equal(traceID.String()))
	})

	It("sets nothing without a trace", func() {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ok", nil))

		Expect(rec.Header().Get("X-Trace-ID")).To(BeEmpty())
	})
})
