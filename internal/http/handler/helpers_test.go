package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"time"

	"basegraph.app/forum/internal/http/handler"
	"basegraph.app/forum/internal/http/middleware"
	"basegraph.app/forum/internal/http/router"
	"basegraph.app/forum/internal/model"
	"basegraph.app/forum/internal/service"
	"github.com/gin-gonic/gin"
	. "github.com/onsi/gomega"
)

const (
	aliceSession int64 = 1001
	bobSession   int64 = 1002
)

var (
	alice = &model.User{ID: 1, Name: "alice"}
	bob   = &model.User{ID: 2, Name: "bob"}
	rails = &model.Category{ID: 10, Slug: "rails", Name: "Rails"}
)

type testDeps struct {
	auth          *mockAuthService
	issues        *mockIssueService
	replies       *mockReplyService
	guard         *mockGuard
	subscriptions *mockSubscriptionService
	notifications *mockNotificationService
	profiles      *mockProfileService
	search        *mockSearchService
}

func newTestDeps() *testDeps {
	return &testDeps{
		auth: &mockAuthService{users: map[int64]*model.User{
			aliceSession: alice,
			bobSession:   bob,
		}},
		issues:        &mockIssueService{},
		replies:       &mockReplyService{},
		guard:         &mockGuard{},
		subscriptions: &mockSubscriptionService{subscribed: map[[2]int64]bool{}},
		notifications: &mockNotificationService{},
		profiles:      &mockProfileService{},
		search:        &mockSearchService{},
	}
}

func (d *testDeps) engine() *gin.Engine {
	r := gin.New()
	requireAuth := middleware.RequireAuth(d.auth)
	optionalAuth := middleware.OptionalAuth(d.auth)
	cleaner := passthroughCleaner{}

	replyHandler := handler.NewReplyHandler(d.issues, d.replies, d.guard, cleaner)
	router.IssueRouter(
		r.Group("/issues"),
		handler.NewIssueHandler(d.issues, cleaner),
		replyHandler,
		handler.NewSubscriptionHandler(d.issues, d.subscriptions),
		requireAuth, optionalAuth,
	)
	router.ReplyRouter(r.Group("/replies", requireAuth), replyHandler)
	router.NotificationRouter(r.Group("/notifications", requireAuth), handler.NewNotificationHandler(d.notifications))
	r.GET("/profiles/:name", handler.NewProfileHandler(d.profiles).Get)
	r.GET("/search", handler.NewSearchHandler(d.search).Search)
	return r
}

// do sends a JSON request; session 0 means anonymous.
func do(r *gin.Engine, method, path string, session int64, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		Expect(json.NewEncoder(&buf).Encode(body)).To(Succeed())
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if session != 0 {
		req.Header.Set(middleware.SessionIDHeader, strconv.FormatInt(session, 10))
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func decode(rec *httptest.ResponseRecorder) map[string]any {
	var out map[string]any
	Expect(json.Unmarshal(rec.Body.Bytes(), &out)).To(Succeed())
	return out
}

func issueView(id int64, slug string, creatorID int64) *service.IssueView {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	return &service.IssueView{
		Issue: &model.Issue{
			ID:          id,
			CategoryID:  rails.ID,
			CreatorID:   creatorID,
			Title:       "How to deploy",
			Slug:        slug,
			Summary:     "How to deploy",
			Description: "details",
			CreatedAt:   now,
			UpdatedAt:   now,
		},
		Category: rails,
	}
}

// getBySlug serves a single fixed issue from the mock issue service.
func getBySlug(view *service.IssueView) func(context.Context, string, string) (*service.IssueView, error) {
	return func(_ context.Context, categorySlug, slug string) (*service.IssueView, error) {
		if categorySlug == view.Category.Slug && slug == view.Issue.Slug {
			return view, nil
		}
		return nil, service.ErrNotFound
	}
}

func newBrowserRequest(method, path string) *http.Request {
	req := httptest.NewRequest(method, path, nil)
	req.Header.Set("Accept", "text/html")
	return req
}

func serve(r *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}
