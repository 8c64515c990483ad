package handler_test

import (
	"context"

	"basegraph.app/forum/internal/guard"
	"basegraph.app/forum/internal/model"
	"basegraph.app/forum/internal/queue"
	"basegraph.app/forum/internal/search"
	"basegraph.app/forum/internal/service"
)

type mockAuthService struct {
	users map[int64]*model.User // keyed by session id
}

func (m *mockAuthService) ValidateSession(_ context.Context, sessionID int64) (*model.User, *model.Session, error) {
	user, ok := m.users[sessionID]
	if !ok {
		return nil, nil, service.ErrSessionExpired
	}
	return user, &model.Session{ID: sessionID, UserID: user.ID}, nil
}

type mockIssueService struct {
	createFn        func(ctx context.Context, params service.CreateIssueParams) (*service.IssueView, error)
	getFn           func(ctx context.Context, categorySlug, slug string) (*service.IssueView, error)
	showFn          func(ctx context.Context, categorySlug, slug string, viewerID *int64) (*service.IssueView, error)
	listFn          func(ctx context.Context, params service.ListIssuesParams) ([]service.IssueView, error)
	updateFn        func(ctx context.Context, issueID, actorID int64, params service.UpdateIssueParams) (*service.IssueView, error)
	deleteFn        func(ctx context.Context, issueID, actorID int64) error
	markBestReplyFn func(ctx context.Context, issueID, replyID, actorID int64) (*service.IssueView, error)
}

func (m *mockIssueService) Create(ctx context.Context, params service.CreateIssueParams) (*service.IssueView, error) {
	if m.createFn != nil {
		return m.createFn(ctx, params)
	}
	return nil, nil
}

func (m *mockIssueService) Get(ctx context.Context, categorySlug, slug string) (*service.IssueView, error) {
	if m.getFn != nil {
		return m.getFn(ctx, categorySlug, slug)
	}
	return nil, service.ErrNotFound
}

func (m *mockIssueService) GetByID(context.Context, int64) (*service.IssueView, error) {
	return nil, service.ErrNotFound
}

func (m *mockIssueService) Show(ctx context.Context, categorySlug, slug string, viewerID *int64) (*service.IssueView, error) {
	if m.showFn != nil {
		return m.showFn(ctx, categorySlug, slug, viewerID)
	}
	return nil, service.ErrNotFound
}

func (m *mockIssueService) List(ctx context.Context, params service.ListIssuesParams) ([]service.IssueView, error) {
	if m.listFn != nil {
		return m.listFn(ctx, params)
	}
	return nil, nil
}

func (m *mockIssueService) Update(ctx context.Context, issueID, actorID int64, params service.UpdateIssueParams) (*service.IssueView, error) {
	if m.updateFn != nil {
		return m.updateFn(ctx, issueID, actorID, params)
	}
	return nil, nil
}

func (m *mockIssueService) Delete(ctx context.Context, issueID, actorID int64) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, issueID, actorID)
	}
	return nil
}

func (m *mockIssueService) MarkBestReply(ctx context.Context, issueID, replyID, actorID int64) (*service.IssueView, error) {
	if m.markBestReplyFn != nil {
		return m.markBestReplyFn(ctx, issueID, replyID, actorID)
	}
	return nil, nil
}

func (m *mockIssueService) RecordVisit(context.Context, int64, *int64) (int64, error) {
	return 0, nil
}

type mockReplyService struct {
	addFn    func(ctx context.Context, issue *model.Issue, params service.AddReplyParams) (*model.Reply, error)
	getFn    func(ctx context.Context, replyID int64) (*model.Reply, error)
	listFn   func(ctx context.Context, issueID int64) ([]model.Reply, error)
	updateFn func(ctx context.Context, replyID, actorID int64, body string) (*model.Reply, error)
	deleteFn func(ctx context.Context, replyID, actorID int64) error
	addCalls int
}

func (m *mockReplyService) Add(ctx context.Context, issue *model.Issue, params service.AddReplyParams) (*model.Reply, error) {
	m.addCalls++
	if m.addFn != nil {
		return m.addFn(ctx, issue, params)
	}
	return &model.Reply{ID: 900, IssueID: issue.ID, UserID: params.UserID, Body: params.Body}, nil
}

func (m *mockReplyService) Get(ctx context.Context, replyID int64) (*model.Reply, error) {
	if m.getFn != nil {
		return m.getFn(ctx, replyID)
	}
	return nil, service.ErrNotFound
}

func (m *mockReplyService) List(ctx context.Context, issueID int64) ([]model.Reply, error) {
	if m.listFn != nil {
		return m.listFn(ctx, issueID)
	}
	return nil, nil
}

func (m *mockReplyService) Update(ctx context.Context, replyID, actorID int64, body string) (*model.Reply, error) {
	if m.updateFn != nil {
		return m.updateFn(ctx, replyID, actorID, body)
	}
	return nil, nil
}

func (m *mockReplyService) Delete(ctx context.Context, replyID, actorID int64) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, replyID, actorID)
	}
	return nil
}

type mockGuard struct {
	checkFn  func(ctx context.Context, attempt guard.ReplyAttempt) error
	attempts []guard.ReplyAttempt
	released []guard.ReplyAttempt
}

func (m *mockGuard) Check(ctx context.Context, attempt guard.ReplyAttempt) error {
	m.attempts = append(m.attempts, attempt)
	if m.checkFn != nil {
		return m.checkFn(ctx, attempt)
	}
	return nil
}

func (m *mockGuard) Release(_ context.Context, attempt guard.ReplyAttempt) error {
	m.released = append(m.released, attempt)
	return nil
}

type mockSubscriptionService struct {
	subscribed map[[2]int64]bool
}

func (m *mockSubscriptionService) Subscribe(_ context.Context, issueID, userID int64) error {
	m.subscribed[[2]int64{issueID, userID}] = true
	return nil
}

func (m *mockSubscriptionService) Unsubscribe(_ context.Context, issueID, userID int64) error {
	delete(m.subscribed, [2]int64{issueID, userID})
	return nil
}

func (m *mockSubscriptionService) IsSubscribed(_ context.Context, issueID, userID int64) (bool, error) {
	return m.subscribed[[2]int64{issueID, userID}], nil
}

func (m *mockSubscriptionService) Subscribers(context.Context, int64) ([]int64, error) {
	return nil, nil
}

type mockNotificationService struct {
	listUnreadFn func(ctx context.Context, userID int64) ([]model.Notification, error)
	markReadFn   func(ctx context.Context, notificationID, userID int64) error
}

func (m *mockNotificationService) ListUnread(ctx context.Context, userID int64) ([]model.Notification, error) {
	if m.listUnreadFn != nil {
		return m.listUnreadFn(ctx, userID)
	}
	return nil, nil
}

func (m *mockNotificationService) MarkRead(ctx context.Context, notificationID, userID int64) error {
	if m.markReadFn != nil {
		return m.markReadFn(ctx, notificationID, userID)
	}
	return nil
}

func (m *mockNotificationService) DispatchReplyCreated(context.Context, queue.EventMessage) (int, error) {
	return 0, nil
}

type mockProfileService struct {
	getFn func(ctx context.Context, name string) (*service.Profile, error)
}

func (m *mockProfileService) Get(ctx context.Context, name string) (*service.Profile, error) {
	if m.getFn != nil {
		return m.getFn(ctx, name)
	}
	return nil, service.ErrNotFound
}

type mockSearchService struct {
	searchFn func(ctx context.Context, query string, limit int) ([]search.Document, error)
}

func (m *mockSearchService) Reindex(context.Context, int64) error {
	return nil
}

func (m *mockSearchService) Search(ctx context.Context, query string, limit int) ([]search.Document, error) {
	if m.searchFn != nil {
		return m.searchFn(ctx, query, limit)
	}
	return nil, search.ErrDisabled
}

// passthroughCleaner leaves text untouched so assertions see what was stored.
type passthroughCleaner struct{}

func (passthroughCleaner) Clean(s string) string { return s }
