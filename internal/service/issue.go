package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"basegraph.app/forum/common"
	"basegraph.app/forum/common/id"
	"basegraph.app/forum/common/logger"
	"basegraph.app/forum/internal/model"
	"basegraph.app/forum/internal/store"
	"basegraph.app/forum/internal/visits"
)

const slugFallback = "issue"

// IssueView is an issue as one caller sees it.
type IssueView struct {
	Issue        *model.Issue
	Category     *model.Category
	IsSubscribed bool // false for anonymous callers
	HasUpdate    bool // updated since the caller's last visit
}

func (v *IssueView) Path() string {
	return v.Issue.Path(v.Category.Slug)
}

type CreateIssueParams struct {
	CreatorID   int64
	CategoryID  int64
	Title       string // optional, defaults to Summary
	Summary     string
	Description string
}

type UpdateIssueParams struct {
	Summary     string
	Description string
}

type ListIssuesParams struct {
	CategorySlug string // empty lists every category
	By           string // creator name
	Popular      bool
	Unanswered   bool
	Limit        int32
	ViewerID     *int64
}

type IssueService interface {
	Create(ctx context.Context, params CreateIssueParams) (*IssueView, error)
	Get(ctx context.Context, categorySlug, slug string) (*IssueView, error)
	GetByID(ctx context.Context, id int64) (*IssueView, error)
	// Show is Get plus visit bookkeeping for the caller.
	Show(ctx context.Context, categorySlug, slug string, viewerID *int64) (*IssueView, error)
	List(ctx context.Context, params ListIssuesParams) ([]IssueView, error)
	Update(ctx context.Context, issueID, actorID int64, params UpdateIssueParams) (*IssueView, error)
	Delete(ctx context.Context, issueID, actorID int64) error
	MarkBestReply(ctx context.Context, issueID, replyID, actorID int64) (*IssueView, error)
	// RecordVisit bumps the visit counter and, for a known viewer, the
	// viewer's watermark. It returns the new visit count.
	RecordVisit(ctx context.Context, issueID int64, viewerID *int64) (int64, error)
}

type IssueServiceConfig struct {
	PruneSubscriptionsOnDelete bool
}

type issueService struct {
	stores   StoreProvider
	txRunner TxRunner
	search   SearchService
	visits   visits.Tracker
	cfg      IssueServiceConfig
	now      func() time.Time
}

func NewIssueService(stores StoreProvider, txRunner TxRunner, search SearchService, tracker visits.Tracker, cfg IssueServiceConfig) IssueService {
	return &issueService{
		stores:   stores,
		txRunner: txRunner,
		search:   search,
		visits:   tracker,
		cfg:      cfg,
		now:      time.Now,
	}
}

func (s *issueService) Create(ctx context.Context, params CreateIssueParams) (*IssueView, error) {
	params.Summary = strings.TrimSpace(params.Summary)
	params.Title = strings.TrimSpace(params.Title)
	if params.Title == "" {
		params.Title = params.Summary
	}

	v := newValidationError()
	if params.Summary == "" {
		v.Add("summary", "is required")
	}
	if strings.TrimSpace(params.Description) == "" {
		v.Add("description", "is required")
	}
	if params.CategoryID == 0 {
		v.Add("category_id", "is required")
	}
	if err := v.OrNil(); err != nil {
		return nil, err
	}

	issueID := id.New()
	ctx = logger.WithLogFields(ctx, logger.LogFields{IssueID: &issueID, UserID: &params.CreatorID})

	var (
		view        *IssueView
		forceSuffix bool
		err         error
	)
	// A concurrent create can take the bare slug between our existence check
	// and insert; the second attempt always uses the id-suffixed slug.
	for attempt := 0; attempt < 2; attempt++ {
		view, err = s.create(ctx, issueID, params, forceSuffix)
		if !errors.Is(err, store.ErrSlugTaken) {
			break
		}
		slog.InfoContext(ctx, "slug taken concurrently, retrying with suffix")
		forceSuffix = true
	}
	if err != nil {
		if !errors.Is(err, ErrValidation) {
			slog.ErrorContext(ctx, "failed to create issue", "error", err)
		}
		return nil, err
	}

	slog.InfoContext(ctx, "issue created", "slug", view.Issue.Slug)
	syncIndex(ctx, s.search, issueID)
	return view, nil
}

func (s *issueService) create(ctx context.Context, issueID int64, params CreateIssueParams, forceSuffix bool) (*IssueView, error) {
	var view *IssueView
	err := s.txRunner.WithTx(ctx, func(sp StoreProvider) error {
		category, err := sp.Categories().GetByID(ctx, params.CategoryID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				v := newValidationError()
				v.Add("category_id", "category does not exist")
				return v
			}
			return fmt.Errorf("fetching category: %w", err)
		}

		issue := &model.Issue{
			ID:          issueID,
			CategoryID:  category.ID,
			CreatorID:   params.CreatorID,
			Title:       params.Title,
			Summary:     params.Summary,
			Description: params.Description,
		}

		issue.Slug, err = assignSlug(ctx, sp.Issues(), issue.Title, issue.ID, forceSuffix)
		if err != nil {
			return err
		}

		if err := sp.Issues().Create(ctx, issue); err != nil {
			if errors.Is(err, store.ErrSlugTaken) {
				return err
			}
			return fmt.Errorf("creating issue: %w", err)
		}

		if err := NewActivityRecorder(sp.Activities()).Record(ctx, issue.CreatorID, model.SubjectTypeIssue, issue.ID, model.ActivityTypeCreatedIssue); err != nil {
			return err
		}

		view = &IssueView{Issue: issue, Category: category}
		return nil
	})
	return view, err
}

// assignSlug derives the issue slug from its title. When the bare slug is
// already used, the issue's own id is appended; ids are unique, so the
// suffixed slug cannot collide.
func assignSlug(ctx context.Context, issues store.IssueStore, title string, issueID int64, forceSuffix bool) (string, error) {
	base, err := common.Slugify(title, slugFallback)
	if err != nil {
		return "", fmt.Errorf("generating slug: %w", err)
	}
	if forceSuffix {
		return common.WithSuffix(base, issueID), nil
	}

	taken, err := issues.SlugExists(ctx, base)
	if err != nil {
		return "", fmt.Errorf("checking slug availability: %w", err)
	}
	if taken {
		return common.WithSuffix(base, issueID), nil
	}
	return base, nil
}

func (s *issueService) Get(ctx context.Context, categorySlug, slug string) (*IssueView, error) {
	issue, err := s.stores.Issues().GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("fetching issue: %w", err)
	}

	category, err := s.stores.Categories().GetByID(ctx, issue.CategoryID)
	if err != nil {
		return nil, fmt.Errorf("fetching category: %w", err)
	}
	if category.Slug != categorySlug {
		return nil, ErrNotFound
	}

	return &IssueView{Issue: issue, Category: category}, nil
}

func (s *issueService) GetByID(ctx context.Context, issueID int64) (*IssueView, error) {
	issue, err := s.stores.Issues().GetByID(ctx, issueID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("fetching issue: %w", err)
	}

	category, err := s.stores.Categories().GetByID(ctx, issue.CategoryID)
	if err != nil {
		return nil, fmt.Errorf("fetching category: %w", err)
	}

	return &IssueView{Issue: issue, Category: category}, nil
}

func (s *issueService) Show(ctx context.Context, categorySlug, slug string, viewerID *int64) (*IssueView, error) {
	view, err := s.Get(ctx, categorySlug, slug)
	if err != nil {
		return nil, err
	}

	if viewerID != nil {
		// read the watermark before this visit moves it
		if err := s.decorate(ctx, view, *viewerID); err != nil {
			return nil, err
		}
	}

	visitCount, err := s.RecordVisit(ctx, view.Issue.ID, viewerID)
	if err != nil {
		return nil, err
	}
	view.Issue.Visits = visitCount

	return view, nil
}

func (s *issueService) RecordVisit(ctx context.Context, issueID int64, viewerID *int64) (int64, error) {
	visitCount, err := s.stores.Issues().IncrementVisits(ctx, issueID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return 0, ErrNotFound
		}
		return 0, fmt.Errorf("counting visit: %w", err)
	}

	if viewerID != nil && s.visits != nil {
		if err := s.visits.Record(ctx, *viewerID, issueID, s.now()); err != nil {
			slog.WarnContext(ctx, "failed to record visit watermark",
				"error", err,
				"issue_id", issueID,
				"user_id", *viewerID)
		}
	}
	return visitCount, nil
}

// decorate fills the caller-relative fields of view.
func (s *issueService) decorate(ctx context.Context, view *IssueView, viewerID int64) error {
	subscribed, err := s.stores.Subscriptions().Exists(ctx, view.Issue.ID, viewerID)
	if err != nil {
		return fmt.Errorf("checking subscription: %w", err)
	}
	view.IsSubscribed = subscribed

	if s.visits == nil {
		return nil
	}
	lastSeen, err := s.visits.LastVisited(ctx, viewerID, view.Issue.ID)
	if err != nil {
		// an unknown watermark reads as "updated"
		slog.WarnContext(ctx, "failed to read visit watermark",
			"error", err,
			"issue_id", view.Issue.ID,
			"user_id", viewerID)
		lastSeen = time.Time{}
	}
	view.HasUpdate = view.Issue.HasUpdateSince(lastSeen)
	return nil
}

func (s *issueService) List(ctx context.Context, params ListIssuesParams) ([]IssueView, error) {
	filter := model.IssueFilter{
		Popular:    params.Popular,
		Unanswered: params.Unanswered,
		Limit:      params.Limit,
	}

	categories, err := s.stores.Categories().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing categories: %w", err)
	}
	byID := make(map[int64]*model.Category, len(categories))
	for i := range categories {
		c := &categories[i]
		byID[c.ID] = c
		if params.CategorySlug != "" && c.Slug == params.CategorySlug {
			filter.CategoryID = &c.ID
		}
	}
	if params.CategorySlug != "" && filter.CategoryID == nil {
		return nil, ErrNotFound
	}

	if params.By != "" {
		creator, err := s.stores.Users().GetByName(ctx, params.By)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return []IssueView{}, nil
			}
			return nil, fmt.Errorf("fetching user: %w", err)
		}
		filter.CreatorID = &creator.ID
	}

	issues, err := s.stores.Issues().List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("listing issues: %w", err)
	}

	views := make([]IssueView, 0, len(issues))
	for i := range issues {
		category, ok := byID[issues[i].CategoryID]
		if !ok {
			return nil, fmt.Errorf("issue %d references unknown category %d", issues[i].ID, issues[i].CategoryID)
		}
		view := IssueView{Issue: &issues[i], Category: category}
		if params.ViewerID != nil {
			if err := s.decorate(ctx, &view, *params.ViewerID); err != nil {
				return nil, err
			}
		}
		views = append(views, view)
	}
	return views, nil
}

func (s *issueService) Update(ctx context.Context, issueID, actorID int64, params UpdateIssueParams) (*IssueView, error) {
	params.Summary = strings.TrimSpace(params.Summary)
	v := newValidationError()
	if params.Summary == "" {
		v.Add("summary", "is required")
	}
	if strings.TrimSpace(params.Description) == "" {
		v.Add("description", "is required")
	}
	if err := v.OrNil(); err != nil {
		return nil, err
	}

	var view *IssueView
	err := s.txRunner.WithTx(ctx, func(sp StoreProvider) error {
		issue, err := lockIssue(ctx, sp, issueID)
		if err != nil {
			return err
		}
		if issue.CreatorID != actorID {
			return ErrForbidden
		}

		// the slug is fixed at creation and does not follow the summary
		issue.Summary = params.Summary
		issue.Description = params.Description
		if err := sp.Issues().Update(ctx, issue); err != nil {
			return fmt.Errorf("updating issue: %w", err)
		}

		category, err := sp.Categories().GetByID(ctx, issue.CategoryID)
		if err != nil {
			return fmt.Errorf("fetching category: %w", err)
		}
		view = &IssueView{Issue: issue, Category: category}
		return nil
	})
	if err != nil {
		return nil, err
	}

	syncIndex(ctx, s.search, issueID)
	return view, nil
}

// Delete removes the issue and everything it owns in one transaction. Replies
// go through the same path as a single reply deletion.
func (s *issueService) Delete(ctx context.Context, issueID, actorID int64) error {
	ctx = logger.WithLogFields(ctx, logger.LogFields{IssueID: &issueID, UserID: &actorID})

	var removedReplies int
	err := s.txRunner.WithTx(ctx, func(sp StoreProvider) error {
		issue, err := lockIssue(ctx, sp, issueID)
		if err != nil {
			return err
		}
		if issue.CreatorID != actorID {
			return ErrForbidden
		}

		replies, err := sp.Replies().ListByIssue(ctx, issue.ID)
		if err != nil {
			return fmt.Errorf("listing replies: %w", err)
		}
		for i := range replies {
			if err := deleteReply(ctx, sp, &replies[i]); err != nil {
				return err
			}
		}
		removedReplies = len(replies)

		if err := NewActivityRecorder(sp.Activities()).Forget(ctx, model.SubjectTypeIssue, issue.ID); err != nil {
			return err
		}

		if s.cfg.PruneSubscriptionsOnDelete {
			if err := sp.Subscriptions().DeleteByIssue(ctx, issue.ID); err != nil {
				return fmt.Errorf("deleting subscriptions: %w", err)
			}
		}

		if err := sp.Issues().Delete(ctx, issue.ID); err != nil {
			return fmt.Errorf("deleting issue: %w", err)
		}
		return nil
	})
	if err != nil {
		if !errors.Is(err, ErrNotFound) && !errors.Is(err, ErrForbidden) {
			slog.ErrorContext(ctx, "failed to delete issue", "error", err)
		}
		return err
	}

	slog.InfoContext(ctx, "issue deleted", "replies_deleted", removedReplies)
	syncIndex(ctx, s.search, issueID)
	return nil
}

// MarkBestReply is reserved for the issue's creator.
func (s *issueService) MarkBestReply(ctx context.Context, issueID, replyID, actorID int64) (*IssueView, error) {
	var view *IssueView
	err := s.txRunner.WithTx(ctx, func(sp StoreProvider) error {
		issue, err := lockIssue(ctx, sp, issueID)
		if err != nil {
			return err
		}
		if issue.CreatorID != actorID {
			return ErrForbidden
		}

		reply, err := sp.Replies().GetByID(ctx, replyID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrNotFound
			}
			return fmt.Errorf("fetching reply: %w", err)
		}
		if err := issue.MarkBestReply(reply); err != nil {
			v := newValidationError()
			v.Add("reply_id", err.Error())
			return v
		}

		updated, err := sp.Issues().SetBestReply(ctx, issue.ID, issue.BestReplyID)
		if err != nil {
			return fmt.Errorf("marking best reply: %w", err)
		}

		category, err := sp.Categories().GetByID(ctx, updated.CategoryID)
		if err != nil {
			return fmt.Errorf("fetching category: %w", err)
		}
		view = &IssueView{Issue: updated, Category: category}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}

func lockIssue(ctx context.Context, sp StoreProvider, issueID int64) (*model.Issue, error) {
	issue, err := sp.Issues().GetForUpdate(ctx, issueID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("fetching issue: %w", err)
	}
	return issue, nil
}
