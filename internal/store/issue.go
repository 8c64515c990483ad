package store

import (
	"context"
	"errors"

	"basegraph.app/forum/core/db/sqlc"
	"basegraph.app/forum/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	defaultIssueListLimit = 50
	issueSlugConstraint   = "issues_slug_key"
	uniqueViolationCode   = "23505"
)

type issueStore struct {
	queries *sqlc.Queries
}

func newIssueStore(queries *sqlc.Queries) IssueStore {
	return &issueStore{queries: queries}
}

func (s *issueStore) Create(ctx context.Context, issue *model.Issue) error {
	row, err := s.queries.CreateIssue(ctx, sqlc.CreateIssueParams{
		ID:          issue.ID,
		CategoryID:  issue.CategoryID,
		UserID:      issue.CreatorID,
		Title:       issue.Title,
		Slug:        issue.Slug,
		Summary:     issue.Summary,
		Description: issue.Description,
	})
	if err != nil {
		if isUniqueViolation(err, issueSlugConstraint) {
			return ErrSlugTaken
		}
		return err
	}
	*issue = *toIssueModel(row)
	return nil
}

func (s *issueStore) SlugExists(ctx context.Context, slug string) (bool, error) {
	return s.queries.IssueSlugExists(ctx, slug)
}

func (s *issueStore) GetByID(ctx context.Context, id int64) (*model.Issue, error) {
	return oneIssue(s.queries.GetIssue(ctx, id))
}

func (s *issueStore) GetBySlug(ctx context.Context, slug string) (*model.Issue, error) {
	return oneIssue(s.queries.GetIssueBySlug(ctx, slug))
}

func (s *issueStore) GetForUpdate(ctx context.Context, id int64) (*model.Issue, error) {
	return oneIssue(s.queries.GetIssueForUpdate(ctx, id))
}

func (s *issueStore) List(ctx context.Context, filter model.IssueFilter) ([]model.Issue, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = defaultIssueListLimit
	}
	rows, err := s.queries.ListIssues(ctx, sqlc.ListIssuesParams{
		CategoryID: filter.CategoryID,
		UserID:     filter.CreatorID,
		Unanswered: filter.Unanswered,
		Popular:    filter.Popular,
		RowLimit:   limit,
	})
	if err != nil {
		return nil, err
	}
	issues := make([]model.Issue, len(rows))
	for i, row := range rows {
		issues[i] = *toIssueModel(row)
	}
	return issues, nil
}

func (s *issueStore) Update(ctx context.Context, issue *model.Issue) error {
	row, err := s.queries.UpdateIssue(ctx, sqlc.UpdateIssueParams{
		ID:          issue.ID,
		Summary:     issue.Summary,
		Description: issue.Description,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	*issue = *toIssueModel(row)
	return nil
}

func (s *issueStore) SetBestReply(ctx context.Context, issueID int64, replyID *int64) (*model.Issue, error) {
	return oneIssue(s.queries.SetIssueBestReply(ctx, sqlc.SetIssueBestReplyParams{
		ID:          issueID,
		BestReplyID: replyID,
	}))
}

func (s *issueStore) IncrementReplies(ctx context.Context, id int64) error {
	n, err := s.queries.IncrementIssueRepliesCount(ctx, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *issueStore) DecrementReplies(ctx context.Context, id int64) error {
	return s.queries.DecrementIssueRepliesCount(ctx, id)
}

func (s *issueStore) IncrementVisits(ctx context.Context, id int64) (int64, error) {
	visits, err := s.queries.IncrementIssueVisits(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, ErrNotFound
		}
		return 0, err
	}
	return visits, nil
}

func (s *issueStore) Delete(ctx context.Context, id int64) error {
	n, err := s.queries.DeleteIssue(ctx, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func oneIssue(row sqlc.Issue, err error) (*model.Issue, error) {
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return toIssueModel(row), nil
}

func toIssueModel(row sqlc.Issue) *model.Issue {
	return &model.Issue{
		ID:           row.ID,
		CategoryID:   row.CategoryID,
		CreatorID:    row.UserID,
		Title:        row.Title,
		Slug:         row.Slug,
		Summary:      row.Summary,
		Description:  row.Description,
		BestReplyID:  row.BestReplyID,
		RepliesCount: row.RepliesCount,
		Visits:       row.Visits,
		Locked:       row.Locked,
		CreatedAt:    row.CreatedAt.Time,
		UpdatedAt:    row.UpdatedAt.Time,
	}
}

func isUniqueViolation(err error, constraint string) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	return pgErr.Code == uniqueViolationCode && (constraint == "" || pgErr.ConstraintName == constraint)
}
