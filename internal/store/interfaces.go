package store

import (
	"context"
	"errors"
	"time"

	"basegraph.app/forum/internal/model"
)

var (
	// ErrNotFound is returned when a requested entity does not exist
	ErrNotFound = errors.New("not found")

	// ErrSlugTaken is returned when an insert loses the issues_slug_key race.
	ErrSlugTaken = errors.New("slug already taken")
)

type UserStore interface {
	GetByID(ctx context.Context, id int64) (*model.User, error)
	GetByName(ctx context.Context, name string) (*model.User, error)
}

type SessionStore interface {
	GetValid(ctx context.Context, id int64) (*model.Session, error) // checks expiry
}

type CategoryStore interface {
	GetByID(ctx context.Context, id int64) (*model.Category, error)
	GetBySlug(ctx context.Context, slug string) (*model.Category, error)
	List(ctx context.Context) ([]model.Category, error)
}

type IssueStore interface {
	Create(ctx context.Context, issue *model.Issue) error
	SlugExists(ctx context.Context, slug string) (bool, error)
	GetByID(ctx context.Context, id int64) (*model.Issue, error)
	GetBySlug(ctx context.Context, slug string) (*model.Issue, error)
	GetForUpdate(ctx context.Context, id int64) (*model.Issue, error) // row lock, tx only
	List(ctx context.Context, filter model.IssueFilter) ([]model.Issue, error)
	Update(ctx context.Context, issue *model.Issue) error
	SetBestReply(ctx context.Context, issueID int64, replyID *int64) (*model.Issue, error)
	IncrementReplies(ctx context.Context, id int64) error
	DecrementReplies(ctx context.Context, id int64) error
	IncrementVisits(ctx context.Context, id int64) (int64, error)
	Delete(ctx context.Context, id int64) error
}

type ReplyStore interface {
	Create(ctx context.Context, reply *model.Reply) error
	GetByID(ctx context.Context, id int64) (*model.Reply, error)
	ListByIssue(ctx context.Context, issueID int64) ([]model.Reply, error)
	UpdateBody(ctx context.Context, id int64, body string) (*model.Reply, error)
	Delete(ctx context.Context, id int64) error
}

type SubscriptionStore interface {
	Create(ctx context.Context, sub *model.Subscription) error // no-op when the pair exists
	Delete(ctx context.Context, issueID, userID int64) error
	Exists(ctx context.Context, issueID, userID int64) (bool, error)
	ListSubscriberIDs(ctx context.Context, issueID int64) ([]int64, error)
	DeleteByIssue(ctx context.Context, issueID int64) error
}

type ActivityStore interface {
	Create(ctx context.Context, activity *model.Activity) error
	ListByUser(ctx context.Context, userID int64, limit int32) ([]model.Activity, error)
	DeleteBySubject(ctx context.Context, subjectType model.SubjectType, subjectID int64) error
}

type NotificationStore interface {
	Create(ctx context.Context, n *model.Notification) error
	ListUnread(ctx context.Context, userID int64) ([]model.Notification, error)
	MarkRead(ctx context.Context, id, userID int64) error
}

func timePtr(t time.Time, valid bool) *time.Time {
	if !valid {
		return nil
	}
	return &t
}
