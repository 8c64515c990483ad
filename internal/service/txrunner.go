package service

import (
	"context"

	"basegraph.app/forum/core/db"
	"basegraph.app/forum/core/db/sqlc"
	"basegraph.app/forum/internal/store"
)

// StoreProvider exposes the stores, either pool-bound or bound to one transaction.
type StoreProvider interface {
	Users() store.UserStore
	Categories() store.CategoryStore
	Issues() store.IssueStore
	Replies() store.ReplyStore
	Subscriptions() store.SubscriptionStore
	Activities() store.ActivityStore
	Notifications() store.NotificationStore
}

// TxRunner runs functions within a transaction and provides stores bound to that transaction.
type TxRunner interface {
	WithTx(ctx context.Context, fn func(stores StoreProvider) error) error
}

type dbTxRunner struct {
	db *db.DB
}

func NewTxRunner(db *db.DB) TxRunner {
	return &dbTxRunner{db: db}
}

func (r *dbTxRunner) WithTx(ctx context.Context, fn func(stores StoreProvider) error) error {
	return r.db.WithTx(ctx, func(q *sqlc.Queries) error {
		return fn(store.NewStores(q))
	})
}
