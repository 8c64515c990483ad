package search

import (
	"context"
	"errors"
)

// ErrDisabled is returned by Search when no index is configured.
var ErrDisabled = errors.New("search is disabled")

type Indexer interface {
	Index(ctx context.Context, doc Document) error
	Remove(ctx context.Context, issueID int64) error
	Search(ctx context.Context, query string, limit int) ([]Document, error)
}

// Nop accepts writes and discards them. Search reports ErrDisabled.
type Nop struct{}

func (Nop) Index(context.Context, Document) error { return nil }

func (Nop) Remove(context.Context, int64) error { return nil }

func (Nop) Search(context.Context, string, int) ([]Document, error) {
	return nil, ErrDisabled
}
