package search

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/typesense/typesense-go/v4/typesense"
	"github.com/typesense/typesense-go/v4/typesense/api"
	"github.com/typesense/typesense-go/v4/typesense/api/pointer"
)

const (
	queryBy       = "title,summary,description"
	maxPageSize   = 250
	clientTimeout = 5 * time.Second
)

type TypesenseConfig struct {
	URL        string
	APIKey     string
	Collection string
}

type typesenseIndexer struct {
	client     *typesense.Client
	collection string
}

// NewTypesenseIndexer connects to Typesense and creates the collection if it
// does not exist yet.
func NewTypesenseIndexer(ctx context.Context, cfg TypesenseConfig) (Indexer, error) {
	client := typesense.NewClient(
		typesense.WithServer(cfg.URL),
		typesense.WithAPIKey(cfg.APIKey),
		typesense.WithConnectionTimeout(clientTimeout),
	)

	idx := &typesenseIndexer{client: client, collection: cfg.Collection}
	if err := idx.ensureCollection(ctx); err != nil {
		return nil, err
	}
	return idx, nil
}

func (t *typesenseIndexer) ensureCollection(ctx context.Context) error {
	_, err := t.client.Collection(t.collection).Retrieve(ctx)
	if err == nil {
		return nil
	}
	if !isStatus(err, http.StatusNotFound) {
		return fmt.Errorf("retrieving search collection: %w", err)
	}

	_, err = t.client.Collections().Create(ctx, collectionSchema(t.collection))
	if err != nil && !isStatus(err, http.StatusConflict) {
		return fmt.Errorf("creating search collection: %w", err)
	}

	slog.InfoContext(ctx, "created search collection", "collection", t.collection)
	return nil
}

func collectionSchema(name string) *api.CollectionSchema {
	return &api.CollectionSchema{
		Name: name,
		Fields: []api.Field{
			{Name: "title", Type: "string"},
			{Name: "slug", Type: "string", Index: pointer.False()},
			{Name: "summary", Type: "string"},
			{Name: "description", Type: "string"},
			{Name: "category_id", Type: "int64"},
			{Name: "category_slug", Type: "string", Facet: pointer.True()},
			{Name: "category_name", Type: "string"},
			{Name: "creator_id", Type: "int64"},
			{Name: "replies_count", Type: "int32"},
			{Name: "visits", Type: "int64"},
			{Name: "best_reply_id", Type: "string", Optional: pointer.True(), Index: pointer.False()},
			{Name: "answered", Type: "bool", Facet: pointer.True()},
			{Name: "locked", Type: "bool", Facet: pointer.True()},
			{Name: "created_at", Type: "int64"},
			{Name: "updated_at", Type: "int64"},
			{Name: "path", Type: "string", Index: pointer.False()},
		},
		DefaultSortingField: pointer.String("created_at"),
	}
}

func (t *typesenseIndexer) Index(ctx context.Context, doc Document) error {
	_, err := t.client.Collection(t.collection).Documents().Upsert(ctx, doc, &api.DocumentIndexParameters{})
	if err != nil {
		return fmt.Errorf("upserting search document %s: %w", doc.ID, err)
	}
	return nil
}

// Remove treats a missing document as already removed.
func (t *typesenseIndexer) Remove(ctx context.Context, issueID int64) error {
	docID := strconv.FormatInt(issueID, 10)
	_, err := t.client.Collection(t.collection).Document(docID).Delete(ctx)
	if err != nil && !isStatus(err, http.StatusNotFound) {
		return fmt.Errorf("deleting search document %s: %w", docID, err)
	}
	return nil
}

func (t *typesenseIndexer) Search(ctx context.Context, query string, limit int) ([]Document, error) {
	if limit <= 0 || limit > maxPageSize {
		limit = maxPageSize
	}

	result, err := t.client.Collection(t.collection).Documents().Search(ctx, &api.SearchCollectionParams{
		Q:       pointer.String(query),
		QueryBy: pointer.String(queryBy),
		PerPage: pointer.Int(limit),
	})
	if err != nil {
		return nil, fmt.Errorf("searching issues: %w", err)
	}

	if result.Hits == nil {
		return []Document{}, nil
	}

	docs := make([]Document, 0, len(*result.Hits))
	for _, hit := range *result.Hits {
		if hit.Document == nil {
			continue
		}
		doc, err := decodeDocument(*hit.Document)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

func decodeDocument(raw map[string]any) (Document, error) {
	var doc Document
	b, err := json.Marshal(raw)
	if err != nil {
		return doc, fmt.Errorf("encoding search hit: %w", err)
	}
	if err := json.Unmarshal(b, &doc); err != nil {
		return doc, fmt.Errorf("decoding search hit: %w", err)
	}
	return doc, nil
}

func isStatus(err error, status int) bool {
	var httpErr *typesense.HTTPError
	return errors.As(err, &httpErr) && httpErr.Status == status
}
