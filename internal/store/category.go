package store

import (
	"context"
	"errors"

	"basegraph.app/forum/core/db/sqlc"
	"basegraph.app/forum/internal/model"
	"github.com/jackc/pgx/v5"
)

type categoryStore struct {
	queries *sqlc.Queries
}

func newCategoryStore(queries *sqlc.Queries) CategoryStore {
	return &categoryStore{queries: queries}
}

func (s *categoryStore) GetByID(ctx context.Context, id int64) (*model.Category, error) {
	row, err := s.queries.GetCategory(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return toCategoryModel(row), nil
}

func (s *categoryStore) GetBySlug(ctx context.Context, slug string) (*model.Category, error) {
	row, err := s.queries.GetCategoryBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return toCategoryModel(row), nil
}

func (s *categoryStore) List(ctx context.Context) ([]model.Category, error) {
	rows, err := s.queries.ListCategories(ctx)
	if err != nil {
		return nil, err
	}
	categories := make([]model.Category, len(rows))
	for i, row := range rows {
		categories[i] = *toCategoryModel(row)
	}
	return categories, nil
}

func toCategoryModel(row sqlc.Category) *model.Category {
	return &model.Category{
		ID:        row.ID,
		Slug:      row.Slug,
		Name:      row.Name,
		CreatedAt: row.CreatedAt.Time,
	}
}
