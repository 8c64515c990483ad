package service

import (
	"context"
	"fmt"

	"basegraph.app/forum/internal/model"
	"basegraph.app/forum/internal/store"
)

type CategoryService interface {
	List(ctx context.Context) ([]model.Category, error)
}

type categoryService struct {
	categories store.CategoryStore
}

func NewCategoryService(categories store.CategoryStore) CategoryService {
	return &categoryService{categories: categories}
}

func (s *categoryService) List(ctx context.Context) ([]model.Category, error) {
	categories, err := s.categories.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing categories: %w", err)
	}
	return categories, nil
}
