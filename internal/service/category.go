package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/Rahulelano/events-backend/internal/model"
	"github.com/Rahulelano/events-backend/internal/repository"
	"github.com/Rahulelano/events-backend/internal/validation"
)

// CategoryService orchestrates category CRUD.
type CategoryService struct {
	categories *repository.CategoryRepository
}

// NewCategoryService constructs a CategoryService.
func NewCategoryService(categories *repository.CategoryRepository) *CategoryService {
	return &CategoryService{categories: categories}
}

// List returns all categories with event counts.
func (s *CategoryService) List(ctx context.Context) ([]model.Category, error) {
	categories, err := s.categories.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return categories, nil
}

// Create validates and creates a category.
func (s *CategoryService) Create(ctx context.Context, req model.CategoryRequest) (*model.Category, error) {
	req.Name = strings.TrimSpace(req.Name)
	if err := validation.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidInput, err)
	}
	return s.categories.Create(ctx, req)
}

// Update validates and rewrites a category.
func (s *CategoryService) Update(ctx context.Context, id string, req model.CategoryRequest) error {
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("%w: category id is required", ErrInvalidInput)
	}
	req.Name = strings.TrimSpace(req.Name)
	if err := validation.Struct(req); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidInput, err)
	}
	return s.categories.Update(ctx, id, req)
}

// Delete removes a category. Categories still referenced by events are
// refused.
func (s *CategoryService) Delete(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("%w: category id is required", ErrInvalidInput)
	}
	return s.categories.Delete(ctx, id)
}
