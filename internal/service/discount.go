package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Rahulelano/events-backend/internal/model"
	"github.com/Rahulelano/events-backend/internal/repository"
	"github.com/Rahulelano/events-backend/internal/validation"
)

// DiscountService orchestrates local-shop discount CRUD.
type DiscountService struct {
	discounts *repository.DiscountRepository
}

// NewDiscountService constructs a DiscountService.
func NewDiscountService(discounts *repository.DiscountRepository) *DiscountService {
	return &DiscountService{discounts: discounts}
}

// List returns active discounts with clamped paging.
func (s *DiscountService) List(ctx context.Context, featuredOnly bool, limit, offset int) ([]model.Discount, model.Pagination, error) {
	limit, offset = clampPaging(limit, offset)
	discounts, err := s.discounts.List(ctx, featuredOnly, limit, offset)
	if err != nil {
		return nil, model.Pagination{}, fmt.Errorf("list discounts: %w", err)
	}
	return discounts, model.Pagination{Limit: limit, Offset: offset}, nil
}

// Get returns a single active discount.
func (s *DiscountService) Get(ctx context.Context, id string) (*model.Discount, error) {
	if strings.TrimSpace(id) == "" {
		return nil, fmt.Errorf("%w: discount id is required", ErrInvalidInput)
	}
	return s.discounts.GetByID(ctx, id)
}

// Create validates and creates a discount.
func (s *DiscountService) Create(ctx context.Context, req model.DiscountRequest) (*model.Discount, error) {
	req.ShopName = strings.TrimSpace(req.ShopName)
	if err := validation.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidInput, err)
	}
	validFrom, validUntil, err := parseValidity(req.ValidFrom, req.ValidUntil)
	if err != nil {
		return nil, err
	}
	return s.discounts.Create(ctx, req, validFrom, validUntil)
}

// Update validates and rewrites a discount.
func (s *DiscountService) Update(ctx context.Context, id string, req model.DiscountRequest) error {
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("%w: discount id is required", ErrInvalidInput)
	}
	req.ShopName = strings.TrimSpace(req.ShopName)
	if err := validation.Struct(req); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidInput, err)
	}
	validFrom, validUntil, err := parseValidity(req.ValidFrom, req.ValidUntil)
	if err != nil {
		return err
	}

	err = s.discounts.Update(ctx, id, req, validFrom, validUntil)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return err
		}
		return fmt.Errorf("update discount: %w", err)
	}
	return nil
}

// Delete deactivates a discount.
func (s *DiscountService) Delete(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("%w: discount id is required", ErrInvalidInput)
	}
	return s.discounts.Delete(ctx, id)
}

// parseValidity parses the optional validity window and rejects an
// inverted one.
func parseValidity(from, until *string) (*time.Time, *time.Time, error) {
	parse := func(s *string) (*time.Time, error) {
		if s == nil || *s == "" {
			return nil, nil
		}
		t, err := time.Parse(eventDateLayout, *s)
		if err != nil {
			return nil, fmt.Errorf("%w: validity dates must be YYYY-MM-DD", ErrInvalidInput)
		}
		return &t, nil
	}

	validFrom, err := parse(from)
	if err != nil {
		return nil, nil, err
	}
	validUntil, err := parse(until)
	if err != nil {
		return nil, nil, err
	}
	if validFrom != nil && validUntil != nil && validUntil.Before(*validFrom) {
		return nil, nil, fmt.Errorf("%w: valid_until must not precede valid_from", ErrInvalidInput)
	}
	return validFrom, validUntil, nil
}
