package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Rahulelano/events-backend/internal/model"
)

// CategoryRepository handles persistence for categories.
type CategoryRepository struct {
	db DB
}

// NewCategoryRepository constructs a CategoryRepository.
func NewCategoryRepository(db DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

// List returns all categories with their active event counts, ordered by
// name.
func (r *CategoryRepository) List(ctx context.Context) ([]model.Category, error) {
	rows, err := r.db.Query(ctx,
		`SELECT c.id, c.name, c.description, c.color,
		        COUNT(e.id) FILTER (WHERE e.status = 'active'),
		        c.created_at, c.updated_at
		 FROM categories c
		 LEFT JOIN events e ON c.id = e.category_id
		 GROUP BY c.id
		 ORDER BY c.name`,
	)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var categories []model.Category
	for rows.Next() {
		var c model.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.Color, &c.EventCount, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

// Create inserts a new category. A duplicate name yields ErrDuplicateName.
func (r *CategoryRepository) Create(ctx context.Context, req model.CategoryRequest) (*model.Category, error) {
	now := time.Now().UTC()
	category := &model.Category{
		ID:          uuid.New().String(),
		Name:        req.Name,
		Description: req.Description,
		Color:       req.Color,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	_, err := r.db.Exec(ctx,
		`INSERT INTO categories (id, name, description, color, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		category.ID, category.Name, category.Description, category.Color,
		category.CreatedAt, category.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateName
		}
		return nil, fmt.Errorf("insert category: %w", err)
	}
	return category, nil
}

// Update rewrites a category. Returns ErrNotFound when no row matches and
// ErrDuplicateName on a name collision.
func (r *CategoryRepository) Update(ctx context.Context, id string, req model.CategoryRequest) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE categories
		 SET name = $1, description = $2, color = $3, updated_at = $4
		 WHERE id = $5`,
		req.Name, req.Description, req.Color, time.Now().UTC(), id,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateName
		}
		return fmt.Errorf("update category: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a category. A category still referenced by events is
// refused with ErrCategoryInUse.
func (r *CategoryRepository) Delete(ctx context.Context, id string) error {
	var count int
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM events WHERE category_id = $1`,
		id,
	).Scan(&count)
	if err != nil {
		return fmt.Errorf("count category events: %w", err)
	}
	if count > 0 {
		return ErrCategoryInUse
	}

	tag, err := r.db.Exec(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
