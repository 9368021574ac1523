package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/Rahulelano/events-backend/internal/model"
)

// DiscountRepository handles persistence for local-shop discounts.
// Deletion is a soft delete: rows are deactivated, never removed.
type DiscountRepository struct {
	db DB
}

// NewDiscountRepository constructs a DiscountRepository.
func NewDiscountRepository(db DB) *DiscountRepository {
	return &DiscountRepository{db: db}
}

const discountColumns = `
	id, shop_name, shop_category, discount_title, description,
	discount_percentage, original_price, discounted_price, image_url,
	shop_location, shop_address, contact_number, website_url,
	valid_from, valid_until, terms_conditions, is_featured,
	priority_order, is_active, created_at, updated_at`

func scanDiscount(row pgx.Row) (*model.Discount, error) {
	var d model.Discount
	err := row.Scan(
		&d.ID, &d.ShopName, &d.ShopCategory, &d.DiscountTitle, &d.Description,
		&d.DiscountPercentage, &d.OriginalPrice, &d.DiscountedPrice, &d.ImageURL,
		&d.ShopLocation, &d.ShopAddress, &d.ContactNumber, &d.WebsiteURL,
		&d.ValidFrom, &d.ValidUntil, &d.TermsConditions, &d.IsFeatured,
		&d.PriorityOrder, &d.IsActive, &d.CreatedAt, &d.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// List returns active discounts, optionally only featured ones, ordered
// by priority then recency. Limit and offset are bound parameters.
func (r *DiscountRepository) List(ctx context.Context, featuredOnly bool, limit, offset int) ([]model.Discount, error) {
	query := `SELECT` + discountColumns + ` FROM discounts WHERE is_active = TRUE`
	if featuredOnly {
		query += " AND is_featured = TRUE"
	}
	query += " ORDER BY priority_order DESC, created_at DESC LIMIT $1 OFFSET $2"

	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list discounts: %w", err)
	}
	defer rows.Close()

	var discounts []model.Discount
	for rows.Next() {
		d, err := scanDiscount(rows)
		if err != nil {
			return nil, fmt.Errorf("scan discount: %w", err)
		}
		discounts = append(discounts, *d)
	}
	return discounts, rows.Err()
}

// GetByID returns a single active discount or ErrNotFound.
func (r *DiscountRepository) GetByID(ctx context.Context, id string) (*model.Discount, error) {
	d, err := scanDiscount(r.db.QueryRow(ctx,
		`SELECT`+discountColumns+` FROM discounts WHERE id = $1 AND is_active = TRUE`,
		id,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get discount: %w", err)
	}
	return d, nil
}

// Create inserts a new discount.
func (r *DiscountRepository) Create(ctx context.Context, req model.DiscountRequest, validFrom, validUntil *time.Time) (*model.Discount, error) {
	now := time.Now().UTC()
	discount := &model.Discount{
		ID:                 uuid.New().String(),
		ShopName:           req.ShopName,
		ShopCategory:       req.ShopCategory,
		DiscountTitle:      req.DiscountTitle,
		Description:        req.Description,
		DiscountPercentage: req.DiscountPercentage,
		OriginalPrice:      req.OriginalPrice,
		DiscountedPrice:    req.DiscountedPrice,
		ImageURL:           req.ImageURL,
		ShopLocation:       req.ShopLocation,
		ShopAddress:        req.ShopAddress,
		ContactNumber:      req.ContactNumber,
		WebsiteURL:         req.WebsiteURL,
		ValidFrom:          validFrom,
		ValidUntil:         validUntil,
		TermsConditions:    req.TermsConditions,
		IsFeatured:         req.IsFeatured,
		PriorityOrder:      req.PriorityOrder,
		IsActive:           true,
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	_, err := r.db.Exec(ctx,
		`INSERT INTO discounts (
			id, shop_name, shop_category, discount_title, description,
			discount_percentage, original_price, discounted_price, image_url,
			shop_location, shop_address, contact_number, website_url,
			valid_from, valid_until, terms_conditions, is_featured,
			priority_order, is_active, created_at, updated_at
		 ) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13,
			$14, $15, $16, $17, $18, $19, $20, $21
		 )`,
		discount.ID, discount.ShopName, discount.ShopCategory, discount.DiscountTitle,
		discount.Description, discount.DiscountPercentage, discount.OriginalPrice,
		discount.DiscountedPrice, discount.ImageURL, discount.ShopLocation,
		discount.ShopAddress, discount.ContactNumber, discount.WebsiteURL,
		discount.ValidFrom, discount.ValidUntil, discount.TermsConditions,
		discount.IsFeatured, discount.PriorityOrder, discount.IsActive,
		discount.CreatedAt, discount.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("insert discount: %w", err)
	}
	return discount, nil
}

// Update rewrites a discount. Returns ErrNotFound when no active row
// matches.
func (r *DiscountRepository) Update(ctx context.Context, id string, req model.DiscountRequest, validFrom, validUntil *time.Time) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE discounts SET
			shop_name = $1, shop_category = $2, discount_title = $3,
			description = $4, discount_percentage = $5, original_price = $6,
			discounted_price = $7, image_url = $8, shop_location = $9,
			shop_address = $10, contact_number = $11, website_url = $12,
			valid_from = $13, valid_until = $14, terms_conditions = $15,
			is_featured = $16, priority_order = $17, updated_at = $18
		 WHERE id = $19 AND is_active = TRUE`,
		req.ShopName, req.ShopCategory, req.DiscountTitle,
		req.Description, req.DiscountPercentage, req.OriginalPrice,
		req.DiscountedPrice, req.ImageURL, req.ShopLocation,
		req.ShopAddress, req.ContactNumber, req.WebsiteURL,
		validFrom, validUntil, req.TermsConditions,
		req.IsFeatured, req.PriorityOrder, time.Now().UTC(), id,
	)
	if err != nil {
		return fmt.Errorf("update discount: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete deactivates a discount.
func (r *DiscountRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE discounts SET is_active = FALSE, updated_at = $1 WHERE id = $2 AND is_active = TRUE`,
		time.Now().UTC(), id,
	)
	if err != nil {
		return fmt.Errorf("delete discount: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
