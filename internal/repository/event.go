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

// EventRepository handles persistence for events. It never mutates
// available_tickets after creation; that counter belongs to the booking
// transactions.
type EventRepository struct {
	db DB
}

// NewEventRepository constructs an EventRepository.
func NewEventRepository(db DB) *EventRepository {
	return &EventRepository{db: db}
}

const eventColumns = `
	e.id, e.title, e.description, e.short_description, e.image_url,
	e.date, e.time, e.venue, e.location, e.category_id,
	COALESCE(c.name, ''), COALESCE(c.color, ''),
	e.total_tickets, e.available_tickets, e.price,
	e.is_featured, e.is_trending, e.is_upcoming, e.priority_order,
	e.show_in_hero, e.status, e.created_at, e.updated_at`

const eventFrom = `
	 FROM events e
	 LEFT JOIN categories c ON e.category_id = c.id`

func scanEvent(row pgx.Row) (*model.Event, error) {
	var e model.Event
	err := row.Scan(
		&e.ID, &e.Title, &e.Description, &e.ShortDescription, &e.ImageURL,
		&e.Date, &e.Time, &e.Venue, &e.Location, &e.CategoryID,
		&e.CategoryName, &e.CategoryColor,
		&e.TotalTickets, &e.AvailableTickets, &e.Price,
		&e.IsFeatured, &e.IsTrending, &e.IsUpcoming, &e.PriorityOrder,
		&e.ShowInHero, &e.Status, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// Create inserts a new event. available_tickets is seeded from
// total_tickets.
func (r *EventRepository) Create(ctx context.Context, req model.CreateEventRequest, date time.Time) (*model.Event, error) {
	now := time.Now().UTC()
	event := &model.Event{
		ID:               uuid.New().String(),
		Title:            req.Title,
		Description:      req.Description,
		ShortDescription: req.ShortDescription,
		ImageURL:         req.ImageURL,
		Date:             date,
		Time:             req.Time,
		Venue:            req.Venue,
		Location:         req.Location,
		CategoryID:       req.CategoryID,
		TotalTickets:     req.TotalTickets,
		AvailableTickets: req.TotalTickets,
		Price:            req.Price,
		IsFeatured:       req.IsFeatured,
		IsTrending:       req.IsTrending,
		IsUpcoming:       req.IsUpcoming,
		PriorityOrder:    req.PriorityOrder,
		ShowInHero:       req.ShowInHero,
		Status:           model.EventStatusActive,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	_, err := r.db.Exec(ctx,
		`INSERT INTO events (
			id, title, description, short_description, image_url,
			date, time, venue, location, category_id,
			total_tickets, available_tickets, price,
			is_featured, is_trending, is_upcoming, priority_order,
			show_in_hero, status, created_at, updated_at
		 ) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10,
			$11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21
		 )`,
		event.ID, event.Title, event.Description, event.ShortDescription, event.ImageURL,
		event.Date, event.Time, event.Venue, event.Location, event.CategoryID,
		event.TotalTickets, event.AvailableTickets, event.Price,
		event.IsFeatured, event.IsTrending, event.IsUpcoming, event.PriorityOrder,
		event.ShowInHero, event.Status, event.CreatedAt, event.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("insert event: %w", err)
	}
	return event, nil
}

// List returns active events matching the filter, ordered by priority
// then date. Limit and offset are bound parameters.
func (r *EventRepository) List(ctx context.Context, filter model.EventFilter, limit, offset int) ([]model.Event, error) {
	query := `SELECT` + eventColumns + eventFrom + ` WHERE e.status = 'active'`
	args := []any{}

	if filter.CategoryID != "" {
		args = append(args, filter.CategoryID)
		query += fmt.Sprintf(" AND e.category_id = $%d", len(args))
	}
	if filter.Featured {
		query += " AND e.is_featured = TRUE"
	}
	if filter.Trending {
		query += " AND e.is_trending = TRUE"
	}
	if filter.Upcoming {
		query += " AND e.date >= CURRENT_DATE"
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		n := len(args)
		query += fmt.Sprintf(" AND (e.title ILIKE $%d OR e.description ILIKE $%d OR e.venue ILIKE $%d)", n, n, n)
	}

	args = append(args, limit)
	query += fmt.Sprintf(" ORDER BY e.priority_order DESC, e.date ASC LIMIT $%d", len(args))
	args = append(args, offset)
	query += fmt.Sprintf(" OFFSET $%d", len(args))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()

	return collectEvents(rows)
}

// Hero returns the first active event flagged for the hero slot, or
// ErrNotFound.
func (r *EventRepository) Hero(ctx context.Context) (*model.Event, error) {
	event, err := scanEvent(r.db.QueryRow(ctx,
		`SELECT`+eventColumns+eventFrom+`
		 WHERE e.status = 'active' AND e.show_in_hero = TRUE
		 ORDER BY e.priority_order DESC, e.date ASC
		 LIMIT 1`,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get hero event: %w", err)
	}
	return event, nil
}

// HeroSlider returns all active events flagged for the hero slider.
func (r *EventRepository) HeroSlider(ctx context.Context) ([]model.Event, error) {
	rows, err := r.db.Query(ctx,
		`SELECT`+eventColumns+eventFrom+`
		 WHERE e.status = 'active' AND e.show_in_hero = TRUE
		 ORDER BY e.priority_order DESC, e.date ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("list hero events: %w", err)
	}
	defer rows.Close()

	return collectEvents(rows)
}

// GetByID returns a single active event or ErrNotFound.
func (r *EventRepository) GetByID(ctx context.Context, id string) (*model.Event, error) {
	event, err := scanEvent(r.db.QueryRow(ctx,
		`SELECT`+eventColumns+eventFrom+`
		 WHERE e.id = $1 AND e.status = 'active'`,
		id,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	return event, nil
}

// Update rewrites an event's display fields. Ticket counters are not
// touched. Returns ErrNotFound when no row matches.
func (r *EventRepository) Update(ctx context.Context, id string, req model.UpdateEventRequest, date time.Time) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE events SET
			title = $1, description = $2, short_description = $3, image_url = $4,
			date = $5, time = $6, venue = $7, location = $8, category_id = $9,
			price = $10, is_featured = $11, is_trending = $12, is_upcoming = $13,
			priority_order = $14, show_in_hero = $15, status = $16, updated_at = $17
		 WHERE id = $18`,
		req.Title, req.Description, req.ShortDescription, req.ImageURL,
		date, req.Time, req.Venue, req.Location, req.CategoryID,
		req.Price, req.IsFeatured, req.IsTrending, req.IsUpcoming,
		req.PriorityOrder, req.ShowInHero, req.Status, time.Now().UTC(), id,
	)
	if err != nil {
		return fmt.Errorf("update event: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete deactivates an event. Rows are kept so historical bookings stay
// resolvable; deactivated events disappear from listings and reject new
// bookings.
func (r *EventRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE events SET status = 'inactive', updated_at = $1 WHERE id = $2 AND status = 'active'`,
		time.Now().UTC(), id,
	)
	if err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func collectEvents(rows pgx.Rows) ([]model.Event, error) {
	var events []model.Event
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		events = append(events, *event)
	}
	return events, rows.Err()
}
