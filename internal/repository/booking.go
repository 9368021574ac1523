package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/Rahulelano/events-backend/internal/model"
)

// BookingRepository handles persistence for bookings. It is the sole
// writer of the invariant linking bookings to event ticket inventory: the
// sum of tickets_booked over confirmed bookings always equals
// total_tickets - available_tickets.
type BookingRepository struct {
	db DB
}

// NewBookingRepository constructs a BookingRepository.
func NewBookingRepository(db DB) *BookingRepository {
	return &BookingRepository{db: db}
}

const bookingDetailColumns = `
	b.id, b.event_id, b.user_name, b.user_email, b.user_phone,
	b.tickets_booked, b.total_amount, b.booking_reference, b.status,
	b.created_at, b.updated_at,
	e.title, e.date, e.time, e.venue`

// Create books tickets for an event inside a single transaction.
//
// The event row is locked with SELECT ... FOR UPDATE before the
// availability check, so two concurrent bookings against the same event
// are serialised by the database: the second transaction blocks on the
// lock and re-reads the decremented counter, eliminating the
// read-then-write race that would otherwise oversell the event.
//
// Any failure after Begin rolls the whole transaction back; a booking row
// is never visible without its matching inventory decrement.
func (r *BookingRepository) Create(ctx context.Context, req model.CreateBookingRequest, reference string) (*model.Booking, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	// No-op after a successful commit; releases the row lock and the
	// connection on every other exit path.
	defer func() { _ = tx.Rollback(ctx) }()

	var (
		available int
		price     decimal.Decimal
	)
	err = tx.QueryRow(ctx,
		`SELECT available_tickets, price
		 FROM events
		 WHERE id = $1 AND status = 'active'
		 FOR UPDATE`,
		req.EventID,
	).Scan(&available, &price)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("lock event row: %w", err)
	}

	if available < req.TicketsBooked {
		return nil, &InsufficientInventoryError{Available: available}
	}

	now := time.Now().UTC()
	booking := &model.Booking{
		ID:               uuid.New().String(),
		EventID:          req.EventID,
		UserName:         req.UserName,
		UserEmail:        req.UserEmail,
		UserPhone:        req.UserPhone,
		TicketsBooked:    req.TicketsBooked,
		TotalAmount:      price.Mul(decimal.NewFromInt(int64(req.TicketsBooked))),
		BookingReference: reference,
		Status:           model.BookingStatusConfirmed,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO bookings (
			id, event_id, user_name, user_email, user_phone, tickets_booked,
			total_amount, booking_reference, status, created_at, updated_at
		 ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		booking.ID, booking.EventID, booking.UserName, booking.UserEmail,
		booking.UserPhone, booking.TicketsBooked, booking.TotalAmount,
		booking.BookingReference, booking.Status, booking.CreatedAt, booking.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("insert booking: %w", err)
	}

	_, err = tx.Exec(ctx,
		`UPDATE events
		 SET available_tickets = available_tickets - $1, updated_at = $2
		 WHERE id = $3`,
		booking.TicketsBooked, now, booking.EventID,
	)
	if err != nil {
		return nil, fmt.Errorf("decrement available tickets: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit transaction: %w", err)
	}

	return booking, nil
}

// Cancel marks a booking cancelled and restores its tickets to the event,
// inside a single transaction. Cancelling an already-cancelled booking
// returns ErrAlreadyCancelled without touching the inventory, so repeated
// cancellation requests cannot double-credit an event.
func (r *BookingRepository) Cancel(ctx context.Context, id string) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var (
		eventID       string
		ticketsBooked int
		status        string
	)
	err = tx.QueryRow(ctx,
		`SELECT event_id, tickets_booked, status
		 FROM bookings
		 WHERE id = $1
		 FOR UPDATE`,
		id,
	).Scan(&eventID, &ticketsBooked, &status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("lock booking row: %w", err)
	}

	if status == model.BookingStatusCancelled {
		return ErrAlreadyCancelled
	}

	now := time.Now().UTC()
	_, err = tx.Exec(ctx,
		`UPDATE bookings SET status = 'cancelled', updated_at = $1 WHERE id = $2`,
		now, id,
	)
	if err != nil {
		return fmt.Errorf("cancel booking: %w", err)
	}

	_, err = tx.Exec(ctx,
		`UPDATE events
		 SET available_tickets = available_tickets + $1, updated_at = $2
		 WHERE id = $3`,
		ticketsBooked, now, eventID,
	)
	if err != nil {
		return fmt.Errorf("restore available tickets: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	return nil
}

// GetByReference returns a booking with its event display fields, or
// ErrNotFound.
func (r *BookingRepository) GetByReference(ctx context.Context, reference string) (*model.BookingDetail, error) {
	var d model.BookingDetail
	err := r.db.QueryRow(ctx,
		`SELECT`+bookingDetailColumns+`
		 FROM bookings b
		 JOIN events e ON b.event_id = e.id
		 WHERE b.booking_reference = $1`,
		reference,
	).Scan(
		&d.ID, &d.EventID, &d.UserName, &d.UserEmail, &d.UserPhone,
		&d.TicketsBooked, &d.TotalAmount, &d.BookingReference, &d.Status,
		&d.CreatedAt, &d.UpdatedAt,
		&d.EventTitle, &d.EventDate, &d.EventTime, &d.EventVenue,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get booking by reference: %w", err)
	}
	return &d, nil
}

// List returns bookings newest-first, optionally filtered by event.
// Limit and offset are bound query parameters, never interpolated into
// the statement text.
func (r *BookingRepository) List(ctx context.Context, eventID string, limit, offset int) ([]model.BookingDetail, error) {
	query := `SELECT` + bookingDetailColumns + `
		 FROM bookings b
		 JOIN events e ON b.event_id = e.id`
	args := []any{}

	if eventID != "" {
		args = append(args, eventID)
		query += fmt.Sprintf(" WHERE b.event_id = $%d", len(args))
	}

	args = append(args, limit)
	query += fmt.Sprintf(" ORDER BY b.created_at DESC LIMIT $%d", len(args))
	args = append(args, offset)
	query += fmt.Sprintf(" OFFSET $%d", len(args))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	defer rows.Close()

	var bookings []model.BookingDetail
	for rows.Next() {
		var d model.BookingDetail
		if err := rows.Scan(
			&d.ID, &d.EventID, &d.UserName, &d.UserEmail, &d.UserPhone,
			&d.TicketsBooked, &d.TotalAmount, &d.BookingReference, &d.Status,
			&d.CreatedAt, &d.UpdatedAt,
			&d.EventTitle, &d.EventDate, &d.EventTime, &d.EventVenue,
		); err != nil {
			return nil, fmt.Errorf("scan booking: %w", err)
		}
		bookings = append(bookings, d)
	}
	return bookings, rows.Err()
}
