package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Rahulelano/events-backend/internal/metrics"
	"github.com/Rahulelano/events-backend/internal/model"
	"github.com/Rahulelano/events-backend/internal/repository"
	"github.com/Rahulelano/events-backend/internal/validation"
)

// BookingStore is the persistence surface the booking service depends on.
type BookingStore interface {
	Create(ctx context.Context, req model.CreateBookingRequest, reference string) (*model.Booking, error)
	Cancel(ctx context.Context, id string) error
	GetByReference(ctx context.Context, reference string) (*model.BookingDetail, error)
	List(ctx context.Context, eventID string, limit, offset int) ([]model.BookingDetail, error)
}

// BookingService orchestrates booking creation, cancellation and lookup.
type BookingService struct {
	bookings BookingStore
}

// NewBookingService constructs a BookingService.
func NewBookingService(bookings BookingStore) *BookingService {
	return &BookingService{bookings: bookings}
}

// Create validates the request, generates a reference and books the
// tickets. The transactional inventory check lives in the store; this
// layer only classifies the outcome for metrics and callers.
func (s *BookingService) Create(ctx context.Context, req model.CreateBookingRequest) (*model.CreateBookingResponse, error) {
	req.UserName = strings.TrimSpace(req.UserName)
	req.UserEmail = strings.TrimSpace(strings.ToLower(req.UserEmail))
	req.UserPhone = strings.TrimSpace(req.UserPhone)

	if err := validation.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidInput, err)
	}

	reference, err := GenerateBookingReference()
	if err != nil {
		return nil, err
	}

	booking, err := s.bookings.Create(ctx, req, reference)
	if err != nil {
		var insufficient *repository.InsufficientInventoryError
		switch {
		case errors.Is(err, repository.ErrNotFound):
			metrics.BookingRejected("event_not_found")
			return nil, err
		case errors.As(err, &insufficient):
			metrics.BookingRejected("insufficient_inventory")
			return nil, err
		default:
			return nil, fmt.Errorf("create booking: %w", err)
		}
	}

	metrics.BookingCreated()
	return &model.CreateBookingResponse{
		BookingID:        booking.ID,
		BookingReference: booking.BookingReference,
		TotalAmount:      booking.TotalAmount,
		Message:          "Booking created successfully",
	}, nil
}

// Cancel cancels a booking and restores its tickets.
func (s *BookingService) Cancel(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("%w: booking id is required", ErrInvalidInput)
	}

	err := s.bookings.Cancel(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) || errors.Is(err, repository.ErrAlreadyCancelled) {
			return err
		}
		return fmt.Errorf("cancel booking: %w", err)
	}

	metrics.BookingCancelled()
	return nil
}

// GetByReference looks a booking up by its reference, case-insensitively.
func (s *BookingService) GetByReference(ctx context.Context, reference string) (*model.BookingDetail, error) {
	reference = strings.ToUpper(strings.TrimSpace(reference))
	if reference == "" {
		return nil, fmt.Errorf("%w: booking reference is required", ErrInvalidInput)
	}
	return s.bookings.GetByReference(ctx, reference)
}

// List returns bookings newest-first with clamped paging.
func (s *BookingService) List(ctx context.Context, eventID string, limit, offset int) ([]model.BookingDetail, model.Pagination, error) {
	limit, offset = clampPaging(limit, offset)
	bookings, err := s.bookings.List(ctx, eventID, limit, offset)
	if err != nil {
		return nil, model.Pagination{}, fmt.Errorf("list bookings: %w", err)
	}
	return bookings, model.Pagination{Limit: limit, Offset: offset}, nil
}
