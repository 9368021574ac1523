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

const eventDateLayout = "2006-01-02"

// EventService orchestrates event CRUD.
type EventService struct {
	events *repository.EventRepository
}

// NewEventService constructs an EventService.
func NewEventService(events *repository.EventRepository) *EventService {
	return &EventService{events: events}
}

// Create validates and creates an event.
func (s *EventService) Create(ctx context.Context, req model.CreateEventRequest) (*model.Event, error) {
	req.Title = strings.TrimSpace(req.Title)
	req.Venue = strings.TrimSpace(req.Venue)

	if err := validation.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidInput, err)
	}
	date, err := time.Parse(eventDateLayout, req.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: date must be YYYY-MM-DD", ErrInvalidInput)
	}

	event, err := s.events.Create(ctx, req, date)
	if err != nil {
		return nil, fmt.Errorf("create event: %w", err)
	}
	return event, nil
}

// List returns active events matching the filter, with clamped paging.
func (s *EventService) List(ctx context.Context, filter model.EventFilter, limit, offset int) ([]model.Event, model.Pagination, error) {
	limit, offset = clampPaging(limit, offset)
	events, err := s.events.List(ctx, filter, limit, offset)
	if err != nil {
		return nil, model.Pagination{}, fmt.Errorf("list events: %w", err)
	}
	return events, model.Pagination{Limit: limit, Offset: offset}, nil
}

// Hero returns the current hero event.
func (s *EventService) Hero(ctx context.Context) (*model.Event, error) {
	return s.events.Hero(ctx)
}

// HeroSlider returns all events flagged for the hero slider.
func (s *EventService) HeroSlider(ctx context.Context) ([]model.Event, error) {
	events, err := s.events.HeroSlider(ctx)
	if err != nil {
		return nil, fmt.Errorf("hero slider: %w", err)
	}
	return events, nil
}

// Get returns a single active event.
func (s *EventService) Get(ctx context.Context, id string) (*model.Event, error) {
	if strings.TrimSpace(id) == "" {
		return nil, fmt.Errorf("%w: event id is required", ErrInvalidInput)
	}
	return s.events.GetByID(ctx, id)
}

// Update validates and rewrites an event's display fields.
func (s *EventService) Update(ctx context.Context, id string, req model.UpdateEventRequest) error {
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("%w: event id is required", ErrInvalidInput)
	}
	req.Title = strings.TrimSpace(req.Title)
	req.Venue = strings.TrimSpace(req.Venue)

	if err := validation.Struct(req); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidInput, err)
	}
	date, err := time.Parse(eventDateLayout, req.Date)
	if err != nil {
		return fmt.Errorf("%w: date must be YYYY-MM-DD", ErrInvalidInput)
	}

	err = s.events.Update(ctx, id, req, date)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return err
		}
		return fmt.Errorf("update event: %w", err)
	}
	return nil
}

// Delete deactivates an event.
func (s *EventService) Delete(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("%w: event id is required", ErrInvalidInput)
	}
	return s.events.Delete(ctx, id)
}
