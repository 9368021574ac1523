//go:build integration

package repository_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Rahulelano/events-backend/internal/database"
	"github.com/Rahulelano/events-backend/internal/model"
	"github.com/Rahulelano/events-backend/internal/repository"
	"github.com/Rahulelano/events-backend/internal/testinfra"
)

func setupPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	testinfra.SkipIfNoDocker(t)

	ctx := context.Background()
	dsn := testinfra.StartPostgres(t)

	pool, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	require.NoError(t, database.Migrate(ctx, pool))
	return pool
}

func createTestEvent(t *testing.T, events *repository.EventRepository, totalTickets int) *model.Event {
	t.Helper()
	event, err := events.Create(context.Background(), model.CreateEventRequest{
		Title:        "Food Carnival",
		Time:         "05:00 PM",
		Venue:        "Riverside Grounds",
		TotalTickets: totalTickets,
		Price:        decimal.RequireFromString("100.00"),
	}, time.Now().AddDate(0, 1, 0))
	require.NoError(t, err)
	return event
}

func bookingRequest(eventID string, tickets int) model.CreateBookingRequest {
	return model.CreateBookingRequest{
		EventID:       eventID,
		UserName:      "Asha Rao",
		UserEmail:     "asha@example.com",
		UserPhone:     "9876543210",
		TicketsBooked: tickets,
	}
}

func TestBookingLifecycle(t *testing.T) {
	pool := setupPool(t)
	ctx := context.Background()

	events := repository.NewEventRepository(pool)
	bookings := repository.NewBookingRepository(pool)

	event := createTestEvent(t, events, 10)

	booking, err := bookings.Create(ctx, bookingRequest(event.ID, 3), "CBEITEST000001")
	require.NoError(t, err)
	assert.Equal(t, "300.00", booking.TotalAmount.StringFixed(2))

	after, err := events.GetByID(ctx, event.ID)
	require.NoError(t, err)
	assert.Equal(t, 7, after.AvailableTickets)

	detail, err := bookings.GetByReference(ctx, "CBEITEST000001")
	require.NoError(t, err)
	assert.Equal(t, model.BookingStatusConfirmed, detail.Status)
	assert.Equal(t, event.Title, detail.EventTitle)

	require.NoError(t, bookings.Cancel(ctx, booking.ID))

	restored, err := events.GetByID(ctx, event.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, restored.AvailableTickets, "cancellation must restore the inventory")

	err = bookings.Cancel(ctx, booking.ID)
	assert.ErrorIs(t, err, repository.ErrAlreadyCancelled)

	unchanged, err := events.GetByID(ctx, event.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, unchanged.AvailableTickets, "double cancellation must not double-credit")
}

func TestBookingRejectsInactiveEvent(t *testing.T) {
	pool := setupPool(t)
	ctx := context.Background()

	events := repository.NewEventRepository(pool)
	bookings := repository.NewBookingRepository(pool)

	event := createTestEvent(t, events, 5)
	require.NoError(t, events.Delete(ctx, event.ID))

	_, err := bookings.Create(ctx, bookingRequest(event.ID, 1), "CBEITEST000002")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestConcurrentBookingLastTicket(t *testing.T) {
	pool := setupPool(t)
	ctx := context.Background()

	events := repository.NewEventRepository(pool)
	bookings := repository.NewBookingRepository(pool)

	event := createTestEvent(t, events, 1)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			ref := "CBERACE00000" + string(rune('A'+i))
			_, errs[i] = bookings.Create(ctx, bookingRequest(event.ID, 1), ref)
		}(i)
	}
	wg.Wait()

	var successes, rejections int
	for _, err := range errs {
		var insufficient *repository.InsufficientInventoryError
		switch {
		case err == nil:
			successes++
		case errors.As(err, &insufficient):
			rejections++
			assert.Equal(t, 0, insufficient.Available)
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, successes, "exactly one booking may win the last ticket")
	assert.Equal(t, 1, rejections)

	after, err := events.GetByID(ctx, event.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, after.AvailableTickets)
}

func TestConcurrentBookingNeverOversells(t *testing.T) {
	pool := setupPool(t)
	ctx := context.Background()

	events := repository.NewEventRepository(pool)
	bookings := repository.NewBookingRepository(pool)

	const totalTickets = 5
	const attempts = 100
	event := createTestEvent(t, events, totalTickets)

	var wg sync.WaitGroup
	errs := make([]error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			ref := fmt.Sprintf("CBELOAD%07d", i)
			_, errs[i] = bookings.Create(ctx, bookingRequest(event.ID, 1), ref)
		}(i)
	}
	wg.Wait()

	var successes int
	for _, err := range errs {
		if err == nil {
			successes++
			continue
		}
		var insufficient *repository.InsufficientInventoryError
		require.ErrorAs(t, err, &insufficient)
	}
	assert.Equal(t, totalTickets, successes, "successful bookings must match the inventory exactly")

	after, err := events.GetByID(ctx, event.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, after.AvailableTickets)

	var confirmedTickets int
	err = pool.QueryRow(ctx,
		`SELECT COALESCE(SUM(tickets_booked), 0) FROM bookings WHERE event_id = $1 AND status = 'confirmed'`,
		event.ID,
	).Scan(&confirmedTickets)
	require.NoError(t, err)
	assert.Equal(t, totalTickets, confirmedTickets)
}
