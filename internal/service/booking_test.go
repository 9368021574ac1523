package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Rahulelano/events-backend/internal/model"
	"github.com/Rahulelano/events-backend/internal/repository"
)

// fakeBookingStore records calls and returns scripted results.
type fakeBookingStore struct {
	createFn func(ctx context.Context, req model.CreateBookingRequest, reference string) (*model.Booking, error)
	cancelFn func(ctx context.Context, id string) error
	getFn    func(ctx context.Context, reference string) (*model.BookingDetail, error)
	listFn   func(ctx context.Context, eventID string, limit, offset int) ([]model.BookingDetail, error)
}

func (f *fakeBookingStore) Create(ctx context.Context, req model.CreateBookingRequest, reference string) (*model.Booking, error) {
	return f.createFn(ctx, req, reference)
}

func (f *fakeBookingStore) Cancel(ctx context.Context, id string) error {
	return f.cancelFn(ctx, id)
}

func (f *fakeBookingStore) GetByReference(ctx context.Context, reference string) (*model.BookingDetail, error) {
	return f.getFn(ctx, reference)
}

func (f *fakeBookingStore) List(ctx context.Context, eventID string, limit, offset int) ([]model.BookingDetail, error) {
	return f.listFn(ctx, eventID, limit, offset)
}

func validBookingRequest() model.CreateBookingRequest {
	return model.CreateBookingRequest{
		EventID:       uuid.NewString(),
		UserName:      "Asha Rao",
		UserEmail:     "asha@example.com",
		UserPhone:     "9876543210",
		TicketsBooked: 2,
	}
}

func TestBookingCreateValidation(t *testing.T) {
	store := &fakeBookingStore{
		createFn: func(context.Context, model.CreateBookingRequest, string) (*model.Booking, error) {
			t.Fatal("store must not be called for invalid input")
			return nil, nil
		},
	}
	svc := NewBookingService(store)

	tests := []struct {
		name   string
		mutate func(*model.CreateBookingRequest)
	}{
		{"missing event id", func(r *model.CreateBookingRequest) { r.EventID = "" }},
		{"malformed event id", func(r *model.CreateBookingRequest) { r.EventID = "not-a-uuid" }},
		{"missing name", func(r *model.CreateBookingRequest) { r.UserName = "  " }},
		{"bad email", func(r *model.CreateBookingRequest) { r.UserEmail = "nope" }},
		{"missing phone", func(r *model.CreateBookingRequest) { r.UserPhone = "" }},
		{"zero tickets", func(r *model.CreateBookingRequest) { r.TicketsBooked = 0 }},
		{"negative tickets", func(r *model.CreateBookingRequest) { r.TicketsBooked = -3 }},
		{"too many tickets", func(r *model.CreateBookingRequest) { r.TicketsBooked = 101 }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := validBookingRequest()
			tc.mutate(&req)

			_, err := svc.Create(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestBookingCreateSuccess(t *testing.T) {
	var gotReq model.CreateBookingRequest
	var gotRef string

	store := &fakeBookingStore{
		createFn: func(_ context.Context, req model.CreateBookingRequest, reference string) (*model.Booking, error) {
			gotReq = req
			gotRef = reference
			return &model.Booking{
				ID:               uuid.NewString(),
				BookingReference: reference,
				TotalAmount:      decimal.RequireFromString("149.98"),
			}, nil
		},
	}
	svc := NewBookingService(store)

	req := validBookingRequest()
	req.UserEmail = "  Asha@Example.COM "
	resp, err := svc.Create(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, "asha@example.com", gotReq.UserEmail, "email should be normalised")
	assert.True(t, strings.HasPrefix(gotRef, "CBE"))
	assert.Equal(t, gotRef, resp.BookingReference)
	assert.Equal(t, "149.98", resp.TotalAmount.StringFixed(2))
	assert.NotEmpty(t, resp.BookingID)
}

func TestBookingCreateEventNotFound(t *testing.T) {
	store := &fakeBookingStore{
		createFn: func(context.Context, model.CreateBookingRequest, string) (*model.Booking, error) {
			return nil, repository.ErrNotFound
		},
	}
	svc := NewBookingService(store)

	_, err := svc.Create(context.Background(), validBookingRequest())
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestBookingCreateInsufficientInventory(t *testing.T) {
	store := &fakeBookingStore{
		createFn: func(context.Context, model.CreateBookingRequest, string) (*model.Booking, error) {
			return nil, &repository.InsufficientInventoryError{Available: 1}
		},
	}
	svc := NewBookingService(store)

	_, err := svc.Create(context.Background(), validBookingRequest())

	var insufficient *repository.InsufficientInventoryError
	require.ErrorAs(t, err, &insufficient)
	assert.Equal(t, 1, insufficient.Available)
}

func TestBookingCancel(t *testing.T) {
	t.Run("empty id", func(t *testing.T) {
		svc := NewBookingService(&fakeBookingStore{})
		err := svc.Cancel(context.Background(), "  ")
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("already cancelled", func(t *testing.T) {
		svc := NewBookingService(&fakeBookingStore{
			cancelFn: func(context.Context, string) error { return repository.ErrAlreadyCancelled },
		})
		err := svc.Cancel(context.Background(), uuid.NewString())
		assert.ErrorIs(t, err, repository.ErrAlreadyCancelled)
	})

	t.Run("success", func(t *testing.T) {
		svc := NewBookingService(&fakeBookingStore{
			cancelFn: func(context.Context, string) error { return nil },
		})
		assert.NoError(t, svc.Cancel(context.Background(), uuid.NewString()))
	})
}

func TestBookingGetByReferenceNormalises(t *testing.T) {
	var gotRef string
	svc := NewBookingService(&fakeBookingStore{
		getFn: func(_ context.Context, reference string) (*model.BookingDetail, error) {
			gotRef = reference
			return &model.BookingDetail{}, nil
		},
	})

	_, err := svc.GetByReference(context.Background(), "  cbe123abc  ")
	require.NoError(t, err)
	assert.Equal(t, "CBE123ABC", gotRef)
}

func TestBookingListClampsPaging(t *testing.T) {
	tests := []struct {
		name               string
		limit, offset      int
		wantLimit, wantOff int
	}{
		{"defaults", 0, 0, 50, 0},
		{"capped", 500, 0, 100, 0},
		{"negative offset", 10, -7, 10, 0},
		{"passthrough", 25, 75, 25, 75},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var gotLimit, gotOffset int
			svc := NewBookingService(&fakeBookingStore{
				listFn: func(_ context.Context, _ string, limit, offset int) ([]model.BookingDetail, error) {
					gotLimit, gotOffset = limit, offset
					return nil, nil
				},
			})

			_, pagination, err := svc.List(context.Background(), "", tc.limit, tc.offset)
			require.NoError(t, err)
			assert.Equal(t, tc.wantLimit, gotLimit)
			assert.Equal(t, tc.wantOff, gotOffset)
			assert.Equal(t, tc.wantLimit, pagination.Limit)
			assert.Equal(t, tc.wantOff, pagination.Offset)
		})
	}
}

func TestBookingListStoreError(t *testing.T) {
	svc := NewBookingService(&fakeBookingStore{
		listFn: func(context.Context, string, int, int) ([]model.BookingDetail, error) {
			return nil, errors.New("boom")
		},
	})

	_, _, err := svc.List(context.Background(), "", 10, 0)
	assert.Error(t, err)
}
