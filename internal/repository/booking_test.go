package repository

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Rahulelano/events-backend/internal/model"
)

// fakeRow scripts a pgx.Row. Values are assigned positionally by type.
type fakeRow struct {
	vals []any
	err  error
}

func (r *fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	for i, d := range dest {
		switch v := r.vals[i].(type) {
		case int:
			*d.(*int) = v
		case string:
			*d.(*string) = v
		case decimal.Decimal:
			*d.(*decimal.Decimal) = v
		}
	}
	return nil
}

// fakeTx embeds pgx.Tx for interface completeness; only the methods the
// repositories call are overridden. Calling anything else panics, which is
// exactly what a test should do.
type fakeTx struct {
	pgx.Tx
	queryRowFn func(sql string, args ...any) pgx.Row
	execFn     func(sql string, args ...any) (pgconn.CommandTag, error)
	execCalls  []string
	committed  bool
	rolledBack bool
}

func (f *fakeTx) QueryRow(_ context.Context, sql string, args ...any) pgx.Row {
	return f.queryRowFn(sql, args...)
}

func (f *fakeTx) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	f.execCalls = append(f.execCalls, sql)
	return f.execFn(sql, args...)
}

func (f *fakeTx) Commit(context.Context) error {
	f.committed = true
	return nil
}

func (f *fakeTx) Rollback(context.Context) error {
	if !f.committed {
		f.rolledBack = true
	}
	return nil
}

// fakeDB hands out a single scripted transaction.
type fakeDB struct {
	tx       *fakeTx
	beginErr error
}

func (f *fakeDB) Begin(context.Context) (pgx.Tx, error) {
	if f.beginErr != nil {
		return nil, f.beginErr
	}
	return f.tx, nil
}

func (f *fakeDB) Exec(context.Context, string, ...any) (pgconn.CommandTag, error) {
	panic("unexpected Exec outside transaction")
}

func (f *fakeDB) Query(context.Context, string, ...any) (pgx.Rows, error) {
	panic("unexpected Query outside transaction")
}

func (f *fakeDB) QueryRow(context.Context, string, ...any) pgx.Row {
	panic("unexpected QueryRow outside transaction")
}

func okExec(string, ...any) (pgconn.CommandTag, error) {
	return pgconn.NewCommandTag("UPDATE 1"), nil
}

func bookingReq(tickets int) model.CreateBookingRequest {
	return model.CreateBookingRequest{
		EventID:       uuid.NewString(),
		UserName:      "Asha Rao",
		UserEmail:     "asha@example.com",
		UserPhone:     "9876543210",
		TicketsBooked: tickets,
	}
}

func TestBookingCreateCommitsDecrementWithInsert(t *testing.T) {
	tx := &fakeTx{
		queryRowFn: func(sql string, _ ...any) pgx.Row {
			require.Contains(t, sql, "FOR UPDATE", "availability check must lock the event row")
			return &fakeRow{vals: []any{10, decimal.RequireFromString("50.00")}}
		},
		execFn: okExec,
	}
	repo := NewBookingRepository(&fakeDB{tx: tx})

	booking, err := repo.Create(context.Background(), bookingReq(2), "CBETESTREF01")
	require.NoError(t, err)

	assert.True(t, tx.committed)
	assert.False(t, tx.rolledBack)
	require.Len(t, tx.execCalls, 2)
	assert.Contains(t, tx.execCalls[0], "INSERT INTO bookings")
	assert.Contains(t, tx.execCalls[1], "available_tickets - $1")

	assert.Equal(t, "100.00", booking.TotalAmount.StringFixed(2))
	assert.Equal(t, model.BookingStatusConfirmed, booking.Status)
	assert.Equal(t, "CBETESTREF01", booking.BookingReference)
	assert.NotEmpty(t, booking.ID)
}

func TestBookingCreateEventNotFound(t *testing.T) {
	tx := &fakeTx{
		queryRowFn: func(string, ...any) pgx.Row {
			return &fakeRow{err: pgx.ErrNoRows}
		},
		execFn: okExec,
	}
	repo := NewBookingRepository(&fakeDB{tx: tx})

	_, err := repo.Create(context.Background(), bookingReq(1), "CBETESTREF02")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.True(t, tx.rolledBack, "transaction must be rolled back")
	assert.Empty(t, tx.execCalls)
}

func TestBookingCreateInsufficientInventory(t *testing.T) {
	tx := &fakeTx{
		queryRowFn: func(string, ...any) pgx.Row {
			return &fakeRow{vals: []any{3, decimal.RequireFromString("25.00")}}
		},
		execFn: okExec,
	}
	repo := NewBookingRepository(&fakeDB{tx: tx})

	_, err := repo.Create(context.Background(), bookingReq(5), "CBETESTREF03")

	var insufficient *InsufficientInventoryError
	require.ErrorAs(t, err, &insufficient)
	assert.Equal(t, 3, insufficient.Available)
	assert.True(t, tx.rolledBack)
	assert.False(t, tx.committed)
	assert.Empty(t, tx.execCalls, "no writes may happen when inventory is short")
}

func TestBookingCreateRollsBackOnDecrementFailure(t *testing.T) {
	tx := &fakeTx{
		queryRowFn: func(string, ...any) pgx.Row {
			return &fakeRow{vals: []any{10, decimal.RequireFromString("50.00")}}
		},
	}
	tx.execFn = func(sql string, _ ...any) (pgconn.CommandTag, error) {
		if strings.Contains(sql, "available_tickets - $1") {
			return pgconn.CommandTag{}, errors.New("connection reset")
		}
		return pgconn.NewCommandTag("INSERT 0 1"), nil
	}
	repo := NewBookingRepository(&fakeDB{tx: tx})

	_, err := repo.Create(context.Background(), bookingReq(2), "CBETESTREF04")
	require.Error(t, err)
	assert.False(t, tx.committed, "a failed decrement must never commit")
	assert.True(t, tx.rolledBack, "the inserted booking must be rolled back with it")
}

func TestBookingCancelRestoresTickets(t *testing.T) {
	tx := &fakeTx{
		queryRowFn: func(sql string, _ ...any) pgx.Row {
			require.Contains(t, sql, "FOR UPDATE")
			return &fakeRow{vals: []any{uuid.NewString(), 4, model.BookingStatusConfirmed}}
		},
		execFn: okExec,
	}
	repo := NewBookingRepository(&fakeDB{tx: tx})

	err := repo.Cancel(context.Background(), uuid.NewString())
	require.NoError(t, err)

	assert.True(t, tx.committed)
	require.Len(t, tx.execCalls, 2)
	assert.Contains(t, tx.execCalls[0], "status = 'cancelled'")
	assert.Contains(t, tx.execCalls[1], "available_tickets + $1")
}

func TestBookingCancelAlreadyCancelled(t *testing.T) {
	tx := &fakeTx{
		queryRowFn: func(string, ...any) pgx.Row {
			return &fakeRow{vals: []any{uuid.NewString(), 4, model.BookingStatusCancelled}}
		},
		execFn: okExec,
	}
	repo := NewBookingRepository(&fakeDB{tx: tx})

	err := repo.Cancel(context.Background(), uuid.NewString())
	assert.ErrorIs(t, err, ErrAlreadyCancelled)
	assert.True(t, tx.rolledBack)
	assert.Empty(t, tx.execCalls, "a second cancellation must not touch the inventory")
}

func TestBookingCancelNotFound(t *testing.T) {
	tx := &fakeTx{
		queryRowFn: func(string, ...any) pgx.Row {
			return &fakeRow{err: pgx.ErrNoRows}
		},
		execFn: okExec,
	}
	repo := NewBookingRepository(&fakeDB{tx: tx})

	err := repo.Cancel(context.Background(), uuid.NewString())
	assert.ErrorIs(t, err, ErrNotFound)
}
