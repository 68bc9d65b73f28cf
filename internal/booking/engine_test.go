package booking

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/cinetix/booking-engine/internal/domain"
	"github.com/cinetix/booking-engine/internal/repository"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEngine(t *testing.T, clock *fakeClock) (*Engine, *repository.InMemoryTicketLedger) {
	t.Helper()

	ledger := repository.NewInMemoryTicketLedger()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	e := NewEngine(ledger, 5*time.Minute, logger)
	e.now = clock.Now

	require.NoError(t, e.RegisterShow(testShow()))

	return e, ledger
}

func reserveSeats(t *testing.T, e *Engine, party string, seats ...domain.SeatID) *Transaction {
	t.Helper()

	txn, err := e.Reserve(context.Background(), "show-1", domain.ReservationRequest{
		SeatIDs: seats,
		PartyID: party,
	}, decimal.NewFromInt(500))
	require.NoError(t, err)

	return txn
}

func seatState(t *testing.T, e *Engine, id domain.SeatID) domain.SeatState {
	t.Helper()

	statuses, err := e.SeatMap("show-1")
	require.NoError(t, err)

	for _, s := range statuses {
		if s.ID == id {
			return s.State
		}
	}

	t.Fatalf("seat %s not in seat map", id)
	return 0
}

func TestEngine_RegisterShow(t *testing.T) {
	e, _ := newTestEngine(t, newFakeClock(holdStart))

	err := e.RegisterShow(testShow())
	assert.ErrorIs(t, err, domain.ErrInvalidRequest)

	err = e.RegisterShow(&domain.Show{ID: "empty-show"})
	assert.ErrorIs(t, err, domain.ErrInvalidRequest)
}

func TestEngine_Reserve(t *testing.T) {
	t.Run("opens a pending transaction over held seats", func(t *testing.T) {
		e, _ := newTestEngine(t, newFakeClock(holdStart))

		txn := reserveSeats(t, e, "p1", "A1", "A2")

		assert.Equal(t, domain.TicketStatusPending, txn.Status())
		assert.Equal(t, domain.SeatHeld, seatState(t, e, "A1"))
		assert.Equal(t, domain.SeatHeld, seatState(t, e, "A2"))
	})

	t.Run("rejects a missing party ID", func(t *testing.T) {
		e, _ := newTestEngine(t, newFakeClock(holdStart))

		_, err := e.Reserve(context.Background(), "show-1", domain.ReservationRequest{
			SeatIDs: []domain.SeatID{"A1"},
		}, decimal.NewFromInt(250))

		assert.ErrorIs(t, err, domain.ErrInvalidRequest)
	})

	t.Run("rejects an unknown show", func(t *testing.T) {
		e, _ := newTestEngine(t, newFakeClock(holdStart))

		_, err := e.Reserve(context.Background(), "no-such-show", domain.ReservationRequest{
			SeatIDs: []domain.SeatID{"A1"},
			PartyID: "p1",
		}, decimal.NewFromInt(250))

		assert.ErrorIs(t, err, domain.ErrRecordNotFound)
	})
}

func TestEngine_Reconcile_Paid(t *testing.T) {
	e, ledger := newTestEngine(t, newFakeClock(holdStart))
	txn := reserveSeats(t, e, "p1", "A1", "A2")

	ticket, err := e.Reconcile(context.Background(), txn.ID(), domain.PaymentOutcomePaid)

	require.NoError(t, err)
	assert.Equal(t, domain.TicketStatusBooked, ticket.Status)
	assert.Equal(t, domain.SeatBooked, seatState(t, e, "A1"))
	assert.Equal(t, domain.SeatBooked, seatState(t, e, "A2"))

	recorded, err := ledger.Find(context.Background(), txn.ID())
	require.NoError(t, err)
	assert.Equal(t, domain.TicketStatusBooked, recorded.Status)
	assert.Equal(t, []domain.SeatID{"A1", "A2"}, recorded.SeatIDs)
}

func TestEngine_Reconcile_Failed(t *testing.T) {
	e, ledger := newTestEngine(t, newFakeClock(holdStart))
	txn := reserveSeats(t, e, "p1", "A1", "A2")

	ticket, err := e.Reconcile(context.Background(), txn.ID(), domain.PaymentOutcomeFailed)

	require.NoError(t, err)
	assert.Equal(t, domain.TicketStatusCancelled, ticket.Status)
	assert.Equal(t, domain.SeatAvailable, seatState(t, e, "A1"))
	assert.Equal(t, domain.SeatAvailable, seatState(t, e, "A2"))

	recorded, err := ledger.Find(context.Background(), txn.ID())
	require.NoError(t, err)
	assert.Equal(t, domain.TicketStatusCancelled, recorded.Status)
}

func TestEngine_Reconcile_HoldExpiredDuringPayment(t *testing.T) {
	clock := newFakeClock(holdStart)
	e, ledger := newTestEngine(t, clock)
	txn := reserveSeats(t, e, "p1", "A1")

	clock.Advance(6 * time.Minute)

	ticket, err := e.Reconcile(context.Background(), txn.ID(), domain.PaymentOutcomePaid)

	assert.ErrorIs(t, err, domain.ErrHoldExpired)
	assert.Equal(t, domain.TicketStatusCancelled, ticket.Status)
	assert.Equal(t, domain.SeatAvailable, seatState(t, e, "A1"))

	recorded, findErr := ledger.Find(context.Background(), txn.ID())
	require.NoError(t, findErr)
	assert.Equal(t, domain.TicketStatusCancelled, recorded.Status)
}

func TestEngine_Reconcile_OnlyOnce(t *testing.T) {
	e, _ := newTestEngine(t, newFakeClock(holdStart))
	txn := reserveSeats(t, e, "p1", "A1")

	_, err := e.Reconcile(context.Background(), txn.ID(), domain.PaymentOutcomePaid)
	require.NoError(t, err)

	ticket, err := e.Reconcile(context.Background(), txn.ID(), domain.PaymentOutcomePaid)

	assert.ErrorIs(t, err, domain.ErrInvalidStateTransition)
	assert.Equal(t, domain.TicketStatusBooked, ticket.Status, "rejected call must leave state unchanged")
	assert.Equal(t, domain.SeatBooked, seatState(t, e, "A1"))
}

func TestEngine_Reconcile_AfterCancellation(t *testing.T) {
	// A payment outcome that arrives after an unrelated explicit cancellation
	// must not silently re-book the seats.
	e, _ := newTestEngine(t, newFakeClock(holdStart))
	txn := reserveSeats(t, e, "p1", "A1")

	_, err := e.Cancel(context.Background(), txn.ID(), "changed plans")
	require.NoError(t, err)

	ticket, err := e.Reconcile(context.Background(), txn.ID(), domain.PaymentOutcomePaid)

	assert.ErrorIs(t, err, domain.ErrInvalidStateTransition)
	assert.Equal(t, domain.TicketStatusCancelled, ticket.Status)
	assert.Equal(t, domain.SeatAvailable, seatState(t, e, "A1"))
}

func TestEngine_Cancel(t *testing.T) {
	t.Run("releases a pending reservation", func(t *testing.T) {
		e, ledger := newTestEngine(t, newFakeClock(holdStart))
		txn := reserveSeats(t, e, "p1", "A1", "A2")

		ticket, err := e.Cancel(context.Background(), txn.ID(), "changed plans")

		require.NoError(t, err)
		assert.Equal(t, domain.TicketStatusCancelled, ticket.Status)
		assert.Equal(t, domain.SeatAvailable, seatState(t, e, "A1"))

		recorded, err := ledger.Find(context.Background(), txn.ID())
		require.NoError(t, err)
		assert.Equal(t, domain.TicketStatusCancelled, recorded.Status)
	})

	t.Run("unbooks a booked reservation", func(t *testing.T) {
		e, _ := newTestEngine(t, newFakeClock(holdStart))
		txn := reserveSeats(t, e, "p1", "A1")

		_, err := e.Reconcile(context.Background(), txn.ID(), domain.PaymentOutcomePaid)
		require.NoError(t, err)

		ticket, err := e.Cancel(context.Background(), txn.ID(), "refund")

		require.NoError(t, err)
		assert.Equal(t, domain.TicketStatusCancelled, ticket.Status)
		assert.Equal(t, domain.SeatAvailable, seatState(t, e, "A1"))
	})

	t.Run("is idempotent on a cancelled transaction", func(t *testing.T) {
		e, ledger := newTestEngine(t, newFakeClock(holdStart))
		txn := reserveSeats(t, e, "p1", "A1")

		_, err := e.Cancel(context.Background(), txn.ID(), "first")
		require.NoError(t, err)

		ticket, err := e.Cancel(context.Background(), txn.ID(), "second")

		require.NoError(t, err)
		assert.Equal(t, domain.TicketStatusCancelled, ticket.Status)

		// the ledger must hold exactly one record for the transaction
		tickets, err := ledger.FindByParty(context.Background(), "p1")
		require.NoError(t, err)
		assert.Len(t, tickets, 1)
	})

	t.Run("fails for an unknown transaction", func(t *testing.T) {
		e, _ := newTestEngine(t, newFakeClock(holdStart))

		_, err := e.Cancel(context.Background(), uuid.New(), "nope")

		assert.ErrorIs(t, err, domain.ErrRecordNotFound)
	})
}

func TestEngine_ContestedOverlap(t *testing.T) {
	e, _ := newTestEngine(t, newFakeClock(holdStart))

	reserveSeats(t, e, "p1", "A1")

	_, err := e.Reserve(context.Background(), "show-1", domain.ReservationRequest{
		SeatIDs: []domain.SeatID{"A1", "A2"},
		PartyID: "p2",
	}, decimal.NewFromInt(500))

	assert.ErrorIs(t, err, domain.ErrSeatUnavailable)
	assert.ErrorContains(t, err, "A1")
	assert.Equal(t, domain.SeatAvailable, seatState(t, e, "A2"), "loser's rollback must free untouched seats")
}

func TestEngine_ExpiredHoldIsReclaimable(t *testing.T) {
	clock := newFakeClock(holdStart)
	e, _ := newTestEngine(t, clock)

	reserveSeats(t, e, "p1", "A1")

	clock.Advance(6 * time.Minute)

	txn := reserveSeats(t, e, "p2", "A1")

	assert.Equal(t, domain.TicketStatusPending, txn.Status())
	assert.Equal(t, domain.SeatHeld, seatState(t, e, "A1"))
}

func TestEngine_Ticket(t *testing.T) {
	e, _ := newTestEngine(t, newFakeClock(holdStart))
	txn := reserveSeats(t, e, "p1", "A1")

	ticket, err := e.Ticket(context.Background(), txn.ID())

	require.NoError(t, err)
	assert.Equal(t, txn.ID(), ticket.TransactionID)
	assert.Equal(t, "p1", ticket.PartyID)
	assert.True(t, decimal.NewFromInt(500).Equal(ticket.Amount))
}
