package booking

import (
	"slices"
	"sync"
	"time"

	"github.com/cinetix/booking-engine/internal/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Transaction ties a successful reservation to a party and a monetary amount.
// Its status mirrors and drives the seat states of its seat set: PENDING while
// the holds are live, BOOKED once payment confirmed them, CANCELLED once they
// were released. All mutation happens under mu inside the engine, which is
// what guarantees the transaction leaves PENDING exactly once.
type Transaction struct {
	mu sync.Mutex

	id        uuid.UUID
	partyID   string
	showID    string
	token     string
	seats     []domain.SeatID
	amount    decimal.Decimal
	status    domain.TicketStatus
	createdAt time.Time
}

func newTransaction(showID, partyID, token string, seats []domain.SeatID, amount decimal.Decimal, createdAt time.Time) *Transaction {
	return &Transaction{
		id:        uuid.New(),
		partyID:   partyID,
		showID:    showID,
		token:     token,
		seats:     seats,
		amount:    amount,
		status:    domain.TicketStatusPending,
		createdAt: createdAt,
	}
}

func (t *Transaction) ID() uuid.UUID {
	return t.id
}

func (t *Transaction) Status() domain.TicketStatus {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.status
}

// Ticket returns an immutable snapshot of the transaction.
func (t *Transaction) Ticket() domain.Ticket {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.snapshot()
}

// snapshot builds a ticket from the current state. Callers must hold mu.
func (t *Transaction) snapshot() domain.Ticket {
	return domain.Ticket{
		TransactionID: t.id,
		PartyID:       t.partyID,
		ShowID:        t.showID,
		SeatIDs:       slices.Clone(t.seats),
		Status:        t.status,
		Amount:        t.amount,
		IssuedAt:      t.createdAt,
	}
}
