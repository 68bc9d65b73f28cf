package repository

import (
	"context"
	"fmt"
	"sync"

	"github.com/cinetix/booking-engine/internal/domain"
	"github.com/google/uuid"
)

// InMemoryTicketLedger is an append-only record of finalized booking
// transactions. Entries are never mutated after Record.
type InMemoryTicketLedger struct {
	mu      sync.RWMutex
	byID    map[uuid.UUID]domain.Ticket
	byParty map[string][]uuid.UUID
}

func NewInMemoryTicketLedger() *InMemoryTicketLedger {
	return &InMemoryTicketLedger{
		byID:    make(map[uuid.UUID]domain.Ticket),
		byParty: make(map[string][]uuid.UUID),
	}
}

func (l *InMemoryTicketLedger) Record(ctx context.Context, ticket domain.Ticket) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.byID[ticket.TransactionID]; ok {
		return fmt.Errorf("ticket %s is already recorded", ticket.TransactionID)
	}

	l.byID[ticket.TransactionID] = ticket
	l.byParty[ticket.PartyID] = append(l.byParty[ticket.PartyID], ticket.TransactionID)

	return nil
}

func (l *InMemoryTicketLedger) Find(ctx context.Context, transactionID uuid.UUID) (*domain.Ticket, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	ticket, ok := l.byID[transactionID]
	if !ok {
		return nil, domain.ErrRecordNotFound
	}

	return &ticket, nil
}

func (l *InMemoryTicketLedger) FindByParty(ctx context.Context, partyID string) ([]domain.Ticket, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	ids := l.byParty[partyID]

	tickets := make([]domain.Ticket, 0, len(ids))
	for _, id := range ids {
		tickets = append(tickets, l.byID[id])
	}

	return tickets, nil
}
