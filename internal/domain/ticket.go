package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type TicketStatus string

const (
	TicketStatusPending   TicketStatus = "PENDING"
	TicketStatusBooked    TicketStatus = "BOOKED"
	TicketStatusCancelled TicketStatus = "CANCELLED"
)

// Ticket is an immutable snapshot of a booking transaction, appended to the
// ledger exactly once when the transaction leaves PENDING.
type Ticket struct {
	TransactionID uuid.UUID
	PartyID       string
	ShowID        string
	SeatIDs       []SeatID
	Status        TicketStatus
	Amount        decimal.Decimal
	IssuedAt      time.Time
}

type TicketLedger interface {
	Record(ctx context.Context, ticket Ticket) error
	Find(ctx context.Context, transactionID uuid.UUID) (*Ticket, error)
	FindByParty(ctx context.Context, partyID string) ([]Ticket, error)
}
