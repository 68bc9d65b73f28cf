package booking

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/cinetix/booking-engine/internal/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const DefaultHoldTTL = 5 * time.Minute

// Engine is the single authority for seat state and booking transactions.
// One coordinator per registered show keeps unrelated shows free of any
// shared lock; the engine-level mutex only guards the registries.
type Engine struct {
	holdTTL time.Duration
	now     func() time.Time
	logger  *slog.Logger
	ledger  domain.TicketLedger

	mu    sync.RWMutex
	shows map[string]*Coordinator
	txns  map[uuid.UUID]*Transaction
}

func NewEngine(ledger domain.TicketLedger, holdTTL time.Duration, logger *slog.Logger) *Engine {
	if holdTTL <= 0 {
		holdTTL = DefaultHoldTTL
	}

	return &Engine{
		holdTTL: holdTTL,
		now:     time.Now,
		logger:  logger,
		ledger:  ledger,
		shows:   make(map[string]*Coordinator),
		txns:    make(map[uuid.UUID]*Transaction),
	}
}

// RegisterShow creates the seat inventory for a show. The seat set is fixed
// from this point on.
func (e *Engine) RegisterShow(show *domain.Show) error {
	if show.ID == "" || len(show.Seats) == 0 {
		return fmt.Errorf("%w: show must have an ID and at least one seat", domain.ErrInvalidRequest)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if _, ok := e.shows[show.ID]; ok {
		return fmt.Errorf("%w: show %s is already registered", domain.ErrInvalidRequest, show.ID)
	}

	coord := NewCoordinator(show, e.holdTTL, e.logger)
	coord.now = e.now
	e.shows[show.ID] = coord

	return nil
}

// Reserve atomically holds the requested seats and opens a PENDING
// transaction for them. The amount comes from the pricing collaborator and
// is carried through opaquely.
func (e *Engine) Reserve(ctx context.Context, showID string, req domain.ReservationRequest, amount decimal.Decimal) (*Transaction, error) {
	if req.PartyID == "" {
		return nil, fmt.Errorf("%w: missing party ID", domain.ErrInvalidRequest)
	}

	coord, err := e.coordinator(showID)
	if err != nil {
		return nil, err
	}

	token, seatIDs, err := coord.Reserve(req)
	if err != nil {
		return nil, err
	}

	txn := newTransaction(showID, req.PartyID, token, seatIDs, amount, e.now())

	e.mu.Lock()
	e.txns[txn.id] = txn
	e.mu.Unlock()

	e.logger.Info("reservation held",
		"transaction_id", txn.id,
		"show_id", showID,
		"party_id", req.PartyID,
		"seats", len(seatIDs),
	)

	return txn, nil
}

// Reconcile settles a PENDING transaction against the payment outcome. PAID
// converts every hold into a permanent booking; FAILED releases them. If any
// hold lapsed between reservation and payment, the whole transaction is
// rolled back and the lapse is reported rather than swallowed. A transaction
// is reconciled at most once.
func (e *Engine) Reconcile(ctx context.Context, transactionID uuid.UUID, outcome domain.PaymentOutcome) (domain.Ticket, error) {
	txn, coord, err := e.transaction(transactionID)
	if err != nil {
		return domain.Ticket{}, err
	}

	txn.mu.Lock()
	defer txn.mu.Unlock()

	if txn.status != domain.TicketStatusPending {
		return txn.snapshot(), fmt.Errorf("%w: transaction %s is %s", domain.ErrInvalidStateTransition, txn.id, txn.status)
	}

	switch outcome {
	case domain.PaymentOutcomePaid:
		if err := coord.Confirm(txn.token, txn.seats); err != nil {
			txn.status = domain.TicketStatusCancelled
			e.finalize(ctx, txn)

			return txn.snapshot(), err
		}

		txn.status = domain.TicketStatusBooked
		e.finalize(ctx, txn)

	case domain.PaymentOutcomeFailed:
		coord.Release(txn.token, txn.seats)
		txn.status = domain.TicketStatusCancelled
		e.finalize(ctx, txn)

	default:
		return txn.snapshot(), fmt.Errorf("%w: unknown payment outcome %q", domain.ErrInvalidRequest, outcome)
	}

	e.logger.Info("transaction reconciled",
		"transaction_id", txn.id,
		"outcome", outcome,
		"status", txn.status,
	)

	return txn.snapshot(), nil
}

// Cancel releases or unbooks every seat of a PENDING or BOOKED transaction.
// Cancelling an already-CANCELLED transaction is a no-op.
func (e *Engine) Cancel(ctx context.Context, transactionID uuid.UUID, reason string) (domain.Ticket, error) {
	txn, coord, err := e.transaction(transactionID)
	if err != nil {
		return domain.Ticket{}, err
	}

	txn.mu.Lock()
	defer txn.mu.Unlock()

	if txn.status == domain.TicketStatusCancelled {
		return txn.snapshot(), nil
	}

	wasPending := txn.status == domain.TicketStatusPending

	coord.Release(txn.token, txn.seats)
	txn.status = domain.TicketStatusCancelled

	// A pending transaction reaches its terminal state here; a booked one was
	// already recorded when payment confirmed it.
	if wasPending {
		e.finalize(ctx, txn)
	}

	e.logger.Info("transaction cancelled", "transaction_id", txn.id, "reason", reason)

	return txn.snapshot(), nil
}

// Ticket returns the current snapshot of a transaction, pending or terminal.
func (e *Engine) Ticket(ctx context.Context, transactionID uuid.UUID) (domain.Ticket, error) {
	e.mu.RLock()
	txn, ok := e.txns[transactionID]
	e.mu.RUnlock()

	if !ok {
		return domain.Ticket{}, domain.ErrRecordNotFound
	}

	return txn.Ticket(), nil
}

func (e *Engine) SeatMap(showID string) ([]domain.SeatStatus, error) {
	coord, err := e.coordinator(showID)
	if err != nil {
		return nil, err
	}

	return coord.Snapshot(), nil
}

func (e *Engine) IsAvailable(showID string, seatID domain.SeatID) (bool, error) {
	coord, err := e.coordinator(showID)
	if err != nil {
		return false, err
	}

	return coord.IsAvailable(seatID)
}

func (e *Engine) coordinator(showID string) (*Coordinator, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	coord, ok := e.shows[showID]
	if !ok {
		return nil, fmt.Errorf("%w: show %s", domain.ErrRecordNotFound, showID)
	}

	return coord, nil
}

func (e *Engine) transaction(transactionID uuid.UUID) (*Transaction, *Coordinator, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	txn, ok := e.txns[transactionID]
	if !ok {
		return nil, nil, fmt.Errorf("%w: transaction %s", domain.ErrRecordNotFound, transactionID)
	}

	coord, ok := e.shows[txn.showID]
	if !ok {
		return nil, nil, fmt.Errorf("%w: show %s", domain.ErrRecordNotFound, txn.showID)
	}

	return txn, coord, nil
}

// finalize appends the terminal snapshot to the ledger. It runs under the
// transaction's mutex, and a transaction leaves PENDING exactly once, so the
// ledger sees at most one record per transaction even when cancel and
// reconcile race.
func (e *Engine) finalize(ctx context.Context, txn *Transaction) {
	if err := e.ledger.Record(ctx, txn.snapshot()); err != nil {
		e.logger.Error("failed to record ticket in ledger", "transaction_id", txn.id, "error", err)
	}
}
