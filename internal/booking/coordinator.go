package booking

import (
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/cinetix/booking-engine/internal/domain"
	"github.com/google/uuid"
)

// Coordinator owns every seat-state transition for a single show. Multi-seat
// holds are all-or-nothing: seats are acquired in sorted order, and the first
// contested seat rolls back everything acquired in the attempt before the
// error is returned. The sorted order is also what prevents two overlapping
// requests from deadlocking or interleaving unsafely.
type Coordinator struct {
	showID  string
	holdTTL time.Duration
	now     func() time.Time
	logger  *slog.Logger

	// seats is populated once at construction and never resized, so the map
	// itself needs no locking; only the hold cells mutate.
	seats map[domain.SeatID]*seatHold
}

func NewCoordinator(show *domain.Show, holdTTL time.Duration, logger *slog.Logger) *Coordinator {
	seats := make(map[domain.SeatID]*seatHold, len(show.Seats))
	for _, id := range show.Seats {
		seats[id] = &seatHold{}
	}

	return &Coordinator{
		showID:  show.ID,
		holdTTL: holdTTL,
		now:     time.Now,
		logger:  logger,
		seats:   seats,
	}
}

// Reserve attempts to hold every requested seat. On success it returns a
// fresh holder token bound to the full deduplicated, sorted seat set; on
// failure no seat in the request remains held.
func (c *Coordinator) Reserve(req domain.ReservationRequest) (string, []domain.SeatID, error) {
	seatIDs, err := c.normalize(req.SeatIDs)
	if err != nil {
		return "", nil, err
	}

	token := uuid.New().String()
	now := c.now()

	acquired := make([]domain.SeatID, 0, len(seatIDs))

	for _, id := range seatIDs {
		if !c.seats[id].tryAcquire(token, c.holdTTL, now) {
			for _, held := range acquired {
				c.seats[held].release(token, now)
			}

			c.logger.Warn("reservation lost race for contested seat", "show_id", c.showID, "seat_id", id)

			return "", nil, fmt.Errorf("%w: seat %s", domain.ErrSeatUnavailable, id)
		}

		acquired = append(acquired, id)
	}

	return token, seatIDs, nil
}

// Release vacates every given seat owned by token, whether held or booked.
// Seats that expired or changed hands in the meantime are skipped.
func (c *Coordinator) Release(token string, seatIDs []domain.SeatID) {
	now := c.now()

	for _, id := range seatIDs {
		hold, ok := c.seats[id]
		if !ok {
			continue
		}

		hold.release(token, now)
	}
}

// Confirm converts every hold owned by token into a permanent booking. If any
// seat fails (typically because its TTL lapsed between hold and payment), the
// whole set is rolled back to AVAILABLE, including seats already confirmed in
// this call.
func (c *Coordinator) Confirm(token string, seatIDs []domain.SeatID) error {
	now := c.now()

	for _, id := range seatIDs {
		if !c.seats[id].confirm(token, now) {
			c.Release(token, seatIDs)

			c.logger.Warn("hold lapsed before confirmation", "show_id", c.showID, "seat_id", id)

			return fmt.Errorf("%w: seat %s", domain.ErrHoldExpired, id)
		}
	}

	return nil
}

func (c *Coordinator) IsAvailable(seatID domain.SeatID) (bool, error) {
	hold, ok := c.seats[seatID]
	if !ok {
		return false, fmt.Errorf("%w: seat %s", domain.ErrUnknownSeat, seatID)
	}

	return hold.isAvailable(c.now()), nil
}

// Snapshot reports the effective state of every seat, sorted by seat ID.
func (c *Coordinator) Snapshot() []domain.SeatStatus {
	now := c.now()

	statuses := make([]domain.SeatStatus, 0, len(c.seats))
	for id, hold := range c.seats {
		statuses = append(statuses, domain.SeatStatus{ID: id, State: hold.stateAt(now)})
	}

	slices.SortFunc(statuses, func(a, b domain.SeatStatus) int {
		return cmpSeatID(a.ID, b.ID)
	})

	return statuses
}

// normalize deduplicates and sorts the requested seat IDs, and rejects empty
// sets and seats unknown to the show before anything is acquired.
func (c *Coordinator) normalize(seatIDs []domain.SeatID) ([]domain.SeatID, error) {
	if len(seatIDs) == 0 {
		return nil, fmt.Errorf("%w: empty seat set", domain.ErrInvalidRequest)
	}

	ids := slices.Clone(seatIDs)
	slices.SortFunc(ids, cmpSeatID)
	ids = slices.Compact(ids)

	for _, id := range ids {
		if _, ok := c.seats[id]; !ok {
			return nil, fmt.Errorf("%w: seat %s", domain.ErrUnknownSeat, id)
		}
	}

	return ids, nil
}

func cmpSeatID(a, b domain.SeatID) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
