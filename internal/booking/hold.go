package booking

import (
	"sync"
	"time"

	"github.com/cinetix/booking-engine/internal/domain"
)

// seatHold is the per-seat state machine. Every transition is a single
// critical section guarded by the seat's own mutex, so operations on
// unrelated seats never contend. Expiry is lazy: each accessor folds a
// lapsed hold back to AVAILABLE before acting, no background sweeper runs.
type seatHold struct {
	mu        sync.Mutex
	state     domain.SeatState
	holder    string
	expiresAt time.Time
}

// expireLocked reclaims a lapsed hold. Callers must hold mu.
func (h *seatHold) expireLocked(now time.Time) {
	if h.state == domain.SeatHeld && now.After(h.expiresAt) {
		h.state = domain.SeatAvailable
		h.holder = ""
		h.expiresAt = time.Time{}
	}
}

func (h *seatHold) tryAcquire(holder string, ttl time.Duration, now time.Time) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.expireLocked(now)

	if h.state != domain.SeatAvailable {
		return false
	}

	h.state = domain.SeatHeld
	h.holder = holder
	h.expiresAt = now.Add(ttl)

	return true
}

// release vacates a HELD or BOOKED seat owned by holder. Stale or expired
// callers fall through as no-ops, which makes release idempotent.
func (h *seatHold) release(holder string, now time.Time) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.expireLocked(now)

	if h.state == domain.SeatAvailable || h.holder != holder {
		return
	}

	h.state = domain.SeatAvailable
	h.holder = ""
	h.expiresAt = time.Time{}
}

// confirm converts a live hold into a permanent booking. It fails if the
// hold has expired or belongs to someone else.
func (h *seatHold) confirm(holder string, now time.Time) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.expireLocked(now)

	if h.state != domain.SeatHeld || h.holder != holder {
		return false
	}

	h.state = domain.SeatBooked
	h.expiresAt = time.Time{}

	return true
}

func (h *seatHold) isAvailable(now time.Time) bool {
	return h.stateAt(now) == domain.SeatAvailable
}

func (h *seatHold) stateAt(now time.Time) domain.SeatState {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.expireLocked(now)

	return h.state
}
