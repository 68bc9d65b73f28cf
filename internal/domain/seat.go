package domain

// SeatID is a stable identifier within a show's seat map, e.g. "A1".
type SeatID string

type SeatState uint8

const (
	SeatAvailable SeatState = iota
	SeatHeld
	SeatBooked
)

func (s SeatState) String() string {
	switch s {
	case SeatAvailable:
		return "AVAILABLE"
	case SeatHeld:
		return "HELD"
	case SeatBooked:
		return "BOOKED"
	default:
		return "UNKNOWN"
	}
}

// SeatStatus is a point-in-time view of a single seat, as exposed by seat maps.
// Expired holds are already folded back to AVAILABLE by the time this is built.
type SeatStatus struct {
	ID    SeatID
	State SeatState
}

// ReservationRequest is constructed by the caller and consumed once by the
// reservation coordinator. Seat IDs may contain duplicates; the coordinator
// deduplicates before acquiring.
type ReservationRequest struct {
	SeatIDs []SeatID
	PartyID string
}
