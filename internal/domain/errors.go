package domain

import "errors"

var (
	ErrRecordNotFound         = errors.New("record not found")
	ErrInvalidRequest         = errors.New("invalid reservation request")
	ErrUnknownSeat            = errors.New("seat does not belong to the show")
	ErrSeatUnavailable        = errors.New("seat(s) are already held or booked")
	ErrHoldExpired            = errors.New("seat hold expired before payment completed")
	ErrInvalidStateTransition = errors.New("transaction is no longer in a state that allows this operation")
)
