// Package api defines the request and response types of the HTTP surface.
package api

import (
	"time"

	"github.com/shopspring/decimal"
)

type ErrorResponse struct {
	Message   string    `json:"message"`
	RequestId string    `json:"requestId"`
	Timestamp time.Time `json:"timestamp"`
}

type ValidationError struct {
	Field string `json:"field"`
	Issue string `json:"issue"`
}

type ValidationErrorResponse struct {
	Message          string            `json:"message"`
	RequestId        string            `json:"requestId"`
	Timestamp        time.Time         `json:"timestamp"`
	ValidationErrors []ValidationError `json:"validationErrors"`
}

type SystemInfo struct {
	Version     string `json:"version"`
	Environment string `json:"environment"`
}

type HealthcheckResponse struct {
	Status     string     `json:"status"`
	SystemInfo SystemInfo `json:"systemInfo"`
}

type Seat struct {
	Id        string `json:"id"`
	State     string `json:"state"`
	Available bool   `json:"available"`
}

type SeatMapResponse struct {
	ShowId      string `json:"showId"`
	MovieTitle  string `json:"movieTitle"`
	TheaterName string `json:"theaterName"`
	ScreenName  string `json:"screenName"`
	Date        string `json:"date"`
	Seats       []Seat `json:"seats"`
}

type CreateReservationRequest struct {
	PartyId    string   `json:"partyId" validate:"required"`
	SeatIdList []string `json:"seatIdList" validate:"required,min=1,max=8,dive,seat_id"`
}

type Ticket struct {
	TicketId string          `json:"ticketId"`
	ShowId   string          `json:"showId"`
	PartyId  string          `json:"partyId"`
	SeatIds  []string        `json:"seatIds"`
	Status   string          `json:"status"`
	Amount   decimal.Decimal `json:"amount"`
}

type ReservationResponse struct {
	Ticket   Ticket `json:"ticket"`
	HoldTime int    `json:"holdTime"`
}

type PaymentRequest struct {
	Method     string `json:"method" validate:"required,payment_method"`
	UpiId      string `json:"upiId,omitempty"`
	CardNumber string `json:"cardNumber,omitempty"`
	BankCode   string `json:"bankCode,omitempty"`
}

type PaymentResponse struct {
	Outcome string `json:"outcome"`
	Ticket  Ticket `json:"ticket"`
}

type PartyTicketsResponse struct {
	Tickets []Ticket `json:"tickets"`
}
