package app

import (
	"errors"
	"net/http"

	"github.com/cinetix/booking-engine/api"
	"github.com/cinetix/booking-engine/internal/domain"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func (app *application) CreateReservationHandler(w http.ResponseWriter, r *http.Request) {
	logger := app.contextGetLogger(r)
	showID := chi.URLParam(r, "showID")

	var input api.CreateReservationRequest

	err := app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.validator.Struct(input)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	show, err := app.showRepo.GetShowById(r.Context(), showID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	seatIDs := make([]domain.SeatID, len(input.SeatIdList))
	for i, id := range input.SeatIdList {
		seatIDs[i] = domain.SeatID(id)
	}

	req := domain.ReservationRequest{
		SeatIDs: seatIDs,
		PartyID: input.PartyId,
	}

	amount := show.BasePrice.Mul(decimal.NewFromInt(int64(len(seatIDs))))

	txn, err := app.engine.Reserve(r.Context(), showID, req, amount)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrSeatUnavailable):
			logger.Warn("reservation conflict: seat already held or booked", "show_id", showID)
			app.editConflictResponseWithErr(w, r, err)
		case errors.Is(err, domain.ErrUnknownSeat):
			app.notFoundResponseWithErr(w, r, err)
		case errors.Is(err, domain.ErrInvalidRequest):
			app.badRequestResponse(w, r, err)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	resp := api.ReservationResponse{
		Ticket:   toApiTicket(txn.Ticket()),
		HoldTime: int(app.config.holdTTL.Seconds()),
	}

	err = app.writeJSON(w, http.StatusCreated, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) GetTicketHandler(w http.ResponseWriter, r *http.Request) {
	ticketID, ok := app.parseTicketID(w, r)
	if !ok {
		return
	}

	ticket, err := app.engine.Ticket(r.Context(), ticketID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	err = app.writeJSON(w, http.StatusOK, toApiTicket(ticket), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) CancelReservationHandler(w http.ResponseWriter, r *http.Request) {
	logger := app.contextGetLogger(r)

	ticketID, ok := app.parseTicketID(w, r)
	if !ok {
		return
	}

	ticket, err := app.engine.Cancel(r.Context(), ticketID, "cancelled by caller")
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	logger.Info("reservation cancelled", "transaction_id", ticket.TransactionID)

	err = app.writeJSON(w, http.StatusOK, toApiTicket(ticket), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) GetTicketsOfPartyHandler(w http.ResponseWriter, r *http.Request) {
	partyID := chi.URLParam(r, "partyID")
	if partyID == "" {
		app.badRequestResponse(w, r, errors.New("party ID must not be empty"))
		return
	}

	tickets, err := app.ledger.FindByParty(r.Context(), partyID)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	resp := api.PartyTicketsResponse{
		Tickets: make([]api.Ticket, len(tickets)),
	}
	for i, t := range tickets {
		resp.Tickets[i] = toApiTicket(t)
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) parseTicketID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	ticketID, err := uuid.Parse(chi.URLParam(r, "ticketID"))
	if err != nil {
		app.badRequestResponse(w, r, errors.New("ticket ID must be a valid UUID"))
		return uuid.Nil, false
	}

	return ticketID, true
}

func toApiTicket(ticket domain.Ticket) api.Ticket {
	seatIds := make([]string, len(ticket.SeatIDs))
	for i, id := range ticket.SeatIDs {
		seatIds[i] = string(id)
	}

	return api.Ticket{
		TicketId: ticket.TransactionID.String(),
		ShowId:   ticket.ShowID,
		PartyId:  ticket.PartyID,
		SeatIds:  seatIds,
		Status:   string(ticket.Status),
		Amount:   ticket.Amount,
	}
}
