package app

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/cinetix/booking-engine/api"
	"github.com/cinetix/booking-engine/internal/domain"
)

// SubmitPaymentHandler runs the payment for a pending reservation and
// reconciles the transaction with its outcome. A declined payment is a normal
// flow, not an error: the reservation ends up CANCELLED and the caller sees
// the FAILED outcome.
func (app *application) SubmitPaymentHandler(w http.ResponseWriter, r *http.Request) {
	logger := app.contextGetLogger(r)

	ticketID, ok := app.parseTicketID(w, r)
	if !ok {
		return
	}

	var input api.PaymentRequest

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

	pending, err := app.engine.Ticket(r.Context(), ticketID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	// Don't charge for a reservation that can no longer be reconciled.
	if pending.Status != domain.TicketStatusPending {
		app.editConflictResponseWithErr(w, r,
			fmt.Errorf("%w: transaction %s is %s", domain.ErrInvalidStateTransition, ticketID, pending.Status))
		return
	}

	paymentReq := domain.PaymentRequest{
		PartyID:    pending.PartyID,
		Amount:     pending.Amount,
		Method:     domain.PaymentMethod(input.Method),
		UPIID:      input.UpiId,
		CardNumber: input.CardNumber,
		BankCode:   input.BankCode,
	}

	outcome, payErr := app.payments.Process(r.Context(), paymentReq)
	if payErr != nil {
		logger.Warn("payment did not complete", "transaction_id", ticketID, "error", payErr)
	}

	ticket, err := app.engine.Reconcile(r.Context(), ticketID, outcome)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrHoldExpired):
			logger.Warn("hold expired between reservation and payment", "transaction_id", ticketID)
			app.editConflictResponseWithErr(w, r, err)
		case errors.Is(err, domain.ErrInvalidStateTransition):
			app.editConflictResponseWithErr(w, r, err)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	resp := api.PaymentResponse{
		Outcome: string(outcome),
		Ticket:  toApiTicket(ticket),
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}
