package app

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (app *application) routes() http.Handler {
	r := chi.NewRouter()

	r.NotFound(app.notFoundResponse)

	r.Use(middleware.RequestID)
	r.Use(app.requestLogger)
	r.Use(app.recoverPanic)

	r.Get("/healthcheck", app.GetHealth)

	r.Route("/shows/{showID}", func(r chi.Router) {
		r.Get("/seats", app.GetSeatMapByShow)
		r.Post("/reservations", app.CreateReservationHandler)
	})

	r.Route("/reservations/{ticketID}", func(r chi.Router) {
		r.Get("/", app.GetTicketHandler)
		r.Post("/payment", app.SubmitPaymentHandler)
		r.Delete("/", app.CancelReservationHandler)
	})

	r.Get("/parties/{partyID}/tickets", app.GetTicketsOfPartyHandler)

	return r
}
