package app

import (
	"errors"
	"net/http"
	"time"

	"github.com/cinetix/booking-engine/api"
	"github.com/cinetix/booking-engine/internal/domain"
	"github.com/go-chi/chi/v5"
)

func (app *application) GetSeatMapByShow(w http.ResponseWriter, r *http.Request) {
	showID := chi.URLParam(r, "showID")

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

	statuses, err := app.engine.SeatMap(showID)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	resp := toSeatMapResponse(show, statuses)

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func toSeatMapResponse(show *domain.Show, statuses []domain.SeatStatus) api.SeatMapResponse {
	seats := make([]api.Seat, len(statuses))

	for i, v := range statuses {
		seats[i] = api.Seat{
			Id:        string(v.ID),
			State:     v.State.String(),
			Available: v.State == domain.SeatAvailable,
		}
	}

	return api.SeatMapResponse{
		ShowId:      show.ID,
		MovieTitle:  show.MovieTitle,
		TheaterName: show.TheaterName,
		ScreenName:  show.ScreenName,
		Date:        show.StartTime.Format(time.RFC1123),
		Seats:       seats,
	}
}
