package app

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/cinetix/booking-engine/api"
	"github.com/cinetix/booking-engine/internal/booking"
	"github.com/cinetix/booking-engine/internal/domain"
	"github.com/cinetix/booking-engine/internal/payment"
	"github.com/cinetix/booking-engine/internal/repository"
	"github.com/cinetix/booking-engine/internal/validator"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

const testShowID = "show-1"

func newTestApplication(holdTTL time.Duration) *application {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	ledger := repository.NewInMemoryTicketLedger()

	return &application{
		config:    config{env: "test", holdTTL: holdTTL},
		logger:    logger,
		validator: validator.NewValidator(),
		showRepo:  repository.NewInMemoryShowRepository(),
		ledger:    ledger,
		engine:    booking.NewEngine(ledger, holdTTL, logger),
		payments:  payment.NewProcessor(logger),
	}
}

func registerTestShow(t *testing.T, app *application, seats ...domain.SeatID) {
	t.Helper()

	if len(seats) == 0 {
		seats = []domain.SeatID{"A1", "A2", "A3"}
	}

	show := domain.Show{
		ID:          testShowID,
		MovieTitle:  "Interstellar",
		TheaterName: "PVR Hitech City",
		ScreenName:  "Screen 1",
		Location:    domain.LocationHyderabad,
		StartTime:   time.Date(2025, 6, 1, 18, 0, 0, 0, time.UTC),
		BasePrice:   decimal.NewFromInt(250),
		Seats:       seats,
	}

	require.NoError(t, app.showRepo.AddShow(context.Background(), show))
	require.NoError(t, app.engine.RegisterShow(&show))
}

func executeRequest(t *testing.T, app *application, method, url string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader

	if body != nil {
		jsonData, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(jsonData)
	}

	r := httptest.NewRequest(method, url, reader)
	r.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	app.routes().ServeHTTP(w, r)

	return w
}

func decodeResponse[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()

	var out T
	require.NoError(t, json.NewDecoder(w.Body).Decode(&out))

	return out
}

func checkErrorResponse(t *testing.T, w *httptest.ResponseRecorder, wantStatus int, wantErrMessage string) {
	t.Helper()

	if wantStatus >= 200 && wantStatus < 300 {
		return
	}

	switch wantStatus {
	case http.StatusUnprocessableEntity:
		resp := decodeResponse[api.ValidationErrorResponse](t, w)

		errorSet := make(map[string]bool)
		for _, vErr := range resp.ValidationErrors {
			errorSet[vErr.Issue] = true
		}

		if !errorSet[wantErrMessage] {
			t.Errorf("Expected validation error message '%s' not found in response", wantErrMessage)
		}

	default:
		resp := decodeResponse[api.ErrorResponse](t, w)

		if wantErrMessage != "" && !strings.Contains(resp.Message, wantErrMessage) {
			t.Errorf("Error message = %v, want substring %v", resp.Message, wantErrMessage)
		}
	}
}

// reserveTestSeats drives a reservation through the HTTP surface and returns
// the pending ticket.
func reserveTestSeats(t *testing.T, app *application, party string, seats ...string) api.Ticket {
	t.Helper()

	w := executeRequest(t, app, http.MethodPost, "/shows/"+testShowID+"/reservations", api.CreateReservationRequest{
		PartyId:    party,
		SeatIdList: seats,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	return decodeResponse[api.ReservationResponse](t, w).Ticket
}
