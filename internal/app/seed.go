package app

import (
	"context"
	"fmt"
	"time"

	"github.com/cinetix/booking-engine/internal/domain"
	"github.com/shopspring/decimal"
)

// seedCatalog registers a small fixture catalog so a dev instance is usable
// out of the box. Production deployments are expected to load the catalog
// from the real catalog collaborator instead.
func (app *application) seedCatalog(ctx context.Context) error {
	screen := domain.Screen{Name: "Screen 1", Seats: seatGrid(5, 8)}

	theaters := []domain.Theater{
		{Name: "PVR Hitech City", Location: domain.LocationHyderabad, Screens: []domain.Screen{screen}},
		{Name: "Eylex Ranchi", Location: domain.LocationRanchi, Screens: []domain.Screen{screen}},
	}

	today := time.Now().Truncate(24 * time.Hour)

	shows := []domain.Show{
		{
			ID:          "show-hyd-1800",
			MovieTitle:  "Interstellar",
			TheaterName: theaters[0].Name,
			ScreenName:  screen.Name,
			Location:    domain.LocationHyderabad,
			StartTime:   today.Add(18 * time.Hour),
			Duration:    169 * time.Minute,
			BasePrice:   decimal.NewFromInt(250),
			Seats:       screen.Seats,
		},
		{
			ID:          "show-ixr-2100",
			MovieTitle:  "Interstellar",
			TheaterName: theaters[1].Name,
			ScreenName:  screen.Name,
			Location:    domain.LocationRanchi,
			StartTime:   today.Add(21 * time.Hour),
			Duration:    169 * time.Minute,
			BasePrice:   decimal.NewFromInt(180),
			Seats:       screen.Seats,
		},
	}

	for _, theater := range theaters {
		if err := app.showRepo.AddTheater(ctx, theater); err != nil {
			return err
		}
	}

	for _, show := range shows {
		if err := app.showRepo.AddShow(ctx, show); err != nil {
			return err
		}

		if err := app.engine.RegisterShow(&show); err != nil {
			return err
		}
	}

	app.logger.Info("seeded dev catalog", "theaters", len(theaters), "shows", len(shows))

	return nil
}

// seatGrid builds seat IDs row by row: A1..A8, B1..B8, and so on.
func seatGrid(rows, cols int) []domain.SeatID {
	seats := make([]domain.SeatID, 0, rows*cols)

	for row := 0; row < rows; row++ {
		for col := 1; col <= cols; col++ {
			seats = append(seats, domain.SeatID(fmt.Sprintf("%c%d", 'A'+row, col)))
		}
	}

	return seats
}
