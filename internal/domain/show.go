package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

type Location string

const (
	LocationHyderabad Location = "HYD"
	LocationRanchi    Location = "IXR"
)

type Theater struct {
	Name     string
	Location Location
	Screens  []Screen
}

type Screen struct {
	Name  string
	Seats []SeatID
}

// Show binds a movie to a screen at a start time. The seat set is fixed at
// registration and never mutated by the booking engine.
type Show struct {
	ID          string
	MovieTitle  string
	TheaterName string
	ScreenName  string
	Location    Location
	StartTime   time.Time
	Duration    time.Duration
	BasePrice   decimal.Decimal
	Seats       []SeatID
}

type ShowRepository interface {
	AddTheater(ctx context.Context, theater Theater) error
	AddShow(ctx context.Context, show Show) error
	GetShowById(ctx context.Context, showID string) (*Show, error)
	GetShowsByMovieAndDate(ctx context.Context, movieTitle string, date time.Time) ([]Show, error)
	GetShowsByLocationAndDate(ctx context.Context, location Location, date time.Time) ([]Show, error)
}
