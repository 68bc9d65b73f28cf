package repository

import (
	"context"
	"testing"
	"time"

	"github.com/cinetix/booking-engine/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var showDate = time.Date(2025, 6, 1, 18, 0, 0, 0, time.UTC)

func catalogShow(id, movie string, location domain.Location, start time.Time) domain.Show {
	return domain.Show{
		ID:         id,
		MovieTitle: movie,
		Location:   location,
		StartTime:  start,
		BasePrice:  decimal.NewFromInt(250),
		Seats:      []domain.SeatID{"A1", "A2"},
	}
}

func TestInMemoryShowRepository_AddShow(t *testing.T) {
	repo := NewInMemoryShowRepository()

	require.NoError(t, repo.AddShow(context.Background(), catalogShow("s1", "Interstellar", domain.LocationHyderabad, showDate)))

	err := repo.AddShow(context.Background(), catalogShow("s1", "Interstellar", domain.LocationHyderabad, showDate))
	assert.Error(t, err, "duplicate show IDs must be rejected")

	err = repo.AddShow(context.Background(), domain.Show{})
	assert.Error(t, err)
}

func TestInMemoryShowRepository_GetShowById(t *testing.T) {
	repo := NewInMemoryShowRepository()
	show := catalogShow("s1", "Interstellar", domain.LocationHyderabad, showDate)

	require.NoError(t, repo.AddShow(context.Background(), show))

	got, err := repo.GetShowById(context.Background(), "s1")
	require.NoError(t, err)
	assert.Equal(t, show, *got)

	_, err = repo.GetShowById(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrRecordNotFound)
}

func TestInMemoryShowRepository_GetShowsByMovieAndDate(t *testing.T) {
	repo := NewInMemoryShowRepository()

	require.NoError(t, repo.AddShow(context.Background(), catalogShow("s1", "Interstellar", domain.LocationHyderabad, showDate)))
	require.NoError(t, repo.AddShow(context.Background(), catalogShow("s2", "Interstellar", domain.LocationRanchi, showDate.Add(3*time.Hour))))
	require.NoError(t, repo.AddShow(context.Background(), catalogShow("s3", "Dune", domain.LocationHyderabad, showDate)))
	require.NoError(t, repo.AddShow(context.Background(), catalogShow("s4", "Interstellar", domain.LocationHyderabad, showDate.AddDate(0, 0, 1))))

	shows, err := repo.GetShowsByMovieAndDate(context.Background(), "Interstellar", showDate)
	require.NoError(t, err)

	ids := make([]string, len(shows))
	for i, s := range shows {
		ids[i] = s.ID
	}

	assert.ElementsMatch(t, []string{"s1", "s2"}, ids)
}

func TestInMemoryShowRepository_GetShowsByLocationAndDate(t *testing.T) {
	repo := NewInMemoryShowRepository()

	require.NoError(t, repo.AddShow(context.Background(), catalogShow("s1", "Interstellar", domain.LocationHyderabad, showDate)))
	require.NoError(t, repo.AddShow(context.Background(), catalogShow("s2", "Dune", domain.LocationRanchi, showDate)))

	shows, err := repo.GetShowsByLocationAndDate(context.Background(), domain.LocationRanchi, showDate)
	require.NoError(t, err)

	require.Len(t, shows, 1)
	assert.Equal(t, "s2", shows[0].ID)
}

func TestInMemoryShowRepository_AddTheater(t *testing.T) {
	repo := NewInMemoryShowRepository()

	err := repo.AddTheater(context.Background(), domain.Theater{Name: "PVR Hitech City", Location: domain.LocationHyderabad})
	assert.NoError(t, err)

	err = repo.AddTheater(context.Background(), domain.Theater{})
	assert.Error(t, err)
}
