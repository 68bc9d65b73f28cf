package repository

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/cinetix/booking-engine/internal/domain"
)

// InMemoryShowRepository is the catalog registry: theaters keyed by location,
// shows keyed by ID and indexed by calendar date. Read-mostly, so a single
// RWMutex over the maps is enough.
type InMemoryShowRepository struct {
	mu         sync.RWMutex
	theaters   map[domain.Location][]domain.Theater
	shows      map[string]domain.Show
	showsByDay map[string][]string
}

func NewInMemoryShowRepository() *InMemoryShowRepository {
	return &InMemoryShowRepository{
		theaters:   make(map[domain.Location][]domain.Theater),
		shows:      make(map[string]domain.Show),
		showsByDay: make(map[string][]string),
	}
}

func (r *InMemoryShowRepository) AddTheater(ctx context.Context, theater domain.Theater) error {
	if theater.Name == "" {
		return fmt.Errorf("theater name must not be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.theaters[theater.Location] = append(r.theaters[theater.Location], theater)

	return nil
}

func (r *InMemoryShowRepository) AddShow(ctx context.Context, show domain.Show) error {
	if show.ID == "" {
		return fmt.Errorf("show ID must not be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.shows[show.ID]; ok {
		return fmt.Errorf("show %s already exists", show.ID)
	}

	r.shows[show.ID] = show

	day := dayKey(show.StartTime)
	r.showsByDay[day] = append(r.showsByDay[day], show.ID)

	return nil
}

func (r *InMemoryShowRepository) GetShowById(ctx context.Context, showID string) (*domain.Show, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	show, ok := r.shows[showID]
	if !ok {
		return nil, domain.ErrRecordNotFound
	}

	return &show, nil
}

func (r *InMemoryShowRepository) GetShowsByMovieAndDate(ctx context.Context, movieTitle string, date time.Time) ([]domain.Show, error) {
	return r.showsOn(date, func(s domain.Show) bool {
		return s.MovieTitle == movieTitle
	})
}

func (r *InMemoryShowRepository) GetShowsByLocationAndDate(ctx context.Context, location domain.Location, date time.Time) ([]domain.Show, error) {
	return r.showsOn(date, func(s domain.Show) bool {
		return s.Location == location
	})
}

func (r *InMemoryShowRepository) showsOn(date time.Time, match func(domain.Show) bool) ([]domain.Show, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var shows []domain.Show

	for _, id := range r.showsByDay[dayKey(date)] {
		if show := r.shows[id]; match(show) {
			shows = append(shows, show)
		}
	}

	return shows, nil
}

func dayKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}
