package store

import (
	"errors"
	"sync"
	"time"

	"github.com/i474232898/city-forecast/internal/weather"
)

var (
	// ErrNotFound is returned when no fresh forecast is available for a city.
	ErrNotFound = errors.New("no forecast for city")
)

// entry holds the latest daily forecast for a city and when it was saved.
type entry struct {
	Days    []weather.DailyForecast
	SavedAt time.Time
}

// MemoryStore is a concurrency-safe in-memory store of daily forecasts.
type MemoryStore struct {
	mu sync.RWMutex

	// key: weather.CityKey of the city name
	data map[string]entry

	// optional max age for stored forecasts
	maxAge time.Duration

	now func() time.Time
}

// NewMemoryStore creates a new MemoryStore.
// If maxAge is <= 0, forecasts never expire.
func NewMemoryStore(maxAge time.Duration) *MemoryStore {
	return &MemoryStore{
		data:   make(map[string]entry),
		maxAge: maxAge,
		now:    time.Now,
	}
}

// SaveForecast replaces the stored forecast for a city.
func (s *MemoryStore) SaveForecast(city string, days []weather.DailyForecast) {
	key := weather.CityKey(city)

	stored := cloneDays(days)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.data[key] = entry{Days: stored, SavedAt: s.now()}
}

// GetLatest returns a copy of the stored forecast for a city.
// Expired forecasts read as ErrNotFound.
func (s *MemoryStore) GetLatest(city string) ([]weather.DailyForecast, error) {
	key := weather.CityKey(city)

	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.data[key]
	if !ok {
		return nil, ErrNotFound
	}
	if s.maxAge > 0 && s.now().Sub(e.SavedAt) > s.maxAge {
		return nil, ErrNotFound
	}

	return cloneDays(e.Days), nil
}

// cloneDays deep-copies days so callers never share descriptor slices with the store.
func cloneDays(days []weather.DailyForecast) []weather.DailyForecast {
	out := make([]weather.DailyForecast, len(days))
	copy(out, days)
	for i := range out {
		if out[i].Weather != nil {
			out[i].Weather = append([]weather.Descriptor(nil), out[i].Weather...)
		}
	}
	return out
}

// Cities returns the keys of all stored cities, fresh or not.
func (s *MemoryStore) Cities() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	keys := make([]string, 0, len(s.data))
	for k := range s.data {
		keys = append(keys, k)
	}
	return keys
}
