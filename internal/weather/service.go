package weather

import (
	"context"
	"fmt"
	"log"
	"strings"
)

// Service orchestrates the data source, the daily aggregation and the forecast store.
type Service struct {
	source DataSource
	store  ForecastStore
}

// NewService creates a new Service.
func NewService(source DataSource, store ForecastStore) *Service {
	return &Service{
		source: source,
		store:  store,
	}
}

// SearchCity delegates to the data source.
func (s *Service) SearchCity(ctx context.Context, query string) ([]City, error) {
	return s.source.SearchCity(ctx, query)
}

// CurrentConditions delegates to the data source.
func (s *Service) CurrentConditions(ctx context.Context, lat, lon float64) (CurrentConditions, error) {
	return s.source.CurrentConditions(ctx, lat, lon)
}

// ForecastSamples returns the raw samples without aggregation.
func (s *Service) ForecastSamples(ctx context.Context, city string) ([]ForecastSample, error) {
	return s.source.ForecastSamples(ctx, city)
}

// DailyForecast fetches the raw samples for a city and summarizes them per day.
// Data source errors are returned unmodified.
func (s *Service) DailyForecast(ctx context.Context, city string) ([]DailyForecast, error) {
	samples, err := s.source.ForecastSamples(ctx, city)
	if err != nil {
		return nil, err
	}

	days := SummarizeByDay(samples)
	log.Printf("DEBUG: summarized %d samples into %d days for %s", len(samples), len(days), city)
	return days, nil
}

// RefreshForecast recomputes the daily forecast for a city and stores it.
// On failure the previously stored forecast is kept.
func (s *Service) RefreshForecast(ctx context.Context, city string) error {
	if s.store == nil {
		return fmt.Errorf("no forecast store configured")
	}

	days, err := s.DailyForecast(ctx, city)
	if err != nil {
		return err
	}

	s.store.SaveForecast(city, days)
	return nil
}

// LatestForecast returns the last stored daily forecast for a city.
func (s *Service) LatestForecast(city string) ([]DailyForecast, error) {
	if s.store == nil {
		return nil, fmt.Errorf("no forecast store configured")
	}
	return s.store.GetLatest(city)
}

// ShareMessage renders the plain-text summary of a day that callers share.
func ShareMessage(d DailyForecast) string {
	var b strings.Builder
	fmt.Fprintln(&b, "Current weather:")
	fmt.Fprintf(&b, "Temperature: %.1f°C\n", d.Main.Temp)
	fmt.Fprintf(&b, "Feels like: %.1f°C\n", d.Main.FeelsLike)
	fmt.Fprintf(&b, "Max: %.1f°C\n", d.Main.TempMax)
	fmt.Fprintf(&b, "Min: %.1f°C\n", d.Main.TempMin)
	fmt.Fprintf(&b, "Humidity: %d%%", d.Main.Humidity)
	return b.String()
}
