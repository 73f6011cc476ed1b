package weather

import (
	"context"
)

// DataSource abstracts the remote weather provider (OpenWeatherMap, or the
// canned sources in the mock package).
//
// Each call performs at most one outbound request. Failures are either a
// *NetworkError or a *ProviderError; an empty result is never an error.
// Implementations guarded by a circuit breaker report an open circuit as a
// *NetworkError and send no request, even if the provider is reachable.
type DataSource interface {
	SearchCity(ctx context.Context, query string) ([]City, error)
	CurrentConditions(ctx context.Context, lat, lon float64) (CurrentConditions, error)
	ForecastSamples(ctx context.Context, cityName string) ([]ForecastSample, error)
}

// ForecastStore is the contract the in-memory store (and any future persistent store) must satisfy.
type ForecastStore interface {
	SaveForecast(city string, days []DailyForecast)
	GetLatest(city string) ([]DailyForecast, error)
}
