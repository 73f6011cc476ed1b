package flow

import (
	"context"

	"github.com/i474232898/city-forecast/internal/weather"
)

// Runner executes fetch effects against a data source.
type Runner struct {
	source weather.DataSource
}

func NewRunner(source weather.DataSource) *Runner {
	return &Runner{source: source}
}

// Run performs an effect and returns the intent carrying its result.
// Effects the host handles itself (navigation, sharing) return nil.
func (r *Runner) Run(ctx context.Context, eff Effect) Intent {
	switch eff := eff.(type) {
	case FetchCities:
		cities, err := r.source.SearchCity(ctx, eff.Query)
		return CitiesLoaded{Query: eff.Query, Cities: cities, Err: err}

	case FetchCurrent:
		cond, err := r.source.CurrentConditions(ctx, eff.Lat, eff.Lon)
		return CurrentLoaded{Conditions: cond, Err: err}

	case FetchForecast:
		samples, err := r.source.ForecastSamples(ctx, eff.City)
		if err != nil {
			return ForecastLoaded{Err: err}
		}
		return ForecastLoaded{Days: weather.SummarizeByDay(samples)}
	}
	return nil
}
