package flow

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/i474232898/city-forecast/internal/weather"
	"github.com/i474232898/city-forecast/internal/weather/mock"
)

func TestCitiesSearchFlow(t *testing.T) {
	runner := NewRunner(mock.Source{})
	ctx := context.Background()

	s, effects := ReduceCities(CitiesState{}, Search{Query: "la"})
	if s.Status != StatusLoading {
		t.Fatalf("expected loading, got %s", s.Status)
	}
	if !reflect.DeepEqual(effects, []Effect{FetchCities{Query: "la"}}) {
		t.Fatalf("unexpected effects %+v", effects)
	}

	s, effects = ReduceCities(s, runner.Run(ctx, effects[0]))
	if s.Status != StatusLoaded || len(effects) != 0 {
		t.Fatalf("expected loaded without effects, got %s %+v", s.Status, effects)
	}
	if len(s.Cities) != 1 || s.Cities[0].Name != "La Plata" {
		t.Fatalf("unexpected cities %+v", s.Cities)
	}

	s, effects = ReduceCities(s, Select{City: s.Cities[0]})
	if len(effects) != 1 {
		t.Fatalf("expected one effect, got %+v", effects)
	}
	nav, ok := effects[0].(Navigate)
	if !ok || nav.To != RouteWeather || nav.City == nil || nav.City.Name != "La Plata" {
		t.Fatalf("unexpected navigation %+v", effects[0])
	}
	if s.Status != StatusLoaded {
		t.Fatalf("select should not change the screen state")
	}
}

func TestCitiesSearchFailure(t *testing.T) {
	runner := NewRunner(mock.Source{})

	s, effects := ReduceCities(CitiesState{}, Search{Query: mock.ErrorQuery})
	s, _ = ReduceCities(s, runner.Run(context.Background(), effects[0]))

	if s.Status != StatusFailed || s.Err == "" {
		t.Fatalf("expected failed state with message, got %+v", s)
	}
}

func TestCitiesDropsStaleResults(t *testing.T) {
	s, _ := ReduceCities(CitiesState{}, Search{Query: "cor"})
	s, _ = ReduceCities(s, Search{Query: "bue"})

	s, _ = ReduceCities(s, CitiesLoaded{Query: "cor", Cities: []weather.City{{Name: "Cordoba"}}})
	if s.Status != StatusLoading || s.Query != "bue" {
		t.Fatalf("stale result was applied: %+v", s)
	}

	s, _ = ReduceCities(s, CitiesLoaded{Query: "bue", Cities: []weather.City{{Name: "Buenos Aires"}}})
	if s.Status != StatusLoaded || s.Cities[0].Name != "Buenos Aires" {
		t.Fatalf("expected fresh result, got %+v", s)
	}
}

func TestForecastFlow(t *testing.T) {
	runner := NewRunner(mock.Source{})
	city := mock.Cities()[0]

	s, effects := ReduceForecast(ForecastState{City: city}, RefreshForecast{})
	if !reflect.DeepEqual(effects, []Effect{FetchForecast{City: "Cordoba"}}) {
		t.Fatalf("unexpected effects %+v", effects)
	}

	// Share before anything loaded is a no-op.
	if _, eff := ReduceForecast(s, Share{}); len(eff) != 0 {
		t.Fatalf("expected no share effect while loading, got %+v", eff)
	}

	s, _ = ReduceForecast(s, runner.Run(context.Background(), effects[0]))
	if s.Status != StatusLoaded || len(s.Days) != 3 {
		t.Fatalf("expected 3 loaded days, got %+v", s)
	}

	_, effects = ReduceForecast(s, Share{})
	share, ok := effects[0].(ShareText)
	if !ok || !strings.Contains(share.Message, "Max: 30.0°C") {
		t.Fatalf("unexpected share effect %+v", effects)
	}

	_, effects = ReduceForecast(s, ChangeCity{})
	if !reflect.DeepEqual(effects, []Effect{Navigate{To: RouteCities}}) {
		t.Fatalf("unexpected effects %+v", effects)
	}
}

func TestForecastFailure(t *testing.T) {
	runner := NewRunner(mock.Failing{})

	s, effects := ReduceForecast(ForecastState{City: mock.Cities()[1]}, RefreshForecast{})
	s, _ = ReduceForecast(s, runner.Run(context.Background(), effects[0]))

	if s.Status != StatusFailed || !strings.Contains(s.Err, "forecast unavailable") {
		t.Fatalf("expected failed state, got %+v", s)
	}
	if len(s.Days) != 0 {
		t.Fatalf("failed state should carry no days")
	}
}

func TestCurrentFlow(t *testing.T) {
	runner := NewRunner(mock.Source{})
	city := weather.City{Name: "Madrid", Lat: 40.4168, Lon: -3.7038}

	s, effects := ReduceCurrent(CurrentState{City: city}, RefreshCurrent{})
	if !reflect.DeepEqual(effects, []Effect{FetchCurrent{Lat: 40.4168, Lon: -3.7038}}) {
		t.Fatalf("unexpected effects %+v", effects)
	}

	s, _ = ReduceCurrent(s, runner.Run(context.Background(), effects[0]))
	if s.Status != StatusLoaded || s.Conditions.Coord.Lat != 40.4168 {
		t.Fatalf("unexpected state %+v", s)
	}

	// A result arriving outside a load is ignored.
	s2, _ := ReduceCurrent(s, CurrentLoaded{Err: errors.New("late failure")})
	if s2.Status != StatusLoaded {
		t.Fatalf("late result changed state: %+v", s2)
	}
}

func TestErrorMessageFallback(t *testing.T) {
	s, _ := ReduceCurrent(CurrentState{}, RefreshCurrent{})
	s, _ = ReduceCurrent(s, CurrentLoaded{Err: errors.New("")})
	if s.Err != unknownError {
		t.Fatalf("expected %q, got %q", unknownError, s.Err)
	}
}

func TestRunnerIgnoresHostEffects(t *testing.T) {
	runner := NewRunner(mock.Failing{})
	if in := runner.Run(context.Background(), Navigate{To: RouteCities}); in != nil {
		t.Fatalf("expected nil intent, got %+v", in)
	}
	if in := runner.Run(context.Background(), ShareText{Message: "hi"}); in != nil {
		t.Fatalf("expected nil intent, got %+v", in)
	}
}
