// Package flow models the search → select → view screens as pure state
// machines. A reducer maps (State, Intent) to a new State plus the effects to
// run; a Runner executes those effects and feeds the result back as an Intent.
package flow

import "github.com/i474232898/city-forecast/internal/weather"

// Status is the lifecycle of a screen's data.
type Status int

const (
	StatusIdle Status = iota
	StatusLoading
	StatusLoaded
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusLoading:
		return "loading"
	case StatusLoaded:
		return "loaded"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Intent is an input to a reducer: a user action or an effect result.
type Intent interface {
	intent()
}

// Effect is work requested by a reducer.
type Effect interface {
	effect()
}

// Route names a screen.
type Route string

const (
	RouteCities  Route = "cities"
	RouteWeather Route = "weather"
)

// Effects.
type (
	FetchCities struct {
		Query string
	}
	FetchCurrent struct {
		Lat, Lon float64
	}
	FetchForecast struct {
		City string
	}
	// Navigate asks the host to show another screen. City is set for RouteWeather.
	Navigate struct {
		To   Route
		City *weather.City
	}
	// ShareText asks the host to share a message.
	ShareText struct {
		Message string
	}
)

func (FetchCities) effect()   {}
func (FetchCurrent) effect()  {}
func (FetchForecast) effect() {}
func (Navigate) effect()      {}
func (ShareText) effect()     {}

const unknownError = "unknown error"

func errorMessage(err error) string {
	if err == nil || err.Error() == "" {
		return unknownError
	}
	return err.Error()
}
