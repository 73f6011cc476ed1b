package flow

import "github.com/i474232898/city-forecast/internal/weather"

// CitiesState is the city search screen.
type CitiesState struct {
	Status Status
	Query  string
	Cities []weather.City
	Err    string
}

// City search intents.
type (
	Search struct {
		Query string
	}
	CitiesLoaded struct {
		Query  string
		Cities []weather.City
		Err    error
	}
	Select struct {
		City weather.City
	}
)

func (Search) intent()       {}
func (CitiesLoaded) intent() {}
func (Select) intent()       {}

// ReduceCities applies an intent to the city search screen.
func ReduceCities(s CitiesState, in Intent) (CitiesState, []Effect) {
	switch in := in.(type) {
	case Search:
		return CitiesState{Status: StatusLoading, Query: in.Query}, []Effect{FetchCities{Query: in.Query}}

	case CitiesLoaded:
		// Results of a superseded search are dropped.
		if s.Status != StatusLoading || in.Query != s.Query {
			return s, nil
		}
		if in.Err != nil {
			return CitiesState{Status: StatusFailed, Query: s.Query, Err: errorMessage(in.Err)}, nil
		}
		return CitiesState{Status: StatusLoaded, Query: s.Query, Cities: in.Cities}, nil

	case Select:
		city := in.City
		return s, []Effect{Navigate{To: RouteWeather, City: &city}}
	}
	return s, nil
}
