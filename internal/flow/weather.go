package flow

import "github.com/i474232898/city-forecast/internal/weather"

// CurrentState is the current-conditions panel for the selected city.
type CurrentState struct {
	City       weather.City
	Status     Status
	Conditions weather.CurrentConditions
	Err        string
}

// ForecastState is the daily forecast panel for the selected city.
type ForecastState struct {
	City   weather.City
	Status Status
	Days   []weather.DailyForecast
	Err    string
}

// Weather screen intents.
type (
	RefreshCurrent struct{}
	CurrentLoaded  struct {
		Conditions weather.CurrentConditions
		Err        error
	}
	RefreshForecast struct{}
	ForecastLoaded  struct {
		Days []weather.DailyForecast
		Err  error
	}
	ChangeCity struct{}
	Share      struct{}
)

func (RefreshCurrent) intent()  {}
func (CurrentLoaded) intent()   {}
func (RefreshForecast) intent() {}
func (ForecastLoaded) intent()  {}
func (ChangeCity) intent()      {}
func (Share) intent()           {}

// ReduceCurrent applies an intent to the current-conditions panel.
func ReduceCurrent(s CurrentState, in Intent) (CurrentState, []Effect) {
	switch in := in.(type) {
	case RefreshCurrent:
		return CurrentState{City: s.City, Status: StatusLoading},
			[]Effect{FetchCurrent{Lat: s.City.Lat, Lon: s.City.Lon}}

	case CurrentLoaded:
		if s.Status != StatusLoading {
			return s, nil
		}
		if in.Err != nil {
			return CurrentState{City: s.City, Status: StatusFailed, Err: errorMessage(in.Err)}, nil
		}
		return CurrentState{City: s.City, Status: StatusLoaded, Conditions: in.Conditions}, nil

	case ChangeCity:
		return s, []Effect{Navigate{To: RouteCities}}
	}
	return s, nil
}

// ReduceForecast applies an intent to the daily forecast panel.
func ReduceForecast(s ForecastState, in Intent) (ForecastState, []Effect) {
	switch in := in.(type) {
	case RefreshForecast:
		return ForecastState{City: s.City, Status: StatusLoading},
			[]Effect{FetchForecast{City: s.City.Name}}

	case ForecastLoaded:
		if s.Status != StatusLoading {
			return s, nil
		}
		if in.Err != nil {
			return ForecastState{City: s.City, Status: StatusFailed, Err: errorMessage(in.Err)}, nil
		}
		return ForecastState{City: s.City, Status: StatusLoaded, Days: in.Days}, nil

	case ChangeCity:
		return s, []Effect{Navigate{To: RouteCities}}

	case Share:
		if s.Status != StatusLoaded || len(s.Days) == 0 {
			return s, nil
		}
		return s, []Effect{ShareText{Message: weather.ShareMessage(s.Days[0])}}
	}
	return s, nil
}
