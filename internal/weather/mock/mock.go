// Package mock provides deterministic weather.DataSource implementations for
// tests and offline runs.
package mock

import (
	"context"
	"errors"

	"github.com/i474232898/city-forecast/internal/common"
	"github.com/i474232898/city-forecast/internal/weather"
)

// ErrorQuery is the search query on which Source simulates a provider failure.
const ErrorQuery = "error"

// Source always succeeds with canned data, except for ErrorQuery searches.
type Source struct{}

var _ weather.DataSource = Source{}

// Cities returns the fixed city list searched by Source.
func Cities() []weather.City {
	return []weather.City{
		{Name: "Cordoba", Lat: -23.0, Lon: -24.3, Country: "Argentina"},
		{Name: "Buenos Aires", Lat: -23.0, Lon: -24.3, Country: "Argentina"},
		{Name: "La Plata", Lat: -23.0, Lon: -24.3, Country: "Argentina"},
	}
}

// SearchCity filters Cities by case-insensitive substring match on the name.
func (Source) SearchCity(_ context.Context, query string) ([]weather.City, error) {
	if query == ErrorQuery {
		return nil, &weather.ProviderError{Op: "mock: search city", Err: errors.New("search failed")}
	}

	cities := make([]weather.City, 0)
	for _, c := range Cities() {
		if common.ContainsFold(c.Name, query) {
			cities = append(cities, c)
		}
	}
	return cities, nil
}

// CurrentConditions returns a fixed snapshot located at the requested coordinates.
func (Source) CurrentConditions(_ context.Context, lat, lon float64) (weather.CurrentConditions, error) {
	return weather.CurrentConditions{
		Name:  "Cordoba",
		Base:  "stations",
		Coord: weather.Coord{Lat: lat, Lon: lon},
		Weather: []weather.Descriptor{
			{ID: 801, Main: "Clouds", Description: "scattered clouds", Icon: "02d"},
		},
		Main: weather.Main{
			Temp:      25.0,
			FeelsLike: 23.0,
			TempMin:   22.0,
			TempMax:   28.0,
			Pressure:  1015,
			Humidity:  65,
		},
		Wind:   weather.Wind{Speed: 5.0, Deg: 90},
		Clouds: weather.Clouds{All: 40},
	}, nil
}

// ForecastSamples returns one sample on each of three consecutive days.
func (Source) ForecastSamples(_ context.Context, _ string) ([]weather.ForecastSample, error) {
	return []weather.ForecastSample{
		sample(1234567890, "2024-11-17 12:00:00", 25.0, 23.0, 20.0, 30.0, 1013, 60, 1010, 1013),
		sample(1234567891, "2024-11-18 12:00:00", 22.0, 20.0, 18.0, 26.0, 1012, 65, 1008, 1011),
		sample(1234567892, "2024-11-19 12:00:00", 23.0, 21.0, 19.0, 27.0, 1014, 62, 1011, 1012),
	}, nil
}

func sample(dt int64, txt string, temp, feels, lo, hi float64, pressure, humidity, grnd, sea int64) weather.ForecastSample {
	return weather.ForecastSample{
		Dt:    dt,
		DtTxt: txt,
		Main: weather.ForecastMain{
			Main: weather.Main{
				Temp:      temp,
				FeelsLike: feels,
				TempMin:   lo,
				TempMax:   hi,
				Pressure:  pressure,
				Humidity:  humidity,
			},
			GrndLevel: grnd,
			SeaLevel:  sea,
		},
	}
}

// Failing fails every operation with a fixed provider error.
type Failing struct{}

var _ weather.DataSource = Failing{}

func (Failing) SearchCity(context.Context, string) ([]weather.City, error) {
	return nil, &weather.ProviderError{Op: "mock: search city", Err: errors.New("city search failed")}
}

func (Failing) CurrentConditions(context.Context, float64, float64) (weather.CurrentConditions, error) {
	return weather.CurrentConditions{}, &weather.ProviderError{Op: "mock: current conditions", Err: errors.New("current conditions unavailable")}
}

func (Failing) ForecastSamples(context.Context, string) ([]weather.ForecastSample, error) {
	return nil, &weather.ProviderError{Op: "mock: forecast", Err: errors.New("forecast unavailable")}
}
