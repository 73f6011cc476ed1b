package weather

import "strings"

// Condition represents a normalized high-level weather condition.
type Condition string

const (
	ConditionUnknown Condition = "unknown"
	ConditionClear   Condition = "clear"
	ConditionCloudy  Condition = "cloudy"
	ConditionRain    Condition = "rain"
	ConditionSnow    Condition = "snow"
	ConditionStorm   Condition = "storm"
	ConditionMist    Condition = "mist"
)

// Coord is a geographic position in decimal degrees.
type Coord struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// City is a location returned by the provider's geocoding search.
// State is empty when the provider does not report a region.
type City struct {
	Name    string  `json:"name"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
	Country string  `json:"country"`
	State   string  `json:"state,omitempty"`
}

// Key returns a canonical string key for indexing this city in stores.
func (c City) Key() string {
	return CityKey(c.Name)
}

// CityKey normalizes a city name for case-insensitive lookups.
func CityKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Descriptor is one weather-condition entry as reported by the provider.
type Descriptor struct {
	ID          int    `json:"id"`
	Main        string `json:"main"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

// Condition maps the provider category onto the normalized Condition set.
func (d Descriptor) Condition() Condition {
	switch d.Main {
	case "Clear":
		return ConditionClear
	case "Clouds":
		return ConditionCloudy
	case "Rain", "Drizzle":
		return ConditionRain
	case "Snow":
		return ConditionSnow
	case "Thunderstorm":
		return ConditionStorm
	case "Mist", "Fog", "Haze", "Smoke", "Dust":
		return ConditionMist
	default:
		return ConditionUnknown
	}
}

// Main is the numeric block shared by current conditions and forecast samples.
// Temperatures are in degrees Celsius (metric units).
type Main struct {
	Temp      float64 `json:"temp"`
	FeelsLike float64 `json:"feels_like"`
	TempMin   float64 `json:"temp_min"`
	TempMax   float64 `json:"temp_max"`
	Pressure  int64   `json:"pressure"`
	Humidity  int64   `json:"humidity"`
}

type Wind struct {
	Speed float64 `json:"speed"`
	Deg   int     `json:"deg"`
}

type Clouds struct {
	All int64 `json:"all"`
}

// CurrentConditions is a snapshot of the weather at a named location.
type CurrentConditions struct {
	Name    string       `json:"name"`
	Base    string       `json:"base"`
	Coord   Coord        `json:"coord"`
	Weather []Descriptor `json:"weather"`
	Main    Main         `json:"main"`
	Wind    Wind         `json:"wind"`
	Clouds  Clouds       `json:"clouds"`
}

// Condition returns the normalized condition of the first descriptor.
func (c CurrentConditions) Condition() Condition {
	if len(c.Weather) == 0 {
		return ConditionUnknown
	}
	return c.Weather[0].Condition()
}

// ForecastMain extends Main with the forecast-only pressure and correction fields.
type ForecastMain struct {
	Main
	SeaLevel  int64   `json:"sea_level"`
	GrndLevel int64   `json:"grnd_level"`
	TempKf    float64 `json:"temp_kf"`
}

// ForecastSample is one 3-hour prediction from the provider's forecast.
// DtTxt has the form "2006-01-02 15:04:05".
type ForecastSample struct {
	Dt      int64        `json:"dt"`
	DtTxt   string       `json:"dt_txt"`
	Main    ForecastMain `json:"main"`
	Weather []Descriptor `json:"weather,omitempty"`
	Wind    Wind         `json:"wind"`
	Clouds  Clouds       `json:"clouds"`
}

// DailyForecast summarizes all samples sharing a day key. TempMax and TempMin
// are reduced across the day; every other field comes from the first sample.
type DailyForecast struct {
	Day string `json:"day"`
	ForecastSample
}
