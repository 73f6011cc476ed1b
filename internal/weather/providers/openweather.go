package providers

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"

	"github.com/i474232898/city-forecast/internal/weather"
)

const (
	defaultOpenWeatherURL = "https://api.openweathermap.org"
	defaultSearchLimit    = 100
)

// OpenWeatherProvider implements weather.DataSource against OpenWeatherMap.
// It holds no mutable state of its own; the breaker and limiter are safe for
// concurrent use.
type OpenWeatherProvider struct {
	name        string
	apiKey      string
	baseURL     string
	searchLimit int
	httpCfg     HTTPClientConfig
	circuit     *gobreaker.CircuitBreaker
}

// Option customizes an OpenWeatherProvider.
type Option func(*OpenWeatherProvider)

// WithBaseURL points the provider at another host, e.g. a test server.
func WithBaseURL(u string) Option {
	return func(p *OpenWeatherProvider) {
		if u != "" {
			p.baseURL = strings.TrimRight(u, "/")
		}
	}
}

// WithSearchLimit caps the number of cities a search returns.
func WithSearchLimit(n int) Option {
	return func(p *OpenWeatherProvider) {
		if n > 0 {
			p.searchLimit = n
		}
	}
}

// WithRateLimit throttles outbound calls to rps requests per second.
// A non-positive rps disables throttling.
func WithRateLimit(rps float64, burst int) Option {
	return func(p *OpenWeatherProvider) {
		if rps <= 0 {
			p.httpCfg.Limiter = nil
			return
		}
		if burst < 1 {
			burst = 1
		}
		p.httpCfg.Limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

func NewOpenWeatherProvider(client *http.Client, apiKey string, opts ...Option) *OpenWeatherProvider {
	p := &OpenWeatherProvider{
		name:        "openweathermap",
		apiKey:      apiKey,
		baseURL:     defaultOpenWeatherURL,
		searchLimit: defaultSearchLimit,
		httpCfg: HTTPClientConfig{
			Client: client,
		},
		circuit: newCircuitBreaker("openweather"),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *OpenWeatherProvider) Name() string {
	return p.name
}

// SearchCity looks cities up by free-text name using the geocoding endpoint.
// A blank query returns an empty result without contacting the provider.
func (p *OpenWeatherProvider) SearchCity(ctx context.Context, query string) ([]weather.City, error) {
	const op = "openweather: search city"

	query = strings.TrimSpace(query)
	if query == "" {
		return []weather.City{}, nil
	}

	values := url.Values{}
	values.Set("q", query)
	values.Set("limit", strconv.Itoa(p.searchLimit))

	var payload struct {
		Cities []struct {
			Name    string   `json:"name" validate:"required"`
			Lat     *float64 `json:"lat" validate:"required"`
			Lon     *float64 `json:"lon" validate:"required"`
			Country string   `json:"country"`
			State   string   `json:"state"`
		} `validate:"dive"`
	}

	if err := p.get(ctx, op, "/geo/1.0/direct", values, &payload.Cities, &payload); err != nil {
		return nil, err
	}

	cities := make([]weather.City, 0, len(payload.Cities))
	for _, c := range payload.Cities {
		cities = append(cities, weather.City{
			Name:    c.Name,
			Lat:     *c.Lat,
			Lon:     *c.Lon,
			Country: c.Country,
			State:   c.State,
		})
	}
	return cities, nil
}

// CurrentConditions fetches the current weather at a coordinate in metric units.
func (p *OpenWeatherProvider) CurrentConditions(ctx context.Context, lat, lon float64) (weather.CurrentConditions, error) {
	const op = "openweather: current conditions"

	values := url.Values{}
	values.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	values.Set("lon", strconv.FormatFloat(lon, 'f', -1, 64))
	values.Set("units", "metric")

	var payload struct {
		Name    string               `json:"name"`
		Base    string               `json:"base"`
		Coord   *weather.Coord       `json:"coord" validate:"required"`
		Weather []weather.Descriptor `json:"weather" validate:"required"`
		Main    *weather.Main        `json:"main" validate:"required"`
		Wind    weather.Wind         `json:"wind"`
		Clouds  weather.Clouds       `json:"clouds"`
	}

	if err := p.get(ctx, op, "/data/2.5/weather", values, &payload, &payload); err != nil {
		return weather.CurrentConditions{}, err
	}

	return weather.CurrentConditions{
		Name:    payload.Name,
		Base:    payload.Base,
		Coord:   *payload.Coord,
		Weather: payload.Weather,
		Main:    *payload.Main,
		Wind:    payload.Wind,
		Clouds:  payload.Clouds,
	}, nil
}

// ForecastSamples returns the raw 3-hour samples of the 5-day forecast, in
// provider order.
func (p *OpenWeatherProvider) ForecastSamples(ctx context.Context, cityName string) ([]weather.ForecastSample, error) {
	const op = "openweather: forecast"

	values := url.Values{}
	values.Set("q", cityName)
	values.Set("units", "metric")

	var payload struct {
		List []struct {
			Dt      *int64                `json:"dt" validate:"required"`
			DtTxt   string                `json:"dt_txt" validate:"required,min=10"`
			Main    *weather.ForecastMain `json:"main" validate:"required"`
			Weather []weather.Descriptor  `json:"weather"`
			Wind    weather.Wind          `json:"wind"`
			Clouds  weather.Clouds        `json:"clouds"`
		} `json:"list" validate:"required,dive"`
	}

	if err := p.get(ctx, op, "/data/2.5/forecast", values, &payload, &payload); err != nil {
		return nil, err
	}

	samples := make([]weather.ForecastSample, 0, len(payload.List))
	for _, item := range payload.List {
		samples = append(samples, weather.ForecastSample{
			Dt:      *item.Dt,
			DtTxt:   item.DtTxt,
			Main:    *item.Main,
			Weather: item.Weather,
			Wind:    item.Wind,
			Clouds:  item.Clouds,
		})
	}
	return samples, nil
}

// get performs one GET against path, decodes the body into target and then
// validates the struct pointed to by check.
func (p *OpenWeatherProvider) get(ctx context.Context, op, path string, values url.Values, target, check interface{}) error {
	if p.apiKey == "" {
		return &weather.ProviderError{Op: op, Err: errMissingKey}
	}
	values.Set("appid", p.apiKey)

	u := fmt.Sprintf("%s%s?%s", p.baseURL, path, values.Encode())
	req, err := http.NewRequest(http.MethodGet, u, nil)
	if err != nil {
		return &weather.NetworkError{Op: op, Err: err}
	}

	resp, err := doRequest(ctx, op, p.httpCfg, p.circuit, req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := readBody(op, resp.Body)
	if err != nil {
		return err
	}
	return decodePayload(op, raw, target, check)
}
