package httpapi

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/i474232898/city-forecast/internal/store"
	"github.com/i474232898/city-forecast/internal/weather"
)

// RequestIDHeader carries the id assigned to every API request.
const RequestIDHeader = "X-Request-ID"

var validate = validator.New()

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, service *weather.Service) {
	v1 := app.Group("/api/v1", requestID)

	v1.Get("/cities", func(c *fiber.Ctx) error {
		q := cityQuery{
			Q:     c.Query("q"),
			Limit: c.QueryInt("limit", 0),
		}
		if err := validate.Struct(q); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		cities, err := service.SearchCity(c.UserContext(), q.Q)
		if err != nil {
			return sourceError(err)
		}
		if q.Limit > 0 && len(cities) > q.Limit {
			cities = cities[:q.Limit]
		}

		return c.JSON(fiber.Map{
			"query":  q.Q,
			"cities": cities,
		})
	})

	v1.Get("/weather/current", func(c *fiber.Ctx) error {
		q, err := parseCoordQuery(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		cond, err := service.CurrentConditions(c.UserContext(), *q.Lat, *q.Lon)
		if err != nil {
			return sourceError(err)
		}
		return c.JSON(cond)
	})

	v1.Get("/weather/forecast", func(c *fiber.Ctx) error {
		city, err := parseCityQuery(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		days, err := service.DailyForecast(c.UserContext(), city)
		if err != nil {
			return sourceError(err)
		}
		return c.JSON(fiber.Map{
			"city": city,
			"days": days,
		})
	})

	v1.Get("/weather/forecast/samples", func(c *fiber.Ctx) error {
		city, err := parseCityQuery(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		samples, err := service.ForecastSamples(c.UserContext(), city)
		if err != nil {
			return sourceError(err)
		}
		return c.JSON(fiber.Map{
			"city":    city,
			"samples": samples,
		})
	})

	v1.Get("/weather/forecast/latest", func(c *fiber.Ctx) error {
		city, err := parseCityQuery(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		days, err := service.LatestForecast(city)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "no stored forecast for requested city")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "failed to read stored forecast")
		}
		return c.JSON(fiber.Map{
			"city": city,
			"days": days,
		})
	})

	v1.Get("/weather/forecast/share", func(c *fiber.Ctx) error {
		city, err := parseCityQuery(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		days, err := service.DailyForecast(c.UserContext(), city)
		if err != nil {
			return sourceError(err)
		}
		if len(days) == 0 {
			return fiber.NewError(fiber.StatusNotFound, "no forecast data for requested city")
		}
		return c.JSON(fiber.Map{
			"city":    city,
			"message": weather.ShareMessage(days[0]),
		})
	})
}

// ErrorHandler renders every error as the centralized JSON error body.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var e *fiber.Error
	if errors.As(err, &e) {
		code = e.Code
	}
	return c.Status(code).JSON(fiber.Map{
		"error":     true,
		"message":   err.Error(),
		"requestId": c.GetRespHeader(RequestIDHeader),
	})
}

// requestID tags the request and response with an id, keeping a client-supplied one.
func requestID(c *fiber.Ctx) error {
	id := c.Get(RequestIDHeader)
	if id == "" {
		id = uuid.NewString()
	}
	c.Set(RequestIDHeader, id)
	return c.Next()
}

// sourceError maps data source failures onto HTTP errors. A provider 404
// (e.g. unknown city) stays a 404; every other failure is a bad gateway.
func sourceError(err error) error {
	var perr *weather.ProviderError
	switch {
	case errors.As(err, &perr) && perr.StatusCode == http.StatusNotFound:
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	case errors.Is(err, weather.ErrProvider), errors.Is(err, weather.ErrNetwork):
		return fiber.NewError(fiber.StatusBadGateway, err.Error())
	default:
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
}

// cityQuery holds query parameters for the city search.
type cityQuery struct {
	Q     string
	Limit int `validate:"gte=0,lte=100"`
}

// coordQuery holds query parameters for a coordinate lookup.
type coordQuery struct {
	Lat *float64 `validate:"required,gte=-90,lte=90"`
	Lon *float64 `validate:"required,gte=-180,lte=180"`
}

func parseCoordQuery(c *fiber.Ctx) (coordQuery, error) {
	var q coordQuery

	var err error
	if q.Lat, err = parseFloatParam(c, "lat"); err != nil {
		return q, err
	}
	if q.Lon, err = parseFloatParam(c, "lon"); err != nil {
		return q, err
	}

	if err := validate.Struct(q); err != nil {
		return q, err
	}
	return q, nil
}

// parseFloatParam returns nil for a missing parameter so that validation reports it.
func parseFloatParam(c *fiber.Ctx, key string) (*float64, error) {
	v := c.Query(key)
	if v == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %q is not a number", key, v)
	}
	return &f, nil
}

// forecastQuery identifies the city of a forecast request.
type forecastQuery struct {
	City string `validate:"required"`
}

func parseCityQuery(c *fiber.Ctx) (string, error) {
	q := forecastQuery{City: c.Query("city")}
	if err := validate.Struct(q); err != nil {
		return "", err
	}
	return q.City, nil
}
