package httpapi

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/tempesttoday/tempest/internal/units"
	"github.com/tempesttoday/tempest/internal/weather"
)

var validate = validator.New()

// User-facing messages for request-terminating failures.
const (
	msgNotFound      = "Location not found. Please check and try again."
	msgGeocoderBusy  = "Our location service is temporarily busy. Please try again in a moment."
	msgNoWeatherData = "Unable to retrieve weather data for this location."
	msgGeneral       = "Something went wrong. Please try again."
)

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, service *weather.Service) {
	v1 := app.Group("/api/v1")

	v1.Get("/weather", func(c *fiber.Ctx) error {
		req, err := parseWeatherQuery(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		report, err := service.Report(c.Context(), req.Address, units.TempUnit(req.Unit))
		if err != nil {
			return mapServiceError(err)
		}

		return c.JSON(report)
	})
}

// weatherQuery holds query parameters for the weather endpoint.
type weatherQuery struct {
	Address string `validate:"required"`
	Unit    string `validate:"oneof=F C"`
}

func parseWeatherQuery(c *fiber.Ctx) (weatherQuery, error) {
	q := weatherQuery{
		Address: c.Query("address"),
		Unit:    c.Query("unit", string(units.Fahrenheit)),
	}

	if err := validate.Struct(q); err != nil {
		return q, err
	}
	return q, nil
}

func mapServiceError(err error) error {
	var outside *weather.OutsideUSError
	switch {
	case errors.Is(err, weather.ErrLocationNotFound):
		return fiber.NewError(fiber.StatusNotFound, msgNotFound)
	case errors.As(err, &outside):
		country := outside.Country
		if country == "" {
			country = "another country"
		}
		return fiber.NewError(fiber.StatusUnprocessableEntity,
			"We found your location in "+country+", but we currently only support USA weather.")
	case errors.Is(err, weather.ErrGeocoderUnavailable):
		return fiber.NewError(fiber.StatusServiceUnavailable, msgGeocoderBusy)
	case errors.Is(err, weather.ErrUpstreamUnavailable):
		return fiber.NewError(fiber.StatusBadGateway, msgNoWeatherData)
	}
	return fiber.NewError(fiber.StatusInternalServerError, msgGeneral)
}
