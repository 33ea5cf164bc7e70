package http

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/swaggo/swag"

	"weather-dashboard/internal/catalog"
	"weather-dashboard/internal/models"
	"weather-dashboard/internal/services/people"
	"weather-dashboard/pkg/logger"
)

type WeatherService interface {
	Forecast(ctx context.Context, loc models.Location) models.LocationForecast
	Displays(ctx context.Context, loc models.Location, period models.Period) []models.WeatherDisplay
	Dashboard(ctx context.Context, username string) ([]models.PersonView, error)
}

type PeopleService interface {
	EnsureLocation(ctx context.Context, name, lat, long string) (*models.Location, error)
	AddPerson(ctx context.Context, username string, in people.NewPerson) (*models.Person, error)
	DeletePerson(ctx context.Context, username string, id uint) error
	UpdateLocation(ctx context.Context, id uint, name, timezone string) (*models.Location, error)
	DeleteLocation(ctx context.Context, id uint) error
}

type TimezoneTable interface {
	Timezones() []catalog.Timezone
}

type routes struct {
	weather   WeatherService
	people    PeopleService
	timezones TimezoneTable
	l         *logger.Logger
}

func NewRouter(
	app *fiber.App,
	weatherService WeatherService,
	peopleService PeopleService,
	timezones TimezoneTable,
	l *logger.Logger,
) {
	r := &routes{
		weather:   weatherService,
		people:    peopleService,
		timezones: timezones,
		l:         l,
	}

	// Swagger documentation, registered by the generated docs package
	app.Get("/swagger/doc.json", func(c *fiber.Ctx) error {
		swaggerData, err := swag.ReadDoc()
		if err != nil {
			return c.Status(fiber.ErrInternalServerError.Code).JSON(fiber.Map{"error": "Failed to read Swagger documentation"})
		}

		c.Set("Content-Type", "application/json")
		return c.SendString(swaggerData)
	})

	app.Get("/swagger/*", swagger.New(swagger.Config{
		URL:         "/swagger/doc.json",
		DeepLinking: true,
	}))

	// API routes
	v1 := app.Group("/v1")
	v1.Get("/weather", r.handleWeatherCall)
	v1.Get("/timezones", r.handleTimezones)
	v1.Patch("/locations/:id", r.handleUpdateLocation)
	v1.Delete("/locations/:id", r.handleDeleteLocation)

	users := v1.Group("/users/:username")
	users.Get("/dashboard", r.handleDashboard)
	users.Post("/people", r.handleAddPerson)
	users.Delete("/people/:id", r.handleDeletePerson)
}
