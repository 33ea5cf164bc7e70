package http

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"weather-dashboard/internal/catalog"
	"weather-dashboard/internal/models"
	"weather-dashboard/internal/repositories"
	"weather-dashboard/internal/services/people"
)

const maxUsernameLength = 150

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error" example:"Missing required parameter: lat"`
}

// DashboardResponse lists the people a user tracks with their weather.
type DashboardResponse struct {
	Username string              `json:"username" example:"maria"`
	People   []models.PersonView `json:"people"`
}

// AddPersonRequest is the body of the add person call.
type AddPersonRequest struct {
	Name         string `json:"name" example:"Alice"`
	LocationName string `json:"location_name" example:"Santa Monica"`
	Latitude     string `json:"latitude" example:"34.01927618420224"`
	Longitude    string `json:"longitude" example:"-118.49376589583301"`
	Image        string `json:"image" example:"images/person_default.jpeg"`
}

// PeriodResponse carries the records of a single forecast period.
type PeriodResponse struct {
	Location models.Location         `json:"location"`
	Period   string                  `json:"period" example:"day"`
	Weather  []models.WeatherDisplay `json:"weather"`
}

// UpdateLocationRequest corrects a saved location.
type UpdateLocationRequest struct {
	Name     string `json:"name" example:"Venice"`
	Timezone string `json:"timezone" example:"America/Los_Angeles"`
}

// TimezonesResponse is the timezone display table.
type TimezonesResponse struct {
	Timezones []catalog.Timezone `json:"timezones"`
}

// GetWeather godoc
// @Summary Get weather for a location
// @Description Current hour and daily forecast for a coordinate pair. The location is created on first use.
// @Description With period set only that period is resolved.
// @Tags Weather
// @Produce json
// @Param lat query number true "Latitude coordinate (-90 to 90)" minimum(-90) maximum(90) example(34.0192)
// @Param lon query number true "Longitude coordinate (-180 to 180)" minimum(-180) maximum(180) example(-118.4937)
// @Param name query string false "Display name for a new location" example(Santa Monica)
// @Param period query string false "Only this period" Enums(hour, day)
// @Success 200 {object} models.LocationForecast "Successful response, or a PeriodResponse when period is set"
// @Failure 400 {object} ErrorResponse "Bad request - invalid parameters"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /v1/weather [get]
func (r *routes) handleWeatherCall(c *fiber.Ctx) error {
	lat := c.Query("lat")
	lon := c.Query("lon")

	if lat == "" {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error: "Missing required parameter: lat",
		})
	}

	if lon == "" {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error: "Missing required parameter: lon",
		})
	}

	if msg := validateCoordinates(lat, lon); msg != "" {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: msg})
	}

	var period models.Period
	if raw := c.Query("period"); raw != "" {
		p, err := models.ParsePeriod(raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
				Error: "Invalid period: must be hour or day",
			})
		}
		period = p
	}

	loc, err := r.people.EnsureLocation(c.Context(), c.Query("name"), lat, lon)
	if errors.Is(err, people.ErrInvalidCoordinates) {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: err.Error()})
	}
	if err != nil {
		r.l.Error(err, map[string]any{"lat": lat, "lon": lon})

		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
			Error: "Failed to resolve location",
		})
	}

	if period.Valid() {
		return c.JSON(PeriodResponse{
			Location: *loc,
			Period:   period.String(),
			Weather:  r.weather.Displays(c.Context(), *loc, period),
		})
	}

	return c.JSON(r.weather.Forecast(c.Context(), *loc))
}

// GetDashboard godoc
// @Summary Get a user's dashboard
// @Description Every person the user tracks, with current hour and daily forecast for their location.
// @Tags Dashboard
// @Produce json
// @Param username path string true "Username" example(maria)
// @Success 200 {object} DashboardResponse "Successful response"
// @Failure 400 {object} ErrorResponse "Bad request - invalid username"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /v1/users/{username}/dashboard [get]
func (r *routes) handleDashboard(c *fiber.Ctx) error {
	username, ok := usernameParam(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "Invalid username"})
	}

	views, err := r.weather.Dashboard(c.Context(), username)
	if err != nil {
		r.l.Error(err, map[string]any{"username": username})

		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
			Error: "Failed to build dashboard",
		})
	}
	if views == nil {
		views = []models.PersonView{}
	}

	return c.JSON(DashboardResponse{Username: username, People: views})
}

// AddPerson godoc
// @Summary Track a new person
// @Description Creates a person at the given coordinates and links it to the user.
// @Tags People
// @Accept json
// @Produce json
// @Param username path string true "Username" example(maria)
// @Param person body AddPersonRequest true "Person to add"
// @Success 201 {object} models.Person "Created"
// @Failure 400 {object} ErrorResponse "Bad request - invalid body"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /v1/users/{username}/people [post]
func (r *routes) handleAddPerson(c *fiber.Ctx) error {
	username, ok := usernameParam(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "Invalid username"})
	}

	var req AddPersonRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "Invalid request body"})
	}

	if req.Latitude == "" || req.Longitude == "" {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error: "Missing required fields: latitude, longitude",
		})
	}

	if msg := validateCoordinates(req.Latitude, req.Longitude); msg != "" {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: msg})
	}

	p, err := r.people.AddPerson(c.Context(), username, people.NewPerson{
		Name:         req.Name,
		LocationName: req.LocationName,
		Latitude:     req.Latitude,
		Longitude:    req.Longitude,
		Image:        req.Image,
	})
	switch {
	case errors.Is(err, people.ErrInvalidName), errors.Is(err, people.ErrInvalidCoordinates):
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: err.Error()})
	case err != nil:
		r.l.Error(err, map[string]any{"username": username})

		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
			Error: "Failed to add person",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(p)
}

// DeletePerson godoc
// @Summary Stop tracking a person
// @Tags People
// @Param username path string true "Username" example(maria)
// @Param id path integer true "Person ID" example(1)
// @Success 204 "Deleted"
// @Failure 400 {object} ErrorResponse "Bad request - invalid id"
// @Failure 404 {object} ErrorResponse "Person not found"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /v1/users/{username}/people/{id} [delete]
func (r *routes) handleDeletePerson(c *fiber.Ctx) error {
	username, ok := usernameParam(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "Invalid username"})
	}

	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "Invalid person id"})
	}

	err = r.people.DeletePerson(c.Context(), username, uint(id))
	switch {
	case errors.Is(err, repositories.ErrPersonNotFound):
		return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{Error: "Person not found"})
	case err != nil:
		r.l.Error(err, map[string]any{"username": username, "person": id})

		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
			Error: "Failed to delete person",
		})
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// UpdateLocation godoc
// @Summary Correct a saved location
// @Description Renames a location or fixes its timezone, for example after the timezone lookup fell back to the default.
// @Tags Locations
// @Accept json
// @Produce json
// @Param id path integer true "Location ID" example(1)
// @Param location body UpdateLocationRequest true "New name and timezone"
// @Success 200 {object} models.Location "Updated"
// @Failure 400 {object} ErrorResponse "Bad request - invalid body or timezone"
// @Failure 404 {object} ErrorResponse "Location not found"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /v1/locations/{id} [patch]
func (r *routes) handleUpdateLocation(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "Invalid location id"})
	}

	var req UpdateLocationRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "Invalid request body"})
	}

	loc, err := r.people.UpdateLocation(c.Context(), uint(id), req.Name, req.Timezone)
	switch {
	case errors.Is(err, people.ErrInvalidName), errors.Is(err, people.ErrUnknownTimezone):
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: err.Error()})
	case errors.Is(err, repositories.ErrLocationNotFound):
		return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{Error: "Location not found"})
	case err != nil:
		r.l.Error(err, map[string]any{"location": id})

		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
			Error: "Failed to update location",
		})
	}

	return c.JSON(loc)
}

// DeleteLocation godoc
// @Summary Delete a saved location
// @Description Removes the location with its stored weather and every person tracked there.
// @Tags Locations
// @Param id path integer true "Location ID" example(1)
// @Success 204 "Deleted"
// @Failure 400 {object} ErrorResponse "Bad request - invalid id"
// @Failure 404 {object} ErrorResponse "Location not found"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /v1/locations/{id} [delete]
func (r *routes) handleDeleteLocation(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "Invalid location id"})
	}

	err = r.people.DeleteLocation(c.Context(), uint(id))
	switch {
	case errors.Is(err, repositories.ErrLocationNotFound):
		return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{Error: "Location not found"})
	case err != nil:
		r.l.Error(err, map[string]any{"location": id})

		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
			Error: "Failed to delete location",
		})
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// GetTimezones godoc
// @Summary List supported timezones
// @Tags Reference
// @Produce json
// @Success 200 {object} TimezonesResponse "Successful response"
// @Router /v1/timezones [get]
func (r *routes) handleTimezones(c *fiber.Ctx) error {
	return c.JSON(TimezonesResponse{Timezones: r.timezones.Timezones()})
}

func usernameParam(c *fiber.Ctx) (string, bool) {
	username := strings.TrimSpace(c.Params("username"))
	if username == "" || len(username) > maxUsernameLength {
		return "", false
	}
	return username, true
}

// validateCoordinates returns a client facing message, or "" when the pair is
// usable.
func validateCoordinates(lat, lon string) string {
	latFloat, err := strconv.ParseFloat(lat, 64)
	if err != nil {
		return "Invalid latitude format"
	}

	if latFloat < -90 || latFloat > 90 {
		return "Latitude must be between -90 and 90"
	}

	lonFloat, err := strconv.ParseFloat(lon, 64)
	if err != nil {
		return "Invalid longitude format"
	}

	if lonFloat < -180 || lonFloat > 180 {
		return "Longitude must be between -180 and 180"
	}

	return ""
}
