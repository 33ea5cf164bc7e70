package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "weather-dashboard/docs"
	"weather-dashboard/internal/catalog"
	"weather-dashboard/internal/models"
	"weather-dashboard/internal/repositories"
	"weather-dashboard/internal/services/people"
	"weather-dashboard/pkg/logger"
)

var testLocation = models.Location{
	ID:        1,
	Name:      "Santa Monica",
	Latitude:  "34.01927618420224",
	Longitude: "-118.49376589583301",
	Timezone:  "America/Los_Angeles",
}

type MockWeatherService struct {
	dashboard    []models.PersonView
	dashboardErr error
	forecasts    int
	periods      []models.Period
	usernames    []string
}

func (m *MockWeatherService) Forecast(_ context.Context, loc models.Location) models.LocationForecast {
	m.forecasts++
	return models.LocationForecast{
		Location: loc,
		Current:  models.WeatherDisplay{Period: "hour", Date: "2024-06-09", Hour: 10, Temp: "68", Description: "Clear, Sunny", Source: models.SourceCache},
		Days:     []models.WeatherDisplay{models.Unavailable(models.PeriodDay, "2024-06-09", 0)},
	}
}

func (m *MockWeatherService) Displays(_ context.Context, _ models.Location, period models.Period) []models.WeatherDisplay {
	m.periods = append(m.periods, period)
	return []models.WeatherDisplay{models.Unavailable(period, "2024-06-09", 0)}
}

func (m *MockWeatherService) Dashboard(_ context.Context, username string) ([]models.PersonView, error) {
	m.usernames = append(m.usernames, username)
	return m.dashboard, m.dashboardErr
}

type MockPeopleService struct {
	ensureErr   error
	addErr      error
	deleteErr   error
	locationErr error
	added       []people.NewPerson
	deleted     []uint
	updated     []UpdateLocationRequest
	removed     []uint
}

func (m *MockPeopleService) EnsureLocation(_ context.Context, name, lat, long string) (*models.Location, error) {
	if m.ensureErr != nil {
		return nil, m.ensureErr
	}
	loc := testLocation
	if name != "" {
		loc.Name = name
	}
	return &loc, nil
}

func (m *MockPeopleService) AddPerson(_ context.Context, username string, in people.NewPerson) (*models.Person, error) {
	if m.addErr != nil {
		return nil, m.addErr
	}
	m.added = append(m.added, in)
	return &models.Person{ID: 7, Name: in.Name, LocationID: 1, Location: testLocation, Image: models.DefaultPersonImage}, nil
}

func (m *MockPeopleService) DeletePerson(_ context.Context, username string, id uint) error {
	if m.deleteErr != nil {
		return m.deleteErr
	}
	m.deleted = append(m.deleted, id)
	return nil
}

func (m *MockPeopleService) UpdateLocation(_ context.Context, id uint, name, timezone string) (*models.Location, error) {
	if m.locationErr != nil {
		return nil, m.locationErr
	}
	m.updated = append(m.updated, UpdateLocationRequest{Name: name, Timezone: timezone})
	loc := testLocation
	loc.ID = id
	loc.Name = name
	loc.Timezone = timezone
	return &loc, nil
}

func (m *MockPeopleService) DeleteLocation(_ context.Context, id uint) error {
	if m.locationErr != nil {
		return m.locationErr
	}
	m.removed = append(m.removed, id)
	return nil
}

type staticTimezones []catalog.Timezone

func (s staticTimezones) Timezones() []catalog.Timezone { return s }

func newTestApp(ws *MockWeatherService, ps *MockPeopleService) *fiber.App {
	app := fiber.New()
	NewRouter(app, ws, ps, staticTimezones{{Name: "America/Chicago", Label: "Central Time"}}, logger.NewNop())
	return app
}

func decodeBody(t *testing.T, resp *http.Response, v any) {
	t.Helper()
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(body, v), string(body))
}

func TestHandleWeatherCall(t *testing.T) {
	ws := &MockWeatherService{}
	app := newTestApp(ws, &MockPeopleService{})

	req := httptest.NewRequest(http.MethodGet, "/v1/weather?lat=34.01927618420224&lon=-118.49376589583301&name=Beach", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body models.LocationForecast
	decodeBody(t, resp, &body)
	assert.Equal(t, "Beach", body.Location.Name)
	assert.Equal(t, "68", body.Current.Temp)
	require.Len(t, body.Days, 1)
	assert.Equal(t, models.NotAvailable, body.Days[0].Temp)
	assert.Equal(t, 1, ws.forecasts)
}

func TestHandleWeatherCall_Period(t *testing.T) {
	ws := &MockWeatherService{}
	app := newTestApp(ws, &MockPeopleService{})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/v1/weather?lat=1&lon=2&period=day", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body PeriodResponse
	decodeBody(t, resp, &body)
	assert.Equal(t, "day", body.Period)
	assert.Equal(t, uint(1), body.Location.ID)
	require.Len(t, body.Weather, 1)
	assert.Equal(t, "day", body.Weather[0].Period)
	assert.Equal(t, []models.Period{models.PeriodDay}, ws.periods)
	assert.Zero(t, ws.forecasts)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/v1/weather?lat=1&lon=2&period=week", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var errBody ErrorResponse
	decodeBody(t, resp, &errBody)
	assert.Equal(t, "Invalid period: must be hour or day", errBody.Error)
	assert.Len(t, ws.periods, 1)
}

func TestHandleWeatherCall_Validation(t *testing.T) {
	testCases := []struct {
		name    string
		query   string
		wantErr string
	}{
		{name: "missing lat", query: "lon=1", wantErr: "Missing required parameter: lat"},
		{name: "missing lon", query: "lat=1", wantErr: "Missing required parameter: lon"},
		{name: "bad lat", query: "lat=abc&lon=1", wantErr: "Invalid latitude format"},
		{name: "lat out of range", query: "lat=90.5&lon=1", wantErr: "Latitude must be between -90 and 90"},
		{name: "bad lon", query: "lat=1&lon=abc", wantErr: "Invalid longitude format"},
		{name: "lon out of range", query: "lat=1&lon=-180.1", wantErr: "Longitude must be between -180 and 180"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ws := &MockWeatherService{}
			app := newTestApp(ws, &MockPeopleService{})

			resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/v1/weather?"+tc.query, nil))
			require.NoError(t, err)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

			var body ErrorResponse
			decodeBody(t, resp, &body)
			assert.Equal(t, tc.wantErr, body.Error)
			assert.Zero(t, ws.forecasts)
		})
	}
}

func TestHandleWeatherCall_LocationFailure(t *testing.T) {
	app := newTestApp(&MockWeatherService{}, &MockPeopleService{ensureErr: errors.New("database is locked")})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/v1/weather?lat=1&lon=2", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
}

func TestHandleDashboard(t *testing.T) {
	ws := &MockWeatherService{dashboard: []models.PersonView{
		{Person: models.Person{ID: 1, Name: "Alice", Location: testLocation}},
	}}
	app := newTestApp(ws, &MockPeopleService{})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/v1/users/maria/dashboard", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body DashboardResponse
	decodeBody(t, resp, &body)
	assert.Equal(t, "maria", body.Username)
	require.Len(t, body.People, 1)
	assert.Equal(t, "Alice", body.People[0].Person.Name)
	assert.Equal(t, []string{"maria"}, ws.usernames)
}

func TestHandleDashboard_EmptyAndError(t *testing.T) {
	app := newTestApp(&MockWeatherService{}, &MockPeopleService{})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/v1/users/nobody/dashboard", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var raw map[string]any
	decodeBody(t, resp, &raw)
	assert.Equal(t, []any{}, raw["people"])

	app = newTestApp(&MockWeatherService{dashboardErr: errors.New("boom")}, &MockPeopleService{})
	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/v1/users/maria/dashboard", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
}

func postPerson(t *testing.T, app *fiber.App, body string) *http.Response {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/v1/users/maria/people", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func TestHandleAddPerson(t *testing.T) {
	ps := &MockPeopleService{}
	app := newTestApp(&MockWeatherService{}, ps)

	resp := postPerson(t, app, `{"name":"Alice","location_name":"Santa Monica","latitude":"34.01927618420224","longitude":"-118.49376589583301"}`)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var p models.Person
	decodeBody(t, resp, &p)
	assert.Equal(t, uint(7), p.ID)
	assert.Equal(t, "Alice", p.Name)

	require.Len(t, ps.added, 1)
	assert.Equal(t, people.NewPerson{
		Name:         "Alice",
		LocationName: "Santa Monica",
		Latitude:     "34.01927618420224",
		Longitude:    "-118.49376589583301",
	}, ps.added[0])
}

func TestHandleAddPerson_BadRequests(t *testing.T) {
	testCases := []struct {
		name string
		body string
		ps   *MockPeopleService
	}{
		{name: "malformed json", body: `{"name":`, ps: &MockPeopleService{}},
		{name: "missing coordinates", body: `{"name":"Alice"}`, ps: &MockPeopleService{}},
		{name: "out of range", body: `{"name":"Alice","latitude":"95","longitude":"1"}`, ps: &MockPeopleService{}},
		{name: "service rejects name", body: `{"latitude":"1","longitude":"1"}`, ps: &MockPeopleService{addErr: people.ErrInvalidName}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			app := newTestApp(&MockWeatherService{}, tc.ps)

			resp := postPerson(t, app, tc.body)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
			assert.Empty(t, tc.ps.added)
		})
	}
}

func TestHandleAddPerson_ServiceFailure(t *testing.T) {
	app := newTestApp(&MockWeatherService{}, &MockPeopleService{addErr: errors.New("disk full")})

	resp := postPerson(t, app, `{"name":"Alice","latitude":"1","longitude":"1"}`)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
}

func TestHandleDeletePerson(t *testing.T) {
	ps := &MockPeopleService{}
	app := newTestApp(&MockWeatherService{}, ps)

	resp, err := app.Test(httptest.NewRequest(http.MethodDelete, "/v1/users/maria/people/3", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Equal(t, []uint{3}, ps.deleted)

	resp, err = app.Test(httptest.NewRequest(http.MethodDelete, "/v1/users/maria/people/abc", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	app = newTestApp(&MockWeatherService{}, &MockPeopleService{deleteErr: repositories.ErrPersonNotFound})
	resp, err = app.Test(httptest.NewRequest(http.MethodDelete, "/v1/users/maria/people/3", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func patchLocation(t *testing.T, app *fiber.App, path, body string) *http.Response {
	t.Helper()

	req := httptest.NewRequest(http.MethodPatch, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func TestHandleUpdateLocation(t *testing.T) {
	ps := &MockPeopleService{}
	app := newTestApp(&MockWeatherService{}, ps)

	resp := patchLocation(t, app, "/v1/locations/1", `{"name":"Venice","timezone":"America/Denver"}`)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var loc models.Location
	decodeBody(t, resp, &loc)
	assert.Equal(t, "Venice", loc.Name)
	assert.Equal(t, "America/Denver", loc.Timezone)
	assert.Equal(t, []UpdateLocationRequest{{Name: "Venice", Timezone: "America/Denver"}}, ps.updated)
}

func TestHandleUpdateLocation_Errors(t *testing.T) {
	testCases := []struct {
		name       string
		path       string
		body       string
		err        error
		wantStatus int
	}{
		{name: "bad id", path: "/v1/locations/abc", body: `{}`, wantStatus: http.StatusBadRequest},
		{name: "malformed json", path: "/v1/locations/1", body: `{"name":`, wantStatus: http.StatusBadRequest},
		{name: "unknown timezone", path: "/v1/locations/1", body: `{"name":"x","timezone":"Mars/Olympus_Mons"}`, err: people.ErrUnknownTimezone, wantStatus: http.StatusBadRequest},
		{name: "missing name", path: "/v1/locations/1", body: `{"timezone":"UTC"}`, err: people.ErrInvalidName, wantStatus: http.StatusBadRequest},
		{name: "not found", path: "/v1/locations/9", body: `{"name":"x","timezone":"UTC"}`, err: repositories.ErrLocationNotFound, wantStatus: http.StatusNotFound},
		{name: "storage failure", path: "/v1/locations/1", body: `{"name":"x","timezone":"UTC"}`, err: errors.New("database is locked"), wantStatus: http.StatusInternalServerError},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			app := newTestApp(&MockWeatherService{}, &MockPeopleService{locationErr: tc.err})

			resp := patchLocation(t, app, tc.path, tc.body)
			assert.Equal(t, tc.wantStatus, resp.StatusCode)
		})
	}
}

func TestHandleDeleteLocation(t *testing.T) {
	ps := &MockPeopleService{}
	app := newTestApp(&MockWeatherService{}, ps)

	resp, err := app.Test(httptest.NewRequest(http.MethodDelete, "/v1/locations/4", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Equal(t, []uint{4}, ps.removed)

	resp, err = app.Test(httptest.NewRequest(http.MethodDelete, "/v1/locations/0", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	app = newTestApp(&MockWeatherService{}, &MockPeopleService{locationErr: repositories.ErrLocationNotFound})
	resp, err = app.Test(httptest.NewRequest(http.MethodDelete, "/v1/locations/4", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestHandleTimezones(t *testing.T) {
	app := newTestApp(&MockWeatherService{}, &MockPeopleService{})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/v1/timezones", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body TimezonesResponse
	decodeBody(t, resp, &body)
	assert.Equal(t, []catalog.Timezone{{Name: "America/Chicago", Label: "Central Time"}}, body.Timezones)
}

func TestSwaggerDoc(t *testing.T) {
	app := newTestApp(&MockWeatherService{}, &MockPeopleService{})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/swagger/doc.json", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var doc map[string]any
	decodeBody(t, resp, &doc)
	paths, ok := doc["paths"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, paths, "/v1/weather")
	assert.Contains(t, paths, "/v1/users/{username}/dashboard")
	assert.Contains(t, paths, "/v1/locations/{id}")
}
