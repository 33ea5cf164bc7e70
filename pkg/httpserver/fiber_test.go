package httpserver

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"weather-dashboard/config"
)

func TestInitFiberServer_HealthEndpoints(t *testing.T) {
	app := InitFiberServer("test-app", config.Default().Server)

	for _, path := range []string{"/manage/health", "/manage/ready"} {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, path, nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode, path)
	}
}

func TestInitFiberServer_ErrorsAreJSON(t *testing.T) {
	app := InitFiberServer("test-app", config.ServerConfig{})
	app.Get("/boom", func(c *fiber.Ctx) error { return errors.New("boom") })
	app.Get("/panic", func(c *fiber.Ctx) error { panic("boom") })

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/missing", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, fiber.MIMEApplicationJSON, resp.Header.Get("Content-Type"))

	for _, path := range []string{"/boom", "/panic"} {
		resp, err = app.Test(httptest.NewRequest(http.MethodGet, path, nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode, path)

		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		assert.JSONEq(t, `{"error":"Internal server error"}`, string(body))
	}
}
