package repositories

import (
	"context"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"weather-dashboard/config"
	"weather-dashboard/internal/models"
	"weather-dashboard/pkg/database"
	"weather-dashboard/pkg/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "weather.db")
	db, err := database.Open(config.DatabaseConfig{Driver: "sqlite", DSN: dsn}, logger.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })

	return db
}

func createLocation(t *testing.T, db *gorm.DB, name, lat, long, tz string) models.Location {
	t.Helper()

	loc := models.Location{Name: name, Latitude: lat, Longitude: long, Timezone: tz}
	require.NoError(t, db.Create(&loc).Error)
	return loc
}

func santaMonica(t *testing.T, db *gorm.DB) models.Location {
	return createLocation(t, db, "Santa Monica", "34.01927618420224", "-118.49376589583301", "America/Los_Angeles")
}

// countingLimiter records how often the fetcher asked for permission.
type countingLimiter struct {
	mu    sync.Mutex
	calls int
	err   error
}

func (c *countingLimiter) Wait(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls++
	return c.err
}

func (c *countingLimiter) Calls() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls
}
