package database

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"weather-dashboard/config"
	"weather-dashboard/internal/models"
	"weather-dashboard/pkg/logger"
)

func TestSQLiteDSN(t *testing.T) {
	assert.Equal(t, "weather.db?_foreign_keys=on", sqliteDSN("weather.db"))
	assert.Equal(t, "file:x.db?cache=shared&_foreign_keys=on", sqliteDSN("file:x.db?cache=shared"))
	assert.Equal(t, "x.db?_fk=1", sqliteDSN("x.db?_fk=1"))
}

func TestOpen_SQLiteMigrates(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "weather.db")
	db, err := Open(config.DatabaseConfig{Driver: "sqlite", DSN: dsn}, logger.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = Close(db) })

	for _, table := range []any{&models.Location{}, &models.Person{}, &models.UserPerson{}, &models.Weather{}} {
		assert.True(t, db.Migrator().HasTable(table))
	}
	assert.True(t, db.Migrator().HasIndex(&models.Weather{}, "idx_weather_lookup"))
}

func TestOpen_UnknownDriver(t *testing.T) {
	_, err := Open(config.DatabaseConfig{Driver: "oracle"}, logger.NewNop())
	assert.Error(t, err)
}
