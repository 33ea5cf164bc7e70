package catalog

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"weather-dashboard/internal/models"
)

func loadCatalog(t *testing.T) *Catalog {
	t.Helper()
	c, err := Load()
	require.NoError(t, err)
	return c
}

func TestIsDaytime(t *testing.T) {
	tests := []struct {
		hour int
		day  bool
	}{
		{0, false},
		{5, false},
		{6, true},
		{12, true},
		{19, true},
		{20, false},
		{23, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.day, IsDaytime(tt.hour), "hour %d", tt.hour)
	}
}

func TestDescribe_HourlyDayNight(t *testing.T) {
	c := loadCatalog(t)

	desc, ok := c.Describe("1000", models.PeriodHour, 5)
	require.True(t, ok)
	assert.Equal(t, "Clear", desc)

	desc, ok = c.Describe("1000", models.PeriodHour, 6)
	require.True(t, ok)
	assert.Equal(t, "Clear, Sunny", desc)

	desc, ok = c.Describe("1000", models.PeriodHour, 19)
	require.True(t, ok)
	assert.Equal(t, "Clear, Sunny", desc)

	desc, ok = c.Describe("1000", models.PeriodHour, 20)
	require.True(t, ok)
	assert.Equal(t, "Clear", desc)
}

func TestDescribe_HourlyFallsBackToBaseCode(t *testing.T) {
	c, err := LoadFS(fstest.MapFS{
		codesFile:     {Data: []byte(`{"weatherCode":{"4201":"Heavy Rain"},"weatherCodeDay":{"42010":"Heavy Rain"}}`)},
		timezonesFile: {Data: []byte(`{}`)},
	})
	require.NoError(t, err)

	// no night table entry, so the base code answers
	desc, ok := c.Describe("4201", models.PeriodHour, 23)
	require.True(t, ok)
	assert.Equal(t, "Heavy Rain", desc)
}

func TestDescribe_Daily(t *testing.T) {
	c := loadCatalog(t)

	desc, ok := c.Describe("21080", models.PeriodDay, 0)
	require.True(t, ok)
	assert.Equal(t, "Mostly Cloudy and Fog", desc)

	_, ok = c.Describe("99999", models.PeriodDay, 0)
	assert.False(t, ok)

	_, ok = c.Describe("1000", models.Period(0), 12)
	assert.False(t, ok)
}

func TestIconCode(t *testing.T) {
	assert.Equal(t, "10000", IconCode("1000", models.PeriodHour, 12))
	assert.Equal(t, "10001", IconCode("1000", models.PeriodHour, 2))
	assert.Equal(t, "10000", IconCode("10000", models.PeriodDay, 2))
}

func TestTimezones(t *testing.T) {
	c := loadCatalog(t)

	assert.True(t, c.HasTimezone("America/Los_Angeles"))
	assert.False(t, c.HasTimezone("Mars/Olympus_Mons"))

	zones := c.Timezones()
	require.NotEmpty(t, zones)
	for i := 1; i < len(zones); i++ {
		assert.Less(t, zones[i-1].Name, zones[i].Name)
	}
}

func TestLoadFS_Errors(t *testing.T) {
	_, err := LoadFS(fstest.MapFS{})
	assert.Error(t, err)

	_, err = LoadFS(fstest.MapFS{
		codesFile:     {Data: []byte(`{"weatherCode":{}}`)},
		timezonesFile: {Data: []byte(`{}`)},
	})
	assert.Error(t, err)

	_, err = LoadFS(fstest.MapFS{
		codesFile:     {Data: []byte(`{"weatherCode":{"1000":"Clear"},"weatherCodeDay":{"10000":"Clear"}}`)},
		timezonesFile: {Data: []byte(`not json`)},
	})
	assert.Error(t, err)
}
