// Package catalog holds the static reference data used to present weather:
// code descriptions, the timezone table and icon assets.
package catalog

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"sort"
	_ "time/tzdata"

	"weather-dashboard/internal/models"
)

//go:embed data/*.json
var embedded embed.FS

const (
	codesFile     = "data/codes.json"
	timezonesFile = "data/timezones.json"

	// Local hours in [DayStartHour, DayEndHour] use the day variant of a code.
	DayStartHour = 6
	DayEndHour   = 19
)

// Catalog is read-only after Load and safe for concurrent use.
type Catalog struct {
	codes      map[string]string
	dayCodes   map[string]string
	nightCodes map[string]string
	timezones  map[string]string
}

type codesDocument struct {
	WeatherCode      map[string]string `json:"weatherCode"`
	WeatherCodeDay   map[string]string `json:"weatherCodeDay"`
	WeatherCodeNight map[string]string `json:"weatherCodeNight"`
}

// Load reads the reference tables bundled with the binary.
func Load() (*Catalog, error) {
	return LoadFS(embedded)
}

// LoadFS reads data/codes.json and data/timezones.json from fsys.
func LoadFS(fsys fs.FS) (*Catalog, error) {
	var codes codesDocument
	if err := readJSON(fsys, codesFile, &codes); err != nil {
		return nil, err
	}
	if len(codes.WeatherCode) == 0 || len(codes.WeatherCodeDay) == 0 {
		return nil, fmt.Errorf("catalog: %s has no weather codes", codesFile)
	}

	timezones := map[string]string{}
	if err := readJSON(fsys, timezonesFile, &timezones); err != nil {
		return nil, err
	}

	return &Catalog{
		codes:      codes.WeatherCode,
		dayCodes:   codes.WeatherCodeDay,
		nightCodes: codes.WeatherCodeNight,
		timezones:  timezones,
	}, nil
}

func readJSON(fsys fs.FS, name string, v any) error {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return fmt.Errorf("catalog: read %s: %w", name, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("catalog: parse %s: %w", name, err)
	}
	return nil
}

func IsDaytime(localHour int) bool {
	return localHour >= DayStartHour && localHour <= DayEndHour
}

// VariantCode turns a four digit hourly code into the five digit day or
// night code used by the day/night tables and icon names.
func VariantCode(code string, localHour int) string {
	if IsDaytime(localHour) {
		return code + "0"
	}
	return code + "1"
}

// Describe returns the human readable text for code. Hourly codes are
// resolved through their day/night variant first.
func (c *Catalog) Describe(code string, period models.Period, localHour int) (string, bool) {
	switch period {
	case models.PeriodHour:
		variant := VariantCode(code, localHour)
		table := c.nightCodes
		if IsDaytime(localHour) {
			table = c.dayCodes
		}
		if desc, ok := table[variant]; ok {
			return desc, true
		}
		desc, ok := c.codes[code]
		return desc, ok
	case models.PeriodDay:
		if desc, ok := c.dayCodes[code]; ok {
			return desc, true
		}
		desc, ok := c.codes[code]
		return desc, ok
	}
	return "", false
}

// IconCode is the code whose asset represents the observation.
func IconCode(code string, period models.Period, localHour int) string {
	if period == models.PeriodHour {
		return VariantCode(code, localHour)
	}
	return code
}

func (c *Catalog) HasTimezone(name string) bool {
	_, ok := c.timezones[name]
	return ok
}

type Timezone struct {
	Name  string `json:"name"`
	Label string `json:"label"`
}

// Timezones lists the table sorted by name.
func (c *Catalog) Timezones() []Timezone {
	out := make([]Timezone, 0, len(c.timezones))
	for name, label := range c.timezones {
		out = append(out, Timezone{Name: name, Label: label})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
