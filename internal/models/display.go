package models

// NotAvailable is shown for any display field that could not be resolved.
const NotAvailable = "n/a"

// Source says where a display record came from.
type Source string

const (
	SourceCache       Source = "cache"
	SourceFetched     Source = "fetched"
	SourceUnavailable Source = "unavailable"
)

type WeatherDisplay struct {
	Period      string `json:"period"`
	Date        string `json:"date"`
	Hour        int    `json:"hour"`
	Temp        string `json:"temp"`
	Description string `json:"description"`
	IconPath    string `json:"icon_path,omitempty"`
	DayName     string `json:"day_name,omitempty"`
	Source      Source `json:"source"`
}

// Unavailable builds the sentinel record used when nothing could be resolved.
func Unavailable(period Period, date string, hour int) WeatherDisplay {
	return WeatherDisplay{
		Period:      period.String(),
		Date:        date,
		Hour:        hour,
		Temp:        NotAvailable,
		Description: NotAvailable,
		Source:      SourceUnavailable,
	}
}

// PersonView is a person together with request-scoped weather, kept apart
// from the persisted entity.
type PersonView struct {
	Person  Person           `json:"person"`
	Current WeatherDisplay   `json:"current"`
	Days    []WeatherDisplay `json:"days"`
}

type LocationForecast struct {
	Location Location         `json:"location"`
	Current  WeatherDisplay   `json:"current"`
	Days     []WeatherDisplay `json:"days"`
}
