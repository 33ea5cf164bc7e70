package models

import "time"

const (
	DateLayout         = "2006-01-02"
	DefaultPersonImage = "images/person_default.jpeg"
)

// Location is identified in practice by its coordinate pair.
type Location struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	Name      string `gorm:"size:30" json:"name"`
	Latitude  string `gorm:"size:20;index:idx_location_coords" json:"latitude"`
	Longitude string `gorm:"size:20;index:idx_location_coords" json:"longitude"`
	Timezone  string `gorm:"size:30" json:"timezone"`

	People   []Person  `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Readings []Weather `gorm:"foreignKey:LocationID;constraint:OnDelete:CASCADE" json:"-"`
}

type Person struct {
	ID         uint     `gorm:"primaryKey" json:"id"`
	Name       string   `gorm:"size:30" json:"name"`
	LocationID uint     `gorm:"index" json:"location_id"`
	Location   Location `json:"location"`
	Image      string   `json:"image"`

	Users []UserPerson `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

// Weather is one immutable observation downloaded from the forecast API.
type Weather struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	LocationID  uint      `gorm:"index:idx_weather_lookup,priority:1" json:"location_id"`
	Timestamp   time.Time `gorm:"index:idx_weather_lookup,priority:5" json:"timestamp"`
	Step        Step      `gorm:"size:2;index:idx_weather_lookup,priority:4" json:"step"`
	Date        string    `gorm:"size:10;index:idx_weather_lookup,priority:2" json:"date"`
	Hour        int       `gorm:"index:idx_weather_lookup,priority:3" json:"hour"`
	Temp        int       `json:"temp"`
	WeatherCode string    `gorm:"size:5" json:"weather_code"`
}

// TableName keeps the table name singular, matching the other weather tables.
func (Weather) TableName() string {
	return "weather"
}

// UserPerson links an account to a person it manages.
type UserPerson struct {
	ID        uint   `gorm:"primaryKey"`
	Username  string `gorm:"size:150;index"`
	PersonID  uint   `gorm:"index"`
	DateAdded time.Time
}

func (UserPerson) TableName() string {
	return "user_person"
}
