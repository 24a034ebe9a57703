package domain

import "time"

type Weather string

const (
	WeatherHot  Weather = "hot"
	WeatherWarm Weather = "warm"
	WeatherCold Weather = "cold"
)

// ValidWeather reports whether w is one of the supported weather values.
func ValidWeather(w Weather) bool {
	switch w {
	case WeatherHot, WeatherWarm, WeatherCold:
		return true
	}
	return false
}

// Item represents a clothing item owned by a user.
type Item struct {
	ID        string
	Name      string
	Weather   Weather
	ImageURL  string
	Owner     string
	Likes     []string
	CreatedAt time.Time
	UpdatedAt time.Time
}
