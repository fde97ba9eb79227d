package models

import "time"

// WeatherSnapshot is an immutable point-in-time weather observation for a
// city. Snapshots are created only as a side effect of a successful
// gateway fetch and form an append-only log.
type WeatherSnapshot struct {
	ID          string    `json:"id"`
	City        string    `json:"city"`
	Temperature float64   `json:"temperature"`
	Humidity    int       `json:"humidity"`
	Pressure    float64   `json:"pressure"`
	Description string    `json:"description"`
	WindSpeed   float64   `json:"wind_speed"`
	Visibility  *float64  `json:"visibility"`
	CreatedAt   time.Time `json:"created_at"`
}
