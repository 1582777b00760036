package history

import (
	"time"
)

// Snapshot is one captured reading of current conditions for a tracked
// location, one row per provider per capture cycle.
type Snapshot struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	LocationID    string    `json:"location_id" gorm:"column:location_id;index:idx_location;index:idx_location_captured_at"`
	LocationName  string    `json:"location_name" gorm:"column:location_name"`
	Latitude      float64   `json:"latitude"`
	Longitude     float64   `json:"longitude"`
	Provider      string    `json:"provider" gorm:"index:idx_provider"`
	Temperature   float64   `json:"temperature"`
	Humidity      float64   `json:"humidity"`
	Pressure      float64   `json:"pressure"`
	WindSpeed     float64   `json:"wind_speed" gorm:"column:wind_speed"`
	Precipitation float64   `json:"precipitation"`
	CloudCover    float64   `json:"cloud_cover" gorm:"column:cloud_cover"`
	CapturedAt    time.Time `json:"captured_at" gorm:"index:idx_captured_at;index:idx_location_captured_at"`
}

func (Snapshot) TableName() string {
	return "weather_snapshots"
}
