package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Map is a user-authored travel itinerary. Price, Countries and Cities are
// derived from the waypoint set and must be recomputed after every waypoint
// mutation; Tags are aggregated from waypoint tags when the set is written.
type Map struct {
	ID          uuid.UUID                   `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Title       string                      `gorm:"not null;size:255" json:"title"`
	Description string                      `gorm:"type:text" json:"description"`
	Duration    *string                     `gorm:"size:100" json:"duration"`
	CreatorID   *uuid.UUID                  `gorm:"type:uuid;index" json:"creator_id"`
	RatingID    *uuid.UUID                  `gorm:"type:uuid" json:"-"`
	Price       float64                     `gorm:"default:0" json:"price"`
	Countries   datatypes.JSONSlice[string] `gorm:"type:jsonb;default:'[]'" json:"countries"`
	Cities      datatypes.JSONSlice[string] `gorm:"type:jsonb;default:'[]'" json:"cities"`
	Tags        datatypes.JSONSlice[string] `gorm:"type:jsonb;default:'[]'" json:"tags"`
	ImageData   []byte                      `gorm:"type:bytea" json:"-"`
	CreatedAt   time.Time                   `json:"created_at"`
	UpdatedAt   time.Time                   `json:"updated_at"`

	Creator   *User      `gorm:"foreignKey:CreatorID;constraint:OnDelete:SET NULL" json:"-"`
	Rating    *Rating    `gorm:"foreignKey:RatingID" json:"rating,omitempty"`
	Waypoints []Waypoint `gorm:"foreignKey:MapID;constraint:OnDelete:CASCADE" json:"waypoints"`
}

// Waypoint is a single geolocated point of interest within a map.
type Waypoint struct {
	ID          uuid.UUID                   `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	MapID       uuid.UUID                   `gorm:"type:uuid;not null;index" json:"map_id"`
	Title       string                      `gorm:"not null;size:255" json:"title"`
	Description string                      `gorm:"type:text" json:"description"`
	Info        string                      `gorm:"type:text" json:"info"`
	Latitude    float64                     `gorm:"not null" json:"latitude"`
	Longitude   float64                     `gorm:"not null" json:"longitude"`
	Tags        datatypes.JSONSlice[string] `gorm:"type:jsonb;default:'[]'" json:"tags"`
	TimesOfDay  datatypes.JSON              `gorm:"type:jsonb" json:"times_of_day"`
	Price       float64                     `gorm:"default:0" json:"price"`
	Rating      float64                     `gorm:"default:0" json:"rating"`
	Duration    *string                     `gorm:"size:100" json:"duration"`
	ImageData   []byte                      `gorm:"type:bytea" json:"-"`
	Country     *string                     `gorm:"size:100" json:"country"`
	City        *string                     `gorm:"size:100" json:"city"`
	CreatedAt   time.Time                   `json:"created_at"`
}
