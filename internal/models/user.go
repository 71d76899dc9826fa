package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// User is an account that can author maps and save other users' maps.
// Email and Alias are each globally unique.
type User struct {
	ID           uuid.UUID                    `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Email        string                       `gorm:"not null;size:255;uniqueIndex" json:"email"`
	Password     string                       `gorm:"not null" json:"-"`
	Role         string                       `gorm:"size:20;default:'traveler'" json:"role"`
	Alias        string                       `gorm:"not null;size:50;uniqueIndex" json:"alias"`
	Name         string                       `gorm:"size:100" json:"name"`
	Bio          string                       `gorm:"type:text" json:"bio"`
	ProfileImage []byte                       `gorm:"type:bytea" json:"-"`
	SavedMapIDs  datatypes.JSONSlice[string]  `gorm:"type:jsonb;default:'[]'" json:"saved_map_ids"`
	CreatedAt    time.Time                    `json:"created_at"`
	UpdatedAt    time.Time                    `json:"updated_at"`
	DeletedAt    gorm.DeletedAt               `gorm:"index" json:"-"`
}

// HasSaved reports whether the map id is in the user's saved list.
func (u *User) HasSaved(mapID uuid.UUID) bool {
	id := mapID.String()
	for _, s := range u.SavedMapIDs {
		if s == id {
			return true
		}
	}
	return false
}
