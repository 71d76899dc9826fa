package models

import (
	"math"
	"time"

	"github.com/google/uuid"
)

// Rating holds the running average score for exactly one map. Individual
// scores are not retained, so a rating cannot be undone.
type Rating struct {
	ID         uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Average    float64   `gorm:"default:0" json:"average_rating"`
	NumRatings int       `gorm:"default:0" json:"num_ratings"`
	CreatedAt  time.Time `json:"-"`
	UpdatedAt  time.Time `json:"-"`
}

// Apply folds a new score into the running average, rounded to 2 decimals.
// Bounds checking (0..5) is the caller's contract.
func (r *Rating) Apply(score float64) {
	total := r.Average * float64(r.NumRatings)
	r.NumRatings++
	r.Average = math.Round((total+score)/float64(r.NumRatings)*100) / 100
}
