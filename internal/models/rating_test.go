package models_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/trailmark-app/trailmark-backend/internal/models"
)

func TestRating_Apply(t *testing.T) {
	var r models.Rating

	r.Apply(4)
	assert.Equal(t, 1, r.NumRatings)
	assert.Equal(t, 4.0, r.Average)

	r.Apply(2)
	assert.Equal(t, 2, r.NumRatings)
	assert.Equal(t, 3.0, r.Average)
}

func TestRating_ApplyRoundsToTwoDecimals(t *testing.T) {
	var r models.Rating
	for _, score := range []float64{5, 4, 4} {
		r.Apply(score)
	}
	assert.Equal(t, 3, r.NumRatings)
	assert.Equal(t, 4.33, r.Average)
}

// The final average of any score sequence equals the arithmetic mean
// rounded to 2 decimals.
func TestRating_ApplySequenceMatchesMean(t *testing.T) {
	sequences := [][]float64{
		{0},
		{5, 5, 5, 5},
		{0, 5},
		{1, 2, 3, 4, 5},
		{3.5, 2.5, 4.5, 0.5, 1},
		{2, 2, 2, 2, 2, 2, 2, 3},
	}
	for _, scores := range sequences {
		var r models.Rating
		var sum float64
		for _, s := range scores {
			r.Apply(s)
			sum += s
		}
		want := math.Round(sum/float64(len(scores))*100) / 100
		assert.Equal(t, len(scores), r.NumRatings)
		assert.InDelta(t, want, r.Average, 0.01, "scores %v", scores)
	}
}
