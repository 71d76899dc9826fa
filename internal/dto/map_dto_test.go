package dto_test

import (
	"encoding/base64"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"github.com/trailmark-app/trailmark-backend/internal/dto"
	"github.com/trailmark-app/trailmark-backend/internal/models"
)

func TestNewMapResponse(t *testing.T) {
	creator := uuid.New()
	duration := "2 days, 3:30:00"
	country := "France"

	m := models.Map{
		ID:        uuid.New(),
		Title:     "Paris weekend",
		Duration:  &duration,
		CreatorID: &creator,
		Price:     35,
		Countries: datatypes.NewJSONSlice([]string{"France"}),
		Tags:      datatypes.NewJSONSlice([]string{"food"}),
		ImageData: []byte{0x01, 0x02},
		Rating:    &models.Rating{ID: uuid.New(), Average: 3.0, NumRatings: 2},
		Waypoints: []models.Waypoint{
			{ID: uuid.New(), Title: "Louvre", Price: 10, Country: &country},
		},
	}

	resp := dto.NewMapResponse(&m)

	require.NotNil(t, resp.Duration)
	assert.Equal(t, "2 days, 3 hours, 30 minutes", *resp.Duration)
	assert.Equal(t, base64.StdEncoding.EncodeToString(m.ImageData), resp.Image)
	require.NotNil(t, resp.Rating)
	assert.Equal(t, 3.0, resp.Rating.Average)
	assert.Equal(t, 2, resp.Rating.NumRatings)
	require.Len(t, resp.Waypoints, 1)
	assert.Equal(t, "Louvre", resp.Waypoints[0].Title)
}

func TestNewMapResponse_AbsentOptionalFields(t *testing.T) {
	m := models.Map{ID: uuid.New(), Title: "Bare map"}
	resp := dto.NewMapResponse(&m)

	assert.Nil(t, resp.Duration, "absent duration stays absent")
	assert.Nil(t, resp.Rating)
	assert.Empty(t, resp.Image)
	assert.NotNil(t, resp.Waypoints, "waypoints serialize as [], not null")
}

func TestNewMapSummary(t *testing.T) {
	m := models.Map{
		ID:        uuid.New(),
		Title:     "Pyrenees trek",
		Price:     80,
		Countries: datatypes.NewJSONSlice([]string{"Spain", "France"}),
		Rating:    &models.Rating{Average: 4.33, NumRatings: 3},
	}

	s := dto.NewMapSummary(&m)
	assert.Equal(t, m.ID, s.ID)
	assert.Equal(t, 80.0, s.Price)
	assert.Equal(t, []string{"Spain", "France"}, s.Countries)
	require.NotNil(t, s.Rating)
	assert.Equal(t, 4.33, s.Rating.Average)
}
