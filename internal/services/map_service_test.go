package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trailmark-app/trailmark-backend/internal/dto"
)

func fptr(f float64) *float64 { return &f }

func TestBuildWaypoints(t *testing.T) {
	mapID := uuid.New()
	inputs := []WaypointData{
		{
			WaypointInput: dto.WaypointInput{
				Title:     "Eiffel Tower",
				Latitude:  fptr(48.8584),
				Longitude: fptr(2.2945),
				Tags:      []string{"landmark"},
				Price:     26.1,
				Country:   strptr("France"),
				City:      strptr("Paris"),
			},
			Image: []byte{0x89, 0x50},
		},
		{
			WaypointInput: dto.WaypointInput{
				Title:     "Untagged stop",
				Latitude:  fptr(0),
				Longitude: fptr(0),
			},
		},
	}

	waypoints, err := buildWaypoints(mapID, inputs)
	require.NoError(t, err)
	require.Len(t, waypoints, 2)

	assert.Equal(t, mapID, waypoints[0].MapID)
	assert.Equal(t, "Eiffel Tower", waypoints[0].Title)
	assert.Equal(t, 48.8584, waypoints[0].Latitude)
	assert.Equal(t, []byte{0x89, 0x50}, waypoints[0].ImageData)
	assert.NotEqual(t, uuid.Nil, waypoints[0].ID)

	// nil tags normalize to an empty list, not null
	assert.NotNil(t, waypoints[1].Tags)
	assert.Empty(t, waypoints[1].Tags)
}

func TestBuildWaypoints_MissingTitle(t *testing.T) {
	_, err := buildWaypoints(uuid.New(), []WaypointData{
		{WaypointInput: dto.WaypointInput{Latitude: fptr(1), Longitude: fptr(1)}},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "title is required")
}

func TestBuildWaypoints_MissingCoordinates(t *testing.T) {
	_, err := buildWaypoints(uuid.New(), []WaypointData{
		{WaypointInput: dto.WaypointInput{Title: "Nowhere", Latitude: fptr(1)}},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "latitude and longitude are required")
}
