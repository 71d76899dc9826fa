package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/datatypes"

	"github.com/trailmark-app/trailmark-backend/internal/models"
)

func strptr(s string) *string { return &s }

func TestRecomputeAggregates(t *testing.T) {
	waypoints := []models.Waypoint{
		{Title: "Louvre", Price: 10, Country: strptr("France"), City: strptr("Paris")},
		{Title: "Sagrada Familia", Price: 25, Country: strptr("Spain"), City: strptr("Barcelona")},
		{Title: "Free viewpoint", Country: strptr("France"), City: strptr("Paris")},
		{Title: "Somewhere at sea"},
	}

	price, countries, cities := recomputeAggregates(waypoints)

	assert.Equal(t, 35.0, price, "absent price counts as 0")
	assert.ElementsMatch(t, []string{"France", "Spain"}, countries)
	assert.ElementsMatch(t, []string{"Paris", "Barcelona"}, cities)
}

func TestRecomputeAggregates_Empty(t *testing.T) {
	price, countries, cities := recomputeAggregates(nil)
	assert.Zero(t, price)
	assert.Empty(t, countries)
	assert.Empty(t, cities)
	assert.NotNil(t, countries, "empty set serializes as [], not null")
	assert.NotNil(t, cities)
}

func TestAggregateTags(t *testing.T) {
	waypoints := []models.Waypoint{
		{Tags: datatypes.NewJSONSlice([]string{"hiking", "food"})},
		{Tags: datatypes.NewJSONSlice([]string{"food", "museum", ""})},
		{},
	}

	tags := aggregateTags(waypoints)
	assert.ElementsMatch(t, []string{"hiking", "food", "museum"}, tags)
}
