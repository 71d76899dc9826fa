package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"github.com/trailmark-app/trailmark-backend/internal/models"
)

func catalog() ([]models.Map, uuid.UUID) {
	creator := uuid.New()
	other := uuid.New()
	return []models.Map{
		{
			ID:        uuid.New(),
			Title:     "Paris weekend",
			CreatorID: &creator,
			Price:     20,
			Duration:  strptr("2 days, 0:00:00"),
			Countries: datatypes.NewJSONSlice([]string{"France"}),
			Cities:    datatypes.NewJSONSlice([]string{"Paris"}),
			Tags:      datatypes.NewJSONSlice([]string{"food", "museum"}),
			Rating:    &models.Rating{Average: 4.5, NumRatings: 2},
		},
		{
			ID:        uuid.New(),
			Title:     "Pyrenees trek",
			CreatorID: &creator,
			Price:     80,
			Duration:  strptr("7 days, 0:00:00"),
			Countries: datatypes.NewJSONSlice([]string{"Spain", "France"}),
			Cities:    datatypes.NewJSONSlice([]string{}),
			Tags:      datatypes.NewJSONSlice([]string{"hiking"}),
			Rating:    &models.Rating{Average: 3.0, NumRatings: 1},
		},
		{
			ID:        uuid.New(),
			Title:     "Tokyo city lights",
			CreatorID: &other,
			Price:     150,
			Countries: datatypes.NewJSONSlice([]string{"Japan"}),
			Cities:    datatypes.NewJSONSlice([]string{"Tokyo"}),
			Tags:      datatypes.NewJSONSlice([]string{"food", "nightlife"}),
			Rating:    &models.Rating{},
		},
	}, creator
}

func titles(maps []models.Map) []string {
	out := make([]string, 0, len(maps))
	for _, m := range maps {
		out = append(out, m.Title)
	}
	return out
}

func TestFilterMaps_PriceRange(t *testing.T) {
	maps, _ := catalog()
	got := FilterMaps(maps, FilterCriteria{Price: &Range{Low: 20, High: 80}})
	assert.ElementsMatch(t, []string{"Paris weekend", "Pyrenees trek"}, titles(got))
}

func TestFilterMaps_TagOverlap(t *testing.T) {
	maps, _ := catalog()
	got := FilterMaps(maps, FilterCriteria{Tags: []string{"hiking"}})
	assert.Equal(t, []string{"Pyrenees trek"}, titles(got))
}

func TestFilterMaps_CountryOverlap(t *testing.T) {
	maps, _ := catalog()
	got := FilterMaps(maps, FilterCriteria{Countries: []string{"France", "Italy"}})
	assert.ElementsMatch(t, []string{"Paris weekend", "Pyrenees trek"}, titles(got))
}

func TestFilterMaps_Creator(t *testing.T) {
	maps, creator := catalog()
	got := FilterMaps(maps, FilterCriteria{CreatorID: &creator})
	assert.Len(t, got, 2)
}

func TestFilterMaps_DurationRange(t *testing.T) {
	maps, _ := catalog()
	got := FilterMaps(maps, FilterCriteria{Duration: &Range{Low: 1, High: 3}})
	// Tokyo has no stored duration, so a duration filter excludes it.
	assert.Equal(t, []string{"Paris weekend"}, titles(got))
}

func TestFilterMaps_RatingRange(t *testing.T) {
	maps, _ := catalog()
	got := FilterMaps(maps, FilterCriteria{Rating: &Range{Low: 4, High: 5}})
	assert.Equal(t, []string{"Paris weekend"}, titles(got))
}

func TestFilterMaps_Conjunction(t *testing.T) {
	maps, creator := catalog()
	got := FilterMaps(maps, FilterCriteria{
		CreatorID: &creator,
		Price:     &Range{Low: 50, High: 100},
		Tags:      []string{"hiking", "food"},
	})
	assert.Equal(t, []string{"Pyrenees trek"}, titles(got))
}

func TestFilterMaps_NoCriteriaReturnsAll(t *testing.T) {
	maps, _ := catalog()
	got := FilterMaps(maps, FilterCriteria{})
	assert.Len(t, got, len(maps))
}

func TestFilterMaps_MaxSizeSamples(t *testing.T) {
	maps, _ := catalog()
	got := FilterMaps(maps, FilterCriteria{MaxSize: 2})
	require.Len(t, got, 2)

	// Every sampled map must come from the original catalog.
	all := titles(maps)
	for _, title := range titles(got) {
		assert.Contains(t, all, title)
	}
}

func TestFilterMaps_MaxSizeLargerThanMatches(t *testing.T) {
	maps, _ := catalog()
	got := FilterMaps(maps, FilterCriteria{MaxSize: 50})
	assert.Len(t, got, len(maps))
}

// ---- CriteriaFromQuery -----------------------------------------------------

func TestCriteriaFromQuery_ParsesAll(t *testing.T) {
	creator := uuid.New()
	c := CriteriaFromQuery(map[string]string{
		"creator_id": creator.String(),
		"price":      "20, 80",
		"duration":   "1, 10",
		"rating":     "3, 5",
		"countries":  "France, Spain",
		"cities":     "Paris",
		"tags":       "hiking,food",
		"max_size":   "5",
	})

	require.NotNil(t, c.CreatorID)
	assert.Equal(t, creator, *c.CreatorID)
	require.NotNil(t, c.Price)
	assert.Equal(t, Range{Low: 20, High: 80}, *c.Price)
	require.NotNil(t, c.Duration)
	assert.Equal(t, Range{Low: 1, High: 10}, *c.Duration)
	require.NotNil(t, c.Rating)
	assert.Equal(t, []string{"France", "Spain"}, c.Countries)
	assert.Equal(t, []string{"Paris"}, c.Cities)
	assert.Equal(t, []string{"hiking", "food"}, c.Tags)
	assert.Equal(t, 5, c.MaxSize)
}

// A malformed filter value is dropped, never an error: filtering with it is
// equivalent to omitting the filter.
func TestCriteriaFromQuery_MalformedValuesIgnored(t *testing.T) {
	c := CriteriaFromQuery(map[string]string{
		"creator_id": "not-a-uuid",
		"price":      "cheap",
		"duration":   "1,2,3",
		"rating":     "high",
		"max_size":   "-3",
	})

	assert.Nil(t, c.CreatorID)
	assert.Nil(t, c.Price)
	assert.Nil(t, c.Duration)
	assert.Nil(t, c.Rating)
	assert.Zero(t, c.MaxSize)

	maps, _ := catalog()
	assert.Len(t, FilterMaps(maps, c), len(maps))
}

func TestCriteriaFromQuery_Empty(t *testing.T) {
	c := CriteriaFromQuery(map[string]string{})
	assert.Equal(t, FilterCriteria{}, c)
}
