package services

import "github.com/trailmark-app/trailmark-backend/internal/models"

// recomputeAggregates derives a map's price and country/city sets from its
// current waypoint set. It must run after every waypoint mutation or the
// map-level columns go stale.
func recomputeAggregates(waypoints []models.Waypoint) (price float64, countries, cities []string) {
	countries = []string{}
	cities = []string{}
	seenCountry := make(map[string]bool)
	seenCity := make(map[string]bool)

	for i := range waypoints {
		wp := &waypoints[i]
		price += wp.Price
		if wp.Country != nil && *wp.Country != "" && !seenCountry[*wp.Country] {
			seenCountry[*wp.Country] = true
			countries = append(countries, *wp.Country)
		}
		if wp.City != nil && *wp.City != "" && !seenCity[*wp.City] {
			seenCity[*wp.City] = true
			cities = append(cities, *wp.City)
		}
	}
	return price, countries, cities
}

// aggregateTags collects the deduplicated union of waypoint tags for the
// map-level tag list.
func aggregateTags(waypoints []models.Waypoint) []string {
	tags := []string{}
	seen := make(map[string]bool)
	for i := range waypoints {
		for _, t := range waypoints[i].Tags {
			if t != "" && !seen[t] {
				seen[t] = true
				tags = append(tags, t)
			}
		}
	}
	return tags
}
