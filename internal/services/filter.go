package services

import (
	"math/rand"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/trailmark-app/trailmark-backend/internal/interval"
	"github.com/trailmark-app/trailmark-backend/internal/models"
)

// Range is an inclusive [Low, High] filter bound.
type Range struct {
	Low  float64
	High float64
}

func (r Range) contains(v float64) bool {
	return v >= r.Low && v <= r.High
}

// FilterCriteria is a conjunction of optional catalog filters. Nil/empty
// fields are not applied.
type FilterCriteria struct {
	CreatorID *uuid.UUID
	Price     *Range
	Duration  *Range // fractional days
	Rating    *Range
	Countries []string
	Cities    []string
	Tags      []string
	MaxSize   int
}

// CriteriaFromQuery builds filter criteria from raw query parameters.
// A malformed value drops that one filter; it never fails the request.
func CriteriaFromQuery(params map[string]string) FilterCriteria {
	var c FilterCriteria

	if raw, ok := params["creator_id"]; ok {
		if id, err := uuid.Parse(strings.TrimSpace(raw)); err == nil {
			c.CreatorID = &id
		}
	}
	c.Price = parseRange(params["price"])
	c.Duration = parseRange(params["duration"])
	c.Rating = parseRange(params["rating"])
	c.Countries = parseList(params["countries"])
	c.Cities = parseList(params["cities"])
	c.Tags = parseList(params["tags"])

	if n, err := strconv.Atoi(strings.TrimSpace(params["max_size"])); err == nil && n > 0 {
		c.MaxSize = n
	}

	return c
}

// FilterMaps returns the maps matching every supplied filter, capped to a
// uniformly random sample when MaxSize is set below the match count.
func FilterMaps(maps []models.Map, c FilterCriteria) []models.Map {
	matched := []models.Map{}
	for i := range maps {
		if matches(&maps[i], c) {
			matched = append(matched, maps[i])
		}
	}

	if c.MaxSize > 0 && c.MaxSize < len(matched) {
		rand.Shuffle(len(matched), func(i, j int) {
			matched[i], matched[j] = matched[j], matched[i]
		})
		matched = matched[:c.MaxSize]
	}
	return matched
}

func matches(m *models.Map, c FilterCriteria) bool {
	if c.CreatorID != nil {
		if m.CreatorID == nil || *m.CreatorID != *c.CreatorID {
			return false
		}
	}
	if c.Price != nil && !c.Price.contains(m.Price) {
		return false
	}
	if c.Duration != nil {
		if m.Duration == nil {
			return false
		}
		days, ok := interval.Days(*m.Duration)
		if !ok || !c.Duration.contains(days) {
			return false
		}
	}
	if c.Rating != nil {
		if m.Rating == nil || !c.Rating.contains(m.Rating.Average) {
			return false
		}
	}
	if len(c.Countries) > 0 && !overlaps(m.Countries, c.Countries) {
		return false
	}
	if len(c.Cities) > 0 && !overlaps(m.Cities, c.Cities) {
		return false
	}
	if len(c.Tags) > 0 && !overlaps(m.Tags, c.Tags) {
		return false
	}
	return true
}

func overlaps(have []string, want []string) bool {
	set := make(map[string]bool, len(have))
	for _, v := range have {
		set[v] = true
	}
	for _, v := range want {
		if set[v] {
			return true
		}
	}
	return false
}

// parseRange parses "20, 80" into an inclusive range; anything else is nil.
func parseRange(raw string) *Range {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	if len(parts) != 2 {
		return nil
	}
	low, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return nil
	}
	high, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return nil
	}
	return &Range{Low: low, High: high}
}

func parseList(raw string) []string {
	if raw == "" {
		return nil
	}
	var out []string
	for _, p := range strings.Split(raw, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
