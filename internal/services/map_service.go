package services

import (
	"errors"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/trailmark-app/trailmark-backend/internal/dto"
	"github.com/trailmark-app/trailmark-backend/internal/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var (
	ErrMapNotFound    = errors.New("map not found or unauthorized")
	ErrRatingNotFound = errors.New("rating entity not found for this map")
	ErrNotCreator     = errors.New("only the creator of this map can add waypoints")
)

type MapService struct {
	db *gorm.DB
}

func NewMapService(db *gorm.DB) *MapService {
	return &MapService{db: db}
}

// WaypointData pairs a waypoint's fields with its validated image bytes.
type WaypointData struct {
	dto.WaypointInput
	Image []byte
}

type MapCreateInput struct {
	Title       string
	Description string
	Duration    *string
	Image       []byte
	Waypoints   []WaypointData
}

type MapUpdateInput struct {
	Title       string
	Description string
	Duration    *string
	Image       []byte
	// Waypoints nil leaves the existing set untouched; non-nil fully
	// replaces it.
	Waypoints []WaypointData
}

// CreateWithWaypoints creates a rating, the map and its waypoints as one
// transaction, then derives the map-level aggregates. Nothing persists on
// failure.
func (s *MapService) CreateWithWaypoints(creatorID uuid.UUID, in *MapCreateInput) (uuid.UUID, error) {
	if in.Title == "" {
		return uuid.Nil, errors.New("title is required")
	}

	var mapID uuid.UUID
	err := s.db.Transaction(func(tx *gorm.DB) error {
		rating := models.Rating{ID: uuid.New()}
		if err := tx.Create(&rating).Error; err != nil {
			return fmt.Errorf("failed to create rating: %w", err)
		}

		m := models.Map{
			ID:          uuid.New(),
			Title:       in.Title,
			Description: in.Description,
			Duration:    in.Duration,
			CreatorID:   &creatorID,
			RatingID:    &rating.ID,
			ImageData:   in.Image,
		}
		if err := tx.Create(&m).Error; err != nil {
			return fmt.Errorf("failed to create map: %w", err)
		}

		waypoints, err := buildWaypoints(m.ID, in.Waypoints)
		if err != nil {
			return err
		}
		if len(waypoints) > 0 {
			if err := tx.Create(&waypoints).Error; err != nil {
				return fmt.Errorf("failed to create waypoints: %w", err)
			}
		}

		if err := applyAggregates(tx, m.ID, waypoints); err != nil {
			return err
		}

		mapID = m.ID
		return nil
	})
	if err != nil {
		return uuid.Nil, err
	}
	return mapID, nil
}

// UpdateWithWaypoints applies a partial update to a map owned by creatorID.
// A supplied waypoint list fully replaces the existing set; aggregates are
// recomputed afterwards. A map owned by someone else is indistinguishable
// from a missing one.
func (s *MapService) UpdateWithWaypoints(mapID, creatorID uuid.UUID, in *MapUpdateInput) error {
	var m models.Map
	if err := s.db.Where("id = ? AND creator_id = ?", mapID, creatorID).First(&m).Error; err != nil {
		return ErrMapNotFound
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if in.Title != "" {
			m.Title = in.Title
		}
		if in.Description != "" {
			m.Description = in.Description
		}
		if in.Duration != nil {
			m.Duration = in.Duration
		}
		if in.Image != nil {
			m.ImageData = in.Image
		}

		if in.Waypoints != nil {
			if err := tx.Where("map_id = ?", m.ID).Delete(&models.Waypoint{}).Error; err != nil {
				return fmt.Errorf("failed to clear waypoints: %w", err)
			}

			waypoints, err := buildWaypoints(m.ID, in.Waypoints)
			if err != nil {
				return err
			}
			if len(waypoints) > 0 {
				if err := tx.Create(&waypoints).Error; err != nil {
					return fmt.Errorf("failed to create waypoints: %w", err)
				}
			}

			price, countries, cities := recomputeAggregates(waypoints)
			m.Price = price
			m.Countries = datatypes.NewJSONSlice(countries)
			m.Cities = datatypes.NewJSONSlice(cities)
			m.Tags = datatypes.NewJSONSlice(aggregateTags(waypoints))
		}

		if err := tx.Save(&m).Error; err != nil {
			return fmt.Errorf("failed to update map: %w", err)
		}
		return nil
	})
}

// Delete removes a map, its waypoints and its rating record as one unit.
func (s *MapService) Delete(mapID, creatorID uuid.UUID) error {
	var m models.Map
	if err := s.db.Where("id = ? AND creator_id = ?", mapID, creatorID).First(&m).Error; err != nil {
		return ErrMapNotFound
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("map_id = ?", m.ID).Delete(&models.Waypoint{}).Error; err != nil {
			return fmt.Errorf("failed to delete waypoints: %w", err)
		}
		if m.RatingID != nil {
			if err := tx.Where("id = ?", *m.RatingID).Delete(&models.Rating{}).Error; err != nil {
				return fmt.Errorf("failed to delete rating: %w", err)
			}
		}
		if err := tx.Delete(&m).Error; err != nil {
			return fmt.Errorf("failed to delete map: %w", err)
		}
		return nil
	})
}

func (s *MapService) Get(mapID uuid.UUID) (*models.Map, error) {
	var m models.Map
	err := s.db.Preload("Waypoints").Preload("Rating").First(&m, "id = ?", mapID).Error
	if err != nil {
		return nil, ErrMapNotFound
	}
	return &m, nil
}

func (s *MapService) Waypoints(mapID uuid.UUID) ([]models.Waypoint, error) {
	if err := s.db.First(&models.Map{}, "id = ?", mapID).Error; err != nil {
		return nil, ErrMapNotFound
	}

	var waypoints []models.Waypoint
	if err := s.db.Where("map_id = ?", mapID).Find(&waypoints).Error; err != nil {
		return nil, fmt.Errorf("failed to load waypoints: %w", err)
	}
	return waypoints, nil
}

// AddWaypoint appends one waypoint to a map the caller created and
// recomputes the map aggregates in the same transaction.
func (s *MapService) AddWaypoint(mapID, userID uuid.UUID, in *WaypointData) (uuid.UUID, error) {
	var m models.Map
	if err := s.db.First(&m, "id = ?", mapID).Error; err != nil {
		return uuid.Nil, ErrMapNotFound
	}
	if m.CreatorID == nil || *m.CreatorID != userID {
		return uuid.Nil, ErrNotCreator
	}

	var wpID uuid.UUID
	err := s.db.Transaction(func(tx *gorm.DB) error {
		waypoints, err := buildWaypoints(m.ID, []WaypointData{*in})
		if err != nil {
			return err
		}
		if err := tx.Create(&waypoints).Error; err != nil {
			return fmt.Errorf("failed to create waypoint: %w", err)
		}

		var all []models.Waypoint
		if err := tx.Where("map_id = ?", m.ID).Find(&all).Error; err != nil {
			return fmt.Errorf("failed to load waypoints: %w", err)
		}
		if err := applyAggregates(tx, m.ID, all); err != nil {
			return err
		}

		wpID = waypoints[0].ID
		return nil
	})
	if err != nil {
		return uuid.Nil, err
	}
	return wpID, nil
}

// Rate folds a score into the map's running average. Bounds are checked at
// the handler.
func (s *MapService) Rate(mapID uuid.UUID, score float64) (*models.Rating, error) {
	var m models.Map
	if err := s.db.Preload("Rating").First(&m, "id = ?", mapID).Error; err != nil {
		return nil, ErrMapNotFound
	}
	if m.Rating == nil {
		return nil, ErrRatingNotFound
	}

	m.Rating.Apply(score)
	if err := s.db.Save(m.Rating).Error; err != nil {
		return nil, fmt.Errorf("failed to update rating: %w", err)
	}
	return m.Rating, nil
}

func (s *MapService) All() ([]models.Map, error) {
	var maps []models.Map
	if err := s.db.Preload("Waypoints").Preload("Rating").Find(&maps).Error; err != nil {
		return nil, fmt.Errorf("failed to load maps: %w", err)
	}
	return maps, nil
}

// Filtered loads the catalog and applies the criteria conjunction.
func (s *MapService) Filtered(criteria FilterCriteria) ([]models.Map, error) {
	maps, err := s.All()
	if err != nil {
		return nil, err
	}
	return FilterMaps(maps, criteria), nil
}

// AllTags returns the sorted union of tags across all maps.
func (s *MapService) AllTags() ([]string, error) {
	var maps []models.Map
	if err := s.db.Select("tags").Find(&maps).Error; err != nil {
		return nil, fmt.Errorf("failed to load tags: %w", err)
	}

	seen := make(map[string]bool)
	tags := []string{}
	for i := range maps {
		for _, t := range maps[i].Tags {
			if t != "" && !seen[t] {
				seen[t] = true
				tags = append(tags, t)
			}
		}
	}
	sort.Strings(tags)
	return tags, nil
}

func buildWaypoints(mapID uuid.UUID, inputs []WaypointData) ([]models.Waypoint, error) {
	waypoints := make([]models.Waypoint, 0, len(inputs))
	for i := range inputs {
		in := &inputs[i]
		if in.Title == "" {
			return nil, fmt.Errorf("waypoint %d: title is required", i)
		}
		if in.Latitude == nil || in.Longitude == nil {
			return nil, fmt.Errorf("waypoint %q: latitude and longitude are required", in.Title)
		}

		tags := in.Tags
		if tags == nil {
			tags = []string{}
		}

		wp := models.Waypoint{
			ID:          uuid.New(),
			MapID:       mapID,
			Title:       in.Title,
			Description: in.Description,
			Info:        in.Info,
			Latitude:    *in.Latitude,
			Longitude:   *in.Longitude,
			Tags:        datatypes.NewJSONSlice(tags),
			Price:       in.Price,
			Duration:    in.Duration,
			ImageData:   in.Image,
			Country:     in.Country,
			City:        in.City,
		}
		if len(in.TimesOfDay) > 0 {
			wp.TimesOfDay = datatypes.JSON(in.TimesOfDay)
		}
		waypoints = append(waypoints, wp)
	}
	return waypoints, nil
}

func applyAggregates(tx *gorm.DB, mapID uuid.UUID, waypoints []models.Waypoint) error {
	price, countries, cities := recomputeAggregates(waypoints)
	err := tx.Model(&models.Map{}).Where("id = ?", mapID).Updates(map[string]interface{}{
		"price":     price,
		"countries": datatypes.NewJSONSlice(countries),
		"cities":    datatypes.NewJSONSlice(cities),
		"tags":      datatypes.NewJSONSlice(aggregateTags(waypoints)),
	}).Error
	if err != nil {
		return fmt.Errorf("failed to update map aggregates: %w", err)
	}
	return nil
}
