package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/trailmark-app/trailmark-backend/internal/dto"
	"github.com/trailmark-app/trailmark-backend/internal/models"
	"gorm.io/gorm"
)

var ErrMapNotSaved = errors.New("map not found in saved maps")

type UserService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

// UpdateProfile applies a partial update; nil fields stay untouched.
func (s *UserService) UpdateProfile(userID uuid.UUID, req *dto.UpdateProfileRequest) error {
	var user models.User
	if err := s.db.First(&user, "id = ?", userID).Error; err != nil {
		return ErrUserNotFound
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Bio != nil {
		user.Bio = *req.Bio
	}

	if err := s.db.Save(&user).Error; err != nil {
		return fmt.Errorf("failed to update profile: %w", err)
	}
	return nil
}

func (s *UserService) SavedMaps(userID uuid.UUID) ([]models.Map, error) {
	var user models.User
	if err := s.db.First(&user, "id = ?", userID).Error; err != nil {
		return nil, ErrUserNotFound
	}

	if len(user.SavedMapIDs) == 0 {
		return []models.Map{}, nil
	}

	var maps []models.Map
	err := s.db.Preload("Waypoints").Preload("Rating").
		Where("id IN ?", []string(user.SavedMapIDs)).
		Find(&maps).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load saved maps: %w", err)
	}
	return maps, nil
}

// SaveMap adds a map to the user's saved list. Saving a map twice is a no-op.
func (s *UserService) SaveMap(userID, mapID uuid.UUID) error {
	var m models.Map
	if err := s.db.First(&m, "id = ?", mapID).Error; err != nil {
		return ErrMapNotFound
	}

	var user models.User
	if err := s.db.First(&user, "id = ?", userID).Error; err != nil {
		return ErrUserNotFound
	}

	if user.HasSaved(mapID) {
		return nil
	}

	user.SavedMapIDs = append(user.SavedMapIDs, mapID.String())
	if err := s.db.Model(&user).Update("saved_map_ids", user.SavedMapIDs).Error; err != nil {
		return fmt.Errorf("failed to save map: %w", err)
	}
	return nil
}

func (s *UserService) UnsaveMap(userID, mapID uuid.UUID) error {
	var user models.User
	if err := s.db.First(&user, "id = ?", userID).Error; err != nil {
		return ErrUserNotFound
	}

	if !user.HasSaved(mapID) {
		return ErrMapNotSaved
	}

	id := mapID.String()
	kept := user.SavedMapIDs[:0]
	for _, saved := range user.SavedMapIDs {
		if saved != id {
			kept = append(kept, saved)
		}
	}
	user.SavedMapIDs = kept

	if err := s.db.Model(&user).Update("saved_map_ids", user.SavedMapIDs).Error; err != nil {
		return fmt.Errorf("failed to remove saved map: %w", err)
	}
	return nil
}
