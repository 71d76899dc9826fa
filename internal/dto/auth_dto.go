package dto

import "github.com/google/uuid"

type RegisterRequest struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
	Role     string `json:"role" form:"role"`
	Alias    string `json:"alias" form:"alias"`
	Name     string `json:"name" form:"name"`
	Bio      string `json:"bio" form:"bio"`
}

type RegisterResponse struct {
	Message string    `json:"message"`
	UserID  uuid.UUID `json:"user_id"`
}

type LoginRequest struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

type LoginResponse struct {
	AccessToken string    `json:"access_token"`
	UserID      uuid.UUID `json:"user_id"`
}

type ProfileResponse struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	Role         string    `json:"role"`
	Alias        string    `json:"alias"`
	Name         string    `json:"name"`
	Bio          string    `json:"bio"`
	ProfileImage string    `json:"profile_image"`
	SavedMapIDs  []string  `json:"saved_map_ids"`
}

// PublicProfileResponse is the unauthenticated view of a user plus the
// metadata of the maps they created.
type PublicProfileResponse struct {
	Alias        string       `json:"alias"`
	Name         string       `json:"name"`
	Bio          string       `json:"bio"`
	ProfileImage string       `json:"profile_image"`
	Maps         []MapSummary `json:"maps"`
}

type ErrorResponse struct {
	Error   bool   `json:"error"`
	Message string `json:"message"`
}

type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	DB        string `json:"db"`
}
