package dto

type UpdateProfileRequest struct {
	Name *string `json:"name"`
	Bio  *string `json:"bio"`
}

type SaveMapRequest struct {
	MapID string `json:"map_id"`
}
