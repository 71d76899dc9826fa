package dto

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/trailmark-app/trailmark-backend/internal/images"
	"github.com/trailmark-app/trailmark-backend/internal/interval"
	"github.com/trailmark-app/trailmark-backend/internal/models"
)

// WaypointInput is one element of the waypoints JSON array sent with
// create/update requests. ImageData carries an optional base64 image for
// waypoints that do not ship a multipart file.
type WaypointInput struct {
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Info        string          `json:"info"`
	Latitude    *float64        `json:"latitude"`
	Longitude   *float64        `json:"longitude"`
	Tags        []string        `json:"tags"`
	TimesOfDay  json.RawMessage `json:"times_of_day"`
	Price       float64         `json:"price"`
	Duration    *string         `json:"duration"`
	Country     *string         `json:"country"`
	City        *string         `json:"city"`
	ImageData   string          `json:"image_data"`
}

type RateRequest struct {
	Rating *float64 `json:"rating"`
}

type MapMutationResponse struct {
	Message string    `json:"message"`
	MapID   uuid.UUID `json:"map_id"`
}

type WaypointMutationResponse struct {
	Message    string    `json:"message"`
	WaypointID uuid.UUID `json:"waypoint_id"`
}

type RatingResponse struct {
	ID         uuid.UUID `json:"id"`
	Average    float64   `json:"average_rating"`
	NumRatings int       `json:"num_ratings"`
}

type WaypointResponse struct {
	ID          uuid.UUID       `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Info        string          `json:"info"`
	Latitude    float64         `json:"latitude"`
	Longitude   float64         `json:"longitude"`
	Tags        []string        `json:"tags"`
	TimesOfDay  json.RawMessage `json:"times_of_day"`
	Price       float64         `json:"price"`
	Rating      float64         `json:"rating"`
	Duration    *string         `json:"duration"`
	Country     *string         `json:"country"`
	City        *string         `json:"city"`
	Image       string          `json:"image"`
}

type MapResponse struct {
	ID          uuid.UUID          `json:"id"`
	Title       string             `json:"title"`
	Description string             `json:"description"`
	Duration    *string            `json:"duration"`
	CreatorID   *uuid.UUID         `json:"creator_id"`
	Price       float64            `json:"price"`
	Countries   []string           `json:"countries"`
	Cities      []string           `json:"cities"`
	Tags        []string           `json:"tags"`
	Image       string             `json:"image"`
	CreatedAt   time.Time          `json:"created_at"`
	Rating      *RatingResponse    `json:"rating"`
	Waypoints   []WaypointResponse `json:"waypoints"`
}

// MapSummary is the catalog/profile listing shape: no waypoints, no images.
type MapSummary struct {
	ID        uuid.UUID       `json:"id"`
	Title     string          `json:"title"`
	Price     float64         `json:"price"`
	Countries []string        `json:"countries"`
	Rating    *RatingResponse `json:"rating"`
	CreatedAt time.Time       `json:"created_at"`
}

func NewRatingResponse(r *models.Rating) *RatingResponse {
	if r == nil {
		return nil
	}
	return &RatingResponse{ID: r.ID, Average: r.Average, NumRatings: r.NumRatings}
}

func NewWaypointResponse(w *models.Waypoint) WaypointResponse {
	return WaypointResponse{
		ID:          w.ID,
		Title:       w.Title,
		Description: w.Description,
		Info:        w.Info,
		Latitude:    w.Latitude,
		Longitude:   w.Longitude,
		Tags:        w.Tags,
		TimesOfDay:  json.RawMessage(w.TimesOfDay),
		Price:       w.Price,
		Rating:      w.Rating,
		Duration:    humanize(w.Duration),
		Country:     w.Country,
		City:        w.City,
		Image:       images.ToBase64(w.ImageData),
	}
}

func NewMapResponse(m *models.Map) MapResponse {
	waypoints := make([]WaypointResponse, 0, len(m.Waypoints))
	for i := range m.Waypoints {
		waypoints = append(waypoints, NewWaypointResponse(&m.Waypoints[i]))
	}
	return MapResponse{
		ID:          m.ID,
		Title:       m.Title,
		Description: m.Description,
		Duration:    humanize(m.Duration),
		CreatorID:   m.CreatorID,
		Price:       m.Price,
		Countries:   m.Countries,
		Cities:      m.Cities,
		Tags:        m.Tags,
		Image:       images.ToBase64(m.ImageData),
		CreatedAt:   m.CreatedAt,
		Rating:      NewRatingResponse(m.Rating),
		Waypoints:   waypoints,
	}
}

func NewMapSummary(m *models.Map) MapSummary {
	return MapSummary{
		ID:        m.ID,
		Title:     m.Title,
		Price:     m.Price,
		Countries: m.Countries,
		Rating:    NewRatingResponse(m.Rating),
		CreatedAt: m.CreatedAt,
	}
}

func humanize(d *string) *string {
	if d == nil {
		return nil
	}
	s := interval.Humanize(*d)
	return &s
}
