package handlers

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/trailmark-app/trailmark-backend/internal/dto"
	"github.com/trailmark-app/trailmark-backend/internal/images"
	"github.com/trailmark-app/trailmark-backend/internal/middleware"
	"github.com/trailmark-app/trailmark-backend/internal/models"
	"github.com/trailmark-app/trailmark-backend/internal/services"
)

type MapHandler struct {
	mapService *services.MapService
}

func NewMapHandler(mapService *services.MapService) *MapHandler {
	return &MapHandler{mapService: mapService}
}

// CreateWithWaypoints handles POST /maps/create_with_waypoints: a multipart
// request carrying the map fields, a waypoints JSON array, an optional
// map_image file and optional waypoint_image_<idx> files. The whole write is
// one transaction.
func (h *MapHandler) CreateWithWaypoints(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	title := c.FormValue("title")
	if title == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Title is required",
		})
	}

	var inputs []dto.WaypointInput
	if raw := c.FormValue("waypoints"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &inputs); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: "Invalid waypoints JSON",
			})
		}
	}

	mapImage, err := h.formImage(c, "map_image")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Error when retrieving map image: " + err.Error(),
		})
	}

	waypoints, badReq := h.collectWaypoints(c, inputs)
	if badReq != nil {
		return c.Status(fiber.StatusBadRequest).JSON(*badReq)
	}

	in := services.MapCreateInput{
		Title:       title,
		Description: c.FormValue("description"),
		Duration:    optionalFormValue(c, "duration"),
		Image:       mapImage,
		Waypoints:   waypoints,
	}

	mapID, err := h.mapService.CreateWithWaypoints(userID, &in)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to create map and waypoints: " + err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(dto.MapMutationResponse{
		Message: "Map and waypoints created successfully",
		MapID:   mapID,
	})
}

// UpdateWithWaypoints handles PATCH /maps/:id/update_with_waypoints. Only
// supplied fields change; a supplied waypoint list replaces the whole set.
func (h *MapHandler) UpdateWithWaypoints(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	mapID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid map id",
		})
	}

	in := services.MapUpdateInput{
		Title:       c.FormValue("title"),
		Description: c.FormValue("description"),
		Duration:    optionalFormValue(c, "duration"),
	}

	if fh, fhErr := c.FormFile("map_image"); fhErr == nil && fh != nil {
		data, imgErr := images.FromUpload(fh)
		if imgErr != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: "Map image error: " + imgErr.Error(),
			})
		}
		in.Image = data
	}

	if raw := c.FormValue("waypoints"); raw != "" {
		var inputs []dto.WaypointInput
		if err := json.Unmarshal([]byte(raw), &inputs); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: "Invalid waypoints JSON",
			})
		}

		waypoints, badReq := h.collectWaypoints(c, inputs)
		if badReq != nil {
			return c.Status(fiber.StatusBadRequest).JSON(*badReq)
		}
		in.Waypoints = waypoints
	}

	if err := h.mapService.UpdateWithWaypoints(mapID, userID, &in); err != nil {
		if errors.Is(err, services.ErrMapNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to update map and waypoints: " + err.Error(),
		})
	}

	return c.JSON(dto.MapMutationResponse{
		Message: "Map and waypoints updated successfully",
		MapID:   mapID,
	})
}

func (h *MapHandler) Delete(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	mapID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid map id",
		})
	}

	if err := h.mapService.Delete(mapID, userID); err != nil {
		if errors.Is(err, services.ErrMapNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to delete map: " + err.Error(),
		})
	}

	return c.JSON(fiber.Map{"message": "Map and associated waypoints deleted successfully"})
}

func (h *MapHandler) Get(c *fiber.Ctx) error {
	mapID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid map id",
		})
	}

	m, err := h.mapService.Get(mapID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: true, Message: "Map not found",
		})
	}
	return c.JSON(dto.NewMapResponse(m))
}

func (h *MapHandler) Waypoints(c *fiber.Ctx) error {
	mapID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid map id",
		})
	}

	waypoints, err := h.mapService.Waypoints(mapID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: true, Message: "Map not found",
		})
	}

	out := make([]dto.WaypointResponse, 0, len(waypoints))
	for i := range waypoints {
		out = append(out, dto.NewWaypointResponse(&waypoints[i]))
	}
	return c.JSON(out)
}

// AddWaypoint handles POST /maps/:id/waypoints: a JSON waypoint body, or a
// multipart request with a "waypoint" JSON field plus an "image" file.
func (h *MapHandler) AddWaypoint(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	mapID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid map id",
		})
	}

	var in dto.WaypointInput
	if raw := c.FormValue("waypoint"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &in); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: "Invalid waypoint JSON",
			})
		}
	} else if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	wp := services.WaypointData{WaypointInput: in}
	if fh, fhErr := c.FormFile("image"); fhErr == nil && fh != nil {
		data, imgErr := images.FromUpload(fh)
		if imgErr != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: imgErr.Error(),
			})
		}
		wp.Image = data
	} else if in.ImageData != "" {
		data, imgErr := images.FromBase64(in.ImageData)
		if imgErr != nil && !errors.Is(imgErr, images.ErrNoFile) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: imgErr.Error(),
			})
		}
		wp.Image = data
	}

	wpID, err := h.mapService.AddWaypoint(mapID, userID, &wp)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrMapNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "Map not found",
			})
		case errors.Is(err, services.ErrNotCreator):
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
				Error: true, Message: "Failed to add waypoint: " + err.Error(),
			})
		}
	}

	return c.Status(fiber.StatusCreated).JSON(dto.WaypointMutationResponse{
		Message:    "Waypoint added successfully",
		WaypointID: wpID,
	})
}

func (h *MapHandler) Rate(c *fiber.Ctx) error {
	mapID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid map id",
		})
	}

	var req dto.RateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}
	if req.Rating == nil || *req.Rating < 0 || *req.Rating > 5 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Rating must be between 0 and 5",
		})
	}

	rating, err := h.mapService.Rate(mapID, *req.Rating)
	if err != nil {
		if errors.Is(err, services.ErrMapNotFound) || errors.Is(err, services.ErrRatingNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to rate map",
		})
	}

	return c.JSON(dto.NewRatingResponse(rating))
}

func (h *MapHandler) All(c *fiber.Ctx) error {
	maps, err := h.mapService.All()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to fetch maps",
		})
	}
	return c.JSON(mapResponses(maps))
}

func (h *MapHandler) Filtered(c *fiber.Ctx) error {
	criteria := services.CriteriaFromQuery(c.Queries())

	maps, err := h.mapService.Filtered(criteria)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to fetch filtered maps",
		})
	}
	return c.JSON(mapResponses(maps))
}

func (h *MapHandler) AllTags(c *fiber.Ctx) error {
	tags, err := h.mapService.AllTags()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to retrieve tags",
		})
	}
	return c.JSON(tags)
}

// collectWaypoints resolves each waypoint's image: a waypoint_image_<idx>
// upload wins, then a base64 image_data field, then no image.
func (h *MapHandler) collectWaypoints(c *fiber.Ctx, inputs []dto.WaypointInput) ([]services.WaypointData, *dto.ErrorResponse) {
	waypoints := make([]services.WaypointData, 0, len(inputs))
	for idx, in := range inputs {
		wp := services.WaypointData{WaypointInput: in}

		data, err := h.formImage(c, fmt.Sprintf("waypoint_image_%d", idx))
		if err != nil {
			return nil, &dto.ErrorResponse{
				Error: true, Message: fmt.Sprintf("Waypoint %s image error: %s", in.Title, err),
			}
		}
		if data == nil && in.ImageData != "" {
			data, err = images.FromBase64(in.ImageData)
			if err != nil && !errors.Is(err, images.ErrNoFile) {
				return nil, &dto.ErrorResponse{
					Error: true, Message: fmt.Sprintf("Waypoint %s image error: %s", in.Title, err),
				}
			}
		}
		wp.Image = data
		waypoints = append(waypoints, wp)
	}
	return waypoints, nil
}

// formImage validates an optional multipart file. A missing file is not an
// error; it just yields nil bytes.
func (h *MapHandler) formImage(c *fiber.Ctx, field string) ([]byte, error) {
	fh, err := c.FormFile(field)
	if err != nil || fh == nil {
		return nil, nil
	}
	data, err := images.FromUpload(fh)
	if err != nil {
		if errors.Is(err, images.ErrNoFile) {
			return nil, nil
		}
		return nil, err
	}
	return data, nil
}

func optionalFormValue(c *fiber.Ctx, field string) *string {
	if v := c.FormValue(field); v != "" {
		return &v
	}
	return nil
}

func mapResponses(maps []models.Map) []dto.MapResponse {
	out := make([]dto.MapResponse, 0, len(maps))
	for i := range maps {
		out = append(out, dto.NewMapResponse(&maps[i]))
	}
	return out
}
