package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/trailmark-app/trailmark-backend/internal/dto"
	"github.com/trailmark-app/trailmark-backend/internal/images"
	"github.com/trailmark-app/trailmark-backend/internal/middleware"
	"github.com/trailmark-app/trailmark-backend/internal/services"
)

type AuthHandler struct {
	authService *services.AuthService
}

func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	var profileImage []byte
	if fh, err := c.FormFile("profile_image"); err == nil {
		data, imgErr := images.FromUpload(fh)
		if imgErr != nil && !errors.Is(imgErr, images.ErrNoFile) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: "Profile image error: " + imgErr.Error(),
			})
		}
		profileImage = data
	}

	user, err := h.authService.Register(&req, profileImage)
	if err != nil {
		if errors.Is(err, services.ErrEmailTaken) || errors.Is(err, services.ErrAliasTaken) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(dto.RegisterResponse{
		Message: "User registered successfully",
		UserID:  user.ID,
	})
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}
	if req.Email == "" || req.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Email and password are required",
		})
	}

	token, user, err := h.authService.Login(&req)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Internal server error",
		})
	}

	return c.JSON(dto.LoginResponse{AccessToken: token, UserID: user.ID})
}

func (h *AuthHandler) Profile(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	user, err := h.authService.Profile(userID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: true, Message: "User not found",
		})
	}

	return c.JSON(dto.ProfileResponse{
		ID:           user.ID,
		Email:        user.Email,
		Role:         user.Role,
		Alias:        user.Alias,
		Name:         user.Name,
		Bio:          user.Bio,
		ProfileImage: images.ToBase64(user.ProfileImage),
		SavedMapIDs:  user.SavedMapIDs,
	})
}

// PublicProfile serves GET /auth/user/:alias without authentication.
func (h *AuthHandler) PublicProfile(c *fiber.Ctx) error {
	alias := c.Params("alias")

	user, maps, err := h.authService.PublicProfile(alias)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "User not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Internal server error",
		})
	}

	summaries := make([]dto.MapSummary, 0, len(maps))
	for i := range maps {
		summaries = append(summaries, dto.NewMapSummary(&maps[i]))
	}

	return c.JSON(dto.PublicProfileResponse{
		Alias:        user.Alias,
		Name:         user.Name,
		Bio:          user.Bio,
		ProfileImage: images.ToBase64(user.ProfileImage),
		Maps:         summaries,
	})
}
