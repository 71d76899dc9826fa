package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/trailmark-app/trailmark-backend/internal/config"
	"github.com/trailmark-app/trailmark-backend/internal/handlers"
	"github.com/trailmark-app/trailmark-backend/internal/middleware"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	authHandler *handlers.AuthHandler,
	userHandler *handlers.UserHandler,
	mapHandler *handlers.MapHandler,
	healthHandler *handlers.HealthHandler,
) {
	// General rate limiter: 60 req/min per IP
	app.Use(limiter.New(limiter.Config{
		Max:               60,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	app.Get("/api/health", healthHandler.Check)

	jwt := middleware.JWTProtected(cfg)

	// Auth — register/login get a stricter limit: 10 req/min per IP
	auth := app.Group("/auth")
	authLimiter := limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	})
	auth.Post("/register", authLimiter, authHandler.Register)
	auth.Post("/login", authLimiter, authHandler.Login)
	auth.Get("/profile", jwt, authHandler.Profile)
	auth.Get("/user/:alias", authHandler.PublicProfile)

	// Users
	users := app.Group("/users", jwt)
	users.Patch("/profile", userHandler.UpdateProfile)
	users.Get("/saved-maps", userHandler.SavedMaps)
	users.Post("/saved-maps", userHandler.SaveMap)
	users.Delete("/saved-maps/:map_id", userHandler.UnsaveMap)

	// Maps — catalog routes before the :id wildcard
	maps := app.Group("/maps")
	maps.Post("/create_with_waypoints", jwt, mapHandler.CreateWithWaypoints)
	maps.Get("/get_all_maps_with_waypoints", jwt, mapHandler.All)
	maps.Get("/get_filtered_maps_with_waypoints", jwt, mapHandler.Filtered)
	maps.Get("/get_all_tags", jwt, mapHandler.AllTags)
	maps.Patch("/:id/update_with_waypoints", jwt, mapHandler.UpdateWithWaypoints)
	maps.Delete("/:id/delete", jwt, mapHandler.Delete)
	maps.Post("/:id/waypoints", jwt, mapHandler.AddWaypoint)
	maps.Get("/:id/waypoints", mapHandler.Waypoints)
	maps.Post("/:id/rate", jwt, mapHandler.Rate)
	maps.Get("/:id", mapHandler.Get)
}
