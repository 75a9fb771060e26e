// Package httpapi exposes the marketplace REST API over Fiber.
package httpapi

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"github.com/dmitrijs2005/campusmarket/internal/logging"
	"github.com/dmitrijs2005/campusmarket/internal/server/config"
	"github.com/dmitrijs2005/campusmarket/internal/server/services"
)

// Server holds the handler dependencies.
type Server struct {
	config  *config.Config
	users   *services.UserService
	items   *services.ItemService
	uploads *services.UploadService
	logger  logging.Logger
}

func NewServer(cfg *config.Config, users *services.UserService, items *services.ItemService,
	uploads *services.UploadService, logger logging.Logger) *Server {
	return &Server{
		config:  cfg,
		users:   users,
		items:   items,
		uploads: uploads,
		logger:  logger,
	}
}

// SetupMiddleware installs the request id, logging, rate limit, and CORS
// layers in that order.
func (s *Server) SetupMiddleware(app *fiber.App) {
	app.Use(requestid.New())
	app.Use(s.requestLogger())

	app.Use(limiter.New(limiter.Config{
		Max:        100,
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return respondError(c, fiber.StatusTooManyRequests, "Too many requests, please try again later")
		},
	}))

	app.Use(cors.New(cors.Config{
		AllowOrigins:     s.config.AllowedOrigins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
		MaxAge:           86400,
	}))
}

// SetupRoutes wires every API endpoint. Paths mirror the client's endpoint
// registry.
func (s *Server) SetupRoutes(app *fiber.App) {
	api := app.Group("/api")

	api.Get("/health", s.HealthCheck)

	auth := api.Group("/auth")
	auth.Post("/register", s.Register)
	auth.Post("/login", s.Login)
	auth.Post("/logout", s.requireAuth, s.Logout)
	auth.Get("/me", s.requireAuth, s.Me)
	auth.Patch("/profile", s.requireAuth, s.UpdateProfile)
	auth.Post("/change-password", s.requireAuth, s.ChangePassword)

	items := api.Group("/items")
	items.Get("/", s.ListItems)
	items.Get("/user/my-items", s.requireAuth, s.MyItems)
	items.Get("/seller/:id", s.ItemsBySeller)
	items.Get("/:id", s.GetItem)
	items.Post("/", s.requireAuth, s.CreateItem)
	items.Patch("/:id", s.requireAuth, s.UpdateItem)
	items.Delete("/:id", s.requireAuth, s.DeleteItem)
	items.Patch("/:id/sold", s.requireAuth, s.MarkItemSold)

	upload := api.Group("/upload")
	upload.Post("/images", s.requireAuth, s.UploadImages)
}

func (s *Server) HealthCheck(c *fiber.Ctx) error {
	return respondOK(c, fiber.StatusOK, fiber.Map{"status": "ok"})
}
