package main

import (
	"log"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"

	"imalink-backend/internal/config"
	"imalink-backend/internal/handler"
	"imalink-backend/internal/middleware"
	"imalink-backend/internal/repository"
	"imalink-backend/internal/service"
	"imalink-backend/internal/service/auth"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := config.Load()

	db, err := config.NewPostgresDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	redis, err := config.NewRedisClient(cfg)
	if err != nil {
		log.Printf("Warning: Failed to connect to Redis: %v (tree caching disabled)", err)
		redis = nil
	}
	if redis != nil {
		defer redis.Close()
	}

	minioClient, err := config.NewMinIOClient(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to MinIO: %v", err)
	}

	repos := repository.NewRepositories(db)
	services := service.NewServices(repos, redis, minioClient, cfg)
	handlers := handler.NewHandlers(services)

	app := fiber.New(fiber.Config{
		ErrorHandler: middleware.ErrorHandler,
	})

	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Next: func(c *fiber.Ctx) bool {
			return c.Path() == "/health"
		},
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PUT, PATCH, DELETE, OPTIONS",
	}))

	setupRoutes(app, handlers, services.Auth)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Server starting on port %s", port)
	if err := app.Listen(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func setupRoutes(app *fiber.App, h *handler.Handlers, authService auth.Service) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	v1 := app.Group("/api/v1")

	authRoutes := v1.Group("/auth")
	authRoutes.Post("/register", h.Auth.Register)
	authRoutes.Post("/login", h.Auth.Login)
	authRoutes.Post("/refresh", h.Auth.RefreshToken)

	protected := v1.Group("", middleware.AuthRequired(authService))

	events := protected.Group("/events")
	events.Get("/", h.Event.List)
	events.Get("/tree", h.Event.GetTree)
	events.Post("/", h.Event.Create)
	events.Get("/:eventId", h.Event.Get)
	events.Patch("/:eventId", h.Event.Update)
	events.Post("/:eventId/move", h.Event.Move)
	events.Delete("/:eventId", h.Event.Delete)
	events.Post("/:eventId/photos", h.Event.AddPhotos)
	events.Delete("/:eventId/photos", h.Event.RemovePhotos)
	events.Get("/:eventId/photos", h.Event.GetPhotos)
	events.Get("/:eventId/photos/count", h.Event.PhotoCount)

	photos := protected.Group("/photos")
	photos.Post("/", h.Photo.Upload)
	photos.Get("/", h.Photo.List)
	photos.Get("/:hash", h.Photo.Get)
	photos.Delete("/:hash", h.Photo.Delete)
}
