package main

import (
	"context"
	"log"

	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"contentapi/internal/config"
	"contentapi/internal/gitstore"
	handlers "contentapi/internal/http/handler"
	"contentapi/internal/http/middleware"
	"contentapi/internal/otel"
	"contentapi/internal/service"
)

func main() {
	// Load configuration from environment variables (.env auto-loaded if present)
	cfg := config.Load()

	// Tracing covers the outbound GitHub API calls through the
	// instrumented HTTP transport
	shutdownTracing, err := otel.Init(context.Background())
	if err != nil {
		log.Fatalf("failed to initialize tracing: %v", err)
	}
	defer shutdownTracing(context.Background())

	// The website repository is the only persistence layer
	store, err := gitstore.NewGitHub(cfg.GitHub)
	if err != nil {
		log.Fatalf("failed to initialize content store: %v", err)
	}

	svcs := handlers.Services{
		Announcements: service.NewAnnouncementService(store),
		News:          service.NewNewsService(store),
		Notifications: service.NewNotificationService(store, cfg.GitHub.RawContentBase()),
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler(),
		BodyLimit:    32 * 1024 * 1024, // uploads are base64-committed whole
	})

	// Register global middleware
	app.Use(middleware.RequestID())
	app.Use(middleware.Logger())

	if cfg.CORSEnabled {
		// The console is usually served from another origin
		app.Use(cors.New(cors.Config{
			AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		}))
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	promMW, err := middleware.NewPrometheusMiddleware(registry)
	if err != nil {
		log.Fatalf("failed to register metrics: %v", err)
	}
	app.Use(promMW.Handler())
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))

	handlers.RegisterRoutes(app, store, svcs, middleware.StaticToken(cfg.AdminToken), cfg.PublicBaseURL)

	addr := ":" + cfg.Port

	if err := app.Listen(addr); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
