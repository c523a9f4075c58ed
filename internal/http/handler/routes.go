package handler

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"contentapi/internal/gitstore"
	"contentapi/internal/http/middleware"
	"contentapi/internal/service"
)

// Services groups the per-content-type orchestrators the routes dispatch to.
type Services struct {
	Announcements service.AnnouncementService
	News          service.NewsService
	Notifications service.NotificationService
}

// RegisterRoutes attaches the admin API to the provided Fiber app. Reads
// are open; mutations sit behind the admin-token middleware.
func RegisterRoutes(app *fiber.App, store gitstore.Store, svcs Services, creds middleware.Credentials, publicBase string) {
	app.Get("/openapi.yaml", func(c *fiber.Ctx) error {
		c.Type("yaml")
		return c.SendFile("openapi.yaml")
	})
	app.Get("/docs", func(c *fiber.Ctx) error {
		html := `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8" />
  <meta name="viewport" content="width=device-width, initial-scale=1" />
  <title>Content API Docs</title>
  <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5/swagger-ui.css" />
</head>
<body>
  <div id="swagger-ui"></div>
  <script src="https://unpkg.com/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
  <script>
    window.ui = SwaggerUIBundle({
      url: '/openapi.yaml',
      dom_id: '#swagger-ui',
      presets: [SwaggerUIBundle.presets.apis],
      layout: 'BaseLayout'
    });
  </script>
</body>
</html>`
		return c.Type("html").SendString(html)
	})

	app.Get("/health", HealthCheck(store))
	app.Get("/healthz", LivenessProbe())

	app.Post("/login", Login(creds))

	app.Get("/announcement", GetAnnouncement(svcs.Announcements, publicBase))
	app.Get("/news", ListNews(svcs.News, publicBase))
	app.Get("/notifications", ListNotifications(svcs.Notifications, publicBase))

	admin := app.Group("", middleware.RequireAdmin(creds))
	admin.Put("/announcement", PublishAnnouncement(svcs.Announcements, publicBase))
	admin.Post("/news", CreateNews(svcs.News, publicBase))
	admin.Delete("/news/:id", DeleteNews(svcs.News))
	admin.Post("/notifications", CreateNotification(svcs.Notifications, publicBase))
	admin.Delete("/notifications/:id", DeleteNotification(svcs.Notifications))
}

// HealthCheck verifies the remote repository is reachable with the
// configured credentials.
func HealthCheck(store gitstore.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 5*time.Second)
		defer cancel()
		if err := store.Ping(ctx); err != nil {
			return writeError(c, fiber.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "remote repository unavailable")
		}
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "healthy"})
	}
}

// LivenessProbe is a plain process-up check.
func LivenessProbe() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	}
}

// Login is the boolean credential check the console performs before
// showing the editing surface. There is no session state to create; the
// console keeps sending the token on every mutating call.
func Login(creds middleware.Credentials) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body struct {
			Token string `json:"token"`
		}
		if err := c.BodyParser(&body); err != nil {
			return writeError(c, fiber.StatusBadRequest, "BAD_REQUEST", "token is required")
		}
		if !creds.Check(body.Token) {
			return writeError(c, fiber.StatusUnauthorized, "UNAUTHORIZED", "invalid credentials")
		}
		return c.JSON(fiber.Map{"ok": true})
	}
}
