package api

import (
	"github.com/gofiber/contrib/otelfiber/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewApp builds the fiber app with the shared middleware chain and the
// unauthenticated operational endpoints.
func NewApp(serviceName string, devMode bool) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      serviceName,
		ErrorHandler: ErrorHandler(devMode),
	})

	app.Use(recover.New())
	app.Use(otelfiber.Middleware())
	app.Use(PrometheusMiddleware())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": serviceName})
	})

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	return app
}

func SetupRoutes(app *fiber.App, authHandler *AuthHandler, userHandler *UserHandler, verifier TokenVerifier) {
	authRoutes := app.Group("/auth")
	authRoutes.Post("/register", authHandler.Register)
	authRoutes.Post("/login", authHandler.Login)
	authRoutes.Get("/profile", AuthMiddleware(verifier), authHandler.GetUserProfile)

	userRoutes := app.Group("/users")
	userRoutes.Use(AuthMiddleware(verifier))
	userRoutes.Get("/profile", userHandler.GetUserProfile)
	userRoutes.Put("/profile", userHandler.UpdateUserProfile)
	userRoutes.Get("/preferences", userHandler.GetPreferences)
	userRoutes.Post("/preferences", userHandler.SavePreferences)

	if userHandler.AvatarUploadsEnabled() {
		userRoutes.Post("/profile/avatar/upload-url", userHandler.GetAvatarUploadURL)
	}
}
