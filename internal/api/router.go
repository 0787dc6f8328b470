package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"

	"github.com/MahmudHudayiTaner/kafka-proje/internal/api/handlers"
	"github.com/MahmudHudayiTaner/kafka-proje/pkg/auth"
	"github.com/MahmudHudayiTaner/kafka-proje/pkg/middleware"
)

func SetupRouter(
	applicationHandler *handlers.ApplicationHandler,
	authHandler *handlers.AuthHandler,
	dekontHandler *handlers.DekontHandler,
	paymentHandler *handlers.PaymentHandler,
	jwtManager *auth.JWTManager,
	appLogger *zap.Logger,
) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})

	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization",
	}))
	app.Use(logger.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	// Public intake endpoint.
	app.Post("/basvuru", applicationHandler.Submit)

	// Admin console.
	admin := app.Group("/admin")
	admin.Post("/login", authHandler.Login)

	protected := admin.Group("", middleware.AuthMiddleware(jwtManager, appLogger))

	applications := protected.Group("/applications")
	applications.Get("", applicationHandler.List)
	applications.Get("/:id", applicationHandler.Get)
	applications.Put("/:id/status", applicationHandler.UpdateStatus)
	applications.Delete("/:id", applicationHandler.Delete)

	dekonts := protected.Group("/dekonts")
	dekonts.Get("", dekontHandler.List)
	dekonts.Get("/:id", dekontHandler.Get)

	payments := protected.Group("/payments")
	payments.Post("", paymentHandler.Create)
	payments.Get("", paymentHandler.List)
	payments.Post("/:id/approve", paymentHandler.Approve)

	return app
}
