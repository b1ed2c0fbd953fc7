package api

import (
	"formadoc/docs"
	"formadoc/internal/api/handlers"
	"formadoc/pkg/metrics"

	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"go.uber.org/zap"
)

func SetupRouter(
	docHandler *handlers.DocumentHandler,
	auditHandler *handlers.AuditHandler,
	m *metrics.Metrics,
	appLogger *zap.Logger,
) *fiber.App {
	app := fiber.New(fiber.Config{
		BodyLimit: 25 * 1024 * 1024, // base64 scans run large
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

	// Middleware
	app.Use(m.Middleware("formadoc"))
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept",
	}))
	app.Use(logger.New())

	// Swagger - importing docs registers the generated definition via init()
	_ = docs.SwaggerInfo
	app.Get("/swagger/*", swagger.HandlerDefault)

	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "ok"})
	})
	app.Get("/metrics", adaptor.HTTPHandler(m.Handler()))

	api := app.Group("/api/v1")

	documents := api.Group("/documents")
	documents.Post("/check", docHandler.CheckDocument)
	documents.Post("/verify-identity", docHandler.VerifyIdentity)
	documents.Post("/extract-contract-fields", docHandler.ExtractContractFields)
	documents.Post("/extract-text", docHandler.ExtractText)
	documents.Post("/analyze-cv", docHandler.AnalyzeCV)

	api.Get("/checks", auditHandler.ListChecks)

	return app
}
