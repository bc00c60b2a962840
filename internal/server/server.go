// Package server assembles the Fiber app: middleware, error rendering and routes.
package server

import (
	"strings"

	"pollos-backend/internal/admin"
	"pollos-backend/internal/audit"
	"pollos-backend/internal/board"
	"pollos-backend/internal/export"
	"pollos-backend/internal/logging"
	"pollos-backend/internal/metrics"
	"pollos-backend/internal/storage"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Deps struct {
	Board   *board.Service
	Audit   *audit.Service
	Store   storage.Store
	Metrics *metrics.Metrics
	Logger  *zap.Logger
	// DB is nil for the memory driver.
	DB          *gorm.DB
	CORSOrigins string
}

func errorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		if e, ok := err.(*fiber.Error); ok {
			return c.Status(e.Code).JSON(fiber.Map{
				"error": e.Message,
			})
		}
		logger.Error("unexpected error",
			zap.Error(err),
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
		)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Error inesperado del servidor",
		})
	}
}

func New(d Deps) *fiber.App {
	logger := d.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	app := fiber.New(fiber.Config{
		AppName:      "pollos",
		ErrorHandler: errorHandler(logger),
	})

	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(logging.RequestLogger(logger))

	origins := strings.Split(d.CORSOrigins, ",")
	for i := range origins {
		origins[i] = strings.TrimSpace(origins[i])
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(origins, ","),
		AllowHeaders: "Origin, Content-Type, Accept",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
	}))

	app.Get("/health", healthHandler(d.DB))
	if d.Metrics != nil {
		app.Get("/metrics", d.Metrics.Handler())
	}

	api := app.Group("/api")

	api.Get("/today", board.TodayHandler(d.Board))

	days := api.Group("/days/:date")
	days.Get("/", board.GetLedgerHandler(d.Board))
	days.Post("/orders", board.CreateOrderHandler(d.Board))
	days.Put("/orders/:index", board.UpdateOrderHandler(d.Board))
	days.Delete("/orders/:index", board.DeleteOrderHandler(d.Board))
	days.Post("/orders/:index/delivered", board.ToggleDeliveredHandler(d.Board))
	days.Post("/oven", board.OvenHandler(d.Board))
	days.Put("/oven", board.OvenHandler(d.Board))
	days.Get("/export", export.DownloadHandler(d.Board))

	api.Get("/clients", board.ClientSuggestionsHandler(d.Board))
	api.Get("/schedule", board.GetScheduleHandler(d.Board))
	api.Put("/schedule", board.UpdateScheduleHandler(d.Board))

	if d.Audit != nil {
		api.Get("/audit-logs", audit.ListAuditLogsHandler(d.Audit))
	}

	// Store viewer
	store := api.Group("/store")
	store.Get("/keys", admin.ListKeysHandler(d.Store))
	store.Get("/keys/:key", admin.ShowKeyHandler(d.Store))
	store.Delete("/keys/:key", admin.DeleteKeyHandler(d.Store, logger))

	return app
}

func healthHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if db != nil {
			sqlDB, err := db.DB()
			if err == nil {
				err = sqlDB.PingContext(c.Context())
			}
			if err != nil {
				return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
					"status": "error",
					"error":  "database connection failed",
				})
			}
		}
		return c.JSON(fiber.Map{"status": "ok"})
	}
}
