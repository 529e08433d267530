package main

import (
	"io"
	"log"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	html "github.com/gofiber/template/html/v2"

	"botica/internal/config"
	"botica/internal/http/handlers"
	applog "botica/internal/log"
	"botica/internal/repos"
)

func main() {
	cfg := config.Load()

	// Optional file logging
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			log.Printf("[warn] could not open log file %s: %v", cfg.LogFile, err)
		} else {
			mw := io.MultiWriter(os.Stdout, f)
			log.SetOutput(mw)
		}
	}

	db, err := repos.OpenDB(cfg.DBDSN)
	if err != nil {
		log.Fatal(err)
	}

	// Templates & app
	engine := html.New("./web/templates", ".html")
	engine.Reload(true)

	app := fiber.New(fiber.Config{
		Views: engine,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			applog.Error(c, "server.error", err, nil)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Error interno del servidor",
			})
		},
	})
	// Global body size guard
	app.Server().MaxRequestBodySize = 1 << 20 // 1 MiB

	// ---------- Middlewares ----------
	app.Use(requestid.New())
	app.Use(logger.New())
	app.Use(helmet.New())
	app.Use(limiter.New(limiter.Config{
		Max:        120,
		Expiration: time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.limit.hit", nil)
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"error": "Demasiadas solicitudes, intente más tarde"})
		},
	}))

	// ---------- App handlers ----------
	deps := handlers.NewDeps(db, cfg)

	// Dashboard
	app.Get("/", deps.DashboardHandler.Home)

	api := app.Group("/api")

	// Products
	api.Get("/products", deps.ProductHandler.List)
	api.Get("/products/:id", deps.ProductHandler.Get)
	api.Post("/products", deps.ProductHandler.Create)
	api.Put("/products/:id", deps.ProductHandler.Update)
	api.Delete("/products/:id", deps.ProductHandler.Delete)

	// Inventory (alerts route must precede the :id route)
	api.Get("/inventory/alerts", deps.InventoryHandler.AlertList)
	api.Get("/inventory", deps.InventoryHandler.List)
	api.Get("/inventory/:id", deps.InventoryHandler.Get)
	api.Post("/inventory", deps.InventoryHandler.Create)
	api.Put("/inventory/:id", deps.InventoryHandler.Update)
	api.Delete("/inventory/:id", deps.InventoryHandler.Delete)

	// Suppliers
	api.Get("/suppliers", deps.SupplierHandler.List)
	api.Get("/suppliers/:id", deps.SupplierHandler.Get)
	api.Post("/suppliers", deps.SupplierHandler.Create)
	api.Put("/suppliers/:id", deps.SupplierHandler.Update)
	api.Delete("/suppliers/:id", deps.SupplierHandler.Delete)

	// Orders
	api.Get("/orders", deps.OrderHandler.List)
	api.Get("/orders/:id", deps.OrderHandler.Get)
	api.Post("/orders", deps.OrderHandler.Create)
	api.Put("/orders/:id", deps.OrderHandler.Update)
	api.Delete("/orders/:id", deps.OrderHandler.Delete)

	// Sells
	api.Get("/sells", deps.SellHandler.List)
	api.Get("/sells/:id", deps.SellHandler.Get)
	api.Post("/sells", deps.SellHandler.Create)
	api.Put("/sells/:id", deps.SellHandler.Update)
	api.Delete("/sells/:id", deps.SellHandler.Delete)

	// Employees
	api.Get("/employees", deps.EmployeeHandler.List)
	api.Get("/employees/:id", deps.EmployeeHandler.Get)
	api.Post("/employees", deps.EmployeeHandler.Create)
	api.Put("/employees/:id", deps.EmployeeHandler.Update)
	api.Delete("/employees/:id", deps.EmployeeHandler.Delete)

	// Users
	api.Get("/users", deps.UserHandler.List)
	api.Get("/users/:id", deps.UserHandler.Get)
	api.Post("/users", deps.UserHandler.Create)
	api.Put("/users/:id", deps.UserHandler.Update)
	api.Delete("/users/:id", deps.UserHandler.Delete)

	// Reports
	api.Get("/reports/sales/daily", deps.ReportHandler.DailySales)
	api.Get("/reports/sales/monthly", deps.ReportHandler.MonthlySales)
	api.Get("/reports/sales", deps.ReportHandler.SalesReport)

	// Inventory verification sessions
	api.Post("/audit/sessions", deps.AuditHandler.Start)
	api.Get("/audit/sessions/:id", deps.AuditHandler.Progress)
	api.Post("/audit/sessions/:id/verify", deps.AuditHandler.Verify)
	api.Post("/audit/sessions/:id/finish", deps.AuditHandler.Finish)
	api.Delete("/audit/sessions/:id", deps.AuditHandler.Cancel)

	// Health & 404
	app.Get("/healthz", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"ok": true}) })
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(404).JSON(fiber.Map{"error": "Recurso no encontrado"})
	})

	log.Fatal(app.Listen(":" + cfg.Port))
}
