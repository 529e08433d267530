package handlers

import (
	"github.com/gofiber/fiber/v2"

	applog "botica/internal/log"
	"botica/internal/repos"
	"botica/internal/services"
)

type DashboardHandler struct {
	Products *repos.ProductRepo
	Inv      *services.InventoryService
	Reports  *services.ReportService
}

// GET /
func (h *DashboardHandler) Home(c *fiber.Ctx) error {
	summary, err := h.Inv.Summary()
	if err != nil {
		applog.Error(c, "dashboard.summary.fail", err, nil)
		return c.Status(500).Render("notfound", fiber.Map{"Message": "No se pudo cargar el panel"})
	}
	daily, err := h.Reports.Daily()
	if err != nil {
		applog.Error(c, "dashboard.daily.fail", err, nil)
		return c.Status(500).Render("notfound", fiber.Map{"Message": "No se pudo cargar el panel"})
	}
	products, _ := h.Products.Count()
	recent, _ := h.Reports.Recent(5)
	return render(c, "dashboard", fiber.Map{
		"Products":    products,
		"Summary":     summary,
		"Daily":       daily,
		"RecentSells": recent,
	})
}
