package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"botica/internal/services"
	"botica/internal/validate"
)

type ReportHandler struct {
	Reports *services.ReportService
}

func (h *ReportHandler) DailySales(c *fiber.Ctx) error {
	t, err := h.Reports.Daily()
	if err != nil {
		return writeError(c, "report.daily.fail", err, "Error al obtener las ventas diarias")
	}
	return c.JSON(t)
}

func (h *ReportHandler) MonthlySales(c *fiber.Ctx) error {
	t, err := h.Reports.Monthly()
	if err != nil {
		return writeError(c, "report.monthly.fail", err, "Error al obtener las ventas mensuales")
	}
	return c.JSON(t)
}

func (h *ReportHandler) SalesReport(c *fiber.Ctx) error {
	start := strings.TrimSpace(c.Query("start_date"))
	if start != "" {
		if _, ok := validate.Date(start); !ok {
			return respondErr(c, fiber.StatusBadRequest, "start_date debe tener formato YYYY-MM-DD")
		}
	}
	end := strings.TrimSpace(c.Query("end_date"))
	if end != "" {
		if _, ok := validate.Date(end); !ok {
			return respondErr(c, fiber.StatusBadRequest, "end_date debe tener formato YYYY-MM-DD")
		}
	}
	sells, err := h.Reports.Range(start, end)
	if err != nil {
		return writeError(c, "report.sales.fail", err, "Error al obtener el reporte de ventas")
	}
	return c.JSON(sells)
}
