package handlers

import (
	"database/sql"
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	applog "botica/internal/log"
	"botica/internal/repos"
	"botica/internal/services"
)

func respondErr(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(fiber.Map{"error": msg})
}

// parseID reads a positive numeric :id path parameter.
func parseID(c *fiber.Ctx) (int64, bool) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// writeError maps service/repo failures onto the API taxonomy:
// validation and business-rule rejections are 400, unknown ids 404,
// anything else a genericized 500 (raw driver errors never reach the
// client).
func writeError(c *fiber.Ctx, action string, err error, generic string) error {
	switch {
	case errors.Is(err, repos.ErrDuplicateEmail):
		applog.Security(c, action, map[string]any{"reason": "duplicate_email"})
		return respondErr(c, fiber.StatusBadRequest, "El correo electrónico ya está registrado")
	case errors.Is(err, repos.ErrInsufficientStock):
		applog.Security(c, action, map[string]any{"reason": "insufficient_stock"})
		return respondErr(c, fiber.StatusBadRequest, "Stock insuficiente para completar la venta")
	case errors.Is(err, sql.ErrNoRows):
		return respondErr(c, fiber.StatusNotFound, "Recurso no encontrado")
	case errors.Is(err, services.ErrMissingSupplier),
		errors.Is(err, services.ErrNoItems),
		errors.Is(err, services.ErrBadItem),
		errors.Is(err, services.ErrBadStatus),
		errors.Is(err, services.ErrBadPayment):
		return respondErr(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrSessionNotFound):
		return respondErr(c, fiber.StatusNotFound, err.Error())
	}
	applog.Error(c, action, err, nil)
	return respondErr(c, fiber.StatusInternalServerError, generic)
}
