package handlers

import (
	"github.com/gofiber/fiber/v2"

	applog "botica/internal/log"
	"botica/internal/services"
)

type AuditHandler struct {
	Audit *services.AuditService
}

func (h *AuditHandler) Start(c *fiber.Ctx) error {
	id := h.Audit.Start()
	applog.Audit(c, "audit.start", map[string]any{"session_id": id})
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"session_id": id})
}

func (h *AuditHandler) Progress(c *fiber.Ctx) error {
	records, startedAt, err := h.Audit.Progress(c.Params("id"))
	if err != nil {
		return writeError(c, "audit.progress.fail", err, "Error al consultar la verificación")
	}
	return c.JSON(fiber.Map{
		"session_id":     c.Params("id"),
		"started_at":     startedAt,
		"verified_items": len(records),
		"records":        records,
	})
}

func (h *AuditHandler) Verify(c *fiber.Ctx) error {
	var rec services.VerificationRecord
	if err := c.BodyParser(&rec); err != nil {
		return respondErr(c, fiber.StatusBadRequest, "JSON inválido")
	}
	if rec.InventoryID <= 0 {
		return respondErr(c, fiber.StatusBadRequest, "El elemento del inventario es requerido")
	}
	if rec.ActualQuantity < 0 {
		return respondErr(c, fiber.StatusBadRequest, "La cantidad contada no puede ser negativa")
	}
	if err := h.Audit.Verify(c.Params("id"), rec); err != nil {
		return writeError(c, "audit.verify.fail", err, "Error al registrar la verificación")
	}
	applog.Audit(c, "audit.verify", map[string]any{
		"session_id":   c.Params("id"),
		"inventory_id": rec.InventoryID,
	})
	return c.JSON(fiber.Map{"message": "Elemento verificado correctamente"})
}

func (h *AuditHandler) Finish(c *fiber.Ctx) error {
	report, err := h.Audit.Finish(c.Params("id"))
	if err != nil {
		return writeError(c, "audit.finish.fail", err, "Error al finalizar la verificación")
	}
	applog.Audit(c, "audit.finish", map[string]any{
		"session_id":     report.SessionID,
		"verified_items": report.VerifiedItems,
	})
	return c.JSON(report)
}

func (h *AuditHandler) Cancel(c *fiber.Ctx) error {
	if !h.Audit.Cancel(c.Params("id")) {
		return respondErr(c, fiber.StatusNotFound, "Sesión de verificación no encontrada")
	}
	applog.Audit(c, "audit.cancel", map[string]any{"session_id": c.Params("id")})
	return c.JSON(fiber.Map{"message": "Verificación cancelada"})
}
