package handlers

import (
	"github.com/gofiber/fiber/v2"

	"botica/internal/domain"
	applog "botica/internal/log"
	"botica/internal/repos"
	"botica/internal/services"
)

type SellHandler struct {
	Sells *repos.SellRepo
	Svc   *services.SellService
}

func (h *SellHandler) List(c *fiber.Ctx) error {
	sells, err := h.Sells.List()
	if err != nil {
		return writeError(c, "sell.list.fail", err, "Error al obtener las ventas")
	}
	if sells == nil {
		sells = []domain.Sell{}
	}
	return c.JSON(sells)
}

func (h *SellHandler) Get(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return respondErr(c, fiber.StatusBadRequest, "Identificador inválido")
	}
	s, err := h.Sells.Get(id)
	if err != nil {
		return writeError(c, "sell.get.fail", err, "Error al obtener la venta")
	}
	return c.JSON(s)
}

func (h *SellHandler) Create(c *fiber.Ctx) error {
	var in services.SellInput
	if err := c.BodyParser(&in); err != nil {
		return respondErr(c, fiber.StatusBadRequest, "JSON inválido")
	}
	s, err := h.Svc.Create(in)
	if err != nil {
		return writeError(c, "sell.create.fail", err, "Error al crear la venta")
	}
	applog.Audit(c, "sell.create", map[string]any{
		"sell_id": s.SellID,
		"items":   len(s.Items),
		"total":   s.TotalAmount,
	})
	return c.Status(fiber.StatusCreated).JSON(s)
}

func (h *SellHandler) Update(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return respondErr(c, fiber.StatusBadRequest, "Identificador inválido")
	}
	var in services.SellInput
	if err := c.BodyParser(&in); err != nil {
		return respondErr(c, fiber.StatusBadRequest, "JSON inválido")
	}
	s, found, err := h.Svc.Update(id, in)
	if err != nil {
		return writeError(c, "sell.update.fail", err, "Error al actualizar la venta")
	}
	if !found {
		return respondErr(c, fiber.StatusNotFound, "Venta no encontrada")
	}
	applog.Audit(c, "sell.update", map[string]any{"sell_id": id, "total": s.TotalAmount})
	return c.JSON(s)
}

func (h *SellHandler) Delete(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return respondErr(c, fiber.StatusBadRequest, "Identificador inválido")
	}
	found, err := h.Sells.Delete(id)
	if err != nil {
		return writeError(c, "sell.delete.fail", err, "Error al eliminar la venta")
	}
	if !found {
		return respondErr(c, fiber.StatusNotFound, "Venta no encontrada")
	}
	applog.Audit(c, "sell.delete", map[string]any{"sell_id": id})
	return c.JSON(fiber.Map{"message": "Venta eliminada correctamente"})
}
