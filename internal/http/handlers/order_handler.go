package handlers

import (
	"github.com/gofiber/fiber/v2"

	"botica/internal/domain"
	applog "botica/internal/log"
	"botica/internal/repos"
	"botica/internal/services"
)

type OrderHandler struct {
	Orders *repos.OrderRepo
	Svc    *services.OrderService
}

func (h *OrderHandler) List(c *fiber.Ctx) error {
	orders, err := h.Orders.List()
	if err != nil {
		return writeError(c, "order.list.fail", err, "Error al obtener órdenes")
	}
	if orders == nil {
		orders = []domain.Order{}
	}
	return c.JSON(orders)
}

func (h *OrderHandler) Get(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return respondErr(c, fiber.StatusBadRequest, "Identificador inválido")
	}
	o, err := h.Orders.Get(id)
	if err != nil {
		return writeError(c, "order.get.fail", err, "Error al obtener orden")
	}
	return c.JSON(o)
}

func (h *OrderHandler) Create(c *fiber.Ctx) error {
	var in services.OrderInput
	if err := c.BodyParser(&in); err != nil {
		return respondErr(c, fiber.StatusBadRequest, "JSON inválido")
	}
	o, err := h.Svc.Create(in)
	if err != nil {
		return writeError(c, "order.create.fail", err, "Error al crear orden")
	}
	applog.Audit(c, "order.create", map[string]any{
		"order_id": o.OrderID,
		"items":    len(o.Items),
		"total":    o.TotalAmount,
	})
	return c.Status(fiber.StatusCreated).JSON(o)
}

func (h *OrderHandler) Update(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return respondErr(c, fiber.StatusBadRequest, "Identificador inválido")
	}
	var in services.OrderInput
	if err := c.BodyParser(&in); err != nil {
		return respondErr(c, fiber.StatusBadRequest, "JSON inválido")
	}
	o, found, err := h.Svc.Update(id, in)
	if err != nil {
		return writeError(c, "order.update.fail", err, "Error al actualizar orden")
	}
	if !found {
		return respondErr(c, fiber.StatusNotFound, "Orden no encontrada")
	}
	applog.Audit(c, "order.update", map[string]any{"order_id": id, "total": o.TotalAmount})
	return c.JSON(o)
}

func (h *OrderHandler) Delete(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return respondErr(c, fiber.StatusBadRequest, "Identificador inválido")
	}
	found, err := h.Orders.Delete(id)
	if err != nil {
		return writeError(c, "order.delete.fail", err, "Error al eliminar orden")
	}
	if !found {
		return respondErr(c, fiber.StatusNotFound, "Orden no encontrada")
	}
	applog.Audit(c, "order.delete", map[string]any{"order_id": id})
	return c.JSON(fiber.Map{"message": "Orden eliminada correctamente"})
}
