package handlers

import (
	"github.com/gofiber/fiber/v2"

	"botica/internal/domain"
	applog "botica/internal/log"
	"botica/internal/repos"
	"botica/internal/services"
	"botica/internal/validate"
)

type InventoryHandler struct {
	Inv    *repos.InventoryRepo
	Alerts *services.InventoryService
}

type inventoryRequest struct {
	ProductID         int64   `json:"product_id"`
	BatchNumber       *string `json:"batch_number"`
	ExpiryDate        *string `json:"expiry_date"`
	QuantityAvailable int64   `json:"quantity_available"`
	Location          *string `json:"location"`
	PurchasePrice     float64 `json:"purchase_price"`
	SalePrice         float64 `json:"sale_price"`
}

func (req *inventoryRequest) toDomain() (domain.Inventory, string) {
	if req.ProductID <= 0 {
		return domain.Inventory{}, "El producto es requerido"
	}
	if req.QuantityAvailable < 0 {
		return domain.Inventory{}, "La cantidad no puede ser negativa"
	}
	if !validate.Price(req.PurchasePrice) || !validate.Price(req.SalePrice) {
		return domain.Inventory{}, "Los precios no pueden ser negativos"
	}
	if req.ExpiryDate != nil && *req.ExpiryDate != "" {
		d, ok := validate.Date(*req.ExpiryDate)
		if !ok {
			return domain.Inventory{}, "La fecha de vencimiento debe ser YYYY-MM-DD"
		}
		req.ExpiryDate = &d
	}
	return domain.Inventory{
		ProductID:         req.ProductID,
		BatchNumber:       req.BatchNumber,
		ExpiryDate:        req.ExpiryDate,
		QuantityAvailable: req.QuantityAvailable,
		Location:          req.Location,
		PurchasePrice:     req.PurchasePrice,
		SalePrice:         req.SalePrice,
	}, ""
}

func (h *InventoryHandler) List(c *fiber.Ctx) error {
	rows, err := h.Inv.List()
	if err != nil {
		return writeError(c, "inventory.list.fail", err, "Error al obtener el inventario")
	}
	if rows == nil {
		rows = []domain.Inventory{}
	}
	return c.JSON(rows)
}

func (h *InventoryHandler) Get(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return respondErr(c, fiber.StatusBadRequest, "Identificador inválido")
	}
	inv, err := h.Inv.Get(id)
	if err != nil {
		return writeError(c, "inventory.get.fail", err, "Error al obtener el elemento del inventario")
	}
	return c.JSON(inv)
}

func (h *InventoryHandler) Create(c *fiber.Ctx) error {
	var req inventoryRequest
	if err := c.BodyParser(&req); err != nil {
		return respondErr(c, fiber.StatusBadRequest, "JSON inválido")
	}
	inv, msg := req.toDomain()
	if msg != "" {
		return respondErr(c, fiber.StatusBadRequest, msg)
	}
	if err := h.Inv.Create(&inv); err != nil {
		return writeError(c, "inventory.create.fail", err, "Error al crear el elemento del inventario")
	}
	applog.Audit(c, "inventory.create", map[string]any{"inventory_id": inv.InventoryID, "product_id": inv.ProductID})
	return c.Status(fiber.StatusCreated).JSON(inv)
}

func (h *InventoryHandler) Update(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return respondErr(c, fiber.StatusBadRequest, "Identificador inválido")
	}
	var req inventoryRequest
	if err := c.BodyParser(&req); err != nil {
		return respondErr(c, fiber.StatusBadRequest, "JSON inválido")
	}
	inv, msg := req.toDomain()
	if msg != "" {
		return respondErr(c, fiber.StatusBadRequest, msg)
	}
	inv.InventoryID = id
	found, err := h.Inv.Update(&inv)
	if err != nil {
		return writeError(c, "inventory.update.fail", err, "Error al actualizar el elemento del inventario")
	}
	if !found {
		return respondErr(c, fiber.StatusNotFound, "Elemento del inventario no encontrado")
	}
	applog.Audit(c, "inventory.update", map[string]any{"inventory_id": id})
	return c.JSON(inv)
}

func (h *InventoryHandler) Delete(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return respondErr(c, fiber.StatusBadRequest, "Identificador inválido")
	}
	found, err := h.Inv.Delete(id)
	if err != nil {
		return writeError(c, "inventory.delete.fail", err, "Error al eliminar el elemento del inventario")
	}
	if !found {
		return respondErr(c, fiber.StatusNotFound, "Elemento del inventario no encontrado")
	}
	applog.Audit(c, "inventory.delete", map[string]any{"inventory_id": id})
	return c.JSON(fiber.Map{"message": "Elemento del inventario eliminado correctamente"})
}

// AlertList classifies every batch (vencido / por_vencer / bajo_stock / ok).
func (h *InventoryHandler) AlertList(c *fiber.Ctx) error {
	alerts, err := h.Alerts.Alerts()
	if err != nil {
		return writeError(c, "inventory.alerts.fail", err, "Error al obtener las alertas de inventario")
	}
	return c.JSON(alerts)
}
