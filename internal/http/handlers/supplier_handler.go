package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"botica/internal/domain"
	applog "botica/internal/log"
	"botica/internal/repos"
	"botica/internal/validate"
)

type SupplierHandler struct {
	Suppliers *repos.SupplierRepo
}

type supplierRequest struct {
	Name        string  `json:"name"`
	ContactName *string `json:"contact_name"`
	Phone       *string `json:"phone"`
	Email       *string `json:"email"`
	Address     *string `json:"address"`
}

func (req *supplierRequest) toDomain() (domain.Supplier, string) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return domain.Supplier{}, "El nombre es requerido"
	}
	if req.Email != nil && *req.Email != "" {
		email, ok := validate.Email(*req.Email)
		if !ok {
			return domain.Supplier{}, "Correo electrónico inválido"
		}
		req.Email = &email
	} else {
		req.Email = nil
	}
	return domain.Supplier{
		Name:        name,
		ContactName: req.ContactName,
		Phone:       req.Phone,
		Email:       req.Email,
		Address:     req.Address,
	}, ""
}

func (h *SupplierHandler) List(c *fiber.Ctx) error {
	suppliers, err := h.Suppliers.List()
	if err != nil {
		return writeError(c, "supplier.list.fail", err, "Error al obtener los proveedores")
	}
	if suppliers == nil {
		suppliers = []domain.Supplier{}
	}
	return c.JSON(suppliers)
}

func (h *SupplierHandler) Get(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return respondErr(c, fiber.StatusBadRequest, "Identificador inválido")
	}
	s, err := h.Suppliers.Get(id)
	if err != nil {
		return writeError(c, "supplier.get.fail", err, "Error al obtener el proveedor")
	}
	return c.JSON(s)
}

func (h *SupplierHandler) Create(c *fiber.Ctx) error {
	var req supplierRequest
	if err := c.BodyParser(&req); err != nil {
		return respondErr(c, fiber.StatusBadRequest, "JSON inválido")
	}
	s, msg := req.toDomain()
	if msg != "" {
		return respondErr(c, fiber.StatusBadRequest, msg)
	}
	if err := h.Suppliers.Create(&s); err != nil {
		return writeError(c, "supplier.create.fail", err, "Error al crear el proveedor")
	}
	applog.Audit(c, "supplier.create", map[string]any{"supplier_id": s.SupplierID})
	return c.Status(fiber.StatusCreated).JSON(s)
}

func (h *SupplierHandler) Update(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return respondErr(c, fiber.StatusBadRequest, "Identificador inválido")
	}
	var req supplierRequest
	if err := c.BodyParser(&req); err != nil {
		return respondErr(c, fiber.StatusBadRequest, "JSON inválido")
	}
	s, msg := req.toDomain()
	if msg != "" {
		return respondErr(c, fiber.StatusBadRequest, msg)
	}
	s.SupplierID = id
	found, err := h.Suppliers.Update(&s)
	if err != nil {
		return writeError(c, "supplier.update.fail", err, "Error al actualizar el proveedor")
	}
	if !found {
		return respondErr(c, fiber.StatusNotFound, "Proveedor no encontrado")
	}
	applog.Audit(c, "supplier.update", map[string]any{"supplier_id": id})
	return c.JSON(s)
}

func (h *SupplierHandler) Delete(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return respondErr(c, fiber.StatusBadRequest, "Identificador inválido")
	}
	found, err := h.Suppliers.Delete(id)
	if err != nil {
		return writeError(c, "supplier.delete.fail", err, "Error al eliminar el proveedor")
	}
	if !found {
		return respondErr(c, fiber.StatusNotFound, "Proveedor no encontrado")
	}
	applog.Audit(c, "supplier.delete", map[string]any{"supplier_id": id})
	return c.JSON(fiber.Map{"message": "Proveedor eliminado correctamente"})
}
