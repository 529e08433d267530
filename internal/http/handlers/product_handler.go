package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"botica/internal/domain"
	applog "botica/internal/log"
	"botica/internal/repos"
)

type ProductHandler struct {
	Products *repos.ProductRepo
}

type productRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
	Category    *string `json:"category"`
	Type        *string `json:"type"`
	DosageForm  *string `json:"dosage_form"`
	Unit        *string `json:"unit"`
	Barcode     *string `json:"barcode"`
	Status      *bool   `json:"status"`
}

func (req *productRequest) toDomain() (domain.Product, bool) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return domain.Product{}, false
	}
	status := true
	if req.Status != nil {
		status = *req.Status
	}
	return domain.Product{
		Name:        name,
		Description: req.Description,
		Category:    req.Category,
		Type:        req.Type,
		DosageForm:  req.DosageForm,
		Unit:        req.Unit,
		Barcode:     req.Barcode,
		Status:      status,
	}, true
}

func (h *ProductHandler) List(c *fiber.Ctx) error {
	products, err := h.Products.List()
	if err != nil {
		return writeError(c, "product.list.fail", err, "Error al obtener los productos")
	}
	if products == nil {
		products = []domain.Product{}
	}
	return c.JSON(products)
}

func (h *ProductHandler) Get(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return respondErr(c, fiber.StatusBadRequest, "Identificador inválido")
	}
	p, err := h.Products.Get(id)
	if err != nil {
		return writeError(c, "product.get.fail", err, "Error al obtener el producto")
	}
	return c.JSON(p)
}

func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var req productRequest
	if err := c.BodyParser(&req); err != nil {
		return respondErr(c, fiber.StatusBadRequest, "JSON inválido")
	}
	p, ok := req.toDomain()
	if !ok {
		return respondErr(c, fiber.StatusBadRequest, "El nombre es requerido")
	}
	if err := h.Products.Create(&p); err != nil {
		return writeError(c, "product.create.fail", err, "Error al crear el producto")
	}
	applog.Audit(c, "product.create", map[string]any{"product_id": p.ProductID})
	return c.Status(fiber.StatusCreated).JSON(p)
}

func (h *ProductHandler) Update(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return respondErr(c, fiber.StatusBadRequest, "Identificador inválido")
	}
	var req productRequest
	if err := c.BodyParser(&req); err != nil {
		return respondErr(c, fiber.StatusBadRequest, "JSON inválido")
	}
	p, valid := req.toDomain()
	if !valid {
		return respondErr(c, fiber.StatusBadRequest, "El nombre es requerido")
	}
	p.ProductID = id
	found, err := h.Products.Update(&p)
	if err != nil {
		return writeError(c, "product.update.fail", err, "Error al actualizar el producto")
	}
	if !found {
		return respondErr(c, fiber.StatusNotFound, "Producto no encontrado")
	}
	applog.Audit(c, "product.update", map[string]any{"product_id": id})
	return c.JSON(p)
}

func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return respondErr(c, fiber.StatusBadRequest, "Identificador inválido")
	}
	found, err := h.Products.Delete(id)
	if err != nil {
		return writeError(c, "product.delete.fail", err, "Error al eliminar el producto")
	}
	if !found {
		return respondErr(c, fiber.StatusNotFound, "Producto no encontrado")
	}
	applog.Audit(c, "product.delete", map[string]any{"product_id": id})
	return c.JSON(fiber.Map{"message": "Producto eliminado correctamente"})
}
