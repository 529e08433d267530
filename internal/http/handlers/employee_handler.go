package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"botica/internal/domain"
	applog "botica/internal/log"
	"botica/internal/repos"
	"botica/internal/validate"
)

type EmployeeHandler struct {
	Employees *repos.EmployeeRepo
}

type employeeRequest struct {
	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name"`
	Role      *string `json:"role"`
	Email     *string `json:"email"`
	Phone     *string `json:"phone"`
}

func (req *employeeRequest) toDomain() (domain.Employee, string) {
	first := strings.TrimSpace(req.FirstName)
	last := strings.TrimSpace(req.LastName)
	if first == "" || last == "" {
		return domain.Employee{}, "Nombre y apellido son requeridos"
	}
	if req.Email != nil && *req.Email != "" {
		email, ok := validate.Email(*req.Email)
		if !ok {
			return domain.Employee{}, "Correo electrónico inválido"
		}
		req.Email = &email
	} else {
		req.Email = nil
	}
	return domain.Employee{
		FirstName: first,
		LastName:  last,
		Role:      req.Role,
		Email:     req.Email,
		Phone:     req.Phone,
	}, ""
}

func (h *EmployeeHandler) List(c *fiber.Ctx) error {
	employees, err := h.Employees.List()
	if err != nil {
		return writeError(c, "employee.list.fail", err, "Error al obtener los empleados")
	}
	if employees == nil {
		employees = []domain.Employee{}
	}
	return c.JSON(employees)
}

func (h *EmployeeHandler) Get(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return respondErr(c, fiber.StatusBadRequest, "Identificador inválido")
	}
	e, err := h.Employees.Get(id)
	if err != nil {
		return writeError(c, "employee.get.fail", err, "Error al obtener el empleado")
	}
	return c.JSON(e)
}

func (h *EmployeeHandler) Create(c *fiber.Ctx) error {
	var req employeeRequest
	if err := c.BodyParser(&req); err != nil {
		return respondErr(c, fiber.StatusBadRequest, "JSON inválido")
	}
	e, msg := req.toDomain()
	if msg != "" {
		return respondErr(c, fiber.StatusBadRequest, msg)
	}
	if err := h.Employees.Create(&e); err != nil {
		return writeError(c, "employee.create.fail", err, "Error al crear el empleado")
	}
	applog.Audit(c, "employee.create", map[string]any{"employee_id": e.EmployeeID})
	return c.Status(fiber.StatusCreated).JSON(e)
}

func (h *EmployeeHandler) Update(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return respondErr(c, fiber.StatusBadRequest, "Identificador inválido")
	}
	var req employeeRequest
	if err := c.BodyParser(&req); err != nil {
		return respondErr(c, fiber.StatusBadRequest, "JSON inválido")
	}
	e, msg := req.toDomain()
	if msg != "" {
		return respondErr(c, fiber.StatusBadRequest, msg)
	}
	e.EmployeeID = id
	found, err := h.Employees.Update(&e)
	if err != nil {
		return writeError(c, "employee.update.fail", err, "Error al actualizar el empleado")
	}
	if !found {
		return respondErr(c, fiber.StatusNotFound, "Empleado no encontrado")
	}
	applog.Audit(c, "employee.update", map[string]any{"employee_id": id})
	return c.JSON(e)
}

func (h *EmployeeHandler) Delete(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return respondErr(c, fiber.StatusBadRequest, "Identificador inválido")
	}
	found, err := h.Employees.Delete(id)
	if err != nil {
		return writeError(c, "employee.delete.fail", err, "Error al eliminar el empleado")
	}
	if !found {
		return respondErr(c, fiber.StatusNotFound, "Empleado no encontrado")
	}
	applog.Audit(c, "employee.delete", map[string]any{"employee_id": id})
	return c.JSON(fiber.Map{"message": "Empleado eliminado correctamente"})
}
