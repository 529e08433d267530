package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"botica/internal/domain"
	applog "botica/internal/log"
	"botica/internal/repos"
	"botica/internal/validate"
)

type UserHandler struct {
	Users *repos.UserRepo
}

type userRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

func (req *userRequest) toDomain() (domain.User, string) {
	first := strings.TrimSpace(req.FirstName)
	last := strings.TrimSpace(req.LastName)
	if first == "" || last == "" {
		return domain.User{}, "Nombre y apellido son requeridos"
	}
	email, ok := validate.Email(req.Email)
	if !ok {
		return domain.User{}, "Correo electrónico inválido"
	}
	return domain.User{FirstName: first, LastName: last, Email: email}, ""
}

func (h *UserHandler) List(c *fiber.Ctx) error {
	users, err := h.Users.List()
	if err != nil {
		return writeError(c, "user.list.fail", err, "Error interno del servidor")
	}
	if users == nil {
		users = []domain.User{}
	}
	return c.JSON(users)
}

func (h *UserHandler) Get(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return respondErr(c, fiber.StatusBadRequest, "Identificador inválido")
	}
	u, err := h.Users.Get(id)
	if err != nil {
		return writeError(c, "user.get.fail", err, "Error interno del servidor")
	}
	return c.JSON(u)
}

func (h *UserHandler) Create(c *fiber.Ctx) error {
	var req userRequest
	if err := c.BodyParser(&req); err != nil {
		return respondErr(c, fiber.StatusBadRequest, "JSON inválido")
	}
	u, msg := req.toDomain()
	if msg != "" {
		return respondErr(c, fiber.StatusBadRequest, msg)
	}
	if err := h.Users.Create(&u, req.Password); err != nil {
		return writeError(c, "user.create.fail", err, "Error al crear el usuario")
	}
	applog.Audit(c, "user.create", map[string]any{"user_id": u.UserID})
	return c.Status(fiber.StatusCreated).JSON(u)
}

func (h *UserHandler) Update(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return respondErr(c, fiber.StatusBadRequest, "Identificador inválido")
	}
	var req userRequest
	if err := c.BodyParser(&req); err != nil {
		return respondErr(c, fiber.StatusBadRequest, "JSON inválido")
	}
	u, msg := req.toDomain()
	if msg != "" {
		return respondErr(c, fiber.StatusBadRequest, msg)
	}
	u.UserID = id
	found, err := h.Users.Update(&u, req.Password)
	if err != nil {
		return writeError(c, "user.update.fail", err, "Error al actualizar el usuario")
	}
	if !found {
		return respondErr(c, fiber.StatusNotFound, "Usuario no encontrado")
	}
	applog.Audit(c, "user.update", map[string]any{"user_id": id})
	return c.JSON(u)
}

func (h *UserHandler) Delete(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return respondErr(c, fiber.StatusBadRequest, "Identificador inválido")
	}
	found, err := h.Users.Delete(id)
	if err != nil {
		return writeError(c, "user.delete.fail", err, "Error al eliminar el usuario")
	}
	if !found {
		return respondErr(c, fiber.StatusNotFound, "Usuario no encontrado")
	}
	applog.Audit(c, "user.delete", map[string]any{"user_id": id})
	return c.JSON(fiber.Map{"message": "Usuario eliminado correctamente"})
}
