package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/issaqr/inventory-qr-api/internal/application/dto"
	"github.com/issaqr/inventory-qr-api/internal/application/usecase"
	"github.com/issaqr/inventory-qr-api/pkg/validate"
)

// UserAdminHandler administración de usuarios (solo super admin).
type UserAdminHandler struct {
	uc *usecase.UserAdminUseCase
}

// NewUserAdminHandler construye el handler.
func NewUserAdminHandler(uc *usecase.UserAdminUseCase) *UserAdminHandler {
	return &UserAdminHandler{uc: uc}
}

// List godoc
// @Summary      Listar usuarios con banderas de rol; search ignora acentos
// @Tags         admin-users
// @Security     Bearer
// @Produce      json
// @Param        search  query  string  false  "Buscar por nombre o email"
// @Param        limit   query  int     false  "Límite"   default(20)
// @Param        offset  query  int     false  "Offset"   default(0)
// @Success      200     {object}  dto.AdminUserListResponse
// @Router       /api/admin-users [get]
func (h *UserAdminHandler) List(c *fiber.Ctx) error {
	var in dto.UserListRequest
	if err := c.QueryParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "query inválida"})
	}
	if err := validate.Struct(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: validate.Message(err)})
	}
	out, err := h.uc.List(in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener usuario por ID con banderas de rol
// @Tags         admin-users
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del usuario"
// @Success      200  {object}  dto.UserWithRolesResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/admin-users/{id} [get]
func (h *UserAdminHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "usuario no encontrado"})
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar nombre/email del usuario (email único)
// @Tags         admin-users
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del usuario"
// @Param        body  body  dto.AdminUpdateUserRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.UserWithRolesResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/admin-users/{id} [put]
func (h *UserAdminHandler) Update(c *fiber.Ctx) error {
	var in dto.AdminUpdateUserRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := validate.Struct(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: validate.Message(err)})
	}
	out, err := h.uc.Update(c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "usuario no encontrado"})
	}
	return c.JSON(out)
}

// SetStatus godoc
// @Summary      Cambiar estado del usuario (pending/active/suspended)
// @Tags         admin-users
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del usuario"
// @Param        body  body  dto.SetUserStatusRequest  true  "Nuevo estado"
// @Success      200   {object}  dto.UserWithRolesResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/admin-users/{id}/status [put]
func (h *UserAdminHandler) SetStatus(c *fiber.Ctx) error {
	var in dto.SetUserStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := validate.Struct(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: validate.Message(err)})
	}
	out, err := h.uc.SetStatus(c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "usuario no encontrado"})
	}
	return c.JSON(out)
}

// Activate godoc
// @Summary      Activar usuario (limpia el soft delete si lo tenía)
// @Tags         admin-users
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del usuario"
// @Success      200  {object}  dto.UserWithRolesResponse
// @Router       /api/admin-users/{id}/activate [post]
func (h *UserAdminHandler) Activate(c *fiber.Ctx) error {
	out, err := h.uc.Activate(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "usuario no encontrado"})
	}
	return c.JSON(out)
}

// Suspend godoc
// @Summary      Suspender usuario
// @Tags         admin-users
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del usuario"
// @Success      200  {object}  dto.UserWithRolesResponse
// @Router       /api/admin-users/{id}/suspend [post]
func (h *UserAdminHandler) Suspend(c *fiber.Ctx) error {
	out, err := h.uc.Suspend(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "usuario no encontrado"})
	}
	return c.JSON(out)
}

// Block godoc
// @Summary      Bloquear usuario (soft delete + suspendido)
// @Tags         admin-users
// @Security     Bearer
// @Param        id  path  string  true  "ID del usuario"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/admin-users/{id}/block [post]
func (h *UserAdminHandler) Block(c *fiber.Ctx) error {
	if err := h.uc.Block(c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// AssignRole godoc
// @Summary      Asignar rol en un colegio a un usuario existente
// @Tags         admin-users
// @Security     Bearer
// @Accept       json
// @Param        id    path  string  true  "ID del usuario"
// @Param        body  body  dto.AssignRoleRequest  true  "Rol y colegio"
// @Success      204
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/admin-users/{id}/roles [post]
func (h *UserAdminHandler) AssignRole(c *fiber.Ctx) error {
	var in dto.AssignRoleRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := validate.Struct(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: validate.Message(err)})
	}
	if err := h.uc.AssignRole(c.Params("id"), in); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
