package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/issaqr/inventory-qr-api/internal/application/dto"
	"github.com/issaqr/inventory-qr-api/internal/application/usecase"
	"github.com/issaqr/inventory-qr-api/pkg/validate"
)

// ClassroomHandler maneja las peticiones HTTP para Classroom.
type ClassroomHandler struct {
	uc *usecase.ClassroomUseCase
}

// NewClassroomHandler construye el handler.
func NewClassroomHandler(uc *usecase.ClassroomUseCase) *ClassroomHandler {
	return &ClassroomHandler{uc: uc}
}

// Create godoc
// @Summary      Crear aula (el código se genera a partir del nombre)
// @Tags         classrooms
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateClassroomRequest  true  "Datos del aula"
// @Success      201   {object}  dto.ClassroomResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/classrooms [post]
func (h *ClassroomHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateClassroomRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := validate.Struct(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: validate.Message(err)})
	}
	out, err := h.uc.Create(in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener aula por ID
// @Tags         classrooms
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del aula"
// @Success      200  {object}  dto.ClassroomResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/classrooms/{id} [get]
func (h *ClassroomHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "aula no encontrada"})
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar aulas (opcionalmente por colegio)
// @Tags         classrooms
// @Security     Bearer
// @Produce      json
// @Param        school_id  query  string  false  "Filtrar por colegio"
// @Param        limit      query  int     false  "Límite"   default(20)
// @Param        offset     query  int     false  "Offset"   default(0)
// @Success      200        {object}  dto.ClassroomListResponse
// @Router       /api/classrooms [get]
func (h *ClassroomHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "query inválida"})
	}
	out, err := h.uc.List(c.Query("school_id"), page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar aula (el código es inmutable)
// @Tags         classrooms
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del aula"
// @Param        body  body  dto.UpdateClassroomRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.ClassroomResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/classrooms/{id} [put]
func (h *ClassroomHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateClassroomRequest
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
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "aula no encontrada"})
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar aula (soft delete)
// @Tags         classrooms
// @Security     Bearer
// @Param        id  path  string  true  "ID del aula"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/classrooms/{id} [delete]
func (h *ClassroomHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Inventory godoc
// @Summary      Resumen de inventario del aula (conteos por estado + valor total)
// @Tags         classrooms
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del aula"
// @Success      200  {object}  dto.ClassroomInventoryResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/classrooms/{id}/inventory [get]
func (h *ClassroomHandler) Inventory(c *fiber.Ctx) error {
	out, err := h.uc.Inventory(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "aula no encontrada"})
	}
	return c.JSON(out)
}
