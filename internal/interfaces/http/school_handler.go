package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/issaqr/inventory-qr-api/internal/application/dto"
	"github.com/issaqr/inventory-qr-api/internal/application/usecase"
	"github.com/issaqr/inventory-qr-api/pkg/validate"
)

// SchoolHandler maneja las peticiones HTTP para School.
type SchoolHandler struct {
	uc *usecase.SchoolUseCase
}

// NewSchoolHandler construye el handler.
func NewSchoolHandler(uc *usecase.SchoolUseCase) *SchoolHandler {
	return &SchoolHandler{uc: uc}
}

// Create godoc
// @Summary      Crear colegio
// @Tags         schools
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateSchoolRequest  true  "Datos del colegio"
// @Success      201   {object}  dto.SchoolResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/schools [post]
func (h *SchoolHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateSchoolRequest
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
// @Summary      Obtener colegio por ID
// @Tags         schools
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del colegio"
// @Success      200  {object}  dto.SchoolResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/schools/{id} [get]
func (h *SchoolHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "colegio no encontrado"})
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar colegios
// @Tags         schools
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"   default(20)
// @Param        offset  query  int  false  "Offset"   default(0)
// @Success      200     {object}  dto.SchoolListResponse
// @Router       /api/schools [get]
func (h *SchoolHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "query inválida"})
	}
	out, err := h.uc.List(page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar colegio (campos opcionales)
// @Tags         schools
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del colegio"
// @Param        body  body  dto.UpdateSchoolRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.SchoolResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/schools/{id} [put]
func (h *SchoolHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateSchoolRequest
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
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "colegio no encontrado"})
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar colegio (soft delete)
// @Tags         schools
// @Security     Bearer
// @Param        id  path  string  true  "ID del colegio"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/schools/{id} [delete]
func (h *SchoolHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
