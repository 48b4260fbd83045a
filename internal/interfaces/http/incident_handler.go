package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/issaqr/inventory-qr-api/internal/application/dto"
	"github.com/issaqr/inventory-qr-api/internal/application/usecase"
	"github.com/issaqr/inventory-qr-api/pkg/validate"
)

// IncidentHandler maneja las peticiones HTTP para Incident.
type IncidentHandler struct {
	uc *usecase.IncidentUseCase
}

// NewIncidentHandler construye el handler.
func NewIncidentHandler(uc *usecase.IncidentUseCase) *IncidentHandler {
	return &IncidentHandler{uc: uc}
}

// Create godoc
// @Summary      Reportar incidente sobre un activo
// @Tags         incidents
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateIncidentRequest  true  "Datos del incidente"
// @Success      201   {object}  dto.IncidentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/incidents [post]
func (h *IncidentHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateIncidentRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := validate.Struct(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: validate.Message(err)})
	}
	out, err := h.uc.Create(GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener incidente por ID
// @Tags         incidents
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del incidente"
// @Success      200  {object}  dto.IncidentResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/incidents/{id} [get]
func (h *IncidentHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "incidente no encontrado"})
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar incidentes (opcionalmente por activo)
// @Tags         incidents
// @Security     Bearer
// @Produce      json
// @Param        asset_id  query  string  false  "Filtrar por activo"
// @Param        limit     query  int     false  "Límite"   default(20)
// @Param        offset    query  int     false  "Offset"   default(0)
// @Success      200       {object}  dto.IncidentListResponse
// @Router       /api/incidents [get]
func (h *IncidentHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "query inválida"})
	}
	out, err := h.uc.List(c.Query("asset_id"), page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar incidente (la primera transición terminal estampa resolved_at)
// @Tags         incidents
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del incidente"
// @Param        body  body  dto.UpdateIncidentRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.IncidentResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/incidents/{id} [put]
func (h *IncidentHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateIncidentRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := validate.Struct(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: validate.Message(err)})
	}
	out, err := h.uc.Update(GetUserID(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "incidente no encontrado"})
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar incidente
// @Tags         incidents
// @Security     Bearer
// @Param        id  path  string  true  "ID del incidente"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/incidents/{id} [delete]
func (h *IncidentHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(GetUserID(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
