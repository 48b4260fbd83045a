package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/issaqr/inventory-qr-api/internal/application/dto"
	"github.com/issaqr/inventory-qr-api/internal/application/invitation"
	"github.com/issaqr/inventory-qr-api/pkg/validate"
)

// InvitationHandler maneja la emisión y consulta de invitaciones.
type InvitationHandler struct {
	uc *invitation.InvitationUseCase
}

// NewInvitationHandler construye el handler.
func NewInvitationHandler(uc *invitation.InvitationUseCase) *InvitationHandler {
	return &InvitationHandler{uc: uc}
}

// Create godoc
// @Summary      Crear invitación (solo super admin); envía el correo best-effort
// @Tags         invitations
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateInvitationRequest  true  "Destino, rol y colegio"
// @Success      201   {object}  dto.InvitationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/invitations [post]
func (h *InvitationHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateInvitationRequest
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

// GetByToken godoc
// @Summary      Consultar invitación por token (público, incluye is_valid)
// @Tags         invitations
// @Produce      json
// @Param        token  path  string  true  "Token de la invitación"
// @Success      200    {object}  dto.InvitationResponse
// @Failure      404    {object}  dto.ErrorResponse
// @Router       /api/invitations/{token} [get]
func (h *InvitationHandler) GetByToken(c *fiber.Ctx) error {
	out, err := h.uc.GetByToken(c.Params("token"))
	if err != nil {
		return respondError(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "invitación no encontrada"})
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar invitaciones (solo super admin)
// @Tags         invitations
// @Security     Bearer
// @Produce      json
// @Param        school_id  query  string  false  "Filtrar por colegio"
// @Param        email      query  string  false  "Filtrar por email"
// @Param        limit      query  int     false  "Límite"   default(20)
// @Param        offset     query  int     false  "Offset"   default(0)
// @Success      200        {object}  dto.InvitationListResponse
// @Router       /api/invitations [get]
func (h *InvitationHandler) List(c *fiber.Ctx) error {
	var in dto.InvitationListRequest
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
