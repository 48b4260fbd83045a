package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/issaqr/inventory-qr-api/internal/application/dto"
	"github.com/issaqr/inventory-qr-api/internal/application/subscription"
	"github.com/issaqr/inventory-qr-api/internal/domain"
	"github.com/issaqr/inventory-qr-api/pkg/logger"
	"github.com/issaqr/inventory-qr-api/pkg/validate"
)

// SubscriptionHandler maneja planes, suscripciones y el webhook de pagos.
type SubscriptionHandler struct {
	uc  *subscription.SubscriptionUseCase
	log *logger.Logger
}

// NewSubscriptionHandler construye el handler.
func NewSubscriptionHandler(uc *subscription.SubscriptionUseCase, log *logger.Logger) *SubscriptionHandler {
	return &SubscriptionHandler{uc: uc, log: log}
}

// ── Planes ────────────────────────────────────────────────────────────────────

// CreatePlan godoc
// @Summary      Crear plan (solo super admin)
// @Tags         plans
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreatePlanRequest  true  "Datos del plan"
// @Success      201   {object}  dto.PlanResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/plans [post]
func (h *SubscriptionHandler) CreatePlan(c *fiber.Ctx) error {
	var in dto.CreatePlanRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := validate.Struct(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: validate.Message(err)})
	}
	out, err := h.uc.CreatePlan(in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetPlan godoc
// @Summary      Obtener plan por ID
// @Tags         plans
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del plan"
// @Success      200  {object}  dto.PlanResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/plans/{id} [get]
func (h *SubscriptionHandler) GetPlan(c *fiber.Ctx) error {
	out, err := h.uc.GetPlan(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "plan no encontrado"})
	}
	return c.JSON(out)
}

// ListPlans godoc
// @Summary      Listar planes (catálogo público para usuarios autenticados)
// @Tags         plans
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"   default(20)
// @Param        offset  query  int  false  "Offset"   default(0)
// @Success      200     {object}  dto.PlanListResponse
// @Router       /api/plans [get]
func (h *SubscriptionHandler) ListPlans(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "query inválida"})
	}
	out, err := h.uc.ListPlans(page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// UpdatePlan godoc
// @Summary      Actualizar plan (solo super admin)
// @Tags         plans
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del plan"
// @Param        body  body  dto.UpdatePlanRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.PlanResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/plans/{id} [put]
func (h *SubscriptionHandler) UpdatePlan(c *fiber.Ctx) error {
	var in dto.UpdatePlanRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := validate.Struct(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: validate.Message(err)})
	}
	out, err := h.uc.UpdatePlan(c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "plan no encontrado"})
	}
	return c.JSON(out)
}

// DeletePlan godoc
// @Summary      Eliminar plan; rechazado si tiene suscripciones activas
// @Tags         plans
// @Security     Bearer
// @Param        id  path  string  true  "ID del plan"
// @Success      204
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/plans/{id} [delete]
func (h *SubscriptionHandler) DeletePlan(c *fiber.Ctx) error {
	if err := h.uc.DeletePlan(c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ── Suscripciones ─────────────────────────────────────────────────────────────

// CreateSubscription godoc
// @Summary      Crear suscripción inactive; idempotente si ya hay una inactive
// @Tags         subscriptions
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateSubscriptionRequest  true  "Colegio y plan"
// @Success      201   {object}  dto.SubscriptionResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/subscriptions [post]
func (h *SubscriptionHandler) CreateSubscription(c *fiber.Ctx) error {
	var in dto.CreateSubscriptionRequest
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

// GetSubscription godoc
// @Summary      Obtener suscripción por ID
// @Tags         subscriptions
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la suscripción"
// @Success      200  {object}  dto.SubscriptionResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/subscriptions/{id} [get]
func (h *SubscriptionHandler) GetSubscription(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "suscripción no encontrada"})
	}
	return c.JSON(out)
}

// CurrentSubscription godoc
// @Summary      Suscripción vigente (active/past_due) del colegio
// @Tags         subscriptions
// @Security     Bearer
// @Produce      json
// @Param        schoolId  path  string  true  "ID del colegio"
// @Success      200       {object}  dto.SubscriptionResponse
// @Failure      404       {object}  dto.ErrorResponse
// @Router       /api/subscriptions/schools/{schoolId}/current [get]
func (h *SubscriptionHandler) CurrentSubscription(c *fiber.Ctx) error {
	out, err := h.uc.Current(c.Params("schoolId"))
	if err != nil {
		return respondError(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "el colegio no tiene suscripción vigente"})
	}
	return c.JSON(out)
}

// ListBySchool godoc
// @Summary      Historial de suscripciones del colegio
// @Tags         subscriptions
// @Security     Bearer
// @Produce      json
// @Param        schoolId  path   string  true   "ID del colegio"
// @Param        limit     query  int     false  "Límite"   default(20)
// @Param        offset    query  int     false  "Offset"   default(0)
// @Success      200       {object}  dto.SubscriptionListResponse
// @Router       /api/subscriptions/schools/{schoolId} [get]
func (h *SubscriptionHandler) ListBySchool(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "query inválida"})
	}
	out, err := h.uc.ListBySchool(c.Params("schoolId"), page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ListPayments godoc
// @Summary      Pagos de una suscripción
// @Tags         subscriptions
// @Security     Bearer
// @Produce      json
// @Param        id      path   string  true   "ID de la suscripción"
// @Param        limit   query  int     false  "Límite"   default(20)
// @Param        offset  query  int     false  "Offset"   default(0)
// @Success      200     {object}  dto.PaymentListResponse
// @Router       /api/subscriptions/{id}/payments [get]
func (h *SubscriptionHandler) ListPayments(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "query inválida"})
	}
	out, err := h.uc.ListPayments(c.Params("id"), page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Renew godoc
// @Summary      Renovar manualmente una suscripción active/past_due
// @Tags         subscriptions
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la suscripción"
// @Success      200  {object}  dto.SubscriptionResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/subscriptions/{id}/renew [post]
func (h *SubscriptionHandler) Renew(c *fiber.Ctx) error {
	out, err := h.uc.Renew(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "suscripción no encontrada"})
	}
	return c.JSON(out)
}

// SweepExpired godoc
// @Summary      Expirar suscripciones vencidas (solo super admin)
// @Tags         subscriptions
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.SweepResponse
// @Router       /api/subscriptions/sweep-expired [post]
func (h *SubscriptionHandler) SweepExpired(c *fiber.Ctx) error {
	out, err := h.uc.SweepExpired()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ── Webhook ───────────────────────────────────────────────────────────────────

// PaymentWebhook godoc
// @Summary      Webhook del gateway de pagos
// @Description  JSON malformado o campos faltantes → 4xx. Errores de
// @Description  procesamiento → 200 con el problema registrado en logs, para
// @Description  que el gateway no reintente indefinidamente.
// @Tags         webhooks
// @Accept       json
// @Produce      json
// @Param        body  body  dto.PaymentWebhookRequest  true  "Evento del gateway"
// @Success      200   {object}  dto.ActionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/webhooks/payments [post]
func (h *SubscriptionHandler) PaymentWebhook(c *fiber.Ctx) error {
	var in dto.PaymentWebhookRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Type == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "type es requerido"})
	}
	out, err := h.uc.HandlePaymentWebhook(c.Context(), in)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
		}
		// Reconocer el evento aunque falle el procesamiento: un 5xx haría
		// que el gateway lo reintente para siempre.
		h.log.Error().Err(err).Str("event_type", in.Type).Msg("webhook de pago no procesado")
		return c.JSON(dto.ActionResponse{Success: false, Detail: "evento recibido, procesamiento fallido"})
	}
	return c.JSON(out)
}
