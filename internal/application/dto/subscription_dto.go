package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ─────────────────────────────────────────────
// Planes
// ─────────────────────────────────────────────

// CreatePlanRequest alta de plan de suscripción (nombre único).
type CreatePlanRequest struct {
	Name         string          `json:"name" validate:"required,min=2,max=120"`
	Description  string          `json:"description" validate:"omitempty,max=500"`
	Price        decimal.Decimal `json:"price" validate:"required"`
	DurationDays int             `json:"duration_days" validate:"required,min=1"`
	Features     []string        `json:"features" validate:"omitempty,dive,max=200"`
}

// UpdatePlanRequest actualización parcial de plan.
type UpdatePlanRequest struct {
	Name         *string          `json:"name" validate:"omitempty,min=2,max=120"`
	Description  *string          `json:"description" validate:"omitempty,max=500"`
	Price        *decimal.Decimal `json:"price" validate:"omitempty"`
	DurationDays *int             `json:"duration_days" validate:"omitempty,min=1"`
	Features     []string         `json:"features" validate:"omitempty,dive,max=200"`
}

// PlanResponse salida de plan.
type PlanResponse struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Description  string          `json:"description,omitempty"`
	Price        decimal.Decimal `json:"price"`
	DurationDays int             `json:"duration_days"`
	Features     []string        `json:"features,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
}

// PlanListResponse lista paginada de planes.
type PlanListResponse struct {
	Items []PlanResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}

// ─────────────────────────────────────────────
// Suscripciones
// ─────────────────────────────────────────────

// CreateSubscriptionRequest crea (o reutiliza) la suscripción inactiva de
// un colegio para un plan. La activación llega después por webhook.
type CreateSubscriptionRequest struct {
	SchoolID string `json:"school_id" validate:"required,uuid"`
	PlanID   string `json:"plan_id" validate:"required,uuid"`
}

// SubscriptionResponse salida de suscripción. Las fechas son de solo día.
type SubscriptionResponse struct {
	ID        string     `json:"id"`
	SchoolID  string     `json:"school_id"`
	PlanID    string     `json:"plan_id"`
	PlanName  string     `json:"plan_name,omitempty"`
	Status    string     `json:"status"`
	StartDate *time.Time `json:"start_date,omitempty"`
	EndDate   *time.Time `json:"end_date,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// SubscriptionListResponse lista paginada de suscripciones.
type SubscriptionListResponse struct {
	Items []SubscriptionResponse `json:"items"`
	Page  PageResponse           `json:"page"`
}

// PaymentResponse salida de pago registrado.
type PaymentResponse struct {
	ID               string          `json:"id"`
	SubscriptionID   string          `json:"subscription_id"`
	Amount           decimal.Decimal `json:"amount"`
	GatewayPaymentID string          `json:"gateway_payment_id,omitempty"`
	Status           string          `json:"status"`
	PaymentDate      time.Time       `json:"payment_date"`
	CreatedAt        time.Time       `json:"created_at"`
}

// PaymentListResponse lista paginada de pagos.
type PaymentListResponse struct {
	Items []PaymentResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

// ─────────────────────────────────────────────
// Webhook del gateway
// ─────────────────────────────────────────────

// PaymentWebhookRequest evento entrante del gateway de pagos. El monto llega
// en centavos; la suscripción viaja en metadata del payment intent.
type PaymentWebhookRequest struct {
	Type string             `json:"type" validate:"required"`
	Data PaymentWebhookData `json:"data" validate:"required"`
}

// PaymentWebhookData envoltorio data.object del evento.
type PaymentWebhookData struct {
	Object PaymentWebhookObject `json:"object"`
}

// PaymentWebhookObject payment intent del gateway.
type PaymentWebhookObject struct {
	ID             string                 `json:"id" validate:"required"`
	AmountReceived int64                  `json:"amount_received"`
	Metadata       PaymentWebhookMetadata `json:"metadata"`
}

// PaymentWebhookMetadata metadata adjunta al payment intent.
type PaymentWebhookMetadata struct {
	SubscriptionID string `json:"subscription_id" validate:"required,uuid"`
}

// SweepResponse resultado del barrido de suscripciones vencidas.
type SweepResponse struct {
	Expired int `json:"expired"`
}
