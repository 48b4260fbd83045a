package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados válidos para Subscription.
const (
	SubscriptionStatusInactive = "inactive" // creada pero sin pago
	SubscriptionStatusActive   = "active"
	SubscriptionStatusPastDue  = "past_due"
	SubscriptionStatusCanceled = "canceled"
	SubscriptionStatusExpired  = "expired" // end_date vencida sin cobro
)

// Estados válidos para Payment.
const (
	PaymentStatusPending   = "pending"
	PaymentStatusSucceeded = "succeeded"
	PaymentStatusFailed    = "failed"
	PaymentStatusRefunded  = "refunded"
)

// Plan plan de suscripción del catálogo (nombre único).
type Plan struct {
	ID           string
	Name         string
	Price        decimal.Decimal
	DurationDays int
	FeaturesList []string
	Description  string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Subscription derecho de una escuela a un plan por un periodo.
// Nace inactive; la activa el primer pago exitoso; se renueva extendiendo
// end_date; pasa a expired cuando end_date vence sin cobro.
type Subscription struct {
	ID        string
	SchoolID  string
	PlanID    string
	StartDate time.Time // solo fecha
	EndDate   time.Time // solo fecha
	Status    string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Renewable indica si el estado admite renovación de vuelta a active.
func (s *Subscription) Renewable() bool {
	return s.Status == SubscriptionStatusActive || s.Status == SubscriptionStatusPastDue
}

// Payment registro inmutable de una transacción del gateway, atada a una suscripción.
type Payment struct {
	ID               string
	SubscriptionID   string
	Amount           decimal.Decimal
	GatewayPaymentID string
	Status           string
	PaymentDate      time.Time
	CreatedAt        time.Time
}
