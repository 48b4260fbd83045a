package repository

import "github.com/issaqr/inventory-qr-api/internal/domain/entity"

// PlanRepository puerto para el catálogo de planes.
type PlanRepository interface {
	Create(plan *entity.Plan) error
	GetByID(id string) (*entity.Plan, error)
	List(limit, offset int) ([]*entity.Plan, error)
	Update(plan *entity.Plan) error
	Delete(id string) error
	// CountActiveSubscriptions cuenta suscripciones active/past_due del plan
	// (para rechazar su borrado).
	CountActiveSubscriptions(planID string) (int, error)
}

// SubscriptionRepository puerto para suscripciones.
type SubscriptionRepository interface {
	Create(sub *entity.Subscription) error
	GetByID(id string) (*entity.Subscription, error)
	// GetOpenBySchoolAndPlan devuelve la suscripción inactive/active/past_due
	// para (school, plan), o nil si no hay.
	GetOpenBySchoolAndPlan(schoolID, planID string) (*entity.Subscription, error)
	// GetCurrentBySchool devuelve la suscripción active/past_due vigente de la
	// escuela (la de end_date más lejana).
	GetCurrentBySchool(schoolID string) (*entity.Subscription, error)
	ListBySchool(schoolID string, limit, offset int) ([]*entity.Subscription, error)
	Update(sub *entity.Subscription) error
	// ExpireOverdue pasa a expired las active/past_due con end_date anterior a
	// la fecha dada. Devuelve cuántas cambió.
	ExpireOverdue(before string) (int, error)
}

// PaymentRepository puerto para pagos (inmutables: solo Create y lecturas).
type PaymentRepository interface {
	Create(payment *entity.Payment) error
	ListBySubscription(subscriptionID string, limit, offset int) ([]*entity.Payment, error)
}
