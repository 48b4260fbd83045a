package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/issaqr/inventory-qr-api/internal/domain"
	"github.com/issaqr/inventory-qr-api/internal/domain/entity"
	"github.com/issaqr/inventory-qr-api/internal/domain/repository"
)

var _ repository.SubscriptionRepository = (*SubscriptionRepo)(nil)

const subscriptionColumns = "id, school_id, plan_id, start_date, end_date, status, created_at, updated_at"

// SubscriptionRepo implementación del puerto SubscriptionRepository sobre
// PostgreSQL. Un índice único parcial sobre (school_id, plan_id) WHERE status
// IN ('inactive','active','past_due') garantiza a lo sumo una suscripción
// abierta por par escuela-plan.
type SubscriptionRepo struct {
	q Querier
}

// NewSubscriptionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSubscriptionRepository(q Querier) *SubscriptionRepo {
	return &SubscriptionRepo{q: q}
}

// Create persiste una suscripción. Si otra abierta del mismo par gana la
// carrera contra el índice parcial → ErrDuplicate.
func (r *SubscriptionRepo) Create(sub *entity.Subscription) error {
	query := `
		INSERT INTO subscriptions (id, school_id, plan_id, start_date, end_date, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		sub.ID, sub.SchoolID, sub.PlanID, sub.StartDate, sub.EndDate,
		sub.Status, sub.CreatedAt, sub.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert subscription: %w", err)
	}
	return nil
}

func (r *SubscriptionRepo) GetByID(id string) (*entity.Subscription, error) {
	query := fmt.Sprintf(`SELECT %s FROM subscriptions WHERE id = $1`, subscriptionColumns)
	return r.scanOne(r.q.QueryRow(context.Background(), query, id))
}

// GetOpenBySchoolAndPlan devuelve la suscripción abierta (inactive, active o
// past_due) del par escuela-plan, o nil si no hay.
func (r *SubscriptionRepo) GetOpenBySchoolAndPlan(schoolID, planID string) (*entity.Subscription, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM subscriptions
		WHERE school_id = $1 AND plan_id = $2 AND status IN ('inactive', 'active', 'past_due')`,
		subscriptionColumns)
	return r.scanOne(r.q.QueryRow(context.Background(), query, schoolID, planID))
}

// GetCurrentBySchool devuelve la suscripción vigente de la escuela: la
// active/past_due con end_date más lejana.
func (r *SubscriptionRepo) GetCurrentBySchool(schoolID string) (*entity.Subscription, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM subscriptions
		WHERE school_id = $1 AND status IN ('active', 'past_due')
		ORDER BY end_date DESC
		LIMIT 1`, subscriptionColumns)
	return r.scanOne(r.q.QueryRow(context.Background(), query, schoolID))
}

// ListBySchool historial completo de la escuela, más reciente primero.
func (r *SubscriptionRepo) ListBySchool(schoolID string, limit, offset int) ([]*entity.Subscription, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM subscriptions
		WHERE school_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`, subscriptionColumns)
	rows, err := r.q.Query(context.Background(), query, schoolID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list subscriptions: %w", err)
	}
	defer rows.Close()

	var subs []*entity.Subscription
	for rows.Next() {
		var s entity.Subscription
		if err := rows.Scan(
			&s.ID, &s.SchoolID, &s.PlanID, &s.StartDate, &s.EndDate,
			&s.Status, &s.CreatedAt, &s.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan subscription: %w", err)
		}
		subs = append(subs, &s)
	}
	return subs, rows.Err()
}

// Update persiste fechas y estado. school_id y plan_id son inmutables.
func (r *SubscriptionRepo) Update(sub *entity.Subscription) error {
	query := `
		UPDATE subscriptions
		SET start_date = $2, end_date = $3, status = $4, updated_at = $5
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		sub.ID, sub.StartDate, sub.EndDate, sub.Status, sub.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update subscription: %w", err)
	}
	return nil
}

// ExpireOverdue pasa a expired las active/past_due con end_date anterior a la
// fecha dada (formato 2006-01-02). Devuelve cuántas filas cambió.
func (r *SubscriptionRepo) ExpireOverdue(before string) (int, error) {
	query := `
		UPDATE subscriptions
		SET status = 'expired', updated_at = NOW()
		WHERE status IN ('active', 'past_due') AND end_date < $1::date`
	tag, err := r.q.Exec(context.Background(), query, before)
	if err != nil {
		return 0, fmt.Errorf("expire subscriptions: %w", err)
	}
	return int(tag.RowsAffected()), nil
}

func (r *SubscriptionRepo) scanOne(row pgx.Row) (*entity.Subscription, error) {
	var s entity.Subscription
	err := row.Scan(
		&s.ID, &s.SchoolID, &s.PlanID, &s.StartDate, &s.EndDate,
		&s.Status, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan subscription: %w", err)
	}
	return &s, nil
}
