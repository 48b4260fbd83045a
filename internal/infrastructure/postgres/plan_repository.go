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

var _ repository.PlanRepository = (*PlanRepo)(nil)

const planColumns = "id, name, price, duration_days, features_list, description, created_at, updated_at"

// PlanRepo implementación del puerto PlanRepository sobre PostgreSQL.
// features_list se guarda como text[] nativo de Postgres.
type PlanRepo struct {
	q Querier
}

// NewPlanRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPlanRepository(q Querier) *PlanRepo {
	return &PlanRepo{q: q}
}

// Create persiste un plan. Nombre repetido → ErrDuplicate.
func (r *PlanRepo) Create(plan *entity.Plan) error {
	query := `
		INSERT INTO plans (id, name, price, duration_days, features_list, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		plan.ID, plan.Name, plan.Price, plan.DurationDays,
		plan.FeaturesList, plan.Description, plan.CreatedAt, plan.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert plan: %w", err)
	}
	return nil
}

func (r *PlanRepo) GetByID(id string) (*entity.Plan, error) {
	query := fmt.Sprintf(`SELECT %s FROM plans WHERE id = $1`, planColumns)
	var p entity.Plan
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&p.ID, &p.Name, &p.Price, &p.DurationDays, &p.FeaturesList,
		&p.Description, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get plan: %w", err)
	}
	return &p, nil
}

// List catálogo de planes ordenado por precio ascendente.
func (r *PlanRepo) List(limit, offset int) ([]*entity.Plan, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM plans
		ORDER BY price ASC
		LIMIT $1 OFFSET $2`, planColumns)
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list plans: %w", err)
	}
	defer rows.Close()

	var plans []*entity.Plan
	for rows.Next() {
		var p entity.Plan
		if err := rows.Scan(
			&p.ID, &p.Name, &p.Price, &p.DurationDays, &p.FeaturesList,
			&p.Description, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan plan: %w", err)
		}
		plans = append(plans, &p)
	}
	return plans, rows.Err()
}

func (r *PlanRepo) Update(plan *entity.Plan) error {
	query := `
		UPDATE plans
		SET name = $2, price = $3, duration_days = $4, features_list = $5, description = $6, updated_at = $7
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		plan.ID, plan.Name, plan.Price, plan.DurationDays,
		plan.FeaturesList, plan.Description, plan.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update plan: %w", err)
	}
	return nil
}

func (r *PlanRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM plans WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete plan: %w", err)
	}
	return nil
}

// CountActiveSubscriptions cuenta las suscripciones active/past_due del plan.
func (r *PlanRepo) CountActiveSubscriptions(planID string) (int, error) {
	query := `
		SELECT COUNT(*) FROM subscriptions
		WHERE plan_id = $1 AND status IN ('active', 'past_due')`
	var count int
	if err := r.q.QueryRow(context.Background(), query, planID).Scan(&count); err != nil {
		return 0, fmt.Errorf("count plan subscriptions: %w", err)
	}
	return count, nil
}
