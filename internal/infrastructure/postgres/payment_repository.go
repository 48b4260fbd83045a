package postgres

import (
	"context"
	"fmt"

	"github.com/issaqr/inventory-qr-api/internal/domain"
	"github.com/issaqr/inventory-qr-api/internal/domain/entity"
	"github.com/issaqr/inventory-qr-api/internal/domain/repository"
)

var _ repository.PaymentRepository = (*PaymentRepo)(nil)

// PaymentRepo implementación del puerto PaymentRepository sobre PostgreSQL.
// Los pagos son inmutables; gateway_payment_id lleva índice único y es la
// base de la idempotencia del webhook.
type PaymentRepo struct {
	q Querier
}

// NewPaymentRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPaymentRepository(q Querier) *PaymentRepo {
	return &PaymentRepo{q: q}
}

// Create persiste un pago. gateway_payment_id repetido → ErrDuplicate
// (reintento del gateway, el caller lo trata como éxito).
func (r *PaymentRepo) Create(payment *entity.Payment) error {
	query := `
		INSERT INTO payments (id, subscription_id, amount, gateway_payment_id, status, payment_date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		payment.ID, payment.SubscriptionID, payment.Amount, payment.GatewayPaymentID,
		payment.Status, payment.PaymentDate, payment.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert payment: %w", err)
	}
	return nil
}

// ListBySubscription pagos de una suscripción, más reciente primero.
func (r *PaymentRepo) ListBySubscription(subscriptionID string, limit, offset int) ([]*entity.Payment, error) {
	query := `
		SELECT id, subscription_id, amount, gateway_payment_id, status, payment_date, created_at
		FROM payments
		WHERE subscription_id = $1
		ORDER BY payment_date DESC
		LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, subscriptionID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	defer rows.Close()

	var payments []*entity.Payment
	for rows.Next() {
		var p entity.Payment
		if err := rows.Scan(
			&p.ID, &p.SubscriptionID, &p.Amount, &p.GatewayPaymentID,
			&p.Status, &p.PaymentDate, &p.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan payment: %w", err)
		}
		payments = append(payments, &p)
	}
	return payments, rows.Err()
}
