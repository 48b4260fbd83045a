package subscription

import (
	"context"

	"github.com/issaqr/inventory-qr-api/internal/domain/repository"
)

// PaymentTxRunner procesa un webhook de pago dentro de una transacción:
// registrar el pago y mover la suscripción de estado deben ser atómicos.
type PaymentTxRunner interface {
	Run(ctx context.Context, fn func(
		subscriptionRepo repository.SubscriptionRepository,
		paymentRepo repository.PaymentRepository,
	) error) error
}
