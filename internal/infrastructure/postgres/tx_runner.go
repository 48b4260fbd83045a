package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/issaqr/inventory-qr-api/internal/domain/repository"
)

// TxRunner agrupa escrituras en una transacción pgx. Los repos que recibe el
// callback están atados a la tx, no al pool: todo lo que hagan se confirma o
// revierte junto.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner sobre el pool compartido.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run implementa auth.RegistrationTxRunner: canje atómico de invitaciones.
func (t *TxRunner) Run(ctx context.Context, fn func(
	userRepo repository.UserRepository,
	userRoleRepo repository.UserRoleRepository,
	invitationRepo repository.InvitationRepository,
) error) error {
	tx, err := t.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := fn(
		NewUserRepository(tx),
		NewUserRoleRepository(tx),
		NewInvitationRepository(tx),
	); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

// PaymentTxRunner variante para el webhook de pagos (subscription.PaymentTxRunner).
type PaymentTxRunner struct {
	pool *pgxpool.Pool
}

// NewPaymentTxRunner construye el runner sobre el pool compartido.
func NewPaymentTxRunner(pool *pgxpool.Pool) *PaymentTxRunner {
	return &PaymentTxRunner{pool: pool}
}

// Run registra el pago y mueve la suscripción de estado de forma atómica.
func (t *PaymentTxRunner) Run(ctx context.Context, fn func(
	subscriptionRepo repository.SubscriptionRepository,
	paymentRepo repository.PaymentRepository,
) error) error {
	tx, err := t.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := fn(NewSubscriptionRepository(tx), NewPaymentRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}
