package auth

import (
	"context"

	"github.com/issaqr/inventory-qr-api/internal/domain/repository"
)

// RegistrationTxRunner ejecuta el canje de una invitación dentro de una
// transacción de BD: crear usuario, asignar rol y marcar la invitación como
// usada deben ser atómicos.
type RegistrationTxRunner interface {
	Run(ctx context.Context, fn func(
		userRepo repository.UserRepository,
		userRoleRepo repository.UserRoleRepository,
		invitationRepo repository.InvitationRepository,
	) error) error
}

// GoogleVerifier valida un ID token de Google y devuelve email y nombre.
type GoogleVerifier interface {
	Verify(ctx context.Context, idToken string) (email, fullName string, err error)
}
