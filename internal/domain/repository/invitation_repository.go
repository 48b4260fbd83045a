package repository

import (
	"time"

	"github.com/issaqr/inventory-qr-api/internal/domain/entity"
)

// InvitationRepository puerto de persistencia para Invitation.
// Las invitaciones nunca se mutan salvo para estampar used_at.
type InvitationRepository interface {
	Create(invitation *entity.Invitation) error
	GetByToken(token string) (*entity.Invitation, error)
	// List filtra por colegio y/o email; cadenas vacías = sin filtro.
	List(schoolID, email string, limit, offset int) ([]*entity.Invitation, error)
	// MarkUsed estampa used_at solo si sigue en NULL; si otro canje llegó
	// primero devuelve ErrInvitationInvalid.
	MarkUsed(token string, usedAt time.Time) error
}
