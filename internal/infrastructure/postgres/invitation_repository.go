package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/issaqr/inventory-qr-api/internal/domain"
	"github.com/issaqr/inventory-qr-api/internal/domain/entity"
	"github.com/issaqr/inventory-qr-api/internal/domain/repository"
)

var _ repository.InvitationRepository = (*InvitationRepo)(nil)

const invitationColumns = "id, email, role_id, school_id, token, expires_at, used_at, sent_by, created_at"

// InvitationRepo implementación del puerto InvitationRepository sobre PostgreSQL.
type InvitationRepo struct {
	q Querier
}

// NewInvitationRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInvitationRepository(q Querier) *InvitationRepo {
	return &InvitationRepo{q: q}
}

func (r *InvitationRepo) Create(invitation *entity.Invitation) error {
	query := `
		INSERT INTO invitations (id, email, role_id, school_id, token, expires_at, sent_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		invitation.ID, invitation.Email, invitation.RoleID, invitation.SchoolID,
		invitation.Token, invitation.ExpiresAt, invitation.SentBy, invitation.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert invitation: %w", err)
	}
	return nil
}

func (r *InvitationRepo) GetByToken(token string) (*entity.Invitation, error) {
	query := fmt.Sprintf(`SELECT %s FROM invitations WHERE token = $1`, invitationColumns)
	var i entity.Invitation
	err := r.q.QueryRow(context.Background(), query, token).Scan(
		&i.ID, &i.Email, &i.RoleID, &i.SchoolID, &i.Token,
		&i.ExpiresAt, &i.UsedAt, &i.SentBy, &i.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get invitation: %w", err)
	}
	return &i, nil
}

// List filtra por colegio y/o email (cadenas vacías = sin filtro), más
// reciente primero.
func (r *InvitationRepo) List(schoolID, email string, limit, offset int) ([]*entity.Invitation, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM invitations
		WHERE ($1 = '' OR school_id = $1::uuid)
		  AND ($2 = '' OR email = $2)
		ORDER BY created_at DESC
		LIMIT $3 OFFSET $4`, invitationColumns)
	rows, err := r.q.Query(context.Background(), query, schoolID, email, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list invitations: %w", err)
	}
	defer rows.Close()

	var invitations []*entity.Invitation
	for rows.Next() {
		var i entity.Invitation
		if err := rows.Scan(
			&i.ID, &i.Email, &i.RoleID, &i.SchoolID, &i.Token,
			&i.ExpiresAt, &i.UsedAt, &i.SentBy, &i.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan invitation: %w", err)
		}
		invitations = append(invitations, &i)
	}
	return invitations, rows.Err()
}

// MarkUsed estampa used_at de forma condicional: el predicado used_at IS NULL
// garantiza que solo un canje concurrente gane; el perdedor recibe
// ErrInvitationInvalid.
func (r *InvitationRepo) MarkUsed(token string, usedAt time.Time) error {
	query := `UPDATE invitations SET used_at = $2 WHERE token = $1 AND used_at IS NULL`
	tag, err := r.q.Exec(context.Background(), query, token, usedAt)
	if err != nil {
		return fmt.Errorf("mark invitation used: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrInvitationInvalid
	}
	return nil
}
