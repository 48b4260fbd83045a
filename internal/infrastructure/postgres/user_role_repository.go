package postgres

import (
	"context"
	"fmt"

	"github.com/issaqr/inventory-qr-api/internal/domain"
	"github.com/issaqr/inventory-qr-api/internal/domain/entity"
	"github.com/issaqr/inventory-qr-api/internal/domain/repository"
)

var _ repository.UserRoleRepository = (*UserRoleRepo)(nil)

// UserRoleRepo implementación del puerto UserRoleRepository sobre PostgreSQL.
type UserRoleRepo struct {
	q Querier
}

// NewUserRoleRepository construye el adaptador. Pasar pool o tx (Querier).
func NewUserRoleRepository(q Querier) *UserRoleRepo {
	return &UserRoleRepo{q: q}
}

// Create persiste una asignación. Repetir la PK compuesta → ErrDuplicate.
func (r *UserRoleRepo) Create(ur *entity.UserRole) error {
	query := `
		INSERT INTO user_roles (user_id, role_id, school_id, assigned_at)
		VALUES ($1, $2, $3, $4)`
	_, err := r.q.Exec(context.Background(), query, ur.UserID, ur.RoleID, ur.SchoolID, ur.AssignedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert user_role: %w", err)
	}
	return nil
}

// Exists es el predicado de autorización. schoolID vacío = sin filtro de colegio.
func (r *UserRoleRepo) Exists(userID string, roleID int16, schoolID string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM user_roles
			WHERE user_id = $1 AND role_id = $2 AND ($3 = '' OR school_id = $3::uuid)
		)`
	var exists bool
	err := r.q.QueryRow(context.Background(), query, userID, roleID, schoolID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check user_role: %w", err)
	}
	return exists, nil
}

// ListByUser asignaciones de un usuario.
func (r *UserRoleRepo) ListByUser(userID string) ([]*entity.UserRole, error) {
	query := `
		SELECT user_id, role_id, school_id, assigned_at
		FROM user_roles
		WHERE user_id = $1
		ORDER BY assigned_at`
	rows, err := r.q.Query(context.Background(), query, userID)
	if err != nil {
		return nil, fmt.Errorf("list user_roles: %w", err)
	}
	defer rows.Close()

	var roles []*entity.UserRole
	for rows.Next() {
		var ur entity.UserRole
		if err := rows.Scan(&ur.UserID, &ur.RoleID, &ur.SchoolID, &ur.AssignedAt); err != nil {
			return nil, fmt.Errorf("scan user_role: %w", err)
		}
		roles = append(roles, &ur)
	}
	return roles, rows.Err()
}
