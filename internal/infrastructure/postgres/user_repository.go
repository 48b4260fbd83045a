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

var _ repository.UserRepository = (*UserRepo)(nil)

const userColumns = "id, full_name, email, password_hash, status, created_at, updated_at, deleted_at"

// UserRepo implementación del puerto UserRepository sobre PostgreSQL (usable con pool o tx).
type UserRepo struct {
	q Querier
}

// NewUserRepository construye el adaptador de persistencia para usuarios. Pasar pool o tx (Querier).
func NewUserRepository(q Querier) *UserRepo {
	return &UserRepo{q: q}
}

// Create persiste un nuevo usuario. Email repetido → ErrEmailAlreadyExists.
func (r *UserRepo) Create(user *entity.User) error {
	query := `
		INSERT INTO users (id, full_name, email, password_hash, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		user.ID, user.FullName, user.Email, user.PasswordHash, user.Status,
		user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// GetByID obtiene un usuario vigente por ID.
func (r *UserRepo) GetByID(id string) (*entity.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE id = $1 AND deleted_at IS NULL`, userColumns)
	return r.scanOne(query, id)
}

// GetByIDAny incluye usuarios soft-deleted (reactivación administrativa).
func (r *UserRepo) GetByIDAny(id string) (*entity.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE id = $1`, userColumns)
	return r.scanOne(query, id)
}

// GetByEmail obtiene un usuario vigente por email.
func (r *UserRepo) GetByEmail(email string) (*entity.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE email = $1 AND deleted_at IS NULL`, userColumns)
	return r.scanOne(query, email)
}

// Update persiste todos los campos mutables, incluido deleted_at (bloqueo y
// reactivación pasan por aquí).
func (r *UserRepo) Update(user *entity.User) error {
	query := `
		UPDATE users
		SET full_name = $2, email = $3, password_hash = $4, status = $5, updated_at = $6, deleted_at = $7
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		user.ID, user.FullName, user.Email, user.PasswordHash, user.Status,
		user.UpdatedAt, user.DeletedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("update user: %w", err)
	}
	return nil
}

// List lista usuarios vigentes con paginación.
func (r *UserRepo) List(limit, offset int) ([]*entity.User, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM users
		WHERE deleted_at IS NULL
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2`, userColumns)
	return r.scanMany(query, limit, offset)
}

// Search busca por nombre o email. El patrón llega ya normalizado
// (minúsculas, sin acentos); la columna se normaliza con unaccent.
func (r *UserRepo) Search(pattern string, limit, offset int) ([]*entity.User, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM users
		WHERE deleted_at IS NULL
		  AND (unaccent(lower(full_name)) LIKE '%%' || $1 || '%%' OR lower(email) LIKE '%%' || $1 || '%%')
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`, userColumns)
	return r.scanMany(query, pattern, limit, offset)
}

func (r *UserRepo) scanOne(query string, args ...any) (*entity.User, error) {
	var u entity.User
	err := r.q.QueryRow(context.Background(), query, args...).Scan(
		&u.ID, &u.FullName, &u.Email, &u.PasswordHash, &u.Status,
		&u.CreatedAt, &u.UpdatedAt, &u.DeletedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &u, nil
}

func (r *UserRepo) scanMany(query string, args ...any) ([]*entity.User, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var users []*entity.User
	for rows.Next() {
		var u entity.User
		if err := rows.Scan(
			&u.ID, &u.FullName, &u.Email, &u.PasswordHash, &u.Status,
			&u.CreatedAt, &u.UpdatedAt, &u.DeletedAt,
		); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, &u)
	}
	return users, rows.Err()
}
