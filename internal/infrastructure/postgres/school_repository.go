package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/issaqr/inventory-qr-api/internal/domain/entity"
	"github.com/issaqr/inventory-qr-api/internal/domain/repository"
)

var _ repository.SchoolRepository = (*SchoolRepo)(nil)

const schoolColumns = "id, name, address, description, logo_url, created_at, updated_at, deleted_at"

// SchoolRepo implementación del puerto SchoolRepository sobre PostgreSQL.
type SchoolRepo struct {
	q Querier
}

// NewSchoolRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSchoolRepository(q Querier) *SchoolRepo {
	return &SchoolRepo{q: q}
}

// Create persiste un colegio.
func (r *SchoolRepo) Create(school *entity.School) error {
	query := `
		INSERT INTO schools (id, name, address, description, logo_url, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		school.ID, school.Name, school.Address, school.Description, school.LogoURL,
		school.CreatedAt, school.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert school: %w", err)
	}
	return nil
}

// GetByID obtiene un colegio vigente.
func (r *SchoolRepo) GetByID(id string) (*entity.School, error) {
	query := fmt.Sprintf(`SELECT %s FROM schools WHERE id = $1 AND deleted_at IS NULL`, schoolColumns)
	var s entity.School
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&s.ID, &s.Name, &s.Address, &s.Description, &s.LogoURL,
		&s.CreatedAt, &s.UpdatedAt, &s.DeletedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get school: %w", err)
	}
	return &s, nil
}

// List lista colegios vigentes con paginación.
func (r *SchoolRepo) List(limit, offset int) ([]*entity.School, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM schools
		WHERE deleted_at IS NULL
		ORDER BY name
		LIMIT $1 OFFSET $2`, schoolColumns)
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list schools: %w", err)
	}
	defer rows.Close()

	var schools []*entity.School
	for rows.Next() {
		var s entity.School
		if err := rows.Scan(
			&s.ID, &s.Name, &s.Address, &s.Description, &s.LogoURL,
			&s.CreatedAt, &s.UpdatedAt, &s.DeletedAt,
		); err != nil {
			return nil, fmt.Errorf("scan school: %w", err)
		}
		schools = append(schools, &s)
	}
	return schools, rows.Err()
}

// Update persiste los campos mutables del colegio.
func (r *SchoolRepo) Update(school *entity.School) error {
	query := `
		UPDATE schools
		SET name = $2, address = $3, description = $4, logo_url = $5, updated_at = $6
		WHERE id = $1 AND deleted_at IS NULL`
	_, err := r.q.Exec(context.Background(), query,
		school.ID, school.Name, school.Address, school.Description, school.LogoURL, school.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update school: %w", err)
	}
	return nil
}

// SoftDelete estampa deleted_at.
func (r *SchoolRepo) SoftDelete(id string) error {
	query := `UPDATE schools SET deleted_at = $2, updated_at = $2 WHERE id = $1 AND deleted_at IS NULL`
	_, err := r.q.Exec(context.Background(), query, id, time.Now())
	if err != nil {
		return fmt.Errorf("delete school: %w", err)
	}
	return nil
}
