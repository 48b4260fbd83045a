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

var _ repository.ClassroomRepository = (*ClassroomRepo)(nil)

const classroomColumns = "id, school_id, code, name, capacity, responsible, image_url, created_at, updated_at, deleted_at"

// ClassroomRepo implementación del puerto ClassroomRepository sobre PostgreSQL.
type ClassroomRepo struct {
	q Querier
}

// NewClassroomRepository construye el adaptador. Pasar pool o tx (Querier).
func NewClassroomRepository(q Querier) *ClassroomRepo {
	return &ClassroomRepo{q: q}
}

// Create persiste un aula. Código repetido en el colegio → ErrDuplicate.
func (r *ClassroomRepo) Create(classroom *entity.Classroom) error {
	query := `
		INSERT INTO classrooms (id, school_id, code, name, capacity, responsible, image_url, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		classroom.ID, classroom.SchoolID, classroom.Code, classroom.Name, classroom.Capacity,
		classroom.Responsible, classroom.ImageURL, classroom.CreatedAt, classroom.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert classroom: %w", err)
	}
	return nil
}

// GetByID obtiene un aula vigente.
func (r *ClassroomRepo) GetByID(id string) (*entity.Classroom, error) {
	query := fmt.Sprintf(`SELECT %s FROM classrooms WHERE id = $1 AND deleted_at IS NULL`, classroomColumns)
	var c entity.Classroom
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&c.ID, &c.SchoolID, &c.Code, &c.Name, &c.Capacity, &c.Responsible, &c.ImageURL,
		&c.CreatedAt, &c.UpdatedAt, &c.DeletedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get classroom: %w", err)
	}
	return &c, nil
}

// ListBySchool aulas vigentes de un colegio.
func (r *ClassroomRepo) ListBySchool(schoolID string, limit, offset int) ([]*entity.Classroom, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM classrooms
		WHERE school_id = $1 AND deleted_at IS NULL
		ORDER BY code
		LIMIT $2 OFFSET $3`, classroomColumns)
	return r.scanMany(query, schoolID, limit, offset)
}

// List aulas vigentes de todos los colegios.
func (r *ClassroomRepo) List(limit, offset int) ([]*entity.Classroom, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM classrooms
		WHERE deleted_at IS NULL
		ORDER BY school_id, code
		LIMIT $1 OFFSET $2`, classroomColumns)
	return r.scanMany(query, limit, offset)
}

// ListCodes códigos vigentes de un colegio (para generar uno único).
func (r *ClassroomRepo) ListCodes(schoolID string) ([]string, error) {
	query := `SELECT code FROM classrooms WHERE school_id = $1 AND deleted_at IS NULL`
	rows, err := r.q.Query(context.Background(), query, schoolID)
	if err != nil {
		return nil, fmt.Errorf("list classroom codes: %w", err)
	}
	defer rows.Close()

	var codes []string
	for rows.Next() {
		var code string
		if err := rows.Scan(&code); err != nil {
			return nil, fmt.Errorf("scan classroom code: %w", err)
		}
		codes = append(codes, code)
	}
	return codes, rows.Err()
}

// Update persiste los campos mutables del aula (el código no cambia).
func (r *ClassroomRepo) Update(classroom *entity.Classroom) error {
	query := `
		UPDATE classrooms
		SET name = $2, capacity = $3, responsible = $4, image_url = $5, updated_at = $6
		WHERE id = $1 AND deleted_at IS NULL`
	_, err := r.q.Exec(context.Background(), query,
		classroom.ID, classroom.Name, classroom.Capacity, classroom.Responsible,
		classroom.ImageURL, classroom.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update classroom: %w", err)
	}
	return nil
}

// SoftDelete estampa deleted_at.
func (r *ClassroomRepo) SoftDelete(id string) error {
	query := `UPDATE classrooms SET deleted_at = $2, updated_at = $2 WHERE id = $1 AND deleted_at IS NULL`
	_, err := r.q.Exec(context.Background(), query, id, time.Now())
	if err != nil {
		return fmt.Errorf("delete classroom: %w", err)
	}
	return nil
}

func (r *ClassroomRepo) scanMany(query string, args ...any) ([]*entity.Classroom, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list classrooms: %w", err)
	}
	defer rows.Close()

	var classrooms []*entity.Classroom
	for rows.Next() {
		var c entity.Classroom
		if err := rows.Scan(
			&c.ID, &c.SchoolID, &c.Code, &c.Name, &c.Capacity, &c.Responsible, &c.ImageURL,
			&c.CreatedAt, &c.UpdatedAt, &c.DeletedAt,
		); err != nil {
			return nil, fmt.Errorf("scan classroom: %w", err)
		}
		classrooms = append(classrooms, &c)
	}
	return classrooms, rows.Err()
}
