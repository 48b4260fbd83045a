package repository

import "github.com/issaqr/inventory-qr-api/internal/domain/entity"

// SchoolRepository puerto de persistencia para School (soft delete).
type SchoolRepository interface {
	Create(school *entity.School) error
	GetByID(id string) (*entity.School, error)
	List(limit, offset int) ([]*entity.School, error)
	Update(school *entity.School) error
	SoftDelete(id string) error
}

// ClassroomRepository puerto de persistencia para Classroom.
type ClassroomRepository interface {
	Create(classroom *entity.Classroom) error
	GetByID(id string) (*entity.Classroom, error)
	ListBySchool(schoolID string, limit, offset int) ([]*entity.Classroom, error)
	List(limit, offset int) ([]*entity.Classroom, error)
	// ListCodes devuelve los códigos vigentes de una escuela (para generar uno único).
	ListCodes(schoolID string) ([]string, error)
	Update(classroom *entity.Classroom) error
	SoftDelete(id string) error
}
