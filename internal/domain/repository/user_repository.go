package repository

import "github.com/issaqr/inventory-qr-api/internal/domain/entity"

// UserRepository define el puerto de persistencia para User (DIP).
// Los métodos Get* excluyen usuarios soft-deleted salvo que se indique.
type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id string) (*entity.User, error)
	// GetByIDAny incluye usuarios soft-deleted (reactivación administrativa).
	GetByIDAny(id string) (*entity.User, error)
	GetByEmail(email string) (*entity.User, error)
	Update(user *entity.User) error
	List(limit, offset int) ([]*entity.User, error)
	// Search busca por nombre o email; el patrón llega ya normalizado (minúsculas, sin acentos).
	Search(pattern string, limit, offset int) ([]*entity.User, error)
}

// UserRoleRepository puerto para asignaciones (user, role, school).
type UserRoleRepository interface {
	Create(ur *entity.UserRole) error
	// Exists es el predicado de autorización: ¿tiene el usuario el rol,
	// opcionalmente restringido a una escuela? schoolID vacío = sin filtro.
	Exists(userID string, roleID int16, schoolID string) (bool, error)
	ListByUser(userID string) ([]*entity.UserRole, error)
}
