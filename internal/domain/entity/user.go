package entity

import "time"

// Estados válidos para User.
const (
	UserStatusPending   = "pending"
	UserStatusActive    = "active"
	UserStatusSuspended = "suspended"
)

// User representa una cuenta del sistema. Los roles se asignan por escuela
// vía UserRole; un usuario recién registrado sin invitación queda pending
// y sin roles.
type User struct {
	ID           string
	FullName     string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Status       string // pending, active, suspended
	CreatedAt    time.Time
	UpdatedAt    time.Time
	DeletedAt    *time.Time // soft delete
}

// IsDeleted indica si la cuenta fue eliminada lógicamente.
func (u *User) IsDeleted() bool { return u.DeletedAt != nil }

// ValidUserStatus verifica que el estado pertenezca al catálogo.
func ValidUserStatus(s string) bool {
	switch s {
	case UserStatusPending, UserStatusActive, UserStatusSuspended:
		return true
	}
	return false
}
