package entity

import "time"

// Invitation token de un solo uso que otorga un rol en una escuela al
// registrarse. Terminal una vez usada; la expiración no se almacena como
// estado: la validez se calcula al leer.
type Invitation struct {
	ID        string
	Email     string
	RoleID    int16
	SchoolID  string
	Token     string // uuid aleatorio
	ExpiresAt time.Time
	UsedAt    *time.Time
	SentBy    *string
	CreatedAt time.Time
}

// IsUsed indica si la invitación ya fue canjeada.
func (i *Invitation) IsUsed() bool { return i.UsedAt != nil }

// IsExpired indica si la invitación venció respecto de now.
func (i *Invitation) IsExpired(now time.Time) bool {
	return !i.ExpiresAt.After(now)
}

// IsValid es el invariante central: válida sii no usada Y no expirada.
func (i *Invitation) IsValid(now time.Time) bool {
	return i.UsedAt == nil && i.ExpiresAt.After(now)
}
