package dto

import "time"

// CreateInvitationRequest crea una invitación para un email + rol + colegio.
type CreateInvitationRequest struct {
	Email    string `json:"email" validate:"required,email"`
	RoleID   int16  `json:"role_id" validate:"required,min=1,max=4"`
	SchoolID string `json:"school_id" validate:"required,uuid"`
}

// InvitationResponse salida de una invitación; Valid se calcula al momento.
type InvitationResponse struct {
	ID        string     `json:"id"`
	Token     string     `json:"token"`
	Email     string     `json:"email"`
	RoleID    int16      `json:"role_id"`
	RoleName  string     `json:"role_name"`
	SchoolID  string     `json:"school_id"`
	ExpiresAt time.Time  `json:"expires_at"`
	UsedAt    *time.Time `json:"used_at,omitempty"`
	Valid     bool       `json:"valid"`
	SentBy    *string    `json:"sent_by,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

// InvitationListResponse lista paginada de invitaciones.
type InvitationListResponse struct {
	Items []InvitationResponse `json:"items"`
	Page  PageResponse         `json:"page"`
}

// InvitationListRequest filtros para listar invitaciones.
type InvitationListRequest struct {
	PageRequest
	SchoolID string `query:"school_id" validate:"omitempty,uuid"`
	Email    string `query:"email" validate:"omitempty,email"`
}
