package dto

import (
	"time"

	"github.com/issaqr/inventory-qr-api/internal/domain/entity"
)

// RegisterRequest registro abierto: crea un usuario pending sin roles.
type RegisterRequest struct {
	FullName string `json:"full_name" validate:"required,min=2,max=200"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// RegisterWithInvitationRequest registro mediante token de invitación.
// El email debe coincidir con el de la invitación (se verifica antes de escribir).
type RegisterWithInvitationRequest struct {
	InvitationToken string `json:"invitation_token" validate:"required,uuid"`
	FullName        string `json:"full_name" validate:"required,min=2,max=200"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=8"`
}

// LoginRequest credenciales de acceso.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// GoogleLoginRequest login con ID token de Google.
type GoogleLoginRequest struct {
	IDToken string `json:"id_token" validate:"required"`
}

// UserResponse salida de un usuario (sin password).
type UserResponse struct {
	ID        string    `json:"id"`
	FullName  string    `json:"full_name"`
	Email     string    `json:"email"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// UserWithRolesResponse usuario más banderas de pertenencia a cada rol.
type UserWithRolesResponse struct {
	UserResponse
	Roles entity.RoleFlags `json:"roles"`
}

// UserListResponse lista paginada de usuarios.
type UserListResponse struct {
	Items []UserResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}

// TokenResponse salida de login.
type TokenResponse struct {
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
	User        UserResponse `json:"user"`
}
