package dto

// AdminUpdateUserRequest actualización de usuario por el super_admin. El
// cambio de email respeta la unicidad; reactivar limpia deleted_at.
type AdminUpdateUserRequest struct {
	FullName *string `json:"full_name" validate:"omitempty,min=2,max=200"`
	Email    *string `json:"email" validate:"omitempty,email"`
}

// SetUserStatusRequest cambia el estado del usuario (enum validado).
type SetUserStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending active suspended"`
}

// AssignRoleRequest asigna un rol en un colegio a un usuario existente.
type AssignRoleRequest struct {
	RoleID   int16  `json:"role_id" validate:"required,min=1,max=4"`
	SchoolID string `json:"school_id" validate:"required,uuid"`
}

// UserListRequest filtros de listado de usuarios. Search busca por nombre
// o email ignorando mayúsculas y acentos.
type UserListRequest struct {
	PageRequest
	Search string `query:"search" validate:"omitempty,max=120"`
}

// AdminUserListResponse lista paginada de usuarios con banderas de rol.
type AdminUserListResponse struct {
	Items []UserWithRolesResponse `json:"items"`
	Page  PageResponse            `json:"page"`
}
