package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateSchoolRequest alta de colegio.
type CreateSchoolRequest struct {
	Name        string `json:"name" validate:"required,min=2,max=200"`
	Address     string `json:"address" validate:"omitempty,max=300"`
	Description string `json:"description" validate:"omitempty,max=500"`
	LogoURL     string `json:"logo_url" validate:"omitempty,max=500"`
}

// UpdateSchoolRequest actualización parcial de colegio.
type UpdateSchoolRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=2,max=200"`
	Address     *string `json:"address" validate:"omitempty,max=300"`
	Description *string `json:"description" validate:"omitempty,max=500"`
	LogoURL     *string `json:"logo_url" validate:"omitempty,max=500"`
}

// SchoolResponse salida de colegio.
type SchoolResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Address     string    `json:"address,omitempty"`
	Description string    `json:"description,omitempty"`
	LogoURL     string    `json:"logo_url,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// SchoolListResponse lista paginada de colegios.
type SchoolListResponse struct {
	Items []SchoolResponse `json:"items"`
	Page  PageResponse     `json:"page"`
}

// CreateClassroomRequest alta de aula. El código no se envía: se genera
// único por colegio a partir del nombre.
type CreateClassroomRequest struct {
	SchoolID    string `json:"school_id" validate:"required,uuid"`
	Name        string `json:"name" validate:"required,min=1,max=120"`
	Capacity    *int   `json:"capacity" validate:"omitempty,min=0"`
	Responsible string `json:"responsible" validate:"omitempty,max=200"`
	ImageURL    string `json:"image_url" validate:"omitempty,max=500"`
}

// UpdateClassroomRequest actualización parcial de aula. El código no cambia.
type UpdateClassroomRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=1,max=120"`
	Capacity    *int    `json:"capacity" validate:"omitempty,min=0"`
	Responsible *string `json:"responsible" validate:"omitempty,max=200"`
	ImageURL    *string `json:"image_url" validate:"omitempty,max=500"`
}

// ClassroomResponse salida de aula.
type ClassroomResponse struct {
	ID          string    `json:"id"`
	SchoolID    string    `json:"school_id"`
	Code        string    `json:"code"`
	Name        string    `json:"name"`
	Capacity    *int      `json:"capacity,omitempty"`
	Responsible string    `json:"responsible,omitempty"`
	ImageURL    string    `json:"image_url,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ClassroomListResponse lista paginada de aulas.
type ClassroomListResponse struct {
	Items []ClassroomResponse `json:"items"`
	Page  PageResponse        `json:"page"`
}

// ClassroomInventoryResponse resumen de inventario de un aula: conteo de
// activos por estado y valor estimado total.
type ClassroomInventoryResponse struct {
	ClassroomID string                `json:"classroom_id"`
	Name        string                `json:"name"`
	Code        string                `json:"code"`
	TotalAssets int                   `json:"total_assets"`
	ByStatus    []StatusCountResponse `json:"by_status"`
	TotalValue  decimal.Decimal       `json:"total_value"`
}
