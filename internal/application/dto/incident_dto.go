package dto

import "time"

// CreateIncidentRequest reporta una novedad sobre un activo.
type CreateIncidentRequest struct {
	AssetID     string `json:"asset_id" validate:"required,uuid"`
	Description string `json:"description" validate:"required,min=3,max=1000"`
	PhotoURL    string `json:"photo_url" validate:"omitempty,max=500"`
}

// UpdateIncidentRequest actualización parcial de incidencia. La primera
// transición a resolved/closed estampa resolved_at; las siguientes no.
type UpdateIncidentRequest struct {
	Description *string `json:"description" validate:"omitempty,min=3,max=1000"`
	PhotoURL    *string `json:"photo_url" validate:"omitempty,max=500"`
	Status      *string `json:"status" validate:"omitempty"`
}

// IncidentResponse salida de incidencia.
type IncidentResponse struct {
	ID          string     `json:"id"`
	AssetID     string     `json:"asset_id"`
	Description string     `json:"description"`
	PhotoURL    string     `json:"photo_url,omitempty"`
	Status      string     `json:"status"`
	ReportedBy  string     `json:"reported_by,omitempty"`
	ReportedAt  time.Time  `json:"reported_at"`
	ResolvedAt  *time.Time `json:"resolved_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// IncidentListResponse lista paginada de incidencias.
type IncidentListResponse struct {
	Items []IncidentResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}
