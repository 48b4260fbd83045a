package dto

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// ─────────────────────────────────────────────
// Categorías
// ─────────────────────────────────────────────

// CreateCategoryRequest alta de categoría (nombre único global).
type CreateCategoryRequest struct {
	Name        string `json:"name" validate:"required,min=2,max=120"`
	Description string `json:"description" validate:"omitempty,max=300"`
}

// CategoryResponse salida de categoría.
type CategoryResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// CategoryListResponse lista paginada de categorías.
type CategoryListResponse struct {
	Items []CategoryResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

// ─────────────────────────────────────────────
// Plantillas
// ─────────────────────────────────────────────

// CreateTemplateRequest alta de plantilla (modelo de equipo reutilizable).
type CreateTemplateRequest struct {
	Name         string  `json:"name" validate:"required,min=2,max=200"`
	Description  string  `json:"description" validate:"omitempty,max=500"`
	CategoryID   *string `json:"category_id" validate:"omitempty,uuid"`
	Manufacturer string  `json:"manufacturer" validate:"omitempty,max=120"`
	ModelNumber  string  `json:"model_number" validate:"omitempty,max=120"`
}

// TemplateResponse salida de plantilla.
type TemplateResponse struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description,omitempty"`
	CategoryID   *string   `json:"category_id,omitempty"`
	Manufacturer string    `json:"manufacturer,omitempty"`
	ModelNumber  string    `json:"model_number,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// TemplateListResponse lista paginada de plantillas.
type TemplateListResponse struct {
	Items []TemplateResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

// ─────────────────────────────────────────────
// Activos
// ─────────────────────────────────────────────

// CreateAssetRequest alta de activo. Al crearse se registra el evento
// asset_created y se genera su código QR 1:1.
type CreateAssetRequest struct {
	ClassroomID   string           `json:"classroom_id" validate:"required,uuid"`
	TemplateID    *string          `json:"template_id" validate:"omitempty,uuid"`
	SerialNumber  string           `json:"serial_number" validate:"omitempty,max=120"`
	PurchaseDate  *time.Time       `json:"purchase_date" validate:"omitempty"`
	ValueEstimate *decimal.Decimal `json:"value_estimate" validate:"omitempty"`
	ImageURL      string           `json:"image_url" validate:"omitempty,max=500"`
	Status        string           `json:"status" validate:"omitempty"`
}

// UpdateAssetRequest actualización parcial; cada campo que cambia genera
// una entrada {old, new} en el evento de auditoría.
type UpdateAssetRequest struct {
	ClassroomID   *string          `json:"classroom_id" validate:"omitempty,uuid"`
	TemplateID    *string          `json:"template_id" validate:"omitempty,uuid"`
	SerialNumber  *string          `json:"serial_number" validate:"omitempty,max=120"`
	PurchaseDate  *time.Time       `json:"purchase_date" validate:"omitempty"`
	ValueEstimate *decimal.Decimal `json:"value_estimate" validate:"omitempty"`
	ImageURL      *string          `json:"image_url" validate:"omitempty,max=500"`
	Status        *string          `json:"status" validate:"omitempty"`
}

// PatchAssetImageRequest actualiza solo la imagen del activo.
type PatchAssetImageRequest struct {
	ImageURL string `json:"image_url" validate:"required,max=500"`
}

// BulkUpdateAssetsRequest aplica la misma actualización parcial a varios
// activos. Los cambios se auditan por activo.
type BulkUpdateAssetsRequest struct {
	IDs    []string           `json:"ids" validate:"required,min=1,max=200,dive,uuid"`
	Update UpdateAssetRequest `json:"update" validate:"required"`
}

// BulkDeleteAssetsRequest soft delete masivo.
type BulkDeleteAssetsRequest struct {
	IDs []string `json:"ids" validate:"required,min=1,max=200,dive,uuid"`
}

// BulkResponse resultado de una operación masiva.
type BulkResponse struct {
	Processed int      `json:"processed"`
	Failed    []string `json:"failed,omitempty"`
}

// AssetResponse salida de activo.
type AssetResponse struct {
	ID            string           `json:"id"`
	ClassroomID   string           `json:"classroom_id"`
	TemplateID    *string          `json:"template_id,omitempty"`
	CreatedByID   *string          `json:"created_by_id,omitempty"`
	SerialNumber  string           `json:"serial_number,omitempty"`
	PurchaseDate  *time.Time       `json:"purchase_date,omitempty"`
	ValueEstimate *decimal.Decimal `json:"value_estimate,omitempty"`
	ImageURL      string           `json:"image_url,omitempty"`
	Status        string           `json:"status"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
}

// AssetListResponse lista paginada de activos.
type AssetListResponse struct {
	Items []AssetResponse `json:"items"`
	Page  PageResponse    `json:"page"`
}

// AssetEventResponse entrada del historial de auditoría de un activo.
type AssetEventResponse struct {
	ID         string          `json:"id"`
	AssetID    string          `json:"asset_id"`
	UserID     *string         `json:"user_id,omitempty"`
	EventType  string          `json:"event_type"`
	Metadata   json.RawMessage `json:"metadata,omitempty"`
	OccurredAt time.Time       `json:"occurred_at"`
}

// AssetEventListResponse historial paginado de auditoría.
type AssetEventListResponse struct {
	Items []AssetEventResponse `json:"items"`
	Page  PageResponse         `json:"page"`
}

// QRCodeResponse salida del código QR de un activo. QRURL es la imagen PNG
// como data URI base64; Payload es el JSON {asset_id, asset_url}.
type QRCodeResponse struct {
	ID      string          `json:"id"`
	AssetID string          `json:"asset_id"`
	QRURL   string          `json:"qr_url"`
	Payload json.RawMessage `json:"payload"`
}
