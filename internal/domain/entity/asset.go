package entity

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// Estados canónicos de un activo. El valor legado "operational" de versiones
// anteriores del esquema se acepta como entrada y se normaliza a "available".
const (
	AssetStatusAvailable      = "available"
	AssetStatusInRepair       = "in_repair"
	AssetStatusMissing        = "missing"
	AssetStatusDecommissioned = "decommissioned"
)

// NormalizeAssetStatus normaliza alias legados y devuelve el estado canónico.
// El segundo retorno es false si el valor no pertenece al catálogo.
func NormalizeAssetStatus(s string) (string, bool) {
	switch s {
	case AssetStatusAvailable, AssetStatusInRepair, AssetStatusMissing, AssetStatusDecommissioned:
		return s, true
	case "operational": // alias legado
		return AssetStatusAvailable, true
	}
	return "", false
}

// AssetCategory categoría de activos (nombre único global).
type AssetCategory struct {
	ID          string
	Name        string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// AssetTemplate plantilla reutilizable de activo (fabricante, modelo), opcionalmente categorizada.
type AssetTemplate struct {
	ID           string
	Name         string
	Description  string
	CategoryID   *string
	Manufacturer string
	ModelNumber  string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Asset activo de inventario, pertenece a un aula. Soft delete vía DeletedAt;
// al eliminarse pasa a decommissioned y sale de los listados activos, pero su
// historial de eventos sigue consultable.
type Asset struct {
	ID            string
	TemplateID    *string
	ClassroomID   string
	CreatedByID   *string
	SerialNumber  string
	PurchaseDate  *time.Time
	ValueEstimate *decimal.Decimal
	ImageURL      string
	Status        string
	CreatedAt     time.Time
	UpdatedAt     time.Time
	DeletedAt     *time.Time
}

// Tipos de evento de activo (bitácora append-only).
const (
	AssetEventCreated          = "asset_created"
	AssetEventUpdated          = "asset_updated"
	AssetEventDeleted          = "asset_deleted"
	AssetEventIncidentReported = "incident_reported"
	AssetEventIncidentUpdated  = "incident_updated"
	AssetEventIncidentDeleted  = "incident_deleted"
)

// AssetEvent registro inmutable de auditoría de un activo. Metadata guarda el
// diff {campo: {old, new}} en actualizaciones.
type AssetEvent struct {
	ID         string
	AssetID    string
	UserID     *string // nil para eventos de sistema
	EventType  string
	Metadata   json.RawMessage
	OccurredAt time.Time
}
