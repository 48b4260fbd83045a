package dto

import "github.com/shopspring/decimal"

// ReportRequest filtros comunes de reportes. El preset (today, week, month,
// quarter, year, all_time) tiene prioridad sobre start_date/end_date; sin
// nada se asume month.
type ReportRequest struct {
	Preset    string `query:"preset" validate:"omitempty,oneof=today week month quarter year all_time"`
	StartDate string `query:"start_date" validate:"omitempty,datetime=2006-01-02"`
	EndDate   string `query:"end_date" validate:"omitempty,datetime=2006-01-02"`
	SchoolID  string `query:"school_id" validate:"omitempty,uuid"`
}

// StatusCountResponse conteo por estado.
type StatusCountResponse struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
}

// CategoryCountResponse conteo y valor por categoría.
type CategoryCountResponse struct {
	CategoryID   string          `json:"category_id,omitempty"`
	CategoryName string          `json:"category_name"`
	Count        int             `json:"count"`
	TotalValue   decimal.Decimal `json:"total_value"`
}

// SchoolCountResponse conteo y valor por colegio.
type SchoolCountResponse struct {
	SchoolID   string          `json:"school_id"`
	SchoolName string          `json:"school_name"`
	Count      int             `json:"count"`
	TotalValue decimal.Decimal `json:"total_value"`
}

// TopAssetResponse activo del ranking por valor estimado.
type TopAssetResponse struct {
	AssetID       string          `json:"asset_id"`
	TemplateName  string          `json:"template_name,omitempty"`
	SerialNumber  string          `json:"serial_number,omitempty"`
	ValueEstimate decimal.Decimal `json:"value_estimate"`
	Status        string          `json:"status"`
	ClassroomID   string          `json:"classroom_id"`
}

// AssetReportResponse reporte agregado de activos.
type AssetReportResponse struct {
	Total           int                     `json:"total"`
	TotalValue      decimal.Decimal         `json:"total_value"`
	ByStatus        []StatusCountResponse   `json:"by_status"`
	ByCategory      []CategoryCountResponse `json:"by_category"`
	BySchool        []SchoolCountResponse   `json:"by_school"`
	WithoutTemplate int                     `json:"without_template"`
	TopValued       []TopAssetResponse      `json:"top_valued"`
}

// IncidentReportResponse reporte agregado de incidencias.
type IncidentReportResponse struct {
	ByStatus               []StatusCountResponse `json:"by_status"`
	Unresolved             int                   `json:"unresolved"`
	AverageResolutionHours *float64              `json:"average_resolution_hours,omitempty"`
}

// OverviewReportResponse reporte combinado con el corte de suscripciones.
type OverviewReportResponse struct {
	Assets        AssetReportResponse    `json:"assets"`
	Incidents     IncidentReportResponse `json:"incidents"`
	Subscriptions map[string]int         `json:"subscriptions"`
}

// DashboardResponse contadores globales del panel.
type DashboardResponse struct {
	Schools             int `json:"schools"`
	Classrooms          int `json:"classrooms"`
	ActiveAssets        int `json:"active_assets"`
	OpenIncidents       int `json:"open_incidents"`
	ActiveSubscriptions int `json:"active_subscriptions"`
}
