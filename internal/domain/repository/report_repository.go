package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// AssetStatusCount resultado crudo del conteo de activos por estado.
// Lo produce la DB; el use case lo convierte en DTO.
type AssetStatusCount struct {
	Status     string
	Count      int
	TotalValue decimal.Decimal
}

// AssetCategoryCount resultado crudo del conteo por categoría.
// CategoryID vacío agrupa los activos sin categoría.
type AssetCategoryCount struct {
	CategoryID   string
	CategoryName string
	Count        int
	TotalValue   decimal.Decimal
}

// AssetSchoolCount resultado crudo del conteo por escuela.
type AssetSchoolCount struct {
	SchoolID   string
	SchoolName string
	Count      int
	TotalValue decimal.Decimal
}

// TopAssetResult activo del ranking por valor estimado.
type TopAssetResult struct {
	AssetID       string
	TemplateName  string
	SerialNumber  string
	ValueEstimate decimal.Decimal
	Status        string
	ClassroomID   string
}

// IncidentStatusCount conteo de incidentes por estado.
type IncidentStatusCount struct {
	Status string
	Count  int
}

// ClassroomInventorySummary resumen de inventario de un aula.
type ClassroomInventorySummary struct {
	ByStatus   []AssetStatusCount
	TotalCount int
	TotalValue decimal.Decimal
}

// DashboardCounts conteos globales para el dashboard.
type DashboardCounts struct {
	Schools             int
	Classrooms          int
	ActiveAssets        int
	OpenIncidents       int
	ActiveSubscriptions int
}

// ReportFilter filtro común de los reportes. Fechas nil = sin límite
// (all_time); SchoolID vacío = todas las escuelas.
type ReportFilter struct {
	Start    *time.Time
	End      *time.Time
	SchoolID string
}

// ReportRepository define las consultas read-only de reportería y dashboard.
type ReportRepository interface {
	// ── Activos ───────────────────────────────────────────────────────────────
	AssetTotals(ctx context.Context, f ReportFilter) (count int, totalValue decimal.Decimal, err error)
	AssetsByStatus(ctx context.Context, f ReportFilter) ([]AssetStatusCount, error)
	AssetsByCategory(ctx context.Context, f ReportFilter) ([]AssetCategoryCount, error)
	AssetsBySchool(ctx context.Context, f ReportFilter) ([]AssetSchoolCount, error)
	AssetsWithoutTemplate(ctx context.Context, f ReportFilter) (int, error)
	TopValuedAssets(ctx context.Context, f ReportFilter, limit int) ([]TopAssetResult, error)

	// ── Incidentes ────────────────────────────────────────────────────────────
	IncidentsByStatus(ctx context.Context, f ReportFilter) ([]IncidentStatusCount, error)
	UnresolvedIncidents(ctx context.Context, f ReportFilter) (int, error)
	// AverageResolutionHours devuelve nil si no hay incidentes resueltos en el rango.
	AverageResolutionHours(ctx context.Context, f ReportFilter) (*float64, error)

	// ── Resúmenes ─────────────────────────────────────────────────────────────
	ClassroomInventory(ctx context.Context, classroomID string) (*ClassroomInventorySummary, error)
	Dashboard(ctx context.Context) (*DashboardCounts, error)
	// SubscriptionsByStatus conteo de suscripciones por estado (overview).
	SubscriptionsByStatus(ctx context.Context) (map[string]int, error)
}
