package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/issaqr/inventory-qr-api/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo consultas read-only de reportería y dashboard sobre PostgreSQL.
// Los reportes de activos incluyen los soft-deleted creados en el rango: un
// activo dado de baja sigue siendo parte de la historia del periodo.
type ReportRepo struct {
	q Querier
}

// NewReportRepository construye el adaptador. Pasar pool o tx (Querier).
func NewReportRepository(q Querier) *ReportRepo {
	return &ReportRepo{q: q}
}

// assetFilter arma el WHERE común de los reportes de activos: rango sobre
// a.created_at y escuela vía el aula. End es exclusivo (el caller ya sumó el día).
func assetFilter(f repository.ReportFilter) (string, []any) {
	conds := []string{"1=1"}
	var args []any
	if f.Start != nil {
		args = append(args, *f.Start)
		conds = append(conds, fmt.Sprintf("a.created_at >= $%d", len(args)))
	}
	if f.End != nil {
		args = append(args, *f.End)
		conds = append(conds, fmt.Sprintf("a.created_at < $%d", len(args)))
	}
	if f.SchoolID != "" {
		args = append(args, f.SchoolID)
		conds = append(conds, fmt.Sprintf("c.school_id = $%d", len(args)))
	}
	return strings.Join(conds, " AND "), args
}

// incidentFilter ídem para incidentes: rango sobre i.reported_at, escuela vía
// activo → aula.
func incidentFilter(f repository.ReportFilter) (string, []any) {
	conds := []string{"1=1"}
	var args []any
	if f.Start != nil {
		args = append(args, *f.Start)
		conds = append(conds, fmt.Sprintf("i.reported_at >= $%d", len(args)))
	}
	if f.End != nil {
		args = append(args, *f.End)
		conds = append(conds, fmt.Sprintf("i.reported_at < $%d", len(args)))
	}
	if f.SchoolID != "" {
		args = append(args, f.SchoolID)
		conds = append(conds, fmt.Sprintf("c.school_id = $%d", len(args)))
	}
	return strings.Join(conds, " AND "), args
}

// ─────────────────────────────────────────────────────────────────────────────
// Activos
// ─────────────────────────────────────────────────────────────────────────────

func (r *ReportRepo) AssetTotals(ctx context.Context, f repository.ReportFilter) (int, decimal.Decimal, error) {
	where, args := assetFilter(f)
	query := fmt.Sprintf(`
		SELECT COUNT(*), COALESCE(SUM(a.value_estimate), 0)
		FROM assets a
		JOIN classrooms c ON c.id = a.classroom_id
		WHERE %s`, where)
	var count int
	var total decimal.Decimal
	if err := r.q.QueryRow(ctx, query, args...).Scan(&count, &total); err != nil {
		return 0, decimal.Zero, fmt.Errorf("asset totals: %w", err)
	}
	return count, total, nil
}

func (r *ReportRepo) AssetsByStatus(ctx context.Context, f repository.ReportFilter) ([]repository.AssetStatusCount, error) {
	where, args := assetFilter(f)
	query := fmt.Sprintf(`
		SELECT a.status, COUNT(*), COALESCE(SUM(a.value_estimate), 0)
		FROM assets a
		JOIN classrooms c ON c.id = a.classroom_id
		WHERE %s
		GROUP BY a.status
		ORDER BY COUNT(*) DESC`, where)
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("assets by status: %w", err)
	}
	defer rows.Close()

	var out []repository.AssetStatusCount
	for rows.Next() {
		var c repository.AssetStatusCount
		if err := rows.Scan(&c.Status, &c.Count, &c.TotalValue); err != nil {
			return nil, fmt.Errorf("scan status count: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *ReportRepo) AssetsByCategory(ctx context.Context, f repository.ReportFilter) ([]repository.AssetCategoryCount, error) {
	where, args := assetFilter(f)
	query := fmt.Sprintf(`
		SELECT COALESCE(cat.id::text, ''), COALESCE(cat.name, ''), COUNT(*), COALESCE(SUM(a.value_estimate), 0)
		FROM assets a
		JOIN classrooms c ON c.id = a.classroom_id
		LEFT JOIN asset_templates t ON t.id = a.template_id
		LEFT JOIN asset_categories cat ON cat.id = t.category_id
		WHERE %s
		GROUP BY cat.id, cat.name
		ORDER BY COUNT(*) DESC`, where)
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("assets by category: %w", err)
	}
	defer rows.Close()

	var out []repository.AssetCategoryCount
	for rows.Next() {
		var c repository.AssetCategoryCount
		if err := rows.Scan(&c.CategoryID, &c.CategoryName, &c.Count, &c.TotalValue); err != nil {
			return nil, fmt.Errorf("scan category count: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *ReportRepo) AssetsBySchool(ctx context.Context, f repository.ReportFilter) ([]repository.AssetSchoolCount, error) {
	where, args := assetFilter(f)
	query := fmt.Sprintf(`
		SELECT s.id, s.name, COUNT(*), COALESCE(SUM(a.value_estimate), 0)
		FROM assets a
		JOIN classrooms c ON c.id = a.classroom_id
		JOIN schools s ON s.id = c.school_id
		WHERE %s
		GROUP BY s.id, s.name
		ORDER BY COUNT(*) DESC`, where)
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("assets by school: %w", err)
	}
	defer rows.Close()

	var out []repository.AssetSchoolCount
	for rows.Next() {
		var c repository.AssetSchoolCount
		if err := rows.Scan(&c.SchoolID, &c.SchoolName, &c.Count, &c.TotalValue); err != nil {
			return nil, fmt.Errorf("scan school count: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *ReportRepo) AssetsWithoutTemplate(ctx context.Context, f repository.ReportFilter) (int, error) {
	where, args := assetFilter(f)
	query := fmt.Sprintf(`
		SELECT COUNT(*)
		FROM assets a
		JOIN classrooms c ON c.id = a.classroom_id
		WHERE %s AND a.template_id IS NULL`, where)
	var count int
	if err := r.q.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("assets without template: %w", err)
	}
	return count, nil
}

func (r *ReportRepo) TopValuedAssets(ctx context.Context, f repository.ReportFilter, limit int) ([]repository.TopAssetResult, error) {
	where, args := assetFilter(f)
	args = append(args, limit)
	query := fmt.Sprintf(`
		SELECT a.id, COALESCE(t.name, ''), a.serial_number, a.value_estimate, a.status, a.classroom_id
		FROM assets a
		JOIN classrooms c ON c.id = a.classroom_id
		LEFT JOIN asset_templates t ON t.id = a.template_id
		WHERE %s AND a.value_estimate IS NOT NULL
		ORDER BY a.value_estimate DESC
		LIMIT $%d`, where, len(args))
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("top valued assets: %w", err)
	}
	defer rows.Close()

	var out []repository.TopAssetResult
	for rows.Next() {
		var t repository.TopAssetResult
		if err := rows.Scan(&t.AssetID, &t.TemplateName, &t.SerialNumber, &t.ValueEstimate, &t.Status, &t.ClassroomID); err != nil {
			return nil, fmt.Errorf("scan top asset: %w", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// ─────────────────────────────────────────────────────────────────────────────
// Incidentes
// ─────────────────────────────────────────────────────────────────────────────

func (r *ReportRepo) IncidentsByStatus(ctx context.Context, f repository.ReportFilter) ([]repository.IncidentStatusCount, error) {
	where, args := incidentFilter(f)
	query := fmt.Sprintf(`
		SELECT i.status, COUNT(*)
		FROM incidents i
		JOIN assets a ON a.id = i.asset_id
		JOIN classrooms c ON c.id = a.classroom_id
		WHERE %s
		GROUP BY i.status
		ORDER BY COUNT(*) DESC`, where)
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("incidents by status: %w", err)
	}
	defer rows.Close()

	var out []repository.IncidentStatusCount
	for rows.Next() {
		var c repository.IncidentStatusCount
		if err := rows.Scan(&c.Status, &c.Count); err != nil {
			return nil, fmt.Errorf("scan incident count: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *ReportRepo) UnresolvedIncidents(ctx context.Context, f repository.ReportFilter) (int, error) {
	where, args := incidentFilter(f)
	query := fmt.Sprintf(`
		SELECT COUNT(*)
		FROM incidents i
		JOIN assets a ON a.id = i.asset_id
		JOIN classrooms c ON c.id = a.classroom_id
		WHERE %s AND i.status IN ('open', 'in_progress')`, where)
	var count int
	if err := r.q.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("unresolved incidents: %w", err)
	}
	return count, nil
}

// AverageResolutionHours promedio de horas entre reporte y resolución; nil si
// no hubo incidentes resueltos en el rango.
func (r *ReportRepo) AverageResolutionHours(ctx context.Context, f repository.ReportFilter) (*float64, error) {
	where, args := incidentFilter(f)
	query := fmt.Sprintf(`
		SELECT AVG(EXTRACT(EPOCH FROM (i.resolved_at - i.reported_at)) / 3600)
		FROM incidents i
		JOIN assets a ON a.id = i.asset_id
		JOIN classrooms c ON c.id = a.classroom_id
		WHERE %s AND i.resolved_at IS NOT NULL`, where)
	var avg *float64
	if err := r.q.QueryRow(ctx, query, args...).Scan(&avg); err != nil {
		return nil, fmt.Errorf("average resolution hours: %w", err)
	}
	return avg, nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Resúmenes
// ─────────────────────────────────────────────────────────────────────────────

// ClassroomInventory resume los activos vigentes (no soft-deleted) del aula.
func (r *ReportRepo) ClassroomInventory(ctx context.Context, classroomID string) (*repository.ClassroomInventorySummary, error) {
	query := `
		SELECT status, COUNT(*), COALESCE(SUM(value_estimate), 0)
		FROM assets
		WHERE classroom_id = $1 AND deleted_at IS NULL
		GROUP BY status
		ORDER BY COUNT(*) DESC`
	rows, err := r.q.Query(ctx, query, classroomID)
	if err != nil {
		return nil, fmt.Errorf("classroom inventory: %w", err)
	}
	defer rows.Close()

	summary := &repository.ClassroomInventorySummary{TotalValue: decimal.Zero}
	for rows.Next() {
		var c repository.AssetStatusCount
		if err := rows.Scan(&c.Status, &c.Count, &c.TotalValue); err != nil {
			return nil, fmt.Errorf("scan inventory count: %w", err)
		}
		summary.ByStatus = append(summary.ByStatus, c)
		summary.TotalCount += c.Count
		summary.TotalValue = summary.TotalValue.Add(c.TotalValue)
	}
	return summary, rows.Err()
}

// Dashboard conteos globales en una sola pasada.
func (r *ReportRepo) Dashboard(ctx context.Context) (*repository.DashboardCounts, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM schools WHERE deleted_at IS NULL),
			(SELECT COUNT(*) FROM classrooms WHERE deleted_at IS NULL),
			(SELECT COUNT(*) FROM assets WHERE deleted_at IS NULL),
			(SELECT COUNT(*) FROM incidents WHERE status IN ('open', 'in_progress')),
			(SELECT COUNT(*) FROM subscriptions WHERE status IN ('active', 'past_due'))`
	var d repository.DashboardCounts
	err := r.q.QueryRow(ctx, query).Scan(
		&d.Schools, &d.Classrooms, &d.ActiveAssets, &d.OpenIncidents, &d.ActiveSubscriptions,
	)
	if err != nil {
		return nil, fmt.Errorf("dashboard counts: %w", err)
	}
	return &d, nil
}

func (r *ReportRepo) SubscriptionsByStatus(ctx context.Context) (map[string]int, error) {
	query := `SELECT status, COUNT(*) FROM subscriptions GROUP BY status`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("subscriptions by status: %w", err)
	}
	defer rows.Close()

	out := make(map[string]int)
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("scan subscription count: %w", err)
		}
		out[status] = count
	}
	return out, rows.Err()
}
