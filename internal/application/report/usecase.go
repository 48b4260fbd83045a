package report

import (
	"context"
	"time"

	"github.com/issaqr/inventory-qr-api/internal/application/dto"
	"github.com/issaqr/inventory-qr-api/internal/domain"
	"github.com/issaqr/inventory-qr-api/internal/domain/repository"
)

const topValuedLimit = 10

// PDFGenerator renderiza el reporte de activos como PDF.
type PDFGenerator interface {
	GenerateAssetsReport(ctx context.Context, report *dto.AssetReportResponse, periodLabel string) ([]byte, error)
}

// ReportUseCase reportería read-only: agregados de activos e incidencias,
// overview combinado, dashboard y exportación PDF.
type ReportUseCase struct {
	repo repository.ReportRepository
	pdf  PDFGenerator
	now  func() time.Time
}

// NewReportUseCase construye el caso de uso. pdf puede ser nil si la
// exportación no está habilitada.
func NewReportUseCase(repo repository.ReportRepository, pdf PDFGenerator) *ReportUseCase {
	return &ReportUseCase{repo: repo, pdf: pdf, now: time.Now}
}

// Assets reporte agregado de activos para el rango pedido.
func (uc *ReportUseCase) Assets(ctx context.Context, in dto.ReportRequest) (*dto.AssetReportResponse, error) {
	filter, err := uc.buildFilter(in)
	if err != nil {
		return nil, err
	}
	return uc.assetsReport(ctx, filter)
}

// Incidents reporte agregado de incidencias para el rango pedido.
func (uc *ReportUseCase) Incidents(ctx context.Context, in dto.ReportRequest) (*dto.IncidentReportResponse, error) {
	filter, err := uc.buildFilter(in)
	if err != nil {
		return nil, err
	}
	return uc.incidentsReport(ctx, filter)
}

// Overview combina activos, incidencias y el corte de suscripciones. Los
// dos reportes se consultan en paralelo; son consultas independientes.
func (uc *ReportUseCase) Overview(ctx context.Context, in dto.ReportRequest) (*dto.OverviewReportResponse, error) {
	filter, err := uc.buildFilter(in)
	if err != nil {
		return nil, err
	}

	type assetsResult struct {
		report *dto.AssetReportResponse
		err    error
	}
	type incidentsResult struct {
		report *dto.IncidentReportResponse
		err    error
	}
	assetsCh := make(chan assetsResult, 1)
	incidentsCh := make(chan incidentsResult, 1)

	go func() {
		r, err := uc.assetsReport(ctx, filter)
		assetsCh <- assetsResult{r, err}
	}()
	go func() {
		r, err := uc.incidentsReport(ctx, filter)
		incidentsCh <- incidentsResult{r, err}
	}()

	subs, err := uc.repo.SubscriptionsByStatus(ctx)
	if err != nil {
		return nil, err
	}
	assets := <-assetsCh
	if assets.err != nil {
		return nil, assets.err
	}
	incidents := <-incidentsCh
	if incidents.err != nil {
		return nil, incidents.err
	}
	return &dto.OverviewReportResponse{
		Assets:        *assets.report,
		Incidents:     *incidents.report,
		Subscriptions: subs,
	}, nil
}

// AssetsPDF exporta el reporte de activos como PDF.
func (uc *ReportUseCase) AssetsPDF(ctx context.Context, in dto.ReportRequest) ([]byte, error) {
	if uc.pdf == nil {
		return nil, domain.ErrNotFound
	}
	filter, err := uc.buildFilter(in)
	if err != nil {
		return nil, err
	}
	report, err := uc.assetsReport(ctx, filter)
	if err != nil {
		return nil, err
	}
	return uc.pdf.GenerateAssetsReport(ctx, report, periodLabel(filter))
}

// Dashboard contadores globales del panel.
func (uc *ReportUseCase) Dashboard(ctx context.Context) (*dto.DashboardResponse, error) {
	counts, err := uc.repo.Dashboard(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.DashboardResponse{
		Schools:             counts.Schools,
		Classrooms:          counts.Classrooms,
		ActiveAssets:        counts.ActiveAssets,
		OpenIncidents:       counts.OpenIncidents,
		ActiveSubscriptions: counts.ActiveSubscriptions,
	}, nil
}

func (uc *ReportUseCase) assetsReport(ctx context.Context, f repository.ReportFilter) (*dto.AssetReportResponse, error) {
	total, totalValue, err := uc.repo.AssetTotals(ctx, f)
	if err != nil {
		return nil, err
	}
	byStatus, err := uc.repo.AssetsByStatus(ctx, f)
	if err != nil {
		return nil, err
	}
	byCategory, err := uc.repo.AssetsByCategory(ctx, f)
	if err != nil {
		return nil, err
	}
	bySchool, err := uc.repo.AssetsBySchool(ctx, f)
	if err != nil {
		return nil, err
	}
	withoutTemplate, err := uc.repo.AssetsWithoutTemplate(ctx, f)
	if err != nil {
		return nil, err
	}
	topValued, err := uc.repo.TopValuedAssets(ctx, f, topValuedLimit)
	if err != nil {
		return nil, err
	}

	out := &dto.AssetReportResponse{
		Total:           total,
		TotalValue:      totalValue,
		WithoutTemplate: withoutTemplate,
		ByStatus:        make([]dto.StatusCountResponse, 0, len(byStatus)),
		ByCategory:      make([]dto.CategoryCountResponse, 0, len(byCategory)),
		BySchool:        make([]dto.SchoolCountResponse, 0, len(bySchool)),
		TopValued:       make([]dto.TopAssetResponse, 0, len(topValued)),
	}
	for _, sc := range byStatus {
		out.ByStatus = append(out.ByStatus, dto.StatusCountResponse{Status: sc.Status, Count: sc.Count})
	}
	for _, cc := range byCategory {
		name := cc.CategoryName
		if cc.CategoryID == "" {
			name = "sin categoría"
		}
		out.ByCategory = append(out.ByCategory, dto.CategoryCountResponse{
			CategoryID:   cc.CategoryID,
			CategoryName: name,
			Count:        cc.Count,
			TotalValue:   cc.TotalValue,
		})
	}
	for _, sc := range bySchool {
		out.BySchool = append(out.BySchool, dto.SchoolCountResponse{
			SchoolID:   sc.SchoolID,
			SchoolName: sc.SchoolName,
			Count:      sc.Count,
			TotalValue: sc.TotalValue,
		})
	}
	for _, ta := range topValued {
		out.TopValued = append(out.TopValued, dto.TopAssetResponse{
			AssetID:       ta.AssetID,
			TemplateName:  ta.TemplateName,
			SerialNumber:  ta.SerialNumber,
			ValueEstimate: ta.ValueEstimate,
			Status:        ta.Status,
			ClassroomID:   ta.ClassroomID,
		})
	}
	return out, nil
}

func (uc *ReportUseCase) incidentsReport(ctx context.Context, f repository.ReportFilter) (*dto.IncidentReportResponse, error) {
	byStatus, err := uc.repo.IncidentsByStatus(ctx, f)
	if err != nil {
		return nil, err
	}
	unresolved, err := uc.repo.UnresolvedIncidents(ctx, f)
	if err != nil {
		return nil, err
	}
	avgHours, err := uc.repo.AverageResolutionHours(ctx, f)
	if err != nil {
		return nil, err
	}
	out := &dto.IncidentReportResponse{
		Unresolved:             unresolved,
		AverageResolutionHours: avgHours,
		ByStatus:               make([]dto.StatusCountResponse, 0, len(byStatus)),
	}
	for _, sc := range byStatus {
		out.ByStatus = append(out.ByStatus, dto.StatusCountResponse{Status: sc.Status, Count: sc.Count})
	}
	return out, nil
}

// buildFilter resuelve el rango: el preset manda sobre fechas explícitas;
// sin nada se asume month. all_time deja el rango abierto.
func (uc *ReportUseCase) buildFilter(in dto.ReportRequest) (repository.ReportFilter, error) {
	f := repository.ReportFilter{SchoolID: in.SchoolID}
	preset := in.Preset
	if preset == "" && in.StartDate == "" && in.EndDate == "" {
		preset = "month"
	}
	if preset != "" {
		start, ok := presetStart(preset, uc.now())
		if !ok {
			return f, domain.ErrInvalidInput
		}
		f.Start = start
		return f, nil
	}
	if in.StartDate != "" {
		start, err := time.Parse("2006-01-02", in.StartDate)
		if err != nil {
			return f, domain.ErrInvalidInput
		}
		f.Start = &start
	}
	if in.EndDate != "" {
		end, err := time.Parse("2006-01-02", in.EndDate)
		if err != nil {
			return f, domain.ErrInvalidInput
		}
		// Límite exclusivo: el día final entra completo.
		end = end.AddDate(0, 0, 1)
		f.End = &end
	}
	if f.Start != nil && f.End != nil && f.End.Before(*f.Start) {
		return f, domain.ErrInvalidInput
	}
	return f, nil
}

// presetStart devuelve el inicio del rango para un preset; nil para all_time.
func presetStart(preset string, now time.Time) (*time.Time, bool) {
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	var start time.Time
	switch preset {
	case "today":
		start = day
	case "week":
		start = day.AddDate(0, 0, -7)
	case "month":
		start = day.AddDate(0, -1, 0)
	case "quarter":
		start = day.AddDate(0, -3, 0)
	case "year":
		start = day.AddDate(-1, 0, 0)
	case "all_time":
		return nil, true
	default:
		return nil, false
	}
	return &start, true
}

// periodLabel etiqueta humana del rango para el encabezado del PDF.
func periodLabel(f repository.ReportFilter) string {
	const layout = "2006-01-02"
	switch {
	case f.Start == nil && f.End == nil:
		return "histórico completo"
	case f.End == nil:
		return "desde " + f.Start.Format(layout)
	case f.Start == nil:
		return "hasta " + f.End.Format(layout)
	default:
		return f.Start.Format(layout) + " a " + f.End.AddDate(0, 0, -1).Format(layout)
	}
}
