package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/issaqr/inventory-qr-api/internal/application/dto"
	"github.com/issaqr/inventory-qr-api/internal/application/report"
	"github.com/issaqr/inventory-qr-api/pkg/validate"
)

// ReportHandler reportería y dashboard (read-only).
type ReportHandler struct {
	uc *report.ReportUseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *report.ReportUseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

func parseReportRequest(c *fiber.Ctx) (dto.ReportRequest, error) {
	var in dto.ReportRequest
	if err := c.QueryParser(&in); err != nil {
		return in, err
	}
	if err := validate.Struct(in); err != nil {
		return in, err
	}
	return in, nil
}

// Assets godoc
// @Summary      Reporte agregado de activos para el rango o preset pedido
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        preset      query  string  false  "today|week|month|quarter|year|all_time (gana sobre fechas)"
// @Param        start_date  query  string  false  "YYYY-MM-DD"
// @Param        end_date    query  string  false  "YYYY-MM-DD (inclusive)"
// @Param        school_id   query  string  false  "Filtrar por colegio"
// @Success      200         {object}  dto.AssetReportResponse
// @Failure      400         {object}  dto.ErrorResponse
// @Router       /api/reports/assets [get]
func (h *ReportHandler) Assets(c *fiber.Ctx) error {
	in, err := parseReportRequest(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: validate.Message(err)})
	}
	out, err := h.uc.Assets(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Incidents godoc
// @Summary      Reporte agregado de incidencias
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        preset      query  string  false  "today|week|month|quarter|year|all_time"
// @Param        start_date  query  string  false  "YYYY-MM-DD"
// @Param        end_date    query  string  false  "YYYY-MM-DD (inclusive)"
// @Param        school_id   query  string  false  "Filtrar por colegio"
// @Success      200         {object}  dto.IncidentReportResponse
// @Router       /api/reports/incidents [get]
func (h *ReportHandler) Incidents(c *fiber.Ctx) error {
	in, err := parseReportRequest(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: validate.Message(err)})
	}
	out, err := h.uc.Incidents(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Overview godoc
// @Summary      Reporte combinado: activos + incidencias + suscripciones
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        preset      query  string  false  "today|week|month|quarter|year|all_time"
// @Param        start_date  query  string  false  "YYYY-MM-DD"
// @Param        end_date    query  string  false  "YYYY-MM-DD (inclusive)"
// @Param        school_id   query  string  false  "Filtrar por colegio"
// @Success      200         {object}  dto.OverviewReportResponse
// @Router       /api/reports/overview [get]
func (h *ReportHandler) Overview(c *fiber.Ctx) error {
	in, err := parseReportRequest(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: validate.Message(err)})
	}
	out, err := h.uc.Overview(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// AssetsPDF godoc
// @Summary      Exportar el reporte de activos como PDF
// @Tags         reports
// @Security     Bearer
// @Produce      application/pdf
// @Param        preset      query  string  false  "today|week|month|quarter|year|all_time"
// @Param        start_date  query  string  false  "YYYY-MM-DD"
// @Param        end_date    query  string  false  "YYYY-MM-DD (inclusive)"
// @Param        school_id   query  string  false  "Filtrar por colegio"
// @Success      200  {file}  binary
// @Router       /api/reports/assets/pdf [get]
func (h *ReportHandler) AssetsPDF(c *fiber.Ctx) error {
	in, err := parseReportRequest(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: validate.Message(err)})
	}
	data, err := h.uc.AssetsPDF(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="reporte-activos.pdf"`)
	return c.Send(data)
}

// Dashboard godoc
// @Summary      Contadores globales del panel
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.DashboardResponse
// @Router       /api/dashboard [get]
func (h *ReportHandler) Dashboard(c *fiber.Ctx) error {
	out, err := h.uc.Dashboard(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
