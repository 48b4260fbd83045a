// Package pdf renderiza el reporte de inventario como documento A4 con Maroto.
//
// Layout de la página:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título + periodo + fecha de generación             │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESUMEN: total de activos / valor estimado total           │
//	│  TABLA: activos por estado                                  │
//	│  TABLA: activos por categoría                               │
//	│  TABLA: activos por colegio                                 │
//	│  TABLA: top activos por valor                               │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/issaqr/inventory-qr-api/internal/application/dto"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// ReportGenerator implementa report.PDFGenerator usando Maroto v2.
type ReportGenerator struct{}

// NewReportGenerator construye el generador.
func NewReportGenerator() *ReportGenerator { return &ReportGenerator{} }

// GenerateAssetsReport genera el PDF del reporte y devuelve sus bytes.
func (g *ReportGenerator) GenerateAssetsReport(
	_ context.Context,
	report *dto.AssetReportResponse,
	periodLabel string,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Reporte de Inventario", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(periodLabel))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(summaryRow(report))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(sectionTitle("ACTIVOS POR ESTADO"))
	for _, s := range report.ByStatus {
		m.AddRows(countRow(s.Status, s.Count, ""))
	}

	m.AddRows(sectionTitle("ACTIVOS POR CATEGORÍA"))
	for _, c := range report.ByCategory {
		m.AddRows(countRow(c.CategoryName, c.Count, "$"+c.TotalValue.StringFixed(2)))
	}

	m.AddRows(sectionTitle("ACTIVOS POR COLEGIO"))
	for _, s := range report.BySchool {
		m.AddRows(countRow(s.SchoolName, s.Count, "$"+s.TotalValue.StringFixed(2)))
	}

	if len(report.TopValued) > 0 {
		m.AddRows(sectionTitle("ACTIVOS DE MAYOR VALOR"))
		m.AddRows(topHeaderRow())
		for _, a := range report.TopValued {
			m.AddRows(topAssetRow(a))
		}
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: título (izq) + periodo y fecha de generación (der).
func headerRow(periodLabel string) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New("REPORTE DE INVENTARIO", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Activos escolares", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("Periodo: "+periodLabel, props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Right, Top: 3,
			}),
			text.New("Generado: "+time.Now().Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 10, Color: colorGray,
			}),
		),
	)
}

// summaryRow: totales generales del periodo.
func summaryRow(report *dto.AssetReportResponse) core.Row {
	return row.New(14).Add(
		col.New(4).Add(
			text.New("Total de activos", props.Text{Size: 8, Color: colorGray, Top: 1}),
			text.New(fmt.Sprintf("%d", report.Total), props.Text{
				Style: fontstyle.Bold, Size: 12, Top: 6, Color: colorPrimary,
			}),
		),
		col.New(4).Add(
			text.New("Valor estimado total", props.Text{Size: 8, Color: colorGray, Top: 1}),
			text.New("$"+report.TotalValue.StringFixed(2), props.Text{
				Style: fontstyle.Bold, Size: 12, Top: 6, Color: colorPrimary,
			}),
		),
		col.New(4).Add(
			text.New("Sin plantilla", props.Text{Size: 8, Color: colorGray, Top: 1}),
			text.New(fmt.Sprintf("%d", report.WithoutTemplate), props.Text{
				Style: fontstyle.Bold, Size: 12, Top: 6, Color: colorPrimary,
			}),
		),
	)
}

func sectionTitle(title string) core.Row {
	return row.New(9).Add(col.New(12).Add(
		text.New(title, props.Text{
			Style: fontstyle.Bold, Size: 9, Color: colorPrimary, Top: 3,
		}),
	))
}

// countRow: fila etiqueta | conteo | valor (valor opcional).
func countRow(label string, count int, value string) core.Row {
	cols := []core.Col{
		col.New(6).Add(text.New(label, props.Text{Size: 8, Top: 1, Left: 2})),
		col.New(3).Add(text.New(fmt.Sprintf("%d", count), props.Text{
			Size: 8, Align: align.Right, Top: 1,
		})),
	}
	if value != "" {
		cols = append(cols, col.New(3).Add(text.New(value, props.Text{
			Size: 8, Align: align.Right, Top: 1, Right: 1,
		})))
	}
	return row.New(6).Add(cols...)
}

func topHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Top: 1, Left: 1, Right: 1,
		}))
	}
	return row.New(7).Add(
		h("Plantilla", 4, align.Left),
		h("N° Serie", 3, align.Left),
		h("Estado", 2, align.Center),
		h("Valor", 3, align.Right),
	)
}

func topAssetRow(a dto.TopAssetResponse) core.Row {
	return row.New(6).Add(
		col.New(4).Add(text.New(
			nonEmpty(a.TemplateName, "—"),
			props.Text{Size: 8, Top: 1, Left: 1},
		)),
		col.New(3).Add(text.New(
			nonEmpty(a.SerialNumber, "—"),
			props.Text{Size: 8, Top: 1, Left: 1},
		)),
		col.New(2).Add(text.New(
			a.Status,
			props.Text{Size: 8, Align: align.Center, Top: 1},
		)),
		col.New(3).Add(text.New(
			"$"+a.ValueEstimate.StringFixed(2),
			props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
		)),
	)
}

func nonEmpty(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
