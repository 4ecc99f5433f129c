// Package pdf genera el reporte imprimible del dashboard de ventas.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título + fecha de generación                        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESUMEN: Ventas totales / Tendencia / Tiendas activas       │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Top tiendas (nombre, total, variación)               │
//	│  TABLA: Top productos (nombre, total, variación)             │
//	│  TABLA: Participación por producto                           │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

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

	"github.com/jhoicas/retail-analytics-api/internal/application/analytics"
	"github.com/jhoicas/retail-analytics-api/internal/application/dto"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// Verificar en tiempo de compilación que implementa el puerto.
var _ analytics.ReportGenerator = (*MarotoReportGenerator)(nil)

// MarotoReportGenerator implementa analytics.ReportGenerator usando Maroto v2.
type MarotoReportGenerator struct{}

// NewMarotoReportGenerator construye el generador.
func NewMarotoReportGenerator() *MarotoReportGenerator { return &MarotoReportGenerator{} }

// GenerateDashboardReport genera el PDF y devuelve sus bytes.
func (g *MarotoReportGenerator) GenerateDashboardReport(_ context.Context, report *analytics.DashboardReport) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Reporte de ventas", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(report))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(summaryRow(report))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(sectionTitle("TOP TIENDAS"))
	m.AddRows(topTableHeader("Tienda"))
	for _, item := range report.TopStores {
		m.AddRows(topTableRow(item))
	}

	m.AddRows(line.NewRow(2))
	m.AddRows(sectionTitle("TOP PRODUCTOS"))
	m.AddRows(topTableHeader("Producto"))
	for _, item := range report.TopProducts {
		m.AddRows(topTableRow(item))
	}

	m.AddRows(line.NewRow(2))
	m.AddRows(sectionTitle("PARTICIPACIÓN POR PRODUCTO"))
	for _, share := range report.Products {
		m.AddRows(shareRow(share))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(report *analytics.DashboardReport) core.Row {
	return row.New(14).Add(
		col.New(8).Add(
			text.New("REPORTE DE VENTAS", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Período: "+report.Trending.Period, props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(4).Add(
			text.New("Generado: "+report.GeneratedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 1, Color: colorGray,
			}),
		),
	)
}

func summaryRow(report *analytics.DashboardReport) core.Row {
	return row.New(16).Add(
		summaryCol("Ventas de la semana", report.Total.Amount.StringFixed(2)),
		summaryCol("Tendencia", report.Trending.Trending.String()+" %"),
		summaryCol("Tiendas activas", report.Performance.Percentage.String()+" %"),
	)
}

func summaryCol(label, value string) core.Col {
	return col.New(4).Add(
		text.New(label, props.Text{Size: 8, Color: colorGray, Top: 1}),
		text.New(value, props.Text{Style: fontstyle.Bold, Size: 12, Top: 7}),
	)
}

func sectionTitle(title string) core.Row {
	return row.New(8).Add(
		col.New(12).Add(
			text.New(title, props.Text{
				Style: fontstyle.Bold, Size: 9, Color: colorPrimary, Top: 2,
			}),
		),
	)
}

func topTableHeader(entityLabel string) core.Row {
	return row.New(6).Add(
		col.New(6).Add(text.New(entityLabel, props.Text{Style: fontstyle.Bold, Size: 8})),
		col.New(3).Add(text.New("Total", props.Text{Style: fontstyle.Bold, Size: 8, Align: align.Right})),
		col.New(3).Add(text.New("Variación", props.Text{Style: fontstyle.Bold, Size: 8, Align: align.Right})),
	)
}

func topTableRow(item dto.TopItem) core.Row {
	return row.New(5).Add(
		col.New(6).Add(text.New(item.Name, props.Text{Size: 8})),
		col.New(3).Add(text.New(item.Value.StringFixed(2), props.Text{Size: 8, Align: align.Right})),
		col.New(3).Add(text.New(item.Change.String()+" %", props.Text{Size: 8, Align: align.Right})),
	)
}

func shareRow(share dto.ProductShare) core.Row {
	return row.New(5).Add(
		col.New(8).Add(text.New(share.ProductName, props.Text{Size: 8})),
		col.New(4).Add(text.New(share.Percentage.String()+" %", props.Text{Size: 8, Align: align.Right})),
	)
}
