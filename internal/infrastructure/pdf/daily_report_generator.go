// Package pdf genera el reporte de cierre diario de la panadería.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Nombre del negocio  │  Fecha + hora de generación  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  KPIs: Ventas | N° ventas | Ticket promedio | Cajas cerradas│
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Día | Ventas | % de la semana (últimos 7 días)      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  STOCK BAJO: Ingrediente | Cantidad | Mínimo                │
//	│  FOOTER: alertas activas                                    │
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
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/jhoicas/panaderia-ops/internal/application/analytics"
	"github.com/jhoicas/panaderia-ops/internal/application/dto"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 122, Green: 62, Blue: 28}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorAlert   = &props.Color{Red: 176, Green: 32, Blue: 32}
)

var _ analytics.ReportGenerator = (*DailyReportGenerator)(nil)

// ── Generator ─────────────────────────────────────────────────────────────────

// DailyReportGenerator implementa analytics.ReportGenerator usando Maroto v2.
type DailyReportGenerator struct {
	businessName string
	printer      *message.Printer
}

// NewDailyReportGenerator construye el generador. lang define separadores de miles.
func NewDailyReportGenerator(businessName string, lang language.Tag) *DailyReportGenerator {
	return &DailyReportGenerator{businessName: businessName, printer: message.NewPrinter(lang)}
}

// DailyReport genera el PDF y devuelve sus bytes.
func (g *DailyReportGenerator) DailyReport(_ context.Context, r *analytics.DailyReport) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Cierre diario "+r.Summary.Date, true).
		WithAuthor(g.businessName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.headerRow(r))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(g.kpiRow(r.Summary))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(sectionTitle("VENTAS ÚLTIMOS 7 DÍAS"))
	m.AddRows(g.chartRows(r.Chart)...)

	m.AddRows(line.NewRow(3))
	m.AddRows(sectionTitle("INGREDIENTES EN STOCK BAJO"))
	m.AddRows(g.lowStockRows(r.LowStock)...)

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(alertsFooter(r.ActiveAlerts))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func (g *DailyReportGenerator) headerRow(r *analytics.DailyReport) core.Row {
	return row.New(16).Add(
		col.New(7).Add(
			text.New(g.businessName, props.Text{Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1}),
			text.New("Cierre diario de operación", props.Text{Size: 9, Top: 9, Color: colorGray}),
		),
		col.New(5).Add(
			text.New(r.Summary.Date, props.Text{Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 1}),
			text.New("Generado: "+r.GeneratedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 9, Color: colorGray,
			}),
		),
	)
}

// kpiRow: cuatro tarjetas con los KPIs del día.
func (g *DailyReportGenerator) kpiRow(s dto.DaySummaryDTO) core.Row {
	card := func(label, value string) core.Col {
		return col.New(3).Add(
			text.New(label, props.Text{Size: 7, Color: colorGray, Align: align.Center, Top: 1}),
			text.New(value, props.Text{Style: fontstyle.Bold, Size: 12, Align: align.Center, Top: 6}),
		)
	}
	return row.New(16).Add(
		card("VENTAS DEL DÍA", g.money(s.Revenue)),
		card("N° DE VENTAS", g.printer.Sprint(number.Decimal(s.Count))),
		card("TICKET PROMEDIO", g.money(s.AvgTicket)),
		card("CAJAS CERRADAS", g.printer.Sprint(number.Decimal(s.ClosedCount))),
	)
}

func (g *DailyReportGenerator) chartRows(points []dto.SalesChartPointDTO) []core.Row {
	week := decimal.Zero
	for _, p := range points {
		week = week.Add(p.Total)
	}

	rows := []core.Row{tableHeader([]string{"Día", "Fecha", "Ventas", "% semana"}, []int{3, 3, 3, 3})}
	for _, p := range points {
		share := "0%"
		if week.IsPositive() {
			share = p.Total.Div(week).Mul(decimal.NewFromInt(100)).StringFixed(0) + "%"
		}
		rows = append(rows, row.New(6).Add(
			col.New(3).Add(text.New(p.Label, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(3).Add(text.New(p.Date, props.Text{Size: 8, Top: 1, Color: colorGray})),
			col.New(3).Add(text.New(g.money(p.Total), props.Text{Size: 8, Align: align.Right, Top: 1})),
			col.New(3).Add(text.New(share, props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		))
	}
	rows = append(rows, row.New(7).Add(
		col.New(6).Add(text.New("Total semana", props.Text{Style: fontstyle.Bold, Size: 9, Top: 1, Left: 1})),
		col.New(3).Add(text.New(g.money(week), props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Top: 1})),
		col.New(3),
	))
	return rows
}

func (g *DailyReportGenerator) lowStockRows(items []dto.IngredientDTO) []core.Row {
	if len(items) == 0 {
		return []core.Row{row.New(7).Add(col.New(12).Add(
			text.New("Sin ingredientes por debajo del mínimo.", props.Text{Size: 8, Top: 1, Color: colorGray}),
		))}
	}
	rows := []core.Row{tableHeader([]string{"Ingrediente", "Cantidad", "Mínimo"}, []int{6, 3, 3})}
	for _, it := range items {
		rows = append(rows, row.New(6).Add(
			col.New(6).Add(text.New(it.Name, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(3).Add(text.New(it.StockQuantity.String()+" "+it.Unit, props.Text{
				Size: 8, Align: align.Right, Top: 1, Color: colorAlert,
			})),
			col.New(3).Add(text.New(it.MinStock.String()+" "+it.Unit, props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		))
	}
	return rows
}

func alertsFooter(active int) core.Row {
	msg := "Sin alertas activas."
	color := colorGray
	if active > 0 {
		msg = fmt.Sprintf("Alertas activas pendientes de resolver: %d", active)
		color = colorAlert
	}
	return row.New(8).Add(col.New(12).Add(
		text.New(msg, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Center, Color: color, Top: 2}),
	))
}

func sectionTitle(title string) core.Row {
	return row.New(7).Add(col.New(12).Add(
		text.New(title, props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 2}),
	))
}

func tableHeader(labels []string, sizes []int) core.Row {
	cols := make([]core.Col, 0, len(labels))
	for i, l := range labels {
		cols = append(cols, col.New(sizes[i]).Add(text.New(l, props.Text{
			Style: fontstyle.Bold, Size: 8, Top: 1, Left: 1, Color: colorPrimary,
		})))
	}
	return row.New(6).Add(cols...)
}

// ── helpers ───────────────────────────────────────────────────────────────────

// money formatea sin decimales con el separador de miles del idioma ("$25.000" en es).
func (g *DailyReportGenerator) money(d decimal.Decimal) string {
	return "$" + g.printer.Sprint(number.Decimal(d.Round(0).IntPart()))
}
