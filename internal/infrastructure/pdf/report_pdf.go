// Package pdf genera la versión imprimible de un relatório (Análise Detalhada).
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Análise Detalhada   │  <métrica> por <agrupamento>  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  AVISO (opcional)                                            │
//	│  TABLA: <agrupamento> | <métrica>                            │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: número de filas                                     │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
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

	"github.com/jhoicas/painel-vendas/internal/application/dto"
	"github.com/jhoicas/painel-vendas/internal/application/ports"
)

var _ ports.ReportExporter = (*ReportPDF)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
	colorStripe  = &props.Color{Red: 240, Green: 244, Blue: 248}
)

const msgEmpty = "Nenhum dado encontrado para os filtros selecionados."

// ReportPDF exportador PDF con Maroto v2. Los números se formatean en pt-BR.
type ReportPDF struct {
	author  string
	printer *message.Printer
}

// NewReportPDF construye el exportador; author aparece en los metadatos (nombre de la marca).
func NewReportPDF(author string) *ReportPDF {
	return &ReportPDF{
		author:  nonEmpty(author, "Painel de Vendas"),
		printer: message.NewPrinter(language.BrazilianPortuguese),
	}
}

func (g *ReportPDF) Format() string      { return "pdf" }
func (g *ReportPDF) ContentType() string { return "application/pdf" }

// Export genera el PDF y devuelve sus bytes.
func (g *ReportPDF) Export(report *dto.ReportDTO) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Análise Detalhada", true).
		WithAuthor(g.author, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(report))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	if report.Warning != "" {
		m.AddRows(row.New(7).Add(col.New(12).Add(
			text.New(report.Warning, props.Text{Size: 8, Style: fontstyle.Italic, Color: colorGray, Top: 1}),
		)))
	}

	m.AddRows(tableHeaderRow(report))
	if len(report.Rows) == 0 {
		m.AddRows(row.New(10).Add(col.New(12).Add(
			text.New(msgEmpty, props.Text{Size: 9, Align: align.Center, Color: colorGray, Top: 3}),
		)))
	}
	m.AddRows(g.tableRows(report)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(row.New(6).Add(col.New(12).Add(
		text.New(g.printer.Sprintf("%d linha(s)", len(report.Rows)), props.Text{
			Size: 7, Align: align.Right, Color: colorGray, Top: 1,
		}),
	)))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(report *dto.ReportDTO) core.Row {
	return row.New(16).Add(
		col.New(6).Add(
			text.New("Análise Detalhada", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
		),
		col.New(6).Add(
			text.New(report.MetricLabel, props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Top: 1,
			}),
			text.New("por "+report.GroupHeader, props.Text{
				Size: 8, Align: align.Right, Top: 7, Color: colorGray,
			}),
		),
	)
}

func tableHeaderRow(report *dto.ReportDTO) core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorWhite, Top: 1.5, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h(report.GroupHeader, 8, align.Left),
		h(report.MetricLabel, 4, align.Right),
	).WithStyle(&props.Cell{BackgroundColor: colorPrimary})
}

func (g *ReportPDF) tableRows(report *dto.ReportDTO) []core.Row {
	out := make([]core.Row, 0, len(report.Rows))
	for i, p := range report.Rows {
		r := row.New(7).Add(
			col.New(8).Add(text.New(p.Name, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(4).Add(text.New(g.formatValue(p.Value), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		)
		if i%2 == 1 {
			r.WithStyle(&props.Cell{BackgroundColor: colorStripe})
		}
		out = append(out, r)
	}
	return out
}

// ── helpers ───────────────────────────────────────────────────────────────────

// formatValue enteros sin decimales ("1.234"), el resto con dos ("1.520,75").
func (g *ReportPDF) formatValue(v decimal.Decimal) string {
	if v.IsInteger() {
		return g.printer.Sprintf("%d", v.IntPart())
	}
	return g.printer.Sprintf("%.2f", v.InexactFloat64())
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
