// Package pdf genera el PDF de los informes con Maroto v2.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  CABECERA: título del informe + período                      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESUMEN: una fila por línea (proyección en rojo, bonus     │
//	│           en verde)                                         │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: columnas según el tipo de informe                   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  PIE: "Gerado em dd/MM/yyyy HH:mm"                           │
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

	"github.com/jhoicas/gestor-notas-api/internal/application/ports"
	"github.com/jhoicas/gestor-notas-api/internal/domain/report"
)

var _ ports.ReportPDFRenderer = (*ReportRenderer)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorProjected = &props.Color{Red: 220, Green: 38, Blue: 38}
	colorBonus     = &props.Color{Red: 34, Green: 197, Blue: 94}
	colorHead      = &props.Color{Red: 66, Green: 66, Blue: 66}
	colorGray      = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorZebra     = &props.Color{Red: 245, Green: 245, Blue: 245}
	colorWhite     = &props.Color{Red: 255, Green: 255, Blue: 255}
)

const gridSize = 12

// ReportRenderer implementa ports.ReportPDFRenderer. Solo dibuja lo que trae el informe.
type ReportRenderer struct {
	author string
}

// NewReportRenderer construye el renderer; author va a los metadatos del PDF.
func NewReportRenderer(author string) *ReportRenderer {
	return &ReportRenderer{author: author}
}

// Render genera el PDF y devuelve sus bytes.
func (g *ReportRenderer) Render(r *report.Report) ([]byte, error) {
	if r == nil {
		return nil, fmt.Errorf("pdf: informe nil")
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(12).WithRightMargin(12).
		WithTopMargin(12).WithBottomMargin(12).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(r.Title, true).
		WithAuthor(g.author, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRows(r)...)
	m.AddRows(line.NewRow(2, props.Line{Color: colorHead, Thickness: 0.4}))
	m.AddRows(summaryRows(r.Summary)...)
	m.AddRows(line.NewRow(4))
	if len(r.Table.Rows) > 0 {
		m.AddRows(tableRows(r.Table)...)
	} else {
		m.AddRows(row.New(10).Add(col.New(gridSize).Add(
			text.New("Sem registos no período.", props.Text{Size: 9, Align: align.Center, Color: colorGray, Top: 3}),
		)))
	}
	m.AddRows(line.NewRow(4))
	m.AddRows(row.New(6).Add(col.New(gridSize).Add(
		text.New("Gerado em "+r.GeneratedAt.Format("02/01/2006 15:04"), props.Text{
			Size: 7, Align: align.Right, Color: colorGray,
		}),
	)))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRows(r *report.Report) []core.Row {
	return []core.Row{
		row.New(10).Add(col.New(gridSize).Add(
			text.New(r.Heading, props.Text{Style: fontstyle.Bold, Size: 14, Align: align.Center, Top: 1}),
		)),
		row.New(7).Add(col.New(gridSize).Add(
			text.New(r.PeriodLabel, props.Text{Size: 10, Align: align.Center, Color: colorGray, Top: 1}),
		)),
	}
}

// summaryRows: la proyección va en una caja roja; el bonus en verde.
func summaryRows(lines []report.SummaryLine) []core.Row {
	out := make([]core.Row, 0, len(lines))
	for _, l := range lines {
		style := props.Text{Size: 10, Top: 2, Left: 2}
		valueStyle := props.Text{Size: 10, Top: 2, Right: 2, Align: align.Right, Style: fontstyle.Bold}
		r := row.New(8)
		switch l.Tone {
		case report.ToneProjected:
			style.Color, valueStyle.Color = colorWhite, colorWhite
			style.Style = fontstyle.Bold
			r.WithStyle(&props.Cell{BackgroundColor: colorProjected})
		case report.ToneBonus:
			style.Color, valueStyle.Color = colorBonus, colorBonus
		}
		out = append(out, r.Add(
			col.New(8).Add(text.New(l.Label, style)),
			col.New(4).Add(text.New(l.Display, valueStyle)),
		))
	}
	return out
}

func tableRows(t report.Table) []core.Row {
	sizes := columnSizes(len(t.Columns))
	out := make([]core.Row, 0, len(t.Rows)+1)

	head := make([]core.Col, len(t.Columns))
	for i, c := range t.Columns {
		head[i] = col.New(sizes[i]).Add(text.New(c, props.Text{
			Style: fontstyle.Bold, Size: 8, Color: colorWhite, Top: 2, Left: 1, Right: 1,
		}))
	}
	out = append(out, row.New(8).Add(head...).WithStyle(&props.Cell{BackgroundColor: colorHead}))

	for n, cells := range t.Rows {
		cols := make([]core.Col, len(sizes))
		for i := range sizes {
			v := ""
			if i < len(cells) {
				v = cells[i]
			}
			cols[i] = col.New(sizes[i]).Add(text.New(v, props.Text{Size: 8, Top: 1.5, Left: 1, Right: 1}))
		}
		r := row.New(7).Add(cols...)
		if n%2 == 1 {
			r.WithStyle(&props.Cell{BackgroundColor: colorZebra})
		}
		out = append(out, r)
	}
	return out
}

// columnSizes reparte las 12 columnas de la rejilla; el resto va a las primeras.
func columnSizes(n int) []int {
	if n <= 0 {
		return nil
	}
	if n > gridSize {
		n = gridSize
	}
	sizes := make([]int, n)
	base, rest := gridSize/n, gridSize%n
	for i := range sizes {
		sizes[i] = base
		if i < rest {
			sizes[i]++
		}
	}
	return sizes
}
