package report

import (
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
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/placement-portal/internal/application/ports"
	"github.com/jhoicas/placement-portal/internal/domain/entity"
)

var _ ports.ReportRenderer = (*PDF)(nil)

// ── Paleta ────────────────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 37, Green: 99, Blue: 235}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// anchos de columna sobre la grilla de 12.
var pdfColumnSizes = []int{2, 3, 2, 2, 1, 2}

// PDF reporte tabular en A4 horizontal (Maroto v2).
type PDF struct {
	loc *time.Location
}

// NewPDF renderer PDF; loc zona para la columna de fecha (nil = hora local).
func NewPDF(loc *time.Location) *PDF {
	if loc == nil {
		loc = time.Local
	}
	return &PDF{loc: loc}
}

func (p *PDF) Format() string      { return "pdf" }
func (p *PDF) ContentType() string { return "application/pdf" }

// Render genera el PDF y devuelve sus bytes.
func (p *PDF) Render(rows []entity.PlacementRow, generatedAt time.Time) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithOrientation(orientation.Horizontal).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Placement Report", true).
		Build()

	m := maroto.New(cfg)
	m.AddRows(titleRow(generatedAt, len(rows), placed(rows)))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(headerRow())
	m.AddRows(p.bodyRows(rows)...)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func titleRow(generatedAt time.Time, total, hired int) core.Row {
	return row.New(16).Add(
		col.New(8).Add(
			text.New("Placement Report", props.Text{
				Style: fontstyle.Bold, Size: 14, Color: colorPrimary, Top: 1,
			}),
		),
		col.New(4).Add(
			text.New("Generated: "+generatedAt.UTC().Format("2006-01-02 15:04 MST"), props.Text{
				Size: 8, Align: align.Right, Top: 1, Color: colorGray,
			}),
			text.New(fmt.Sprintf("Records: %d   |   Placed: %d", total, hired), props.Text{
				Size: 8, Align: align.Right, Top: 7, Color: colorGray,
			}),
		),
	)
}

func headerRow() core.Row {
	cols := make([]core.Col, 0, len(Columns))
	for i, label := range Columns {
		cols = append(cols, col.New(pdfColumnSizes[i]).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 2, Left: 1,
		})))
	}
	return row.New(8).Add(cols...)
}

func (p *PDF) bodyRows(rows []entity.PlacementRow) []core.Row {
	if len(rows) == 0 {
		return []core.Row{row.New(8).Add(col.New(12).Add(
			text.New("No placement data available", props.Text{
				Size: 8, Align: align.Center, Top: 2, Color: colorGray,
			}),
		))}
	}
	out := make([]core.Row, 0, len(rows))
	for _, r := range rows {
		values := []string{
			r.StudentName,
			r.StudentEmail,
			r.CompanyName,
			r.JobTitle,
			string(r.Status),
			ShortDate(r.AppliedAt, p.loc),
		}
		cols := make([]core.Col, 0, len(values))
		for i, v := range values {
			cols = append(cols, col.New(pdfColumnSizes[i]).Add(text.New(v, props.Text{
				Size: 8, Top: 1, Left: 1,
			})))
		}
		out = append(out, row.New(7).Add(cols...))
	}
	return out
}

func placed(rows []entity.PlacementRow) int {
	n := 0
	for _, r := range rows {
		if r.Status == entity.StatusHired {
			n++
		}
	}
	return n
}
