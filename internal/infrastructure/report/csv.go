package report

import (
	"strings"
	"time"

	"github.com/jhoicas/placement-portal/internal/application/ports"
	"github.com/jhoicas/placement-portal/internal/domain/entity"
)

var _ ports.ReportRenderer = (*CSV)(nil)

// CSV cabecera sin comillas; cada valor entre comillas dobles, líneas unidas por LF
// y sin salto final. Se arma a mano porque encoding/csv solo entrecomilla cuando hace falta.
type CSV struct {
	loc *time.Location
}

// NewCSV renderer CSV; loc zona para la columna de fecha (nil = hora local).
func NewCSV(loc *time.Location) *CSV {
	if loc == nil {
		loc = time.Local
	}
	return &CSV{loc: loc}
}

func (c *CSV) Format() string      { return "csv" }
func (c *CSV) ContentType() string { return "text/csv;charset=utf-8" }

// Render genera el documento completo.
func (c *CSV) Render(rows []entity.PlacementRow, _ time.Time) ([]byte, error) {
	lines := make([]string, 0, len(rows)+1)
	lines = append(lines, strings.Join(Columns, ","))
	for _, r := range rows {
		fields := []string{
			r.StudentName,
			r.StudentEmail,
			r.CompanyName,
			r.JobTitle,
			string(r.Status),
			ShortDate(r.AppliedAt, c.loc),
		}
		for i, f := range fields {
			fields[i] = quote(f)
		}
		lines = append(lines, strings.Join(fields, ","))
	}
	return []byte(strings.Join(lines, "\n")), nil
}

func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
