// Package report exporta el reporte de colocación en CSV, PDF y XML.
package report

import (
	"time"

	"github.com/jhoicas/placement-portal/internal/application/ports"
)

// Columnas del reporte, en orden fijo.
var Columns = []string{"Student Name", "Email", "Company", "Job Title", "Status", "Date Applied"}

// ShortDate fecha corta M/D/YYYY.
func ShortDate(t time.Time, loc *time.Location) string {
	if loc != nil {
		t = t.In(loc)
	}
	return t.Format("1/2/2006")
}

// Registry renderers disponibles por formato.
type Registry map[string]ports.ReportRenderer

// NewRegistry registra CSV, PDF y XML con fechas en loc (nil = hora local).
func NewRegistry(loc *time.Location) Registry {
	reg := Registry{}
	for _, r := range []ports.ReportRenderer{NewCSV(loc), NewPDF(loc), NewXML(loc)} {
		reg[r.Format()] = r
	}
	return reg
}
