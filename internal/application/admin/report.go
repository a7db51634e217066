package admin

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/jhoicas/placement-portal/internal/domain"
	"github.com/jhoicas/placement-portal/internal/domain/entity"
	"github.com/jhoicas/placement-portal/internal/domain/search"
)

// ReportView reporte de colocación montado.
type ReportView struct {
	rows []entity.PlacementRow
}

// LoadReport carga el reporte de colocación.
func (s *Service) LoadReport(ctx context.Context) (*ReportView, error) {
	rows, err := s.admin.PlacementReport(ctx)
	if err != nil {
		return nil, err
	}
	return &ReportView{rows: rows}, nil
}

// Filter filas cuyo estudiante, empresa o puesto coincide con term.
func (v *ReportView) Filter(term string) []entity.PlacementRow {
	return search.Report(v.rows, term)
}

// Placed cantidad de filas HIRED.
func (v *ReportView) Placed() int {
	n := 0
	for _, r := range v.rows {
		if r.Status == entity.StatusHired {
			n++
		}
	}
	return n
}

// Export documento descargable.
type Export struct {
	Filename    string
	ContentType string
	Body        []byte
}

// Formats formatos de exportación disponibles.
func (s *Service) Formats() []string {
	out := make([]string, 0, len(s.renderers))
	for f := range s.renderers {
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}

// ExportReport obtiene el reporte actual y lo serializa en format (csv por defecto).
func (s *Service) ExportReport(ctx context.Context, format string) (*Export, error) {
	format = strings.ToLower(strings.TrimSpace(format))
	if format == "" {
		format = "csv"
	}
	renderer, ok := s.renderers[format]
	if !ok {
		return nil, fmt.Errorf("%w: formato %q", domain.ErrInvalidInput, format)
	}

	rows, err := s.admin.PlacementReport(ctx)
	if err != nil {
		s.notify.Error(MsgReportFailed + err.Error())
		return nil, err
	}
	now := s.now()
	body, err := renderer.Render(rows, now)
	if err != nil {
		s.notify.Error(MsgReportFailed + err.Error())
		return nil, err
	}
	s.notify.Success(MsgReportGenerated)
	s.log.Info().Str("format", format).Int("rows", len(rows)).Msg("reporte exportado")
	return &Export{
		Filename:    fmt.Sprintf("placement_report_%s.%s", now.UTC().Format("2006-01-02"), renderer.Format()),
		ContentType: renderer.ContentType(),
		Body:        body,
	}, nil
}
