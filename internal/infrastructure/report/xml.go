package report

import (
	"bytes"
	"fmt"
	"strconv"
	"time"

	"github.com/beevik/etree"

	"github.com/jhoicas/placement-portal/internal/application/ports"
	"github.com/jhoicas/placement-portal/internal/domain/entity"
)

var _ ports.ReportRenderer = (*XML)(nil)

// XML documento <placementReport generatedAt=".." count="..."><row>...</row></placementReport>.
type XML struct {
	loc *time.Location
}

// NewXML renderer XML; loc zona para la fecha corta (nil = hora local).
func NewXML(loc *time.Location) *XML {
	if loc == nil {
		loc = time.Local
	}
	return &XML{loc: loc}
}

func (x *XML) Format() string      { return "xml" }
func (x *XML) ContentType() string { return "application/xml" }

// Render genera el documento indentado.
func (x *XML) Render(rows []entity.PlacementRow, generatedAt time.Time) ([]byte, error) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	root := doc.CreateElement("placementReport")
	root.CreateAttr("generatedAt", generatedAt.UTC().Format(time.RFC3339))
	root.CreateAttr("count", strconv.Itoa(len(rows)))

	for _, r := range rows {
		el := root.CreateElement("row")
		el.CreateElement("studentName").SetText(r.StudentName)
		el.CreateElement("studentEmail").SetText(r.StudentEmail)
		el.CreateElement("companyName").SetText(r.CompanyName)
		el.CreateElement("jobTitle").SetText(r.JobTitle)
		el.CreateElement("status").SetText(string(r.Status))
		applied := el.CreateElement("appliedAt")
		applied.CreateAttr("display", ShortDate(r.AppliedAt, x.loc))
		applied.SetText(r.AppliedAt.UTC().Format(time.RFC3339))
	}

	doc.Indent(2)
	var buf bytes.Buffer
	if _, err := doc.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("xml: serializar: %w", err)
	}
	return buf.Bytes(), nil
}
