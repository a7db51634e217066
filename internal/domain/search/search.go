// Package search implementa los filtros de listados que el cliente evalúa localmente
// sobre el conjunto completo ya descargado (sin paginación ni consulta en servidor).
package search

import (
	"strings"

	"golang.org/x/text/cases"

	"github.com/jhoicas/placement-portal/internal/domain/entity"
)

// Contains búsqueda de subcadena sin distinguir mayúsculas (case folding Unicode).
// Un término vacío coincide con todo.
func Contains(haystack, term string) bool {
	if term == "" {
		return true
	}
	fold := cases.Fold()
	return strings.Contains(fold.String(haystack), fold.String(term))
}

func anyContains(term string, fields ...string) bool {
	for _, f := range fields {
		if Contains(f, term) {
			return true
		}
	}
	return false
}

// StudentJobs ofertas visibles para el estudiante: solo OPEN y que coincidan en título,
// empresa o descripción. Las cerradas nunca aparecen, sea cual sea el término.
func StudentJobs(jobs []entity.Job, term string) []entity.Job {
	out := make([]entity.Job, 0, len(jobs))
	for _, j := range jobs {
		if !j.IsOpen() {
			continue
		}
		if anyContains(term, j.Title, j.CompanyName(), j.Description) {
			out = append(out, j)
		}
	}
	return out
}

// Report filas del reporte cuyo estudiante, empresa o cargo coinciden.
func Report(rows []entity.PlacementRow, term string) []entity.PlacementRow {
	out := make([]entity.PlacementRow, 0, len(rows))
	for _, r := range rows {
		if anyContains(term, r.StudentName, r.CompanyName, r.JobTitle) {
			out = append(out, r)
		}
	}
	return out
}

// RoleTab pestaña del panel de usuarios.
type RoleTab string

const (
	TabAll     RoleTab = "ALL"
	TabStudent RoleTab = "STUDENT"
	TabCompany RoleTab = "COMPANY"
	TabAdmin   RoleTab = "ADMIN"
)

// ParseTab pestaña desde texto libre; vacío o desconocido equivale a ALL.
func ParseTab(s string) RoleTab {
	switch t := RoleTab(strings.ToUpper(strings.TrimSpace(s))); t {
	case TabStudent, TabCompany, TabAdmin:
		return t
	default:
		return TabAll
	}
}

// Users cuentas filtradas por pestaña de rol y por nombre visible o email.
func Users(accounts []entity.Account, tab RoleTab, term string) []entity.Account {
	out := make([]entity.Account, 0, len(accounts))
	for _, a := range accounts {
		if tab != TabAll && !strings.EqualFold(a.Role, string(tab)) {
			continue
		}
		if anyContains(term, a.DisplayName(), a.Email) {
			out = append(out, a)
		}
	}
	return out
}
