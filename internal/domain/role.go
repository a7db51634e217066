package domain

import (
	"fmt"
	"strings"
)

// Role unión cerrada {Student, Company, Admin}. El método privado impide variantes
// fuera del paquete; MatchRole exige un handler por variante.
type Role interface {
	role()
	// Name nombre normalizado en minúsculas ("student" | "company" | "admin").
	Name() string
}

// Student rol de estudiante.
type Student struct{}

// Company rol de empresa reclutadora.
type Company struct{}

// Admin rol de administración de la plataforma.
type Admin struct{}

func (Student) role() {}
func (Company) role() {}
func (Admin) role()   {}

func (Student) Name() string { return "student" }
func (Company) Name() string { return "company" }
func (Admin) Name() string   { return "admin" }

// MatchRole despacha sobre la variante concreta. Añadir una variante obliga a cambiar
// esta firma y, con ella, a todos los llamadores.
func MatchRole[T any](r Role, student func(Student) T, company func(Company) T, admin func(Admin) T) T {
	switch v := r.(type) {
	case Student:
		return student(v)
	case Company:
		return company(v)
	case Admin:
		return admin(v)
	default:
		panic(fmt.Sprintf("domain: variante de rol no soportada %T", r))
	}
}

// ParseRole acepta el rol en cualquier capitalización ("STUDENT", "student", " Admin ").
func ParseRole(s string) (Role, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "student":
		return Student{}, nil
	case "company":
		return Company{}, nil
	case "admin":
		return Admin{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownRole, s)
	}
}

// WireName nombre del rol tal como lo espera el backend ("STUDENT").
func WireName(r Role) string {
	return strings.ToUpper(r.Name())
}

// DashboardPath raíz del dashboard propio de cada rol.
func DashboardPath(r Role) string {
	return "/" + r.Name() + "/dashboard"
}

// Roles todas las variantes, en orden estable.
func Roles() []Role {
	return []Role{Student{}, Company{}, Admin{}}
}
