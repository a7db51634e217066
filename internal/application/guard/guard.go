// Package guard decide si la sesión actual puede ver una ruta del portal.
// Se evalúa en cada petición, sin caché.
package guard

import (
	"strings"

	"github.com/jhoicas/placement-portal/internal/domain"
)

// Outcome resultado de la evaluación.
type Outcome string

const (
	Allowed    Outcome = "ALLOWED"
	Redirected Outcome = "REDIRECTED"
)

// Decision resultado más el destino de la redirección.
type Decision struct {
	Outcome Outcome
	Target  string
}

// Home destino de visitantes no autenticados y de rutas desconocidas.
const Home = "/"

var publicPaths = map[string]struct{}{
	"/":              {},
	"/login":         {},
	"/register":      {},
	"/logout":        {},
	"/session":       {},
	"/notifications": {},
	"/health":        {},
}

// NavItem entrada del menú lateral.
type NavItem struct {
	Label string `json:"label"`
	Path  string `json:"path"`
}

// NavItems menú de cada rol; define también las subpáginas conocidas del subárbol.
func NavItems(r domain.Role) []NavItem {
	return domain.MatchRole(r,
		func(domain.Student) []NavItem {
			return []NavItem{
				{Label: "Overview", Path: "/student/dashboard"},
				{Label: "Profile", Path: "/student/profile"},
				{Label: "Jobs", Path: "/student/jobs"},
				{Label: "My Applications", Path: "/student/applications"},
			}
		},
		func(domain.Company) []NavItem {
			return []NavItem{
				{Label: "Overview", Path: "/company/dashboard"},
				{Label: "Post Job", Path: "/company/post-job"},
				{Label: "My Jobs", Path: "/company/jobs"},
				{Label: "Candidates", Path: "/company/candidates"},
			}
		},
		func(domain.Admin) []NavItem {
			return []NavItem{
				{Label: "Overview", Path: "/admin/dashboard"},
				{Label: "User Management", Path: "/admin/users"},
				{Label: "All Jobs", Path: "/admin/jobs"},
				{Label: "Statistics", Path: "/admin/stats"},
			}
		},
	)
}

// Evaluate decide el acceso a path para la sesión con rol role (nil = sin sesión).
func Evaluate(path string, role domain.Role) Decision {
	path = normalize(path)
	if _, ok := publicPaths[path]; ok {
		return allow()
	}

	segments := strings.SplitN(strings.TrimPrefix(path, "/"), "/", 3)
	owner := subtreeOwner(segments[0])
	if owner == nil {
		return redirect(Home)
	}
	if role == nil {
		return redirect(Home)
	}
	if owner.Name() != role.Name() {
		return redirect(domain.DashboardPath(role))
	}
	if len(segments) < 2 || !knownPage(role, segments[1]) {
		return redirect(domain.DashboardPath(role))
	}
	return allow()
}

func subtreeOwner(segment string) domain.Role {
	for _, r := range domain.Roles() {
		if r.Name() == segment {
			return r
		}
	}
	return nil
}

func knownPage(r domain.Role, page string) bool {
	prefix := "/" + r.Name() + "/"
	for _, item := range NavItems(r) {
		if strings.TrimPrefix(item.Path, prefix) == page {
			return true
		}
	}
	return false
}

func normalize(path string) string {
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	if len(path) > 1 {
		path = strings.TrimRight(path, "/")
		if path == "" {
			path = "/"
		}
	}
	return path
}

func allow() Decision { return Decision{Outcome: Allowed} }

func redirect(target string) Decision {
	return Decision{Outcome: Redirected, Target: target}
}
