package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/placement-portal/internal/domain"
)

func TestParseRole_NormalizaCapitalizacion(t *testing.T) {
	cases := map[string]domain.Role{
		"STUDENT": domain.Student{},
		"company": domain.Company{},
		" Admin ": domain.Admin{},
		"sTuDeNt": domain.Student{},
	}
	for in, want := range cases {
		got, err := domain.ParseRole(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
}

func TestParseRole_Desconocido(t *testing.T) {
	_, err := domain.ParseRole("bodeguero")
	assert.ErrorIs(t, err, domain.ErrUnknownRole)
}

func TestMatchRole_CubreTodasLasVariantes(t *testing.T) {
	label := func(r domain.Role) string {
		return domain.MatchRole(r,
			func(domain.Student) string { return "s" },
			func(domain.Company) string { return "c" },
			func(domain.Admin) string { return "a" },
		)
	}
	assert.Equal(t, "s", label(domain.Student{}))
	assert.Equal(t, "c", label(domain.Company{}))
	assert.Equal(t, "a", label(domain.Admin{}))
}

func TestDashboardPathYWireName(t *testing.T) {
	assert.Equal(t, "/student/dashboard", domain.DashboardPath(domain.Student{}))
	assert.Equal(t, "/admin/dashboard", domain.DashboardPath(domain.Admin{}))
	assert.Equal(t, "COMPANY", domain.WireName(domain.Company{}))
}
