package auth_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/placement-portal/internal/application/apitest"
	"github.com/jhoicas/placement-portal/internal/application/auth"
	"github.com/jhoicas/placement-portal/internal/application/ports"
	"github.com/jhoicas/placement-portal/internal/application/session"
	"github.com/jhoicas/placement-portal/internal/domain"
	"github.com/jhoicas/placement-portal/internal/domain/entity"
	"github.com/jhoicas/placement-portal/internal/infrastructure/storage"
)

func setup(t *testing.T) (*auth.Service, *apitest.Backend, *session.Store, *storage.Memory, *apitest.Recorder) {
	t.Helper()
	kv := storage.NewMemory()
	store, err := session.Create(context.Background(), kv, session.Options{})
	require.NoError(t, err)
	api := apitest.New()
	rec := &apitest.Recorder{}
	return auth.NewService(api, store, rec, nil), api, store, kv, rec
}

func TestSplitName(t *testing.T) {
	cases := []struct{ in, first, last string }{
		{"Asha Rao", "Asha", "Rao"},
		{"Asha", "Asha", "Asha"},
		{"  Mary Ann  Smith ", "Mary", "Ann Smith"},
	}
	for _, c := range cases {
		first, last := auth.SplitName(c.in)
		assert.Equal(t, c.first, first, c.in)
		assert.Equal(t, c.last, last, c.in)
	}
}

func TestBuildRegisterRequest_PorRol(t *testing.T) {
	st := auth.BuildRegisterRequest(auth.RegisterInput{Name: "Asha Rao", Email: "a@x.com", Password: "p", Role: domain.Student{}})
	assert.Equal(t, "STUDENT", st.Role)
	assert.Equal(t, "Asha", st.FirstName)
	assert.Equal(t, "Rao", st.LastName)
	assert.Empty(t, st.CompanyName)

	co := auth.BuildRegisterRequest(auth.RegisterInput{Name: "Acme", Email: "hr@acme.com", Password: "p", Role: domain.Company{}})
	assert.Equal(t, "COMPANY", co.Role)
	assert.Equal(t, "Acme", co.CompanyName)
	assert.Empty(t, co.FirstName)
}

func TestLogin_AbreSesionYRedirige(t *testing.T) {
	svc, api, store, kv, _ := setup(t)
	api.Identity = entity.Identity{ID: "u1", DisplayName: "Acme", Role: "COMPANY"}
	api.Token = "tok"

	res, err := svc.Login(context.Background(), "hr@acme.com", "password")
	require.NoError(t, err)
	assert.Equal(t, "/company/dashboard", res.Redirect)
	assert.Equal(t, "company", res.Identity.Role)
	assert.True(t, store.IsAuthenticated())

	tok, ok, _ := kv.Get(context.Background(), ports.KeyToken)
	assert.True(t, ok)
	assert.Equal(t, "tok", tok)
}

func TestLogin_ErrorDelServidor(t *testing.T) {
	svc, api, store, _, _ := setup(t)
	api.Fail["Login"] = errors.New("Invalid credentials")

	_, err := svc.Login(context.Background(), "x@y.com", "bad")
	require.Error(t, err)
	assert.Equal(t, "Invalid credentials", err.Error())
	assert.False(t, store.IsAuthenticated())
}

func TestLogin_ErrorSinMensajeUsaFallback(t *testing.T) {
	svc, api, _, _, _ := setup(t)
	api.Fail["Login"] = errors.New("")

	_, err := svc.Login(context.Background(), "x@y.com", "bad")
	require.Error(t, err)
	assert.Equal(t, auth.MsgLoginFailed, err.Error())
}

func TestRegister_EmpresaQuedaPendienteSinLogin(t *testing.T) {
	svc, api, store, _, rec := setup(t)

	res, err := svc.Register(context.Background(), auth.RegisterInput{Name: "Acme", Email: "hr@acme.com", Password: "p", Role: domain.Company{}})
	require.NoError(t, err)
	assert.True(t, res.PendingApproval)
	assert.Nil(t, res.Login)
	assert.Equal(t, 0, api.Calls("Login"))
	assert.False(t, store.IsAuthenticated())
	assert.Equal(t, []string{auth.MsgPendingApproval}, rec.Successes)
}

func TestRegister_EstudianteIniciaSesion(t *testing.T) {
	svc, api, store, _, _ := setup(t)
	api.Identity = entity.Identity{ID: "u1", DisplayName: "Asha Rao", Role: "STUDENT"}
	api.Token = "tok"

	res, err := svc.Register(context.Background(), auth.RegisterInput{Name: "Asha Rao", Email: "asha@x.com", Password: "p", Role: domain.Student{}})
	require.NoError(t, err)
	require.NotNil(t, res.Login)
	assert.Equal(t, "/student/dashboard", res.Login.Redirect)
	assert.Equal(t, 1, api.Calls("Login"))
	assert.True(t, store.IsAuthenticated())
	assert.Equal(t, "Asha", api.LastRegister.FirstName)
}

func TestLogout_BorraSesionYToken(t *testing.T) {
	svc, api, store, _, _ := setup(t)
	api.Identity = entity.Identity{ID: "u1", DisplayName: "Asha Rao", Role: "STUDENT"}
	_, err := svc.Login(context.Background(), "asha@x.com", "p")
	require.NoError(t, err)

	require.NoError(t, svc.Logout(context.Background()))
	assert.False(t, store.IsAuthenticated())
	assert.Equal(t, 1, api.Calls("Logout"))
}
