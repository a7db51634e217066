package apiclient

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/placement-portal/internal/application/dto"
	"github.com/jhoicas/placement-portal/internal/application/ports"
	"github.com/jhoicas/placement-portal/internal/domain"
	"github.com/jhoicas/placement-portal/internal/domain/entity"
	"github.com/jhoicas/placement-portal/internal/infrastructure/storage"
)

func newTestClient(t *testing.T, h http.HandlerFunc) (*Client, *storage.Memory) {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	kv := storage.NewMemory()
	c, err := New(Options{BaseURL: srv.URL + "/api", BackendURL: "http://media.local", Store: kv})
	require.NoError(t, err)
	return c, kv
}

// ─── Cabeceras y token ──────────────────────────────────────────────────────

func TestClient_AdjuntaBearerYJSON(t *testing.T) {
	var got *http.Request
	var body []byte
	c, kv := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		got = r
		body, _ = io.ReadAll(r.Body)
		_, _ = w.Write([]byte(`{"id":"a1","jobId":"j1","status":"APPLIED"}`))
	})
	require.NoError(t, kv.Set(context.Background(), ports.KeyToken, "tok-123"))

	app, err := c.Applications.Apply(context.Background(), "j1")
	require.NoError(t, err)
	assert.Equal(t, entity.StatusApplied, app.Status)

	assert.Equal(t, "/api/applications/apply", got.URL.Path)
	assert.Equal(t, http.MethodPost, got.Method)
	assert.Equal(t, "Bearer tok-123", got.Header.Get("Authorization"))
	assert.Equal(t, "application/json", got.Header.Get("Content-Type"))
	assert.NotEmpty(t, got.Header.Get("X-Request-ID"))
	assert.JSONEq(t, `{"jobId":"j1"}`, string(body))
}

func TestClient_SinTokenNoEnviaAuthorization(t *testing.T) {
	var auth string
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`[]`))
	})
	jobs, err := c.Jobs.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, jobs)
	assert.Empty(t, auth)
}

// ─── Errores ────────────────────────────────────────────────────────────────

func TestClient_ErrorDelServidorTextual(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":"You have already applied to this job"}`))
	})
	_, err := c.Applications.Apply(context.Background(), "j1")
	require.Error(t, err)
	assert.Equal(t, "You have already applied to this job", err.Error())

	var reqErr *RequestError
	require.True(t, errors.As(err, &reqErr))
	assert.Equal(t, http.StatusBadRequest, reqErr.Status)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestClient_CuerpoIlegibleUsaMensajePorDefecto(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`<html>boom</html>`))
	})
	_, err := c.Jobs.Mine(context.Background())
	require.Error(t, err)
	assert.Equal(t, FallbackMessage, err.Error())
}

func TestClient_ErrorVacioUsaMensajePorDefecto(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"error":""}`))
	})
	err := c.Jobs.Delete(context.Background(), "j1")
	require.Error(t, err)
	assert.Equal(t, FallbackMessage, err.Error())
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestClient_FalloDeRed(t *testing.T) {
	kv := storage.NewMemory()
	c, err := New(Options{BaseURL: "http://127.0.0.1:1/api", Store: kv})
	require.NoError(t, err)
	_, err = c.Jobs.List(context.Background())
	require.Error(t, err)
	assert.Equal(t, FallbackMessage, err.Error())
}

// ─── Login / logout ─────────────────────────────────────────────────────────

func TestAuth_LoginGuardaTokenYRol(t *testing.T) {
	c, kv := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var in dto.LoginRequest
		_ = json.NewDecoder(r.Body).Decode(&in)
		assert.Equal(t, "asha@x.com", in.Email)
		_, _ = w.Write([]byte(`{"user":{"id":"u1","name":"Asha Rao","email":"asha@x.com","role":"STUDENT"},"token":"jwt-abc"}`))
	})
	ctx := context.Background()
	res, err := c.Auth.Login(ctx, "asha@x.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, "Asha Rao", res.User.DisplayName)

	tok, _, _ := kv.Get(ctx, ports.KeyToken)
	role, _, _ := kv.Get(ctx, ports.KeyRole)
	assert.Equal(t, "jwt-abc", tok)
	assert.Equal(t, "STUDENT", role)

	require.NoError(t, c.Auth.Logout(ctx))
	_, found, _ := kv.Get(ctx, ports.KeyToken)
	assert.False(t, found)
	_, found, _ = kv.Get(ctx, ports.KeyRole)
	assert.False(t, found)
}

// ─── Subida de currículum ───────────────────────────────────────────────────

func TestStudents_UploadResumeMultipart(t *testing.T) {
	c, kv := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/upload/resume", r.URL.Path)
		assert.Contains(t, r.Header.Get("Content-Type"), "multipart/form-data")
		assert.Equal(t, "Bearer t", r.Header.Get("Authorization"))
		f, hdr, err := r.FormFile(ResumeField)
		if !assert.NoError(t, err) {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		defer f.Close()
		data, _ := io.ReadAll(f)
		assert.Equal(t, "cv.pdf", hdr.Filename)
		assert.Equal(t, "%PDF-1.4", string(data))
		_, _ = w.Write([]byte(`{"message":"ok","resumeUrl":"/uploads/cv.pdf"}`))
	})
	require.NoError(t, kv.Set(context.Background(), ports.KeyToken, "t"))

	res, err := c.Students.UploadResume(context.Background(), "/tmp/cv.pdf", []byte("%PDF-1.4"))
	require.NoError(t, err)
	assert.Equal(t, "/uploads/cv.pdf", res.ResumeURL)
	assert.Equal(t, "http://media.local/uploads/cv.pdf", c.MediaURL(res.ResumeURL))
}

func TestStudents_UploadFallidoUsaMensajeDeSubida(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	_, err := c.Students.UploadResume(context.Background(), "cv.pdf", []byte("%PDF"))
	require.Error(t, err)
	assert.Equal(t, UploadFallbackMessage, err.Error())
}

func TestClient_MediaURLVacia(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {})
	assert.Equal(t, "", c.MediaURL(""))
}

func TestAdmin_RutasYCuerpos(t *testing.T) {
	var paths []string
	var bodies []string
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.Method+" "+r.URL.Path)
		b, _ := io.ReadAll(r.Body)
		bodies = append(bodies, string(b))
		_, _ = w.Write([]byte(`{"message":"ok"}`))
	})
	ctx := context.Background()
	require.NoError(t, c.Admin.UpdateUserStatus(ctx, "u9", entity.AccountActive))
	require.NoError(t, c.Admin.DeleteUser(ctx, "u9"))

	assert.Equal(t, []string{"PUT /api/admin/users/u9/status", "DELETE /api/admin/users/u9"}, paths)
	assert.JSONEq(t, `{"status":"ACTIVE"}`, bodies[0])
}
