package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/placement-portal/internal/application/ports"
	"github.com/jhoicas/placement-portal/pkg/config"
)

// ─── Contrato común ─────────────────────────────────────────────────────────

func exerciseKeyValue(t *testing.T, s Storage) {
	t.Helper()
	ctx := context.Background()

	_, ok, err := s.Get(ctx, ports.KeyUser)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Set(ctx, ports.KeyUser, `{"id":"u1"}`))
	require.NoError(t, s.Set(ctx, ports.KeyToken, "tok"))
	v, ok, err := s.Get(ctx, ports.KeyUser)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `{"id":"u1"}`, v)

	require.NoError(t, s.Set(ctx, ports.KeyUser, `{"id":"u2"}`))
	v, _, _ = s.Get(ctx, ports.KeyUser)
	assert.Equal(t, `{"id":"u2"}`, v)

	require.NoError(t, s.Delete(ctx, ports.KeyUser))
	require.NoError(t, s.Delete(ctx, "no-existe"))
	_, ok, _ = s.Get(ctx, ports.KeyUser)
	assert.False(t, ok)
	v, ok, _ = s.Get(ctx, ports.KeyToken)
	assert.True(t, ok)
	assert.Equal(t, "tok", v)
}

func TestMemory_Contrato(t *testing.T) {
	exerciseKeyValue(t, NewMemory())
}

func TestFile_Contrato(t *testing.T) {
	s, err := OpenFile(filepath.Join(t.TempDir(), "nested", "session.json"))
	require.NoError(t, err)
	exerciseKeyValue(t, s)
}

func TestSQLite_Contrato(t *testing.T) {
	s, err := OpenSQLite(context.Background(), filepath.Join(t.TempDir(), "session.db"))
	require.NoError(t, err)
	defer s.Close()
	exerciseKeyValue(t, s)
}

// Requiere una base real: TEST_DATABASE_URL=postgres://... go test ./...
func TestPostgres_Contrato(t *testing.T) {
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL no definido")
	}
	ctx := context.Background()
	s, err := OpenPostgres(ctx, url)
	require.NoError(t, err)
	defer s.Close()
	for _, k := range []string{ports.KeyUser, ports.KeyToken, ports.KeyRole} {
		require.NoError(t, s.Delete(ctx, k))
	}
	exerciseKeyValue(t, s)
}

// ─── Persistencia entre aperturas ───────────────────────────────────────────

func TestFile_SobreviveReapertura(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	ctx := context.Background()

	s, err := OpenFile(path)
	require.NoError(t, err)
	require.NoError(t, s.Set(ctx, ports.KeyToken, "abc"))

	again, err := OpenFile(path)
	require.NoError(t, err)
	v, ok, err := again.Get(ctx, ports.KeyToken)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "abc", v)
}

func TestFile_DosInstanciasNoSePisan(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	ctx := context.Background()

	a, err := OpenFile(path)
	require.NoError(t, err)
	b, err := OpenFile(path)
	require.NoError(t, err)

	require.NoError(t, a.Set(ctx, ports.KeyUser, `{"id":"u1"}`))
	require.NoError(t, b.Set(ctx, ports.KeyToken, "abc"))

	v, ok, err := a.Get(ctx, ports.KeyToken)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "abc", v)

	v, ok, err = b.Get(ctx, ports.KeyUser)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `{"id":"u1"}`, v)

	require.NoError(t, a.Delete(ctx, ports.KeyToken))
	_, ok, err = b.Get(ctx, ports.KeyToken)
	require.NoError(t, err)
	assert.False(t, ok)
	_, ok, err = b.Get(ctx, ports.KeyUser)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestFile_DocumentoCorrupto(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte("{no json"), 0o600))
	_, err := OpenFile(path)
	assert.Error(t, err)
}

func TestSQLite_SobreviveReapertura(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.db")
	ctx := context.Background()

	s, err := OpenSQLite(ctx, path)
	require.NoError(t, err)
	require.NoError(t, s.Set(ctx, ports.KeyRole, "student"))
	require.NoError(t, s.Close())

	again, err := OpenSQLite(ctx, path)
	require.NoError(t, err)
	defer again.Close()
	v, ok, err := again.Get(ctx, ports.KeyRole)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "student", v)
}

func TestMemory_ContextoCancelado(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	m := NewMemory()
	assert.ErrorIs(t, m.Set(ctx, ports.KeyUser, "x"), context.Canceled)
}

// ─── Open ───────────────────────────────────────────────────────────────────

func TestOpen_SeleccionaDriver(t *testing.T) {
	ctx := context.Background()

	s, err := Open(ctx, config.StorageConfig{Driver: "memory"})
	require.NoError(t, err)
	assert.IsType(t, &Memory{}, s)

	s, err = Open(ctx, config.StorageConfig{Driver: "file", Path: filepath.Join(t.TempDir(), "s.json")})
	require.NoError(t, err)
	assert.IsType(t, &File{}, s)

	_, err = Open(ctx, config.StorageConfig{Driver: "redis"})
	assert.Error(t, err)

	_, err = Open(ctx, config.StorageConfig{Driver: "postgres"})
	assert.Error(t, err)
}
