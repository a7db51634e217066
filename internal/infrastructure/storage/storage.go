// Package storage implementa el almacenamiento durable clave/valor de la sesión.
// Drivers: memory (tests), file (documento JSON), sqlite (modernc) y postgres (pgx).
package storage

import (
	"context"
	"fmt"
	"sync"

	"github.com/jhoicas/placement-portal/internal/application/ports"
	"github.com/jhoicas/placement-portal/pkg/config"
)

// Storage almacenamiento clave/valor con ciclo de vida explícito.
type Storage interface {
	ports.KeyValue
	Close() error
}

// Open construye el driver configurado.
func Open(ctx context.Context, cfg config.StorageConfig) (Storage, error) {
	switch cfg.Driver {
	case "memory":
		return NewMemory(), nil
	case "file", "":
		return OpenFile(cfg.Path)
	case "sqlite":
		return OpenSQLite(ctx, cfg.Path)
	case "postgres":
		return OpenPostgres(ctx, cfg.DatabaseURL)
	default:
		return nil, fmt.Errorf("storage: driver desconocido %q", cfg.Driver)
	}
}

var _ Storage = (*Memory)(nil)

// Memory almacenamiento volátil protegido por mutex.
type Memory struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemory crea un almacenamiento en memoria vacío.
func NewMemory() *Memory {
	return &Memory{values: make(map[string]string)}
}

// Get lee una clave.
func (m *Memory) Get(ctx context.Context, key string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[key]
	return v, ok, nil
}

// Set escribe una clave.
func (m *Memory) Set(ctx context.Context, key, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

// Delete elimina una clave; no falla si no existe.
func (m *Memory) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
	return nil
}

// Close no-op.
func (m *Memory) Close() error { return nil }
