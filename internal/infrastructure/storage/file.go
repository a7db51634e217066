package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

var _ Storage = (*File)(nil)

// File persiste todas las claves en un único documento JSON. Cada escritura reescribe
// el documento completo vía archivo temporal + rename para no dejarlo a medias.
// Cada operación relee el documento, de modo que otro proceso sobre el mismo path
// (portal y portalctl) ve las claves del otro. Escrituras simultáneas desde dos
// procesos siguen siendo last-writer-wins por documento; para eso usar sqlite.
type File struct {
	mu   sync.Mutex
	path string
}

// OpenFile abre (o crea al primer Set) el documento en path.
func OpenFile(path string) (*File, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage: path requerido")
	}
	f := &File{path: filepath.Clean(path)}
	if _, err := f.load(); err != nil {
		return nil, err
	}
	return f, nil
}

// Get lee una clave.
func (f *File) Get(ctx context.Context, key string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	values, err := f.load()
	if err != nil {
		return "", false, err
	}
	v, ok := values[key]
	return v, ok, nil
}

// Set escribe una clave y persiste.
func (f *File) Set(ctx context.Context, key, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	values, err := f.load()
	if err != nil {
		return err
	}
	values[key] = value
	return f.flush(values)
}

// Delete elimina una clave y persiste.
func (f *File) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	values, err := f.load()
	if err != nil {
		return err
	}
	if _, ok := values[key]; !ok {
		return nil
	}
	delete(values, key)
	return f.flush(values)
}

// load lee el documento actual; si no existe devuelve un mapa vacío.
func (f *File) load() (map[string]string, error) {
	values := make(map[string]string)
	data, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return values, nil
		}
		return nil, fmt.Errorf("storage: leer %s: %w", f.path, err)
	}
	if len(data) > 0 {
		if err := json.Unmarshal(data, &values); err != nil {
			return nil, fmt.Errorf("storage: documento corrupto %s: %w", f.path, err)
		}
	}
	return values, nil
}

// Close no-op: cada escritura ya quedó en disco.
func (f *File) Close() error { return nil }

func (f *File) flush(values map[string]string) error {
	if err := os.MkdirAll(filepath.Dir(f.path), 0o700); err != nil {
		return fmt.Errorf("storage: crear directorio: %w", err)
	}
	data, err := json.MarshalIndent(values, "", "  ")
	if err != nil {
		return fmt.Errorf("storage: serializar: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(f.path), ".session-*.tmp")
	if err != nil {
		return fmt.Errorf("storage: archivo temporal: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("storage: escribir: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("storage: cerrar: %w", err)
	}
	if err := os.Rename(tmpName, f.path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("storage: renombrar: %w", err)
	}
	return nil
}
