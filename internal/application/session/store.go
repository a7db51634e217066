// Package session contexto de sesión explícito e inyectable: identidad actual,
// login/logout y restauración desde almacenamiento durable.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/jhoicas/placement-portal/internal/application/ports"
	"github.com/jhoicas/placement-portal/internal/domain"
	"github.com/jhoicas/placement-portal/internal/domain/entity"
	pkgjwt "github.com/jhoicas/placement-portal/pkg/jwt"
	"github.com/jhoicas/placement-portal/pkg/logger"
)

// ErrDisposed operación sobre una sesión ya liberada.
var ErrDisposed = errors.New("session: disposed")

const avatarBase = "https://ui-avatars.com/api/"

// Options dependencias opcionales del store.
type Options struct {
	Logger *logger.Logger
	Now    func() time.Time
}

// Store dueño exclusivo de la identidad del usuario. Nunca hace llamadas de red.
type Store struct {
	mu       sync.RWMutex
	kv       ports.KeyValue
	log      *logger.Logger
	now      func() time.Time
	identity *entity.Identity
	disposed bool
}

// Create abre la sesión y restaura la identidad persistida (semántica de recarga).
// Si el token guardado es un JWT vencido, la sesión persistida se descarta.
func Create(ctx context.Context, kv ports.KeyValue, opts Options) (*Store, error) {
	if kv == nil {
		return nil, fmt.Errorf("session: almacenamiento requerido")
	}
	s := &Store{kv: kv, log: opts.Logger, now: opts.Now}
	if s.log == nil {
		s.log = logger.Nop()
	}
	if s.now == nil {
		s.now = time.Now
	}
	if err := s.restore(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) restore(ctx context.Context) error {
	raw, ok, err := s.kv.Get(ctx, ports.KeyUser)
	if err != nil {
		return fmt.Errorf("session: leer usuario: %w", err)
	}
	if !ok || raw == "" {
		return nil
	}
	var id entity.Identity
	if err := json.Unmarshal([]byte(raw), &id); err != nil {
		s.log.Warn().Err(err).Msg("sesión persistida ilegible, se descarta")
		return s.purge(ctx)
	}
	if _, err := id.RoleKind(); err != nil {
		s.log.Warn().Str("role", id.Role).Msg("rol persistido desconocido, se descarta la sesión")
		return s.purge(ctx)
	}

	token, hasToken, err := s.kv.Get(ctx, ports.KeyToken)
	if err != nil {
		return fmt.Errorf("session: leer token: %w", err)
	}
	if hasToken {
		if exp, ok := pkgjwt.ExpiresAt(token); ok && !exp.After(s.now()) {
			s.log.Info().Time("expired_at", exp).Msg("token vencido, sesión descartada")
			return s.purge(ctx)
		}
	}

	s.identity = &id
	s.log.Debug().Str("user_id", id.ID).Str("role", id.Role).Msg("sesión restaurada")
	return nil
}

func (s *Store) purge(ctx context.Context) error {
	for _, key := range []string{ports.KeyUser, ports.KeyToken, ports.KeyRole} {
		if err := s.kv.Delete(ctx, key); err != nil {
			return fmt.Errorf("session: limpiar %s: %w", key, err)
		}
	}
	return nil
}

// Dispose libera la sesión en memoria; lo persistido se conserva para la próxima apertura.
func (s *Store) Dispose() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.identity = nil
	s.disposed = true
}

// Login normaliza el rol, deriva el avatar y persiste identidad y token.
func (s *Store) Login(ctx context.Context, id entity.Identity, token string) (entity.Identity, error) {
	role, err := domain.ParseRole(id.Role)
	if err != nil {
		return entity.Identity{}, err
	}
	id.Role = role.Name()
	id.AvatarURL = AvatarURL(id.DisplayName)

	raw, err := json.Marshal(id)
	if err != nil {
		return entity.Identity{}, fmt.Errorf("session: serializar: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.disposed {
		return entity.Identity{}, ErrDisposed
	}
	if err := s.kv.Set(ctx, ports.KeyUser, string(raw)); err != nil {
		return entity.Identity{}, fmt.Errorf("session: guardar usuario: %w", err)
	}
	if token != "" {
		if err := s.kv.Set(ctx, ports.KeyToken, token); err != nil {
			return entity.Identity{}, fmt.Errorf("session: guardar token: %w", err)
		}
	}
	s.identity = &id
	s.log.Info().Str("user_id", id.ID).Str("role", id.Role).Msg("login")
	return id, nil
}

// Logout borra la identidad. El token lo elimina el cliente de la API.
func (s *Store) Logout(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.disposed {
		return ErrDisposed
	}
	if err := s.kv.Delete(ctx, ports.KeyUser); err != nil {
		return fmt.Errorf("session: borrar usuario: %w", err)
	}
	s.identity = nil
	return nil
}

// Current identidad actual, si existe.
func (s *Store) Current() (entity.Identity, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.identity == nil {
		return entity.Identity{}, false
	}
	return *s.identity, true
}

// IsAuthenticated hay identidad presente.
func (s *Store) IsAuthenticated() bool {
	_, ok := s.Current()
	return ok
}

// Role rol tipado de la sesión; nil si no hay sesión.
func (s *Store) Role() domain.Role {
	id, ok := s.Current()
	if !ok {
		return nil
	}
	r, err := id.RoleKind()
	if err != nil {
		return nil
	}
	return r
}

// AvatarURL avatar generado a partir del nombre visible.
func AvatarURL(displayName string) string {
	return avatarBase + "?name=" + escapeComponent(displayName) + "&background=random"
}

// escapeComponent codifica como un componente de URI: deja sin escapar
// letras, dígitos y -_.!~*'() y codifica el resto byte a byte en UTF-8.
func escapeComponent(s string) string {
	const hex = "0123456789ABCDEF"
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
			b.WriteByte(c)
		case strings.IndexByte("-_.!~*'()", c) >= 0:
			b.WriteByte(c)
		default:
			b.WriteByte('%')
			b.WriteByte(hex[c>>4])
			b.WriteByte(hex[c&0x0f])
		}
	}
	return b.String()
}
