package sandbox

import (
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/placement-portal/pkg/config"
	"github.com/jhoicas/placement-portal/pkg/logger"
)

// Options configuración del backend en memoria.
type Options struct {
	JWT            config.JWTConfig
	UploadsDir     string // vacío: los currículums viven en memoria
	ResumeMaxBytes int64
	BcryptCost     int // 0 = bcrypt.DefaultCost
	Logger         *logger.Logger
	Now            func() time.Time
}

// Backend reglas del contrato REST sobre el estado en memoria.
type Backend struct {
	st   *store
	opts Options
	log  *logger.Logger
}

// NewBackend crea un backend vacío. Sin JWT.Secret se genera uno aleatorio por proceso.
func NewBackend(opts Options) *Backend {
	if opts.Logger == nil {
		opts.Logger = logger.Nop()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.BcryptCost == 0 {
		opts.BcryptCost = bcrypt.DefaultCost
	}
	if opts.ResumeMaxBytes <= 0 {
		opts.ResumeMaxBytes = config.DefaultResumeMaxBytes
	}
	if opts.JWT.Expiration <= 0 {
		opts.JWT.Expiration = 60 * 24
	}
	log := opts.Logger.Component("sandbox")
	if opts.JWT.Secret == "" {
		opts.JWT.Secret = uuid.NewString() + uuid.NewString()
		log.Warn().Msg("JWT_SECRET vacío: se usa un secreto efímero, los tokens no sobreviven al reinicio")
	}
	return &Backend{st: newStore(), opts: opts, log: log}
}

// Secret secreto efectivo con el que se firman los tokens.
func (b *Backend) Secret() string { return b.opts.JWT.Secret }

func (b *Backend) now() time.Time { return b.opts.Now().UTC() }
