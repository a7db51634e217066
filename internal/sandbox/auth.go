package sandbox

import (
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/placement-portal/internal/application/dto"
	"github.com/jhoicas/placement-portal/internal/domain/entity"
	"github.com/jhoicas/placement-portal/pkg/jwt"
)

// MinPasswordLength longitud mínima aceptada en el registro.
const MinPasswordLength = 6

// RegisterResult salida de POST /auth/register.
type RegisterResult struct {
	Message string         `json:"message"`
	User    entity.Account `json:"user"`
}

// Register crea la cuenta con password bcrypt. Las empresas nacen PENDING hasta que un
// admin las apruebe; el registro de admins no está permitido.
func (b *Backend) Register(in dto.RegisterRequest) (*RegisterResult, error) {
	email := normalizeEmail(in.Email)
	role := strings.ToUpper(strings.TrimSpace(in.Role))
	switch {
	case email == "" || in.Password == "":
		return nil, badRequest("Email and password are required")
	case len(in.Password) < MinPasswordLength:
		return nil, badRequest("Password must be at least 6 characters")
	case role == RoleAdmin:
		return nil, forbidden("Admin registration is not allowed")
	case role != RoleStudent && role != RoleCompany:
		return nil, badRequest("Invalid role")
	case role == RoleCompany && strings.TrimSpace(in.CompanyName) == "":
		return nil, badRequest("Company name is required")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), b.opts.BcryptCost)
	if err != nil {
		return nil, err
	}

	u := &userRecord{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		Status:       entity.AccountActive,
		CreatedAt:    b.now(),
	}
	if role == RoleCompany {
		u.Status = entity.AccountPending
		u.CompanyName = strings.TrimSpace(in.CompanyName)
	} else {
		u.Profile = entity.StudentProfile{
			FirstName: strings.TrimSpace(in.FirstName),
			LastName:  strings.TrimSpace(in.LastName),
			Skills:    []string{},
		}
	}

	b.st.mu.Lock()
	defer b.st.mu.Unlock()
	if _, exists := b.st.byEmail[email]; exists {
		return nil, conflict("User already exists")
	}
	b.st.users[u.ID] = u
	b.st.byEmail[email] = u.ID
	b.log.Info().Str("user_id", u.ID).Str("role", role).Msg("usuario registrado")

	msg := "User registered successfully"
	if u.Status == entity.AccountPending {
		msg = "Registration successful. Your account is pending admin approval."
	}
	return &RegisterResult{Message: msg, User: u.account()}, nil
}

// Login verifica email/password y emite un JWT; solo las cuentas ACTIVE entran.
func (b *Backend) Login(in dto.LoginRequest) (*dto.LoginResponse, error) {
	email := normalizeEmail(in.Email)

	b.st.mu.RLock()
	var u userRecord
	id, found := b.st.byEmail[email]
	if found {
		u = *b.st.users[id]
	}
	b.st.mu.RUnlock()

	if !found {
		return nil, unauthorized("Invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(in.Password)); err != nil {
		return nil, unauthorized("Invalid credentials")
	}
	switch u.Status {
	case entity.AccountActive:
	case entity.AccountPending:
		return nil, forbidden("Account pending admin approval")
	case entity.AccountBlocked:
		return nil, forbidden("Account is blocked")
	default:
		return nil, forbidden("Account has been rejected")
	}

	token, err := jwt.Generate(b.opts.JWT.Secret, u.ID, u.Email, u.Role, b.opts.JWT.Issuer, b.opts.JWT.Expiration)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token: token,
		User: entity.Identity{
			ID:          u.ID,
			DisplayName: u.displayName(),
			Email:       u.Email,
			Role:        u.Role,
		},
	}, nil
}

// Authorize comprueba que la cuenta del token sigue existiendo y activa.
func (b *Backend) Authorize(userID string) error {
	b.st.mu.RLock()
	defer b.st.mu.RUnlock()
	u, ok := b.st.users[userID]
	if !ok {
		return unauthorized("User no longer exists")
	}
	if u.Status != entity.AccountActive {
		return forbidden("Account is not active")
	}
	return nil
}

func normalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
