package auth

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"varal/internal/domain"
	"varal/internal/infra"
)

// Service handles registration and login. Passwords are stored as
// bcrypt hashes; the plaintext comparison of the legacy site is a
// defect, not a behavior to preserve.
type Service struct {
	users    domain.UserRepository
	secret   string
	tokenTTL time.Duration
	logger   *infra.Logger
}

// Options wires the auth service.
type Options struct {
	Users    domain.UserRepository
	Secret   string
	TokenTTL time.Duration
	Logger   *infra.Logger
}

// RegisterRequest carries the signup form fields.
type RegisterRequest struct {
	Name     string
	Email    string
	Password string
	Type     string
	Phone    string
	CEP      string
	Address  string
	City     string
}

// NewService creates the auth service. Without a secret, login still
// works but no session token is issued.
func NewService(opts Options) *Service {
	ttl := opts.TokenTTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	logger := opts.Logger
	if logger == nil {
		discard := zerolog.Nop()
		l := infra.Logger(discard)
		logger = &l
	}
	return &Service{users: opts.Users, secret: opts.Secret, tokenTTL: ttl, logger: logger}
}

// Register creates a new account and returns its id. The e-mail must
// not be in use; duplicates fail with domain.ErrDuplicateEmail.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (string, error) {
	name := strings.TrimSpace(req.Name)
	email := strings.TrimSpace(req.Email)
	if name == "" {
		return "", fmt.Errorf("%w: nome é obrigatório", domain.ErrInvalidRequest)
	}
	if email == "" {
		return "", fmt.Errorf("%w: e-mail é obrigatório", domain.ErrInvalidRequest)
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return "", fmt.Errorf("%w: e-mail inválido", domain.ErrInvalidRequest)
	}
	if strings.TrimSpace(req.Password) == "" {
		return "", fmt.Errorf("%w: senha é obrigatória", domain.ErrInvalidRequest)
	}

	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return "", domain.ErrDuplicateEmail
	} else if !errors.Is(err, domain.ErrNotFound) {
		return "", err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("gerar hash de senha: %w", err)
	}

	userType := domain.UserType(strings.TrimSpace(req.Type))
	switch userType {
	case domain.UserDonor, domain.UserAdmin, domain.UserVolunteer:
	default:
		userType = domain.UserDonor
	}

	id, err := s.users.Create(ctx, &domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Type:         userType,
		Status:       "ativo",
		Phone:        strings.TrimSpace(req.Phone),
		CEP:          strings.TrimSpace(req.CEP),
		Address:      strings.TrimSpace(req.Address),
		City:         strings.TrimSpace(req.City),
		RegisteredAt: time.Now().Format("2006-01-02"),
	})
	if err != nil {
		return "", err
	}
	s.logger.Info().Str("usuario", id).Msg("auth: novo cadastro")
	return id, nil
}

// Login checks the credentials and returns the account plus a session
// token. Unknown address and wrong password are indistinguishable to
// the caller.
func (s *Service) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	email = strings.TrimSpace(email)
	if email == "" || strings.TrimSpace(password) == "" {
		return nil, "", fmt.Errorf("%w: e-mail e senha são obrigatórios", domain.ErrInvalidRequest)
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, "", domain.ErrInvalidCredentials
		}
		return nil, "", err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", domain.ErrInvalidCredentials
	}

	token := ""
	if s.secret != "" {
		token, err = SignToken(s.secret, TokenClaims{
			Sub:    user.ID,
			Name:   user.Name,
			Type:   string(user.Type),
			Exp:    time.Now().Add(s.tokenTTL).Unix(),
			Issuer: "varal-dos-sonhos",
		})
		if err != nil {
			return nil, "", fmt.Errorf("assinar token: %w", err)
		}
	}
	return user, token, nil
}
