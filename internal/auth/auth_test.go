package auth

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"varal/internal/domain"
)

type fakeUsers struct {
	byEmail map[string]*domain.User
	created []*domain.User
}

func (f *fakeUsers) Create(ctx context.Context, user *domain.User) (string, error) {
	f.created = append(f.created, user)
	return "recU1", nil
}

func (f *fakeUsers) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if user, ok := f.byEmail[strings.ToLower(email)]; ok {
		return user, nil
	}
	return nil, domain.ErrNotFound
}

func TestRegisterHashesPassword(t *testing.T) {
	users := &fakeUsers{byEmail: map[string]*domain.User{}}
	service := NewService(Options{Users: users, Secret: "segredo"})

	id, err := service.Register(context.Background(), RegisterRequest{
		Name:     "Ana",
		Email:    "ana@example.com",
		Password: "senha-forte",
	})
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if id != "recU1" {
		t.Fatalf("id = %q, want recU1", id)
	}
	created := users.created[0]
	if created.PasswordHash == "senha-forte" {
		t.Fatalf("password stored in plaintext")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(created.PasswordHash), []byte("senha-forte")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
	if created.Type != domain.UserDonor {
		t.Fatalf("Type = %q, want doador", created.Type)
	}
	if created.Status != "ativo" {
		t.Fatalf("Status = %q, want ativo", created.Status)
	}
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	users := &fakeUsers{byEmail: map[string]*domain.User{
		"ana@example.com": {ID: "recU1", Email: "ana@example.com"},
	}}
	service := NewService(Options{Users: users})

	_, err := service.Register(context.Background(), RegisterRequest{
		Name:     "Ana",
		Email:    "ana@example.com",
		Password: "senha",
	})
	if !errors.Is(err, domain.ErrDuplicateEmail) {
		t.Fatalf("Register error = %v, want ErrDuplicateEmail", err)
	}
	if len(users.created) != 0 {
		t.Fatalf("no account should be created, got %d", len(users.created))
	}
}

func TestRegisterValidatesFields(t *testing.T) {
	service := NewService(Options{Users: &fakeUsers{byEmail: map[string]*domain.User{}}})
	tests := []struct {
		name string
		req  RegisterRequest
	}{
		{"missing name", RegisterRequest{Email: "a@b.com", Password: "x"}},
		{"missing email", RegisterRequest{Name: "Ana", Password: "x"}},
		{"bad email", RegisterRequest{Name: "Ana", Email: "not-an-email", Password: "x"}},
		{"missing password", RegisterRequest{Name: "Ana", Email: "a@b.com"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := service.Register(context.Background(), tc.req); !errors.Is(err, domain.ErrInvalidRequest) {
				t.Fatalf("Register error = %v, want ErrInvalidRequest", err)
			}
		})
	}
}

func TestLoginSuccess(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("senha-forte"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}
	users := &fakeUsers{byEmail: map[string]*domain.User{
		"ana@example.com": {
			ID:           "recU1",
			Name:         "Ana",
			Email:        "ana@example.com",
			PasswordHash: string(hash),
			Type:         domain.UserDonor,
		},
	}}
	service := NewService(Options{Users: users, Secret: "segredo", TokenTTL: time.Hour})

	user, token, err := service.Login(context.Background(), "ana@example.com", "senha-forte")
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if user.ID != "recU1" {
		t.Fatalf("user.ID = %q, want recU1", user.ID)
	}
	claims, err := VerifyToken("segredo", token)
	if err != nil {
		t.Fatalf("VerifyToken: %v", err)
	}
	if claims.Sub != "recU1" || claims.Type != "doador" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	hash, _ := bcrypt.GenerateFromPassword([]byte("certa"), bcrypt.MinCost)
	users := &fakeUsers{byEmail: map[string]*domain.User{
		"ana@example.com": {ID: "recU1", Email: "ana@example.com", PasswordHash: string(hash)},
	}}
	service := NewService(Options{Users: users})

	if _, _, err := service.Login(context.Background(), "ana@example.com", "errada"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("Login error = %v, want ErrInvalidCredentials", err)
	}
}

func TestLoginUnknownEmail(t *testing.T) {
	service := NewService(Options{Users: &fakeUsers{byEmail: map[string]*domain.User{}}})

	if _, _, err := service.Login(context.Background(), "ninguem@example.com", "senha"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("Login error = %v, want ErrInvalidCredentials", err)
	}
}

func TestVerifyTokenRejectsTampering(t *testing.T) {
	token, err := SignToken("segredo-a", TokenClaims{Sub: "recU1", Exp: time.Now().Add(time.Hour).Unix()})
	if err != nil {
		t.Fatalf("SignToken: %v", err)
	}
	if _, err := VerifyToken("segredo-b", token); err == nil {
		t.Fatalf("VerifyToken accepted a foreign signature")
	}
}

func TestVerifyTokenRejectsExpired(t *testing.T) {
	token, err := SignToken("segredo", TokenClaims{Sub: "recU1", Exp: time.Now().Add(-time.Minute).Unix()})
	if err != nil {
		t.Fatalf("SignToken: %v", err)
	}
	if _, err := VerifyToken("segredo", token); err == nil {
		t.Fatalf("VerifyToken accepted an expired token")
	}
}
