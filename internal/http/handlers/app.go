package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"varal/internal/adoption"
	"varal/internal/airtable"
	"varal/internal/auth"
	"varal/internal/domain"
	"varal/internal/infra"
)

type adoptionService interface {
	Adopt(ctx context.Context, req adoption.Request) (*adoption.Result, error)
	AdoptBatch(ctx context.Context, req adoption.BatchRequest) (*adoption.BatchResult, error)
}

type authService interface {
	Register(ctx context.Context, req auth.RegisterRequest) (string, error)
	Login(ctx context.Context, email, password string) (*domain.User, string, error)
}

type answerer interface {
	Answer(ctx context.Context, question string) (string, error)
}

// App bundles the handlers' collaborators.
type App struct {
	Letters   domain.LetterRepository
	Events    domain.EventRepository
	Points    domain.CollectionPointRepository
	Adoptions adoptionService
	Auth      authService
	Bot       answerer
	Cfg       *infra.Config
	Logger    infra.Logger
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (a *App) error(w http.ResponseWriter, code int, message string) {
	a.json(w, code, map[string]string{"error": message})
}

// fail translates domain errors into the API's status codes.
func (a *App) fail(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidRequest):
		a.error(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrInvalidCredentials):
		a.error(w, http.StatusUnauthorized, "e-mail ou senha incorretos")
	case errors.Is(err, domain.ErrNotFound):
		a.error(w, http.StatusNotFound, "registro não encontrado")
	case errors.Is(err, domain.ErrDuplicateEmail):
		a.error(w, http.StatusConflict, "e-mail já cadastrado")
	case errors.Is(err, domain.ErrLetterAdopted):
		a.error(w, http.StatusConflict, "cartinha já adotada")
	case errors.Is(err, airtable.ErrMissingCredentials):
		a.Logger.Error().Err(err).Msg("handler: credenciais do Airtable ausentes")
		a.error(w, http.StatusInternalServerError, "banco de dados não configurado")
	default:
		a.Logger.Error().Err(err).Msg("handler: erro interno")
		a.error(w, http.StatusInternalServerError, "erro interno no servidor")
	}
}
