package handlers

import (
	"encoding/json"
	"net/http"

	"varal/internal/auth"
	"varal/internal/domain"
)

type loginRequest struct {
	Email string `json:"email"`
	Senha string `json:"senha"`
}

type userDTO struct {
	ID          string `json:"id"`
	Nome        string `json:"nome"`
	Email       string `json:"email"`
	TipoUsuario string `json:"tipo_usuario"`
}

type cadastroRequest struct {
	Nome        string `json:"nome"`
	Email       string `json:"email"`
	Senha       string `json:"senha"`
	TipoUsuario string `json:"tipo_usuario"`
	Telefone    string `json:"telefone"`
	CEP         string `json:"cep"`
	Endereco    string `json:"endereco"`
	Cidade      string `json:"cidade"`
}

// Login authenticates a visitor and returns the account plus a session
// token.
func (a *App) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "payload inválido")
		return
	}
	user, token, err := a.Auth.Login(r.Context(), req.Email, req.Senha)
	if err != nil {
		a.fail(w, err)
		return
	}
	a.json(w, http.StatusOK, map[string]any{
		"usuario": toUser(user),
		"token":   token,
	})
}

// Cadastro registers a new account.
func (a *App) Cadastro(w http.ResponseWriter, r *http.Request) {
	var req cadastroRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "payload inválido")
		return
	}
	id, err := a.Auth.Register(r.Context(), auth.RegisterRequest{
		Name:     req.Nome,
		Email:    req.Email,
		Password: req.Senha,
		Type:     req.TipoUsuario,
		Phone:    req.Telefone,
		CEP:      req.CEP,
		Address:  req.Endereco,
		City:     req.Cidade,
	})
	if err != nil {
		a.fail(w, err)
		return
	}
	a.json(w, http.StatusCreated, map[string]string{"id": id})
}

func toUser(user *domain.User) userDTO {
	return userDTO{
		ID:          user.ID,
		Nome:        user.Name,
		Email:       user.Email,
		TipoUsuario: string(user.Type),
	}
}
