package handlers

import (
	"encoding/json"
	"net/http"
)

type chatRequest struct {
	Pergunta string `json:"pergunta"`
}

// Cloudinho answers a visitor question with a canned response.
func (a *App) Cloudinho(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "payload inválido")
		return
	}
	answer, err := a.Bot.Answer(r.Context(), req.Pergunta)
	if err != nil {
		a.fail(w, err)
		return
	}
	a.json(w, http.StatusOK, map[string]string{"resposta": answer})
}
