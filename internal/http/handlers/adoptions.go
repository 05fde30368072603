package handlers

import (
	"encoding/json"
	"net/http"

	"varal/internal/adoption"
)

// adoptionRequest accepts the two shapes observed in the wild: the
// single-letter form {doador,email,cartinha,ponto_coleta} and the cart
// form {usuario,email,cartinhas[],ponto_coleta}.
type adoptionRequest struct {
	Doador      string   `json:"doador"`
	Usuario     string   `json:"usuario"`
	Email       string   `json:"email"`
	Cartinha    string   `json:"cartinha"`
	IDCartinha  string   `json:"id_cartinha"`
	Cartinhas   []string `json:"cartinhas"`
	PontoColeta string   `json:"ponto_coleta"`
}

func (r adoptionRequest) donor() string {
	if r.Doador != "" {
		return r.Doador
	}
	return r.Usuario
}

func (r adoptionRequest) letterRef() string {
	if r.Cartinha != "" {
		return r.Cartinha
	}
	return r.IDCartinha
}

type warningDTO struct {
	Etapa   string `json:"etapa"`
	Detalhe string `json:"detalhe"`
}

type batchItemDTO struct {
	Cartinha string       `json:"cartinha"`
	ID       string       `json:"id,omitempty"`
	Erro     string       `json:"erro,omitempty"`
	Avisos   []warningDTO `json:"avisos,omitempty"`
}

// AdoptionsCreate runs the adoption workflow for one letter or for the
// whole cart.
func (a *App) AdoptionsCreate(w http.ResponseWriter, r *http.Request) {
	var req adoptionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "payload inválido")
		return
	}

	if len(req.Cartinhas) > 0 {
		a.adoptBatch(w, r, req)
		return
	}

	result, err := a.Adoptions.Adopt(r.Context(), adoption.Request{
		Donor:           req.donor(),
		Email:           req.Email,
		LetterRef:       req.letterRef(),
		CollectionPoint: req.PontoColeta,
	})
	if err != nil {
		a.fail(w, err)
		return
	}
	a.json(w, http.StatusCreated, map[string]any{
		"ok":       true,
		"id":       result.DonationID,
		"mensagem": result.Message,
		"email":    string(result.EmailStatus),
		"avisos":   toWarnings(result.Warnings),
	})
}

func (a *App) adoptBatch(w http.ResponseWriter, r *http.Request, req adoptionRequest) {
	batch, err := a.Adoptions.AdoptBatch(r.Context(), adoption.BatchRequest{
		Donor:           req.donor(),
		Email:           req.Email,
		LetterRefs:      req.Cartinhas,
		CollectionPoint: req.PontoColeta,
	})
	if err != nil {
		a.fail(w, err)
		return
	}
	items := make([]batchItemDTO, 0, len(batch.Items))
	for _, item := range batch.Items {
		items = append(items, batchItemDTO{
			Cartinha: item.LetterRef,
			ID:       item.DonationID,
			Erro:     item.Error,
			Avisos:   toWarnings(item.Warnings),
		})
	}
	status := http.StatusCreated
	if batch.Adopted == 0 {
		status = http.StatusConflict
	}
	a.json(w, status, map[string]any{
		"ok":       batch.Adopted > 0,
		"adotadas": batch.Adopted,
		"itens":    items,
	})
}

func toWarnings(warnings []adoption.Warning) []warningDTO {
	if len(warnings) == 0 {
		return nil
	}
	out := make([]warningDTO, 0, len(warnings))
	for _, warning := range warnings {
		out = append(out, warningDTO{Etapa: warning.Step, Detalhe: warning.Detail})
	}
	return out
}
