package handlers

import "net/http"

type letterDTO struct {
	ID     string `json:"id"`
	Codigo string `json:"codigo_cartinha,omitempty"`
	Nome   string `json:"nome"`
	Idade  string `json:"idade"`
	Sonho  string `json:"sonho"`
	Imagem string `json:"imagem"`
	Status string `json:"status"`
}

// LettersList lists the wish letters hanging on the varal.
func (a *App) LettersList(w http.ResponseWriter, r *http.Request) {
	letters, err := a.Letters.List(r.Context())
	if err != nil {
		a.fail(w, err)
		return
	}
	out := make([]letterDTO, 0, len(letters))
	for _, letter := range letters {
		out = append(out, letterDTO{
			ID:     letter.ID,
			Codigo: letter.Code,
			Nome:   letter.Name,
			Idade:  letter.Age,
			Sonho:  letter.Wish,
			Imagem: letter.Image,
			Status: string(letter.Status),
		})
	}
	a.json(w, http.StatusOK, out)
}
