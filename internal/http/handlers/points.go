package handlers

import "net/http"

// nome and nome_local are both emitted: older pages read nome_local,
// newer ones read nome.
type pointDTO struct {
	ID          string `json:"id"`
	Nome        string `json:"nome"`
	NomeLocal   string `json:"nome_local"`
	Endereco    string `json:"endereco"`
	Telefone    string `json:"telefone"`
	Email       string `json:"email"`
	Horario     string `json:"horario_funcionamento"`
	Responsavel string `json:"responsavel,omitempty"`
}

// CollectionPoints lists the drop-off locations.
func (a *App) CollectionPoints(w http.ResponseWriter, r *http.Request) {
	points, err := a.Points.List(r.Context())
	if err != nil {
		a.fail(w, err)
		return
	}
	out := make([]pointDTO, 0, len(points))
	for _, point := range points {
		out = append(out, pointDTO{
			ID:          point.ID,
			Nome:        point.Name,
			NomeLocal:   point.Name,
			Endereco:    point.Address,
			Telefone:    point.Phone,
			Email:       point.Email,
			Horario:     point.Hours,
			Responsavel: point.Responsible,
		})
	}
	a.json(w, http.StatusOK, out)
}
