package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"varal/internal/domain"
)

type eventSummaryDTO struct {
	ID         string `json:"id"`
	Nome       string `json:"nome"`
	DataInicio string `json:"data_inicio"`
	Descricao  string `json:"descricao"`
	Imagem     string `json:"imagem"`
}

type eventDTO struct {
	eventSummaryDTO
	DataFim     string `json:"data_fim,omitempty"`
	Local       string `json:"local,omitempty"`
	Status      string `json:"status,omitempty"`
	Responsavel string `json:"responsavel,omitempty"`
}

// EventsHighlighted lists the events flagged for the home page.
func (a *App) EventsHighlighted(w http.ResponseWriter, r *http.Request) {
	events, err := a.Events.ListHighlighted(r.Context())
	if err != nil {
		a.fail(w, err)
		return
	}
	out := make([]eventSummaryDTO, 0, len(events))
	for _, event := range events {
		out = append(out, toEventSummary(event))
	}
	a.json(w, http.StatusOK, out)
}

// EventsAll lists every published event.
func (a *App) EventsAll(w http.ResponseWriter, r *http.Request) {
	events, err := a.Events.ListAll(r.Context())
	if err != nil {
		a.fail(w, err)
		return
	}
	out := make([]eventDTO, 0, len(events))
	for _, event := range events {
		out = append(out, toEvent(event))
	}
	a.json(w, http.StatusOK, out)
}

// EventByID returns one event or 404.
func (a *App) EventByID(w http.ResponseWriter, r *http.Request) {
	a.eventDetail(w, r, chi.URLParam(r, "id"))
}

// EventDetail is the legacy query-string variant used by
// evento-detalhe.html.
func (a *App) EventDetail(w http.ResponseWriter, r *http.Request) {
	a.eventDetail(w, r, r.URL.Query().Get("id"))
}

func (a *App) eventDetail(w http.ResponseWriter, r *http.Request, id string) {
	if id == "" {
		a.error(w, http.StatusBadRequest, "id do evento é obrigatório")
		return
	}
	event, err := a.Events.GetByID(r.Context(), id)
	if err != nil {
		a.fail(w, err)
		return
	}
	a.json(w, http.StatusOK, toEvent(*event))
}

func toEventSummary(event domain.Event) eventSummaryDTO {
	return eventSummaryDTO{
		ID:         event.ID,
		Nome:       event.Name,
		DataInicio: event.StartDate,
		Descricao:  event.Description,
		Imagem:     event.Image,
	}
}

func toEvent(event domain.Event) eventDTO {
	return eventDTO{
		eventSummaryDTO: toEventSummary(event),
		DataFim:         event.EndDate,
		Local:           event.Location,
		Status:          event.Status,
		Responsavel:     event.Responsible,
	}
}
