package repo

import (
	"context"
	"errors"
	"fmt"

	"varal/internal/airtable"
	"varal/internal/domain"
)

const eventPlaceholderImage = "/imagens/evento-padrao.jpg"

// highlightFormula selects the events flagged for the home page.
const highlightFormula = "IF({destaque_home}=TRUE(), TRUE(), FALSE())"

// EventRepositoryAirtable implements domain.EventRepository backed by
// the eventos table.
type EventRepositoryAirtable struct {
	client *airtable.Client
	table  string
}

// NewEventRepository creates a new EventRepositoryAirtable.
func NewEventRepository(client *airtable.Client, table string) *EventRepositoryAirtable {
	return &EventRepositoryAirtable{client: client, table: table}
}

// ListHighlighted returns the home-page events sorted by start date.
func (r *EventRepositoryAirtable) ListHighlighted(ctx context.Context) ([]domain.Event, error) {
	records, err := r.client.List(ctx, r.table, airtable.ListOptions{
		FilterByFormula: highlightFormula,
		SortField:       "data_inicio",
	})
	if err != nil {
		return nil, fmt.Errorf("listar eventos em destaque: %w", err)
	}
	return mapEvents(records), nil
}

// ListAll returns every published event sorted by start date.
func (r *EventRepositoryAirtable) ListAll(ctx context.Context) ([]domain.Event, error) {
	records, err := r.client.List(ctx, r.table, airtable.ListOptions{SortField: "data_inicio"})
	if err != nil {
		return nil, fmt.Errorf("listar eventos: %w", err)
	}
	return mapEvents(records), nil
}

// GetByID fetches one event; domain.ErrNotFound on a miss.
func (r *EventRepositoryAirtable) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	record, err := r.client.Get(ctx, r.table, id)
	if err != nil {
		if errors.Is(err, airtable.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("buscar evento %q: %w", id, err)
	}
	event := mapEvent(*record)
	return &event, nil
}

func mapEvents(records []airtable.Record) []domain.Event {
	events := make([]domain.Event, 0, len(records))
	for _, record := range records {
		events = append(events, mapEvent(record))
	}
	return events
}

func mapEvent(record airtable.Record) domain.Event {
	name := strField(record.Fields, "nome_evento", "nome")
	if name == "" {
		name = "Evento sem nome"
	}
	return domain.Event{
		ID:          record.ID,
		Name:        name,
		Description: strField(record.Fields, "descricao"),
		StartDate:   strField(record.Fields, "data_inicio"),
		EndDate:     strField(record.Fields, "data_fim"),
		Location:    strField(record.Fields, "local"),
		Status:      strField(record.Fields, "status"),
		Responsible: strField(record.Fields, "responsavel"),
		Image:       imageField(record.Fields, eventPlaceholderImage, "imagem_evento", "Imagem_evento", "imagem"),
		Highlight:   boolField(record.Fields, "destaque_home"),
	}
}
