package repo

import (
	"context"
	"fmt"

	"varal/internal/airtable"
	"varal/internal/domain"
)

// CollectionPointRepositoryAirtable implements
// domain.CollectionPointRepository backed by the pontosdecoleta table.
type CollectionPointRepositoryAirtable struct {
	client *airtable.Client
	table  string
}

// NewCollectionPointRepository creates a new CollectionPointRepositoryAirtable.
func NewCollectionPointRepository(client *airtable.Client, table string) *CollectionPointRepositoryAirtable {
	return &CollectionPointRepositoryAirtable{client: client, table: table}
}

// List returns the drop-off locations sorted by name.
func (r *CollectionPointRepositoryAirtable) List(ctx context.Context) ([]domain.CollectionPoint, error) {
	records, err := r.client.List(ctx, r.table, airtable.ListOptions{SortField: "nome_local"})
	if err != nil {
		return nil, fmt.Errorf("listar pontos de coleta: %w", err)
	}
	points := make([]domain.CollectionPoint, 0, len(records))
	for _, record := range records {
		points = append(points, domain.CollectionPoint{
			ID:          record.ID,
			Name:        strField(record.Fields, "nome_local", "nome"),
			Address:     strField(record.Fields, "endereco"),
			Phone:       strField(record.Fields, "telefone"),
			Email:       strField(record.Fields, "email"),
			Hours:       strField(record.Fields, "horario_funcionamento"),
			Responsible: strField(record.Fields, "responsavel"),
			Status:      strField(record.Fields, "status"),
		})
	}
	return points, nil
}
