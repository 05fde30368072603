package repo

import (
	"context"
	"errors"
	"fmt"

	"varal/internal/airtable"
	"varal/internal/domain"
)

const letterPlaceholderImage = "/imagens/cartinha-padrao.png"

// LetterRepositoryAirtable implements domain.LetterRepository backed by
// the cartinhas table.
type LetterRepositoryAirtable struct {
	client *airtable.Client
	table  string
}

// NewLetterRepository creates a new LetterRepositoryAirtable.
func NewLetterRepository(client *airtable.Client, table string) *LetterRepositoryAirtable {
	return &LetterRepositoryAirtable{client: client, table: table}
}

// List returns the letters on the varal, sorted by child name.
func (r *LetterRepositoryAirtable) List(ctx context.Context) ([]domain.Letter, error) {
	records, err := r.client.List(ctx, r.table, airtable.ListOptions{
		SortField:  "nome",
		MaxRecords: 100,
	})
	if err != nil {
		return nil, fmt.Errorf("listar cartinhas: %w", err)
	}
	letters := make([]domain.Letter, 0, len(records))
	for _, record := range records {
		letters = append(letters, mapLetter(record))
	}
	return letters, nil
}

// Resolve locates a letter by record id first and by the external
// codigo_cartinha column when the id lookup misses.
func (r *LetterRepositoryAirtable) Resolve(ctx context.Context, ref string) (*domain.Letter, error) {
	record, err := r.client.Get(ctx, r.table, ref)
	if err == nil {
		letter := mapLetter(*record)
		return &letter, nil
	}
	if !errors.Is(err, airtable.ErrRecordNotFound) {
		return nil, fmt.Errorf("buscar cartinha %q: %w", ref, err)
	}

	formula := fmt.Sprintf(`{codigo_cartinha}="%s"`, airtable.EscapeFormula(ref))
	records, err := r.client.List(ctx, r.table, airtable.ListOptions{FilterByFormula: formula, MaxRecords: 1})
	if err != nil {
		return nil, fmt.Errorf("buscar cartinha %q: %w", ref, err)
	}
	if len(records) == 0 {
		return nil, domain.ErrNotFound
	}
	letter := mapLetter(records[0])
	return &letter, nil
}

// MarkAdopted flips a letter to adotada. The status is re-read right
// before the write so a letter taken by a concurrent adoption fails
// with ErrLetterAdopted instead of being marked twice.
func (r *LetterRepositoryAirtable) MarkAdopted(ctx context.Context, id string) error {
	record, err := r.client.Get(ctx, r.table, id)
	if err != nil {
		if errors.Is(err, airtable.ErrRecordNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("buscar cartinha %q: %w", id, err)
	}
	current := mapLetter(*record)
	if !current.Available() {
		return domain.ErrLetterAdopted
	}
	if _, err := r.client.Update(ctx, r.table, id, map[string]any{"status": string(domain.LetterAdopted)}); err != nil {
		return fmt.Errorf("atualizar cartinha %q: %w", id, err)
	}
	return nil
}

func mapLetter(record airtable.Record) domain.Letter {
	status := domain.LetterStatus(strField(record.Fields, "status"))
	if status == "" {
		status = domain.LetterAvailable
	}
	name := strField(record.Fields, "nome", "crianca")
	if name == "" {
		name = "Criança"
	}
	return domain.Letter{
		ID:     record.ID,
		Code:   strField(record.Fields, "codigo_cartinha"),
		Name:   name,
		Age:    strField(record.Fields, "idade"),
		Wish:   strField(record.Fields, "sonho", "carta", "mensagem", "texto"),
		Image:  imageField(record.Fields, letterPlaceholderImage, "imagem", "foto", "anexo", "imagem_carta", "scan", "arquivo"),
		Status: status,
	}
}
