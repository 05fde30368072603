package repo

import (
	"context"
	"fmt"
	"strings"

	"varal/internal/airtable"
	"varal/internal/domain"
)

// KnowledgeBaseRepositoryAirtable implements
// domain.KnowledgeBaseRepository backed by the cloudinho_kb table.
type KnowledgeBaseRepositoryAirtable struct {
	client *airtable.Client
	table  string
}

// NewKnowledgeBaseRepository creates a new KnowledgeBaseRepositoryAirtable.
func NewKnowledgeBaseRepository(client *airtable.Client, table string) *KnowledgeBaseRepositoryAirtable {
	return &KnowledgeBaseRepositoryAirtable{client: client, table: table}
}

// List returns every canned answer. Keywords are accepted either as a
// comma-separated string column or as a multi-select array.
func (r *KnowledgeBaseRepositoryAirtable) List(ctx context.Context) ([]domain.KBEntry, error) {
	records, err := r.client.List(ctx, r.table, airtable.ListOptions{})
	if err != nil {
		return nil, fmt.Errorf("listar base de conhecimento: %w", err)
	}
	entries := make([]domain.KBEntry, 0, len(records))
	for _, record := range records {
		entry := domain.KBEntry{
			ID:       record.ID,
			Keywords: keywordList(record.Fields["palavras_chave"]),
			Answer:   strField(record.Fields, "resposta"),
		}
		if entry.Answer == "" || len(entry.Keywords) == 0 {
			continue
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func keywordList(raw any) []string {
	var parts []string
	switch value := raw.(type) {
	case string:
		parts = strings.Split(value, ",")
	case []any:
		for _, item := range value {
			if s, ok := item.(string); ok {
				parts = append(parts, s)
			}
		}
	}
	keywords := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			keywords = append(keywords, trimmed)
		}
	}
	return keywords
}
