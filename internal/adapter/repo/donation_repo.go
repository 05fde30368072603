package repo

import (
	"context"
	"fmt"

	"varal/internal/airtable"
	"varal/internal/domain"
)

// DonationRepositoryAirtable implements domain.DonationRepository
// backed by the doacoes table.
type DonationRepositoryAirtable struct {
	client *airtable.Client
	table  string
}

// NewDonationRepository creates a new DonationRepositoryAirtable.
func NewDonationRepository(client *airtable.Client, table string) *DonationRepositoryAirtable {
	return &DonationRepositoryAirtable{client: client, table: table}
}

// Create persists one adoption pledge and returns the record id
// assigned by the store.
func (r *DonationRepositoryAirtable) Create(ctx context.Context, donation *domain.Donation) (string, error) {
	fields := map[string]any{
		"doador":       donation.Donor,
		"email_doador": donation.Email,
		"cartinha":     donation.LetterRef,
		"ponto_coleta": donation.CollectionPoint,
		"status":       string(donation.Status),
		"mensagem":     donation.Message,
		"data_adocao":  donation.CreatedAt.Format("2006-01-02"),
		"data_entrega": donation.DeliverBy.Format("2006-01-02"),
	}
	record, err := r.client.Create(ctx, r.table, fields)
	if err != nil {
		return "", fmt.Errorf("registrar doação: %w", err)
	}
	return record.ID, nil
}
