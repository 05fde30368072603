package repo

import (
	"context"
	"fmt"
	"strings"

	"varal/internal/airtable"
	"varal/internal/domain"
)

// UserRepositoryAirtable implements domain.UserRepository backed by the
// usuarios table.
type UserRepositoryAirtable struct {
	client *airtable.Client
	table  string
}

// NewUserRepository creates a new UserRepositoryAirtable.
func NewUserRepository(client *airtable.Client, table string) *UserRepositoryAirtable {
	return &UserRepositoryAirtable{client: client, table: table}
}

// Create persists a new account and returns the record id.
func (r *UserRepositoryAirtable) Create(ctx context.Context, user *domain.User) (string, error) {
	fields := map[string]any{
		"nome":          user.Name,
		"email":         strings.ToLower(user.Email),
		"senha":         user.PasswordHash,
		"tipo_usuario":  string(user.Type),
		"status":        user.Status,
		"data_cadastro": user.RegisteredAt,
	}
	if user.Phone != "" {
		fields["telefone"] = user.Phone
	}
	if user.CEP != "" {
		fields["cep"] = user.CEP
	}
	if user.Address != "" {
		fields["endereco"] = user.Address
	}
	if user.City != "" {
		fields["cidade"] = user.City
	}
	record, err := r.client.Create(ctx, r.table, fields)
	if err != nil {
		return "", fmt.Errorf("cadastrar usuário: %w", err)
	}
	return record.ID, nil
}

// GetByEmail looks up an account by address, case-insensitively.
func (r *UserRepositoryAirtable) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	formula := fmt.Sprintf(`LOWER({email})="%s"`, airtable.EscapeFormula(strings.ToLower(email)))
	records, err := r.client.List(ctx, r.table, airtable.ListOptions{FilterByFormula: formula, MaxRecords: 1})
	if err != nil {
		return nil, fmt.Errorf("buscar usuário: %w", err)
	}
	if len(records) == 0 {
		return nil, domain.ErrNotFound
	}
	record := records[0]
	userType := domain.UserType(strField(record.Fields, "tipo_usuario"))
	if userType == "" {
		userType = domain.UserDonor
	}
	return &domain.User{
		ID:           record.ID,
		Name:         strField(record.Fields, "nome"),
		Email:        strField(record.Fields, "email"),
		PasswordHash: strField(record.Fields, "senha"),
		Type:         userType,
		Status:       strField(record.Fields, "status"),
		Phone:        strField(record.Fields, "telefone"),
		CEP:          strField(record.Fields, "cep"),
		Address:      strField(record.Fields, "endereco"),
		City:         strField(record.Fields, "cidade"),
		RegisteredAt: strField(record.Fields, "data_cadastro"),
	}, nil
}
