package airtable

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"
)

type stubResponse struct {
	status int
	body   string
}

type captureTransport struct {
	responses map[string]stubResponse
	requests  []*http.Request
	bodies    []string
}

func (t *captureTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	t.requests = append(t.requests, req)
	body := ""
	if req.Body != nil {
		raw, _ := io.ReadAll(req.Body)
		body = string(raw)
	}
	t.bodies = append(t.bodies, body)

	key := req.URL.Path
	if q := req.URL.Query().Get("offset"); q != "" {
		key += "?offset=" + q
	}
	stub, ok := t.responses[key]
	if !ok {
		stub = stubResponse{status: http.StatusNotFound, body: `{"error":{"type":"NOT_FOUND"}}`}
	}
	return &http.Response{
		StatusCode: stub.status,
		Body:       io.NopCloser(strings.NewReader(stub.body)),
		Header:     http.Header{"Content-Type": []string{"application/json"}},
	}, nil
}

func newTestClient(t *testing.T, transport *captureTransport) *Client {
	t.Helper()
	return NewClient(Options{
		APIKey:     "key-test",
		BaseID:     "appTest",
		BaseURL:    "https://airtable.test",
		HTTPClient: &http.Client{Transport: transport},
	})
}

func TestListFollowsPagination(t *testing.T) {
	transport := &captureTransport{responses: map[string]stubResponse{
		"/appTest/Cartinhas": {status: 200, body: `{"records":[{"id":"rec1","fields":{"nome":"Ana"}}],"offset":"itr2"}`},
		"/appTest/Cartinhas?offset=itr2": {status: 200, body: `{"records":[{"id":"rec2","fields":{"nome":"Bia"}}]}`},
	}}
	client := newTestClient(t, transport)

	records, err := client.List(context.Background(), "Cartinhas", ListOptions{SortField: "nome"})
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("len(records) = %d, want 2", len(records))
	}
	if records[0].ID != "rec1" || records[1].ID != "rec2" {
		t.Fatalf("unexpected records: %#v", records)
	}

	first := transport.requests[0]
	if got := first.URL.Query().Get("sort[0][field]"); got != "nome" {
		t.Fatalf("sort field = %q, want nome", got)
	}
	if got := first.URL.Query().Get("sort[0][direction]"); got != "asc" {
		t.Fatalf("sort direction = %q, want asc", got)
	}
	if got := first.Header.Get("Authorization"); got != "Bearer key-test" {
		t.Fatalf("authorization = %q", got)
	}
}

func TestListSendsFilterFormula(t *testing.T) {
	transport := &captureTransport{responses: map[string]stubResponse{
		"/appTest/Eventos": {status: 200, body: `{"records":[]}`},
	}}
	client := newTestClient(t, transport)

	formula := "IF({destaque_home}=TRUE(), TRUE(), FALSE())"
	if _, err := client.List(context.Background(), "Eventos", ListOptions{FilterByFormula: formula}); err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if got := transport.requests[0].URL.Query().Get("filterByFormula"); got != formula {
		t.Fatalf("filterByFormula = %q, want %q", got, formula)
	}
}

func TestGetMissingRecord(t *testing.T) {
	transport := &captureTransport{responses: map[string]stubResponse{}}
	client := newTestClient(t, transport)

	_, err := client.Get(context.Background(), "Cartinhas", "recMissing")
	if !errors.Is(err, ErrRecordNotFound) {
		t.Fatalf("Get error = %v, want ErrRecordNotFound", err)
	}
}

func TestCreatePostsFields(t *testing.T) {
	transport := &captureTransport{responses: map[string]stubResponse{
		"/appTest/Doacoes": {status: 200, body: `{"id":"recNew","fields":{"doador":"Ana"}}`},
	}}
	client := newTestClient(t, transport)

	record, err := client.Create(context.Background(), "Doacoes", map[string]any{"doador": "Ana"})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if record.ID != "recNew" {
		t.Fatalf("record.ID = %q, want recNew", record.ID)
	}
	if transport.requests[0].Method != http.MethodPost {
		t.Fatalf("method = %q, want POST", transport.requests[0].Method)
	}
	var payload struct {
		Fields map[string]any `json:"fields"`
	}
	if err := json.Unmarshal([]byte(transport.bodies[0]), &payload); err != nil {
		t.Fatalf("decode request body: %v", err)
	}
	if payload.Fields["doador"] != "Ana" {
		t.Fatalf("payload fields = %#v", payload.Fields)
	}
}

func TestUpdatePatchesRecord(t *testing.T) {
	transport := &captureTransport{responses: map[string]stubResponse{
		"/appTest/Cartinhas/rec1": {status: 200, body: `{"id":"rec1","fields":{"status":"adotada"}}`},
	}}
	client := newTestClient(t, transport)

	record, err := client.Update(context.Background(), "Cartinhas", "rec1", map[string]any{"status": "adotada"})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if record.Fields["status"] != "adotada" {
		t.Fatalf("fields = %#v", record.Fields)
	}
	if transport.requests[0].Method != http.MethodPatch {
		t.Fatalf("method = %q, want PATCH", transport.requests[0].Method)
	}
}

func TestStoreErrorCarriesMessage(t *testing.T) {
	transport := &captureTransport{responses: map[string]stubResponse{
		"/appTest/Cartinhas": {status: 422, body: `{"error":{"type":"INVALID_FILTER_BY_FORMULA","message":"formula inválida"}}`},
	}}
	client := newTestClient(t, transport)

	_, err := client.List(context.Background(), "Cartinhas", ListOptions{})
	var storeErr *StoreError
	if !errors.As(err, &storeErr) {
		t.Fatalf("error = %v, want *StoreError", err)
	}
	if storeErr.Status != 422 || storeErr.Type != "INVALID_FILTER_BY_FORMULA" {
		t.Fatalf("unexpected store error: %#v", storeErr)
	}
}

func TestMissingCredentials(t *testing.T) {
	client := NewClient(Options{})
	if client.HasCredentials() {
		t.Fatalf("HasCredentials() = true without key")
	}
	if _, err := client.List(context.Background(), "Cartinhas", ListOptions{}); !errors.Is(err, ErrMissingCredentials) {
		t.Fatalf("List error = %v, want ErrMissingCredentials", err)
	}
	if _, err := client.Create(context.Background(), "Doacoes", nil); !errors.Is(err, ErrMissingCredentials) {
		t.Fatalf("Create error = %v, want ErrMissingCredentials", err)
	}
}

func TestEscapeFormula(t *testing.T) {
	got := EscapeFormula(`cart"inha\`)
	want := `cart\"inha\\`
	if got != want {
		t.Fatalf("EscapeFormula = %q, want %q", got, want)
	}
}
