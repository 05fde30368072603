package airtable

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"varal/internal/infra"
)

// ErrMissingCredentials indicates the client was configured without an
// API key or base id.
var ErrMissingCredentials = errors.New("airtable: api key and base id are required")

// ErrRecordNotFound indicates an id lookup yielded nothing.
var ErrRecordNotFound = errors.New("airtable: record not found")

// StoreError carries a failure reported by the Airtable API.
type StoreError struct {
	Status  int
	Type    string
	Message string
}

func (e *StoreError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("airtable: %s (%s)", e.Message, e.Type)
	}
	return fmt.Sprintf("airtable: status %d", e.Status)
}

// Options configures the Airtable REST client.
type Options struct {
	APIKey         string
	BaseID         string
	BaseURL        string
	HTTPClient     *http.Client
	Logger         *infra.Logger
	RequestTimeout time.Duration
}

// Client performs HTTP calls against one Airtable base. Each call is a
// single attempt; failures propagate to the caller.
type Client struct {
	apiKey     string
	baseID     string
	baseURL    string
	httpClient *http.Client
	logger     *infra.Logger
}

// Record is one row of a table.
type Record struct {
	ID          string         `json:"id"`
	Fields      map[string]any `json:"fields"`
	CreatedTime string         `json:"createdTime,omitempty"`
}

// ListOptions narrows a List call. Zero values mean "no constraint".
type ListOptions struct {
	FilterByFormula string
	SortField       string
	SortDirection   string
	MaxRecords      int
}

type listResponse struct {
	Records []Record `json:"records"`
	Offset  string   `json:"offset"`
}

type recordPayload struct {
	Fields map[string]any `json:"fields"`
}

type errorResponse struct {
	Error struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

// NewClient constructs a client with sane defaults and injected
// dependencies.
func NewClient(opts Options) *Client {
	httpClient := opts.HTTPClient
	if httpClient == nil {
		timeout := opts.RequestTimeout
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	baseURL := strings.TrimRight(opts.BaseURL, "/")
	if baseURL == "" {
		baseURL = "https://api.airtable.com/v0"
	}
	var logger *infra.Logger
	if opts.Logger != nil {
		logger = opts.Logger
	} else {
		discard := zerolog.Nop()
		l := infra.Logger(discard)
		logger = &l
	}
	return &Client{
		apiKey:     strings.TrimSpace(opts.APIKey),
		baseID:     strings.TrimSpace(opts.BaseID),
		baseURL:    baseURL,
		httpClient: httpClient,
		logger:     logger,
	}
}

// HasCredentials reports whether the client can reach the remote base.
func (c *Client) HasCredentials() bool {
	return c.apiKey != "" && c.baseID != ""
}

// List returns the records of a table, following pagination until the
// store stops returning an offset.
func (c *Client) List(ctx context.Context, table string, opts ListOptions) ([]Record, error) {
	if !c.HasCredentials() {
		return nil, ErrMissingCredentials
	}
	var records []Record
	offset := ""
	for {
		query := url.Values{}
		if opts.FilterByFormula != "" {
			query.Set("filterByFormula", opts.FilterByFormula)
		}
		if opts.SortField != "" {
			direction := opts.SortDirection
			if direction == "" {
				direction = "asc"
			}
			query.Set("sort[0][field]", opts.SortField)
			query.Set("sort[0][direction]", direction)
		}
		if opts.MaxRecords > 0 {
			query.Set("maxRecords", strconv.Itoa(opts.MaxRecords))
		}
		if offset != "" {
			query.Set("offset", offset)
		}
		endpoint := c.tableURL(table)
		if encoded := query.Encode(); encoded != "" {
			endpoint += "?" + encoded
		}
		var page listResponse
		if err := c.do(ctx, http.MethodGet, endpoint, nil, &page); err != nil {
			return nil, err
		}
		records = append(records, page.Records...)
		if page.Offset == "" {
			break
		}
		if opts.MaxRecords > 0 && len(records) >= opts.MaxRecords {
			break
		}
		offset = page.Offset
	}
	if opts.MaxRecords > 0 && len(records) > opts.MaxRecords {
		records = records[:opts.MaxRecords]
	}
	return records, nil
}

// Get fetches one record by id. Returns ErrRecordNotFound on a miss.
func (c *Client) Get(ctx context.Context, table, id string) (*Record, error) {
	if !c.HasCredentials() {
		return nil, ErrMissingCredentials
	}
	var record Record
	err := c.do(ctx, http.MethodGet, c.tableURL(table)+"/"+url.PathEscape(id), nil, &record)
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// Create inserts one record and returns it with the assigned id.
func (c *Client) Create(ctx context.Context, table string, fields map[string]any) (*Record, error) {
	if !c.HasCredentials() {
		return nil, ErrMissingCredentials
	}
	var record Record
	err := c.do(ctx, http.MethodPost, c.tableURL(table), &recordPayload{Fields: fields}, &record)
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// Update patches the given fields of a record, leaving the rest intact.
func (c *Client) Update(ctx context.Context, table, id string, fields map[string]any) (*Record, error) {
	if !c.HasCredentials() {
		return nil, ErrMissingCredentials
	}
	var record Record
	endpoint := c.tableURL(table) + "/" + url.PathEscape(id)
	err := c.do(ctx, http.MethodPatch, endpoint, &recordPayload{Fields: fields}, &record)
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (c *Client) tableURL(table string) string {
	return c.baseURL + "/" + url.PathEscape(c.baseID) + "/" + url.PathEscape(table)
}

func (c *Client) do(ctx context.Context, method, endpoint string, payload, out any) error {
	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("airtable: encode request: %w", err)
		}
		body = bytes.NewReader(encoded)
	}
	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return fmt.Errorf("airtable: build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("airtable: http request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("airtable: read response: %w", err)
	}
	if resp.StatusCode == http.StatusNotFound {
		return ErrRecordNotFound
	}
	if resp.StatusCode >= 300 {
		storeErr := &StoreError{Status: resp.StatusCode}
		var detail errorResponse
		if err := json.Unmarshal(raw, &detail); err == nil {
			storeErr.Type = detail.Error.Type
			storeErr.Message = detail.Error.Message
		}
		if storeErr.Message == "" {
			storeErr.Message = strings.TrimSpace(string(raw))
		}
		c.logger.Warn().Int("status", resp.StatusCode).Str("endpoint", endpoint).Msg("airtable: request failed")
		return storeErr
	}
	if out != nil {
		if err := json.Unmarshal(raw, out); err != nil {
			return fmt.Errorf("airtable: decode response: %w", err)
		}
	}
	return nil
}

// EscapeFormula quotes a value for interpolation into a
// filterByFormula string literal.
func EscapeFormula(value string) string {
	value = strings.ReplaceAll(value, `\`, `\\`)
	return strings.ReplaceAll(value, `"`, `\"`)
}
