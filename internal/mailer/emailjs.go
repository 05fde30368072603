package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"varal/internal/infra"
)

// Status classifies the outcome of one delivery attempt.
type Status string

const (
	StatusSent      Status = "enviado"
	StatusSimulated Status = "simulado"
	StatusFailed    Status = "falhou"
)

// SendResult reports what happened to a message. Failed carries the
// provider's response as Reason; callers treat it as advisory.
type SendResult struct {
	Status Status
	Reason string
}

// Message is one outbound e-mail. Points, when positive, appends the
// gamification note the site awards per adoption.
type Message struct {
	To      string
	Subject string
	Body    string
	Points  int
}

// Options configures the EmailJS sender.
type Options struct {
	ServiceID      string
	TemplateID     string
	UserID         string
	BaseURL        string
	HTTPClient     *http.Client
	Logger         *infra.Logger
	RequestTimeout time.Duration
}

// Sender delivers e-mail through the EmailJS REST endpoint. Without
// credentials every send is simulated and logged; that is the normal
// degraded mode, not an error.
type Sender struct {
	serviceID  string
	templateID string
	userID     string
	baseURL    string
	httpClient *http.Client
	logger     *infra.Logger
}

type sendPayload struct {
	ServiceID      string         `json:"service_id"`
	TemplateID     string         `json:"template_id"`
	UserID         string         `json:"user_id"`
	TemplateParams templateParams `json:"template_params"`
}

type templateParams struct {
	ToEmail string `json:"to_email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// NewSender constructs a sender with sane defaults and injected
// dependencies.
func NewSender(opts Options) *Sender {
	httpClient := opts.HTTPClient
	if httpClient == nil {
		timeout := opts.RequestTimeout
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	baseURL := strings.TrimSpace(opts.BaseURL)
	if baseURL == "" {
		baseURL = "https://api.emailjs.com/api/v1.0/email/send"
	}
	var logger *infra.Logger
	if opts.Logger != nil {
		logger = opts.Logger
	} else {
		discard := zerolog.Nop()
		l := infra.Logger(discard)
		logger = &l
	}
	return &Sender{
		serviceID:  strings.TrimSpace(opts.ServiceID),
		templateID: strings.TrimSpace(opts.TemplateID),
		userID:     strings.TrimSpace(opts.UserID),
		baseURL:    baseURL,
		httpClient: httpClient,
		logger:     logger,
	}
}

// Configured reports whether real deliveries are possible.
func (s *Sender) Configured() bool {
	return s.serviceID != "" && s.templateID != "" && s.userID != ""
}

// Send performs one delivery attempt. It never returns an error: the
// unconfigured path yields Simulated and provider failures yield
// Failed with the response body as reason.
func (s *Sender) Send(ctx context.Context, msg Message) SendResult {
	body := msg.Body
	if msg.Points > 0 {
		plural := ""
		if msg.Points > 1 {
			plural = "s"
		}
		body += fmt.Sprintf("\n\nVocê ganhou %d ponto%s por esta adoção! Continue espalhando sonhos!", msg.Points, plural)
	}

	if !s.Configured() {
		s.logger.Info().
			Str("destinatario", msg.To).
			Str("assunto", msg.Subject).
			Msg("emailjs: credenciais ausentes, envio simulado")
		return SendResult{Status: StatusSimulated}
	}

	payload := sendPayload{
		ServiceID:  s.serviceID,
		TemplateID: s.templateID,
		UserID:     s.userID,
		TemplateParams: templateParams{
			ToEmail: msg.To,
			Subject: msg.Subject,
			Message: body,
		},
	}
	encoded, err := json.Marshal(payload)
	if err != nil {
		return SendResult{Status: StatusFailed, Reason: fmt.Sprintf("encode payload: %v", err)}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL, bytes.NewReader(encoded))
	if err != nil {
		return SendResult{Status: StatusFailed, Reason: fmt.Sprintf("build request: %v", err)}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		s.logger.Warn().Err(err).Str("destinatario", msg.To).Msg("emailjs: falha de transporte")
		return SendResult{Status: StatusFailed, Reason: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(resp.Body)
		reason := strings.TrimSpace(string(raw))
		s.logger.Warn().
			Int("status", resp.StatusCode).
			Str("destinatario", msg.To).
			Msg("emailjs: envio recusado")
		return SendResult{Status: StatusFailed, Reason: reason}
	}

	s.logger.Info().Str("destinatario", msg.To).Msg("emailjs: e-mail enviado")
	return SendResult{Status: StatusSent}
}
