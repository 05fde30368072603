package infra

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Tables maps logical entity names to the physical table names of the
// Airtable base. The mapping is resolved once at startup; handlers and
// repositories never probe for table names at request time.
type Tables struct {
	Usuarios  string
	Cartinhas string
	Doacoes   string
	Pontos    string
	Eventos   string
	Cloudinho string
}

// Config represents application configuration loaded from environment
// variables. It is constructed once in main and passed by reference to
// the components that need it.
type Config struct {
	AppEnv string
	Port   string

	AirtableAPIKey string
	AirtableBaseID string
	AirtableURL    string
	Tables         Tables

	EmailJSServiceID  string
	EmailJSTemplateID string
	EmailJSUserID     string
	EmailJSURL        string

	TokenSecret string

	DonationStatus string
	DeliveryDays   int

	HTTPReadTimeout  time.Duration
	HTTPWriteTimeout time.Duration
	HTTPIdleTimeout  time.Duration
	StoreTimeout     time.Duration
	RateLimitPerMin  int
}

// LoadConfig loads configuration from environment variables and applies
// defaults where needed. Airtable and EmailJS credentials are optional:
// without them the service runs in degraded mode (store calls fail with
// a typed error, e-mail delivery is simulated).
func LoadConfig() (*Config, error) {
	cfg := &Config{
		AppEnv:         getEnv("APP_ENV", "development"),
		Port:           getEnv("PORT", "8080"),
		AirtableAPIKey: os.Getenv("AIRTABLE_API_KEY"),
		AirtableBaseID: os.Getenv("AIRTABLE_BASE_ID"),
		AirtableURL:    getEnv("AIRTABLE_URL", "https://api.airtable.com/v0"),
		Tables: Tables{
			Usuarios:  getEnv("TABELA_USUARIOS", "Usuarios"),
			Cartinhas: getEnv("TABELA_CARTINHAS", "Cartinhas"),
			Doacoes:   getEnv("TABELA_DOACOES", "Doacoes"),
			Pontos:    getEnv("TABELA_PONTOS", "PontosDeColeta"),
			Eventos:   getEnv("TABELA_EVENTOS", "Eventos"),
			Cloudinho: getEnv("TABELA_CLOUDINHO", "cloudinho_kb"),
		},
		EmailJSServiceID:  os.Getenv("EMAILJS_SERVICE_ID"),
		EmailJSTemplateID: os.Getenv("EMAILJS_TEMPLATE_ID"),
		EmailJSUserID:     os.Getenv("EMAILJS_USER_ID"),
		EmailJSURL:        getEnv("EMAILJS_URL", "https://api.emailjs.com/api/v1.0/email/send"),
		TokenSecret:       os.Getenv("TOKEN_SECRET"),
		DonationStatus:    getEnv("STATUS_DOACAO", "aguardando_entrega"),
		DeliveryDays:      getEnvInt("PRAZO_ENTREGA_DIAS", 10),
		HTTPReadTimeout:   time.Second * time.Duration(getEnvInt("HTTP_READ_TIMEOUT_SECONDS", 15)),
		HTTPWriteTimeout:  time.Second * time.Duration(getEnvInt("HTTP_WRITE_TIMEOUT_SECONDS", 30)),
		HTTPIdleTimeout:   time.Second * time.Duration(getEnvInt("HTTP_IDLE_TIMEOUT_SECONDS", 60)),
		StoreTimeout:      time.Second * time.Duration(getEnvInt("STORE_TIMEOUT_SECONDS", 10)),
		RateLimitPerMin:   getEnvInt("RATE_LIMIT_PER_MINUTE", 60),
	}

	if cfg.DonationStatus != "aguardando_entrega" && cfg.DonationStatus != "confirmada" {
		return nil, fmt.Errorf("STATUS_DOACAO must be aguardando_entrega or confirmada, got %q", cfg.DonationStatus)
	}
	if cfg.DeliveryDays <= 0 {
		return nil, fmt.Errorf("PRAZO_ENTREGA_DIAS must be positive")
	}
	if cfg.AppEnv == "production" && cfg.TokenSecret == "" {
		return nil, fmt.Errorf("TOKEN_SECRET is required in production")
	}

	return cfg, nil
}

// StoreConfigured reports whether the Airtable credentials are present.
func (c *Config) StoreConfigured() bool {
	return c.AirtableAPIKey != "" && c.AirtableBaseID != ""
}

// MailerConfigured reports whether the EmailJS credentials are present.
func (c *Config) MailerConfigured() bool {
	return c.EmailJSServiceID != "" && c.EmailJSTemplateID != "" && c.EmailJSUserID != ""
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}
