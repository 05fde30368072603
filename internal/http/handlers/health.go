package handlers

import "net/http"

// Health reports liveness and which external credentials are present,
// so a misconfigured deploy is diagnosable without reading logs.
func (a *App) Health(w http.ResponseWriter, r *http.Request) {
	a.json(w, http.StatusOK, map[string]any{
		"ok":       true,
		"ambiente": a.Cfg.AppEnv,
		"env": map[string]bool{
			"AIRTABLE_API_KEY": a.Cfg.AirtableAPIKey != "",
			"AIRTABLE_BASE_ID": a.Cfg.AirtableBaseID != "",
			"EMAILJS":          a.Cfg.MailerConfigured(),
		},
	})
}
