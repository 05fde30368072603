package httpapi

import (
	stdhttp "net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"varal/internal/http/handlers"
	"varal/internal/middleware"
)

// NewRouter assembles the public API surface. Routing is pure
// dispatch: every business rule lives behind the handlers.
func NewRouter(app *handlers.App) stdhttp.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.CORS)
	r.Use(middleware.Logger(app.Logger))
	if app.Cfg.RateLimitPerMin > 0 {
		r.Use(middleware.RateLimit(app.Cfg.RateLimitPerMin, time.Minute))
	}
	r.Use(chimw.Recoverer)

	r.NotFound(func(w stdhttp.ResponseWriter, req *stdhttp.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(stdhttp.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"rota não encontrada"}`))
	})

	r.Get("/api/health", app.Health)
	r.Get("/api/eventos", app.EventsHighlighted)
	r.Get("/api/eventos-todos", app.EventsAll)
	r.Get("/api/eventos/{id}", app.EventByID)
	r.Get("/api/evento-detalhe", app.EventDetail)
	r.Get("/api/cartinhas", app.LettersList)
	r.Get("/api/pontosdecoleta", app.CollectionPoints)
	r.Post("/api/login", app.Login)
	r.Post("/api/cadastro", app.Cadastro)
	r.Post("/api/adocoes", app.AdoptionsCreate)
	r.Post("/api/cloudinho", app.Cloudinho)

	return r
}
