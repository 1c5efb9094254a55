package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"clipforge/internal/http/handlers"
)

// NewRouter wires the production endpoints behind the standard middleware
// stack.
func NewRouter(app *handlers.App) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.RequestID,
		middleware.RealIP,
		middleware.Recoverer,
		middleware.Logger,
	)

	r.Get("/v1/healthz", app.Health)

	r.Route("/v1/productions", func(r chi.Router) {
		r.Post("/", app.CreateProduction)
		r.Get("/", app.ListProductions)
		r.Get("/{id}", app.GetProduction)
	})

	r.Post("/v1/voices/preview", app.VoicePreview)

	return r
}
