package theme

import (
	"github.com/dalemusser/clubhub/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(auth.RequireSignedIn)
	r.Get("/", h.ServeMode)
	r.Put("/", h.HandleSetMode)
	r.Get("/resolved", h.ServeResolved)
	return r
}
