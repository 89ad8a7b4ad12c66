package charges

import (
	"github.com/dalemusser/clubhub/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes is mounted under /clubs/{id}/charges.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(auth.RequireSignedIn)

	r.Get("/", h.ServeList)
	r.Post("/", h.HandleCreate)
	r.Post("/generate", h.HandleGenerate)
	r.Delete("/{chargeID}", h.HandleDelete)

	return r
}
