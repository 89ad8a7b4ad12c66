package members

import (
	"github.com/dalemusser/clubhub/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes is mounted under /clubs/{id}/members.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(auth.RequireSignedIn)

	r.Get("/", h.ServeRoster)
	r.Post("/", h.HandleAdd)
	r.Put("/{userID}/role", h.HandleSetRole)
	r.Delete("/{userID}", h.HandleRemove)

	return r
}
