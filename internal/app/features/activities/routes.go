package activities

import (
	"github.com/dalemusser/clubhub/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes is mounted under /clubs/{id}/activities.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(auth.RequireSignedIn)

	r.Get("/", h.ServeList)
	r.Post("/", h.HandleCreate)
	r.Put("/{activityID}", h.HandleUpdate)
	r.Delete("/{activityID}", h.HandleDelete)

	return r
}
