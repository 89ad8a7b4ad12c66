package clubs

import (
	"github.com/dalemusser/clubhub/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(auth.RequireSignedIn)

		pr.Get("/", h.ServeList)
		pr.Get("/{id}", h.ServeView)
		pr.Put("/{id}", h.HandleUpdate)
		pr.Post("/{id}/archive", h.HandleArchive)
		pr.Post("/{id}/reactivate", h.HandleReactivate)

		pr.Get("/{id}/fee-settings", h.ServeFeeSettings)
		pr.Put("/{id}/fee-settings", h.HandleUpdateFeeSettings)
	})

	// Club creation is an app-admin operation.
	r.Group(func(pr chi.Router) {
		pr.Use(auth.RequireAdmin)
		pr.Post("/", h.HandleCreate)
	})

	return r
}
