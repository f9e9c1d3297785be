// internal/app/features/notifications/routes.go
package notifications

import (
	"github.com/CCRProject300/kudoshub/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

func Routes(h *Handler, v *auth.Verifier) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(v.RequireAuth)

		pr.Get("/", h.HandleList)
		pr.Post("/{id}/confirm", h.HandleConfirm)
		pr.Post("/{id}/reject", h.HandleReject)
	})

	return r
}
