// internal/app/features/leagues/routes.go
package leagues

import (
	"github.com/CCRProject300/kudoshub/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

func Routes(h *Handler, v *auth.Verifier) chi.Router {
	r := chi.NewRouter()

	// Everything under /leagues requires authentication
	r.Group(func(pr chi.Router) {
		pr.Use(v.RequireAuth)

		// LIST
		pr.Get("/", h.HandleList)
		pr.Get("/mine", h.HandleListMine)

		// CREATE
		pr.Post("/", h.HandleCreate)

		// VIEW
		pr.Get("/{id}", h.HandleView)

		// DELETE
		pr.Delete("/{id}", h.HandleDelete)

		// MEMBERSHIP
		pr.Post("/{id}/join", h.HandleJoin)
		pr.Post("/{id}/switch", h.HandleSwitch)
		pr.Post("/{id}/leave", h.HandleLeave)

		// INVITES
		pr.Post("/{id}/invite", h.HandleInvite)
	})

	return r
}
