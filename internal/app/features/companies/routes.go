// internal/app/features/companies/routes.go
package companies

import (
	"github.com/CCRProject300/kudoshub/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

func Routes(h *Handler, v *auth.Verifier) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(v.RequireAuth)

		pr.Post("/{id}/join", h.HandleJoin)
		pr.Post("/{id}/invite", h.HandleInviteMembers)
		pr.Post("/{id}/invite-moderators", h.HandleInviteModerators)
	})

	return r
}
