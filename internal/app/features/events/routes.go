// internal/app/features/events/routes.go
package events

import (
	"github.com/acadiahub/acadiahub/internal/app/system/auth"
	"github.com/acadiahub/acadiahub/internal/domain/models"
	"github.com/go-chi/chi/v5"
)

// Routes returns a subrouter for the event API, mounted under /api/events.
//
// Reads are open; registration and commenting need a session; event
// CRUD needs the club role (the store additionally scopes edits and
// deletes to the creator).
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.ServeList)
	r.Get("/{id}", h.ServeGet)
	r.Get("/{id}/registrants", h.ServeRegistrants)

	r.Group(func(r chi.Router) {
		r.Use(sm.RequireSignedIn)
		r.Post("/{id}/register", h.ServeRegister)
		r.Post("/{id}/unregister", h.ServeUnregister)
		r.Post("/{id}/comments", h.ServeAddComment)
	})

	r.Group(func(r chi.Router) {
		r.Use(sm.RequireRole(models.RoleClub))
		r.Post("/", h.ServeCreate)
		r.Put("/{id}", h.ServeUpdate)
		r.Delete("/{id}", h.ServeDelete)
	})

	return r
}
