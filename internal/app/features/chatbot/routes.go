// internal/app/features/chatbot/routes.go
package chatbot

import "github.com/go-chi/chi/v5"

// Routes returns a subrouter for the chat relay.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.ServeChat) // mounted under /api/chatbot
	r.Get("/test", h.ServeTest)
	return r
}
