// internal/app/features/mailrelay/routes.go
package mailrelay

import "github.com/go-chi/chi/v5"

// Routes returns a subrouter for the email relay.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.ServeSendEmail) // mounted under /api/send-email
	return r
}
