// internal/app/features/eventfeed/routes.go
package eventfeed

import "github.com/go-chi/chi/v5"

// Routes returns a subrouter that serves the live event stream.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.Serve) // mounted under /api/feed
	return r
}
