// internal/app/features/home/handler.go
package home

import (
	"net/http"

	"github.com/acadiahub/acadiahub/internal/app/system/httpjson"
)

// Handler serves the service-info root endpoint.
type Handler struct {
	Version string
}

// NewHandler constructs a home Handler.
func NewHandler(version string) *Handler {
	return &Handler{Version: version}
}

// Serve handles GET /. It describes the service and its endpoints so a
// curious client hitting the root gets something useful.
func (h *Handler) Serve(w http.ResponseWriter, r *http.Request) {
	httpjson.Write(w, http.StatusOK, map[string]any{
		"service": "Acadia Hub",
		"status":  "running",
		"version": h.Version,
		"endpoints": map[string]string{
			"health":    "GET /api/health",
			"events":    "GET /api/events",
			"feed":      "GET /api/feed",
			"sendEmail": "POST /api/send-email",
			"chatbot":   "POST /api/chatbot",
		},
	})
}
