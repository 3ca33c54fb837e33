// internal/app/features/eventfeed/handler.go
package eventfeed

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/acadiahub/acadiahub/internal/app/feed"
	"go.uber.org/zap"
)

// Handler streams live event snapshots to clients over Server-Sent
// Events. Each message carries the hub's full snapshot; clients replace
// their local list wholesale instead of patching it.
type Handler struct {
	Hub *feed.Hub
	Log *zap.Logger
}

// NewHandler constructs an eventfeed Handler.
func NewHandler(hub *feed.Hub, logger *zap.Logger) *Handler {
	return &Handler{Hub: hub, Log: logger}
}

// Serve handles GET /api/feed. The subscription lives exactly as long
// as the client connection; disconnect tears it down.
func (h *Handler) Serve(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	snapshots, cancel := h.Hub.Subscribe()
	defer cancel()

	for {
		select {
		case <-r.Context().Done():
			return
		case snap, ok := <-snapshots:
			if !ok {
				return
			}
			if err := writeSnapshot(w, snap); err != nil {
				h.Log.Debug("feed: client write failed", zap.Error(err))
				return
			}
			flusher.Flush()
		}
	}
}

func writeSnapshot(w http.ResponseWriter, snap feed.Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "event: snapshot\ndata: %s\n\n", data)
	return err
}
