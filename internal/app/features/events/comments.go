// internal/app/features/events/comments.go
package events

import (
	"net/http"
	"strings"
	"time"

	"github.com/acadiahub/acadiahub/internal/app/system/htmlsanitize"
	"github.com/acadiahub/acadiahub/internal/app/system/httpjson"
	"github.com/acadiahub/acadiahub/internal/app/system/timeouts"
	"github.com/acadiahub/acadiahub/internal/domain/models"
)

type commentRequest struct {
	Text string `json:"text"`
}

// ServeAddComment handles POST /api/events/{id}/comments. The author
// name is denormalized from the current session at write time, and the
// timestamp is server-assigned.
func (h *Handler) ServeAddComment(w http.ResponseWriter, r *http.Request) {
	user, userID, ok := h.sessionUserID(w, r)
	if !ok {
		return
	}
	id, ok := h.eventID(w, r)
	if !ok {
		return
	}

	var req commentRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	text := strings.TrimSpace(htmlsanitize.Text(req.Text))
	if text == "" {
		httpjson.Error(w, http.StatusBadRequest, "comment text is required")
		return
	}

	comment := models.Comment{
		Text:     text,
		Author:   user.Name,
		AuthorID: userID,
		At:       time.Now().UTC(),
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "add comment")
	defer cancel()

	if err := h.Events.AppendComment(ctx, id, comment); err != nil {
		h.writeStoreError(w, err, "append comment")
		return
	}
	httpjson.Write(w, http.StatusCreated, map[string]any{"comment": comment})
}

// registrant pairs a user id with its resolved display name.
type registrant struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ServeRegistrants handles GET /api/events/{id}/registrants, resolving
// each registered user id to a display name.
func (h *Handler) ServeRegistrants(w http.ResponseWriter, r *http.Request) {
	id, ok := h.eventID(w, r)
	if !ok {
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "resolve registrants")
	defer cancel()

	event, err := h.Events.GetByID(ctx, id)
	if err != nil {
		h.writeStoreError(w, err, "load event")
		return
	}

	registrants := make([]registrant, 0, len(event.Registrations))
	for _, userID := range event.Registrations {
		registrants = append(registrants, registrant{
			ID:   userID.Hex(),
			Name: h.Names.Lookup(ctx, userID),
		})
	}
	httpjson.Write(w, http.StatusOK, map[string]any{"registrants": registrants})
}
