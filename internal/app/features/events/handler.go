// internal/app/features/events/handler.go
package events

import (
	"errors"
	"net/http"

	"github.com/acadiahub/acadiahub/internal/app/feed"
	eventstore "github.com/acadiahub/acadiahub/internal/app/store/events"
	"github.com/acadiahub/acadiahub/internal/app/system/auth"
	"github.com/acadiahub/acadiahub/internal/app/system/htmlsanitize"
	"github.com/acadiahub/acadiahub/internal/app/system/httpjson"
	"github.com/acadiahub/acadiahub/internal/app/system/mailer"
	"github.com/acadiahub/acadiahub/internal/app/system/normalize"
	"github.com/acadiahub/acadiahub/internal/app/system/timeouts"
	"github.com/acadiahub/acadiahub/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// Handler serves the event collection: listing, CRUD for club
// organizers, registration transitions, and the comment log.
type Handler struct {
	Events *eventstore.Store
	Names  *feed.NameCache
	Hub    *feed.Hub
	Mailer mailer.Sender
	Log    *zap.Logger
}

// NewHandler constructs an events Handler.
func NewHandler(events *eventstore.Store, names *feed.NameCache, hub *feed.Hub, mail mailer.Sender, logger *zap.Logger) *Handler {
	return &Handler{
		Events: events,
		Names:  names,
		Hub:    hub,
		Mailer: mail,
		Log:    logger,
	}
}

type eventRequest struct {
	Title            string `json:"title"`
	Description      string `json:"description"`
	Category         string `json:"category"`
	Location         string `json:"location"`
	StartTime        string `json:"startTime"`
	EndTime          string `json:"endTime"`
	MaxRegistrations int    `json:"maxRegistrations"`
}

// ServeList handles GET /api/events.
//
// Query params: search (title/description substring, case-insensitive),
// category ("All" or an exact category), sort ("newest"|"oldest").
// The list is served from the hub's current snapshot, so it reflects
// the same state live feed subscribers see.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	snap := h.Hub.Current()

	projected := feed.Project(snap.Events,
		normalize.QueryParam(r.URL.Query().Get("search")),
		normalize.QueryParam(r.URL.Query().Get("category")),
		normalize.QueryParam(r.URL.Query().Get("sort")))

	httpjson.Write(w, http.StatusOK, map[string]any{
		"events": projected,
		"names":  snap.Names,
	})
}

// ServeGet handles GET /api/events/{id}.
func (h *Handler) ServeGet(w http.ResponseWriter, r *http.Request) {
	id, ok := h.eventID(w, r)
	if !ok {
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "load event")
	defer cancel()

	event, err := h.Events.GetByID(ctx, id)
	if err != nil {
		h.writeStoreError(w, err, "load event")
		return
	}
	httpjson.Write(w, http.StatusOK, map[string]any{"event": event})
}

// ServeCreate handles POST /api/events. Club role only.
func (h *Handler) ServeCreate(w http.ResponseWriter, r *http.Request) {
	_, creatorID, ok := h.sessionUserID(w, r)
	if !ok {
		return
	}

	var req eventRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "create event")
	defer cancel()

	event, err := h.Events.Create(ctx, models.Event{
		Title:            htmlsanitize.Text(req.Title),
		Description:      htmlsanitize.Sanitize(req.Description),
		Category:         req.Category,
		Location:         htmlsanitize.Text(req.Location),
		StartTime:        req.StartTime,
		EndTime:          req.EndTime,
		MaxRegistrations: req.MaxRegistrations,
		CreatedBy:        creatorID,
	})
	if err != nil {
		h.writeStoreError(w, err, "create event")
		return
	}

	httpjson.Write(w, http.StatusCreated, map[string]any{"event": event})
}

// ServeUpdate handles PUT /api/events/{id}. Only the creator may edit.
func (h *Handler) ServeUpdate(w http.ResponseWriter, r *http.Request) {
	_, userID, ok := h.sessionUserID(w, r)
	if !ok {
		return
	}
	id, ok := h.eventID(w, r)
	if !ok {
		return
	}

	var req eventRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "update event")
	defer cancel()

	err := h.Events.UpdateDetails(ctx, id, userID, eventstore.DetailsUpdate{
		Title:            htmlsanitize.Text(req.Title),
		Description:      htmlsanitize.Sanitize(req.Description),
		Category:         req.Category,
		Location:         htmlsanitize.Text(req.Location),
		StartTime:        req.StartTime,
		EndTime:          req.EndTime,
		MaxRegistrations: req.MaxRegistrations,
	})
	if err != nil {
		h.writeStoreError(w, err, "update event")
		return
	}
	httpjson.Write(w, http.StatusOK, map[string]bool{"success": true})
}

// ServeDelete handles DELETE /api/events/{id}. Only the creator may delete.
func (h *Handler) ServeDelete(w http.ResponseWriter, r *http.Request) {
	_, userID, ok := h.sessionUserID(w, r)
	if !ok {
		return
	}
	id, ok := h.eventID(w, r)
	if !ok {
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "delete event")
	defer cancel()

	if err := h.Events.Delete(ctx, id, userID); err != nil {
		h.writeStoreError(w, err, "delete event")
		return
	}
	httpjson.Write(w, http.StatusOK, map[string]bool{"success": true})
}

// eventID parses the {id} URL parameter, writing a 400 on failure.
func (h *Handler) eventID(w http.ResponseWriter, r *http.Request) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid event id")
		return primitive.NilObjectID, false
	}
	return id, true
}

// sessionUserID returns the current session user and its ObjectID,
// writing a 401 when either is missing.
func (h *Handler) sessionUserID(w http.ResponseWriter, r *http.Request) (*auth.SessionUser, primitive.ObjectID, bool) {
	user, ok := auth.CurrentUser(r)
	if !ok {
		httpjson.Error(w, http.StatusUnauthorized, "sign in required")
		return nil, primitive.NilObjectID, false
	}
	id, err := primitive.ObjectIDFromHex(user.ID)
	if err != nil {
		httpjson.Error(w, http.StatusUnauthorized, "invalid session")
		return nil, primitive.NilObjectID, false
	}
	return user, id, true
}

// writeStoreError maps event-store errors onto HTTP status codes.
func (h *Handler) writeStoreError(w http.ResponseWriter, err error, op string) {
	switch {
	case errors.Is(err, eventstore.ErrNotFound):
		httpjson.Error(w, http.StatusNotFound, "event not found")
	case errors.Is(err, eventstore.ErrNotOwner):
		httpjson.Error(w, http.StatusForbidden, err.Error())
	case errors.Is(err, eventstore.ErrEventFull):
		httpjson.Error(w, http.StatusConflict, "Event Full")
	case eventstore.IsValidationError(err):
		httpjson.Error(w, http.StatusBadRequest, err.Error())
	default:
		h.Log.Error(op+" failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "store operation failed")
	}
}
