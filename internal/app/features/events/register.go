// internal/app/features/events/register.go
package events

import (
	"net/http"

	"github.com/acadiahub/acadiahub/internal/app/system/auth"
	"github.com/acadiahub/acadiahub/internal/app/system/httpjson"
	"github.com/acadiahub/acadiahub/internal/app/system/mailer"
	"github.com/acadiahub/acadiahub/internal/app/system/timeouts"
	"github.com/acadiahub/acadiahub/internal/domain/models"
	"go.uber.org/zap"
)

// ServeRegister handles POST /api/events/{id}/register.
//
// Adding an id already in the set is an idempotent no-op; a full event
// returns 409. On a successful registration a confirmation email is
// dispatched best-effort — its failure never fails the registration.
func (h *Handler) ServeRegister(w http.ResponseWriter, r *http.Request) {
	user, userID, ok := h.sessionUserID(w, r)
	if !ok {
		return
	}
	id, ok := h.eventID(w, r)
	if !ok {
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "register")
	defer cancel()

	if err := h.Events.Register(ctx, id, userID); err != nil {
		h.writeStoreError(w, err, "register")
		return
	}

	event, err := h.Events.GetByID(ctx, id)
	if err == nil {
		go h.sendConfirmation(user, event)
	} else {
		h.Log.Warn("register: event reload for confirmation email failed", zap.Error(err))
	}

	httpjson.Write(w, http.StatusOK, map[string]bool{"success": true, "registered": true})
}

// ServeUnregister handles POST /api/events/{id}/unregister. Removing an
// absent id is a no-op.
func (h *Handler) ServeUnregister(w http.ResponseWriter, r *http.Request) {
	_, userID, ok := h.sessionUserID(w, r)
	if !ok {
		return
	}
	id, ok := h.eventID(w, r)
	if !ok {
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "unregister")
	defer cancel()

	if err := h.Events.Unregister(ctx, id, userID); err != nil {
		h.writeStoreError(w, err, "unregister")
		return
	}
	httpjson.Write(w, http.StatusOK, map[string]bool{"success": true, "registered": false})
}

// sendConfirmation dispatches the registration confirmation email.
// Errors are logged and swallowed; registration correctness never
// depends on the mail relay being up.
func (h *Handler) sendConfirmation(user *auth.SessionUser, event *models.Event) {
	email := mailer.BuildConfirmationEmail(mailer.ConfirmationEmailData{
		UserName:         user.Name,
		EventTitle:       event.Title,
		EventDate:        event.StartTime,
		EventLocation:    event.Location,
		EventDescription: event.Description,
	})
	email.To = user.Email

	if _, err := h.Mailer.Send(email); err != nil {
		h.Log.Warn("registration confirmation email failed",
			zap.String("to", user.Email),
			zap.String("event", event.Title),
			zap.Error(err))
	}
}
