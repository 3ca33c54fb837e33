// internal/app/features/logout/handler.go
package logout

import (
	"net/http"

	"github.com/acadiahub/acadiahub/internal/app/system/auth"
	"github.com/acadiahub/acadiahub/internal/app/system/httpjson"
	"go.uber.org/zap"
)

// Handler clears the session cookie.
type Handler struct {
	SessionMgr *auth.SessionManager
	Log        *zap.Logger
}

// NewHandler constructs a logout Handler.
func NewHandler(sessionMgr *auth.SessionManager, logger *zap.Logger) *Handler {
	return &Handler{SessionMgr: sessionMgr, Log: logger}
}

// ServeLogout handles POST /api/logout. Signing out an already
// signed-out client succeeds.
func (h *Handler) ServeLogout(w http.ResponseWriter, r *http.Request) {
	if err := h.SessionMgr.SignOut(w, r); err != nil {
		h.Log.Warn("logout: sign-out failed", zap.Error(err))
	}
	httpjson.Write(w, http.StatusOK, map[string]bool{"success": true})
}
