// internal/app/features/login/handler.go
package login

import (
	"errors"
	"net/http"

	userstore "github.com/acadiahub/acadiahub/internal/app/store/users"
	"github.com/acadiahub/acadiahub/internal/app/system/auth"
	"github.com/acadiahub/acadiahub/internal/app/system/httpjson"
	"github.com/acadiahub/acadiahub/internal/app/system/ratelimit"
	"github.com/acadiahub/acadiahub/internal/app/system/timeouts"
	"go.uber.org/zap"
)

// Handler authenticates email/password credentials and starts sessions.
type Handler struct {
	Users      *userstore.Store
	SessionMgr *auth.SessionManager
	Limiter    *ratelimit.LoginLimiter
	Log        *zap.Logger
}

// NewHandler constructs a login Handler.
func NewHandler(users *userstore.Store, sessionMgr *auth.SessionManager, logger *zap.Logger) *Handler {
	return &Handler{
		Users:      users,
		SessionMgr: sessionMgr,
		Limiter:    ratelimit.NewLoginLimiter(),
		Log:        logger,
	}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ServeLogin handles POST /api/login.
//
// Body: { "email": "...", "password": "..." }
// Bad credentials return 401 without revealing whether the email exists.
func (h *Handler) ServeLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.Email == "" || req.Password == "" {
		httpjson.Error(w, http.StatusBadRequest, "email and password are required")
		return
	}

	if allowed, reason := h.Limiter.Check(r, req.Email); !allowed {
		httpjson.Error(w, http.StatusTooManyRequests, reason)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "login")
	defer cancel()

	user, err := h.Users.Authenticate(ctx, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, userstore.ErrBadCredentials) {
			httpjson.Error(w, http.StatusUnauthorized, err.Error())
			return
		}
		h.Log.Error("login: authenticate failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "could not sign in")
		return
	}

	h.Limiter.ResetEmail(req.Email)

	sessionUser := &auth.SessionUser{
		ID:    user.ID.Hex(),
		Name:  user.Name,
		Email: user.Email,
		Role:  user.Role,
	}
	if err := h.SessionMgr.SignIn(w, r, sessionUser); err != nil {
		h.Log.Error("login: session sign-in failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "could not start session")
		return
	}

	httpjson.Write(w, http.StatusOK, map[string]any{
		"user": map[string]string{
			"id":    user.ID.Hex(),
			"name":  user.Name,
			"email": user.Email,
			"role":  user.Role,
		},
	})
}
