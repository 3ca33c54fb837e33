package userinfo

import (
	"net/http"
	"testing"

	"github.com/acadiahub/acadiahub/internal/testutil"
)

func TestServeUserInfoSignedOut(t *testing.T) {
	h := NewHandler()

	req := testutil.NewRequest(http.MethodGet, "/api/me")
	rec := testutil.NewRecorder()
	h.ServeUserInfo(rec.ResponseRecorder, req)

	rec.AssertStatus(t, http.StatusOK)
	rec.AssertContains(t, `"isAuthenticated":false`)
}

func TestServeUserInfoSignedIn(t *testing.T) {
	h := NewHandler()

	req := testutil.NewAuthenticatedRequest(http.MethodGet, "/api/me", testutil.StudentUser())
	rec := testutil.NewRecorder()
	h.ServeUserInfo(rec.ResponseRecorder, req)

	rec.AssertStatus(t, http.StatusOK)
	rec.AssertContains(t, `"isAuthenticated":true`)
	rec.AssertContains(t, `"student"`)
}
