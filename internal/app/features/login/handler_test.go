package login

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	userstore "github.com/acadiahub/acadiahub/internal/app/store/users"
	"github.com/acadiahub/acadiahub/internal/app/system/auth"
	"github.com/acadiahub/acadiahub/internal/domain/models"
	"github.com/acadiahub/acadiahub/internal/testutil"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T) *Handler {
	t.Helper()
	db := testutil.SetupTestDB(t)
	users := userstore.New(db)

	ctx, cancel := testutil.TestContext()
	defer cancel()
	_, err := users.Create(ctx, models.User{
		Name:  "Ada",
		Email: "ada@test.com",
		Role:  models.RoleStudent,
	}, "hunter22")
	if err != nil {
		t.Fatalf("seed user: %v", err)
	}

	sessionMgr, err := auth.NewSessionManager("test-session-key-0123456789", "test-session", "", false, zap.NewNop())
	if err != nil {
		t.Fatalf("session manager: %v", err)
	}
	return NewHandler(users, sessionMgr, zap.NewNop())
}

func postLogin(h *Handler, body string) *testutil.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/login", strings.NewReader(body))
	rec := testutil.NewRecorder()
	h.ServeLogin(rec.ResponseRecorder, req)
	return rec
}

func TestServeLogin(t *testing.T) {
	h := newTestHandler(t)

	rec := postLogin(h, `{"email":"Ada@Test.com","password":"hunter22"}`)
	rec.AssertStatus(t, http.StatusOK)
	rec.AssertContains(t, `"Ada"`)

	if cookies := rec.Result().Cookies(); len(cookies) == 0 {
		t.Error("no session cookie set")
	}
}

func TestServeLoginBadCredentials(t *testing.T) {
	h := newTestHandler(t)

	// Wrong password and unknown email produce the same response.
	wrongPass := postLogin(h, `{"email":"ada@test.com","password":"nope"}`)
	wrongPass.AssertStatus(t, http.StatusUnauthorized)

	unknown := postLogin(h, `{"email":"ghost@test.com","password":"hunter22"}`)
	unknown.AssertStatus(t, http.StatusUnauthorized)

	if wrongPass.Body.String() != unknown.Body.String() {
		t.Error("responses should not reveal whether the email exists")
	}
}

func TestServeLoginMissingFields(t *testing.T) {
	h := newTestHandler(t)
	postLogin(h, `{"email":"ada@test.com"}`).AssertStatus(t, http.StatusBadRequest)
}

func TestServeLoginRateLimited(t *testing.T) {
	h := newTestHandler(t)

	// Burn through the per-email budget with bad passwords.
	var last *testutil.ResponseRecorder
	for i := 0; i < 10; i++ {
		last = postLogin(h, `{"email":"ada@test.com","password":"nope"}`)
		if last.Code == http.StatusTooManyRequests {
			return
		}
	}
	t.Errorf("expected 429 after repeated failures, last status %d", last.Code)
}
