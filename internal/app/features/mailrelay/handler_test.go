package mailrelay

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/acadiahub/acadiahub/internal/app/system/mailer"
	"github.com/acadiahub/acadiahub/internal/testutil"
	"go.uber.org/zap"
)

type fakeSender struct {
	sent []mailer.Email
	err  error
}

func (f *fakeSender) Send(e mailer.Email) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.sent = append(f.sent, e)
	return "msg-123", nil
}

func post(h *Handler, body string) *testutil.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/send-email", strings.NewReader(body))
	rec := testutil.NewRecorder()
	h.ServeSendEmail(rec.ResponseRecorder, req)
	return rec
}

func TestServeSendEmail(t *testing.T) {
	sender := &fakeSender{}
	h := NewHandler(sender, zap.NewNop())

	rec := post(h, `{"to":"ada@test.com","eventTitle":"Yoga Night","eventDate":"2026-10-01T18:00","eventLocation":"Union Hall","userName":"Ada"}`)
	rec.AssertStatus(t, http.StatusOK)
	rec.AssertContains(t, `"messageId":"msg-123"`)

	if len(sender.sent) != 1 {
		t.Fatalf("expected 1 email, got %d", len(sender.sent))
	}
	email := sender.sent[0]
	if email.To != "ada@test.com" {
		t.Errorf("to: %q", email.To)
	}
	if email.Subject != "Registration Confirmation: Yoga Night" {
		t.Errorf("subject: %q", email.Subject)
	}
}

func TestServeSendEmailMissingFields(t *testing.T) {
	h := NewHandler(&fakeSender{}, zap.NewNop())

	post(h, `{"eventTitle":"Yoga Night"}`).AssertStatus(t, http.StatusBadRequest)
	post(h, `{"to":"ada@test.com"}`).AssertStatus(t, http.StatusBadRequest)
}

func TestServeSendEmailRelayFailure(t *testing.T) {
	h := NewHandler(&fakeSender{err: errors.New("smtp down")}, zap.NewNop())

	rec := post(h, `{"to":"ada@test.com","eventTitle":"Yoga Night"}`)
	rec.AssertStatus(t, http.StatusInternalServerError)
	rec.AssertContains(t, `"success":false`)
}
