package events

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/acadiahub/acadiahub/internal/app/feed"
	eventstore "github.com/acadiahub/acadiahub/internal/app/store/events"
	userstore "github.com/acadiahub/acadiahub/internal/app/store/users"
	"github.com/acadiahub/acadiahub/internal/app/system/mailer"
	"github.com/acadiahub/acadiahub/internal/domain/models"
	"github.com/acadiahub/acadiahub/internal/testutil"
	"go.uber.org/zap"
)

// fakeSender records sent email for assertions.
type fakeSender struct {
	mu   sync.Mutex
	sent []mailer.Email
}

func (f *fakeSender) Send(e mailer.Email) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, e)
	return "test-message-id", nil
}

func (f *fakeSender) sentTo(to string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, e := range f.sent {
		if e.To == to {
			return true
		}
	}
	return false
}

func newTestHandler(t *testing.T) (*Handler, *testutil.Fixtures, *fakeSender) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	fixtures := testutil.NewFixtures(t, db)

	events := eventstore.New(db)
	names := feed.NewNameCache(userstore.New(db), time.Minute)
	hub := feed.NewHub(events, names, zap.NewNop())
	sender := &fakeSender{}

	return NewHandler(events, names, hub, sender, zap.NewNop()), fixtures, sender
}

func sessionUserFor(u models.User) testutil.TestUser {
	return testutil.TestUser{
		ID:    u.ID.Hex(),
		Name:  u.Name,
		Email: u.Email,
		Role:  u.Role,
	}
}

func TestServeCreate(t *testing.T) {
	h, fixtures, _ := newTestHandler(t)

	ctx, cancel := testutil.TestContext()
	defer cancel()

	club := fixtures.CreateClub(ctx, "Chess Club", "chess@test.com")

	body := `{"title":"Blitz Night","description":"<p>Fast games</p><script>x()</script>","category":"Sports","location":"Union Hall","startTime":"2026-10-01T18:00","endTime":"2026-10-01T21:00","maxRegistrations":16}`
	req := httptest.NewRequest(http.MethodPost, "/api/events", strings.NewReader(body))
	req = testutil.WithUser(req, sessionUserFor(club))
	rec := testutil.NewRecorder()

	h.ServeCreate(rec.ResponseRecorder, req)
	rec.AssertStatus(t, http.StatusCreated)

	var resp struct {
		Event models.Event `json:"event"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Event.Title != "Blitz Night" {
		t.Errorf("title: %q", resp.Event.Title)
	}
	if strings.Contains(resp.Event.Description, "<script>") {
		t.Error("description not sanitized")
	}
	if !strings.Contains(resp.Event.Description, "<p>") {
		t.Error("benign markup should survive sanitization")
	}
}

func TestServeCreateValidation(t *testing.T) {
	h, fixtures, _ := newTestHandler(t)

	ctx, cancel := testutil.TestContext()
	defer cancel()

	club := fixtures.CreateClub(ctx, "Chess Club", "chess@test.com")

	req := httptest.NewRequest(http.MethodPost, "/api/events",
		strings.NewReader(`{"title":"Blitz Night","category":"Nope","maxRegistrations":16}`))
	req = testutil.WithUser(req, sessionUserFor(club))
	rec := testutil.NewRecorder()

	h.ServeCreate(rec.ResponseRecorder, req)
	rec.AssertStatus(t, http.StatusBadRequest)
}

func TestServeRegisterSendsConfirmation(t *testing.T) {
	h, fixtures, sender := newTestHandler(t)

	ctx, cancel := testutil.TestContext()
	defer cancel()

	club := fixtures.CreateClub(ctx, "Film Club", "film@test.com")
	student := fixtures.CreateStudent(ctx, "Ada", "ada@test.com")
	event := fixtures.CreateEvent(ctx, "Movie Night", "Social", 10, club.ID)

	req := testutil.NewAuthenticatedRequest(http.MethodPost, "/api/events/"+event.ID.Hex()+"/register", sessionUserFor(student))
	req = testutil.WithChiURLParam(req, "id", event.ID.Hex())
	rec := testutil.NewRecorder()

	h.ServeRegister(rec.ResponseRecorder, req)
	rec.AssertStatus(t, http.StatusOK)

	got, err := h.Events.GetByID(ctx, event.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if !got.IsRegistered(student.ID) {
		t.Error("student not registered")
	}

	// The confirmation email is dispatched asynchronously.
	deadline := time.Now().Add(2 * time.Second)
	for !sender.sentTo("ada@test.com") {
		if time.Now().After(deadline) {
			t.Fatal("confirmation email never sent")
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestServeRegisterFull(t *testing.T) {
	h, fixtures, _ := newTestHandler(t)

	ctx, cancel := testutil.TestContext()
	defer cancel()

	club := fixtures.CreateClub(ctx, "Tiny Club", "tiny@test.com")
	event := fixtures.CreateEvent(ctx, "Small Room", "Workshop", 1, club.ID)

	first := fixtures.CreateStudent(ctx, "One", "one@test.com")
	if err := h.Events.Register(ctx, event.ID, first.ID); err != nil {
		t.Fatalf("seed registration: %v", err)
	}

	second := fixtures.CreateStudent(ctx, "Two", "two@test.com")
	req := testutil.NewAuthenticatedRequest(http.MethodPost, "/api/events/"+event.ID.Hex()+"/register", sessionUserFor(second))
	req = testutil.WithChiURLParam(req, "id", event.ID.Hex())
	rec := testutil.NewRecorder()

	h.ServeRegister(rec.ResponseRecorder, req)
	rec.AssertStatus(t, http.StatusConflict)
	rec.AssertContains(t, "Event Full")
}

func TestServeUnregister(t *testing.T) {
	h, fixtures, _ := newTestHandler(t)

	ctx, cancel := testutil.TestContext()
	defer cancel()

	club := fixtures.CreateClub(ctx, "Hiking Club", "hike@test.com")
	student := fixtures.CreateStudent(ctx, "Ada", "ada@test.com")
	event := fixtures.CreateEvent(ctx, "Trail Day", "Sports", 5, club.ID)
	if err := h.Events.Register(ctx, event.ID, student.ID); err != nil {
		t.Fatalf("seed registration: %v", err)
	}

	req := testutil.NewAuthenticatedRequest(http.MethodPost, "/api/events/"+event.ID.Hex()+"/unregister", sessionUserFor(student))
	req = testutil.WithChiURLParam(req, "id", event.ID.Hex())
	rec := testutil.NewRecorder()

	h.ServeUnregister(rec.ResponseRecorder, req)
	rec.AssertStatus(t, http.StatusOK)

	got, err := h.Events.GetByID(ctx, event.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.IsRegistered(student.ID) {
		t.Error("student still registered")
	}
}

func TestServeAddComment(t *testing.T) {
	h, fixtures, _ := newTestHandler(t)

	ctx, cancel := testutil.TestContext()
	defer cancel()

	club := fixtures.CreateClub(ctx, "Debate Club", "debate@test.com")
	student := fixtures.CreateStudent(ctx, "Ada", "ada@test.com")
	event := fixtures.CreateEvent(ctx, "Open Mic", "Social", 20, club.ID)

	req := httptest.NewRequest(http.MethodPost, "/api/events/"+event.ID.Hex()+"/comments",
		strings.NewReader(`{"text":"See you <b>there</b>!"}`))
	req = testutil.WithUser(req, sessionUserFor(student))
	req = testutil.WithChiURLParam(req, "id", event.ID.Hex())
	rec := testutil.NewRecorder()

	h.ServeAddComment(rec.ResponseRecorder, req)
	rec.AssertStatus(t, http.StatusCreated)

	got, err := h.Events.GetByID(ctx, event.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if len(got.Comments) != 1 {
		t.Fatalf("expected 1 comment, got %d", len(got.Comments))
	}
	c := got.Comments[0]
	if strings.Contains(c.Text, "<b>") {
		t.Errorf("comment markup not stripped: %q", c.Text)
	}
	if c.Author != "Ada" {
		t.Errorf("author not denormalized: %q", c.Author)
	}
	if c.At.IsZero() {
		t.Error("comment timestamp not set")
	}
}

func TestServeAddCommentEmpty(t *testing.T) {
	h, fixtures, _ := newTestHandler(t)

	ctx, cancel := testutil.TestContext()
	defer cancel()

	club := fixtures.CreateClub(ctx, "Debate Club", "debate@test.com")
	event := fixtures.CreateEvent(ctx, "Open Mic", "Social", 20, club.ID)

	req := httptest.NewRequest(http.MethodPost, "/api/events/"+event.ID.Hex()+"/comments",
		strings.NewReader(`{"text":"   "}`))
	req = testutil.WithUser(req, sessionUserFor(club))
	req = testutil.WithChiURLParam(req, "id", event.ID.Hex())
	rec := testutil.NewRecorder()

	h.ServeAddComment(rec.ResponseRecorder, req)
	rec.AssertStatus(t, http.StatusBadRequest)
}

func TestServeListProjection(t *testing.T) {
	h, fixtures, _ := newTestHandler(t)

	ctx, cancel := testutil.TestContext()
	defer cancel()

	club := fixtures.CreateClub(ctx, "Events Club", "events@test.com")
	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	fixtures.CreateEventAt(ctx, "Yoga Night", "Sports", club.ID, base.Add(time.Hour))
	fixtures.CreateEventAt(ctx, "Movie Night", "Social", club.ID, base)

	h.Hub.Refresh(ctx)

	req := httptest.NewRequest(http.MethodGet, "/api/events?search=yoga&category=All&sort=newest", nil)
	rec := testutil.NewRecorder()
	h.ServeList(rec.ResponseRecorder, req)
	rec.AssertStatus(t, http.StatusOK)

	var resp struct {
		Events []models.Event    `json:"events"`
		Names  map[string]string `json:"names"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Events) != 1 || resp.Events[0].Title != "Yoga Night" {
		t.Errorf("projection wrong: %+v", resp.Events)
	}
	if resp.Names[club.ID.Hex()] != "Events Club" {
		t.Errorf("creator name missing: %v", resp.Names)
	}
}

func TestServeRegistrants(t *testing.T) {
	h, fixtures, _ := newTestHandler(t)

	ctx, cancel := testutil.TestContext()
	defer cancel()

	club := fixtures.CreateClub(ctx, "Film Club", "film@test.com")
	student := fixtures.CreateStudent(ctx, "Ada Lovelace", "ada@test.com")
	event := fixtures.CreateEvent(ctx, "Movie Night", "Social", 10, club.ID)
	if err := h.Events.Register(ctx, event.ID, student.ID); err != nil {
		t.Fatalf("seed registration: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/events/"+event.ID.Hex()+"/registrants", nil)
	req = testutil.WithChiURLParam(req, "id", event.ID.Hex())
	rec := testutil.NewRecorder()

	h.ServeRegistrants(rec.ResponseRecorder, req)
	rec.AssertStatus(t, http.StatusOK)
	rec.AssertContains(t, "Ada Lovelace")
}

func TestServeDeleteNotOwner(t *testing.T) {
	h, fixtures, _ := newTestHandler(t)

	ctx, cancel := testutil.TestContext()
	defer cancel()

	owner := fixtures.CreateClub(ctx, "Art Club", "art@test.com")
	other := fixtures.CreateClub(ctx, "Other Club", "other@test.com")
	event := fixtures.CreateEvent(ctx, "Paint Jam", "Social", 10, owner.ID)

	req := testutil.NewAuthenticatedRequest(http.MethodDelete, "/api/events/"+event.ID.Hex(), sessionUserFor(other))
	req = testutil.WithChiURLParam(req, "id", event.ID.Hex())
	rec := testutil.NewRecorder()

	h.ServeDelete(rec.ResponseRecorder, req)
	rec.AssertStatus(t, http.StatusForbidden)
}

func TestServeGetBadID(t *testing.T) {
	h, _, _ := newTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/api/events/not-a-hex-id", nil)
	req = testutil.WithChiURLParam(req, "id", "not-a-hex-id")
	rec := testutil.NewRecorder()

	h.ServeGet(rec.ResponseRecorder, req)
	rec.AssertStatus(t, http.StatusBadRequest)
}
