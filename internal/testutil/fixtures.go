package testutil

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/acadiahub/acadiahub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// WithChiURLParam adds a chi URL parameter to the request context.
// Use this in handler tests that need to access chi.URLParam values.
func WithChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// CreateUser creates a test user with the given name, email, and role.
// Returns the created user with its generated ID.
func (f *Fixtures) CreateUser(ctx context.Context, name, email, role string) models.User {
	f.t.Helper()

	user := models.User{
		ID:        primitive.NewObjectID(),
		Name:      name,
		NameCI:    text.Fold(name),
		Email:     email,
		Role:      role,
		CreatedAt: time.Now().UTC(),
	}

	_, err := f.db.Collection("users").InsertOne(ctx, user)
	if err != nil {
		f.t.Fatalf("failed to create test user: %v", err)
	}

	return user
}

// CreateStudent creates a test user with the student role.
func (f *Fixtures) CreateStudent(ctx context.Context, name, email string) models.User {
	f.t.Helper()
	return f.CreateUser(ctx, name, email, models.RoleStudent)
}

// CreateClub creates a test user with the club role.
func (f *Fixtures) CreateClub(ctx context.Context, name, email string) models.User {
	f.t.Helper()
	return f.CreateUser(ctx, name, email, models.RoleClub)
}

// CreateEvent creates a test event owned by createdBy. Registration and
// comment state start empty.
func (f *Fixtures) CreateEvent(ctx context.Context, title, category string, maxRegistrations int, createdBy primitive.ObjectID) models.Event {
	f.t.Helper()

	now := time.Now().UTC()
	event := models.Event{
		ID:               primitive.NewObjectID(),
		Title:            title,
		TitleCI:          text.Fold(title),
		Description:      "Test event description",
		Category:         category,
		Location:         "Test Hall",
		StartTime:        "2026-09-15T18:00",
		EndTime:          "2026-09-15T20:00",
		MaxRegistrations: maxRegistrations,
		Registrations:    []primitive.ObjectID{},
		Comments:         []models.Comment{},
		CreatedBy:        createdBy,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	_, err := f.db.Collection("events").InsertOne(ctx, event)
	if err != nil {
		f.t.Fatalf("failed to create test event: %v", err)
	}

	return event
}

// CreateEventAt creates a test event with an explicit created_at, for
// tests that need a deterministic feed order.
func (f *Fixtures) CreateEventAt(ctx context.Context, title, category string, createdBy primitive.ObjectID, createdAt time.Time) models.Event {
	f.t.Helper()

	event := models.Event{
		ID:               primitive.NewObjectID(),
		Title:            title,
		TitleCI:          text.Fold(title),
		Description:      "Test event description",
		Category:         category,
		Location:         "Test Hall",
		StartTime:        "2026-09-15T18:00",
		EndTime:          "2026-09-15T20:00",
		MaxRegistrations: 50,
		Registrations:    []primitive.ObjectID{},
		Comments:         []models.Comment{},
		CreatedBy:        createdBy,
		CreatedAt:        createdAt,
		UpdatedAt:        createdAt,
	}

	_, err := f.db.Collection("events").InsertOne(ctx, event)
	if err != nil {
		f.t.Fatalf("failed to create test event: %v", err)
	}

	return event
}
