package userstore_test

import (
	"testing"

	userstore "github.com/acadiahub/acadiahub/internal/app/store/users"
	"github.com/acadiahub/acadiahub/internal/domain/models"
	"github.com/acadiahub/acadiahub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestStore_Create_Student(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	user := models.User{
		Name:  "Sam Student",
		Email: "sam@example.com",
		Role:  "student",
	}

	created, err := store.Create(ctx, user, "hunter22")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if created.ID == primitive.NilObjectID {
		t.Error("expected ID to be assigned")
	}
	if created.NameCI == "" {
		t.Error("expected NameCI to be set")
	}
	if created.CreatedAt.IsZero() {
		t.Error("expected CreatedAt to be set")
	}
	if created.PasswordHash == "" || created.PasswordHash == "hunter22" {
		t.Error("expected password to be stored hashed")
	}
}

func TestStore_Create_NormalizesEmail(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Create(ctx, models.User{
		Name:  "Casey Club",
		Email: "  Casey@Example.COM ",
		Role:  "club",
	}, "hunter22")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if created.Email != "casey@example.com" {
		t.Errorf("Email: got %q, want %q", created.Email, "casey@example.com")
	}
}

func TestStore_Create_InvalidRole(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	_, err := store.Create(ctx, models.User{
		Name:  "Bad Role",
		Email: "bad@example.com",
		Role:  "organizer",
	}, "hunter22")
	if err == nil {
		t.Fatal("expected error for invalid role")
	}
}

func TestStore_Create_MissingPassword(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	_, err := store.Create(ctx, models.User{
		Name:  "No Password",
		Email: "nopass@example.com",
		Role:  "student",
	}, "")
	if err == nil {
		t.Fatal("expected error for empty password")
	}
}

func TestStore_Create_DuplicateEmail(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	_, err := store.Create(ctx, models.User{
		Name:  "User One",
		Email: "duplicate@example.com",
		Role:  "student",
	}, "hunter22")
	if err != nil {
		t.Fatalf("first Create failed: %v", err)
	}

	_, err = store.Create(ctx, models.User{
		Name:  "User Two",
		Email: "duplicate@example.com",
		Role:  "student",
	}, "hunter22")
	if err != userstore.ErrDuplicateEmail {
		t.Errorf("expected ErrDuplicateEmail, got %v", err)
	}
}

func TestStore_Authenticate(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Create(ctx, models.User{
		Name:  "Login User",
		Email: "login@example.com",
		Role:  "student",
	}, "correct-horse")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	// Right password, different email case.
	found, err := store.Authenticate(ctx, "Login@Example.com", "correct-horse")
	if err != nil {
		t.Fatalf("Authenticate failed: %v", err)
	}
	if found.ID != created.ID {
		t.Errorf("ID: got %v, want %v", found.ID, created.ID)
	}

	// Wrong password.
	if _, err := store.Authenticate(ctx, "login@example.com", "wrong"); err != userstore.ErrBadCredentials {
		t.Errorf("expected ErrBadCredentials for wrong password, got %v", err)
	}

	// Unknown email.
	if _, err := store.Authenticate(ctx, "nobody@example.com", "whatever"); err != userstore.ErrBadCredentials {
		t.Errorf("expected ErrBadCredentials for unknown email, got %v", err)
	}
}

func TestStore_GetByID_NotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fakeID := primitive.NewObjectID()
	_, err := store.GetByID(ctx, fakeID)
	if err != mongo.ErrNoDocuments {
		t.Errorf("expected mongo.ErrNoDocuments, got %v", err)
	}
}

func TestStore_DisplayName(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	named, err := store.Create(ctx, models.User{
		Name:  "Alex Named",
		Email: "alex@example.com",
		Role:  "student",
	}, "hunter22")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	got, err := store.DisplayName(ctx, named.ID)
	if err != nil {
		t.Fatalf("DisplayName failed: %v", err)
	}
	if got != "Alex Named" {
		t.Errorf("DisplayName: got %q, want %q", got, "Alex Named")
	}

	// Unknown id surfaces ErrNoDocuments; fallback is the caller's job.
	if _, err := store.DisplayName(ctx, primitive.NewObjectID()); err != mongo.ErrNoDocuments {
		t.Errorf("expected mongo.ErrNoDocuments, got %v", err)
	}
}
