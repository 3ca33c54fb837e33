package userstore

import (
	"context"
	"errors"
	"time"

	"github.com/acadiahub/acadiahub/internal/app/system/normalize"
	"github.com/acadiahub/acadiahub/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("users")}
}

var (
	// ErrDuplicateEmail is returned when attempting to create a user with an email that already exists.
	ErrDuplicateEmail = errors.New("a user with this email already exists")
	// ErrBadCredentials is returned when an email/password pair does not match a user.
	ErrBadCredentials = errors.New("invalid email or password")
	errBadRole        = errors.New(`role must be "student"|"club"`)
	errMissingField   = errors.New("name, email, and password are required")
)

// IsValidationError reports whether err came from client input that
// failed validation, as opposed to a store failure.
func IsValidationError(err error) bool {
	return errors.Is(err, errBadRole) || errors.Is(err, errMissingField)
}

// Create inserts a new user profile at sign-up after normalizing &
// validating fields and hashing the password. Profiles are created
// exactly once per identity; the unique email index backs that up.
func (s *Store) Create(ctx context.Context, u models.User, password string) (models.User, error) {
	u.ID = primitive.NewObjectID()
	u.Name = normalize.Name(u.Name)
	u.NameCI = text.Fold(u.Name)
	u.Email = normalize.Email(u.Email)
	u.Role = normalize.Role(u.Role)

	if u.Name == "" || u.Email == "" || password == "" {
		return models.User{}, errMissingField
	}
	if !models.IsValidRole(u.Role) {
		return models.User{}, errBadRole
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, err
	}
	u.PasswordHash = string(hash)
	u.CreatedAt = time.Now().UTC()

	if _, err := s.c.InsertOne(ctx, u); err != nil {
		if wafflemongo.IsDup(err) {
			return models.User{}, ErrDuplicateEmail
		}
		return models.User{}, err
	}
	return u, nil
}

// Authenticate looks up a user by email and verifies the password.
// Returns ErrBadCredentials for both unknown emails and wrong passwords
// so callers can't distinguish the two.
func (s *Store) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	u, err := s.GetByEmail(ctx, email)
	if err == mongo.ErrNoDocuments {
		return nil, ErrBadCredentials
	}
	if err != nil {
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return nil, ErrBadCredentials
	}
	return u, nil
}

// GetByID loads a user by ObjectID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&u); err != nil {
		return nil, err
	}
	return &u, nil
}

// GetByEmail looks up a user by case-insensitive email. Returns mongo.ErrNoDocuments if not found.
func (s *Store) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"email": normalize.Email(email)}).Decode(&u); err != nil {
		return nil, err
	}
	return &u, nil
}

// DisplayName resolves a user id to its display label (name, else
// email). Returns mongo.ErrNoDocuments when no such user exists; the
// caller decides the fallback.
func (s *Store) DisplayName(ctx context.Context, id primitive.ObjectID) (string, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&u); err != nil {
		return "", err
	}
	return u.DisplayName(), nil
}
