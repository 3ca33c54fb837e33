package eventstore

import (
	"context"
	"errors"
	"time"

	"github.com/acadiahub/acadiahub/internal/app/system/normalize"
	"github.com/acadiahub/acadiahub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("events")}
}

var (
	// ErrNotFound is returned when the target event does not exist.
	ErrNotFound = errors.New("event not found")
	// ErrEventFull is returned when a registration would exceed max_registrations.
	ErrEventFull = errors.New("event is full")
	// ErrNotOwner is returned when a mutation is attempted by someone other than the creator.
	ErrNotOwner = errors.New("only the event creator may do this")
	errBadTitle = errors.New("title is required")
	errBadCat   = errors.New(`category must be one of "Sports"|"Workshop"|"Club"|"Social"|"Academic"`)
	errBadMax   = errors.New("max_registrations must be a positive integer")
)

// IsValidationError reports whether err came from client input that
// failed validation, as opposed to a store failure.
func IsValidationError(err error) bool {
	return errors.Is(err, errBadTitle) || errors.Is(err, errBadCat) || errors.Is(err, errBadMax)
}

// Create inserts a new event after validating fields. The registration
// set and comment log start empty; created_at is server-assigned and is
// the only ordering key the feed uses.
func (s *Store) Create(ctx context.Context, e models.Event) (models.Event, error) {
	e.ID = primitive.NewObjectID()
	e.Title = normalize.Name(e.Title)
	e.TitleCI = text.Fold(e.Title)

	if e.Title == "" {
		return models.Event{}, errBadTitle
	}
	if !models.IsValidCategory(e.Category) {
		return models.Event{}, errBadCat
	}
	if e.MaxRegistrations < 1 {
		return models.Event{}, errBadMax
	}

	e.Registrations = []primitive.ObjectID{}
	e.Comments = []models.Comment{}

	now := time.Now().UTC()
	e.CreatedAt = now
	e.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, e); err != nil {
		return models.Event{}, err
	}
	return e, nil
}

// GetByID loads an event by ObjectID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Event, error) {
	var e models.Event
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&e); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &e, nil
}

// List returns every event, newest first (created_at descending).
func (s *Store) List(ctx context.Context) ([]models.Event, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := s.c.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	events := []models.Event{}
	if err := cur.All(ctx, &events); err != nil {
		return nil, err
	}
	return events, nil
}

// DetailsUpdate holds the descriptive fields the creator may edit.
// Registration and comment state are never written through this path.
type DetailsUpdate struct {
	Title            string
	Description      string
	Category         string
	Location         string
	StartTime        string
	EndTime          string
	MaxRegistrations int
}

// UpdateDetails edits an event's descriptive fields. Only the creator's
// writes match; anyone else gets ErrNotOwner.
func (s *Store) UpdateDetails(ctx context.Context, id, creatorID primitive.ObjectID, upd DetailsUpdate) error {
	title := normalize.Name(upd.Title)
	if title == "" {
		return errBadTitle
	}
	if !models.IsValidCategory(upd.Category) {
		return errBadCat
	}
	if upd.MaxRegistrations < 1 {
		return errBadMax
	}

	set := bson.M{
		"title":             title,
		"title_ci":          text.Fold(title),
		"description":       upd.Description,
		"category":          upd.Category,
		"location":          upd.Location,
		"start_time":        upd.StartTime,
		"end_time":          upd.EndTime,
		"max_registrations": upd.MaxRegistrations,
		"updated_at":        time.Now().UTC(),
	}

	res, err := s.c.UpdateOne(ctx, bson.M{"_id": id, "created_by": creatorID}, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return s.missingOrNotOwner(ctx, id)
	}
	return nil
}

// Delete removes an event. Only the creator's delete matches.
func (s *Store) Delete(ctx context.Context, id, creatorID primitive.ObjectID) error {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id, "created_by": creatorID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return s.missingOrNotOwner(ctx, id)
	}
	return nil
}

// Register adds userID to the event's registration set in a single
// conditional update. The filter admits the write when the user is
// already registered (idempotent no-op via $addToSet) or when the set
// is below capacity, so two racing registrants can never push the set
// past max_registrations.
func (s *Store) Register(ctx context.Context, id, userID primitive.ObjectID) error {
	filter := bson.M{
		"_id": id,
		"$or": bson.A{
			bson.M{"registrations": userID},
			bson.M{"$expr": bson.M{"$lt": bson.A{
				bson.M{"$size": bson.M{"$ifNull": bson.A{"$registrations", bson.A{}}}},
				"$max_registrations",
			}}},
		},
	}
	update := bson.M{"$addToSet": bson.M{"registrations": userID}}

	res, err := s.c.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		// Either the event is gone or the capacity guard rejected us.
		if err := s.c.FindOne(ctx, bson.M{"_id": id}).Err(); err != nil {
			if err == mongo.ErrNoDocuments {
				return ErrNotFound
			}
			return err
		}
		return ErrEventFull
	}
	return nil
}

// Unregister removes userID from the event's registration set. Removing
// an absent id is a no-op, not an error.
func (s *Store) Unregister(ctx context.Context, id, userID primitive.ObjectID) error {
	res, err := s.c.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$pull": bson.M{"registrations": userID}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// AppendComment appends c to the event's comment log atomically. $push
// keeps concurrent commenters from overwriting each other.
func (s *Store) AppendComment(ctx context.Context, id primitive.ObjectID, c models.Comment) error {
	res, err := s.c.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$push": bson.M{"comments": c}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Watch opens a change stream over the events collection. The caller
// owns the stream and must Close it; each stream event signals that the
// collection changed in some way (the feed reloads the full list rather
// than applying deltas).
func (s *Store) Watch(ctx context.Context) (*mongo.ChangeStream, error) {
	return s.c.Watch(ctx, mongo.Pipeline{})
}

// missingOrNotOwner decides which error to report after a
// creator-scoped write matched nothing.
func (s *Store) missingOrNotOwner(ctx context.Context, id primitive.ObjectID) error {
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Err()
	if err == mongo.ErrNoDocuments {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	return ErrNotOwner
}
