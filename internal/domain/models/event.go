// internal/domain/models/event.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Event categories. Stored verbatim; the dashboard's category filter
// matches these exactly (or the "All" sentinel, which is not a category).
var AllCategories = []string{"Sports", "Workshop", "Club", "Social", "Academic"}

// CategoryAll is the filter sentinel meaning "no category filtering".
const CategoryAll = "All"

// IsValidCategory reports whether value is one of the event categories.
// The "All" sentinel is not a valid category for a stored event.
func IsValidCategory(value string) bool {
	for _, c := range AllCategories {
		if c == value {
			return true
		}
	}
	return false
}

// Event is a campus event document.
//
// NOTE:
//   - Registrations is treated as a set: membership changes go through
//     $addToSet/$pull so a user id can never appear twice.
//   - Comments is append-only ($push); entries are never reordered or
//     deleted.
//   - StartTime/EndTime are kept as the wall-clock strings the creator
//     entered (datetime-local form values); they are display data, not
//     ordering keys. Ordering uses CreatedAt, which is server-assigned.
type Event struct {
	ID               primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Title            string               `bson:"title" json:"title"`
	TitleCI          string               `bson:"title_ci" json:"-"`
	Description      string               `bson:"description" json:"description"`
	Category         string               `bson:"category" json:"category"`
	Location         string               `bson:"location" json:"location"`
	StartTime        string               `bson:"start_time" json:"startTime"`
	EndTime          string               `bson:"end_time" json:"endTime"`
	MaxRegistrations int                  `bson:"max_registrations" json:"maxRegistrations"`
	Registrations    []primitive.ObjectID `bson:"registrations" json:"registrations"`
	Comments         []Comment            `bson:"comments" json:"comments"`
	CreatedBy        primitive.ObjectID   `bson:"created_by" json:"createdBy"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}

// IsFull reports whether the registration set has reached capacity.
func (e *Event) IsFull() bool {
	return len(e.Registrations) >= e.MaxRegistrations
}

// IsRegistered reports whether userID is in the registration set.
func (e *Event) IsRegistered(userID primitive.ObjectID) bool {
	for _, id := range e.Registrations {
		if id == userID {
			return true
		}
	}
	return false
}

// Comment is an entry in an event's append-only comment log. The author
// display name is denormalized at write time from the commenting session's
// profile; it is never re-resolved later.
type Comment struct {
	Text     string             `bson:"text" json:"text"`
	Author   string             `bson:"author" json:"author"`
	AuthorID primitive.ObjectID `bson:"author_id" json:"authorId"`
	At       time.Time          `bson:"at" json:"timestamp"`
}
