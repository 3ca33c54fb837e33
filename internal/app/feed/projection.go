package feed

import (
	"sort"
	"strings"

	"github.com/acadiahub/acadiahub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
)

// Sort keys accepted by Project.
const (
	SortNewest = "newest"
	SortOldest = "oldest"
)

// Project derives a filtered, ordered view of events from a search
// term, a category, and a sort key. It never mutates its input.
//
// The search term matches case-insensitively against title or
// description. Category is either models.CategoryAll (no filtering) or
// an exact match. Sort orders by created_at; an unrecognized sort key
// falls back to newest-first. Events with a zero created_at sort as
// oldest.
func Project(events []models.Event, search, category, sortKey string) []models.Event {
	out := make([]models.Event, 0, len(events))

	needle := text.Fold(strings.TrimSpace(search))
	for _, e := range events {
		if needle != "" &&
			!strings.Contains(text.Fold(e.Title), needle) &&
			!strings.Contains(text.Fold(e.Description), needle) {
			continue
		}
		if category != "" && category != models.CategoryAll && e.Category != category {
			continue
		}
		out = append(out, e)
	}

	asc := sortKey == SortOldest
	sort.SliceStable(out, func(i, j int) bool {
		if asc {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})

	return out
}
