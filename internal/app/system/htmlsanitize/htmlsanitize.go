// Package htmlsanitize strips dangerous markup from user-entered
// content before it is stored.
package htmlsanitize

import "github.com/microcosm-cc/bluemonday"

var (
	// ugc allows basic formatting and safe links (event descriptions).
	ugc = bluemonday.UGCPolicy()

	// strict strips all markup (comment text, titles, locations).
	strict = bluemonday.StrictPolicy()
)

// Sanitize cleans content that may legitimately contain formatting,
// such as event descriptions. Scripts, event handlers, and javascript:
// URLs are removed; basic formatting and safe links are preserved.
func Sanitize(s string) string {
	return ugc.Sanitize(s)
}

// Text strips all markup, leaving plain text. Used for fields that
// should never contain HTML.
func Text(s string) string {
	return strict.Sanitize(s)
}
