// Package sanitize strips markup from user-supplied text before it is
// persisted or echoed in notifications and emails.
package sanitize

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var strict = bluemonday.StrictPolicy()

// Text removes all HTML from s and trims surrounding whitespace.
// League, panel, team, and company names plus invite messages pass through
// here before they reach the store.
func Text(s string) string {
	return strings.TrimSpace(strict.Sanitize(s))
}
