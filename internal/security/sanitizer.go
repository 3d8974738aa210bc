package security

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// Sanitizer strips markup from free-text form values before they are stored.
// Templates escape on output, so stored values are kept as plain text.
type Sanitizer struct {
	policy *bluemonday.Policy
}

// NewSanitizer returns a sanitizer that strips all markup.
func NewSanitizer() *Sanitizer {
	return &Sanitizer{policy: bluemonday.StrictPolicy()}
}

// Clean removes every tag, unescapes the entities bluemonday produced and
// trims surrounding whitespace.
func (s *Sanitizer) Clean(value string) string {
	if value == "" {
		return ""
	}
	return strings.TrimSpace(html.UnescapeString(s.policy.Sanitize(value)))
}
