package utils

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// plainEntities decodes only the escapes bluemonday emits for characters
// that cannot open markup. &lt; and &gt; stay encoded.
var plainEntities = strings.NewReplacer(
	"&amp;", "&",
	"&#34;", `"`,
	"&quot;", `"`,
	"&#39;", "'",
)

// Sanitizer strips all markup from user supplied text.
type Sanitizer struct {
	policy *bluemonday.Policy
}

func NewSanitizer() *Sanitizer {
	return &Sanitizer{policy: bluemonday.StrictPolicy()}
}

// Text removes tags and returns plain text. Escaped angle brackets in the
// input are kept escaped.
func (s *Sanitizer) Text(in string) string {
	return strings.TrimSpace(plainEntities.Replace(s.policy.Sanitize(in)))
}
