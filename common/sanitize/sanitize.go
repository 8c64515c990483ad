// Package sanitize strips unsafe markup from user-authored HTML before it is
// rendered.
package sanitize

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// Cleaner turns arbitrary user HTML into HTML that is safe to render.
type Cleaner interface {
	Clean(s string) string
}

type ugcCleaner struct {
	policy *bluemonday.Policy
}

// NewCleaner returns a Cleaner using bluemonday's user-generated-content policy:
// formatting, links and images survive; scripts, styles, event handlers and
// javascript: URLs do not.
func NewCleaner() Cleaner {
	p := bluemonday.UGCPolicy()
	p.RequireNoFollowOnLinks(true)
	return &ugcCleaner{policy: p}
}

// Clean is idempotent: Clean(Clean(s)) == Clean(s). Input that the policy
// would only re-encode (quotes, ampersands, a stray ">") is returned
// byte-for-byte; the sanitized form is used only when markup was removed.
func (c *ugcCleaner) Clean(s string) string {
	out := c.policy.Sanitize(s)
	if out == s {
		return s
	}
	if html.UnescapeString(out) == html.UnescapeString(s) && tagOpeners(s) == strings.Count(out, "<") {
		return s
	}
	return out
}

// tagOpeners counts the "<" in s that an HTML tokenizer would read as the
// start of a tag, comment or doctype. A "<" followed by a space or digit is text.
func tagOpeners(s string) int {
	n := 0
	for i := 0; i+1 < len(s); i++ {
		if s[i] != '<' {
			continue
		}
		switch next := s[i+1]; {
		case next == '/', next == '!', next == '?',
			next >= 'a' && next <= 'z', next >= 'A' && next <= 'Z':
			n++
		}
	}
	return n
}
