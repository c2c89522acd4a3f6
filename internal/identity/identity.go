// Package identity derives the deduplication key for a posting.
//
// The key is deliberately weak: it is built from portal + normalized title +
// normalized company, because job boards rarely expose a stable upstream ID.
// Salary and URL are excluded — both can legitimately change between two
// sightings of the same posting.
package identity

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/vicpaltor/job-monitor-whatsapp/internal/model"
)

// Keyer turns a RawPosting into its PostingIdentity. The derivation strategy
// is pluggable so a stronger scheme can replace the default without touching
// the processor.
type Keyer interface {
	Key(p model.RawPosting) string
}

// NormalizedKeyer is the default Keyer: portal|title|company with both text
// fields case-folded, accent-stripped and whitespace-collapsed, so trivial
// re-rendering of a page never creates a spurious new identity.
type NormalizedKeyer struct{}

// Key returns the identity "portal|normalized title|normalized company".
func (NormalizedKeyer) Key(p model.RawPosting) string {
	return strings.ToLower(strings.TrimSpace(p.Portal)) + "|" + Normalize(p.Title) + "|" + Normalize(p.Company)
}

var deaccent = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Normalize lower-cases s, strips combining marks and collapses every run of
// whitespace and common separators into a single space.
func Normalize(s string) string {
	folded, _, err := transform.String(deaccent, s)
	if err != nil {
		folded = s
	}
	folded = strings.ToLower(folded)

	var b strings.Builder
	b.Grow(len(folded))
	pendingSpace := false
	for _, r := range folded {
		if unicode.IsSpace(r) || r == '_' || r == '-' || r == '/' {
			pendingSpace = b.Len() > 0
			continue
		}
		if pendingSpace {
			b.WriteByte(' ')
			pendingSpace = false
		}
		b.WriteRune(r)
	}
	return b.String()
}
